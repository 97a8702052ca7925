package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hargabyte/liftoff/internal/report"
)

// SaveReport archives a generated report. The report body is stored as a
// JSON document.
func (s *Store) SaveReport(r *report.Report) error {
	if r.ID == "" {
		return fmt.Errorf("report ID is required")
	}

	content, err := json.Marshal(r.Content)
	if err != nil {
		return fmt.Errorf("marshal content for %s: %w", r.ID, err)
	}

	_, err = s.db.Exec(`
		REPLACE INTO reports (id, project_id, template_id, title, generated_at, content)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.ProjectID, r.TemplateID, r.Title,
		r.GeneratedAt.UTC().Format(time.RFC3339), string(content))
	if err != nil {
		return fmt.Errorf("save report %s: %w", r.ID, err)
	}
	return nil
}

// GetReport retrieves an archived report by ID.
// Returns ErrNotFound if no report with that ID exists.
func (s *Store) GetReport(id string) (*report.Report, error) {
	var r report.Report
	var title sql.NullString
	var generatedAt, content string

	err := s.db.QueryRow(`
		SELECT id, project_id, template_id, title, generated_at, content
		FROM reports WHERE id = ?`, id).Scan(
		&r.ID, &r.ProjectID, &r.TemplateID, &title, &generatedAt, &content)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("report %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get report %s: %w", id, err)
	}

	r.Title = title.String
	r.GeneratedAt, _ = time.Parse(time.RFC3339, generatedAt)

	if err := json.Unmarshal([]byte(content), &r.Content); err != nil {
		return nil, fmt.Errorf("unmarshal content for %s: %w", id, err)
	}

	return &r, nil
}

// ReportSummary is a lightweight listing row for archived reports.
type ReportSummary struct {
	ID          string
	ProjectID   string
	TemplateID  string
	Title       string
	GeneratedAt time.Time
}

// ListReports returns summaries of archived reports, newest first.
// An empty projectID lists reports across all projects.
func (s *Store) ListReports(projectID string) ([]ReportSummary, error) {
	query := `
		SELECT id, project_id, template_id, title, generated_at
		FROM reports`
	args := []interface{}{}

	if projectID != "" {
		query += " WHERE project_id = ?"
		args = append(args, projectID)
	}
	query += " ORDER BY generated_at DESC, id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var summaries []ReportSummary
	for rows.Next() {
		var summary ReportSummary
		var title sql.NullString
		var generatedAt string

		err := rows.Scan(&summary.ID, &summary.ProjectID, &summary.TemplateID,
			&title, &generatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}

		summary.Title = title.String
		summary.GeneratedAt, _ = time.Parse(time.RFC3339, generatedAt)

		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}

// DeleteReport removes an archived report by ID.
// Returns ErrNotFound if no report with that ID exists.
func (s *Store) DeleteReport(id string) error {
	result, err := s.db.Exec(`DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete report %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("report %s: %w", id, ErrNotFound)
	}

	return nil
}
