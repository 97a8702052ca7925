package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hargabyte/liftoff/internal/launch"
)

// SaveProject inserts or replaces a project record. The per-phase facts are
// stored as a JSON document. On re-save with a zero CreatedAt the original
// creation time is preserved.
func (s *Store) SaveProject(p *launch.ProjectData) error {
	if p.ID == "" {
		return fmt.Errorf("project ID is required")
	}

	facts, err := json.Marshal(p.Facts)
	if err != nil {
		return fmt.Errorf("marshal facts for %s: %w", p.ID, err)
	}

	now := time.Now().UTC()
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		var existing string
		err := s.db.QueryRow(`SELECT created_at FROM projects WHERE id = ?`, p.ID).Scan(&existing)
		if err == nil {
			if t, perr := time.Parse(time.RFC3339, existing); perr == nil {
				createdAt = t
			}
		}
		if createdAt.IsZero() {
			createdAt = now
		}
	}

	_, err = s.db.Exec(`
		REPLACE INTO projects (id, owner_id, name, description, industry,
			target_market, stage, facts, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.OwnerID, p.Name, p.Description, p.Industry,
		p.TargetMarket, p.Stage, string(facts),
		createdAt.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save project %s: %w", p.ID, err)
	}
	return nil
}

// GetProject retrieves a project by ID.
// Returns ErrNotFound if no project with that ID exists.
func (s *Store) GetProject(id string) (*launch.ProjectData, error) {
	var p launch.ProjectData
	var ownerID, description, industry, targetMarket, stage, facts sql.NullString
	var createdAt, updatedAt string

	err := s.db.QueryRow(`
		SELECT id, owner_id, name, description, industry, target_market,
			stage, facts, created_at, updated_at
		FROM projects WHERE id = ?`, id).Scan(
		&p.ID, &ownerID, &p.Name, &description, &industry, &targetMarket,
		&stage, &facts, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}

	p.OwnerID = ownerID.String
	p.Description = description.String
	p.Industry = industry.String
	p.TargetMarket = targetMarket.String
	p.Stage = stage.String

	if facts.Valid && facts.String != "" {
		if err := json.Unmarshal([]byte(facts.String), &p.Facts); err != nil {
			return nil, fmt.Errorf("unmarshal facts for %s: %w", id, err)
		}
	}

	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &p, nil
}

// ListProjects returns all projects ordered by creation time.
func (s *Store) ListProjects() ([]*launch.ProjectData, error) {
	rows, err := s.db.Query(`
		SELECT id, owner_id, name, description, industry, target_market,
			stage, facts, created_at, updated_at
		FROM projects ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var projects []*launch.ProjectData
	for rows.Next() {
		var p launch.ProjectData
		var ownerID, description, industry, targetMarket, stage, facts sql.NullString
		var createdAt, updatedAt string

		err := rows.Scan(&p.ID, &ownerID, &p.Name, &description, &industry,
			&targetMarket, &stage, &facts, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}

		p.OwnerID = ownerID.String
		p.Description = description.String
		p.Industry = industry.String
		p.TargetMarket = targetMarket.String
		p.Stage = stage.String

		if facts.Valid && facts.String != "" {
			if err := json.Unmarshal([]byte(facts.String), &p.Facts); err != nil {
				return nil, fmt.Errorf("unmarshal facts for %s: %w", p.ID, err)
			}
		}

		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

		projects = append(projects, &p)
	}

	return projects, rows.Err()
}

// DeleteProject removes a project and all of its progress records and
// archived reports in a single transaction.
// Returns ErrNotFound if no project with that ID exists.
func (s *Store) DeleteProject(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}

	for _, table := range []string{"progress", "phase_progress", "steps", "reports"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE project_id = ?", id); err != nil {
			return fmt.Errorf("delete %s for project %s: %w", table, id, err)
		}
	}

	return tx.Commit()
}
