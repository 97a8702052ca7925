package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hargabyte/liftoff/internal/launch"
)

// SaveProgress inserts or replaces a user's progress record for a project.
// Phase and step rows are replaced wholesale in a single transaction;
// partial updates are not worth the bookkeeping at this scale.
func (s *Store) SaveProgress(up *launch.UserProgress) error {
	if up.UserID == "" || up.ProjectID == "" {
		return fmt.Errorf("user ID and project ID are required")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	updatedAt := time.Now().UTC()
	if !up.UpdatedAt.IsZero() {
		updatedAt = up.UpdatedAt.UTC()
	}

	_, err = tx.Exec(`
		REPLACE INTO progress (user_id, project_id, current_phase, updated_at)
		VALUES (?, ?, ?, ?)`,
		up.UserID, up.ProjectID, up.CurrentPhase.String(),
		updatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save progress record: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM phase_progress WHERE user_id = ? AND project_id = ?`,
		up.UserID, up.ProjectID)
	if err != nil {
		return fmt.Errorf("clear phase rows: %w", err)
	}
	_, err = tx.Exec(`DELETE FROM steps WHERE user_id = ? AND project_id = ?`,
		up.UserID, up.ProjectID)
	if err != nil {
		return fmt.Errorf("clear step rows: %w", err)
	}

	phaseStmt, err := tx.Prepare(`
		INSERT INTO phase_progress (user_id, project_id, phase, completion, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare phase statement: %w", err)
	}
	defer phaseStmt.Close()

	stepStmt, err := tx.Prepare(`
		INSERT INTO steps (user_id, project_id, phase, step_id, position, status, data, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare step statement: %w", err)
	}
	defer stepStmt.Close()

	for _, phase := range launch.CanonicalPhases() {
		pp, ok := up.Phases[phase]
		if !ok {
			continue
		}

		_, err := phaseStmt.Exec(
			up.UserID, up.ProjectID, phase.String(), pp.Completion,
			formatNullableTime(pp.StartedAt), formatNullableTime(pp.CompletedAt))
		if err != nil {
			return fmt.Errorf("insert phase %s: %w", phase, err)
		}

		for i, step := range pp.Steps {
			data, err := marshalStepData(step.Data)
			if err != nil {
				return fmt.Errorf("marshal data for step %s/%s: %w", phase, step.ID, err)
			}
			_, err = stepStmt.Exec(
				up.UserID, up.ProjectID, phase.String(), step.ID, i,
				step.Status.String(), data, formatNullableTime(step.CompletedAt))
			if err != nil {
				return fmt.Errorf("insert step %s/%s: %w", phase, step.ID, err)
			}
		}
	}

	return tx.Commit()
}

// GetProgress retrieves a user's progress record for a project with phase
// and step rows attached. Rows with unparseable phase or status values are
// skipped rather than failing the whole record.
// Returns ErrNotFound if no record exists.
func (s *Store) GetProgress(userID, projectID string) (*launch.UserProgress, error) {
	up := &launch.UserProgress{
		UserID:    userID,
		ProjectID: projectID,
		Phases:    make(map[launch.Phase]launch.PhaseProgress),
	}

	var currentPhase sql.NullString
	var updatedAt string
	err := s.db.QueryRow(`
		SELECT current_phase, updated_at FROM progress
		WHERE user_id = ? AND project_id = ?`, userID, projectID).Scan(&currentPhase, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("progress for user %s, project %s: %w", userID, projectID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get progress record: %w", err)
	}

	if currentPhase.Valid {
		if phase, perr := launch.ParsePhase(currentPhase.String); perr == nil {
			up.CurrentPhase = phase
		}
	}
	up.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	if err := s.loadPhaseRows(up); err != nil {
		return nil, err
	}
	if err := s.loadStepRows(up); err != nil {
		return nil, err
	}

	return up, nil
}

func (s *Store) loadPhaseRows(up *launch.UserProgress) error {
	rows, err := s.db.Query(`
		SELECT phase, completion, started_at, completed_at FROM phase_progress
		WHERE user_id = ? AND project_id = ?`, up.UserID, up.ProjectID)
	if err != nil {
		return fmt.Errorf("query phase rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var phaseStr string
		var completion float64
		var startedAt, completedAt sql.NullString

		if err := rows.Scan(&phaseStr, &completion, &startedAt, &completedAt); err != nil {
			return fmt.Errorf("scan phase row: %w", err)
		}

		phase, err := launch.ParsePhase(phaseStr)
		if err != nil {
			continue
		}

		up.Phases[phase] = launch.PhaseProgress{
			Phase:       phase,
			Steps:       []launch.Step{},
			Completion:  completion,
			StartedAt:   parseNullableTime(startedAt),
			CompletedAt: parseNullableTime(completedAt),
		}
	}

	return rows.Err()
}

func (s *Store) loadStepRows(up *launch.UserProgress) error {
	rows, err := s.db.Query(`
		SELECT phase, step_id, status, data, completed_at FROM steps
		WHERE user_id = ? AND project_id = ?
		ORDER BY phase, position`, up.UserID, up.ProjectID)
	if err != nil {
		return fmt.Errorf("query step rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var phaseStr, stepID, statusStr string
		var data, completedAt sql.NullString

		if err := rows.Scan(&phaseStr, &stepID, &statusStr, &data, &completedAt); err != nil {
			return fmt.Errorf("scan step row: %w", err)
		}

		phase, err := launch.ParsePhase(phaseStr)
		if err != nil {
			continue
		}

		status, err := launch.ParseStepStatus(statusStr)
		if err != nil {
			status = launch.StatusNotStarted
		}

		step := launch.Step{
			ID:          stepID,
			Status:      status,
			CompletedAt: parseNullableTime(completedAt),
		}
		if data.Valid && data.String != "" {
			if err := json.Unmarshal([]byte(data.String), &step.Data); err != nil {
				return fmt.Errorf("unmarshal data for step %s/%s: %w", phase, stepID, err)
			}
		}

		// A step row without a matching phase row still gets an entry.
		pp, ok := up.Phases[phase]
		if !ok {
			pp = launch.PhaseProgress{Phase: phase, Steps: []launch.Step{}}
		}
		pp.Steps = append(pp.Steps, step)
		up.Phases[phase] = pp
	}

	return rows.Err()
}

// ListProgressUsers returns the user ids holding progress records for a
// project, most recently updated first.
func (s *Store) ListProgressUsers(projectID string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT user_id FROM progress WHERE project_id = ?
		ORDER BY updated_at DESC, user_id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query progress users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("scan progress user: %w", err)
		}
		users = append(users, userID)
	}

	return users, rows.Err()
}

// DeleteProgress removes a user's progress record for a project along with
// its phase and step rows.
// Returns ErrNotFound if no record exists.
func (s *Store) DeleteProgress(userID, projectID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`DELETE FROM progress WHERE user_id = ? AND project_id = ?`,
		userID, projectID)
	if err != nil {
		return fmt.Errorf("delete progress record: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("progress for user %s, project %s: %w", userID, projectID, ErrNotFound)
	}

	for _, table := range []string{"phase_progress", "steps"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE user_id = ? AND project_id = ?",
			userID, projectID); err != nil {
			return fmt.Errorf("delete %s rows: %w", table, err)
		}
	}

	return tx.Commit()
}

// formatNullableTime converts an optional timestamp for storage.
// Nil maps to SQL NULL.
func formatNullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// parseNullableTime converts a stored timestamp back to an optional value.
// NULL, empty, and unparseable values all map to nil.
func parseNullableTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// marshalStepData serializes captured step values for storage.
// Empty data maps to SQL NULL.
func marshalStepData(data map[string]string) (interface{}, error) {
	if len(data) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
