// Package store provides SQLite-backed persistence for liftoff state: launch
// projects, per-user progress records, and archived reports. The database
// lives at .liftoff/liftoff.db in the workspace.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested record does not exist. Callers
// should test with errors.Is since lookups wrap it with record context.
var ErrNotFound = errors.New("record not found")

// Store manages the .liftoff/liftoff.db SQLite database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open opens or creates the store database at the specified .liftoff
// directory. It auto-creates the directory if it doesn't exist and
// initializes the schema if the database is new.
func Open(liftoffDir string) (*Store, error) {
	// Create .liftoff directory if it doesn't exist
	if err := os.MkdirAll(liftoffDir, 0755); err != nil {
		return nil, fmt.Errorf("create .liftoff directory: %w", err)
	}

	dbPath := filepath.Join(liftoffDir, "liftoff.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open liftoff db: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	store := &Store{db: db, dbPath: dbPath}

	// Initialize schema
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

// OpenDefault opens the store in the default .liftoff directory in the
// current working directory.
func OpenDefault() (*Store, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	return Open(filepath.Join(cwd, ".liftoff"))
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying database connection for advanced operations.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Stats returns store statistics.
type Stats struct {
	ProjectCount  int64
	ProgressCount int64
	ReportCount   int64
	SizeBytes     int64
}

// GetStats returns statistics about the store contents.
func (s *Store) GetStats() (*Stats, error) {
	var stats Stats

	err := s.db.QueryRow("SELECT COUNT(*) FROM projects").Scan(&stats.ProjectCount)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}

	err = s.db.QueryRow("SELECT COUNT(*) FROM progress").Scan(&stats.ProgressCount)
	if err != nil {
		return nil, fmt.Errorf("count progress records: %w", err)
	}

	err = s.db.QueryRow("SELECT COUNT(*) FROM reports").Scan(&stats.ReportCount)
	if err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}

	if info, err := os.Stat(s.dbPath); err == nil {
		stats.SizeBytes = info.Size()
	}

	return &stats, nil
}
