package store

// schemaSQL defines the SQLite schema for the liftoff database.
const schemaSQL = `
-- launch projects
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,              -- proj-starter-app
    owner_id TEXT,
    name TEXT NOT NULL,
    description TEXT,
    industry TEXT,                    -- fintech, healthtech, ...
    target_market TEXT,
    stage TEXT,                       -- idea, mvp, growth
    facts TEXT,                       -- JSON document of per-phase facts
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

-- one progress record per user and project
CREATE TABLE IF NOT EXISTS progress (
    user_id TEXT NOT NULL,
    project_id TEXT NOT NULL,
    current_phase TEXT,               -- validation, definition, ...
    updated_at TEXT NOT NULL,
    PRIMARY KEY (user_id, project_id)
);

-- per-phase completion state for a progress record
CREATE TABLE IF NOT EXISTS phase_progress (
    user_id TEXT NOT NULL,
    project_id TEXT NOT NULL,
    phase TEXT NOT NULL,
    completion REAL NOT NULL DEFAULT 0,
    started_at TEXT,
    completed_at TEXT,
    PRIMARY KEY (user_id, project_id, phase)
);

-- individual steps worked within a phase
CREATE TABLE IF NOT EXISTS steps (
    user_id TEXT NOT NULL,
    project_id TEXT NOT NULL,
    phase TEXT NOT NULL,
    step_id TEXT NOT NULL,            -- value-proposition, tech-stack, ...
    position INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'not_started',
    data TEXT,                        -- JSON object of captured values
    completed_at TEXT,
    PRIMARY KEY (user_id, project_id, phase, step_id)
);

-- archived generated reports
CREATE TABLE IF NOT EXISTS reports (
    id TEXT PRIMARY KEY,              -- report-1742040000000-a1b2c3d4
    project_id TEXT NOT NULL,
    template_id TEXT NOT NULL,
    title TEXT,
    generated_at TEXT NOT NULL,
    content TEXT NOT NULL             -- JSON document of the report body
);

-- Indexes for performance
CREATE INDEX IF NOT EXISTS idx_projects_owner ON projects(owner_id);
CREATE INDEX IF NOT EXISTS idx_phase_progress_record ON phase_progress(user_id, project_id);
CREATE INDEX IF NOT EXISTS idx_steps_record ON steps(user_id, project_id, phase);
CREATE INDEX IF NOT EXISTS idx_reports_project ON reports(project_id);
CREATE INDEX IF NOT EXISTS idx_reports_generated ON reports(generated_at DESC);
`

// initSchema creates the database tables and indexes if they don't exist.
func (s *Store) initSchema() error {
	_, err := s.db.Exec(schemaSQL)
	return err
}
