package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the run ledger schema.
const Schema = `
-- Generation run records
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,

    -- Timestamps
    run_time TIMESTAMP NOT NULL,

    -- Source document
    config_path TEXT,
    config_hash TEXT,

    -- Generated output
    output_path TEXT,
    output_hash TEXT,
    target TEXT NOT NULL,

    -- Outcome
    status TEXT NOT NULL,
    error TEXT,
    fields INTEGER,
    duration_ms INTEGER,

    -- Tool info
    tool_version TEXT
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

-- Indexes for common queries
CREATE INDEX IF NOT EXISTS idx_runs_run_time ON runs(run_time);
CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_runs_target ON runs(target);
`

// InsertSchemaVersion inserts the schema version into the schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
