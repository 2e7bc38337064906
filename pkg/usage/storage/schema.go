package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the usage database
// schema. Timestamps are stored as integer Unix milliseconds so that
// range filters compare numerically regardless of time zone
// formatting.
const Schema = `
-- Usage records table
CREATE TABLE IF NOT EXISTS usage_records (
    id TEXT PRIMARY KEY,
    ts INTEGER NOT NULL,

    -- Request origin
    nick TEXT NOT NULL,
    channel TEXT NOT NULL,
    command TEXT NOT NULL,

    -- Outcome
    outcome TEXT NOT NULL,
    deny_reason TEXT,
    error_kind TEXT,
    latency_ms INTEGER NOT NULL,

    -- Accounting
    model TEXT,
    prompt_tokens INTEGER NOT NULL,
    completion_tokens INTEGER NOT NULL,
    tokens_estimated BOOLEAN NOT NULL,
    estimated_cost REAL NOT NULL,

    -- Content shape (never content)
    chunk_count INTEGER NOT NULL,
    prompt_hash TEXT,
    prompt_length INTEGER NOT NULL,
    response_length INTEGER NOT NULL
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

-- Indexes for common queries
CREATE INDEX IF NOT EXISTS idx_usage_ts ON usage_records(ts);
CREATE INDEX IF NOT EXISTS idx_usage_nick ON usage_records(nick);
CREATE INDEX IF NOT EXISTS idx_usage_channel ON usage_records(channel);
CREATE INDEX IF NOT EXISTS idx_usage_outcome ON usage_records(outcome);
CREATE INDEX IF NOT EXISTS idx_usage_command ON usage_records(command);
`

// InsertSchemaVersion inserts the schema version into the
// schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the
// database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
