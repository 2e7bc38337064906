// Package storage provides the persistence backends for usage
// records: SQLite for production and an in-memory store for tests.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"mercator-hq/europa/pkg/usage"
)

// SQLiteConfig contains configuration for the SQLite store.
type SQLiteConfig struct {
	// Path is the database file path. Parent directories are created
	// as needed.
	// Default: "data/usage.db"
	Path string

	// BusyTimeout is how long a statement waits on a locked database
	// before failing.
	// Default: 5s
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:        "data/usage.db",
		BusyTimeout: 5 * time.Second,
	}
}

// SQLiteStore implements usage.Store backed by a SQLite database in
// WAL mode. The connection pool is pinned to a single connection:
// SQLite allows one writer at a time, and the bot's write volume is
// bounded by its own rate limits, so one serialized connection avoids
// lock contention entirely.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements for the hot paths. Query and Count build
	// their SQL dynamically from the filter set.
	insertStmt       *sql.Stmt
	deleteBeforeStmt *sql.Stmt

	closeOnce sync.Once
}

// NewSQLiteStore opens (creating if necessary) the usage database and
// prepares its schema and statements.
func NewSQLiteStore(cfg *SQLiteConfig) (*SQLiteStore, error) {
	if cfg == nil {
		cfg = DefaultSQLiteConfig()
	}
	if cfg.Path == "" {
		return nil, usage.NewStorageError("sqlite", "open",
			errors.New("database path cannot be empty"))
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, usage.NewStorageError("sqlite", "open",
				fmt.Errorf("failed to create database directory: %w", err))
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, usage.NewStorageError("sqlite", "open",
			fmt.Errorf("failed to open database: %w", err))
	}

	// Single writer, no idle churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{db: db}

	if err := s.initialize(cfg); err != nil {
		db.Close()
		return nil, err
	}

	if err := s.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// initialize applies pragmas, creates the schema, and verifies the
// schema version.
func (s *SQLiteStore) initialize(cfg *SQLiteConfig) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		fmt.Sprintf("PRAGMA busy_timeout=%d;", cfg.BusyTimeout.Milliseconds()),
		"PRAGMA synchronous=NORMAL;",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return usage.NewStorageError("sqlite", "initialize",
				fmt.Errorf("failed to apply %q: %w", strings.TrimSpace(pragma), err))
		}
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return usage.NewStorageError("sqlite", "initialize",
			fmt.Errorf("failed to create schema: %w", err))
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return usage.NewStorageError("sqlite", "initialize",
			fmt.Errorf("failed to record schema version: %w", err))
	}

	var version int
	if err := s.db.QueryRow(GetSchemaVersion).Scan(&version); err != nil {
		return usage.NewStorageError("sqlite", "initialize",
			fmt.Errorf("failed to read schema version: %w", err))
	}
	if version != SchemaVersion {
		return usage.NewStorageError("sqlite", "initialize",
			fmt.Errorf("schema version mismatch: database has %d, expected %d",
				version, SchemaVersion))
	}

	return nil
}

// prepareStatements prepares the fixed-shape statements for reuse.
func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertStmt, err = s.db.Prepare(`
		INSERT INTO usage_records (
			id, ts, nick, channel, command,
			outcome, deny_reason, error_kind, latency_ms,
			model, prompt_tokens, completion_tokens, tokens_estimated, estimated_cost,
			chunk_count, prompt_hash, prompt_length, response_length
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return usage.NewStorageError("sqlite", "prepare",
			fmt.Errorf("failed to prepare insert: %w", err))
	}

	s.deleteBeforeStmt, err = s.db.Prepare(`
		DELETE FROM usage_records WHERE ts < ?
	`)
	if err != nil {
		return usage.NewStorageError("sqlite", "prepare",
			fmt.Errorf("failed to prepare delete: %w", err))
	}

	return nil
}

// Insert persists one record.
func (s *SQLiteStore) Insert(ctx context.Context, rec *usage.Record) error {
	if rec == nil {
		return usage.NewStorageError("sqlite", "insert",
			errors.New("record cannot be nil"))
	}
	if rec.ID == "" {
		return usage.NewStorageError("sqlite", "insert",
			errors.New("record ID cannot be empty"))
	}

	_, err := s.insertStmt.ExecContext(ctx,
		rec.ID,
		rec.Timestamp.UnixMilli(),
		rec.Nick,
		rec.Channel,
		rec.Command,
		string(rec.Outcome),
		nullString(rec.DenyReason),
		nullString(rec.ErrorKind),
		rec.Latency.Milliseconds(),
		nullString(rec.Model),
		rec.PromptTokens,
		rec.CompletionTokens,
		rec.TokensEstimated,
		rec.EstimatedCost,
		rec.ChunkCount,
		nullString(rec.PromptHash),
		rec.PromptLength,
		rec.ResponseLength,
	)
	if err != nil {
		return usage.NewStorageError("sqlite", "insert", err)
	}

	return nil
}

// Query returns the records matching q, oldest first.
func (s *SQLiteStore) Query(ctx context.Context, q *usage.Query) ([]*usage.Record, error) {
	if q == nil {
		q = &usage.Query{}
	}

	sqlQuery := `SELECT id, ts, nick, channel, command,
		outcome, deny_reason, error_kind, latency_ms,
		model, prompt_tokens, completion_tokens, tokens_estimated, estimated_cost,
		chunk_count, prompt_hash, prompt_length, response_length
		FROM usage_records`

	where, args := buildWhereClause(q)
	sqlQuery += where
	sqlQuery += " ORDER BY ts ASC"

	if q.Limit > 0 {
		sqlQuery += fmt.Sprintf(" LIMIT %d OFFSET %d", q.Limit, q.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, usage.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	var records []*usage.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, usage.NewStorageError("sqlite", "query", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, usage.NewStorageError("sqlite", "query", err)
	}

	return records, nil
}

// Count returns the number of records matching q.
func (s *SQLiteStore) Count(ctx context.Context, q *usage.Query) (int64, error) {
	if q == nil {
		q = &usage.Query{}
	}

	sqlQuery := "SELECT COUNT(*) FROM usage_records"
	where, args := buildWhereClause(q)
	sqlQuery += where

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, usage.NewStorageError("sqlite", "count", err)
	}

	return count, nil
}

// DeleteBefore removes records with a timestamp before cutoff.
func (s *SQLiteStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.deleteBeforeStmt.ExecContext(ctx, cutoff.UnixMilli())
	if err != nil {
		return 0, usage.NewStorageError("sqlite", "delete", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, usage.NewStorageError("sqlite", "delete", err)
	}

	return deleted, nil
}

// Ping reports whether the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return usage.NewStorageError("sqlite", "ping", err)
	}
	return nil
}

// Close checkpoints the WAL and closes the database. Close is
// idempotent and safe to call multiple times.
func (s *SQLiteStore) Close() error {
	var closeErr error

	s.closeOnce.Do(func() {
		if s.insertStmt != nil {
			s.insertStmt.Close()
		}
		if s.deleteBeforeStmt != nil {
			s.deleteBeforeStmt.Close()
		}

		if s.db != nil {
			// Fold the WAL back into the main file before closing.
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			closeErr = s.db.Close()
		}
	})

	return closeErr
}

// buildWhereClause builds the WHERE clause and arguments for a query.
func buildWhereClause(q *usage.Query) (string, []any) {
	var conds []string
	var args []any

	if q.StartTime != nil {
		conds = append(conds, "ts >= ?")
		args = append(args, q.StartTime.UnixMilli())
	}
	if q.EndTime != nil {
		conds = append(conds, "ts <= ?")
		args = append(args, q.EndTime.UnixMilli())
	}
	if q.Nick != "" {
		conds = append(conds, "nick = ?")
		args = append(args, q.Nick)
	}
	if q.Channel != "" {
		conds = append(conds, "channel = ?")
		args = append(args, q.Channel)
	}
	if q.Command != "" {
		conds = append(conds, "command = ?")
		args = append(args, q.Command)
	}
	if q.Outcome != "" {
		conds = append(conds, "outcome = ?")
		args = append(args, string(q.Outcome))
	}

	if len(conds) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

// scanRecord scans one row into a usage record.
func scanRecord(rows *sql.Rows) (*usage.Record, error) {
	var (
		rec        usage.Record
		ts         int64
		outcome    string
		denyReason sql.NullString
		errorKind  sql.NullString
		latencyMS  int64
		model      sql.NullString
		promptHash sql.NullString
	)

	err := rows.Scan(
		&rec.ID,
		&ts,
		&rec.Nick,
		&rec.Channel,
		&rec.Command,
		&outcome,
		&denyReason,
		&errorKind,
		&latencyMS,
		&model,
		&rec.PromptTokens,
		&rec.CompletionTokens,
		&rec.TokensEstimated,
		&rec.EstimatedCost,
		&rec.ChunkCount,
		&promptHash,
		&rec.PromptLength,
		&rec.ResponseLength,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}

	rec.Timestamp = time.UnixMilli(ts).UTC()
	rec.Outcome = usage.Outcome(outcome)
	rec.DenyReason = denyReason.String
	rec.ErrorKind = errorKind.String
	rec.Latency = time.Duration(latencyMS) * time.Millisecond
	rec.Model = model.String
	rec.PromptHash = promptHash.String

	return &rec, nil
}

// nullString maps "" to NULL so optional columns stay NULL instead of
// accumulating empty strings.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
