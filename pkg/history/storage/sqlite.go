package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rustrial-os/confgen/pkg/history"
)

// SQLiteConfig contains configuration for the SQLite ledger backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:        ".confgen/history.db",
		WALMode:     true,
		BusyTimeout: 5 * time.Second,
	}
}

// SQLiteStorage implements the history.Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage opens the run ledger database, creating the file and
// its parent directory if they do not exist.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.Path == "" {
		return nil, history.NewStorageError("sqlite", "open", fmt.Errorf("database path cannot be empty"))
	}
	if config.BusyTimeout == 0 {
		config.BusyTimeout = 5 * time.Second
	}

	logger := slog.Default().With("component", "history.storage.sqlite")

	if dir := filepath.Dir(config.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, history.NewStorageError("sqlite", "open", err)
		}
	}

	db, err := sql.Open(sqliteDriver, config.Path)
	if err != nil {
		return nil, history.NewStorageError("sqlite", "open", err)
	}

	// SQLite only supports a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("run ledger opened",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

// initialize sets up the database schema and enables WAL mode.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return history.NewStorageError("sqlite", "enable_wal", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return history.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return history.NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return history.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return history.NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return history.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Store persists a run record to the database.
func (s *SQLiteStorage) Store(ctx context.Context, record *history.Record) error {
	query := `
		INSERT INTO runs (
			id, run_time,
			config_path, config_hash,
			output_path, output_hash, target,
			status, error, fields, duration_ms,
			tool_version
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	// Convert the empty string to NULL so "no error" is queryable
	var errorVal interface{}
	if record.Error != "" {
		errorVal = record.Error
	}

	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.RunTime,
		record.ConfigPath, record.ConfigHash,
		record.OutputPath, record.OutputHash, record.Target,
		record.Status, errorVal, record.Fields, record.Duration.Milliseconds(),
		record.ToolVersion,
	)
	if err != nil {
		return history.NewStorageError("sqlite", "store", err)
	}

	return nil
}

// Query retrieves run records matching the query filters, newest first.
func (s *SQLiteStorage) Query(ctx context.Context, query *history.Query) ([]*history.Record, error) {
	whereClause, args := s.buildWhereClause(query)

	sqlQuery := "SELECT * FROM runs"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}
	sqlQuery += " ORDER BY run_time DESC"

	if query.Limit > 0 {
		sqlQuery += fmt.Sprintf(" LIMIT %d", query.Limit)
	}
	if query.Offset > 0 {
		// OFFSET requires a LIMIT clause; -1 means unlimited
		if query.Limit <= 0 {
			sqlQuery += " LIMIT -1"
		}
		sqlQuery += fmt.Sprintf(" OFFSET %d", query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, history.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	records := []*history.Record{}
	for rows.Next() {
		record, err := s.scanRow(rows)
		if err != nil {
			return nil, history.NewStorageError("sqlite", "scan", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, history.NewStorageError("sqlite", "query", err)
	}

	return records, nil
}

// Count returns the number of run records matching the query filters.
func (s *SQLiteStorage) Count(ctx context.Context, query *history.Query) (int64, error) {
	whereClause, args := s.buildWhereClause(query)

	sqlQuery := "SELECT COUNT(*) FROM runs"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	var count int64
	err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count)
	if err != nil {
		return 0, history.NewStorageError("sqlite", "count", err)
	}

	return count, nil
}

// Delete removes run records matching the query filters.
// Returns the number of records deleted.
func (s *SQLiteStorage) Delete(ctx context.Context, query *history.Query) (int64, error) {
	whereClause, args := s.buildWhereClause(query)

	sqlQuery := "DELETE FROM runs"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	result, err := s.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, history.NewStorageError("sqlite", "delete", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, history.NewStorageError("sqlite", "delete", err)
	}

	return count, nil
}

// Close releases resources held by the storage backend.
func (s *SQLiteStorage) Close() error {
	// Flush the WAL into the main database file
	_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE);")

	if err := s.db.Close(); err != nil {
		return history.NewStorageError("sqlite", "close", err)
	}

	return nil
}

// buildWhereClause builds a SQL WHERE clause from query filters.
// Returns the WHERE clause (without the "WHERE" keyword) and the query arguments.
func (s *SQLiteStorage) buildWhereClause(query *history.Query) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if query.StartTime != nil {
		conditions = append(conditions, "run_time >= ?")
		args = append(args, *query.StartTime)
	}
	if query.EndTime != nil {
		conditions = append(conditions, "run_time <= ?")
		args = append(args, *query.EndTime)
	}

	if query.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, query.Status)
	}
	if query.Target != "" {
		conditions = append(conditions, "target = ?")
		args = append(args, query.Target)
	}
	if query.ConfigPath != "" {
		conditions = append(conditions, "config_path = ?")
		args = append(args, query.ConfigPath)
	}

	return strings.Join(conditions, " AND "), args
}

// scanRow scans a database row into a Record.
func (s *SQLiteStorage) scanRow(rows *sql.Rows) (*history.Record, error) {
	var record history.Record
	var errorVal sql.NullString
	var durationMs int64

	err := rows.Scan(
		&record.ID, &record.RunTime,
		&record.ConfigPath, &record.ConfigHash,
		&record.OutputPath, &record.OutputHash, &record.Target,
		&record.Status, &errorVal, &record.Fields, &durationMs,
		&record.ToolVersion,
	)
	if err != nil {
		return nil, err
	}

	if errorVal.Valid {
		record.Error = errorVal.String
	}
	record.Duration = time.Duration(durationMs) * time.Millisecond

	return &record, nil
}
