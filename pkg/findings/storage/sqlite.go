package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"verity-hq/verity/pkg/findings"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

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
		Path:         "data/findings.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db            *sql.DB
	config        *SQLiteConfig
	preparedStmts map[string]*sql.Stmt
	mu            sync.RWMutex
	logger        *slog.Logger
}

// NewSQLiteStorage creates a new SQLite storage backend.
// It initializes the database schema and enables WAL mode if configured.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "findings.storage.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, findings.NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{
		db:            db,
		config:        config,
		preparedStmts: make(map[string]*sql.Stmt),
		logger:        logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite findings storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

// initialize sets up the database schema and enables WAL mode.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return findings.NewStorageError("sqlite", "enable_wal", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return findings.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return findings.NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return findings.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return findings.NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return findings.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Store persists a finding to the database.
func (s *SQLiteStorage) Store(ctx context.Context, finding *findings.Finding) error {
	query := `
		INSERT INTO findings (
			id, session_id, severity, message, docs_ref,
			file, line, col, recorded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	// Empty optional strings become NULL
	var docsRef, file interface{}
	if finding.DocsRef != "" {
		docsRef = finding.DocsRef
	}
	if finding.File != "" {
		file = finding.File
	}

	_, err := s.db.ExecContext(ctx, query,
		finding.ID, finding.SessionID, finding.Severity, finding.Message, docsRef,
		file, finding.Line, finding.Column, finding.RecordedAt,
	)
	if err != nil {
		return findings.NewStorageError("sqlite", "store", err)
	}

	return nil
}

// Query retrieves findings matching the query filters, oldest first.
func (s *SQLiteStorage) Query(ctx context.Context, query *findings.Query) ([]*findings.Finding, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT id, session_id, severity, message, docs_ref, file, line, col, recorded_at FROM findings"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}
	sqlQuery += " ORDER BY recorded_at ASC"

	if query.Limit > 0 {
		sqlQuery += fmt.Sprintf(" LIMIT %d", query.Limit)
	}
	if query.Offset > 0 {
		if query.Limit <= 0 {
			sqlQuery += " LIMIT -1"
		}
		sqlQuery += fmt.Sprintf(" OFFSET %d", query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, findings.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	records := []*findings.Finding{}
	for rows.Next() {
		record, err := scanRow(rows)
		if err != nil {
			return nil, findings.NewStorageError("sqlite", "scan", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, findings.NewStorageError("sqlite", "query", err)
	}

	return records, nil
}

// Count returns the number of findings matching the query filters.
func (s *SQLiteStorage) Count(ctx context.Context, query *findings.Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT COUNT(*) FROM findings"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, findings.NewStorageError("sqlite", "count", err)
	}

	return count, nil
}

// Delete removes findings matching the query filters.
// Returns the number of rows deleted.
func (s *SQLiteStorage) Delete(ctx context.Context, query *findings.Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "DELETE FROM findings"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	result, err := s.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, findings.NewStorageError("sqlite", "delete", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, findings.NewStorageError("sqlite", "delete", err)
	}

	return count, nil
}

// Close releases resources held by the storage backend.
func (s *SQLiteStorage) Close() error {
	s.mu.Lock()
	for _, stmt := range s.preparedStmts {
		stmt.Close()
	}
	s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return findings.NewStorageError("sqlite", "close", err)
	}

	s.logger.Info("SQLite findings storage closed")
	return nil
}

// buildWhereClause builds a SQL WHERE clause from query filters.
// Returns the clause (without "WHERE") and the query arguments.
func buildWhereClause(query *findings.Query) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if query.SessionID != "" {
		conditions = append(conditions, "session_id = ?")
		args = append(args, query.SessionID)
	}
	if query.Severity != "" {
		conditions = append(conditions, "severity = ?")
		args = append(args, query.Severity)
	}
	if query.File != "" {
		conditions = append(conditions, "file = ?")
		args = append(args, query.File)
	}
	if query.StartTime != nil {
		conditions = append(conditions, "recorded_at >= ?")
		args = append(args, *query.StartTime)
	}
	if query.EndTime != nil {
		conditions = append(conditions, "recorded_at <= ?")
		args = append(args, *query.EndTime)
	}

	return strings.Join(conditions, " AND "), args
}

// scanRow scans a database row into a Finding.
func scanRow(rows *sql.Rows) (*findings.Finding, error) {
	var record findings.Finding
	var docsRef, file sql.NullString

	err := rows.Scan(
		&record.ID, &record.SessionID, &record.Severity, &record.Message, &docsRef,
		&file, &record.Line, &record.Column, &record.RecordedAt,
	)
	if err != nil {
		return nil, err
	}

	if docsRef.Valid {
		record.DocsRef = docsRef.String
	}
	if file.Valid {
		record.File = file.String
	}

	return &record, nil
}
