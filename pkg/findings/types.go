package findings

import (
	"context"
	"time"
)

// Finding is a persisted diagnostic produced while parsing or validating
// contract files. Each finding belongs to a validation session, so a whole
// run can be queried or pruned together.
type Finding struct {
	// Identity
	ID        string `json:"id"`         // UUID v4
	SessionID string `json:"session_id"` // Validation session UUID

	// Diagnostic content
	Severity string `json:"severity"` // "error", "warning", "debug"
	Message  string `json:"message"`
	DocsRef  string `json:"docs_ref,omitempty"`

	// Source location; File is empty for diagnostics without a location
	File   string `json:"file,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`

	// RecordedAt is when the finding was persisted.
	RecordedAt time.Time `json:"recorded_at"`
}

// Query defines filter parameters for querying findings.
type Query struct {
	// SessionID filters to a single validation session.
	SessionID string `json:"session_id,omitempty"`

	// Severity filters by diagnostic severity.
	Severity string `json:"severity,omitempty"`

	// File filters by source file path.
	File string `json:"file,omitempty"`

	// Time range on RecordedAt
	StartTime *time.Time `json:"start_time,omitempty"` // Inclusive
	EndTime   *time.Time `json:"end_time,omitempty"`   // Inclusive

	// Pagination
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// Storage is the persistence interface for findings.
type Storage interface {
	// Store persists a finding.
	Store(ctx context.Context, finding *Finding) error

	// Query retrieves findings matching the query filters.
	Query(ctx context.Context, query *Query) ([]*Finding, error)

	// Count returns the number of findings matching the query filters.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes findings matching the query filters and returns the
	// number of rows removed.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases resources held by the backend.
	Close() error
}
