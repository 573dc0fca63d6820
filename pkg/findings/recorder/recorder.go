package recorder

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"verity-hq/verity/pkg/contract/diag"
	"verity-hq/verity/pkg/findings"
)

// Recorder converts diagnostics from a run into durable findings.
//
// Each call to BeginSession opens a new validation session; every finding
// recorded under it carries the session's UUID, so a run's results can be
// queried or deleted as a unit.
type Recorder struct {
	storage findings.Storage
	logger  *slog.Logger
}

// Session identifies a single validation run.
type Session struct {
	ID        string
	StartedAt time.Time
}

// New creates a recorder backed by the given storage.
func New(storage findings.Storage) *Recorder {
	return &Recorder{
		storage: storage,
		logger:  slog.Default().With("component", "findings.recorder"),
	}
}

// BeginSession opens a new validation session.
func (r *Recorder) BeginSession() *Session {
	return &Session{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
	}
}

// Record persists every diagnostic in the sink under the session.
// Returns the number of findings stored; storage failures abort the batch.
func (r *Recorder) Record(ctx context.Context, session *Session, sink *diag.Sink) (int, error) {
	stored := 0
	for _, entry := range sink.Entries() {
		finding := toFinding(session, entry)
		if err := r.storage.Store(ctx, finding); err != nil {
			r.logger.Error("failed to store finding",
				"session_id", session.ID,
				"message", entry.Message,
				"error", err,
			)
			return stored, err
		}
		stored++
	}

	r.logger.Debug("recorded findings",
		"session_id", session.ID,
		"count", stored,
	)

	return stored, nil
}

// toFinding converts a diagnostic into its persisted form.
func toFinding(session *Session, entry *diag.Diagnostic) *findings.Finding {
	finding := &findings.Finding{
		ID:         uuid.New().String(),
		SessionID:  session.ID,
		Severity:   string(entry.Severity),
		Message:    entry.Message,
		DocsRef:    entry.DocsRef,
		RecordedAt: time.Now(),
	}
	if entry.Location != nil {
		finding.File = entry.Location.File
		finding.Line = entry.Location.Line
		finding.Column = entry.Location.Column
	}
	return finding
}
