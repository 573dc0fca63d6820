package retention

import (
	"context"
	"fmt"
	"testing"
	"time"

	"verity-hq/verity/pkg/findings"
	"verity-hq/verity/pkg/findings/storage"
)

func seedFindings(t *testing.T, s *storage.MemoryStorage, n int, recordedAt time.Time) {
	t.Helper()
	for i := 0; i < n; i++ {
		f := &findings.Finding{
			ID:         fmt.Sprintf("f-%d-%d", recordedAt.Unix(), i),
			SessionID:  "s1",
			Severity:   "error",
			Message:    "Datasource 'x' was declared 2 times",
			RecordedAt: recordedAt.Add(time.Duration(i) * time.Second),
		}
		if err := s.Store(context.Background(), f); err != nil {
			t.Fatal(err)
		}
	}
}

func TestPruner_PruneByAge(t *testing.T) {
	s := storage.NewMemoryStorage()
	seedFindings(t, s, 3, time.Now().AddDate(0, 0, -100))
	seedFindings(t, s, 2, time.Now())

	p := NewPruner(s, &Config{RetentionDays: 90})

	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 3 {
		t.Errorf("Prune() = %d, want 3", deleted)
	}
	if s.Size() != 2 {
		t.Errorf("remaining = %d, want 2", s.Size())
	}
}

func TestPruner_PruneByCount(t *testing.T) {
	s := storage.NewMemoryStorage()
	seedFindings(t, s, 5, time.Now().Add(-time.Hour))

	p := NewPruner(s, &Config{RetentionDays: 0, MaxRecords: 2})

	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 3 {
		t.Errorf("Prune() = %d, want 3", deleted)
	}
	if s.Size() != 2 {
		t.Errorf("remaining = %d, want 2", s.Size())
	}
}

func TestPruner_NothingToPrune(t *testing.T) {
	s := storage.NewMemoryStorage()
	seedFindings(t, s, 2, time.Now())

	p := NewPruner(s, &Config{RetentionDays: 90, MaxRecords: 10})

	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 0 {
		t.Errorf("Prune() = %d, want 0", deleted)
	}
}

func TestPruner_ZeroRetentionKeepsForever(t *testing.T) {
	s := storage.NewMemoryStorage()
	seedFindings(t, s, 3, time.Now().AddDate(-1, 0, 0))

	p := NewPruner(s, &Config{RetentionDays: 0})

	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 0 {
		t.Errorf("Prune() = %d with retention disabled, want 0", deleted)
	}
	if s.Size() != 3 {
		t.Errorf("remaining = %d, want 3", s.Size())
	}
}
