package storage

import (
	"context"
	"testing"
	"time"

	"verity-hq/verity/pkg/findings"
)

func testFinding(id, session, severity string, recordedAt time.Time) *findings.Finding {
	return &findings.Finding{
		ID:         id,
		SessionID:  session,
		Severity:   severity,
		Message:    "Datasource 'x' is not defined",
		File:       "contract.yml",
		Line:       3,
		Column:     5,
		RecordedAt: recordedAt,
	}
}

func TestMemoryStorage_StoreAndQuery(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()
	now := time.Now()

	records := []*findings.Finding{
		testFinding("f1", "s1", "error", now.Add(-2*time.Hour)),
		testFinding("f2", "s1", "warning", now.Add(-1*time.Hour)),
		testFinding("f3", "s2", "error", now),
	}
	for _, r := range records {
		if err := s.Store(ctx, r); err != nil {
			t.Fatalf("Store() error = %v", err)
		}
	}

	tests := []struct {
		name  string
		query *findings.Query
		want  int
	}{
		{name: "all", query: &findings.Query{}, want: 3},
		{name: "by session", query: &findings.Query{SessionID: "s1"}, want: 2},
		{name: "by severity", query: &findings.Query{Severity: "error"}, want: 2},
		{name: "session and severity", query: &findings.Query{SessionID: "s1", Severity: "error"}, want: 1},
		{name: "no match", query: &findings.Query{SessionID: "absent"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Query(ctx, tt.query)
			if err != nil {
				t.Fatalf("Query() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("Query() returned %d findings, want %d", len(got), tt.want)
			}
		})
	}
}

func TestMemoryStorage_QueryOrderAndPagination(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()
	now := time.Now()

	s.Store(ctx, testFinding("newest", "s1", "error", now))
	s.Store(ctx, testFinding("oldest", "s1", "error", now.Add(-2*time.Hour)))
	s.Store(ctx, testFinding("middle", "s1", "error", now.Add(-1*time.Hour)))

	got, err := s.Query(ctx, &findings.Query{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	wantOrder := []string{"oldest", "middle", "newest"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("Query()[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}

	got, err = s.Query(ctx, &findings.Query{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "middle" {
		t.Errorf("Query(limit=1, offset=1) = %v, want [middle]", got)
	}
}

func TestMemoryStorage_CountAndDelete(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()
	now := time.Now()

	s.Store(ctx, testFinding("f1", "s1", "error", now.Add(-48*time.Hour)))
	s.Store(ctx, testFinding("f2", "s1", "error", now))

	count, err := s.Count(ctx, &findings.Query{})
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}

	cutoff := now.Add(-24 * time.Hour)
	deleted, err := s.Delete(ctx, &findings.Query{EndTime: &cutoff})
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("Delete() = %d, want 1", deleted)
	}
	if s.Size() != 1 {
		t.Errorf("Size() = %d after delete, want 1", s.Size())
	}
}

func TestMemoryStorage_StoreCopies(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	original := testFinding("f1", "s1", "error", time.Now())
	s.Store(ctx, original)
	original.Message = "mutated"

	got, err := s.Query(ctx, &findings.Query{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if got[0].Message == "mutated" {
		t.Error("stored finding shares memory with caller's pointer")
	}
}
