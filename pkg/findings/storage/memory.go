package storage

import (
	"context"
	"sort"
	"sync"

	"verity-hq/verity/pkg/findings"
)

// MemoryStorage implements the Storage interface using an in-memory map.
// It is the default backend and suits single-run CLI usage and tests.
type MemoryStorage struct {
	records map[string]*findings.Finding
	mu      sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string]*findings.Finding),
	}
}

// Store persists a finding to memory.
func (s *MemoryStorage) Store(ctx context.Context, finding *findings.Finding) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy to avoid mutation through the caller's pointer
	recordCopy := *finding
	s.records[finding.ID] = &recordCopy

	return nil
}

// Query retrieves findings matching the query filters, oldest first.
func (s *MemoryStorage) Query(ctx context.Context, query *findings.Query) ([]*findings.Finding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*findings.Finding
	for _, record := range s.records {
		if s.matchesQuery(record, query) {
			recordCopy := *record
			results = append(results, &recordCopy)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].RecordedAt.Before(results[j].RecordedAt)
	})

	start := query.Offset
	if start > len(results) {
		return []*findings.Finding{}, nil
	}
	if query.Limit > 0 {
		end := start + query.Limit
		if end > len(results) {
			end = len(results)
		}
		results = results[start:end]
	} else if start > 0 {
		results = results[start:]
	}

	return results, nil
}

// Count returns the number of findings matching the query filters.
func (s *MemoryStorage) Count(ctx context.Context, query *findings.Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, record := range s.records {
		if s.matchesQuery(record, query) {
			count++
		}
	}
	return count, nil
}

// Delete removes findings matching the query filters.
func (s *MemoryStorage) Delete(ctx context.Context, query *findings.Query) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var toDelete []string
	for id, record := range s.records {
		if s.matchesQuery(record, query) {
			toDelete = append(toDelete, id)
		}
	}

	for _, id := range toDelete {
		delete(s.records, id)
	}

	return int64(len(toDelete)), nil
}

// Close releases resources held by the storage backend.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*findings.Finding)
	return nil
}

// matchesQuery checks if a finding matches the query filters.
func (s *MemoryStorage) matchesQuery(record *findings.Finding, query *findings.Query) bool {
	if query.SessionID != "" && record.SessionID != query.SessionID {
		return false
	}
	if query.Severity != "" && record.Severity != query.Severity {
		return false
	}
	if query.File != "" && record.File != query.File {
		return false
	}
	if query.StartTime != nil && record.RecordedAt.Before(*query.StartTime) {
		return false
	}
	if query.EndTime != nil && record.RecordedAt.After(*query.EndTime) {
		return false
	}
	return true
}

// Size returns the number of findings in storage (for testing).
func (s *MemoryStorage) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
