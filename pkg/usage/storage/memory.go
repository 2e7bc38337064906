package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"mercator-hq/europa/pkg/usage"
)

// MemoryStore implements usage.Store using an in-memory map. It backs
// the "memory" config backend and the test suites; records do not
// survive a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*usage.Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*usage.Record),
	}
}

// Insert persists one record.
func (s *MemoryStore) Insert(ctx context.Context, rec *usage.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Store a copy so callers cannot mutate stored state.
	recCopy := *rec
	s.records[rec.ID] = &recCopy

	return nil
}

// Query returns the records matching q, oldest first.
func (s *MemoryStore) Query(ctx context.Context, q *usage.Query) ([]*usage.Record, error) {
	if q == nil {
		q = &usage.Query{}
	}

	s.mu.RLock()
	var results []*usage.Record
	for _, rec := range s.records {
		if matchesQuery(rec, q) {
			recCopy := *rec
			results = append(results, &recCopy)
		}
	}
	s.mu.RUnlock()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Timestamp.Before(results[j].Timestamp)
	})

	// Apply pagination after sorting.
	if q.Offset > 0 {
		if q.Offset >= len(results) {
			return nil, nil
		}
		results = results[q.Offset:]
	}
	if q.Limit > 0 && q.Limit < len(results) {
		results = results[:q.Limit]
	}

	return results, nil
}

// Count returns the number of records matching q.
func (s *MemoryStore) Count(ctx context.Context, q *usage.Query) (int64, error) {
	if q == nil {
		q = &usage.Query{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, rec := range s.records {
		if matchesQuery(rec, q) {
			count++
		}
	}

	return count, nil
}

// DeleteBefore removes records with a timestamp before cutoff.
func (s *MemoryStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, rec := range s.records {
		if rec.Timestamp.Before(cutoff) {
			delete(s.records, id)
			deleted++
		}
	}

	return deleted, nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close discards all records.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*usage.Record)
	return nil
}

// matchesQuery checks whether a record matches the query filters.
func matchesQuery(rec *usage.Record, q *usage.Query) bool {
	if q.StartTime != nil && rec.Timestamp.Before(*q.StartTime) {
		return false
	}
	if q.EndTime != nil && rec.Timestamp.After(*q.EndTime) {
		return false
	}
	if q.Nick != "" && rec.Nick != q.Nick {
		return false
	}
	if q.Channel != "" && rec.Channel != q.Channel {
		return false
	}
	if q.Command != "" && rec.Command != q.Command {
		return false
	}
	if q.Outcome != "" && rec.Outcome != q.Outcome {
		return false
	}

	return true
}

// Size returns the number of stored records (for testing).
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// GetByID returns a copy of a stored record, or nil (for testing).
func (s *MemoryStore) GetByID(id string) *usage.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil
	}

	recCopy := *rec
	return &recCopy
}
