package storage

import (
	"context"
	"sort"
	"sync"

	"rustrial-os/confgen/pkg/history"
)

// MemoryStorage implements the history.Storage interface using an in-memory map.
// This implementation is intended for testing only and should not be used in production.
type MemoryStorage struct {
	records map[string]*history.Record
	mu      sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string]*history.Record),
	}
}

// Store persists a run record to memory.
func (s *MemoryStorage) Store(ctx context.Context, record *history.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Create a copy to avoid mutation
	recordCopy := *record
	s.records[record.ID] = &recordCopy

	return nil
}

// Query retrieves run records matching the query filters, newest first.
func (s *MemoryStorage) Query(ctx context.Context, query *history.Query) ([]*history.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []*history.Record{}
	for _, record := range s.records {
		if s.matchesQuery(record, query) {
			// Create a copy to avoid mutation
			recordCopy := *record
			results = append(results, &recordCopy)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].RunTime.After(results[j].RunTime)
	})

	// Apply pagination
	start := query.Offset
	if start > len(results) {
		return []*history.Record{}, nil
	}
	results = results[start:]

	if query.Limit > 0 && query.Limit < len(results) {
		results = results[:query.Limit]
	}

	return results, nil
}

// Count returns the number of run records matching the query filters.
func (s *MemoryStorage) Count(ctx context.Context, query *history.Query) (int64, error) {
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

// Delete removes run records matching the query filters.
func (s *MemoryStorage) Delete(ctx context.Context, query *history.Query) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64

	toDelete := []string{}
	for id, record := range s.records {
		if s.matchesQuery(record, query) {
			toDelete = append(toDelete, id)
		}
	}

	for _, id := range toDelete {
		delete(s.records, id)
		deleted++
	}

	return deleted, nil
}

// Close releases resources held by the storage backend.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*history.Record)
	return nil
}

// matchesQuery checks if a record matches the query filters.
func (s *MemoryStorage) matchesQuery(record *history.Record, query *history.Query) bool {
	if query.StartTime != nil && record.RunTime.Before(*query.StartTime) {
		return false
	}
	if query.EndTime != nil && record.RunTime.After(*query.EndTime) {
		return false
	}

	if query.Status != "" && record.Status != query.Status {
		return false
	}
	if query.Target != "" && record.Target != query.Target {
		return false
	}
	if query.ConfigPath != "" && record.ConfigPath != query.ConfigPath {
		return false
	}

	return true
}

// Clear removes all records from storage (for testing).
func (s *MemoryStorage) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*history.Record)
}

// GetByID retrieves a single run record by ID (for testing).
func (s *MemoryStorage) GetByID(id string) *history.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil
	}

	recordCopy := *record
	return &recordCopy
}

// Size returns the number of records in storage (for testing).
func (s *MemoryStorage) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
