package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) SaveGame(_ context.Context, record Record) error {
	if err := validateRecord(record); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	record.Moves = append(record.Moves[:0:0], record.Moves...)
	s.records[record.ID] = record
	return nil
}

func (s *MemoryStore) GetGame(_ context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return record, nil
}

func (s *MemoryStore) ListGames(_ context.Context, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]Record, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].EndedAt.Equal(records[j].EndedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].EndedAt.After(records[j].EndedAt)
	})
	if limit = normalizeLimit(limit); len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
