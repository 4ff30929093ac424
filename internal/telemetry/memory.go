package telemetry

import (
	"context"
	"slices"
	"sync"
)

type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]Record)}
}

func (s *MemoryStore) Record(_ context.Context, sessionID string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[sessionID] = append(s.records[sessionID], rec)
	return nil
}

func (s *MemoryStore) Snapshot(context.Context) (map[string][]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]Record, len(s.records))
	for sid, recs := range s.records {
		out[sid] = slices.Clone(recs)
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
