package kv

import (
	"context"
	"sync"
)

// MemoryStore keeps values in process memory. It backs tests and the
// memory storage driver; contents do not survive a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte

	// FailWrites makes every Set return the supplied error. Tests use it
	// to verify the persist-then-commit discipline.
	FailWrites error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{records: map[string][]byte{}}
}

// Get returns the stored value, reporting ok=false for never-written keys.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.records[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Set stores a copy of the value, fully replacing any prior value.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	s.records[key] = stored
	return nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

// Len reports how many keys have been written.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
