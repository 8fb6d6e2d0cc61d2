package storage

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps the snapshot in process memory. Used for tests and for
// throwaway local runs.
type MemoryStore struct {
	mu    sync.Mutex
	body  []byte
	saves int
}

var _ SnapshotStore = (*MemoryStore)(nil)

// NewMemoryStore returns a store, optionally pre-seeded with a snapshot.
func NewMemoryStore(seed []byte) *MemoryStore {
	return &MemoryStore{body: slices.Clone(seed)}
}

func (s *MemoryStore) Load(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.body == nil {
		return nil, ErrNotFound
	}
	return slices.Clone(s.body), nil
}

func (s *MemoryStore) Save(_ context.Context, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.body = slices.Clone(body)
	if s.body == nil {
		s.body = []byte{}
	}
	s.saves++
	return nil
}

// Saves reports how many times Save was called.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
