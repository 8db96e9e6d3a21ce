// Package store provides the conversation history backends.
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

// MemoryStore keeps conversation histories in process memory. Histories do
// not survive a restart; use the sqlite backend for persistence.
type MemoryStore struct {
	mu            sync.RWMutex
	conversations map[string][]domain.Turn
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{conversations: make(map[string][]domain.Turn)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) ([]domain.Turn, error) {
	if id == "" {
		return []domain.Turn{}, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns, ok := s.conversations[id]
	if !ok {
		return []domain.Turn{}, nil
	}
	// Copy so callers can mutate their slice without racing the store.
	out := make([]domain.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, id string, turns []domain.Turn) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	stored := make([]domain.Turn, len(turns))
	copy(stored, turns)

	s.mu.Lock()
	s.conversations[id] = stored
	s.mu.Unlock()
	return id, nil
}
