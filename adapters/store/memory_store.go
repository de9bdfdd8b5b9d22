package store

import (
	"context"
	"sync"

	"github.com/lil-gargs/portal/ports"
)

// MemoryStore is an in-memory implementation of the Persistence interface.
// State does not survive process restarts; intended for tests and ephemeral runs.
type MemoryStore struct {
	state *ports.PersistedState
	mu    sync.RWMutex
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save stores the session record
func (s *MemoryStore) Save(ctx context.Context, state ports.PersistedState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := state
	s.state = &copied
	return nil
}

// Load returns the stored record, or nil when none exists
func (s *MemoryStore) Load(ctx context.Context) (*ports.PersistedState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		return nil, nil
	}

	copied := *s.state
	return &copied, nil
}

// Clear removes the stored record
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = nil
	return nil
}
