package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/hupe1980/agentville/world"
)

// InMemoryStore is a trivial in-process world.Store useful for tests,
// examples and single-process prototypes. States are stored as JSON bytes so
// save and load isolate the caller from the stored copy exactly like a
// durable backend would.
//
// This implementation is intentionally minimal; it does not enforce
// retention limits or quotas. For production, prefer a durable
// implementation (sqlite, redis) that survives process restarts.
type InMemoryStore struct {
	mu     sync.RWMutex
	states map[string][]byte
	metas  map[string]world.Metadata
}

// NewInMemoryStore returns an empty in-memory world store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		states: make(map[string][]byte),
		metas:  make(map[string]world.Metadata),
	}
}

// Save stores (or overwrites) the state for the given id.
func (s *InMemoryStore) Save(_ context.Context, id string, state *world.State) error {
	if state == nil {
		return fmt.Errorf("save world %q: nil state", id)
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("save world %q: %w", id, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[id] = data
	s.metas[id] = world.Metadata{ID: id, Name: state.Config.Name, UpdatedAt: state.UpdatedAt}
	return nil
}

// Load returns a fresh copy of the stored state or world.ErrNotFound.
func (s *InMemoryStore) Load(_ context.Context, id string) (*world.State, error) {
	s.mu.RLock()
	data, ok := s.states[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("load world %q: %w", id, world.ErrNotFound)
	}
	var state world.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("load world %q: %w", id, err)
	}
	return &state, nil
}

// Delete removes the state, reporting whether it existed.
func (s *InMemoryStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.states[id]; !ok {
		return false, nil
	}
	delete(s.states, id)
	delete(s.metas, id)
	return true, nil
}

// List returns metadata for every stored world, sorted by id for
// determinism.
func (s *InMemoryStore) List(_ context.Context) ([]world.Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	metas := make([]world.Metadata, 0, len(s.metas))
	for _, m := range s.metas {
		metas = append(metas, m)
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].ID < metas[j].ID })
	return metas, nil
}

// Exists reports whether a state is stored under the id.
func (s *InMemoryStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.states[id]
	return ok, nil
}
