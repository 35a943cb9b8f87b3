package memory

import (
	"context"
	"fmt"
	"sync"

	"healthanchor/internal/streak"
	"healthanchor/pkg/platform/sentinel"
)

// Store keeps streak states in memory. The mutex is held for the whole
// read-modify-write in Update, which is the per-key serialization the streak
// arithmetic relies on (states are tiny and transitions are pure, so the
// critical section is cheap).
type Store struct {
	mu     sync.RWMutex
	states map[string]streak.State
}

// New constructs an empty in-memory streak store.
func New() *Store {
	return &Store{states: make(map[string]streak.State)}
}

func (s *Store) Find(_ context.Context, actorID string) (streak.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[actorID]
	if !ok {
		return streak.State{}, fmt.Errorf("streak for %s: %w", actorID, sentinel.ErrNotFound)
	}
	return state, nil
}

func (s *Store) Update(_ context.Context, actorID string, fn func(streak.State) (streak.State, error)) (streak.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.states[actorID]
	if !ok {
		current = streak.State{ActorID: actorID}
	}
	next, err := fn(current)
	if err != nil {
		return streak.State{}, err
	}
	next.ActorID = actorID
	s.states[actorID] = next
	return next, nil
}
