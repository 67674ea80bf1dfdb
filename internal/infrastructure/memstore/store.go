// Package memstore provides an in-memory port.EntityStore, used by tests and
// the demo wiring when no database path is configured.
package memstore

import (
	"context"
	"sync"

	"github.com/bnema/hoard/internal/application/port"
	"github.com/bnema/hoard/internal/domain/entity"
)

// Store is a mutex-guarded map implementing port.EntityStore.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entity.Entity
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{entries: make(map[string]*entity.Entity)}
}

func (s *Store) Get(_ context.Context, id string) (*entity.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	return e.Clone(), nil
}

func (s *Store) Put(_ context.Context, e *entity.Entity) error {
	if err := e.Valid(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.ID] = e.Clone()
	return nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

func (s *Store) DeleteAll(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*entity.Entity)
	return nil
}

// Len returns the number of persisted entities.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
