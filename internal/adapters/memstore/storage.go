// Package memstore provides a process-local session storage. Sessions do
// not survive a restart.
package memstore

import (
	"context"
	"sync"
)

// Storage is an in-memory ports.SessionStorage.
type Storage struct {
	mu     sync.RWMutex
	values map[string]string
}

// New returns an empty Storage.
func New() *Storage {
	return &Storage{values: make(map[string]string)}
}

func (s *Storage) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Storage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *Storage) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
