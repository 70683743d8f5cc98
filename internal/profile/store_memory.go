package profile

import (
	"context"
	"sync"
)

type MemStore struct {
	mu sync.RWMutex
	m  map[string]Profile
}

func NewMemStore() *MemStore {
	return &MemStore{m: make(map[string]Profile)}
}

func (s *MemStore) Ping(context.Context) error { return nil }

func (s *MemStore) Write(_ context.Context, accountID string, p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[accountID] = p
	return nil
}

func (s *MemStore) Get(_ context.Context, accountID string) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.m[accountID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (s *MemStore) Delete(_ context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.m[accountID]; !ok {
		return ErrNotFound
	}
	delete(s.m, accountID)
	return nil
}
