package auth

import (
	"context"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

type MemStore struct {
	mu      sync.RWMutex
	cost    int
	byEmail map[string]Account
	byID    map[string]string
}

// NewMemStore hashes with cost; zero means bcrypt.DefaultCost.
func NewMemStore(cost int) *MemStore {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &MemStore{
		cost:    cost,
		byEmail: make(map[string]Account),
		byID:    make(map[string]string),
	}
}

func (s *MemStore) Ping(context.Context) error { return nil }

func (s *MemStore) Create(_ context.Context, id, email, password string) error {
	email = normalizeEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[email]; ok {
		return ErrEmailExists
	}

	s.byEmail[email] = Account{ID: id, Email: email, Hash: hash}
	s.byID[id] = email
	return nil
}

func (s *MemStore) Verify(_ context.Context, email, password string) (Account, error) {
	email = normalizeEmail(email)

	s.mu.RLock()
	a, ok := s.byEmail[email]
	s.mu.RUnlock()

	if !ok {
		return Account{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.Hash, []byte(password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return a, nil
}

func (s *MemStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email, ok := s.byID[id]
	if !ok {
		return ErrAccountNotFound
	}
	delete(s.byID, id)
	delete(s.byEmail, email)
	return nil
}
