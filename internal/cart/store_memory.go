package cart

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	lines     []Line
	expiresAt time.Time
}

// MemStore keeps carts in process memory. Entries expire ttl after their
// last update, matching the lifetime of the session token.
type MemStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	carts map[string]memEntry
}

func NewMemStore(ttl time.Duration) *MemStore {
	return &MemStore{
		ttl:   ttl,
		now:   time.Now,
		carts: make(map[string]memEntry),
	}
}

func (s *MemStore) Ping(context.Context) error { return nil }

func (s *MemStore) Get(_ context.Context, sessionID string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Restore(s.lookup(sessionID)), nil
}

func (s *MemStore) Update(_ context.Context, sessionID string, fn func(*Cart)) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Restore(s.lookup(sessionID))
	fn(c)

	s.carts[sessionID] = memEntry{lines: c.Lines(), expiresAt: s.now().Add(s.ttl)}
	return c, nil
}

func (s *MemStore) Discard(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

// lookup must be called with mu held.
func (s *MemStore) lookup(sessionID string) []Line {
	e, ok := s.carts[sessionID]
	if !ok {
		return nil
	}
	if s.ttl > 0 && s.now().After(e.expiresAt) {
		delete(s.carts, sessionID)
		return nil
	}
	return e.lines
}
