package catalog

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

type MemStore struct {
	mu sync.RWMutex
	m  map[string]Product
}

func NewMemStore(products ...Product) *MemStore {
	s := &MemStore{m: make(map[string]Product, len(products))}
	for _, p := range products {
		s.m[p.ID] = p
	}
	return s
}

// NewDemoStore returns a store with a handful of items for local runs.
func NewDemoStore() *MemStore {
	return NewMemStore(
		Product{ID: "p1", Name: "Ceramic Mug", Description: "Stoneware mug, 350 ml", Price: decimal.RequireFromString("12.50")},
		Product{ID: "p2", Name: "Gel Pen", Description: "Black ink, fine tip", Price: decimal.RequireFromString("1.99")},
		Product{ID: "p3", Name: "Notebook", Description: "A5 dotted paper, 120 pages", Price: decimal.RequireFromString("8.00")},
		Product{ID: "p4", Name: "Desk Lamp", Description: "LED lamp with warm light", Price: decimal.RequireFromString("34.90")},
	)
}

func (s *MemStore) Ping(context.Context) error { return nil }

// List returns products ordered by id so repeated calls are stable.
func (s *MemStore) List(context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p)
	}

	slices.SortFunc(out, func(a, b Product) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *MemStore) Get(_ context.Context, id string) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.m[id]
	return p, ok, nil
}

func (s *MemStore) Put(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[p.ID] = p
}
