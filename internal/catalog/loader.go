package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"storefront/pkg/kit"
)

// FetchError reports a failed catalog fetch. The previously held snapshot,
// if any, is left untouched.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch catalog: %v", e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// Loader fetches the whole catalog once and keeps it as an immutable
// snapshot. Reload replaces the snapshot wholesale.
type Loader struct {
	source Lister
	log    *zap.Logger

	group singleflight.Group

	mu       sync.RWMutex
	products []Product
	byID     map[string]Product
	loaded   bool
	loadedAt time.Time
}

func NewLoader(source Lister, log *zap.Logger) *Loader {
	return &Loader{source: source, log: kit.OrNop(log)}
}

// Load returns the held snapshot, fetching it on first use.
func (l *Loader) Load(ctx context.Context) ([]Product, error) {
	l.mu.RLock()
	if l.loaded {
		products := l.products
		l.mu.RUnlock()
		return products, nil
	}
	l.mu.RUnlock()

	return l.fetch(ctx)
}

// Reload fetches the catalog again regardless of what is held.
func (l *Loader) Reload(ctx context.Context) ([]Product, error) {
	return l.fetch(ctx)
}

// Products returns the held snapshot without fetching. Callers must treat
// the slice as read-only.
func (l *Loader) Products() []Product {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.products
}

func (l *Loader) Lookup(id string) (Product, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.byID[id]
	return p, ok
}

func (l *Loader) Loaded() (bool, time.Time) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded, l.loadedAt
}

func (l *Loader) fetch(ctx context.Context) ([]Product, error) {
	v, err, _ := l.group.Do("catalog", func() (any, error) {
		fetched, err := l.source.List(ctx)
		if err != nil {
			return nil, &FetchError{Err: err}
		}

		products, byID := l.sanitize(fetched)

		l.mu.Lock()
		l.products = products
		l.byID = byID
		l.loaded = true
		l.loadedAt = time.Now()
		l.mu.Unlock()

		l.log.Info("catalog loaded", zap.Int("products", len(products)))
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Product), nil
}

// sanitize drops documents that cannot be sold: no id, a duplicate id or a
// negative price. The first occurrence of an id wins.
func (l *Loader) sanitize(in []Product) ([]Product, map[string]Product) {
	out := make([]Product, 0, len(in))
	byID := make(map[string]Product, len(in))

	for _, p := range in {
		switch {
		case p.ID == "":
			l.log.Warn("skipping product without id", zap.String("name", p.Name))
			continue
		case p.Price.IsNegative():
			l.log.Warn("skipping product with negative price", zap.String("id", p.ID))
			continue
		}
		if _, dup := byID[p.ID]; dup {
			l.log.Warn("skipping duplicate product", zap.String("id", p.ID))
			continue
		}
		byID[p.ID] = p
		out = append(out, p)
	}
	return out, byID
}
