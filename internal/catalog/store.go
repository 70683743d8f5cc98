package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

var (
	ErrNotFound    = errors.New("product not found")
	ErrUnavailable = errors.New("catalog unavailable")
)

// Product is one document of the items collection. Values are never mutated
// after they leave a store.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// Lister is the only capability the storefront needs from a catalog source.
type Lister interface {
	List(ctx context.Context) ([]Product, error)
}

type Store interface {
	Lister
	Get(ctx context.Context, id string) (Product, bool, error)
	Ping(ctx context.Context) error
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
