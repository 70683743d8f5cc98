package cart

import (
	"context"
	"errors"
)

var ErrConflict = errors.New("cart changed concurrently")

// Store keeps one cart per session. A session without a cart reads as an
// empty cart.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	// Update applies fn to the session's cart and persists the result
	// atomically with respect to other updates of the same session.
	Update(ctx context.Context, sessionID string, fn func(*Cart)) (*Cart, error)
	Discard(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}
