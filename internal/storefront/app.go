package storefront

import (
	"context"

	"go.uber.org/zap"

	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/profile"
	"storefront/internal/session"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (auth.Session, error)
}

type ProfileReader interface {
	Get(ctx context.Context, accountID string) (profile.Profile, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Check is one dependency probed by /readyz.
type Check struct {
	Name string
	Pinger
}

// Server wires the session controller, catalog loader and cart store to the
// HTTP API.
type Server struct {
	Sessions *session.Controller
	Auth     Authenticator
	Catalog  *catalog.Loader
	Carts    cart.Store
	Profiles ProfileReader
	Checks   []Check
	Log      *zap.Logger

	metrics *domainMetrics
}
