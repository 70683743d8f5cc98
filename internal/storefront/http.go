package storefront

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"storefront/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

const (
	loginLimitPerMin  = 5
	signupLimitPerMin = 3
	limitWindow       = 60 * time.Second

	readyTimeout = 2 * time.Second
)

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))

	if deps.Registry != nil {
		r.Use(kit.NewMetrics(deps.Registry, deps.Service).Middleware)
		s.metrics = newDomainMetrics(deps.Registry)

		if deps.MetricsEnabled {
			r.With(kit.MetricsAuth(deps.MetricsToken)).
				Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
		}
	} else if deps.MetricsEnabled {
		kit.OrNop(deps.Log).Warn("metrics enabled but Registry is nil")
	}

	setupRoutes(r, s)
	return r
}

func setupRoutes(r chi.Router, s *Server) {
	loginLimiter := kit.NewIPRateLimiter(loginLimitPerMin, limitWindow)
	signupLimiter := kit.NewIPRateLimiter(signupLimitPerMin, limitWindow)

	r.Get("/healthz", healthz)
	r.Get("/readyz", s.handleReady)

	r.Route("/auth", func(ar chi.Router) {
		ar.With(loginLimiter.Middleware).Post("/login", s.handleLogin)
		ar.With(signupLimiter.Middleware).Post("/signup", s.handleSignup)
		ar.With(RequireSession(s.Auth)).Post("/logout", s.handleLogout)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(RequireSession(s.Auth))

		pr.Get("/me", s.handleMe)

		pr.Get("/products", s.handleListProducts)
		pr.Post("/products/reload", s.handleReloadProducts)

		pr.Get("/cart", s.handleGetCart)
		pr.Post("/cart/items", s.handleAddToCart)
		pr.Delete("/cart/items/{id}", s.handleRemoveFromCart)
	})
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	for _, c := range s.Checks {
		if err := c.Ping(ctx); err != nil {
			kit.OrNop(s.Log).Warn("readyz failed", zap.String("check", c.Name), zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, c.Name+" not ready", nil)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}
