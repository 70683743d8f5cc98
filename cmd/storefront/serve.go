package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/session"
	"storefront/internal/storefront"
	"storefront/pkg/kit"
)

const service = "storefront"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg)
	},
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		log.Error("backend setup failed", zap.Error(err))
		return err
	}
	defer b.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	loader := catalog.NewLoader(b.catalog, log)
	if _, err := loader.Load(ctx); err != nil {
		// The first request retries the fetch.
		log.Warn("initial catalog load failed", zap.Error(err))
	}

	s := &storefront.Server{
		Sessions: session.NewController(b.identity, b.profiles, b.carts, log),
		Auth:     b.identity,
		Catalog:  loader,
		Carts:    b.carts,
		Profiles: b.profiles,
		Checks:   b.checks,
		Log:      log,
	}

	h := storefront.NewHandler(s, storefront.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	})

	if err := kit.RunHTTPServer(ctx, ":"+cfg.Port, h, log); err != nil {
		log.Error("http server stopped", zap.Error(err))
		return err
	}
	return nil
}
