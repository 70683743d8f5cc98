package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"storefront/internal/catalog"
	"storefront/internal/mongodb"
	"storefront/pkg/kit"
)

func main() {
	service := "catalog"
	log := kit.NewLogger(service, getenv("LOG_LEVEL", "info"))
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := getenv("PORT", "8082")
	mongoURI := getenv("MONGO_URI", "")
	metricsToken := getenv("METRICS_TOKEN", "")

	var store catalog.Store = catalog.NewDemoStore()
	if mongoURI != "" {
		db, err := mongodb.Connect(ctx, mongoURI, getenv("MONGO_DB", "storefront"))
		if err != nil {
			log.Fatal("mongo connect failed", zap.Error(err))
		}
		defer func() { _ = mongodb.Disconnect(context.Background(), db) }()
		store = catalog.NewMongoStore(db)
	} else {
		log.Warn("MONGO_URI not set, serving demo items")
	}

	s := &catalog.Server{Store: store, Log: log}

	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: metricsToken != "",
		MetricsToken:   metricsToken,
	})

	if err := kit.RunHTTPServer(ctx, ":"+port, h, log); err != nil {
		log.Error("http server stopped", zap.Error(err))
		stop()
		os.Exit(1)
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
