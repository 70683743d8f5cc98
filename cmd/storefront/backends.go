package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/mongodb"
	"storefront/internal/postgres"
	"storefront/internal/profile"
	"storefront/internal/storefront"
)

// backends holds the stores chosen by config. Anything not configured runs
// in memory.
type backends struct {
	identity *auth.Provider
	profiles profile.Store
	carts    cart.Store
	catalog  catalog.Lister
	checks   []storefront.Check

	closers []func()
}

func openBackends(ctx context.Context, cfg *config.Config, log *zap.Logger) (_ *backends, err error) {
	b := &backends{}
	defer func() {
		if err != nil {
			b.close()
		}
	}()

	var accounts auth.AccountStore = auth.NewMemStore(cfg.Auth.BcryptCost)
	var revoked auth.Revocations = auth.NewMemRevocations()
	b.profiles = profile.NewMemStore()
	b.carts = cart.NewMemStore(cfg.Auth.SessionTTL)
	b.catalog = catalog.NewDemoStore()

	if cfg.Postgres.DSN != "" {
		if cfg.Postgres.Migrate {
			if err := postgres.Migrate(cfg.Postgres.DSN); err != nil {
				return nil, err
			}
		}
		pool, err := postgres.Connect(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, pool.Close)

		pgAccounts := auth.NewPostgresStore(pool, cfg.Auth.BcryptCost)
		accounts = pgAccounts
		b.profiles = profile.NewPostgresStore(pool)
		b.checks = append(b.checks, storefront.Check{Name: "postgres", Pinger: pgAccounts})
		log.Info("accounts in postgres")
	}

	if cfg.Mongo.URI != "" {
		db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = mongodb.Disconnect(context.Background(), db) })

		profiles := profile.NewMongoStore(db)
		b.profiles = profiles
		b.catalog = catalog.NewMongoStore(db)
		b.checks = append(b.checks, storefront.Check{Name: "mongo", Pinger: profiles})
		log.Info("profiles and catalog in mongo", zap.String("database", cfg.Mongo.Database))
	}

	if cfg.Catalog.URL != "" {
		c := catalog.NewClient(cfg.Catalog.URL)
		b.catalog = c
		b.checks = append(b.checks, storefront.Check{Name: "catalog", Pinger: c})
		log.Info("catalog from service", zap.String("url", cfg.Catalog.URL))
	}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		b.closers = append(b.closers, func() { _ = rdb.Close() })
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}

		carts := cart.NewRedisStore(rdb, cfg.Auth.SessionTTL)
		b.carts = carts
		revoked = auth.NewRedisRevocations(rdb)
		b.checks = append(b.checks, storefront.Check{Name: "redis", Pinger: carts})
		log.Info("carts and revocations in redis", zap.String("addr", cfg.Redis.Addr))
	}

	if cfg.Postgres.DSN == "" && cfg.Mongo.URI == "" && !cfg.Dev {
		log.Warn("no database configured, accounts and profiles are kept in memory")
	}

	b.identity = auth.NewProvider(accounts, auth.NewTokenMaker(cfg.Auth.JWTSecret), revoked, cfg.Auth.SessionTTL)
	return b, nil
}

func (b *backends) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}
