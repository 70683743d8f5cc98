package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront/internal/postgres"
	"storefront/pkg/kit"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply Postgres schema migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Postgres.DSN == "" {
			return errors.New("postgres dsn not configured")
		}

		log := kit.NewLogger("storefront", cfg.LogLevel)
		defer func() { _ = log.Sync() }()

		if err := postgres.Migrate(cfg.Postgres.DSN); err != nil {
			log.Error("migrate failed", zap.Error(err))
			return err
		}
		log.Info("migrations applied")
		return nil
	},
}
