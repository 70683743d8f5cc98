package main

import (
	"os"

	"github.com/spf13/cobra"

	"storefront/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "Storefront API: sessions, catalog and carts",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (or set "+config.EnvFile+")")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv(config.EnvFile)
	}
	return config.Load(path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
