// Package config resolves storefront settings: built-in defaults, then an
// optional YAML file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvFile names the variable that points at a YAML config file when no
// --config flag is given.
const EnvFile = "STOREFRONT_CONFIG"

const minSecretLen = 32

var ErrWeakSecret = fmt.Errorf("jwt secret must be at least %d characters", minSecretLen)

type Config struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`
	// Dev allows the built-in JWT secret and in-memory stores.
	Dev bool `yaml:"dev"`

	Auth     AuthConfig     `yaml:"auth"`
	Postgres PostgresConfig `yaml:"postgres"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Redis    RedisConfig    `yaml:"redis"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret"`
	SessionTTL time.Duration `yaml:"session_ttl"`
	BcryptCost int           `yaml:"bcrypt_cost"`
}

type PostgresConfig struct {
	DSN     string `yaml:"dsn"`
	Migrate bool   `yaml:"migrate"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// CatalogConfig selects the catalog source. URL wins over Mongo; with
// neither the demo items are served.
type CatalogConfig struct {
	URL string `yaml:"url"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
}

func Default() *Config {
	return &Config{
		Port:     "8080",
		LogLevel: "info",
		Auth: AuthConfig{
			SessionTTL: time.Hour,
			BcryptCost: 12,
		},
		Mongo: MongoConfig{
			Database: "storefront",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load reads path (if not empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Port = getenv("PORT", c.Port)
	c.LogLevel = getenv("LOG_LEVEL", c.LogLevel)

	c.Auth.JWTSecret = getenv("JWT_SECRET", c.Auth.JWTSecret)
	c.Postgres.DSN = getenv("POSTGRES_DSN", c.Postgres.DSN)
	c.Mongo.URI = getenv("MONGO_URI", c.Mongo.URI)
	c.Mongo.Database = getenv("MONGO_DB", c.Mongo.Database)
	c.Redis.Addr = getenv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getenv("REDIS_PASSWORD", c.Redis.Password)
	c.Catalog.URL = getenv("CATALOG_URL", c.Catalog.URL)
	c.Metrics.Token = getenv("METRICS_TOKEN", c.Metrics.Token)

	var errs []error
	if v := os.Getenv("DEV"); v != "" {
		b, err := strconv.ParseBool(v)
		errs = append(errs, envErr("DEV", err))
		c.Dev = b
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		errs = append(errs, envErr("METRICS_ENABLED", err))
		c.Metrics.Enabled = b
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		errs = append(errs, envErr("SESSION_TTL", err))
		c.Auth.SessionTTL = d
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		errs = append(errs, envErr("REDIS_DB", err))
		c.Redis.DB = n
	}
	return errors.Join(errs...)
}

func (c *Config) Validate() error {
	if c.Auth.SessionTTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	if c.Dev {
		if c.Auth.JWTSecret == "" {
			c.Auth.JWTSecret = "dev-secret-dev-secret-dev-secret"
		}
		return nil
	}
	if len(c.Auth.JWTSecret) < minSecretLen {
		return ErrWeakSecret
	}
	if c.Metrics.Enabled && c.Metrics.Token == "" {
		return errors.New("metrics token required when metrics are enabled")
	}
	return nil
}

func envErr(key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("env %s: %w", key, err)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
