package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all application configuration, read once at startup and
// passed explicitly to the components that need it.
type Config struct {
	ListenAddr string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr     string
	RedisPassword string

	// QuoteAPIKey authenticates against the external quote service.
	// The application refuses to start without it.
	QuoteAPIKey string

	SessionSecret string
	SessionTTL    time.Duration

	// StartingCash is credited to every newly registered user.
	StartingCash decimal.Decimal
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:    envOr("LISTEN_ADDR", ":8080"),
		DBHost:        envOr("DB_HOST", "localhost"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        envOr("DB_PORT", "5432"),
		RedisAddr:     envOr("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		QuoteAPIKey:   os.Getenv("ALPHA_VANTAGE_API_KEY"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    24 * time.Hour,
	}

	if cfg.QuoteAPIKey == "" {
		return nil, errors.New("ALPHA_VANTAGE_API_KEY not set")
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET not set")
	}

	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL %q: %w", ttl, err)
		}
		cfg.SessionTTL = d
	}

	cash, err := decimal.NewFromString(envOr("STARTING_CASH", "10000"))
	if err != nil {
		return nil, fmt.Errorf("invalid STARTING_CASH: %w", err)
	}
	cfg.StartingCash = cash

	return cfg, nil
}

// DSN builds the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
