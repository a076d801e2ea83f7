// Package config reads the service settings from the environment, after
// loading an optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"

	defaultPort       = "3000"
	defaultDataDir    = "./data"
	defaultAdminPIN   = "22522"
	defaultJWTSecret  = "change-me-shop-billing-secret"
	defaultSessionTTL = 15 * time.Minute
)

type Config struct {
	Port            string
	StorageDriver   string
	DataDir         string
	ReceiptDir      string
	DatabaseURL     string
	AdminPIN        string
	JWTSecret       []byte
	AdminSessionTTL time.Duration
	Development     bool
}

// Load reads .env files (missing ones are fine) and then the environment.
// It returns whether a .env file was found along with the config.
func Load(files ...string) (*Config, bool, error) {
	found := godotenv.Load(files...) == nil
	cfg, err := FromEnv(os.Getenv)
	return cfg, found, err
}

// FromEnv builds a Config from a getenv-style lookup.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:          get("PORT", defaultPort),
		StorageDriver: strings.ToLower(get("STORAGE_DRIVER", DriverFile)),
		DataDir:       get("DATA_DIR", defaultDataDir),
		AdminPIN:      get("ADMIN_PIN", defaultAdminPIN),
		JWTSecret:     []byte(get("JWT_SECRET", defaultJWTSecret)),
		Development:   get("APP_ENV", "development") == "development",
	}
	cfg.ReceiptDir = get("RECEIPT_DIR", filepath.Join(cfg.DataDir, "receipts"))

	ttl, err := time.ParseDuration(get("ADMIN_SESSION_TTL", defaultSessionTTL.String()))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid ADMIN_SESSION_TTL %q", getenv("ADMIN_SESSION_TTL"))
	}
	cfg.AdminSessionTTL = ttl

	switch cfg.StorageDriver {
	case DriverFile:
	case DriverPostgres:
		cfg.DatabaseURL = getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = fmt.Sprintf(
				"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
				getenv("DB_HOST"),
				getenv("DB_USER"),
				getenv("DB_PASSWORD"),
				getenv("DB_NAME"),
				get("DB_PORT", "5432"),
			)
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}
