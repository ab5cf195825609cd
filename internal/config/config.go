package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultAddr        = ":8080"
	defaultDatabaseURL = "nam3land.db"
	defaultJWTTTL      = "24h"
)

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration
}

// Load reads the configuration from the environment. DATABASE_URL without a
// postgres:// prefix is treated as a sqlite file path. JWT_SECRET has no
// default: a missing value is an error.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:        getEnv("ADDR", defaultAddr),
		DatabaseURL: getEnv("DATABASE_URL", defaultDatabaseURL),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	ttl, err := time.ParseDuration(getEnv("JWT_TTL", defaultJWTTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.JWTTTL = ttl

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
