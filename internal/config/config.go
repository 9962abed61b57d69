package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultPort      = "8080"
	defaultDSN       = "hotel.db"
	defaultJWTTTL    = "24h"
	defaultJWTSecret = "change-me-jwt-secret"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = getEnv("PORT", defaultPort)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDSN)
	cfg.JWTSecret = getEnv("JWT_SECRET", defaultJWTSecret)

	ttl, err := time.ParseDuration(getEnv("JWT_TTL", defaultJWTTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.JWTTTL = ttl

	if cfg.AppEnv == "prod" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in prod")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
