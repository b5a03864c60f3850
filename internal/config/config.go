package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the server.
type Config struct {
	Port            string
	DatabaseDSN     string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:            strings.TrimSpace(os.Getenv("PORT")),
		DatabaseDSN:     strings.TrimSpace(os.Getenv("DATABASE_DSN")),
		JWTSecret:       strings.TrimSpace(os.Getenv("JWT_SECRET")),
		AccessTokenTTL:  parseHours(os.Getenv("ACCESS_TOKEN_TTL_HOURS")),
		RefreshTokenTTL: parseHours(os.Getenv("REFRESH_TOKEN_TTL_HOURS")),
	}

	if cfg.Port == "" {
		cfg.Port = "3000"
	}

	if cfg.AccessTokenTTL == 0 {
		cfg.AccessTokenTTL = time.Hour
	}

	if cfg.RefreshTokenTTL == 0 {
		cfg.RefreshTokenTTL = 168 * time.Hour
	}

	if cfg.DatabaseDSN == "" {
		return cfg, fmt.Errorf("DATABASE_DSN is required")
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func parseHours(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return 0
	}

	return time.Duration(hours) * time.Hour
}
