package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the binaries read from the environment.
type Config struct {
	Port        string
	DatabaseURL string
	CORSOrigin  string

	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	BcryptCost int
}

// Load reads configuration from the environment. Callers are expected to
// have loaded .env (godotenv) beforehand if they want one.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getenv("PORT", "3000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		CORSOrigin:    getenv("CORS_ORIGIN", "http://localhost:5173"),
		AccessSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required")
	}

	var err error
	if cfg.AccessTTL, err = parseTTL(getenv("ACCESS_TOKEN_TTL", "15m")); err != nil {
		return nil, errors.New("invalid ACCESS_TOKEN_TTL")
	}
	if cfg.RefreshTTL, err = parseTTL(getenv("REFRESH_TOKEN_TTL", "168h")); err != nil {
		return nil, errors.New("invalid REFRESH_TOKEN_TTL")
	}

	cost, err := strconv.Atoi(getenv("BCRYPT_COST", "12"))
	if err != nil {
		return nil, errors.New("invalid BCRYPT_COST")
	}
	cfg.BcryptCost = cost

	return cfg, nil
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

// parseTTL accepts Go durations ("15m", "1h") or a bare number meaning
// minutes.
func parseTTL(s string) (time.Duration, error) {
	if strings.HasSuffix(s, "s") || strings.HasSuffix(s, "m") || strings.HasSuffix(s, "h") {
		return time.ParseDuration(s)
	}

	min, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return time.Duration(min) * time.Minute, nil
}
