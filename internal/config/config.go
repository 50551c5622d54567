package config

import (
	"errors"
	"os"
)

type Config struct {
	Addr        string // listen address
	Owner       string // the single administrator account
	JWTSecret   string // HS256 secret for account bearer tokens
	DatabaseURL string // optional; empty means the in-memory ledger store
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func Load() (Config, error) {
	cfg := Config{
		Addr:        getenv("ADDR", "0.0.0.0:8080"),
		Owner:       os.Getenv("LEDGER_OWNER"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	if cfg.Owner == "" {
		return Config{}, errors.New("LEDGER_OWNER must be set")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET must be set")
	}

	return cfg, nil
}
