package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

type Config struct {
	Addr        string
	TLSCert     string
	TLSKey      string
	TokenKey    string
	RepoType    string // "postgres" | "sqlite" | "memory"
	DatabaseURL string
	SQLitePath  string
	RateLimit   rate.Limit
	RateBurst   int
	LogLevel    zerolog.Level
	TablesPath  string // optional YAML override for the laser reference tables
}

func (c Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		Addr:        getenv("ADDR", ":8443"),
		TLSCert:     os.Getenv("TLS_CERT"),
		TLSKey:      os.Getenv("TLS_KEY"),
		TokenKey:    os.Getenv("TOKEN_KEY"),
		RepoType:    strings.ToLower(getenv("REPO_TYPE", "memory")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getenv("SQLITE_PATH", "./aperture.db"),
		TablesPath:  os.Getenv("LASER_TABLES"),
	}

	limit, err := strconv.ParseFloat(getenv("RATE_LIMIT", "1"), 64)
	if err != nil || limit <= 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT: invalid value %q", os.Getenv("RATE_LIMIT"))
	}
	cfg.RateLimit = rate.Limit(limit)

	cfg.RateBurst, err = strconv.Atoi(getenv("RATE_BURST", "3"))
	if err != nil || cfg.RateBurst <= 0 {
		return Config{}, fmt.Errorf("RATE_BURST: invalid value %q", os.Getenv("RATE_BURST"))
	}

	cfg.LogLevel, err = zerolog.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	switch cfg.RepoType {
	case "memory", "sqlite":
	case "postgres":
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = "user=postgres dbname=postgres password=password sslmode=disable"
		}
	default:
		return Config{}, fmt.Errorf("REPO_TYPE: unknown repository %q", cfg.RepoType)
	}
	return cfg, nil
}

// RequireToken fails when the JWT signing key is missing.
func (c Config) RequireToken() error {
	if c.TokenKey == "" {
		return errors.New("TOKEN_KEY environment variable is not set")
	}
	return nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
