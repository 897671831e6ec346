// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server and local commands.
type Config struct {
	Port        int
	DevMode     bool
	LogLevel    slog.Level
	DBPath      string
	CatalogPath string // file or http(s) URL; empty means the embedded catalog
	FluentHost  string // empty disables log shipping
	FluentPort  int
	CORSOrigins []string
}

// Load reads an optional .env file and then AMLAK_* environment variables.
// With no envPath, ".env" in the working directory is tried. A missing
// file is not an error.
func Load(envPath ...string) (*Config, error) {
	path := ".env"
	if len(envPath) > 0 && envPath[0] != "" {
		path = envPath[0]
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DevMode:     getEnvAsBool("AMLAK_DEV_MODE", false),
		DBPath:      getEnv("AMLAK_DB", DefaultDBPath()),
		CatalogPath: os.Getenv("AMLAK_CATALOG"),
		FluentHost:  os.Getenv("AMLAK_FLUENT_HOST"),
		CORSOrigins: splitList(os.Getenv("AMLAK_CORS_ORIGINS")),
	}

	var err error
	if cfg.Port, err = getEnvAsInt("AMLAK_PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.FluentPort, err = getEnvAsInt("AMLAK_FLUENT_PORT", 24224); err != nil {
		return nil, err
	}

	level := getEnv("AMLAK_LOG_LEVEL", "info")
	if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("AMLAK_LOG_LEVEL: invalid level %q", level)
	}

	return cfg, nil
}

// DefaultDBPath returns ~/.amlak/amlak.db.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "amlak.db"
	}
	return filepath.Join(home, ".amlak", "amlak.db")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvAsInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: invalid number %q", key, v)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
