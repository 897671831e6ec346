package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"AMLAK_PORT", "AMLAK_DEV_MODE", "AMLAK_LOG_LEVEL", "AMLAK_DB",
		"AMLAK_CATALOG", "AMLAK_FLUENT_HOST", "AMLAK_FLUENT_PORT", "AMLAK_CORS_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DevMode {
		t.Error("DevMode should default to false")
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if !strings.HasSuffix(cfg.DBPath, filepath.Join(".amlak", "amlak.db")) {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.CatalogPath != "" || cfg.FluentHost != "" {
		t.Errorf("unexpected optional values: %+v", cfg)
	}
	if cfg.FluentPort != 24224 {
		t.Errorf("FluentPort = %d, want 24224", cfg.FluentPort)
	}
	if len(cfg.CORSOrigins) != 0 {
		t.Errorf("CORSOrigins = %v, want none", cfg.CORSOrigins)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("AMLAK_PORT", "9090")
	t.Setenv("AMLAK_DEV_MODE", "true")
	t.Setenv("AMLAK_LOG_LEVEL", "debug")
	t.Setenv("AMLAK_DB", "/tmp/test.db")
	t.Setenv("AMLAK_CATALOG", "/tmp/catalog.json")
	t.Setenv("AMLAK_FLUENT_HOST", "fluent-bit")
	t.Setenv("AMLAK_FLUENT_PORT", "24225")
	t.Setenv("AMLAK_CORS_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if cfg.Port != 9090 || !cfg.DevMode || cfg.LogLevel != slog.LevelDebug {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.DBPath != "/tmp/test.db" || cfg.CatalogPath != "/tmp/catalog.json" {
		t.Errorf("paths = %q, %q", cfg.DBPath, cfg.CatalogPath)
	}
	if cfg.FluentHost != "fluent-bit" || cfg.FluentPort != 24225 {
		t.Errorf("fluent = %s:%d", cfg.FluentHost, cfg.FluentPort)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port not a number", "AMLAK_PORT", "http"},
		{"negative port", "AMLAK_PORT", "-1"},
		{"fluent port", "AMLAK_FLUENT_PORT", "x"},
		{"log level", "AMLAK_LOG_LEVEL", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := FromEnv(); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestBadBoolFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("AMLAK_DEV_MODE", "sometimes")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.DevMode {
		t.Error("unparseable AMLAK_DEV_MODE should fall back to false")
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("AMLAK_PORT=7070\nAMLAK_CATALOG=/srv/catalog.json\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv never overrides variables that are already set.
	os.Unsetenv("AMLAK_PORT")
	os.Unsetenv("AMLAK_CATALOG")

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 7070 {
		t.Errorf("Port = %d, want 7070", cfg.Port)
	}
	if cfg.CatalogPath != "/srv/catalog.json" {
		t.Errorf("CatalogPath = %q", cfg.CatalogPath)
	}
}

func TestLoadMissingDotEnv(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	if err != nil {
		t.Fatalf("missing .env should not be an error: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
}
