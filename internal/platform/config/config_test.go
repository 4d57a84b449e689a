package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "STORAGE_BACKEND", "DATABASE_URL", "SQLITE_PATH", "ADMIN_SECRET", "ADMIN_SECRET_BCRYPT",
		"CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT", "SEED_ON_START", "PG_MAX_CONNS", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv err=%v", err)
	}
	if cfg.Port != "8080" || cfg.StorageBackend != BackendMemory || cfg.LogFormat != "json" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.WritesProtected() {
		t.Fatalf("no secret configured, writes should be open")
	}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"*"}) {
		t.Fatalf("origins=%v", cfg.CORSAllowedOrigins)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("shutdown=%v", cfg.ShutdownTimeout)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/club")
	t.Setenv("ADMIN_SECRET", "s3cret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://club.example, http://localhost:5173")
	t.Setenv("SEED_ON_START", "true")
	t.Setenv("PG_MAX_CONNS", "4")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv err=%v", err)
	}
	if cfg.StorageBackend != BackendPostgres || !cfg.SeedOnStart || cfg.PGMaxConns != 4 || !cfg.WritesProtected() {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"https://club.example", "http://localhost:5173"}) {
		t.Fatalf("origins=%v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadFromEnv_Errors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown backend", map[string]string{"STORAGE_BACKEND": "mongo"}, "STORAGE_BACKEND"},
		{"postgres without dsn", map[string]string{"STORAGE_BACKEND": "postgres"}, "DATABASE_URL"},
		{"two secrets", map[string]string{"ADMIN_SECRET": "a", "ADMIN_SECRET_BCRYPT": "b"}, "only one"},
		{"bad seed flag", map[string]string{"SEED_ON_START": "maybe"}, "SEED_ON_START"},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}, "LOG_FORMAT"},
		{"bad max conns", map[string]string{"PG_MAX_CONNS": "0"}, "PG_MAX_CONNS"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range c.env {
				t.Setenv(k, v)
			}
			_, err := LoadFromEnv()
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("err=%v, want mention of %q", err, c.want)
			}
		})
	}
}
