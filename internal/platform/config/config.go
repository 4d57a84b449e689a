package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends accepted by STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config is the server configuration, read from the environment.
type Config struct {
	Port           string
	StorageBackend string
	DatabaseURL    string
	SQLitePath     string
	PGMaxConns     int32

	// AdminSecret and AdminSecretBcrypt gate the manage-* routes. At most one may be set;
	// with neither, writes are open (local development only).
	AdminSecret       string
	AdminSecretBcrypt string

	CORSAllowedOrigins []string

	LogLevel  string
	LogFormat string

	// SeedOnStart fills empty collections from the fallback dataset at startup.
	SeedOnStart bool

	ShutdownTimeout time.Duration
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		Port:               getenv("PORT", "8080"),
		StorageBackend:     strings.ToLower(getenv("STORAGE_BACKEND", BackendMemory)),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		SQLitePath:         getenv("SQLITE_PATH", "club.db"),
		AdminSecret:        os.Getenv("ADMIN_SECRET"),
		AdminSecretBcrypt:  os.Getenv("ADMIN_SECRET_BCRYPT"),
		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           getenv("LOG_LEVEL", "info"),
		LogFormat:          getenv("LOG_FORMAT", "json"),
		ShutdownTimeout:    10 * time.Second,
	}

	switch cfg.StorageBackend {
	case BackendMemory, BackendSQLite:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL is required when STORAGE_BACKEND=postgres")
		}
	default:
		return Config{}, fmt.Errorf("STORAGE_BACKEND must be one of memory|postgres|sqlite, got %q", cfg.StorageBackend)
	}

	if cfg.AdminSecret != "" && cfg.AdminSecretBcrypt != "" {
		return Config{}, fmt.Errorf("set only one of ADMIN_SECRET or ADMIN_SECRET_BCRYPT")
	}

	switch cfg.LogFormat {
	case "json", "console":
	default:
		return Config{}, fmt.Errorf("LOG_FORMAT must be json or console, got %q", cfg.LogFormat)
	}

	if v := os.Getenv("SEED_ON_START"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("SEED_ON_START must be a boolean: %w", err)
		}
		cfg.SeedOnStart = b
	}
	if v := os.Getenv("PG_MAX_CONNS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("PG_MAX_CONNS must be a positive integer, got %q", v)
		}
		cfg.PGMaxConns = int32(n)
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be a duration (e.g. 10s): %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, nil
}

// WritesProtected reports whether an admin secret is configured.
func (c Config) WritesProtected() bool {
	return c.AdminSecret != "" || c.AdminSecretBcrypt != ""
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
