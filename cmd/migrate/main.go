package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/rotary-puebla/club-site-api/internal/app/content"
	"github.com/rotary-puebla/club-site-api/internal/fallback"
	"github.com/rotary-puebla/club-site-api/internal/platform/config"
	"github.com/rotary-puebla/club-site-api/internal/platform/logging"
	"github.com/rotary-puebla/club-site-api/internal/platform/storage"
)

// migrate creates the content schema for the configured backend and fills
// empty tables from the fallback dataset unless -seed=false.
func main() {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	seed := fs.Bool("seed", true, "insert the fallback dataset into empty tables")
	backendName := fs.String("backend", "", "storage backend (overrides STORAGE_BACKEND)")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.LoadFromEnv()
	if err == nil {
		cfg, err = withBackend(cfg, *backendName)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}
	log, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid logging config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open storage")
	}
	defer backend.Close()

	if err := backend.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Str("storage", backend.Name).Msg("migrate")
	}
	log.Info().Str("storage", backend.Name).Msg("schema up to date")

	if !*seed {
		return
	}
	ds := fallback.Default()
	res, err := content.NewService(backend.Members, backend.Events, backend.Gallery).Seed(ctx, ds)
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().
		Str("dataset", ds.Version()).
		Int("members", res.Members).
		Int("events", res.Events).
		Int("gallery", res.Gallery).
		Msg("seeded")
}

// withBackend applies the -backend override to cfg. An empty name keeps cfg.
func withBackend(cfg config.Config, name string) (config.Config, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "":
		return cfg, nil
	case config.BackendMemory, config.BackendSQLite:
	case config.BackendPostgres:
		if cfg.DatabaseURL == "" {
			return cfg, fmt.Errorf("DATABASE_URL is required for -backend=postgres")
		}
	default:
		return cfg, fmt.Errorf("unknown -backend %q (expected memory|postgres|sqlite)", name)
	}
	cfg.StorageBackend = name
	return cfg, nil
}
