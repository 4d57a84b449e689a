package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/rotary-puebla/club-site-api/internal/adapters/httpapi"
	"github.com/rotary-puebla/club-site-api/internal/app/content"
	"github.com/rotary-puebla/club-site-api/internal/fallback"
	"github.com/rotary-puebla/club-site-api/internal/platform/config"
	"github.com/rotary-puebla/club-site-api/internal/platform/logging"
	"github.com/rotary-puebla/club-site-api/internal/platform/secret"
	"github.com/rotary-puebla/club-site-api/internal/platform/storage"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}
	log, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid logging config: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("api exited")
	}
}

func run(cfg config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	verifier, err := secret.FromConfig(cfg.AdminSecret, cfg.AdminSecretBcrypt)
	if err != nil {
		return fmt.Errorf("admin secret: %w", err)
	}
	if verifier == nil {
		log.Warn().Msg("no ADMIN_SECRET configured: manage routes are open")
	}

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()
	if err := backend.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate %s: %w", backend.Name, err)
	}

	svc := content.NewService(backend.Members, backend.Events, backend.Gallery)
	if cfg.SeedOnStart || backend.Name == config.BackendMemory {
		res, err := svc.Seed(ctx, fallback.Default())
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.Info().
			Int("members", res.Members).
			Int("events", res.Events).
			Int("gallery", res.Gallery).
			Msg("seeded empty collections from fallback dataset")
	}

	handler := httpapi.NewRouter(
		httpapi.NewServer(svc, backend.Idem),
		httpapi.RouterOptions{
			AdminMiddleware: httpapi.NewAdminSecretMiddleware(verifier),
			Logger:          log,
			AllowedOrigins:  cfg.CORSAllowedOrigins,
		},
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("storage", backend.Name).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// Graceful shutdown
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
