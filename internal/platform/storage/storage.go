// Package storage opens the configured content backend.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	memcontentrepo "github.com/rotary-puebla/club-site-api/internal/adapters/memory/contentrepo"
	memidempotency "github.com/rotary-puebla/club-site-api/internal/adapters/memory/idempotency"
	"github.com/rotary-puebla/club-site-api/internal/adapters/postgres"
	pgcontentrepo "github.com/rotary-puebla/club-site-api/internal/adapters/postgres/contentrepo"
	pgidempotency "github.com/rotary-puebla/club-site-api/internal/adapters/postgres/idempotency"
	"github.com/rotary-puebla/club-site-api/internal/adapters/sqlite"
	sqlitecontentrepo "github.com/rotary-puebla/club-site-api/internal/adapters/sqlite/contentrepo"
	sqliteidempotency "github.com/rotary-puebla/club-site-api/internal/adapters/sqlite/idempotency"
	"github.com/rotary-puebla/club-site-api/internal/platform/config"
	"github.com/rotary-puebla/club-site-api/internal/ports/out/contentrepo"
	"github.com/rotary-puebla/club-site-api/internal/ports/out/idempotency"
)

// Backend bundles the repositories of one storage backend.
type Backend struct {
	Name    string
	Members contentrepo.MemberRepository
	Events  contentrepo.EventRepository
	Gallery contentrepo.GalleryRepository
	Idem    idempotency.Store

	migrate func(context.Context) error
	close   func()
}

// Open connects to cfg.StorageBackend. Schema is not touched; call Migrate.
func Open(ctx context.Context, cfg config.Config) (*Backend, error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, postgres.PoolOptions{MaxConns: cfg.PGMaxConns})
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return postgresBackend(pool), nil
	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return sqliteBackend(db), nil
	case config.BackendMemory, "":
		return Memory(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

// Memory returns a process-local backend. Data is lost on exit.
func Memory() *Backend {
	return &Backend{
		Name:    config.BackendMemory,
		Members: memcontentrepo.NewMemberRepo(),
		Events:  memcontentrepo.NewEventRepo(),
		Gallery: memcontentrepo.NewGalleryRepo(),
		Idem:    memidempotency.NewStore(),
	}
}

func postgresBackend(pool *pgxpool.Pool) *Backend {
	return &Backend{
		Name:    config.BackendPostgres,
		Members: pgcontentrepo.NewMemberRepo(pool),
		Events:  pgcontentrepo.NewEventRepo(pool),
		Gallery: pgcontentrepo.NewGalleryRepo(pool),
		Idem:    pgidempotency.NewStore(pool),
		migrate: func(ctx context.Context) error { return postgres.Migrate(ctx, pool) },
		close:   pool.Close,
	}
}

func sqliteBackend(db *sql.DB) *Backend {
	return &Backend{
		Name:    config.BackendSQLite,
		Members: sqlitecontentrepo.NewMemberRepo(db),
		Events:  sqlitecontentrepo.NewEventRepo(db),
		Gallery: sqlitecontentrepo.NewGalleryRepo(db),
		Idem:    sqliteidempotency.NewStore(db),
		migrate: func(ctx context.Context) error { return sqlite.Migrate(ctx, db) },
		close:   func() { _ = db.Close() },
	}
}

// Migrate creates or upgrades the schema. It is a no-op for the memory backend.
func (b *Backend) Migrate(ctx context.Context) error {
	if b.migrate == nil {
		return nil
	}
	return b.migrate(ctx)
}

func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}
