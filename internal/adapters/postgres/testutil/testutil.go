// Package testutil opens isolated, migrated Postgres pools for adapter tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/rotary-puebla/club-site-api/internal/adapters/postgres"
)

// DSNEnv names the environment variable holding the test database DSN.
const DSNEnv = "POSTGRES_TEST_DSN"

// OpenMigratedPool returns a pool bound to a fresh schema with all migrations
// applied. The schema is dropped when the test ends. Tests are skipped when
// POSTGRES_TEST_DSN is unset.
func OpenMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv(DSNEnv))
	if dsn == "" {
		t.Skipf("%s not set; skipping postgres test", DSNEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	schema := "t_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	admin, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{MaxConns: 1})
	if err != nil {
		t.Fatalf("open admin pool: %v", err)
	}
	if _, err := admin.Exec(ctx, fmt.Sprintf("CREATE SCHEMA %s", schema)); err != nil {
		admin.Close()
		t.Fatalf("create schema: %v", err)
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{SearchPath: schema})
	if err != nil {
		admin.Close()
		t.Fatalf("open pool: %v", err)
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		admin.Close()
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		dropCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, _ = admin.Exec(dropCtx, fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schema))
		admin.Close()
	})
	return pool
}
