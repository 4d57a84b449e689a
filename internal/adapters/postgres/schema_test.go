package postgres_test

import (
	"context"
	"testing"

	postgres "github.com/rotary-puebla/club-site-api/internal/adapters/postgres"
	"github.com/rotary-puebla/club-site-api/internal/adapters/postgres/testutil"
)

func TestMigrate_IsRepeatable(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	if err := postgres.Migrate(context.Background(), pool); err != nil {
		t.Fatalf("second Migrate err=%v", err)
	}
	var n int
	if err := pool.QueryRow(context.Background(), `
		SELECT count(*) FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = 'members' AND column_name = 'image_settings'
	`).Scan(&n); err != nil {
		t.Fatalf("query columns: %v", err)
	}
	if n != 1 {
		t.Fatalf("image_settings column count=%d want=1", n)
	}
}

func TestNewPool_RequiresDSN(t *testing.T) {
	t.Parallel()

	if _, err := postgres.NewPool(context.Background(), " ", postgres.PoolOptions{}); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}
