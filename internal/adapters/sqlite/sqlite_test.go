package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func TestMigrate_IsRepeatable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "club.db"))
	if err != nil {
		t.Fatalf("Open err=%v", err)
	}
	defer db.Close()

	for i := 0; i < 2; i++ {
		if err := Migrate(ctx, db); err != nil {
			t.Fatalf("Migrate #%d err=%v", i+1, err)
		}
	}
	var n int
	if err := db.QueryRowContext(ctx, `SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name IN ('members','events','gallery_items','idempotency_keys')`).Scan(&n); err != nil {
		t.Fatalf("count tables: %v", err)
	}
	if n != 4 {
		t.Fatalf("tables=%d want=4", n)
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
