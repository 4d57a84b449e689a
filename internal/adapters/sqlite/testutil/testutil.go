// Package testutil opens throwaway, migrated SQLite databases for adapter tests.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/rotary-puebla/club-site-api/internal/adapters/sqlite"
)

// OpenMigratedDB returns a database in the test's temp dir with the schema applied.
func OpenMigratedDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "content.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := sqlite.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}
