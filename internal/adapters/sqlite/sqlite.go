// Package sqlite holds shared helpers for the SQLite adapters: opening the
// database and creating the schema. It uses the pure-Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS members (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	role TEXT,
	profession TEXT,
	short_description TEXT,
	business_help TEXT,
	image_url TEXT,
	email TEXT,
	whatsapp TEXT,
	birthday TEXT,
	business_url TEXT,
	socials TEXT,
	image_settings TEXT
);

CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	date_str TEXT,
	time_str TEXT,
	location TEXT,
	description TEXT,
	image_url TEXT
);

CREATE TABLE IF NOT EXISTS gallery_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	image_url TEXT NOT NULL,
	caption TEXT,
	is_instagram INTEGER NOT NULL DEFAULT 0,
	link TEXT
);

CREATE TABLE IF NOT EXISTS idempotency_keys (
	idempotency_key TEXT NOT NULL,
	method TEXT NOT NULL,
	route TEXT NOT NULL,
	body_hash TEXT NOT NULL,
	status_code INTEGER NOT NULL,
	content_type TEXT NOT NULL,
	body BLOB NOT NULL,
	created_at TIMESTAMP NOT NULL,
	PRIMARY KEY (idempotency_key, method, route, body_hash)
);
`

// Open opens (creating if needed) the database at path. A single connection
// is used so writers never contend for the file lock.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("SQLITE_PATH is required for the sqlite backend")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return db, nil
}

// Migrate creates any missing tables.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply sqlite schema: %w", err)
	}
	return nil
}
