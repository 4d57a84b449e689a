package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrations run in order; each statement is idempotent so Migrate can run on every start.
// Column layout matches databases created by earlier deployments, so optional
// text columns are nullable and read back with COALESCE.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS members (
		id SERIAL PRIMARY KEY,
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
		socials JSONB
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		date_str TEXT,
		time_str TEXT,
		location TEXT,
		description TEXT,
		image_url TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS gallery_items (
		id SERIAL PRIMARY KEY,
		image_url TEXT NOT NULL,
		caption TEXT,
		is_instagram BOOLEAN DEFAULT false,
		link TEXT
	)`,
	// Portrait framing was added after the first release.
	`ALTER TABLE members ADD COLUMN IF NOT EXISTS image_settings JSONB`,
	`CREATE TABLE IF NOT EXISTS idempotency_keys (
		idempotency_key TEXT NOT NULL,
		method TEXT NOT NULL,
		route TEXT NOT NULL,
		body_hash TEXT NOT NULL,
		status_code INTEGER NOT NULL,
		content_type TEXT NOT NULL,
		body BYTEA NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (idempotency_key, method, route, body_hash)
	)`,
}

// Migrate creates or upgrades the schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for i, stmt := range migrations {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migration %d: %w", i+1, err)
			}
		}
		return nil
	})
}
