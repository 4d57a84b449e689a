package idempotency

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rotary-puebla/club-site-api/internal/ports/out/idempotency"
)

// Store is a SQLite implementation of idempotency.Store.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, fp idempotency.Fingerprint) (idempotency.Record, bool, error) {
	if s.db == nil {
		return idempotency.Record{}, false, errors.New("nil sqlite db")
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT status_code, content_type, body, created_at
		FROM idempotency_keys
		WHERE idempotency_key = ? AND method = ? AND route = ? AND body_hash = ?
	`, string(fp.Key), fp.Method, fp.Route, fp.BodyHash)

	var rec idempotency.Record
	if err := row.Scan(&rec.StatusCode, &rec.ContentType, &rec.Body, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return idempotency.Record{}, false, nil
		}
		return idempotency.Record{}, false, err
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, true, nil
}

func (s *Store) Put(ctx context.Context, fp idempotency.Fingerprint, rec idempotency.Record) error {
	if s.db == nil {
		return errors.New("nil sqlite db")
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	body := rec.Body
	if body == nil {
		body = []byte{}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO idempotency_keys (
			idempotency_key, method, route, body_hash, status_code, content_type, body, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (idempotency_key, method, route, body_hash)
		DO UPDATE SET
			status_code = excluded.status_code,
			content_type = excluded.content_type,
			body = excluded.body,
			created_at = excluded.created_at
	`,
		string(fp.Key), fp.Method, fp.Route, fp.BodyHash,
		rec.StatusCode, rec.ContentType, body, createdAt.UTC(),
	)
	return err
}
