package idempotency

import (
	"bytes"
	"context"
	"sync"

	"github.com/rotary-puebla/club-site-api/internal/ports/out/idempotency"
)

// DefaultMaxEntries bounds a Store built without WithMaxEntries.
const DefaultMaxEntries = 10000

type Option func(*Store)

// WithMaxEntries caps the number of stored records. Once full, the oldest
// insert is evicted first. n <= 0 keeps the default.
func WithMaxEntries(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.max = n
		}
	}
}

// Store is an in-memory idempotency.Store for the memory backend. Claims and
// responses live until evicted or the process exits.
type Store struct {
	mu    sync.Mutex
	max   int
	m     map[idempotency.Fingerprint]idempotency.Record
	order []idempotency.Fingerprint
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		max: DefaultMaxEntries,
		m:   make(map[idempotency.Fingerprint]idempotency.Record),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(ctx context.Context, fp idempotency.Fingerprint) (idempotency.Record, bool, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.m[fp]
	if !ok {
		return idempotency.Record{}, false, nil
	}
	rec.Body = bytes.Clone(rec.Body)
	return rec, true, nil
}

func (s *Store) Put(ctx context.Context, fp idempotency.Fingerprint, rec idempotency.Record) error {
	_ = ctx
	rec.Body = bytes.Clone(rec.Body)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.m[fp]; !exists {
		for len(s.order) >= s.max {
			delete(s.m, s.order[0])
			s.order = s.order[1:]
		}
		s.order = append(s.order, fp)
	}
	s.m[fp] = rec
	return nil
}

// Len is the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
