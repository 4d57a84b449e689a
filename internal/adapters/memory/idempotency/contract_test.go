package idempotency

import (
	"testing"

	"github.com/rotary-puebla/club-site-api/internal/adapters/contracttest"
	idempotencyport "github.com/rotary-puebla/club-site-api/internal/ports/out/idempotency"
)

func TestContract_IdempotencyStore(t *testing.T) {
	contracttest.RunIdempotencyStore(t, func(t *testing.T) (idempotencyport.Store, func()) {
		t.Helper()
		return NewStore(WithMaxEntries(16)), nil
	})
}
