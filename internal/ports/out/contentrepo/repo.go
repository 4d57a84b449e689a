package contentrepo

import (
	"context"

	"github.com/rotary-puebla/club-site-api/internal/domain"
)

// MemberRepository persists members.
//
// Result ordering expectations:
// - List returns members ordered by case-folded Name ascending, ties broken by ID.
//
// Create ignores m.ID and returns the record with the store-assigned ID.
// Update returns ErrNotFound when no record has m.ID.
// Delete of an unknown ID is not an error.
type MemberRepository interface {
	List(ctx context.Context) ([]domain.Member, error)
	Create(ctx context.Context, m domain.Member) (domain.Member, error)
	Update(ctx context.Context, m domain.Member) (domain.Member, error)
	Delete(ctx context.Context, id domain.MemberID) error
}

// EventRepository persists events. List is ordered by ID ascending.
type EventRepository interface {
	List(ctx context.Context) ([]domain.Event, error)
	Create(ctx context.Context, e domain.Event) (domain.Event, error)
	Update(ctx context.Context, e domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id domain.EventID) error
}

// GalleryRepository persists gallery items. Items are immutable once created;
// there is no Update. List is ordered by ID ascending.
type GalleryRepository interface {
	List(ctx context.Context) ([]domain.GalleryItem, error)
	Create(ctx context.Context, g domain.GalleryItem) (domain.GalleryItem, error)
	Delete(ctx context.Context, id domain.GalleryItemID) error
}
