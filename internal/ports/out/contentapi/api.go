// Package contentapi is the client-side port to the Content API, used by the
// public views and the admin workflow.
package contentapi

import (
	"context"

	"github.com/rotary-puebla/club-site-api/internal/domain"
)

type MemberAPI interface {
	ListMembers(ctx context.Context) ([]domain.Member, error)
	CreateMember(ctx context.Context, m domain.Member) (domain.Member, error)
	UpdateMember(ctx context.Context, m domain.Member) (domain.Member, error)
	DeleteMember(ctx context.Context, id domain.MemberID) error
}

type EventAPI interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	CreateEvent(ctx context.Context, e domain.Event) (domain.Event, error)
	UpdateEvent(ctx context.Context, e domain.Event) (domain.Event, error)
	DeleteEvent(ctx context.Context, id domain.EventID) error
}

// GalleryAPI has no update: gallery items are replaced by delete + create.
type GalleryAPI interface {
	ListGallery(ctx context.Context) ([]domain.GalleryItem, error)
	CreateGalleryItem(ctx context.Context, g domain.GalleryItem) (domain.GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, id domain.GalleryItemID) error
}

// API is the full Content API surface.
type API interface {
	MemberAPI
	EventAPI
	GalleryAPI
}

type idempotencyKeyCtx struct{}

// WithIdempotencyKey attaches a key sent with create requests made under ctx.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKeyCtx{}, key)
}

func IdempotencyKeyFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(idempotencyKeyCtx{}).(string)
	return v, ok && v != ""
}
