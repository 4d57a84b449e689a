package admin

import (
	"context"
	"fmt"

	"github.com/rotary-puebla/club-site-api/internal/domain"
	"github.com/rotary-puebla/club-site-api/internal/fallback"
	"github.com/rotary-puebla/club-site-api/internal/ports/out/contentapi"
)

// kindOps is the Content API operation set for one kind. A nil update means
// the kind cannot be edited.
type kindOps struct {
	list     func(context.Context) ([]domain.Record, error)
	fallback func() []domain.Record
	create   func(context.Context, domain.Record) error
	update   func(context.Context, domain.Record) error
	remove   func(context.Context, string) error
}

func newOpsTable(api contentapi.API, ds fallback.Dataset) map[domain.Kind]kindOps {
	return map[domain.Kind]kindOps{
		domain.KindMembers: {
			list:     listAs(api.ListMembers),
			fallback: func() []domain.Record { return records(ds.Members()) },
			create:   writeAs(api.CreateMember),
			update:   writeAs(api.UpdateMember),
			remove:   func(ctx context.Context, id string) error { return api.DeleteMember(ctx, domain.MemberID(id)) },
		},
		domain.KindEvents: {
			list:     listAs(api.ListEvents),
			fallback: func() []domain.Record { return records(ds.Events()) },
			create:   writeAs(api.CreateEvent),
			update:   writeAs(api.UpdateEvent),
			remove:   func(ctx context.Context, id string) error { return api.DeleteEvent(ctx, domain.EventID(id)) },
		},
		domain.KindGallery: {
			list:     listAs(api.ListGallery),
			fallback: func() []domain.Record { return records(ds.Gallery()) },
			create:   writeAs(api.CreateGalleryItem),
			remove:   func(ctx context.Context, id string) error { return api.DeleteGalleryItem(ctx, domain.GalleryItemID(id)) },
		},
	}
}

func listAs[T domain.Record](list func(context.Context) ([]T, error)) func(context.Context) ([]domain.Record, error) {
	return func(ctx context.Context) ([]domain.Record, error) {
		items, err := list(ctx)
		if err != nil {
			return nil, err
		}
		return records(items), nil
	}
}

func writeAs[T domain.Record](write func(context.Context, T) (T, error)) func(context.Context, domain.Record) error {
	return func(ctx context.Context, r domain.Record) error {
		v, ok := r.(T)
		if !ok {
			return fmt.Errorf("admin: %s payload has type %T", r.Kind(), r)
		}
		_, err := write(ctx, v)
		return err
	}
}

func records[T domain.Record](items []T) []domain.Record {
	out := make([]domain.Record, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

func typed[T domain.Record](rs []domain.Record) []T {
	out := make([]T, 0, len(rs))
	for _, r := range rs {
		if v, ok := r.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
