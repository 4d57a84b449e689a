package content

import (
	"context"
	"errors"

	"github.com/rotary-puebla/club-site-api/internal/domain"
	"github.com/rotary-puebla/club-site-api/internal/ports/out/contentrepo"
)

// Service implements the Content API use cases over the three store ports.
// It performs no validation of record fields: the store accepts whatever the
// admin surface sends.
type Service struct {
	members contentrepo.MemberRepository
	events  contentrepo.EventRepository
	gallery contentrepo.GalleryRepository
}

func NewService(members contentrepo.MemberRepository, events contentrepo.EventRepository, gallery contentrepo.GalleryRepository) *Service {
	return &Service{members: members, events: events, gallery: gallery}
}

func (s *Service) ListMembers(ctx context.Context) ([]domain.Member, error) {
	ms, err := s.members.List(ctx)
	if err != nil {
		return nil, storeError("Failed to fetch members", err)
	}
	return ms, nil
}

// CreateMember stores m under a new id; any id on m is ignored.
func (s *Service) CreateMember(ctx context.Context, m domain.Member) (domain.Member, error) {
	m.ID = ""
	out, err := s.members.Create(ctx, m)
	if err != nil {
		return domain.Member{}, storeError("Database error", err)
	}
	return out, nil
}

func (s *Service) UpdateMember(ctx context.Context, m domain.Member) (domain.Member, error) {
	if m.ID == "" {
		return domain.Member{}, missingID()
	}
	out, err := s.members.Update(ctx, m)
	if err != nil {
		if errors.Is(err, contentrepo.ErrNotFound) {
			return domain.Member{}, notFound("member", string(m.ID), err)
		}
		return domain.Member{}, storeError("Database error", err)
	}
	return out, nil
}

func (s *Service) DeleteMember(ctx context.Context, id domain.MemberID) error {
	if id == "" {
		return missingID()
	}
	if err := s.members.Delete(ctx, id); err != nil {
		return storeError("Database error", err)
	}
	return nil
}

func (s *Service) ListEvents(ctx context.Context) ([]domain.Event, error) {
	es, err := s.events.List(ctx)
	if err != nil {
		return nil, storeError("Failed to fetch events", err)
	}
	return es, nil
}

func (s *Service) CreateEvent(ctx context.Context, e domain.Event) (domain.Event, error) {
	e.ID = ""
	out, err := s.events.Create(ctx, e)
	if err != nil {
		return domain.Event{}, storeError("Database error", err)
	}
	return out, nil
}

func (s *Service) UpdateEvent(ctx context.Context, e domain.Event) (domain.Event, error) {
	if e.ID == "" {
		return domain.Event{}, missingID()
	}
	out, err := s.events.Update(ctx, e)
	if err != nil {
		if errors.Is(err, contentrepo.ErrNotFound) {
			return domain.Event{}, notFound("event", string(e.ID), err)
		}
		return domain.Event{}, storeError("Database error", err)
	}
	return out, nil
}

func (s *Service) DeleteEvent(ctx context.Context, id domain.EventID) error {
	if id == "" {
		return missingID()
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return storeError("Database error", err)
	}
	return nil
}

func (s *Service) ListGallery(ctx context.Context) ([]domain.GalleryItem, error) {
	gs, err := s.gallery.List(ctx)
	if err != nil {
		return nil, storeError("Failed to fetch gallery", err)
	}
	return gs, nil
}

func (s *Service) CreateGalleryItem(ctx context.Context, g domain.GalleryItem) (domain.GalleryItem, error) {
	g.ID = ""
	out, err := s.gallery.Create(ctx, g)
	if err != nil {
		return domain.GalleryItem{}, storeError("Database error", err)
	}
	return out, nil
}

func (s *Service) DeleteGalleryItem(ctx context.Context, id domain.GalleryItemID) error {
	if id == "" {
		return missingID()
	}
	if err := s.gallery.Delete(ctx, id); err != nil {
		return storeError("Database error", err)
	}
	return nil
}
