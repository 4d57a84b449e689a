package content

import (
	"context"
	"fmt"

	"github.com/rotary-puebla/club-site-api/internal/fallback"
)

// SeedResult reports how many records Seed inserted per kind.
type SeedResult struct {
	Members int
	Events  int
	Gallery int
}

// Seed fills each empty collection from the dataset, in dataset order.
// Collections that already hold records are left untouched, so Seed is safe
// to run on every start. Store ids are assigned fresh.
func (s *Service) Seed(ctx context.Context, ds fallback.Dataset) (SeedResult, error) {
	var res SeedResult

	ms, err := s.members.List(ctx)
	if err != nil {
		return res, fmt.Errorf("seed members: %w", err)
	}
	if len(ms) == 0 {
		for _, m := range ds.Members() {
			m.ID = ""
			if _, err := s.members.Create(ctx, m); err != nil {
				return res, fmt.Errorf("seed member %q: %w", m.Name, err)
			}
			res.Members++
		}
	}

	es, err := s.events.List(ctx)
	if err != nil {
		return res, fmt.Errorf("seed events: %w", err)
	}
	if len(es) == 0 {
		for _, e := range ds.Events() {
			e.ID = ""
			if _, err := s.events.Create(ctx, e); err != nil {
				return res, fmt.Errorf("seed event %q: %w", e.Title, err)
			}
			res.Events++
		}
	}

	gs, err := s.gallery.List(ctx)
	if err != nil {
		return res, fmt.Errorf("seed gallery: %w", err)
	}
	if len(gs) == 0 {
		for _, g := range ds.Gallery() {
			g.ID = ""
			if _, err := s.gallery.Create(ctx, g); err != nil {
				return res, fmt.Errorf("seed gallery item %q: %w", g.Caption, err)
			}
			res.Gallery++
		}
	}

	return res, nil
}
