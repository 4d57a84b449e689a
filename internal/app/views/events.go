package views

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rotary-puebla/club-site-api/internal/domain"
	"github.com/rotary-puebla/club-site-api/internal/fallback"
	"github.com/rotary-puebla/club-site-api/internal/ports/out/contentapi"
)

// EventsView is the upcoming-events section.
type EventsView struct {
	events   []domain.Event
	fallback bool
}

func LoadEvents(ctx context.Context, api contentapi.EventAPI, ds fallback.Dataset, log zerolog.Logger) *EventsView {
	res := Load(ctx, log, domain.KindEvents, api.ListEvents, ds.Events)
	return &EventsView{events: res.Items, fallback: res.Fallback}
}

func (v *EventsView) Events() []domain.Event {
	out := make([]domain.Event, len(v.events))
	copy(out, v.events)
	return out
}

func (v *EventsView) Fallback() bool { return v.fallback }
