// Package views holds the state behind the public pages: the member directory,
// the events list and the rotating gallery.
//
// Each view lists its kind once. When the list fails for any reason the view
// shows the fallback snapshot for that kind instead and reports Fallback() == true.
package views

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rotary-puebla/club-site-api/internal/domain"
)

// Result is the outcome of a Load.
type Result[T any] struct {
	Items    []T
	Fallback bool
	// Err is the list failure that triggered the fallback, if any.
	Err error
}

// Load lists one kind, substituting fallback() on any error. Items is never nil.
func Load[T any](ctx context.Context, log zerolog.Logger, kind domain.Kind, list func(context.Context) ([]T, error), fallback func() []T) Result[T] {
	items, err := list(ctx)
	if err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Msg("using fallback data")
		items = fallback()
		if items == nil {
			items = []T{}
		}
		return Result[T]{Items: items, Fallback: true, Err: err}
	}
	if items == nil {
		items = []T{}
	}
	return Result[T]{Items: items}
}
