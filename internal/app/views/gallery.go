package views

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rotary-puebla/club-site-api/internal/domain"
	"github.com/rotary-puebla/club-site-api/internal/fallback"
	"github.com/rotary-puebla/club-site-api/internal/ports/out/clock"
	"github.com/rotary-puebla/club-site-api/internal/ports/out/contentapi"
)

// GalleryView is the interactive gallery. It owns the auto-advance task,
// which runs between Start and Close.
type GalleryView struct {
	items    []domain.GalleryItem
	fallback bool
	carousel *Carousel

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func LoadGallery(ctx context.Context, api contentapi.GalleryAPI, ds fallback.Dataset, clk clock.TickerClock, interval time.Duration, log zerolog.Logger) *GalleryView {
	res := Load(ctx, log, domain.KindGallery, api.ListGallery, ds.Gallery)
	return &GalleryView{
		items:    res.Items,
		fallback: res.Fallback,
		carousel: NewCarousel(len(res.Items), clk, interval),
	}
}

func (g *GalleryView) Items() []domain.GalleryItem {
	out := make([]domain.GalleryItem, len(g.items))
	for i, it := range g.items {
		out[i] = it.Clone()
	}
	return out
}

func (g *GalleryView) Fallback() bool { return g.fallback }

func (g *GalleryView) Carousel() *Carousel { return g.carousel }

// Focused returns the focused item, or false when the gallery is empty.
func (g *GalleryView) Focused() (domain.GalleryItem, bool) {
	if len(g.items) == 0 {
		return domain.GalleryItem{}, false
	}
	i := g.carousel.Index()
	if i >= len(g.items) {
		i = 0
	}
	return g.items[i].Clone(), true
}

// Hover pauses rotation while the pointer is over the gallery.
func (g *GalleryView) Hover(over bool) {
	if over {
		g.carousel.Pause()
		return
	}
	g.carousel.Resume()
}

// Start begins auto-advancing. Calling Start again while running is a no-op.
func (g *GalleryView) Start(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		return
	}
	ctx, g.cancel = context.WithCancel(ctx)
	g.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		g.carousel.Run(ctx)
	}(g.done)
}

// Close stops auto-advancing and waits for the task to exit.
func (g *GalleryView) Close() {
	g.mu.Lock()
	cancel, done := g.cancel, g.done
	g.cancel, g.done = nil, nil
	g.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}
