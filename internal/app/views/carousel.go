package views

import (
	"context"
	"sync"
	"time"

	"github.com/rotary-puebla/club-site-api/internal/ports/out/clock"
)

// DefaultRotationInterval is how long each gallery card stays focused.
const DefaultRotationInterval = 4 * time.Second

const (
	// visibleSpread is how many cards either side of the focused one are shown.
	visibleSpread = 2
	// swipeThreshold is the horizontal drag distance that counts as a swipe.
	swipeThreshold = 50
)

// Carousel tracks the focused gallery card. Index arithmetic is modular over
// Len(); an empty carousel always reports index 0 and ignores navigation.
//
// Run drives automatic advancing. The timer restarts whenever the focus is
// moved by hand, the pause state changes or the length changes, so a manual
// move always gets a full interval.
type Carousel struct {
	clk      clock.TickerClock
	interval time.Duration

	mu     sync.Mutex
	n      int
	index  int
	paused bool

	reset chan struct{}
}

func NewCarousel(n int, clk clock.TickerClock, interval time.Duration) *Carousel {
	if interval <= 0 {
		interval = DefaultRotationInterval
	}
	if n < 0 {
		n = 0
	}
	return &Carousel{clk: clk, interval: interval, n: n, reset: make(chan struct{}, 1)}
}

func (c *Carousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

func (c *Carousel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// SetLen changes the number of cards, keeping the index when it is still in range.
func (c *Carousel) SetLen(n int) {
	if n < 0 {
		n = 0
	}
	c.mu.Lock()
	c.n = n
	if c.index >= n {
		c.index = 0
	}
	c.mu.Unlock()
	c.restart()
}

func (c *Carousel) Next() {
	c.move(1)
	c.restart()
}

func (c *Carousel) Prev() {
	c.move(-1)
	c.restart()
}

// Select focuses card i, wrapping out-of-range values.
func (c *Carousel) Select(i int) {
	c.mu.Lock()
	if c.n > 0 {
		c.index = mod(i, c.n)
	}
	c.mu.Unlock()
	c.restart()
}

// Swipe applies a horizontal drag of dx pixels: left goes forward, right goes back.
func (c *Carousel) Swipe(dx float64) {
	switch {
	case dx < -swipeThreshold:
		c.Next()
	case dx > swipeThreshold:
		c.Prev()
	}
}

func (c *Carousel) Pause()  { c.setPaused(true) }
func (c *Carousel) Resume() { c.setPaused(false) }

func (c *Carousel) TogglePause() {
	c.mu.Lock()
	c.paused = !c.paused
	c.mu.Unlock()
	c.restart()
}

func (c *Carousel) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Tick is one automatic advance. It does nothing while paused.
func (c *Carousel) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused || c.n == 0 {
		return
	}
	c.index = mod(c.index+1, c.n)
}

// Placement is the position of card i relative to the focused card.
type Placement struct {
	// Offset is the shortest circular distance, negative to the left.
	Offset  int
	Active  bool
	Visible bool
}

func (c *Carousel) Placement(i int) Placement {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.n == 0 {
		return Placement{}
	}
	diff := mod(i-c.index, c.n)
	if diff*2 > c.n {
		diff -= c.n
	}
	return Placement{
		Offset:  diff,
		Active:  diff == 0,
		Visible: diff >= -visibleSpread && diff <= visibleSpread,
	}
}

// Run advances the carousel every interval until ctx is done. Only one Run
// may be active per Carousel.
func (c *Carousel) Run(ctx context.Context) {
	for {
		tk := c.startTicker()
		var tick <-chan time.Time
		if tk != nil {
			tick = tk.C()
		}

	wait:
		for {
			select {
			case <-ctx.Done():
				if tk != nil {
					tk.Stop()
				}
				return
			case <-c.reset:
				break wait
			case <-tick:
				c.Tick()
			}
		}
		if tk != nil {
			tk.Stop()
		}
	}
}

// startTicker returns nil when there is nothing to rotate.
func (c *Carousel) startTicker() clock.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused || c.n < 2 {
		return nil
	}
	return c.clk.NewTicker(c.interval)
}

func (c *Carousel) setPaused(p bool) {
	c.mu.Lock()
	changed := c.paused != p
	c.paused = p
	c.mu.Unlock()
	if changed {
		c.restart()
	}
}

func (c *Carousel) move(step int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.n == 0 {
		return
	}
	c.index = mod(c.index+step, c.n)
}

func (c *Carousel) restart() {
	select {
	case c.reset <- struct{}{}:
	default:
	}
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
