package clock

import (
	"sync"
	"time"

	clockport "github.com/rotary-puebla/club-site-api/internal/ports/out/clock"
)

// ManualClock is a controllable clock for tests. Time only moves on Advance,
// and tickers fire when Advance crosses their next deadline.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers map[*manualTicker]struct{}
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start, tickers: make(map[*manualTicker]struct{})}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves time forward by d and fires due tickers. A ticker whose
// channel is still full drops the tick, like time.Ticker.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	for tk := range c.tickers {
		for !tk.next.After(c.now) {
			select {
			case tk.ch <- tk.next:
			default:
			}
			tk.next = tk.next.Add(tk.period)
		}
	}
}

// ActiveTickers reports how many tickers are running.
func (c *ManualClock) ActiveTickers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

func (c *ManualClock) NewTicker(d time.Duration) clockport.Ticker {
	if d <= 0 {
		panic("non-positive interval for ManualClock.NewTicker")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	tk := &manualTicker{clk: c, ch: make(chan time.Time, 1), period: d, next: c.now.Add(d)}
	c.tickers[tk] = struct{}{}
	return tk
}

type manualTicker struct {
	clk    *ManualClock
	ch     chan time.Time
	period time.Duration
	next   time.Time
}

func (t *manualTicker) C() <-chan time.Time { return t.ch }

func (t *manualTicker) Stop() {
	t.clk.mu.Lock()
	defer t.clk.mu.Unlock()
	delete(t.clk.tickers, t)
}
