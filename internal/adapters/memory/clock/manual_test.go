package clock

import (
	"testing"
	"time"
)

func TestManualClock_AdvanceFiresTickers(t *testing.T) {
	t.Parallel()

	start := time.Unix(100, 0).UTC()
	c := NewManualClock(start)
	tk := c.NewTicker(4 * time.Second)

	c.Advance(3 * time.Second)
	select {
	case <-tk.C():
		t.Fatalf("ticker fired early")
	default:
	}

	c.Advance(time.Second)
	select {
	case got := <-tk.C():
		if !got.Equal(start.Add(4 * time.Second)) {
			t.Fatalf("tick=%v", got)
		}
	default:
		t.Fatalf("expected a tick")
	}

	// Unread ticks are dropped, not queued.
	c.Advance(12 * time.Second)
	<-tk.C()
	select {
	case <-tk.C():
		t.Fatalf("expected dropped ticks")
	default:
	}

	if c.ActiveTickers() != 1 {
		t.Fatalf("ActiveTickers=%d", c.ActiveTickers())
	}
	tk.Stop()
	if c.ActiveTickers() != 0 {
		t.Fatalf("ActiveTickers after Stop=%d", c.ActiveTickers())
	}
	if !c.Now().Equal(start.Add(16 * time.Second)) {
		t.Fatalf("Now=%v", c.Now())
	}
}
