package clock

import "time"

// Clock provides time to the application.
// Using an interface enables deterministic tests via a controllable implementation.
type Clock interface {
	Now() time.Time
}

// Ticker delivers ticks on C until stopped. Ticks that arrive while a
// previous one is still unread are dropped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerClock is a Clock that can also schedule periodic ticks.
type TickerClock interface {
	Clock
	NewTicker(d time.Duration) Ticker
}
