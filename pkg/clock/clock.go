// Package clock provides the wall-clock source and the 1 Hz ticker that
// drives the alarm evaluation loop.
package clock

import (
	"sync"
	"time"
)

// Clock supplies the current instant. The alarm machine and the presentation
// layer sample it once per tick, so tests can substitute a fixed source.
type Clock interface {
	Now() time.Time
}

// System reads the real local clock.
type System struct{}

// Now implements Clock.
func (System) Now() time.Time {
	return time.Now()
}

// Ticker invokes a callback approximately once per interval with the current
// time. The callback runs on a single goroutine, so one invocation always
// completes before the next begins.
type Ticker struct {
	clock    Clock
	interval time.Duration
	fn       func(now time.Time)

	ticker   *time.Ticker
	stop     chan struct{}
	stopOnce sync.Once
}

// NewTicker creates a ticker that calls fn with clock's current time every
// interval. Call Start to begin ticking.
func NewTicker(c Clock, interval time.Duration, fn func(now time.Time)) *Ticker {
	return &Ticker{
		clock:    c,
		interval: interval,
		fn:       fn,
		stop:     make(chan struct{}),
	}
}

// Start begins delivering ticks in a background goroutine.
func (t *Ticker) Start() {
	t.ticker = time.NewTicker(t.interval)

	go func() {
		for {
			select {
			case <-t.stop:
				return
			case <-t.ticker.C:
				t.fn(t.clock.Now())
			}
		}
	}()
}

// Stop halts tick delivery and releases the underlying timer. Safe to call
// more than once, and safe before Start.
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() {
		close(t.stop)
		if t.ticker != nil {
			t.ticker.Stop()
		}
	})
}
