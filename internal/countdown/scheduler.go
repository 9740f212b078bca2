package countdown

import (
	"sync"
	"time"
)

// CancelFunc stops a repeating schedule. Calling it more than once is a no-op.
type CancelFunc func()

// Scheduler dispatches a repeating callback. The production implementation is
// a ticker goroutine; tests substitute a hand-cranked scheduler to step ticks
// deterministically.
type Scheduler interface {
	Every(d time.Duration, tick func()) CancelFunc
}

// TickerScheduler schedules ticks on a time.Ticker in its own goroutine. Ticks
// are dispatched one at a time: a tick always returns before the next fires.
type TickerScheduler struct{}

func (TickerScheduler) Every(d time.Duration, tick func()) CancelFunc {
	if d <= 0 {
		// time.NewTicker rejects non-positive intervals; clamp to the
		// smallest interval instead, matching the configuration layer's
		// accept-anything contract.
		d = time.Millisecond
	}
	done := make(chan struct{})
	t := time.NewTicker(d)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				tick()
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

var _ Scheduler = TickerScheduler{}
