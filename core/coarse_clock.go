package core

import (
	"sync"
	"sync/atomic"
	"time"
)

// coarseInterval is how often the cached clock is refreshed.
const coarseInterval = 500 * time.Microsecond

var (
	coarseClockOnce sync.Once
	coarseNow       atomic.Pointer[time.Time]
)

// StartCoarseClock starts the background goroutine that caches
// time.Now() every 500µs. It is safe to call multiple times; the
// goroutine is started exactly once and runs for the lifetime of the
// process.
func StartCoarseClock() {
	coarseClockOnce.Do(func() {
		storeNow()
		go func() {
			ticker := time.NewTicker(coarseInterval)
			for range ticker.C {
				storeNow()
			}
		}()
	})
}

func storeNow() {
	t := time.Now()
	coarseNow.Store(&t)
}

// CoarseNow returns the most recently cached time. Before
// StartCoarseClock has run it falls back to time.Now().
func CoarseNow() time.Time {
	if t := coarseNow.Load(); t != nil {
		return *t
	}
	return time.Now()
}
