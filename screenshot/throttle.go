package screenshot

import (
	"sync"
	"time"
)

// DefaultInterval is the minimum time between screenshots.
const DefaultInterval = 30 * time.Second

// Throttle decides whether a screenshot is due. Allow claims the slot when it
// returns true.
type Throttle interface {
	Allow() (bool, error)
}

// IntervalThrottle allows one call per Interval within this process. The
// first call is always allowed.
type IntervalThrottle struct {
	Interval time.Duration

	now  func() time.Time
	mux  sync.Mutex
	last time.Time
}

func NewIntervalThrottle(interval time.Duration) *IntervalThrottle {
	return &IntervalThrottle{Interval: interval, now: time.Now}
}

func (it *IntervalThrottle) Allow() (bool, error) {
	it.mux.Lock()
	defer it.mux.Unlock()

	now := it.now()
	if !it.last.IsZero() && now.Sub(it.last) < it.Interval {
		return false, nil
	}

	it.last = now
	return true, nil
}
