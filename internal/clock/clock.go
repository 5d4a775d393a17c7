package clock

import (
	"sync"
	"time"
)

// Clock supplies the current instant. The domain core takes explicit time
// arguments; services hold a Clock so the "use current time" convenience
// stays at the orchestration boundary and tests stay deterministic.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System returns a Clock backed by the wall clock, in UTC.
func System() Clock {
	return systemClock{}
}

// FixedClock is a test clock that returns a set instant until advanced.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func Fixed(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *FixedClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
