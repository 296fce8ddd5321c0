package testutil

import (
	"sync"
	"time"
)

// Clock is a manually advanced clock for deterministic tests.
// It satisfies tracker.Clock.
type Clock struct {
	mu      sync.Mutex
	current time.Time
}

// Epoch is the default start of a [Clock].
var Epoch = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC) //nolint:gochecknoglobals // fixed test epoch

// NewClock returns a clock set to [Epoch].
func NewClock() *Clock {
	return NewClockAt(Epoch)
}

// NewClockAt returns a clock set to start.
func NewClockAt(start time.Time) *Clock {
	return &Clock{current: start}
}

// Now returns the current reading.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.current
}

// Advance moves the clock forward by d and returns the new reading.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = c.current.Add(d)

	return c.current
}
