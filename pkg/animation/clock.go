package animation

import "time"

// Clock provides time for spring stepping. Tests inject a fake clock via
// SetClock so frame deltas are deterministic.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// SetClock replaces the clock shared by tickers and Now and returns the
// previous one. A nil clock restores system time.
func SetClock(c Clock) Clock {
	if c == nil {
		c = realClock{}
	}
	loop.mu.Lock()
	defer loop.mu.Unlock()
	prev := loop.clock
	loop.clock = c
	return prev
}

// Now returns the current time from the active clock.
func Now() time.Time {
	loop.mu.Lock()
	c := loop.clock
	loop.mu.Unlock()
	return c.Now()
}
