package testing

import (
	"sync"
	"time"
)

// epoch is where every FakeClock starts, so trace timestamps are stable
// across runs.
var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// FakeClock is the animation clock a Tester installs. Time moves only when a
// test advances it, by an arbitrary duration for pointer timing or by whole
// frames for animation stepping.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	frame  time.Duration
	frames int
}

// NewFakeClock returns a clock at the fixed epoch with FrameDuration frames.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: epoch, frame: FrameDuration}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d without counting a frame.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// AdvanceFrames moves the clock forward by n frames and returns the time
// that passed.
func (c *FakeClock) AdvanceFrames(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	d := time.Duration(n) * c.frame
	c.now = c.now.Add(d)
	c.frames += n
	return d
}

// SetFrameDuration changes the length of one frame. Non-positive values
// restore FrameDuration.
func (c *FakeClock) SetFrameDuration(d time.Duration) {
	if d <= 0 {
		d = FrameDuration
	}
	c.mu.Lock()
	c.frame = d
	c.mu.Unlock()
}

// Frames returns how many frames have been advanced.
func (c *FakeClock) Frames() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

// Elapsed returns the total time advanced since the clock was created.
func (c *FakeClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.Sub(epoch)
}
