// Package animation settles a bottom sheet onto its detents: a closed-form
// [SpringSimulation] that lands exactly on its target, and a frame loop of
// [Ticker] callbacks that the host advances with [StepTickers].
//
//	sim := animation.NewSpringSimulation(animation.SpringFromDuration(1, 300*time.Millisecond), 500, 0, 200)
//	ticker := animation.NewTicker(func(time.Duration) {
//	    if sim.Step(1.0 / 60) {
//	        // sim.Position() == 200
//	    }
//	})
//	ticker.Start()
package animation

import (
	"slices"
	"sync"
	"time"
)

// frameLoop holds the clock and the tickers stepped once per frame, in the
// order they were started.
type frameLoop struct {
	mu      sync.Mutex
	clock   Clock
	tickers []*Ticker
}

var loop = frameLoop{clock: realClock{}}

// Ticker runs onFrame every frame between Start and Stop. onFrame receives
// the time since Start.
type Ticker struct {
	onFrame func(elapsed time.Duration)
	running bool
	started time.Time
}

// NewTicker returns a stopped ticker.
func NewTicker(onFrame func(elapsed time.Duration)) *Ticker {
	return &Ticker{onFrame: onFrame}
}

// Start schedules t for the next frame. Starting a running ticker does
// nothing.
func (t *Ticker) Start() {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	if t.running {
		return
	}
	t.running = true
	t.started = loop.clock.Now()
	loop.tickers = append(loop.tickers, t)
}

// Stop removes t from the frame loop. It may be called from onFrame.
func (t *Ticker) Stop() {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	if !t.running {
		return
	}
	t.running = false
	loop.tickers = slices.DeleteFunc(loop.tickers, func(o *Ticker) bool { return o == t })
}

// Running reports whether t is scheduled.
func (t *Ticker) Running() bool {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	return t.running
}

// Elapsed returns the time since Start, or 0 when stopped.
func (t *Ticker) Elapsed() time.Duration {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	if !t.running {
		return 0
	}
	return loop.clock.Now().Sub(t.started)
}

// StepTickers runs one frame: every ticker running at the start of the call
// gets onFrame once, unless an earlier one stops it. Call it from the render
// context.
func StepTickers() {
	loop.mu.Lock()
	if len(loop.tickers) == 0 {
		loop.mu.Unlock()
		return
	}
	batch := slices.Clone(loop.tickers)
	now := loop.clock.Now()
	loop.mu.Unlock()

	for _, t := range batch {
		loop.mu.Lock()
		running, started := t.running, t.started
		loop.mu.Unlock()
		if running && t.onFrame != nil {
			t.onFrame(now.Sub(started))
		}
	}
}

// HasActiveTickers reports whether any ticker is running.
func HasActiveTickers() bool {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	return len(loop.tickers) > 0
}
