package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/bottomsheet/pkg/animation"
	"github.com/go-drift/bottomsheet/pkg/dispatch"
	"github.com/go-drift/bottomsheet/pkg/gestures"
)

// FrameDuration is the time each pumped frame advances the fake clock.
const FrameDuration = 16 * time.Millisecond

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: animations did not settle")

// PointerHandler receives synthesized pointer events. *sheet.Sheet
// implements it.
type PointerHandler interface {
	HandlePointer(event gestures.PointerEvent)
}

// Tester drives a pointer handler with a fake clock and a manual control
// executor, so gesture and animation tests are deterministic.
type Tester struct {
	target    PointerHandler
	clock     *FakeClock
	prevClock animation.Clock
	control   *dispatch.Manual
	pointers  map[int64]*pointerState
	nextID    int64
}

// NewTester creates a tester and installs its fake clock as the animation
// clock. Call Cleanup when done, or use NewTesterWithT instead.
func NewTester() *Tester {
	clk := NewFakeClock()
	t := &Tester{
		clock:    clk,
		control:  &dispatch.Manual{},
		pointers: make(map[int64]*pointerState),
	}
	t.prevClock = animation.SetClock(clk)
	return t
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T) *Tester {
	tester := NewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the animation clock.
func (t *Tester) Cleanup() {
	animation.SetClock(t.prevClock)
}

// SetTarget sets the handler that receives pointer events.
func (t *Tester) SetTarget(target PointerHandler) {
	t.target = target
}

// Clock returns the fake clock for advancing time in tests.
func (t *Tester) Clock() *FakeClock {
	return t.clock
}

// Control returns the executor to pass as a sheet's control context.
// Callbacks posted to it run on the next Pump.
func (t *Tester) Control() *dispatch.Manual {
	return t.control
}

// Pump runs a single frame: control callbacks, then animation tickers.
func (t *Tester) Pump() {
	t.control.Drain()
	animation.StepTickers()
}

// PumpFrame advances the clock by one frame and pumps.
func (t *Tester) PumpFrame() {
	t.clock.AdvanceFrames(1)
	t.Pump()
}

// PumpAndSettle runs frames until no tickers are active and no control
// callbacks are pending, or the timeout is reached. Each frame advances the
// fake clock by its frame duration.
func (t *Tester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		t.Pump()
		if !animation.HasActiveTickers() && t.control.Len() == 0 {
			return nil
		}
		elapsed += t.clock.AdvanceFrames(1)
	}
	return ErrSettleTimeout
}
