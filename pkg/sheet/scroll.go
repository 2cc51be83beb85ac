package sheet

import (
	stderrors "errors"
	"sync"

	"github.com/go-drift/bottomsheet/pkg/errors"
	"github.com/go-drift/bottomsheet/pkg/geometry"
	"github.com/go-drift/bottomsheet/pkg/gestures"
)

// ErrMultipleScrollables is reported as a warning when a second scrollable
// attaches while one is already attached. The newer one wins.
var ErrMultipleScrollables = stderrors.New("multiple scrollables in one sheet; only one is supported")

// Scrollable is the imperative handle of the scroll view embedded in a
// sheet.
type Scrollable interface {
	ScrollTo(x, y float64, animated bool)
}

// LayoutMeasurer reports a node's on-screen bounds in page coordinates. It
// returns false when the node has not been laid out.
type LayoutMeasurer interface {
	Measure() (geometry.Rect, bool)
}

// MeasureFunc adapts a function to LayoutMeasurer.
type MeasureFunc func() (geometry.Rect, bool)

// Measure calls f.
func (f MeasureFunc) Measure() (geometry.Rect, bool) {
	return f()
}

// ScrollCoordinator tracks the single scrollable attached to a sheet and
// decides whether its own gesture is enabled.
type ScrollCoordinator struct {
	state *OffsetState

	mu           sync.Mutex
	scrollable   Scrollable
	measurer     LayoutMeasurer
	fallback     LayoutMeasurer
	generation   uint64
	baseDisabled bool
	onScroll     func(offset float64)

	native gestures.NativeGesture
}

func newScrollCoordinator(state *OffsetState, fallback LayoutMeasurer) *ScrollCoordinator {
	c := &ScrollCoordinator{state: state, fallback: fallback}
	c.native.OnStart = func() { state.setScrollableActive(true) }
	c.native.OnFinalize = func() { state.setScrollableActive(false) }
	return c
}

// Attach registers s as the sheet's scrollable and returns its detach
// function. m measures the scrollable's bounds; when nil, s is used if it
// implements LayoutMeasurer, then the sheet's configured measurer.
//
// Attaching while another scrollable is attached reports a warning and
// replaces it. A stale detach function is a no-op.
func (c *ScrollCoordinator) Attach(s Scrollable, m LayoutMeasurer) (detach func()) {
	if s == nil {
		return func() {}
	}
	if m == nil {
		if sm, ok := s.(LayoutMeasurer); ok {
			m = sm
		}
	}
	c.mu.Lock()
	replaced := c.scrollable != nil
	c.scrollable = s
	c.measurer = m
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	if replaced {
		errors.Warn(&errors.SheetError{
			Op:   "sheet.ScrollCoordinator.Attach",
			Kind: errors.KindScroll,
			Err:  ErrMultipleScrollables,
		})
	}
	c.state.setHasScrollable(true)

	return func() {
		c.mu.Lock()
		if c.generation != gen || c.scrollable == nil {
			c.mu.Unlock()
			return
		}
		c.scrollable = nil
		c.measurer = nil
		c.mu.Unlock()
		c.native.Finalize()
		c.state.detachScrollable()
	}
}

// SetBaseEnabled sets the caller-supplied scroll-enabled flag.
func (c *ScrollCoordinator) SetBaseEnabled(enabled bool) {
	c.mu.Lock()
	c.baseDisabled = !enabled
	c.mu.Unlock()
}

// ScrollEnabled reports whether the scrollable's own gesture should be
// enabled: the base flag, unless the sheet has locked it for a drag.
func (c *ScrollCoordinator) ScrollEnabled() bool {
	c.mu.Lock()
	base := !c.baseDisabled
	c.mu.Unlock()
	return base && !c.state.ScrollableLocked()
}

// SetOnScroll installs a listener for offset updates. It runs on the
// caller's context after the offset is recorded.
func (c *ScrollCoordinator) SetOnScroll(fn func(offset float64)) {
	c.mu.Lock()
	c.onScroll = fn
	c.mu.Unlock()
}

// UpdateOffset records the scrollable's content offset, clamped to at least
// 0.
func (c *ScrollCoordinator) UpdateOffset(y float64) {
	c.state.setScrollOffset(y)
	c.mu.Lock()
	fn := c.onScroll
	c.mu.Unlock()
	if fn != nil {
		fn(c.state.ScrollOffset())
	}
}

// NativeGesture returns the recognizer mirroring the scrollable's own pan.
// Hosts call Begin and Finalize on it from the render context.
func (c *ScrollCoordinator) NativeGesture() *gestures.NativeGesture {
	return &c.native
}

// NativeGestureStart marks a finger as actively dragging the scrollable.
func (c *ScrollCoordinator) NativeGestureStart() {
	c.native.Begin()
}

// NativeGestureFinalize clears the active flag.
func (c *ScrollCoordinator) NativeGestureFinalize() {
	c.native.Finalize()
}

// Measure returns the attached scrollable's bounds. It returns false when
// nothing is attached or the layout is unavailable.
func (c *ScrollCoordinator) Measure() (geometry.Rect, bool) {
	c.mu.Lock()
	attached := c.scrollable != nil
	m := c.measurer
	c.mu.Unlock()
	if !attached {
		return geometry.Rect{}, false
	}
	if m == nil {
		m = c.fallback
	}
	if m == nil {
		return geometry.Rect{}, false
	}
	return m.Measure()
}

// ScrollToTop forces the scrollable's offset to 0 without animation.
func (c *ScrollCoordinator) ScrollToTop() {
	c.mu.Lock()
	s := c.scrollable
	c.mu.Unlock()
	if s != nil {
		s.ScrollTo(0, 0, false)
	}
	c.state.setScrollOffset(0)
}
