package testing

import (
	"sync"

	"github.com/go-drift/bottomsheet/pkg/geometry"
)

// ScrollCall records one ScrollTo invocation.
type ScrollCall struct {
	X, Y     float64
	Animated bool
}

// FakeScrollable stands in for a scroll view embedded in a sheet. It
// measures itself from Bounds and records every ScrollTo.
type FakeScrollable struct {
	mu     sync.Mutex
	bounds geometry.Rect
	laid   bool
	calls  []ScrollCall
	offset float64
}

// NewFakeScrollable returns a scrollable laid out at bounds.
func NewFakeScrollable(bounds geometry.Rect) *FakeScrollable {
	return &FakeScrollable{bounds: bounds, laid: true}
}

// SetBounds updates the measured bounds. With laid false, Measure reports
// the layout as unavailable.
func (f *FakeScrollable) SetBounds(bounds geometry.Rect, laid bool) {
	f.mu.Lock()
	f.bounds = bounds
	f.laid = laid
	f.mu.Unlock()
}

// Measure reports the scrollable's bounds.
func (f *FakeScrollable) Measure() (geometry.Rect, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bounds, f.laid
}

// ScrollTo records the call and moves the offset to y.
func (f *FakeScrollable) ScrollTo(x, y float64, animated bool) {
	f.mu.Lock()
	f.calls = append(f.calls, ScrollCall{X: x, Y: y, Animated: animated})
	f.offset = y
	f.mu.Unlock()
}

// SetOffset simulates the user having scrolled the content to y.
func (f *FakeScrollable) SetOffset(y float64) {
	f.mu.Lock()
	f.offset = y
	f.mu.Unlock()
}

// Offset returns the current content offset.
func (f *FakeScrollable) Offset() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.offset
}

// ScrollCalls returns a copy of the recorded ScrollTo calls.
func (f *FakeScrollable) ScrollCalls() []ScrollCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ScrollCall(nil), f.calls...)
}
