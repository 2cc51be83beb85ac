package sheet

import (
	"math"
	"sync"

	"github.com/go-drift/bottomsheet/pkg/geometry"
)

// OffsetState is the record shared between a sheet's gesture session, its
// animation driver and its scroll coordinator. Reads are safe from any
// goroutine. Writes are package-internal and happen on the render context,
// by one writer at a time.
type OffsetState struct {
	mu sync.Mutex

	translation float64
	target      float64 // NaN when no animation is in flight
	index       int

	scrollOffset     float64
	hasScrollable    bool
	scrollableActive bool
	scrollableLocked bool

	geometry Geometry

	// observer runs after every translation write, outside the lock.
	observer func(translation float64, g Geometry)
}

func newOffsetState(g Geometry, index int) *OffsetState {
	return &OffsetState{
		translation: g.Tallest,
		target:      math.NaN(),
		index:       ClampIndex(index, g.Len()),
		geometry:    g,
	}
}

// Translation returns the vertical offset from the fully extended position.
func (s *OffsetState) Translation() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.translation
}

// Target returns the in-flight animation target, if any.
func (s *OffsetState) Target() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target, !math.IsNaN(s.target)
}

// Index returns the current snap index.
func (s *OffsetState) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// ScrollOffset returns the attached scrollable's last reported offset.
func (s *OffsetState) ScrollOffset() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrollOffset
}

// HasScrollable reports whether a scrollable is attached.
func (s *OffsetState) HasScrollable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasScrollable
}

// ScrollableGestureActive reports whether a finger is actively dragging the
// scrollable, as opposed to the list coasting.
func (s *OffsetState) ScrollableGestureActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrollableActive
}

// ScrollableLocked reports whether the sheet currently owns the drag and the
// scrollable's own gesture is disabled.
func (s *OffsetState) ScrollableLocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrollableLocked
}

// Geometry returns the current resolved geometry.
func (s *OffsetState) Geometry() Geometry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.geometry
}

// setTranslation writes v clamped into [0, tallest] and returns the stored
// value.
func (s *OffsetState) setTranslation(v float64) float64 {
	s.mu.Lock()
	v = geometry.Clamp(v, 0, s.geometry.Tallest)
	s.translation = v
	g := s.geometry
	observer := s.observer
	s.mu.Unlock()
	if observer != nil {
		observer(v, g)
	}
	return v
}

func (s *OffsetState) setTarget(v float64) {
	s.mu.Lock()
	s.target = v
	s.mu.Unlock()
}

func (s *OffsetState) clearTarget() {
	s.setTarget(math.NaN())
}

func (s *OffsetState) setIndex(i int) {
	s.mu.Lock()
	s.index = ClampIndex(i, s.geometry.Len())
	s.mu.Unlock()
}

// setGeometry installs g, re-clamps translation and index, and notifies the
// observer.
func (s *OffsetState) setGeometry(g Geometry) {
	s.mu.Lock()
	s.geometry = g
	s.index = ClampIndex(s.index, g.Len())
	t := s.translation
	s.mu.Unlock()
	s.setTranslation(t)
}

func (s *OffsetState) setScrollOffset(v float64) {
	if v < 0 || math.IsNaN(v) {
		v = 0
	}
	s.mu.Lock()
	s.scrollOffset = v
	s.mu.Unlock()
}

func (s *OffsetState) setHasScrollable(v bool) {
	s.mu.Lock()
	s.hasScrollable = v
	s.mu.Unlock()
}

func (s *OffsetState) setScrollableActive(v bool) {
	s.mu.Lock()
	s.scrollableActive = v
	s.mu.Unlock()
}

func (s *OffsetState) setScrollableLocked(v bool) {
	s.mu.Lock()
	s.scrollableLocked = v
	s.mu.Unlock()
}

func (s *OffsetState) setObserver(fn func(translation float64, g Geometry)) {
	s.mu.Lock()
	s.observer = fn
	s.mu.Unlock()
}

// detachScrollable clears every scrollable flag in one step.
func (s *OffsetState) detachScrollable() {
	s.mu.Lock()
	s.hasScrollable = false
	s.scrollableActive = false
	s.scrollableLocked = false
	s.scrollOffset = 0
	s.mu.Unlock()
}
