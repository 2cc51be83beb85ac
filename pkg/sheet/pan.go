package sheet

import (
	"math"

	"github.com/google/uuid"

	"github.com/go-drift/bottomsheet/pkg/geometry"
	"github.com/go-drift/bottomsheet/pkg/gestures"
)

// GestureSession is the per-touch state of a sheet drag. It lives from touch
// down to gesture end or cancellation.
type GestureSession struct {
	ID    uuid.UUID
	Start geometry.Offset
	// Activated is set once the pan recognizer has taken the touch.
	Activated bool
	// Dragging is set once the sheet is following the finger.
	Dragging bool
	// FromScrollable is set when the drag began while the scrollable's own
	// gesture was active under the finger.
	FromScrollable bool
	// Baseline plus the cumulative pan translation gives the sheet
	// translation.
	Baseline float64
	// WithinScrollable records whether touch down landed inside the
	// scrollable's measured bounds.
	WithinScrollable bool
}

// PanRecognizer decides per touch whether the sheet or its scrollable owns
// the gesture, drags the sheet, and settles it on release. All methods run
// on the render context.
type PanRecognizer struct {
	state    *OffsetState
	scroll   *ScrollCoordinator
	driver   *AnimationDriver
	notifier *IndexChangeNotifier
	trace    *recorder

	session GestureSession
	pan     gestures.PanGesture
}

func newPanRecognizer(state *OffsetState, scroll *ScrollCoordinator, driver *AnimationDriver, notifier *IndexChangeNotifier) *PanRecognizer {
	r := &PanRecognizer{
		state:    state,
		scroll:   scroll,
		driver:   driver,
		notifier: notifier,
	}
	r.pan = gestures.PanGesture{
		OnTouchesDown: r.touchesDown,
		OnTouchesMove: r.touchesMove,
		OnBegin:       r.begin,
		OnUpdate:      r.update,
		OnEnd:         r.end,
	}
	return r
}

// HandleEvent feeds a pointer event to the sheet's pan gesture.
func (r *PanRecognizer) HandleEvent(event gestures.PointerEvent) {
	r.pan.HandleEvent(event)
}

// Session returns a copy of the current gesture session.
func (r *PanRecognizer) Session() GestureSession {
	return r.session
}

// Dragging reports whether the sheet is following a finger.
func (r *PanRecognizer) Dragging() bool {
	return r.session.Dragging
}

func (r *PanRecognizer) touchesDown(event gestures.PointerEvent) {
	r.session = GestureSession{ID: uuid.New(), Start: event.Position}
	r.state.setScrollableLocked(false)
	if r.state.HasScrollable() {
		if bounds, ok := r.scroll.Measure(); ok {
			r.session.WithinScrollable = bounds.Contains(event.Position)
		}
	}
	r.trace.record(TraceTouchDown, 0)
}

// scrollOwnsTouch reports whether the scrollable has content scrolled away
// under the finger, in which case the sheet leaves the touch alone.
func (r *PanRecognizer) scrollOwnsTouch() bool {
	return r.session.WithinScrollable &&
		r.state.HasScrollable() &&
		r.state.ScrollOffset() > 0
}

func (r *PanRecognizer) touchesMove(event gestures.PointerEvent, manager gestures.StateManager) {
	if r.session.Activated {
		return
	}
	if r.scrollOwnsTouch() {
		return
	}
	deltaY := event.Position.Y - r.session.Start.Y
	if deltaY > 0 || r.state.Translation() > 0 {
		r.session.Activated = true
		manager.Activate()
		r.trace.record(TraceActivate, 0)
	}
}

func (r *PanRecognizer) begin(gestures.PointerEvent) {
	r.driver.CancelTarget()
	r.session.Dragging = false
	r.session.FromScrollable = false
	r.session.Baseline = r.state.Translation()
}

func (r *PanRecognizer) update(u gestures.PanUpdate) {
	s := &r.session
	if s.Dragging {
		if s.FromScrollable {
			r.scroll.ScrollToTop()
		}
	} else {
		draggingDown := u.Translation.Y > 0
		if r.scrollOwnsTouch() || (!draggingDown && r.state.Translation() <= 0) {
			return
		}
		hasScrollable := r.state.HasScrollable()
		s.Dragging = true
		s.FromScrollable = hasScrollable && r.state.ScrollableGestureActive() && s.WithinScrollable
		s.Baseline = r.state.Translation() - u.Translation.Y
		if hasScrollable && s.WithinScrollable {
			r.state.setScrollableLocked(true)
			r.scroll.ScrollToTop()
		}
		r.driver.halt()
		r.trace.record(TraceDragStart, u.Velocity.Y)
	}

	raw := s.Baseline + u.Translation.Y
	r.state.setTranslation(raw)

	if s.Dragging && raw < 0 && s.WithinScrollable && r.state.HasScrollable() {
		r.escapeToScrollable()
	}
}

// escapeToScrollable hands the touch back to the scrollable once the sheet
// is fully extended and the finger keeps pushing up.
func (r *PanRecognizer) escapeToScrollable() {
	r.session.Dragging = false
	r.state.setScrollableLocked(false)
	r.trace.record(TraceEscape, 0)

	i := r.state.Geometry().TallestIndex()
	if i < 0 {
		return
	}
	if i != r.state.Index() {
		r.notifier.Notify(i)
	}
	r.driver.AnimateToIndex(i, nil)
}

func (r *PanRecognizer) end(e gestures.PanEnd) {
	wasDragging := r.session.Dragging
	r.state.setScrollableLocked(false)
	r.session.Dragging = false
	r.driver.CancelTarget()
	r.trace.record(TraceRelease, e.Velocity.Y)

	current := r.state.Index()
	if !wasDragging {
		r.driver.AnimateToIndex(current, nil)
		return
	}

	vy := e.Velocity.Y
	target := FindSnapTarget(r.state.Translation(), vy, current, r.state.Geometry().SnapPositions())
	changed := target != current
	if changed {
		r.notifier.Notify(target)
	}
	var velocity *float64
	if changed && !math.IsNaN(vy) && !math.IsInf(vy, 0) {
		velocity = &vy
	}
	r.driver.AnimateToIndex(target, velocity)
}
