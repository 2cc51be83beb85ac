package sheet

import (
	stderrors "errors"

	"github.com/go-drift/bottomsheet/pkg/dispatch"
	"github.com/go-drift/bottomsheet/pkg/errors"
	"github.com/go-drift/bottomsheet/pkg/geometry"
	"github.com/go-drift/bottomsheet/pkg/gestures"
)

// PointerPolicy tells the host how the sheet's full-screen container should
// treat pointers.
type PointerPolicy int

const (
	// PointerBoxNone passes pointers outside the sheet through.
	PointerBoxNone PointerPolicy = iota
	// PointerAuto captures pointers, including scrim presses.
	PointerAuto
	// PointerNone ignores pointers entirely.
	PointerNone
)

func (p PointerPolicy) String() string {
	switch p {
	case PointerAuto:
		return "auto"
	case PointerNone:
		return "none"
	default:
		return "box-none"
	}
}

// Sheet is a multi-detent bottom sheet.
//
// HandlePointer, RecomputeGeometry and the scroll coordinator's methods must
// be called on the render context, as must animation.StepTickers. The
// setters hop onto the render context through Config.Render and may be
// called from anywhere. Getters are safe from any goroutine.
type Sheet struct {
	cfg Config

	// Geometry inputs, owned by the render context.
	detents   DetentSet
	content   float64
	container float64

	state    *OffsetState
	scroll   *ScrollCoordinator
	driver   *AnimationDriver
	pan      *PanRecognizer
	notifier *IndexChangeNotifier
	render   dispatch.Executor
}

// NewSheet builds a sheet and starts animating it from hidden to
// cfg.Index. It fails with a configuration error when the detents are empty
// or invalid.
func NewSheet(cfg Config) (*Sheet, error) {
	cfg = cfg.withDefaults()
	g, err := NewGeometry(cfg.Detents, cfg.ContentExtent, cfg.ContainerExtent)
	if err != nil {
		return nil, err
	}

	state := newOffsetState(g, cfg.Index)
	rec := &recorder{buf: cfg.Trace, state: state}
	s := &Sheet{
		cfg:       cfg,
		detents:   cfg.Detents,
		content:   cfg.ContentExtent,
		container: cfg.ContainerExtent,
		state:     state,
		render:    cfg.Render,
	}
	s.scroll = newScrollCoordinator(state, cfg.Measurer)
	s.driver = newAnimationDriver(state, cfg.OpenSpring, cfg.CloseSpring, rec)
	s.notifier = newIndexChangeNotifier(cfg.Control, cfg.OnIndexChange, rec)
	s.pan = newPanRecognizer(state, s.scroll, s.driver, s.notifier)
	s.pan.trace = rec
	rec.session = &s.pan.session

	state.setObserver(s.report)
	s.driver.AnimateToIndex(state.Index(), nil)
	return s, nil
}

// HandlePointer feeds a touch event to the sheet.
func (s *Sheet) HandlePointer(event gestures.PointerEvent) {
	s.pan.HandleEvent(event)
}

// Scroll returns the coordinator for the sheet's embedded scrollable.
func (s *Sheet) Scroll() *ScrollCoordinator {
	return s.scroll
}

// State returns the sheet's shared offset state.
func (s *Sheet) State() *OffsetState {
	return s.state
}

// Session returns a copy of the current or last gesture session.
func (s *Sheet) Session() GestureSession {
	return s.pan.Session()
}

// Geometry returns the resolved detents.
func (s *Sheet) Geometry() Geometry {
	return s.state.Geometry()
}

// Index returns the current snap index.
func (s *Sheet) Index() int {
	return s.state.Index()
}

// Translation returns the sheet's offset from fully extended.
func (s *Sheet) Translation() float64 {
	return s.state.Translation()
}

// Position returns the visible extent of the sheet.
func (s *Sheet) Position() float64 {
	return position(s.state.Translation(), s.state.Geometry())
}

// ScrimProgress returns the visible extent relative to the first nonzero
// detent, clamped to [0, 1].
func (s *Sheet) ScrimProgress() float64 {
	g := s.state.Geometry()
	return scrimProgress(position(s.state.Translation(), g), g)
}

// Animating reports whether a settle spring is running.
func (s *Sheet) Animating() bool {
	return s.driver.Animating()
}

// Hidden reports whether the sheet is translated fully out of view.
func (s *Sheet) Hidden() bool {
	return s.state.Translation() >= s.state.Geometry().Tallest
}

// PointerPolicy returns how the sheet's container should treat pointers.
func (s *Sheet) PointerPolicy() PointerPolicy {
	if !s.cfg.Modal {
		return PointerBoxNone
	}
	if s.state.Geometry().Extent(s.state.Index()) == 0 {
		return PointerNone
	}
	return PointerAuto
}

// SetIndex animates to the detent at index, clamped into range. The owner
// is not notified, since it requested the change.
func (s *Sheet) SetIndex(index int) {
	s.post(func() {
		n := s.state.Geometry().Len()
		s.driver.AnimateToIndex(ClampIndex(index, n), nil)
	})
}

// SetDetents replaces the detent set. Invalid sets are rejected
// synchronously and leave the sheet unchanged.
func (s *Sheet) SetDetents(detents DetentSet) error {
	if _, err := ResolveDetents(detents, 0, 0); err != nil {
		return err
	}
	detents = append(DetentSet(nil), detents...)
	s.post(func() {
		s.detents = detents
		s.recomputeOrReport()
	})
	return nil
}

// SetContentExtent records the measured content height.
func (s *Sheet) SetContentExtent(extent float64) {
	s.post(func() {
		s.content = extent
		s.recomputeOrReport()
	})
}

// SetContainerExtent records the available vertical space.
func (s *Sheet) SetContainerExtent(extent float64) {
	s.post(func() {
		s.container = extent
		s.recomputeOrReport()
	})
}

// PressScrim handles a press on a modal sheet's scrim by moving to the first
// detent that resolves to 0, notifying the owner. It does nothing for
// non-modal sheets, when no such detent exists, or when already there.
func (s *Sheet) PressScrim() {
	if !s.cfg.Modal {
		return
	}
	s.post(func() {
		closed := s.state.Geometry().ZeroIndex()
		if closed < 0 || closed == s.state.Index() {
			return
		}
		s.notifier.Notify(closed)
		s.driver.AnimateToIndex(closed, nil)
	})
}

// RecomputeGeometry re-resolves the detents against the current extents.
// When the result differs from the current geometry, the index is
// re-clamped and the sheet re-animates to it. While a drag is in progress
// the re-animate is left to the drag's release.
func (s *Sheet) RecomputeGeometry() error {
	g, err := NewGeometry(s.detents, s.content, s.container)
	if err != nil {
		return err
	}
	prev := s.state.Geometry()
	if g.sameResolution(prev) {
		return nil
	}
	s.state.setGeometry(g)
	if s.pan.Dragging() {
		return nil
	}
	s.driver.CancelTarget()
	s.driver.AnimateToIndex(s.state.Index(), nil)
	return nil
}

// Close stops any running animation.
func (s *Sheet) Close() {
	s.post(s.driver.halt)
}

func (s *Sheet) recomputeOrReport() {
	if err := s.RecomputeGeometry(); err != nil {
		var se *errors.SheetError
		if !stderrors.As(err, &se) {
			se = &errors.SheetError{Op: "sheet.RecomputeGeometry", Err: err}
		}
		errors.Report(se)
	}
}

func (s *Sheet) post(fn func()) {
	if !s.render.Post(fn) {
		errors.Warn(&errors.SheetError{
			Op:   "sheet.post",
			Kind: errors.KindDispatch,
			Err:  ErrDispatchRejected,
		})
	}
}

func (s *Sheet) report(translation float64, g Geometry) {
	if s.cfg.OnPosition == nil && s.cfg.OnScrimProgress == nil {
		return
	}
	p := position(translation, g)
	if s.cfg.OnPosition != nil {
		s.cfg.OnPosition(p)
	}
	if s.cfg.OnScrimProgress != nil {
		s.cfg.OnScrimProgress(scrimProgress(p, g))
	}
}

func position(translation float64, g Geometry) float64 {
	return max(0, g.Tallest-translation)
}

func scrimProgress(position float64, g Geometry) float64 {
	if g.FirstNonzero <= 0 {
		return 0
	}
	return geometry.Clamp(position/g.FirstNonzero, 0, 1)
}
