package gestures

import (
	"time"

	"github.com/go-drift/bottomsheet/pkg/geometry"
)

// velocitySmoothing is the weight kept from the previous velocity estimate
// on each move. The remainder comes from the instantaneous sample.
const velocitySmoothing = 0.8

// velocityWindow is how long a pointer may rest before its earlier speed no
// longer counts toward the release velocity.
const velocityWindow = 100 * time.Millisecond

// StateManager lets a touches-move handler decide whether a pan in manual
// activation mode should become active or give up on the pointer.
type StateManager interface {
	Activate()
	Fail()
}

// PanUpdate carries the state of an active pan.
type PanUpdate struct {
	Position geometry.Offset
	// Translation is the cumulative movement since touch down.
	Translation geometry.Offset
	// Velocity is the smoothed pointer velocity in pixels per second.
	Velocity geometry.Offset
}

// PanEnd is delivered when an active pan lifts or is canceled.
type PanEnd struct {
	Position    geometry.Offset
	Translation geometry.Offset
	Velocity    geometry.Offset
	Canceled    bool
}

type panState int

const (
	panIdle panState = iota
	panPossible
	panActive
	panFailed
)

// PanGesture tracks a single pointer and activates only when its
// OnTouchesMove handler calls Activate on the supplied StateManager.
//
// Callback order for one pointer:
//
//	OnTouchesDown, OnBegin            on down
//	OnTouchesMove                     on each move until activated or failed
//	OnUpdate                          on the activating move and each move after
//	OnEnd                             on up or cancel, only if activated
//	OnFinalize                        always, last
//
// Additional pointers are ignored while one is tracked.
type PanGesture struct {
	OnTouchesDown func(PointerEvent)
	OnTouchesMove func(PointerEvent, StateManager)
	OnBegin       func(PointerEvent)
	OnUpdate      func(PanUpdate)
	OnEnd         func(PanEnd)
	OnFinalize    func(activated bool)

	pointer  int64
	state    panState
	start    geometry.Offset
	last     geometry.Offset
	lastTime time.Time
	velocity geometry.Offset
}

type panManager struct{ g *PanGesture }

func (m panManager) Activate() {
	if m.g.state == panPossible {
		m.g.state = panActive
	}
}

func (m panManager) Fail() {
	if m.g.state == panPossible {
		m.g.state = panFailed
	}
}

// Active reports whether the tracked pointer has activated the pan.
func (g *PanGesture) Active() bool {
	return g.state == panActive
}

// Tracking reports whether a pointer is currently down on the gesture.
func (g *PanGesture) Tracking() bool {
	return g.state != panIdle
}

// HandleEvent feeds a pointer event into the recognizer.
func (g *PanGesture) HandleEvent(event PointerEvent) {
	if event.Phase == PointerPhaseDown {
		g.handleDown(event)
		return
	}
	if g.state == panIdle || event.PointerID != g.pointer {
		return
	}
	switch event.Phase {
	case PointerPhaseMove:
		g.handleMove(event)
	case PointerPhaseUp:
		g.handleEnd(event, false)
	case PointerPhaseCancel:
		g.handleEnd(event, true)
	}
}

func (g *PanGesture) handleDown(event PointerEvent) {
	if g.state != panIdle {
		return
	}
	g.pointer = event.PointerID
	g.state = panPossible
	g.start = event.Position
	g.last = event.Position
	g.lastTime = event.Timestamp
	g.velocity = geometry.Offset{}
	if g.OnTouchesDown != nil {
		g.OnTouchesDown(event)
	}
	if g.OnBegin != nil {
		g.OnBegin(event)
	}
}

func (g *PanGesture) handleMove(event PointerEvent) {
	g.trackVelocity(event)

	if g.state == panPossible && g.OnTouchesMove != nil {
		g.OnTouchesMove(event, panManager{g})
	}
	if g.state == panFailed {
		g.finalize()
		return
	}
	if g.state == panActive && g.OnUpdate != nil {
		g.OnUpdate(PanUpdate{
			Position:    event.Position,
			Translation: event.Position.Sub(g.start),
			Velocity:    g.velocity,
		})
	}
}

func (g *PanGesture) handleEnd(event PointerEvent, canceled bool) {
	if event.Phase == PointerPhaseUp {
		if event.Position != g.last {
			g.trackVelocity(event)
		} else if g.rested(event.Timestamp) {
			g.velocity = geometry.Offset{}
		}
	}
	if g.state == panActive && g.OnEnd != nil {
		g.OnEnd(PanEnd{
			Position:    event.Position,
			Translation: event.Position.Sub(g.start),
			Velocity:    g.velocity,
			Canceled:    canceled,
		})
	}
	g.finalize()
}

func (g *PanGesture) finalize() {
	activated := g.state == panActive
	g.state = panIdle
	if g.OnFinalize != nil {
		g.OnFinalize(activated)
	}
}

// rested reports whether the pointer has been still for longer than
// velocityWindow as of now.
func (g *PanGesture) rested(now time.Time) bool {
	if now.IsZero() || g.lastTime.IsZero() {
		return false
	}
	return now.Sub(g.lastTime) > velocityWindow
}

// trackVelocity updates velocity using exponential smoothing for stable
// fling detection. A sample arriving after a rest starts from zero.
func (g *PanGesture) trackVelocity(event PointerEvent) {
	delta := event.Position.Sub(g.last)
	if g.rested(event.Timestamp) {
		g.velocity = geometry.Offset{}
	} else if !event.Timestamp.IsZero() && !g.lastTime.IsZero() {
		if dt := event.Timestamp.Sub(g.lastTime).Seconds(); dt > 0 {
			g.velocity = geometry.Offset{
				X: g.velocity.X*velocitySmoothing + delta.X/dt*(1-velocitySmoothing),
				Y: g.velocity.Y*velocitySmoothing + delta.Y/dt*(1-velocitySmoothing),
			}
		}
	}
	g.last = event.Position
	g.lastTime = event.Timestamp
}
