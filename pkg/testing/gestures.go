package testing

import (
	"fmt"
	"math"
	"time"

	"github.com/go-drift/bottomsheet/pkg/geometry"
	"github.com/go-drift/bottomsheet/pkg/gestures"
)

// pointerState tracks the last position of an active pointer.
type pointerState struct {
	position geometry.Offset
}

// dragSteps is the number of move events a synthesized drag emits.
const dragSteps = 10

func (t *Tester) allocPointerID() int64 {
	t.nextID++
	return t.nextID
}

// TapAt simulates a tap at the given position.
func (t *Tester) TapAt(pos geometry.Offset) error {
	id := t.allocPointerID()
	if err := t.SendPointerDown(pos, id); err != nil {
		return err
	}
	return t.SendPointerUp(pos, id)
}

// DragFrom simulates a drag from start by delta, one move per frame.
func (t *Tester) DragFrom(start, delta geometry.Offset) error {
	return t.drag(start, delta, FrameDuration, nil)
}

// DragPath simulates a drag through each point in order, one move per
// frame, then lifts at the last point.
func (t *Tester) DragPath(start geometry.Offset, points ...geometry.Offset) error {
	id := t.allocPointerID()
	if err := t.SendPointerDown(start, id); err != nil {
		return err
	}
	last := start
	for _, p := range points {
		t.PumpFrame()
		if err := t.SendPointerMove(p, id); err != nil {
			return err
		}
		last = p
	}
	return t.SendPointerUp(last, id)
}

// Fling simulates a fast drag from start by delta whose moves are spaced so
// the pointer travels at velocity px/s. The reported release velocity
// approaches velocity because recognizers smooth their estimate.
func (t *Tester) Fling(start, delta geometry.Offset, velocity float64) error {
	dist := math.Hypot(delta.X, delta.Y)
	if velocity <= 0 || dist == 0 {
		return fmt.Errorf("Fling: velocity %v and delta %v must be nonzero", velocity, delta)
	}
	step := time.Duration(dist / velocity / dragSteps * float64(time.Second))
	if step <= 0 {
		step = time.Microsecond
	}
	return t.drag(start, delta, step, nil)
}

// ScrollDrag simulates a drag that starts on a scrollable: native is begun
// at touch down and finalized after lift, as the scrollable's own recognizer
// would.
func (t *Tester) ScrollDrag(start, delta geometry.Offset, native *gestures.NativeGesture) error {
	return t.drag(start, delta, FrameDuration, native)
}

func (t *Tester) drag(start, delta geometry.Offset, step time.Duration, native *gestures.NativeGesture) error {
	id := t.allocPointerID()
	if err := t.SendPointerDown(start, id); err != nil {
		return err
	}
	if native != nil {
		native.Begin()
		defer native.Finalize()
	}
	for i := 1; i <= dragSteps; i++ {
		frac := float64(i) / dragSteps
		pos := geometry.Offset{
			X: start.X + delta.X*frac,
			Y: start.Y + delta.Y*frac,
		}
		t.clock.Advance(step)
		t.Pump()
		if err := t.SendPointerMove(pos, id); err != nil {
			return err
		}
	}
	return t.SendPointerUp(start.Add(delta), id)
}

// SendPointerDown sends a pointer-down event at pos with the given pointer ID.
func (t *Tester) SendPointerDown(pos geometry.Offset, pointerID int64) error {
	t.pointers[pointerID] = &pointerState{position: pos}
	return t.sendPointer(gestures.PointerEvent{
		PointerID: pointerID,
		Position:  pos,
		Phase:     gestures.PointerPhaseDown,
	})
}

// SendPointerMove sends a pointer-move event at pos with the given pointer ID.
func (t *Tester) SendPointerMove(pos geometry.Offset, pointerID int64) error {
	return t.sendTracked(pos, pointerID, gestures.PointerPhaseMove)
}

// SendPointerUp sends a pointer-up event at pos with the given pointer ID.
func (t *Tester) SendPointerUp(pos geometry.Offset, pointerID int64) error {
	err := t.sendTracked(pos, pointerID, gestures.PointerPhaseUp)
	delete(t.pointers, pointerID)
	return err
}

// SendPointerCancel sends a pointer-cancel event for the given pointer ID.
func (t *Tester) SendPointerCancel(pointerID int64) error {
	state := t.pointers[pointerID]
	if state == nil {
		return fmt.Errorf("SendPointerCancel: pointer %d is not down", pointerID)
	}
	err := t.sendTracked(state.position, pointerID, gestures.PointerPhaseCancel)
	delete(t.pointers, pointerID)
	return err
}

func (t *Tester) sendTracked(pos geometry.Offset, pointerID int64, phase gestures.PointerPhase) error {
	state := t.pointers[pointerID]
	if state == nil {
		return fmt.Errorf("%s: pointer %d is not down", phase, pointerID)
	}
	delta := pos.Sub(state.position)
	state.position = pos
	return t.sendPointer(gestures.PointerEvent{
		PointerID: pointerID,
		Position:  pos,
		Delta:     delta,
		Phase:     phase,
	})
}

func (t *Tester) sendPointer(event gestures.PointerEvent) error {
	if t.target == nil {
		return fmt.Errorf("no pointer target set")
	}
	event.Timestamp = t.clock.Now()
	t.target.HandlePointer(event)
	return nil
}
