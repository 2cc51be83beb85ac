// Package gestures provides the pointer event model and the two recognizers a
// bottom sheet needs: a manually activated pan gesture for the sheet body and
// a native gesture mirror for embedded scrollable content.
package gestures

import (
	"time"

	"github.com/go-drift/bottomsheet/pkg/geometry"
)

// PointerPhase describes the pointer event phase.
type PointerPhase int

const (
	PointerPhaseDown PointerPhase = iota
	PointerPhaseMove
	PointerPhaseUp
	PointerPhaseCancel
)

func (p PointerPhase) String() string {
	switch p {
	case PointerPhaseDown:
		return "down"
	case PointerPhaseMove:
		return "move"
	case PointerPhaseUp:
		return "up"
	case PointerPhaseCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerEvent describes a pointer interaction in page coordinates.
type PointerEvent struct {
	PointerID int64
	Position  geometry.Offset
	Delta     geometry.Offset
	Phase     PointerPhase
	// Timestamp is used for velocity tracking. Events with a zero timestamp
	// do not contribute to velocity.
	Timestamp time.Time
}
