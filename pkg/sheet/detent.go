package sheet

import (
	stderrors "errors"
	"fmt"
	"math"
	"strconv"

	"github.com/go-drift/bottomsheet/pkg/errors"
	"github.com/go-drift/bottomsheet/pkg/geometry"
)

// Configuration errors. Both are returned wrapped in a *errors.SheetError of
// kind errors.KindConfig; match them with errors.Is.
var (
	ErrNoDetents     = stderrors.New("detents must include at least one value")
	ErrInvalidDetent = stderrors.New("invalid detent")
)

// DetentKind selects how a Detent resolves to a pixel extent.
type DetentKind int

const (
	// DetentPixels is an explicit extent in pixels.
	DetentPixels DetentKind = iota
	// DetentFill fits the measured content, or the whole container when the
	// content extent is unknown.
	DetentFill
)

func (k DetentKind) String() string {
	switch k {
	case DetentPixels:
		return "pixels"
	case DetentFill:
		return "fill"
	default:
		return "DetentKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Detent is a configured resting extent for the sheet.
type Detent struct {
	Kind  DetentKind
	Value float64
	// Programmatic detents are reachable through SetIndex only. Drag release
	// never snaps to them while at least one draggable detent exists.
	Programmatic bool
}

// Pixels returns a detent at a fixed extent.
func Pixels(v float64) Detent {
	return Detent{Kind: DetentPixels, Value: v}
}

// Fill returns a detent that fits the content.
func Fill() Detent {
	return Detent{Kind: DetentFill}
}

// Programmatic marks d as reachable only through direct index assignment.
func Programmatic(d Detent) Detent {
	d.Programmatic = true
	return d
}

func (d Detent) String() string {
	var s string
	if d.Kind == DetentFill {
		s = "fill"
	} else {
		s = strconv.FormatFloat(d.Value, 'g', -1, 64)
	}
	if d.Programmatic {
		s += " (programmatic)"
	}
	return s
}

// DetentSet is an ordered sequence of detents. Order defines index identity
// and need not follow extent.
type DetentSet []Detent

// ResolveDetent returns the pixel extent of d. A fill detent uses
// contentExtent when it is positive and containerMax otherwise. The result
// is clamped into [0, containerMax]; a negative containerMax counts as 0.
func ResolveDetent(d Detent, contentExtent, containerMax float64) (float64, error) {
	if containerMax < 0 || math.IsNaN(containerMax) {
		containerMax = 0
	}
	var v float64
	switch d.Kind {
	case DetentPixels:
		if math.IsNaN(d.Value) {
			return 0, errors.Config("sheet.ResolveDetent", &errors.ConfigError{
				Field:  "detent",
				Reason: "pixel value is NaN",
				Err:    ErrInvalidDetent,
			})
		}
		v = d.Value
	case DetentFill:
		if contentExtent > 0 {
			v = contentExtent
		} else {
			v = containerMax
		}
	default:
		return 0, errors.Config("sheet.ResolveDetent", &errors.ConfigError{
			Field:  "detent",
			Reason: fmt.Sprintf("unknown kind %v", d.Kind),
			Err:    ErrInvalidDetent,
		})
	}
	return geometry.Clamp(v, 0, containerMax), nil
}

// ResolveDetents resolves every detent in set, preserving order.
func ResolveDetents(set DetentSet, contentExtent, containerMax float64) ([]float64, error) {
	if len(set) == 0 {
		return nil, errors.Config("sheet.ResolveDetents", &errors.ConfigError{
			Field:  "detents",
			Reason: ErrNoDetents.Error(),
			Err:    ErrNoDetents,
		})
	}
	resolved := make([]float64, len(set))
	for i, d := range set {
		v, err := ResolveDetent(d, contentExtent, containerMax)
		if err != nil {
			var se *errors.SheetError
			if stderrors.As(err, &se) {
				se.Op = fmt.Sprintf("sheet.ResolveDetents[%d]", i)
			}
			return nil, err
		}
		resolved[i] = v
	}
	return resolved, nil
}

// ClampIndex constrains index to [0, count-1]. It returns 0 when count is
// not positive.
func ClampIndex(index, count int) int {
	if count <= 0 || index < 0 {
		return 0
	}
	if index > count-1 {
		return count - 1
	}
	return index
}
