package sheet

// Geometry is an immutable snapshot of the resolved detents. Resolved and
// Programmatic must not be modified.
type Geometry struct {
	ContainerExtent float64
	ContentExtent   float64
	Resolved        []float64
	Programmatic    []bool
	// Tallest is the largest resolved extent and the sheet's allocated height.
	Tallest float64
	// FirstNonzero is the first resolved extent above 0 in configured order,
	// or 0 if there is none.
	FirstNonzero float64
}

// NewGeometry resolves detents against the given extents.
func NewGeometry(detents DetentSet, contentExtent, containerExtent float64) (Geometry, error) {
	resolved, err := ResolveDetents(detents, contentExtent, containerExtent)
	if err != nil {
		return Geometry{}, err
	}
	g := Geometry{
		ContainerExtent: containerExtent,
		ContentExtent:   contentExtent,
		Resolved:        resolved,
		Programmatic:    make([]bool, len(detents)),
	}
	for i, d := range detents {
		g.Programmatic[i] = d.Programmatic
	}
	for _, v := range resolved {
		if v > g.Tallest {
			g.Tallest = v
		}
		if g.FirstNonzero == 0 && v > 0 {
			g.FirstNonzero = v
		}
	}
	return g, nil
}

// Len returns the number of detents.
func (g Geometry) Len() int {
	return len(g.Resolved)
}

// Extent returns the resolved extent at index, or 0 when index is out of
// range.
func (g Geometry) Extent(index int) float64 {
	if index < 0 || index >= len(g.Resolved) {
		return 0
	}
	return g.Resolved[index]
}

// TargetTranslation returns the translation at which the detent at index
// is fully shown.
func (g Geometry) TargetTranslation(index int) float64 {
	return g.Tallest - g.Extent(index)
}

// TallestIndex returns the last index whose extent equals Tallest, or -1
// for an empty geometry.
func (g Geometry) TallestIndex() int {
	for i := len(g.Resolved) - 1; i >= 0; i-- {
		if g.Resolved[i] == g.Tallest {
			return i
		}
	}
	return -1
}

// ZeroIndex returns the first index that resolves to 0, or -1.
func (g Geometry) ZeroIndex() int {
	for i, v := range g.Resolved {
		if v == 0 {
			return i
		}
	}
	return -1
}

// SnapPositions lists every detent as a translation candidate.
func (g Geometry) SnapPositions() []SnapPosition {
	positions := make([]SnapPosition, len(g.Resolved))
	for i := range g.Resolved {
		positions[i] = SnapPosition{
			Index:      i,
			TranslateY: g.TargetTranslation(i),
			Draggable:  i >= len(g.Programmatic) || !g.Programmatic[i],
		}
	}
	return positions
}

func (g Geometry) sameResolution(other Geometry) bool {
	if g.Tallest != other.Tallest || len(g.Resolved) != len(other.Resolved) {
		return false
	}
	for i := range g.Resolved {
		if g.Resolved[i] != other.Resolved[i] || g.Programmatic[i] != other.Programmatic[i] {
			return false
		}
	}
	return true
}
