package sheet

import "math"

// VelocityThreshold is the release speed in px/s above which the snap target
// follows the direction of travel instead of the nearest detent.
const VelocityThreshold = 800

// SnapPosition is a detent expressed as a translation.
type SnapPosition struct {
	Index      int
	TranslateY float64
	// Draggable is false for programmatic detents.
	Draggable bool
}

// FindSnapTarget picks the index a released drag settles on.
//
// The nearest position by translation wins. When |velocityY| exceeds
// VelocityThreshold, the closest position more than 1px away in the direction
// of travel wins instead, if one exists. Non-draggable positions are skipped
// unless every position is non-draggable. currentIndex is returned when
// positions is empty.
func FindSnapTarget(current, velocityY float64, currentIndex int, positions []SnapPosition) int {
	candidates := make([]SnapPosition, 0, len(positions))
	for _, p := range positions {
		if p.Draggable {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		candidates = positions
	}

	target := currentIndex
	minDistance := math.Inf(1)
	for _, p := range candidates {
		if d := math.Abs(current - p.TranslateY); d < minDistance {
			minDistance = d
			target = p.Index
		}
	}

	if math.Abs(velocityY) <= VelocityThreshold {
		return target
	}
	found := false
	var best SnapPosition
	for _, p := range candidates {
		if velocityY > 0 {
			if p.TranslateY > current+1 && (!found || p.TranslateY < best.TranslateY) {
				best, found = p, true
			}
		} else {
			if p.TranslateY < current-1 && (!found || p.TranslateY > best.TranslateY) {
				best, found = p, true
			}
		}
	}
	if found {
		target = best.Index
	}
	return target
}
