// Package physics provides the interval math behind collision and
// near-miss detection. Cars occupy discrete lanes, so overlap reduces to
// one-dimensional checks along the road.
package physics

import "math"

// IntervalsOverlap reports whether [a1, a2] and [b1, b2] intersect.
func IntervalsOverlap(a1, a2, b1, b2 float64) bool {
	return a1 < b2 && b1 < a2
}

// CentersWithin reports whether two interval centers are closer than span.
// Equal-height cars collide exactly when their center distance is below
// the car height minus the hitbox inset on both sides.
func CentersWithin(c1, c2, span float64) bool {
	return math.Abs(c1-c2) < span
}

// VerticalGap returns the distance between two interval centers.
func VerticalGap(c1, c2 float64) float64 {
	return math.Abs(c1 - c2)
}

// LaneDistance returns the absolute distance between two lane indices.
func LaneDistance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d
}
