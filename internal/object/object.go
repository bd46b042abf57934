// Package object holds the entities that live on the road: the player car,
// enemy cars, the scrolling road itself, and short-lived visual effects.
package object

import "github.com/mtoman/dodger/internal/draw"

// Logical playfield dimensions. The canvas scales these to the terminal;
// the portrait aspect mirrors the road. Heights are in canvas sub-pixels.
const (
	FieldWidth  = 72.0
	FieldHeight = 96.0
	LaneCount   = 3

	CarWidth  = 12.0
	CarHeight = 18.0

	// The player car sits near the bottom edge.
	playerBottomMargin = 4.0
)

// LaneCenterX returns the horizontal center of a lane.
func LaneCenterX(lane int) float64 {
	return float64(2*lane+1) * FieldWidth / (2 * LaneCount)
}

// laneLeftX returns the sprite origin (left edge) for a car in a lane.
func laneLeftX(lane int) float64 {
	return LaneCenterX(lane) - CarWidth/2
}

// Effect is a transient drawable (particles, skid marks). Update returns
// true when the effect should be removed.
type Effect interface {
	Update(dt float64) (remove bool)
	Draw(c *draw.Canvas)
}
