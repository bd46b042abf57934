package loop

import (
	"github.com/mtoman/dodger/internal/object"
	"github.com/mtoman/dodger/internal/physics"
)

// Hitboxes are shrunk a little from the sprite bounds so grazing pixels do
// not end a run; near misses inside the window pay extra when the enemy is
// finally passed.
const (
	hitboxInset    = 2.0
	nearMissWindow = 22.0

	passPoints     = 150
	closePassBonus = 100
)

// Result is the outcome of one collision-and-scoring evaluation. Removed
// lists the IDs of enemies that are done and safe to delete.
type Result struct {
	Collided   bool
	ScoreDelta int
	Removed    []int
}

// Evaluate checks the player against every live enemy. It records each
// enemy's closest approach while in the player's lane or an adjacent one,
// detects lane-sharing overlap as a collision, and scores enemies exactly
// once when their top edge clears the player's bottom edge. The Passed
// flag makes repeated evaluation of the same frame idempotent. Scored
// enemies stay visible until they leave the field, then show up in
// Removed.
func Evaluate(p *object.PlayerCar, enemies []*object.EnemyCar) Result {
	var res Result
	span := object.CarHeight - 2*hitboxInset

	for _, e := range enemies {
		if physics.LaneDistance(e.Lane, p.Lane) <= 1 {
			if gap := physics.VerticalGap(e.CenterY(), p.CenterY()); gap < e.MinApproach {
				e.MinApproach = gap
			}
		}

		if e.Lane == p.Lane && physics.CentersWithin(e.CenterY(), p.CenterY(), span) {
			res.Collided = true
		}

		if !e.Passed && e.Y > p.Bottom() {
			e.Passed = true
			res.ScoreDelta += passPoints
			if e.MinApproach < nearMissWindow {
				res.ScoreDelta += closePassBonus
			}
		}

		if e.Passed && e.OffScreen() {
			res.Removed = append(res.Removed, e.ID)
		}
	}
	return res
}
