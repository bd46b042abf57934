package object

import (
	"math"

	"github.com/mtoman/dodger/internal/draw"
)

// offscreenSlack is how far past the bottom edge an enemy travels before
// it is discarded, so cars never visibly pop out of existence.
const offscreenSlack = 20.0

// EnemyCar is one oncoming car. Created by the Spawner above the screen,
// advanced every frame, removed when it passes off-screen or collides.
type EnemyCar struct {
	ID    int
	Lane  int
	Y     float64 // top edge; grows downward
	Speed float64 // logical units per second

	// Passed guards pass scoring: an enemy is scored exactly once.
	Passed bool

	// MinApproach is the closest vertical center distance to the player
	// observed while the enemy was in the player's lane or an adjacent
	// one. Enemies that never came near keep +Inf and skip the bonus
	// check entirely.
	MinApproach float64
}

// NewEnemyCar creates an enemy at the top of a lane, starting above the
// visible field by the given headroom.
func NewEnemyCar(id, lane int, speed, headroom float64) *EnemyCar {
	return &EnemyCar{
		ID:          id,
		Lane:        lane,
		Y:           -CarHeight - headroom,
		Speed:       speed,
		MinApproach: math.Inf(1),
	}
}

// Advance moves the enemy down the road. Road scroll bleeds into enemy
// motion slightly so faster modes feel faster even for slow cars.
func (e *EnemyCar) Advance(dt, scrollSpeed float64) {
	e.Y += (e.Speed + scrollSpeed*0.15) * dt
}

// Bottom returns the bottom edge of the enemy's bounding box.
func (e *EnemyCar) Bottom() float64 {
	return e.Y + CarHeight
}

// CenterY returns the vertical center of the enemy.
func (e *EnemyCar) CenterY() float64 {
	return e.Y + CarHeight/2
}

// OffScreen reports whether the enemy is fully below the field.
func (e *EnemyCar) OffScreen() bool {
	return e.Y > FieldHeight+offscreenSlack
}

// Draw renders the enemy sprite.
func (e *EnemyCar) Draw(c *draw.Canvas) {
	enemySprite.Draw(c, laneLeftX(e.Lane), e.Y)
}
