package object

import "github.com/mtoman/dodger/internal/draw"

// Lane change spring constants, tuned for the fixed 60Hz step: each frame
// the car accelerates toward the target lane and bleeds velocity, which
// gives the glide-and-settle feel of the original.
const (
	laneSpringPull = 0.18
	laneSpringDamp = 0.78
)

// PlayerCar is the player-controlled car. It occupies exactly one lane;
// X eases toward the lane position for smooth movement but the lane index
// is what collision logic sees.
type PlayerCar struct {
	Lane   int
	Model  CarModel
	sprite Sprite

	X       float64 // current left edge
	targetX float64
	velX    float64
}

// NewPlayerCar creates the player in the middle lane with the sprite for
// the chosen model resolved up front.
func NewPlayerCar(model CarModel) *PlayerCar {
	lane := LaneCount / 2
	x := laneLeftX(lane)
	return &PlayerCar{
		Lane:    lane,
		Model:   model,
		sprite:  SpriteFor(model),
		X:       x,
		targetX: x,
	}
}

// MoveLeft shifts one lane left, clamped at the edge (no wraparound).
func (p *PlayerCar) MoveLeft() {
	if p.Lane > 0 {
		p.Lane--
		p.targetX = laneLeftX(p.Lane)
	}
}

// MoveRight shifts one lane right, clamped at the edge.
func (p *PlayerCar) MoveRight() {
	if p.Lane < LaneCount-1 {
		p.Lane++
		p.targetX = laneLeftX(p.Lane)
	}
}

// Update advances the lane-change spring one frame.
func (p *PlayerCar) Update() {
	dx := p.targetX - p.X
	p.velX += dx * laneSpringPull
	p.velX *= laneSpringDamp
	p.X += p.velX
}

// Top returns the top edge of the player's bounding box.
func (p *PlayerCar) Top() float64 {
	return FieldHeight - CarHeight - playerBottomMargin
}

// Bottom returns the bottom edge of the player's bounding box.
func (p *PlayerCar) Bottom() float64 {
	return FieldHeight - playerBottomMargin
}

// CenterY returns the vertical center of the player.
func (p *PlayerCar) CenterY() float64 {
	return p.Top() + CarHeight/2
}

// Draw renders the player sprite.
func (p *PlayerCar) Draw(c *draw.Canvas) {
	p.sprite.Draw(c, p.X, p.Top())
}
