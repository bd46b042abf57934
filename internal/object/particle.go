package object

import (
	"math"
	"math/rand"
	"sync"

	"github.com/mtoman/dodger/internal/draw"
)

// particlePool reuses Particle allocations; crash bursts spawn dozens at
// once and the game-over screen keeps animating them.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived debris pixel.
type Particle struct {
	X, Y     float64
	VX, VY   float64
	Lifetime float64
	Drag     float64
}

// NewParticle takes a particle from the pool and initializes it.
func NewParticle(x, y, vx, vy, lifetime float64) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.Drag = 0.92
	return p
}

// Release returns the particle to the pool. Call after removal.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Update moves the particle; returns true when its lifetime expires.
func (p *Particle) Update(dt float64) bool {
	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true
	}
	drag := math.Pow(p.Drag, dt*60)
	p.VX *= drag
	p.VY *= drag
	p.X += p.VX * dt
	p.Y += p.VY * dt
	return false
}

// Draw renders the particle as a single canvas pixel.
func (p *Particle) Draw(c *draw.Canvas) {
	c.SetFloat(p.X, p.Y)
}

// SpawnCrash creates a debris burst centered on the wreck. Used when the
// player collides; the returned effects animate through the game-over
// screen.
func SpawnCrash(x, y float64, count int) []Effect {
	effects := make([]Effect, 0, count)
	for i := 0; i < count; i++ {
		angle := rand.Float64() * 2 * math.Pi
		speed := 20.0 * (0.5 + rand.Float64())
		life := 0.6 + rand.Float64()*0.8
		effects = append(effects, NewParticle(
			x, y,
			math.Cos(angle)*speed,
			math.Sin(angle)*speed,
			life,
		))
	}
	return effects
}
