package loop

import (
	"time"

	"github.com/mtoman/dodger/internal/difficulty"
	"github.com/mtoman/dodger/internal/draw"
	"github.com/mtoman/dodger/internal/input"
	"github.com/mtoman/dodger/internal/object"
)

// crashParticles is the debris burst size on collision.
const crashParticles = 28

// Round is one run of the game: the road, the player, the live enemy set
// and the score. It survives into the game-over screen so the wreck keeps
// animating behind the final score.
type Round struct {
	Profile difficulty.Profile
	Player  *object.PlayerCar
	Enemies []*object.EnemyCar
	Spawner *object.Spawner
	Road    object.Road
	Effects []object.Effect

	Score      int
	Crashed    bool
	SaveFailed bool
	saved      bool

	startedAt time.Time
}

// NewRound starts a fresh run with the given tuning and car.
func NewRound(profile difficulty.Profile, model object.CarModel, now time.Time, seed int64) *Round {
	return &Round{
		Profile:   profile,
		Player:    object.NewPlayerCar(model),
		Spawner:   object.NewSpawner(now, seed),
		startedAt: now,
	}
}

// Control applies one frame of player input. Lane changes fire on rising
// edges so a held key moves exactly one lane.
func (r *Round) Control(in, prev input.Input) {
	if pressed(in.Left, prev.Left) {
		r.Player.MoveLeft()
	}
	if pressed(in.Right, prev.Right) {
		r.Player.MoveRight()
	}
}

// Step advances the world by dt. Spawning, movement, collision and scoring
// happen in that order; a collision freezes the round and spawns the wreck
// burst, leaving removal of the remaining enemies to the game-over screen.
func (r *Round) Step(now time.Time, dt float64) {
	if r.Crashed {
		return
	}

	r.Road.Update(dt, r.Profile.ScrollSpeed)
	r.Player.Update()

	if e := r.Spawner.Tick(now, r.Enemies, r.Profile, r.Score); e != nil {
		r.Enemies = append(r.Enemies, e)
	}
	for _, e := range r.Enemies {
		e.Advance(dt, r.Profile.ScrollSpeed)
	}

	res := Evaluate(r.Player, r.Enemies)
	r.Score += res.ScoreDelta

	if res.Collided {
		r.Crashed = true
		cx := r.Player.X + object.CarWidth/2
		r.Effects = append(r.Effects, object.SpawnCrash(cx, r.Player.CenterY(), crashParticles)...)
		return
	}

	if len(res.Removed) > 0 {
		kept := r.Enemies[:0]
		for _, e := range r.Enemies {
			if !removedID(res.Removed, e.ID) {
				kept = append(kept, e)
			}
		}
		r.Enemies = kept
	}
}

func removedID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// StepEffects animates transient effects, releasing expired particles.
func (r *Round) StepEffects(dt float64) {
	kept := r.Effects[:0]
	for _, fx := range r.Effects {
		if fx.Update(dt) {
			if p, ok := fx.(*object.Particle); ok {
				p.Release()
			}
			continue
		}
		kept = append(kept, fx)
	}
	r.Effects = kept
}

// Duration reports how long the round has been going.
func (r *Round) Duration(now time.Time) time.Duration {
	return now.Sub(r.startedAt)
}

// Draw renders the whole round. The player car is hidden once crashed;
// the debris burst takes its place.
func (r *Round) Draw(c *draw.Canvas) {
	r.Road.Draw(c)
	for _, e := range r.Enemies {
		e.Draw(c)
	}
	if !r.Crashed {
		r.Player.Draw(c)
	}
	for _, fx := range r.Effects {
		fx.Draw(c)
	}
}
