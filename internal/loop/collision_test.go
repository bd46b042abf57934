package loop

import (
	"testing"
	"time"

	"github.com/mtoman/dodger/internal/difficulty"
	"github.com/mtoman/dodger/internal/object"
)

func TestEvaluateSameLaneOverlapCollides(t *testing.T) {
	p := object.NewPlayerCar(object.ModelSunbeam)
	e := object.NewEnemyCar(1, p.Lane, 60, 0)
	e.Y = p.Top() // boxes fully aligned

	res := Evaluate(p, []*object.EnemyCar{e})
	if !res.Collided {
		t.Fatal("aligned same-lane cars did not collide")
	}
}

func TestEvaluateOtherLaneNeverCollides(t *testing.T) {
	p := object.NewPlayerCar(object.ModelSunbeam)
	e := object.NewEnemyCar(1, p.Lane-1, 60, 0)

	// Drive the enemy across the whole field one frame at a time.
	for i := 0; i < 60*6; i++ {
		e.Advance(1.0/60, 0)
		if res := Evaluate(p, []*object.EnemyCar{e}); res.Collided {
			t.Fatalf("adjacent-lane enemy collided at y=%.1f", e.Y)
		}
	}
	if !e.Passed {
		t.Fatal("enemy crossed the field without being scored")
	}
}

func TestEvaluatePassScoredOnce(t *testing.T) {
	p := object.NewPlayerCar(object.ModelSunbeam)
	e := object.NewEnemyCar(1, p.Lane-1, 60, 0)
	e.Y = p.Bottom() + 1

	first := Evaluate(p, []*object.EnemyCar{e})
	if first.ScoreDelta == 0 {
		t.Fatal("passed enemy scored nothing")
	}
	second := Evaluate(p, []*object.EnemyCar{e})
	if second.ScoreDelta != 0 {
		t.Fatalf("second evaluation scored again: %d", second.ScoreDelta)
	}
}

func TestEvaluateClosePassBonusOnce(t *testing.T) {
	p := object.NewPlayerCar(object.ModelSunbeam)
	e := object.NewEnemyCar(1, p.Lane-1, 60, 0)

	total, scoringFrames := 0, 0
	for i := 0; i < 60*6; i++ {
		e.Advance(1.0/60, 0)
		res := Evaluate(p, []*object.EnemyCar{e})
		if res.Collided {
			t.Fatal("adjacent-lane pass collided")
		}
		if res.ScoreDelta > 0 {
			scoringFrames++
			total += res.ScoreDelta
		}
	}
	if scoringFrames != 1 {
		t.Fatalf("pass scored on %d frames, want 1", scoringFrames)
	}
	if total != passPoints+closePassBonus {
		t.Fatalf("close pass scored %d, want %d", total, passPoints+closePassBonus)
	}
}

func TestEvaluateFarLanePassNoBonus(t *testing.T) {
	p := object.NewPlayerCar(object.ModelSunbeam)
	p.MoveLeft() // lane 0; the enemy stays two lanes away
	e := object.NewEnemyCar(1, object.LaneCount-1, 60, 0)

	total := 0
	for i := 0; i < 60*6; i++ {
		e.Advance(1.0/60, 0)
		total += Evaluate(p, []*object.EnemyCar{e}).ScoreDelta
	}
	if total != passPoints {
		t.Fatalf("far-lane pass scored %d, want %d (no squeeze bonus)", total, passPoints)
	}
}

func TestEvaluateReportsRemovableEnemies(t *testing.T) {
	p := object.NewPlayerCar(object.ModelSunbeam)
	e := object.NewEnemyCar(7, p.Lane-1, 60, 0)

	e.Y = p.Bottom() + 1
	res := Evaluate(p, []*object.EnemyCar{e})
	if len(res.Removed) != 0 {
		t.Fatal("enemy flagged for removal while still visible")
	}

	for !e.OffScreen() {
		e.Advance(1.0/60, 0)
	}
	res = Evaluate(p, []*object.EnemyCar{e})
	if len(res.Removed) != 1 || res.Removed[0] != 7 {
		t.Fatalf("removed ids = %v, want [7]", res.Removed)
	}
}

func TestRoundCollisionEndsRun(t *testing.T) {
	profile, err := difficulty.Resolve(difficulty.Casual)
	if err != nil {
		t.Fatal(err)
	}
	now := time.Unix(0, 0)
	r := NewRound(profile, object.ModelSunbeam, now, 1)

	// Plant an enemy in the player's lane; it must end the run.
	r.Enemies = append(r.Enemies, object.NewEnemyCar(99, r.Player.Lane, 60, 0))

	const step = time.Second / fps
	for i := 0; i < fps*30 && !r.Crashed; i++ {
		now = now.Add(step)
		r.Step(now, dt)
	}
	if !r.Crashed {
		t.Fatal("enemy in the player's lane never collided")
	}
	if len(r.Effects) == 0 {
		t.Fatal("collision spawned no debris")
	}

	// A crashed round is frozen.
	score, enemies := r.Score, len(r.Enemies)
	r.Step(now.Add(step), dt)
	if r.Score != score || len(r.Enemies) != enemies {
		t.Fatal("crashed round kept running")
	}
}

func TestRoundRemovesOffscreenEnemies(t *testing.T) {
	profile, err := difficulty.Resolve(difficulty.Casual)
	if err != nil {
		t.Fatal(err)
	}
	now := time.Unix(0, 0)
	r := NewRound(profile, object.ModelSunbeam, now, 7)
	r.Player.MoveLeft() // keep the player out of the planted enemy's lane

	e := object.NewEnemyCar(5, object.LaneCount-1, 120, 0)
	r.Enemies = append(r.Enemies, e)

	const step = time.Second / fps
	for i := 0; i < fps*10; i++ {
		now = now.Add(step)
		r.Step(now, dt)
	}
	for _, live := range r.Enemies {
		if live == e {
			t.Fatal("off-screen enemy still live")
		}
	}
	if r.Score < passPoints {
		t.Fatalf("score %d, want at least the base pass", r.Score)
	}
}
