package object

import (
	"testing"
	"time"

	"github.com/mtoman/dodger/internal/difficulty"
)

func mustProfile(t *testing.T, mode string) difficulty.Profile {
	t.Helper()
	p, err := difficulty.Resolve(mode)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSpawnerHonorsInterval(t *testing.T) {
	profile := mustProfile(t, difficulty.Casual)
	now := time.Unix(0, 0)
	s := NewSpawner(now, 1)

	if e := s.Tick(now, nil, profile, 0); e != nil {
		t.Fatal("spawned before the interval elapsed")
	}
	now = now.Add(profile.SpawnEvery + time.Millisecond)
	if e := s.Tick(now, nil, profile, 0); e == nil {
		t.Fatal("did not spawn after the interval elapsed")
	}
}

func TestSpawnerAtCapNeverSpawns(t *testing.T) {
	profile := mustProfile(t, difficulty.Nightmare)
	now := time.Unix(0, 0)
	s := NewSpawner(now, 1)

	full := make([]*EnemyCar, profile.MaxEnemies)
	for i := range full {
		// Spread enemies down the road so lanes are not the limiter.
		full[i] = NewEnemyCar(i, i%LaneCount, 60, 0)
		full[i].Y = float64(30 + i*6)
	}

	for i := 0; i < 600; i++ {
		now = now.Add(time.Second)
		if e := s.Tick(now, full, profile, 0); e != nil {
			t.Fatalf("spawned above the cap on tick %d", i)
		}
	}
}

func TestSpawnerCapHoldsOverLongRun(t *testing.T) {
	profile := mustProfile(t, difficulty.Nightmare)
	now := time.Unix(0, 0)
	s := NewSpawner(now, 42)

	var enemies []*EnemyCar
	const step = time.Second / 60
	for i := 0; i < 60*60; i++ {
		now = now.Add(step)
		if e := s.Tick(now, enemies, profile, i); e != nil {
			enemies = append(enemies, e)
		}
		if len(enemies) > profile.MaxEnemies {
			t.Fatalf("live enemies %d exceed cap %d", len(enemies), profile.MaxEnemies)
		}

		kept := enemies[:0]
		for _, e := range enemies {
			e.Advance(1.0/60, profile.ScrollSpeed)
			if !e.OffScreen() {
				kept = append(kept, e)
			}
		}
		enemies = kept
	}
	if len(enemies) == 0 {
		t.Fatal("long run ended with no traffic at all")
	}
}

func TestSpawnerSpeedsWithinProfileRange(t *testing.T) {
	profile := mustProfile(t, difficulty.Heroic)
	now := time.Unix(0, 0)
	s := NewSpawner(now, 7)

	minSpeed, maxSpeed := profile.SpeedRangeAt(0)
	const step = time.Second / 60
	spawned := 0
	for i := 0; i < 60*60 && spawned < 20; i++ {
		now = now.Add(step)
		e := s.Tick(now, nil, profile, 0)
		if e == nil {
			continue
		}
		spawned++
		if e.Speed < minSpeed || e.Speed > maxSpeed {
			t.Fatalf("spawned speed %.1f outside [%.1f, %.1f]", e.Speed, minSpeed, maxSpeed)
		}
		if e.Lane < 0 || e.Lane >= LaneCount {
			t.Fatalf("spawned into lane %d", e.Lane)
		}
	}
	if spawned < 20 {
		t.Fatalf("only %d spawns in a minute of ticks", spawned)
	}
}

func TestSpawnerAvoidsRepeatLane(t *testing.T) {
	profile := mustProfile(t, difficulty.Casual)
	now := time.Unix(0, 0)
	s := NewSpawner(now, 3)

	const step = time.Second / 60
	last, spawned := -1, 0
	for i := 0; i < 60*90 && spawned < 30; i++ {
		now = now.Add(step)
		e := s.Tick(now, nil, profile, 0)
		if e == nil {
			continue
		}
		spawned++
		if e.Lane == last {
			t.Fatalf("spawn %d repeated lane %d with all lanes free", spawned, last)
		}
		last = e.Lane
	}
	if spawned < 30 {
		t.Fatalf("only %d spawns in ninety seconds of ticks", spawned)
	}
}
