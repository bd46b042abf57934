package difficulty

import (
	"errors"
	"testing"
)

func TestResolveKnownModes(t *testing.T) {
	wantMax := map[string]int{
		Casual:    5,
		Heroic:    7,
		Nightmare: 10,
	}
	for mode, max := range wantMax {
		p, err := Resolve(mode)
		if err != nil {
			t.Fatalf("Resolve(%q) returned error: %v", mode, err)
		}
		if p.Mode != mode {
			t.Fatalf("Resolve(%q).Mode = %q", mode, p.Mode)
		}
		if p.MaxEnemies != max {
			t.Fatalf("Resolve(%q).MaxEnemies = %d, want %d", mode, p.MaxEnemies, max)
		}
		if p.SpeedMin <= 0 || p.SpeedMax <= p.SpeedMin {
			t.Fatalf("Resolve(%q) speed range invalid: [%f, %f]", mode, p.SpeedMin, p.SpeedMax)
		}
	}
}

func TestResolveInvalidMode(t *testing.T) {
	for _, mode := range []string{"", "casual", "Impossible", "NIGHTMARE"} {
		_, err := Resolve(mode)
		if !errors.Is(err, ErrInvalidMode) {
			t.Fatalf("Resolve(%q) error = %v, want ErrInvalidMode", mode, err)
		}
	}
}

func TestSpawnIntervalRamp(t *testing.T) {
	p, err := Resolve(Casual)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.SpawnIntervalAt(0); got != p.SpawnEvery {
		t.Fatalf("interval at score 0 = %v, want base %v", got, p.SpawnEvery)
	}
	mid := p.SpawnIntervalAt(3000)
	if mid >= p.SpawnEvery {
		t.Fatalf("interval at score 3000 = %v, should be below base %v", mid, p.SpawnEvery)
	}
	// The ramp caps out: a huge score never pushes the interval below the floor.
	if got := p.SpawnIntervalAt(1 << 30); got < minSpawnInterval {
		t.Fatalf("interval at huge score = %v, below floor %v", got, minSpawnInterval)
	}
}

func TestSpeedRangeRamp(t *testing.T) {
	p, err := Resolve(Nightmare)
	if err != nil {
		t.Fatal(err)
	}
	min0, max0 := p.SpeedRangeAt(0)
	if min0 != p.SpeedMin || max0 != p.SpeedMax {
		t.Fatalf("speed range at score 0 = [%f, %f], want base [%f, %f]", min0, max0, p.SpeedMin, p.SpeedMax)
	}
	minCap, maxCap := p.SpeedRangeAt(1 << 30)
	if minCap != p.SpeedMin*3.5 || maxCap != p.SpeedMax*3.5 {
		t.Fatalf("speed range at capped ramp = [%f, %f], want 3.5x base", minCap, maxCap)
	}
}
