package object

import (
	"math"
	"testing"
)

func TestPlayerLaneClamping(t *testing.T) {
	p := NewPlayerCar(ModelSunbeam)
	if p.Lane != LaneCount/2 {
		t.Fatalf("start lane = %d, want middle", p.Lane)
	}

	for i := 0; i < LaneCount+2; i++ {
		p.MoveLeft()
	}
	if p.Lane != 0 {
		t.Fatalf("lane after spamming left = %d, want 0", p.Lane)
	}

	for i := 0; i < LaneCount+2; i++ {
		p.MoveRight()
	}
	if p.Lane != LaneCount-1 {
		t.Fatalf("lane after spamming right = %d, want %d", p.Lane, LaneCount-1)
	}
}

func TestPlayerSpringSettlesOnLane(t *testing.T) {
	p := NewPlayerCar(ModelWedge)
	p.MoveRight()

	for i := 0; i < 120; i++ {
		p.Update()
	}
	want := LaneCenterX(p.Lane) - CarWidth/2
	if math.Abs(p.X-want) > 0.5 {
		t.Fatalf("x after settling = %.2f, want %.2f", p.X, want)
	}
}

func TestEnemyOffScreen(t *testing.T) {
	e := NewEnemyCar(1, 0, 50, 10)
	if e.OffScreen() {
		t.Fatal("fresh enemy already off-screen")
	}
	for i := 0; i < 60*10 && !e.OffScreen(); i++ {
		e.Advance(1.0/60, 0)
	}
	if !e.OffScreen() {
		t.Fatal("enemy never left the field")
	}
	if !math.IsInf(e.MinApproach, 1) {
		t.Fatal("untracked enemy lost its +Inf approach marker")
	}
}
