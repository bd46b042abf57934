// Package difficulty defines the three game modes and their tuning profiles.
package difficulty

import (
	"errors"
	"fmt"
	"time"
)

// Mode names accepted by Resolve.
const (
	Casual    = "Casual"
	Heroic    = "Heroic"
	Nightmare = "Nightmare"
)

// Modes lists all valid mode names in menu order.
var Modes = []string{Casual, Heroic, Nightmare}

// ErrInvalidMode is returned when an unknown mode name is requested.
// Callers must reject the session rather than fall back to a default.
var ErrInvalidMode = errors.New("invalid difficulty mode")

// Profile is the immutable tuning tuple for one mode.
// Speeds and scroll are in logical canvas units per second.
type Profile struct {
	Mode        string
	SpeedMin    float64
	SpeedMax    float64
	SpawnEvery  time.Duration // base interval between enemy spawns
	ScrollSpeed float64       // road scroll, also bleeds into enemy speed
	MaxEnemies  int           // hard cap on live enemies
}

var profiles = map[string]Profile{
	Casual:    {Mode: Casual, SpeedMin: 32, SpeedMax: 48, SpawnEvery: 1200 * time.Millisecond, ScrollSpeed: 24, MaxEnemies: 5},
	Heroic:    {Mode: Heroic, SpeedMin: 48, SpeedMax: 64, SpawnEvery: 900 * time.Millisecond, ScrollSpeed: 30, MaxEnemies: 7},
	Nightmare: {Mode: Nightmare, SpeedMin: 64, SpeedMax: 96, SpawnEvery: 550 * time.Millisecond, ScrollSpeed: 48, MaxEnemies: 10},
}

// Resolve looks up the profile for a mode name.
func Resolve(mode string) (Profile, error) {
	p, ok := profiles[mode]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	return p, nil
}

// Ramp parameters: the game gets harder as the score grows, capped so a
// long run stays survivable.
const (
	rampScoreUnit    = 3000.0
	rampMaxBonus     = 2.5
	minSpawnInterval = 350 * time.Millisecond
)

// rampScale returns the difficulty multiplier for a score.
func rampScale(score int) float64 {
	bonus := float64(score) / rampScoreUnit
	if bonus > rampMaxBonus {
		bonus = rampMaxBonus
	}
	return 1.0 + bonus
}

// SpawnIntervalAt returns the effective spawn interval at the given score.
// The interval shrinks with the ramp but never below minSpawnInterval.
func (p Profile) SpawnIntervalAt(score int) time.Duration {
	d := time.Duration(float64(p.SpawnEvery) / rampScale(score))
	if d < minSpawnInterval {
		d = minSpawnInterval
	}
	return d
}

// SpeedRangeAt returns the effective enemy speed range at the given score.
func (p Profile) SpeedRangeAt(score int) (min, max float64) {
	s := rampScale(score)
	return p.SpeedMin * s, p.SpeedMax * s
}
