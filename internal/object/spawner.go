package object

import (
	"math/rand"
	"time"

	"github.com/mtoman/dodger/internal/difficulty"
)

// Lane fairness tuning. A lane that just received an enemy is cooled down
// for a few frames, and the most recent lane is avoided when another lane
// is free, so the spawner never walls off the road.
const (
	laneCooldownFrames = 30
	topZone            = 24.0 // lanes with an enemy this close to the top are occupied
	headroomMin        = 6.0
	headroomMax        = 30.0
)

// Spawner produces new enemy cars over time at the rate and cap dictated
// by the active difficulty profile. It owns no entities: Tick returns a
// descriptor and the caller inserts it into the live set.
type Spawner struct {
	rng          *rand.Rand
	lastSpawn    time.Time
	laneCooldown [LaneCount]int
	lastLane     int
	nextID       int
}

// NewSpawner creates a spawner. The first enemy is gated by the profile
// interval measured from now.
func NewSpawner(now time.Time, seed int64) *Spawner {
	return &Spawner{
		rng:       rand.New(rand.NewSource(seed)),
		lastSpawn: now,
		lastLane:  -1,
		nextID:    1,
	}
}

// Tick decides whether a new enemy should appear this frame. It returns
// nil unless the live count is below the profile cap and the ramped spawn
// interval has elapsed. Lane choice is uniform among available lanes,
// speed uniform within the ramped profile range.
func (s *Spawner) Tick(now time.Time, enemies []*EnemyCar, profile difficulty.Profile, score int) *EnemyCar {
	for i := range s.laneCooldown {
		if s.laneCooldown[i] > 0 {
			s.laneCooldown[i]--
		}
	}

	if len(enemies) >= profile.MaxEnemies {
		return nil
	}
	if now.Sub(s.lastSpawn) < profile.SpawnIntervalAt(score) {
		return nil
	}

	available := s.availableLanes(enemies)
	if len(available) == 0 {
		return nil
	}
	lane := available[s.rng.Intn(len(available))]

	s.lastSpawn = now
	s.lastLane = lane
	s.laneCooldown[lane] = laneCooldownFrames

	minSpeed, maxSpeed := profile.SpeedRangeAt(score)
	speed := minSpeed + s.rng.Float64()*(maxSpeed-minSpeed)
	headroom := headroomMin + s.rng.Float64()*(headroomMax-headroomMin)

	id := s.nextID
	s.nextID++
	return NewEnemyCar(id, lane, speed, headroom)
}

// availableLanes returns lanes that are off cooldown and not occupied near
// the top, dropping the previously used lane when an alternative exists.
func (s *Spawner) availableLanes(enemies []*EnemyCar) []int {
	var available []int
	for lane := 0; lane < LaneCount; lane++ {
		if s.laneCooldown[lane] > 0 {
			continue
		}
		occupied := false
		for _, e := range enemies {
			if e.Lane == lane && e.Y < topZone {
				occupied = true
				break
			}
		}
		if !occupied {
			available = append(available, lane)
		}
	}

	if len(available) > 1 && s.lastLane >= 0 {
		trimmed := available[:0]
		for _, lane := range available {
			if lane != s.lastLane {
				trimmed = append(trimmed, lane)
			}
		}
		if len(trimmed) > 0 {
			available = trimmed
		}
	}
	return available
}
