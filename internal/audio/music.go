// Package audio plays the menu music. The track is synthesized (no asset
// files to ship or fail to load) and looped behind a pause control; volume
// and the on/off toggle come from the settings screen.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player owns the speaker and the looping menu track. All methods are safe
// to call even if Init failed; the game just stays silent.
type Player struct {
	mu    sync.Mutex
	ctrl  *beep.Ctrl
	track *loopTrack
	ready bool
}

// NewPlayer creates an idle player. Call Init before use.
func NewPlayer() *Player {
	return &Player{}
}

// Init opens the speaker and starts the track with the given volume and
// paused state. An error leaves the player inert; callers log it once and
// continue without sound.
func (p *Player) Init(volume float64, playing bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	p.track = newLoopTrack(sampleRate, volume)
	p.ctrl = &beep.Ctrl{Streamer: p.track, Paused: !playing}
	speaker.Play(p.ctrl)
	p.ready = true
	return nil
}

// SetVolume adjusts the gain, clamped to [0, 1].
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	speaker.Lock()
	p.track.setGain(v)
	speaker.Unlock()
}

// SetPlaying pauses or resumes the track.
func (p *Player) SetPlaying(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = !on
	speaker.Unlock()
}

// Playing reports whether the track is audible.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return false
	}
	speaker.Lock()
	paused := p.ctrl.Paused
	speaker.Unlock()
	return !paused
}

// Close silences the player. beep has no speaker teardown; pausing the
// only streamer is sufficient.
func (p *Player) Close() {
	p.SetPlaying(false)
}
