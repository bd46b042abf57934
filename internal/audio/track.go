package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// loopTrack synthesizes an endless, low-key arpeggio. Notes walk a minor
// pentatonic pattern with a soft attack/decay envelope so the loop point
// is inaudible.
type loopTrack struct {
	sr   float64
	gain float64
	pos  int
}

// notePattern holds the note frequencies of one bar, in Hz.
// A minor pentatonic: A3 C4 D4 E4 G4 E4 D4 C4.
var notePattern = []float64{220.00, 261.63, 293.66, 329.63, 392.00, 329.63, 293.66, 261.63}

const (
	noteSeconds = 0.45
	baseGain    = 0.22 // headroom so max volume never clips
)

func newLoopTrack(sr beep.SampleRate, volume float64) *loopTrack {
	t := &loopTrack{sr: float64(sr)}
	t.setGain(volume)
	return t
}

func (t *loopTrack) setGain(volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	t.gain = volume * baseGain
}

// Stream fills samples with the synthesized waveform. It never ends.
func (t *loopTrack) Stream(samples [][2]float64) (n int, ok bool) {
	noteLen := int(t.sr * noteSeconds)
	barLen := noteLen * len(notePattern)

	for i := range samples {
		idx := t.pos % barLen
		note := idx / noteLen
		within := idx % noteLen

		freq := notePattern[note]
		phase := float64(within) / t.sr

		// Sine fundamental plus a quiet octave for a little shimmer.
		v := math.Sin(2*math.Pi*freq*phase) + 0.3*math.Sin(4*math.Pi*freq*phase)

		// Attack/decay envelope over the note.
		progress := float64(within) / float64(noteLen)
		env := envelope(progress)

		s := v * env * t.gain
		samples[i][0] = s
		samples[i][1] = s
		t.pos++
	}
	return len(samples), true
}

// Err implements beep.Streamer; synthesis cannot fail.
func (t *loopTrack) Err() error {
	return nil
}

// envelope shapes one note: quick attack, long release.
func envelope(progress float64) float64 {
	const attack = 0.08
	if progress < attack {
		return progress / attack
	}
	return math.Pow(1-(progress-attack)/(1-attack), 1.6)
}
