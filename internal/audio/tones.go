// Package audio synthesizes Memory Garden's sound cues with beep.
// Nothing here is loaded from files; every cue is a short generated tone.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// tone is a sine oscillator with a linear fade-out.
type tone struct {
	freq     float64
	phase    float64
	position int
	length   int
	rate     beep.SampleRate
}

// NewTone creates a decaying sine tone at freq Hz lasting d.
func NewTone(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, length: rate.N(d), rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}

		envelope := 1 - float64(t.position)/float64(t.length)
		val := math.Sin(2*math.Pi*t.phase) * envelope
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// Cue names a sound effect.
type Cue int

const (
	CuePlace Cue = iota
	CueSuccess
	CueError
	CueHint
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CuePlace:
		return "place"
	case CueSuccess:
		return "success"
	case CueError:
		return "error"
	case CueHint:
		return "hint"
	default:
		return "unknown"
	}
}

// note is a frequency/duration pair in a cue.
type note struct {
	freq float64
	dur  time.Duration
}

// cueNotes maps cues to their melodies.
var cueNotes = map[Cue][]note{
	CuePlace:   {{freq: 880, dur: 60 * time.Millisecond}},
	CueSuccess: {{freq: 523.25, dur: 120 * time.Millisecond}, {freq: 659.25, dur: 120 * time.Millisecond}, {freq: 783.99, dur: 220 * time.Millisecond}},
	CueError:   {{freq: 196, dur: 180 * time.Millisecond}, {freq: 146.83, dur: 240 * time.Millisecond}},
	CueHint:    {{freq: 659.25, dur: 90 * time.Millisecond}, {freq: 659.25, dur: 90 * time.Millisecond}},
}

// NewCue builds the streamer for a cue. Unknown cues yield silence.
func NewCue(c Cue, rate beep.SampleRate) beep.Streamer {
	notes := cueNotes[c]
	if len(notes) == 0 {
		return beep.Silence(0)
	}
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = NewTone(n.freq, n.dur, rate)
	}
	return beep.Seq(parts...)
}

// CueLength returns the total duration of a cue.
func CueLength(c Cue) time.Duration {
	var total time.Duration
	for _, n := range cueNotes[c] {
		total += n.dur
	}
	return total
}
