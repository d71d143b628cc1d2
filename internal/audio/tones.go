// Package audio plays the runner's cues as short synthesized tones through
// beep. Playback is asynchronous: the simulation hands a cue over and never
// waits for the sound card.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/lane-runner/internal/runner"
)

// SampleRate is the playback rate for every cue.
const SampleRate = beep.SampleRate(44100)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a wave whose frequency slides linearly from
// freq to endFreq over its duration.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *rand.Rand
}

// NewOscillator creates a fixed-frequency oscillator.
func NewOscillator(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, d, wave, rate)
}

// NewSweep creates an oscillator gliding from one frequency to another.
func NewSweep(from, to float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     from,
		endFreq:  to,
		duration: rate.N(d),
		wave:     wave,
		rate:     rate,
		noise:    rand.New(rand.NewSource(int64(from*1000) + int64(d))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s so it fades in over attack and out over release.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; e.release > 0 && left < e.release {
			vol = math.Min(vol, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales s linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(from, to float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewSweep(from, to, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// Synthesize builds the sound for c at the given volume (0-1).
// Unknown cues return nil.
func Synthesize(c runner.Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case runner.CueDash:
		s = withVolume(tone(900, 300, 90*time.Millisecond, WaveNoise, rate), 0.25)
	case runner.CueJump:
		s = withVolume(tone(330, 880, 160*time.Millisecond, WaveSquare, rate), 0.2)
	case runner.CueHurt:
		s = withVolume(beep.Take(rate.N(220*time.Millisecond), beep.Mix(
			tone(140, 90, 220*time.Millisecond, WaveSaw, rate),
			tone(70, 60, 220*time.Millisecond, WaveSquare, rate),
		)), 0.25)
	case runner.CueCollect:
		s = withVolume(beep.Seq(
			tone(987.77, 987.77, 70*time.Millisecond, WaveSquare, rate),
			tone(1318.51, 1318.51, 180*time.Millisecond, WaveSquare, rate),
		), 0.2)
	case runner.CueExplode:
		s = withVolume(NewEnvelope(NewSweep(400, 40, 900*time.Millisecond, WaveNoise, rate),
			900*time.Millisecond, 10*time.Millisecond, 800*time.Millisecond, rate), 0.35)
	case runner.CueWin:
		notes := []float64{523.25, 659.25, 783.99, 1046.5}
		parts := make([]beep.Streamer, len(notes))
		for i, f := range notes {
			parts[i] = tone(f, f, 140*time.Millisecond, WaveSine, rate)
		}
		s = withVolume(beep.Seq(parts...), 0.35)
	default:
		return nil
	}
	return withVolume(s, volume)
}
