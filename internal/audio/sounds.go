// Package audio plays short synthesized effects for run events.
// Nothing here is required: if the sound device cannot be opened the
// player stays silent.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/skyrunner/internal/core"
)

// WaveType is an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

type oscillator struct {
	freq, slide float64 // slide is Hz added per second
	phase       float64
	total, pos  int
	wave        WaveType
	rate        beep.SampleRate
	noise       uint32
}

// NewOscillator returns a tone of the given length. slide bends the pitch
// linearly, in Hz per second.
func NewOscillator(freq, slide float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{freq: freq, slide: slide, total: rate.N(d), wave: wave, rate: rate, noise: 0x9e3779b9}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if o.pos >= o.total {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			// xorshift keeps noise reproducible and off the global rand
			o.noise ^= o.noise << 13
			o.noise ^= o.noise >> 17
			o.noise ^= o.noise << 5
			v = float64(o.noise)/float64(math.MaxUint32)*2 - 1
		}
		samples[i][0], samples[i][1] = v, v

		t := float64(o.pos) / float64(o.rate)
		o.phase += (o.freq + o.slide*t) / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

type envelope struct {
	s                    beep.Streamer
	pos, attack, release int
	total                int
}

// NewEnvelope fades s in over attack and out over the last release of d.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{s: s, attack: rate.N(attack), release: rate.N(release), total: rate.N(d)}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		if e.pos >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.release > 0 && left < e.release {
			vol = math.Min(vol, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// volume wraps s at a linear gain; zero or less is silent.
func volume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

func tone(freq, slide float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, slide, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// Effect builds the streamer for a run event, or nil for events without a
// sound.
func Effect(ev core.Event, rate beep.SampleRate, gain float64) beep.Streamer {
	var s beep.Streamer
	switch ev {
	case core.EventJump:
		// rising chirp
		s = tone(420, 1800, 120*time.Millisecond, WaveSquare, rate)
	case core.EventNearMiss:
		s = beep.Mix(
			volume(tone(1320, 0, 90*time.Millisecond, WaveSine, rate), 0.7),
			volume(tone(1980, 0, 90*time.Millisecond, WaveSine, rate), 0.3),
		)
	case core.EventScore:
		s = beep.Seq(
			tone(987.77, 0, 60*time.Millisecond, WaveSquare, rate),
			tone(1318.51, 0, 120*time.Millisecond, WaveSquare, rate),
		)
	case core.EventCrash:
		s = beep.Mix(
			volume(tone(0, 0, 400*time.Millisecond, WaveNoise, rate), 0.6),
			volume(tone(110, -150, 400*time.Millisecond, WaveSaw, rate), 0.5),
		)
	default:
		return nil
	}
	return volume(s, gain)
}
