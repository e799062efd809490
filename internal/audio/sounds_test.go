package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/skyrunner/internal/config"
	"github.com/vovakirdan/skyrunner/internal/core"
)

const testRate = beep.SampleRate(44100)

// drain streams s to the end and returns the sample count and peak level.
func drain(s beep.Streamer) (n int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		k, ok := s.Stream(buf)
		for i := 0; i < k; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		n += k
		if !ok {
			return n, peak
		}
	}
}

func TestOscillatorLength(t *testing.T) {
	n, peak := drain(NewOscillator(440, 0, 100*time.Millisecond, WaveSine, testRate))
	if want := testRate.N(100 * time.Millisecond); n != want {
		t.Errorf("samples = %d, want %d", n, want)
	}
	if peak < 0.9 || peak > 1.0001 {
		t.Errorf("peak = %v, want close to 1", peak)
	}
}

func TestEnvelopeShapesEdges(t *testing.T) {
	d := 50 * time.Millisecond
	s := NewEnvelope(NewOscillator(0, 0, d, WaveSquare, testRate), d, 10*time.Millisecond, 10*time.Millisecond, testRate)

	buf := make([][2]float64, testRate.N(d))
	n, _ := s.Stream(buf)
	if n == 0 {
		t.Fatal("envelope produced nothing")
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample = %v, want 0 at attack start", buf[0][0])
	}
	mid := buf[n/2][0]
	if math.Abs(mid) != 1 {
		t.Errorf("sustain sample = %v, want full level", mid)
	}
	if last := math.Abs(buf[n-1][0]); last > 0.01 {
		t.Errorf("last sample = %v, want faded out", last)
	}
}

func TestEffectForEachEvent(t *testing.T) {
	for _, ev := range []core.Event{core.EventJump, core.EventNearMiss, core.EventScore, core.EventCrash} {
		s := Effect(ev, testRate, 0.5)
		if s == nil {
			t.Errorf("Effect(%v) = nil", ev)
			continue
		}
		n, peak := drain(s)
		if n == 0 || peak == 0 {
			t.Errorf("Effect(%v) is silent: %d samples, peak %v", ev, n, peak)
		}
		if n > testRate.N(time.Second) {
			t.Errorf("Effect(%v) lasts %d samples, too long for a cue", ev, n)
		}
	}
	if Effect(core.Event(0), testRate, 1) != nil {
		t.Error("unknown event should have no sound")
	}
}

func TestZeroGainIsSilent(t *testing.T) {
	_, peak := drain(Effect(core.EventJump, testRate, 0))
	if peak != 0 {
		t.Errorf("peak = %v at zero gain", peak)
	}
}

func TestDisabledPlayerIsSilent(t *testing.T) {
	p := NewPlayer(config.AudioConfig{Enabled: false, SampleRate: 44100, Volume: 1}, nil)
	if p.Enabled() {
		t.Error("disabled config produced an enabled player")
	}
	p.Play(core.EventJump, core.EventCrash)
	p.Close()

	if Silent().Enabled() {
		t.Error("Silent() should not be enabled")
	}
}
