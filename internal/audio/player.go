package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/skyrunner/internal/config"
	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/logging"
)

// Player mixes event sounds onto the speaker.
type Player struct {
	mu      sync.Mutex
	enabled bool
	rate    beep.SampleRate
	gain    float64
	mixer   *beep.Mixer
	logger  *log.Logger
}

// speaker.Init may only succeed once per process.
var (
	speakerOnce sync.Once
	speakerErr  error
	speakerRate beep.SampleRate
)

// NewPlayer opens the sound device if cfg enables audio. Failure is logged
// and yields a silent player.
func NewPlayer(cfg config.AudioConfig, logger *log.Logger) *Player {
	p := &Player{
		rate:   beep.SampleRate(cfg.SampleRate),
		gain:   cfg.Volume,
		mixer:  &beep.Mixer{},
		logger: logging.OrDiscard(logger),
	}
	if !cfg.Enabled {
		return p
	}

	speakerOnce.Do(func() {
		speakerRate = p.rate
		speakerErr = speaker.Init(p.rate, p.rate.N(100*time.Millisecond))
	})
	if speakerErr != nil {
		p.logger.Warn("audio unavailable, continuing without sound", "error", speakerErr)
		return p
	}
	p.rate = speakerRate
	speaker.Play(p.mixer)
	p.enabled = true
	return p
}

// Silent returns a player that never makes a sound.
func Silent() *Player {
	return &Player{mixer: &beep.Mixer{}, logger: logging.Discard()}
}

// Enabled reports whether sounds reach the speaker.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Play queues the sounds for every event of a step.
func (p *Player) Play(events ...core.Event) {
	if !p.Enabled() {
		return
	}
	for _, ev := range events {
		s := Effect(ev, p.rate, p.gain)
		if s == nil {
			continue
		}
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	}
}

// Close silences the player. The device stays open for the process.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.enabled = false
}
