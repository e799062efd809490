package tui

import (
	"fmt"
	"time"

	"github.com/vovakirdan/skyrunner/internal/core"
)

// HUD holds the status line shown above the canvas. It refreshes at its own
// rate so the text does not flicker at frame rate.
type HUD struct {
	interval time.Duration
	last     time.Time
	line     string
}

// NewHUD creates a HUD refreshing hz times per second.
func NewHUD(hz int) *HUD {
	if hz <= 0 {
		hz = 10
	}
	return &HUD{interval: time.Second / time.Duration(hz)}
}

// Reset forces the next Update to refresh.
func (h *HUD) Reset() {
	h.last = time.Time{}
	h.line = ""
}

// Update refreshes the line if the interval has passed or the run ended.
// It reports whether the line changed.
func (h *HUD) Update(now time.Time, name string, st core.GameState, speed float64) bool {
	if !st.GameOver && !h.last.IsZero() && now.Sub(h.last) < h.interval {
		return false
	}
	h.last = now
	line := fmt.Sprintf("%s  SCORE %d  COMBO x%d  SPEED %.1f", name, st.Score, st.Combo, speed)
	if line == h.line {
		return false
	}
	h.line = line
	return true
}

// Line returns the current status text.
func (h *HUD) Line() string {
	return h.line
}
