// Package tui is the Bubble Tea frontend: the frame driver, key mapping,
// cell rendering, the menu screens and the SSH server that serves them.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick. Epoch identifies the driver
// run that scheduled it.
type TickMsg struct {
	Epoch uint64
	Time  time.Time
}

// Driver chains tick commands at a fixed rate. The next tick is only
// scheduled by Next, after the current frame has been stepped.
// Stop bumps the epoch so ticks already in flight are ignored.
type Driver struct {
	interval time.Duration
	epoch    uint64
	running  bool
}

// NewDriver creates a stopped driver ticking fps times per second.
func NewDriver(fps int) *Driver {
	if fps <= 0 {
		fps = 60
	}
	return &Driver{interval: time.Second / time.Duration(fps)}
}

// Start begins a new epoch and schedules its first tick.
func (d *Driver) Start() tea.Cmd {
	d.epoch++
	d.running = true
	return d.Next()
}

// Stop ends the current epoch.
func (d *Driver) Stop() {
	d.epoch++
	d.running = false
}

// Running reports whether ticks are being accepted.
func (d *Driver) Running() bool {
	return d.running
}

// Accept reports whether msg belongs to the current epoch.
func (d *Driver) Accept(msg TickMsg) bool {
	return d.running && msg.Epoch == d.epoch
}

// Next schedules the following tick, or nothing when stopped.
func (d *Driver) Next() tea.Cmd {
	if !d.running {
		return nil
	}
	epoch := d.epoch
	return tea.Tick(d.interval, func(t time.Time) tea.Msg {
		return TickMsg{Epoch: epoch, Time: t}
	})
}
