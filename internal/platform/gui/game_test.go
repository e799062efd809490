package gui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/skyrunner/internal/config"
	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/games/runner"
	"github.com/vovakirdan/skyrunner/internal/input"
	"github.com/vovakirdan/skyrunner/internal/leaderboard"
	_ "github.com/vovakirdan/skyrunner/internal/themes"
)

func newTestGame(t *testing.T, board leaderboard.Leaderboard) *Game {
	t.Helper()
	g, err := New(Options{
		Config: config.DefaultRunnerConfig(),
		Board:  leaderboard.NewAsync(board, time.Second, nil),
		Name:   "ada",
		Theme:  "cyberpunk",
		Seed:   7,
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return g
}

func space() frameInput {
	return frameInput{events: []input.Event{{Kind: input.KindKey, Key: input.KeySpace}}}
}

func TestNewStartsRunning(t *testing.T) {
	g := newTestGame(t, leaderboard.NewMemory())
	if g.session.Phase() != runner.PhaseRunning {
		t.Errorf("phase = %v, want running", g.session.Phase())
	}
	w, h := g.Layout(0, 0)
	if w != 800 || h != 320 {
		t.Errorf("layout = %dx%d, want 800x320", w, h)
	}
}

func TestNewKeepsInitialBest(t *testing.T) {
	g, err := New(Options{
		Config: config.DefaultRunnerConfig(),
		Board:  leaderboard.NewAsync(leaderboard.Disabled{}, time.Second, nil),
		Name:   "ada",
		Seed:   7,
		Best:   31,
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if g.best != 31 {
		t.Errorf("best = %d, want 31", g.best)
	}
}

func TestNewRejectsEmptyName(t *testing.T) {
	_, err := New(Options{Config: config.DefaultRunnerConfig(), Name: " "})
	if !errors.Is(err, runner.ErrEmptyName) {
		t.Errorf("New() error = %v, want ErrEmptyName", err)
	}
}

func TestJumpSteps(t *testing.T) {
	g := newTestGame(t, leaderboard.NewMemory())
	g.advance(space())
	if !g.session.Last().Has(core.EventJump) {
		t.Error("space did not jump")
	}
	if g.session.Game().State().Frame != 1 {
		t.Errorf("frame = %d, want 1", g.session.Game().State().Frame)
	}
}

func TestPauseStopsStepping(t *testing.T) {
	g := newTestGame(t, leaderboard.NewMemory())
	g.advance(frameInput{})
	g.advance(frameInput{pause: true})
	if g.session.Phase() != runner.PhasePaused {
		t.Fatalf("phase = %v, want paused", g.session.Phase())
	}
	frame := g.session.Game().State().Frame

	for i := 0; i < 10; i++ {
		g.advance(space())
	}
	if got := g.session.Game().State().Frame; got != frame {
		t.Errorf("frame advanced to %d while paused", got)
	}

	g.advance(frameInput{confirm: true})
	if g.session.Phase() != runner.PhaseRunning {
		t.Errorf("phase = %v after resume", g.session.Phase())
	}
}

func TestPauseControlIsNotAJump(t *testing.T) {
	g := newTestGame(t, leaderboard.NewMemory())
	click := frameInput{events: []input.Event{{Kind: input.KindPointerDown, Button: input.ButtonLeft, OverControl: true}}}
	g.advance(click)
	if g.session.Phase() != runner.PhasePaused {
		t.Fatalf("control click did not pause, phase %v", g.session.Phase())
	}
	if g.session.Game().State().Player.IsJumping {
		t.Error("control click jumped")
	}

	touch := frameInput{events: []input.Event{{Kind: input.KindTouchStart, OverControl: true}}}
	g.advance(touch)
	if g.session.Phase() != runner.PhaseRunning {
		t.Errorf("control touch did not resume, phase %v", g.session.Phase())
	}
}

func TestOverPause(t *testing.T) {
	g := newTestGame(t, leaderboard.NewMemory())
	tests := []struct {
		x, y int
		want bool
	}{
		{780, 20, true},
		{765, 9, true},
		{700, 20, false},
		{780, 60, false},
		{10, 10, false},
	}
	for _, tt := range tests {
		if got := g.overPause(tt.x, tt.y); got != tt.want {
			t.Errorf("overPause(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRunEndsSubmitsAndRestarts(t *testing.T) {
	mem := leaderboard.NewMemory()
	g := newTestGame(t, mem)
	for i := 0; i < 20000 && g.session.Phase() == runner.PhaseRunning; i++ {
		g.advance(frameInput{})
	}
	if g.session.Phase() != runner.PhaseTerminal {
		t.Fatalf("run did not end, phase %v", g.session.Phase())
	}
	frame := g.session.Game().State().Frame
	g.advance(frameInput{})
	if g.session.Game().State().Frame != frame {
		t.Error("terminal run kept stepping")
	}

	deadline := time.Now().Add(3 * time.Second)
	for !strings.Contains(g.notice, "saved") && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
		g.pollResults()
	}
	if !strings.Contains(g.notice, "saved") {
		t.Fatalf("notice = %q, want saved", g.notice)
	}
	if entries, _ := mem.FetchTop(t.Context(), 1); len(entries) != 1 || entries[0].Name != "ada" {
		t.Errorf("board = %+v", entries)
	}

	g.advance(frameInput{restart: true})
	if g.session.Phase() != runner.PhaseRunning {
		t.Fatalf("restart: phase %v", g.session.Phase())
	}
	if st := g.session.Game().State(); st.Frame != 1 || len(st.Obstacles) > 1 || st.Combo != 0 {
		t.Errorf("restart did not reset: frame %d, combo %d", st.Frame, st.Combo)
	}
}

func TestQuitAndExit(t *testing.T) {
	g := newTestGame(t, leaderboard.NewMemory())
	g.advance(frameInput{pause: true})
	g.advance(frameInput{back: true})
	if g.session.Phase() != runner.PhaseIdle {
		t.Fatalf("phase = %v after exit", g.session.Phase())
	}
	g.advance(frameInput{quit: true})
	if !g.quit {
		t.Error("quit not recorded")
	}
}
