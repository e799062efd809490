package runner

import (
	"math"
	"testing"

	"github.com/vovakirdan/skyrunner/internal/config"
	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/registry"
	_ "github.com/vovakirdan/skyrunner/internal/themes"
)

// fixedSpeedConfig scrolls at a constant 10 units per frame.
func fixedSpeedConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Difficulty.Enabled = false
	cfg.Physics.BaseSpeed = 10
	return cfg
}

func jumpFrame() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	return in
}

func TestNewGameInitialState(t *testing.T) {
	theme, _ := registry.Create("cyberpunk")
	g := New(config.DefaultRunnerConfig(), theme, 1)
	s := g.State()

	if s.Width != 800 || s.Height != 320 {
		t.Errorf("playfield = %vx%v, want 800x320", s.Width, s.Height)
	}
	if s.Player.X != 50 || s.Player.Y != 290 || s.Player.Width != 30 || s.Player.Height != 30 {
		t.Errorf("player = %+v", s.Player)
	}
	if s.Score != 0 || s.Combo != 0 || s.Frame != 0 || s.Terminal || len(s.Obstacles) != 0 {
		t.Errorf("run not fresh: %+v", s)
	}
	if s.GameSpeed != 4 {
		t.Errorf("GameSpeed = %v, want 4", s.GameSpeed)
	}
	if len(s.Layers) != len(theme.Layers) {
		t.Errorf("layers = %d, want %d", len(s.Layers), len(theme.Layers))
	}
}

func TestPoleReachesGroundedPlayer(t *testing.T) {
	g := New(fixedSpeedConfig(), nil, 1)
	s := g.State()
	s.Obstacles = []Obstacle{pole(s.Width, 40)}

	ticks := 0
	var last core.StepResult
	for ticks < 200 && !s.Terminal {
		last = g.Step(core.NewInputFrame())
		ticks++
	}
	if !s.Terminal {
		t.Fatal("pole never hit the player")
	}
	if !last.Has(core.EventCrash) || !last.State.GameOver {
		t.Errorf("final step should report the crash: %+v", last)
	}

	// The pole must travel from the right edge until it overlaps [50, 80).
	want := int(math.Floor((s.Width-(s.Player.X+s.Player.Width))/10)) + 1
	if ticks != want {
		t.Errorf("collision after %d ticks, want %d", ticks, want)
	}
	approx := int(math.Round((s.Width - 50 - 30 - 10) / 10))
	if d := ticks - approx; d < -2 || d > 2 {
		t.Errorf("collision after %d ticks, expected about %d", ticks, approx)
	}
}

func TestStepAfterTerminalIsFrozen(t *testing.T) {
	g := New(fixedSpeedConfig(), nil, 1)
	s := g.State()
	s.Terminal = true
	s.Frame = 12

	res := g.Step(jumpFrame())
	if s.Frame != 12 || s.Player.IsJumping || len(res.Events) != 0 {
		t.Errorf("terminal run moved: frame=%d jumping=%v events=%v", s.Frame, s.Player.IsJumping, res.Events)
	}
	if !res.State.GameOver {
		t.Error("snapshot should report game over")
	}
}

func TestJumpEventOnlyWhenGrounded(t *testing.T) {
	g := New(fixedSpeedConfig(), nil, 1)

	if res := g.Step(jumpFrame()); !res.Has(core.EventJump) {
		t.Error("grounded jump should emit EventJump")
	}
	if res := g.Step(jumpFrame()); res.Has(core.EventJump) {
		t.Error("mid-air jump should not emit EventJump")
	}
	if g.State().Player.Y >= g.State().FloorY() {
		t.Error("player should be airborne after jumping")
	}
}

func TestGameSpeedFollowsScore(t *testing.T) {
	g := New(config.DefaultRunnerConfig(), nil, 1)
	s := g.State()

	s.Score = 500
	g.Step(core.NewInputFrame())
	if math.Abs(s.GameSpeed-5) > 1e-9 {
		t.Errorf("GameSpeed at score 500 = %v, want 5", s.GameSpeed)
	}

	s.Score = 2500
	g.Step(core.NewInputFrame())
	if math.Abs(s.GameSpeed-9) > 1e-9 {
		t.Errorf("GameSpeed at score 2500 = %v, want 9", s.GameSpeed)
	}
}

func TestDeterministicReplay(t *testing.T) {
	play := func() *State {
		theme, err := registry.Create("space")
		if err != nil {
			t.Fatalf("Create(space) failed: %v", err)
		}
		g := New(config.DefaultRunnerConfig(), theme, 99)
		for i := 0; i < 600 && !g.State().Terminal; i++ {
			in := core.NewInputFrame()
			if i%37 == 0 {
				in.Set(core.ActionJump)
			}
			g.Step(in)
		}
		return g.State()
	}

	a, b := play(), play()
	if a.Frame != b.Frame || a.Score != b.Score || a.Combo != b.Combo || a.Terminal != b.Terminal {
		t.Errorf("runs diverged: %d/%v/%d vs %d/%v/%d", a.Frame, a.Score, a.Combo, b.Frame, b.Score, b.Combo)
	}
	if a.Player != b.Player {
		t.Errorf("players diverged: %+v vs %+v", a.Player, b.Player)
	}
	for i := range a.Layers {
		if len(a.Layers[i].Elements) != len(b.Layers[i].Elements) {
			t.Errorf("layer %d diverged: %d vs %d elements", i, len(a.Layers[i].Elements), len(b.Layers[i].Elements))
		}
	}
}

func TestLongRunKeepsInvariants(t *testing.T) {
	theme, _ := registry.Create("jungle")
	g := New(config.DefaultRunnerConfig(), theme, 5)
	s := g.State()

	prevSpeed, prevCombo := 0.0, 0
	for i := 0; i < 5000 && !s.Terminal; i++ {
		in := core.NewInputFrame()
		// Hop whenever a pole is close.
		for _, o := range s.Obstacles {
			if o.Kind == KindPole && o.X-(s.Player.X+s.Player.Width) < 40 {
				in.Set(core.ActionJump)
			}
		}
		g.Step(in)

		if s.Player.Y < 0 || s.Player.Y > s.FloorY() {
			t.Fatalf("frame %d: player Y %v out of bounds", s.Frame, s.Player.Y)
		}
		if s.GameSpeed < prevSpeed {
			t.Fatalf("frame %d: speed decreased %v -> %v", s.Frame, prevSpeed, s.GameSpeed)
		}
		if s.Combo < prevCombo {
			t.Fatalf("frame %d: combo decreased", s.Frame)
		}
		if len(s.Obstacles) > 1 {
			t.Fatalf("frame %d: %d obstacles on the field", s.Frame, len(s.Obstacles))
		}
		prevSpeed, prevCombo = s.GameSpeed, s.Combo
	}
}
