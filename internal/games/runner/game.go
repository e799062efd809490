// Package runner implements the side-scrolling reflex runner: a player box
// that jumps over poles and under drones while themed parallax layers scroll
// past. Score accrues as obstacles are passed, with a bonus for near misses.
package runner

import (
	"math/rand"

	"github.com/vovakirdan/skyrunner/internal/config"
	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/parallax"
)

// Game owns one run: its state, the obstacle manager and the layer engine.
type Game struct {
	cfg        config.RunnerConfig
	state      *State
	obstacles  *ObstacleManager
	engine     *parallax.Engine
	difficulty *config.DifficultyManager

	rng *rand.Rand // simulation
	fx  *rand.Rand // cosmetic jitter only
}

// New creates a run over cfg's playfield for theme.
// The same seed and inputs replay the same run.
func New(cfg config.RunnerConfig, theme *parallax.Theme, seed int64) *Game {
	w, h := cfg.Playfield.Width, cfg.Playfield.Height()
	rng := rand.New(rand.NewSource(seed))

	g := &Game{
		cfg:        cfg,
		state:      NewState(cfg, theme, w, h),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		rng:        rng,
		fx:         rand.New(rand.NewSource(seed ^ 0x5eed)),
	}
	g.obstacles = NewObstacleManager(rng, cfg.Obstacles, cfg.Combo)
	if theme != nil {
		g.engine = parallax.NewEngine(theme, rng, w, h)
	}
	g.state.GameSpeed = g.difficulty.StartSpeed(cfg.Physics.BaseSpeed)
	return g
}

// State returns the live run state.
func (g *Game) State() *State {
	return g.state
}

// Theme returns the run's theme, or nil for a bare run.
func (g *Game) Theme() *parallax.Theme {
	if g.engine == nil {
		return nil
	}
	return g.engine.Theme()
}

// Snapshot summarizes the run for the platform.
func (g *Game) Snapshot() core.GameState {
	return core.GameState{
		Score:    g.state.FinalScore(),
		Combo:    g.state.Combo,
		GameOver: g.state.Terminal,
	}
}

// Step advances the run by one frame: jump, physics, speed, obstacles,
// then layers. A terminal run does not move.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	s := g.state
	if s.Terminal {
		return core.StepResult{State: g.Snapshot()}
	}

	var events []core.Event

	if in.Has(core.ActionJump) && Jump(&s.Player, g.cfg.Physics.JumpStrength) {
		events = append(events, core.EventJump)
	}
	Integrate(&s.Player, g.cfg.Physics.Gravity, s.FloorY())

	s.GameSpeed = g.difficulty.Speed(g.cfg.Physics.BaseSpeed, s.Score, s.Frame)
	s.Frame++

	out := g.obstacles.Update(s)
	for i := 0; i < out.NearMisses; i++ {
		events = append(events, core.EventNearMiss)
	}
	for i := 0; i < out.Passed; i++ {
		events = append(events, core.EventScore)
	}
	if out.Collided {
		events = append(events, core.EventCrash)
	}

	if g.engine != nil {
		g.engine.Advance(s.Layers, s.GameSpeed)
	}

	return core.StepResult{State: g.Snapshot(), Events: events}
}
