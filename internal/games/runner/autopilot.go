package runner

import "github.com/vovakirdan/skyrunner/internal/core"

// Autopilot is a simple jump policy for headless runs. It jumps when the
// next pole is LeadFrames of travel away, so the player clears it near the
// top of the arc.
type Autopilot struct {
	LeadFrames float64
}

// NewAutopilot returns an autopilot tuned for the default physics.
func NewAutopilot() Autopilot {
	return Autopilot{LeadFrames: 10}
}

// Decide returns the input for the next frame of s.
func (a Autopilot) Decide(s *State) core.InputFrame {
	in := core.NewInputFrame()
	if s.Player.IsJumping {
		return in
	}

	front := s.Player.X + s.Player.Width
	lead := s.GameSpeed * a.LeadFrames
	for _, o := range s.Obstacles {
		gap := o.X - front
		if o.Passed || gap < 0 || o.X+o.Width < s.Player.X {
			continue
		}
		if o.Kind == KindPole && gap <= lead {
			in.Set(core.ActionJump)
		}
		// Only the nearest obstacle ahead matters.
		break
	}
	return in
}

// RunReport summarizes one headless run.
type RunReport struct {
	Seed   int64
	Score  int
	Combo  int
	Frames int
	Jumps  int
	Ended  bool // false when maxFrames ran out first
}

// Simulate plays g with the autopilot until it ends or maxFrames pass.
func Simulate(g *Game, pilot Autopilot, seed int64, maxFrames int) RunReport {
	rep := RunReport{Seed: seed}
	for rep.Frames < maxFrames {
		res := g.Step(pilot.Decide(g.State()))
		rep.Frames++
		if res.Has(core.EventJump) {
			rep.Jumps++
		}
		if res.State.GameOver {
			rep.Ended = true
			break
		}
	}
	rep.Score = g.State().FinalScore()
	rep.Combo = g.State().Combo
	return rep
}
