package runner

import (
	"testing"

	"github.com/vovakirdan/skyrunner/internal/config"
	"github.com/vovakirdan/skyrunner/internal/core"
)

func TestAutopilotDecide(t *testing.T) {
	drone := Obstacle{Kind: KindDrone, X: 100, Y: 150, Width: 40, Height: 20}

	tests := []struct {
		name      string
		obstacles []Obstacle
		jumping   bool
		want      bool
	}{
		{"nothing ahead", nil, false, false},
		{"pole far away", []Obstacle{pole(400, 60)}, false, false},
		{"pole inside lead", []Obstacle{pole(110, 60)}, false, true},
		{"already airborne", []Obstacle{pole(110, 60)}, true, false},
		{"drone first", []Obstacle{drone, pole(150, 60)}, false, false},
		{"pole behind is ignored", []Obstacle{pole(10, 60), pole(115, 60)}, false, true},
	}

	pilot := NewAutopilot()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(config.DefaultRunnerConfig(), nil, 800, 320)
			s.Obstacles = tt.obstacles
			s.Player.IsJumping = tt.jumping

			got := pilot.Decide(s).Has(core.ActionJump)
			if got != tt.want {
				t.Errorf("Decide() jump = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestSimulateStopsAtMaxFrames(t *testing.T) {
	g := New(config.DefaultRunnerConfig(), nil, 3)
	rep := Simulate(g, NewAutopilot(), 3, 5)
	if rep.Frames != 5 || rep.Ended {
		t.Errorf("report = %+v, expected 5 frames and not ended", rep)
	}
	if rep.Seed != 3 {
		t.Errorf("Seed = %d, expected 3", rep.Seed)
	}
}

func TestSimulateRunsToTheEnd(t *testing.T) {
	g := New(config.DefaultRunnerConfig(), nil, 1)
	// A lead that is never reached never jumps.
	rep := Simulate(g, Autopilot{LeadFrames: -1000}, 1, 20000)
	if !rep.Ended {
		t.Fatalf("run did not end in %d frames", rep.Frames)
	}
	if rep.Jumps != 0 {
		t.Errorf("Jumps = %d, expected 0", rep.Jumps)
	}
	if rep.Score != g.State().FinalScore() {
		t.Errorf("Score = %d, expected %d", rep.Score, g.State().FinalScore())
	}
}
