package config

import "testing"

func TestSpeedClassicCurve(t *testing.T) {
	d := NewDifficultyManager(DefaultRunnerConfig().Difficulty)

	tests := []struct {
		score float64
		want  float64
	}{
		{0, 4},
		{250, 4.5},
		{500, 5},
		{2500, 9},
	}
	for _, tt := range tests {
		if got := d.Speed(4, tt.score, 0); got != tt.want {
			t.Errorf("Speed(4, %v) = %v, expected %v", tt.score, got, tt.want)
		}
	}
}

func TestSpeedIsMonotonic(t *testing.T) {
	cfgs := map[string]DifficultyConfig{
		"score": DefaultRunnerConfig().Difficulty,
		"capped": {
			Enabled:     true,
			Progression: ProgressionConfig{Type: "score", Rate: 0.01},
			Scaling:     ScalingConfig{MaxSpeed: 6},
		},
		"time": {
			Enabled:     true,
			Progression: ProgressionConfig{Type: "time", Rate: 0.001},
		},
	}

	for name, cfg := range cfgs {
		t.Run(name, func(t *testing.T) {
			d := NewDifficultyManager(cfg)
			prev := 0.0
			for i := 0; i < 2000; i++ {
				s := d.Speed(4, float64(i)*1.3, i)
				if s < prev {
					t.Fatalf("speed decreased at step %d: %v -> %v", i, prev, s)
				}
				prev = s
			}
		})
	}
}

func TestSpeedDisabledAndCapped(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 1.0,
		Progression:  ProgressionConfig{Type: "score", Rate: 1},
		Scaling:      ScalingConfig{SpeedMultiplier: 0.5},
	})
	if got := d.Speed(4, 1000, 1000); got != 6 {
		t.Errorf("disabled Speed() = %v, expected 6 (4 * 1.5)", got)
	}
	if d.IsEnabled() {
		t.Error("IsEnabled() should be false")
	}

	capped := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", Rate: 1},
		Scaling:     ScalingConfig{MaxSpeed: 7},
	})
	if got := capped.Speed(4, 100, 0); got != 7 {
		t.Errorf("capped Speed() = %v, expected 7", got)
	}
}
