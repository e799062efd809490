package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultSprite is the dragon image shown once it has loaded.
const DefaultSprite = "https://cdn.dribbble.com/userupload/2585188/file/original-5908efaf5d226c3d90acab6bcf6d5b5c.png?resize=1600x1200"

// DefaultRunnerConfig returns the default runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: RunnerPhysics{
			Gravity:      0.5,
			JumpStrength: -12,
			BaseSpeed:    4,
		},
		Player: RunnerPlayer{
			X:      50,
			Width:  30,
			Height: 30,
		},
		Obstacles: RunnerObstacles{
			SpawnFactor:   1000,
			PoleWidth:     10,
			PoleMinHeight: 40,
			PoleMaxHeight: 80,
			DroneWidth:    40,
			DroneHeight:   20,
			DroneAltitude: 90,
			DroneBand:     50,
		},
		Combo: ComboConfig{
			Window:   50,
			Vertical: 100,
			Bonus:    0.1,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type: "score",
				Rate: 1.0 / 500,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				MaxSpeed:        0,
			},
		},
		Playfield: PlayfieldConfig{
			Width:  800,
			Aspect: 2.5,
		},
		Leaderboard: LeaderboardConfig{
			Limit:     5,
			TimeoutMS: 5000,
		},
		Assets: AssetsConfig{
			Enabled:   false,
			Sprite:    DefaultSprite,
			TimeoutMS: 8000,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     0.4,
		},
		TUI: TUIConfig{
			FPS:   60,
			HUDHz: 10,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultRunnerYAML
}
