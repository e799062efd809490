// Package config provides YAML-based configuration loading and
// difficulty management for the runner.
package config

import (
	"errors"
	"fmt"
)

// RunnerConfig contains all configuration for the runner.
type RunnerConfig struct {
	Physics     RunnerPhysics     `yaml:"physics"`
	Player      RunnerPlayer      `yaml:"player"`
	Obstacles   RunnerObstacles   `yaml:"obstacles"`
	Combo       ComboConfig       `yaml:"combo"`
	Difficulty  DifficultyConfig  `yaml:"difficulty"`
	Playfield   PlayfieldConfig   `yaml:"playfield"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Assets      AssetsConfig      `yaml:"assets"`
	Audio       AudioConfig       `yaml:"audio"`
	TUI         TUIConfig         `yaml:"tui"`
}

// RunnerPhysics defines physics parameters.
type RunnerPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpStrength float64 `yaml:"jump_strength"` // Negative: up is -y
	BaseSpeed    float64 `yaml:"base_speed"`
}

// RunnerPlayer defines the player's fixed box.
type RunnerPlayer struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RunnerObstacles defines obstacle spawning and sizes.
type RunnerObstacles struct {
	// SpawnFactor feeds the interval formula floor(SpawnFactor / (speed*10)).
	SpawnFactor   float64 `yaml:"spawn_factor"`
	PoleWidth     float64 `yaml:"pole_width"`
	PoleMinHeight float64 `yaml:"pole_min_height"`
	PoleMaxHeight float64 `yaml:"pole_max_height"`
	DroneWidth    float64 `yaml:"drone_width"`
	DroneHeight   float64 `yaml:"drone_height"`
	DroneAltitude float64 `yaml:"drone_altitude"` // Distance from the floor to the band's lowest top edge
	DroneBand     float64 `yaml:"drone_band"`     // Random spread above DroneAltitude
}

// ComboConfig defines the near-miss window and score bonus.
type ComboConfig struct {
	Window   float64 `yaml:"window"`   // Horizontal gap must be in (0, Window)
	Vertical float64 `yaml:"vertical"` // Vertical offset must be below this
	Bonus    float64 `yaml:"bonus"`    // Score per pass is 1 + combo*Bonus
}

// PlayfieldConfig defines the simulation surface. Height is Width / Aspect.
type PlayfieldConfig struct {
	Width  float64 `yaml:"width"`
	Aspect float64 `yaml:"aspect"`
}

// Height returns the playfield height.
func (p PlayfieldConfig) Height() float64 {
	if p.Aspect <= 0 {
		return p.Width
	}
	return p.Width / p.Aspect
}

// LeaderboardConfig points at a remote leaderboard service.
// An empty URL means the local SQLite store is used.
type LeaderboardConfig struct {
	URL       string `yaml:"url"`
	Token     string `yaml:"token"`
	Limit     int    `yaml:"limit"`
	TimeoutMS int    `yaml:"timeout_ms"`
}

// AssetsConfig controls image loading for backgrounds and the player sprite.
type AssetsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Sprite    string `yaml:"sprite"`
	TimeoutMS int    `yaml:"timeout_ms"`
}

// AudioConfig controls sound effects.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"` // Gain in (0, 1]
}

// TUIConfig controls the terminal frontend.
type TUIConfig struct {
	FPS   int `yaml:"fps"`
	HUDHz int `yaml:"hud_hz"` // HUD line refresh rate, independent of the canvas
}

// DifficultyConfig defines the speed progression.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how speed grows during a run.
type ProgressionConfig struct {
	Type string  `yaml:"type"` // "score", "time", or "none"
	Rate float64 `yaml:"rate"` // Speed added per score point or per tick
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Extra base speed fraction at level 1.0
	MaxSpeed        float64 `yaml:"max_speed"`        // 0 = unbounded
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	}
	return ""
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate checks values the simulation relies on.
func (c RunnerConfig) Validate() error {
	switch {
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("%w: physics.gravity must be positive", ErrInvalidConfig)
	case c.Physics.JumpStrength >= 0:
		return fmt.Errorf("%w: physics.jump_strength must be negative", ErrInvalidConfig)
	case c.Physics.BaseSpeed <= 0:
		return fmt.Errorf("%w: physics.base_speed must be positive", ErrInvalidConfig)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player size must be positive", ErrInvalidConfig)
	case c.Playfield.Width <= 0 || c.Playfield.Aspect <= 0:
		return fmt.Errorf("%w: playfield width and aspect must be positive", ErrInvalidConfig)
	case c.Player.Height >= c.Playfield.Height():
		return fmt.Errorf("%w: player taller than playfield", ErrInvalidConfig)
	case c.Obstacles.SpawnFactor <= 0:
		return fmt.Errorf("%w: obstacles.spawn_factor must be positive", ErrInvalidConfig)
	case c.Obstacles.PoleMaxHeight < c.Obstacles.PoleMinHeight:
		return fmt.Errorf("%w: obstacles.pole_max_height below pole_min_height", ErrInvalidConfig)
	case c.TUI.FPS <= 0:
		return fmt.Errorf("%w: tui.fps must be positive", ErrInvalidConfig)
	}
	return nil
}
