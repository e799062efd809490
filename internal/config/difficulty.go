package config

import "math"

// DifficultyManager derives the scroll speed from score or elapsed ticks.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// StartSpeed returns the speed at score 0 and tick 0.
func (d *DifficultyManager) StartSpeed(baseSpeed float64) float64 {
	return baseSpeed * (1.0 + d.initialLevel*d.cfg.Scaling.SpeedMultiplier)
}

// Speed returns the scroll speed for the given score and tick count.
// It never decreases as score or ticks grow.
func (d *DifficultyManager) Speed(baseSpeed float64, score float64, ticks int) float64 {
	speed := d.StartSpeed(baseSpeed)
	if !d.IsEnabled() {
		return speed
	}

	switch d.cfg.Progression.Type {
	case "score":
		speed += math.Max(score, 0) * d.cfg.Progression.Rate
	case "time":
		speed += float64(max(ticks, 0)) * d.cfg.Progression.Rate
	}

	if limit := d.cfg.Scaling.MaxSpeed; limit > 0 && speed > limit {
		speed = math.Max(limit, d.StartSpeed(baseSpeed))
	}
	return speed
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
