package runner

import (
	"github.com/vovakirdan/skyrunner/internal/config"
	"github.com/vovakirdan/skyrunner/internal/parallax"
)

// State is everything that changes during one run. The Game that owns it
// threads it through every step; nothing else holds a copy.
type State struct {
	Player    Player
	Obstacles []Obstacle
	Layers    []parallax.Layer

	Score     float64
	GameSpeed float64
	Frame     int
	Combo     int
	Terminal  bool

	Width, Height float64
}

// NewState builds a fresh run state with the player standing on the floor.
func NewState(cfg config.RunnerConfig, theme *parallax.Theme, width, height float64) *State {
	s := &State{
		Player: Player{
			X:      cfg.Player.X,
			Y:      height - cfg.Player.Height,
			Width:  cfg.Player.Width,
			Height: cfg.Player.Height,
		},
		Obstacles: make([]Obstacle, 0, 2),
		GameSpeed: cfg.Physics.BaseSpeed,
		Width:     width,
		Height:    height,
	}
	if theme != nil {
		s.Layers = theme.NewLayers()
	}
	return s
}

// FloorY is the highest Y the player's top edge may take.
func (s *State) FloorY() float64 {
	return s.Height - s.Player.Height
}
