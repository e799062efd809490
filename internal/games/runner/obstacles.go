package runner

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/skyrunner/internal/config"
	"github.com/vovakirdan/skyrunner/internal/core"
)

// ObstacleKind distinguishes ground and airborne obstacles.
type ObstacleKind int

const (
	KindPole ObstacleKind = iota
	KindDrone
)

// String returns the obstacle kind name.
func (k ObstacleKind) String() string {
	switch k {
	case KindPole:
		return "pole"
	case KindDrone:
		return "drone"
	default:
		return "unknown"
	}
}

// Obstacle is a hazard scrolling towards the player.
type Obstacle struct {
	Kind            ObstacleKind
	X, Y            float64
	Width, Height   float64
	Passed          bool // set once, when the trailing edge clears the player
	NearMissChecked bool // set once, when the obstacle awarded combo
}

// Rect returns the obstacle's collision box.
func (o Obstacle) Rect() core.RectF {
	return core.RectF{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
}

// SpawnInterval returns the frame modulus used for spawning at speed.
// It is floor(factor / (speed*10)) and never below 1.
func SpawnInterval(factor, speed float64) int {
	if speed <= 0 {
		return 1
	}
	n := int(math.Floor(factor / (speed * 10)))
	if n < 1 {
		return 1
	}
	return n
}

// Outcome reports what the obstacle pass did during one frame.
type Outcome struct {
	Spawned    bool
	Collided   bool
	NearMisses int
	Passed     int
}

// ObstacleManager spawns, moves, scores and culls obstacles.
type ObstacleManager struct {
	rng   *rand.Rand
	cfg   config.RunnerObstacles
	combo config.ComboConfig
}

// NewObstacleManager creates a manager drawing from rng.
func NewObstacleManager(rng *rand.Rand, cfg config.RunnerObstacles, combo config.ComboConfig) *ObstacleManager {
	return &ObstacleManager{rng: rng, cfg: cfg, combo: combo}
}

// Update runs one frame: spawn, then advance, collide, near-miss and score
// for each obstacle, then cull. s.Frame must already be incremented.
func (om *ObstacleManager) Update(s *State) Outcome {
	var out Outcome

	if len(s.Obstacles) == 0 && s.Frame%SpawnInterval(om.cfg.SpawnFactor, s.GameSpeed) == 0 {
		s.Obstacles = append(s.Obstacles, om.spawn(s.Width, s.Height))
		out.Spawned = true
	}

	player := s.Player.Rect()
	for i := range s.Obstacles {
		obs := &s.Obstacles[i]
		obs.X -= s.GameSpeed

		if player.Intersects(obs.Rect()) {
			s.Terminal = true
			out.Collided = true
		}

		if !obs.Passed && !obs.NearMissChecked && om.isNearMiss(s.Player, *obs) {
			s.registerNearMiss(obs)
			out.NearMisses++
		}

		if !obs.Passed && obs.X+obs.Width < s.Player.X {
			s.addPass(obs, om.combo.Bonus)
			out.Passed++
		}
	}

	cullObstacles(s)
	return out
}

func (om *ObstacleManager) spawn(width, height float64) Obstacle {
	if om.rng.Float64() > 0.5 {
		return Obstacle{
			Kind:   KindDrone,
			X:      width,
			Y:      height - om.cfg.DroneAltitude - om.rng.Float64()*om.cfg.DroneBand,
			Width:  om.cfg.DroneWidth,
			Height: om.cfg.DroneHeight,
		}
	}
	h := om.cfg.PoleMinHeight + om.rng.Float64()*(om.cfg.PoleMaxHeight-om.cfg.PoleMinHeight)
	return Obstacle{
		Kind:   KindPole,
		X:      width,
		Y:      height - h,
		Width:  om.cfg.PoleWidth,
		Height: h,
	}
}

func (om *ObstacleManager) isNearMiss(p Player, obs Obstacle) bool {
	gap := obs.X - (p.X + p.Width)
	return gap > 0 && gap < om.combo.Window && math.Abs(p.Y-obs.Y) < om.combo.Vertical
}

// cullObstacles drops obstacles whose right edge is left of the playfield.
func cullObstacles(s *State) {
	kept := s.Obstacles[:0]
	for _, o := range s.Obstacles {
		if o.X+o.Width >= 0 {
			kept = append(kept, o)
		}
	}
	s.Obstacles = kept
}
