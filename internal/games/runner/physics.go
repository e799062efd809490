package runner

import "github.com/vovakirdan/skyrunner/internal/core"

// Player is the runner's box. X is fixed for the whole run.
type Player struct {
	X, Y      float64
	VelocityY float64
	Width     float64
	Height    float64
	IsJumping bool
}

// Rect returns the player's collision box.
func (p Player) Rect() core.RectF {
	return core.RectF{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// Integrate applies one frame of gravity and clamps the player between the
// top of the playfield and floorY. Landing ends the jump; hitting the
// ceiling only kills the upward velocity.
func Integrate(p *Player, gravity, floorY float64) {
	p.VelocityY += gravity
	p.Y += p.VelocityY

	if p.Y > floorY {
		p.Y = floorY
		p.VelocityY = 0
		p.IsJumping = false
	}
	if p.Y < 0 {
		p.Y = 0
		p.VelocityY = 0
	}
}

// Jump applies the jump impulse if the player is grounded.
// It reports whether the jump fired.
func Jump(p *Player, strength float64) bool {
	if p.IsJumping {
		return false
	}
	p.VelocityY = strength
	p.IsJumping = true
	return true
}
