package runner

import (
	"image"
	"math"

	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/render"
)

// ImageSource hands out images once they have finished loading.
type ImageSource interface {
	Image(ref string) (image.Image, bool)
}

var (
	droneColor = core.Hex("#ff0055")
	poleColor  = core.Hex("#00ffcc")
	dragonBody = core.Hex("#00ffff")
	dragonTail = core.Hex("#00b8b8")
	defaultGnd = core.Hex("#0ff")
)

const (
	wingFlapSpeed = 0.2
	groundStep    = 20.0
)

// Render draws the current frame back to front: backdrop, layers, ground,
// player, obstacles. images may be nil; missing images fall back to
// procedural drawing. sprite is the player image reference.
func (g *Game) Render(c render.Canvas, images ImageSource, sprite string) {
	s := g.state
	w, h := s.Width, s.Height

	theme := g.Theme()
	if theme != nil {
		if img, ok := lookup(images, theme.Background); ok {
			c.DrawImage(img, 0, 0, w, h)
		} else {
			theme.PaintSky(c)
		}
		g.engine.DrawAll(c, s.Layers, s.Frame, g.fx)
	} else {
		c.FillRect(0, 0, w, h, core.Hex("#050510"))
	}

	ground := defaultGnd
	if theme != nil && !theme.Ground.IsZero() {
		ground = theme.Ground
	}
	g.drawGround(c, ground)

	if img, ok := lookup(images, sprite); ok {
		p := s.Player
		c.DrawImage(img, p.X, p.Y, p.Width, p.Height)
	} else {
		drawDragon(c, s.Player, s.Frame)
	}

	for _, obs := range s.Obstacles {
		switch obs.Kind {
		case KindDrone:
			drawDrone(c, obs)
		default:
			g.drawPole(c, obs)
		}
	}
}

func lookup(images ImageSource, ref string) (image.Image, bool) {
	if images == nil || ref == "" {
		return nil, false
	}
	return images.Image(ref)
}

// drawGround strokes the floor line with an occasional glitch offset.
func (g *Game) drawGround(c render.Canvas, col core.Color) {
	w, h := g.state.Width, g.state.Height
	pts := []render.Point{{X: 0, Y: h - 2}}
	for x := 0.0; x < w; x += groundStep {
		offset := 0.0
		if g.fx.Float64() > 0.9 {
			offset = g.fx.Float64()*10 - 5
		}
		pts = append(pts, render.Point{X: x, Y: h - 2 + offset})
	}
	render.StrokePolyline(c, pts, 2, col)
}

// drawNeonRect fills a rectangle with a soft halo around it.
func drawNeonRect(c render.Canvas, x, y, w, h float64, col core.Color) {
	c.FillRect(x-2, y-2, w+4, h+4, col.WithAlpha(0.25))
	c.FillRect(x, y, w, h, col)
}

// drawDragon is the procedural player used until the sprite loads.
func drawDragon(c render.Canvas, p Player, frame int) {
	x, y, w, h := p.X, p.Y, p.Width, p.Height
	mid := y + h/2

	c.FillPolygon([]render.Point{
		{X: x, Y: mid},
		{X: x - 15, Y: mid + 5},
		{X: x - 10, Y: mid},
		{X: x - 15, Y: mid - 5},
	}, dragonTail)

	drawNeonRect(c, x, y, w, h, dragonBody)
	c.FillRect(x+w, y, 10, h*0.8, dragonBody)

	angle := math.Sin(float64(frame)*wingFlapSpeed) * (math.Pi / 6)
	cx, cy := x+w/2, mid
	wing := render.RectPoints(cx, cy-h/2, 25, h)
	c.FillPolygon(render.Rotate(wing, cx, cy, angle), dragonBody)
}

func drawDrone(c render.Canvas, obs Obstacle) {
	drawNeonRect(c, obs.X, obs.Y, obs.Width, obs.Height, droneColor)
	c.FillRect(obs.X-5, obs.Y-5, 10, 5, core.ColorWhite)
	c.FillRect(obs.X+obs.Width-5, obs.Y-5, 10, 5, core.ColorWhite)
}

func (g *Game) drawPole(c render.Canvas, obs Obstacle) {
	drawNeonRect(c, obs.X, obs.Y, obs.Width, obs.Height, poleColor)
	if g.fx.Float64() > 0.8 {
		y0 := obs.Y + g.fx.Float64()*obs.Height
		y1 := obs.Y + g.fx.Float64()*obs.Height
		c.StrokeLine(obs.X, y0, obs.X+20, y1, 1, core.ColorWhite)
	}
}
