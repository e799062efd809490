// Package themes contains the built-in visual environments.
// Each theme is a spawn table plus a draw table for the parallax engine.
// Importing this package registers every theme with the registry.
package themes

import (
	"math"

	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/parallax"
	"github.com/vovakirdan/skyrunner/internal/registry"
	"github.com/vovakirdan/skyrunner/internal/render"
)

// Theme identifiers in menu order.
const (
	Cyberpunk  = "cyberpunk"
	Jungle     = "jungle"
	Space      = "space"
	Lava       = "lava"
	Ice        = "ice"
	Desert     = "desert"
	Candy      = "candy"
	Underwater = "underwater"
)

// groundLine is shared by every theme.
var groundLine = core.Hex("#0ff")

// Number of segments used when flattening curves.
const curveSteps = 16

// option is one branch of a cascading random choice.
type option struct {
	p    float64
	kind parallax.Kind
}

// choose walks options in order, taking each with its own probability.
// The last option is the fallback and its probability is ignored.
func choose(sc parallax.SpawnContext, opts ...option) parallax.Kind {
	for _, o := range opts[:len(opts)-1] {
		if sc.Chance(o.p) {
			return o.kind
		}
	}
	return opts[len(opts)-1].kind
}

// one wraps a single element for a spawn function result.
func one(el parallax.Element) []parallax.Element {
	return []parallax.Element{el}
}

// flatSky paints a single color backdrop.
func flatSky(col core.Color) parallax.SkyFunc {
	return func(c render.Canvas, w, h float64) {
		c.FillRect(0, 0, w, h, col)
	}
}

// gradientSky paints a vertical two-stop backdrop.
func gradientSky(top, bottom core.Color) parallax.SkyFunc {
	return func(c render.Canvas, w, h float64) {
		c.FillGradient(0, 0, w, h, top, bottom)
	}
}

// drift applies an element's own velocity on top of the layer scroll.
func drift(_ parallax.DrawContext, el *parallax.Element) {
	el.X -= el.SpeedX
	el.Y += el.SpeedY
}

// dome fills the upper half of a circle resting on (cx, cy).
func dome(c render.Canvas, cx, cy, r float64, col core.Color) {
	c.FillPolygon(render.Arc(cx, cy, r, r, math.Pi, 2*math.Pi, curveSteps), col)
}

// triangle fills a three point polygon.
func triangle(c render.Canvas, a, b, d render.Point, col core.Color) {
	c.FillPolygon([]render.Point{a, b, d}, col)
}

// mound fills the area under a quadratic curve from (x0, base) to (x1, base).
func mound(c render.Canvas, x0, x1, base float64, ctrl render.Point, col core.Color) {
	c.FillPolygon(render.QuadCurve(render.Point{X: x0, Y: base}, ctrl, render.Point{X: x1, Y: base}, curveSteps), col)
}

// strokeCurve draws a quadratic curve as a polyline.
func strokeCurve(c render.Canvas, p0, p1, p2 render.Point, width float64, col core.Color) {
	render.StrokePolyline(c, render.QuadCurve(p0, p1, p2, curveSteps), width, col)
}

// fadeEllipse fills an ellipse whose color fades from top to bottom.
func fadeEllipse(c render.Canvas, cx, cy, rx, ry float64, top, bottom core.Color) {
	const bands = 12
	bh := 2 * ry / bands
	for i := 0; i < bands; i++ {
		mid := -ry + (float64(i)+0.5)*bh
		half := rx * math.Sqrt(math.Max(0, 1-(mid*mid)/(ry*ry)))
		col := top.Lerp(bottom, (float64(i)+0.5)/bands)
		c.FillRect(cx-half, cy-ry+float64(i)*bh, 2*half, bh, col)
	}
}

func init() {
	registry.Register(Cyberpunk, NewCyberpunk)
	registry.Register(Jungle, NewJungle)
	registry.Register(Space, NewSpace)
	registry.Register(Lava, NewLava)
	registry.Register(Ice, NewIce)
	registry.Register(Desert, NewDesert)
	registry.Register(Candy, NewCandy)
	registry.Register(Underwater, NewUnderwater)
}
