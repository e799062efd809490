package themes

import (
	"math"

	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/parallax"
	"github.com/vovakirdan/skyrunner/internal/render"
)

// Candy element kinds
const (
	kindSprinkle      parallax.Kind = "sprinkle"
	kindCottonCloud   parallax.Kind = "cottonCloud"
	kindChocoMountain parallax.Kind = "chocoMountain"
	kindCastle        parallax.Kind = "castle"
	kindLollipop      parallax.Kind = "lollipop"
	kindGumdrop       parallax.Kind = "gumdrop"
	kindCane          parallax.Kind = "cane"
	kindJelly         parallax.Kind = "jelly"
	kindCrumb         parallax.Kind = "crumb"
	kindDrip          parallax.Kind = "drip"
)

var sprinkleColors = []core.Color{
	core.Hex("#ff6b6b"),
	core.Hex("#4ecdc4"),
	core.Hex("#ffe66d"),
	core.Hex("#1a535c"),
}

// NewCandy builds candy land: sprinkles, chocolate hills and sweets.
func NewCandy() *parallax.Theme {
	return &parallax.Theme{
		ID:         Candy,
		Name:       "Candy",
		Background: "https://img.freepik.com/free-vector/fantasy-sweet-candyland-background_107791-1763.jpg",
		Layers: []parallax.LayerSpec{
			{Speed: 0.1, AllowOverlap: true, Spawn: spawnSprinkle},
			{Speed: 0.5, Spawn: spawnCandyBack},
			{Speed: 1.5, Spawn: spawnCandyMid},
			{Speed: 3.0, Spawn: spawnCandyFore},
		},
		Draw: map[parallax.Kind]parallax.DrawFunc{
			kindSprinkle:      drawSprinkle,
			kindCottonCloud:   drawCottonCloud,
			kindChocoMountain: drawChocoMountain,
			kindCastle:        drawCastle,
			kindLollipop:      drawLollipop,
			kindGumdrop:       drawGumdrop,
			kindCane:          drawCane,
			kindJelly:         drawJelly,
			kindCrumb:         drawCrumb,
			kindDrip:          drawDrip,
		},
		Sky:    gradientSky(core.Hex("#ffe6e9"), core.Hex("#e0f7fa")),
		Ground: groundLine,
	}
}

func spawnSprinkle(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.1) {
		return nil
	}
	return one(parallax.Element{
		Kind:     kindSprinkle,
		X:        sc.Width,
		Y:        sc.Between(0, sc.Height),
		W:        4,
		H:        10,
		Color:    sprinkleColors[sc.Pick(len(sprinkleColors))],
		Rotation: sc.Between(0, math.Pi),
	})
}

func spawnCandyBack(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.005) {
		return nil
	}
	el := parallax.Element{
		Kind: choose(sc, option{0.7, kindCottonCloud}, option{0.5, kindChocoMountain}, option{kind: kindCastle}),
		X:    sc.Width,
	}
	el.Y = sc.Height - 50
	if el.Kind == kindChocoMountain {
		el.Y = sc.Height
	}
	if el.Kind == kindCastle {
		el.W, el.H = 100, 150
	} else {
		el.W, el.H = sc.Between(150, 250), sc.Between(100, 150)
	}
	return one(el)
}

func spawnCandyMid(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.015) {
		return nil
	}
	el := parallax.Element{
		Kind: choose(sc, option{0.4, kindLollipop}, option{0.7, kindGumdrop}, option{kind: kindCane}),
		X:    sc.Width,
	}
	if el.Kind == kindGumdrop {
		el.Y = sc.Height - 40
		el.W, el.H = 60, 40
	} else {
		el.Y = sc.Height - 100
		el.W, el.H = 40, 100
	}
	return one(el)
}

func spawnCandyFore(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.05) {
		return nil
	}
	el := parallax.Element{
		Kind: choose(sc, option{0.4, kindJelly}, option{0.7, kindCrumb}, option{kind: kindDrip}),
		X:    sc.Width,
		Y:    sc.Height - 10,
	}
	switch el.Kind {
	case kindJelly:
		el.W, el.H = 30, 20
	case kindCrumb:
		el.W, el.H = 5, 5
	default:
		// Drips hang from the top edge
		el.Y = 0
		el.W, el.H = 30, 40
	}
	return one(el)
}

func drawSprinkle(dc parallax.DrawContext, el *parallax.Element) {
	pts := render.RectPoints(el.X-el.W/2, el.Y-el.H/2, el.W, el.H)
	dc.Canvas.FillPolygon(render.Rotate(pts, el.X, el.Y, el.Rotation), el.Color)
}

func drawCottonCloud(dc parallax.DrawContext, el *parallax.Element) {
	pink := core.RGBA(255, 192, 203, 0.6)
	r := el.W / 3
	render.FillCircle(dc.Canvas, el.X, el.Y, r, pink)
	render.FillCircle(dc.Canvas, el.X+el.W/2, el.Y-20, r, pink)
	render.FillCircle(dc.Canvas, el.X+el.W, el.Y, r, pink)
}

func drawChocoMountain(dc parallax.DrawContext, el *parallax.Element) {
	peak := render.Point{X: el.X + el.W/2, Y: el.Y - el.H}
	mound(dc.Canvas, el.X, el.X+el.W, dc.Height, peak, core.Hex("#5D4037"))

	// Icing
	icing := render.QuadCurve(
		render.Point{X: peak.X - 20, Y: peak.Y + 35},
		peak,
		render.Point{X: peak.X + 20, Y: peak.Y + 35},
		curveSteps)
	dc.Canvas.FillPolygon(icing, core.ColorWhite)
}

func drawCastle(dc parallax.DrawContext, el *parallax.Element) {
	dc.Canvas.FillRect(el.X, el.Y, el.W, el.H, core.Hex("#FF69B4"))
	triangle(dc.Canvas,
		render.Point{X: el.X - 10, Y: el.Y},
		render.Point{X: el.X + el.W/2, Y: el.Y - 50},
		render.Point{X: el.X + el.W + 10, Y: el.Y},
		core.Hex("#FF1493"))
}

func drawLollipop(dc parallax.DrawContext, el *parallax.Element) {
	mid := el.X + el.W/2
	dc.Canvas.FillRect(mid-2, el.Y+30, 4, el.H-30, core.ColorWhite)
	render.FillCircle(dc.Canvas, mid, el.Y+30, 30, core.Hex("#FF4081"))
	// Gloss
	render.FillCircle(dc.Canvas, mid-10, el.Y+20, 5, core.RGBA(255, 255, 255, 0.4))
}

func drawGumdrop(dc parallax.DrawContext, el *parallax.Element) {
	dome(dc.Canvas, el.X+el.W/2, el.Y+el.H, el.W/2, core.Hex("#AB47BC"))
}

func drawCane(dc parallax.DrawContext, el *parallax.Element) {
	pts := []render.Point{{X: el.X, Y: el.Y + el.H}, {X: el.X, Y: el.Y + 20}}
	pts = append(pts, render.Arc(el.X+15, el.Y+20, 15, 15, math.Pi, 2*math.Pi, curveSteps)...)
	render.StrokePolyline(dc.Canvas, pts, 8, core.Hex("#F44336"))
}

func drawJelly(dc parallax.DrawContext, el *parallax.Element) {
	dome(dc.Canvas, el.X, dc.Height, el.W, core.RGBA(0, 255, 0, 0.6))
	// Gloss
	gloss := render.Arc(el.X-5, dc.Height-15, 5, 2, 0, 2*math.Pi, curveSteps)
	dc.Canvas.FillPolygon(render.Rotate(gloss, el.X-5, dc.Height-15, math.Pi/4), core.RGBA(255, 255, 255, 0.8))
}

func drawCrumb(dc parallax.DrawContext, el *parallax.Element) {
	dc.Canvas.FillRect(el.X, el.Y, el.W, el.H, core.Hex("#FF9800"))
}

func drawDrip(dc parallax.DrawContext, el *parallax.Element) {
	r := el.W / 2
	pts := []render.Point{{X: el.X, Y: 0}, {X: el.X, Y: el.H - 10}}
	pts = append(pts, render.Arc(el.X+r, el.H-10, r, r, math.Pi, 0, curveSteps)...)
	pts = append(pts, render.Point{X: el.X + el.W, Y: 0})
	dc.Canvas.FillPolygon(pts, core.Hex("#795548"))
}
