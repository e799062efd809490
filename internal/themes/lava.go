package themes

import (
	"math"

	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/parallax"
	"github.com/vovakirdan/skyrunner/internal/render"
)

// Lava element kinds
const (
	kindAsh           parallax.Kind = "ash"
	kindVolcano       parallax.Kind = "volcano"
	kindRockFormation parallax.Kind = "rockFormation"
	kindLavaFall      parallax.Kind = "lavaFall"
	kindCrackedRock   parallax.Kind = "crackedRock"
	kindSplash        parallax.Kind = "splash"
	kindEmber         parallax.Kind = "ember"
)

// NewLava builds the volcanic theme with drifting ash and rising embers.
func NewLava() *parallax.Theme {
	return &parallax.Theme{
		ID:         Lava,
		Name:       "Lava / Volcano",
		Background: "https://img.freepik.com/free-vector/volcano-eruption-background-flat-style_23-2148664267.jpg",
		Layers: []parallax.LayerSpec{
			{Speed: 0.1, AllowOverlap: true, Spawn: spawnAsh},
			{Speed: 0.5, Spawn: spawnVolcano},
			{Speed: 1.5, Spawn: spawnLavaMid},
			{Speed: 3.0, Spawn: spawnLavaFore},
		},
		Draw: map[parallax.Kind]parallax.DrawFunc{
			kindAsh:           drawAsh,
			kindVolcano:       drawVolcano,
			kindRockFormation: drawRockFormation,
			kindLavaFall:      drawLavaFall,
			kindCrackedRock:   drawCrackedRock,
			kindSplash:        drawSplash,
			kindEmber:         drawEmber,
		},
		Motion: map[parallax.Kind]parallax.MotionFunc{
			kindEmber: drift,
		},
		Sky:    flatSky(core.Hex("#220000")),
		Ground: groundLine,
	}
}

func spawnAsh(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.2) {
		return nil
	}
	return one(parallax.Element{
		Kind:    kindAsh,
		X:       sc.Width + sc.Between(0, 50),
		Y:       sc.Between(0, sc.Height),
		W:       sc.Between(2, 5),
		H:       sc.Between(2, 5),
		Opacity: sc.Between(0.5, 1),
	})
}

func spawnVolcano(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.005) {
		return nil
	}
	return one(parallax.Element{
		Kind: kindVolcano,
		X:    sc.Width,
		Y:    sc.Height - 50,
		W:    sc.Between(300, 500),
		H:    sc.Between(200, 300),
	})
}

func spawnLavaMid(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.01) {
		return nil
	}
	el := parallax.Element{
		Kind: choose(sc, option{0.7, kindRockFormation}, option{kind: kindLavaFall}),
		X:    sc.Width,
	}
	if el.Kind == kindLavaFall {
		el.Y = sc.Height - 150
	} else {
		el.Y = sc.Height - 100
	}
	el.W = sc.Between(50, 100)
	el.H = sc.Between(100, 150)
	return one(el)
}

func spawnLavaFore(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.05) {
		return nil
	}
	el := parallax.Element{
		Kind: choose(sc, option{0.4, kindCrackedRock}, option{0.7, kindSplash}, option{kind: kindEmber}),
		X:    sc.Width,
	}
	if el.Kind == kindEmber {
		el.Y = sc.Height
		el.W, el.H = 5, 5
		el.SpeedY = -2
	} else {
		el.Y = sc.Height - 20
		el.W = sc.Between(30, 50)
		el.H = sc.Between(20, 40)
	}
	return one(el)
}

func drawAsh(dc parallax.DrawContext, el *parallax.Element) {
	dc.Canvas.FillRect(el.X, el.Y, el.W, el.H, core.RGBA(150, 150, 150, el.Opacity))
}

func drawVolcano(dc parallax.DrawContext, el *parallax.Element) {
	h := dc.Height
	peak := render.Point{X: el.X + el.W/2, Y: h - el.H}
	triangle(dc.Canvas, render.Point{X: el.X, Y: h}, peak, render.Point{X: el.X + el.W, Y: h}, core.Hex("#1a0505"))

	// Lava flow
	flow := math.Sin(float64(dc.Frame)*0.05) * 20
	strokeCurve(dc.Canvas,
		peak,
		render.Point{X: peak.X + flow, Y: h - el.H/2},
		render.Point{X: peak.X + 50, Y: h},
		5, core.Hex("#ff4500"))
}

func drawRockFormation(dc parallax.DrawContext, el *parallax.Element) {
	h := dc.Height
	triangle(dc.Canvas,
		render.Point{X: el.X, Y: h},
		render.Point{X: el.X + el.W/2, Y: el.Y},
		render.Point{X: el.X + el.W, Y: h},
		core.ColorBlack)
}

func drawLavaFall(dc parallax.DrawContext, el *parallax.Element) {
	dc.Canvas.FillRect(el.X, el.Y, el.W, el.H, core.Hex("#ff3300"))
}

func drawCrackedRock(dc parallax.DrawContext, el *parallax.Element) {
	top := dc.Height - el.H
	dc.Canvas.FillRect(el.X, top, el.W, el.H, core.Hex("#111"))
	dc.Canvas.StrokeLine(el.X, top, el.X+el.W, dc.Height, 1, core.Hex("#ff0000"))
}

func drawSplash(dc parallax.DrawContext, el *parallax.Element) {
	dome(dc.Canvas, el.X, dc.Height, el.W/2, core.Hex("#ffaa00"))
}

func drawEmber(dc parallax.DrawContext, el *parallax.Element) {
	dc.Canvas.FillRect(el.X, el.Y, el.W, el.H, core.Hex("#ffff00"))
}
