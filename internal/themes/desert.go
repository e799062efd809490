package themes

import (
	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/parallax"
	"github.com/vovakirdan/skyrunner/internal/render"
)

// Desert element kinds
const (
	kindSun        parallax.Kind = "sun"
	kindDuneLarge  parallax.Kind = "duneLarge"
	kindPyramid    parallax.Kind = "pyramid"
	kindDuneSmall  parallax.Kind = "duneSmall"
	kindCart       parallax.Kind = "cart"
	kindCactus     parallax.Kind = "cactus"
	kindSand       parallax.Kind = "sand"
	kindDesertRock parallax.Kind = "rock"
	kindSkull      parallax.Kind = "skull"
	kindShrub      parallax.Kind = "shrub"
)

// NewDesert builds the sunset desert with dunes, pyramids and blowing sand.
func NewDesert() *parallax.Theme {
	return &parallax.Theme{
		ID:         Desert,
		Name:       "Desert",
		Background: "https://img.freepik.com/free-vector/desert-landscape-scene-sunset_1308-54565.jpg",
		Layers: []parallax.LayerSpec{
			{Speed: 0.1, AllowOverlap: true, Spawn: spawnSun},
			{Speed: 0.5, Spawn: spawnDesertBack},
			{Speed: 1.5, Spawn: spawnDesertMid},
			{Speed: 3.0, AllowOverlap: true, Spawn: spawnDesertFore},
		},
		Draw: map[parallax.Kind]parallax.DrawFunc{
			kindSun:        drawSun,
			kindDuneLarge:  drawDuneLarge,
			kindPyramid:    drawPyramid,
			kindDuneSmall:  drawDuneSmall,
			kindCart:       drawCart,
			kindCactus:     drawCactus,
			kindSand:       drawSand,
			kindDesertRock: drawFloorDome(core.Hex("#808080")),
			kindSkull:      drawSkull,
			kindShrub:      drawFloorDome(core.Hex("#556B2F")),
		},
		Motion: map[parallax.Kind]parallax.MotionFunc{
			kindSand: drift,
		},
		Sky:    gradientSky(core.Hex("#FFD700"), core.Hex("#FF8C00")),
		Ground: groundLine,
	}
}

// spawnSun rarely adds a sun, and only when none is on screen.
func spawnSun(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.001) || !sc.Empty() {
		return nil
	}
	return one(parallax.Element{Kind: kindSun, X: sc.Width, Y: 50, W: 60, H: 60})
}

func spawnDesertBack(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.005) {
		return nil
	}
	return one(parallax.Element{
		Kind: choose(sc, option{0.7, kindDuneLarge}, option{kind: kindPyramid}),
		X:    sc.Width,
		Y:    sc.Height - 50,
		W:    sc.Between(150, 300),
		H:    sc.Between(100, 200),
	})
}

func spawnDesertMid(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.01) {
		return nil
	}
	return one(parallax.Element{
		Kind: choose(sc, option{0.4, kindDuneSmall}, option{0.7, kindCart}, option{kind: kindCactus}),
		X:    sc.Width,
		Y:    sc.Height - 40,
		W:    sc.Between(50, 100),
		H:    sc.Between(50, 100),
	})
}

func spawnDesertFore(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.1) {
		return nil
	}
	el := parallax.Element{
		Kind: choose(sc, option{0.5, kindSand}, option{0.7, kindDesertRock}, option{0.85, kindSkull}, option{kind: kindShrub}),
		X:    sc.Width,
	}
	if el.Kind == kindSand {
		el.Y = sc.Between(0, sc.Height)
		el.W, el.H = 2, 2
		el.SpeedX = 2
	} else {
		el.Y = sc.Height - 10
		el.W = sc.Between(20, 30)
		el.H = sc.Between(20, 30)
	}
	return one(el)
}

func drawSun(dc parallax.DrawContext, el *parallax.Element) {
	// Glow
	render.FillCircle(dc.Canvas, el.X, el.Y, el.W+8, core.Hex("#FFD700").WithAlpha(0.35))
	render.FillCircle(dc.Canvas, el.X, el.Y, el.W, core.Hex("#FFFF00"))
}

func drawDuneLarge(dc parallax.DrawContext, el *parallax.Element) {
	mound(dc.Canvas, el.X, el.X+el.W, dc.Height, render.Point{X: el.X + el.W/2, Y: el.Y}, core.Hex("#CD853F"))
}

func drawPyramid(dc parallax.DrawContext, el *parallax.Element) {
	triangle(dc.Canvas,
		render.Point{X: el.X, Y: dc.Height},
		render.Point{X: el.X + el.W/2, Y: el.Y},
		render.Point{X: el.X + el.W, Y: dc.Height},
		core.Hex("#D2691E"))
}

func drawDuneSmall(dc parallax.DrawContext, el *parallax.Element) {
	mound(dc.Canvas, el.X, el.X+el.W, dc.Height, render.Point{X: el.X + el.W/2, Y: el.Y + 20}, core.Hex("#DAA520"))
}

func drawCart(dc parallax.DrawContext, el *parallax.Element) {
	dc.Canvas.FillRect(el.X, el.Y+el.H/2, el.W, el.H/2, core.Hex("#8B4513"))
	wheel := core.Hex("#A0522D")
	render.FillCircle(dc.Canvas, el.X+10, el.Y+el.H, 10, wheel)
	render.FillCircle(dc.Canvas, el.X+el.W-10, el.Y+el.H, 10, wheel)
}

func drawCactus(dc parallax.DrawContext, el *parallax.Element) {
	green := core.Hex("#228B22")
	mid := el.X + el.W/2
	dc.Canvas.FillRect(mid-5, el.Y, 10, el.H, green)
	// Arm
	dc.Canvas.FillRect(mid-15, el.Y+20, 10, 5, green)
	dc.Canvas.FillRect(mid-15, el.Y+10, 5, 15, green)
}

func drawSand(dc parallax.DrawContext, el *parallax.Element) {
	dc.Canvas.FillRect(el.X, el.Y, el.W, el.H, core.Hex("#F4A460"))
}

// drawFloorDome draws a half disc sitting on the bottom edge.
func drawFloorDome(col core.Color) parallax.DrawFunc {
	return func(dc parallax.DrawContext, el *parallax.Element) {
		dome(dc.Canvas, el.X, dc.Height, el.W/2, col)
	}
}

func drawSkull(dc parallax.DrawContext, el *parallax.Element) {
	y := dc.Height - 5
	render.FillCircle(dc.Canvas, el.X, y, 8, core.Hex("#F5F5DC"))
	dc.Canvas.FillRect(el.X-3, y, 2, 2, core.ColorBlack)
	dc.Canvas.FillRect(el.X+1, y, 2, 2, core.ColorBlack)
}
