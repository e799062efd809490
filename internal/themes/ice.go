package themes

import (
	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/parallax"
	"github.com/vovakirdan/skyrunner/internal/render"
)

// Ice element kinds
const (
	kindAurora     parallax.Kind = "aurora"
	kindSnow       parallax.Kind = "snow"
	kindMountain   parallax.Kind = "mountain"
	kindCliff      parallax.Kind = "cliff"
	kindFrozenTree parallax.Kind = "frozenTree"
	kindIcicle     parallax.Kind = "icicle"
	kindSnowRock   parallax.Kind = "snowRock"
	kindSnowPile   parallax.Kind = "snowPile"
	kindIceChunk   parallax.Kind = "iceChunk"
	kindSnowDust   parallax.Kind = "snowDust"
)

var (
	auroraColors = []core.Color{
		core.RGBA(0, 255, 255, 0.15),
		core.RGBA(255, 0, 255, 0.15),
	}
	snowWhite = core.Hex("#e1f5fe")
)

// NewIce builds the frozen world with aurora, snowfall and icicles.
func NewIce() *parallax.Theme {
	return &parallax.Theme{
		ID:         Ice,
		Name:       "Ice World",
		Background: "https://tse3.mm.bing.net/th/id/OIP.IXk4999-dHEmPlHPermK3wHaFj?rs=1&pid=ImgDetMain&o=7&rm=3",
		Layers: []parallax.LayerSpec{
			{Speed: 0.1, AllowOverlap: true, Spawn: spawnIceSky},
			{Speed: 0.5, Spawn: spawnPeaks},
			{Speed: 1.5, Spawn: spawnIceMid},
			{Speed: 3.0, Spawn: spawnIceFore},
		},
		Draw: map[parallax.Kind]parallax.DrawFunc{
			kindAurora:     drawAurora,
			kindSnow:       drawSnow,
			kindMountain:   drawPeak(core.Hex("#90a4ae")),
			kindCliff:      drawPeak(core.Hex("#78909c")),
			kindFrozenTree: drawFrozenTree,
			kindIcicle:     drawIcicle,
			kindSnowRock:   drawSnowRock,
			kindSnowPile:   drawSnowPile,
			kindIceChunk:   drawIceChunk,
			kindSnowDust:   drawSnowDust,
		},
		Motion: map[parallax.Kind]parallax.MotionFunc{
			kindSnow:     fallSnow,
			kindSnowDust: drift,
		},
		Sky:    flatSky(core.Hex("#0a1a2a")),
		Ground: groundLine,
	}
}

// spawnIceSky can add an aurora and a snowflake in the same frame.
func spawnIceSky(sc parallax.SpawnContext) []parallax.Element {
	var out []parallax.Element
	if sc.Chance(0.005) {
		out = append(out, parallax.Element{
			Kind:  kindAurora,
			X:     sc.Width,
			Y:     sc.Between(0, sc.Height/3),
			W:     sc.Between(300, 500),
			H:     sc.Between(100, 200),
			Color: auroraColors[sc.Pick(len(auroraColors))],
		})
	}
	if sc.Chance(0.4) {
		out = append(out, parallax.Element{
			Kind:   kindSnow,
			X:      sc.Width + sc.Between(0, 50),
			Y:      sc.Between(0, sc.Height),
			W:      sc.Between(2, 4),
			H:      sc.Between(2, 4),
			SpeedY: sc.Between(1, 3),
		})
	}
	return out
}

func spawnPeaks(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.008) {
		return nil
	}
	return one(parallax.Element{
		Kind: choose(sc, option{0.5, kindMountain}, option{kind: kindCliff}),
		X:    sc.Width,
		Y:    sc.Height,
		W:    sc.Between(200, 350),
		H:    sc.Between(150, 300),
	})
}

func spawnIceMid(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.015) {
		return nil
	}
	el := parallax.Element{
		Kind: choose(sc, option{0.4, kindFrozenTree}, option{0.7, kindIcicle}, option{kind: kindSnowRock}),
		X:    sc.Width,
	}
	switch el.Kind {
	case kindFrozenTree:
		el.W, el.H = sc.Between(50, 80), sc.Between(100, 150)
		el.Y = sc.Height - el.H
	case kindIcicle:
		el.W, el.H = sc.Between(20, 30), sc.Between(50, 90)
	default:
		el.W, el.H = sc.Between(40, 70), sc.Between(30, 50)
		el.Y = sc.Height - el.H
	}
	return one(el)
}

func spawnIceFore(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.05) {
		return nil
	}
	el := parallax.Element{
		Kind: choose(sc, option{0.4, kindSnowPile}, option{0.7, kindIceChunk}, option{kind: kindSnowDust}),
		X:    sc.Width,
	}
	switch el.Kind {
	case kindSnowPile:
		el.W, el.H = sc.Between(60, 100), sc.Between(30, 50)
		el.Y = sc.Height
	case kindIceChunk:
		el.W, el.H = sc.Between(20, 35), sc.Between(20, 35)
		el.Y = sc.Height - 20
	default:
		el.W, el.H = 4, 4
		el.Y = sc.Height - sc.Between(0, 100)
		el.SpeedY = -1
	}
	return one(el)
}

// fallSnow moves a flake down and wraps it back to the top.
func fallSnow(dc parallax.DrawContext, el *parallax.Element) {
	el.Y += el.SpeedY
	if el.Y > dc.Height {
		el.Y = 0
	}
}

func drawAurora(dc parallax.DrawContext, el *parallax.Element) {
	fadeEllipse(dc.Canvas, el.X+el.W/2, el.Y+el.H/2, el.W/2, el.H/2, el.Color, el.Color.WithAlpha(0))
}

func drawSnow(dc parallax.DrawContext, el *parallax.Element) {
	render.FillCircle(dc.Canvas, el.X, el.Y, el.W/2, core.RGBA(255, 255, 255, 0.8))
}

// drawPeak draws a mountain silhouette with a snow cap.
func drawPeak(col core.Color) parallax.DrawFunc {
	return func(dc parallax.DrawContext, el *parallax.Element) {
		h := dc.Height
		mid := el.X + el.W/2
		top := h - el.H
		triangle(dc.Canvas, render.Point{X: el.X, Y: h}, render.Point{X: mid, Y: top}, render.Point{X: el.X + el.W, Y: h}, col)
		triangle(dc.Canvas, render.Point{X: mid, Y: top}, render.Point{X: mid - 20, Y: top + 40}, render.Point{X: mid + 20, Y: top + 40}, snowWhite)
	}
}

func drawFrozenTree(dc parallax.DrawContext, el *parallax.Element) {
	dc.Canvas.FillRect(el.X+el.W*0.4, el.Y, el.W*0.2, el.H, core.Hex("#455a64"))
	triangle(dc.Canvas,
		render.Point{X: el.X, Y: el.Y + el.H*0.8},
		render.Point{X: el.X + el.W/2, Y: el.Y},
		render.Point{X: el.X + el.W, Y: el.Y + el.H*0.8},
		core.Hex("#b3e5fc"))
}

func drawIcicle(dc parallax.DrawContext, el *parallax.Element) {
	triangle(dc.Canvas,
		render.Point{X: el.X, Y: 0},
		render.Point{X: el.X + el.W/2, Y: el.H},
		render.Point{X: el.X + el.W, Y: 0},
		core.RGBA(225, 245, 254, 0.8))
}

func drawSnowRock(dc parallax.DrawContext, el *parallax.Element) {
	dome(dc.Canvas, el.X+el.W/2, el.Y+el.H, el.W/2, core.Hex("#607d8b"))
	dc.Canvas.FillRect(el.X, el.Y+el.H/2, el.W, 8, snowWhite)
}

func drawSnowPile(dc parallax.DrawContext, el *parallax.Element) {
	dome(dc.Canvas, el.X+el.W/2, el.Y, el.W/2, snowWhite)
}

func drawIceChunk(dc parallax.DrawContext, el *parallax.Element) {
	dc.Canvas.FillRect(el.X, el.Y, el.W, el.H, core.Hex("#81d4fa"))
}

func drawSnowDust(dc parallax.DrawContext, el *parallax.Element) {
	render.FillCircle(dc.Canvas, el.X, el.Y, 2, core.RGBA(255, 255, 255, 0.5))
}
