package themes

import (
	"math"

	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/parallax"
	"github.com/vovakirdan/skyrunner/internal/render"
)

// Jungle element kinds
const (
	kindTree  parallax.Kind = "tree"
	kindVine  parallax.Kind = "vine"
	kindRuin  parallax.Kind = "ruin"
	kindBush  parallax.Kind = "bush"
	kindRock  parallax.Kind = "rock"
	kindGrass parallax.Kind = "grass"
)

// NewJungle builds the jungle: a mid band of trees and ruins and a fast
// foreground of undergrowth. Both layers spawn as soon as there is room.
func NewJungle() *parallax.Theme {
	return &parallax.Theme{
		ID:         Jungle,
		Name:       "Jungle",
		Background: "https://img.freepik.com/free-vector/flat-design-forest-landscape_23-2149155031.jpg",
		Layers: []parallax.LayerSpec{
			{Speed: 0.5, Spawn: spawnJungleMid},
			{Speed: 2.5, Spawn: spawnJungleFore},
		},
		Draw: map[parallax.Kind]parallax.DrawFunc{
			kindTree:  drawTree,
			kindVine:  drawVine,
			kindRuin:  drawRuin,
			kindBush:  drawGroundDome(core.Hex("#228B22")),
			kindRock:  drawGroundDome(core.Hex("#616161")),
			kindGrass: drawGrass,
		},
		Sky:    flatSky(core.Hex("#1a2f1a")),
		Ground: groundLine,
	}
}

func spawnJungleMid(sc parallax.SpawnContext) []parallax.Element {
	el := parallax.Element{Kind: choose(sc, option{0.4, kindTree}, option{0.7, kindVine}, option{kind: kindRuin})}
	switch el.Kind {
	case kindTree:
		el.W, el.H = sc.Between(60, 100), sc.Between(120, 200)
		el.Y = sc.Height - el.H
	case kindVine:
		// Hangs from the top edge
		el.W, el.H = 30, sc.Between(60, 140)
	default:
		el.W, el.H = sc.Between(60, 110), sc.Between(50, 100)
		el.Y = sc.Height - el.H
	}
	el.X = sc.Width + sc.Between(0, 50)
	return one(el)
}

func spawnJungleFore(sc parallax.SpawnContext) []parallax.Element {
	el := parallax.Element{Kind: choose(sc, option{0.4, kindBush}, option{0.7, kindRock}, option{kind: kindGrass})}
	switch el.Kind {
	case kindBush:
		el.W, el.H = sc.Between(40, 70), sc.Between(30, 40)
	case kindRock:
		el.W, el.H = sc.Between(20, 40), sc.Between(15, 30)
	default:
		el.W, el.H = sc.Between(80, 130), sc.Between(20, 30)
	}
	el.Y = sc.Height
	el.X = sc.Width + sc.Between(0, 20)
	return one(el)
}

func drawTree(dc parallax.DrawContext, el *parallax.Element) {
	dc.Canvas.FillRect(el.X+el.W*0.3, el.Y, el.W*0.4, el.H, core.Hex("#5D4037"))
	render.FillCircle(dc.Canvas, el.X+el.W/2, el.Y, el.W, core.Hex("#2E7D32"))
}

func drawVine(dc parallax.DrawContext, el *parallax.Element) {
	sway := math.Sin(float64(dc.Frame)*0.05+el.X) * 10
	strokeCurve(dc.Canvas,
		render.Point{X: el.X, Y: 0},
		render.Point{X: el.X + sway, Y: el.H / 2},
		render.Point{X: el.X, Y: el.H},
		4, core.Hex("#4CAF50"))
}

func drawRuin(dc parallax.DrawContext, el *parallax.Element) {
	dc.Canvas.FillRect(el.X, el.Y, el.W, el.H, core.Hex("#757575"))
	// Cracks
	dc.Canvas.FillRect(el.X+10, el.Y+10, el.W-20, 5, core.Hex("#424242"))
}

// drawGroundDome draws a half disc centered on the element's anchor.
func drawGroundDome(col core.Color) parallax.DrawFunc {
	return func(dc parallax.DrawContext, el *parallax.Element) {
		dome(dc.Canvas, el.X+el.W/2, el.Y, el.W/2, col)
	}
}

func drawGrass(dc parallax.DrawContext, el *parallax.Element) {
	blade := core.Hex("#32CD32")
	for k := 0.0; k < el.W; k += 5 {
		lean := math.Sin(float64(dc.Frame)*0.1+k) * 3
		dc.Canvas.StrokeLine(el.X+k, el.Y, el.X+k+lean, el.Y-el.H, 2, blade)
	}
}
