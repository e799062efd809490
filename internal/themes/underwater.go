package themes

import (
	"math"

	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/parallax"
	"github.com/vovakirdan/skyrunner/internal/render"
)

// Underwater element kinds
const (
	kindLightRay       parallax.Kind = "lightRay"
	kindShadowRock     parallax.Kind = "shadowRock"
	kindRuinSilhouette parallax.Kind = "ruinSilhouette"
	kindCoral          parallax.Kind = "coral"
	kindShipPart       parallax.Kind = "shipPart"
	kindPillar         parallax.Kind = "pillar"
	kindBubble         parallax.Kind = "bubble"
	kindFish           parallax.Kind = "fish"
	kindSeaweed        parallax.Kind = "seaweed"
)

var (
	waterTop    = core.Hex("#006994")
	waterBottom = core.Hex("#001e36")
	deepShadow  = core.Hex("#001020")
)

// NewUnderwater builds the sea floor with light rays, wrecks and fish.
func NewUnderwater() *parallax.Theme {
	return &parallax.Theme{
		ID:         Underwater,
		Name:       "Underwater",
		Background: "https://img.freepik.com/free-vector/underwater-ocean-background-with-fish-corals_107791-667.jpg",
		Layers: []parallax.LayerSpec{
			{Speed: 0.1, AllowOverlap: true, Spawn: spawnLightRay},
			{Speed: 0.5, Spawn: spawnDeep},
			{Speed: 1.5, Spawn: spawnReef},
			{Speed: 3.0, AllowOverlap: true, Spawn: spawnSwimmers},
		},
		Draw: map[parallax.Kind]parallax.DrawFunc{
			kindLightRay:       drawLightRay,
			kindShadowRock:     drawShadowRock,
			kindRuinSilhouette: drawRuinSilhouette,
			kindCoral:          drawCoral,
			kindShipPart:       drawShipPart,
			kindPillar:         drawPillar,
			kindBubble:         drawBubble,
			kindFish:           drawFish,
			kindSeaweed:        drawSeaweed,
		},
		Motion: map[parallax.Kind]parallax.MotionFunc{
			kindBubble: drift,
			kindFish:   drift,
		},
		Sky:    gradientSky(waterTop, waterBottom),
		Ground: groundLine,
	}
}

func spawnLightRay(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.02) {
		return nil
	}
	return one(parallax.Element{
		Kind:    kindLightRay,
		X:       sc.Width,
		W:       sc.Between(50, 150),
		H:       sc.Height,
		Opacity: sc.Between(0.05, 0.2),
	})
}

func spawnDeep(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.005) {
		return nil
	}
	el := parallax.Element{
		Kind: choose(sc, option{0.5, kindShadowRock}, option{kind: kindRuinSilhouette}),
		X:    sc.Width,
	}
	el.Y = sc.Height - 100
	if el.Kind == kindRuinSilhouette {
		el.Y = sc.Height - 150
	}
	el.W = sc.Between(100, 250)
	el.H = sc.Between(100, 200)
	return one(el)
}

func spawnReef(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.01) {
		return nil
	}
	el := parallax.Element{
		Kind: choose(sc, option{0.4, kindCoral}, option{0.7, kindShipPart}, option{kind: kindPillar}),
		X:    sc.Width,
	}
	el.Y = sc.Height - 60
	if el.Kind == kindPillar {
		el.Y = sc.Height - 120
	}
	el.W = sc.Between(60, 100)
	el.H = sc.Between(60, 120)
	return one(el)
}

func spawnSwimmers(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.05) {
		return nil
	}
	el := parallax.Element{
		Kind: choose(sc, option{0.4, kindBubble}, option{0.7, kindFish}, option{kind: kindSeaweed}),
		X:    sc.Width,
	}
	switch el.Kind {
	case kindBubble:
		el.Y = sc.Height
		el.W, el.H = sc.Between(5, 15), sc.Between(5, 15)
		el.SpeedY = -2
	case kindFish:
		el.Y = sc.Between(0, sc.Height)
		el.W, el.H = 20, 10
		el.SpeedX = 2
	default:
		el.Y = sc.Between(0, sc.Height)
		el.W, el.H = 10, 50
	}
	return one(el)
}

func drawLightRay(dc parallax.DrawContext, el *parallax.Element) {
	dc.Canvas.FillPolygon([]render.Point{
		{X: el.X, Y: 0},
		{X: el.X + el.W, Y: 0},
		{X: el.X + el.W - 50, Y: dc.Height},
		{X: el.X - 50, Y: dc.Height},
	}, core.RGBA(255, 255, 255, el.Opacity))
}

func drawShadowRock(dc parallax.DrawContext, el *parallax.Element) {
	dome(dc.Canvas, el.X+el.W/2, el.Y+el.H, el.W/2, deepShadow)
}

func drawRuinSilhouette(dc parallax.DrawContext, el *parallax.Element) {
	dc.Canvas.FillRect(el.X, el.Y, el.W, el.H, deepShadow)
	// The window shows the water behind it
	wy := el.Y + 20
	dc.Canvas.FillRect(el.X+20, wy, 10, 20, waterTop.Lerp(waterBottom, (wy+10)/dc.Height))
}

func drawCoral(dc parallax.DrawContext, el *parallax.Element) {
	h := dc.Height
	tip := render.Point{X: el.X + el.W/2, Y: el.Y + 20}
	pts := render.QuadCurve(render.Point{X: el.X, Y: h}, render.Point{X: el.X, Y: el.Y}, tip, curveSteps)
	pts = append(pts, render.QuadCurve(tip, render.Point{X: el.X + el.W, Y: el.Y}, render.Point{X: el.X + el.W, Y: h}, curveSteps)[1:]...)
	dc.Canvas.FillPolygon(pts, core.Hex("#ff7f50"))
}

func drawShipPart(dc parallax.DrawContext, el *parallax.Element) {
	dc.Canvas.FillPolygon([]render.Point{
		{X: el.X, Y: dc.Height},
		{X: el.X + 20, Y: el.Y},
		{X: el.X + el.W, Y: el.Y + 20},
		{X: el.X + el.W - 10, Y: dc.Height},
	}, core.Hex("#8b4513"))
}

func drawPillar(dc parallax.DrawContext, el *parallax.Element) {
	dc.Canvas.FillRect(el.X, el.Y, el.W, el.H, core.Hex("#708090"))
	dc.Canvas.FillRect(el.X+5, el.Y+5, el.W-10, 5, core.Hex("#2f4f4f"))
}

func drawBubble(dc parallax.DrawContext, el *parallax.Element) {
	r := el.W / 2
	ring := render.Arc(el.X, el.Y, r, r, 0, 2*math.Pi, curveSteps)
	render.StrokePolyline(dc.Canvas, ring, 1, core.RGBA(255, 255, 255, 0.5))
}

func drawFish(dc parallax.DrawContext, el *parallax.Element) {
	gold := core.Hex("#ffd700")
	dc.Canvas.FillEllipse(el.X, el.Y, el.W, el.H, gold)
	// Tail
	triangle(dc.Canvas,
		render.Point{X: el.X + el.W, Y: el.Y},
		render.Point{X: el.X + el.W + 10, Y: el.Y - 5},
		render.Point{X: el.X + el.W + 10, Y: el.Y + 5},
		gold)
}

func drawSeaweed(dc parallax.DrawContext, el *parallax.Element) {
	h := dc.Height
	sway := math.Sin(float64(dc.Frame)*0.1) * 10
	strokeCurve(dc.Canvas,
		render.Point{X: el.X, Y: h},
		render.Point{X: el.X + sway, Y: h - el.H/2},
		render.Point{X: el.X, Y: h - el.H},
		3, core.Hex("#32cd32"))
}
