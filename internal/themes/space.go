package themes

import (
	"math"

	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/parallax"
	"github.com/vovakirdan/skyrunner/internal/render"
)

// Space element kinds
const (
	kindStar         parallax.Kind = "star"
	kindShootingStar parallax.Kind = "shootingStar"
	kindNebula       parallax.Kind = "nebula"
	kindAsteroid     parallax.Kind = "asteroid"
	kindSatellite    parallax.Kind = "satellite"
	kindStation      parallax.Kind = "station"
	kindDebris       parallax.Kind = "debris"
	kindMeteor       parallax.Kind = "meteor"
	kindSpark        parallax.Kind = "spark"
)

var nebulaColors = []core.Color{
	core.RGBA(75, 0, 130, 0.3),
	core.RGBA(0, 0, 139, 0.3),
}

// NewSpace builds deep space: a dense starfield, nebulae, orbital clutter
// and fast foreground debris.
func NewSpace() *parallax.Theme {
	return &parallax.Theme{
		ID:         Space,
		Name:       "Space Runner",
		Background: "https://img.freepik.com/free-vector/space-game-background-neon-landscape-futuristic_107791-163.jpg",
		Layers: []parallax.LayerSpec{
			{Speed: 0.1, AllowOverlap: true, Spawn: spawnStars},
			{Speed: 0.5, Spawn: spawnNebula},
			{Speed: 1.5, Spawn: spawnOrbital},
			{Speed: 3.0, Spawn: spawnSpaceDebris},
		},
		Draw: map[parallax.Kind]parallax.DrawFunc{
			kindStar:         drawStar,
			kindShootingStar: drawShootingStar,
			kindNebula:       drawNebula,
			kindAsteroid:     drawAsteroid,
			kindSatellite:    drawSatellite,
			kindStation:      drawStation,
			kindDebris:       drawDebris,
			kindMeteor:       drawMeteor,
			kindSpark:        drawSpark,
		},
		Motion: map[parallax.Kind]parallax.MotionFunc{
			kindShootingStar: drift,
		},
		Sky:    flatSky(core.Hex("#050010")),
		Ground: groundLine,
	}
}

func spawnStars(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.3) {
		return nil
	}
	el := parallax.Element{
		Kind: kindStar,
		X:    sc.Width + sc.Between(0, 50),
		Y:    sc.Between(0, sc.Height),
	}
	if sc.Chance(0.005) {
		el.Kind = kindShootingStar
		el.W, el.H = 50, 2
		el.SpeedX = 10
	} else {
		el.W = sc.Between(1, 3)
		el.H = sc.Between(1, 3)
	}
	el.Opacity = sc.Rand.Float64()
	return one(el)
}

func spawnNebula(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.005) {
		return nil
	}
	return one(parallax.Element{
		Kind:  kindNebula,
		X:     sc.Width,
		Y:     sc.Between(0, sc.Height),
		W:     sc.Between(200, 500),
		H:     sc.Between(100, 300),
		Color: nebulaColors[sc.Pick(len(nebulaColors))],
	})
}

func spawnOrbital(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.01) {
		return nil
	}
	return one(parallax.Element{
		Kind: choose(sc, option{0.6, kindAsteroid}, option{0.5, kindSatellite}, option{kind: kindStation}),
		X:    sc.Width,
		Y:    sc.Between(0, sc.Height-150),
		W:    sc.Between(40, 80),
		H:    sc.Between(40, 80),
	})
}

func spawnSpaceDebris(sc parallax.SpawnContext) []parallax.Element {
	if !sc.Chance(0.05) {
		return nil
	}
	return one(parallax.Element{
		Kind: choose(sc, option{0.4, kindDebris}, option{0.5, kindMeteor}, option{kind: kindSpark}),
		X:    sc.Width,
		Y:    sc.Between(0, sc.Height),
		W:    sc.Between(5, 15),
		H:    sc.Between(5, 15),
	})
}

func drawStar(dc parallax.DrawContext, el *parallax.Element) {
	twinkle := 0.3 + math.Sin(float64(dc.Frame)*0.05+el.X)*0.7
	dc.Canvas.FillRect(el.X, el.Y, el.W, el.H, core.RGBA(255, 255, 255, twinkle))
}

func drawShootingStar(dc parallax.DrawContext, el *parallax.Element) {
	dc.Canvas.StrokeLine(el.X, el.Y, el.X+el.W, el.Y-10, 2, core.ColorWhite)
}

func drawNebula(dc parallax.DrawContext, el *parallax.Element) {
	dc.Canvas.FillEllipse(el.X+el.W/2, el.Y+el.H/2, el.W/2, el.H/2, el.Color)
}

func drawAsteroid(dc parallax.DrawContext, el *parallax.Element) {
	render.FillCircle(dc.Canvas, el.X+el.W/2, el.Y+el.H/2, el.W/2, core.Hex("#555"))
}

func drawSatellite(dc parallax.DrawContext, el *parallax.Element) {
	c := dc.Canvas
	c.FillRect(el.X, el.Y+el.H/3, el.W, el.H/3, core.Hex("#888"))
	// Solar panels
	panel := core.Hex("#00a")
	c.FillRect(el.X, el.Y, 10, el.H, panel)
	c.FillRect(el.X+el.W-10, el.Y, 10, el.H, panel)
}

func drawStation(dc parallax.DrawContext, el *parallax.Element) {
	dc.Canvas.FillRect(el.X, el.Y, el.W, el.H, core.Hex("#777"))
	dc.Canvas.FillRect(el.X+5, el.Y+5, 3, 3, core.Hex("#f00"))
}

func drawDebris(dc parallax.DrawContext, el *parallax.Element) {
	dc.Canvas.FillRect(el.X, el.Y, el.W, el.H, core.Hex("#444"))
}

func drawMeteor(dc parallax.DrawContext, el *parallax.Element) {
	render.FillCircle(dc.Canvas, el.X, el.Y, el.W/2, core.Hex("#666"))
}

func drawSpark(dc parallax.DrawContext, el *parallax.Element) {
	dc.Canvas.FillRect(el.X, el.Y, el.W, 2, core.Hex("#0ff"))
}
