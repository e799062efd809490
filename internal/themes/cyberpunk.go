package themes

import (
	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/parallax"
)

const kindBuilding parallax.Kind = "building"

var (
	buildingFar  = core.Hex("#1a1a2e")
	buildingNear = core.Hex("#2a2a4e")
	windowLight  = core.Hex("#ffff00")
)

// NewCyberpunk builds the night city: two rows of building silhouettes.
func NewCyberpunk() *parallax.Theme {
	return &parallax.Theme{
		ID:         Cyberpunk,
		Name:       "Cyberpunk",
		Background: "https://img.freepik.com/free-vector/gradient-cyberpunk-city-background_23-2149249874.jpg",
		Layers: []parallax.LayerSpec{
			{Speed: 0.5, Spawn: spawnBuilding(buildingFar)},
			{Speed: 2, Spawn: spawnBuilding(buildingNear)},
		},
		Draw: map[parallax.Kind]parallax.DrawFunc{
			kindBuilding: drawBuilding,
		},
		Sky:    flatSky(core.Hex("#050510")),
		Ground: groundLine,
	}
}

// spawnBuilding places a building whenever the previous one has fully entered.
func spawnBuilding(col core.Color) parallax.SpawnFunc {
	return func(sc parallax.SpawnContext) []parallax.Element {
		return one(parallax.Element{
			Kind:  kindBuilding,
			X:     sc.Width + sc.Between(0, 50),
			W:     sc.Between(50, 150),
			H:     sc.Between(50, 200),
			Color: col,
		})
	}
}

func drawBuilding(dc parallax.DrawContext, el *parallax.Element) {
	top := dc.Height - el.H
	dc.Canvas.FillRect(el.X, top, el.W, el.H, el.Color)

	// Near buildings flicker a lit window now and then
	if dc.Layer == 1 && dc.Rand.Float64() > 0.95 {
		dc.Canvas.FillRect(el.X+10, top+10, 5, 5, windowLight)
	}
}
