// Package parallax implements the layered scrolling background.
//
// A Theme describes an ordered set of layers (back to front) with a speed
// multiplier and a spawn function each, plus per-kind draw and motion routines.
// The Engine only ever talks to those tables; it has no knowledge of any
// particular theme.
package parallax

import (
	"math/rand"

	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/render"
)

// Kind names an element variant such as "star" or "dune".
type Kind string

// Element is one background decoration. Which fields matter depends on Kind.
type Element struct {
	Kind     Kind
	X, Y     float64
	W, H     float64
	Opacity  float64
	Color    core.Color
	SpeedY   float64 // independent vertical speed (snow, bubbles)
	SpeedX   float64 // independent horizontal speed (fish, sand)
	Rotation float64
	Variant  int // kind-specific sub-variant (window pattern, leaf count)
}

// Right returns the element's right edge.
func (e Element) Right() float64 {
	return e.X + e.W
}

// Layer is a live parallax band.
type Layer struct {
	Speed        float64
	AllowOverlap bool
	Elements     []Element
}

// SpawnContext is handed to spawn functions.
type SpawnContext struct {
	Rand          *rand.Rand
	Width, Height float64
	Layer         *Layer
}

// Empty reports whether the layer currently has no elements.
func (sc SpawnContext) Empty() bool {
	return len(sc.Layer.Elements) == 0
}

// Chance returns true with probability p.
func (sc SpawnContext) Chance(p float64) bool {
	return sc.Rand.Float64() < p
}

// Pick returns a uniform index in [0, n).
func (sc SpawnContext) Pick(n int) int {
	return sc.Rand.Intn(n)
}

// Between returns a uniform value in [lo, hi).
func (sc SpawnContext) Between(lo, hi float64) float64 {
	return lo + sc.Rand.Float64()*(hi-lo)
}

// SpawnFunc returns the elements a layer gains this frame, usually none or
// one. Probabilities live inside the function.
type SpawnFunc func(sc SpawnContext) []Element

// DrawContext is handed to draw and motion functions.
type DrawContext struct {
	Canvas        render.Canvas
	Frame         int
	Width, Height float64
	// Rand drives cosmetic flicker only; it never touches simulation state.
	Rand  *rand.Rand
	Layer int
}

// DrawFunc renders one element.
type DrawFunc func(dc DrawContext, el *Element)

// MotionFunc applies an element's own per-frame movement. It runs in the
// draw pass, right before the element is drawn.
type MotionFunc func(dc DrawContext, el *Element)

// SkyFunc paints the backdrop behind all layers.
type SkyFunc func(c render.Canvas, w, h float64)

// LayerSpec is the static description of one layer.
type LayerSpec struct {
	Speed        float64
	AllowOverlap bool
	Spawn        SpawnFunc
}

// Theme is a registered visual environment. Themes are immutable once built.
type Theme struct {
	ID         string
	Name       string
	Background string // image reference shown behind the layers once loaded
	Layers     []LayerSpec
	Draw       map[Kind]DrawFunc
	Motion     map[Kind]MotionFunc
	Sky        SkyFunc
	Ground     core.Color // ground line color
}

// NewLayers builds empty live layers for a run.
func (t *Theme) NewLayers() []Layer {
	layers := make([]Layer, len(t.Layers))
	for i, spec := range t.Layers {
		layers[i] = Layer{Speed: spec.Speed, AllowOverlap: spec.AllowOverlap}
	}
	return layers
}

// PaintSky draws the theme backdrop, falling back to a flat dark fill.
func (t *Theme) PaintSky(c render.Canvas) {
	w, h := c.Size()
	if t.Sky == nil {
		c.FillRect(0, 0, w, h, core.Hex("#050510"))
		return
	}
	t.Sky(c, w, h)
}

// Engine advances and draws the layers of one theme.
type Engine struct {
	theme  *Theme
	rng    *rand.Rand
	width  float64
	height float64
	// lastMotion is the frame whose motion has already been applied.
	lastMotion int
}

// NewEngine creates an engine for theme over a width x height playfield.
// rng feeds spawn decisions.
func NewEngine(theme *Theme, rng *rand.Rand, width, height float64) *Engine {
	return &Engine{theme: theme, rng: rng, width: width, height: height, lastMotion: -1}
}

// Theme returns the engine's theme.
func (e *Engine) Theme() *Theme {
	return e.theme
}

// Advance scrolls, culls and spawns every layer once.
func (e *Engine) Advance(layers []Layer, gameSpeed float64) {
	for i := range layers {
		layer := &layers[i]
		dx := gameSpeed * layer.Speed
		for j := range layer.Elements {
			layer.Elements[j].X -= dx
		}
		cullLayer(layer)

		if i >= len(e.theme.Layers) || e.theme.Layers[i].Spawn == nil {
			continue
		}
		if !e.canSpawn(layer) {
			continue
		}
		spawned := e.theme.Layers[i].Spawn(SpawnContext{
			Rand:   e.rng,
			Width:  e.width,
			Height: e.height,
			Layer:  layer,
		})
		layer.Elements = append(layer.Elements, spawned...)
	}
}

// canSpawn applies the overlap rule: dense layers always spawn, others wait
// until the newest element has fully entered the playfield.
func (e *Engine) canSpawn(layer *Layer) bool {
	if layer.AllowOverlap || len(layer.Elements) == 0 {
		return true
	}
	last := layer.Elements[len(layer.Elements)-1]
	return last.Right() < e.width
}

// Cull drops elements that are entirely left of the playfield.
// Calling it repeatedly without an Advance in between removes nothing more.
func (e *Engine) Cull(layers []Layer) {
	for i := range layers {
		cullLayer(&layers[i])
	}
}

func cullLayer(layer *Layer) {
	kept := layer.Elements[:0]
	for _, el := range layer.Elements {
		if el.Right() > 0 {
			kept = append(kept, el)
		}
	}
	layer.Elements = kept
}

// DrawAll paints every element back to front. Kinds with a motion routine
// move before they are drawn, at most once per frame number, so redrawing
// a paused or unchanged frame leaves elements in place. The backdrop is
// painted by the caller.
func (e *Engine) DrawAll(c render.Canvas, layers []Layer, frame int, fx *rand.Rand) {
	moving := frame != e.lastMotion
	e.lastMotion = frame
	for i := range layers {
		dc := DrawContext{
			Canvas: c,
			Frame:  frame,
			Width:  e.width,
			Height: e.height,
			Rand:   fx,
			Layer:  i,
		}
		for j := range layers[i].Elements {
			el := &layers[i].Elements[j]
			if move, ok := e.theme.Motion[el.Kind]; ok && moving {
				move(dc, el)
			}
			if draw, ok := e.theme.Draw[el.Kind]; ok {
				draw(dc, el)
			}
		}
	}
}
