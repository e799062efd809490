package themes

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/skyrunner/internal/parallax"
	"github.com/vovakirdan/skyrunner/internal/registry"
	"github.com/vovakirdan/skyrunner/internal/render"
)

func TestRegistrationOrder(t *testing.T) {
	want := []string{Cyberpunk, Jungle, Space, Lava, Ice, Desert, Candy, Underwater}

	var got []string
	for _, info := range registry.List() {
		got = append(got, info.ID)
	}
	if len(got) != len(want) {
		t.Fatalf("registered themes = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("theme %d = %q, expected %q", i, got[i], want[i])
		}
	}
	if registry.Default() != Cyberpunk {
		t.Errorf("Default() = %q, expected %q", registry.Default(), Cyberpunk)
	}
}

func TestLayerConfiguration(t *testing.T) {
	tests := []struct {
		id      string
		speeds  []float64
		overlap []bool
	}{
		{Cyberpunk, []float64{0.5, 2}, []bool{false, false}},
		{Jungle, []float64{0.5, 2.5}, []bool{false, false}},
		{Space, []float64{0.1, 0.5, 1.5, 3}, []bool{true, false, false, false}},
		{Lava, []float64{0.1, 0.5, 1.5, 3}, []bool{true, false, false, false}},
		{Ice, []float64{0.1, 0.5, 1.5, 3}, []bool{true, false, false, false}},
		{Desert, []float64{0.1, 0.5, 1.5, 3}, []bool{true, false, false, true}},
		{Candy, []float64{0.1, 0.5, 1.5, 3}, []bool{true, false, false, false}},
		{Underwater, []float64{0.1, 0.5, 1.5, 3}, []bool{true, false, false, true}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			th, err := registry.Create(tt.id)
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", tt.id, err)
			}
			if th.Background == "" || th.Sky == nil || th.Ground.IsZero() {
				t.Errorf("theme %q is missing background, sky or ground", tt.id)
			}
			if len(th.Layers) != len(tt.speeds) {
				t.Fatalf("theme %q has %d layers, expected %d", tt.id, len(th.Layers), len(tt.speeds))
			}
			for i, spec := range th.Layers {
				if spec.Speed != tt.speeds[i] {
					t.Errorf("layer %d speed = %v, expected %v", i, spec.Speed, tt.speeds[i])
				}
				if spec.AllowOverlap != tt.overlap[i] {
					t.Errorf("layer %d overlap = %v, expected %v", i, spec.AllowOverlap, tt.overlap[i])
				}
				if spec.Spawn == nil {
					t.Errorf("layer %d has no spawn function", i)
				}
			}
		})
	}
}

// Every kind a theme can spawn must have a draw routine, and a long run
// must leave the layers in spawn order.
func TestSpawnedKindsAreDrawable(t *testing.T) {
	for _, info := range registry.List() {
		t.Run(info.ID, func(t *testing.T) {
			th, _ := registry.Create(info.ID)
			e := parallax.NewEngine(th, rand.New(rand.NewSource(7)), 800, 320)
			layers := th.NewLayers()
			c := render.NewRaster(80, 16, 800, 320)
			fx := rand.New(rand.NewSource(8))

			seen := map[parallax.Kind]bool{}
			for frame := 0; frame < 3000; frame++ {
				e.Advance(layers, 6)
				for _, l := range layers {
					for _, el := range l.Elements {
						seen[el.Kind] = true
					}
				}
				if frame%50 == 0 {
					th.PaintSky(c)
					e.DrawAll(c, layers, frame, fx)
				}
			}

			if len(seen) == 0 {
				t.Fatal("no elements spawned in 3000 frames")
			}
			for kind := range seen {
				if _, ok := th.Draw[kind]; !ok {
					t.Errorf("kind %q has no draw routine", kind)
				}
			}
		})
	}
}

func TestGapLayersNeverOverlapOnSpawn(t *testing.T) {
	th := NewCyberpunk()
	e := parallax.NewEngine(th, rand.New(rand.NewSource(3)), 800, 320)
	layers := th.NewLayers()

	for range 500 {
		before := len(layers[0].Elements)
		var last parallax.Element
		if before > 0 {
			last = layers[0].Elements[before-1]
		}
		e.Advance(layers, 4)
		if after := len(layers[0].Elements); after > before && before > 0 {
			// The previous newest element had fully entered before the spawn
			if last.Right()-4*0.5 >= 800 {
				t.Fatalf("spawned while previous building still entering (right=%v)", last.Right())
			}
		}
	}
}

func TestSnowWrapsToTop(t *testing.T) {
	el := &parallax.Element{Kind: kindSnow, Y: 319, SpeedY: 2}
	fallSnow(parallax.DrawContext{Height: 320}, el)
	if el.Y != 0 {
		t.Errorf("snow below the floor should wrap to 0, got %v", el.Y)
	}

	el = &parallax.Element{Kind: kindSnow, Y: 100, SpeedY: 2}
	fallSnow(parallax.DrawContext{Height: 320}, el)
	if el.Y != 102 {
		t.Errorf("snow Y = %v, expected 102", el.Y)
	}
}

func TestIndependentMotion(t *testing.T) {
	tests := []struct {
		name   string
		el     parallax.Element
		wantX  float64
		wantY  float64
		motion parallax.MotionFunc
	}{
		{"ember rises", parallax.Element{X: 10, Y: 100, SpeedY: -2}, 10, 98, NewLava().Motion[kindEmber]},
		{"fish swims", parallax.Element{X: 10, Y: 100, SpeedX: 2}, 8, 100, NewUnderwater().Motion[kindFish]},
		{"bubble floats", parallax.Element{X: 10, Y: 100, SpeedY: -2}, 10, 98, NewUnderwater().Motion[kindBubble]},
		{"sand blows", parallax.Element{X: 10, Y: 100, SpeedX: 2}, 8, 100, NewDesert().Motion[kindSand]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.motion == nil {
				t.Fatal("missing motion routine")
			}
			el := tt.el
			tt.motion(parallax.DrawContext{Height: 320}, &el)
			if el.X != tt.wantX || el.Y != tt.wantY {
				t.Errorf("after motion = (%v, %v), expected (%v, %v)", el.X, el.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestChooseFallback(t *testing.T) {
	sc := parallax.SpawnContext{Rand: rand.New(rand.NewSource(1))}
	for range 20 {
		if k := choose(sc, option{0, "never"}, option{kind: "always"}); k != "always" {
			t.Fatalf("choose() = %q, expected fallback", k)
		}
	}
	if k := choose(sc, option{1, "first"}, option{kind: "second"}); k != "first" {
		t.Errorf("choose() = %q, expected first", k)
	}
}
