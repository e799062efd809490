package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a straight (non-premultiplied) 8-bit RGBA color.
// The zero value is fully transparent and means "no color" for screen cells.
type Color struct {
	R, G, B, A uint8
}

// Predefined colors shared by the renderers.
var (
	ColorNone    = Color{}
	ColorBlack   = RGB(0, 0, 0)
	ColorWhite   = RGB(255, 255, 255)
	ColorCyan    = RGB(0, 255, 255)
	ColorYellow  = RGB(255, 255, 0)
	ColorNeonRed = RGB(255, 0, 85)
	ColorGray    = RGB(138, 138, 138)
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA returns a color with alpha given as a fraction in [0, 1].
func RGBA(r, g, b uint8, alpha float64) Color {
	return Color{R: r, G: g, B: b, A: uint8(ClampF(alpha, 0, 1)*255 + 0.5)}
}

// Hex parses "#rrggbb", "#rgb" or "#rrggbbaa". Invalid input yields ColorNone.
func Hex(s string) Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 && len(s) != 8 {
		return ColorNone
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return ColorNone
	}
	if len(s) == 6 {
		return RGB(uint8(v>>16), uint8(v>>8), uint8(v))
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}

// Hex formats the color as "#rrggbb", dropping alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// IsZero reports whether the color is fully transparent.
func (c Color) IsZero() bool {
	return c.A == 0
}

// WithAlpha returns the color with its alpha multiplied by f.
func (c Color) WithAlpha(f float64) Color {
	c.A = uint8(ClampF(float64(c.A)*f, 0, 255) + 0.5)
	return c
}

// Over composites src over c and returns an opaque result
// when c is opaque.
func (c Color) Over(src Color) Color {
	if src.A == 255 || c.A == 0 {
		return src
	}
	if src.A == 0 {
		return c
	}
	a := float64(src.A) / 255
	mix := func(dst, s uint8) uint8 {
		return uint8(float64(s)*a + float64(dst)*(1-a) + 0.5)
	}
	outA := float64(src.A) + float64(c.A)*(1-a)
	return Color{R: mix(c.R, src.R), G: mix(c.G, src.G), B: mix(c.B, src.B), A: uint8(ClampF(outA, 0, 255))}
}

// Lerp blends linearly from c to other at t in [0, 1].
func (c Color) Lerp(other Color, t float64) Color {
	t = ClampF(t, 0, 1)
	l := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return Color{R: l(c.R, other.R), G: l(c.G, other.G), B: l(c.B, other.B), A: l(c.A, other.A)}
}
