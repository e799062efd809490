package gui

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/render"
)

// Canvas implements render.Canvas on an ebiten image. Playfield units map
// to screen pixels through a uniform scale.
type Canvas struct {
	dst    *ebiten.Image
	w, h   float64
	scale  float64
	face   *text.GoTextFace
	images map[image.Image]*ebiten.Image
}

var _ render.Canvas = (*Canvas)(nil)

// NewCanvas creates a canvas for a w x h playfield drawn at scale pixels per
// unit. face is used for Text.
func NewCanvas(w, h, scale float64, face *text.GoTextFace) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	return &Canvas{w: w, h: h, scale: scale, face: face, images: make(map[image.Image]*ebiten.Image)}
}

// Target sets the image the next frame is drawn on.
func (c *Canvas) Target(dst *ebiten.Image) {
	c.dst = dst
}

func (c *Canvas) Size() (w, h float64) {
	return c.w, c.h
}

func (c *Canvas) px(v float64) float32 {
	return float32(v * c.scale)
}

func (c *Canvas) FillRect(x, y, w, h float64, col core.Color) {
	if col.IsZero() || w <= 0 || h <= 0 {
		return
	}
	vector.FillRect(c.dst, c.px(x), c.px(y), c.px(w), c.px(h), nrgba(col), true)
}

func (c *Canvas) FillGradient(x, y, w, h float64, top, bottom core.Color) {
	rows := int(math.Ceil(h * c.scale))
	if rows <= 0 || w <= 0 {
		return
	}
	for i := 0; i < rows; i++ {
		t := 0.0
		if rows > 1 {
			t = float64(i) / float64(rows-1)
		}
		vector.FillRect(c.dst, c.px(x), c.px(y)+float32(i), c.px(w), 1, nrgba(top.Lerp(bottom, t)), false)
	}
}

func (c *Canvas) FillPolygon(pts []render.Point, col core.Color) {
	if len(pts) < 3 || col.IsZero() {
		return
	}
	var path vector.Path
	path.MoveTo(c.px(pts[0].X), c.px(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(c.px(p.X), c.px(p.Y))
	}
	path.Close()

	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(nrgba(col))
	vector.FillPath(c.dst, &path, &vector.FillOptions{}, op)
}

func (c *Canvas) FillEllipse(cx, cy, rx, ry float64, col core.Color) {
	if col.IsZero() || rx <= 0 || ry <= 0 {
		return
	}
	if rx == ry {
		vector.FillCircle(c.dst, c.px(cx), c.px(cy), c.px(rx), nrgba(col), true)
		return
	}
	c.FillPolygon(render.Arc(cx, cy, rx, ry, 0, 2*math.Pi, 32), col)
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, col core.Color) {
	if col.IsZero() {
		return
	}
	vector.StrokeLine(c.dst, c.px(x0), c.px(y0), c.px(x1), c.px(y1), max(1, c.px(width)), nrgba(col), true)
}

func (c *Canvas) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	eimg, ok := c.images[img]
	if !ok {
		eimg = ebiten.NewImageFromImage(img)
		c.images[img] = eimg
	}
	b := eimg.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w*c.scale/float64(b.Dx()), h*c.scale/float64(b.Dy()))
	op.GeoM.Translate(x*c.scale, y*c.scale)
	op.Filter = ebiten.FilterLinear
	c.dst.DrawImage(eimg, op)
}

func (c *Canvas) Text(x, y float64, s string, col core.Color) {
	if c.face == nil || col.IsZero() {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x*c.scale, y*c.scale)
	op.ColorScale.ScaleWithColor(nrgba(col))
	text.Draw(c.dst, s, c.face, op)
}

func nrgba(c core.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
