package render

import (
	"image"
	"image/color"
	"math"
	"sort"

	"golang.org/x/image/draw"

	"github.com/vovakirdan/skyrunner/internal/core"
)

// HalfBlock is the glyph used to show two vertical pixels per terminal cell:
// foreground paints the top pixel, background the bottom one.
const HalfBlock = '▀'

// Raster is a Canvas backed by an RGBA pixel buffer sized to a terminal grid.
// Each terminal cell holds two pixels stacked vertically.
type Raster struct {
	buf            *image.RGBA
	cols, rows     int
	worldW, worldH float64
	sx, sy         float64
	texts          []textOp
	scaled         map[scaleKey]*image.RGBA
}

type textOp struct {
	col, row int
	s        string
	c        core.Color
}

type scaleKey struct {
	img  image.Image
	w, h int
}

// NewRaster creates a raster covering cols x rows terminal cells that maps
// a worldW x worldH playfield onto them.
func NewRaster(cols, rows int, worldW, worldH float64) *Raster {
	r := &Raster{worldW: worldW, worldH: worldH}
	r.Resize(cols, rows)
	return r
}

// Resize changes the terminal grid the raster targets. Content is discarded.
func (r *Raster) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	r.cols, r.rows = cols, rows
	r.buf = image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	r.sx = float64(cols) / r.worldW
	r.sy = float64(rows*2) / r.worldH
	r.scaled = make(map[scaleKey]*image.RGBA)
	r.Clear(core.ColorBlack)
}

// Size returns the playfield dimensions.
func (r *Raster) Size() (w, h float64) {
	return r.worldW, r.worldH
}

// Cells returns the terminal grid dimensions.
func (r *Raster) Cells() (cols, rows int) {
	return r.cols, r.rows
}

// Clear fills every pixel with c and drops pending text.
func (r *Raster) Clear(c core.Color) {
	draw.Draw(r.buf, r.buf.Bounds(), image.NewUniform(toNRGBA(c)), image.Point{}, draw.Src)
	r.texts = r.texts[:0]
}

// At returns the pixel at (px, py) in raster pixel coordinates.
func (r *Raster) At(px, py int) core.Color {
	if !(image.Point{X: px, Y: py}).In(r.buf.Bounds()) {
		return core.ColorNone
	}
	p := r.buf.RGBAAt(px, py)
	return core.Color{R: p.R, G: p.G, B: p.B, A: p.A}
}

// PixelRect converts a playfield rectangle to raster pixels. Non-empty input
// always covers at least one pixel so thin shapes stay visible.
func (r *Raster) PixelRect(x, y, w, h float64) image.Rectangle {
	x0 := int(math.Round(x * r.sx))
	y0 := int(math.Round(y * r.sy))
	x1 := int(math.Round((x + w) * r.sx))
	y1 := int(math.Round((y + h) * r.sy))
	if w > 0 && x1 <= x0 {
		x1 = x0 + 1
	}
	if h > 0 && y1 <= y0 {
		y1 = y0 + 1
	}
	return image.Rect(x0, y0, x1, y1)
}

// FillRect fills an axis-aligned rectangle.
func (r *Raster) FillRect(x, y, w, h float64, c core.Color) {
	if c.IsZero() || w <= 0 || h <= 0 {
		return
	}
	rect := r.PixelRect(x, y, w, h).Intersect(r.buf.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(r.buf, rect, image.NewUniform(toNRGBA(c)), image.Point{}, draw.Over)
}

// FillGradient fills a rectangle with a vertical gradient from top to bottom.
func (r *Raster) FillGradient(x, y, w, h float64, top, bottom core.Color) {
	rect := r.PixelRect(x, y, w, h).Intersect(r.buf.Bounds())
	if rect.Empty() {
		return
	}
	span := float64(rect.Dy() - 1)
	for py := rect.Min.Y; py < rect.Max.Y; py++ {
		t := 0.0
		if span > 0 {
			t = float64(py-rect.Min.Y) / span
		}
		row := image.Rect(rect.Min.X, py, rect.Max.X, py+1)
		draw.Draw(r.buf, row, image.NewUniform(toNRGBA(top.Lerp(bottom, t))), image.Point{}, draw.Over)
	}
}

// FillPolygon fills a simple polygon using an even-odd scanline over pixel centers.
func (r *Raster) FillPolygon(pts []Point, c core.Color) {
	if len(pts) < 3 || c.IsZero() {
		return
	}
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	py0 := core.Max(0, int(math.Floor(minY*r.sy)))
	py1 := core.Min(r.buf.Bounds().Dy()-1, int(math.Ceil(maxY*r.sy)))

	xs := make([]float64, 0, 8)
	painted := false
	for py := py0; py <= py1; py++ {
		yc := (float64(py) + 0.5) / r.sy
		xs = xs[:0]
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			if (a.Y <= yc && b.Y > yc) || (b.Y <= yc && a.Y > yc) {
				xs = append(xs, a.X+(yc-a.Y)*(b.X-a.X)/(b.Y-a.Y))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			px0 := int(math.Ceil(xs[i]*r.sx - 0.5))
			px1 := int(math.Floor(xs[i+1]*r.sx - 0.5))
			for px := px0; px <= px1; px++ {
				r.plot(px, py, c)
				painted = true
			}
		}
	}
	if !painted {
		// Sub-pixel shapes still leave a mark at their centroid.
		var cx, cy float64
		for _, p := range pts {
			cx += p.X
			cy += p.Y
		}
		n := float64(len(pts))
		r.plot(int(cx/n*r.sx), int(cy/n*r.sy), c)
	}
}

// FillEllipse fills an axis-aligned ellipse.
func (r *Raster) FillEllipse(cx, cy, rx, ry float64, c core.Color) {
	if c.IsZero() || rx <= 0 || ry <= 0 {
		return
	}
	prx, pry := rx*r.sx, ry*r.sy
	pcx, pcy := cx*r.sx, cy*r.sy
	if prx < 0.5 && pry < 0.5 {
		r.plot(int(pcx), int(pcy), c)
		return
	}
	painted := false
	for py := int(math.Floor(pcy - pry)); py <= int(math.Ceil(pcy+pry)); py++ {
		dy := (float64(py) + 0.5 - pcy) / pry
		for px := int(math.Floor(pcx - prx)); px <= int(math.Ceil(pcx+prx)); px++ {
			dx := (float64(px) + 0.5 - pcx) / prx
			if dx*dx+dy*dy <= 1 {
				r.plot(px, py, c)
				painted = true
			}
		}
	}
	if !painted {
		r.plot(int(pcx), int(pcy), c)
	}
}

// StrokeLine draws a line by stamping square brushes along it.
func (r *Raster) StrokeLine(x0, y0, x1, y1, width float64, c core.Color) {
	if c.IsZero() {
		return
	}
	ax, ay := x0*r.sx, y0*r.sy
	bx, by := x1*r.sx, y1*r.sy
	steps := int(math.Ceil(math.Max(math.Abs(bx-ax), math.Abs(by-ay))))
	brush := core.Max(1, int(math.Round(width*math.Min(r.sx, r.sy))))
	half := brush / 2

	last := image.Point{X: -1 << 30}
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		p := image.Point{X: int(ax + (bx-ax)*t), Y: int(ay + (by-ay)*t)}
		if p == last {
			continue
		}
		last = p
		for dy := 0; dy < brush; dy++ {
			for dx := 0; dx < brush; dx++ {
				r.plot(p.X-half+dx, p.Y-half+dy, c)
			}
		}
	}
}

// DrawImage scales img into the destination rectangle. Scaled copies are
// cached per size, so repeated frames cost one blit.
func (r *Raster) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil {
		return
	}
	rect := r.PixelRect(x, y, w, h)
	if rect.Empty() {
		return
	}
	key := scaleKey{img: img, w: rect.Dx(), h: rect.Dy()}
	scaled, ok := r.scaled[key]
	if !ok {
		scaled = image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
		r.scaled[key] = scaled
	}
	draw.Draw(r.buf, rect, scaled, image.Point{}, draw.Over)
}

// Text queues a text run aligned to the terminal cell containing (x, y).
func (r *Raster) Text(x, y float64, s string, c core.Color) {
	r.texts = append(r.texts, textOp{
		col: int(math.Round(x * r.sx)),
		row: int(y * r.sy / 2),
		s:   s,
		c:   c,
	})
}

// Blit writes the raster into dst as half-block cells starting at row top,
// then overlays queued text.
func (r *Raster) Blit(dst *core.Screen, top int) {
	for cy := 0; cy < r.rows; cy++ {
		for cx := 0; cx < r.cols; cx++ {
			dst.SetCell(cx, top+cy, core.Cell{
				Rune: HalfBlock,
				Fg:   r.At(cx, cy*2),
				Bg:   r.At(cx, cy*2+1),
			})
		}
	}
	for _, t := range r.texts {
		col := t.col
		for _, ch := range t.s {
			if col >= 0 && col < r.cols && t.row >= 0 && t.row < r.rows {
				bg := r.At(col, t.row*2).Lerp(r.At(col, t.row*2+1), 0.5)
				dst.SetCell(col, top+t.row, core.Cell{Rune: ch, Fg: t.c, Bg: bg})
			}
			col++
		}
	}
}

func (r *Raster) plot(px, py int, c core.Color) {
	if !(image.Point{X: px, Y: py}).In(r.buf.Bounds()) {
		return
	}
	d := r.buf.RGBAAt(px, py)
	out := core.Color{R: d.R, G: d.G, B: d.B, A: d.A}.Over(c)
	r.buf.SetRGBA(px, py, color.RGBA{R: out.R, G: out.G, B: out.B, A: out.A})
}

func toNRGBA(c core.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
