// Package render defines the drawing surface used by the simulation renderers
// and a terminal rasterizer that turns playfield drawing into colored cells.
package render

import (
	"image"
	"math"

	"github.com/vovakirdan/skyrunner/internal/core"
)

// Point is a position in playfield units.
type Point struct {
	X, Y float64
}

// Canvas is a 2D drawing surface in playfield units (origin top-left, y down).
// Colors carry their own alpha; implementations blend over existing content.
type Canvas interface {
	// Size returns the playfield width and height the canvas maps onto.
	Size() (w, h float64)

	FillRect(x, y, w, h float64, c core.Color)
	FillPolygon(pts []Point, c core.Color)
	FillEllipse(cx, cy, rx, ry float64, c core.Color)
	StrokeLine(x0, y0, x1, y1, width float64, c core.Color)

	// FillGradient fills a rectangle with a vertical two-stop gradient.
	FillGradient(x, y, w, h float64, top, bottom core.Color)

	// DrawImage scales img into the destination rectangle.
	DrawImage(img image.Image, x, y, w, h float64)

	// Text draws a single line with its top-left corner at (x, y).
	Text(x, y float64, s string, c core.Color)
}

// FillCircle is a convenience for a round ellipse.
func FillCircle(c Canvas, cx, cy, r float64, col core.Color) {
	c.FillEllipse(cx, cy, r, r, col)
}

// StrokePolyline draws connected segments through pts.
func StrokePolyline(c Canvas, pts []Point, width float64, col core.Color) {
	for i := 1; i < len(pts); i++ {
		c.StrokeLine(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, width, col)
	}
}

// Arc returns points on an ellipse arc from angle a0 to a1 (radians),
// clockwise in screen space.
func Arc(cx, cy, rx, ry, a0, a1 float64, steps int) []Point {
	if steps < 2 {
		steps = 2
	}
	pts := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(steps)
		pts = append(pts, Point{X: cx + rx*math.Cos(a), Y: cy + ry*math.Sin(a)})
	}
	return pts
}

// QuadCurve returns points on a quadratic Bézier from p0 to p2 with control p1.
func QuadCurve(p0, p1, p2 Point, steps int) []Point {
	if steps < 2 {
		steps = 2
	}
	pts := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		u := 1 - t
		pts = append(pts, Point{
			X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
			Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
		})
	}
	return pts
}

// Rotate returns pts rotated by angle around (ox, oy).
func Rotate(pts []Point, ox, oy, angle float64) []Point {
	sin, cos := math.Sincos(angle)
	out := make([]Point, len(pts))
	for i, p := range pts {
		dx, dy := p.X-ox, p.Y-oy
		out[i] = Point{X: ox + dx*cos - dy*sin, Y: oy + dx*sin + dy*cos}
	}
	return out
}

// RectPoints returns the four corners of a rectangle, clockwise.
func RectPoints(x, y, w, h float64) []Point {
	return []Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}
