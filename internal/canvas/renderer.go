package canvas

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

// Renderer paints one straight stroke segment onto a canvas.
type Renderer interface {
	Segment(dst *image.RGBA, from, to image.Point, c color.RGBA, width int)
}

// VectorRenderer draws anti-aliased, round-capped segments with
// golang.org/x/image/vector. Each segment is composited over the existing
// pixels, so the edges blend with whatever was there before and the
// interior is fully replaced.
type VectorRenderer struct {
	r *vector.Rasterizer
}

// NewVectorRenderer creates a VectorRenderer.
func NewVectorRenderer() *VectorRenderer {
	return &VectorRenderer{r: vector.NewRasterizer(0, 0)}
}

// Segment draws a capsule of the given width from from to to.
// Widths below one pixel draw nothing.
func (v *VectorRenderer) Segment(dst *image.RGBA, from, to image.Point, c color.RGBA, width int) {
	if width < 1 {
		return
	}

	hw := float32(width) / 2
	pad := int(math.Ceil(float64(hw))) + 1

	bounds := image.Rect(
		min(from.X, to.X)-pad, min(from.Y, to.Y)-pad,
		max(from.X, to.X)+pad+1, max(from.Y, to.Y)+pad+1,
	).Intersect(dst.Bounds())
	if bounds.Empty() {
		return
	}

	// Rasterize in a local frame anchored at the clipped bounding box;
	// pixel centers sit at +0.5.
	ox := float32(bounds.Min.X) - 0.5
	oy := float32(bounds.Min.Y) - 0.5
	x0, y0 := float32(from.X)-ox, float32(from.Y)-oy
	x1, y1 := float32(to.X)-ox, float32(to.Y)-oy

	v.r.Reset(bounds.Dx(), bounds.Dy())

	addCircle(v.r, x0, y0, hw)
	if from != to {
		addCircle(v.r, x1, y1, hw)
		addBody(v.r, x0, y0, x1, y1, hw)
	}

	v.r.Draw(dst, bounds, image.NewUniform(c), image.Point{})
}

// addBody adds the rectangle joining the two caps. Every subpath is wound the
// same way so overlapping regions accumulate rather than cancel.
func addBody(r *vector.Rasterizer, x0, y0, x1, y1, hw float32) {
	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	nx, ny := -dy/l*hw, dx/l*hw

	pts := [4][2]float32{
		{x0 + nx, y0 + ny},
		{x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny},
		{x0 - nx, y0 - ny},
	}

	var area float32
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i][0]*pts[j][1] - pts[j][0]*pts[i][1]
	}
	if area < 0 {
		pts[1], pts[3] = pts[3], pts[1]
	}

	r.MoveTo(pts[0][0], pts[0][1])
	for _, p := range pts[1:] {
		r.LineTo(p[0], p[1])
	}
	r.ClosePath()
}

// addCircle adds a circle approximated by four cubic Bézier arcs, wound
// top, right, bottom, left.
func addCircle(r *vector.Rasterizer, cx, cy, radius float32) {
	const k = float32(0.5522847498)
	kr := k * radius

	r.MoveTo(cx, cy-radius)
	r.CubeTo(cx+kr, cy-radius, cx+radius, cy-kr, cx+radius, cy)
	r.CubeTo(cx+radius, cy+kr, cx+kr, cy+radius, cx, cy+radius)
	r.CubeTo(cx-kr, cy+radius, cx-radius, cy+kr, cx-radius, cy)
	r.CubeTo(cx-radius, cy-kr, cx-kr, cy-radius, cx, cy-radius)
	r.ClosePath()
}
