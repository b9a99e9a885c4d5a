// Package canvas owns the persistent drawing raster, its undo history and
// the stroke state that turns smoothed fingertip samples into line segments.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"slices"

	"github.com/ayusman/airbrush/internal/config"
	"github.com/ayusman/airbrush/internal/stroke"
)

var (
	// Background is the canvas color; erasing paints with it.
	Background = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	// Core is the color of the bright inner line of a neon stroke.
	Core = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// glowPadding is added to the thickness for the colored outer stroke.
const glowPadding = 4

// Engine holds the canvas, the undo history, the stroke tracking state and
// the active style. It is not safe for concurrent use; the session drives it
// from a single goroutine.
type Engine struct {
	cfg      config.Config
	canvas   *image.RGBA
	history  *History
	smoother *stroke.Smoother
	renderer Renderer

	prev    image.Point
	hasPrev bool

	colorIdx  int
	thickness int
}

// NewEngine creates an Engine with a black canvas of the configured size.
func NewEngine(cfg config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:       cfg,
		canvas:    image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height)),
		history:   NewHistory(cfg.HistoryDepth),
		smoother:  stroke.NewSmoother(cfg.Alpha),
		renderer:  NewVectorRenderer(),
		thickness: cfg.DefaultThickness,
	}
	fill(e.canvas, Background)

	return e, nil
}

// SetRenderer replaces the segment renderer.
func (e *Engine) SetRenderer(r Renderer) {
	e.renderer = r
}

// Draw smooths p and extends the current stroke to it. The first sample
// after a reset only seeds the stroke. Erasing paints a single background
// stroke at the eraser width; drawing paints the colored outer stroke and
// then the white core on top of it. Draw returns the smoothed point.
func (e *Engine) Draw(p image.Point, erasing bool) image.Point {
	if e.cfg.ClampPoints {
		p = e.clamp(p)
	}

	cur := e.smoother.Smooth(p)

	if e.hasPrev {
		if erasing {
			e.renderer.Segment(e.canvas, e.prev, cur, Background, e.cfg.EraserThickness)
		} else {
			e.renderer.Segment(e.canvas, e.prev, cur, e.Color(), e.thickness+glowPadding)
			e.renderer.Segment(e.canvas, e.prev, cur, Core, e.thickness/2)
		}
	}

	e.prev = cur
	e.hasPrev = true

	return cur
}

// SaveToHistory pushes a copy of the current canvas onto the undo stack.
func (e *Engine) SaveToHistory() {
	e.history.Push(e.canvas)
}

// Undo restores the most recent snapshot. It reports false and leaves the
// canvas untouched when there is nothing to undo.
func (e *Engine) Undo() bool {
	snap, ok := e.history.Pop()
	if !ok {
		return false
	}
	e.canvas = snap
	return true
}

// ResetTracking ends the current stroke: the next Draw starts a new one
// without lag or a connecting segment.
func (e *Engine) ResetTracking() {
	e.smoother.Reset()
	e.prev = image.Point{}
	e.hasPrev = false
}

// Clear saves the canvas to history, wipes it and ends the current stroke.
func (e *Engine) Clear() {
	e.SaveToHistory()
	fill(e.canvas, Background)
	e.ResetTracking()
}

// Tracking reports whether a stroke is in progress.
func (e *Engine) Tracking() bool {
	return e.hasPrev && e.smoother.Active()
}

// Canvas returns the live canvas. Callers must not modify it.
func (e *Engine) Canvas() *image.RGBA {
	return e.canvas
}

// Snapshot returns a deep copy of the canvas.
func (e *Engine) Snapshot() *image.RGBA {
	return cloneRGBA(e.canvas)
}

// HistoryLen returns the number of undo snapshots held.
func (e *Engine) HistoryLen() int {
	return e.history.Len()
}

// SelectColor makes palette entry i the active color.
func (e *Engine) SelectColor(i int) bool {
	if i < 0 || i >= len(e.cfg.Palette) {
		return false
	}
	e.colorIdx = i
	return true
}

// ColorIndex returns the index of the active palette color.
func (e *Engine) ColorIndex() int {
	return e.colorIdx
}

// Color returns the active stroke color.
func (e *Engine) Color() color.RGBA {
	return e.cfg.Palette[e.colorIdx]
}

// SetThickness changes the drawing thickness to one of the configured options.
func (e *Engine) SetThickness(t int) error {
	if t <= 0 || (len(e.cfg.ThicknessOptions) > 0 && !slices.Contains(e.cfg.ThicknessOptions, t)) {
		return fmt.Errorf("%w: thickness %d not among %v", config.ErrInvalidConfig, t, e.cfg.ThicknessOptions)
	}
	e.thickness = t
	return nil
}

// Thickness returns the drawing thickness.
func (e *Engine) Thickness() int {
	return e.thickness
}

// EraserThickness returns the eraser width.
func (e *Engine) EraserThickness() int {
	return e.cfg.EraserThickness
}

func (e *Engine) clamp(p image.Point) image.Point {
	b := e.canvas.Bounds()
	return image.Point{
		X: min(max(p.X, b.Min.X), b.Max.X-1),
		Y: min(max(p.Y, b.Min.Y), b.Max.Y-1),
	}
}

func fill(img *image.RGBA, c color.RGBA) {
	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
}
