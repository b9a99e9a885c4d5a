// Package compositor blends the drawing canvas over the camera frame with a
// neon glow and draws the heads-up display on top.
package compositor

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/ayusman/airbrush/internal/config"
	"github.com/ayusman/airbrush/internal/gesture"
	"gocv.io/x/gocv"
)

// Instructions is the static help line shown under the panel.
const Instructions = "Index: DRAW | Index+Middle: SELECT | Fist: ERASE | Palm: CLEAR"

var (
	white     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	lightGray = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// HUD is the per-tick state shown in the heads-up display.
type HUD struct {
	ColorIndex int
	Mode       gesture.Mode
}

// Compositor produces the final output frame.
type Compositor struct {
	cfg    config.Config
	layout Layout
}

// New creates a Compositor for cfg.
func New(cfg config.Config) *Compositor {
	return &Compositor{
		cfg:    cfg,
		layout: NewLayout(cfg),
	}
}

// Layout returns the HUD layout.
func (c *Compositor) Layout() Layout {
	return c.layout
}

// Compose returns a new frame with the glowing canvas laid over frame and the
// HUD drawn on top. The canvas and frame are left untouched. frame is resized
// to the canvas size when they differ. The caller must close the result.
func (c *Compositor) Compose(canvas *image.RGBA, frame gocv.Mat, hud HUD) (gocv.Mat, error) {
	if frame.Empty() {
		return gocv.NewMat(), fmt.Errorf("compose: empty frame")
	}

	out, err := c.Overlay(canvas, frame)
	if err != nil {
		return out, err
	}

	c.DrawHUD(&out, hud)
	return out, nil
}

// Overlay performs the glow and mask composite without the HUD.
//
// Steps:
// 1. Blur a copy of the canvas to get the glow layer
// 2. glow = canvas*1.0 + blur*GlowWeight (saturating)
// 3. Threshold the canvas luminance to get the drawn mask
// 4. Copy glow pixels over the frame wherever the mask is set
func (c *Compositor) Overlay(canvas *image.RGBA, frame gocv.Mat) (gocv.Mat, error) {
	base, err := gocv.ImageToMatRGB(canvas)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("convert canvas: %w", err)
	}
	defer base.Close()

	out := gocv.NewMat()
	if frame.Cols() != c.cfg.Width || frame.Rows() != c.cfg.Height {
		gocv.Resize(frame, &out, image.Point{X: c.cfg.Width, Y: c.cfg.Height}, 0, 0, gocv.InterpolationLinear)
	} else {
		frame.CopyTo(&out)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	k := c.cfg.GlowKernel
	gocv.GaussianBlur(base, &blurred, image.Point{X: k, Y: k}, 0, 0, gocv.BorderDefault)

	glow := gocv.NewMat()
	defer glow.Close()
	gocv.AddWeighted(base, 1.0, blurred, c.cfg.GlowWeight, 0, &glow)

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(base, &gray, gocv.ColorBGRToGray)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(gray, &mask, c.cfg.MaskThreshold, 255, gocv.ThresholdBinary)

	glow.CopyToWithMask(&out, mask)

	return out, nil
}

// DrawHUD draws the top panel, palette swatches, mode label and instruction
// line onto img.
func (c *Compositor) DrawHUD(img *gocv.Mat, hud HUD) {
	w := img.Cols()
	panel := c.layout.PanelHeight()

	gocv.Rectangle(img, image.Rect(0, 0, w, panel), c.cfg.HUDColor, -1)
	gocv.Line(img, image.Point{X: 0, Y: panel}, image.Point{X: w, Y: panel}, c.cfg.AccentColor, 2)

	r := c.layout.SwatchRadius()
	for i, col := range c.cfg.Palette {
		center := c.layout.SwatchCenter(i)
		if i == hud.ColorIndex {
			gocv.Circle(img, center, r+5, white, 2)
		}
		gocv.Circle(img, center, r, col, -1)
		gocv.Circle(img, center, r, lightGray, 1)
	}

	label := "MODE: " + strings.ToUpper(hud.Mode.Label())
	gocv.PutText(img, label, c.layout.ModeLabelOrigin(), gocv.FontHersheyDuplex, 0.8, white, 2)
	gocv.PutText(img, Instructions, c.layout.InstructionOrigin(), gocv.FontHersheySimplex, 0.5, lightGray, 1)
}
