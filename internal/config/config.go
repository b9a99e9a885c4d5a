// Package config holds the fixed tunables shared by the drawing components.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"slices"
)

// ErrInvalidConfig is returned by Validate when a tunable is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// Default canvas settings
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// Config is an immutable set of tunables. Components take it by value at
// construction and never modify it afterwards.
type Config struct {
	WindowName string

	// Width and Height are the canvas dimensions in pixels.
	Width  int
	Height int

	// Palette is the ordered set of selectable stroke colors.
	Palette []color.RGBA

	DefaultThickness int
	ThicknessOptions []int
	EraserThickness  int

	// Alpha is the EMA weight of the newest sample, in (0, 1].
	Alpha float64

	HUDColor    color.RGBA
	AccentColor color.RGBA
	PanelHeight int

	// HistoryDepth bounds the number of undo snapshots.
	HistoryDepth int

	// GlowKernel is the odd Gaussian kernel size used for the glow layer.
	GlowKernel int
	// GlowWeight is the weight of the blurred layer added back onto the canvas.
	GlowWeight float64
	// MaskThreshold is the gray level a canvas pixel must exceed to count as drawn.
	MaskThreshold float32

	// ClampPoints clamps incoming draw points to the canvas bounds.
	ClampPoints bool
}

// Default returns the stock neon configuration.
//
// Palette entries are RGB and render as named. Earlier builds handed the same
// triples to OpenCV as BGR, which showed "neon pink" as violet; the names
// are the intended colors.
func Default() Config {
	return Config{
		WindowName: "Airbrush - Neon Air Painter",
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Palette: []color.RGBA{
			{R: 255, G: 51, B: 153, A: 255},  // neon pink
			{R: 51, G: 255, B: 51, A: 255},   // neon green
			{R: 51, G: 204, B: 255, A: 255},  // neon blue
			{R: 255, G: 255, B: 51, A: 255},  // neon yellow
			{R: 255, G: 128, B: 0, A: 255},   // neon orange
			{R: 255, G: 255, B: 255, A: 255}, // arctic white
		},
		DefaultThickness: 8,
		ThicknessOptions: []int{4, 8, 12, 18, 24},
		EraserThickness:  50,
		Alpha:            0.6,
		HUDColor:         color.RGBA{R: 20, G: 20, B: 20, A: 255},
		AccentColor:      color.RGBA{R: 255, G: 51, B: 153, A: 255},
		PanelHeight:      100,
		HistoryDepth:     30,
		GlowKernel:       15,
		GlowWeight:       0.7,
		MaskThreshold:    1,
		ClampPoints:      true,
	}
}

// Validate checks that every tunable is usable.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case len(c.Palette) == 0:
		return fmt.Errorf("%w: empty palette", ErrInvalidConfig)
	case c.Alpha <= 0 || c.Alpha > 1:
		return fmt.Errorf("%w: alpha %v not in (0, 1]", ErrInvalidConfig, c.Alpha)
	case c.DefaultThickness <= 0:
		return fmt.Errorf("%w: thickness %d", ErrInvalidConfig, c.DefaultThickness)
	case c.EraserThickness <= 0:
		return fmt.Errorf("%w: eraser thickness %d", ErrInvalidConfig, c.EraserThickness)
	case c.HistoryDepth <= 0:
		return fmt.Errorf("%w: history depth %d", ErrInvalidConfig, c.HistoryDepth)
	case c.GlowKernel <= 0 || c.GlowKernel%2 == 0:
		return fmt.Errorf("%w: glow kernel %d must be odd and positive", ErrInvalidConfig, c.GlowKernel)
	case c.PanelHeight < 0 || c.PanelHeight >= c.Height:
		return fmt.Errorf("%w: panel height %d", ErrInvalidConfig, c.PanelHeight)
	}

	if len(c.ThicknessOptions) > 0 && !slices.Contains(c.ThicknessOptions, c.DefaultThickness) {
		return fmt.Errorf("%w: default thickness %d not among options %v", ErrInvalidConfig, c.DefaultThickness, c.ThicknessOptions)
	}

	return nil
}

// WithThickness returns a copy of c whose default thickness is t.
func (c Config) WithThickness(t int) Config {
	c.Palette = slices.Clone(c.Palette)
	c.ThicknessOptions = slices.Clone(c.ThicknessOptions)
	c.DefaultThickness = t
	return c
}
