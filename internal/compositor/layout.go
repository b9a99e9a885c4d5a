package compositor

import (
	"image"

	"github.com/ayusman/airbrush/internal/config"
)

// Swatch geometry inside the top panel.
const (
	swatchOriginX = 50
	swatchSpacing = 100
	swatchY       = 50
	swatchRadius  = 25
	// swatchHitHalfWidth is how far from a swatch center, horizontally, the
	// selection cursor still picks that swatch.
	swatchHitHalfWidth = 30
)

// Layout places the HUD elements for a given configuration.
type Layout struct {
	width       int
	panelHeight int
	swatches    int
}

// NewLayout creates the layout for cfg.
func NewLayout(cfg config.Config) Layout {
	return Layout{
		width:       cfg.Width,
		panelHeight: cfg.PanelHeight,
		swatches:    len(cfg.Palette),
	}
}

// SwatchCenter returns the center of palette swatch i.
func (l Layout) SwatchCenter(i int) image.Point {
	return image.Point{X: swatchOriginX + i*swatchSpacing, Y: swatchY}
}

// SwatchRadius returns the radius of a palette swatch.
func (l Layout) SwatchRadius() int {
	return swatchRadius
}

// HitSwatch reports which swatch, if any, the selection cursor at p touches.
// Only points inside the top panel can select.
func (l Layout) HitSwatch(p image.Point) (int, bool) {
	if p.Y >= l.panelHeight {
		return 0, false
	}

	for i := 0; i < l.swatches; i++ {
		x := l.SwatchCenter(i).X
		if x-swatchHitHalfWidth < p.X && p.X < x+swatchHitHalfWidth {
			return i, true
		}
	}
	return 0, false
}

// PanelHeight returns the height of the top panel.
func (l Layout) PanelHeight() int {
	return l.panelHeight
}

// ModeLabelOrigin returns the baseline origin of the mode label.
func (l Layout) ModeLabelOrigin() image.Point {
	return image.Point{X: l.width - 300, Y: 60}
}

// InstructionOrigin returns the baseline origin of the instruction line.
func (l Layout) InstructionOrigin() image.Point {
	return image.Point{X: 50, Y: l.panelHeight + 30}
}
