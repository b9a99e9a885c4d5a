// Package stroke provides temporal smoothing of the tracked fingertip.
package stroke

import "image"

// Smoother applies an exponential moving average to a noisy 2D point.
// Higher alpha follows the input more closely; lower alpha is smoother but lags.
type Smoother struct {
	alpha  float64
	x, y   float64
	primed bool
}

// NewSmoother creates a Smoother with the given alpha in (0, 1].
func NewSmoother(alpha float64) *Smoother {
	return &Smoother{alpha: alpha}
}

// Smooth feeds a raw sample and returns the smoothed point.
// The first sample after a reset is returned unchanged.
func (s *Smoother) Smooth(raw image.Point) image.Point {
	if !s.primed {
		s.x, s.y = float64(raw.X), float64(raw.Y)
		s.primed = true
	} else {
		s.x = s.alpha*float64(raw.X) + (1-s.alpha)*s.x
		s.y = s.alpha*float64(raw.Y) + (1-s.alpha)*s.y
	}

	// Truncate toward zero into the integer pixel grid.
	return image.Point{X: int(s.x), Y: int(s.y)}
}

// Reset forgets the stored average so the next sample has no lag.
func (s *Smoother) Reset() {
	s.x, s.y = 0, 0
	s.primed = false
}

// Active reports whether an average is currently stored.
func (s *Smoother) Active() bool {
	return s.primed
}
