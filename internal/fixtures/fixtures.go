// Package fixtures builds synthetic camera frames for tests.
package fixtures

import (
	"image/color"

	"gocv.io/x/gocv"
)

// Frame returns a BGR frame of the given size filled with c.
// The caller must close it.
func Frame(width, height int, c color.RGBA) gocv.Mat {
	mat := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)
	mat.SetTo(gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0))
	return mat
}

// Sequence returns n copies of the same frame, ready for a MockCamera, and a
// func that releases them.
func Sequence(n, width, height int, c color.RGBA) ([]*gocv.Mat, func()) {
	frame := Frame(width, height, c)

	frames := make([]*gocv.Mat, n)
	for i := range frames {
		frames[i] = &frame
	}

	return frames, func() { frame.Close() }
}
