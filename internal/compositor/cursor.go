package compositor

import (
	"image"
	"image/color"

	"github.com/ayusman/airbrush/internal/gesture"
	"gocv.io/x/gocv"
)

var eraserGray = color.RGBA{R: 200, G: 200, B: 200, A: 255}

// Cursor describes the fingertip feedback drawn on the camera frame before
// the canvas is composited over it.
type Cursor struct {
	Mode gesture.Mode
	// Tip is the index fingertip; Middle the middle fingertip.
	Tip    image.Point
	Middle image.Point
	Color  color.RGBA
	// EraserRadius is the ring radius shown while erasing.
	EraserRadius int
	// Swatch is the swatch picked this tick, or -1.
	Swatch int
}

// DrawCursor draws the per-mode cursor onto frame.
func (c *Compositor) DrawCursor(frame *gocv.Mat, cur Cursor) {
	switch cur.Mode {
	case gesture.ModeDrawing:
		gocv.Circle(frame, cur.Tip, 10, cur.Color, -1)
		gocv.Circle(frame, cur.Tip, 12, white, 2)

	case gesture.ModeSelecting:
		gocv.Circle(frame, cur.Tip, 15, white, 2)
		gocv.Line(frame, cur.Tip, cur.Middle, white, 2)
		if cur.Swatch >= 0 {
			gocv.Circle(frame, c.layout.SwatchCenter(cur.Swatch), 35, white, 3)
		}

	case gesture.ModeErasing:
		gocv.Circle(frame, cur.Tip, cur.EraserRadius, eraserGray, 2)
		gocv.PutText(frame, "ERASER", cur.Tip.Add(image.Point{X: 20}), gocv.FontHersheySimplex, 0.5, white, 1)

	case gesture.ModeClearing:
		origin := image.Point{X: frame.Cols()/2 - 150, Y: frame.Rows() / 2}
		gocv.PutText(frame, "CANVAS CLEARED", origin, gocv.FontHersheyDuplex, 1.5, white, 3)

	case gesture.ModeStandby:
		gocv.Circle(frame, cur.Tip, 5, white, -1)
	}
}
