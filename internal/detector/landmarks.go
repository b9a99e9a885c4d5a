// Package detector provides hand detection interfaces and types for gesture recognition.
package detector

import "image"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D is a landmark in normalized image coordinates: X and Y in [0, 1]
// relative to the frame, Z relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// PixelPoints maps the normalized landmarks into a width x height frame.
// Coordinates are truncated and are not clamped: a hand partly outside the
// frame yields points outside it.
func (h *HandLandmarks) PixelPoints(width, height int) [NumLandmarks]image.Point {
	var pts [NumLandmarks]image.Point
	if h == nil {
		return pts
	}

	for i, p := range h.Points {
		pts[i] = image.Point{
			X: int(p.X * float64(width)),
			Y: int(p.Y * float64(height)),
		}
	}
	return pts
}

// Pixel returns landmark idx of h in a width x height frame, truncated the
// same way as PixelPoints.
func (h *HandLandmarks) Pixel(idx, width, height int) image.Point {
	p := h.Points[idx]
	return image.Point{X: int(p.X * float64(width)), Y: int(p.Y * float64(height))}
}
