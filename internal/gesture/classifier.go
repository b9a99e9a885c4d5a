package gesture

import (
	"image"

	"github.com/ayusman/airbrush/internal/detector"
)

// Finger positions within Fingers.
const (
	Thumb = iota
	Index
	Middle
	Ring
	Pinky
)

// Fingers holds one extension flag per finger: thumb, index, middle, ring, pinky.
type Fingers [5]bool

var (
	pointing = Fingers{false, true, false, false, false}
	peace    = Fingers{false, true, true, false, false}
	fist     = Fingers{}
	palm     = Fingers{true, true, true, true, true}
)

// Classify maps a finger vector to a Mode. A nil vector means no hand was
// detected. Patterns are matched exactly, in a fixed order.
func Classify(f *Fingers) Mode {
	if f == nil {
		return ModeIdle
	}

	switch *f {
	case pointing:
		return ModeDrawing
	case peace:
		return ModeSelecting
	case fist:
		return ModeErasing
	case palm:
		return ModeClearing
	default:
		return ModeStandby
	}
}

// tipIDs are the landmark indices of the five fingertips.
var tipIDs = [5]int{
	detector.ThumbTip,
	detector.IndexTip,
	detector.MiddleTip,
	detector.RingTip,
	detector.PinkyTip,
}

// FingersUp derives the extension flags from pixel-space landmarks of a
// horizontally mirrored frame.
//
// The thumb moves sideways, so it counts as extended when its tip lies to the
// right of the IP joint. The other fingers count as extended when the tip is
// above (smaller y than) the PIP joint two segments below it.
func FingersUp(points [detector.NumLandmarks]image.Point) Fingers {
	var f Fingers

	f[Thumb] = points[detector.ThumbTip].X > points[detector.ThumbIP].X

	for i := Index; i <= Pinky; i++ {
		tip := tipIDs[i]
		f[i] = points[tip].Y < points[tip-2].Y
	}

	return f
}

// FromHand returns the finger vector for hand in a width x height frame,
// or nil when hand is nil.
func FromHand(hand *detector.HandLandmarks, width, height int) *Fingers {
	if hand == nil {
		return nil
	}
	f := FingersUp(hand.PixelPoints(width, height))
	return &f
}
