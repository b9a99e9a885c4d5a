package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
	calls int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Calls returns how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// PoseLandmarks builds a right hand, as seen in a mirrored frame, with the
// index fingertip at (tipX, tipY) in normalized coordinates. up lists which
// fingers are extended: thumb, index, middle, ring, pinky.
func PoseLandmarks(up [5]bool, tipX, tipY float64) HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	// Lay the hand out relative to the index MCP so the index tip lands on
	// the requested position whether the finger is raised or curled.
	baseX := tipX - 0.03
	baseY := tipY + 0.33
	if !up[1] {
		baseY = tipY - 0.02
	}

	landmarks.Points[Wrist] = Point3D{X: baseX - 0.05, Y: baseY + 0.12}

	// Thumb: extended means the tip sits right of the IP joint.
	landmarks.Points[ThumbCMC] = Point3D{X: baseX, Y: baseY + 0.07}
	landmarks.Points[ThumbMCP] = Point3D{X: baseX + 0.07, Y: baseY + 0.02}
	landmarks.Points[ThumbIP] = Point3D{X: baseX + 0.13, Y: baseY - 0.03}
	if up[0] {
		landmarks.Points[ThumbTip] = Point3D{X: baseX + 0.18, Y: baseY - 0.08}
	} else {
		landmarks.Points[ThumbTip] = Point3D{X: baseX + 0.08, Y: baseY}
	}

	mcps := [5]int{0, IndexMCP, MiddleMCP, RingMCP, PinkyMCP}
	for f := 1; f < 5; f++ {
		x := baseX - float64(f-1)*0.05
		mcp := mcps[f]

		landmarks.Points[mcp] = Point3D{X: x, Y: baseY}
		if up[f] {
			landmarks.Points[mcp+1] = Point3D{X: x, Y: baseY - 0.13}
			landmarks.Points[mcp+2] = Point3D{X: x, Y: baseY - 0.23}
			landmarks.Points[mcp+3] = Point3D{X: x + 0.03, Y: baseY - 0.33}
		} else {
			// Curled: the tip folds back below the PIP joint.
			landmarks.Points[mcp+1] = Point3D{X: x, Y: baseY - 0.04, Z: -0.05}
			landmarks.Points[mcp+2] = Point3D{X: x + 0.01, Y: baseY - 0.01, Z: -0.04}
			landmarks.Points[mcp+3] = Point3D{X: x + 0.03, Y: baseY + 0.02, Z: -0.02}
		}
	}

	return landmarks
}

// PointingLandmarks returns a hand with only the index finger raised.
func PointingLandmarks(tipX, tipY float64) HandLandmarks {
	return PoseLandmarks([5]bool{false, true, false, false, false}, tipX, tipY)
}

// PeaceLandmarks returns a hand with index and middle fingers raised.
func PeaceLandmarks(tipX, tipY float64) HandLandmarks {
	return PoseLandmarks([5]bool{false, true, true, false, false}, tipX, tipY)
}

// FistLandmarks returns a closed fist.
func FistLandmarks(tipX, tipY float64) HandLandmarks {
	return PoseLandmarks([5]bool{}, tipX, tipY)
}

// OpenPalmLandmarks returns a hand with all five fingers extended.
func OpenPalmLandmarks(tipX, tipY float64) HandLandmarks {
	return PoseLandmarks([5]bool{true, true, true, true, true}, tipX, tipY)
}

// ThreeLandmarks returns index, middle and ring raised, a pose with no
// dedicated mode.
func ThreeLandmarks(tipX, tipY float64) HandLandmarks {
	return PoseLandmarks([5]bool{false, true, true, true, false}, tipX, tipY)
}
