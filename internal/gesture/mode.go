// Package gesture classifies finger-extension states into drawing modes.
package gesture

// Mode is the interaction state derived each tick from the raised fingers.
type Mode string

const (
	// ModeIdle means no hand is visible.
	ModeIdle Mode = "idle"
	// ModeStandby is any hand pose without a dedicated meaning.
	ModeStandby Mode = "standby"
	// ModeDrawing is the index finger alone.
	ModeDrawing Mode = "drawing"
	// ModeSelecting is index and middle fingers together.
	ModeSelecting Mode = "selecting"
	// ModeErasing is a closed fist.
	ModeErasing Mode = "erasing"
	// ModeClearing is an open palm.
	ModeClearing Mode = "clearing"
)

// Label returns the text shown in the HUD for m.
func (m Mode) Label() string {
	switch m {
	case ModeIdle:
		return "No Hand Detected"
	case ModeDrawing:
		return "Drawing"
	case ModeSelecting:
		return "Selection"
	case ModeErasing:
		return "Erasing"
	case ModeClearing:
		return "Clearing"
	default:
		return "Standby"
	}
}

// Stroking reports whether m leaves ink on (or removes it from) the canvas.
func (m Mode) Stroking() bool {
	return m == ModeDrawing || m == ModeErasing
}
