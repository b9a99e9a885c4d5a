package gesture

// Tracker remembers the previous tick's mode so callers can react to
// transition edges rather than to every tick spent in a mode.
type Tracker struct {
	current Mode
}

// NewTracker creates a Tracker that starts in standby, the same initial
// state the session displays before the first hand is seen.
func NewTracker() *Tracker {
	return &Tracker{current: ModeStandby}
}

// Update records next as the current mode and reports whether this tick
// enters a stroking mode (Drawing or Erasing) from a different mode.
func (t *Tracker) Update(next Mode) (entered bool) {
	entered = next.Stroking() && next != t.current
	t.current = next
	return entered
}

// Mode returns the most recently recorded mode.
func (t *Tracker) Mode() Mode {
	return t.current
}
