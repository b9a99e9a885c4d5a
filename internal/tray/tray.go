// Package tray provides an optional system tray menu that sends session
// commands and shows the current drawing mode.
package tray

import (
	"sync"

	"github.com/ayusman/airbrush/internal/app"
	"github.com/ayusman/airbrush/internal/gesture"
	"github.com/getlantern/systray"
)

// commandBuffer bounds how many clicks may wait for the next tick.
const commandBuffer = 8

// Tray is a system tray menu acting as an app.CommandSource.
type Tray struct {
	*app.ChannelSource

	onQuit func()
	mode   gesture.Mode
	mu     sync.RWMutex

	// Menu items stored for later updates
	menuMode *systray.MenuItem
}

// New creates a Tray showing the standby mode.
func New() *Tray {
	return &Tray{
		ChannelSource: app.NewChannelSource(commandBuffer),
		mode:          gesture.ModeStandby,
	}
}

// OnQuit sets a callback run after the quit command has been queued, before
// the tray exits.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Stop closes the tray, unblocking Run.
func (t *Tray) Stop() {
	systray.Quit()
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Airbrush")
	systray.SetTooltip("Airbrush neon air painter")

	t.mu.Lock()
	t.menuMode = systray.AddMenuItem(modeTitle(t.mode), "Current drawing mode")
	t.menuMode.Disable()
	t.mu.Unlock()
	systray.AddSeparator()

	menuUndo := systray.AddMenuItem("Undo", "Undo the last stroke")
	menuSave := systray.AddMenuItem("Save Snapshot", "Save the current picture as PNG")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Airbrush")

	go func() {
		for {
			select {
			case <-menuUndo.ClickedCh:
				t.Send(app.CommandUndo)
			case <-menuSave.ClickedCh:
				t.Send(app.CommandSaveSnapshot)
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

// handleQuit queues the quit command and runs the quit callback.
func (t *Tray) handleQuit() {
	t.Send(app.CommandQuit)

	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetMode updates the mode shown in the menu. It is safe to call before the
// tray is ready.
func (t *Tray) SetMode(m gesture.Mode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.mode = m
	if t.menuMode != nil {
		t.menuMode.SetTitle(modeTitle(m))
	}
}

// Mode returns the last mode passed to SetMode.
func (t *Tray) Mode() gesture.Mode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mode
}

func modeTitle(m gesture.Mode) string {
	return "Mode: " + m.Label()
}
