package app

import "gocv.io/x/gocv"

// WindowPresenter shows frames in a HighGUI window and turns key presses
// into commands.
type WindowPresenter struct {
	window *gocv.Window
	key    int
}

// NewWindowPresenter opens a window titled name.
func NewWindowPresenter(name string) *WindowPresenter {
	return &WindowPresenter{
		window: gocv.NewWindow(name),
		key:    -1,
	}
}

// Show displays frame and collects the key pressed during the 1ms wait.
func (w *WindowPresenter) Show(frame gocv.Mat) error {
	w.window.IMShow(frame)
	w.key = w.window.WaitKey(1)
	return nil
}

// Poll returns the command for the last key pressed, once.
func (w *WindowPresenter) Poll() Command {
	cmd := KeyCommand(w.key)
	w.key = -1
	return cmd
}

// Close destroys the window.
func (w *WindowPresenter) Close() error {
	return w.window.Close()
}
