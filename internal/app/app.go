// Package app runs the air painting session: it reads camera frames, turns
// the detected hand pose into canvas operations and shows the composited
// result.
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ayusman/airbrush/internal/canvas"
	"github.com/ayusman/airbrush/internal/capture"
	"github.com/ayusman/airbrush/internal/compositor"
	"github.com/ayusman/airbrush/internal/config"
	"github.com/ayusman/airbrush/internal/detector"
	"github.com/ayusman/airbrush/internal/gesture"
	"github.com/ayusman/airbrush/internal/store"
	"gocv.io/x/gocv"
)

// snapshotLayout names exported drawings drawing_YYYYMMDD-HHMMSS.png.
const snapshotLayout = "20060102-150405"

// Config holds configuration options for the application.
type Config struct {
	Canvas config.Config
	// SnapshotDir is where exported drawings are written.
	SnapshotDir string
	// Store catalogues snapshots and keeps the drawing style across
	// sessions. Optional.
	Store *store.Store
	// FixedThickness keeps Canvas.DefaultThickness instead of the thickness
	// saved by a previous session.
	FixedThickness bool
}

// App is the session orchestrator. All canvas state is owned by the loop
// goroutine; other goroutines talk to it through command sources.
type App struct {
	config     Config
	camera     capture.Camera
	detector   detector.Detector
	presenter  Presenter
	sources    []CommandSource
	engine     *canvas.Engine
	compositor *compositor.Compositor
	tracker    *gesture.Tracker
	mode       gesture.Mode
	onMode     func(gesture.Mode)
	now        func() time.Time
}

// New creates an App. The camera is opened by Run.
func New(cfg Config, camera capture.Camera, det detector.Detector, presenter Presenter) (*App, error) {
	engine, err := canvas.NewEngine(cfg.Canvas)
	if err != nil {
		return nil, err
	}
	if cfg.SnapshotDir == "" {
		cfg.SnapshotDir = "."
	}

	a := &App{
		config:     cfg,
		camera:     camera,
		detector:   det,
		presenter:  presenter,
		engine:     engine,
		compositor: compositor.New(cfg.Canvas),
		tracker:    gesture.NewTracker(),
		mode:       gesture.ModeStandby,
		now:        time.Now,
	}

	if src, ok := presenter.(CommandSource); ok {
		a.sources = append(a.sources, src)
	}

	a.restoreStyle()

	return a, nil
}

// AddCommandSource registers an additional command source.
func (a *App) AddCommandSource(src CommandSource) {
	a.sources = append(a.sources, src)
}

// OnModeChange sets a callback invoked from the loop whenever the mode changes.
func (a *App) OnModeChange(fn func(gesture.Mode)) {
	a.onMode = fn
}

// Engine returns the canvas engine.
func (a *App) Engine() *canvas.Engine {
	return a.engine
}

// Mode returns the mode of the last tick.
func (a *App) Mode() gesture.Mode {
	return a.mode
}

// Run opens the camera and processes frames until the stream ends, a quit
// command arrives or ctx is cancelled. The drawing style is saved on exit.
func (a *App) Run(ctx context.Context) error {
	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	defer func() {
		if err := a.camera.Close(); err != nil {
			log.Printf("Error closing camera: %v", err)
		}
	}()
	defer a.saveStyle()

	log.Println("Session started")

	for {
		select {
		case <-ctx.Done():
			log.Println("Session stopped")
			return nil
		default:
		}

		more, err := a.Step()
		if err != nil {
			return err
		}
		if !more {
			log.Println("Session ended")
			return nil
		}
	}
}

// Step runs one tick: capture, classify, apply the mode, compose, present
// and handle pending commands. It reports false when the session should end.
func (a *App) Step() (bool, error) {
	raw, err := a.camera.ReadFrame()
	if err != nil {
		if !errors.Is(err, capture.ErrEndOfStream) {
			log.Printf("Error reading frame: %v", err)
		}
		return false, nil
	}

	size := image.Point{X: a.config.Canvas.Width, Y: a.config.Canvas.Height}
	frame := capture.Prepare(*raw, size)
	raw.Close()
	defer frame.Close()

	hands, err := a.detector.Detect(&frame)
	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		hands = nil
	}

	cursor := a.apply(detector.First(hands))
	a.compositor.DrawCursor(&frame, cursor)

	out, err := a.compositor.Compose(a.engine.Canvas(), frame, compositor.HUD{
		ColorIndex: a.engine.ColorIndex(),
		Mode:       a.mode,
	})
	defer out.Close()
	if err != nil {
		return false, fmt.Errorf("compose: %w", err)
	}

	if err := a.presenter.Show(out); err != nil {
		return false, fmt.Errorf("present: %w", err)
	}

	return a.handleCommands(out), nil
}

// apply classifies hand and performs the mode's canvas operation. It returns
// the cursor to draw on the frame.
func (a *App) apply(hand *detector.HandLandmarks) compositor.Cursor {
	w, h := a.config.Canvas.Width, a.config.Canvas.Height

	mode := gesture.Classify(gesture.FromHand(hand, w, h))
	if a.tracker.Update(mode) {
		a.engine.SaveToHistory()
	}
	a.setMode(mode)

	if hand == nil {
		a.engine.ResetTracking()
		return compositor.Cursor{Mode: gesture.ModeIdle, Swatch: -1}
	}

	tip := hand.Pixel(detector.IndexTip, w, h)

	cur := compositor.Cursor{
		Mode:         mode,
		Tip:          tip,
		Middle:       hand.Pixel(detector.MiddleTip, w, h),
		EraserRadius: a.engine.EraserThickness(),
		Swatch:       -1,
	}

	switch mode {
	case gesture.ModeDrawing:
		a.engine.Draw(tip, false)

	case gesture.ModeSelecting:
		a.engine.ResetTracking()
		if i, ok := a.compositor.Layout().HitSwatch(tip); ok {
			a.engine.SelectColor(i)
			cur.Swatch = i
		}

	case gesture.ModeErasing:
		a.engine.Draw(tip, true)

	case gesture.ModeClearing:
		a.engine.Clear()

	default:
		a.engine.ResetTracking()
	}

	cur.Color = a.engine.Color()
	return cur
}

func (a *App) setMode(m gesture.Mode) {
	if m == a.mode {
		return
	}
	a.mode = m
	if a.onMode != nil {
		a.onMode(m)
	}
}

// handleCommands drains one command from each source. out is the frame
// shown this tick, used for snapshots.
func (a *App) handleCommands(out gocv.Mat) bool {
	for _, src := range a.sources {
		switch src.Poll() {
		case CommandQuit:
			return false
		case CommandUndo:
			a.engine.Undo()
		case CommandSaveSnapshot:
			if _, err := a.SaveSnapshot(out); err != nil {
				log.Printf("Error saving snapshot: %v", err)
			}
		}
	}
	return true
}

// SaveSnapshot writes out as a timestamped PNG in the snapshot directory and
// records it in the catalogue when a store is configured.
func (a *App) SaveSnapshot(out gocv.Mat) (string, error) {
	if err := os.MkdirAll(a.config.SnapshotDir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(a.config.SnapshotDir, "drawing_"+a.now().Format(snapshotLayout)+".png")
	if !gocv.IMWrite(path, out) {
		return "", fmt.Errorf("write %s", path)
	}
	log.Printf("Snapshot saved: %s", path)

	if a.config.Store != nil {
		err := a.config.Store.Snapshots().Create(&store.Snapshot{
			Path:       path,
			Width:      out.Cols(),
			Height:     out.Rows(),
			Mode:       string(a.mode),
			ColorIndex: a.engine.ColorIndex(),
			Thickness:  a.engine.Thickness(),
		})
		if err != nil {
			return path, fmt.Errorf("catalogue snapshot: %w", err)
		}
	}

	return path, nil
}

// restoreStyle loads the color and thickness saved by a previous session.
func (a *App) restoreStyle() {
	if a.config.Store == nil {
		return
	}
	settings := a.config.Store.Settings()

	if i, err := settings.GetInt(store.SettingColorIndex); err == nil {
		if !a.engine.SelectColor(i) {
			log.Printf("Ignoring saved color index %d", i)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("Failed to load color index: %v", err)
	}

	if a.config.FixedThickness {
		return
	}
	if t, err := settings.GetInt(store.SettingThickness); err == nil {
		if err := a.engine.SetThickness(t); err != nil {
			log.Printf("Ignoring saved thickness: %v", err)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("Failed to load thickness: %v", err)
	}
}

func (a *App) saveStyle() {
	if a.config.Store == nil {
		return
	}
	settings := a.config.Store.Settings()

	if err := settings.SetInt(store.SettingColorIndex, a.engine.ColorIndex()); err != nil {
		log.Printf("Failed to save color index: %v", err)
	}
	if err := settings.SetInt(store.SettingThickness, a.engine.Thickness()); err != nil {
		log.Printf("Failed to save thickness: %v", err)
	}
}
