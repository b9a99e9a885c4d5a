package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/ayusman/airbrush/internal/app"
	"github.com/ayusman/airbrush/internal/capture"
	"github.com/ayusman/airbrush/internal/config"
	"github.com/ayusman/airbrush/internal/detector"
	"github.com/ayusman/airbrush/internal/store"
	"github.com/ayusman/airbrush/internal/tray"
)

type options struct {
	cameraID    int
	snapshotDir string
	dbPath      string
	thickness   int
	script      string
	withTray    bool
	list        bool
	forget      string
}

func main() {
	var opts options
	flag.IntVar(&opts.cameraID, "camera", 0, "camera device index")
	flag.StringVar(&opts.snapshotDir, "snapshots", ".", "directory for saved drawings")
	flag.StringVar(&opts.dbPath, "db", defaultDBPath(), "snapshot catalogue database (empty disables)")
	flag.IntVar(&opts.thickness, "thickness", 0, "initial brush thickness (0 keeps the saved or default value)")
	flag.StringVar(&opts.script, "script", "", "path to mediapipe_service.py")
	flag.BoolVar(&opts.withTray, "tray", false, "show a system tray menu (Linux only: the window then runs off the main thread)")
	flag.BoolVar(&opts.list, "list", false, "list catalogued snapshots and exit")
	flag.StringVar(&opts.forget, "forget", "", "remove the snapshot with this id from the catalogue and exit")
	flag.Parse()

	if err := run(opts); err != nil {
		log.Fatalf("airbrush: %v", err)
	}
}

// run owns every resource so deferred cleanup happens before main exits.
func run(opts options) error {
	cfg := config.Default()
	if opts.thickness > 0 {
		cfg = cfg.WithThickness(opts.thickness)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	var st *store.Store
	if opts.dbPath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.dbPath), 0755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
		var err error
		st, err = store.New(opts.dbPath)
		if err != nil {
			return fmt.Errorf("initialize store: %w", err)
		}
		defer st.Close()
	}

	if opts.list || opts.forget != "" {
		if st == nil {
			return errors.New("catalogue commands need -db")
		}
		if opts.forget != "" {
			return forgetSnapshot(os.Stdout, st.Snapshots(), opts.forget)
		}
		return listSnapshots(os.Stdout, st.Snapshots())
	}

	fmt.Println("Airbrush - Neon Air Painter")

	detCfg := detector.DefaultConfig()
	detCfg.ScriptPath = opts.script

	var det detector.Detector
	if mp, err := detector.NewMediaPipeDetector(detCfg); err == nil {
		det = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		det = detector.NewMockDetector()
	}
	defer det.Close()

	appCfg := app.Config{
		Canvas:         cfg,
		SnapshotDir:    opts.snapshotDir,
		Store:          st,
		FixedThickness: opts.thickness > 0,
	}
	camera := capture.NewCameraWithSize(opts.cameraID, cfg.Width, cfg.Height)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	if opts.withTray {
		err = runWithTray(ctx, appCfg, camera, det)
	} else {
		err = session(ctx, appCfg, camera, det, nil)
	}
	if err != nil {
		return err
	}

	fmt.Println("Airbrush terminated. Keep creating.")
	return nil
}

// session opens the window and runs the loop on the calling goroutine, so
// every HighGUI call happens on one thread.
func session(ctx context.Context, cfg app.Config, camera capture.Camera, det detector.Detector, t *tray.Tray) error {
	window := app.NewWindowPresenter(cfg.Canvas.WindowName)
	defer window.Close()

	a, err := app.New(cfg, camera, det, window)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	if t != nil {
		a.AddCommandSource(t)
		a.OnModeChange(t.SetMode)
	}

	return a.Run(ctx)
}

// runWithTray gives the main thread to the tray and runs the session in a
// goroutine until it ends.
func runWithTray(ctx context.Context, cfg app.Config, camera capture.Camera, det detector.Detector) error {
	t := tray.New()

	errCh := make(chan error, 1)
	go func() {
		errCh <- session(ctx, cfg, camera, det, t)
		t.Stop()
	}()

	t.Run()

	return <-errCh
}

// defaultDBPath returns ~/.airbrush/airbrush.db, or "" when the home
// directory is unknown.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".airbrush", "airbrush.db")
}
