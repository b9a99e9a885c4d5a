package canvas

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ayusman/airbrush/internal/config"
)

type segment struct {
	from, to image.Point
	color    color.RGBA
	width    int
}

// recordingRenderer records segments instead of painting them.
type recordingRenderer struct {
	segments []segment
}

func (r *recordingRenderer) Segment(dst *image.RGBA, from, to image.Point, c color.RGBA, width int) {
	r.segments = append(r.segments, segment{from: from, to: to, color: c, width: width})
}

func newTestEngine(t *testing.T, mutate func(*config.Config)) (*Engine, *recordingRenderer) {
	t.Helper()

	cfg := config.Default()
	cfg.Width, cfg.Height = 320, 240
	cfg.PanelHeight = 40
	if mutate != nil {
		mutate(&cfg)
	}

	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	rec := &recordingRenderer{}
	e.SetRenderer(rec)
	return e, rec
}

func TestNewEngine(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	b := e.Canvas().Bounds()
	if b.Dx() != 320 || b.Dy() != 240 {
		t.Errorf("canvas = %v, want 320x240", b)
	}

	for i := 0; i < len(e.Canvas().Pix); i += 4 {
		if e.Canvas().Pix[i] != 0 || e.Canvas().Pix[i+1] != 0 || e.Canvas().Pix[i+2] != 0 {
			t.Fatalf("pixel %d not black", i/4)
		}
	}

	if e.HistoryLen() != 0 {
		t.Errorf("HistoryLen() = %d, want 0", e.HistoryLen())
	}
	if e.Tracking() {
		t.Error("new engine should not be tracking")
	}
	if e.Thickness() != 8 || e.EraserThickness() != 50 {
		t.Errorf("thickness = %d/%d, want 8/50", e.Thickness(), e.EraserThickness())
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Alpha = 0

	if _, err := NewEngine(cfg); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("NewEngine() error = %v, want ErrInvalidConfig", err)
	}
}

func TestEngine_Draw_FirstSampleSeedsOnly(t *testing.T) {
	e, rec := newTestEngine(t, nil)

	got := e.Draw(image.Point{X: 100, Y: 100}, false)

	if got != (image.Point{X: 100, Y: 100}) {
		t.Errorf("Draw() = %v, want (100,100)", got)
	}
	if len(rec.segments) != 0 {
		t.Errorf("first sample emitted %d segments, want 0", len(rec.segments))
	}
	if !e.Tracking() {
		t.Error("engine should be tracking after the first sample")
	}
}

func TestEngine_Draw_NeonPasses(t *testing.T) {
	e, rec := newTestEngine(t, nil)
	e.SelectColor(2)

	e.Draw(image.Point{X: 100, Y: 100}, false)
	got := e.Draw(image.Point{X: 200, Y: 100}, false)

	if got != (image.Point{X: 160, Y: 100}) {
		t.Errorf("smoothed point = %v, want (160,100)", got)
	}
	if len(rec.segments) != 2 {
		t.Fatalf("emitted %d segments, want 2", len(rec.segments))
	}

	outer, inner := rec.segments[0], rec.segments[1]
	from, to := image.Point{X: 100, Y: 100}, image.Point{X: 160, Y: 100}

	if outer.from != from || outer.to != to || inner.from != from || inner.to != to {
		t.Errorf("segments = %+v, want %v -> %v", rec.segments, from, to)
	}
	if outer.color != e.Color() || outer.width != 8+4 {
		t.Errorf("outer pass = %+v, want palette color at width 12", outer)
	}
	if inner.color != Core || inner.width != 4 {
		t.Errorf("inner pass = %+v, want white at width 4", inner)
	}
}

func TestEngine_Draw_InnerWidthFloors(t *testing.T) {
	e, rec := newTestEngine(t, func(c *config.Config) {
		c.ThicknessOptions = nil
		c.DefaultThickness = 5
	})

	e.Draw(image.Point{X: 10, Y: 10}, false)
	e.Draw(image.Point{X: 20, Y: 10}, false)

	if rec.segments[0].width != 9 || rec.segments[1].width != 2 {
		t.Errorf("widths = %d/%d, want 9/2", rec.segments[0].width, rec.segments[1].width)
	}
}

func TestEngine_Draw_Erasing(t *testing.T) {
	e, rec := newTestEngine(t, nil)

	e.Draw(image.Point{X: 50, Y: 50}, true)
	e.Draw(image.Point{X: 50, Y: 150}, true)

	if len(rec.segments) != 1 {
		t.Fatalf("emitted %d segments, want 1", len(rec.segments))
	}
	s := rec.segments[0]
	if s.color != Background || s.width != 50 {
		t.Errorf("eraser pass = %+v, want background at width 50", s)
	}
}

func TestEngine_Draw_ContinuesFromPrevious(t *testing.T) {
	e, rec := newTestEngine(t, func(c *config.Config) { c.Alpha = 1 })

	pts := []image.Point{{X: 10, Y: 10}, {X: 20, Y: 20}, {X: 30, Y: 10}}
	for _, p := range pts {
		e.Draw(p, true)
	}

	if len(rec.segments) != 2 {
		t.Fatalf("emitted %d segments, want 2", len(rec.segments))
	}
	if rec.segments[1].from != pts[1] || rec.segments[1].to != pts[2] {
		t.Errorf("second segment = %v -> %v, want %v -> %v", rec.segments[1].from, rec.segments[1].to, pts[1], pts[2])
	}
}

func TestEngine_Draw_Clamp(t *testing.T) {
	t.Run("clamped", func(t *testing.T) {
		e, _ := newTestEngine(t, nil)
		if got := e.Draw(image.Point{X: -40, Y: 1000}, false); got != (image.Point{X: 0, Y: 239}) {
			t.Errorf("Draw() = %v, want (0,239)", got)
		}
	})

	t.Run("unclamped", func(t *testing.T) {
		e, _ := newTestEngine(t, func(c *config.Config) { c.ClampPoints = false })
		if got := e.Draw(image.Point{X: -40, Y: 1000}, false); got != (image.Point{X: -40, Y: 1000}) {
			t.Errorf("Draw() = %v, want (-40,1000)", got)
		}
		// Drawing off-canvas with the real renderer must not panic.
		e.SetRenderer(NewVectorRenderer())
		e.Draw(image.Point{X: -500, Y: 2000}, false)
	})
}

func TestEngine_ResetTracking(t *testing.T) {
	e, rec := newTestEngine(t, nil)

	e.Draw(image.Point{X: 100, Y: 100}, false)
	e.Draw(image.Point{X: 200, Y: 100}, false)
	e.ResetTracking()

	if e.Tracking() {
		t.Error("engine should not be tracking after ResetTracking")
	}

	n := len(rec.segments)
	got := e.Draw(image.Point{X: 300, Y: 200}, false)
	if got != (image.Point{X: 300, Y: 200}) {
		t.Errorf("first sample after reset = %v, want (300,200)", got)
	}
	if len(rec.segments) != n {
		t.Error("first sample after reset should not emit a segment")
	}
}

func TestEngine_Undo(t *testing.T) {
	t.Run("empty history leaves canvas unchanged", func(t *testing.T) {
		e, _ := newTestEngine(t, nil)
		e.SetRenderer(NewVectorRenderer())

		e.Draw(image.Point{X: 20, Y: 120}, false)
		e.Draw(image.Point{X: 200, Y: 120}, false)

		before := e.Snapshot()
		if e.Undo() {
			t.Fatal("Undo() on empty history should return false")
		}
		if !bytes.Equal(before.Pix, e.Canvas().Pix) {
			t.Error("canvas changed after failed Undo")
		}
	})

	t.Run("restores saved state", func(t *testing.T) {
		e, _ := newTestEngine(t, nil)
		e.SetRenderer(NewVectorRenderer())

		e.SaveToHistory()
		blank := e.Snapshot()

		e.Draw(image.Point{X: 20, Y: 120}, false)
		e.Draw(image.Point{X: 200, Y: 120}, false)
		if bytes.Equal(blank.Pix, e.Canvas().Pix) {
			t.Fatal("drawing did not change the canvas")
		}

		if !e.Undo() {
			t.Fatal("Undo() should succeed")
		}
		if !bytes.Equal(blank.Pix, e.Canvas().Pix) {
			t.Error("Undo did not restore the saved canvas")
		}
		if e.HistoryLen() != 0 {
			t.Errorf("HistoryLen() = %d, want 0", e.HistoryLen())
		}
	})

	t.Run("after overflow restores newest", func(t *testing.T) {
		e, _ := newTestEngine(t, nil)

		for i := 1; i <= 31; i++ {
			e.Canvas().Pix[0] = uint8(i)
			e.SaveToHistory()
		}
		if e.HistoryLen() != 30 {
			t.Fatalf("HistoryLen() = %d, want 30", e.HistoryLen())
		}

		e.Canvas().Pix[0] = 200
		if !e.Undo() {
			t.Fatal("Undo() should succeed")
		}
		if e.Canvas().Pix[0] != 31 {
			t.Errorf("restored snapshot %d, want 31", e.Canvas().Pix[0])
		}
	})
}

func TestEngine_Clear(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	e.SetRenderer(NewVectorRenderer())

	e.Draw(image.Point{X: 20, Y: 120}, false)
	e.Draw(image.Point{X: 200, Y: 120}, false)
	drawn := e.Snapshot()

	e.Clear()

	if e.HistoryLen() != 1 {
		t.Errorf("HistoryLen() = %d, want 1", e.HistoryLen())
	}
	pix := e.Canvas().Pix
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != 0 || pix[i+1] != 0 || pix[i+2] != 0 {
			t.Fatalf("pixel %d not cleared", i/4)
		}
	}
	if e.Tracking() {
		t.Error("Clear should reset tracking")
	}

	if !e.Undo() || !bytes.Equal(drawn.Pix, e.Canvas().Pix) {
		t.Error("Undo after Clear should restore the drawing")
	}
}

func TestEngine_Clear_RepeatedNeedsOneUndoEach(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	e.SetRenderer(NewVectorRenderer())

	e.Draw(image.Point{X: 20, Y: 120}, false)
	e.Draw(image.Point{X: 200, Y: 120}, false)
	drawn := e.Snapshot()

	// A held palm clears on every tick.
	for i := 0; i < 3; i++ {
		e.Clear()
	}

	for i := 0; i < 2; i++ {
		if !e.Undo() {
			t.Fatalf("Undo() %d failed", i)
		}
		if bytes.Equal(drawn.Pix, e.Canvas().Pix) {
			t.Fatalf("Undo() %d restored the drawing, want a cleared canvas", i)
		}
	}

	if !e.Undo() || !bytes.Equal(drawn.Pix, e.Canvas().Pix) {
		t.Error("third Undo() should restore the drawing")
	}
}

func TestEngine_Clear_HeldPastDepthLosesDrawing(t *testing.T) {
	e, _ := newTestEngine(t, func(c *config.Config) { c.HistoryDepth = 5 })
	e.SetRenderer(NewVectorRenderer())

	e.Draw(image.Point{X: 20, Y: 120}, false)
	e.Draw(image.Point{X: 200, Y: 120}, false)
	drawn := e.Snapshot()

	for i := 0; i < 8; i++ {
		e.Clear()
	}

	for e.Undo() {
		if bytes.Equal(drawn.Pix, e.Canvas().Pix) {
			t.Fatal("drawing should have been evicted from history")
		}
	}
}

func TestEngine_SelectColor(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	palette := config.Default().Palette

	if !e.SelectColor(3) {
		t.Fatal("SelectColor(3) should succeed")
	}
	if e.ColorIndex() != 3 || e.Color() != palette[3] {
		t.Errorf("active color = %d %v, want 3 %v", e.ColorIndex(), e.Color(), palette[3])
	}

	for _, bad := range []int{-1, len(palette)} {
		if e.SelectColor(bad) {
			t.Errorf("SelectColor(%d) should fail", bad)
		}
	}
	if e.ColorIndex() != 3 {
		t.Error("failed selection changed the active color")
	}
}

func TestEngine_SetThickness(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	if err := e.SetThickness(18); err != nil {
		t.Fatalf("SetThickness(18) error = %v", err)
	}
	if e.Thickness() != 18 {
		t.Errorf("Thickness() = %d, want 18", e.Thickness())
	}

	if err := e.SetThickness(7); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("SetThickness(7) error = %v, want ErrInvalidConfig", err)
	}
	if e.Thickness() != 18 {
		t.Error("rejected thickness changed the active thickness")
	}
}
