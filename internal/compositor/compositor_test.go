package compositor

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/ayusman/airbrush/internal/config"
	"github.com/ayusman/airbrush/internal/gesture"
	"gocv.io/x/gocv"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Width, cfg.Height = 320, 240
	cfg.PanelHeight = 40
	return cfg
}

func blackCanvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// grayFrame returns a BGR frame filled with v.
func grayFrame(w, h int, v float64) gocv.Mat {
	frame := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	frame.SetTo(gocv.NewScalar(v, v, v, 0))
	return frame
}

func TestCompositor_Overlay_BlankCanvasKeepsFrame(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	cfg := testConfig()
	c := New(cfg)

	frame := grayFrame(cfg.Width, cfg.Height, 90)
	defer frame.Close()

	out, err := c.Overlay(blackCanvas(cfg.Width, cfg.Height), frame)
	if err != nil {
		t.Fatalf("Overlay() error = %v", err)
	}
	defer out.Close()

	if !bytes.Equal(out.ToBytes(), frame.ToBytes()) {
		t.Error("blank canvas should leave the frame unchanged")
	}
}

func TestCompositor_Overlay_HardMask(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	cfg := testConfig()
	c := New(cfg)

	canvas := blackCanvas(cfg.Width, cfg.Height)
	fillRect(canvas, image.Rect(100, 100, 140, 140), color.RGBA{R: 255, G: 255, B: 255, A: 255})
	canvasCopy := append([]uint8(nil), canvas.Pix...)

	frame := grayFrame(cfg.Width, cfg.Height, 90)
	defer frame.Close()

	out, err := c.Overlay(canvas, frame)
	if err != nil {
		t.Fatalf("Overlay() error = %v", err)
	}
	defer out.Close()

	// Inside the drawing: canvas + glow saturates at white.
	if v := out.GetVecbAt(120, 120); v[0] != 255 || v[1] != 255 || v[2] != 255 {
		t.Errorf("drawn pixel = %v, want white", v)
	}

	// Just outside the drawing the glow bleeds on the canvas but the mask is
	// hard, so the frame shows through unchanged.
	if v := out.GetVecbAt(120, 142); v[0] != 90 || v[1] != 90 || v[2] != 90 {
		t.Errorf("background pixel next to drawing = %v, want frame value 90", v)
	}

	if !bytes.Equal(canvasCopy, canvas.Pix) {
		t.Error("Overlay modified the canvas")
	}
}

func TestCompositor_Overlay_ColorOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	cfg := testConfig()
	c := New(cfg)

	canvas := blackCanvas(cfg.Width, cfg.Height)
	fillRect(canvas, image.Rect(50, 50, 150, 150), color.RGBA{R: 120, A: 255})

	frame := grayFrame(cfg.Width, cfg.Height, 0)
	defer frame.Close()

	out, err := c.Overlay(canvas, frame)
	if err != nil {
		t.Fatalf("Overlay() error = %v", err)
	}
	defer out.Close()

	// Frames are BGR: red lands in channel 2. Deep inside the square the
	// blur equals the canvas, so the glow is 120 + 0.7*120 = 204.
	v := out.GetVecbAt(100, 100)
	if v[0] != 0 || v[1] != 0 {
		t.Errorf("blue/green = %d/%d, want 0/0", v[0], v[1])
	}
	if v[2] < 202 || v[2] > 206 {
		t.Errorf("red = %d, want about 204", v[2])
	}
}

func TestCompositor_Overlay_ResizesFrame(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	cfg := testConfig()
	c := New(cfg)

	frame := grayFrame(640, 480, 30)
	defer frame.Close()

	out, err := c.Overlay(blackCanvas(cfg.Width, cfg.Height), frame)
	if err != nil {
		t.Fatalf("Overlay() error = %v", err)
	}
	defer out.Close()

	if out.Cols() != cfg.Width || out.Rows() != cfg.Height {
		t.Errorf("output = %dx%d, want %dx%d", out.Cols(), out.Rows(), cfg.Width, cfg.Height)
	}
}

func TestCompositor_Compose_DrawsHUD(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	cfg := config.Default()
	c := New(cfg)

	frame := grayFrame(cfg.Width, cfg.Height, 90)
	defer frame.Close()

	out, err := c.Compose(blackCanvas(cfg.Width, cfg.Height), frame, HUD{ColorIndex: 1, Mode: gesture.ModeDrawing})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	defer out.Close()

	// Panel background away from swatches and text.
	if v := out.GetVecbAt(90, 700); v[0] != 20 || v[1] != 20 || v[2] != 20 {
		t.Errorf("panel pixel = %v, want HUD color 20", v)
	}

	// Swatch 1 center is neon green, stored BGR.
	want := cfg.Palette[1]
	if v := out.GetVecbAt(50, 150); v[0] != want.B || v[1] != want.G || v[2] != want.R {
		t.Errorf("swatch pixel = %v, want BGR %d,%d,%d", v, want.B, want.G, want.R)
	}

	// Below the panel and instruction line the frame is untouched.
	if v := out.GetVecbAt(400, 640); v[0] != 90 {
		t.Errorf("frame pixel = %v, want 90", v)
	}

	// The input frame is not modified.
	if v := frame.GetVecbAt(90, 700); v[0] != 90 {
		t.Errorf("input frame modified: %v", v)
	}
}

func TestCompositor_Compose_EmptyFrame(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	c := New(testConfig())
	empty := gocv.NewMat()
	defer empty.Close()

	out, err := c.Compose(blackCanvas(320, 240), empty, HUD{})
	defer out.Close()
	if err == nil {
		t.Error("Compose() with empty frame should fail")
	}
}

func TestCompositor_DrawCursor(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	cfg := testConfig()
	c := New(cfg)
	pink := cfg.Palette[0]

	tests := []struct {
		name    string
		cursor  Cursor
		changed bool
	}{
		{name: "drawing", cursor: Cursor{Mode: gesture.ModeDrawing, Tip: image.Point{X: 160, Y: 120}, Color: pink}, changed: true},
		{name: "selecting", cursor: Cursor{Mode: gesture.ModeSelecting, Tip: image.Point{X: 160, Y: 120}, Middle: image.Point{X: 180, Y: 110}, Swatch: -1}, changed: true},
		{name: "erasing", cursor: Cursor{Mode: gesture.ModeErasing, Tip: image.Point{X: 160, Y: 120}, EraserRadius: 50}, changed: true},
		{name: "standby", cursor: Cursor{Mode: gesture.ModeStandby, Tip: image.Point{X: 160, Y: 120}}, changed: true},
		{name: "idle draws nothing", cursor: Cursor{Mode: gesture.ModeIdle, Tip: image.Point{X: 160, Y: 120}}, changed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := grayFrame(cfg.Width, cfg.Height, 0)
			defer frame.Close()

			c.DrawCursor(&frame, tt.cursor)

			gray := toGray(frame)
			defer gray.Close()

			changed := gocv.CountNonZero(gray) > 0
			if changed != tt.changed {
				t.Errorf("frame changed = %v, want %v", changed, tt.changed)
			}
		})
	}
}

func toGray(m gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	gocv.CvtColor(m, &gray, gocv.ColorBGRToGray)
	return gray
}
