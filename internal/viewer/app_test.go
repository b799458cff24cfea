package viewer

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/Faultbox/cubeview/internal/config"
	"github.com/Faultbox/cubeview/internal/engine/gpu"
	"github.com/Faultbox/cubeview/internal/engine/gpu/gputest"
	"github.com/Faultbox/cubeview/internal/engine/ui2d"
	"github.com/Faultbox/cubeview/internal/engine/window"
	"github.com/Faultbox/cubeview/internal/engine/window/windowtest"
	"github.com/Faultbox/cubeview/internal/viewer/ui"
)

type nopPicker struct{}

func (nopPicker) Open()                       {}
func (nopPicker) Poll() (ui.PickResult, bool) { return ui.PickResult{}, false }

func newTestApp(t *testing.T, cfg *config.Config) (*App, *windowtest.Platform) {
	t.Helper()
	p := windowtest.New(t)
	if cfg == nil {
		cfg = config.Default()
	}
	app, err := New(cfg, p, nopPicker{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(app.Close)
	return app, p
}

func cubeDraws(fake *gputest.GL) []gputest.DrawCall {
	var out []gputest.DrawCall
	for _, d := range fake.Draws {
		if d.DepthTest {
			out = append(out, d)
		}
	}
	return out
}

func TestResizeThenRedraw(t *testing.T) {
	app, p := newTestApp(t, nil)

	if w, h := p.Surface.Size(); w != 1280 || h != 720 {
		t.Fatalf("initial surface = %dx%d, want 1280x720", w, h)
	}

	before := p.Surface.Presents
	if err := app.OnResize(640, 480); err != nil {
		t.Fatalf("OnResize: %v", err)
	}
	if _, err := app.OnRedraw(); err != nil {
		t.Fatalf("OnRedraw: %v", err)
	}

	if w, h := p.Surface.Size(); w != 640 || h != 480 {
		t.Errorf("surface = %dx%d, want 640x480", w, h)
	}
	if w, h := app.Renderer().Size(); w != 640 || h != 480 {
		t.Errorf("renderer = %dx%d, want 640x480", w, h)
	}
	if got := p.Surface.Presents - before; got != 1 {
		t.Errorf("presents = %d, want 1", got)
	}
	if app.Frames() != 1 {
		t.Errorf("frames = %d, want 1", app.Frames())
	}
}

func TestFrameOrder(t *testing.T) {
	app, p := newTestApp(t, nil)
	fake := p.GL
	fake.ResetCalls()

	result, err := app.OnRedraw()
	if err != nil {
		t.Fatalf("OnRedraw: %v", err)
	}

	if len(fake.Clears) == 0 {
		t.Fatal("frame did not clear")
	}
	first := fake.Clears[0]
	if first.Mask != gpu.ColorBufferBit|gpu.DepthBufferBit {
		t.Errorf("first clear mask = %#x", first.Mask)
	}
	if first.Color != [4]float32{0.1, 0.1, 0.1, 1} {
		t.Errorf("clear colour = %v", first.Color)
	}
	if first.Viewport != [4]int32{0, 0, 1280, 720} {
		t.Errorf("clear viewport = %v", first.Viewport)
	}

	if result.Callbacks != 1 {
		t.Errorf("callbacks = %d, want 1", result.Callbacks)
	}
	// The font is uploaded after the first paint, so text and panels wait
	// a frame while the cube draws immediately.
	if result.Skipped == 0 {
		t.Error("expected UI meshes to wait for the font on the first frame")
	}
	cubes := cubeDraws(fake)
	if len(cubes) != 1 {
		t.Fatalf("cube draws = %d, want 1", len(cubes))
	}
	if cubes[0].Count != 36 {
		t.Errorf("cube index count = %d, want 36", cubes[0].Count)
	}
	if cubes[0].Viewport == [4]int32{0, 0, 1280, 720} {
		t.Error("cube should be drawn into the central panel, not the whole window")
	}
	if cubes[0].Scissor {
		t.Error("cube drawn with scissor enabled")
	}
	if fake.GetViewport() != [4]int32{0, 0, 1280, 720} {
		t.Errorf("viewport after frame = %v", fake.GetViewport())
	}

	fake.ResetCalls()
	result, err = app.OnRedraw()
	if err != nil {
		t.Fatalf("second OnRedraw: %v", err)
	}
	if result.Skipped != 0 {
		t.Errorf("second frame skipped %d meshes", result.Skipped)
	}
	if result.Primitives < 2 {
		t.Errorf("second frame has %d primitives", result.Primitives)
	}
	if result.TextureErrors != 0 {
		t.Errorf("texture errors = %d", result.TextureErrors)
	}
}

func TestAutoPlay(t *testing.T) {
	cfg := config.Default()
	cfg.App.AutoPlay = true
	cfg.App.AnimationSpeed = 2
	app, _ := newTestApp(t, cfg)

	for range 3 {
		if _, err := app.OnRedraw(); err != nil {
			t.Fatalf("OnRedraw: %v", err)
		}
	}
	if app.State().Frame() != 3 {
		t.Errorf("frame = %d, want 3", app.State().Frame())
	}
	want := float32(3) * 0.01 * 2
	if got := app.Renderer().Rotation(); got != want {
		t.Errorf("rotation = %v, want %v", got, want)
	}
}

func TestKeys(t *testing.T) {
	tests := []struct {
		name        string
		keys        []ui2d.Key
		wantPlaying bool
		wantFrame   uint64
		wantExit    bool
	}{
		{"space plays", []ui2d.Key{ui2d.KeySpace}, true, 1, false},
		{"up toggles twice", []ui2d.Key{ui2d.KeyUp, ui2d.KeyUp}, false, 0, false},
		{"right steps", []ui2d.Key{ui2d.KeyRight, ui2d.KeyRight}, false, 2, false},
		{"r resets", []ui2d.Key{ui2d.KeyRight, ui2d.KeyR}, false, 0, false},
		{"left resets", []ui2d.Key{ui2d.KeySpace, ui2d.KeyLeft}, false, 0, false},
		{"escape exits", []ui2d.Key{ui2d.KeyEscape}, false, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t, nil)
			for _, k := range tt.keys {
				if _, err := app.HandleEvent(window.Event{Type: window.EventKeyDown, Key: k}); err != nil {
					t.Fatalf("HandleEvent: %v", err)
				}
			}
			result, err := app.OnRedraw()
			if err != nil {
				t.Fatalf("OnRedraw: %v", err)
			}
			if app.State().Playing() != tt.wantPlaying {
				t.Errorf("playing = %v, want %v", app.State().Playing(), tt.wantPlaying)
			}
			if app.State().Frame() != tt.wantFrame {
				t.Errorf("frame = %d, want %d", app.State().Frame(), tt.wantFrame)
			}
			if result.Exit != tt.wantExit {
				t.Errorf("exit = %v, want %v", result.Exit, tt.wantExit)
			}
			if got, want := app.Renderer().Rotation(), app.State().Rotation(); got != want {
				t.Errorf("renderer rotation = %v, want %v", got, want)
			}
		})
	}
}

func TestRun(t *testing.T) {
	t.Run("quit event", func(t *testing.T) {
		app, p := newTestApp(t, nil)
		p.Queue(
			window.Event{Type: window.EventWindowResize, Width: 800, Height: 600},
			window.Event{Type: window.EventQuit},
		)
		if err := app.Run(); err != nil {
			t.Fatalf("Run: %v", err)
		}
		if w, h := p.Surface.Size(); w != 800 || h != 600 {
			t.Errorf("surface = %dx%d", w, h)
		}
		if p.Surface.Presents != 0 {
			t.Errorf("quit before the first frame presented %d", p.Surface.Presents)
		}
	})

	t.Run("escape", func(t *testing.T) {
		app, p := newTestApp(t, nil)
		p.Queue(window.Event{Type: window.EventKeyDown, Key: ui2d.KeyEscape})
		if err := app.Run(); err != nil {
			t.Fatalf("Run: %v", err)
		}
		if p.Surface.Presents != 1 {
			t.Errorf("presents = %d, want 1", p.Surface.Presents)
		}
	})

	t.Run("surface lost", func(t *testing.T) {
		app, p := newTestApp(t, nil)
		p.SwapErr = errors.New("context lost")
		err := app.Run()
		if !errors.Is(err, window.ErrSurfaceLost) {
			t.Errorf("Run = %v, want ErrSurfaceLost", err)
		}
	})
}

func TestMouseEvents(t *testing.T) {
	app, _ := newTestApp(t, nil)
	events := []window.Event{
		{Type: window.EventMouseMove, X: 100, Y: 200},
		{Type: window.EventMouseDown, X: 101, Y: 201, Button: window.ButtonLeft},
		{Type: window.EventMouseUp, X: 101, Y: 201, Button: window.ButtonLeft},
		{Type: window.EventMouseDown, X: 102, Y: 202, Button: window.ButtonRight},
	}
	for _, e := range events {
		if _, err := app.HandleEvent(e); err != nil {
			t.Fatalf("HandleEvent: %v", err)
		}
	}
	in := app.Input().Take()
	if in.MouseX != 102 || in.MouseY != 202 {
		t.Errorf("mouse = (%v, %v)", in.MouseX, in.MouseY)
	}
	if !in.MouseLeftPressed {
		t.Error("left click between frames was lost")
	}
	if in.MouseLeftDown {
		t.Error("left button should be up")
	}
}

func TestNewFailures(t *testing.T) {
	t.Run("platform", func(t *testing.T) {
		p := windowtest.New(t)
		p.FailAt = windowtest.StepContext
		_, err := New(config.Default(), p, nopPicker{})
		if !errors.Is(err, window.ErrFatal) {
			t.Errorf("New = %v, want ErrFatal", err)
		}
	})

	t.Run("cube shader", func(t *testing.T) {
		p := windowtest.New(t)
		p.GL = gputest.New(1280, 720)
		p.GL.CompileError = func(gpu.Enum, string) string { return "0:1: syntax error" }

		_, err := New(config.Default(), p, nopPicker{})
		if !errors.Is(err, window.ErrFatal) {
			t.Fatalf("New = %v, want ErrFatal", err)
		}
		if n := p.GL.LiveObjects(); n != 0 {
			t.Errorf("%d GPU objects leaked", n)
		}
		if !p.Window.Destroyed || !p.Context.Destroyed {
			t.Error("window and context should be released")
		}
	})
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	app, _ := newTestApp(t, nil)
	app.PersistTo(path)

	if err := app.OnResize(800, 600); err != nil {
		t.Fatalf("OnResize: %v", err)
	}
	app.OnMove(30, 40)

	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("saved size %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.PosX == nil || *cfg.Window.PosX != 30 || *cfg.Window.PosY != 40 {
		t.Errorf("saved position (%v, %v)", cfg.Window.PosX, cfg.Window.PosY)
	}
}

func TestEmptyResizeIgnored(t *testing.T) {
	app, p := newTestApp(t, nil)
	if err := app.OnResize(0, 0); err != nil {
		t.Fatalf("OnResize: %v", err)
	}
	if p.Surface.Resizes != 0 {
		t.Error("minimised window should not resize the surface")
	}
	if _, err := app.OnRedraw(); err != nil {
		t.Fatalf("OnRedraw: %v", err)
	}
}

func TestClose(t *testing.T) {
	app, p := newTestApp(t, nil)
	app.Close()
	app.Close()

	if n := p.GL.LiveObjects(); n != 0 {
		t.Errorf("%d GPU objects left after Close", n)
	}
	if !p.Surface.Destroyed {
		t.Error("surface not destroyed")
	}
	if _, err := app.OnRedraw(); !errors.Is(err, window.ErrNotReady) {
		t.Errorf("OnRedraw after Close = %v, want ErrNotReady", err)
	}
}
