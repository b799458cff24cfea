// Package viewer runs the cube viewer: it owns the window, the renderer
// and the UI, and drives them one frame at a time.
package viewer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeview/internal/config"
	"github.com/Faultbox/cubeview/internal/engine/gpu"
	"github.com/Faultbox/cubeview/internal/engine/renderer"
	"github.com/Faultbox/cubeview/internal/engine/ui2d"
	"github.com/Faultbox/cubeview/internal/engine/viewport"
	"github.com/Faultbox/cubeview/internal/engine/window"
	"github.com/Faultbox/cubeview/internal/logger"
	"github.com/Faultbox/cubeview/internal/viewer/ui"
)

// Background colour behind the UI.
var clearColor = [4]float32{0.1, 0.1, 0.1, 1}

// FrameResult summarises one OnRedraw.
type FrameResult struct {
	Primitives    int
	Callbacks     int
	Skipped       int
	TextureErrors int
	// Exit is set when the user asked to quit during this frame.
	Exit bool
}

// App is the viewer application.
type App struct {
	cfg      *config.Config
	savePath string

	manager  *window.Manager
	res      *window.Resources
	renderer *renderer.Renderer
	bridge   *viewport.Bridge
	ui       *ui2d.Context
	painter  *ui2d.Painter
	input    ui2d.InputState
	picker   ui.FilePicker

	state  *State
	frames uint64
	exit   bool
}

// New creates the window and everything drawn into it. Errors wrap
// window.ErrFatal.
func New(cfg *config.Config, platform window.Platform, picker ui.FilePicker) (*App, error) {
	vsync, err := window.ParseVSync(cfg.Graphics.VSync)
	if err != nil {
		logger.Warn("invalid vsync setting, using auto", zap.Error(err))
		vsync = window.VSyncAuto
	}

	a := &App{
		cfg:     cfg,
		manager: window.NewManager(platform),
		picker:  picker,
		state:   NewState(cfg.App.AnimationSpeed),
	}

	a.res, err = a.manager.Initialize(window.Options{
		Title:          cfg.Graphics.Title,
		Width:          cfg.Window.Width,
		Height:         cfg.Window.Height,
		X:              cfg.Window.PosX,
		Y:              cfg.Window.PosY,
		Maximized:      cfg.Window.Maximized,
		GLMajor:        cfg.Graphics.GLMajor,
		GLMinor:        cfg.Graphics.GLMinor,
		VSync:          vsync,
		NoVSyncDrivers: cfg.Graphics.NoVSyncDrivers,
	})
	if err != nil {
		return nil, err
	}

	a.renderer, err = renderer.New(a.res.GPU)
	if err != nil {
		a.manager.Dispose()
		return nil, fmt.Errorf("%w: renderer: %w", window.ErrFatal, err)
	}
	a.painter, err = ui2d.NewPainter(a.res.GPU)
	if err != nil {
		a.renderer.Close()
		a.manager.Dispose()
		return nil, fmt.Errorf("%w: ui painter: %w", window.ErrFatal, err)
	}
	a.bridge = viewport.NewBridge(a.renderer)

	w, h := a.res.Surface.Size()
	a.renderer.Resize(w, h)
	a.ui = ui2d.NewContext(w, h)

	if cfg.App.AutoPlay {
		a.state.SetPlaying(true)
		a.state.SetStatus("Playing")
	}

	logger.Info("viewer ready",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Bool("playing", a.state.Playing()),
	)
	return a, nil
}

// PersistTo makes geometry and file changes save the config to path.
// An empty path turns persistence off.
func (a *App) PersistTo(path string) {
	a.savePath = path
}

// State returns the animation state.
func (a *App) State() *State {
	return a.state
}

// Renderer returns the 3D renderer.
func (a *App) Renderer() *renderer.Renderer {
	return a.renderer
}

// Resources returns the window resources, nil after Close.
func (a *App) Resources() *window.Resources {
	return a.res
}

// Frames returns the number of frames presented.
func (a *App) Frames() uint64 {
	return a.frames
}

// Input returns the input gathered for the next frame.
func (a *App) Input() *ui2d.InputState {
	return &a.input
}

// OnResize resizes the surface, then the renderer viewport, then the UI.
func (a *App) OnResize(width, height int) error {
	if width <= 0 || height <= 0 {
		logger.Debug("ignoring empty resize", zap.Int("width", width), zap.Int("height", height))
		return nil
	}
	if err := a.manager.Resize(width, height); err != nil {
		return fmt.Errorf("resize surface: %w", err)
	}
	w, h := a.res.Surface.Size()
	a.renderer.Resize(w, h)
	a.ui.Resize(w, h)

	if a.cfg.Window.Width != width || a.cfg.Window.Height != height {
		a.cfg.SetWindowSize(width, height)
		a.save()
	}
	return nil
}

// OnMove records the window position.
func (a *App) OnMove(x, y int) {
	if p := a.cfg.Window; p.PosX != nil && p.PosY != nil && *p.PosX == x && *p.PosY == y {
		return
	}
	a.cfg.SetWindowPos(x, y)
	a.save()
}

// OnRedraw runs one frame: take input, lay out the UI, tessellate, clear,
// paint (drawing the cube through its callback), apply texture changes and
// present. A present failure is returned and ends the loop.
func (a *App) OnRedraw() (FrameResult, error) {
	var result FrameResult
	if a.res == nil {
		return result, window.ErrNotReady
	}
	a.res.GPU.CheckThread()

	in := a.input.Take()
	a.handleKeys(in)

	a.ui.Begin(in)
	action := ui.Show(a.ui, a.state, a.bridge, a.picker)
	out := a.ui.End()

	if a.state.Playing() {
		a.state.Step()
	}
	// Keys step and reset while paused too.
	a.renderer.Update(a.state.Rotation())
	a.rememberFile()

	primitives := ui2d.Tessellate(out.Shapes, a.ui.Font())

	w, h := a.ui.ScreenSize()
	fns := a.res.GPU.GL()
	fns.Viewport(0, 0, int32(w), int32(h))
	fns.ClearColor(clearColor[0], clearColor[1], clearColor[2], clearColor[3])
	fns.Clear(gpu.ColorBufferBit | gpu.DepthBufferBit)

	stats := a.painter.Paint(primitives, w, h)

	for _, err := range a.painter.ApplyTextures(out.TexturesDelta) {
		logger.Warn("texture update failed", zap.Error(err))
		result.TextureErrors++
	}

	result.Primitives = len(primitives)
	result.Callbacks = stats.Callbacks
	result.Skipped = stats.Skipped

	if err := a.manager.Present(); err != nil {
		return result, err
	}
	a.frames++

	if action.Exit {
		a.exit = true
	}
	result.Exit = a.exit
	return result, nil
}

func (a *App) handleKeys(in ui2d.FrameInput) {
	for _, k := range in.KeysPressed {
		switch k {
		case ui2d.KeySpace, ui2d.KeyUp:
			if a.state.TogglePlay() {
				a.state.SetStatus("Playing")
			} else {
				a.state.SetStatus("Paused")
			}
		case ui2d.KeyLeft, ui2d.KeyR:
			a.state.Reset()
			a.state.SetStatus("Reset")
		case ui2d.KeyRight:
			a.state.Step()
			a.state.SetStatus(fmt.Sprintf("Stepped to frame %d", a.state.Frame()))
		case ui2d.KeyEscape:
			a.exit = true
		}
	}
}

func (a *App) rememberFile() {
	if f := a.state.CurrentFile(); f != "" && f != a.cfg.App.LastFile {
		a.cfg.App.LastFile = f
		a.save()
	}
}

func (a *App) save() {
	if a.savePath == "" {
		return
	}
	if err := a.cfg.SaveTo(a.savePath); err != nil {
		logger.Warn("failed to save config", zap.String("path", a.savePath), zap.Error(err))
	}
}

// HandleEvent applies one platform event. It reports false when the event
// asks the program to quit.
func (a *App) HandleEvent(e window.Event) (bool, error) {
	switch e.Type {
	case window.EventQuit:
		return false, nil
	case window.EventWindowResize:
		if err := a.OnResize(e.Width, e.Height); err != nil {
			return false, err
		}
	case window.EventWindowMove:
		a.OnMove(e.X, e.Y)
	case window.EventKeyDown:
		a.input.KeyPress(e.Key)
	case window.EventMouseMove:
		a.input.MouseMove(float32(e.X), float32(e.Y))
	case window.EventMouseDown, window.EventMouseUp:
		a.input.MouseMove(float32(e.X), float32(e.Y))
		if e.Button == window.ButtonLeft {
			a.input.MouseButton(e.Type == window.EventMouseDown)
		}
	}
	return true, nil
}

// Run polls events and redraws until the user quits or a frame fails.
// The next frame is requested as soon as one is presented.
func (a *App) Run() error {
	logger.Info("entering main loop")
	for {
		for {
			e, ok := a.manager.PollEvent()
			if !ok {
				break
			}
			running, err := a.HandleEvent(e)
			if err != nil {
				return err
			}
			if !running {
				logger.Info("quit requested")
				return nil
			}
		}

		result, err := a.OnRedraw()
		if err != nil {
			return err
		}
		if result.Exit {
			logger.Info("exit requested", zap.Uint64("frames", a.frames))
			return nil
		}
	}
}

// Close releases the painter, the renderer and the window, in that order.
// It is safe to call more than once.
func (a *App) Close() {
	if a.painter != nil {
		a.painter.Close()
		a.painter = nil
	}
	if a.renderer != nil {
		a.renderer.Close()
		a.renderer = nil
	}
	a.manager.Dispose()
	a.res = nil
}
