package window

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeview/internal/engine/gpu"
	"github.com/Faultbox/cubeview/internal/logger"
)

// State is the lifecycle position of a Manager.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Manager drives the window and context lifecycle:
// Uninitialized, Initializing, Ready, Disposed.
type Manager struct {
	platform Platform
	state    State
	res      *Resources
}

// NewManager creates a manager over p.
func NewManager(p Platform) *Manager {
	return &Manager{platform: p}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	return m.state
}

// Resources returns the live resources, or nil unless Ready.
func (m *Manager) Resources() *Resources {
	return m.res
}

// Initialize creates the window, device context and surface, makes the
// context current, loads the GL function table and applies the vsync
// policy, in that order. On failure everything created so far is released,
// the manager is Disposed and the error wraps ErrFatal.
func (m *Manager) Initialize(opts Options) (*Resources, error) {
	if m.state != StateUninitialized {
		return nil, fmt.Errorf("%w: initialize in state %s", ErrFatal, m.state)
	}
	m.state = StateInitializing

	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = DefaultWidth, DefaultHeight
	}
	if opts.GLMajor <= 0 {
		opts.GLMajor, opts.GLMinor = 4, 1
	}

	var (
		win  Window
		dc   DeviceContext
		surf Surface
	)
	fail := func(step string, err error) (*Resources, error) {
		if surf != nil {
			surf.Destroy()
		}
		if dc != nil {
			dc.Destroy()
		}
		if win != nil {
			win.Destroy()
		}
		m.platform.Shutdown()
		m.state = StateDisposed
		return nil, fmt.Errorf("%w: %s: %w", ErrFatal, step, err)
	}

	var err error
	if win, err = m.platform.CreateWindow(opts); err != nil {
		return fail("create window", err)
	}
	if dc, err = m.platform.CreateDeviceContext(win, opts.GLMajor, opts.GLMinor); err != nil {
		return fail("create context", err)
	}
	if surf, err = m.platform.CreateSurface(win, dc); err != nil {
		return fail("create surface", err)
	}
	if err = dc.MakeCurrent(); err != nil {
		return fail("make current", err)
	}
	fns, err := m.platform.LoadFunctions()
	if err != nil {
		return fail("load gl functions", err)
	}

	ctx := gpu.NewContext(fns)
	info := ctx.Info()
	logger.Info("OpenGL context ready",
		zap.String("version", info.Version),
		zap.String("renderer", info.Renderer),
		zap.String("vendor", info.Vendor),
		zap.String("glsl", info.ShadingLanguage),
	)

	vsync := m.applyVSync(surf, opts)

	m.res = &Resources{
		Window:        win,
		DeviceContext: dc,
		Surface:       surf,
		GPU:           ctx,
		VSync:         vsync,
	}
	m.state = StateReady

	w, h := surf.Size()
	logger.Info("window created",
		zap.String("title", opts.Title),
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Bool("maximized", opts.Maximized),
		zap.String("vsync", string(vsync)),
	)
	return m.res, nil
}

// applyVSync sets the swap interval. Failures are logged and ignored;
// adaptive falls back to plain vsync first.
func (m *Manager) applyVSync(surf Surface, opts Options) VSyncMode {
	driver := m.platform.VideoDriver()
	mode := opts.VSync.Resolve(driver, opts.NoVSyncDrivers)

	err := surf.SetSwapInterval(mode.Interval())
	if err != nil && mode == VSyncAdaptive {
		logger.Debug("adaptive vsync unavailable, trying vsync on", zap.Error(err))
		mode = VSyncOn
		err = surf.SetSwapInterval(mode.Interval())
	}
	if err != nil {
		logger.Warn("failed to set swap interval",
			zap.String("vsync", string(mode)),
			zap.String("driver", driver),
			zap.Error(err),
		)
	}
	return mode
}

// Resize resizes the surface.
func (m *Manager) Resize(width, height int) error {
	if m.state != StateReady {
		return ErrNotReady
	}
	return m.res.Surface.Resize(width, height)
}

// Present swaps the surface buffers.
func (m *Manager) Present() error {
	if m.state != StateReady {
		return ErrNotReady
	}
	if err := m.res.Surface.SwapBuffers(); err != nil {
		return fmt.Errorf("%w: %w", ErrSurfaceLost, err)
	}
	return nil
}

// PollEvent returns the next pending platform event.
func (m *Manager) PollEvent() (Event, bool) {
	if m.state != StateReady {
		return Event{}, false
	}
	return m.platform.PollEvent()
}

// Dispose destroys the surface, context and window. Safe to call more
// than once and from any state.
func (m *Manager) Dispose() {
	if m.state == StateDisposed {
		return
	}
	if m.res != nil {
		logger.Info("closing window")
		m.res.Surface.Destroy()
		m.res.DeviceContext.Destroy()
		m.res.Window.Destroy()
		m.res = nil
		m.platform.Shutdown()
	}
	m.state = StateDisposed
}
