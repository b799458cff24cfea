// Package window owns the native window, the OpenGL device context and the
// drawable surface, and brings them up in a fixed order behind Manager.
//
// The native layer is reached through Platform so the lifecycle can be
// driven by sdlplatform in the program and by windowtest in tests.
package window

import (
	"errors"

	"github.com/Faultbox/cubeview/internal/engine/gpu"
)

var (
	// ErrFatal wraps every error that leaves the program without a usable
	// window or context.
	ErrFatal = errors.New("window: fatal")
	// ErrSurfaceLost is returned when presenting fails.
	ErrSurfaceLost = errors.New("window: surface lost")
	// ErrNotReady is returned by operations that need an initialized
	// manager.
	ErrNotReady = errors.New("window: not ready")
)

// Default window size used when Options leave it unset.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// Options describe the window and context to create.
type Options struct {
	Title     string
	Width     int
	Height    int
	X, Y      *int // nil lets the OS place the window
	Maximized bool

	GLMajor int
	GLMinor int

	VSync          VSyncMode
	NoVSyncDrivers []string
}

// Platform creates native objects. Implementations are used from the
// thread that owns the GPU context only.
type Platform interface {
	CreateWindow(opts Options) (Window, error)
	CreateDeviceContext(w Window, major, minor int) (DeviceContext, error)
	CreateSurface(w Window, dc DeviceContext) (Surface, error)
	// LoadFunctions resolves the GL entry points of the current context.
	LoadFunctions() (gpu.Functions, error)
	// VideoDriver names the active video backend, e.g. "x11" or "wayland".
	VideoDriver() string
	// PollEvent returns the next pending event, or false when none is queued.
	PollEvent() (Event, bool)
	// Shutdown releases platform state after every window is destroyed.
	Shutdown()
}

// Window is a native top-level window.
type Window interface {
	Size() (int, int)
	Position() (int, int)
	Destroy()
}

// DeviceContext is a platform GL context.
type DeviceContext interface {
	MakeCurrent() error
	Destroy()
}

// Surface is the drawable bound to a window.
type Surface interface {
	Size() (int, int)
	Resize(width, height int) error
	SetSwapInterval(interval int) error
	SwapBuffers() error
	Destroy()
}

// Resources are the objects Initialize creates, valid until Dispose.
type Resources struct {
	Window        Window
	DeviceContext DeviceContext
	Surface       Surface
	GPU           *gpu.Context
	// VSync is the policy that was actually applied.
	VSync VSyncMode
}
