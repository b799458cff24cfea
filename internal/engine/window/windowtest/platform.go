// Package windowtest provides an in-memory window.Platform for tests.
package windowtest

import (
	"errors"
	"runtime"
	"testing"

	"github.com/Faultbox/cubeview/internal/engine/gpu"
	"github.com/Faultbox/cubeview/internal/engine/gpu/gputest"
	"github.com/Faultbox/cubeview/internal/engine/window"
)

// Steps that FailAt can name.
const (
	StepWindow    = "window"
	StepContext   = "context"
	StepSurface   = "surface"
	StepCurrent   = "current"
	StepFunctions = "functions"
)

// ErrInjected is returned by the step named in FailAt.
var ErrInjected = errors.New("windowtest: injected failure")

// Platform records calls and hands out fake objects.
type Platform struct {
	// Driver is reported by VideoDriver.
	Driver string
	// FailAt names a creation step that returns ErrInjected.
	FailAt string
	// SwapIntervalErr makes SetSwapInterval fail for the given intervals.
	SwapIntervalErr map[int]error
	// SwapErr makes SwapBuffers fail.
	SwapErr error
	// GL is the fake function table; created on LoadFunctions if nil.
	GL *gputest.GL
	// Events are returned by PollEvent in order.
	Events []window.Event

	// Calls lists creation and destruction steps in order.
	Calls     []string
	Window    *Window
	Context   *DeviceContext
	Surface   *Surface
	Shutdowns int
}

// New returns a platform for an X11-like driver and locks the test
// goroutine to its thread for the duration of the test.
func New(tb testing.TB) *Platform {
	tb.Helper()
	runtime.LockOSThread()
	tb.Cleanup(runtime.UnlockOSThread)
	return &Platform{Driver: "x11"}
}

// Queue appends events for PollEvent.
func (p *Platform) Queue(events ...window.Event) {
	p.Events = append(p.Events, events...)
}

func (p *Platform) fail(step string) error {
	if p.FailAt == step {
		return ErrInjected
	}
	return nil
}

func (p *Platform) CreateWindow(opts window.Options) (window.Window, error) {
	p.Calls = append(p.Calls, "create window")
	if err := p.fail(StepWindow); err != nil {
		return nil, err
	}
	p.Window = &Window{p: p, Opts: opts, W: opts.Width, H: opts.Height}
	if opts.X != nil && opts.Y != nil {
		p.Window.X, p.Window.Y = *opts.X, *opts.Y
	}
	return p.Window, nil
}

func (p *Platform) CreateDeviceContext(_ window.Window, major, minor int) (window.DeviceContext, error) {
	p.Calls = append(p.Calls, "create context")
	if err := p.fail(StepContext); err != nil {
		return nil, err
	}
	p.Context = &DeviceContext{p: p, Major: major, Minor: minor}
	return p.Context, nil
}

func (p *Platform) CreateSurface(w window.Window, _ window.DeviceContext) (window.Surface, error) {
	p.Calls = append(p.Calls, "create surface")
	if err := p.fail(StepSurface); err != nil {
		return nil, err
	}
	width, height := w.Size()
	p.Surface = &Surface{p: p, W: width, H: height, Interval: -2}
	return p.Surface, nil
}

func (p *Platform) LoadFunctions() (gpu.Functions, error) {
	p.Calls = append(p.Calls, "load functions")
	if err := p.fail(StepFunctions); err != nil {
		return nil, err
	}
	if p.GL == nil {
		w, h := 0, 0
		if p.Surface != nil {
			w, h = p.Surface.Size()
		}
		p.GL = gputest.New(int32(w), int32(h))
	}
	return p.GL, nil
}

func (p *Platform) VideoDriver() string {
	return p.Driver
}

func (p *Platform) PollEvent() (window.Event, bool) {
	if len(p.Events) == 0 {
		return window.Event{}, false
	}
	e := p.Events[0]
	p.Events = p.Events[1:]
	return e, true
}

func (p *Platform) Shutdown() {
	p.Calls = append(p.Calls, "shutdown")
	p.Shutdowns++
}

// Window is a fake native window.
type Window struct {
	p         *Platform
	Opts      window.Options
	W, H      int
	X, Y      int
	Destroyed bool
}

func (w *Window) Size() (int, int)     { return w.W, w.H }
func (w *Window) Position() (int, int) { return w.X, w.Y }

func (w *Window) Destroy() {
	w.p.Calls = append(w.p.Calls, "destroy window")
	w.Destroyed = true
}

// DeviceContext is a fake GL context.
type DeviceContext struct {
	p            *Platform
	Major, Minor int
	Current      bool
	Destroyed    bool
}

func (c *DeviceContext) MakeCurrent() error {
	c.p.Calls = append(c.p.Calls, "make current")
	if err := c.p.fail(StepCurrent); err != nil {
		return err
	}
	c.Current = true
	return nil
}

func (c *DeviceContext) Destroy() {
	c.p.Calls = append(c.p.Calls, "destroy context")
	c.Destroyed = true
}

// Surface is a fake drawable.
type Surface struct {
	p         *Platform
	W, H      int
	Interval  int
	Presents  int
	Resizes   int
	Destroyed bool
}

func (s *Surface) Size() (int, int) { return s.W, s.H }

func (s *Surface) Resize(width, height int) error {
	s.Resizes++
	s.W, s.H = width, height
	if s.p.Window != nil {
		s.p.Window.W, s.p.Window.H = width, height
	}
	return nil
}

func (s *Surface) SetSwapInterval(interval int) error {
	if err := s.p.SwapIntervalErr[interval]; err != nil {
		return err
	}
	s.Interval = interval
	return nil
}

func (s *Surface) SwapBuffers() error {
	if s.p.SwapErr != nil {
		return s.p.SwapErr
	}
	s.Presents++
	return nil
}

func (s *Surface) Destroy() {
	s.p.Calls = append(s.p.Calls, "destroy surface")
	s.Destroyed = true
}
