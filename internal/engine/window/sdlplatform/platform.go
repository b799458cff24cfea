// Package sdlplatform implements window.Platform with SDL2.
package sdlplatform

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/cubeview/internal/engine/gpu"
	"github.com/Faultbox/cubeview/internal/engine/gpu/glbackend"
	"github.com/Faultbox/cubeview/internal/engine/window"
	"github.com/Faultbox/cubeview/internal/logger"
)

// Platform is the SDL2 video subsystem. SDL is initialized on the first
// CreateWindow and shut down by Shutdown.
type Platform struct {
	initialized bool
}

// New returns an uninitialized platform.
func New() *Platform {
	return &Platform{}
}

func (p *Platform) CreateWindow(opts window.Options) (window.Window, error) {
	if !p.initialized {
		logger.Debug("initializing SDL2")
		if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
			return nil, fmt.Errorf("SDL_Init failed: %w", err)
		}
		p.initialized = true
	}

	// Context attributes must be set before the window exists.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, opts.GLMajor)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, opts.GLMinor)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	x, y := int32(sdl.WINDOWPOS_CENTERED), int32(sdl.WINDOWPOS_CENTERED)
	if opts.X != nil && opts.Y != nil {
		x, y = int32(*opts.X), int32(*opts.Y)
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE)
	if opts.Maximized {
		flags |= sdl.WINDOW_MAXIMIZED
	}

	w, err := sdl.CreateWindow(opts.Title, x, y, int32(opts.Width), int32(opts.Height), flags)
	if err != nil {
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}
	return &sdlWindow{w: w}, nil
}

func (p *Platform) CreateDeviceContext(w window.Window, major, minor int) (window.DeviceContext, error) {
	sw, ok := w.(*sdlWindow)
	if !ok {
		return nil, fmt.Errorf("foreign window %T", w)
	}
	ctx, err := sw.w.GLCreateContext()
	if err != nil {
		return nil, fmt.Errorf("SDL_GL_CreateContext (GL %d.%d core) failed: %w", major, minor, err)
	}
	return &deviceContext{w: sw.w, ctx: ctx}, nil
}

func (p *Platform) CreateSurface(w window.Window, _ window.DeviceContext) (window.Surface, error) {
	sw, ok := w.(*sdlWindow)
	if !ok {
		return nil, fmt.Errorf("foreign window %T", w)
	}
	return &surface{w: sw.w}, nil
}

func (p *Platform) LoadFunctions() (gpu.Functions, error) {
	fns, err := glbackend.Load()
	if err != nil {
		return nil, err
	}
	return fns, nil
}

func (p *Platform) VideoDriver() string {
	name, err := sdl.GetCurrentVideoDriver()
	if err != nil {
		logger.Debug("video driver unknown", zap.Error(err))
		return ""
	}
	return name
}

func (p *Platform) Shutdown() {
	if p.initialized {
		sdl.Quit()
		p.initialized = false
	}
}

type sdlWindow struct {
	w *sdl.Window
}

func (w *sdlWindow) Size() (int, int) {
	width, height := w.w.GetSize()
	return int(width), int(height)
}

func (w *sdlWindow) Position() (int, int) {
	x, y := w.w.GetPosition()
	return int(x), int(y)
}

func (w *sdlWindow) Destroy() {
	if w.w != nil {
		w.w.Destroy()
		w.w = nil
	}
}

type deviceContext struct {
	w   *sdl.Window
	ctx sdl.GLContext
}

func (c *deviceContext) MakeCurrent() error {
	return c.w.GLMakeCurrent(c.ctx)
}

func (c *deviceContext) Destroy() {
	if c.ctx != nil {
		sdl.GLDeleteContext(c.ctx)
		c.ctx = nil
	}
}

// surface is the default framebuffer of an SDL window. Its size follows the
// window, so Resize only has to catch up when the window disagrees.
type surface struct {
	w *sdl.Window
}

func (s *surface) Size() (int, int) {
	width, height := s.w.GLGetDrawableSize()
	return int(width), int(height)
}

func (s *surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	if w, h := s.w.GetSize(); int(w) != width || int(h) != height {
		s.w.SetSize(int32(width), int32(height))
	}
	return nil
}

func (s *surface) SetSwapInterval(interval int) error {
	return sdl.GLSetSwapInterval(interval)
}

func (s *surface) SwapBuffers() error {
	s.w.GLSwap()
	return nil
}

func (s *surface) Destroy() {}
