package sdlplatform

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/cubeview/internal/engine/ui2d"
	"github.com/Faultbox/cubeview/internal/engine/window"
)

// PollEvent drains SDL events until one translates, or the queue is empty.
func (p *Platform) PollEvent() (window.Event, bool) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := translate(event); ok {
			return e, true
		}
	}
	return window.Event{}, false
}

func translate(event sdl.Event) (window.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return window.Event{Type: window.EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			return window.Event{
				Type:   window.EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		case sdl.WINDOWEVENT_MOVED:
			return window.Event{
				Type: window.EventWindowMove,
				X:    int(e.Data1),
				Y:    int(e.Data2),
			}, true
		case sdl.WINDOWEVENT_CLOSE:
			return window.Event{Type: window.EventQuit}, true
		}

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return window.Event{}, false
		}
		key := translateKey(e.Keysym.Scancode)
		if key == ui2d.KeyUnknown {
			return window.Event{}, false
		}
		if e.Type == sdl.KEYDOWN {
			return window.Event{Type: window.EventKeyDown, Key: key}, true
		}
		return window.Event{Type: window.EventKeyUp, Key: key}, true

	case *sdl.MouseMotionEvent:
		return window.Event{
			Type: window.EventMouseMove,
			X:    int(e.X),
			Y:    int(e.Y),
		}, true

	case *sdl.MouseButtonEvent:
		t := window.EventMouseUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			t = window.EventMouseDown
		}
		return window.Event{
			Type:   t,
			X:      int(e.X),
			Y:      int(e.Y),
			Button: e.Button,
		}, true
	}
	return window.Event{}, false
}

func translateKey(sc sdl.Scancode) ui2d.Key {
	switch sc {
	case sdl.SCANCODE_SPACE:
		return ui2d.KeySpace
	case sdl.SCANCODE_UP:
		return ui2d.KeyUp
	case sdl.SCANCODE_DOWN:
		return ui2d.KeyDown
	case sdl.SCANCODE_LEFT:
		return ui2d.KeyLeft
	case sdl.SCANCODE_RIGHT:
		return ui2d.KeyRight
	case sdl.SCANCODE_R:
		return ui2d.KeyR
	case sdl.SCANCODE_ESCAPE:
		return ui2d.KeyEscape
	default:
		return ui2d.KeyUnknown
	}
}
