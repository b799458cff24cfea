package ui2d

import "slices"

// Key identifies the keys the UI reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyR
	KeyEscape
)

// InputState accumulates raw platform input between frames. The frame loop
// feeds events as they arrive and hands the state to Context.Begin.
type InputState struct {
	MouseX float32
	MouseY float32

	MouseLeftDown bool
	// MouseLeftClicked latches a press that was released before the frame
	// ran, so fast clicks are not lost.
	MouseLeftClicked bool

	// Keys pressed since the last frame, in order.
	KeysPressed []Key

	prevMouseLeft bool
	// released latches a release that happens before the frame runs.
	released bool
}

// MouseMove records the pointer position in window pixels.
func (i *InputState) MouseMove(x, y float32) {
	i.MouseX = x
	i.MouseY = y
}

// MouseButton records a left button transition.
func (i *InputState) MouseButton(down bool) {
	if down {
		i.MouseLeftClicked = true
	} else if i.MouseLeftDown {
		i.released = true
	}
	i.MouseLeftDown = down
}

// KeyPress records a key press.
func (i *InputState) KeyPress(k Key) {
	i.KeysPressed = append(i.KeysPressed, k)
}

// Take returns the input gathered since the last call and starts a new
// gathering period. Pointer position and held buttons carry over.
func (i *InputState) Take() FrameInput {
	in := FrameInput{
		MouseX:            i.MouseX,
		MouseY:            i.MouseY,
		MouseLeftDown:     i.MouseLeftDown,
		MouseLeftPressed:  i.MouseLeftClicked || (i.MouseLeftDown && !i.prevMouseLeft),
		MouseLeftReleased: i.released || (!i.MouseLeftDown && i.prevMouseLeft),
		KeysPressed:       i.KeysPressed,
	}
	i.prevMouseLeft = i.MouseLeftDown
	i.MouseLeftClicked = false
	i.released = false
	i.KeysPressed = nil
	return in
}

// FrameInput is the input snapshot a frame is laid out with.
type FrameInput struct {
	MouseX, MouseY    float32
	MouseLeftDown     bool
	MouseLeftPressed  bool
	MouseLeftReleased bool
	KeysPressed       []Key
}

// KeyPressed reports whether k was pressed during the frame.
func (f FrameInput) KeyPressed(k Key) bool {
	return slices.Contains(f.KeysPressed, k)
}
