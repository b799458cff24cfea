package window

import "github.com/Faultbox/cubeview/internal/engine/ui2d"

// EventType tags an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventWindowMove
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Mouse buttons.
const (
	ButtonLeft   uint8 = 1
	ButtonMiddle uint8 = 2
	ButtonRight  uint8 = 3
)

// Event is a platform event translated for the frame loop.
type Event struct {
	Type EventType
	Key  ui2d.Key
	// Width and Height are set for EventWindowResize.
	Width  int
	Height int
	// X and Y are the window position for EventWindowMove and the cursor
	// position for mouse events.
	X      int
	Y      int
	Button uint8
}
