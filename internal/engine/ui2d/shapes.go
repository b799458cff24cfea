package ui2d

import "github.com/Faultbox/cubeview/pkg/math"

// Shape is a 2D drawing command produced during layout.
type Shape interface {
	isShape()
}

// RectShape is a filled rectangle.
type RectShape struct {
	Rect  math.Rect
	Color Color
}

// TextShape is a run of text with its top-left corner at X, Y.
type TextShape struct {
	X, Y  float32
	Text  string
	Scale float32
	Color Color
}

// CallbackInfo is passed to a paint callback.
type CallbackInfo struct {
	// Rect is the callback's area in window pixels, top-left origin.
	Rect math.Rect
	// Screen size in pixels.
	ScreenWidth, ScreenHeight int
}

// PaintFunc draws custom GPU content during painting.
type PaintFunc func(info CallbackInfo)

// CallbackShape defers custom GPU drawing to paint time.
type CallbackShape struct {
	Rect     math.Rect
	Callback PaintFunc
}

func (RectShape) isShape()     {}
func (TextShape) isShape()     {}
func (CallbackShape) isShape() {}

// ClippedShape pairs a shape with the rectangle it is clipped to.
type ClippedShape struct {
	Clip  math.Rect
	Shape Shape
}
