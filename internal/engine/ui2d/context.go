// Package ui2d is a small immediate-mode 2D UI. Layout produces shapes,
// Tessellate turns them into primitives, and Painter draws those with the
// GPU, running paint callbacks for embedded 3D content in order.
package ui2d

import (
	"github.com/Faultbox/cubeview/pkg/math"
)

// Layout metrics in pixels at text scale 1.
const (
	padding      = 6
	itemSpacing  = 4
	buttonHeight = 20
	menuWidth    = 160
)

// FullOutput is everything a frame produced.
type FullOutput struct {
	Shapes        []ClippedShape
	TexturesDelta TexturesDelta
}

// Context is the main UI context: screen size, font, input for the frame
// and the shapes laid out so far.
type Context struct {
	font          *Font
	screenW       int
	screenH       int
	input         FrameInput
	fontUploaded  bool
	pendingFrees  []TextureID
	pendingUpload []TextureUpdate

	shapes  []ClippedShape
	overlay []ClippedShape

	// Active/hot widget tracking for interaction
	hotWidget    string
	activeWidget string

	// Open popup menu and the areas that keep it open.
	openMenu      string
	menuAreas     []math.Rect
	pressConsumed bool

	// Area not yet taken by panels this frame.
	remaining math.Rect
}

// NewContext creates a UI context for a screen of the given size.
func NewContext(width, height int) *Context {
	c := &Context{font: NewFont()}
	c.Resize(width, height)
	return c
}

// Resize updates the screen size.
func (c *Context) Resize(width, height int) {
	c.screenW = width
	c.screenH = height
}

// ScreenSize returns the current screen dimensions.
func (c *Context) ScreenSize() (int, int) {
	return c.screenW, c.screenH
}

// Font returns the glyph atlas used for text.
func (c *Context) Font() *Font {
	return c.font
}

// Input returns the input the current frame is laid out with.
func (c *Context) Input() FrameInput {
	return c.input
}

// InvalidateTextures makes the next frame upload the font again, for
// example after the painter was recreated.
func (c *Context) InvalidateTextures() {
	c.fontUploaded = false
}

// SetTexture queues an upload for the next End.
func (c *Context) SetTexture(id TextureID, delta ImageDelta) {
	c.pendingUpload = append(c.pendingUpload, TextureUpdate{ID: id, Delta: delta})
}

// FreeTexture queues a free for the next End.
func (c *Context) FreeTexture(id TextureID) {
	c.pendingFrees = append(c.pendingFrees, id)
}

// Begin starts a new UI frame.
func (c *Context) Begin(input FrameInput) {
	c.input = input
	c.shapes = c.shapes[:0]
	c.overlay = c.overlay[:0]
	c.menuAreas = c.menuAreas[:0]
	c.pressConsumed = false
	c.hotWidget = ""
	c.remaining = c.screenRect()

	if !c.fontUploaded {
		c.SetTexture(FontTexture, ImageDelta{Image: c.font.Atlas()})
		c.fontUploaded = true
	}
}

// End finishes the UI frame and returns its output. Popups are drawn on
// top of everything else.
func (c *Context) End() FullOutput {
	// Cleared after layout so a press and release in the same frame still
	// draws the widget active once.
	if c.input.MouseLeftReleased {
		c.activeWidget = ""
	}
	if c.openMenu != "" && c.input.MouseLeftPressed && !c.inMenuArea() {
		c.openMenu = ""
	}

	out := FullOutput{
		Shapes: make([]ClippedShape, 0, len(c.shapes)+len(c.overlay)),
		TexturesDelta: TexturesDelta{
			Set:  c.pendingUpload,
			Free: c.pendingFrees,
		},
	}
	out.Shapes = append(out.Shapes, c.shapes...)
	out.Shapes = append(out.Shapes, c.overlay...)

	c.pendingUpload = nil
	c.pendingFrees = nil
	return out
}

func (c *Context) screenRect() math.Rect {
	return math.Rect{W: float32(c.screenW), H: float32(c.screenH)}
}

func (c *Context) inMenuArea() bool {
	for _, r := range c.menuAreas {
		if r.Contains(c.input.MouseX, c.input.MouseY) {
			return true
		}
	}
	return false
}

// claimPress consumes this frame's click if it landed in r, so only one
// widget gets it.
func (c *Context) claimPress(r math.Rect) bool {
	if c.pressConsumed || !c.input.MouseLeftPressed {
		return false
	}
	if !r.Contains(c.input.MouseX, c.input.MouseY) {
		return false
	}
	c.pressConsumed = true
	return true
}

// TopPanel lays out a full-width panel at the top of the remaining area.
func (c *Context) TopPanel(id string, height float32, add func(ui *Layout)) {
	height = min(height, c.remaining.H)
	rect := math.Rect{X: c.remaining.X, Y: c.remaining.Y, W: c.remaining.W, H: height}
	c.remaining.Y += height
	c.remaining.H -= height
	c.panel(id, rect, true, add)
}

// BottomPanel lays out a full-width panel at the bottom of the remaining
// area.
func (c *Context) BottomPanel(id string, height float32, add func(ui *Layout)) {
	height = min(height, c.remaining.H)
	rect := math.Rect{X: c.remaining.X, Y: c.remaining.MaxY() - height, W: c.remaining.W, H: height}
	c.remaining.H -= height
	c.panel(id, rect, true, add)
}

// CentralPanel lays out a panel filling whatever the other panels left.
func (c *Context) CentralPanel(id string, add func(ui *Layout)) {
	rect := c.remaining
	c.remaining = math.Rect{X: rect.X, Y: rect.MaxY()}
	c.panel(id, rect, false, add)
}

func (c *Context) panel(id string, rect math.Rect, horizontal bool, add func(ui *Layout)) {
	l := c.newLayout(id, rect, horizontal, false)
	l.fill(rect, ColorPanelBg)
	if horizontal {
		l.fill(math.Rect{X: rect.X, Y: rect.MaxY() - 1, W: rect.W, H: 1}, ColorPanelBorder)
		l.cursorY = rect.Y + (rect.H-buttonHeight)/2
	}
	add(l)
}

func (c *Context) newLayout(id string, rect math.Rect, horizontal, overlay bool) *Layout {
	return &Layout{
		ctx:        c,
		id:         id,
		rect:       rect,
		clip:       rect.Intersect(c.screenRect()),
		cursorX:    rect.X + padding,
		cursorY:    rect.Y + padding,
		horizontal: horizontal,
		overlay:    overlay,
	}
}
