package ui2d

import (
	"github.com/Faultbox/cubeview/pkg/math"
)

// Response describes how the pointer interacted with an allocated area.
type Response struct {
	Rect    math.Rect
	Hovered bool
	Clicked bool
}

// Layout places widgets inside a panel or popup. Panels created with
// TopPanel and BottomPanel flow left to right; others flow top to bottom.
type Layout struct {
	ctx        *Context
	id         string
	rect       math.Rect
	clip       math.Rect
	cursorX    float32
	cursorY    float32
	rowH       float32
	horizontal bool
	overlay    bool
	// widest item placed, for sizing popups
	extentX float32
}

// Rect returns the layout's full area.
func (l *Layout) Rect() math.Rect {
	return l.rect
}

// AvailableRect returns the space left after the widgets placed so far.
func (l *Layout) AvailableRect() math.Rect {
	r := math.Rect{
		X: l.cursorX,
		Y: l.cursorY,
		W: l.rect.MaxX() - padding - l.cursorX,
		H: l.rect.MaxY() - padding - l.cursorY,
	}
	if !l.horizontal {
		r.X = l.rect.X + padding
		r.W = l.rect.W - 2*padding
	}
	return math.Rect{X: r.X, Y: r.Y, W: max(r.W, 0), H: max(r.H, 0)}
}

func (l *Layout) add(s Shape) {
	cs := ClippedShape{Clip: l.clip, Shape: s}
	if l.overlay {
		l.ctx.overlay = append(l.ctx.overlay, cs)
		return
	}
	l.ctx.shapes = append(l.ctx.shapes, cs)
}

func (l *Layout) fill(r math.Rect, color Color) {
	l.add(RectShape{Rect: r, Color: color})
}

func (l *Layout) outline(r math.Rect, color Color) {
	l.fill(math.Rect{X: r.X, Y: r.Y, W: r.W, H: 1}, color)
	l.fill(math.Rect{X: r.X, Y: r.MaxY() - 1, W: r.W, H: 1}, color)
	l.fill(math.Rect{X: r.X, Y: r.Y + 1, W: 1, H: r.H - 2}, color)
	l.fill(math.Rect{X: r.MaxX() - 1, Y: r.Y + 1, W: 1, H: r.H - 2}, color)
}

func (l *Layout) text(x, y float32, s string, color Color) {
	l.add(TextShape{X: x, Y: y, Text: FoldText(s), Scale: 1, Color: color})
}

// next reserves a w by h cell at the cursor and advances it.
func (l *Layout) next(w, h float32) math.Rect {
	r := math.Rect{X: l.cursorX, Y: l.cursorY, W: w, H: h}
	if l.horizontal {
		l.cursorX += w + itemSpacing
		l.rowH = max(l.rowH, h)
	} else {
		l.cursorY += h + itemSpacing
	}
	l.extentX = max(l.extentX, r.MaxX())
	return r
}

// AllocateRect claims rect for custom content and reports pointer
// interaction with it. The cursor moves past rect.
func (l *Layout) AllocateRect(rect math.Rect) Response {
	if l.horizontal {
		l.cursorX = max(l.cursorX, rect.MaxX()+itemSpacing)
	} else {
		l.cursorY = max(l.cursorY, rect.MaxY()+itemSpacing)
	}
	in := l.ctx.input
	return Response{
		Rect:    rect,
		Hovered: rect.Contains(in.MouseX, in.MouseY),
		Clicked: l.ctx.claimPress(rect),
	}
}

// AddCallback registers fn to draw into rect at paint time, after the
// shapes added before it and before those added after.
func (l *Layout) AddCallback(rect math.Rect, fn PaintFunc) {
	cs := ClippedShape{Clip: rect.Intersect(l.clip), Shape: CallbackShape{Rect: rect, Callback: fn}}
	if l.overlay {
		l.ctx.overlay = append(l.ctx.overlay, cs)
		return
	}
	l.ctx.shapes = append(l.ctx.shapes, cs)
}

// Label draws a text label.
func (l *Layout) Label(text string) {
	l.LabelColored(text, ColorText)
}

// LabelColored draws a text label with a specific color.
func (l *Layout) LabelColored(text string, color Color) {
	f := l.ctx.font
	w, h := f.MeasureText(FoldText(text), 1)
	cellH := max(h, buttonHeight)
	r := l.next(w, cellH)
	l.text(r.X, r.Y+(cellH-h)/2, text, color)
}

// Button draws a button and returns true if clicked.
func (l *Layout) Button(id, label string) bool {
	f := l.ctx.font
	textW, textH := f.MeasureText(FoldText(label), 1)
	width := textW + 2*padding
	if !l.horizontal && l.overlay {
		width = max(width, menuWidth-2*padding)
	}
	r := l.next(width, buttonHeight)
	return l.button(l.id+"/"+id, r, label, textW, textH)
}

func (l *Layout) button(fullID string, r math.Rect, label string, textW, textH float32) bool {
	c := l.ctx
	hovered := r.Contains(c.input.MouseX, c.input.MouseY)
	if hovered {
		c.hotWidget = fullID
	}

	clicked := c.claimPress(r)
	if clicked {
		c.activeWidget = fullID
	}

	color := ColorButtonNormal
	if c.activeWidget == fullID {
		color = ColorButtonActive
	} else if hovered {
		color = ColorButtonHover
	}
	if l.overlay && color == ColorButtonNormal {
		color = ColorTransparent
	}

	l.fill(r, color)
	if !l.overlay {
		l.outline(r, ColorPanelBorder)
	}

	textX := r.X + (r.W-textW)/2
	if l.overlay {
		textX = r.X + padding
	}
	l.text(textX, r.Y+(r.H-textH)/2, label, ColorText)

	return clicked
}

// Separator draws a thin divider.
func (l *Layout) Separator() {
	if l.horizontal {
		r := l.next(1, buttonHeight)
		l.fill(r, ColorPanelBorder)
		return
	}
	r := l.next(l.rect.W-2*padding, 1)
	l.fill(r, ColorPanelBorder)
}

// MenuButton draws a menu-bar button that toggles a popup filled by add.
// Clicking an item closes the popup, as does clicking anywhere outside it.
func (l *Layout) MenuButton(id, label string, add func(menu *Layout)) {
	c := l.ctx
	fullID := l.id + "/" + id

	f := c.font
	textW, textH := f.MeasureText(FoldText(label), 1)
	r := l.next(textW+2*padding, buttonHeight)

	if l.button(fullID, r, label, textW, textH) {
		if c.openMenu == fullID {
			c.openMenu = ""
		} else {
			c.openMenu = fullID
		}
	}
	if c.openMenu != fullID {
		return
	}

	popupTop := l.rect.MaxY()
	bgIndex := len(c.overlay)
	c.overlay = append(c.overlay, ClippedShape{}, ClippedShape{})

	menu := c.newLayout(fullID, math.Rect{X: r.X, Y: popupTop, W: menuWidth, H: float32(c.screenH) - popupTop}, false, true)
	pressedBefore := c.pressConsumed
	add(menu)
	itemClicked := c.pressConsumed && !pressedBefore

	popup := math.Rect{X: r.X, Y: popupTop, W: menuWidth, H: menu.cursorY - popupTop + padding - itemSpacing}
	c.overlay[bgIndex] = ClippedShape{Clip: c.screenRect(), Shape: RectShape{Rect: popup, Color: ColorPopupBg}}
	c.overlay[bgIndex+1] = ClippedShape{Clip: c.screenRect(), Shape: RectShape{Rect: math.Rect{X: popup.X, Y: popup.MaxY() - 1, W: popup.W, H: 1}, Color: ColorPanelBorder}}
	c.menuAreas = append(c.menuAreas, r, popup)

	if itemClicked {
		c.openMenu = ""
	}
}
