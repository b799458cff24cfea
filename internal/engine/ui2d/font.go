package ui2d

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Atlas layout: printable ASCII in a 16 column grid plus one solid cell
// used for untextured shapes.
const (
	firstGlyph   = 32
	lastGlyph    = 126
	atlasColumns = 16
)

// Font is a fixed-width bitmap font rasterised into an RGBA atlas.
type Font struct {
	face   *basicfont.Face
	glyphW int
	glyphH int
	ascent int
	atlas  *image.RGBA
	white  [2]float32
}

// NewFont rasterises basicfont's 7x13 face.
func NewFont() *Font {
	face := basicfont.Face7x13
	f := &Font{
		face:   face,
		glyphW: face.Advance,
		glyphH: face.Height,
		ascent: face.Ascent,
	}

	cells := lastGlyph - firstGlyph + 2
	rows := (cells + atlasColumns - 1) / atlasColumns
	f.atlas = image.NewRGBA(image.Rect(0, 0, atlasColumns*f.glyphW, rows*f.glyphH))

	d := &font.Drawer{
		Dst:  f.atlas,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	for r := rune(firstGlyph); r <= lastGlyph; r++ {
		x, y := f.cellOrigin(int(r - firstGlyph))
		d.Dot = fixed.P(x, y+f.ascent)
		d.DrawString(string(r))
	}

	// Solid cell; sample its centre so filtering never bleeds.
	wx, wy := f.cellOrigin(cells - 1)
	cell := image.Rect(wx, wy, wx+f.glyphW, wy+f.glyphH)
	draw.Draw(f.atlas, cell, image.NewUniform(color.White), image.Point{}, draw.Src)
	f.white = [2]float32{
		(float32(wx) + float32(f.glyphW)/2) / float32(f.atlas.Bounds().Dx()),
		(float32(wy) + float32(f.glyphH)/2) / float32(f.atlas.Bounds().Dy()),
	}

	return f
}

func (f *Font) cellOrigin(cell int) (int, int) {
	return (cell % atlasColumns) * f.glyphW, (cell / atlasColumns) * f.glyphH
}

// Atlas returns the rasterised glyph sheet.
func (f *Font) Atlas() *image.RGBA {
	return f.atlas
}

// GlyphSize returns the cell size in pixels at scale 1.
func (f *Font) GlyphSize() (int, int) {
	return f.glyphW, f.glyphH
}

// GlyphUV returns the atlas coordinates of r. Runes outside the atlas map
// to '?'.
func (f *Font) GlyphUV(r rune) (u0, v0, u1, v1 float32) {
	if r < firstGlyph || r > lastGlyph {
		r = '?'
	}
	x, y := f.cellOrigin(int(r - firstGlyph))
	w := float32(f.atlas.Bounds().Dx())
	h := float32(f.atlas.Bounds().Dy())
	return float32(x) / w, float32(y) / h, float32(x+f.glyphW) / w, float32(y+f.glyphH) / h
}

// WhiteUV returns a texel that is fully opaque white.
func (f *Font) WhiteUV() (float32, float32) {
	return f.white[0], f.white[1]
}

// MeasureText returns the width and height of text at the given scale.
// Multi-line text is as wide as its longest line.
func (f *Font) MeasureText(text string, scale float32) (float32, float32) {
	lines, longest, current := 1, 0, 0
	for _, r := range text {
		if r == '\n' {
			lines++
			current = 0
			continue
		}
		current++
		longest = max(longest, current)
	}
	return float32(longest*f.glyphW) * scale, float32(lines*f.glyphH) * scale
}
