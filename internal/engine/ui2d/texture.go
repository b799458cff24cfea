package ui2d

import "image"

// TextureID names a texture owned by the UI.
type TextureID uint32

// FontTexture is the glyph atlas.
const FontTexture TextureID = 1

// ImageDelta replaces a texture or a region of it.
type ImageDelta struct {
	Image *image.RGBA
	// Pos is the region's top-left corner for partial updates; nil
	// replaces the whole texture.
	Pos *image.Point
}

// TextureUpdate is one pending upload.
type TextureUpdate struct {
	ID    TextureID
	Delta ImageDelta
}

// TexturesDelta lists the uploads and frees requested by a frame.
type TexturesDelta struct {
	Set  []TextureUpdate
	Free []TextureID
}

// Empty reports whether there is nothing to apply.
func (d TexturesDelta) Empty() bool {
	return len(d.Set) == 0 && len(d.Free) == 0
}
