package ui2d

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Predefined colors for UI theming.
var (
	ColorTransparent = Color{0, 0, 0, 0}
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}

	// Dark theme
	ColorPanelBg      = Color{0.16, 0.16, 0.16, 1}
	ColorPanelBorder  = Color{0.3, 0.3, 0.3, 1}
	ColorButtonNormal = Color{0.24, 0.24, 0.24, 1}
	ColorButtonHover  = Color{0.32, 0.32, 0.32, 1}
	ColorButtonActive = Color{0.18, 0.35, 0.55, 1}
	ColorPopupBg      = Color{0.12, 0.12, 0.12, 0.98}
	ColorText         = Color{0.9, 0.9, 0.9, 1}
	ColorTextDim      = Color{0.55, 0.55, 0.55, 1}
	ColorHighlight    = Color{0.2, 0.6, 0.9, 1}
)

// RGB creates a color from 8-bit RGB values with full alpha.
func RGB(r, g, b uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: 1.0,
	}
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// Darken returns a darker version of the color.
func (c Color) Darken(factor float32) Color {
	return Color{
		R: c.R * (1 - factor),
		G: c.G * (1 - factor),
		B: c.B * (1 - factor),
		A: c.A,
	}
}
