package ui2d

import (
	"testing"
)

func cellHasInk(f *Font, r rune) bool {
	u0, v0, u1, v1 := f.GlyphUV(r)
	b := f.Atlas().Bounds()
	x0, y0 := int(u0*float32(b.Dx())), int(v0*float32(b.Dy()))
	x1, y1 := int(u1*float32(b.Dx())), int(v1*float32(b.Dy()))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if f.Atlas().RGBAAt(x, y).A > 0 {
				return true
			}
		}
	}
	return false
}

func TestFontAtlas(t *testing.T) {
	f := NewFont()

	w, h := f.GlyphSize()
	if w != 7 || h != 13 {
		t.Fatalf("glyph size = %dx%d, want 7x13", w, h)
	}
	if b := f.Atlas().Bounds(); b.Dx() != 16*7 || b.Dy() != 6*13 {
		t.Errorf("atlas size = %v", b)
	}

	for _, r := range "AZaz09?#" {
		if !cellHasInk(f, r) {
			t.Errorf("glyph %q has no pixels", r)
		}
	}
	if cellHasInk(f, ' ') {
		t.Error("space should be empty")
	}
}

func TestFontWhiteTexel(t *testing.T) {
	f := NewFont()
	u, v := f.WhiteUV()
	b := f.Atlas().Bounds()
	px := f.Atlas().RGBAAt(int(u*float32(b.Dx())), int(v*float32(b.Dy())))
	if px.R != 255 || px.A != 255 {
		t.Errorf("white texel = %v", px)
	}
}

func TestGlyphUVFallback(t *testing.T) {
	f := NewFont()
	qu0, qv0, _, _ := f.GlyphUV('?')
	for _, r := range []rune{0, '\t', 'é', '漢'} {
		u0, v0, _, _ := f.GlyphUV(r)
		if u0 != qu0 || v0 != qv0 {
			t.Errorf("rune %q should map to '?'", r)
		}
	}
}

func TestMeasureText(t *testing.T) {
	f := NewFont()

	tests := []struct {
		text  string
		scale float32
		wantW float32
		wantH float32
	}{
		{"", 1, 0, 13},
		{"abc", 1, 21, 13},
		{"abc", 2, 42, 26},
		{"ab\nlonger", 1, 42, 26},
	}

	for _, tt := range tests {
		w, h := f.MeasureText(tt.text, tt.scale)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("MeasureText(%q, %v) = %vx%v, want %vx%v", tt.text, tt.scale, w, h, tt.wantW, tt.wantH)
		}
	}
}
