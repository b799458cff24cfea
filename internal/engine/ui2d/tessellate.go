package ui2d

import "github.com/Faultbox/cubeview/pkg/math"

// Vertex is a 2D UI vertex: position in pixels, atlas UV, colour.
type Vertex struct {
	X, Y       float32
	U, V       float32
	R, G, B, A float32
}

// FloatsPerVertex is the size of Vertex in float32s.
const FloatsPerVertex = 8

// Mesh is a batch of textured triangles.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Texture  TextureID
}

// Primitive is what the painter draws: either a *Mesh or a CallbackShape.
type Primitive interface {
	isPrimitive()
}

func (*Mesh) isPrimitive()         {}
func (CallbackShape) isPrimitive() {}

// ClippedPrimitive pairs a primitive with its clip rectangle.
type ClippedPrimitive struct {
	Clip      math.Rect
	Primitive Primitive
}

// Tessellate converts shapes into primitives. Consecutive shapes with the
// same clip rectangle share one mesh; callbacks split batches so paint
// order is preserved.
func Tessellate(shapes []ClippedShape, f *Font) []ClippedPrimitive {
	var out []ClippedPrimitive
	var mesh *Mesh
	var meshClip math.Rect

	flush := func() {
		if mesh != nil && len(mesh.Indices) > 0 {
			out = append(out, ClippedPrimitive{Clip: meshClip, Primitive: mesh})
		}
		mesh = nil
	}

	for _, cs := range shapes {
		if cs.Clip.Degenerate() {
			continue
		}

		if cb, ok := cs.Shape.(CallbackShape); ok {
			flush()
			out = append(out, ClippedPrimitive{Clip: cs.Clip, Primitive: cb})
			continue
		}

		if mesh == nil || meshClip != cs.Clip {
			flush()
			mesh = &Mesh{Texture: FontTexture}
			meshClip = cs.Clip
		}

		switch s := cs.Shape.(type) {
		case RectShape:
			if s.Rect.Degenerate() || s.Color.A <= 0 {
				continue
			}
			u, v := f.WhiteUV()
			mesh.addQuad(s.Rect, u, v, u, v, s.Color)
		case TextShape:
			tessellateText(mesh, s, f)
		}
	}
	flush()

	return out
}

func tessellateText(m *Mesh, s TextShape, f *Font) {
	scale := s.Scale
	if scale <= 0 {
		scale = 1
	}
	gw, gh := f.GlyphSize()
	charW := float32(gw) * scale
	charH := float32(gh) * scale

	x, y := s.X, s.Y
	for _, r := range FoldText(s.Text) {
		if r == '\n' {
			x = s.X
			y += charH
			continue
		}
		if r != ' ' {
			u0, v0, u1, v1 := f.GlyphUV(r)
			m.addQuad(math.Rect{X: x, Y: y, W: charW, H: charH}, u0, v0, u1, v1, s.Color)
		}
		x += charW
	}
}

func (m *Mesh) addQuad(r math.Rect, u0, v0, u1, v1 float32, c Color) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		Vertex{r.X, r.Y, u0, v0, c.R, c.G, c.B, c.A},
		Vertex{r.MaxX(), r.Y, u1, v0, c.R, c.G, c.B, c.A},
		Vertex{r.MaxX(), r.MaxY(), u1, v1, c.R, c.G, c.B, c.A},
		Vertex{r.X, r.MaxY(), u0, v1, c.R, c.G, c.B, c.A},
	)
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}

// Floats flattens the vertices for upload.
func (m *Mesh) Floats() []float32 {
	out := make([]float32, 0, len(m.Vertices)*FloatsPerVertex)
	for _, v := range m.Vertices {
		out = append(out, v.X, v.Y, v.U, v.V, v.R, v.G, v.B, v.A)
	}
	return out
}
