package ui2d

import (
	"errors"
	"fmt"
	"image"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/cubeview/internal/engine/gpu"
	"github.com/Faultbox/cubeview/internal/engine/shader"
	"github.com/Faultbox/cubeview/internal/logger"
	"github.com/Faultbox/cubeview/pkg/math"
)

// ErrUnknownTexture is returned for updates or frees of a texture the
// painter does not hold.
var ErrUnknownTexture = errors.New("ui2d: unknown texture")

const (
	uiVertexShader = `
		#version 410 core

		layout (location = 0) in vec2 aPos;
		layout (location = 1) in vec2 aTexCoord;
		layout (location = 2) in vec4 aColor;

		uniform mat4 uProjection;

		out vec2 vTexCoord;
		out vec4 vColor;

		void main() {
			gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
			vTexCoord = aTexCoord;
			vColor = aColor;
		}
	`

	uiFragmentShader = `
		#version 410 core

		uniform sampler2D uTexture;

		in vec2 vTexCoord;
		in vec4 vColor;
		out vec4 FragColor;

		void main() {
			FragColor = vColor * texture(uTexture, vTexCoord);
		}
	`
)

type paintTexture struct {
	tex           gpu.Texture
	width, height int
}

// PaintStats summarises one Paint call.
type PaintStats struct {
	Meshes    int
	Callbacks int
	// Skipped counts meshes whose texture was not yet uploaded.
	Skipped int
}

// Painter draws tessellated UI primitives with the GPU.
type Painter struct {
	ctx *gpu.Context

	program       gpu.Program
	locProjection gpu.Uniform
	locTexture    gpu.Uniform

	vao gpu.VertexArray
	vbo gpu.Buffer
	ebo gpu.Buffer

	textures map[TextureID]*paintTexture
}

// NewPainter creates the UI program and buffers.
func NewPainter(ctx *gpu.Context) (*Painter, error) {
	fns := ctx.GL()

	program, err := shader.CompileProgram(fns, uiVertexShader, uiFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("ui shader: %w", err)
	}

	p := &Painter{
		ctx:           ctx,
		program:       program,
		locProjection: shader.Uniform(fns, program, "uProjection"),
		locTexture:    shader.Uniform(fns, program, "uTexture"),
		textures:      make(map[TextureID]*paintTexture),
	}

	p.vao = fns.CreateVertexArray()
	p.vbo = fns.CreateBuffer()
	p.ebo = fns.CreateBuffer()

	fns.BindVertexArray(p.vao)
	fns.BindBuffer(gpu.ArrayBuffer, p.vbo)
	fns.BindBuffer(gpu.ElementArrayBuffer, p.ebo)

	// Vertex format: pos(2) + texcoord(2) + color(4) = 8 floats, 32 bytes
	stride := int32(FloatsPerVertex * 4)
	fns.VertexAttribPointer(0, 2, stride, 0)
	fns.EnableVertexAttribArray(0)
	fns.VertexAttribPointer(1, 2, stride, 2*4)
	fns.EnableVertexAttribArray(1)
	fns.VertexAttribPointer(2, 4, stride, 4*4)
	fns.EnableVertexAttribArray(2)

	fns.BindVertexArray(0)

	return p, nil
}

// Paint draws primitives in order onto a screen of the given size.
// Callbacks run with scissoring disabled and the painter's state is
// re-established after each one.
func (p *Painter) Paint(primitives []ClippedPrimitive, screenWidth, screenHeight int) PaintStats {
	var stats PaintStats
	if screenWidth <= 0 || screenHeight <= 0 {
		return stats
	}

	p.ctx.CheckThread()
	fns := p.ctx.GL()
	screen := math.Rect{W: float32(screenWidth), H: float32(screenHeight)}

	p.prepare(screenWidth, screenHeight)

	for _, cp := range primitives {
		clip := cp.Clip.Intersect(screen)
		if clip.Degenerate() {
			continue
		}

		switch prim := cp.Primitive.(type) {
		case *Mesh:
			t, ok := p.textures[prim.Texture]
			if !ok {
				stats.Skipped++
				continue
			}
			p.scissor(clip, screenHeight)
			p.drawMesh(prim, t)
			stats.Meshes++

		case CallbackShape:
			fns.Disable(gpu.ScissorTest)
			prim.Callback(CallbackInfo{
				Rect:         prim.Rect,
				ScreenWidth:  screenWidth,
				ScreenHeight: screenHeight,
			})
			stats.Callbacks++
			p.prepare(screenWidth, screenHeight)
		}
	}

	fns.Disable(gpu.ScissorTest)
	fns.Disable(gpu.Blend)
	fns.BindVertexArray(0)
	fns.UseProgram(0)

	if stats.Skipped > 0 {
		logger.Debug("ui meshes skipped, texture not uploaded", zap.Int("count", stats.Skipped))
	}
	return stats
}

// prepare sets up state for 2D rendering.
func (p *Painter) prepare(screenWidth, screenHeight int) {
	fns := p.ctx.GL()

	fns.Viewport(0, 0, int32(screenWidth), int32(screenHeight))
	fns.Enable(gpu.Blend)
	fns.BlendFunc(gpu.SrcAlpha, gpu.OneMinusSrcAlpha)
	fns.Disable(gpu.DepthTest)
	fns.Disable(gpu.CullFace)
	fns.Enable(gpu.ScissorTest)

	proj := math.Ortho(0, float32(screenWidth), float32(screenHeight), 0, -1, 1)
	fns.UseProgram(p.program)
	fns.UniformMatrix4fv(p.locProjection, (*[16]float32)(&proj))
	fns.Uniform1i(p.locTexture, 0)
	fns.ActiveTexture(gpu.Texture0)
}

// scissor converts a top-left clip rect to GL's bottom-left scissor box.
func (p *Painter) scissor(clip math.Rect, screenHeight int) {
	x0 := math32.Floor(clip.X)
	y0 := math32.Floor(clip.Y)
	x1 := math32.Ceil(clip.MaxX())
	y1 := math32.Ceil(clip.MaxY())
	p.ctx.GL().Scissor(int32(x0), int32(screenHeight)-int32(y1), int32(x1-x0), int32(y1-y0))
}

func (p *Painter) drawMesh(m *Mesh, t *paintTexture) {
	fns := p.ctx.GL()

	fns.BindTexture(gpu.Texture2D, t.tex)
	fns.BindVertexArray(p.vao)
	fns.BindBuffer(gpu.ArrayBuffer, p.vbo)
	fns.BufferDataFloat32(gpu.ArrayBuffer, m.Floats(), gpu.StreamDraw)
	fns.BufferDataUint32(gpu.ElementArrayBuffer, m.Indices, gpu.StreamDraw)
	fns.DrawElements(gpu.Triangles, int32(len(m.Indices)), gpu.UnsignedInt, 0)
}

// HasTexture reports whether id is resident.
func (p *Painter) HasTexture(id TextureID) bool {
	_, ok := p.textures[id]
	return ok
}

// SetTexture uploads a whole texture or a region of an existing one.
func (p *Painter) SetTexture(id TextureID, delta ImageDelta) error {
	if delta.Image == nil {
		return fmt.Errorf("ui2d: texture %d: no image data", id)
	}
	fns := p.ctx.GL()
	b := delta.Image.Bounds()
	pixels := tightPixels(delta.Image)

	if delta.Pos != nil {
		t, ok := p.textures[id]
		if !ok {
			return fmt.Errorf("partial update of texture %d: %w", id, ErrUnknownTexture)
		}
		region := image.Rect(delta.Pos.X, delta.Pos.Y, delta.Pos.X+b.Dx(), delta.Pos.Y+b.Dy())
		if !region.In(image.Rect(0, 0, t.width, t.height)) {
			return fmt.Errorf("ui2d: texture %d: region %v outside %dx%d", id, region, t.width, t.height)
		}
		fns.BindTexture(gpu.Texture2D, t.tex)
		fns.TexSubImage2D(gpu.Texture2D, int32(region.Min.X), int32(region.Min.Y),
			int32(b.Dx()), int32(b.Dy()), gpu.RGBA, pixels)
		fns.BindTexture(gpu.Texture2D, 0)
		return nil
	}

	t, ok := p.textures[id]
	if !ok {
		t = &paintTexture{tex: fns.CreateTexture()}
		p.textures[id] = t
	}
	t.width, t.height = b.Dx(), b.Dy()

	fns.BindTexture(gpu.Texture2D, t.tex)
	fns.TexParameteri(gpu.Texture2D, gpu.TextureMinFilter, int32(gpu.Nearest))
	fns.TexParameteri(gpu.Texture2D, gpu.TextureMagFilter, int32(gpu.Nearest))
	fns.TexParameteri(gpu.Texture2D, gpu.TextureWrapS, int32(gpu.ClampToEdge))
	fns.TexParameteri(gpu.Texture2D, gpu.TextureWrapT, int32(gpu.ClampToEdge))
	fns.TexImage2D(gpu.Texture2D, int32(t.width), int32(t.height), gpu.RGBA, pixels)
	fns.BindTexture(gpu.Texture2D, 0)
	return nil
}

// FreeTexture deletes a texture.
func (p *Painter) FreeTexture(id TextureID) error {
	t, ok := p.textures[id]
	if !ok {
		return fmt.Errorf("free texture %d: %w", id, ErrUnknownTexture)
	}
	p.ctx.GL().DeleteTexture(t.tex)
	delete(p.textures, id)
	return nil
}

// ApplyTextures performs every upload then every free in delta. Each
// failure is returned; the others still run.
func (p *Painter) ApplyTextures(delta TexturesDelta) []error {
	var errs []error
	for _, u := range delta.Set {
		if err := p.SetTexture(u.ID, u.Delta); err != nil {
			errs = append(errs, err)
		}
	}
	for _, id := range delta.Free {
		if err := p.FreeTexture(id); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Close releases painter resources.
func (p *Painter) Close() {
	fns := p.ctx.GL()
	for id, t := range p.textures {
		fns.DeleteTexture(t.tex)
		delete(p.textures, id)
	}
	if p.vao != 0 {
		fns.DeleteVertexArray(p.vao)
		p.vao = 0
	}
	if p.vbo != 0 {
		fns.DeleteBuffer(p.vbo)
		p.vbo = 0
	}
	if p.ebo != 0 {
		fns.DeleteBuffer(p.ebo)
		p.ebo = 0
	}
	if p.program != 0 {
		fns.DeleteProgram(p.program)
		p.program = 0
	}
}

// tightPixels returns img's pixels without row padding.
func tightPixels(img *image.RGBA) []byte {
	b := img.Bounds()
	rowBytes := b.Dx() * 4
	if img.Stride == rowBytes && len(img.Pix) == rowBytes*b.Dy() {
		return img.Pix
	}
	out := make([]byte, 0, rowBytes*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		start := img.PixOffset(b.Min.X, y)
		out = append(out, img.Pix[start:start+rowBytes]...)
	}
	return out
}
