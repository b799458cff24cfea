// Package gputest provides an in-memory gpu.Functions that records state
// and calls, so GPU code can be tested without a display or driver.
package gputest

import (
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/Faultbox/cubeview/internal/engine/gpu"
)

// ShaderObject is a fake shader.
type ShaderObject struct {
	Kind     gpu.Enum
	Source   string
	Compiled bool
	Log      string
}

// ProgramObject is a fake program.
type ProgramObject struct {
	Attached []gpu.Shader
	Linked   bool
	Log      string
	uniforms map[string]gpu.Uniform
	matrices map[gpu.Uniform][16]float32
	ints     map[gpu.Uniform]int32
}

// Attrib is a recorded vertex attribute description.
type Attrib struct {
	Size    int32
	Stride  int32
	Offset  int
	Enabled bool
}

// VertexArrayObject is a fake VAO.
type VertexArrayObject struct {
	Attribs       map[uint32]Attrib
	ArrayBuffer   gpu.Buffer
	ElementBuffer gpu.Buffer
}

// BufferObject is a fake buffer.
type BufferObject struct {
	Floats []float32
	Uints  []uint32
	Usage  gpu.Enum
}

// TextureObject is a fake texture.
type TextureObject struct {
	Width, Height int32
	Format        gpu.Enum
	Pixels        []byte
	Params        map[gpu.Enum]int32
}

// DrawCall is a snapshot of state at a DrawElements call.
type DrawCall struct {
	Mode        gpu.Enum
	Count       int32
	IndexType   gpu.Enum
	Offset      int
	Program     gpu.Program
	VertexArray gpu.VertexArray
	Texture     gpu.Texture
	Viewport    [4]int32
	DepthTest   bool
	CullFace    bool
	Blend       bool
	Scissor     bool
}

// ClearCall is a snapshot of state at a Clear call.
type ClearCall struct {
	Mask       gpu.Enum
	Color      [4]float32
	Viewport   [4]int32
	Scissor    bool
	ScissorBox [4]int32
}

// GL implements gpu.Functions in memory.
type GL struct {
	// CompileError returns a non-empty info log to make a compile fail.
	// The default fails sources without a main function.
	CompileError func(kind gpu.Enum, source string) string
	// LinkError returns a non-empty info log to make a link fail.
	LinkError func(program gpu.Program) string
	// OnDraw runs after a draw is recorded.
	OnDraw func(DrawCall)
	// Strings answers GetString.
	Strings map[gpu.Enum]string

	Draws         []DrawCall
	Clears        []ClearCall
	ViewportCalls [][4]int32

	next         uint32
	shaders      map[gpu.Shader]*ShaderObject
	programs     map[gpu.Program]*ProgramObject
	buffers      map[gpu.Buffer]*BufferObject
	vertexArrays map[gpu.VertexArray]*VertexArrayObject
	textures     map[gpu.Texture]*TextureObject

	enabled      map[gpu.Enum]bool
	viewport     [4]int32
	scissor      [4]int32
	clearColor   [4]float32
	depthFunc    gpu.Enum
	cullFace     gpu.Enum
	frontFace    gpu.Enum
	blend        [2]gpu.Enum
	program      gpu.Program
	vertexArray  gpu.VertexArray
	arrayBuffer  gpu.Buffer
	boundTexture gpu.Texture
	activeUnit   gpu.Enum
}

// New returns a fake with an empty state and the given initial viewport.
func New(width, height int32) *GL {
	return &GL{
		CompileError: defaultCompileError,
		LinkError:    func(gpu.Program) string { return "" },
		Strings: map[gpu.Enum]string{
			gpu.Vendor:                 "gputest",
			gpu.Renderer:               "gputest recorder",
			gpu.Version:                "4.1 gputest",
			gpu.ShadingLanguageVersion: "4.10",
		},
		shaders:      make(map[gpu.Shader]*ShaderObject),
		programs:     make(map[gpu.Program]*ProgramObject),
		buffers:      make(map[gpu.Buffer]*BufferObject),
		vertexArrays: make(map[gpu.VertexArray]*VertexArrayObject),
		textures:     make(map[gpu.Texture]*TextureObject),
		enabled:      make(map[gpu.Enum]bool),
		viewport:     [4]int32{0, 0, width, height},
		activeUnit:   gpu.Texture0,
	}
}

// NewContext locks the test goroutine to its thread for the duration of
// the test and returns a context over a fresh fake.
func NewContext(tb testing.TB, width, height int32) (*gpu.Context, *GL) {
	tb.Helper()
	runtime.LockOSThread()
	tb.Cleanup(runtime.UnlockOSThread)

	fake := New(width, height)
	return gpu.NewContext(fake), fake
}

func defaultCompileError(_ gpu.Enum, source string) string {
	if !strings.Contains(source, "void main") {
		return "0:1(1): error: function `main' is not defined"
	}
	return ""
}

func (g *GL) id() uint32 {
	g.next++
	return g.next
}

// LiveShaders returns the number of undeleted shaders.
func (g *GL) LiveShaders() int { return len(g.shaders) }

// LivePrograms returns the number of undeleted programs.
func (g *GL) LivePrograms() int { return len(g.programs) }

// LiveBuffers returns the number of undeleted buffers.
func (g *GL) LiveBuffers() int { return len(g.buffers) }

// LiveVertexArrays returns the number of undeleted vertex arrays.
func (g *GL) LiveVertexArrays() int { return len(g.vertexArrays) }

// LiveTextures returns the number of undeleted textures.
func (g *GL) LiveTextures() int { return len(g.textures) }

// LiveObjects returns the number of all undeleted objects.
func (g *GL) LiveObjects() int {
	return g.LiveShaders() + g.LivePrograms() + g.LiveBuffers() + g.LiveVertexArrays() + g.LiveTextures()
}

// Program returns a program object, or nil.
func (g *GL) Program(p gpu.Program) *ProgramObject { return g.programs[p] }

// Buffer returns a buffer object, or nil.
func (g *GL) Buffer(b gpu.Buffer) *BufferObject { return g.buffers[b] }

// VertexArray returns a vertex array object, or nil.
func (g *GL) VertexArray(va gpu.VertexArray) *VertexArrayObject { return g.vertexArrays[va] }

// TextureObject returns a texture object, or nil.
func (g *GL) TextureObject(t gpu.Texture) *TextureObject { return g.textures[t] }

// Enabled reports a capability.
func (g *GL) Enabled(capability gpu.Enum) bool { return g.enabled[capability] }

// DepthFuncValue returns the last DepthFunc argument.
func (g *GL) DepthFuncValue() gpu.Enum { return g.depthFunc }

// CullFaceValue returns the last CullFace argument.
func (g *GL) CullFaceValue() gpu.Enum { return g.cullFace }

// FrontFaceValue returns the last FrontFace argument.
func (g *GL) FrontFaceValue() gpu.Enum { return g.frontFace }

// CurrentProgram returns the program in use.
func (g *GL) CurrentProgram() gpu.Program { return g.program }

// UniformMatrix returns the last matrix uploaded to a named uniform.
func (g *GL) UniformMatrix(p gpu.Program, name string) ([16]float32, bool) {
	obj := g.programs[p]
	if obj == nil {
		return [16]float32{}, false
	}
	loc, ok := obj.uniforms[name]
	if !ok {
		return [16]float32{}, false
	}
	m, ok := obj.matrices[loc]
	return m, ok
}

// ResetCalls forgets recorded draws, clears and viewport calls.
func (g *GL) ResetCalls() {
	g.Draws = nil
	g.Clears = nil
	g.ViewportCalls = nil
}

func (g *GL) GetString(name gpu.Enum) string { return g.Strings[name] }

func (g *GL) Enable(capability gpu.Enum)            { g.enabled[capability] = true }
func (g *GL) Disable(capability gpu.Enum)           { g.enabled[capability] = false }
func (g *GL) DepthFunc(fn gpu.Enum)                 { g.depthFunc = fn }
func (g *GL) CullFace(mode gpu.Enum)                { g.cullFace = mode }
func (g *GL) FrontFace(mode gpu.Enum)               { g.frontFace = mode }
func (g *GL) BlendFunc(src, dst gpu.Enum)           { g.blend = [2]gpu.Enum{src, dst} }
func (g *GL) Scissor(x, y, width, height int32)     { g.scissor = [4]int32{x, y, width, height} }
func (g *GL) ClearColor(r, gr, b, a float32)        { g.clearColor = [4]float32{r, gr, b, a} }
func (g *GL) GetViewport() [4]int32                 { return g.viewport }
func (g *GL) ActiveTexture(unit gpu.Enum)           { g.activeUnit = unit }
func (g *GL) BindTexture(_ gpu.Enum, t gpu.Texture) { g.boundTexture = t }

func (g *GL) Viewport(x, y, width, height int32) {
	g.viewport = [4]int32{x, y, width, height}
	g.ViewportCalls = append(g.ViewportCalls, g.viewport)
}

func (g *GL) Clear(mask gpu.Enum) {
	g.Clears = append(g.Clears, ClearCall{
		Mask:       mask,
		Color:      g.clearColor,
		Viewport:   g.viewport,
		Scissor:    g.enabled[gpu.ScissorTest],
		ScissorBox: g.scissor,
	})
}

func (g *GL) CreateShader(kind gpu.Enum) gpu.Shader {
	s := gpu.Shader(g.id())
	g.shaders[s] = &ShaderObject{Kind: kind}
	return s
}

func (g *GL) ShaderSource(shader gpu.Shader, source string) {
	if obj := g.shaders[shader]; obj != nil {
		obj.Source = source
	}
}

func (g *GL) CompileShader(shader gpu.Shader) {
	obj := g.shaders[shader]
	if obj == nil {
		return
	}
	obj.Log = g.CompileError(obj.Kind, obj.Source)
	obj.Compiled = obj.Log == ""
}

func (g *GL) GetShaderCompileStatus(shader gpu.Shader) bool {
	obj := g.shaders[shader]
	return obj != nil && obj.Compiled
}

func (g *GL) GetShaderInfoLog(shader gpu.Shader) string {
	if obj := g.shaders[shader]; obj != nil {
		return obj.Log
	}
	return ""
}

func (g *GL) DeleteShader(shader gpu.Shader) { delete(g.shaders, shader) }

func (g *GL) CreateProgram() gpu.Program {
	p := gpu.Program(g.id())
	g.programs[p] = &ProgramObject{
		uniforms: make(map[string]gpu.Uniform),
		matrices: make(map[gpu.Uniform][16]float32),
		ints:     make(map[gpu.Uniform]int32),
	}
	return p
}

func (g *GL) AttachShader(program gpu.Program, shader gpu.Shader) {
	if obj := g.programs[program]; obj != nil {
		obj.Attached = append(obj.Attached, shader)
	}
}

func (g *GL) LinkProgram(program gpu.Program) {
	obj := g.programs[program]
	if obj == nil {
		return
	}
	obj.Log = g.LinkError(program)
	if obj.Log == "" {
		for _, s := range obj.Attached {
			if so := g.shaders[s]; so == nil || !so.Compiled {
				obj.Log = "error: attached shader is not compiled"
				break
			}
		}
	}
	obj.Linked = obj.Log == ""
}

func (g *GL) GetProgramLinkStatus(program gpu.Program) bool {
	obj := g.programs[program]
	return obj != nil && obj.Linked
}

func (g *GL) GetProgramInfoLog(program gpu.Program) string {
	if obj := g.programs[program]; obj != nil {
		return obj.Log
	}
	return ""
}

func (g *GL) DeleteProgram(program gpu.Program) {
	delete(g.programs, program)
	if g.program == program {
		g.program = 0
	}
}

func (g *GL) UseProgram(program gpu.Program) { g.program = program }

func (g *GL) GetUniformLocation(program gpu.Program, name string) gpu.Uniform {
	obj := g.programs[program]
	if obj == nil || !obj.Linked {
		return -1
	}
	if loc, ok := obj.uniforms[name]; ok {
		return loc
	}
	loc := gpu.Uniform(len(obj.uniforms))
	obj.uniforms[name] = loc
	return loc
}

func (g *GL) UniformMatrix4fv(location gpu.Uniform, m *[16]float32) {
	if obj := g.programs[g.program]; obj != nil && location >= 0 {
		obj.matrices[location] = *m
	}
}

func (g *GL) Uniform1i(location gpu.Uniform, v int32) {
	if obj := g.programs[g.program]; obj != nil && location >= 0 {
		obj.ints[location] = v
	}
}

func (g *GL) CreateVertexArray() gpu.VertexArray {
	va := gpu.VertexArray(g.id())
	g.vertexArrays[va] = &VertexArrayObject{Attribs: make(map[uint32]Attrib)}
	return va
}

func (g *GL) BindVertexArray(va gpu.VertexArray) { g.vertexArray = va }

func (g *GL) DeleteVertexArray(va gpu.VertexArray) {
	delete(g.vertexArrays, va)
	if g.vertexArray == va {
		g.vertexArray = 0
	}
}

func (g *GL) CreateBuffer() gpu.Buffer {
	b := gpu.Buffer(g.id())
	g.buffers[b] = &BufferObject{}
	return b
}

func (g *GL) BindBuffer(target gpu.Enum, buffer gpu.Buffer) {
	switch target {
	case gpu.ArrayBuffer:
		g.arrayBuffer = buffer
		if vao := g.vertexArrays[g.vertexArray]; vao != nil {
			vao.ArrayBuffer = buffer
		}
	case gpu.ElementArrayBuffer:
		// Element bindings are VAO state.
		if vao := g.vertexArrays[g.vertexArray]; vao != nil {
			vao.ElementBuffer = buffer
		}
	}
}

func (g *GL) bound(target gpu.Enum) *BufferObject {
	if target == gpu.ArrayBuffer {
		return g.buffers[g.arrayBuffer]
	}
	if vao := g.vertexArrays[g.vertexArray]; vao != nil {
		return g.buffers[vao.ElementBuffer]
	}
	return nil
}

func (g *GL) BufferDataFloat32(target gpu.Enum, data []float32, usage gpu.Enum) {
	if obj := g.bound(target); obj != nil {
		obj.Floats = slices.Clone(data)
		obj.Usage = usage
	}
}

func (g *GL) BufferDataUint32(target gpu.Enum, data []uint32, usage gpu.Enum) {
	if obj := g.bound(target); obj != nil {
		obj.Uints = slices.Clone(data)
		obj.Usage = usage
	}
}

func (g *GL) DeleteBuffer(buffer gpu.Buffer) { delete(g.buffers, buffer) }

func (g *GL) VertexAttribPointer(index uint32, size int32, stride int32, offset int) {
	if vao := g.vertexArrays[g.vertexArray]; vao != nil {
		a := vao.Attribs[index]
		a.Size, a.Stride, a.Offset = size, stride, offset
		vao.Attribs[index] = a
	}
}

func (g *GL) EnableVertexAttribArray(index uint32) {
	if vao := g.vertexArrays[g.vertexArray]; vao != nil {
		a := vao.Attribs[index]
		a.Enabled = true
		vao.Attribs[index] = a
	}
}

func (g *GL) DrawElements(mode gpu.Enum, count int32, indexType gpu.Enum, offset int) {
	call := DrawCall{
		Mode:        mode,
		Count:       count,
		IndexType:   indexType,
		Offset:      offset,
		Program:     g.program,
		VertexArray: g.vertexArray,
		Texture:     g.boundTexture,
		Viewport:    g.viewport,
		DepthTest:   g.enabled[gpu.DepthTest],
		CullFace:    g.enabled[gpu.CullFace],
		Blend:       g.enabled[gpu.Blend],
		Scissor:     g.enabled[gpu.ScissorTest],
	}
	g.Draws = append(g.Draws, call)
	if g.OnDraw != nil {
		g.OnDraw(call)
	}
}

func (g *GL) CreateTexture() gpu.Texture {
	t := gpu.Texture(g.id())
	g.textures[t] = &TextureObject{Params: make(map[gpu.Enum]int32)}
	return t
}

func (g *GL) TexParameteri(_ gpu.Enum, pname gpu.Enum, param int32) {
	if obj := g.textures[g.boundTexture]; obj != nil {
		obj.Params[pname] = param
	}
}

func (g *GL) TexImage2D(_ gpu.Enum, width, height int32, format gpu.Enum, pixels []byte) {
	if obj := g.textures[g.boundTexture]; obj != nil {
		obj.Width, obj.Height, obj.Format = width, height, format
		obj.Pixels = slices.Clone(pixels)
	}
}

func (g *GL) TexSubImage2D(_ gpu.Enum, x, y, width, height int32, _ gpu.Enum, pixels []byte) {
	obj := g.textures[g.boundTexture]
	if obj == nil {
		return
	}
	for row := int32(0); row < height; row++ {
		dst := ((y+row)*obj.Width + x) * 4
		src := row * width * 4
		copy(obj.Pixels[dst:dst+width*4], pixels[src:src+width*4])
	}
}

func (g *GL) DeleteTexture(texture gpu.Texture) {
	delete(g.textures, texture)
	if g.boundTexture == texture {
		g.boundTexture = 0
	}
}

var _ gpu.Functions = (*GL)(nil)
