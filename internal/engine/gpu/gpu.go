// Package gpu defines the OpenGL function table the engine draws through
// and the process-wide graphics context that owns it.
//
// Engine packages never import go-gl directly; they receive a Functions
// implementation (glbackend in production, gputest in tests) via Context.
package gpu

// Enum mirrors GLenum.
type Enum uint32

// Object handles. Zero is never a valid object.
type (
	Shader      uint32
	Program     uint32
	Buffer      uint32
	VertexArray uint32
	Texture     uint32
	Uniform     int32
)

// OpenGL enum values used by the engine.
const (
	Vendor                 Enum = 0x1F00
	Renderer               Enum = 0x1F01
	Version                Enum = 0x1F02
	ShadingLanguageVersion Enum = 0x8B8C

	DepthTest   Enum = 0x0B71
	CullFace    Enum = 0x0B44
	Blend       Enum = 0x0BE2
	ScissorTest Enum = 0x0C11

	Less Enum = 0x0201
	Back Enum = 0x0405
	CCW  Enum = 0x0901

	One              Enum = 1
	SrcAlpha         Enum = 0x0302
	OneMinusSrcAlpha Enum = 0x0303

	ColorBufferBit Enum = 0x4000
	DepthBufferBit Enum = 0x0100

	VertexShader   Enum = 0x8B31
	FragmentShader Enum = 0x8B30

	ArrayBuffer        Enum = 0x8892
	ElementArrayBuffer Enum = 0x8893
	StaticDraw         Enum = 0x88E4
	StreamDraw         Enum = 0x88E0

	Triangles        Enum = 0x0004
	UnsignedByte     Enum = 0x1401
	UnsignedInt      Enum = 0x1405
	Float            Enum = 0x1406
	Texture2D        Enum = 0x0DE1
	Texture0         Enum = 0x84C0
	RGBA             Enum = 0x1908
	TextureMinFilter Enum = 0x2801
	TextureMagFilter Enum = 0x2800
	TextureWrapS     Enum = 0x2802
	TextureWrapT     Enum = 0x2803
	Linear           Enum = 0x2601
	Nearest          Enum = 0x2600
	ClampToEdge      Enum = 0x812F
)

// Functions is the subset of OpenGL 4.1 core the engine uses. All methods
// must be called on the thread where the owning context is current.
type Functions interface {
	GetString(name Enum) string

	Enable(capability Enum)
	Disable(capability Enum)
	DepthFunc(fn Enum)
	CullFace(mode Enum)
	FrontFace(mode Enum)
	BlendFunc(src, dst Enum)

	Viewport(x, y, width, height int32)
	// GetViewport returns the current viewport as x, y, width, height.
	GetViewport() [4]int32
	Scissor(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)

	CreateShader(kind Enum) Shader
	ShaderSource(shader Shader, source string)
	CompileShader(shader Shader)
	GetShaderCompileStatus(shader Shader) bool
	GetShaderInfoLog(shader Shader) string
	DeleteShader(shader Shader)

	CreateProgram() Program
	AttachShader(program Program, shader Shader)
	LinkProgram(program Program)
	GetProgramLinkStatus(program Program) bool
	GetProgramInfoLog(program Program) string
	DeleteProgram(program Program)
	UseProgram(program Program)
	GetUniformLocation(program Program, name string) Uniform
	UniformMatrix4fv(location Uniform, m *[16]float32)
	Uniform1i(location Uniform, v int32)

	CreateVertexArray() VertexArray
	BindVertexArray(va VertexArray)
	DeleteVertexArray(va VertexArray)
	CreateBuffer() Buffer
	BindBuffer(target Enum, buffer Buffer)
	BufferDataFloat32(target Enum, data []float32, usage Enum)
	BufferDataUint32(target Enum, data []uint32, usage Enum)
	DeleteBuffer(buffer Buffer)
	// VertexAttribPointer describes a float attribute; stride and offset
	// are in bytes.
	VertexAttribPointer(index uint32, size int32, stride int32, offset int)
	EnableVertexAttribArray(index uint32)
	DrawElements(mode Enum, count int32, indexType Enum, offset int)

	CreateTexture() Texture
	BindTexture(target Enum, texture Texture)
	ActiveTexture(unit Enum)
	TexParameteri(target, pname Enum, param int32)
	TexImage2D(target Enum, width, height int32, format Enum, pixels []byte)
	TexSubImage2D(target Enum, x, y, width, height int32, format Enum, pixels []byte)
	DeleteTexture(texture Texture)
}
