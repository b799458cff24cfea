// Package glbackend implements gpu.Functions on top of go-gl.
package glbackend

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/cubeview/internal/engine/gpu"
)

// Functions is the go-gl function table. The zero value is usable once
// Load has succeeded.
type Functions struct{}

// Load resolves the OpenGL entry points for the current context.
func Load() (*Functions, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("loading OpenGL functions: %w", err)
	}
	return &Functions{}, nil
}

func (*Functions) GetString(name gpu.Enum) string {
	p := gl.GetString(uint32(name))
	if p == nil {
		return ""
	}
	return gl.GoStr(p)
}

func (*Functions) Enable(capability gpu.Enum)  { gl.Enable(uint32(capability)) }
func (*Functions) Disable(capability gpu.Enum) { gl.Disable(uint32(capability)) }
func (*Functions) DepthFunc(fn gpu.Enum)       { gl.DepthFunc(uint32(fn)) }
func (*Functions) CullFace(mode gpu.Enum)      { gl.CullFace(uint32(mode)) }
func (*Functions) FrontFace(mode gpu.Enum)     { gl.FrontFace(uint32(mode)) }
func (*Functions) BlendFunc(src, dst gpu.Enum) { gl.BlendFunc(uint32(src), uint32(dst)) }

func (*Functions) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (*Functions) GetViewport() [4]int32 {
	var vp [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &vp[0])
	return vp
}

func (*Functions) Scissor(x, y, width, height int32) { gl.Scissor(x, y, width, height) }
func (*Functions) ClearColor(r, g, b, a float32)     { gl.ClearColor(r, g, b, a) }
func (*Functions) Clear(mask gpu.Enum)               { gl.Clear(uint32(mask)) }

func (*Functions) CreateShader(kind gpu.Enum) gpu.Shader {
	return gpu.Shader(gl.CreateShader(uint32(kind)))
}

func (*Functions) ShaderSource(shader gpu.Shader, source string) {
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(shader), 1, csource, nil)
	free()
}

func (*Functions) CompileShader(shader gpu.Shader) { gl.CompileShader(uint32(shader)) }

func (*Functions) GetShaderCompileStatus(shader gpu.Shader) bool {
	var status int32
	gl.GetShaderiv(uint32(shader), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (*Functions) GetShaderInfoLog(shader gpu.Shader) string {
	var logLen int32
	gl.GetShaderiv(uint32(shader), gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return ""
	}
	log := make([]byte, logLen)
	gl.GetShaderInfoLog(uint32(shader), logLen, nil, &log[0])
	return strings.TrimRight(string(log), "\x00")
}

func (*Functions) DeleteShader(shader gpu.Shader) { gl.DeleteShader(uint32(shader)) }

func (*Functions) CreateProgram() gpu.Program { return gpu.Program(gl.CreateProgram()) }

func (*Functions) AttachShader(program gpu.Program, shader gpu.Shader) {
	gl.AttachShader(uint32(program), uint32(shader))
}

func (*Functions) LinkProgram(program gpu.Program) { gl.LinkProgram(uint32(program)) }

func (*Functions) GetProgramLinkStatus(program gpu.Program) bool {
	var status int32
	gl.GetProgramiv(uint32(program), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (*Functions) GetProgramInfoLog(program gpu.Program) string {
	var logLen int32
	gl.GetProgramiv(uint32(program), gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return ""
	}
	log := make([]byte, logLen)
	gl.GetProgramInfoLog(uint32(program), logLen, nil, &log[0])
	return strings.TrimRight(string(log), "\x00")
}

func (*Functions) DeleteProgram(program gpu.Program) { gl.DeleteProgram(uint32(program)) }
func (*Functions) UseProgram(program gpu.Program)    { gl.UseProgram(uint32(program)) }

func (*Functions) GetUniformLocation(program gpu.Program, name string) gpu.Uniform {
	return gpu.Uniform(gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00")))
}

func (*Functions) UniformMatrix4fv(location gpu.Uniform, m *[16]float32) {
	gl.UniformMatrix4fv(int32(location), 1, false, &m[0])
}

func (*Functions) Uniform1i(location gpu.Uniform, v int32) { gl.Uniform1i(int32(location), v) }

func (*Functions) CreateVertexArray() gpu.VertexArray {
	var va uint32
	gl.GenVertexArrays(1, &va)
	return gpu.VertexArray(va)
}

func (*Functions) BindVertexArray(va gpu.VertexArray) { gl.BindVertexArray(uint32(va)) }

func (*Functions) DeleteVertexArray(va gpu.VertexArray) {
	id := uint32(va)
	gl.DeleteVertexArrays(1, &id)
}

func (*Functions) CreateBuffer() gpu.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return gpu.Buffer(b)
}

func (*Functions) BindBuffer(target gpu.Enum, buffer gpu.Buffer) {
	gl.BindBuffer(uint32(target), uint32(buffer))
}

func (*Functions) BufferDataFloat32(target gpu.Enum, data []float32, usage gpu.Enum) {
	if len(data) == 0 {
		gl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), len(data)*4, gl.Ptr(data), uint32(usage))
}

func (*Functions) BufferDataUint32(target gpu.Enum, data []uint32, usage gpu.Enum) {
	if len(data) == 0 {
		gl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), len(data)*4, gl.Ptr(data), uint32(usage))
}

func (*Functions) DeleteBuffer(buffer gpu.Buffer) {
	id := uint32(buffer)
	gl.DeleteBuffers(1, &id)
}

func (*Functions) VertexAttribPointer(index uint32, size int32, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, stride, uintptr(offset))
}

func (*Functions) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (*Functions) DrawElements(mode gpu.Enum, count int32, indexType gpu.Enum, offset int) {
	gl.DrawElementsWithOffset(uint32(mode), count, uint32(indexType), uintptr(offset))
}

func (*Functions) CreateTexture() gpu.Texture {
	var t uint32
	gl.GenTextures(1, &t)
	return gpu.Texture(t)
}

func (*Functions) BindTexture(target gpu.Enum, texture gpu.Texture) {
	gl.BindTexture(uint32(target), uint32(texture))
}

func (*Functions) ActiveTexture(unit gpu.Enum) { gl.ActiveTexture(uint32(unit)) }

func (*Functions) TexParameteri(target, pname gpu.Enum, param int32) {
	gl.TexParameteri(uint32(target), uint32(pname), param)
}

func (*Functions) TexImage2D(target gpu.Enum, width, height int32, format gpu.Enum, pixels []byte) {
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = gl.Ptr(pixels)
	}
	gl.TexImage2D(uint32(target), 0, int32(format), width, height, 0, uint32(format), gl.UNSIGNED_BYTE, ptr)
}

func (*Functions) TexSubImage2D(target gpu.Enum, x, y, width, height int32, format gpu.Enum, pixels []byte) {
	if len(pixels) == 0 {
		return
	}
	gl.TexSubImage2D(uint32(target), 0, x, y, width, height, uint32(format), gl.UNSIGNED_BYTE, gl.Ptr(pixels))
}

func (*Functions) DeleteTexture(texture gpu.Texture) {
	id := uint32(texture)
	gl.DeleteTextures(1, &id)
}

var _ gpu.Functions = (*Functions)(nil)
