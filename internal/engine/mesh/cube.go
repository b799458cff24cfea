// Package mesh holds GPU-resident meshes drawn by the renderer.
package mesh

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeview/internal/engine/gpu"
	"github.com/Faultbox/cubeview/internal/engine/mesh/shaders"
	"github.com/Faultbox/cubeview/internal/engine/shader"
	"github.com/Faultbox/cubeview/internal/logger"
	"github.com/Faultbox/cubeview/pkg/math"
)

// Vertex layout: position (3), normal (3), colour (3).
const (
	floatsPerVertex = 9
	vertexStride    = floatsPerVertex * 4

	attribPosition = 0
	attribNormal   = 1
	attribColor    = 2
)

// Face colours.
var (
	ColorFront  = [3]float32{1, 0, 0}
	ColorBack   = [3]float32{0, 1, 0}
	ColorTop    = [3]float32{0, 0, 1}
	ColorBottom = [3]float32{1, 1, 0}
	ColorRight  = [3]float32{1, 0, 1}
	ColorLeft   = [3]float32{0, 1, 1}
)

type face struct {
	normal  math.Vec3
	color   [3]float32
	corners [4]math.Vec3
	// flip reverses the winding so the face stays counter-clockwise
	// when seen from outside.
	flip bool
}

var cubeFaces = []face{
	{math.Vec3{X: 0, Y: 0, Z: 1}, ColorFront, [4]math.Vec3{{X: -0.5, Y: -0.5, Z: 0.5}, {X: 0.5, Y: -0.5, Z: 0.5}, {X: 0.5, Y: 0.5, Z: 0.5}, {X: -0.5, Y: 0.5, Z: 0.5}}, false},
	{math.Vec3{X: 0, Y: 0, Z: -1}, ColorBack, [4]math.Vec3{{X: -0.5, Y: -0.5, Z: -0.5}, {X: 0.5, Y: -0.5, Z: -0.5}, {X: 0.5, Y: 0.5, Z: -0.5}, {X: -0.5, Y: 0.5, Z: -0.5}}, true},
	{math.Vec3{X: 0, Y: 1, Z: 0}, ColorTop, [4]math.Vec3{{X: -0.5, Y: 0.5, Z: 0.5}, {X: 0.5, Y: 0.5, Z: 0.5}, {X: 0.5, Y: 0.5, Z: -0.5}, {X: -0.5, Y: 0.5, Z: -0.5}}, false},
	{math.Vec3{X: 0, Y: -1, Z: 0}, ColorBottom, [4]math.Vec3{{X: -0.5, Y: -0.5, Z: 0.5}, {X: 0.5, Y: -0.5, Z: 0.5}, {X: 0.5, Y: -0.5, Z: -0.5}, {X: -0.5, Y: -0.5, Z: -0.5}}, true},
	{math.Vec3{X: 1, Y: 0, Z: 0}, ColorRight, [4]math.Vec3{{X: 0.5, Y: -0.5, Z: 0.5}, {X: 0.5, Y: -0.5, Z: -0.5}, {X: 0.5, Y: 0.5, Z: -0.5}, {X: 0.5, Y: 0.5, Z: 0.5}}, false},
	{math.Vec3{X: -1, Y: 0, Z: 0}, ColorLeft, [4]math.Vec3{{X: -0.5, Y: -0.5, Z: 0.5}, {X: -0.5, Y: -0.5, Z: -0.5}, {X: -0.5, Y: 0.5, Z: -0.5}, {X: -0.5, Y: 0.5, Z: 0.5}}, true},
}

var (
	cubeVertices = buildVertices()
	cubeIndices  = buildIndices()
)

func buildVertices() []float32 {
	out := make([]float32, 0, len(cubeFaces)*4*floatsPerVertex)
	for _, f := range cubeFaces {
		for _, c := range f.corners {
			out = append(out,
				c.X, c.Y, c.Z,
				f.normal.X, f.normal.Y, f.normal.Z,
				f.color[0], f.color[1], f.color[2],
			)
		}
	}
	return out
}

func buildIndices() []uint32 {
	out := make([]uint32, 0, len(cubeFaces)*6)
	for i, f := range cubeFaces {
		base := uint32(i * 4)
		if f.flip {
			out = append(out, base, base+2, base+1, base, base+3, base+2)
		} else {
			out = append(out, base, base+1, base+2, base+2, base+3, base)
		}
	}
	return out
}

// Cube is a unit cube centred on the origin with one colour per face.
// It is immutable after NewCube and must be released with Close.
type Cube struct {
	ctx        *gpu.Context
	vao        gpu.VertexArray
	vbo        gpu.Buffer
	ebo        gpu.Buffer
	program    gpu.Program
	indexCount int32

	locProjection gpu.Uniform
	locView       gpu.Uniform
	locModel      gpu.Uniform
}

// NewCube compiles the cube program and uploads its geometry.
func NewCube(ctx *gpu.Context) (*Cube, error) {
	fns := ctx.GL()

	program, err := shader.CompileProgram(fns, shaders.CubeVertexShader, shaders.CubeFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("cube shader: %w", err)
	}

	c := &Cube{
		ctx:           ctx,
		program:       program,
		indexCount:    int32(len(cubeIndices)),
		locProjection: shader.Uniform(fns, program, "u_projection"),
		locView:       shader.Uniform(fns, program, "u_view"),
		locModel:      shader.Uniform(fns, program, "u_model"),
	}

	c.vao = fns.CreateVertexArray()
	c.vbo = fns.CreateBuffer()
	c.ebo = fns.CreateBuffer()

	fns.BindVertexArray(c.vao)

	fns.BindBuffer(gpu.ArrayBuffer, c.vbo)
	fns.BufferDataFloat32(gpu.ArrayBuffer, cubeVertices, gpu.StaticDraw)

	fns.BindBuffer(gpu.ElementArrayBuffer, c.ebo)
	fns.BufferDataUint32(gpu.ElementArrayBuffer, cubeIndices, gpu.StaticDraw)

	fns.VertexAttribPointer(attribPosition, 3, vertexStride, 0)
	fns.EnableVertexAttribArray(attribPosition)
	fns.VertexAttribPointer(attribNormal, 3, vertexStride, 12)
	fns.EnableVertexAttribArray(attribNormal)
	fns.VertexAttribPointer(attribColor, 3, vertexStride, 24)
	fns.EnableVertexAttribArray(attribColor)

	fns.BindVertexArray(0)

	logger.Debug("cube mesh uploaded",
		zap.Int("vertices", len(cubeVertices)/floatsPerVertex),
		zap.Int("indices", len(cubeIndices)))

	return c, nil
}

// Render draws the cube with the given matrices.
func (c *Cube) Render(projection, view, model math.Mat4) {
	fns := c.ctx.GL()

	fns.UseProgram(c.program)
	fns.UniformMatrix4fv(c.locProjection, (*[16]float32)(&projection))
	fns.UniformMatrix4fv(c.locView, (*[16]float32)(&view))
	fns.UniformMatrix4fv(c.locModel, (*[16]float32)(&model))

	fns.BindVertexArray(c.vao)
	fns.DrawElements(gpu.Triangles, c.indexCount, gpu.UnsignedInt, 0)
	fns.BindVertexArray(0)
}

// IndexCount returns the number of indices drawn per Render.
func (c *Cube) IndexCount() int32 {
	return c.indexCount
}

// Program returns the cube's shader program.
func (c *Cube) Program() gpu.Program {
	return c.program
}

// Close releases GPU resources.
func (c *Cube) Close() {
	fns := c.ctx.GL()
	if c.vao != 0 {
		fns.DeleteVertexArray(c.vao)
		c.vao = 0
	}
	if c.vbo != 0 {
		fns.DeleteBuffer(c.vbo)
		c.vbo = 0
	}
	if c.ebo != 0 {
		fns.DeleteBuffer(c.ebo)
		c.ebo = 0
	}
	if c.program != 0 {
		fns.DeleteProgram(c.program)
		c.program = 0
	}
}

// Vertices returns a copy of the interleaved vertex data.
func Vertices() []float32 {
	return append([]float32(nil), cubeVertices...)
}

// Indices returns a copy of the triangle indices.
func Indices() []uint32 {
	return append([]uint32(nil), cubeIndices...)
}
