// Package renderer draws the 3D scene into a region of the window.
package renderer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeview/internal/engine/camera"
	"github.com/Faultbox/cubeview/internal/engine/gpu"
	"github.com/Faultbox/cubeview/internal/engine/mesh"
	"github.com/Faultbox/cubeview/internal/logger"
	"github.com/Faultbox/cubeview/pkg/math"
)

// TiltFactor scales the X rotation relative to the Y rotation.
const TiltFactor = 0.7

// The fixed viewpoint: from (2, 2, 2) towards the origin.
var viewpoint = camera.LookingFrom(math.Vec3{X: 2, Y: 2, Z: 2}, math.Vec3{})

// ErrDegenerateRect is returned when a viewport rect has no drawable area.
var ErrDegenerateRect = errors.New("renderer: degenerate viewport rect")

// Renderer owns the cube and draws it on demand.
type Renderer struct {
	ctx      *gpu.Context
	cube     *mesh.Cube
	rotation float32

	width  int32
	height int32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER the graphics context is current!
func New(ctx *gpu.Context) (*Renderer, error) {
	ctx.CheckThread()

	cube, err := mesh.NewCube(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating cube: %w", err)
	}

	fns := ctx.GL()
	fns.Enable(gpu.DepthTest)
	fns.Enable(gpu.CullFace)
	fns.CullFace(gpu.Back)
	fns.FrontFace(gpu.CCW)

	return &Renderer{ctx: ctx, cube: cube}, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.cube != nil {
		r.cube.Close()
		r.cube = nil
	}
}

// Update stores the absolute rotation angle in radians.
func (r *Renderer) Update(rotation float32) {
	r.rotation = rotation
}

// Rotation returns the last angle passed to Update.
func (r *Renderer) Rotation() float32 {
	return r.rotation
}

// Resize sets the full-window viewport. Repeating the current size does
// nothing.
func (r *Renderer) Resize(width, height int) {
	w, h := int32(width), int32(height)
	if w == r.width && h == r.height {
		return
	}
	r.width, r.height = w, h
	r.ctx.GL().Viewport(0, 0, w, h)
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the last size passed to Resize.
func (r *Renderer) Size() (int, int) {
	return int(r.width), int(r.height)
}

// Matrices returns the projection, view and model matrices for drawing
// into rect at the given rotation. rect must not be degenerate.
func Matrices(rect math.Rect, rotation float32) (projection, view, model math.Mat4) {
	projection = viewpoint.ProjectionMatrix(rect.Aspect())
	view = viewpoint.ViewMatrix()
	model = ModelMatrix(rotation)
	return projection, view, model
}

// ModelMatrix spins around Y and tilts around X by TiltFactor of the angle.
func ModelMatrix(rotation float32) math.Mat4 {
	return math.Identity().
		Rotate(rotation, math.Vec3{X: 0, Y: 1, Z: 0}).
		Rotate(rotation*TiltFactor, math.Vec3{X: 1, Y: 0, Z: 0})
}

// RenderViewport draws the cube into rect, given in window pixels. The
// caller's viewport is restored on return, panics included. Depth is
// cleared for the region; colour is left to the caller.
func (r *Renderer) RenderViewport(rect math.Rect, rotation float32) error {
	x, y := int32(rect.X), int32(rect.Y)
	w, h := int32(rect.W), int32(rect.H)
	if rect.Degenerate() || w <= 0 || h <= 0 {
		return ErrDegenerateRect
	}

	r.ctx.CheckThread()
	fns := r.ctx.GL()

	guard := gpu.SaveViewport(fns)
	defer guard.Restore()

	fns.Viewport(x, y, w, h)

	fns.Enable(gpu.DepthTest)
	fns.DepthFunc(gpu.Less)
	fns.Enable(gpu.CullFace)
	fns.CullFace(gpu.Back)

	fns.Clear(gpu.DepthBufferBit)

	projection, view, model := Matrices(rect, rotation)
	r.cube.Render(projection, view, model)
	return nil
}
