// Package camera provides the viewpoint for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cubeview/pkg/math"
)

// Projection defaults.
const (
	DefaultFieldOfView = 45.0 // degrees
	DefaultNear        = 0.1
	DefaultFar         = 100.0
)

// Camera looks from Eye at Center. The eye is kept as given so the view
// matrix carries no rounding from a detour through angles.
type Camera struct {
	Eye    math.Vec3
	Center math.Vec3
	Up     math.Vec3

	FieldOfView float32 // vertical, degrees
	Near, Far   float32
}

// LookingFrom returns a camera at eye looking at center with +Y up and the
// default projection.
func LookingFrom(eye, center math.Vec3) *Camera {
	return &Camera{
		Eye:         eye,
		Center:      center,
		Up:          math.Vec3{Y: 1},
		FieldOfView: DefaultFieldOfView,
		Near:        DefaultNear,
		Far:         DefaultFar,
	}
}

// Distance returns how far the eye is from the center.
func (c *Camera) Distance() float32 {
	return c.Eye.Sub(c.Center).Length()
}

// ViewMatrix returns the view matrix for this camera.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Eye, c.Center, c.Up)
}

// ProjectionMatrix returns a perspective projection for the given aspect
// ratio (width / height).
func (c *Camera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FieldOfView*math32.Pi/180, aspect, c.Near, c.Far)
}
