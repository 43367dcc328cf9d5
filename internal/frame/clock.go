// Package frame owns the model, view and projection matrices of a viewing
// session and advances them once per rendered frame.
package frame

import (
	mgl "github.com/go-gl/mathgl/mgl32"
)

type (
	float = float32
	mat4  = mgl.Mat4
)

const (
	// RotationStep is the model rotation about the Y axis per tick, in radians.
	RotationStep float = -0.005

	// FieldOfView is the vertical field of view in degrees.
	FieldOfView float = 45

	Near float = 0.1
	Far  float = 100

	// CameraDistance is how far the view pulls back along -Z.
	CameraDistance float = 3
)

// Clock holds the transform state of one session. It is not safe for
// concurrent use; the render loop is its only owner.
type Clock struct {
	model      mat4
	view       mat4
	projection mat4

	width  int
	height int
	ticks  uint64
}

// NewClock returns a clock with an identity model, the camera pulled back
// by CameraDistance and an identity projection until the first Resize.
func NewClock() *Clock {
	return &Clock{
		model:      mgl.Ident4(),
		view:       mgl.Translate3D(0, 0, -CameraDistance),
		projection: mgl.Ident4(),
	}
}

// Advance rotates the model by RotationStep.
func (c *Clock) Advance() {
	c.model = c.model.Mul4(mgl.HomogRotate3DY(RotationStep))
	c.ticks++
}

// Resize recomputes the projection for a width x height surface. Dimensions
// below one pixel are treated as one.
func (c *Clock) Resize(width, height int) mat4 {
	c.width = max(width, 1)
	c.height = max(height, 1)
	aspect := float(c.width) / float(c.height)
	c.projection = mgl.Perspective(mgl.DegToRad(FieldOfView), aspect, Near, Far)
	return c.projection
}

// Reset puts the model back to identity without touching view or projection.
func (c *Clock) Reset() {
	c.model = mgl.Ident4()
	c.ticks = 0
}

func (c *Clock) Model() mat4      { return c.model }
func (c *Clock) View() mat4       { return c.view }
func (c *Clock) Projection() mat4 { return c.projection }

// Size is the surface size of the last Resize.
func (c *Clock) Size() (width, height int) { return c.width, c.height }

// Ticks counts Advance calls since creation or the last Reset.
func (c *Clock) Ticks() uint64 { return c.ticks }
