// Package camera provides the perspective camera the magnifier drives.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/magnifier/internal/magnifier"
	"github.com/Faultbox/magnifier/pkg/math"
)

// OrbitCamera orbits around a center point and owns the projection and
// culling matrices used for rendering.
//
// Its projection follows the intrinsics until SetProjectionMatrix installs
// an override; ResetProjectionMatrix hands control back.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinPitch float32
	MaxPitch float32

	DragSensitivity float32

	// Intrinsics
	FovY   float32 // Degrees
	Near   float32
	Far    float32
	Aspect float32

	projection math.Mat4
	culling    math.Mat4
	overridden bool
}

// NewOrbitCamera creates an orbit camera with default settings.
func NewOrbitCamera(fovY, near, far, aspect float32) *OrbitCamera {
	return &OrbitCamera{
		Distance:        30,
		RotationX:       0.5,
		MinPitch:        0.1,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		FovY:            fovY,
		Near:            near,
		Far:             far,
		Aspect:          aspect,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cosX := math32.Cos(c.RotationX)
	return c.Center.Add(math.Vec3{
		X: c.Distance * cosX * math32.Sin(c.RotationY),
		Y: c.Distance * math32.Sin(c.RotationX),
		Z: c.Distance * cosX * math32.Cos(c.RotationY),
	})
}

// ViewMatrix returns the world-to-view matrix.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// HandleDrag updates rotation from a pointer drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = math.Clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// SetAspect updates the aspect ratio after a resize.
func (c *OrbitCamera) SetAspect(aspect float32) {
	c.Aspect = aspect
}

// Intrinsics returns a snapshot of the frustum parameters.
func (c *OrbitCamera) Intrinsics() magnifier.Intrinsics {
	return magnifier.Intrinsics{Near: c.Near, Far: c.Far, FovY: c.FovY, Aspect: c.Aspect}
}

// ProjectionMatrix returns the active projection: the override if one is
// set, the default perspective otherwise.
func (c *OrbitCamera) ProjectionMatrix() math.Mat4 {
	if c.overridden {
		return c.projection
	}
	return c.Intrinsics().DefaultProjection()
}

// CullingMatrix returns the matrix used for visibility tests.
func (c *OrbitCamera) CullingMatrix() math.Mat4 {
	if c.overridden {
		return c.culling
	}
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// Overridden reports whether a custom projection is installed.
func (c *OrbitCamera) Overridden() bool { return c.overridden }

// SetProjectionMatrix installs a custom projection.
func (c *OrbitCamera) SetProjectionMatrix(m math.Mat4) {
	c.projection = m
	c.overridden = true
}

// SetCullingMatrix installs the culling matrix matching the custom projection.
func (c *OrbitCamera) SetCullingMatrix(m math.Mat4) {
	c.culling = m
}

// ResetProjectionMatrix drops the override and returns to the default projection.
func (c *OrbitCamera) ResetProjectionMatrix() {
	c.overridden = false
	c.projection = math.Mat4{}
	c.culling = math.Mat4{}
}

// Frame returns the per-tick snapshot consumed by the magnifier.
func (c *OrbitCamera) Frame(tick uint64) magnifier.Frame {
	return magnifier.Frame{
		Tick:        tick,
		Intrinsics:  c.Intrinsics(),
		WorldToView: c.ViewMatrix(),
	}
}
