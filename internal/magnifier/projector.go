// Package magnifier implements digital zoom for a perspective camera.
//
// A Region selects a rectangle of the full view in normalized coordinates,
// (-1,-1) being the lower-left and (1,1) the upper-right corner. ComputeProjection
// reframes the camera frustum onto that rectangle with an off-axis projection,
// so magnified content keeps the perspective of the original view.
// Controller drives the region from scroll and drag input.
package magnifier

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/magnifier/pkg/math"
)

// Intrinsics is a snapshot of the camera parameters that shape its frustum.
type Intrinsics struct {
	Near   float32 // Near clip distance, > 0
	Far    float32 // Far clip distance, > Near
	FovY   float32 // Vertical field of view in degrees
	Aspect float32 // Width / height
}

// DefaultProjection returns the symmetric perspective projection the camera
// uses when no region is applied.
func (in Intrinsics) DefaultProjection() math.Mat4 {
	return math.PerspectiveDegrees(in.FovY, in.Aspect, in.Near, in.Far)
}

// Region is a rectangle of the full view in normalized coordinates.
// Callers keep XMin < XMax and YMin < YMax.
type Region struct {
	XMin, XMax float32
	YMin, YMax float32
}

// FullRegion covers the whole view.
var FullRegion = Region{XMin: -1, XMax: 1, YMin: -1, YMax: 1}

// Width returns XMax - XMin.
func (r Region) Width() float32 { return r.XMax - r.XMin }

// Height returns YMax - YMin.
func (r Region) Height() float32 { return r.YMax - r.YMin }

// ProjectionMatrices is the result of reframing a camera onto a region.
type ProjectionMatrices struct {
	Projection math.Mat4
	Culling    math.Mat4 // Projection * world-to-view
}

// ComputeProjection builds the off-axis projection that frames region r of the
// view described by in, and the matching culling matrix.
//
// Malformed intrinsics (zero near plane, zero aspect) and empty or inverted
// regions are not checked and yield Inf/NaN elements.
func ComputeProjection(in Intrinsics, r Region, worldToView math.Mat4) ProjectionMatrices {
	top := math32.Tan(math.DegToRad(in.FovY)/2) * in.Near
	right := top * in.Aspect

	proj := math.Frustum(
		right*r.XMin, right*r.XMax,
		top*r.YMin, top*r.YMax,
		in.Near, in.Far,
	)
	return ProjectionMatrices{
		Projection: proj,
		Culling:    proj.Mul(worldToView),
	}
}
