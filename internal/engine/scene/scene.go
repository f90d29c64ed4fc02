// Package scene holds the demo geometry the viewer renders and culls.
package scene

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/magnifier/pkg/math"
)

// Instance is one cube in the scene.
type Instance struct {
	Position math.Vec3
	Size     float32
	Color    [3]float32
}

// Model returns the instance's model matrix.
func (i Instance) Model() math.Mat4 {
	return math.Translate(i.Position.X, i.Position.Y, i.Position.Z).
		Mul(math.Scale(i.Size, i.Size, i.Size))
}

// BoundingRadius returns the radius of the sphere enclosing the cube.
func (i Instance) BoundingRadius() float32 {
	return i.Size * math32.Sqrt(3) / 2
}

// Scene is a flat collection of cube instances.
type Scene struct {
	Instances []Instance
	visible   []int
}

// NewGrid lays out n x n cubes spaced apart on the XZ plane, centered on the
// origin. Heights and colors vary across the grid so zoomed detail is visible.
func NewGrid(n int, spacing float32) *Scene {
	s := &Scene{Instances: make([]Instance, 0, n*n)}
	half := float32(n-1) * spacing / 2
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			u := float32(x) / float32(max(n-1, 1))
			v := float32(z) / float32(max(n-1, 1))
			size := spacing * (0.3 + 0.4*math32.Abs(math32.Sin(float32(x*7+z*3))))
			s.Instances = append(s.Instances, Instance{
				Position: math.Vec3{
					X: float32(x)*spacing - half,
					Y: size / 2,
					Z: float32(z)*spacing - half,
				},
				Size:  size,
				Color: [3]float32{0.2 + 0.8*u, 0.3 + 0.5*v, 1 - 0.7*u},
			})
		}
	}
	return s
}

// Visible returns the indices of instances inside the frustum of the given
// culling matrix (projection * view). The slice is reused between calls.
func (s *Scene) Visible(culling math.Mat4) []int {
	f := math.ExtractFrustum(culling)
	s.visible = s.visible[:0]
	for i, inst := range s.Instances {
		if f.ContainsSphere(inst.Position, inst.BoundingRadius()) {
			s.visible = append(s.visible, i)
		}
	}
	return s.visible
}
