package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/magnifier/internal/magnifier"
	"github.com/Faultbox/magnifier/pkg/math"
)

func TestNewGrid(t *testing.T) {
	s := NewGrid(4, 2)
	require.Len(t, s.Instances, 16)

	var sum math.Vec3
	for _, inst := range s.Instances {
		sum = sum.Add(inst.Position)
		assert.Greater(t, inst.Size, float32(0))
		assert.InDelta(t, inst.Size/2, inst.Position.Y, 1e-6)
	}
	assert.InDelta(t, 0, sum.X, 1e-4)
	assert.InDelta(t, 0, sum.Z, 1e-4)
}

func TestNewGridSingle(t *testing.T) {
	s := NewGrid(1, 3)
	require.Len(t, s.Instances, 1)
	assert.Equal(t, float32(0), s.Instances[0].Position.X)
}

func TestModel(t *testing.T) {
	inst := Instance{Position: math.Vec3{X: 1, Y: 2, Z: 3}, Size: 2}
	got := inst.Model().TransformPoint(math.Vec3{X: 0.5, Y: 0.5, Z: 0.5})
	assert.Equal(t, math.Vec3{X: 2, Y: 3, Z: 4}, got)
}

func TestVisibleShrinksWhenMagnified(t *testing.T) {
	s := NewGrid(21, 2)
	in := magnifier.Intrinsics{Near: 0.1, Far: 500, FovY: 60, Aspect: 1}
	view := math.LookAt(math.Vec3{Y: 60, Z: 1}, math.Vec3{}, math.Vec3{Y: 1})

	full := magnifier.ComputeProjection(in, magnifier.FullRegion, view)
	all := len(s.Visible(full.Culling))

	zoomed := magnifier.ComputeProjection(in, magnifier.Region{XMin: -0.1, XMax: 0.1, YMin: -0.1, YMax: 0.1}, view)
	some := len(s.Visible(zoomed.Culling))

	assert.Greater(t, all, 0)
	assert.Greater(t, some, 0)
	assert.Less(t, some, all)
}
