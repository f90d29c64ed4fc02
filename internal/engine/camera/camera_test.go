package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/magnifier/internal/magnifier"
	"github.com/Faultbox/magnifier/pkg/math"
)

func newTestCamera() *OrbitCamera {
	return NewOrbitCamera(60, 0.3, 1000, 16.0/9.0)
}

func TestDefaultProjection(t *testing.T) {
	c := newTestCamera()

	assert.False(t, c.Overridden())
	assert.Equal(t, math.PerspectiveDegrees(60, 16.0/9.0, 0.3, 1000), c.ProjectionMatrix())
	assert.Equal(t, c.ProjectionMatrix().Mul(c.ViewMatrix()), c.CullingMatrix())
}

func TestDefaultProjectionFollowsAspect(t *testing.T) {
	c := newTestCamera()
	c.SetAspect(1)
	assert.Equal(t, math.PerspectiveDegrees(60, 1, 0.3, 1000), c.ProjectionMatrix())
}

func TestOverrideAndReset(t *testing.T) {
	c := newTestCamera()
	m := math.Frustum(-1, 1, -1, 1, 0.3, 1000)

	c.SetProjectionMatrix(m)
	c.SetCullingMatrix(m)
	require.True(t, c.Overridden())
	assert.Equal(t, m, c.ProjectionMatrix())
	assert.Equal(t, m, c.CullingMatrix())

	c.ResetProjectionMatrix()
	assert.False(t, c.Overridden())
	assert.Equal(t, c.Intrinsics().DefaultProjection(), c.ProjectionMatrix())
}

func TestMagnifierDrivesCamera(t *testing.T) {
	c := newTestCamera()
	ctrl := magnifier.New(magnifier.DefaultSettings())

	change := ctrl.Ingest(c.Frame(1), magnifier.Input{Scroll: 5}, c)
	require.NotNil(t, change.Matrices)
	assert.True(t, c.Overridden())
	assert.Equal(t, change.Matrices.Projection, c.ProjectionMatrix())
	assert.Equal(t, change.Matrices.Culling, c.CullingMatrix())

	ctrl.Ingest(c.Frame(2), magnifier.Input{Scroll: -10}, c)
	assert.False(t, c.Overridden())
	assert.Equal(t, c.Intrinsics().DefaultProjection(), c.ProjectionMatrix())
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := newTestCamera()

	c.HandleDrag(0, 10000)
	assert.Equal(t, c.MaxPitch, c.RotationX)

	c.HandleDrag(0, -10000)
	assert.Equal(t, c.MinPitch, c.RotationX)
}

func TestPositionDistance(t *testing.T) {
	c := newTestCamera()
	c.Center = math.Vec3{X: 1, Y: 2, Z: 3}
	c.RotationY = 0.7

	d := c.Position().Sub(c.Center).Length()
	assert.InDelta(t, c.Distance, d, 1e-4)
}

func TestIntrinsics(t *testing.T) {
	c := newTestCamera()
	assert.Equal(t, magnifier.Intrinsics{Near: 0.3, Far: 1000, FovY: 60, Aspect: 16.0 / 9.0}, c.Intrinsics())
}
