package magnifier

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/magnifier/pkg/math"
)

type fakeSink struct {
	projection math.Mat4
	culling    math.Mat4
	overridden bool
	resets     int
	sets       int
}

func (s *fakeSink) SetProjectionMatrix(m math.Mat4) {
	s.projection = m
	s.overridden = true
	s.sets++
}

func (s *fakeSink) SetCullingMatrix(m math.Mat4) { s.culling = m }

func (s *fakeSink) ResetProjectionMatrix() {
	s.overridden = false
	s.resets++
}

var testFrame = Frame{
	Tick:        1,
	Intrinsics:  Intrinsics{Near: 0.3, Far: 1000, FovY: 60, Aspect: 16.0 / 9.0},
	WorldToView: math.Identity(),
}

func scroll(d float32) Input { return Input{Scroll: d} }

func drag(dx, dy float32) Input {
	return Input{DragActive: true, PointerDX: dx, PointerDY: dy}
}

func TestNewController(t *testing.T) {
	c := New(DefaultSettings())
	s := c.State()

	assert.Equal(t, float32(1), s.Level)
	assert.Equal(t, math.Vec2{}, s.Center)
	assert.False(t, s.Magnifying)
	assert.False(t, s.UIHidden)
	assert.Equal(t, ModeInteractive, c.Mode())
	assert.Equal(t, PhaseIdle, c.Phase())
	assert.Equal(t, FullRegion, c.Region())
	assert.False(t, c.ShowUI())
}

func TestNewControllerLocked(t *testing.T) {
	settings := DefaultSettings()
	settings.Locked = true
	c := New(settings)
	sink := &fakeSink{}

	change := c.Ingest(testFrame, scroll(5), sink)
	assert.False(t, change.Changed)
	assert.Equal(t, ModeLocked, c.Mode())
	assert.Equal(t, 0, sink.sets)
}

func TestIngestNoInputIsNoop(t *testing.T) {
	c := New(DefaultSettings())
	sink := &fakeSink{}

	change := c.Ingest(testFrame, Input{}, sink)
	assert.False(t, change.Changed)
	assert.Nil(t, change.Matrices)
	assert.Equal(t, 0, sink.sets+sink.resets)

	// Pointer motion without the drag button is not input either.
	change = c.Ingest(testFrame, Input{PointerDX: 3, PointerDY: -2}, sink)
	assert.False(t, change.Changed)
	assert.Equal(t, 0, sink.sets+sink.resets)
}

func TestIngestScenarioB(t *testing.T) {
	c := New(DefaultSettings())
	sink := &fakeSink{}

	change := c.Ingest(testFrame, scroll(5), sink)

	require.True(t, change.Changed)
	assert.True(t, change.Entered())
	assert.InDelta(t, 2.0, c.State().Level, 1e-6)
	assert.Equal(t, Region{XMin: -0.5, XMax: 0.5, YMin: -0.5, YMax: 0.5}, c.Region())
	assert.Equal(t, PhaseMagnifying, c.Phase())

	want := ComputeProjection(testFrame.Intrinsics, c.Region(), testFrame.WorldToView)
	require.NotNil(t, change.Matrices)
	assert.Equal(t, want, *change.Matrices)
	assert.Equal(t, want.Projection, sink.projection)
	assert.Equal(t, want.Culling, sink.culling)
	assert.True(t, sink.overridden)
}

func TestIngestScenarioC(t *testing.T) {
	c := New(DefaultSettings())
	sink := &fakeSink{}
	c.Ingest(testFrame, scroll(5), sink)

	change := c.Ingest(testFrame, drag(1, 0), sink)

	require.True(t, change.Changed)
	assert.False(t, change.Entered())
	assert.InDelta(t, -0.05, c.State().Center.X, 1e-6)
	assert.Equal(t, float32(0), c.State().Center.Y)

	r := c.Region()
	assert.InDelta(t, -0.55, r.XMin, 1e-6)
	assert.InDelta(t, 0.45, r.XMax, 1e-6)
	assert.InDelta(t, -0.5, r.YMin, 1e-6)
	assert.InDelta(t, 0.5, r.YMax, 1e-6)
}

func TestIngestDragUpMovesRegionDown(t *testing.T) {
	c := New(DefaultSettings())
	sink := &fakeSink{}
	c.Ingest(testFrame, scroll(5), sink)

	c.Ingest(testFrame, drag(0, 2), sink)
	assert.InDelta(t, -0.1, c.State().Center.Y, 1e-6)
}

func TestIngestPanClampsToView(t *testing.T) {
	c := New(DefaultSettings())
	sink := &fakeSink{}
	c.Ingest(testFrame, scroll(5), sink)

	c.Ingest(testFrame, drag(-1000, 1000), sink)

	s := c.State()
	assert.InDelta(t, 0.5, s.Center.X, 1e-6)
	assert.InDelta(t, -0.5, s.Center.Y, 1e-6)
	r := c.Region()
	assert.InDelta(t, 1, r.XMax, 1e-6)
	assert.InDelta(t, -1, r.YMin, 1e-6)
}

func TestIngestZoomClamp(t *testing.T) {
	c := New(DefaultSettings())
	sink := &fakeSink{}

	for i := 0; i < 50; i++ {
		c.Ingest(testFrame, scroll(10), sink)
	}
	assert.Equal(t, float32(20), c.State().Level)

	c.Ingest(testFrame, scroll(-100), sink)
	assert.Equal(t, float32(1), c.State().Level)
}

func TestIngestIdleReset(t *testing.T) {
	c := New(DefaultSettings())
	sink := &fakeSink{}
	c.Ingest(testFrame, scroll(5), sink)
	c.Ingest(testFrame, drag(3, 3), sink)
	require.True(t, sink.overridden)

	change := c.Ingest(testFrame, scroll(-10), sink)

	assert.True(t, change.Exited())
	assert.Nil(t, change.Matrices)
	assert.Equal(t, 1, sink.resets)
	assert.False(t, sink.overridden)
	assert.False(t, c.State().Magnifying)
	assert.Equal(t, PhaseIdle, c.Phase())
	assert.Equal(t, FullRegion, c.Region())
	assert.False(t, c.Overlay().Visible)
}

func TestIngestZoomOutThenInReclampsCenter(t *testing.T) {
	c := New(DefaultSettings())
	sink := &fakeSink{}
	c.Ingest(testFrame, scroll(20), sink)
	c.Ingest(testFrame, drag(-1000, 0), sink)
	high := c.State().Center.X

	// Zooming out shrinks the allowed center range; the pan is reclamped.
	c.Ingest(testFrame, scroll(-0.5), sink)
	s := c.State()
	ratio := 1 / s.Level
	assert.Less(t, s.Center.X, high)
	assert.InDelta(t, 1-ratio, s.Center.X, 1e-6)
}

func TestIngestPanSlowsWithZoom(t *testing.T) {
	low := New(DefaultSettings())
	high := New(DefaultSettings())
	sink := &fakeSink{}
	low.Ingest(testFrame, scroll(5), sink)
	high.Ingest(testFrame, scroll(20), sink)

	low.Ingest(testFrame, drag(-1, 0), sink)
	high.Ingest(testFrame, drag(-1, 0), sink)

	assert.Greater(t, low.State().Center.X, high.State().Center.X)
}

func TestIngestInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	settings := DefaultSettings()
	c := New(settings)
	sink := &fakeSink{}

	for i := 0; i < 5000; i++ {
		in := Input{
			Scroll:     float32(rng.Intn(7) - 3),
			DragActive: rng.Intn(2) == 0,
			PointerDX:  float32(rng.NormFloat64() * 20),
			PointerDY:  float32(rng.NormFloat64() * 20),
		}
		c.Ingest(testFrame, in, sink)

		s := c.State()
		r := c.Region()
		require.GreaterOrEqual(t, s.Level, float32(1))
		require.LessOrEqual(t, s.Level, settings.MaxZoom)

		require.GreaterOrEqual(t, r.XMin, float32(-1)-1e-6)
		require.LessOrEqual(t, r.XMax, float32(1)+1e-6)
		require.GreaterOrEqual(t, r.YMin, float32(-1)-1e-6)
		require.LessOrEqual(t, r.YMax, float32(1)+1e-6)
		require.LessOrEqual(t, r.XMin, r.XMax)
		require.LessOrEqual(t, r.YMin, r.YMax)

		require.InDelta(t, 2/s.Level, r.Width(), 1e-5)
		require.InDelta(t, 2/s.Level, r.Height(), 1e-5)

		require.Equal(t, s.Level > 1, s.Magnifying)
		require.Equal(t, s.Magnifying, sink.overridden)
	}
}

func TestSetExplicitRegionScenarioD(t *testing.T) {
	c := New(DefaultSettings())
	sink := &fakeSink{}
	r := Region{XMin: -0.2, XMax: 0.2, YMin: -0.1, YMax: 0.1}

	m := c.SetExplicitRegion(testFrame, r, sink)

	assert.Equal(t, ModeLocked, c.Mode())
	assert.Equal(t, r, c.Region())
	assert.Equal(t, ComputeProjection(testFrame.Intrinsics, r, testFrame.WorldToView), m)
	assert.Equal(t, m.Projection, sink.projection)
	assert.Equal(t, m.Culling, sink.culling)

	before := c.State()
	sets := sink.sets
	change := c.Ingest(testFrame, Input{Scroll: 4, DragActive: true, PointerDX: 1}, sink)

	assert.False(t, change.Changed)
	assert.Equal(t, before, c.State())
	assert.Equal(t, r, c.Region())
	assert.Equal(t, sets, sink.sets)
	assert.Zero(t, sink.resets)
	assert.False(t, c.ShowUI())
}

func TestUnlock(t *testing.T) {
	c := New(DefaultSettings())
	sink := &fakeSink{}
	c.SetExplicitRegion(testFrame, Region{XMin: 0, XMax: 0.5, YMin: 0, YMax: 0.5}, sink)

	c.Unlock(sink)

	assert.Equal(t, ModeInteractive, c.Mode())
	assert.Equal(t, FullRegion, c.Region())
	assert.Equal(t, float32(1), c.State().Level)
	assert.False(t, sink.overridden)

	change := c.Ingest(testFrame, scroll(5), sink)
	assert.True(t, change.Changed)
	assert.True(t, change.Entered())
}

func TestRestore(t *testing.T) {
	c := New(DefaultSettings())
	sink := &fakeSink{}
	c.Ingest(testFrame, scroll(10), sink)
	c.Ingest(testFrame, drag(2, 2), sink)

	c.Restore(sink)

	s := c.State()
	assert.Equal(t, float32(1), s.Level)
	assert.Equal(t, math.Vec2{}, s.Center)
	assert.False(t, s.Magnifying)
	assert.False(t, sink.overridden)
}

func TestToggleUIVisibilityScenarioE(t *testing.T) {
	c := New(DefaultSettings())

	c.ToggleUIVisibility()
	assert.True(t, c.State().UIHidden)
	assert.False(t, c.State().Magnifying)
	assert.Equal(t, PhaseIdle, c.Phase())

	c.ToggleUIVisibility()
	assert.False(t, c.State().UIHidden)
	assert.False(t, c.State().Magnifying)
}

func TestShowUI(t *testing.T) {
	c := New(DefaultSettings())
	sink := &fakeSink{}
	c.Ingest(testFrame, scroll(5), sink)
	assert.True(t, c.ShowUI())
	assert.True(t, c.Overlay().Visible)

	c.ToggleUIVisibility()
	assert.False(t, c.ShowUI())
	assert.False(t, c.Overlay().Visible)
	assert.InDelta(t, 2.0, c.State().Level, 1e-6)

	c.ToggleUIVisibility()
	assert.True(t, c.Overlay().Visible)
}

func TestConfigureLowersMaxZoom(t *testing.T) {
	c := New(DefaultSettings())
	sink := &fakeSink{}
	c.Ingest(testFrame, scroll(20), sink)
	c.Ingest(testFrame, scroll(20), sink)
	require.Equal(t, float32(20), c.State().Level)

	settings := DefaultSettings()
	settings.MaxZoom = 5
	c.Configure(settings)
	c.Ingest(testFrame, drag(1, 0), sink)

	assert.Equal(t, float32(5), c.State().Level)
	assert.InDelta(t, 0.4, c.Region().Width(), 1e-6)
}

func TestLabel(t *testing.T) {
	c := New(DefaultSettings())
	assert.Equal(t, "1.0x", c.Label())

	c.Ingest(testFrame, scroll(5), &fakeSink{})
	assert.Equal(t, "2.0x", c.Label())
	assert.Equal(t, "2.0x", c.Overlay().Label)
}

func TestModeAndPhaseStrings(t *testing.T) {
	assert.Equal(t, "interactive", ModeInteractive.String())
	assert.Equal(t, "locked", ModeLocked.String())
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "magnifying", PhaseMagnifying.String())
}

func TestReproject(t *testing.T) {
	c := New(DefaultSettings())
	sink := &fakeSink{}

	assert.False(t, c.Reproject(testFrame, sink), "nothing to reproject at level 1")
	assert.Zero(t, sink.sets)

	c.Ingest(testFrame, scroll(5), sink)
	region := c.Region()

	moved := testFrame
	moved.Tick = 2
	moved.Intrinsics.Aspect = 1
	moved.WorldToView = math.Translate(0, 0, -10)

	require.True(t, c.Reproject(moved, sink))
	want := ComputeProjection(moved.Intrinsics, region, moved.WorldToView)
	assert.Equal(t, want.Projection, sink.projection)
	assert.Equal(t, want.Culling, sink.culling)
	assert.Equal(t, region, c.Region())
	assert.Equal(t, c.Overlay().CanvasWidth, c.Overlay().CanvasHeight, "overlay follows the new aspect")

	c.Ingest(testFrame, scroll(-100), sink)
	assert.False(t, c.Reproject(moved, sink))
}

func TestReprojectKeepsExplicitRegion(t *testing.T) {
	c := New(DefaultSettings())
	sink := &fakeSink{}
	r := Region{XMin: -0.2, XMax: 0.2, YMin: -0.1, YMax: 0.1}
	c.SetExplicitRegion(testFrame, r, sink)

	moved := testFrame
	moved.WorldToView = math.Translate(1, 0, -5)
	require.True(t, c.Reproject(moved, sink))

	assert.Equal(t, ModeLocked, c.Mode())
	assert.Equal(t, ComputeProjection(moved.Intrinsics, r, moved.WorldToView).Culling, sink.culling)
}
