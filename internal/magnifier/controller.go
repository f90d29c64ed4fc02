package magnifier

import (
	"go.uber.org/zap"

	"github.com/Faultbox/magnifier/internal/logger"
	"github.com/Faultbox/magnifier/pkg/math"
)

// Mode selects whether the controller reacts to user input.
type Mode uint8

const (
	// ModeInteractive applies scroll and drag input.
	ModeInteractive Mode = iota
	// ModeLocked ignores input; the region was set explicitly.
	ModeLocked
)

func (m Mode) String() string {
	if m == ModeLocked {
		return "locked"
	}
	return "interactive"
}

// Phase is the magnification state of the controller.
type Phase uint8

const (
	// PhaseIdle means zoom level 1 and the camera's default projection.
	PhaseIdle Phase = iota
	// PhaseMagnifying means a region projection is applied to the camera.
	PhaseMagnifying
)

func (p Phase) String() string {
	if p == PhaseMagnifying {
		return "magnifying"
	}
	return "idle"
}

// ZoomState is the mutable interaction state owned by a Controller.
type ZoomState struct {
	Level      float32   // Magnification, 1 means none
	Center     math.Vec2 // Region center in normalized view coordinates
	Magnifying bool
	UIHidden   bool
}

// Settings tunes how input maps to zoom and pan.
type Settings struct {
	PanSensitivity    float32
	ScrollSensitivity float32
	MaxZoom           float32
	CanvasWidth       float32 // Width of the overlay canvas in pixels
	Locked            bool    // Start in ModeLocked
	Debug             bool    // Log every recompute
}

// DefaultSettings returns the stock tuning.
func DefaultSettings() Settings {
	return Settings{
		PanSensitivity:    0.1,
		ScrollSensitivity: 0.2,
		MaxZoom:           20,
		CanvasWidth:       100,
	}
}

// Input is the input accumulated over one tick.
type Input struct {
	Scroll     float32 // Wheel delta, positive zooms in
	DragActive bool    // Pan button held
	// Raw pointer axis deltas, Y up. Ignored unless DragActive.
	PointerDX, PointerDY float32
}

// pan returns the drag delta applied to the view center. The sign is
// inverted so the content follows the pointer.
func (in Input) pan() math.Vec2 {
	if !in.DragActive {
		return math.Vec2{}
	}
	return math.Vec2{X: -in.PointerDX, Y: -in.PointerDY}
}

// Frame is the camera snapshot for one tick.
type Frame struct {
	Tick        uint64
	Intrinsics  Intrinsics
	WorldToView math.Mat4
}

// MatrixSink receives the matrices a Controller computes. A camera implements it.
type MatrixSink interface {
	SetProjectionMatrix(m math.Mat4)
	SetCullingMatrix(m math.Mat4)
	// ResetProjectionMatrix returns the camera to its own default projection.
	ResetProjectionMatrix()
}

// StateChange reports what one Ingest call did.
type StateChange struct {
	Tick     uint64
	Changed  bool // Input was applied and the state recomputed
	From, To Phase
	State    ZoomState
	Region   Region
	// Matrices applied to the sink, nil when the default projection was
	// restored or nothing changed.
	Matrices *ProjectionMatrices
}

// Entered reports whether this change started magnifying.
func (sc StateChange) Entered() bool {
	return sc.From == PhaseIdle && sc.To == PhaseMagnifying
}

// Exited reports whether this change returned to the default view.
func (sc StateChange) Exited() bool {
	return sc.From == PhaseMagnifying && sc.To == PhaseIdle
}

// Controller owns zoom level and view center and turns per-tick input into
// a clamped region and its projection. It is not safe for concurrent use;
// the render loop calls it once per tick.
type Controller struct {
	settings Settings
	mode     Mode
	state    ZoomState
	region   Region
	aspect   float32
	overlay  Overlay
	applied  bool // Sink holds matrices for region
}

// New creates a controller at zoom level 1 centered on the view.
func New(settings Settings) *Controller {
	c := &Controller{
		settings: settings,
		state:    ZoomState{Level: 1},
		region:   FullRegion,
		aspect:   1,
	}
	if settings.Locked {
		c.mode = ModeLocked
	}
	c.updateOverlay()
	return c
}

// Ingest applies one tick of input. In ModeLocked, or when the tick carries
// no scroll and no drag, it does nothing.
//
// The zoom level is updated first and clamped to [1, MaxZoom]. Reaching 1
// restores the sink's default projection. Otherwise the drag pans the center,
// scaled by the visible fraction, the center is clamped so the region stays
// inside the view, and the new projection is pushed to the sink.
func (c *Controller) Ingest(frame Frame, in Input, sink MatrixSink) StateChange {
	from := c.Phase()
	change := StateChange{Tick: frame.Tick, From: from, To: from}

	drag := in.pan()
	if c.mode == ModeLocked || (in.Scroll == 0 && drag.X == 0 && drag.Y == 0) {
		change.State = c.state
		change.Region = c.region
		return change
	}

	c.aspect = frame.Intrinsics.Aspect
	s := &c.state

	// Step size grows with the level so zooming feels linear.
	s.Level += in.Scroll * c.settings.ScrollSensitivity * s.Level
	s.Level = math.Clamp(s.Level, 1, c.settings.MaxZoom)

	change.Changed = true
	if s.Level == 1 {
		sink.ResetProjectionMatrix()
		c.applied = false
		s.Magnifying = false
		c.region = FullRegion
		c.updateOverlay()

		change.To = PhaseIdle
		change.State = c.state
		change.Region = c.region
		return change
	}

	s.Magnifying = true
	ratio := 1 / s.Level

	s.Center = s.Center.Add(drag.Scale(c.settings.PanSensitivity * ratio))
	s.Center = s.Center.Clamp(ratio-1, 1-ratio)

	c.region = Region{
		XMin: s.Center.X - ratio,
		XMax: s.Center.X + ratio,
		YMin: s.Center.Y - ratio,
		YMax: s.Center.Y + ratio,
	}

	m := c.apply(frame, sink)

	if c.settings.Debug {
		logger.Debug("magnifier updated",
			zap.Uint64("tick", frame.Tick),
			zap.Float32("zoom", s.Level),
			zap.Float32("center_x", s.Center.X),
			zap.Float32("center_y", s.Center.Y),
			zap.Float32("xmin", c.region.XMin),
			zap.Float32("ymin", c.region.YMin),
			zap.Float32("xmax", c.region.XMax),
			zap.Float32("ymax", c.region.YMax),
		)
	}

	change.To = PhaseMagnifying
	change.State = c.state
	change.Region = c.region
	change.Matrices = &m
	return change
}

// SetExplicitRegion frames r directly and switches to ModeLocked, so later
// input is ignored until Unlock is called.
func (c *Controller) SetExplicitRegion(frame Frame, r Region, sink MatrixSink) ProjectionMatrices {
	c.mode = ModeLocked
	c.region = r
	m := c.apply(frame, sink)

	logger.Debug("magnifier region locked",
		zap.Float32("xmin", r.XMin),
		zap.Float32("xmax", r.XMax),
		zap.Float32("ymin", r.YMin),
		zap.Float32("ymax", r.YMax),
	)
	return m
}

// Reproject recomputes the matrices for the current region from a new camera
// snapshot, e.g. after the camera moved or the window was resized. It does
// nothing and returns false while the default projection is in use.
func (c *Controller) Reproject(frame Frame, sink MatrixSink) bool {
	if !c.applied {
		return false
	}
	c.apply(frame, sink)
	return true
}

// Unlock returns to ModeInteractive at zoom level 1 with the default projection.
func (c *Controller) Unlock(sink MatrixSink) {
	c.mode = ModeInteractive
	c.Restore(sink)
}

// Restore drops any magnification: zoom level 1, centered view and the
// sink's default projection. The mode is unchanged.
func (c *Controller) Restore(sink MatrixSink) {
	sink.ResetProjectionMatrix()
	c.applied = false
	c.state.Level = 1
	c.state.Center = math.Vec2{}
	c.state.Magnifying = false
	c.region = FullRegion
	c.updateOverlay()
}

// ToggleUIVisibility shows or hides the overlay without touching zoom.
func (c *Controller) ToggleUIVisibility() {
	c.state.UIHidden = !c.state.UIHidden
	c.updateOverlay()
}

// Configure replaces the tuning. A level above the new MaxZoom is clamped on
// the next Ingest. Settings.Locked only applies to New.
func (c *Controller) Configure(settings Settings) {
	c.settings = settings
	c.updateOverlay()
}

// Settings returns the current tuning.
func (c *Controller) Settings() Settings { return c.settings }

// State returns a copy of the interaction state.
func (c *Controller) State() ZoomState { return c.state }

// Region returns the region currently framed.
func (c *Controller) Region() Region { return c.region }

// Mode returns the interaction mode.
func (c *Controller) Mode() Mode { return c.mode }

// Phase returns PhaseMagnifying while a zoomed projection is active.
func (c *Controller) Phase() Phase {
	if c.state.Magnifying {
		return PhaseMagnifying
	}
	return PhaseIdle
}

// ShowUI reports whether the overlay should be drawn.
func (c *Controller) ShowUI() bool {
	return c.mode == ModeInteractive && c.state.Magnifying && !c.state.UIHidden
}

// Label returns the zoom level text, e.g. "2.5x".
func (c *Controller) Label() string {
	return ZoomLabel(c.state.Level)
}

// Overlay returns the indicator geometry for the current region.
func (c *Controller) Overlay() Overlay { return c.overlay }

// apply pushes the projection for the current region to the sink.
func (c *Controller) apply(frame Frame, sink MatrixSink) ProjectionMatrices {
	c.aspect = frame.Intrinsics.Aspect
	m := ComputeProjection(frame.Intrinsics, c.region, frame.WorldToView)
	sink.SetProjectionMatrix(m.Projection)
	sink.SetCullingMatrix(m.Culling)
	c.applied = true
	c.updateOverlay()
	return m
}

func (c *Controller) updateOverlay() {
	c.overlay = ComputeOverlay(c.region, c.settings.CanvasWidth, c.aspect)
	c.overlay.Visible = c.ShowUI()
	c.overlay.Label = c.Label()
}
