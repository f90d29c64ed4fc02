// Package session binds per-tick input to the orbit camera and the
// magnifier controller. It carries no platform or GL state.
package session

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/magnifier/internal/config"
	"github.com/Faultbox/magnifier/internal/engine/camera"
	"github.com/Faultbox/magnifier/internal/engine/input"
	"github.com/Faultbox/magnifier/internal/logger"
	"github.com/Faultbox/magnifier/internal/magnifier"
)

// UsageHint is shown once when the viewer starts.
const UsageHint = "Scroll to zoom, drag to pan the view, press [H] to toggle UI on/off."

// Session owns the camera and the controller for one window.
type Session struct {
	Camera     *camera.OrbitCamera
	Controller *magnifier.Controller

	axisScale float32
	tick      uint64
	log       *zap.Logger

	// Startup-only settings, compared on reload.
	region     []float32
	enableZoom bool
}

// New builds the camera and controller from cfg. When cfg sets an explicit
// region the controller starts locked to it.
func New(cfg *config.Config, aspect float32) *Session {
	cam := camera.NewOrbitCamera(cfg.Camera.FieldOfView, cfg.Camera.NearClip, cfg.Camera.FarClip, aspect)
	cam.Distance = cfg.Camera.Distance

	s := &Session{
		Camera:     cam,
		Controller: magnifier.New(Settings(cfg.Magnifier)),
		axisScale:  cfg.Input.PointerAxisScale,
		log:        logger.Named("session"),
		region:     slices.Clone(cfg.Magnifier.Region),
		enableZoom: cfg.Magnifier.EnableZoom,
	}

	if r, ok := Region(cfg.Magnifier.Region); ok {
		s.Controller.SetExplicitRegion(cam.Frame(s.tick), r, cam)
		s.log.Info("magnifier locked to configured region", zap.String("region", FormatRegion(r)))
	}
	return s
}

// Settings maps the magnifier config onto controller settings. Disabling
// zoom starts the controller locked.
func Settings(m config.MagnifierConfig) magnifier.Settings {
	return magnifier.Settings{
		PanSensitivity:    m.PanSensitivity,
		ScrollSensitivity: m.ScrollSensitivity,
		MaxZoom:           m.MaxZoom,
		CanvasWidth:       m.CanvasWidth,
		Locked:            !m.EnableZoom,
		Debug:             m.Debug,
	}
}

// Region converts a configured xmin, xmax, ymin, ymax list. It reports false
// for anything but exactly four values.
func Region(v []float32) (magnifier.Region, bool) {
	if len(v) != 4 {
		return magnifier.Region{}, false
	}
	return magnifier.Region{XMin: v[0], XMax: v[1], YMin: v[2], YMax: v[3]}, true
}

// FormatRegion renders r for logs.
func FormatRegion(r magnifier.Region) string {
	return fmt.Sprintf("[%.2f, %.2f] x [%.2f, %.2f]", r.XMin, r.XMax, r.YMin, r.YMax)
}

// Tick returns the number of frames processed.
func (s *Session) Tick() uint64 { return s.tick }

// Update applies one frame of input. Keys are handled first, then the
// camera orbit, then zoom and pan. If the camera changed without any zoom
// input the active magnified projection is recomputed for the new view.
func (s *Session) Update(f input.Frame) magnifier.StateChange {
	s.tick++
	cameraMoved := false

	if f.Resized && f.Width > 0 && f.Height > 0 {
		s.Camera.SetAspect(float32(f.Width) / float32(f.Height))
		cameraMoved = true
	}

	for _, k := range f.Pressed {
		switch k {
		case input.KeyH:
			s.Controller.ToggleUIVisibility()
		case input.KeyR:
			s.Controller.Restore(s.Camera)
			s.log.Info("view restored")
		case input.KeyU:
			if s.Controller.Mode() == magnifier.ModeLocked {
				s.Controller.Unlock(s.Camera)
				s.log.Info("magnifier unlocked")
			}
		}
	}

	if f.OrbitDX != 0 || f.OrbitDY != 0 {
		s.Camera.HandleDrag(f.OrbitDX, f.OrbitDY)
		cameraMoved = true
	}

	frame := s.Camera.Frame(s.tick)
	change := s.Controller.Ingest(frame, f.MagnifierInput(s.axisScale), s.Camera)
	if !change.Changed && cameraMoved {
		s.Controller.Reproject(frame, s.Camera)
	}

	switch {
	case change.Entered():
		s.log.Debug("magnifying", zap.Float32("zoom", change.State.Level))
	case change.Exited():
		s.log.Debug("magnifier idle")
	}
	return change
}

// Apply takes over a reloaded config. The interaction mode and the current
// zoom are kept; camera intrinsics and tuning are replaced. Edits to
// magnifier.region and magnifier.enable_zoom only take effect on restart.
func (s *Session) Apply(cfg *config.Config) {
	if !slices.Equal(cfg.Magnifier.Region, s.region) {
		s.log.Warn("magnifier.region changed, restart to apply",
			zap.Float32s("running", s.region),
			zap.Float32s("configured", cfg.Magnifier.Region),
		)
	}
	if cfg.Magnifier.EnableZoom != s.enableZoom {
		s.log.Warn("magnifier.enable_zoom changed, restart to apply",
			zap.Bool("running", s.enableZoom),
			zap.Bool("configured", cfg.Magnifier.EnableZoom),
		)
	}

	s.Controller.Configure(Settings(cfg.Magnifier))
	s.axisScale = cfg.Input.PointerAxisScale

	s.Camera.FovY = cfg.Camera.FieldOfView
	s.Camera.Near = cfg.Camera.NearClip
	s.Camera.Far = cfg.Camera.FarClip
	s.Camera.Distance = cfg.Camera.Distance
	s.Controller.Reproject(s.Camera.Frame(s.tick), s.Camera)

	s.log.Info("settings applied",
		zap.Float32("max_zoom", cfg.Magnifier.MaxZoom),
		zap.Float32("pan_sensitivity", cfg.Magnifier.PanSensitivity),
		zap.Float32("scroll_sensitivity", cfg.Magnifier.ScrollSensitivity),
	)
}

// Title returns the window title, carrying the zoom label while the
// magnifier UI is shown.
func (s *Session) Title(base string) string {
	if !s.Controller.ShowUI() {
		return base
	}
	return base + " - " + s.Controller.Label()
}
