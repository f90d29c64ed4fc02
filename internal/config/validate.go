package config

import (
	"errors"
	"fmt"
)

// Validate reports every setting that would give the camera or the
// magnifier a degenerate frustum or tuning.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		add("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}

	cam := c.Camera
	if cam.NearClip <= 0 {
		add("camera.near_clip %v must be > 0", cam.NearClip)
	}
	if cam.FarClip <= cam.NearClip {
		add("camera.far_clip %v must be > near_clip %v", cam.FarClip, cam.NearClip)
	}
	if cam.FieldOfView <= 0 || cam.FieldOfView >= 180 {
		add("camera.field_of_view %v must be in (0, 180)", cam.FieldOfView)
	}
	if cam.Distance <= 0 {
		add("camera.distance %v must be > 0", cam.Distance)
	}

	m := c.Magnifier
	if m.MaxZoom < 1 {
		add("magnifier.max_zoom %v must be >= 1", m.MaxZoom)
	}
	if m.PanSensitivity < 0 {
		add("magnifier.pan_sensitivity %v must be >= 0", m.PanSensitivity)
	}
	if m.ScrollSensitivity < 0 {
		add("magnifier.scroll_sensitivity %v must be >= 0", m.ScrollSensitivity)
	}
	if m.CanvasWidth <= 0 {
		add("magnifier.canvas_width %v must be > 0", m.CanvasWidth)
	}
	if len(m.Region) > 0 {
		if err := validateRegion(m.Region); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func validateRegion(r []float32) error {
	if len(r) != 4 {
		return fmt.Errorf("magnifier.region needs 4 values (xmin, xmax, ymin, ymax), got %d", len(r))
	}
	for _, v := range r {
		if v < -1 || v > 1 {
			return fmt.Errorf("magnifier.region value %v outside [-1, 1]", v)
		}
	}
	if r[0] >= r[1] || r[2] >= r[3] {
		return fmt.Errorf("magnifier.region %v must satisfy xmin < xmax and ymin < ymax", r)
	}
	return nil
}
