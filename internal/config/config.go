// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window    WindowConfig    `yaml:"window" envPrefix:"WINDOW_"`
	Camera    CameraConfig    `yaml:"camera" envPrefix:"CAMERA_"`
	Magnifier MagnifierConfig `yaml:"magnifier" envPrefix:"ZOOM_"`
	Input     InputConfig     `yaml:"input" envPrefix:"INPUT_"`
	Logging   LoggingConfig   `yaml:"logging" envPrefix:"LOG_"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title" env:"TITLE"`
	Width      int    `yaml:"width" env:"WIDTH"`
	Height     int    `yaml:"height" env:"HEIGHT"`
	Fullscreen bool   `yaml:"fullscreen" env:"FULLSCREEN"`
	VSync      bool   `yaml:"vsync" env:"VSYNC"`
	// Where [P] writes screenshots. Empty means the working directory.
	ScreenshotDir string `yaml:"screenshot_dir" env:"SCREENSHOT_DIR"`
}

// CameraConfig holds the camera intrinsics and orbit distance.
type CameraConfig struct {
	FieldOfView float32 `yaml:"field_of_view" env:"FOV"` // Vertical, degrees
	NearClip    float32 `yaml:"near_clip" env:"NEAR"`
	FarClip     float32 `yaml:"far_clip" env:"FAR"`
	Distance    float32 `yaml:"distance" env:"DISTANCE"`
}

// MagnifierConfig holds zoom and pan tuning.
type MagnifierConfig struct {
	EnableZoom        bool    `yaml:"enable_zoom" env:"ENABLE"`
	PanSensitivity    float32 `yaml:"pan_sensitivity" env:"PAN_SENSITIVITY"`
	ScrollSensitivity float32 `yaml:"scroll_sensitivity" env:"SCROLL_SENSITIVITY"`
	MaxZoom           float32 `yaml:"max_zoom" env:"MAX"`
	CanvasWidth       float32 `yaml:"canvas_width" env:"CANVAS_WIDTH"`
	OverlayMargin     float32 `yaml:"overlay_margin" env:"OVERLAY_MARGIN"`
	Debug             bool    `yaml:"debug" env:"DEBUG"`
	// Optional fixed region xmin, xmax, ymin, ymax. When set, interactive
	// zoom is locked to it at startup.
	Region []float32 `yaml:"region,omitempty" env:"REGION"`
}

// InputConfig holds pointer settings.
type InputConfig struct {
	// Pointer axis units per pixel of mouse motion.
	PointerAxisScale float32 `yaml:"pointer_axis_scale" env:"POINTER_AXIS_SCALE"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" env:"LEVEL"`
	LogFile string `yaml:"log_file" env:"FILE"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Magnifier",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Camera: CameraConfig{
			FieldOfView: 60,
			NearClip:    0.3,
			FarClip:     1000,
			Distance:    40,
		},
		Magnifier: MagnifierConfig{
			EnableZoom:        true,
			PanSensitivity:    0.1,
			ScrollSensitivity: 0.2,
			MaxZoom:           20,
			CanvasWidth:       100,
			OverlayMargin:     16,
		},
		Input: InputConfig{
			PointerAxisScale: 0.1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
