// Package viewer implements the demo render loop around the magnifier.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/magnifier/internal/config"
	"github.com/Faultbox/magnifier/internal/engine/capture"
	"github.com/Faultbox/magnifier/internal/engine/input"
	"github.com/Faultbox/magnifier/internal/engine/renderer"
	"github.com/Faultbox/magnifier/internal/engine/scene"
	"github.com/Faultbox/magnifier/internal/engine/window"
	"github.com/Faultbox/magnifier/internal/logger"
	"github.com/Faultbox/magnifier/internal/session"
)

const (
	gridSize    = 24
	gridSpacing = 2.5
)

// Viewer is the main viewer instance.
type Viewer struct {
	config  *config.Config
	running bool
	title   string
	shown   string // Title currently set on the window

	window   *window.Window
	renderer *renderer.Renderer
	events   *input.Accumulator
	session  *session.Session
	scene    *scene.Scene
	watcher  *config.Watcher
	capture  *capture.Capturer
}

// New creates the window, the renderer and the magnifier session. When
// configPath is not empty the file is watched and edits are applied live.
func New(cfg *config.Config, configPath string) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	v := &Viewer{
		config:  cfg,
		title:   cfg.Window.Title,
		shown:   cfg.Window.Title,
		events:  input.NewAccumulator(),
		scene:   scene.NewGrid(gridSize, gridSpacing),
		capture: capture.New(cfg.Window.ScreenshotDir, "magnifier"),
	}

	// Create window (this also creates OpenGL context)
	var err error
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := v.window.GetSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:         width,
		Height:        height,
		OverlayMargin: cfg.Magnifier.OverlayMargin,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.session = session.New(cfg, float32(width)/float32(max(height, 1)))

	if configPath != "" {
		v.watcher, err = config.Watch(configPath)
		if err != nil {
			logger.Warn("config hot reload disabled", zap.String("path", configPath), zap.Error(err))
		}
	}

	logger.Info("viewer initialized successfully")
	return v, nil
}

// Run starts the main loop and returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info(session.UsageHint)

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		v.window.PollEvents(v.events)
		frame := v.events.Flush()
		if frame.Quit {
			v.running = false
			break
		}
		if frame.Resized {
			v.renderer.Resize(frame.Width, frame.Height)
		}

		// 2. Pick up config edits
		v.reload()

		// 3. Update magnifier state
		v.session.Update(frame)

		// 4. Render
		v.render()

		if frame.KeyPressed(input.KeyP) {
			v.screenshot()
		}

		// 5. Present (swap buffers)
		if t := v.session.Title(v.title); t != v.shown {
			v.window.SetTitle(t)
			v.shown = t
		}
		v.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.watcher != nil {
		if err := v.watcher.Close(); err != nil {
			logger.Warn("closing config watcher", zap.Error(err))
		}
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

// reload applies the latest config published by the watcher, if any.
func (v *Viewer) reload() {
	if v.watcher == nil {
		return
	}
	select {
	case cfg, ok := <-v.watcher.Updates():
		if !ok {
			v.watcher = nil
			return
		}
		v.config = cfg
		v.title = cfg.Window.Title
		v.session.Apply(cfg)
	default:
	}
}

// screenshot saves the frame just rendered, tagged with the zoom label.
func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	tag := ""
	if v.session.Controller.State().Magnifying {
		tag = v.session.Controller.Label()
	}
	path, err := v.capture.Save(pixels, w, h, tag)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// render draws the culled scene through the camera and the magnifier overlay.
func (v *Viewer) render() {
	cam := v.session.Camera

	v.renderer.Begin()
	visible := v.scene.Visible(cam.CullingMatrix())
	v.renderer.DrawScene(v.scene, visible, cam.ProjectionMatrix(), cam.ViewMatrix())
	v.renderer.DrawOverlay(v.session.Controller.Overlay())
	v.renderer.End()
}
