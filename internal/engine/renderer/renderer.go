// Package renderer draws the demo scene and the magnifier overlay with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/magnifier/internal/engine/scene"
	"github.com/Faultbox/magnifier/internal/engine/shader"
	"github.com/Faultbox/magnifier/internal/logger"
	"github.com/Faultbox/magnifier/internal/magnifier"
	"github.com/Faultbox/magnifier/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	// Distance in pixels between the overlay canvas and the window corner.
	OverlayMargin float32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	sceneProgram   *shader.Program
	overlayProgram *shader.Program

	cubeVAO, cubeVBO uint32
	quadVAO, quadVBO uint32
}

const sceneVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uMVP;

out vec3 vNormal;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vNormal = aNormal;
}
`

const sceneFragmentShader = `
#version 410 core

in vec3 vNormal;

uniform vec4 uColor;

out vec4 FragColor;

void main() {
	vec3 light = normalize(vec3(0.4, 1.0, 0.6));
	float shade = 0.35 + 0.65 * max(dot(normalize(vNormal), light), 0.0);
	FragColor = vec4(uColor.rgb * shade, uColor.a);
}
`

const overlayVertexShader = `
#version 410 core

layout (location = 0) in vec2 aPos;

uniform mat4 uMVP;

void main() {
	gl_Position = uMVP * vec4(aPos, 0.0, 1.0);
}
`

const overlayFragmentShader = `
#version 410 core

uniform vec4 uColor;

out vec4 FragColor;

void main() {
	FragColor = uColor;
}
`

// New creates a new renderer.
// The OpenGL context must exist before this is called.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.sceneProgram, err = shader.New(sceneVertexShader, sceneFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("scene shader: %w", err)
	}
	r.overlayProgram, err = shader.New(overlayVertexShader, overlayFragmentShader)
	if err != nil {
		r.sceneProgram.Delete()
		return nil, fmt.Errorf("overlay shader: %w", err)
	}

	r.cubeVAO, r.cubeVBO = upload(cubeVertices(), 3, 3)
	r.quadVAO, r.quadVBO = upload(quadVertices(), 2)

	logger.Debug("renderer created",
		zap.Uint32("cube_vao", r.cubeVAO),
		zap.Uint32("quad_vao", r.quadVAO),
	)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, vao := range []*uint32{&r.cubeVAO, &r.quadVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
		}
	}
	for _, vbo := range []*uint32{&r.cubeVBO, &r.quadVBO} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
		}
	}
	if r.sceneProgram != nil {
		r.sceneProgram.Delete()
	}
	if r.overlayProgram != nil {
		r.overlayProgram.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// DrawScene draws the visible instances with the given projection and view.
func (r *Renderer) DrawScene(s *scene.Scene, visible []int, projection, view math.Mat4) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)

	r.sceneProgram.Use()
	gl.BindVertexArray(r.cubeVAO)

	viewProj := projection.Mul(view)
	for _, i := range visible {
		inst := s.Instances[i]
		r.sceneProgram.SetMat4("uMVP", viewProj.Mul(inst.Model()))
		r.sceneProgram.SetVec4("uColor", inst.Color[0], inst.Color[1], inst.Color[2], 1)
		gl.DrawArrays(gl.TRIANGLES, 0, 36)
	}
}

// DrawOverlay draws the magnifier canvas in the lower-right corner with the
// indicator rectangle on top of it.
func (r *Renderer) DrawOverlay(o magnifier.Overlay) {
	if !o.Visible {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	r.overlayProgram.Use()
	gl.BindVertexArray(r.quadVAO)

	screen := math.Ortho(0, float32(r.config.Width), 0, float32(r.config.Height), -1, 1)
	cx, cy := o.CanvasCenter(float32(r.config.Width), r.config.OverlayMargin)

	// Canvas background and border.
	r.drawRect(screen, cx, cy, o.CanvasWidth, o.CanvasHeight, [4]float32{0, 0, 0, 0.45}, gl.TRIANGLE_FAN)
	r.drawRect(screen, cx, cy, o.CanvasWidth, o.CanvasHeight, [4]float32{1, 1, 1, 0.6}, gl.LINE_LOOP)

	// Indicator.
	r.drawRect(screen, cx+o.CenterX, cy+o.CenterY, o.Width, o.Height, [4]float32{1, 0.85, 0.2, 0.25}, gl.TRIANGLE_FAN)
	r.drawRect(screen, cx+o.CenterX, cy+o.CenterY, o.Width, o.Height, [4]float32{1, 0.85, 0.2, 1}, gl.LINE_LOOP)
}

func (r *Renderer) drawRect(screen math.Mat4, cx, cy, w, h float32, color [4]float32, mode uint32) {
	model := math.Translate(cx-w/2, cy-h/2, 0).Mul(math.Scale(w, h, 1))
	r.overlayProgram.SetMat4("uMVP", screen.Mul(model))
	r.overlayProgram.SetVec4("uColor", color[0], color[1], color[2], color[3])
	gl.DrawArrays(mode, 0, 4)
}

// upload creates a VAO/VBO pair for interleaved float32 attributes of the
// given component counts, bound to locations 0..n-1.
func upload(vertices []float32, components ...int32) (uint32, uint32) {
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	var stride int32
	for _, c := range components {
		stride += c * 4
	}
	var offset uintptr
	for i, c := range components {
		gl.VertexAttribPointerWithOffset(uint32(i), c, gl.FLOAT, false, stride, offset)
		gl.EnableVertexAttribArray(uint32(i))
		offset += uintptr(c * 4)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}
