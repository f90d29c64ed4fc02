package magnifier

import "fmt"

// Overlay is the minimap-style indicator of the magnified region.
// Positions are relative to the canvas center, Y up, in canvas pixels.
type Overlay struct {
	Visible bool

	CanvasWidth  float32
	CanvasHeight float32

	CenterX, CenterY float32
	Width, Height    float32

	Label string
}

// ComputeOverlay maps r onto a canvas canvasWidth pixels wide whose height
// follows the view aspect.
func ComputeOverlay(r Region, canvasWidth, aspect float32) Overlay {
	canvasHeight := canvasWidth / aspect
	return Overlay{
		CanvasWidth:  canvasWidth,
		CanvasHeight: canvasHeight,
		CenterX:      (r.XMin + r.XMax) * canvasWidth * 0.25,
		CenterY:      (r.YMin + r.YMax) * canvasHeight * 0.25,
		Width:        (r.XMax - r.XMin) * 0.5 * canvasWidth,
		Height:       (r.YMax - r.YMin) * 0.5 * canvasHeight,
	}
}

// CanvasCenter returns the window pixel position (origin bottom-left) of the
// canvas center when the canvas sits margin pixels from the lower-right
// corner of a window windowWidth pixels wide.
func (o Overlay) CanvasCenter(windowWidth, margin float32) (x, y float32) {
	return windowWidth - margin - o.CanvasWidth/2, margin + o.CanvasHeight/2
}

// ZoomLabel formats a zoom level with one decimal, e.g. "2.0x".
func ZoomLabel(level float32) string {
	return fmt.Sprintf("%.1fx", level)
}
