// Package input folds window events into per-tick input state.
package input

import "github.com/Faultbox/magnifier/internal/magnifier"

// EventType identifies a window event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Key is a keyboard key the viewer reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyH // Toggle magnifier UI
	KeyR // Restore default view
	KeyU // Unlock an explicit region
	KeyP // Save a screenshot
)

// Mouse buttons.
const (
	ButtonLeft   uint8 = 1
	ButtonMiddle uint8 = 2
	ButtonRight  uint8 = 3
)

// Event is a window event translated from the platform layer.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
	// Relative motion in pixels, Y down.
	XRel, YRel int
	Button     uint8
	WheelY     float32
}

// Frame is the input gathered over one tick.
type Frame struct {
	Quit bool

	Resized       bool
	Width, Height int

	Scroll float32

	// Left-button drag, pixels, Y down.
	PanActive        bool
	PanDX, PanDY     float32
	OrbitDX, OrbitDY float32 // Right-button drag

	Pressed []Key
}

// KeyPressed reports whether k went down this tick.
func (f Frame) KeyPressed(k Key) bool {
	for _, p := range f.Pressed {
		if p == k {
			return true
		}
	}
	return false
}

// MagnifierInput converts the pan drag to magnifier input. axisScale turns
// pixels into pointer axis units; the Y axis is flipped to point up.
func (f Frame) MagnifierInput(axisScale float32) magnifier.Input {
	return magnifier.Input{
		Scroll:     f.Scroll,
		DragActive: f.PanActive,
		PointerDX:  f.PanDX * axisScale,
		PointerDY:  -f.PanDY * axisScale,
	}
}

// Accumulator collects events between ticks. Button state persists across
// ticks; everything else is reset by Flush.
type Accumulator struct {
	leftDown  bool
	rightDown bool
	frame     Frame
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Add folds one event into the current tick.
func (a *Accumulator) Add(e Event) {
	f := &a.frame
	switch e.Type {
	case EventQuit:
		f.Quit = true

	case EventWindowResize:
		f.Resized = true
		f.Width = e.Width
		f.Height = e.Height

	case EventKeyDown:
		if e.Key == KeyEscape {
			f.Quit = true
		}
		if e.Key != KeyUnknown {
			f.Pressed = append(f.Pressed, e.Key)
		}

	case EventMouseDown:
		switch e.Button {
		case ButtonLeft:
			a.leftDown = true
			f.PanActive = true
		case ButtonRight:
			a.rightDown = true
		}

	case EventMouseUp:
		switch e.Button {
		case ButtonLeft:
			a.leftDown = false
		case ButtonRight:
			a.rightDown = false
		}

	case EventMouseMove:
		if a.leftDown {
			f.PanDX += float32(e.XRel)
			f.PanDY += float32(e.YRel)
		}
		if a.rightDown {
			f.OrbitDX += float32(e.XRel)
			f.OrbitDY += float32(e.YRel)
		}

	case EventMouseWheel:
		f.Scroll += e.WheelY
	}
}

// Flush returns the tick's input and starts a new tick.
func (a *Accumulator) Flush() Frame {
	f := a.frame
	f.PanActive = f.PanActive || a.leftDown
	a.frame = Frame{}
	return f
}
