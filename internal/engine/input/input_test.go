package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlushResetsTick(t *testing.T) {
	a := NewAccumulator()
	a.Add(Event{Type: EventMouseWheel, WheelY: 1})
	a.Add(Event{Type: EventMouseWheel, WheelY: 2})

	f := a.Flush()
	assert.Equal(t, float32(3), f.Scroll)

	f = a.Flush()
	assert.Zero(t, f.Scroll)
}

func TestPanOnlyWhileLeftHeld(t *testing.T) {
	a := NewAccumulator()
	a.Add(Event{Type: EventMouseMove, XRel: 5, YRel: 5})
	f := a.Flush()
	assert.False(t, f.PanActive)
	assert.Zero(t, f.PanDX)

	a.Add(Event{Type: EventMouseDown, Button: ButtonLeft})
	a.Add(Event{Type: EventMouseMove, XRel: 3, YRel: -4})
	a.Add(Event{Type: EventMouseMove, XRel: 1, YRel: 1})
	f = a.Flush()
	assert.True(t, f.PanActive)
	assert.Equal(t, float32(4), f.PanDX)
	assert.Equal(t, float32(-3), f.PanDY)

	// Still held on the next tick.
	f = a.Flush()
	assert.True(t, f.PanActive)

	a.Add(Event{Type: EventMouseUp, Button: ButtonLeft})
	f = a.Flush()
	assert.False(t, f.PanActive)
}

func TestClickWithinOneTickIsActive(t *testing.T) {
	a := NewAccumulator()
	a.Add(Event{Type: EventMouseDown, Button: ButtonLeft})
	a.Add(Event{Type: EventMouseMove, XRel: 2})
	a.Add(Event{Type: EventMouseUp, Button: ButtonLeft})

	f := a.Flush()
	assert.True(t, f.PanActive)
	assert.Equal(t, float32(2), f.PanDX)
}

func TestOrbitWhileRightHeld(t *testing.T) {
	a := NewAccumulator()
	a.Add(Event{Type: EventMouseDown, Button: ButtonRight})
	a.Add(Event{Type: EventMouseMove, XRel: 7, YRel: 2})

	f := a.Flush()
	assert.Equal(t, float32(7), f.OrbitDX)
	assert.Equal(t, float32(2), f.OrbitDY)
	assert.False(t, f.PanActive)
	assert.Zero(t, f.PanDX)
}

func TestKeys(t *testing.T) {
	a := NewAccumulator()
	a.Add(Event{Type: EventKeyDown, Key: KeyH})
	a.Add(Event{Type: EventKeyDown, Key: KeyUnknown})
	a.Add(Event{Type: EventKeyUp, Key: KeyR})

	f := a.Flush()
	assert.True(t, f.KeyPressed(KeyH))
	assert.False(t, f.KeyPressed(KeyR))
	assert.Len(t, f.Pressed, 1)
	assert.False(t, f.Quit)
}

func TestQuit(t *testing.T) {
	a := NewAccumulator()
	a.Add(Event{Type: EventKeyDown, Key: KeyEscape})
	assert.True(t, a.Flush().Quit)

	a.Add(Event{Type: EventQuit})
	assert.True(t, a.Flush().Quit)
}

func TestResize(t *testing.T) {
	a := NewAccumulator()
	a.Add(Event{Type: EventWindowResize, Width: 800, Height: 600})
	a.Add(Event{Type: EventWindowResize, Width: 1024, Height: 768})

	f := a.Flush()
	assert.True(t, f.Resized)
	assert.Equal(t, 1024, f.Width)
	assert.Equal(t, 768, f.Height)
}

func TestMagnifierInput(t *testing.T) {
	f := Frame{Scroll: 2, PanActive: true, PanDX: 10, PanDY: 20}
	in := f.MagnifierInput(0.1)

	assert.Equal(t, float32(2), in.Scroll)
	assert.True(t, in.DragActive)
	assert.InDelta(t, 1, in.PointerDX, 1e-6)
	// Screen Y grows downward, the pointer axis grows upward.
	assert.InDelta(t, -2, in.PointerDY, 1e-6)
}
