package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Host defines the callbacks the input system needs from the viewer.
type Host interface {
	OnWheel(rawDelta float64)
	OnDrag(movementX, movementY float64)
	ResetView()
	FitView()
	RequestScreenshot()
	ReloadDrawing()
	ExportOffset()
	IsMouseOver(mx, my int) bool
}

// Sample is the device state read once per frame.
type Sample struct {
	CursorX, CursorY int
	// WheelY is in ebiten notches, positive away from the user.
	WheelY float64

	Left, Middle bool

	// Held keys.
	ZoomIn, ZoomOut bool

	// Keys pressed this frame.
	Reset, Fit, Screenshot, Reload, Offset bool
}

// Poll reads the current ebiten input state.
func Poll() Sample {
	mx, my := ebiten.CursorPosition()
	_, dy := ebiten.Wheel()
	return Sample{
		CursorX: mx,
		CursorY: my,
		WheelY:  dy,
		Left:    ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Middle:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle),
		ZoomIn:  ebiten.IsKeyPressed(ebiten.KeyEqual) || ebiten.IsKeyPressed(ebiten.KeyNumpadAdd),
		ZoomOut: ebiten.IsKeyPressed(ebiten.KeyMinus) || ebiten.IsKeyPressed(ebiten.KeyNumpadSubtract),
		Reset: inpututil.IsKeyJustPressed(ebiten.KeyDigit0) ||
			inpututil.IsKeyJustPressed(ebiten.KeyNumpad0),
		Fit:        inpututil.IsKeyJustPressed(ebiten.KeyF),
		Screenshot: inpututil.IsKeyJustPressed(ebiten.KeyF12),
		Reload:     inpututil.IsKeyJustPressed(ebiten.KeyR),
		Offset:     inpututil.IsKeyJustPressed(ebiten.KeyO),
	}
}

// Dispatcher turns samples into camera and viewer calls.
type Dispatcher struct {
	host Host

	// WheelScale converts notches to pixel deltas.
	WheelScale float64
	// KeyZoomStep is the pixel delta applied per frame while +/- is held.
	KeyZoomStep float64

	panning    bool
	blocked    bool
	lastMouseX int
	lastMouseY int
}

func NewDispatcher(h Host, wheelScale, keyZoomStep float64) *Dispatcher {
	return &Dispatcher{host: h, WheelScale: wheelScale, KeyZoomStep: keyZoomStep}
}

// Panning reports whether a drag is in progress.
func (d *Dispatcher) Panning() bool { return d.panning }

// Feed processes one frame of input.
func (d *Dispatcher) Feed(s Sample) {
	d.handleControlKeys(s)
	d.handleZoom(s)
	d.handlePanning(s)
}

func (d *Dispatcher) handleControlKeys(s Sample) {
	if s.Screenshot {
		d.host.RequestScreenshot()
	}
	if s.Reset {
		d.host.ResetView()
	}
	if s.Fit {
		d.host.FitView()
	}
	if s.Reload {
		d.host.ReloadDrawing()
	}
	if s.Offset {
		d.host.ExportOffset()
	}
}

func (d *Dispatcher) handleZoom(s Sample) {
	if s.WheelY != 0 {
		// Browser convention: scrolling up is a negative delta.
		d.host.OnWheel(-s.WheelY * d.WheelScale)
	}
	if s.ZoomIn {
		d.host.OnWheel(-d.KeyZoomStep)
	}
	if s.ZoomOut {
		d.host.OnWheel(d.KeyZoomStep)
	}
}

// A press that starts over UI chrome never pans, even once the cursor
// leaves the chrome.
func (d *Dispatcher) handlePanning(s Sample) {
	held := s.Left || s.Middle
	if !held {
		d.panning = false
		d.blocked = false
		return
	}
	if d.blocked {
		return
	}
	if !d.panning {
		if d.host.IsMouseOver(s.CursorX, s.CursorY) {
			d.blocked = true
			return
		}
		d.panning = true
		d.lastMouseX, d.lastMouseY = s.CursorX, s.CursorY
		return
	}
	dx := s.CursorX - d.lastMouseX
	dy := s.CursorY - d.lastMouseY
	if dx != 0 || dy != 0 {
		d.host.OnDrag(float64(dx), float64(dy))
	}
	d.lastMouseX, d.lastMouseY = s.CursorX, s.CursorY
}
