package viewport

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Params tunes a Camera. Zero fields fall back to the defaults.
type Params struct {
	ScaleFactor float64
	// PixelsPerUnit sets drag sensitivity at zoom 1. Half the scale factor
	// keeps the drawing locked to the cursor.
	PixelsPerUnit float64
	InitialZoom   float64
	Zoom          ZoomParams
}

// DefaultParams returns the stock camera tuning.
func DefaultParams() Params {
	return Params{
		ScaleFactor:   DefaultScaleFactor,
		PixelsPerUnit: DefaultScaleFactor / 2,
		InitialZoom:   DefaultZoom,
		Zoom:          DefaultZoomParams(),
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.ScaleFactor <= 0 {
		p.ScaleFactor = d.ScaleFactor
	}
	if p.PixelsPerUnit <= 0 {
		p.PixelsPerUnit = p.ScaleFactor / 2
	}
	if p.Zoom.Floor <= 0 {
		p.Zoom.Floor = d.Zoom.Floor
	}
	if p.Zoom.Ceiling <= p.Zoom.Floor {
		p.Zoom.Ceiling = d.Zoom.Ceiling
	}
	if p.Zoom.DampingScale <= 0 {
		p.Zoom.DampingScale = d.Zoom.DampingScale
	}
	if p.InitialZoom <= 0 {
		p.InitialZoom = d.InitialZoom
	}
	p.InitialZoom = clampZoom(p.InitialZoom, p.Zoom)
	return p
}

// State is the camera lifecycle.
type State int

const (
	Uninitialized State = iota
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Surface is the render target a camera attaches to.
type Surface interface {
	Size() (width, height int)
}

// Camera owns zoom, pan and surface size, and derives the transform handed
// to the renderer. It is not safe for concurrent use; drive it from the
// goroutine that dispatches input and renders.
type Camera struct {
	params Params
	state  State

	width, height int
	zoom          float64
	pos           Offset
}

// New creates an unattached camera.
func New(p Params) *Camera {
	p = p.withDefaults()
	return &Camera{
		params: p,
		zoom:   p.InitialZoom,
	}
}

// Params returns the effective tuning.
func (c *Camera) Params() Params { return c.params }

// State reports the lifecycle state.
func (c *Camera) State() State { return c.state }

// Ready reports whether the camera has a surface.
func (c *Camera) Ready() bool { return c.state == Ready }

// Attach reads the initial size of s and moves the camera to Ready. It
// returns false while the surface has no area yet, and is a no-op once the
// camera is Ready.
func (c *Camera) Attach(s Surface) bool {
	if c.state == Ready {
		return true
	}
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return false
	}
	c.width, c.height = w, h
	c.state = Ready
	return true
}

// OnResize records a new surface size. Zoom and pan are kept. Events that
// arrive before Attach are dropped. Callers filter non-positive sizes; see
// ResizeWatcher.
func (c *Camera) OnResize(width, height int) {
	if c.state != Ready {
		return
	}
	debugAssert(width > 0 && height > 0, "viewport: non-positive resize")
	c.width, c.height = width, height
}

// OnWheel applies one wheel event.
func (c *Camera) OnWheel(rawDelta float64) {
	c.zoom = ApplyWheelDelta(c.zoom, rawDelta, c.params.Zoom)
}

// OnDrag applies one pointer movement made with the drag button held.
func (c *Camera) OnDrag(movementX, movementY float64) {
	c.pos = ApplyDrag(c.pos, movementX, movementY, c.zoom, c.params.PixelsPerUnit)
}

// Reset restores the initial zoom and centres the camera on the origin.
func (c *Camera) Reset() {
	c.zoom = c.params.InitialZoom
	c.pos = Offset{}
}

// Fit centres the camera on the world rectangle and picks the zoom at which
// the rectangle fills the surface, with margin (a fraction of its size) left
// around it. A rectangle with no area along an axis only constrains the
// other axis; a single point keeps the zoom. Fit reports false before the
// camera is Ready or for an invalid rectangle.
func (c *Camera) Fit(minX, minY, maxX, maxY, margin float64) bool {
	if c.state != Ready {
		return false
	}
	for _, v := range []float64{minX, minY, maxX, maxY} {
		if !finite(v) {
			return false
		}
	}
	if maxX < minX || maxY < minY {
		return false
	}
	if !(margin > 0) {
		margin = 0
	}

	b := ComputeBounds(c.width, c.height, c.params.ScaleFactor)
	zoom := math.Inf(1)
	if w := (maxX - minX) * (1 + margin); w > 0 {
		zoom = math.Min(zoom, b.Width()/w)
	}
	if h := (maxY - minY) * (1 + margin); h > 0 {
		zoom = math.Min(zoom, b.Height()/h)
	}
	if !math.IsInf(zoom, 1) {
		c.zoom = clampZoom(zoom, c.params.Zoom)
	}
	c.pos = Offset{X: minX/2 + maxX/2, Y: minY/2 + maxY/2}
	return true
}

// Bind subscribes the camera to w. The returned func removes the
// subscription and must be called when the camera is torn down.
func (c *Camera) Bind(w *ResizeWatcher) (unbind func()) {
	return w.Subscribe(c.OnResize)
}

// Snapshot returns the current transform. Bounds are zero until the camera
// is Ready.
func (c *Camera) Snapshot() Transform {
	t := Transform{
		Position: c.pos,
		Zoom:     c.zoom,
		Width:    c.width,
		Height:   c.height,
	}
	if c.state == Ready {
		t.Bounds = ComputeBounds(c.width, c.height, c.params.ScaleFactor)
	}
	return t
}

// Transform is a read-only snapshot of the camera.
type Transform struct {
	Bounds   Bounds
	Position Offset
	Zoom     float64

	// Surface size the bounds were derived from, in pixels.
	Width, Height int
}

// Visible returns the world rectangle covered by the surface.
func (t Transform) Visible() Bounds {
	e := t.Bounds.Effective(t.Zoom)
	e.Left += t.Position.X
	e.Right += t.Position.X
	e.Top += t.Position.Y
	e.Bottom += t.Position.Y
	return e
}

// PixelsPerUnit is the on-screen size of one world unit.
func (t Transform) PixelsPerUnit() float64 {
	w := t.Bounds.Width()
	if w == 0 {
		return 0
	}
	return float64(t.Width) * t.Zoom / w
}

// WorldToScreen maps a world point to surface pixels, origin top-left.
func (t Transform) WorldToScreen(wx, wy float64) (sx, sy float64) {
	v := t.Visible()
	sx = (wx - v.Left) / v.Width() * float64(t.Width)
	sy = (v.Top - wy) / v.Height() * float64(t.Height)
	return sx, sy
}

// ScreenToWorld is the inverse of WorldToScreen.
func (t Transform) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	v := t.Visible()
	wx = v.Left + sx/float64(t.Width)*v.Width()
	wy = v.Top - sy/float64(t.Height)*v.Height()
	return wx, wy
}

// cameraZ is the height of the camera above the drawing plane.
const cameraZ = 1.0

// ViewProjection returns projection x view. The view translates the world so
// the camera sits at (Position.X, Position.Y, cameraZ) looking down -Z.
func (t Transform) ViewProjection() *mat.Dense {
	view := mat.NewDense(4, 4, []float64{
		1, 0, 0, -t.Position.X,
		0, 1, 0, -t.Position.Y,
		0, 0, 1, -cameraZ,
		0, 0, 0, 1,
	})
	var vp mat.Dense
	vp.Mul(t.Bounds.Matrix(t.Zoom), view)
	return &vp
}
