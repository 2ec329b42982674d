package viewport

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

type fixedSurface struct{ w, h int }

func (s fixedSurface) Size() (int, int) { return s.w, s.h }

func newReadyCamera(t *testing.T, w, h int) *Camera {
	t.Helper()
	cam := New(DefaultParams())
	if !cam.Attach(fixedSurface{w, h}) {
		t.Fatalf("Expected attach to %dx%d to succeed", w, h)
	}
	return cam
}

func TestCameraStartsUninitialized(t *testing.T) {
	cam := New(Params{})
	if cam.State() != Uninitialized {
		t.Fatalf("Expected state %v, got %v", Uninitialized, cam.State())
	}

	cam.OnResize(640, 480)
	if cam.Snapshot().Width != 0 {
		t.Errorf("Expected resize before attach to be dropped, got width %d", cam.Snapshot().Width)
	}

	if cam.Attach(fixedSurface{0, 480}) {
		t.Errorf("Expected attach to an empty surface to fail")
	}
	if !cam.Attach(fixedSurface{800, 600}) {
		t.Fatalf("Expected attach to succeed")
	}
	if cam.State() != Ready {
		t.Errorf("Expected state %v, got %v", Ready, cam.State())
	}

	// A second attach keeps the first surface size.
	cam.Attach(fixedSurface{10, 10})
	if s := cam.Snapshot(); s.Width != 800 || s.Height != 600 {
		t.Errorf("Expected 800x600 after second attach, got %dx%d", s.Width, s.Height)
	}
}

func TestCameraDefaults(t *testing.T) {
	cam := newReadyCamera(t, 800, 600)
	s := cam.Snapshot()

	if s.Zoom != 1 {
		t.Errorf("Expected zoom 1, got %v", s.Zoom)
	}
	if s.Position != (Offset{}) {
		t.Errorf("Expected position (0, 0), got %+v", s.Position)
	}
	if s.Bounds.Left != -8 || s.Bounds.Top != 6 {
		t.Errorf("Expected bounds left -8 top 6, got %v %v", s.Bounds.Left, s.Bounds.Top)
	}
}

func TestCameraScenario(t *testing.T) {
	cam := newReadyCamera(t, 800, 600)

	cam.OnWheel(-500)
	afterWheel := cam.Snapshot()
	if afterWheel.Zoom <= 1 {
		t.Fatalf("Expected zoom to increase, got %v", afterWheel.Zoom)
	}

	cam.OnDrag(100, 0)
	afterDrag := cam.Snapshot()
	if afterDrag.Position.X >= 0 {
		t.Fatalf("Expected position.x to decrease, got %v", afterDrag.Position.X)
	}
	if afterDrag.Position.Y != 0 {
		t.Errorf("Expected position.y unchanged, got %v", afterDrag.Position.Y)
	}

	cam.OnResize(400, 300)
	afterResize := cam.Snapshot()
	if afterResize.Zoom != afterDrag.Zoom || afterResize.Position != afterDrag.Position {
		t.Errorf("Expected resize to keep zoom %v and position %+v, got %v and %+v",
			afterDrag.Zoom, afterDrag.Position, afterResize.Zoom, afterResize.Position)
	}
	if afterResize.Bounds.Width() != afterDrag.Bounds.Width()/2 || afterResize.Bounds.Height() != afterDrag.Bounds.Height()/2 {
		t.Errorf("Expected bounds to halve, got %+v from %+v", afterResize.Bounds, afterDrag.Bounds)
	}
}

func TestHugeWheelClampsToFloor(t *testing.T) {
	cam := newReadyCamera(t, 800, 600)
	cam.OnWheel(1e9)

	if z := cam.Snapshot().Zoom; z != DefaultZoomFloor {
		t.Errorf("Expected zoom %v, got %v", DefaultZoomFloor, z)
	}
}

func TestResizeIsIdempotent(t *testing.T) {
	cam := newReadyCamera(t, 800, 600)
	cam.OnWheel(-1234)
	cam.OnDrag(-3, 17)

	cam.OnResize(1024, 700)
	first := cam.Snapshot()
	cam.OnResize(1024, 700)
	second := cam.Snapshot()

	if first != second {
		t.Errorf("Expected identical snapshots, got %+v and %+v", first, second)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	cam := newReadyCamera(t, 800, 600)
	s := cam.Snapshot()
	s.Zoom = 42
	s.Position.X = 99

	if got := cam.Snapshot(); got.Zoom == 42 || got.Position.X == 99 {
		t.Errorf("Expected snapshot edits not to leak into the camera, got %+v", got)
	}
}

func TestReset(t *testing.T) {
	cam := newReadyCamera(t, 800, 600)
	cam.OnWheel(-5000)
	cam.OnDrag(40, 40)
	cam.Reset()

	s := cam.Snapshot()
	if s.Zoom != 1 || s.Position != (Offset{}) {
		t.Errorf("Expected reset to zoom 1 at origin, got %v at %+v", s.Zoom, s.Position)
	}
}

func TestDragFollowsCursor(t *testing.T) {
	cam := newReadyCamera(t, 800, 600)
	cam.OnWheel(-3000)

	before := cam.Snapshot()
	wx, wy := before.ScreenToWorld(200, 150)

	cam.OnDrag(25, -40)
	after := cam.Snapshot()
	sx, sy := after.WorldToScreen(wx, wy)

	if !scalar.EqualWithinAbs(sx, 225, 1e-9) || !scalar.EqualWithinAbs(sy, 110, 1e-9) {
		t.Errorf("Expected grabbed point at (225, 110), got (%v, %v)", sx, sy)
	}
}

func TestScreenWorldRoundtrip(t *testing.T) {
	cam := newReadyCamera(t, 1280, 720)
	cam.OnWheel(-800)
	cam.OnDrag(-300, 90)
	s := cam.Snapshot()

	for _, p := range [][2]float64{{0, 0}, {640, 360}, {1280, 720}, {17, 701}} {
		wx, wy := s.ScreenToWorld(p[0], p[1])
		sx, sy := s.WorldToScreen(wx, wy)
		if !scalar.EqualWithinAbs(sx, p[0], 1e-9) || !scalar.EqualWithinAbs(sy, p[1], 1e-9) {
			t.Errorf("Roundtrip failed: (%v, %v) -> (%v, %v) -> (%v, %v)", p[0], p[1], wx, wy, sx, sy)
		}
	}
}

func TestViewProjectionMatchesWorldToScreen(t *testing.T) {
	cam := newReadyCamera(t, 800, 600)
	cam.OnWheel(-2500)
	cam.OnDrag(60, -25)
	s := cam.Snapshot()
	vp := s.ViewProjection()

	for _, p := range [][2]float64{{0, 0}, {3.5, -2}, {-10, 7}} {
		var ndc mat.VecDense
		ndc.MulVec(vp, mat.NewVecDense(4, []float64{p[0], p[1], 0, 1}))

		wantX, wantY := s.WorldToScreen(p[0], p[1])
		gotX := (ndc.AtVec(0) + 1) / 2 * float64(s.Width)
		gotY := (1 - ndc.AtVec(1)) / 2 * float64(s.Height)
		if !scalar.EqualWithinAbs(gotX, wantX, 1e-9) || !scalar.EqualWithinAbs(gotY, wantY, 1e-9) {
			t.Errorf("Point %v: expected (%v, %v), got (%v, %v)", p, wantX, wantY, gotX, gotY)
		}
	}
}

func TestPixelsPerUnit(t *testing.T) {
	cam := newReadyCamera(t, 800, 600)
	if got := cam.Snapshot().PixelsPerUnit(); got != 50 {
		t.Errorf("Expected 50 pixels per unit, got %v", got)
	}
}

func TestParamsFallBackToDefaults(t *testing.T) {
	p := New(Params{ScaleFactor: 40, InitialZoom: 1e-9}).Params()

	if p.PixelsPerUnit != 20 {
		t.Errorf("Expected pixels per unit 20, got %v", p.PixelsPerUnit)
	}
	if p.InitialZoom != DefaultZoomFloor {
		t.Errorf("Expected initial zoom clamped to %v, got %v", DefaultZoomFloor, p.InitialZoom)
	}
	if p.Zoom.DampingScale != DefaultDampingScale {
		t.Errorf("Expected damping scale %v, got %v", DefaultDampingScale, p.Zoom.DampingScale)
	}
}

func TestFitCentresAndFills(t *testing.T) {
	cam := newReadyCamera(t, 800, 600)
	if !cam.Fit(100, 50, 160, 90, 0) {
		t.Fatal("Expected fit to succeed")
	}
	s := cam.Snapshot()
	if s.Position != (Offset{X: 130, Y: 70}) {
		t.Errorf("Expected position (130, 70), got %+v", s.Position)
	}

	// 60x40 into a 16x12 bounds box: width limits at 16/60, height at 12/40.
	want := 16.0 / 60
	if !scalar.EqualWithinAbs(s.Zoom, want, 1e-12) {
		t.Errorf("Expected zoom %v, got %v", want, s.Zoom)
	}
	v := s.Visible()
	if v.Left > 100+1e-9 || v.Right < 160-1e-9 || v.Bottom > 50+1e-9 || v.Top < 90-1e-9 {
		t.Errorf("Expected rectangle inside visible area, got %+v", v)
	}
}

func TestFitEdgeCases(t *testing.T) {
	cam := New(DefaultParams())
	if cam.Fit(0, 0, 1, 1, 0) {
		t.Error("Expected fit before attach to fail")
	}

	cam = newReadyCamera(t, 800, 600)
	if !cam.Fit(5, 5, 5, 5, 0.1) {
		t.Fatal("Expected point fit to succeed")
	}
	if s := cam.Snapshot(); s.Zoom != 1 || s.Position != (Offset{X: 5, Y: 5}) {
		t.Errorf("Expected zoom kept and centred on the point, got %v at %+v", s.Zoom, s.Position)
	}

	if !cam.Fit(0, 0, 1e-9, 0, 0) {
		t.Fatal("Expected thin fit to succeed")
	}
	if z := cam.Snapshot().Zoom; z != DefaultZoomCeiling {
		t.Errorf("Expected zoom clamped to %v, got %v", DefaultZoomCeiling, z)
	}

	if cam.Fit(1, 0, 0, 1, 0) || cam.Fit(math.NaN(), 0, 1, 1, 0) {
		t.Error("Expected inverted or NaN rectangles to be rejected")
	}
}
