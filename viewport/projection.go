// Package viewport implements the camera controller that turns wheel, drag
// and resize events into an orthographic projection for the drawing viewer.
package viewport

import (
	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultScaleFactor maps half the surface in pixels to world units at zoom 1.
	DefaultScaleFactor = 100.0
	DefaultNear        = 0.1
	DefaultFar         = 1000.0
)

// Bounds are the extents of an orthographic projection in world units.
type Bounds struct {
	Left, Right float64
	Top, Bottom float64
	Near, Far   float64
}

// ComputeBounds returns the symmetric projection bounds for a surface of
// width x height pixels. Zoom is not baked in; see Effective.
func ComputeBounds(width, height int, scaleFactor float64) Bounds {
	debugAssert(width > 0 && height > 0, "viewport: non-positive surface size")
	debugAssert(scaleFactor > 0, "viewport: non-positive scale factor")

	w := float64(width) / scaleFactor
	h := float64(height) / scaleFactor
	return Bounds{
		Left:   -w,
		Right:  w,
		Top:    h,
		Bottom: -h,
		Near:   DefaultNear,
		Far:    DefaultFar,
	}
}

// Width is the horizontal extent.
func (b Bounds) Width() float64 { return b.Right - b.Left }

// Height is the vertical extent.
func (b Bounds) Height() float64 { return b.Top - b.Bottom }

// Effective applies zoom around the centre of the bounds, the same way an
// orthographic camera scales its frustum.
func (b Bounds) Effective(zoom float64) Bounds {
	cx := (b.Left + b.Right) / 2
	cy := (b.Top + b.Bottom) / 2
	hw := b.Width() / (2 * zoom)
	hh := b.Height() / (2 * zoom)
	return Bounds{
		Left:   cx - hw,
		Right:  cx + hw,
		Top:    cy + hh,
		Bottom: cy - hh,
		Near:   b.Near,
		Far:    b.Far,
	}
}

// Matrix returns the orthographic projection matrix for the zoomed bounds.
// The layout is row-major and maps camera space to normalized device
// coordinates in [-1, 1].
func (b Bounds) Matrix(zoom float64) *mat.Dense {
	e := b.Effective(zoom)
	w := e.Right - e.Left
	h := e.Top - e.Bottom
	d := e.Far - e.Near
	return mat.NewDense(4, 4, []float64{
		2 / w, 0, 0, -(e.Right + e.Left) / w,
		0, 2 / h, 0, -(e.Top + e.Bottom) / h,
		0, 0, -2 / d, -(e.Far + e.Near) / d,
		0, 0, 0, 1,
	})
}
