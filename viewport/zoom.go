package viewport

import "math"

const (
	DefaultZoom         = 1.0
	DefaultZoomFloor    = 1e-3
	DefaultZoomCeiling  = 1e6
	DefaultDampingScale = 10000.0
)

// ZoomParams tunes the wheel-to-zoom response.
type ZoomParams struct {
	Floor   float64
	Ceiling float64
	// DampingScale is the upper bound of the damping curve. Larger values make
	// the wheel less sensitive.
	DampingScale float64
}

// DefaultZoomParams returns the stock zoom tuning.
func DefaultZoomParams() ZoomParams {
	return ZoomParams{
		Floor:        DefaultZoomFloor,
		Ceiling:      DefaultZoomCeiling,
		DampingScale: DefaultDampingScale,
	}
}

// Damping divides raw wheel input. It grows with zoom and stays within
// (0, scale) for every finite zoom, so it never reaches zero.
func Damping(zoom, scale float64) float64 {
	return scale * (math.Atan(zoom) + math.Pi/2) / math.Pi
}

// ApplyWheelDelta returns the zoom after one wheel event. A negative delta
// (scrolling up in browser convention) zooms in.
func ApplyWheelDelta(current, rawDelta float64, p ZoomParams) float64 {
	if math.IsNaN(rawDelta) || rawDelta == 0 {
		return clampZoom(current, p)
	}
	next := current - rawDelta/Damping(current, p.DampingScale)
	return clampZoom(next, p)
}

func clampZoom(z float64, p ZoomParams) float64 {
	switch {
	case math.IsNaN(z):
		return p.Floor
	case z < p.Floor:
		return p.Floor
	case z > p.Ceiling:
		return p.Ceiling
	}
	return z
}
