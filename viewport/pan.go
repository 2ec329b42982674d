package viewport

import "math"

// Offset is the camera position in world units.
type Offset struct {
	X, Y float64
}

// ApplyDrag moves the camera against a pointer drag of (movementX, movementY)
// screen pixels. The step shrinks as zoom grows so the drawing follows the
// cursor at every zoom level. Screen y grows downward, world y upward.
// Movements that are not finite, or that would push the offset past the
// float range, leave the offset unchanged.
func ApplyDrag(cur Offset, movementX, movementY, zoom, pixelsPerUnit float64) Offset {
	if !finite(movementX) || !finite(movementY) {
		return cur
	}
	k := pixelsPerUnit * zoom
	next := Offset{
		X: cur.X - movementX/k,
		Y: cur.Y + movementY/k,
	}
	if !finite(next.X) || !finite(next.Y) {
		return cur
	}
	return next
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
