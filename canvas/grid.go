package canvas

import "math"

// maxLines caps the lines emitted per axis so a bad step cannot stall a frame.
const maxLines = 4096

// Grid describes the background grid in world units.
type Grid struct {
	Spacing         float64
	MajorEvery      int
	MinPixelSpacing float64
}

// Step returns the minor line spacing to use at ppu pixels per world unit.
// The base spacing is coarsened by MajorEvery until adjacent lines are at
// least MinPixelSpacing apart. It returns 0 when nothing sensible fits.
func (g Grid) Step(ppu float64) float64 {
	if g.Spacing <= 0 || !(ppu > 0) || math.IsInf(ppu, 0) {
		return 0
	}
	factor := float64(g.MajorEvery)
	if factor < 2 {
		factor = 10
	}
	s := g.Spacing
	for i := 0; s*ppu < g.MinPixelSpacing; i++ {
		if i == 64 {
			return 0
		}
		s *= factor
	}
	return s
}

// Line is one grid line position along an axis.
type Line struct {
	At    float64
	Major bool
}

// Lines returns the multiples of step within [lo, hi].
func Lines(lo, hi, step float64, majorEvery int) []Line {
	if !(step > 0) || !(hi > lo) {
		return nil
	}
	first := math.Ceil(lo / step)
	last := math.Floor(hi / step)
	if last-first >= maxLines || math.IsInf(first, 0) || math.IsInf(last, 0) {
		return nil
	}
	out := make([]Line, 0, int(last-first)+1)
	for i := first; i <= last; i++ {
		major := majorEvery > 0 && math.Mod(i, float64(majorEvery)) == 0
		out = append(out, Line{At: i * step, Major: major})
	}
	return out
}
