package canvas

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"kerf-view/viewport"
)

// Palette holds the grid colors.
type Palette struct {
	Minor, Major, OriginCross color.Color
}

// DrawBackgroundGrid renders the grid lines visible through t.
func DrawBackgroundGrid(t viewport.Transform, screen *ebiten.Image, g Grid, p Palette) {
	if t.Width <= 0 || t.Height <= 0 {
		return
	}
	step := g.Step(t.PixelsPerUnit())
	v := t.Visible()
	proj := t.Projector()
	sw, sh := float32(t.Width), float32(t.Height)

	for _, l := range Lines(v.Left, v.Right, step, g.MajorEvery) {
		sx, _ := proj.Project(l.At, 0)
		vector.StrokeLine(screen, float32(sx), 0, float32(sx), sh, 1, lineColor(l, p), false)
	}
	for _, l := range Lines(v.Bottom, v.Top, step, g.MajorEvery) {
		_, sy := proj.Project(0, l.At)
		vector.StrokeLine(screen, 0, float32(sy), sw, float32(sy), 1, lineColor(l, p), false)
	}

	ox, oy := proj.Project(0, 0)
	vector.StrokeLine(screen, float32(ox-15), float32(oy), float32(ox+15), float32(oy), 2, p.OriginCross, false)
	vector.StrokeLine(screen, float32(ox), float32(oy-15), float32(ox), float32(oy+15), 2, p.OriginCross, false)
}

func lineColor(l Line, p Palette) color.Color {
	if l.Major {
		return p.Major
	}
	return p.Minor
}
