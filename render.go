package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"kerf-view/drawing"
	"kerf-view/viewport"
)

// drawDrawing strokes every entity, closed contours and open strokes in
// different colors, and marks dangling joints.
func drawDrawing(screen *ebiten.Image, t viewport.Transform, d *drawing.Drawing, topo drawing.Topology, segments int) {
	closed := topo.ClosedSet(len(d.Entities))
	w, h := float64(t.Width), float64(t.Height)
	proj := t.Projector()

	strokeEntities(screen, proj, w, h, d, segments, func(i int) color.Color {
		if closed[i] {
			return ColorClosed
		}
		return ColorOpen
	})

	half := DanglingMarkerSize / 2
	for _, p := range topo.Dangling {
		x, y := proj.Project(p.X, p.Y)
		if x < -half || y < -half || x > w+half || y > h+half {
			continue
		}
		vector.DrawFilledRect(screen, float32(x-half), float32(y-half), DanglingMarkerSize, DanglingMarkerSize, ColorDangling, false)
	}
}

// drawOverlay strokes an offset result in a single color.
func drawOverlay(screen *ebiten.Image, t viewport.Transform, d *drawing.Drawing, segments int) {
	strokeEntities(screen, t.Projector(), float64(t.Width), float64(t.Height), d, segments, func(int) color.Color {
		return ColorOffset
	})
}

func strokeEntities(screen *ebiten.Image, proj *viewport.Projector, w, h float64, d *drawing.Drawing, segments int, colorOf func(i int) color.Color) {
	for i, e := range d.Entities {
		pts := e.Points(segments)
		if len(pts) < 2 {
			continue
		}
		clr := colorOf(i)
		prevX, prevY := proj.Project(pts[0].X, pts[0].Y)
		for _, p := range pts[1:] {
			x, y := proj.Project(p.X, p.Y)
			if segmentVisible(prevX, prevY, x, y, w, h) {
				vector.StrokeLine(screen, float32(prevX), float32(prevY), float32(x), float32(y), StrokeWidth, clr, true)
			}
			prevX, prevY = x, y
		}
	}
}

// segmentVisible rejects segments lying wholly beyond one edge of a w by h
// screen. Deep zoom puts most segments far off screen, where float32
// coordinates stop being meaningful.
func segmentVisible(x0, y0, x1, y1, w, h float64) bool {
	switch {
	case x0 < 0 && x1 < 0:
		return false
	case y0 < 0 && y1 < 0:
		return false
	case x0 > w && x1 > w:
		return false
	case y0 > h && y1 > h:
		return false
	}
	return true
}

func hudText(t viewport.Transform, d *drawing.Drawing, topo drawing.Topology, mx, my int) string {
	wx, wy := t.ScreenToWorld(float64(mx), float64(my))

	var b strings.Builder
	fmt.Fprintf(&b, "Zoom: %.4g  Centre: (%.4g, %.4g)\n", t.Zoom, t.Position.X, t.Position.Y)
	fmt.Fprintf(&b, "Cursor: (%.4g, %.4g)\n", wx, wy)
	if d == nil {
		b.WriteString("No drawing\n")
	} else {
		open := 0
		for _, c := range topo.Contours {
			if !c.Closed {
				open++
			}
		}
		fmt.Fprintf(&b, "%s: %d entities, %d contours (%d open)\n", d.Name, len(d.Entities), len(topo.Contours), open)
	}
	b.WriteString("Pan: left/middle drag  Zoom: wheel, +/-  Reset: 0  Fit: F")
	return b.String()
}
