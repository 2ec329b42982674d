package viewport

import "gonum.org/v1/gonum/mat"

// Projector maps world points to surface pixels through the view-projection
// matrix. Build one per frame from a Ready snapshot and reuse it for every
// point; it is not safe for concurrent use.
type Projector struct {
	vp      *mat.Dense
	w, h    float64
	in, out *mat.VecDense
}

// Projector returns a projector for t.
func (t Transform) Projector() *Projector {
	return &Projector{
		vp:  t.ViewProjection(),
		w:   float64(t.Width),
		h:   float64(t.Height),
		in:  mat.NewVecDense(4, []float64{0, 0, 0, 1}),
		out: mat.NewVecDense(4, nil),
	}
}

// Project maps a point on the drawing plane to pixels, origin top-left.
func (p *Projector) Project(wx, wy float64) (sx, sy float64) {
	p.in.SetVec(0, wx)
	p.in.SetVec(1, wy)
	p.out.MulVec(p.vp, p.in)
	sx = (p.out.AtVec(0) + 1) / 2 * p.w
	sy = (1 - p.out.AtVec(1)) / 2 * p.h
	return sx, sy
}
