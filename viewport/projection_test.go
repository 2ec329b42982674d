package viewport

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

func TestComputeBounds(t *testing.T) {
	b := ComputeBounds(800, 600, 100)

	if b.Left != -8 || b.Right != 8 || b.Top != 6 || b.Bottom != -6 {
		t.Errorf("Expected bounds (-8, 8, 6, -6), got (%v, %v, %v, %v)", b.Left, b.Right, b.Top, b.Bottom)
	}
	if b.Near != DefaultNear || b.Far != DefaultFar {
		t.Errorf("Expected near/far %v/%v, got %v/%v", DefaultNear, DefaultFar, b.Near, b.Far)
	}
}

func TestComputeBoundsAspect(t *testing.T) {
	cases := []struct{ w, h int }{
		{800, 600},
		{1, 1},
		{1920, 1080},
		{333, 7777},
	}
	for _, tc := range cases {
		b := ComputeBounds(tc.w, tc.h, DefaultScaleFactor)
		if b.Width() <= 0 || b.Height() <= 0 {
			t.Fatalf("%dx%d: expected positive extents, got %v x %v", tc.w, tc.h, b.Width(), b.Height())
		}
		want := float64(tc.w) / float64(tc.h)
		if got := b.Width() / b.Height(); !scalar.EqualWithinAbsOrRel(got, want, 1e-12, 1e-12) {
			t.Errorf("%dx%d: expected aspect %v, got %v", tc.w, tc.h, want, got)
		}
	}
}

func TestEffectiveBounds(t *testing.T) {
	b := ComputeBounds(800, 600, 100)

	e := b.Effective(2)
	if e.Left != -4 || e.Right != 4 || e.Top != 3 || e.Bottom != -3 {
		t.Errorf("Expected zoomed bounds (-4, 4, 3, -3), got (%v, %v, %v, %v)", e.Left, e.Right, e.Top, e.Bottom)
	}

	same := b.Effective(1)
	if same != b {
		t.Errorf("Expected zoom 1 to leave bounds unchanged, got %+v", same)
	}
}

func TestMatrixMapsBoundsToNDC(t *testing.T) {
	b := ComputeBounds(800, 600, 100)
	m := b.Matrix(2)

	corner := mat.NewVecDense(4, []float64{4, 3, -DefaultNear, 1})
	var out mat.VecDense
	out.MulVec(m, corner)

	if !scalar.EqualWithinAbs(out.AtVec(0), 1, 1e-12) || !scalar.EqualWithinAbs(out.AtVec(1), 1, 1e-12) {
		t.Errorf("Expected top-right corner at NDC (1, 1), got (%v, %v)", out.AtVec(0), out.AtVec(1))
	}
	if !scalar.EqualWithinAbs(out.AtVec(2), -1, 1e-12) {
		t.Errorf("Expected near plane at NDC z -1, got %v", out.AtVec(2))
	}
}
