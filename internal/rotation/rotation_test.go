package rotation

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestZeroAngleIsIdentity(t *testing.T) {
	for name, m := range map[string]mgl64.Mat3{
		"x":       X(0),
		"y":       Y(0),
		"z":       Z(0),
		"compose": Compose(0, 0, 0),
	} {
		if !m.ApproxEqualThreshold(mgl64.Ident3(), 1e-15) {
			t.Errorf("%s(0) = %v, want identity", name, m)
		}
	}
}

func TestQuarterTurnZ(t *testing.T) {
	v := ApplyRow(mgl64.Vec3{1, 0, 0}, Z(math.Pi/2))
	want := mgl64.Vec3{0, 1, 0}
	if !v.ApproxEqualThreshold(want, 1e-12) {
		t.Errorf("(1,0,0)·Z(pi/2) = %v, want %v", v, want)
	}
}

func TestOrthonormal(t *testing.T) {
	angles := []float64{-math.Pi / 2, -0.7, 0.1, 1.3, math.Pi}
	for _, a := range angles {
		for name, m := range map[string]mgl64.Mat3{"x": X(a), "y": Y(a), "z": Z(a)} {
			p := m.Mul3(m.Transpose())
			if !p.ApproxEqualThreshold(mgl64.Ident3(), 1e-12) {
				t.Errorf("%s(%v)·%s(%v)ᵀ = %v, want identity", name, a, name, a, p)
			}
			if d := m.Det(); math.Abs(d-1) > 1e-12 {
				t.Errorf("det %s(%v) = %v, want 1", name, a, d)
			}
		}
	}
}

func TestNegatedAngleIsTranspose(t *testing.T) {
	a := 0.42
	if !X(-a).ApproxEqualThreshold(X(a).Transpose(), 1e-15) {
		t.Error("X(-a) != X(a)ᵀ")
	}
	if !Y(-a).ApproxEqualThreshold(Y(a).Transpose(), 1e-15) {
		t.Error("Y(-a) != Y(a)ᵀ")
	}
	if !Z(-a).ApproxEqualThreshold(Z(a).Transpose(), 1e-15) {
		t.Error("Z(-a) != Z(a)ᵀ")
	}
}

func TestInverseUndoesCompose(t *testing.T) {
	ax, ay, az := 0.3, -0.8, 1.1
	p := Compose(ax, ay, az).Mul3(Inverse(ax, ay, az))
	if !p.ApproxEqualThreshold(mgl64.Ident3(), 1e-12) {
		t.Errorf("Compose·Inverse = %v, want identity", p)
	}
}

func TestAboutKeepsCentre(t *testing.T) {
	centre := mgl64.Vec3{1, -2, 3}
	got := About(centre, centre, Compose(0.5, 0.5, 0.5))
	if !got.ApproxEqualThreshold(centre, 1e-12) {
		t.Errorf("About(centre) = %v, want %v", got, centre)
	}
}

func TestSimilarityPreservesTrace(t *testing.T) {
	tensor := mgl64.Mat3FromRows(
		mgl64.Vec3{1, 2, 3},
		mgl64.Vec3{2, -4, 5},
		mgl64.Vec3{3, 5, 3},
	)
	r := Compose(0.2, -1.0, 0.6)
	got := Similarity(tensor, r)
	trace := got.At(0, 0) + got.At(1, 1) + got.At(2, 2)
	if math.Abs(trace) > 1e-12 {
		t.Errorf("trace = %v, want 0", trace)
	}
	if math.Abs(got.At(0, 1)-got.At(1, 0)) > 1e-12 {
		t.Error("similarity transform broke symmetry")
	}
}

func TestIsIdentity(t *testing.T) {
	if !IsIdentity(0, 0, 0) {
		t.Error("zero angles should be identity")
	}
	if IsIdentity(0, 1e-300, 0) {
		t.Error("non-zero angle reported as identity")
	}
}
