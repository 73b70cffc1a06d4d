package gravity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
)

// Tensor is the symmetric gravity gradient tensor. Only the upper triangle
// is stored; Gyx, Gzx and Gzy mirror XY, XZ and YZ.
type Tensor struct {
	XX, XY, XZ float64
	YY, YZ     float64
	ZZ         float64
}

// TensorFromMat3 takes the upper triangle of m.
func TensorFromMat3(m mgl64.Mat3) Tensor {
	return Tensor{
		XX: m.At(0, 0), XY: m.At(0, 1), XZ: m.At(0, 2),
		YY: m.At(1, 1), YZ: m.At(1, 2),
		ZZ: m.At(2, 2),
	}
}

// Mat3 expands t into a full symmetric matrix.
func (t Tensor) Mat3() mgl64.Mat3 {
	return mgl64.Mat3FromRows(
		mgl64.Vec3{t.XX, t.XY, t.XZ},
		mgl64.Vec3{t.XY, t.YY, t.YZ},
		mgl64.Vec3{t.XZ, t.YZ, t.ZZ},
	)
}

// Component returns the gradient component c, or NaN for a vector component.
func (t Tensor) Component(c Component) float64 {
	switch c {
	case Gxx:
		return t.XX
	case Gxy:
		return t.XY
	case Gxz:
		return t.XZ
	case Gyy:
		return t.YY
	case Gyz:
		return t.YZ
	case Gzz:
		return t.ZZ
	default:
		return math.NaN()
	}
}

// Scale multiplies every component by f.
func (t Tensor) Scale(f float64) Tensor {
	return Tensor{
		XX: t.XX * f, XY: t.XY * f, XZ: t.XZ * f,
		YY: t.YY * f, YZ: t.YZ * f,
		ZZ: t.ZZ * f,
	}
}

// Add returns the component-wise sum.
func (t Tensor) Add(o Tensor) Tensor {
	return Tensor{
		XX: t.XX + o.XX, XY: t.XY + o.XY, XZ: t.XZ + o.XZ,
		YY: t.YY + o.YY, YZ: t.YZ + o.YZ,
		ZZ: t.ZZ + o.ZZ,
	}
}

// Trace is Gxx+Gyy+Gzz, zero outside any mass by Laplace's equation.
func (t Tensor) Trace() float64 {
	return t.XX + t.YY + t.ZZ
}

// Eigenvalues returns the principal values in ascending order. ok is false
// if the decomposition failed, e.g. for a NaN tensor.
func (t Tensor) Eigenvalues() (vals [3]float64, ok bool) {
	sym := mat.NewSymDense(3, []float64{
		t.XX, t.XY, t.XZ,
		t.XY, t.YY, t.YZ,
		t.XZ, t.YZ, t.ZZ,
	})
	var es mat.EigenSym
	if !es.Factorize(sym, false) {
		return vals, false
	}
	copy(vals[:], es.Values(nil))
	return vals, true
}

// Invariants returns the rotation invariants of t: I0 is the trace, I1 the
// sum of principal minors and I2 the determinant.
func (t Tensor) Invariants() (i0, i1, i2 float64) {
	i0 = t.Trace()
	i1 = t.XX*t.YY + t.YY*t.ZZ + t.XX*t.ZZ - t.XY*t.XY - t.YZ*t.YZ - t.XZ*t.XZ
	i2 = t.XX*(t.YY*t.ZZ-t.YZ*t.YZ) +
		t.XY*(t.YZ*t.XZ-t.XY*t.ZZ) +
		t.XZ*(t.XY*t.YZ-t.XZ*t.YY)
	return i0, i1, i2
}
