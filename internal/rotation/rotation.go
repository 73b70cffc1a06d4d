// Package rotation builds the 3x3 rotation matrices used to move observation
// points between the world frame and a body's local frame.
//
// Matrices follow the row-vector convention: a point v is rotated as v·M
// (see [ApplyRow]), so X(a), Y(a) and Z(a) are the transposes of the
// usual column-vector rotations by a. Transposing a matrix is the same as
// negating its angle.
package rotation

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// X returns the rotation about the x axis.
func X(angle float64) mgl64.Mat3 {
	s, c := math.Sincos(angle)
	return mgl64.Mat3FromRows(
		mgl64.Vec3{1, 0, 0},
		mgl64.Vec3{0, c, s},
		mgl64.Vec3{0, -s, c},
	)
}

// Y returns the rotation about the y axis.
func Y(angle float64) mgl64.Mat3 {
	s, c := math.Sincos(angle)
	return mgl64.Mat3FromRows(
		mgl64.Vec3{c, 0, -s},
		mgl64.Vec3{0, 1, 0},
		mgl64.Vec3{s, 0, c},
	)
}

// Z returns the rotation about the z axis.
func Z(angle float64) mgl64.Mat3 {
	s, c := math.Sincos(angle)
	return mgl64.Mat3FromRows(
		mgl64.Vec3{c, s, 0},
		mgl64.Vec3{-s, c, 0},
		mgl64.Vec3{0, 0, 1},
	)
}

// Compose returns X(ax)·Y(ay)·Z(az), the total orientation of a body.
func Compose(ax, ay, az float64) mgl64.Mat3 {
	return X(ax).Mul3(Y(ay).Mul3(Z(az)))
}

// Inverse returns Z(-az)·Y(-ay)·X(-ax), which undoes Compose(ax, ay, az).
func Inverse(ax, ay, az float64) mgl64.Mat3 {
	return Z(-az).Mul3(Y(-ay)).Mul3(X(-ax))
}

// ApplyRow multiplies the row vector v by m.
func ApplyRow(v mgl64.Vec3, m mgl64.Mat3) mgl64.Vec3 {
	return m.Transpose().Mul3x1(v)
}

// Similarity returns rᵀ·t·r, carrying a second-order tensor from the frame
// r was applied in back to the frame it came from.
func Similarity(t, r mgl64.Mat3) mgl64.Mat3 {
	return r.Transpose().Mul3(t).Mul3(r)
}

// About rotates the row vector p about centre by m: (p-centre)·m + centre.
func About(p, centre mgl64.Vec3, m mgl64.Mat3) mgl64.Vec3 {
	return ApplyRow(p.Sub(centre), m).Add(centre)
}

// IsIdentity reports whether all three angles are exactly zero.
func IsIdentity(ax, ay, az float64) bool {
	return ax == 0 && ay == 0 && az == 0
}
