// Package gravity computes closed-form gravitational fields of solid bodies.
//
// A [Body] is a cuboid or a sphere with a signed density contrast. Each body
// evaluates the gravity vector (Gx, Gy, Gz) and the symmetric gradient
// tensor (Gxx, Gxy, Gxz, Gyy, Gyz, Gzz) at arbitrary observation points:
//
//   - [Cuboid]: rectangular prism, eight-corner signed sum (Nagy 1966),
//     optionally rotated about its centroid
//   - [Sphere]: equivalent point mass
//
// [Evaluate] returns the raw SI values of one body. [EvaluateAll] sums a
// body set point by point and converts the total to display units
// (vector components ×-1e8, gradient components ×1e9).
//
// # Example
//
//	cube, _ := gravity.NewCuboid(
//	    mgl64.Vec3{10, 10, 10}, mgl64.Vec3{0, 0, -5.5}, mgl64.Vec3{}, 2000)
//	gz := gravity.EvaluateAll([]gravity.Body{cube}, gravity.Gz, points)
//
// # Singular points
//
// Observation points are pushed off the body by a relative perturbation of
// 1e-7 before evaluation. A point that still lands exactly on a corner (or a
// sphere centre) produces NaN for that sample; evaluation never panics.
//
// # Thread Safety
//
// Bodies are values and are never mutated by evaluation, so any number of
// goroutines may evaluate the same body set.
package gravity
