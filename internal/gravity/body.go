package gravity

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// G is the gravitational constant in m³·kg⁻¹·s⁻².
const G = 6.674e-11

// perturbation scales every observation point by (1+perturbation) so that
// points placed on a face, edge or corner plane do not hit log(0) or 0/0.
const perturbation = 1e-7

// Kind tags the concrete type behind a Body.
type Kind int

const (
	KindCuboid Kind = iota
	KindSphere
)

func (k Kind) String() string {
	switch k {
	case KindCuboid:
		return "cuboid"
	case KindSphere:
		return "sphere"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses "cuboid" or "sphere".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "cuboid", "Cuboid":
		return KindCuboid, nil
	case "sphere", "Sphere":
		return KindSphere, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Body is a solid of uniform density contrast. All field methods return raw
// SI values in the world frame.
type Body interface {
	Kind() Kind

	Gx(p mgl64.Vec3) float64
	Gy(p mgl64.Vec3) float64
	Gz(p mgl64.Vec3) float64
	Gxx(p mgl64.Vec3) float64
	Gxy(p mgl64.Vec3) float64
	Gxz(p mgl64.Vec3) float64
	Gyy(p mgl64.Vec3) float64
	Gyz(p mgl64.Vec3) float64
	Gzz(p mgl64.Vec3) float64

	// Field returns the gravity vector (Gx, Gy, Gz).
	Field(p mgl64.Vec3) mgl64.Vec3
	// Gradient returns the full gradient tensor.
	Gradient(p mgl64.Vec3) Tensor

	Volume() float64
	Mass() float64
	Centre() mgl64.Vec3

	// Validate reports a *GeometryError for parameters no constructor
	// would accept.
	Validate() error
}

var (
	_ Body = Cuboid{}
	_ Body = Sphere{}
)

// componentFunc selects the scalar method of b that computes c.
func componentFunc(b Body, c Component) func(mgl64.Vec3) float64 {
	switch c {
	case Gx:
		return b.Gx
	case Gy:
		return b.Gy
	case Gz:
		return b.Gz
	case Gxx:
		return b.Gxx
	case Gxy:
		return b.Gxy
	case Gxz:
		return b.Gxz
	case Gyy:
		return b.Gyy
	case Gyz:
		return b.Gyz
	case Gzz:
		return b.Gzz
	default:
		return func(mgl64.Vec3) float64 { return math.NaN() }
	}
}

// ComponentAt evaluates a single component of b at p.
func ComponentAt(b Body, c Component, p mgl64.Vec3) float64 {
	return componentFunc(b, c)(p)
}

func checkPositive(k Kind, field string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return &GeometryError{Kind: k, Field: field, Value: v}
	}
	return nil
}

func checkFinite(k Kind, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &GeometryError{Kind: k, Field: field, Value: v}
	}
	return nil
}

func checkFiniteVec(k Kind, field string, v mgl64.Vec3) error {
	axes := [3]string{"x", "y", "z"}
	for i, c := range v {
		if err := checkFinite(k, axes[i]+"_"+field, c); err != nil {
			return err
		}
	}
	return nil
}
