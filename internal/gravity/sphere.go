package gravity

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Sphere is a uniform ball, evaluated as the equivalent point mass at its
// centre.
type Sphere struct {
	XCentroid float64 `json:"x_centroid" yaml:"x_centroid"`
	YCentroid float64 `json:"y_centroid" yaml:"y_centroid"`
	ZCentroid float64 `json:"z_centroid" yaml:"z_centroid"`
	Radius    float64 `json:"radius" yaml:"radius"`
	Density   float64 `json:"density" yaml:"density"`
}

// NewSphere builds a validated sphere.
func NewSphere(centroid mgl64.Vec3, radius, density float64) (Sphere, error) {
	s := Sphere{
		XCentroid: centroid[0], YCentroid: centroid[1], ZCentroid: centroid[2],
		Radius:  radius,
		Density: density,
	}
	if err := s.Validate(); err != nil {
		return Sphere{}, err
	}
	return s, nil
}

// DefaultSphere is a unit sphere centred 1 m down with a -2000 kg/m³
// contrast.
func DefaultSphere() Sphere {
	return Sphere{ZCentroid: -1, Radius: 1, Density: -2000}
}

func (s Sphere) Kind() Kind { return KindSphere }

func (s Sphere) Validate() error {
	if err := checkPositive(KindSphere, "radius", s.Radius); err != nil {
		return err
	}
	if err := checkFiniteVec(KindSphere, "centroid", s.Centre()); err != nil {
		return err
	}
	return checkFinite(KindSphere, "density", s.Density)
}

func (s Sphere) Centre() mgl64.Vec3 {
	return mgl64.Vec3{s.XCentroid, s.YCentroid, s.ZCentroid}
}

func (s Sphere) Volume() float64 {
	return 4.0 / 3.0 * math.Pi * s.Radius * s.Radius * s.Radius
}

func (s Sphere) Mass() float64 {
	return s.Density * s.Volume()
}

// coefficient is -G·M, the factor shared by every component.
func (s Sphere) coefficient() float64 {
	return -4.0 / 3.0 * math.Pi * G * s.Radius * s.Radius * s.Radius * s.Density
}

// offset returns the perturbed offset of p from the centre and its squared
// length.
func (s Sphere) offset(p mgl64.Vec3) (x, y, z, r2 float64) {
	x = p[0]*(1+perturbation) - s.XCentroid
	y = p[1]*(1+perturbation) - s.YCentroid
	z = p[2]*(1+perturbation) - s.ZCentroid
	return x, y, z, x*x + y*y + z*z
}

func (s Sphere) Gx(p mgl64.Vec3) float64 {
	x, _, _, r2 := s.offset(p)
	if r2 == 0 {
		return math.NaN()
	}
	return s.coefficient() * x / math.Pow(r2, 1.5)
}

func (s Sphere) Gy(p mgl64.Vec3) float64 {
	_, y, _, r2 := s.offset(p)
	if r2 == 0 {
		return math.NaN()
	}
	return s.coefficient() * y / math.Pow(r2, 1.5)
}

func (s Sphere) Gz(p mgl64.Vec3) float64 {
	_, _, z, r2 := s.offset(p)
	if r2 == 0 {
		return math.NaN()
	}
	return s.coefficient() * z / math.Pow(r2, 1.5)
}

func (s Sphere) Gxx(p mgl64.Vec3) float64 {
	x, _, _, r2 := s.offset(p)
	if r2 == 0 {
		return math.NaN()
	}
	return s.coefficient() / math.Pow(r2, 1.5) * (1 - 3*x*x/r2)
}

func (s Sphere) Gyy(p mgl64.Vec3) float64 {
	_, y, _, r2 := s.offset(p)
	if r2 == 0 {
		return math.NaN()
	}
	return s.coefficient() / math.Pow(r2, 1.5) * (1 - 3*y*y/r2)
}

func (s Sphere) Gzz(p mgl64.Vec3) float64 {
	_, _, z, r2 := s.offset(p)
	if r2 == 0 {
		return math.NaN()
	}
	return s.coefficient() / math.Pow(r2, 1.5) * (1 - 3*z*z/r2)
}

// Gxy pairs x with y. Reference outputs that multiply y·z here repeat Gyz.
func (s Sphere) Gxy(p mgl64.Vec3) float64 {
	x, y, _, r2 := s.offset(p)
	if r2 == 0 {
		return math.NaN()
	}
	return -3 * s.coefficient() * x * y / math.Pow(r2, 2.5)
}

func (s Sphere) Gxz(p mgl64.Vec3) float64 {
	x, _, z, r2 := s.offset(p)
	if r2 == 0 {
		return math.NaN()
	}
	return -3 * s.coefficient() * x * z / math.Pow(r2, 2.5)
}

func (s Sphere) Gyz(p mgl64.Vec3) float64 {
	_, y, z, r2 := s.offset(p)
	if r2 == 0 {
		return math.NaN()
	}
	return -3 * s.coefficient() * y * z / math.Pow(r2, 2.5)
}

func (s Sphere) Field(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{s.Gx(p), s.Gy(p), s.Gz(p)}
}

func (s Sphere) Gradient(p mgl64.Vec3) Tensor {
	return Tensor{
		XX: s.Gxx(p), XY: s.Gxy(p), XZ: s.Gxz(p),
		YY: s.Gyy(p), YZ: s.Gyz(p),
		ZZ: s.Gzz(p),
	}
}

func (s Sphere) String() string {
	return fmt.Sprintf("radius: %g, volume: %g, mass: %g, centre: [%g, %g, %g]",
		s.Radius, s.Volume(), s.Mass(), s.XCentroid, s.YCentroid, s.ZCentroid)
}
