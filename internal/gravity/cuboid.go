package gravity

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravmod/internal/rotation"
)

// Cuboid is a rectangular prism of edge lengths X/Y/ZLength centred on
// X/Y/ZCentroid and rotated by X/Y/ZRotation radians about its centroid.
type Cuboid struct {
	XLength   float64 `json:"x_length" yaml:"x_length"`
	YLength   float64 `json:"y_length" yaml:"y_length"`
	ZLength   float64 `json:"z_length" yaml:"z_length"`
	XCentroid float64 `json:"x_centroid" yaml:"x_centroid"`
	YCentroid float64 `json:"y_centroid" yaml:"y_centroid"`
	ZCentroid float64 `json:"z_centroid" yaml:"z_centroid"`
	XRotation float64 `json:"x_rotation" yaml:"x_rotation"`
	YRotation float64 `json:"y_rotation" yaml:"y_rotation"`
	ZRotation float64 `json:"z_rotation" yaml:"z_rotation"`
	Density   float64 `json:"density" yaml:"density"`
}

// cornerSign pairs with the vertex order of Cuboid.Vertices. Reordering
// either breaks every formula below.
var cornerSign = [8]float64{1, -1, 1, -1, -1, 1, -1, 1}

// NewCuboid builds a validated cuboid from edge lengths, centroid, rotation
// angles (radians) and density contrast (kg/m³).
func NewCuboid(lengths, centroid, angles mgl64.Vec3, density float64) (Cuboid, error) {
	c := Cuboid{
		XLength: lengths[0], YLength: lengths[1], ZLength: lengths[2],
		XCentroid: centroid[0], YCentroid: centroid[1], ZCentroid: centroid[2],
		XRotation: angles[0], YRotation: angles[1], ZRotation: angles[2],
		Density: density,
	}
	if err := c.Validate(); err != nil {
		return Cuboid{}, err
	}
	return c, nil
}

// DefaultCuboid is a 1 m cube centred 1 m down with a -2000 kg/m³ contrast.
func DefaultCuboid() Cuboid {
	return Cuboid{
		XLength: 1, YLength: 1, ZLength: 1,
		ZCentroid: -1,
		Density:   -2000,
	}
}

func (c Cuboid) Kind() Kind { return KindCuboid }

func (c Cuboid) Validate() error {
	if err := checkPositive(KindCuboid, "x_length", c.XLength); err != nil {
		return err
	}
	if err := checkPositive(KindCuboid, "y_length", c.YLength); err != nil {
		return err
	}
	if err := checkPositive(KindCuboid, "z_length", c.ZLength); err != nil {
		return err
	}
	if err := checkFiniteVec(KindCuboid, "centroid", c.Centre()); err != nil {
		return err
	}
	if err := checkFiniteVec(KindCuboid, "rotation", c.Angles()); err != nil {
		return err
	}
	return checkFinite(KindCuboid, "density", c.Density)
}

func (c Cuboid) Lengths() mgl64.Vec3 {
	return mgl64.Vec3{c.XLength, c.YLength, c.ZLength}
}

func (c Cuboid) Centre() mgl64.Vec3 {
	return mgl64.Vec3{c.XCentroid, c.YCentroid, c.ZCentroid}
}

func (c Cuboid) Angles() mgl64.Vec3 {
	return mgl64.Vec3{c.XRotation, c.YRotation, c.ZRotation}
}

func (c Cuboid) Volume() float64 {
	return c.XLength * c.YLength * c.ZLength
}

func (c Cuboid) Mass() float64 {
	return c.Density * c.Volume()
}

func (c Cuboid) rotated() bool {
	return !rotation.IsIdentity(c.XRotation, c.YRotation, c.ZRotation)
}

// Orientation is Rx·Ry·Rz of the body's angles.
func (c Cuboid) Orientation() mgl64.Mat3 {
	return rotation.Compose(c.XRotation, c.YRotation, c.ZRotation)
}

// Vertices returns the corners of the unrotated prism:
//
//	0 (-,-,-)  1 (-,-,+)  2 (-,+,+)  3 (-,+,-)
//	4 (+,-,-)  5 (+,+,-)  6 (+,+,+)  7 (+,-,+)
//
// with signs relative to the centroid on x, y, z.
func (c Cuboid) Vertices() [8]mgl64.Vec3 {
	hx, hy, hz := c.XLength/2, c.YLength/2, c.ZLength/2
	x0, x1 := c.XCentroid-hx, c.XCentroid+hx
	y0, y1 := c.YCentroid-hy, c.YCentroid+hy
	z0, z1 := c.ZCentroid-hz, c.ZCentroid+hz
	return [8]mgl64.Vec3{
		{x0, y0, z0},
		{x0, y0, z1},
		{x0, y1, z1},
		{x0, y1, z0},
		{x1, y0, z0},
		{x1, y1, z0},
		{x1, y1, z1},
		{x1, y0, z1},
	}
}

// RotatedVertices returns Vertices turned about the centroid into the world
// frame, in the same order.
func (c Cuboid) RotatedVertices() [8]mgl64.Vec3 {
	verts := c.Vertices()
	if !c.rotated() {
		return verts
	}
	r := c.Orientation()
	centre := c.Centre()
	for i, v := range verts {
		verts[i] = rotation.About(v, centre, r)
	}
	return verts
}

// toLocal carries a world point into the unrotated frame of the prism.
func (c Cuboid) toLocal(p mgl64.Vec3) mgl64.Vec3 {
	return rotation.About(p, c.Centre(), rotation.Inverse(c.XRotation, c.YRotation, c.ZRotation))
}

// corner returns the perturbed offset of p from vertex v and its length.
func corner(p, v mgl64.Vec3) (x, y, z, r float64) {
	x = p[0]*(1+perturbation) - v[0]
	y = p[1]*(1+perturbation) - v[1]
	z = p[2]*(1+perturbation) - v[2]
	r = math.Sqrt(x*x + y*y + z*z)
	return x, y, z, r
}

// Field returns (Gx, Gy, Gz) at p.
func (c Cuboid) Field(p mgl64.Vec3) mgl64.Vec3 {
	if !c.rotated() {
		return c.fieldLocal(p)
	}
	g := c.fieldLocal(c.toLocal(p))
	return rotation.ApplyRow(g, c.Orientation())
}

// Gradient returns the gradient tensor at p.
func (c Cuboid) Gradient(p mgl64.Vec3) Tensor {
	if !c.rotated() {
		return c.gradientLocal(p)
	}
	gg := c.gradientLocal(c.toLocal(p))
	return TensorFromMat3(rotation.Similarity(gg.Mat3(), c.Orientation()))
}

func (c Cuboid) Gx(p mgl64.Vec3) float64 {
	if c.rotated() {
		return c.Field(p)[0]
	}
	return c.gxLocal(p)
}

func (c Cuboid) Gy(p mgl64.Vec3) float64 {
	if c.rotated() {
		return c.Field(p)[1]
	}
	return c.gyLocal(p)
}

func (c Cuboid) Gz(p mgl64.Vec3) float64 {
	if c.rotated() {
		return c.Field(p)[2]
	}
	return c.gzLocal(p)
}

func (c Cuboid) Gxx(p mgl64.Vec3) float64 {
	if c.rotated() {
		return c.Gradient(p).XX
	}
	return c.gxxLocal(p)
}

func (c Cuboid) Gxy(p mgl64.Vec3) float64 {
	if c.rotated() {
		return c.Gradient(p).XY
	}
	return c.gxyLocal(p)
}

func (c Cuboid) Gxz(p mgl64.Vec3) float64 {
	if c.rotated() {
		return c.Gradient(p).XZ
	}
	return c.gxzLocal(p)
}

func (c Cuboid) Gyy(p mgl64.Vec3) float64 {
	if c.rotated() {
		return c.Gradient(p).YY
	}
	return c.gyyLocal(p)
}

func (c Cuboid) Gyz(p mgl64.Vec3) float64 {
	if c.rotated() {
		return c.Gradient(p).YZ
	}
	return c.gyzLocal(p)
}

func (c Cuboid) Gzz(p mgl64.Vec3) float64 {
	if c.rotated() {
		return c.Gradient(p).ZZ
	}
	return c.gzzLocal(p)
}

// The *Local methods evaluate the axis-aligned prism. Each writes out its
// own eight-term sum so the sign and axis of every term can be checked
// against Nagy (1966) directly.

func (c Cuboid) gxLocal(p mgl64.Vec3) float64 {
	verts := c.Vertices()
	sum := 0.0
	for i, v := range verts {
		x, y, z, r := corner(p, v)
		if r == 0 {
			return math.NaN()
		}
		sum += cornerSign[i] * (y*math.Log(r+z) + z*math.Log(r+y) - x*math.Atan((y*z)/(r*x)))
	}
	return sum * G * c.Density
}

func (c Cuboid) gyLocal(p mgl64.Vec3) float64 {
	verts := c.Vertices()
	sum := 0.0
	for i, v := range verts {
		x, y, z, r := corner(p, v)
		if r == 0 {
			return math.NaN()
		}
		sum += cornerSign[i] * (z*math.Log(r+x) + x*math.Log(r+z) - y*math.Atan((x*z)/(r*y)))
	}
	return sum * G * c.Density
}

func (c Cuboid) gzLocal(p mgl64.Vec3) float64 {
	verts := c.Vertices()
	sum := 0.0
	for i, v := range verts {
		x, y, z, r := corner(p, v)
		if r == 0 {
			return math.NaN()
		}
		sum += cornerSign[i] * (x*math.Log(r+y) + y*math.Log(r+x) - z*math.Atan((x*y)/(r*z)))
	}
	return sum * G * c.Density
}

func (c Cuboid) gxxLocal(p mgl64.Vec3) float64 {
	verts := c.Vertices()
	sum := 0.0
	for i, v := range verts {
		x, y, z, r := corner(p, v)
		if r == 0 {
			return math.NaN()
		}
		sum += cornerSign[i] * -math.Atan((y*z)/(r*x))
	}
	return sum * G * c.Density
}

func (c Cuboid) gyyLocal(p mgl64.Vec3) float64 {
	verts := c.Vertices()
	sum := 0.0
	for i, v := range verts {
		x, y, z, r := corner(p, v)
		if r == 0 {
			return math.NaN()
		}
		sum += cornerSign[i] * -math.Atan((x*z)/(r*y))
	}
	return sum * G * c.Density
}

func (c Cuboid) gzzLocal(p mgl64.Vec3) float64 {
	verts := c.Vertices()
	sum := 0.0
	for i, v := range verts {
		x, y, z, r := corner(p, v)
		if r == 0 {
			return math.NaN()
		}
		sum += cornerSign[i] * -math.Atan((x*y)/(r*z))
	}
	return sum * G * c.Density
}

func (c Cuboid) gxyLocal(p mgl64.Vec3) float64 {
	verts := c.Vertices()
	sum := 0.0
	for i, v := range verts {
		_, _, z, r := corner(p, v)
		if r == 0 {
			return math.NaN()
		}
		sum += cornerSign[i] * math.Log(r+z)
	}
	return sum * G * c.Density
}

func (c Cuboid) gxzLocal(p mgl64.Vec3) float64 {
	verts := c.Vertices()
	sum := 0.0
	for i, v := range verts {
		_, y, _, r := corner(p, v)
		if r == 0 {
			return math.NaN()
		}
		sum += cornerSign[i] * math.Log(r+y)
	}
	return sum * G * c.Density
}

func (c Cuboid) gyzLocal(p mgl64.Vec3) float64 {
	verts := c.Vertices()
	sum := 0.0
	for i, v := range verts {
		x, _, _, r := corner(p, v)
		if r == 0 {
			return math.NaN()
		}
		sum += cornerSign[i] * math.Log(r+x)
	}
	return sum * G * c.Density
}

// fieldLocal computes all three vector components in one pass over the
// corners, term for term the same as gxLocal, gyLocal and gzLocal.
func (c Cuboid) fieldLocal(p mgl64.Vec3) mgl64.Vec3 {
	verts := c.Vertices()
	var gx, gy, gz float64
	for i, v := range verts {
		x, y, z, r := corner(p, v)
		if r == 0 {
			nan := math.NaN()
			return mgl64.Vec3{nan, nan, nan}
		}
		s := cornerSign[i]
		gx += s * (y*math.Log(r+z) + z*math.Log(r+y) - x*math.Atan((y*z)/(r*x)))
		gy += s * (z*math.Log(r+x) + x*math.Log(r+z) - y*math.Atan((x*z)/(r*y)))
		gz += s * (x*math.Log(r+y) + y*math.Log(r+x) - z*math.Atan((x*y)/(r*z)))
	}
	return mgl64.Vec3{gx * G * c.Density, gy * G * c.Density, gz * G * c.Density}
}

// gradientLocal computes the six independent tensor components in one pass.
func (c Cuboid) gradientLocal(p mgl64.Vec3) Tensor {
	verts := c.Vertices()
	var t Tensor
	for i, v := range verts {
		x, y, z, r := corner(p, v)
		if r == 0 {
			nan := math.NaN()
			return Tensor{XX: nan, XY: nan, XZ: nan, YY: nan, YZ: nan, ZZ: nan}
		}
		s := cornerSign[i]
		t.XX += s * -math.Atan((y*z)/(r*x))
		t.YY += s * -math.Atan((x*z)/(r*y))
		t.ZZ += s * -math.Atan((x*y)/(r*z))
		t.XY += s * math.Log(r+z)
		t.XZ += s * math.Log(r+y)
		t.YZ += s * math.Log(r+x)
	}
	k := G * c.Density
	return Tensor{
		XX: t.XX * k, XY: t.XY * k, XZ: t.XZ * k,
		YY: t.YY * k, YZ: t.YZ * k,
		ZZ: t.ZZ * k,
	}
}

func (c Cuboid) String() string {
	centre := c.Centre()
	return fmt.Sprintf("x_length: %g, y_length: %g, z_length: %g, volume: %g, mass: %g, centre: [%g, %g, %g]",
		c.XLength, c.YLength, c.ZLength, c.Volume(), c.Mass(), centre[0], centre[1], centre[2])
}
