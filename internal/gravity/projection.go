package gravity

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Plane is a coordinate plane that bodies are drawn onto.
type Plane int

const (
	PlaneXY Plane = iota
	PlaneXZ
	PlaneYZ
)

func (pl Plane) String() string {
	switch pl {
	case PlaneXY:
		return "xy"
	case PlaneXZ:
		return "xz"
	case PlaneYZ:
		return "yz"
	default:
		return fmt.Sprintf("Plane(%d)", int(pl))
	}
}

// ParsePlane accepts "xy", "xz" or "yz" in any case.
func ParsePlane(s string) (Plane, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xy":
		return PlaneXY, nil
	case "xz":
		return PlaneXZ, nil
	case "yz":
		return PlaneYZ, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPlane, s)
	}
}

// Project drops the axis normal to pl.
func (pl Plane) Project(v mgl64.Vec3) mgl64.Vec2 {
	switch pl {
	case PlaneXZ:
		return mgl64.Vec2{v[0], v[2]}
	case PlaneYZ:
		return mgl64.Vec2{v[1], v[2]}
	default:
		return mgl64.Vec2{v[0], v[1]}
	}
}

// silhouetteIndices picks the face of the unrotated prism that outlines it in
// each plane.
var silhouetteIndices = [...][4]int{
	PlaneXY: {0, 3, 5, 4},
	PlaneXZ: {0, 1, 6, 4},
	PlaneYZ: {0, 1, 2, 3},
}

// cuboidEdges lists the twelve edges as pairs of vertex indices.
var cuboidEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{3, 5}, {4, 0}, {6, 2}, {7, 1},
}

// Silhouette returns the closed rectangle the unrotated cuboid casts on pl.
// Rotation is ignored; use Outline or Edges for rotated bodies.
func (c Cuboid) Silhouette(pl Plane) ([4]mgl64.Vec2, error) {
	var loop [4]mgl64.Vec2
	if pl < PlaneXY || pl > PlaneYZ {
		return loop, fmt.Errorf("%w: %d", ErrUnknownPlane, int(pl))
	}
	verts := c.Vertices()
	for i, idx := range silhouetteIndices[pl] {
		loop[i] = pl.Project(verts[idx])
	}
	return loop, nil
}

// Outline projects all eight rotated vertices onto pl, in vertex order.
func (c Cuboid) Outline(pl Plane) [8]mgl64.Vec2 {
	var out [8]mgl64.Vec2
	for i, v := range c.RotatedVertices() {
		out[i] = pl.Project(v)
	}
	return out
}

// Edges returns the twelve edges of the rotated cuboid projected onto pl.
func (c Cuboid) Edges(pl Plane) [12][2]mgl64.Vec2 {
	pts := c.Outline(pl)
	var out [12][2]mgl64.Vec2
	for i, e := range cuboidEdges {
		out[i] = [2]mgl64.Vec2{pts[e[0]], pts[e[1]]}
	}
	return out
}

// Wireframe returns the twelve edges of the rotated cuboid in world space.
func (c Cuboid) Wireframe() [12][2]mgl64.Vec3 {
	verts := c.RotatedVertices()
	var out [12][2]mgl64.Vec3
	for i, e := range cuboidEdges {
		out[i] = [2]mgl64.Vec3{verts[e[0]], verts[e[1]]}
	}
	return out
}

// Silhouette returns a closed polygon of segments points approximating the
// circle the sphere casts on pl. segments below 3 is raised to 3.
func (s Sphere) Silhouette(pl Plane, segments int) []mgl64.Vec2 {
	if segments < 3 {
		segments = 3
	}
	centre := pl.Project(s.Centre())
	out := make([]mgl64.Vec2, segments)
	for i := range out {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(segments))
		out[i] = mgl64.Vec2{centre[0] + s.Radius*cos, centre[1] + s.Radius*sin}
	}
	return out
}
