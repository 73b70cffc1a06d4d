package gravity

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestCuboidSilhouette(t *testing.T) {
	c := Cuboid{XLength: 2, YLength: 4, ZLength: 6, Density: 1}

	cases := []struct {
		plane Plane
		want  [4]mgl64.Vec2
	}{
		{PlaneXY, [4]mgl64.Vec2{{-1, -2}, {-1, 2}, {1, 2}, {1, -2}}},
		{PlaneXZ, [4]mgl64.Vec2{{-1, -3}, {-1, 3}, {1, 3}, {1, -3}}},
		{PlaneYZ, [4]mgl64.Vec2{{-2, -3}, {-2, 3}, {2, 3}, {2, -3}}},
	}
	for _, tc := range cases {
		got, err := c.Silhouette(tc.plane)
		if err != nil {
			t.Fatalf("%s: %v", tc.plane, err)
		}
		if got != tc.want {
			t.Errorf("%s: got %v, expected %v", tc.plane, got, tc.want)
		}
	}

	if _, err := c.Silhouette(Plane(7)); !errors.Is(err, ErrUnknownPlane) {
		t.Errorf("expected ErrUnknownPlane, got %v", err)
	}
}

func TestCuboidEdges(t *testing.T) {
	c := Cuboid{XLength: 2, YLength: 2, ZLength: 2, ZRotation: math.Pi / 4}
	edges := c.Edges(PlaneXY)

	// Vertical edges collapse to points in plan view.
	for _, i := range []int{0, 2, 5, 7} {
		e := edges[i]
		if e[0].Sub(e[1]).Len() > 1e-12 {
			t.Errorf("edge %d should be vertical: %v", i, e)
		}
	}

	// A 45° turn puts the corners on the axes at distance √2.
	for _, p := range c.Outline(PlaneXY) {
		if math.Abs(p.Len()-math.Sqrt2) > 1e-12 {
			t.Errorf("corner %v not at √2", p)
		}
	}
}

func TestSphereSilhouette(t *testing.T) {
	s := Sphere{XCentroid: 1, YCentroid: 2, ZCentroid: -3, Radius: 0.5}
	loop := s.Silhouette(PlaneXZ, 16)
	if len(loop) != 16 {
		t.Fatalf("got %d points", len(loop))
	}
	centre := mgl64.Vec2{1, -3}
	for _, p := range loop {
		if math.Abs(p.Sub(centre).Len()-0.5) > 1e-12 {
			t.Errorf("point %v off the circle", p)
		}
	}
	if n := len(s.Silhouette(PlaneXY, 1)); n != 3 {
		t.Errorf("segments should be raised to 3, got %d", n)
	}
}

func TestParsePlane(t *testing.T) {
	for _, pl := range []Plane{PlaneXY, PlaneXZ, PlaneYZ} {
		got, err := ParsePlane(pl.String())
		if err != nil || got != pl {
			t.Errorf("%s: got %s, %v", pl, got, err)
		}
	}
	if _, err := ParsePlane("zx"); !errors.Is(err, ErrUnknownPlane) {
		t.Errorf("expected ErrUnknownPlane, got %v", err)
	}
}

func TestCuboidWireframe(t *testing.T) {
	c := Cuboid{XLength: 2, YLength: 4, ZLength: 6, ZCentroid: -5, YRotation: 0.3}
	verts := c.RotatedVertices()
	for i, e := range c.Wireframe() {
		if e[0] != verts[cuboidEdges[i][0]] || e[1] != verts[cuboidEdges[i][1]] {
			t.Errorf("edge %d: got %v", i, e)
		}
	}

	// Each edge keeps the length of the side it runs along.
	lengths := map[float64]int{}
	for _, e := range c.Wireframe() {
		l := math.Round(e[0].Sub(e[1]).Len()*1e9) / 1e9
		lengths[l]++
	}
	for _, l := range []float64{2, 4, 6} {
		if lengths[l] != 4 {
			t.Errorf("expected 4 edges of length %g, got %d", l, lengths[l])
		}
	}
}
