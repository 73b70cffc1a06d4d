package metrics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravmod/internal/gravity"
)

func TestStandardStatistics(t *testing.T) {
	pts := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {3, 0, 0}, {4, 0, 0}}
	vals := []float64{1, -4, math.NaN(), 3, 2}

	got := Collect(Standard(), pts, vals)

	want := map[string]float64{
		"min":       -4,
		"max":       3,
		"peak":      -4,
		"range":     7,
		"mean":      0.5,
		"rms":       math.Sqrt(30.0 / 4),
		"nan_count": 1,
	}
	for name, w := range want {
		if math.Abs(got[name]-w) > 1e-12 {
			t.Errorf("%s: got %g, expected %g", name, got[name], w)
		}
	}
}

func TestPeakWhere(t *testing.T) {
	m := NewPeak()
	m.Observe(mgl64.Vec3{1, 0, 0}, 2)
	m.Observe(mgl64.Vec3{2, 0, 0}, -5)
	m.Observe(mgl64.Vec3{3, 0, 0}, 4)
	if m.Value() != -5 || m.Where() != (mgl64.Vec3{2, 0, 0}) {
		t.Errorf("peak %g at %v", m.Value(), m.Where())
	}
}

func TestEmptyIsNaN(t *testing.T) {
	for _, m := range Standard() {
		if m.Name() == "nan_count" {
			if m.Value() != 0 {
				t.Errorf("nan_count should start at 0")
			}
			continue
		}
		if !math.IsNaN(m.Value()) {
			t.Errorf("%s: expected NaN with no samples, got %g", m.Name(), m.Value())
		}
	}
}

func TestReset(t *testing.T) {
	m := NewRMS()
	m.Observe(mgl64.Vec3{}, 3)
	m.Reset()
	m.Observe(mgl64.Vec3{}, 4)
	if m.Value() != 4 {
		t.Errorf("expected 4 after reset, got %g", m.Value())
	}
}

func TestLaplaceResidual(t *testing.T) {
	bodies := []gravity.Body{
		gravity.Cuboid{XLength: 10, YLength: 10, ZLength: 10, ZCentroid: -5.5, Density: 2000},
		gravity.Sphere{XCentroid: 20, ZCentroid: -6, Radius: 3, Density: -1800},
	}
	m := NewLaplace(bodies)
	for x := -30.0; x <= 30; x += 5 {
		m.Observe(mgl64.Vec3{x, 1, 0.5}, 0)
	}
	if m.Value() > 1e-6 {
		t.Errorf("residual outside the bodies: %g E", m.Value())
	}

	// Inside the cube the closed form no longer satisfies Laplace's equation.
	m.Reset()
	m.Observe(mgl64.Vec3{0.3, 0.2, -5}, 0)
	if m.Value() < 1 {
		t.Errorf("expected a large residual inside the body, got %g E", m.Value())
	}
}

func TestNames(t *testing.T) {
	names := Names(append(Standard(), NewLaplace(nil)))
	want := []string{"min", "max", "peak", "range", "mean", "rms", "nan_count", "laplace_residual"}
	if len(names) != len(want) {
		t.Fatalf("got %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, expected %q", i, names[i], want[i])
		}
	}
}
