package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravmod/internal/gravity"
)

// Laplace tracks the largest |Gxx+Gyy+Gzz| of a body set over the observed
// points, in Eötvös. Outside all bodies it should stay at rounding level;
// a large residual means a point sits inside a body or the closed forms have
// lost precision. The sampled value passed to Observe is ignored.
type Laplace struct {
	bodies  []gravity.Body
	worst   float64
	samples int
}

func NewLaplace(bodies []gravity.Body) *Laplace {
	return &Laplace{bodies: bodies}
}

func (m *Laplace) Name() string { return "laplace_residual" }

func (m *Laplace) Observe(p mgl64.Vec3, _ float64) {
	var t gravity.Tensor
	for _, b := range m.bodies {
		t = t.Add(b.Gradient(p))
	}
	tr := math.Abs(t.Trace()) * gravity.GradientScale
	if math.IsNaN(tr) {
		return
	}
	m.worst = math.Max(m.worst, tr)
	m.samples++
}

func (m *Laplace) Value() float64 {
	if m.samples == 0 {
		return math.NaN()
	}
	return m.worst
}

func (m *Laplace) Reset() {
	m.worst = 0
	m.samples = 0
}
