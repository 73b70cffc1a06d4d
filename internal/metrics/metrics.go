// Package metrics summarises a sampled field one observation at a time.
package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Metric accumulates a statistic over field samples.
type Metric interface {
	Name() string
	Observe(p mgl64.Vec3, v float64)
	Value() float64
	Reset()
}

// Standard returns fresh instances of the statistics reported for every
// survey component.
func Standard() []Metric {
	return []Metric{NewMin(), NewMax(), NewPeak(), NewRange(), NewMean(), NewRMS(), NewNaNCount()}
}

// Names lists the names of ms in order.
func Names(ms []Metric) []string {
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Name()
	}
	return names
}

// Collect feeds every (point, value) pair to ms and returns their values by
// name. points and values must have the same length.
func Collect(ms []Metric, points []mgl64.Vec3, values []float64) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for i, v := range values {
		for _, m := range ms {
			m.Observe(points[i], v)
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

type Min struct {
	min     float64
	samples int
}

func NewMin() *Min { return &Min{} }

func (m *Min) Name() string { return "min" }

func (m *Min) Observe(_ mgl64.Vec3, v float64) {
	if math.IsNaN(v) {
		return
	}
	if m.samples == 0 || v < m.min {
		m.min = v
	}
	m.samples++
}

func (m *Min) Value() float64 {
	if m.samples == 0 {
		return math.NaN()
	}
	return m.min
}

func (m *Min) Reset() { *m = Min{} }

type Max struct {
	max     float64
	samples int
}

func NewMax() *Max { return &Max{} }

func (m *Max) Name() string { return "max" }

func (m *Max) Observe(_ mgl64.Vec3, v float64) {
	if math.IsNaN(v) {
		return
	}
	if m.samples == 0 || v > m.max {
		m.max = v
	}
	m.samples++
}

func (m *Max) Value() float64 {
	if m.samples == 0 {
		return math.NaN()
	}
	return m.max
}

func (m *Max) Reset() { *m = Max{} }

// Peak is the sample of largest magnitude, sign kept. Where stores the point
// it was seen at.
type Peak struct {
	peak    float64
	where   mgl64.Vec3
	samples int
}

func NewPeak() *Peak { return &Peak{} }

func (m *Peak) Name() string { return "peak" }

func (m *Peak) Observe(p mgl64.Vec3, v float64) {
	if math.IsNaN(v) {
		return
	}
	if m.samples == 0 || math.Abs(v) > math.Abs(m.peak) {
		m.peak = v
		m.where = p
	}
	m.samples++
}

func (m *Peak) Value() float64 {
	if m.samples == 0 {
		return math.NaN()
	}
	return m.peak
}

func (m *Peak) Where() mgl64.Vec3 { return m.where }

func (m *Peak) Reset() { *m = Peak{} }

// Range is max minus min, the anomaly amplitude.
type Range struct {
	min, max float64
	samples  int
}

func NewRange() *Range { return &Range{} }

func (m *Range) Name() string { return "range" }

func (m *Range) Observe(_ mgl64.Vec3, v float64) {
	if math.IsNaN(v) {
		return
	}
	if m.samples == 0 {
		m.min, m.max = v, v
	}
	m.min = math.Min(m.min, v)
	m.max = math.Max(m.max, v)
	m.samples++
}

func (m *Range) Value() float64 {
	if m.samples == 0 {
		return math.NaN()
	}
	return m.max - m.min
}

func (m *Range) Reset() { *m = Range{} }

type Mean struct {
	sum     float64
	samples int
}

func NewMean() *Mean { return &Mean{} }

func (m *Mean) Name() string { return "mean" }

func (m *Mean) Observe(_ mgl64.Vec3, v float64) {
	if math.IsNaN(v) {
		return
	}
	m.sum += v
	m.samples++
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return math.NaN()
	}
	return m.sum / float64(m.samples)
}

func (m *Mean) Reset() { *m = Mean{} }

type RMS struct {
	sumSq   float64
	samples int
}

func NewRMS() *RMS { return &RMS{} }

func (m *RMS) Name() string { return "rms" }

func (m *RMS) Observe(_ mgl64.Vec3, v float64) {
	if math.IsNaN(v) {
		return
	}
	m.sumSq += v * v
	m.samples++
}

func (m *RMS) Value() float64 {
	if m.samples == 0 {
		return math.NaN()
	}
	return math.Sqrt(m.sumSq / float64(m.samples))
}

func (m *RMS) Reset() { *m = RMS{} }

// NaNCount counts singular samples, points that hit a vertex or a sphere
// centre.
type NaNCount struct {
	count int
}

func NewNaNCount() *NaNCount { return &NaNCount{} }

func (m *NaNCount) Name() string { return "nan_count" }

func (m *NaNCount) Observe(_ mgl64.Vec3, v float64) {
	if math.IsNaN(v) {
		m.count++
	}
}

func (m *NaNCount) Value() float64 { return float64(m.count) }

func (m *NaNCount) Reset() { m.count = 0 }
