package gravity

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats"
)

// DefaultMinChunk is the smallest number of points handed to one worker.
const DefaultMinChunk = 64

type evalOptions struct {
	workers  int
	minChunk int
}

// Option tunes EvaluateAll.
type Option func(*evalOptions)

// WithWorkers caps the number of goroutines evaluating points. n <= 1
// evaluates serially.
func WithWorkers(n int) Option {
	return func(o *evalOptions) { o.workers = n }
}

// WithMinChunk sets the smallest batch of points given to one goroutine.
func WithMinChunk(n int) Option {
	return func(o *evalOptions) { o.minChunk = n }
}

// Evaluate returns the raw SI value of component c of body b at every point.
// An unknown component yields NaN at every point.
func Evaluate(b Body, c Component, points []mgl64.Vec3) []float64 {
	out := make([]float64, len(points))
	f := componentFunc(b, c)
	for i, p := range points {
		out[i] = f(p)
	}
	return out
}

// EvaluateAll sums component c over bodies at every point and converts the
// total to display units: microgal for Gx/Gy/Gz, Eötvös for the tensor.
//
// Points are split across goroutines; at each point the bodies are summed in
// slice order, so the result does not depend on the worker count. A body
// that is singular at a point makes that sample NaN.
func EvaluateAll(bodies []Body, c Component, points []mgl64.Vec3, opts ...Option) []float64 {
	o := evalOptions{workers: defaultWorkers(), minChunk: DefaultMinChunk}
	for _, opt := range opts {
		opt(&o)
	}

	out := make([]float64, len(points))
	funcs := make([]func(mgl64.Vec3) float64, len(bodies))
	for i, b := range bodies {
		funcs[i] = componentFunc(b, c)
	}

	ParallelFor(len(points), o.workers, o.minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			sum := 0.0
			for _, f := range funcs {
				sum += f(points[i])
			}
			out[i] = sum
		}
	})

	floats.Scale(c.DisplayScale(), out)
	return out
}
