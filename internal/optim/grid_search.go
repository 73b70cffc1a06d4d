package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/gravmod/internal/gravity"
)

var (
	// ErrLengthMismatch indicates observed data that does not match the
	// observation points.
	ErrLengthMismatch = errors.New("optim: observed samples do not match points")

	// ErrNoCandidate indicates that every parameter combination was rejected.
	ErrNoCandidate = errors.New("optim: no valid parameter combination")
)

// Builder turns one parameter combination into a body set.
type Builder func(params map[string]float64) ([]gravity.Body, error)

// Fit is the best combination found by a search.
type Fit struct {
	Params    map[string]float64
	Misfit    float64
	Evaluated int
	Rejected  int
}

// GridSearch tries every combination of the given parameter values.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Size is the number of combinations the search will try.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Misfit is the RMS difference between predicted and observed samples, or
// +Inf if any prediction is NaN.
func Misfit(predicted, observed []float64) float64 {
	if floats.HasNaN(predicted) {
		return math.Inf(1)
	}
	return floats.Distance(predicted, observed, 2) / math.Sqrt(float64(len(observed)))
}

// Search evaluates component c of every candidate body set over points and
// returns the combination with the smallest misfit against observed, which
// must be in display units. Combinations the builder rejects are skipped.
func (g *GridSearch) Search(
	ctx context.Context,
	build Builder,
	c gravity.Component,
	points []mgl64.Vec3,
	observed []float64,
) (*Fit, error) {
	if len(points) != len(observed) || len(points) == 0 {
		return nil, fmt.Errorf("%w: %d points, %d samples", ErrLengthMismatch, len(points), len(observed))
	}
	if len(g.paramNames) != len(g.ranges) {
		return nil, fmt.Errorf("optim: %d parameter names for %d ranges", len(g.paramNames), len(g.ranges))
	}

	fit := &Fit{Misfit: math.Inf(1)}
	err := g.searchRecursive(ctx, 0, make(map[string]float64), build, c, points, observed, fit)
	if err != nil {
		return nil, err
	}
	if fit.Params == nil {
		return nil, ErrNoCandidate
	}
	return fit, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build Builder,
	c gravity.Component,
	points []mgl64.Vec3,
	observed []float64,
	best *Fit,
) error {
	if depth == len(g.paramNames) {
		if err := ctx.Err(); err != nil {
			return err
		}

		bodies, err := build(current)
		if err != nil {
			best.Rejected++
			return nil
		}

		predicted := gravity.EvaluateAll(bodies, c, points)
		best.Evaluated++
		m := Misfit(predicted, observed)
		if m < best.Misfit {
			best.Misfit = m
			best.Params = make(map[string]float64, len(current))
			for k, v := range current {
				best.Params[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[paramName] = val
		if err := g.searchRecursive(ctx, depth+1, current, build, c, points, observed, best); err != nil {
			return err
		}
	}
	delete(current, paramName)
	return nil
}
