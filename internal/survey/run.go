package survey

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/gravmod/internal/gravity"
	"github.com/san-kum/gravmod/internal/metrics"
)

// Config bounds the work a Run may do in parallel.
type Config struct {
	// Concurrency is the number of components evaluated at once.
	Concurrency int
	// Workers is the number of goroutines per component; zero uses
	// GOMAXPROCS.
	Workers int
	// Laplace adds the Laplace residual of the body set to every summary.
	Laplace bool
}

func DefaultConfig() Config {
	return Config{Concurrency: 3, Workers: 4}
}

// Result holds display-unit samples for each requested component.
type Result struct {
	Points     []mgl64.Vec3
	Components []gravity.Component
	Fields     map[gravity.Component][]float64
	Metrics    map[gravity.Component]map[string]float64
	Elapsed    time.Duration
}

// Field returns the samples of c, or nil if c was not evaluated.
func (r *Result) Field(c gravity.Component) []float64 {
	return r.Fields[c]
}

// Run evaluates each component over points. Bodies are validated first. The
// context is checked before each component starts; a cancelled run returns
// the context error and no result.
func Run(ctx context.Context, bodies []gravity.Body, components []gravity.Component, points []mgl64.Vec3, cfg Config) (*Result, error) {
	if len(components) == 0 {
		return nil, ErrNoComponents
	}
	for i, b := range bodies {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
	}
	for _, c := range components {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: %d", gravity.ErrUnknownComponent, int(c))
		}
	}

	start := time.Now()
	fields := make([][]float64, len(components))
	stats := make([]map[string]float64, len(components))

	var opts []gravity.Option
	if cfg.Workers > 0 {
		opts = append(opts, gravity.WithWorkers(cfg.Workers))
	}

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Concurrency > 0 {
		g.SetLimit(cfg.Concurrency)
	}

	for i, c := range components {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			vals := gravity.EvaluateAll(bodies, c, points, opts...)

			ms := metrics.Standard()
			if cfg.Laplace {
				ms = append(ms, metrics.NewLaplace(bodies))
			}
			stats[i] = metrics.Collect(ms, points, vals)
			if n := stats[i]["nan_count"]; n > 0 {
				slog.Warn("singular samples", "component", c, "count", int(n))
			}
			fields[i] = vals
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Points:     points,
		Components: components,
		Fields:     make(map[gravity.Component][]float64, len(components)),
		Metrics:    make(map[gravity.Component]map[string]float64, len(components)),
		Elapsed:    time.Since(start),
	}
	for i, c := range components {
		res.Fields[c] = fields[i]
		res.Metrics[c] = stats[i]
	}
	slog.Debug("survey complete", "bodies", len(bodies), "points", len(points),
		"components", len(components), "elapsed", res.Elapsed)
	return res, nil
}

// RunGeometry lays out geo and runs the survey over its points.
func RunGeometry(ctx context.Context, bodies []gravity.Body, components []gravity.Component, geo Geometry, cfg Config) (*Result, error) {
	pts, err := geo.Points()
	if err != nil {
		return nil, err
	}
	return Run(ctx, bodies, components, pts, cfg)
}
