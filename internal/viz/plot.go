package viz

import (
	"errors"
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gravmod/internal/gravity"
)

// ErrNothingToPlot indicates a series with no finite samples.
var ErrNothingToPlot = errors.New("viz: no finite samples to plot")

// PlotOptions sizes a line plot in characters.
type PlotOptions struct {
	Width  int
	Height int
}

var DefaultPlotOptions = PlotOptions{Width: 80, Height: 10}

// finite copies values with infinities replaced by NaN, which the plotter
// leaves as gaps. It fails if nothing finite remains.
func finite(values []float64) ([]float64, error) {
	out := make([]float64, len(values))
	n := 0
	for i, v := range values {
		if math.IsInf(v, 0) {
			v = math.NaN()
		}
		if !math.IsNaN(v) {
			n++
		}
		out[i] = v
	}
	if n == 0 {
		return nil, ErrNothingToPlot
	}
	return out, nil
}

// Series plots values with the given caption.
func Series(values []float64, caption string, opts PlotOptions) (string, error) {
	data, err := finite(values)
	if err != nil {
		return "", err
	}
	graphOpts := []asciigraph.Option{asciigraph.Caption(caption)}
	if opts.Height > 0 {
		graphOpts = append(graphOpts, asciigraph.Height(opts.Height))
	}
	if opts.Width > 0 && len(data) > 1 {
		graphOpts = append(graphOpts, asciigraph.Width(opts.Width))
	}
	return asciigraph.Plot(data, graphOpts...), nil
}

// ProfilePlot plots display-unit samples of c along a profile whose stations
// run from distance start to end.
func ProfilePlot(values []float64, c gravity.Component, start, end float64, opts PlotOptions) (string, error) {
	caption := fmt.Sprintf("%s (%s), %.4g .. %.4g m", c, c.Unit(), start, end)
	return Series(values, caption, opts)
}
