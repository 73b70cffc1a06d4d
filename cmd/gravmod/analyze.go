package main

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravmod/internal/analysis"
	"github.com/san-kum/gravmod/internal/config"
	"github.com/san-kum/gravmod/internal/gravity"
	"github.com/san-kum/gravmod/internal/model"
	"github.com/san-kum/gravmod/internal/optim"
	"github.com/san-kum/gravmod/internal/storage"
	"github.com/san-kum/gravmod/internal/viz"
)

var (
	component   string
	fraction    float64
	height      float64
	bodyIndex   int
	fitParams   []string
	benchPoints []int
)

// storedComponent loads a run's field and picks the requested component, or
// the first one stored.
func storedComponent(runID string) (*storage.RunMetadata, *storage.Field, gravity.Component, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, 0, err
	}
	field, err := st.LoadField(runID)
	if err != nil {
		return nil, nil, 0, err
	}
	if len(field.Components) == 0 {
		return nil, nil, 0, fmt.Errorf("run %s has no components", runID)
	}
	name := component
	if name == "" {
		name = field.Components[0]
	}
	c, err := gravity.ParseComponent(name)
	if err != nil {
		return nil, nil, 0, err
	}
	if _, ok := field.Values[c.String()]; !ok {
		return nil, nil, 0, fmt.Errorf("run %s has no %s samples (stored: %s)", runID, c, strings.Join(field.Components, ", "))
	}
	return meta, field, c, nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, field, c, err := storedComponent(args[0])
	if err != nil {
		return err
	}
	if meta.Survey == config.SurveyGrid {
		return fmt.Errorf("run %s is a grid survey; spectra need a profile", meta.ID)
	}
	if len(field.Points) < 2 {
		return fmt.Errorf("no data")
	}
	spacing := field.Points[1].Sub(field.Points[0]).Len()
	values := field.Values[c.String()]

	spec, err := analysis.PowerSpectrum(values, spacing)
	if err != nil {
		return err
	}

	fmt.Printf("spectrum analysis: %s\n", meta.ID)
	fmt.Printf("model: %s, component: %s, spacing: %.4g m\n\n", meta.Model, c, spacing)

	plotData := spec.Power[:max(len(spec.Power)/4, 2)]
	graph, err := viz.Series(plotData, fmt.Sprintf("power spectrum (%s)", c), viz.PlotOptions{Width: 80, Height: 15})
	if err != nil {
		return err
	}
	fmt.Println(graph)
	fmt.Println()

	k := spec.Dominant()
	fmt.Printf("dominant wavenumber: %.4g rad/m\n", k)
	if k > 0 {
		fmt.Printf("wavelength: %.4g m\n", 2*math.Pi/k)
	}
	fmt.Printf("depth estimate: %.4g m\n", spec.DepthEstimate(fraction))

	if height != 0 {
		up, err := analysis.Continue(values, spacing, height)
		if err != nil {
			return err
		}
		length := spacing * float64(len(values)-1)
		graph, err := viz.ProfilePlot(up, c, 0, length, viz.DefaultPlotOptions)
		if err != nil {
			return err
		}
		fmt.Printf("\ncontinued upward %g m:\n%s\n", height, graph)
	}
	return nil
}

// parseRange reads name=lo:hi:n.
func parseRange(s string) (string, []float64, error) {
	name, spec, ok := strings.Cut(s, "=")
	if !ok {
		return "", nil, fmt.Errorf("parameter %q: expected name=lo:hi:n", s)
	}
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return "", nil, fmt.Errorf("parameter %q: expected lo:hi:n", s)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, fmt.Errorf("parameter %q: %w", s, err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, fmt.Errorf("parameter %q: %w", s, err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 1 {
		return "", nil, fmt.Errorf("parameter %q: bad count %q", s, parts[2])
	}
	return name, optim.Linspace(lo, hi, n), nil
}

// parseHalfWidth reads name=halfwidth.
func parseHalfWidth(s string) (string, float64, error) {
	name, v, ok := strings.Cut(s, "=")
	if !ok {
		return "", 0, fmt.Errorf("parameter %q: expected name=halfwidth", s)
	}
	half, err := strconv.ParseFloat(v, 64)
	if err != nil || half < 0 {
		return "", 0, fmt.Errorf("parameter %q: bad half-width %q", s, v)
	}
	return name, half, nil
}

func fitRun(cmd *cobra.Command, args []string) error {
	if len(fitParams) == 0 {
		return fmt.Errorf("at least one --param is required")
	}
	meta, field, c, err := storedComponent(args[0])
	if err != nil {
		return err
	}
	_, doc, _, err := resolve(cmd)
	if err != nil {
		return err
	}
	bodies := doc.Bodies()
	if bodyIndex < 0 || bodyIndex >= len(bodies) {
		return fmt.Errorf("--body %d out of range (model has %d bodies)", bodyIndex, len(bodies))
	}

	names := make([]string, len(fitParams))
	ranges := make([][]float64, len(fitParams))
	for i, p := range fitParams {
		if names[i], ranges[i], err = parseRange(p); err != nil {
			return err
		}
	}
	// Reject unknown names before trying every combination.
	for _, n := range names {
		if _, err := optim.Set(bodies[bodyIndex], n, 0); err != nil {
			return fmt.Errorf("%w (available: %s)", err, strings.Join(optim.Params(bodies[bodyIndex].Kind()), ", "))
		}
	}

	search := optim.NewGridSearch(names, ranges)
	fmt.Printf("fitting %s of run %s: %d combinations\n", c, meta.ID, search.Size())
	start := time.Now()
	fit, err := search.Search(cmd.Context(), optim.BodyBuilder(bodies, bodyIndex), c, field.Points, field.Values[c.String()])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARAM\tVALUE")
	for _, n := range names {
		fmt.Fprintf(w, "%s\t%.6g\n", n, fit.Params[n])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nrms misfit: %.6g %s\n", fit.Misfit, c.Unit())
	fmt.Printf("evaluated: %d, rejected: %d, in %v\n", fit.Evaluated, fit.Rejected, time.Since(start))

	if saveModel {
		path, err := saveFitted(doc, bodyIndex, fit.Params)
		if err != nil {
			return err
		}
		fmt.Printf("model saved: %s\n", path)
	}
	return nil
}

// saveFitted replaces body index of doc with its best-fitting version and
// stores the model.
func saveFitted(doc *model.Document, index int, params map[string]float64) (string, error) {
	best, err := optim.BodyBuilder(doc.Bodies(), index)(params)
	if err != nil {
		return "", err
	}
	id := doc.Objects()[index].ID
	if err := doc.Replace(id, best[index]); err != nil {
		return "", err
	}
	doc.Name += " fit"
	return storage.New(dataDir).SaveModel(doc)
}

func benchModel(cmd *cobra.Command, args []string) error {
	_, doc, comps, err := resolve(cmd)
	if err != nil {
		return err
	}
	bodies := doc.Bodies()
	workerCounts := []int{1, runtime.GOMAXPROCS(0)}
	if workers > 0 {
		workerCounts = []int{workers}
	}

	fmt.Printf("benchmarking %s (%d bodies)\n\n", doc.Name, len(bodies))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COMPONENT\tPOINTS\tWORKERS\tTIME\tPOINTS/SEC")

	for _, c := range comps {
		for _, n := range benchPoints {
			if n < 1 {
				continue
			}
			pts := make([]mgl64.Vec3, n)
			for i := range pts {
				pts[i] = mgl64.Vec3{-50 + 100*float64(i)/float64(n), 0, 0}
			}
			for _, wk := range workerCounts {
				start := time.Now()
				gravity.EvaluateAll(bodies, c, pts, gravity.WithWorkers(wk))
				elapsed := time.Since(start)
				fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\n", c, n, wk, elapsed, float64(n)/elapsed.Seconds())
			}
		}
	}
	return w.Flush()
}
