package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravmod/internal/automation"
	"github.com/san-kum/gravmod/internal/export"
	"github.com/san-kum/gravmod/internal/gravity"
	"github.com/san-kum/gravmod/internal/storage"
	"github.com/san-kum/gravmod/internal/viz"
)

var (
	trials  int
	mcSeed  int64
	svgFile string
)

func runBatch(cmd *cobra.Command, args []string) error {
	batch, err := automation.LoadBatch(args[0])
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("batch %s: %d steps\n", batch.Name, len(batch.Steps))
	ids, err := automation.RunBatch(cmd.Context(), batch, st)
	for _, id := range ids {
		fmt.Printf("run id: %s\n", id)
	}
	return err
}

// sweepSetup resolves the model, the first component and profile points
// shared by sweep and uncertainty.
func sweepSetup(cmd *cobra.Command) ([]gravity.Body, gravity.Component, []mgl64.Vec3, error) {
	cfg, doc, comps, err := resolve(cmd)
	if err != nil {
		return nil, 0, nil, err
	}
	pts, err := cfg.Profile.Points()
	if err != nil {
		return nil, 0, nil, err
	}
	return doc.Bodies(), comps[0], pts, nil
}

func sweepParam(cmd *cobra.Command, args []string) error {
	bodies, c, pts, err := sweepSetup(cmd)
	if err != nil {
		return err
	}
	if len(fitParams) != 1 {
		return fmt.Errorf("sweep needs exactly one --param")
	}
	name, values, err := parseRange(fitParams[0])
	if err != nil {
		return err
	}

	sw := &automation.Sweep{
		Bodies:    bodies,
		Index:     bodyIndex,
		Param:     name,
		Min:       values[0],
		Max:       values[len(values)-1],
		Steps:     len(values),
		Component: c,
		Points:    pts,
	}
	results, err := automation.RunSweep(cmd.Context(), sw)
	if err != nil {
		return err
	}

	fmt.Printf("sweep of %s over %d values, component %s (%s)\n\n", name, len(values), c, c.Unit())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPEAK\tMIN\tMAX\tRMS\n", name)
	peaks := make([]float64, len(results))
	for i, r := range results {
		peaks[i] = r.Peak
		if r.Rejected {
			fmt.Fprintf(w, "%.6g\trejected\t\t\t\n", r.ParamValue)
			continue
		}
		fmt.Fprintf(w, "%.6g\t%s\t%s\t%s\t%s\n", r.ParamValue,
			viz.FormatValue(r.Peak), viz.FormatValue(r.Min), viz.FormatValue(r.Max), viz.FormatValue(r.RMS))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\npeak: %s\n", viz.SparklineChart(peaks, len(peaks)))
	return nil
}

func runUncertainty(cmd *cobra.Command, args []string) error {
	bodies, c, pts, err := sweepSetup(cmd)
	if err != nil {
		return err
	}
	if len(fitParams) == 0 {
		return fmt.Errorf("at least one --param name=halfwidth is required")
	}
	perturb := make(map[string]float64, len(fitParams))
	for _, p := range fitParams {
		name, half, err := parseHalfWidth(p)
		if err != nil {
			return err
		}
		perturb[name] = half
	}

	mc := &automation.MonteCarlo{
		Bodies:       bodies,
		Index:        bodyIndex,
		Perturbation: perturb,
		Trials:       trials,
		Seed:         mcSeed,
		Component:    c,
		Points:       pts,
		Concurrency:  concurrency,
	}
	results, err := automation.RunMonteCarlo(cmd.Context(), mc)
	if err != nil {
		return err
	}

	mean, std, valid, skipped := automation.MonteCarloStats(results)
	fmt.Printf("monte carlo: %d trials, seed %d, component %s\n", trials, mcSeed, c)
	fmt.Printf("%s %s %s\n", viz.MetricLabel.Render("peak mean:"), viz.MetricValue.Render(viz.FormatValue(mean)), c.Unit())
	fmt.Printf("%s %s %s\n", viz.MetricLabel.Render("peak std:"), viz.MetricValue.Render(viz.FormatValue(std)), c.Unit())
	fmt.Printf("valid: %d, skipped: %d\n", valid, skipped)
	return nil
}

func writeSVG(svg string) error {
	if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgFile)
	return nil
}

func modelSVG(cmd *cobra.Command, pl gravity.Plane) error {
	_, doc, _, err := resolve(cmd)
	if err != nil {
		return err
	}
	svg, err := export.ModelToSVG(doc, pl, 800, 600)
	if err != nil {
		return err
	}
	return writeSVG(svg)
}

func perspectiveSVG(cmd *cobra.Command) error {
	_, doc, _, err := resolve(cmd)
	if err != nil {
		return err
	}
	c, err := viz.PerspectiveCanvas(doc.Bodies(), 120, 48)
	if err != nil {
		return err
	}
	return writeSVG(export.CanvasToSVG(c, 4))
}
