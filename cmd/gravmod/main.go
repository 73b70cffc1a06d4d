package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravmod/internal/config"
	"github.com/san-kum/gravmod/internal/export"
	"github.com/san-kum/gravmod/internal/gravity"
	"github.com/san-kum/gravmod/internal/metrics"
	"github.com/san-kum/gravmod/internal/storage"
	"github.com/san-kum/gravmod/internal/survey"
	"github.com/san-kum/gravmod/internal/viz"
)

var (
	dataDir string
	verbose bool
	theme   string

	plane       string
	perspective bool
	csvOut      bool
	outFile     string
	saveModel   bool
)

// main registers the gravmod commands and executes the root command,
// exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "gravmod",
		Short:         "forward gravity modelling of buried cuboids and spheres",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			viz.SetTheme(theme)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravmod", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", viz.ThemeSurvey.Name,
		"colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	evalCmd := &cobra.Command{
		Use:   "eval x y z",
		Short: "evaluate field components at one point",
		Args:  cobra.ExactArgs(3),
		RunE:  evalPoint,
	}
	addModelFlags(evalCmd)

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "evaluate and plot a straight profile",
		RunE:  runProfile,
	}
	addModelFlags(profileCmd)
	addSurveyFlags(profileCmd)
	profileCmd.Flags().BoolVar(&csvOut, "csv", false, "write samples as CSV instead of plotting")
	profileCmd.Flags().StringVar(&svgFile, "svg", "", "also write the first component's profile to an SVG file")

	gridCmd := &cobra.Command{
		Use:   "grid",
		Short: "evaluate a regular grid at fixed elevation",
		RunE:  runGrid,
	}
	addModelFlags(gridCmd)
	addSurveyFlags(gridCmd)
	gridCmd.Flags().BoolVar(&csvOut, "csv", false, "write samples as CSV instead of sparklines")

	tensorCmd := &cobra.Command{
		Use:   "tensor x y z",
		Short: "gradient tensor, principal values and invariants at one point",
		Args:  cobra.ExactArgs(3),
		RunE:  tensorAt,
	}
	addModelFlags(tensorCmd)

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "describe model bodies",
		RunE:  modelInfo,
	}
	addModelFlags(infoCmd)
	infoCmd.Flags().StringVar(&plane, "plane", "xz", "plane for silhouettes (xy, xz, yz)")

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "draw model bodies in plan, section or perspective",
		RunE:  viewModel,
	}
	addModelFlags(viewCmd)
	viewCmd.Flags().StringVar(&plane, "plane", "xz", "projection plane (xy, xz, yz)")
	viewCmd.Flags().BoolVar(&perspective, "3d", false, "perspective wireframe")
	viewCmd.Flags().StringVar(&svgFile, "svg", "", "write the projected model to an SVG file instead")

	presetsCmd := &cobra.Command{
		Use:   "presets [group]",
		Short: "list preset groups, or the presets of a group",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, g := range config.ListGroups() {
					fmt.Printf("%s: %s\n", g, strings.Join(config.ListPresets(g), ", "))
				}
				return nil
			}
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for group: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s/%s\n", args[0], p)
			}
			return nil
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a configured survey and store the result",
		RunE:  runSurvey,
	}
	addModelFlags(runCmd)
	addSurveyFlags(runCmd)
	runCmd.Flags().BoolVar(&saveModel, "save-model", false, "also save the model under the data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "write one component to an SVG file instead")
	plotCmd.Flags().StringVar(&component, "component", "", "component for --svg (default first stored)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "power spectrum and depth estimate of a stored profile",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	spectrumCmd.Flags().StringVar(&component, "component", "", "component to analyse (default first stored)")
	spectrumCmd.Flags().Float64Var(&fraction, "fraction", 0.25, "fraction of wavenumbers used for the depth fit")
	spectrumCmd.Flags().Float64Var(&height, "continue", 0, "also continue the profile upward by this height (m)")

	fitCmd := &cobra.Command{
		Use:   "fit [run_id]",
		Short: "grid-search body parameters against a stored profile",
		Args:  cobra.ExactArgs(1),
		RunE:  fitRun,
	}
	addModelFlags(fitCmd)
	fitCmd.Flags().StringVar(&component, "component", "", "component to fit (default first stored)")
	fitCmd.Flags().IntVar(&bodyIndex, "body", 0, "index of the body to vary")
	fitCmd.Flags().StringArrayVarP(&fitParams, "param", "p", nil, "parameter range name=lo:hi:n (repeatable)")
	fitCmd.Flags().BoolVar(&saveModel, "save-model", false, "store the model with the best-fitting body")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark field evaluation",
		RunE:  benchModel,
	}
	addModelFlags(benchCmd)
	benchCmd.Flags().IntSliceVar(&benchPoints, "points", []int{1000, 10000, 100000}, "point counts")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted batch of surveys",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "vary one body parameter along a profile",
		RunE:  sweepParam,
	}
	addModelFlags(sweepCmd)
	addSurveyFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&bodyIndex, "body", 0, "index of the body to vary")
	sweepCmd.Flags().StringArrayVarP(&fitParams, "param", "p", nil, "parameter range name=lo:hi:n")

	uncertaintyCmd := &cobra.Command{
		Use:   "uncertainty",
		Short: "Monte Carlo spread of the profile peak under parameter perturbation",
		RunE:  runUncertainty,
	}
	addModelFlags(uncertaintyCmd)
	addSurveyFlags(uncertaintyCmd)
	uncertaintyCmd.Flags().IntVar(&bodyIndex, "body", 0, "index of the body to perturb")
	uncertaintyCmd.Flags().StringArrayVarP(&fitParams, "param", "p", nil, "perturbation name=halfwidth (repeatable)")
	uncertaintyCmd.Flags().IntVar(&trials, "trials", 100, "number of trials")
	uncertaintyCmd.Flags().Int64Var(&mcSeed, "seed", 1, "random seed")

	rootCmd.AddCommand(evalCmd, profileCmd, gridCmd, tensorCmd, infoCmd, viewCmd, presetsCmd,
		runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, spectrumCmd, fitCmd, benchCmd,
		batchCmd, sweepCmd, uncertaintyCmd, newModelCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func metricNames() []string {
	ms := metrics.Standard()
	if laplace {
		ms = append(ms, metrics.NewLaplace(nil))
	}
	return metrics.Names(ms)
}

func evalPoint(cmd *cobra.Command, args []string) error {
	p, err := parsePoint(args)
	if err != nil {
		return err
	}
	_, doc, comps, err := resolve(cmd)
	if err != nil {
		return err
	}
	bodies := doc.Bodies()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COMPONENT\tVALUE\tUNIT")
	for _, c := range comps {
		v := gravity.EvaluateAll(bodies, c, []mgl64.Vec3{p})[0]
		if math.IsNaN(v) {
			slog.Warn("singular sample", "component", c, "point", p)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", c, viz.FormatValue(v), c.Unit())
	}
	return w.Flush()
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg, doc, comps, err := resolve(cmd)
	if err != nil {
		return err
	}
	res, err := survey.RunGeometry(cmd.Context(), doc.Bodies(), comps, cfg.Profile, surveyConfig(cfg))
	if err != nil {
		return err
	}
	if csvOut {
		return storage.WriteCSV(os.Stdout, res.Points, res.Components, res.Fields)
	}

	fmt.Printf("model: %s (%d bodies)\n", doc.Name, doc.Len())
	fmt.Printf("profile: %v to %v, %d stations\n\n", cfg.Profile.Start, cfg.Profile.End, cfg.Profile.N)
	for _, c := range comps {
		graph, err := viz.ProfilePlot(res.Field(c), c, 0, cfg.Profile.Length(), viz.DefaultPlotOptions)
		if err != nil {
			slog.Warn("skipping plot", "component", c, "err", err)
			continue
		}
		fmt.Println(graph)
		fmt.Println()
	}
	fmt.Println(viz.MetricsTable(comps, res.Metrics, metricNames()))
	if svgFile != "" {
		svg := export.ProfileToSVG(cfg.Profile.Distances(), res.Field(comps[0]), 800, 300, string(viz.CurrentTheme.Primary))
		if svg == "" {
			return viz.ErrNothingToPlot
		}
		return writeSVG(svg)
	}
	return nil
}

func runGrid(cmd *cobra.Command, args []string) error {
	cfg, doc, comps, err := resolve(cmd)
	if err != nil {
		return err
	}
	res, err := survey.RunGeometry(cmd.Context(), doc.Bodies(), comps, cfg.Grid, surveyConfig(cfg))
	if err != nil {
		return err
	}
	if csvOut {
		return storage.WriteCSV(os.Stdout, res.Points, res.Components, res.Fields)
	}

	fmt.Printf("model: %s (%d bodies)\n", doc.Name, doc.Len())
	fmt.Printf("grid: x %g..%g, y %g..%g, z %g, %dx%d stations\n\n",
		cfg.Grid.XMin, cfg.Grid.XMax, cfg.Grid.YMin, cfg.Grid.YMax, cfg.Grid.Z, cfg.Grid.NX, cfg.Grid.NY)
	for _, c := range comps {
		fmt.Println(viz.Title.Render(fmt.Sprintf("%s (%s)", c, c.Unit())))
		rows := cfg.Grid.Rows(res.Field(c))
		// North at the top.
		for i := len(rows) - 1; i >= 0; i-- {
			fmt.Println(viz.SparklineChart(rows[i], cfg.Grid.NX))
		}
		fmt.Println()
	}
	fmt.Println(viz.MetricsTable(comps, res.Metrics, metricNames()))
	return nil
}

func tensorAt(cmd *cobra.Command, args []string) error {
	p, err := parsePoint(args)
	if err != nil {
		return err
	}
	_, doc, _, err := resolve(cmd)
	if err != nil {
		return err
	}

	var t gravity.Tensor
	var field mgl64.Vec3
	for _, b := range doc.Bodies() {
		t = t.Add(b.Gradient(p))
		field = field.Add(b.Field(p))
	}
	t = t.Scale(gravity.GradientScale)
	field = field.Mul(gravity.VectorScale)

	fmt.Printf("point: %v\n", p)
	fmt.Printf("g: [%s, %s, %s] %s\n\n", viz.FormatValue(field[0]), viz.FormatValue(field[1]),
		viz.FormatValue(field[2]), gravity.Gz.Unit())
	fmt.Println(viz.TensorTable(t, gravity.Gzz.Unit()))

	i0, i1, i2 := t.Invariants()
	fmt.Printf("\n%s %s\n", viz.MetricLabel.Render("trace:"), viz.MetricValue.Render(viz.FormatValue(i0)))
	fmt.Printf("%s %s\n", viz.MetricLabel.Render("I1:"), viz.MetricValue.Render(viz.FormatValue(i1)))
	fmt.Printf("%s %s\n", viz.MetricLabel.Render("I2:"), viz.MetricValue.Render(viz.FormatValue(i2)))
	if vals, ok := t.Eigenvalues(); ok {
		fmt.Printf("%s %s, %s, %s\n", viz.MetricLabel.Render("principal:"),
			viz.FormatValue(vals[0]), viz.FormatValue(vals[1]), viz.FormatValue(vals[2]))
	} else {
		slog.Warn("eigen decomposition failed", "point", p)
	}
	return nil
}

func modelInfo(cmd *cobra.Command, args []string) error {
	pl, err := gravity.ParsePlane(plane)
	if err != nil {
		return err
	}
	_, doc, _, err := resolve(cmd)
	if err != nil {
		return err
	}

	fmt.Println(viz.HeaderStyle.Render(fmt.Sprintf("model: %s", doc.Name)))
	var totalMass float64
	for _, o := range doc.Objects() {
		b := o.Body
		totalMass += b.Mass()
		fmt.Printf("\n%s %s #%d\n", viz.Title.Render(o.Name), b.Kind(), o.ID)
		fmt.Printf("  %s %v\n", viz.MetricLabel.Render("centre:"), b.Centre())
		fmt.Printf("  %s %s m³\n", viz.MetricLabel.Render("volume:"), viz.FormatValue(b.Volume()))
		fmt.Printf("  %s %s kg\n", viz.MetricLabel.Render("mass:"), viz.Signed(viz.FormatValue(b.Mass()), b.Mass()))

		switch v := b.(type) {
		case gravity.Cuboid:
			fmt.Printf("  %s %v\n", viz.MetricLabel.Render("lengths:"), v.Lengths())
			fmt.Printf("  %s %v\n", viz.MetricLabel.Render("angles:"), v.Angles())
			fmt.Printf("  %s\n", viz.MetricLabel.Render("vertices:"))
			for i, p := range v.RotatedVertices() {
				fmt.Printf("    %d %v\n", i, p)
			}
			if sil, err := v.Silhouette(pl); err == nil {
				fmt.Printf("  %s %v\n", viz.MetricLabel.Render("silhouette "+pl.String()+":"), sil)
			}
		case gravity.Sphere:
			fmt.Printf("  %s %g m\n", viz.MetricLabel.Render("radius:"), v.Radius)
		}
	}
	fmt.Printf("\n%s %s kg\n", viz.MetricLabel.Render("total mass:"), viz.Signed(viz.FormatValue(totalMass), totalMass))
	return nil
}

func viewModel(cmd *cobra.Command, args []string) error {
	if svgFile != "" && perspective {
		return perspectiveSVG(cmd)
	}
	if svgFile != "" {
		pl, err := gravity.ParsePlane(plane)
		if err != nil {
			return err
		}
		return modelSVG(cmd, pl)
	}
	_, doc, _, err := resolve(cmd)
	if err != nil {
		return err
	}
	if perspective {
		out, err := viz.PerspectiveView(doc.Bodies(), 60, 24)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}
	pl, err := gravity.ParsePlane(plane)
	if err != nil {
		return err
	}
	out, err := viz.PlanView(doc.Bodies(), pl, nil, 60, 24)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func runSurvey(cmd *cobra.Command, args []string) error {
	cfg, doc, comps, err := resolve(cmd)
	if err != nil {
		return err
	}
	geo, err := cfg.Geometry()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s survey of %s...\n", cfg.Survey, doc.Name)
	res, err := survey.RunGeometry(cmd.Context(), doc.Bodies(), comps, geo, surveyConfig(cfg))
	if err != nil {
		return err
	}

	surveyKind := cfg.Survey
	if surveyKind == "" {
		surveyKind = config.SurveyProfile
	}
	runID, err := st.Save(storage.RunInfo{Model: doc.Name, Survey: surveyKind, Workers: cfg.Workers}, doc, res)
	if err != nil {
		return err
	}
	if saveModel {
		path, err := st.SaveModel(doc)
		if err != nil {
			return err
		}
		fmt.Printf("model saved: %s\n", path)
	}

	fmt.Printf("completed in %v\n", res.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("points: %d\n\n", len(res.Points))
	fmt.Println(viz.MetricsTable(comps, res.Metrics, metricNames()))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tSURVEY\tPOINTS\tBODIES\tCOMPONENTS\tELAPSED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\t%.2fms\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Survey,
			run.Points,
			run.Bodies,
			strings.Join(run.Components, ","),
			run.ElapsedMS,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	if svgFile != "" {
		return profileSVG(runID)
	}

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	field, err := st.LoadField(runID)
	if err != nil {
		return err
	}
	if len(field.Points) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", len(field.Points))

	length := field.Points[len(field.Points)-1].Sub(field.Points[0]).Len()
	for _, name := range field.Components {
		c, err := gravity.ParseComponent(name)
		if err != nil {
			return err
		}
		var graph string
		if meta.Survey == config.SurveyGrid {
			graph, err = viz.Series(field.Values[name], fmt.Sprintf("%s (%s), grid order", c, c.Unit()), viz.DefaultPlotOptions)
		} else {
			graph, err = viz.ProfilePlot(field.Values[name], c, 0, length, viz.DefaultPlotOptions)
		}
		if err != nil {
			slog.Warn("skipping plot", "component", c, "err", err)
			continue
		}
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

// output returns stdout or the --out file.
func output() (*os.File, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	field, err := st.LoadField(args[0])
	if err != nil {
		return err
	}
	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := storage.WriteFieldCSV(w, field); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	field, err := st.LoadField(args[0])
	if err != nil {
		return err
	}
	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(w, meta, field); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func profileSVG(runID string) error {
	_, field, c, err := storedComponent(runID)
	if err != nil {
		return err
	}
	distances := make([]float64, len(field.Points))
	for i, p := range field.Points {
		distances[i] = p.Sub(field.Points[0]).Len()
	}
	svg := export.ProfileToSVG(distances, field.Values[c.String()], 800, 300, string(viz.CurrentTheme.Primary))
	if svg == "" {
		return viz.ErrNothingToPlot
	}
	return writeSVG(svg)
}
