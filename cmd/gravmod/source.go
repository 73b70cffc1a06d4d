package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravmod/internal/config"
	"github.com/san-kum/gravmod/internal/gravity"
	"github.com/san-kum/gravmod/internal/model"
	"github.com/san-kum/gravmod/internal/storage"
	"github.com/san-kum/gravmod/internal/survey"
)

// Model and survey flags shared by every command that evaluates a model.
var (
	configFile string
	preset     string
	modelFile  string

	kind    string
	lengths []float64
	centre  []float64
	angles  []float64
	radius  float64
	density float64

	components  []string
	start       []float64
	end         []float64
	samples     int
	extent      []float64
	elevation   float64
	gridSize    []int
	workers     int
	concurrency int
	laplace     bool
)

func addModelFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "survey config file (yaml)")
	f.StringVar(&preset, "preset", "", "preset as group/name, see 'gravmod presets'")
	f.StringVar(&modelFile, "model", "", "model document (json), replaces configured bodies")

	f.StringVar(&kind, "kind", "cuboid", "body kind for a single-body model (cuboid, sphere)")
	f.Float64SliceVar(&lengths, "size", []float64{1, 1, 1}, "cuboid edge lengths x,y,z (m)")
	f.Float64SliceVar(&centre, "centre", []float64{0, 0, -1}, "body centroid x,y,z (m)")
	f.Float64SliceVar(&angles, "angles", []float64{0, 0, 0}, "cuboid rotation about x,y,z (rad)")
	f.Float64Var(&radius, "radius", 1, "sphere radius (m)")
	f.Float64Var(&density, "density", -2000, "density contrast (kg/m³)")

	f.StringSliceVarP(&components, "components", "c", []string{"gz"}, "field components")
	f.IntVar(&workers, "workers", 0, "goroutines per component (0 = GOMAXPROCS)")
}

func addSurveyFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64SliceVar(&start, "start", []float64{-config.DefaultHalfWidth, 0, 0}, "profile start x,y,z (m)")
	f.Float64SliceVar(&end, "end", []float64{config.DefaultHalfWidth, 0, 0}, "profile end x,y,z (m)")
	f.IntVarP(&samples, "samples", "n", config.DefaultSamples, "profile stations")
	f.Float64SliceVar(&extent, "extent", []float64{-config.DefaultHalfWidth, config.DefaultHalfWidth, -config.DefaultHalfWidth, config.DefaultHalfWidth}, "grid xmin,xmax,ymin,ymax (m)")
	f.Float64Var(&elevation, "z", 0, "grid elevation (m)")
	f.IntSliceVar(&gridSize, "grid-size", []int{config.DefaultGridSize, config.DefaultGridSize}, "grid stations nx,ny")
	f.IntVar(&concurrency, "concurrency", config.DefaultConcurrency, "components evaluated at once")
	f.BoolVar(&laplace, "laplace", false, "report the Laplace residual of each component")
}

func vec3(name string, v []float64) (mgl64.Vec3, error) {
	if len(v) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("--%s needs three values, got %d", name, len(v))
	}
	return mgl64.Vec3{v[0], v[1], v[2]}, nil
}

// parsePoint reads x y z from positional arguments.
func parsePoint(args []string) (mgl64.Vec3, error) {
	var p mgl64.Vec3
	if len(args) != 3 {
		return p, fmt.Errorf("expected x y z, got %d values", len(args))
	}
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return p, fmt.Errorf("coordinate %d: %w", i, err)
		}
		p[i] = v
	}
	return p, nil
}

func bodyFlagsChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"kind", "size", "centre", "angles", "radius", "density"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// flagBody builds the single body described by the body flags.
func flagBody() (gravity.Body, error) {
	c, err := vec3("centre", centre)
	if err != nil {
		return nil, err
	}
	k, err := gravity.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	switch k {
	case gravity.KindSphere:
		return gravity.NewSphere(c, radius, density)
	default:
		l, err := vec3("size", lengths)
		if err != nil {
			return nil, err
		}
		a, err := vec3("angles", angles)
		if err != nil {
			return nil, err
		}
		return gravity.NewCuboid(l, c, a, density)
	}
}

// resolveConfig merges defaults, a preset, a config file and flags, in
// that order of precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		group, name, ok := strings.Cut(preset, "/")
		if !ok {
			return nil, fmt.Errorf("preset %q: expected group/name", preset)
		}
		p := config.GetPreset(group, name)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(group))
		}
		cfg = p
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if bodyFlagsChanged(cmd) {
		b, err := flagBody()
		if err != nil {
			return nil, err
		}
		switch v := b.(type) {
		case gravity.Cuboid:
			cfg.Bodies = []config.BodyConfig{config.CuboidBody("cuboid", v)}
		case gravity.Sphere:
			cfg.Bodies = []config.BodyConfig{config.SphereBody("sphere", v)}
		}
	}
	if flags.Changed("components") {
		cfg.Components = components
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}

	if flags.Lookup("samples") != nil {
		if err := applySurveyFlags(cmd, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

func applySurveyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("start") {
		v, err := vec3("start", start)
		if err != nil {
			return err
		}
		cfg.Profile.Start = v
	}
	if flags.Changed("end") {
		v, err := vec3("end", end)
		if err != nil {
			return err
		}
		cfg.Profile.End = v
	}
	if flags.Changed("samples") {
		cfg.Profile.N = samples
	}
	if flags.Changed("extent") {
		if len(extent) != 4 {
			return fmt.Errorf("--extent needs four values, got %d", len(extent))
		}
		cfg.Grid.XMin, cfg.Grid.XMax, cfg.Grid.YMin, cfg.Grid.YMax = extent[0], extent[1], extent[2], extent[3]
	}
	if flags.Changed("z") {
		cfg.Grid.Z = elevation
	}
	if flags.Changed("grid-size") {
		if len(gridSize) != 2 {
			return fmt.Errorf("--grid-size needs two values, got %d", len(gridSize))
		}
		cfg.Grid.NX, cfg.Grid.NY = gridSize[0], gridSize[1]
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = concurrency
	}
	return nil
}

// resolveModel returns the model to evaluate: the --model document when
// given, otherwise the configured bodies.
func resolveModel(cfg *config.Config) (*model.Document, error) {
	if modelFile != "" {
		return storage.LoadModelFile(modelFile)
	}
	return cfg.Document()
}

func resolve(cmd *cobra.Command) (*config.Config, *model.Document, []gravity.Component, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	doc, err := resolveModel(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	comps, err := cfg.ParsedComponents()
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, doc, comps, nil
}

func surveyConfig(cfg *config.Config) survey.Config {
	sc := cfg.SurveyConfig()
	sc.Laplace = laplace
	return sc
}
