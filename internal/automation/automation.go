// Package automation runs scripted survey batches, parameter sweeps and
// Monte Carlo uncertainty studies.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravmod/internal/config"
	"github.com/san-kum/gravmod/internal/gravity"
	"github.com/san-kum/gravmod/internal/metrics"
	"github.com/san-kum/gravmod/internal/optim"
	"github.com/san-kum/gravmod/internal/storage"
	"github.com/san-kum/gravmod/internal/survey"
)

// ErrStep indicates a batch step without exactly one of preset or config.
var ErrStep = errors.New("automation: step needs exactly one of preset or config")

// ErrTrials indicates a Monte Carlo run asked for fewer than one trial.
var ErrTrials = errors.New("automation: trials must be positive")

// Batch is a scripted sequence of surveys.
type Batch struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`

	dir string
}

// Step is one survey of a batch. Components and Survey override the
// preset or config when set.
type Step struct {
	Preset     string   `yaml:"preset"`
	Config     string   `yaml:"config"`
	Components []string `yaml:"components"`
	Survey     string   `yaml:"survey"`
	SaveAs     string   `yaml:"save_as"`
}

// LoadBatch loads a batch from a YAML file. Step config paths are relative
// to the batch file.
func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var batch Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, err
	}
	batch.dir = filepath.Dir(path)
	return &batch, nil
}

func (b *Batch) stepConfig(s Step) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case s.Preset != "" && s.Config == "":
		group, name, _ := strings.Cut(s.Preset, "/")
		if cfg = config.GetPreset(group, name); cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", s.Preset)
		}
	case s.Config != "" && s.Preset == "":
		path := s.Config
		if !filepath.IsAbs(path) && b.dir != "" {
			path = filepath.Join(b.dir, path)
		}
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	default:
		return nil, ErrStep
	}

	if len(s.Components) > 0 {
		cfg.Components = s.Components
	}
	if s.Survey != "" {
		cfg.Survey = s.Survey
	}
	if s.SaveAs != "" {
		cfg.Name = s.SaveAs
	}
	return cfg, cfg.Validate()
}

// RunBatch executes all steps in order, saving each run to st, and returns
// the run ids written so far.
func RunBatch(ctx context.Context, batch *Batch, st *storage.Store) ([]string, error) {
	ids := make([]string, 0, len(batch.Steps))

	for i, step := range batch.Steps {
		cfg, err := batch.stepConfig(step)
		if err != nil {
			return ids, fmt.Errorf("step %d: %w", i+1, err)
		}
		slog.Info("running step", "step", i+1, "of", len(batch.Steps), "model", cfg.Name)

		doc, err := cfg.Document()
		if err != nil {
			return ids, fmt.Errorf("step %d: %w", i+1, err)
		}
		comps, err := cfg.ParsedComponents()
		if err != nil {
			return ids, fmt.Errorf("step %d: %w", i+1, err)
		}
		geo, err := cfg.Geometry()
		if err != nil {
			return ids, fmt.Errorf("step %d: %w", i+1, err)
		}

		res, err := survey.RunGeometry(ctx, doc.Bodies(), comps, geo, cfg.SurveyConfig())
		if err != nil {
			return ids, fmt.Errorf("step %d run: %w", i+1, err)
		}

		surveyKind := cfg.Survey
		if surveyKind == "" {
			surveyKind = config.SurveyProfile
		}
		id, err := st.Save(storage.RunInfo{Model: cfg.Name, Survey: surveyKind, Workers: cfg.Workers}, doc, res)
		if err != nil {
			return ids, fmt.Errorf("step %d save: %w", i+1, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// Sweep varies one parameter of one body across a range and summarises a
// field component at each value.
type Sweep struct {
	Bodies    []gravity.Body
	Index     int
	Param     string
	Min, Max  float64
	Steps     int
	Component gravity.Component
	Points    []mgl64.Vec3
}

// SweepResult summarises the field at one parameter value. Rejected steps
// produce invalid geometry and carry NaN statistics.
type SweepResult struct {
	ParamValue float64
	Peak       float64
	Min        float64
	Max        float64
	RMS        float64
	Rejected   bool
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *Sweep) ([]SweepResult, error) {
	if sweep.Index < 0 || sweep.Index >= len(sweep.Bodies) {
		return nil, fmt.Errorf("automation: body index %d out of range", sweep.Index)
	}
	if _, err := optim.Get(sweep.Bodies[sweep.Index], sweep.Param); err != nil {
		return nil, err
	}

	build := optim.BodyBuilder(sweep.Bodies, sweep.Index)
	values := optim.Linspace(sweep.Min, sweep.Max, sweep.Steps)
	results := make([]SweepResult, 0, len(values))

	for _, v := range values {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res := SweepResult{ParamValue: v}
		bodies, err := build(map[string]float64{sweep.Param: v})
		if err != nil {
			slog.Debug("sweep step rejected", "param", sweep.Param, "value", v, "err", err)
			res.Rejected = true
			res.Peak, res.Min, res.Max, res.RMS = math.NaN(), math.NaN(), math.NaN(), math.NaN()
			results = append(results, res)
			continue
		}

		vals := gravity.EvaluateAll(bodies, sweep.Component, sweep.Points)
		m := metrics.Collect([]metrics.Metric{metrics.NewPeak(), metrics.NewMin(), metrics.NewMax(), metrics.NewRMS()}, sweep.Points, vals)
		res.Peak, res.Min, res.Max, res.RMS = m["peak"], m["min"], m["max"], m["rms"]
		results = append(results, res)
	}

	return results, nil
}

// MonteCarlo perturbs body parameters uniformly and records the spread of
// the field peak.
type MonteCarlo struct {
	Bodies []gravity.Body
	Index  int
	// Perturbation maps a parameter name to the half-width of its uniform
	// perturbation.
	Perturbation map[string]float64
	Trials       int
	Seed         int64
	Component    gravity.Component
	Points       []mgl64.Vec3
	// Concurrency bounds the number of trials evaluated at once.
	Concurrency int
}

// Trial is one perturbed model. Invalid trials produced degenerate
// geometry and were not evaluated.
type Trial struct {
	ID     int
	Params map[string]float64
	Peak   float64
	Valid  bool
}

// RunMonteCarlo evaluates every trial. Trial i draws from a generator
// seeded with Seed+i, so results do not depend on scheduling.
func RunMonteCarlo(ctx context.Context, mc *MonteCarlo) ([]Trial, error) {
	if mc.Index < 0 || mc.Index >= len(mc.Bodies) {
		return nil, fmt.Errorf("automation: body index %d out of range", mc.Index)
	}
	if mc.Trials < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrTrials, mc.Trials)
	}
	base := make(map[string]float64, len(mc.Perturbation))
	for name := range mc.Perturbation {
		v, err := optim.Get(mc.Bodies[mc.Index], name)
		if err != nil {
			return nil, err
		}
		base[name] = v
	}

	build := optim.BodyBuilder(mc.Bodies, mc.Index)
	trials := make([]Trial, mc.Trials)

	g, ctx := errgroup.WithContext(ctx)
	if mc.Concurrency > 0 {
		g.SetLimit(mc.Concurrency)
	}
	for i := range trials {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(mc.Seed + int64(i)))
			params := make(map[string]float64, len(base))
			for _, name := range sortedKeys(mc.Perturbation) {
				params[name] = base[name] + (rng.Float64()-0.5)*2*mc.Perturbation[name]
			}

			t := Trial{ID: i, Params: params, Peak: math.NaN()}
			if bodies, err := build(params); err == nil {
				peak := metrics.NewPeak()
				vals := gravity.EvaluateAll(bodies, mc.Component, mc.Points, gravity.WithWorkers(1))
				metrics.Collect([]metrics.Metric{peak}, mc.Points, vals)
				t.Peak = peak.Value()
				t.Valid = true
			}
			trials[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return trials, nil
}

// MonteCarloStats returns the mean and standard deviation of the peak over
// valid trials with a finite peak, and the number of trials that were
// counted and skipped.
func MonteCarloStats(trials []Trial) (mean, std float64, valid, skipped int) {
	peaks := make([]float64, 0, len(trials))
	for _, t := range trials {
		if t.Valid && !math.IsNaN(t.Peak) {
			peaks = append(peaks, t.Peak)
		}
	}
	valid = len(peaks)
	skipped = len(trials) - valid
	if valid == 0 {
		return math.NaN(), math.NaN(), 0, skipped
	}
	if valid == 1 {
		return peaks[0], 0, 1, skipped
	}
	mean, std = stat.MeanStdDev(peaks, nil)
	return mean, std, valid, skipped
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
