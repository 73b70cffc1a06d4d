package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravmod/internal/gravity"
	"github.com/san-kum/gravmod/internal/model"
	"github.com/san-kum/gravmod/internal/survey"
)

const (
	DefaultHalfWidth   = 50.0
	DefaultSamples     = 101
	DefaultGridSize    = 41
	DefaultConcurrency = 3
	DefaultOutputDir   = "runs"

	SurveyProfile = "profile"
	SurveyGrid    = "grid"
)

var (
	// ErrUnknownSurvey indicates a survey kind other than profile or grid.
	ErrUnknownSurvey = errors.New("config: survey must be profile or grid")

	// ErrBodyVariant indicates a body entry without exactly one of cuboid or
	// sphere.
	ErrBodyVariant = errors.New("config: body needs exactly one of cuboid or sphere")
)

type Config struct {
	Name        string         `yaml:"name"`
	Survey      string         `yaml:"survey"`
	Components  []string       `yaml:"components"`
	Profile     survey.Profile `yaml:"profile"`
	Grid        survey.Grid    `yaml:"grid"`
	Bodies      []BodyConfig   `yaml:"bodies"`
	Workers     int            `yaml:"workers"`
	Concurrency int            `yaml:"concurrency"`
	OutputDir   string         `yaml:"output_dir"`
}

// BodyConfig is one body of a configured model.
type BodyConfig struct {
	Name   string          `yaml:"name,omitempty"`
	Cuboid *gravity.Cuboid `yaml:"cuboid,omitempty"`
	Sphere *gravity.Sphere `yaml:"sphere,omitempty"`
}

func (b BodyConfig) Body() (gravity.Body, error) {
	switch {
	case b.Cuboid != nil && b.Sphere == nil:
		return *b.Cuboid, nil
	case b.Sphere != nil && b.Cuboid == nil:
		return *b.Sphere, nil
	default:
		return nil, ErrBodyVariant
	}
}

func CuboidBody(name string, c gravity.Cuboid) BodyConfig {
	return BodyConfig{Name: name, Cuboid: &c}
}

func SphereBody(name string, s gravity.Sphere) BodyConfig {
	return BodyConfig{Name: name, Sphere: &s}
}

func DefaultConfig() *Config {
	return &Config{
		Name:       "default",
		Survey:     SurveyProfile,
		Components: []string{"gz"},
		Profile: survey.Profile{
			Start: mgl64.Vec3{-DefaultHalfWidth, 0, 0},
			End:   mgl64.Vec3{DefaultHalfWidth, 0, 0},
			N:     DefaultSamples,
		},
		Grid: survey.Grid{
			XMin: -DefaultHalfWidth, XMax: DefaultHalfWidth,
			YMin: -DefaultHalfWidth, YMax: DefaultHalfWidth,
			NX: DefaultGridSize, NY: DefaultGridSize,
		},
		Bodies:      []BodyConfig{CuboidBody("cuboid", gravity.DefaultCuboid())},
		Concurrency: DefaultConcurrency,
		OutputDir:   DefaultOutputDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks everything Load cannot catch from YAML types alone.
func (c *Config) Validate() error {
	if _, err := c.Geometry(); err != nil {
		return err
	}
	if _, err := c.ParsedComponents(); err != nil {
		return err
	}
	_, err := c.Document()
	return err
}

func (c *Config) ParsedComponents() ([]gravity.Component, error) {
	return gravity.ParseComponents(c.Components)
}

// Geometry returns the configured profile or grid after checking it lays
// out.
func (c *Config) Geometry() (survey.Geometry, error) {
	var geo survey.Geometry
	switch c.Survey {
	case SurveyProfile, "":
		geo = c.Profile
	case SurveyGrid:
		geo = c.Grid
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSurvey, c.Survey)
	}
	if _, err := geo.Points(); err != nil {
		return nil, err
	}
	return geo, nil
}

// Document builds a model from the configured bodies, in order.
func (c *Config) Document() (*model.Document, error) {
	doc := model.New(c.Name)
	for i, bc := range c.Bodies {
		b, err := bc.Body()
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		if _, err := doc.Add(bc.Name, b); err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
	}
	return doc, nil
}

func (c *Config) SurveyConfig() survey.Config {
	return survey.Config{Concurrency: c.Concurrency, Workers: c.Workers}
}

// Clone returns a deep copy, so presets can be adjusted without changing
// the table.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Components = append([]string(nil), c.Components...)
	cp.Bodies = make([]BodyConfig, len(c.Bodies))
	for i, b := range c.Bodies {
		cp.Bodies[i] = BodyConfig{Name: b.Name}
		if b.Cuboid != nil {
			v := *b.Cuboid
			cp.Bodies[i].Cuboid = &v
		}
		if b.Sphere != nil {
			v := *b.Sphere
			cp.Bodies[i].Sphere = &v
		}
	}
	return &cp
}
