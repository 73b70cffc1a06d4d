package config

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/gravmod/internal/gravity"
	"github.com/san-kum/gravmod/internal/survey"
)

func profileX(half, z float64, n int) survey.Profile {
	return survey.Profile{Start: mgl64.Vec3{-half, 0, z}, End: mgl64.Vec3{half, 0, z}, N: n}
}

func gridXY(half, z float64, n int) survey.Grid {
	return survey.Grid{XMin: -half, XMax: half, YMin: -half, YMax: half, Z: z, NX: n, NY: n}
}

func preset(name string, comps []string, p survey.Profile, bodies ...BodyConfig) *Config {
	return &Config{
		Name:        name,
		Survey:      SurveyProfile,
		Components:  comps,
		Profile:     p,
		Grid:        gridXY(math.Abs(p.Start[0]), p.Start[2], DefaultGridSize),
		Bodies:      bodies,
		Concurrency: DefaultConcurrency,
		OutputDir:   DefaultOutputDir,
	}
}

var Presets = map[string]map[string]*Config{
	"cuboid": {
		"unit": preset("unit_cuboid", []string{"gz", "gzz"}, profileX(10, 0, 101),
			CuboidBody("cuboid", gravity.DefaultCuboid())),
		"buried_cube": preset("buried_cube", []string{"gz", "gxz", "gzz"}, profileX(50, 0, 101),
			CuboidBody("cube", gravity.Cuboid{XLength: 10, YLength: 10, ZLength: 10, ZCentroid: -5.5, Density: 2000})),
		"tunnel": preset("tunnel", []string{"gz", "gzz"}, profileX(30, 0, 121),
			CuboidBody("tunnel", gravity.Cuboid{XLength: 3, YLength: 200, ZLength: 3, ZCentroid: -6, Density: -2670})),
		"dipping_slab": preset("dipping_slab", []string{"gz", "gxz", "gzz"}, profileX(80, 0, 161),
			CuboidBody("slab", gravity.Cuboid{XLength: 40, YLength: 100, ZLength: 4, ZCentroid: -15, YRotation: 0.35, Density: 300})),
	},
	"sphere": {
		"unit": preset("unit_sphere", []string{"gz", "gzz"}, profileX(10, 0, 101),
			SphereBody("sphere", gravity.DefaultSphere())),
		"void": preset("void", []string{"gz", "gzz"}, profileX(10, 0, 101),
			SphereBody("void", gravity.Sphere{ZCentroid: -1, Radius: 1, Density: -1800})),
		"ore_body": preset("ore_body", []string{"gz", "gxx", "gzz"}, profileX(100, 0, 201),
			SphereBody("ore", gravity.Sphere{ZCentroid: -25, Radius: 8, Density: 1500})),
	},
	"mixed": {
		"cube_and_void": preset("cube_and_void", []string{"gz", "gzz"}, profileX(50, 0, 101),
			CuboidBody("cube", gravity.Cuboid{XLength: 10, YLength: 10, ZLength: 10, ZCentroid: -5.5, Density: 2000}),
			SphereBody("void", gravity.Sphere{XCentroid: 20, ZCentroid: -4, Radius: 3, Density: -1800})),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(group, name string) *Config {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	cfg, ok := groupPresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(group string) []string {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(groupPresets))
	for name := range groupPresets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func ListGroups() []string {
	groups := make([]string, 0, len(Presets))
	for g := range Presets {
		groups = append(groups, g)
	}
	slices.Sort(groups)
	return groups
}
