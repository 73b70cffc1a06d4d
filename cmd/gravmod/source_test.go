package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravmod/internal/gravity"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addModelFlags(cmd)
	addSurveyFlags(cmd)
	preset, configFile, modelFile = "", "", ""
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint([]string{"1", "-2.5", "3e2"})
	if err != nil {
		t.Fatal(err)
	}
	if p != (mgl64.Vec3{1, -2.5, 300}) {
		t.Errorf("got %v", p)
	}
	if _, err := parsePoint([]string{"1", "x", "3"}); err == nil {
		t.Error("expected error for non-numeric coordinate")
	}
	if _, err := parsePoint([]string{"1"}); err == nil {
		t.Error("expected error for missing coordinates")
	}
}

func TestParseRange(t *testing.T) {
	name, vals, err := parseRange("z_centroid=-10:-2:5")
	if err != nil {
		t.Fatal(err)
	}
	if name != "z_centroid" || len(vals) != 5 || vals[0] != -10 || vals[4] != -2 {
		t.Errorf("got %s %v", name, vals)
	}
	for _, bad := range []string{"density", "density=1:2", "density=a:2:3", "density=1:2:0"} {
		if _, _, err := parseRange(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

func TestResolveDefaults(t *testing.T) {
	cfg, err := resolveConfig(newTestCommand(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Bodies) != 1 || cfg.Bodies[0].Cuboid == nil {
		t.Fatalf("expected the default cuboid, got %+v", cfg.Bodies)
	}
	if *cfg.Bodies[0].Cuboid != gravity.DefaultCuboid() {
		t.Errorf("got %+v", *cfg.Bodies[0].Cuboid)
	}
}

func TestResolveBodyFlags(t *testing.T) {
	cmd := newTestCommand(t, "--kind", "sphere", "--radius", "2", "--centre", "0,0,-10",
		"--density", "500", "-c", "gz,gzz", "-n", "11")
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Bodies) != 1 || cfg.Bodies[0].Sphere == nil {
		t.Fatalf("expected one sphere, got %+v", cfg.Bodies)
	}
	want := gravity.Sphere{ZCentroid: -10, Radius: 2, Density: 500}
	if *cfg.Bodies[0].Sphere != want {
		t.Errorf("got %+v", *cfg.Bodies[0].Sphere)
	}
	if cfg.Profile.N != 11 {
		t.Errorf("samples not applied: %d", cfg.Profile.N)
	}
	comps, err := cfg.ParsedComponents()
	if err != nil || len(comps) != 2 || comps[1] != gravity.Gzz {
		t.Errorf("components: %v, %v", comps, err)
	}
}

func TestResolvePreset(t *testing.T) {
	cmd := newTestCommand(t)
	preset = "sphere/void"
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "void" {
		t.Errorf("got preset %q", cfg.Name)
	}

	preset = "sphere/nope"
	if _, err := resolveConfig(cmd); err == nil {
		t.Error("expected error for unknown preset")
	}
	preset = "void"
	if _, err := resolveConfig(cmd); err == nil {
		t.Error("expected error for preset without group")
	}
	preset = ""
}

func TestResolveRejectsDegenerateBody(t *testing.T) {
	cmd := newTestCommand(t, "--size", "0,1,1")
	if _, err := resolveConfig(cmd); err == nil {
		t.Error("expected a geometry error")
	}
	cmd = newTestCommand(t, "--centre", "1,2")
	if _, err := resolveConfig(cmd); err == nil {
		t.Error("expected an error for a two-value centre")
	}
}
