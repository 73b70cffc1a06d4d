package gravity

import (
	"errors"
	"testing"
)

func TestParseComponent(t *testing.T) {
	cases := []struct {
		in   string
		want Component
	}{
		{"gz", Gz},
		{"Gxx", Gxx},
		{" GYZ ", Gyz},
		{"gzz", Gzz},
	}
	for _, tc := range cases {
		got, err := ParseComponent(tc.in)
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: got %s, expected %s", tc.in, got, tc.want)
		}
	}

	if _, err := ParseComponent("gw"); !errors.Is(err, ErrUnknownComponent) {
		t.Errorf("expected ErrUnknownComponent, got %v", err)
	}
}

func TestComponentScaleAndUnit(t *testing.T) {
	for _, c := range Components() {
		if c.IsGradient() {
			if c.DisplayScale() != 1e9 || c.Unit() != "E" {
				t.Errorf("%s: scale %g unit %s", c, c.DisplayScale(), c.Unit())
			}
		} else if c.DisplayScale() != -1e8 || c.Unit() != "µGal" {
			t.Errorf("%s: scale %g unit %s", c, c.DisplayScale(), c.Unit())
		}
	}
}

func TestComponentText(t *testing.T) {
	var c Component
	if err := c.UnmarshalText([]byte("GXZ")); err != nil || c != Gxz {
		t.Fatalf("unmarshal: %v %s", err, c)
	}
	b, err := c.MarshalText()
	if err != nil || string(b) != "gxz" {
		t.Errorf("marshal: %q %v", b, err)
	}
	if _, err := Component(42).MarshalText(); err == nil {
		t.Errorf("expected an error for an invalid component")
	}
	if Component(42).String() != "Component(42)" {
		t.Errorf("string: %s", Component(42))
	}
}
