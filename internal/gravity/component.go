package gravity

import (
	"fmt"
	"strings"
)

// Component selects one of the nine measurable field quantities.
type Component int

const (
	Gx Component = iota
	Gy
	Gz
	Gxx
	Gxy
	Gxz
	Gyy
	Gyz
	Gzz
)

// Display-unit conversions applied once to aggregated output.
const (
	VectorScale   = -1e8
	GradientScale = 1e9
)

var componentNames = [...]string{"gx", "gy", "gz", "gxx", "gxy", "gxz", "gyy", "gyz", "gzz"}

// Components returns all nine components in declaration order.
func Components() []Component {
	return []Component{Gx, Gy, Gz, Gxx, Gxy, Gxz, Gyy, Gyz, Gzz}
}

func (c Component) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Component(%d)", int(c))
	}
	return componentNames[c]
}

func (c Component) Valid() bool {
	return c >= Gx && c <= Gzz
}

// IsGradient reports whether c is a gradient-tensor component.
func (c Component) IsGradient() bool {
	return c >= Gxx && c <= Gzz
}

// DisplayScale is the factor converting a summed SI value of c to display
// units.
func (c Component) DisplayScale() float64 {
	if c.IsGradient() {
		return GradientScale
	}
	return VectorScale
}

// Unit names the display unit of c: microgal for the vector (positive
// down) and Eötvös for the tensor.
func (c Component) Unit() string {
	if c.IsGradient() {
		return "E"
	}
	return "µGal"
}

// ParseComponent accepts "gz", "Gz", "GZZ" and so on.
func ParseComponent(s string) (Component, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range componentNames {
		if n == name {
			return Component(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownComponent, s)
}

// ParseComponents parses a list of names, e.g. from a comma separated flag.
func ParseComponents(names []string) ([]Component, error) {
	out := make([]Component, 0, len(names))
	for _, n := range names {
		c, err := ParseComponent(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (c Component) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownComponent, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Component) UnmarshalText(text []byte) error {
	parsed, err := ParseComponent(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
