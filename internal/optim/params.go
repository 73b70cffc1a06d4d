package optim

import (
	"errors"
	"fmt"
	"slices"

	"github.com/san-kum/gravmod/internal/gravity"
)

// ErrUnknownParam indicates a parameter name the body kind does not have.
var ErrUnknownParam = errors.New("optim: unknown body parameter")

var cuboidParams = []string{
	"x_length", "y_length", "z_length",
	"x_centroid", "y_centroid", "z_centroid",
	"x_rotation", "y_rotation", "z_rotation",
	"density",
}

var sphereParams = []string{"x_centroid", "y_centroid", "z_centroid", "radius", "density"}

// Params lists the fittable parameter names of kind k.
func Params(k gravity.Kind) []string {
	switch k {
	case gravity.KindCuboid:
		return slices.Clone(cuboidParams)
	case gravity.KindSphere:
		return slices.Clone(sphereParams)
	default:
		return nil
	}
}

// Set returns b with the named parameter replaced by v.
func Set(b gravity.Body, name string, v float64) (gravity.Body, error) {
	switch b := b.(type) {
	case gravity.Cuboid:
		switch name {
		case "x_length":
			b.XLength = v
		case "y_length":
			b.YLength = v
		case "z_length":
			b.ZLength = v
		case "x_centroid":
			b.XCentroid = v
		case "y_centroid":
			b.YCentroid = v
		case "z_centroid":
			b.ZCentroid = v
		case "x_rotation":
			b.XRotation = v
		case "y_rotation":
			b.YRotation = v
		case "z_rotation":
			b.ZRotation = v
		case "density":
			b.Density = v
		default:
			return nil, fmt.Errorf("%w: cuboid %q", ErrUnknownParam, name)
		}
		return b, nil
	case gravity.Sphere:
		switch name {
		case "x_centroid":
			b.XCentroid = v
		case "y_centroid":
			b.YCentroid = v
		case "z_centroid":
			b.ZCentroid = v
		case "radius":
			b.Radius = v
		case "density":
			b.Density = v
		default:
			return nil, fmt.Errorf("%w: sphere %q", ErrUnknownParam, name)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %T", gravity.ErrUnknownKind, b)
	}
}

// Get returns the named parameter of b.
func Get(b gravity.Body, name string) (float64, error) {
	switch b := b.(type) {
	case gravity.Cuboid:
		switch name {
		case "x_length":
			return b.XLength, nil
		case "y_length":
			return b.YLength, nil
		case "z_length":
			return b.ZLength, nil
		case "x_centroid":
			return b.XCentroid, nil
		case "y_centroid":
			return b.YCentroid, nil
		case "z_centroid":
			return b.ZCentroid, nil
		case "x_rotation":
			return b.XRotation, nil
		case "y_rotation":
			return b.YRotation, nil
		case "z_rotation":
			return b.ZRotation, nil
		case "density":
			return b.Density, nil
		}
		return 0, fmt.Errorf("%w: cuboid %q", ErrUnknownParam, name)
	case gravity.Sphere:
		switch name {
		case "x_centroid":
			return b.XCentroid, nil
		case "y_centroid":
			return b.YCentroid, nil
		case "z_centroid":
			return b.ZCentroid, nil
		case "radius":
			return b.Radius, nil
		case "density":
			return b.Density, nil
		}
		return 0, fmt.Errorf("%w: sphere %q", ErrUnknownParam, name)
	default:
		return 0, fmt.Errorf("%w: %T", gravity.ErrUnknownKind, b)
	}
}

// BodyBuilder varies the parameters of bodies[index] and keeps the other
// bodies fixed. Combinations that produce invalid geometry are rejected.
func BodyBuilder(bodies []gravity.Body, index int) Builder {
	return func(params map[string]float64) ([]gravity.Body, error) {
		if index < 0 || index >= len(bodies) {
			return nil, fmt.Errorf("optim: body index %d out of range", index)
		}
		b := bodies[index]
		for name, v := range params {
			var err error
			if b, err = Set(b, name, v); err != nil {
				return nil, err
			}
		}
		if err := b.Validate(); err != nil {
			return nil, err
		}
		out := slices.Clone(bodies)
		out[index] = b
		return out, nil
	}
}
