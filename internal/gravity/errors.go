package gravity

import (
	"errors"
	"fmt"
)

// Domain errors for body construction and parsing.
var (
	// ErrDegenerateGeometry indicates a zero, negative or non-finite size,
	// or a non-finite position, angle or density.
	ErrDegenerateGeometry = errors.New("gravity: degenerate geometry")

	// ErrUnknownComponent indicates a field component name outside Gx..Gzz.
	ErrUnknownComponent = errors.New("gravity: unknown field component")

	// ErrUnknownPlane indicates a projection plane other than xy, xz or yz.
	ErrUnknownPlane = errors.New("gravity: unknown projection plane")

	// ErrUnknownKind indicates a body kind other than cuboid or sphere.
	ErrUnknownKind = errors.New("gravity: unknown body kind")
)

// GeometryError reports which parameter of which body was rejected.
type GeometryError struct {
	Kind  Kind
	Field string
	Value float64
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("gravity: %s %s = %g: degenerate geometry", e.Kind, e.Field, e.Value)
}

func (e *GeometryError) Unwrap() error {
	return ErrDegenerateGeometry
}
