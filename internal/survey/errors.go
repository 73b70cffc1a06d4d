package survey

import "errors"

var (
	// ErrTooFewPoints indicates a profile or grid axis with fewer than two
	// samples.
	ErrTooFewPoints = errors.New("survey: at least two samples per axis required")

	// ErrEmptyExtent indicates a profile whose start equals its end, or a grid
	// with an empty side.
	ErrEmptyExtent = errors.New("survey: empty survey extent")

	// ErrNoComponents indicates a run with nothing to evaluate.
	ErrNoComponents = errors.New("survey: no field components requested")
)
