package analysis

import "errors"

var (
	// ErrShortProfile indicates a profile too short to transform.
	ErrShortProfile = errors.New("analysis: profile needs at least four samples")

	// ErrSpacing indicates a zero, negative or non-finite sample spacing.
	ErrSpacing = errors.New("analysis: sample spacing must be positive")

	// ErrNaNSample indicates a singular sample in the profile.
	ErrNaNSample = errors.New("analysis: profile contains NaN samples")
)
