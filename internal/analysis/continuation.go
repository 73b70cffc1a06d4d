package analysis

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// Continue upward-continues a profile by height metres (negative continues
// downward, which amplifies noise). The profile is treated as periodic, so
// values near the ends are distorted unless the anomaly has decayed there.
func Continue(values []float64, spacing, height float64) ([]float64, error) {
	if err := checkProfile(values, spacing); err != nil {
		return nil, err
	}

	n := len(values)
	coeffs := fft.FFTReal(values)
	for i := range coeffs {
		// Negative frequencies sit in the upper half.
		j := i
		if j > n/2 {
			j = n - i
		}
		k := 2 * math.Pi * float64(j) / (float64(n) * spacing)
		coeffs[i] *= complex(math.Exp(-k*height), 0)
	}

	back := fft.IFFT(coeffs)
	out := make([]float64, n)
	for i, c := range back {
		out[i] = real(c)
	}
	return out, nil
}
