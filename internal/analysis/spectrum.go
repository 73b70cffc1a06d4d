package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Spectrum is the one-sided power spectrum of a profile. Wavenumbers are
// angular (rad/m); index 0 is the mean.
type Spectrum struct {
	Wavenumbers []float64
	Power       []float64
}

func checkProfile(values []float64, spacing float64) error {
	if len(values) < 4 {
		return fmt.Errorf("%w: got %d", ErrShortProfile, len(values))
	}
	if !(spacing > 0) || math.IsInf(spacing, 0) {
		return fmt.Errorf("%w: %g", ErrSpacing, spacing)
	}
	if floats.HasNaN(values) {
		return ErrNaNSample
	}
	return nil
}

// PowerSpectrum removes the mean from values and returns |F(k)|² for
// k = 0 .. Nyquist.
func PowerSpectrum(values []float64, spacing float64) (*Spectrum, error) {
	if err := checkProfile(values, spacing); err != nil {
		return nil, err
	}

	n := len(values)
	detrended := make([]float64, n)
	copy(detrended, values)
	floats.AddConst(-stat.Mean(values, nil), detrended)

	coeffs := fft.FFTReal(detrended)
	half := n/2 + 1
	spec := &Spectrum{
		Wavenumbers: make([]float64, half),
		Power:       make([]float64, half),
	}
	for i := 0; i < half; i++ {
		spec.Wavenumbers[i] = 2 * math.Pi * float64(i) / (float64(n) * spacing)
		a := cmplx.Abs(coeffs[i])
		spec.Power[i] = a * a
	}
	return spec, nil
}

// Dominant returns the non-zero wavenumber carrying the most power.
func (s *Spectrum) Dominant() float64 {
	if len(s.Power) < 2 {
		return 0
	}
	i := floats.MaxIdx(s.Power[1:]) + 1
	return s.Wavenumbers[i]
}

// DepthEstimate fits ln P = a - 2hk over the lowest fraction of the
// non-zero wavenumbers and returns h. It returns NaN if fewer than three
// usable bins remain.
func (s *Spectrum) DepthEstimate(fraction float64) float64 {
	if fraction <= 0 || fraction > 1 {
		fraction = 1
	}
	last := int(math.Round(fraction * float64(len(s.Power)-1)))

	var ks, logs []float64
	for i := 1; i <= last && i < len(s.Power); i++ {
		if s.Power[i] <= 0 {
			continue
		}
		ks = append(ks, s.Wavenumbers[i])
		logs = append(logs, math.Log(s.Power[i]))
	}
	if len(ks) < 3 {
		return math.NaN()
	}
	_, slope := stat.LinearRegression(ks, logs, nil, false)
	return -slope / 2
}
