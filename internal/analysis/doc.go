// Package analysis provides wavenumber-domain tools for gravity profiles.
//
//   - [PowerSpectrum]: one-sided power spectrum of an evenly spaced profile
//   - [Spectrum.DepthEstimate]: Spector-Grant depth from the log-power slope
//   - [Continue]: upward continuation of a profile
//
// # Depth Estimation
//
// The power of a compact source at depth h decays as exp(-2hk) with angular
// wavenumber k, so the slope of ln P against k over the low-wavenumber band
// gives -2h:
//
//	spec, _ := analysis.PowerSpectrum(gz, profile.Spacing())
//	h := spec.DepthEstimate(0.5)
package analysis
