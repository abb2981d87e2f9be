// Package spectral implements the renderer's spectral color core: stratified
// wavelength sampling, the SWC/RGB/XYZ spectrum types, blackbody and
// irregular SPD resampling, and gamut-constrained color-system conversion.
package spectral

import "math"

const (
	// WavelengthSamples is the default number of stratified wavelength
	// samples carried by a path.
	WavelengthSamples = 4

	// WavelengthStart and WavelengthEnd bound the visible range the
	// renderer samples wavelengths from, in nanometers.
	WavelengthStart = 380.0
	WavelengthEnd   = 720.0
)

// SpectrumWavelengths is an ordered stratified sample of wavelengths drawn
// from [WavelengthStart, WavelengthEnd], plus the single-wavelength
// collapse flag. The flag is monotone: once a delta
// refraction event sets it, nothing in the remainder of a path may clear
// it.
type SpectrumWavelengths struct {
	Wavelengths [WavelengthSamples]float64
	single      bool
	singleIndex int
}

// Sample stratifies u into WavelengthSamples bins across the visible range.
// u must be in [0,1); each bin i owns [i/N, (i+1)/N) and is re-scaled into
// that slice before being mapped to a wavelength, which is the stratification
// step.
func (sw *SpectrumWavelengths) Sample(u float64) {
	const n = WavelengthSamples
	span := WavelengthEnd - WavelengthStart
	for i := 0; i < n; i++ {
		stratum := (u + float64(i)) / float64(n)
		sw.Wavelengths[i] = WavelengthStart + stratum*span
	}
	sw.single = false
	sw.singleIndex = 0
}

// CollapseToSingle marks the wavelength set as collapsed to wavelength
// index idx. A delta refraction event makes cross-wavelength coherence
// impossible (dispersion splits the path irrecoverably), so this is
// monotone: calling it again with a different index is a caller bug and
// is ignored once already single, preserving the "monotone for the
// remainder of the path" invariant.
func (sw *SpectrumWavelengths) CollapseToSingle(idx int) {
	if sw.single {
		return
	}
	sw.single = true
	sw.singleIndex = idx
}

// IsSingle reports whether the wavelength set has collapsed to one sample.
func (sw *SpectrumWavelengths) IsSingle() bool { return sw.single }

// SingleIndex returns the collapsed wavelength's index; valid only when
// IsSingle is true.
func (sw *SpectrumWavelengths) SingleIndex() int { return sw.singleIndex }

// ActiveCount returns how many wavelength samples currently carry
// independent information: 1 once collapsed, WavelengthSamples otherwise.
// SWC.Len() must always equal this.
func (sw *SpectrumWavelengths) ActiveCount() int {
	if sw.single {
		return 1
	}
	return WavelengthSamples
}

// clampWavelength keeps a wavelength within the tabulated visible range,
// used by SPD resampling before a lookup.
func clampWavelength(nm float64) float64 {
	return math.Min(WavelengthEnd, math.Max(WavelengthStart, nm))
}
