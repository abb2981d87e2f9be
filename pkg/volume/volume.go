package volume

import "github.com/lumenpath/lumenpath/pkg/spectral"

// Spectrum is the per-wavelength value volumes integrate, the same
// four-sample representation used across the spectral core and BSDF
// contract.
type Spectrum = spectral.SWC

// Volume is the abstract medium contract: an index-of-refraction source,
// optional emission, and a priority used to arbitrate nested/overlapping
// media at a surface crossing.
type Volume interface {
	Priority() int

	// IOR returns the volume's index of refraction at the given
	// wavelength in nm.
	IOR(nm float64) float64

	// Scatter advances along ray from mint to maxt, choosing a free-flight
	// scatter distance when possible. It multiplies throughput in place by
	// the segment's transmittance (and, if a scatter point is chosen, by
	// the scattering albedo at that point), adds any volume emission
	// encountered into emission, and returns the scatter distance (< maxt)
	// or -1 if the segment was traversed without scattering.
	Scatter(mint, maxt float64, u float64, scatteredStart bool, throughput, emission *Spectrum) float64
}

// phaseSchlick evaluates the Schlick phase function approximation to
// Henyey-Greenstein at asymmetry g and cosine of the scattering angle.
func phaseSchlick(g, cosTheta float64) float64 {
	k := schlickK(g)
	denom := 1 + k*cosTheta
	return (1 - k*k) / (4 * 3.141592653589793 * denom * denom)
}

// schlickK maps Henyey-Greenstein asymmetry g to the Schlick approximation
// constant, clamped to [-1,1] to stay a valid phase function.
func schlickK(g float64) float64 {
	k := g * (1.55 - 0.55*g*g)
	if k > 1 {
		k = 1
	}
	if k < -1 {
		k = -1
	}
	return k
}

// PhaseSchlick is exported for callers (integrators) evaluating the phase
// function directly given a sampled scatter direction.
func PhaseSchlick(g, cosTheta float64) float64 { return phaseSchlick(g, cosTheta) }
