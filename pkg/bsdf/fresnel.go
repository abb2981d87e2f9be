package bsdf

import "math"

// Fresnel evaluates a reflectance curve as a function of the cosine
// between the incident direction and the surface normal, at a single
// wavelength index (0..WavelengthSamples-1) so dispersive variants can
// return a different value per sample.
type Fresnel interface {
	Evaluate(cosIncidence float64, waveIndex int) float64
}

// SchlickFresnel is the Schlick approximation used directly by
// GlossyCoating: a single reflectance-at-normal-incidence Ks value,
// independent of wavelength index.
type SchlickFresnel struct {
	Ks float64
}

func (s SchlickFresnel) Evaluate(cosIncidence float64, waveIndex int) float64 {
	return SchlickWeight(s.Ks, cosIncidence)
}

// SchlickWeight computes the Schlick reflectance at normal-incidence
// coefficient ks and the cosine between the fixed direction and the
// surface normal.
func SchlickWeight(ks, cosTheta float64) float64 {
	c := 1 - math.Abs(cosTheta)
	c2 := c * c
	return ks + (1-ks)*c2*c2*c
}

// ConstFresnel is a wavelength-independent, angle-independent reflectance,
// used for preview/placeholder materials where a full Fresnel model isn't
// worth the cost.
type ConstFresnel struct {
	Reflectance float64
}

func (c ConstFresnel) Evaluate(cosIncidence float64, waveIndex int) float64 {
	return c.Reflectance
}

// CauchyFresnel models a dielectric whose index of refraction disperses
// with wavelength per Cauchy's equation n(λ) = A + B/λ², then applies the
// ordinary Fresnel dielectric reflectance formula at that index.
type CauchyFresnel struct {
	A, B float64 // Cauchy coefficients, B in nm^2
}

func (c CauchyFresnel) iorAt(nm float64) float64 {
	return c.A + c.B/(nm*nm)
}

// EvaluateAt computes the unpolarized Fresnel reflectance for a dielectric
// with Cauchy-dispersed IOR at wavelength nm, cosine of incidence
// cosIncidence (measured from the normal, 0..1).
func (c CauchyFresnel) EvaluateAt(cosIncidence, nm float64) float64 {
	n := c.iorAt(nm)
	cosT := cosIncidence
	sinT2 := (1 - cosT*cosT) / (n * n)
	if sinT2 >= 1 {
		return 1 // total internal reflection
	}
	cosI := math.Sqrt(1 - sinT2)

	rParallel := (n*cosT - cosI) / (n*cosT + cosI)
	rPerp := (cosT - n*cosI) / (cosT + n*cosI)
	return (rParallel*rParallel + rPerp*rPerp) / 2
}

// Evaluate satisfies the Fresnel interface; waveIndex is ignored and the
// reflectance is evaluated at a fixed 550 nm reference wavelength.
// EvaluateAt takes the wavelength in nm.
func (c CauchyFresnel) Evaluate(cosIncidence float64, waveIndex int) float64 {
	return c.EvaluateAt(cosIncidence, 550) // fallback: evaluate at a fixed reference wavelength
}
