package bsdf

import (
	"math"

	"github.com/lumenpath/lumenpath/pkg/geom"
)

// glossyExponent collapses the anisotropic (nu, nv) roughness pair into a
// single Phong-style exponent; full anisotropic half-vector sampling is
// out of scope here, but the isotropic average still produces a glossy
// lobe whose width tracks both roughness inputs.
func glossyExponent(nu, nv float64) float64 {
	return (nu + nv) / 2
}

// sampleGlossyHalfVector draws a half-vector around normal n from a
// cosine-power (Phong) lobe with the given exponent.
func sampleGlossyHalfVector(n geom.Vec3, exponent, u1, u2 float64) (h geom.Vec3, pdfH float64) {
	cosTheta := math.Pow(u1, 1/(exponent+1))
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * u2

	t, b := n.CoordinateSystem()
	local := t.Multiply(sinTheta * math.Cos(phi)).
		Add(b.Multiply(sinTheta * math.Sin(phi))).
		Add(n.Multiply(cosTheta))

	pdfH = (exponent + 1) / (2 * math.Pi) * math.Pow(cosTheta, exponent)
	return local.Normalize(), pdfH
}

// glossyLobeValue evaluates the Phong-style glossy BRDF lobe (unweighted
// by Fresnel) for a half vector between wi and wo.
func glossyLobeValue(n, wi, wo geom.Vec3, exponent float64) (value, pdfWo float64) {
	h := wi.Add(wo)
	if h.IsZero() {
		return 0, 0
	}
	h = h.Normalize()

	cosThetaH := h.Dot(n)
	if cosThetaH <= 0 {
		return 0, 0
	}
	cosI := math.Abs(wi.Dot(n))
	cosO := math.Abs(wo.Dot(n))
	if cosI <= 0 || cosO <= 0 {
		return 0, 0
	}

	norm := (exponent + 2) / (2 * math.Pi)
	value = norm * math.Pow(cosThetaH, exponent) / (4 * math.Max(cosI, cosO))

	pdfH := (exponent + 1) / (2 * math.Pi) * math.Pow(cosThetaH, exponent)
	woDotH := wo.Dot(h)
	if woDotH <= 0 {
		return value, 0
	}
	pdfWo = pdfH / (4 * woDotH)
	return value, pdfWo
}
