package bsdf

import (
	"math"

	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/spectral"
)

// Matte is a Lambertian diffuse material, the non-delta base case most
// other materials (including GlossyCoating) wrap.
type Matte struct {
	Reflectance Spectrum
}

func NewMatte(reflectance Spectrum) *Matte {
	return &Matte{Reflectance: reflectance}
}

func (m *Matte) IsDelta() bool                      { return false }
func (m *Matte) IsPassThrough() bool                { return false }
func (m *Matte) IsLightSource() bool                { return false }
func (m *Matte) GetEmittedRadiance(hit HitPoint, wo geom.Vec3) Spectrum {
	return spectral.NewSWC(hit.Wavelengths, 0)
}
func (m *Matte) GetPassThroughTransparency(hit HitPoint, wi geom.Vec3, u float64) Spectrum {
	return spectral.NewSWC(hit.Wavelengths, 0)
}

func (m *Matte) Evaluate(hit HitPoint, wi, wo geom.Vec3) (Spectrum, float64, float64, Event) {
	cosI := wi.Dot(hit.ShadingNormal)
	cosO := wo.Dot(hit.ShadingNormal)
	if cosI*cosO <= 0 {
		return spectral.NewSWC(hit.Wavelengths, 0), 0, 0, 0
	}
	pdf := math.Abs(cosO) / math.Pi
	f := m.Reflectance.Scale(1 / math.Pi)
	return f, pdf, pdf, Diffuse | Reflect
}

func (m *Matte) Pdf(hit HitPoint, wi, wo geom.Vec3) (float64, float64) {
	_, pdf, revPdf, _ := m.Evaluate(hit, wi, wo)
	return pdf, revPdf
}

func (m *Matte) Sample(hit HitPoint, wi geom.Vec3, u1, u2, uPassThrough float64) (Spectrum, geom.Vec3, float64, Event) {
	wo := cosineSampleHemisphere(hit.ShadingNormal, u1, u2)
	if wi.Dot(hit.ShadingNormal) < 0 {
		wo = wo.Negate()
	}
	f, pdf, _, event := m.Evaluate(hit, wi, wo)
	if pdf <= 0 {
		return spectral.NewSWC(hit.Wavelengths, 0), geom.Vec3{}, 0, 0
	}
	return f.Scale(math.Abs(wo.Dot(hit.ShadingNormal)) / pdf), wo, pdf, event
}

// cosineSampleHemisphere draws a direction from a cosine-weighted
// hemisphere about normal n using Malley's method.
func cosineSampleHemisphere(n geom.Vec3, u1, u2 float64) geom.Vec3 {
	r := math.Sqrt(u1)
	theta := 2 * math.Pi * u2
	x := r * math.Cos(theta)
	y := r * math.Sin(theta)
	z := math.Sqrt(math.Max(0, 1-u1))

	t, b := n.CoordinateSystem()
	return t.Multiply(x).Add(b.Multiply(y)).Add(n.Multiply(z)).Normalize()
}
