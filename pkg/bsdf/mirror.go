package bsdf

import (
	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/spectral"
)

// Mirror is a perfect specular reflector, grounded on the teacher's Metal
// material but without the fuzz parameter (a pure delta lobe).
type Mirror struct {
	Reflectance Spectrum
}

func NewMirror(reflectance Spectrum) *Mirror {
	return &Mirror{Reflectance: reflectance}
}

func (m *Mirror) IsDelta() bool       { return true }
func (m *Mirror) IsPassThrough() bool { return false }
func (m *Mirror) IsLightSource() bool { return false }
func (m *Mirror) GetEmittedRadiance(hit HitPoint, wo geom.Vec3) Spectrum {
	return spectral.NewSWC(hit.Wavelengths, 0)
}
func (m *Mirror) GetPassThroughTransparency(hit HitPoint, wi geom.Vec3, u float64) Spectrum {
	return spectral.NewSWC(hit.Wavelengths, 0)
}

// Evaluate always returns zero for a delta material: direct-light
// sampling must be skipped by the caller checking IsDelta instead.
func (m *Mirror) Evaluate(hit HitPoint, wi, wo geom.Vec3) (Spectrum, float64, float64, Event) {
	return spectral.NewSWC(hit.Wavelengths, 0), 0, 0, 0
}

func (m *Mirror) Pdf(HitPoint, geom.Vec3, geom.Vec3) (float64, float64) { return 0, 0 }

func (m *Mirror) Sample(hit HitPoint, wi geom.Vec3, u1, u2, uPassThrough float64) (Spectrum, geom.Vec3, float64, Event) {
	wo := reflect(wi, hit.ShadingNormal)
	return m.Reflectance, wo, 1, Specular | Reflect
}

func reflect(v, n geom.Vec3) geom.Vec3 {
	return n.Multiply(2 * v.Dot(n)).Subtract(v)
}
