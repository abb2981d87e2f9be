package bsdf

import (
	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/spectral"
)

// Emissive is a pure light-emitting material, grounded on the teacher's
// material.Emissive: it absorbs every incoming ray (no scattering lobe)
// and radiates a constant spectrum toward every outgoing direction in the
// hemisphere above its shading normal.
type Emissive struct {
	Emission Spectrum
}

func NewEmissive(emission Spectrum) *Emissive {
	return &Emissive{Emission: emission}
}

func (e *Emissive) IsDelta() bool       { return false }
func (e *Emissive) IsPassThrough() bool { return false }
func (e *Emissive) IsLightSource() bool { return true }

func (e *Emissive) GetPassThroughTransparency(hit HitPoint, wi geom.Vec3, u float64) Spectrum {
	return spectral.NewSWC(hit.Wavelengths, 0)
}

// GetEmittedRadiance returns Emission toward any wo in the normal's
// hemisphere, zero on the back face.
func (e *Emissive) GetEmittedRadiance(hit HitPoint, wo geom.Vec3) Spectrum {
	if wo.Dot(hit.ShadingNormal) <= 0 {
		return spectral.NewSWC(hit.Wavelengths, 0)
	}
	return e.Emission
}

// Evaluate/Sample/Pdf are all zero: an emissive surface has no BSDF lobe,
// so a path that reaches one terminates there (matching the teacher's
// Scatter returning ok=false for Emissive).
func (e *Emissive) Evaluate(hit HitPoint, wi, wo geom.Vec3) (Spectrum, float64, float64, Event) {
	return spectral.NewSWC(hit.Wavelengths, 0), 0, 0, 0
}

func (e *Emissive) Sample(hit HitPoint, wi geom.Vec3, u1, u2, uPassThrough float64) (Spectrum, geom.Vec3, float64, Event) {
	return spectral.NewSWC(hit.Wavelengths, 0), geom.Vec3{}, 0, 0
}

func (e *Emissive) Pdf(HitPoint, geom.Vec3, geom.Vec3) (float64, float64) { return 0, 0 }
