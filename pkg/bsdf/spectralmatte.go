package bsdf

import (
	"math"

	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/specache"
	"github.com/lumenpath/lumenpath/pkg/spectral"
)

// SpectralMatte is a Lambertian diffuse material whose reflectance is a
// tabulated spectral.SPD (a measured or painted reflectance curve) rather
// than a fixed Spectrum, resampled at each hit's active hero wavelengths
// through a shared specache.Cache. A render evaluates the same handful of
// material SPDs from millions of path vertices, each at its own randomly
// stratified wavelength draw, so the cache absorbs the repeat queries a
// plain spectral.NewSWCFromSPD call per hit would redo every time.
type SpectralMatte struct {
	Reflectance spectral.SPD
	cache       *specache.Cache
}

// NewSpectralMatte builds a SpectralMatte resampling reflectance through
// cache. A nil cache gets its own specache.New(specache.DefaultCapacity);
// callers placing several SpectralMattes in one scene should share a
// single *specache.Cache across them so a hero-wavelength draw that hits
// more than one of them still only costs one resample per distinct SPD.
func NewSpectralMatte(reflectance spectral.SPD, cache *specache.Cache) *SpectralMatte {
	if cache == nil {
		cache = specache.New(specache.DefaultCapacity)
	}
	return &SpectralMatte{Reflectance: reflectance, cache: cache}
}

func (m *SpectralMatte) reflectanceAt(sw *spectral.SpectrumWavelengths) Spectrum {
	return m.cache.Resample(sw, m.Reflectance)
}

func (m *SpectralMatte) IsDelta() bool       { return false }
func (m *SpectralMatte) IsPassThrough() bool { return false }
func (m *SpectralMatte) IsLightSource() bool { return false }

func (m *SpectralMatte) GetEmittedRadiance(hit HitPoint, wo geom.Vec3) Spectrum {
	return spectral.NewSWC(hit.Wavelengths, 0)
}

func (m *SpectralMatte) GetPassThroughTransparency(hit HitPoint, wi geom.Vec3, u float64) Spectrum {
	return spectral.NewSWC(hit.Wavelengths, 0)
}

func (m *SpectralMatte) Evaluate(hit HitPoint, wi, wo geom.Vec3) (Spectrum, float64, float64, Event) {
	cosI := wi.Dot(hit.ShadingNormal)
	cosO := wo.Dot(hit.ShadingNormal)
	if cosI*cosO <= 0 {
		return spectral.NewSWC(hit.Wavelengths, 0), 0, 0, 0
	}
	pdf := math.Abs(cosO) / math.Pi
	f := m.reflectanceAt(hit.Wavelengths).Scale(1 / math.Pi)
	return f, pdf, pdf, Diffuse | Reflect
}

func (m *SpectralMatte) Pdf(hit HitPoint, wi, wo geom.Vec3) (float64, float64) {
	_, pdf, revPdf, _ := m.Evaluate(hit, wi, wo)
	return pdf, revPdf
}

func (m *SpectralMatte) Sample(hit HitPoint, wi geom.Vec3, u1, u2, uPassThrough float64) (Spectrum, geom.Vec3, float64, Event) {
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
