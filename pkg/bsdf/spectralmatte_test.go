package bsdf

import (
	"testing"

	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/specache"
	"github.com/lumenpath/lumenpath/pkg/spectral"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpectralMatteEvaluateUsesCachedResample(t *testing.T) {
	var sw spectral.SpectrumWavelengths
	sw.Sample(0.25)

	spd := spectral.NewRegularSPD(spectral.WavelengthStart, spectral.WavelengthEnd, []float64{0.1, 0.3, 0.6, 0.9})
	cache := specache.New(16)
	m := NewSpectralMatte(spd, cache)

	hit := HitPoint{
		ShadingNormal: geom.NewVec3(0, 1, 0),
		Wavelengths:   &sw,
	}
	wi := geom.NewVec3(0, 1, 0)
	wo := geom.NewVec3(0, 1, 0)

	f, pdf, revPdf, event := m.Evaluate(hit, wi, wo)
	require.Greater(t, pdf, 0.0)
	assert.Equal(t, pdf, revPdf)
	assert.Equal(t, Diffuse|Reflect, event)
	assert.True(t, f.IsFinite())

	// a second Evaluate against the same wavelength set must hit the cache
	// rather than resample, and produce the identical reflectance.
	f2, _, _, _ := m.Evaluate(hit, wi, wo)
	assert.Equal(t, f.At(0), f2.At(0))
	assert.Equal(t, 1, cache.Len())
}

func TestSpectralMatteZeroBelowHorizon(t *testing.T) {
	var sw spectral.SpectrumWavelengths
	sw.Sample(0.5)

	spd := spectral.NewRegularSPD(spectral.WavelengthStart, spectral.WavelengthEnd, []float64{0.5, 0.5})
	m := NewSpectralMatte(spd, nil)

	hit := HitPoint{ShadingNormal: geom.NewVec3(0, 1, 0), Wavelengths: &sw}
	f, pdf, _, _ := m.Evaluate(hit, geom.NewVec3(0, 1, 0), geom.NewVec3(0, -1, 0))
	assert.Equal(t, 0.0, pdf)
	assert.True(t, f.Black())
}

func TestSpectralMatteSampleProducesForwardHemisphereDirection(t *testing.T) {
	var sw spectral.SpectrumWavelengths
	sw.Sample(0.75)

	spd := spectral.NewRegularSPD(spectral.WavelengthStart, spectral.WavelengthEnd, []float64{0.8})
	m := NewSpectralMatte(spd, nil)

	hit := HitPoint{ShadingNormal: geom.NewVec3(0, 1, 0), Wavelengths: &sw}
	_, wo, pdf, _ := m.Sample(hit, geom.NewVec3(0, 1, 0), 0.3, 0.7, 0.0)
	require.Greater(t, pdf, 0.0)
	assert.Greater(t, wo.Dot(hit.ShadingNormal), 0.0)
}
