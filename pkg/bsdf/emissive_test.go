package bsdf

import (
	"testing"

	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/spectral"
	"github.com/stretchr/testify/assert"
)

func TestEmissiveRadiatesTowardFrontFace(t *testing.T) {
	var sw spectral.SpectrumWavelengths
	e := NewEmissive(spectral.NewSWC(&sw, 2.5))
	hit := HitPoint{ShadingNormal: geom.NewVec3(0, 1, 0), Wavelengths: &sw}

	radiance := e.GetEmittedRadiance(hit, geom.NewVec3(0, 1, 0))
	assert.InDelta(t, 2.5, radiance.At(0), 1e-9)
}

func TestEmissiveIsBlackOnBackFace(t *testing.T) {
	var sw spectral.SpectrumWavelengths
	e := NewEmissive(spectral.NewSWC(&sw, 2.5))
	hit := HitPoint{ShadingNormal: geom.NewVec3(0, 1, 0), Wavelengths: &sw}

	radiance := e.GetEmittedRadiance(hit, geom.NewVec3(0, -1, 0))
	assert.True(t, radiance.Black())
}

func TestEmissiveIsLightSourceAndHasNoLobe(t *testing.T) {
	var sw spectral.SpectrumWavelengths
	e := NewEmissive(spectral.NewSWC(&sw, 1))
	hit := HitPoint{ShadingNormal: geom.NewVec3(0, 1, 0), Wavelengths: &sw}

	assert.True(t, e.IsLightSource())
	assert.False(t, e.IsDelta())

	f, pdfW, _, _ := e.Evaluate(hit, geom.NewVec3(0, 1, 0), geom.NewVec3(0, 1, 0))
	assert.True(t, f.Black())
	assert.Equal(t, 0.0, pdfW)
}
