package scenecore

import (
	"math"
	"testing"

	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/spectral"
	"github.com/stretchr/testify/assert"
)

func TestSphereLightIlluminateOutsideHitsFront(t *testing.T) {
	var sw spectral.SpectrumWavelengths
	sw.Sample(0.5)
	light := NewSphereLight(geom.NewSphere(geom.NewVec3(0, 0, 0), 1), spectral.NewSWC(&sw, 5))

	point := geom.NewVec3(0, 0, 10)
	radiance, dir, dist, directPdfW, emissionPdfW, cosAtLight, ok := light.Illuminate(nil, point, 0.5, 0.5, 0, &sw)

	assert.True(t, ok)
	assert.Greater(t, directPdfW, 0.0)
	assert.Greater(t, emissionPdfW, 0.0)
	assert.Greater(t, cosAtLight, 0.0)
	assert.Greater(t, dist, 0.0)
	assert.False(t, radiance.Black())
	assert.Less(t, dir.Z, -0.9) // roughly toward the sphere from +Z
}

func TestSphereLightIlluminateInsideUsesUniformSampling(t *testing.T) {
	var sw spectral.SpectrumWavelengths
	sw.Sample(0.5)
	light := NewSphereLight(geom.NewSphere(geom.NewVec3(0, 0, 0), 5), spectral.NewSWC(&sw, 3))

	_, _, _, directPdfW, _, _, ok := light.Illuminate(nil, geom.NewVec3(0, 0, 0), 0.3, 0.7, 0, &sw)
	assert.True(t, ok)
	assert.Greater(t, directPdfW, 0.0)
}

func TestSphereLightDirectPdfMatchesConeFormula(t *testing.T) {
	var sw spectral.SpectrumWavelengths
	sw.Sample(0.5)
	shape := geom.NewSphere(geom.NewVec3(0, 0, 0), 1)
	light := NewSphereLight(shape, spectral.NewSWC(&sw, 1))

	point := geom.NewVec3(0, 0, 10)
	dir := geom.NewVec3(0, 0, -1)

	distToCenter := 10.0
	sinThetaMax := 1.0 / distToCenter
	cosThetaMax := math.Sqrt(1 - sinThetaMax*sinThetaMax)
	want := 1 / (2 * math.Pi * (1 - cosThetaMax))

	got := light.DirectPdf(nil, point, dir)
	assert.InDelta(t, want, got, 1e-9)
}

func TestSphereLightDirectPdfZeroWhenMissed(t *testing.T) {
	shape := geom.NewSphere(geom.NewVec3(0, 0, 0), 1)
	light := NewSphereLight(shape, Spectrum{})

	got := light.DirectPdf(nil, geom.NewVec3(0, 0, 10), geom.NewVec3(1, 0, 0))
	assert.Equal(t, 0.0, got)
}

func TestSphereLightSampleEmissionProducesValidPdfs(t *testing.T) {
	var sw spectral.SpectrumWavelengths
	sw.Sample(0.5)
	shape := geom.NewSphere(geom.NewVec3(0, 0, 0), 2)
	light := NewSphereLight(shape, spectral.NewSWC(&sw, 4))

	ray, normal, emission, areaPdf, dirPdf := light.SampleEmission(0.2, 0.6, 0.4, 0.9, &sw)

	assert.InDelta(t, 1/shape.Area(), areaPdf, 1e-9)
	assert.Greater(t, dirPdf, 0.0)
	assert.False(t, emission.Black())
	assert.InDelta(t, 1.0, normal.Length(), 1e-6)
	assert.Greater(t, ray.Direction.Dot(normal), 0.0)
}

func TestSphereLightEmissionPdfZeroOffSurface(t *testing.T) {
	shape := geom.NewSphere(geom.NewVec3(0, 0, 0), 2)
	light := NewSphereLight(shape, Spectrum{})

	got := light.EmissionPdf(geom.NewVec3(0, 0, 0), geom.NewVec3(0, 0, 1))
	assert.Equal(t, 0.0, got)
}

func TestSphereLightEmitIsAlwaysBlack(t *testing.T) {
	var sw spectral.SpectrumWavelengths
	sw.Sample(0.5)
	light := NewSphereLight(geom.NewSphere(geom.NewVec3(0, 0, 0), 1), spectral.NewSWC(&sw, 5))

	ray := geom.NewRay(geom.NewVec3(0, 0, 10), geom.NewVec3(0, 0, -1))
	assert.True(t, light.Emit(ray, &sw).Black())
}

func TestSphereLightIsFiniteAndNonDelta(t *testing.T) {
	light := NewSphereLight(geom.NewSphere(geom.NewVec3(0, 0, 0), 1), Spectrum{})
	assert.False(t, light.IsInfinite())
	assert.False(t, light.IsDelta())
}
