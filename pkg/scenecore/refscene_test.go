package scenecore

import (
	"math"
	"testing"

	"github.com/lumenpath/lumenpath/pkg/bsdf"
	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/spectral"
	"github.com/lumenpath/lumenpath/pkg/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCamera() *ThinLensCamera {
	return NewCamera(CameraConfig{
		Center: geom.NewVec3(0, 0, 10),
		LookAt: geom.NewVec3(0, 0, 0),
		Up:     geom.NewVec3(0, 1, 0),
		Width:  4,
		Height: 4,
		VFov:   40,
	})
}

func TestRefSceneIntersectFindsNearestSphere(t *testing.T) {
	var sw spectral.SpectrumWavelengths
	sw.Sample(0.5)

	near := NewSphereObject(geom.NewSphere(geom.NewVec3(0, 0, 0), 1), bsdf.NewMatte(spectral.NewSWC(&sw, 0.5)))
	far := NewSphereObject(geom.NewSphere(geom.NewVec3(0, 0, -5), 1), bsdf.NewMatte(spectral.NewSWC(&sw, 0.5)))
	scene := NewRefScene([]*SphereObject{near, far}, newTestCamera(), nil)

	ray := geom.NewRay(geom.NewVec3(0, 0, 10), geom.NewVec3(0, 0, -1))
	hit, mat, throughput, emission, ok := scene.Intersect(ray, 0, &volume.PathVolumeInfo{}, &sw)

	require.True(t, ok)
	assert.Equal(t, near.Material, mat)
	assert.InDelta(t, 1, hit.Point.Z, 1e-6)
	assert.False(t, throughput.Black())
	assert.True(t, emission.Black())
}

func TestRefSceneIntersectMissReturnsFalse(t *testing.T) {
	var sw spectral.SpectrumWavelengths
	sw.Sample(0.5)

	obj := NewSphereObject(geom.NewSphere(geom.NewVec3(0, 0, -100), 1), bsdf.NewMatte(spectral.NewSWC(&sw, 0.5)))
	scene := NewRefScene([]*SphereObject{obj}, newTestCamera(), nil)

	ray := geom.NewRay(geom.NewVec3(0, 0, 10), geom.NewVec3(0, 0, 1))
	_, _, _, _, ok := scene.Intersect(ray, 0, &volume.PathVolumeInfo{}, &sw)
	assert.False(t, ok)
}

func TestRefSceneLightPdfForHitFindsOwningLight(t *testing.T) {
	var sw spectral.SpectrumWavelengths
	sw.Sample(0.5)

	light := NewSphereLight(geom.NewSphere(geom.NewVec3(0, 0, 0), 1), spectral.NewSWC(&sw, 5))
	scene := NewRefScene([]*SphereObject{light.Object}, newTestCamera(), nil)

	fromPoint := geom.NewVec3(0, 0, 10)
	hitPoint := geom.NewVec3(0, 0, 1)
	hit := bsdf.HitPoint{Point: hitPoint, ShadingNormal: geom.NewVec3(0, 0, 1), Wavelengths: &sw}

	directPdfW, pickPdf, ok := scene.LightPdfForHit(hit, fromPoint)
	assert.True(t, ok)
	assert.Greater(t, directPdfW, 0.0)
	assert.Equal(t, 1.0, pickPdf)
}

func TestRefSceneLightPdfForHitFalseForNonLightSurface(t *testing.T) {
	var sw spectral.SpectrumWavelengths
	sw.Sample(0.5)

	obj := NewSphereObject(geom.NewSphere(geom.NewVec3(0, 0, 0), 1), bsdf.NewMatte(spectral.NewSWC(&sw, 0.5)))
	scene := NewRefScene([]*SphereObject{obj}, newTestCamera(), nil)

	hit := bsdf.HitPoint{Point: geom.NewVec3(0, 0, 1), ShadingNormal: geom.NewVec3(0, 0, 1), Wavelengths: &sw}
	_, _, ok := scene.LightPdfForHit(hit, geom.NewVec3(0, 0, 10))
	assert.False(t, ok)
}

func TestRefSceneCollectsLightsFromObjects(t *testing.T) {
	var sw spectral.SpectrumWavelengths
	sw.Sample(0.5)

	light := NewSphereLight(geom.NewSphere(geom.NewVec3(0, 0, 0), 1), spectral.NewSWC(&sw, 5))
	plain := NewSphereObject(geom.NewSphere(geom.NewVec3(5, 0, 0), 1), bsdf.NewMatte(spectral.NewSWC(&sw, 0.5)))
	scene := NewRefScene([]*SphereObject{light.Object, plain}, newTestCamera(), nil)

	require.Len(t, scene.Lights(), 1)
	assert.Equal(t, 1.0, scene.LightStrategy().PickPdf(scene.Lights()[0]))
	assert.Nil(t, scene.DefaultVolume())
}

func TestThinLensCameraGeneratesNormalizedRay(t *testing.T) {
	cam := newTestCamera()
	ray := cam.GenerateRay(2, 2, 0.5, 0.5, 0)
	assert.InDelta(t, 1.0, ray.Direction.Length(), 1e-6)
	assert.True(t, ray.Direction.Z < 0)
}

func TestThinLensCameraCenterPixelPointsAtLookAt(t *testing.T) {
	cam := newTestCamera()
	ray := cam.GenerateRay(2, 2, 0.5, 0.5, 0)
	// the center film pixel's ray should point roughly toward -Z, the
	// lookAt direction from Center=(0,0,10).
	assert.Less(t, math.Abs(ray.Direction.X), 0.3)
	assert.Less(t, math.Abs(ray.Direction.Y), 0.3)
}
