package engine

import (
	"testing"

	"github.com/lumenpath/lumenpath/pkg/bsdf"
	"github.com/lumenpath/lumenpath/pkg/film"
	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/sampler"
	"github.com/lumenpath/lumenpath/pkg/scenecore"
	"github.com/lumenpath/lumenpath/pkg/spectral"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLitTestScene() *scenecore.RefScene {
	var sw spectral.SpectrumWavelengths
	sw.Sample(0.5)

	floor := scenecore.NewSphereObject(geom.NewSphere(geom.NewVec3(0, -1000, 0), 1000), bsdf.NewMatte(spectral.NewSWC(&sw, 0.5)))
	ball := scenecore.NewSphereObject(geom.NewSphere(geom.NewVec3(0, 1, 0), 1), bsdf.NewMatte(spectral.NewSWC(&sw, 0.6)))
	light := scenecore.NewSphereLight(geom.NewSphere(geom.NewVec3(0, 5, 0), 1), spectral.NewSWC(&sw, 10))

	camera := scenecore.NewCamera(scenecore.CameraConfig{
		Center: geom.NewVec3(0, 2, 6),
		LookAt: geom.NewVec3(0, 1, 0),
		Up:     geom.NewVec3(0, 1, 0),
		Width:  8,
		Height: 8,
		VFov:   40,
	})

	return scenecore.NewRefScene([]*scenecore.SphereObject{floor, ball, light.Object}, camera, nil)
}

func TestBuildRadianceCacheProducesEntries(t *testing.T) {
	scene := newLitTestScene()
	cs := spectral.SRGB()

	cfg := DefaultRadianceCacheConfig()
	cfg.Paths = 256

	cache := BuildRadianceCache(scene, cs, cfg)
	assert.Greater(t, cache.Len(), 0)
}

func TestBuildRadianceCacheZeroPathsIsEmpty(t *testing.T) {
	scene := newLitTestScene()
	cs := spectral.SRGB()

	cfg := DefaultRadianceCacheConfig()
	cfg.Paths = 0

	cache := BuildRadianceCache(scene, cs, cfg)
	assert.Equal(t, 0, cache.Len())

	_, ok := cache.Lookup(geom.NewVec3(0, 1, 1), geom.NewVec3(0, 0, 1))
	assert.False(t, ok)
}

func TestRadianceCacheLookupFindsEntryNearFloor(t *testing.T) {
	scene := newLitTestScene()
	cs := spectral.SRGB()

	cfg := DefaultRadianceCacheConfig()
	cfg.Paths = 2048
	cfg.MaxDistance = 1000 // generous radius: we only care that *some* entry qualifies

	cache := BuildRadianceCache(scene, cs, cfg)
	require.Greater(t, cache.Len(), 0)

	// query near the origin, where the light above the floor/ball should
	// have deposited several cached vertices
	_, ok := cache.Lookup(geom.NewVec3(0, 0, 0), geom.NewVec3(0, 1, 0))
	assert.True(t, ok)
}

func TestLightCacheIntegratorRenderSampleSplatsFilm(t *testing.T) {
	scene := newLitTestScene()
	cs := spectral.SRGB()
	f := film.NewFilm(film.DefaultConfig(8, 8), cs)

	cfg := DefaultRadianceCacheConfig()
	cfg.Paths = 512
	cfg.MaxDistance = 1000

	integ := &lightCacheIntegrator{cache: BuildRadianceCache(scene, cs, cfg)}

	bucket := sampler.NewPixelBucket(64)
	s := sampler.NewRandomSampler(1, bucket, 8)

	for i := 0; i < 8; i++ {
		s.NextSample(nil)
		var sw spectral.SpectrumWavelengths
		sw.Sample(0.5)
		integ.RenderSample(s, scene, f, 0, &sw, cs)
	}

	// at least one splat landed somewhere on the film without panicking;
	// the cache is exercised via real k-NN lookups inside RenderSample.
	var total spectral.RGB
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			total = total.Add(f.Pixel(0, x, y))
		}
	}
	assert.True(t, total.IsFinite())
}
