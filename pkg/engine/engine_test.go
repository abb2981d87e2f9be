package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/lumenpath/lumenpath/pkg/bsdf"
	"github.com/lumenpath/lumenpath/pkg/film"
	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/scenecore"
	"github.com/lumenpath/lumenpath/pkg/spectral"
	"github.com/lumenpath/lumenpath/pkg/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCamera struct{}

func (stubCamera) GenerateRay(fx, fy, lu, lv, t float64) geom.Ray {
	return geom.NewRay(geom.Vec3{}, geom.NewVec3(0, 0, -1))
}

type missScene struct {
	strategy scenecore.LightStrategy
}

func (s *missScene) Intersect(ray geom.Ray, u float64, vi *volume.PathVolumeInfo, sw *spectral.SpectrumWavelengths) (*bsdf.HitPoint, bsdf.Material, scenecore.Spectrum, scenecore.Spectrum, bool) {
	zero := spectral.NewSWC(sw, 0)
	return nil, nil, spectral.NewSWC(sw, 1), zero, false
}
func (s *missScene) LightPdfForHit(bsdf.HitPoint, geom.Vec3) (float64, float64, bool) { return 0, 0, false }
func (s *missScene) Lights() []scenecore.Light                                        { return nil }
func (s *missScene) LightStrategy() scenecore.LightStrategy                           { return s.strategy }
func (s *missScene) Camera() scenecore.Camera                                         { return stubCamera{} }
func (s *missScene) DefaultVolume() volume.Volume                                     { return nil }

func newMissScene() *missScene {
	return &missScene{strategy: scenecore.NewUniformLightStrategy(nil)}
}

func TestCPURenderEngineNoTileModeRespectsMaxSamplesPerPixel(t *testing.T) {
	cs := spectral.SRGB()
	f := film.NewFilm(film.DefaultConfig(4, 4), cs)

	cfg := DefaultConfig()
	cfg.TileMode = false
	cfg.NumWorkers = 2
	cfg.MaxSamplesPerPixel = 8

	e := New(cfg, newMissScene(), f, cs, nil)
	e.Start()

	deadline := time.Now().Add(5 * time.Second)
	for atomic.LoadInt64(&e.samplesRendered) < int64(cfg.MaxSamplesPerPixel)*16 {
		if time.Now().After(deadline) {
			t.Fatal("engine did not reach its per-pixel sample cap in time")
		}
		time.Sleep(time.Millisecond)
	}

	stats := e.Stop()
	assert.GreaterOrEqual(t, stats.SamplesRendered, int64(cfg.MaxSamplesPerPixel)*16)
}

func TestCPURenderEngineTileModeDrainsRepository(t *testing.T) {
	cs := spectral.SRGB()
	f := film.NewFilm(film.DefaultConfig(16, 16), cs)

	cfg := DefaultConfig()
	cfg.TileMode = true
	cfg.TileSize = 8
	cfg.AASamples = 1
	cfg.NumWorkers = 2
	cfg.TileConfig.WarmupPasses = 1

	e := New(cfg, newMissScene(), f, cs, nil)
	require.NotNil(t, e.tileRepo)
	e.Start()

	deadline := time.Now().Add(5 * time.Second)
	for !e.tileRepo.Done() {
		if time.Now().After(deadline) {
			t.Fatal("tile repository never reached Done")
		}
		time.Sleep(time.Millisecond)
	}

	stats := e.Stop()
	assert.Greater(t, stats.SamplesRendered, int64(0))
}

func TestCPURenderEnginePauseBlocksProgress(t *testing.T) {
	cs := spectral.SRGB()
	f := film.NewFilm(film.DefaultConfig(4, 4), cs)

	cfg := DefaultConfig()
	cfg.TileMode = false
	cfg.NumWorkers = 1
	cfg.MaxSamplesPerPixel = 0 // unbounded, rely on Pause/Stop to halt it

	e := New(cfg, newMissScene(), f, cs, nil)
	e.Start()
	time.Sleep(10 * time.Millisecond)

	e.Pause()
	time.Sleep(5 * time.Millisecond)
	snapshot := atomic.LoadInt64(&e.samplesRendered)
	time.Sleep(2 * pausePoll)
	assert.Equal(t, snapshot, atomic.LoadInt64(&e.samplesRendered))

	e.Unpause()
	time.Sleep(5 * time.Millisecond)
	stats := e.Stop()
	assert.GreaterOrEqual(t, stats.SamplesRendered, snapshot)
}
