// Package engine implements the CPU render engine: a pool of worker
// goroutines pulling path-tracing samples either directly off a shared
// film (no-tile mode) or through a tile.TileRepository (tile mode), with
// pause/resume/stop control matching the rendering core's concurrency
// contract.
package engine

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lumenpath/lumenpath/pkg/bdpt"
	"github.com/lumenpath/lumenpath/pkg/film"
	"github.com/lumenpath/lumenpath/pkg/pathtracer"
	"github.com/lumenpath/lumenpath/pkg/sampler"
	"github.com/lumenpath/lumenpath/pkg/scenecore"
	"github.com/lumenpath/lumenpath/pkg/spectral"
	"github.com/lumenpath/lumenpath/pkg/tile"
)

// Logger is the minimal sink the engine writes progress lines to, matching
// the shape of the ambient structured logger (pkg/rlog) without importing
// it, so the engine has no hard dependency on a particular logging backend.
type Logger interface {
	Printf(format string, args ...interface{})
}

// Integrator is the contract both pathtracer.Integrator and bdpt.Integrator
// satisfy: draw one sample at the sampler's current film position and splat
// it into f. A CPURenderEngine holds one of these and never needs to know
// which algorithm it's driving.
type Integrator interface {
	RenderSample(s sampler.Sampler, scene scenecore.Scene, f *film.Film, groupId int, sw *spectral.SpectrumWavelengths, cs *spectral.ColorSystem)
}

// IntegratorType selects which light-transport algorithm an engine runs.
type IntegratorType int

const (
	PathTracing IntegratorType = iota
	Bidirectional
	LightCache
)

// Config controls how a CPURenderEngine partitions and schedules work.
type Config struct {
	NumWorkers int // 0 = runtime.NumCPU()

	TileMode  bool
	TileSize  int
	AASamples int // sub-pixel samples per axis, tile mode only

	MaxSamplesPerPixel int // no-tile mode: per-pixel sample cap
	BootstrapSeed      uint64

	IntegratorType   IntegratorType
	IntegratorConfig pathtracer.Config
	BDPTConfig       bdpt.Config
	TileConfig       tile.Config

	// RadianceCacheConfig controls the light-subpath sweep built once at
	// New when IntegratorType is LightCache.
	RadianceCacheConfig RadianceCacheConfig
}

// DefaultConfig returns single-threaded-safe defaults; callers override
// NumWorkers/TileMode/sizes for their scene.
func DefaultConfig() Config {
	return Config{
		NumWorkers:          0,
		TileMode:            true,
		TileSize:            64,
		AASamples:           1,
		MaxSamplesPerPixel:  256,
		BootstrapSeed:       1,
		IntegratorType:      PathTracing,
		IntegratorConfig:    pathtracer.DefaultConfig(),
		BDPTConfig:          bdpt.DefaultConfig(),
		TileConfig:          tile.DefaultConfig(),
		RadianceCacheConfig: DefaultRadianceCacheConfig(),
	}
}

// newIntegrator builds the Integrator cfg.IntegratorType selects. scene and
// cs are only used by LightCache, which sweeps scene once up front via
// BuildRadianceCache before any worker starts sampling.
func newIntegrator(cfg Config, scene scenecore.Scene, cs *spectral.ColorSystem) Integrator {
	switch cfg.IntegratorType {
	case Bidirectional:
		return bdpt.New(cfg.BDPTConfig)
	case LightCache:
		return &lightCacheIntegrator{cache: BuildRadianceCache(scene, cs, cfg.RadianceCacheConfig)}
	default:
		return pathtracer.New(cfg.IntegratorConfig)
	}
}

// RenderState captures everything a subsequent engine needs to resume a
// render in progress: the RNG seed lineage and, in tile mode, the tile
// repository with its per-tile pass counts and convergence state intact.
type RenderState struct {
	BootstrapSeed  uint64
	TileRepository *tile.TileRepository
}

// Stats summarizes one engine's throughput, reported by Stop.
type Stats struct {
	SamplesRendered int64
	Elapsed         time.Duration
}

// CPURenderEngine owns one goroutine per worker, each independently
// sampling the scene and splatting into the shared Film. The integrator is
// re-entrant and carries no mutable state of its own, so a single
// Integrator is shared across all workers per §5's concurrency contract.
type CPURenderEngine struct {
	cfg    Config
	scene  scenecore.Scene
	film   *film.Film
	cs     *spectral.ColorSystem
	integ  Integrator
	logger Logger

	interrupted int32 // atomic
	paused      int32 // atomic

	tileRepo *tile.TileRepository
	bucket   *sampler.PixelBucket

	wg     sync.WaitGroup
	filmMu sync.Mutex // guards splats into the shared film during tile merges

	samplesRendered int64
	startTime       time.Time
	editMu          sync.Mutex
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...interface{}) {}

// New builds an engine over scene, rendering into f. cs is the working
// color system used to convert spectral radiance to film RGB.
func New(cfg Config, scene scenecore.Scene, f *film.Film, cs *spectral.ColorSystem, logger Logger) *CPURenderEngine {
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = noopLogger{}
	}

	e := &CPURenderEngine{
		cfg:    cfg,
		scene:  scene,
		film:   f,
		cs:     cs,
		integ:  newIntegrator(cfg, scene, cs),
		logger: logger,
	}

	if cfg.TileMode {
		e.tileRepo = tile.NewTileRepository(cfg.TileConfig, cs)
		e.tileRepo.InitTiles(f.Width(), f.Height())
	} else {
		e.bucket = sampler.NewPixelBucket(f.Width() * f.Height())
	}

	return e
}

// Resume rebuilds an engine from a prior RenderState, seeding its RNG
// lineage from prior.BootstrapSeed+1 and, in tile mode, taking over the
// prior tile repository instead of partitioning a fresh one.
func Resume(cfg Config, scene scenecore.Scene, f *film.Film, cs *spectral.ColorSystem, logger Logger, prior RenderState) *CPURenderEngine {
	cfg.BootstrapSeed = prior.BootstrapSeed + 1
	e := New(cfg, scene, f, cs, logger)
	if cfg.TileMode && prior.TileRepository != nil {
		e.tileRepo = prior.TileRepository
	}
	return e
}

// State snapshots the engine's resumable state for a later Resume call.
func (e *CPURenderEngine) State() RenderState {
	return RenderState{BootstrapSeed: e.cfg.BootstrapSeed, TileRepository: e.tileRepo}
}

// Start launches the worker pool. It returns immediately; workers run
// until Stop is called or MaxSamplesPerPixel is reached in no-tile mode.
func (e *CPURenderEngine) Start() {
	atomic.StoreInt32(&e.interrupted, 0)
	e.startTime = time.Now()
	e.logger.Printf("engine: starting %d workers (tileMode=%v)\n", e.cfg.NumWorkers, e.cfg.TileMode)

	for i := 0; i < e.cfg.NumWorkers; i++ {
		e.wg.Add(1)
		go e.runWorker(i)
	}
}

// Stop sets the interruption flag and joins every worker, returning the
// run's accumulated stats.
func (e *CPURenderEngine) Stop() Stats {
	atomic.StoreInt32(&e.interrupted, 1)
	e.wg.Wait()
	return Stats{
		SamplesRendered: atomic.LoadInt64(&e.samplesRendered),
		Elapsed:         time.Since(e.startTime),
	}
}

// Wait blocks until every worker has terminated on its own (non-tile mode
// reaching MaxSamplesPerPixel) without raising the interrupt flag, for a
// caller that wants a render to run to completion rather than be cut off
// mid-pass the way Stop would.
func (e *CPURenderEngine) Wait() Stats {
	e.wg.Wait()
	return Stats{
		SamplesRendered: atomic.LoadInt64(&e.samplesRendered),
		Elapsed:         time.Since(e.startTime),
	}
}

// Pause and Unpause toggle the pause flag without joining workers; a paused
// worker polls every 100ms per §5's suspension-point contract.
func (e *CPURenderEngine) Pause()  { atomic.StoreInt32(&e.paused, 1) }
func (e *CPURenderEngine) Unpause() { atomic.StoreInt32(&e.paused, 0) }

func (e *CPURenderEngine) interruptedFlag() bool { return atomic.LoadInt32(&e.interrupted) != 0 }
func (e *CPURenderEngine) pausedFlag() bool      { return atomic.LoadInt32(&e.paused) != 0 }

// SceneEditAction enumerates what a scene edit touches, per §5's
// BeginSceneEdit/EndSceneEdit contract.
type SceneEditAction int

const (
	EditNone SceneEditAction = 0
	EditFilm SceneEditAction = 1 << iota
)

// BeginSceneEdit stops all workers so the caller can mutate the scene.
func (e *CPURenderEngine) BeginSceneEdit() Stats {
	e.editMu.Lock()
	return e.Stop()
}

// EndSceneEdit rebuilds the tile repository (or pixel bucket) and restarts
// workers. Film contents survive unless actions includes EditFilm, in which
// case the film is cleared before workers restart.
func (e *CPURenderEngine) EndSceneEdit(actions SceneEditAction) {
	defer e.editMu.Unlock()
	if e.cfg.TileMode {
		e.tileRepo = tile.NewTileRepository(e.cfg.TileConfig, e.cs)
		e.tileRepo.InitTiles(e.film.Width(), e.film.Height())
	} else {
		e.bucket = sampler.NewPixelBucket(e.film.Width() * e.film.Height())
	}
	if actions&EditFilm != 0 {
		e.film.Clear()
	}
	e.Start()
}
