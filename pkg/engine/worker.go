package engine

import (
	"sync/atomic"
	"time"

	"golang.org/x/exp/rand"

	"github.com/lumenpath/lumenpath/pkg/film"
	"github.com/lumenpath/lumenpath/pkg/sampler"
	"github.com/lumenpath/lumenpath/pkg/spectral"
	"github.com/lumenpath/lumenpath/pkg/tile"
)

// pausePoll is how often a paused worker checks for resume or interruption,
// per §5's suspension-point contract.
const pausePoll = 100 * time.Millisecond

func (e *CPURenderEngine) runWorker(id int) {
	defer e.wg.Done()
	if e.cfg.TileMode {
		e.runTileWorker(id)
		return
	}
	e.runPixelWorker(id)
}

// waitIfPaused blocks while the engine is paused, polling at pausePoll. It
// reports whether the worker should keep running (false means stop: the
// engine was interrupted while paused).
func (e *CPURenderEngine) waitIfPaused() bool {
	for e.pausedFlag() {
		if e.interruptedFlag() {
			return false
		}
		time.Sleep(pausePoll)
	}
	return true
}

// runTileWorker repeatedly claims a tile from the repository, rendering one
// pass of AASamples x AASamples stratified sub-pixel samples over it into a
// private tile-sized film, then hands that film back to NextTile to be
// merged and cleared before the next assignment.
func (e *CPURenderEngine) runTileWorker(id int) {
	seed := e.cfg.BootstrapSeed + uint64(id) + 1
	waveRng := rand.New(rand.NewSource(seed))
	tileFilm := film.NewFilm(film.DefaultConfig(e.cfg.TileSize, e.cfg.TileSize), e.cs)

	var work tile.TileWork
	for {
		if e.interruptedFlag() {
			return
		}
		if !e.tileRepo.NextTile(e.film, &e.filmMu, &work, tileFilm) {
			return
		}
		tileFilm.Clear()

		t := e.tileRepo.Tile(work.TileID())
		if t == nil {
			continue
		}

		ts := sampler.NewTilePathSampler(
			e.cfg.AASamples,
			t.Bounds.MinX, t.Bounds.MinY,
			work.Pass(), e.tileRepo.MultipassRenderingIndex(),
			uint32(seed), uint32(id), uint32(work.Pass()),
		)

		samplesPerPixel := e.cfg.AASamples * e.cfg.AASamples
		w, h := t.Bounds.Width(), t.Bounds.Height()
		for iy := 0; iy < h; iy++ {
			for ix := 0; ix < w; ix++ {
				if !e.waitIfPaused() {
					return
				}
				if e.interruptedFlag() {
					return
				}
				ts.SetPixel(ix, iy)
				for s := 0; s < samplesPerPixel; s++ {
					var sw spectral.SpectrumWavelengths
					sw.Sample(waveRng.Float64())
					e.integ.RenderSample(ts, e.scene, tileFilm, 0, &sw, e.cs)
					atomic.AddInt64(&e.samplesRendered, 1)
					ts.NextSample(nil)
				}
			}
		}
	}
}

// runPixelWorker draws independent samples against the shared PixelBucket
// directly into the main film, the no-tile path used for small or
// interactive renders where tiling overhead isn't worth it.
func (e *CPURenderEngine) runPixelWorker(id int) {
	seed := e.cfg.BootstrapSeed + uint64(id) + 1
	waveRng := rand.New(rand.NewSource(seed))
	rs := sampler.NewRandomSampler(seed, e.bucket, e.film.Width())

	totalPixels := int64(e.film.Width() * e.film.Height())
	var maxSamples int64
	if e.cfg.MaxSamplesPerPixel > 0 {
		maxSamples = int64(e.cfg.MaxSamplesPerPixel) * totalPixels
	}

	for {
		if e.interruptedFlag() {
			return
		}
		if !e.waitIfPaused() {
			return
		}
		if maxSamples > 0 && atomic.LoadInt64(&e.samplesRendered) >= maxSamples {
			return
		}

		rs.NextSample(nil)
		var sw spectral.SpectrumWavelengths
		sw.Sample(waveRng.Float64())
		e.integ.RenderSample(rs, e.scene, e.film, 0, &sw, e.cs)
		atomic.AddInt64(&e.samplesRendered, 1)
	}
}
