package main

import (
	"testing"

	"github.com/lumenpath/lumenpath/pkg/config"
	"github.com/lumenpath/lumenpath/pkg/engine"
	"github.com/lumenpath/lumenpath/pkg/film"
	"github.com/stretchr/testify/assert"
)

func TestApplyEnginePropertiesSelectsBidirectional(t *testing.T) {
	p := config.Default()
	p.RenderEngine.Type = config.BIDIRCPU
	p.Native.Threads.Count = 4

	cfg := engine.DefaultConfig()
	applyEngineProperties(&cfg, p)

	assert.Equal(t, engine.Bidirectional, cfg.IntegratorType)
	assert.Equal(t, 4, cfg.NumWorkers)
}

func TestApplyEnginePropertiesSelectsLightCache(t *testing.T) {
	p := config.Default()
	p.RenderEngine.Type = config.LIGHTCACHECPU

	cfg := engine.DefaultConfig()
	applyEngineProperties(&cfg, p)

	assert.Equal(t, engine.LightCache, cfg.IntegratorType)
}

func TestApplyEnginePropertiesTunesPathTracer(t *testing.T) {
	p := config.Default()
	p.RenderEngine.Type = config.PATHCPU
	p.Path.MaxDepth.Total = 24
	p.Path.RussianRoulette.Depth = 5
	p.Path.RussianRoulette.Cap = 0.5
	p.Path.Clamping.Variance.MaxValue = 10

	cfg := engine.DefaultConfig()
	applyEngineProperties(&cfg, p)

	require := assert.New(t)
	require.Equal(engine.PathTracing, cfg.IntegratorType)
	require.Equal(24, cfg.IntegratorConfig.MaxDepth)
	require.Equal(5, cfg.IntegratorConfig.RRStartDepth)
	require.Equal(0.5, cfg.IntegratorConfig.RRImportanceCap)
	require.Equal(10.0, cfg.IntegratorConfig.VarianceClampMaxValue)
}

func TestApplyEnginePropertiesEnablesTileModeForTileEngines(t *testing.T) {
	p := config.Default()
	p.RenderEngine.Type = config.TILEPATHCPU
	p.Sampler.Type = config.TILEPATHSAMPLER
	p.Tile.Size.X = 32
	p.Tile.Size.Y = 32

	cfg := engine.DefaultConfig()
	cfg.TileMode = false
	applyEngineProperties(&cfg, p)

	assert.True(t, cfg.TileMode)
	assert.Equal(t, 32, cfg.TileConfig.TileWidth)
	assert.Equal(t, 32, cfg.TileConfig.TileHeight)
}

func TestApplyFilmPropertiesMapsFilterType(t *testing.T) {
	p := config.Default()
	p.Film.Filter.Type = config.FilterMitchell
	p.Film.Filter.Width = 3.0

	cfg := film.DefaultConfig(100, 100)
	applyFilmProperties(&cfg, p)

	assert.Equal(t, film.FilterMitchell, cfg.FilterType)
	assert.Equal(t, 3.0, cfg.FilterWidth)
}
