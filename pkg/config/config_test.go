package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "render.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaultsThenOverrides(t *testing.T) {
	path := writeTempConfig(t, `
[film]
width = 1920
height = 1080

[renderengine]
type = "BIDIRCPU"
`)

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1920, p.Film.Width)
	assert.Equal(t, 1080, p.Film.Height)
	assert.Equal(t, BIDIRCPU, p.RenderEngine.Type)
	// untouched defaults survive the partial override
	assert.Equal(t, RANDOM, p.Sampler.Type)
	assert.Equal(t, 8, p.Path.MaxDepth.Total)
}

func TestLoadRejectsUnknownEngineType(t *testing.T) {
	path := writeTempConfig(t, `
[renderengine]
type = "NOTAREALENGINE"
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "renderengine.type")
}

func TestValidateRejectsTileSamplerOnNonTileEngine(t *testing.T) {
	p := Default()
	p.RenderEngine.Type = PATHCPU
	p.Sampler.Type = TILEPATHSAMPLER
	err := p.Validate()
	assert.ErrorContains(t, err, "TILEPATHSAMPLER")
}

func TestValidateRequiresTileSamplerOnTileEngine(t *testing.T) {
	p := Default()
	p.RenderEngine.Type = TILEPATHCPU
	p.Sampler.Type = RANDOM
	err := p.Validate()
	assert.ErrorContains(t, err, "TILEPATHSAMPLER")
}

func TestValidateRejectsOutOfRangeRussianRouletteCap(t *testing.T) {
	p := Default()
	p.RenderEngine.Type = TILEPATHCPU
	p.Sampler.Type = TILEPATHSAMPLER
	p.Path.RussianRoulette.Cap = 1.5
	err := p.Validate()
	assert.ErrorContains(t, err, "russianroulette.cap")
}

func TestValidateRejectsNonPositiveFilmDimensions(t *testing.T) {
	p := Default()
	p.Film.Width = 0
	err := p.Validate()
	assert.ErrorContains(t, err, "film dimensions")
}

func TestDefaultPassesItsOwnValidation(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
