package tile

import (
	"sync"
	"testing"

	"github.com/lumenpath/lumenpath/pkg/film"
	"github.com/lumenpath/lumenpath/pkg/spectral"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHilbertOrderForCoversGrid(t *testing.T) {
	assert.Equal(t, uint(1), hilbertOrderFor(2, 2))
	assert.Equal(t, uint(2), hilbertOrderFor(3, 2))
	assert.Equal(t, uint(3), hilbertOrderFor(5, 5))
}

func TestHilbertIndexIsUniquePerCell(t *testing.T) {
	order := hilbertOrderFor(4, 4)
	seen := map[int64]bool{}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			idx := hilbertIndex(order, x, y)
			require.False(t, seen[idx], "duplicate hilbert index at (%d,%d)", x, y)
			seen[idx] = true
		}
	}
}

func TestInitTilesPartitionsFullFilm(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TileWidth, cfg.TileHeight = 4, 4
	r := NewTileRepository(cfg, spectral.SRGB())
	r.InitTiles(10, 6)

	require.Equal(t, 6, r.NumTiles()) // ceil(10/4)=3, ceil(6/4)=2

	covered := make(map[[2]int]bool)
	for i := 0; i < r.NumTiles(); i++ {
		tl := r.Tile(i)
		for y := tl.Bounds.MinY; y < tl.Bounds.MaxY; y++ {
			for x := tl.Bounds.MinX; x < tl.Bounds.MaxX; x++ {
				covered[[2]int{x, y}] = true
			}
		}
	}
	assert.Len(t, covered, 10*6)
}

func TestNextTileAssignsEveryTileThenFinishes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TileWidth, cfg.TileHeight = 2, 2
	cfg.WarmupPasses = 1 // converge as soon as a pass has been merged, for a deterministic test
	r := NewTileRepository(cfg, spectral.SRGB())
	r.InitTiles(4, 2) // 2x1 tiles

	mainFilm := film.NewFilm(film.DefaultConfig(4, 2), spectral.SRGB())
	var filmMutex sync.Mutex

	var work TileWork
	tileFilm := film.NewFilm(film.DefaultConfig(2, 2), spectral.SRGB())

	assigned := 0
	for {
		ok := r.NextTile(mainFilm, &filmMutex, &work, tileFilm)
		if !ok {
			break
		}
		assigned++
		if assigned > 20 {
			t.Fatal("NextTile looped without terminating")
		}
	}
	assert.GreaterOrEqual(t, assigned, r.NumTiles())
	assert.True(t, r.Done())
}

func TestNextTileMergesFinishedTileIntoMainFilm(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TileWidth, cfg.TileHeight = 2, 2
	cfg.ConvergenceThreshold = 0
	r := NewTileRepository(cfg, spectral.SRGB())
	r.InitTiles(2, 2) // single tile

	mainFilm := film.NewFilm(film.DefaultConfig(2, 2), spectral.SRGB())
	var filmMutex sync.Mutex
	var work TileWork
	tileFilm := film.NewFilm(film.DefaultConfig(2, 2), spectral.SRGB())

	ok := r.NextTile(mainFilm, &filmMutex, &work, tileFilm)
	require.True(t, ok)
	require.True(t, work.HasWork())

	tileFilm.AddSample(0, 0, 0, spectral.RGB{R: 1, G: 1, B: 1}, 1)

	r.NextTile(mainFilm, &filmMutex, &work, tileFilm)

	got := mainFilm.Pixel(0, 0, 0)
	assert.Greater(t, got.R, 0.0)
}
