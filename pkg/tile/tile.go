// Package tile implements the tile repository: partitioning a film into
// Hilbert-ordered regions, dispatching them to workers as a priority queue
// keyed by pass count, and running a per-tile convergence test with
// optional multipass re-rendering at a reduced threshold.
package tile

import (
	"github.com/lumenpath/lumenpath/pkg/film"
	"github.com/lumenpath/lumenpath/pkg/spectral"
)

// Bounds is a half-open pixel rectangle [MinX,MaxX) x [MinY,MaxY).
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

func (b Bounds) Width() int  { return b.MaxX - b.MinX }
func (b Bounds) Height() int { return b.MaxY - b.MinY }

// Tile is one rectangular render region with its own tile-local film
// buffers, so its convergence test and sample accumulation are independent
// of every other tile until merged into the main film.
type Tile struct {
	id     int
	Bounds Bounds

	allFilm *film.Film

	Pass          int
	PendingPasses int
	Done          bool

	hilbert int64
	seq     int64
}

func newTile(id int, bounds Bounds, numGroups int, convergenceThresh float64, cs *spectral.ColorSystem, hilbertIdx int64, seq int64) *Tile {
	cfg := film.DefaultConfig(bounds.Width(), bounds.Height())
	cfg.NumGroups = numGroups
	cfg.ConvergenceThresh = convergenceThresh
	return &Tile{
		id:      id,
		Bounds:  bounds,
		allFilm: film.NewFilm(cfg, cs),
		hilbert: hilbertIdx,
		seq:     seq,
	}
}

// ID returns the tile's stable index within its repository.
func (t *Tile) ID() int { return t.id }

// Film returns the tile's own film buffer for rendering into.
func (t *Tile) Film() *film.Film { return t.allFilm }
