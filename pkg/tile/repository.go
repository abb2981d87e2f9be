package tile

import (
	"sort"
	"sync"

	"github.com/lumenpath/lumenpath/pkg/film"
	"github.com/lumenpath/lumenpath/pkg/spectral"
)

// Config controls how a TileRepository partitions a film and governs its
// multipass convergence-driven re-rendering.
type Config struct {
	TileWidth, TileHeight int
	NumGroups             int
	ConvergenceThreshold  float64

	// WarmupPasses is the minimum pass count a tile must reach before its
	// convergence test is trusted.
	WarmupPasses int

	// MaxPendingPasses bounds how many in-flight passes a single tile may
	// have assigned at once, the oversubscription control that keeps one
	// slow tile from being claimed by every idle worker simultaneously.
	MaxPendingPasses int

	EnableMultipassRendering      bool
	ConvergenceThresholdReduction float64

	// EnableFirstPassClear forces the main film's per-pixel buckets to be
	// cleared for a tile's region at the start of a new multipass cycle, so
	// the refined pass replaces rather than blends with the converged one.
	EnableFirstPassClear bool
}

// DefaultConfig returns reasonable tiling defaults: 64x64 tiles, a single
// light group, and a convergence threshold of 0.05 after 4 warmup passes.
func DefaultConfig() Config {
	return Config{
		TileWidth:                     64,
		TileHeight:                    64,
		NumGroups:                     1,
		ConvergenceThreshold:          0.05,
		WarmupPasses:                  4,
		MaxPendingPasses:              1,
		ConvergenceThresholdReduction: 0.5,
	}
}

// TileWork is a worker's handle on its current tile assignment. The zero
// value has no work.
type TileWork struct {
	tileID int
	pass   int
	active bool
}

// HasWork reports whether the worker currently holds an assigned tile.
func (w *TileWork) HasWork() bool { return w.active }

// TileID returns the id of the tile currently assigned to the worker.
func (w *TileWork) TileID() int { return w.tileID }

// Pass returns the pass index the worker should render (0-based).
func (w *TileWork) Pass() int { return w.pass }

func (w *TileWork) clear() { *w = TileWork{} }

// TileRepository partitions a film into Hilbert-ordered tiles and serves
// them to rendering workers as a pass-count priority queue, folding
// finished tile-local films back into the main film and driving a
// per-tile convergence test with optional multipass re-rendering.
type TileRepository struct {
	mu sync.Mutex

	cfg   Config
	tiles []*Tile
	queue *tileQueue
	done  bool

	multipassRenderingIndex int
	nextSeq                 int64

	colorSystem *spectral.ColorSystem
}

// NewTileRepository builds a repository but does not yet partition a film;
// call InitTiles to do that.
func NewTileRepository(cfg Config, cs *spectral.ColorSystem) *TileRepository {
	if cfg.NumGroups < 1 {
		cfg.NumGroups = 1
	}
	return &TileRepository{cfg: cfg, colorSystem: cs, queue: newTileQueue()}
}

// InitTiles partitions width x height into tiles of the repository's
// configured size, orders them along a Hilbert curve, and pushes them all
// onto the pending-work queue at pass 0.
func (r *TileRepository) InitTiles(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cols := ceilDiv(width, r.cfg.TileWidth)
	rows := ceilDiv(height, r.cfg.TileHeight)
	order := hilbertOrderFor(cols, rows)

	type placed struct {
		col, row int
		idx      int64
	}
	plan := make([]placed, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			plan = append(plan, placed{col, row, hilbertIndex(order, col, row)})
		}
	}
	sort.Slice(plan, func(i, j int) bool { return plan[i].idx < plan[j].idx })

	r.tiles = make([]*Tile, 0, len(plan))
	r.queue = newTileQueue()
	for _, p := range plan {
		bounds := Bounds{
			MinX: p.col * r.cfg.TileWidth,
			MinY: p.row * r.cfg.TileHeight,
			MaxX: minInt((p.col+1)*r.cfg.TileWidth, width),
			MaxY: minInt((p.row+1)*r.cfg.TileHeight, height),
		}
		t := newTile(len(r.tiles), bounds, r.cfg.NumGroups, r.cfg.ConvergenceThreshold, r.colorSystem, p.idx, r.nextSeq)
		r.nextSeq++
		r.tiles = append(r.tiles, t)
		r.queue.PushTile(t)
	}
	r.done = false
	r.multipassRenderingIndex = 0
}

// Done reports whether every tile has converged (or, with multipass
// rendering disabled, has simply been emptied from the queue).
func (r *TileRepository) Done() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// NextTile implements the repository's merge-then-assign protocol. If work
// already holds a finished tile, its tileFilm is merged into the main film
// (under filmMutex) before a new tile is considered. It returns false with
// work cleared in two cases: once there is no more work, ever, in which case
// Done() is true; or when no tile can be handed out right now (the queue is
// empty, or every queued tile already has MaxPendingPasses in flight) while
// other passes are still pending, in which case Done() stays false.
func (r *TileRepository) NextTile(mainFilm *film.Film, filmMutex *sync.Mutex, work *TileWork, tileFilm *film.Film) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if work.HasWork() {
		t := r.tiles[work.tileID]

		filmMutex.Lock()
		for g := 0; g < r.cfg.NumGroups; g++ {
			mainFilm.MergeFrom(g, t.Bounds.MinX, t.Bounds.MinY, tileFilm)
		}
		filmMutex.Unlock()

		for g := 0; g < r.cfg.NumGroups; g++ {
			t.allFilm.MergeFrom(g, 0, 0, tileFilm)
		}

		t.Pass++
		t.PendingPasses--
		r.checkConvergenceLocked(t)
		work.clear()
	}

	for {
		if r.queue.Len() == 0 {
			if r.anyPendingLocked() {
				return false
			}
			if r.cfg.EnableMultipassRendering {
				r.cfg.ConvergenceThreshold *= r.cfg.ConvergenceThresholdReduction
				r.multipassRenderingIndex++
				for _, t := range r.tiles {
					if t.Done {
						continue
					}
					if r.cfg.EnableFirstPassClear {
						filmMutex.Lock()
						mainFilm.ClearRegion(t.Bounds.MinX, t.Bounds.MinY, t.Bounds.MaxX, t.Bounds.MaxY)
						filmMutex.Unlock()
						t.allFilm = film.NewFilm(film.DefaultConfig(t.Bounds.Width(), t.Bounds.Height()), r.colorSystem)
						t.Pass = 0
					}
					r.queue.PushTile(t)
				}
				if r.queue.Len() == 0 {
					r.done = true
					return false
				}
				continue
			}
			r.done = true
			return false
		}

		var skipped []*Tile
		var chosen *Tile
		for r.queue.Len() > 0 {
			t := r.queue.PopTile()
			if t.Done {
				continue
			}
			if t.PendingPasses >= r.cfg.MaxPendingPasses {
				skipped = append(skipped, t)
				continue
			}
			chosen = t
			break
		}
		for _, t := range skipped {
			r.queue.PushTile(t)
		}

		if chosen == nil {
			if r.anyPendingLocked() {
				return false
			}
			continue
		}

		chosen.PendingPasses++
		work.tileID = chosen.id
		work.pass = chosen.Pass
		work.active = true
		r.queue.PushTile(chosen)
		return true
	}
}

func (r *TileRepository) anyPendingLocked() bool {
	for _, t := range r.tiles {
		if t.PendingPasses > 0 {
			return true
		}
	}
	return false
}

// checkConvergenceLocked runs the per-tile convergence test once warmup is
// met, marking the tile done and removing it from future scheduling.
func (r *TileRepository) checkConvergenceLocked(t *Tile) {
	if r.cfg.ConvergenceThreshold <= 0 {
		return
	}
	if t.Pass < r.cfg.WarmupPasses {
		return
	}
	if t.allFilm.MaxConvergenceError() <= r.cfg.ConvergenceThreshold {
		t.Done = true
	}
}

// Tile returns the tile with the given id, or nil if out of range.
func (r *TileRepository) Tile(id int) *Tile {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id < 0 || id >= len(r.tiles) {
		return nil
	}
	return r.tiles[id]
}

// NumTiles returns the number of tiles the film was partitioned into.
func (r *TileRepository) NumTiles() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tiles)
}

// MultipassRenderingIndex returns how many times the convergence threshold
// has been reduced and every tile re-queued.
func (r *TileRepository) MultipassRenderingIndex() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.multipassRenderingIndex
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

