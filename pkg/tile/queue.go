package tile

import "container/heap"

// tileQueue is a priority queue of tiles keyed by pass count ascending,
// with ties broken by insertion order so repeated runs with the same
// thread count produce the same tile schedule.
type tileQueue struct {
	items []*Tile
}

func newTileQueue() *tileQueue {
	q := &tileQueue{}
	heap.Init(q)
	return q
}

func (q *tileQueue) Len() int { return len(q.items) }

func (q *tileQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.Pass != b.Pass {
		return a.Pass < b.Pass
	}
	return a.seq < b.seq
}

func (q *tileQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
}

func (q *tileQueue) Push(x any) {
	q.items = append(q.items, x.(*Tile))
}

func (q *tileQueue) Pop() any {
	old := q.items
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]
	return t
}

// PushTile pushes t back onto the queue, keyed by its current Pass.
func (q *tileQueue) PushTile(t *Tile) { heap.Push(q, t) }

// PopTile pops and returns the tile with the smallest Pass (ties by
// insertion order), or nil if the queue is empty.
func (q *tileQueue) PopTile() *Tile {
	if q.Len() == 0 {
		return nil
	}
	return heap.Pop(q).(*Tile)
}
