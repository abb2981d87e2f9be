package kdtree

import (
	"container/heap"

	"github.com/lumenpath/lumenpath/pkg/geom"
)

const cosEpsilon = 1e-4

// NearEntry is one accepted result from GetAllNearEntries: the matched
// entry's index into the tree's original slice, plus its squared distance
// from the query point (used to order the bounded max-heap).
type NearEntry struct {
	Index     int
	Distance2 float64
}

type nearHeap []NearEntry

func (h nearHeap) Len() int            { return len(h) }
func (h nearHeap) Less(i, j int) bool  { return h[i].Distance2 > h[j].Distance2 } // max-heap
func (h nearHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nearHeap) Push(x any)         { *h = append(*h, x.(NearEntry)) }
func (h *nearHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// GetAllNearEntries performs an iterative stack traversal of the tree,
// collecting up to maxLookup entries within maxDistance2 of queryP whose
// recorded direction is in the same hemisphere as queryN and whose landing
// surface normal is within entryNormalCosAngle of queryN. When the result
// set is full, the farthest entry is evicted in favor of any nearer
// candidate and maxDistance2 shrinks to the new worst distance, letting
// later pruning skip subtrees that can no longer contribute.
func (t *Tree[T]) GetAllNearEntries(queryP, queryN geom.Vec3, maxDistance2 float64, maxLookup int, entryNormalCosAngle float64) []NearEntry {
	if len(t.nodes) == 0 || maxLookup <= 0 {
		return nil
	}

	var found nearHeap
	stack := make([]int32, 0, 64)
	stack = append(stack, 0)

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[idx]
		entry := t.entries[n.index]

		if int(n.axis) != axisLeaf {
			d := geom.Component(queryP, int(n.axis)) - n.splitPos
			d2 := d * d

			if d <= 0 {
				if n.hasLeft {
					stack = append(stack, idx+1)
				}
				if d2 < maxDistance2 && n.right != nullChild {
					stack = append(stack, n.right)
				}
			} else {
				if n.right != nullChild {
					stack = append(stack, n.right)
				}
				if d2 < maxDistance2 && n.hasLeft {
					stack = append(stack, idx+1)
				}
			}
		}

		p := entry.Point()
		dist2 := p.Subtract(queryP).LengthSquared()
		if dist2 >= maxDistance2 {
			continue
		}
		if queryN.Dot(entry.Direction().Negate()) <= cosEpsilon {
			continue
		}
		if queryN.Dot(entry.LandingSurfaceNormal()) <= entryNormalCosAngle {
			continue
		}

		candidate := NearEntry{Index: int(n.index), Distance2: dist2}
		if len(found) < maxLookup {
			heap.Push(&found, candidate)
			if len(found) == maxLookup {
				maxDistance2 = found[0].Distance2
			}
		} else if dist2 < found[0].Distance2 {
			heap.Pop(&found)
			heap.Push(&found, candidate)
			maxDistance2 = found[0].Distance2
		}
	}

	return []NearEntry(found)
}
