// Package kdtree implements a flat, index-based kd-tree over a fixed set of
// point entries, built once and queried many times for near-neighbor
// lookups under a combined distance/normal-cosine filter.
package kdtree

import (
	"github.com/lumenpath/lumenpath/pkg/geom"
)

const nullChild = -1

// axisLeaf marks a node with no split axis: all three real axes are 0-2.
const axisLeaf = 3

// Entry is a point plus the directional data GetAllNearEntries filters on.
// Direction is the incoming direction the entry was recorded along (e.g. a
// photon's incident direction); LandingSurfaceNormal is the surface normal
// at the point where the entry landed.
type Entry interface {
	Point() geom.Vec3
	Direction() geom.Vec3
	LandingSurfaceNormal() geom.Vec3
}

type node struct {
	splitPos float64
	index    int32
	axis     int8
	hasLeft  bool
	right    int32
}

// Tree is a read-only, array-encoded kd-tree over a slice of Entry values,
// grounded on the original engine's IndexKdTree: each node stores the index
// of one entry plus a packed split axis/child layout, avoiding a
// pointer-chasing tree of heap-allocated nodes.
type Tree[T Entry] struct {
	entries []T
	nodes   []node
}

// Build constructs a kd-tree over entries by recursive median splitting on
// the longest axis of each node's bounding box. entries must be non-empty.
func Build[T Entry](entries []T) *Tree[T] {
	if len(entries) == 0 {
		return &Tree[T]{}
	}
	t := &Tree[T]{
		entries: entries,
		nodes:   make([]node, len(entries)),
	}
	order := make([]int32, len(entries))
	for i := range order {
		order[i] = int32(i)
	}
	next := int32(1)
	t.build(0, 0, len(entries), order, &next)
	return t
}

func (t *Tree[T]) build(nodeIndex int32, start, end int, order []int32, next *int32) {
	if start+1 == end {
		t.nodes[nodeIndex] = node{index: order[start], axis: axisLeaf, right: nullChild}
		return
	}

	bb := geom.NewAABBFromPoints(t.entries[order[start]].Point())
	for i := start + 1; i < end; i++ {
		bb = bb.Union(geom.NewAABBFromPoints(t.entries[order[i]].Point()))
	}
	axis := bb.LongestAxis()
	mid := (start + end) / 2

	nthElement(order[start:end], mid-start, func(a, b int32) bool {
		pa := geom.Component(t.entries[a].Point(), axis)
		pb := geom.Component(t.entries[b].Point(), axis)
		if pa == pb {
			return a < b
		}
		return pa < pb
	})

	n := &t.nodes[nodeIndex]
	n.axis = int8(axis)
	n.splitPos = geom.Component(t.entries[order[mid]].Point(), axis)
	n.index = order[mid]

	if start < mid {
		n.hasLeft = true
		left := *next
		*next++
		t.build(left, start, mid, order, next)
	}
	if mid+1 < end {
		right := *next
		*next++
		n.right = right
		t.build(right, mid+1, end, order, next)
	} else {
		n.right = nullChild
	}
}

// nthElement performs a quickselect partial sort: after it returns,
// items[k] holds the element that would be at position k in sorted order,
// with every element before it no greater and every element after it no
// less, mirroring std::nth_element without requiring a full sort.
func nthElement(items []int32, k int, less func(a, b int32) bool) {
	lo, hi := 0, len(items)-1
	for lo < hi {
		p := partition(items, lo, hi, less)
		switch {
		case k == p:
			return
		case k < p:
			hi = p - 1
		default:
			lo = p + 1
		}
	}
}

func partition(items []int32, lo, hi int, less func(a, b int32) bool) int {
	pivot := items[(lo+hi)/2]
	items[(lo+hi)/2], items[hi] = items[hi], items[(lo+hi)/2]
	store := lo
	for i := lo; i < hi; i++ {
		if less(items[i], pivot) {
			items[i], items[store] = items[store], items[i]
			store++
		}
	}
	items[store], items[hi] = items[hi], items[store]
	return store
}

// Len returns the number of entries in the tree.
func (t *Tree[T]) Len() int { return len(t.entries) }

// Entry returns the original entry at i, the index NearEntry.Index refers
// to.
func (t *Tree[T]) Entry(i int) T { return t.entries[i] }
