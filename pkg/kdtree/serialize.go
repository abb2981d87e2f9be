package kdtree

import (
	"encoding/binary"
	"fmt"
	"math"
)

const nodeRecordSize = 8 + 4 + 1 + 1 + 4 // splitPos + index + axis + hasLeft + right

// MarshalNodes encodes the tree's packed node array (not the entries
// themselves, which the caller already persists alongside whatever else it
// builds the tree from) into a flat binary layout suitable for caching a
// build across runs, mirroring the original engine's ability to
// (de)serialize its IndexKdTreeArrayNode array directly.
func (t *Tree[T]) MarshalNodes() []byte {
	buf := make([]byte, 4+len(t.nodes)*nodeRecordSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(t.nodes)))
	off := 4
	for _, n := range t.nodes {
		binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(n.splitPos))
		binary.LittleEndian.PutUint32(buf[off+8:], uint32(n.index))
		buf[off+12] = byte(n.axis)
		if n.hasLeft {
			buf[off+13] = 1
		}
		binary.LittleEndian.PutUint32(buf[off+14:], uint32(n.right))
		off += nodeRecordSize
	}
	return buf
}

// UnmarshalNodes decodes a node array produced by MarshalNodes back onto a
// Tree whose entries slice has already been set to the matching data (the
// caller is responsible for ensuring entries and the encoded node indices
// agree; a length mismatch is the only check made here).
func (t *Tree[T]) UnmarshalNodes(entries []T, data []byte) error {
	if len(data) < 4 {
		return fmt.Errorf("kdtree: truncated node header")
	}
	count := int(binary.LittleEndian.Uint32(data[0:4]))
	want := 4 + count*nodeRecordSize
	if len(data) != want {
		return fmt.Errorf("kdtree: node data length %d, want %d", len(data), want)
	}
	if count != len(entries) {
		return fmt.Errorf("kdtree: %d nodes but %d entries", count, len(entries))
	}

	nodes := make([]node, count)
	off := 4
	for i := range nodes {
		bits := binary.LittleEndian.Uint64(data[off:])
		nodes[i] = node{
			splitPos: math.Float64frombits(bits),
			index:    int32(binary.LittleEndian.Uint32(data[off+8:])),
			axis:     int8(data[off+12]),
			hasLeft:  data[off+13] != 0,
			right:    int32(binary.LittleEndian.Uint32(data[off+14:])),
		}
		off += nodeRecordSize
	}

	t.entries = entries
	t.nodes = nodes
	return nil
}
