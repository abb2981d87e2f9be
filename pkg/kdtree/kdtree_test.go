package kdtree

import (
	"math/rand"
	"testing"

	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPhoton struct {
	p      geom.Vec3
	dir    geom.Vec3
	normal geom.Vec3
}

func (p testPhoton) Point() geom.Vec3                { return p.p }
func (p testPhoton) Direction() geom.Vec3            { return p.dir }
func (p testPhoton) LandingSurfaceNormal() geom.Vec3 { return p.normal }

func makePhotons(n int, seed int64) []testPhoton {
	r := rand.New(rand.NewSource(seed))
	out := make([]testPhoton, n)
	for i := range out {
		out[i] = testPhoton{
			p:      geom.NewVec3(r.Float64()*10-5, r.Float64()*10-5, r.Float64()*10-5),
			dir:    geom.NewVec3(0, -1, 0),
			normal: geom.NewVec3(0, 1, 0),
		}
	}
	return out
}

func TestBuildSingleEntryIsLeaf(t *testing.T) {
	entries := []testPhoton{{p: geom.NewVec3(1, 2, 3), dir: geom.NewVec3(0, -1, 0), normal: geom.NewVec3(0, 1, 0)}}
	tree := Build(entries)
	require.Equal(t, 1, tree.Len())
	assert.Equal(t, int8(axisLeaf), tree.nodes[0].axis)
}

func TestBuildCoversEveryEntryExactlyOnce(t *testing.T) {
	entries := makePhotons(200, 1)
	tree := Build(entries)

	seen := make([]bool, len(entries))
	for _, n := range tree.nodes {
		require.False(t, seen[n.index], "entry %d referenced by more than one node", n.index)
		seen[n.index] = true
	}
	for i, ok := range seen {
		require.True(t, ok, "entry %d never placed in tree", i)
	}
}

func TestGetAllNearEntriesFindsCoincidentPoint(t *testing.T) {
	entries := makePhotons(500, 2)
	entries = append(entries, testPhoton{p: geom.NewVec3(0, 0, 0), dir: geom.NewVec3(0, -1, 0), normal: geom.NewVec3(0, 1, 0)})
	tree := Build(entries)

	results := tree.GetAllNearEntries(geom.NewVec3(0, 0, 0), geom.NewVec3(0, 1, 0), 0.01, 8, 0.5)
	require.NotEmpty(t, results)
	found := false
	for _, r := range results {
		if entries[r.Index].p.Equals(geom.NewVec3(0, 0, 0)) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGetAllNearEntriesRejectsWrongHemisphere(t *testing.T) {
	entries := []testPhoton{
		{p: geom.NewVec3(0, 0, 0), dir: geom.NewVec3(0, 1, 0), normal: geom.NewVec3(0, 1, 0)},
	}
	tree := Build(entries)
	results := tree.GetAllNearEntries(geom.NewVec3(0, 0, 0), geom.NewVec3(0, 1, 0), 1.0, 8, 0.5)
	assert.Empty(t, results)
}

func TestGetAllNearEntriesRespectsMaxLookup(t *testing.T) {
	entries := makePhotons(300, 3)
	tree := Build(entries)
	results := tree.GetAllNearEntries(geom.NewVec3(0, 0, 0), geom.NewVec3(0, 1, 0), 1e6, 5, -1.0)
	assert.LessOrEqual(t, len(results), 5)
}

func TestMarshalUnmarshalRoundTrips(t *testing.T) {
	entries := makePhotons(64, 4)
	tree := Build(entries)
	data := tree.MarshalNodes()

	restored := &Tree[testPhoton]{}
	require.NoError(t, restored.UnmarshalNodes(entries, data))

	require.Equal(t, len(tree.nodes), len(restored.nodes))
	for i := range tree.nodes {
		assert.Equal(t, tree.nodes[i], restored.nodes[i])
	}

	a := tree.GetAllNearEntries(geom.NewVec3(0, 0, 0), geom.NewVec3(0, 1, 0), 4.0, 4, -1.0)
	b := restored.GetAllNearEntries(geom.NewVec3(0, 0, 0), geom.NewVec3(0, 1, 0), 4.0, 4, -1.0)
	assert.Equal(t, len(a), len(b))
}
