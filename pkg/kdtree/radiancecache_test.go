package kdtree

import (
	"testing"

	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/spectral"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRadianceCacheEntryImplementsEntry(t *testing.T) {
	e := NewRadianceCacheEntry(
		geom.NewVec3(1, 2, 3),
		geom.NewVec3(0, -1, 0),
		geom.NewVec3(0, 1, 0),
		spectral.NewRGB(0.2, 0.4, 0.6),
	)

	assert.Equal(t, geom.NewVec3(1, 2, 3), e.Point())
	assert.Equal(t, geom.NewVec3(0, -1, 0), e.Direction())
	assert.Equal(t, geom.NewVec3(0, 1, 0), e.LandingSurfaceNormal())
	assert.Equal(t, spectral.NewRGB(0.2, 0.4, 0.6), e.Radiance)
}

func TestBuildAndLookupRadianceCacheEntries(t *testing.T) {
	entries := []RadianceCacheEntry{
		NewRadianceCacheEntry(geom.NewVec3(0, 0, 0), geom.NewVec3(0, -1, 0), geom.NewVec3(0, 1, 0), spectral.NewRGB(1, 0, 0)),
		NewRadianceCacheEntry(geom.NewVec3(5, 0, 0), geom.NewVec3(0, -1, 0), geom.NewVec3(0, 1, 0), spectral.NewRGB(0, 1, 0)),
	}
	tree := Build(entries)
	require.Equal(t, 2, tree.Len())

	near := tree.GetAllNearEntries(geom.NewVec3(0.1, 0, 0), geom.NewVec3(0, 1, 0), 4, 4, 0.5)
	require.Len(t, near, 1)
	assert.Equal(t, spectral.NewRGB(1, 0, 0), tree.Entry(near[0].Index).Radiance)
}
