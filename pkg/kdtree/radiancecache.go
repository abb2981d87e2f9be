package kdtree

import (
	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/spectral"
)

// RadianceCacheEntry is one recorded light-subpath vertex: the point it
// landed on, the direction light arrived from, the surface normal at that
// point, and the outgoing radiance carried by the subpath there. It
// implements Entry so a slice of these builds directly into a Tree,
// grounded on the original renderer's LightCacheCPU point cache.
type RadianceCacheEntry struct {
	point     geom.Vec3
	direction geom.Vec3
	normal    geom.Vec3

	Radiance spectral.RGB
}

// NewRadianceCacheEntry builds a cache entry for a light-subpath vertex at
// point, reached from direction, landing on a surface with the given
// normal and carrying radiance.
func NewRadianceCacheEntry(point, direction, normal geom.Vec3, radiance spectral.RGB) RadianceCacheEntry {
	return RadianceCacheEntry{point: point, direction: direction, normal: normal, Radiance: radiance}
}

func (e RadianceCacheEntry) Point() geom.Vec3                { return e.point }
func (e RadianceCacheEntry) Direction() geom.Vec3            { return e.direction }
func (e RadianceCacheEntry) LandingSurfaceNormal() geom.Vec3 { return e.normal }
