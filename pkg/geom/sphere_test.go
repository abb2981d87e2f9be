package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSphereIntersectHitsNearestRoot(t *testing.T) {
	s := NewSphere(NewVec3(0, 0, 0), 1)
	ray := Ray{Origin: NewVec3(0, 0, 5), Direction: NewVec3(0, 0, -1), Mint: 1e-4, Maxt: math.Inf(1)}

	tHit, ok := s.Intersect(ray)
	assert.True(t, ok)
	assert.InDelta(t, 4.0, tHit, 1e-9)
}

func TestSphereIntersectMissesWhenRayPassesBy(t *testing.T) {
	s := NewSphere(NewVec3(0, 0, 0), 1)
	ray := Ray{Origin: NewVec3(5, 5, 5), Direction: NewVec3(0, 0, -1), Mint: 1e-4, Maxt: math.Inf(1)}

	_, ok := s.Intersect(ray)
	assert.False(t, ok)
}

func TestSphereIntersectRespectsMaxt(t *testing.T) {
	s := NewSphere(NewVec3(0, 0, 0), 1)
	ray := Ray{Origin: NewVec3(0, 0, 5), Direction: NewVec3(0, 0, -1), Mint: 1e-4, Maxt: 3.0}

	_, ok := s.Intersect(ray)
	assert.False(t, ok, "hit at t=4 is beyond Maxt=3")
}

func TestSphereNormalAtPointsOutward(t *testing.T) {
	s := NewSphere(NewVec3(0, 0, 0), 2)
	n := s.NormalAt(NewVec3(2, 0, 0))
	assert.InDelta(t, 1.0, n.X, 1e-9)
	assert.InDelta(t, 0.0, n.Y, 1e-9)
	assert.InDelta(t, 0.0, n.Z, 1e-9)
}

func TestSphereBoundingBoxSpansDiameter(t *testing.T) {
	s := NewSphere(NewVec3(1, 2, 3), 2)
	b := s.BoundingBox()
	assert.Equal(t, NewVec3(-1, 0, 1), b.Min)
	assert.Equal(t, NewVec3(3, 4, 5), b.Max)
}

func TestSphereAreaMatchesFormula(t *testing.T) {
	s := NewSphere(NewVec3(0, 0, 0), 2)
	assert.InDelta(t, 4*math.Pi*4, s.Area(), 1e-9)
}
