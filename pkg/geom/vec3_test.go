package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	assert.Equal(t, NewVec3(5, -3, 9), a.Add(b))
	assert.Equal(t, NewVec3(-3, 7, -3), a.Subtract(b))
	assert.Equal(t, NewVec3(4, -10, 18), a.MultiplyVec(b))
	assert.InDelta(t, 4-10+18, a.Dot(b), 1e-9)
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 0, 4)
	n := v.Normalize()
	assert.InDelta(t, 1.0, n.Length(), 1e-12)
	assert.True(t, NewVec3(0, 0, 0).Normalize().IsZero())
}

func TestVec3IsFinite(t *testing.T) {
	assert.True(t, NewVec3(1, 2, 3).IsFinite())
	assert.False(t, NewVec3(math.NaN(), 0, 0).IsFinite())
	assert.False(t, NewVec3(math.Inf(1), 0, 0).IsFinite())
}

func TestCoordinateSystemOrthonormal(t *testing.T) {
	v := NewVec3(0.267, 0.534, 0.802).Normalize()
	b1, b2 := v.CoordinateSystem()
	assert.InDelta(t, 0, v.Dot(b1), 1e-9)
	assert.InDelta(t, 0, v.Dot(b2), 1e-9)
	assert.InDelta(t, 0, b1.Dot(b2), 1e-9)
	assert.InDelta(t, 1, b1.Length(), 1e-9)
	assert.InDelta(t, 1, b2.Length(), 1e-9)
}

func TestRayAt(t *testing.T) {
	r := NewRay(NewVec3(0, 0, 0), NewVec3(1, 0, 0))
	assert.Equal(t, NewVec3(2, 0, 0), r.At(2))
}

func TestRayHitIsMiss(t *testing.T) {
	r := NewRay(NewVec3(0, 0, 0), NewVec3(1, 0, 0))
	r.Maxt = 10
	assert.True(t, RayHit{T: 10}.IsMiss(r))
	assert.True(t, RayHit{T: 11}.IsMiss(r))
	assert.False(t, RayHit{T: 9}.IsMiss(r))
}
