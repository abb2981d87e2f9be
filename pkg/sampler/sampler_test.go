package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPixelBucketCycles(t *testing.T) {
	b := NewPixelBucket(3)
	got := []int{b.Next(), b.Next(), b.Next(), b.Next()}
	assert.Equal(t, []int{0, 1, 2, 0}, got)
}

func TestRandomSamplerInUnitRange(t *testing.T) {
	s := NewRandomSampler(1, NewPixelBucket(16), 4)
	s.NextSample(nil)
	for dim := 0; dim < 10; dim++ {
		v := s.GetSample(dim)
		assert.GreaterOrEqual(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}
}

func TestSobolSamplerDeterministic(t *testing.T) {
	a := NewSobolSampler(42, NewPixelBucket(16), 4)
	b := NewSobolSampler(42, NewPixelBucket(16), 4)
	a.NextSample(nil)
	b.NextSample(nil)
	for dim := 0; dim < 20; dim++ {
		assert.Equal(t, a.GetSample(dim), b.GetSample(dim))
	}
}

func TestSobolSamplerFallsBackBeyondCap(t *testing.T) {
	s := NewSobolSampler(7, NewPixelBucket(4), 2)
	s.NextSample(nil)
	v := s.GetSample(DimForDepth(maxSobolDepth + 5))
	assert.GreaterOrEqual(t, v, float32(0))
	assert.Less(t, v, float32(1))
}

func TestMetropolisSamplerAcceptsImprovements(t *testing.T) {
	m := NewMetropolisSampler(3, 8, 0.3, 4, 50)
	m.NextSample([]float32{1.0})
	before := make([]float32, 8)
	for i := range before {
		before[i] = m.proposed[i]
	}
	m.NextSample([]float32{10.0})
	assert.Equal(t, before, m.current)
}

func TestTilePathSamplerDeterministic(t *testing.T) {
	a := NewTilePathSampler(2, 1, 2, 0, 0, 7, 11, 13)
	b := NewTilePathSampler(2, 1, 2, 0, 0, 7, 11, 13)
	a.SetPixel(3, 4)
	b.SetPixel(3, 4)
	assert.Equal(t, a.GetSample(DimFilmX), b.GetSample(DimFilmX))
	assert.Equal(t, a.GetSample(DimFilmY), b.GetSample(DimFilmY))
}

func TestTilePathSamplerAdvancesSubPixel(t *testing.T) {
	s := NewTilePathSampler(2, 0, 0, 0, 0, 1, 2, 3)
	s.NextSample(nil)
	assert.Equal(t, 1, s.sampleIx)
	s.NextSample(nil)
	assert.Equal(t, 0, s.sampleIx)
	assert.Equal(t, 1, s.sampleIy)
}
