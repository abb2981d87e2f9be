package specache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumenpath/lumenpath/pkg/spectral"
)

// countingSPD counts how many times Sample is called, so tests can assert
// a cache hit skipped the underlying resample.
type countingSPD struct {
	calls int
}

func (s *countingSPD) Sample(nm float64) float64 {
	s.calls++
	return nm
}

func TestResampleHitsCacheOnRepeatedWavelengths(t *testing.T) {
	c := New(16)
	spd := &countingSPD{}

	var sw spectral.SpectrumWavelengths
	sw.Sample(0.25)

	first := c.Resample(&sw, spd)
	second := c.Resample(&sw, spd)

	assert.Equal(t, spectral.WavelengthSamples, spd.calls, "second call should hit the cache, not resample")
	for i := 0; i < first.Len(); i++ {
		assert.Equal(t, first.At(i), second.At(i))
	}
}

func TestResampleMissesOnDistinctWavelengths(t *testing.T) {
	c := New(16)
	spd := &countingSPD{}

	var sw1, sw2 spectral.SpectrumWavelengths
	sw1.Sample(0.1)
	sw2.Sample(0.9)

	c.Resample(&sw1, spd)
	c.Resample(&sw2, spd)

	assert.Equal(t, 2*spectral.WavelengthSamples, spd.calls)
	assert.Equal(t, 2, c.Len())
}

func TestResampleDistinguishesSPDIdentity(t *testing.T) {
	c := New(16)
	spdA := &countingSPD{}
	spdB := &countingSPD{}

	var sw spectral.SpectrumWavelengths
	sw.Sample(0.5)

	c.Resample(&sw, spdA)
	c.Resample(&sw, spdB)

	assert.Equal(t, spectral.WavelengthSamples, spdA.calls)
	assert.Equal(t, spectral.WavelengthSamples, spdB.calls)
	assert.Equal(t, 2, c.Len())
}

func TestPurgeClearsAllEntries(t *testing.T) {
	c := New(16)
	spd := &countingSPD{}
	var sw spectral.SpectrumWavelengths
	sw.Sample(0.5)

	c.Resample(&sw, spd)
	assert.Equal(t, 1, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())

	c.Resample(&sw, spd)
	assert.Equal(t, 2*spectral.WavelengthSamples, spd.calls)
}

func TestNewWithNonPositiveCapacityUsesDefault(t *testing.T) {
	c := New(0)
	assert.NotNil(t, c)
}
