package volume

import (
	"testing"

	"github.com/lumenpath/lumenpath/pkg/bsdf"
	"github.com/lumenpath/lumenpath/pkg/spectral"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpectrum(sw *spectral.SpectrumWavelengths, v float64) Spectrum {
	return spectral.NewSWC(sw, v)
}

func TestClearAttenuatesThroughput(t *testing.T) {
	var sw spectral.SpectrumWavelengths
	sw.Sample(0.5)
	c := NewClear(0, testSpectrum(&sw, 1.0), 1.0)

	throughput := testSpectrum(&sw, 1.0)
	emission := testSpectrum(&sw, 0)
	d := c.Scatter(0, 2, 0.5, false, &throughput, &emission)

	assert.Equal(t, -1.0, d)
	for i := 0; i < throughput.Len(); i++ {
		assert.Less(t, throughput.At(i), 1.0)
		assert.Greater(t, throughput.At(i), 0.0)
	}
}

func TestClearWithEmissionAccumulates(t *testing.T) {
	var sw spectral.SpectrumWavelengths
	sw.Sample(0.5)
	c := NewClear(0, testSpectrum(&sw, 0), 1.0).WithEmission(testSpectrum(&sw, 2.0))

	throughput := testSpectrum(&sw, 1.0)
	emission := testSpectrum(&sw, 0)
	c.Scatter(0, 3, 0.5, false, &throughput, &emission)

	assert.Greater(t, emission.At(0), 0.0)
}

func TestHomogeneousNoScatterWhenZeroSigmaS(t *testing.T) {
	var sw spectral.SpectrumWavelengths
	sw.Sample(0.5)
	h := NewHomogeneous(0, 1.0, testSpectrum(&sw, 0.1), testSpectrum(&sw, 0), 0, false)

	throughput := testSpectrum(&sw, 1.0)
	emission := testSpectrum(&sw, 0)
	d := h.Scatter(0, 5, 0.5, false, &throughput, &emission)

	assert.Equal(t, -1.0, d)
}

func TestHomogeneousScattersInsideSegment(t *testing.T) {
	var sw spectral.SpectrumWavelengths
	sw.Sample(0.5)
	h := NewHomogeneous(0, 1.0, testSpectrum(&sw, 0), testSpectrum(&sw, 5.0), 0, false)

	throughput := testSpectrum(&sw, 1.0)
	emission := testSpectrum(&sw, 0)
	d := h.Scatter(0, 10, 0.3, false, &throughput, &emission)

	require.Greater(t, d, 0.0)
	assert.Less(t, d, 10.0)
}

func TestHomogeneousSkipsSecondScatterWithoutMultiScatter(t *testing.T) {
	var sw spectral.SpectrumWavelengths
	sw.Sample(0.5)
	h := NewHomogeneous(0, 1.0, testSpectrum(&sw, 0), testSpectrum(&sw, 5.0), 0, false)

	throughput := testSpectrum(&sw, 1.0)
	emission := testSpectrum(&sw, 0)
	d := h.Scatter(0, 10, 0.3, true, &throughput, &emission)

	assert.Equal(t, -1.0, d)
}

func TestPathVolumeInfoSimulateAddThenRemoveRestores(t *testing.T) {
	var p PathVolumeInfo
	outer := NewClear(1, Spectrum{}, 1.0)
	p.Add(outer)

	inner := NewHomogeneous(2, 1.3, Spectrum{}, Spectrum{}, 0, false)
	restored := p.SimulateAdd(inner)
	assert.Equal(t, Volume(inner), restored)

	p.Add(inner)
	assert.Equal(t, Volume(inner), p.Current())

	afterRemove := p.SimulateRemove(inner)
	assert.Equal(t, Volume(outer), afterRemove)
}

func TestPathVolumeInfoHighestPriorityWins(t *testing.T) {
	var p PathVolumeInfo
	low := NewClear(1, Spectrum{}, 1.0)
	high := NewClear(5, Spectrum{}, 1.5)

	p.Add(low)
	p.Add(high)
	assert.Equal(t, Volume(high), p.Current())

	p.Remove(high)
	assert.Equal(t, Volume(low), p.Current())
}

func TestPathVolumeInfoAddOverflowPanics(t *testing.T) {
	var p PathVolumeInfo
	for i := 0; i < maxVolumeStack; i++ {
		p.Add(NewClear(i, Spectrum{}, 1.0))
	}
	assert.Panics(t, func() {
		p.Add(NewClear(99, Spectrum{}, 1.0))
	})
}

func TestPathVolumeInfoUpdateEntersOnTransmitFrontFace(t *testing.T) {
	var p PathVolumeInfo
	interior := NewHomogeneous(3, 1.3, Spectrum{}, Spectrum{}, 0, false)

	hit := bsdf.HitPoint{
		FrontFace:      true,
		InteriorVolume: interior,
	}
	p.Update(bsdf.Transmit, hit)
	assert.Equal(t, Volume(interior), p.Current())
}

func TestPathVolumeInfoUpdateIgnoresNonTransmitEvents(t *testing.T) {
	var p PathVolumeInfo
	interior := NewHomogeneous(3, 1.3, Spectrum{}, Spectrum{}, 0, false)

	hit := bsdf.HitPoint{
		FrontFace:      true,
		InteriorVolume: interior,
	}
	p.Update(bsdf.Reflect, hit)
	assert.Nil(t, p.Current())
}

func TestPathVolumeInfoContinueToTraceOverridesLowerPriorityEntry(t *testing.T) {
	var p PathVolumeInfo
	outer := NewHomogeneous(10, 1.5, Spectrum{}, Spectrum{}, 0, false)
	p.Add(outer)

	nested := NewHomogeneous(1, 1.2, Spectrum{}, Spectrum{}, 0, false)
	hit := bsdf.HitPoint{
		FrontFace:      true,
		InteriorVolume: nested,
	}
	assert.True(t, p.ContinueToTrace(nil, hit))
}

func TestPhaseSchlickPeaksForward(t *testing.T) {
	forward := PhaseSchlick(0.8, 1.0)
	backward := PhaseSchlick(0.8, -1.0)
	assert.Greater(t, forward, backward)
}
