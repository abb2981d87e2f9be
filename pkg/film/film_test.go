package film

import (
	"testing"

	"github.com/lumenpath/lumenpath/pkg/spectral"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSampleWeightMonotone(t *testing.T) {
	f := NewFilm(DefaultConfig(4, 4), spectral.SRGB())
	prev := 0.0
	for i := 0; i < 10; i++ {
		f.AddSample(0, 1, 1, spectral.RGB{R: 1, G: 1, B: 1}, 1)
		gb := &f.groups[0]
		cur := gb.all[f.index(1, 1)].WeightSum
		require.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestSplatFilteredStaysInBounds(t *testing.T) {
	f := NewFilm(DefaultConfig(4, 4), spectral.SRGB())
	assert.NotPanics(t, func() {
		f.SplatFiltered(0, 0.2, 0.2, spectral.RGB{R: 1}, 1, 1)
		f.SplatFiltered(0, 3.8, 3.8, spectral.RGB{G: 1}, 1, 1)
	})
}

func TestGetConvergenceFullyConvergedWhenIdentical(t *testing.T) {
	f := NewFilm(DefaultConfig(2, 2), spectral.SRGB())
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			for i := 0; i < 20; i++ {
				f.AddSample(0, x, y, spectral.RGB{R: 0.5, G: 0.5, B: 0.5}, 1)
			}
		}
	}
	c := f.GetConvergence()
	assert.Greater(t, c, 0.9)
}

func TestChannelScaleClampsNonNegative(t *testing.T) {
	rcs := NewRadianceChannelScale(spectral.SRGB())
	rcs.SetGlobalScale(-5)
	s := rcs.Scale()
	assert.GreaterOrEqual(t, s.R, 0.0)
	assert.GreaterOrEqual(t, s.G, 0.0)
	assert.GreaterOrEqual(t, s.B, 0.0)
}

func TestFilterLUTSymmetric(t *testing.T) {
	lut := NewFilterLUT(NewGaussianFilter(2, 2), 4)
	w := lut.Width()
	// Sub-pixel buckets 0 and subRes-1 sit at mirrored offsets (-0.375 and
	// +0.375), so the centre cell must weigh the same in both.
	a := lut.Lookup(0, 0, w/2, w/2)
	b := lut.Lookup(3, 0, w/2, w/2)
	assert.InDelta(t, a, b, 1e-12)
}
