package volume

import "math"

// Clear is a pure-absorption medium (Beer-Lambert law), no scattering.
type Clear struct {
	priority int
	sigmaA   Spectrum
	iorNM    float64
	ior      float64
	emission Spectrum
	hasEmit  bool
}

func NewClear(priority int, sigmaA Spectrum, ior float64) *Clear {
	return &Clear{priority: priority, sigmaA: sigmaA, ior: ior}
}

// WithEmission attaches a constant emission term integrated linearly over
// any traversed segment.
func (c *Clear) WithEmission(e Spectrum) *Clear {
	c.emission = e
	c.hasEmit = true
	return c
}

func (c *Clear) Priority() int          { return c.priority }
func (c *Clear) IOR(nm float64) float64 { return c.ior }

func (c *Clear) Scatter(mint, maxt float64, u float64, scatteredStart bool, throughput, emission *Spectrum) float64 {
	d := maxt - mint
	if d <= 0 {
		return -1
	}
	transmittance := expSpectrum(c.sigmaA, -d)
	*throughput = throughput.Mul(transmittance)

	if c.hasEmit {
		// Integrate emission linearly over the segment, attenuated by the
		// average transmittance across it.
		avgT := expSpectrum(c.sigmaA, -d/2)
		*emission = emission.Add(c.emission.Mul(avgT).Scale(d))
	}
	return -1
}

// expSpectrum applies exp(sigma[i]*scale) componentwise, the Beer-Lambert
// transmittance primitive Clear and Homogeneous both need.
func expSpectrum(sigma Spectrum, scale float64) Spectrum {
	r := sigma
	for i := 0; i < r.Len(); i++ {
		r.Set(i, math.Exp(sigma.At(i)*scale))
	}
	return r
}
