package volume

import "math"

// Homogeneous is a constant-coefficient scattering/absorbing medium with a
// single asymmetry parameter driving a Schlick phase function.
type Homogeneous struct {
	priority       int
	ior            float64
	sigmaA, sigmaS Spectrum
	g              float64
	multiScatter   bool
}

func NewHomogeneous(priority int, ior float64, sigmaA, sigmaS Spectrum, g float64, multiScatter bool) *Homogeneous {
	return &Homogeneous{priority: priority, ior: ior, sigmaA: sigmaA, sigmaS: sigmaS, g: g, multiScatter: multiScatter}
}

func (h *Homogeneous) Priority() int          { return h.priority }
func (h *Homogeneous) IOR(nm float64) float64 { return h.ior }

// Scatter draws a free-flight distance d_s = -ln(1-u)/k with k the
// filtered scattering coefficient. If d_s lands inside the segment and
// either the segment does not start at a previous scattering event
// (scatteredStart is false) or multiple scattering is enabled, the path
// scatters there; otherwise the segment is simply attenuated by full
// extinction.
func (h *Homogeneous) Scatter(mint, maxt float64, u float64, scatteredStart bool, throughput, emission *Spectrum) float64 {
	segLen := maxt - mint
	if segLen <= 0 {
		return -1
	}

	k := h.sigmaS.Filter()
	sigmaT := h.sigmaA.Add(h.sigmaS)

	if k > 0 && (!scatteredStart || h.multiScatter) {
		ds := -math.Log(1-u) / k
		if ds < segLen {
			pdf := math.Exp(-ds*k) * k
			if pdf > 0 {
				scatterTransmittance := expSpectrum(sigmaT, -ds)
				*throughput = throughput.Mul(scatterTransmittance).Scale(1 / pdf).Mul(h.sigmaS)
				return mint + ds
			}
		}
	}

	transmittance := expSpectrum(sigmaT, -segLen)
	*throughput = throughput.Mul(transmittance)
	return -1
}

// Albedo returns the single-scattering albedo r = sigmaS/(sigmaS+sigmaA),
// the factor that multiplies the scattered-radiance contribution.
func (h *Homogeneous) Albedo() Spectrum {
	return h.sigmaS.Divide(h.sigmaS.Add(h.sigmaA))
}

// Phase evaluates the Schlick phase function at this volume's asymmetry.
func (h *Homogeneous) Phase(cosTheta float64) float64 {
	return phaseSchlick(h.g, cosTheta)
}
