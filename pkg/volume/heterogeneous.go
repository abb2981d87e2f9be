package volume

import "math"

// DensityFunc samples a medium's local density multiplier at a point along
// the ray, parameterized by distance from the segment start.
type DensityFunc func(distance float64) float64

// Heterogeneous is a spatially-varying medium marched in fixed steps,
// accumulating optical depth and emission with the trapezoidal rule rather
// than free-flight sampling in closed form.
type Heterogeneous struct {
	priority      int
	ior           float64
	sigmaA, sigmaS Spectrum
	g             float64
	density       DensityFunc
	stepSize      float64
	maxStepsCount int
	multiScatter  bool
}

func NewHeterogeneous(priority int, ior float64, sigmaA, sigmaS Spectrum, g float64, density DensityFunc, stepSize float64, maxStepsCount int, multiScatter bool) *Heterogeneous {
	return &Heterogeneous{
		priority:      priority,
		ior:           ior,
		sigmaA:        sigmaA,
		sigmaS:        sigmaS,
		g:             g,
		density:       density,
		stepSize:      stepSize,
		maxStepsCount: maxStepsCount,
		multiScatter:  multiScatter,
	}
}

func (h *Heterogeneous) Priority() int          { return h.priority }
func (h *Heterogeneous) IOR(nm float64) float64 { return h.ior }

// Phase evaluates the Schlick phase function at this volume's asymmetry.
func (h *Heterogeneous) Phase(cosTheta float64) float64 {
	return phaseSchlick(h.g, cosTheta)
}

// Scatter marches from mint to maxt in steps of at most stepSize, bounded by
// maxStepsCount, accumulating optical depth with the trapezoidal rule
// (averaging density at consecutive sample points rather than sampling once
// per step). A scatter event is chosen once accumulated optical depth
// crosses a per-step threshold drawn from u; emission is integrated the
// same way along the way.
func (h *Heterogeneous) Scatter(mint, maxt float64, u float64, scatteredStart bool, throughput, emission *Spectrum) float64 {
	segLen := maxt - mint
	if segLen <= 0 || h.density == nil {
		return -1
	}

	steps := h.maxStepsCount
	step := h.stepSize
	if step <= 0 || float64(steps)*step > segLen {
		step = segLen / float64(steps)
	}
	if steps < 1 {
		steps = 1
	}

	k := h.sigmaS.Filter()
	canScatter := k > 0 && (!scatteredStart || h.multiScatter)

	threshold := -math.Log(1 - u)
	accumOD := 0.0

	prevDensity := h.density(0)
	pos := 0.0
	for i := 0; i < steps && pos < segLen; i++ {
		next := pos + step
		if next > segLen {
			next = segLen
		}
		dt := next - pos
		nextDensity := h.density(next)
		avgDensity := (prevDensity + nextDensity) / 2

		stepSigmaT := avgDensity * (h.sigmaA.Filter() + h.sigmaS.Filter())
		stepOD := stepSigmaT * dt

		if canScatter && accumOD+stepOD >= threshold && stepOD > 0 {
			frac := (threshold - accumOD) / stepOD
			scatterDist := pos + frac*dt
			transmittance := expSpectrum(h.sigmaA.Add(h.sigmaS), -avgDensity*scatterDist)
			pdf := math.Exp(-threshold) * avgDensity * k
			if pdf > 0 {
				*throughput = throughput.Mul(transmittance).Scale(1 / pdf).Mul(h.sigmaS)
			}
			return mint + scatterDist
		}

		if emission != nil {
			*emission = emission.Add(expSpectrum(h.sigmaA, -avgDensity*pos).Scale(avgDensity * dt))
		}

		accumOD += stepOD
		prevDensity = nextDensity
		pos = next
	}

	transmittance := expSpectrum(h.sigmaA.Add(h.sigmaS), -accumOD)
	*throughput = throughput.Mul(transmittance)
	return -1
}
