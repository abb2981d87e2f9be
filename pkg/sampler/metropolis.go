package sampler

import "golang.org/x/exp/rand"

// MetropolisSampler mutates the full sample vector of the current path
// rather than drawing independent dimensions, following a
// Metropolis-Hastings chain seeded from an initial uniform sample.
// Acceptance is driven externally by NextSample's results (the path's
// contribution), which this sampler uses to decide whether to keep the
// mutation or roll back to the previous sample vector.
type MetropolisSampler struct {
	rng *rand.Rand

	dims              int
	current, proposed []float32

	largeStepProb   float64
	imageRange      float32 // max screen-space jump for a small mutation
	maxConsecutiveRejects int

	consecutiveRejects int
	isLargeStep        bool
	currentLuminance   float64
}

// NewMetropolisSampler seeds a chain over dims logical dimensions.
// largeStepProb is typically 0.3; imageRange bounds small-step screen-space
// mutation in pixels; maxConsecutiveRejects forces a large step after that
// many rejections in a row to avoid getting stuck in a low-contribution
// region.
func NewMetropolisSampler(seed uint64, dims int, largeStepProb float64, imageRange float32, maxConsecutiveRejects int) *MetropolisSampler {
	m := &MetropolisSampler{
		rng:                   rand.New(rand.NewSource(seed)),
		dims:                  dims,
		current:               make([]float32, dims),
		proposed:              make([]float32, dims),
		largeStepProb:         largeStepProb,
		imageRange:            imageRange,
		maxConsecutiveRejects: maxConsecutiveRejects,
	}
	for i := range m.current {
		m.current[i] = m.rng.Float32()
	}
	copy(m.proposed, m.current)
	return m
}

func (m *MetropolisSampler) GetSample(dim int) float32 {
	if dim < 0 || dim >= m.dims {
		return m.rng.Float32()
	}
	return m.proposed[dim]
}

func (m *MetropolisSampler) mutate() {
	m.isLargeStep = m.rng.Float64() < m.largeStepProb || m.consecutiveRejects >= m.maxConsecutiveRejects
	copy(m.proposed, m.current)
	if m.isLargeStep {
		for i := range m.proposed {
			m.proposed[i] = m.rng.Float32()
		}
		return
	}
	for i := range m.proposed {
		delta := (m.rng.Float32()*2 - 1) * m.smallStepSize(i)
		v := m.proposed[i] + delta
		v -= floorf32(v) // wrap into [0,1)
		m.proposed[i] = v
	}
}

func (m *MetropolisSampler) smallStepSize(dim int) float32 {
	if dim == DimFilmX || dim == DimFilmY {
		return m.imageRange
	}
	return 1.0 / 1024.0
}

func floorf32(v float32) float32 {
	f := float32(int(v))
	if f > v {
		f--
	}
	return f
}

// NextSample accepts or rejects the proposed mutation based on the
// contribution's luminance (results[0], by convention) relative to the
// previous sample's, per the Metropolis acceptance rule, then proposes the
// next mutation.
func (m *MetropolisSampler) NextSample(results []float32) {
	newLum := 0.0
	if len(results) > 0 {
		newLum = float64(results[0])
	}

	if m.currentLuminance <= 0 {
		copy(m.current, m.proposed)
		m.currentLuminance = newLum
	} else {
		accept := newLum / m.currentLuminance
		if accept >= 1 || m.rng.Float64() < accept {
			copy(m.current, m.proposed)
			m.currentLuminance = newLum
			m.consecutiveRejects = 0
		} else {
			m.consecutiveRejects++
		}
	}

	m.mutate()
}
