package spectral

import "math"

// SWC is a stratified-wavelengths-coherent spectral sample: one float per
// active wavelength. Its component count always equals the owning
// SpectrumWavelengths.ActiveCount().
type SWC struct {
	c [WavelengthSamples]float64
	n int
}

// NewSWC builds a spectrum over the wavelengths' current active count,
// filling every active component with value.
func NewSWC(sw *SpectrumWavelengths, value float64) SWC {
	s := SWC{n: sw.ActiveCount()}
	for i := 0; i < s.n; i++ {
		s.c[i] = value
	}
	return s
}

// NewSWCFromSPD samples spd at each active wavelength of sw, the direct
// resampling path alongside NewSWC.
func NewSWCFromSPD(sw *SpectrumWavelengths, spd SPD) SWC {
	s := SWC{n: sw.ActiveCount()}
	if sw.IsSingle() {
		s.c[0] = spd.Sample(sw.Wavelengths[sw.SingleIndex()])
		return s
	}
	for i := 0; i < s.n; i++ {
		s.c[i] = spd.Sample(sw.Wavelengths[i])
	}
	return s
}

func (s SWC) Len() int            { return s.n }
func (s SWC) At(i int) float64    { return s.c[i] }
func (s *SWC) Set(i int, v float64) { s.c[i] = v }

func (s SWC) binary(o SWC, op func(a, b float64) float64) SWC {
	r := SWC{n: s.n}
	for i := 0; i < s.n; i++ {
		r.c[i] = op(s.c[i], o.c[i])
	}
	return r
}

func (s SWC) Add(o SWC) SWC      { return s.binary(o, func(a, b float64) float64 { return a + b }) }
func (s SWC) Sub(o SWC) SWC      { return s.binary(o, func(a, b float64) float64 { return a - b }) }
func (s SWC) Mul(o SWC) SWC      { return s.binary(o, func(a, b float64) float64 { return a * b }) }
func (s SWC) Divide(o SWC) SWC {
	return s.binary(o, func(a, b float64) float64 {
		if b == 0 {
			return 0
		}
		return a / b
	})
}

func (s SWC) Scale(k float64) SWC {
	r := SWC{n: s.n}
	for i := 0; i < s.n; i++ {
		r.c[i] = s.c[i] * k
	}
	return r
}

// SubScalar implements true per-channel subtraction. The original source's
// SpectrumGroup.operator-=(float) divides instead of subtracting, noted as
// a copy/paste bug in some renderers that divide instead; this is the corrected behavior.
func (s SWC) SubScalar(a float64) SWC {
	r := SWC{n: s.n}
	for i := 0; i < s.n; i++ {
		r.c[i] = s.c[i] - a
	}
	return r
}

// Y returns the CIE-Y luminance of this spectral sample.
func (s SWC) Y(sw *SpectrumWavelengths) float64 {
	if s.n == 0 {
		return 0
	}
	if sw.IsSingle() {
		return s.c[0] * cieYBar(sw.Wavelengths[sw.SingleIndex()])
	}
	sum := 0.0
	for i := 0; i < s.n; i++ {
		sum += s.c[i] * cieYBar(sw.Wavelengths[i])
	}
	return sum / float64(s.n)
}

// Filter returns a single-sample-aware mean: the arithmetic mean over
// active components, degrading gracefully to the lone component once the
// wavelength set has collapsed.
func (s SWC) Filter() float64 {
	if s.n == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < s.n; i++ {
		sum += s.c[i]
	}
	return sum / float64(s.n)
}

func (s SWC) Black() bool {
	for i := 0; i < s.n; i++ {
		if s.c[i] != 0 {
			return false
		}
	}
	return true
}

func (s SWC) HasNaN() bool {
	for i := 0; i < s.n; i++ {
		if math.IsNaN(s.c[i]) {
			return true
		}
	}
	return false
}

func (s SWC) HasInf() bool {
	for i := 0; i < s.n; i++ {
		if math.IsInf(s.c[i], 0) {
			return true
		}
	}
	return false
}

// IsFinite reports that every component is neither NaN nor infinite, the
// check the math-singularity error kind performs before a contribution is
// accepted.
func (s SWC) IsFinite() bool { return !s.HasNaN() && !s.HasInf() }

func (s SWC) Clamp(lo, hi float64) SWC {
	r := SWC{n: s.n}
	for i := 0; i < s.n; i++ {
		r.c[i] = math.Min(hi, math.Max(lo, s.c[i]))
	}
	return r
}
