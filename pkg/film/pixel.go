package film

import "github.com/lumenpath/lumenpath/pkg/spectral"

// Pixel accumulates weighted radiance and luminance moments for a single
// film pixel, grounded on the raytracer's per-pixel sampling statistics but
// widened to carry a filter-weight sum instead of an implicit sample count,
// since SplatFiltered contributes fractional weight to several pixels per
// sample.
type Pixel struct {
	ColorAccum       spectral.RGB
	WeightSum        float64
	LuminanceAccum   float64
	LuminanceSqAccum float64
	AlphaAccum       float64
	SampleCount      int
}

// AddSample accumulates a weighted color contribution. WeightSum is
// monotone non-decreasing as required of the film's per-pixel weight
// bucket; it is the caller's responsibility to serialize concurrent calls
// (per-pixel mutex or atomic, per the engine's choice).
func (p *Pixel) AddSample(color spectral.RGB, weight float64) {
	p.ColorAccum = p.ColorAccum.Add(color.Scale(weight))
	p.WeightSum += weight
	lum := color.Luminance()
	p.LuminanceAccum += lum * weight
	p.LuminanceSqAccum += lum * lum * weight
	p.SampleCount++
}

// AddAlpha accumulates a weighted alpha contribution, tracked independently
// of WeightSum so opaque and transparent splats can share a pixel.
func (p *Pixel) AddAlpha(alpha, weight float64) {
	p.AlphaAccum += alpha * weight
}

// Color returns the weight-normalized average color, black if no weight
// has been accumulated.
func (p *Pixel) Color() spectral.RGB {
	if p.WeightSum <= 0 {
		return spectral.RGB{}
	}
	return p.ColorAccum.Scale(1 / p.WeightSum)
}

// Alpha returns the weight-normalized average alpha.
func (p *Pixel) Alpha() float64 {
	if p.WeightSum <= 0 {
		return 0
	}
	return p.AlphaAccum / p.WeightSum
}

// Variance estimates the pixel's luminance variance from its first and
// second weighted moments.
func (p *Pixel) Variance() float64 {
	if p.WeightSum <= 0 {
		return 0
	}
	mean := p.LuminanceAccum / p.WeightSum
	meanSq := p.LuminanceSqAccum / p.WeightSum
	v := meanSq - mean*mean
	if v < 0 {
		return 0
	}
	return v
}
