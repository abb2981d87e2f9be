package spectral

import "math"

const blackbodyTableSize = 256

// planckLaw evaluates spectral radiance (unnormalized) at wavelength nm
// (meters internally) for a blackbody at temperature kelvin, Planck's law.
func planckLaw(nmMeters, kelvin float64) float64 {
	const h = 6.62606957e-34 // Planck constant
	const c = 299792458.0    // speed of light
	const kb = 1.3806488e-23 // Boltzmann constant

	l5 := math.Pow(nmMeters, 5)
	return (2 * h * c * c) / (l5 * (math.Exp((h*c)/(nmMeters*kb*kelvin)) - 1))
}

// BlackbodySPD tabulates Planck's law on [WavelengthStart, WavelengthEnd]
// at blackbodyTableSize samples, normalized so its peak sample is 1, per
// at blackbodyTableSize samples.
type BlackbodySPD struct {
	temp   float64
	values []float64
}

// NewBlackbodySPD tabulates and normalizes a blackbody curve at the given
// temperature in Kelvin.
func NewBlackbodySPD(kelvin float64) *BlackbodySPD {
	values := make([]float64, blackbodyTableSize)
	step := (WavelengthEnd - WavelengthStart) / float64(blackbodyTableSize-1)
	maxV := 0.0
	for i := 0; i < blackbodyTableSize; i++ {
		nm := WavelengthStart + float64(i)*step
		v := planckLaw(nm*1e-9, kelvin)
		values[i] = v
		if v > maxV {
			maxV = v
		}
	}
	if maxV > 0 {
		for i := range values {
			values[i] /= maxV
		}
	}
	return &BlackbodySPD{temp: kelvin, values: values}
}

func (b *BlackbodySPD) Temperature() float64 { return b.temp }

func (b *BlackbodySPD) Sample(nm float64) float64 {
	if len(b.values) == 0 || nm < WavelengthStart || nm > WavelengthEnd {
		return 0
	}
	step := (WavelengthEnd - WavelengthStart) / float64(len(b.values)-1)
	pos := (nm - WavelengthStart) / step
	i0 := int(pos)
	if i0 >= len(b.values)-1 {
		return b.values[len(b.values)-1]
	}
	t := pos - float64(i0)
	return b.values[i0]*(1-t) + b.values[i0+1]*t
}

// XYZ integrates the blackbody curve against the CIE matching functions,
// producing an unnormalized tristimulus value whose luminance is always
// positive for any physical temperature.
func (b *BlackbodySPD) XYZ() XYZ {
	var x, y, z float64
	step := (WavelengthEnd - WavelengthStart) / float64(blackbodyTableSize-1)
	for i := 0; i < blackbodyTableSize; i++ {
		nm := WavelengthStart + float64(i)*step
		xb, yb, zb := CIEXYZBar(nm)
		v := b.values[i]
		x += v * xb
		y += v * yb
		z += v * zb
	}
	norm := step
	return XYZ{X: x * norm, Y: y * norm, Z: z * norm}
}

// BlackbodyWhitePoint converts a color temperature directly to a
// white-balanced RGB white point, the primitive the original renderer's
// white-balance image-pipeline plugin builds on (see SPEC_FULL.md's
// supplemented features). normalize scales the result so its max channel
// is 1.
func BlackbodyWhitePoint(kelvin float64, cs *ColorSystem, normalize bool) RGB {
	bb := NewBlackbodySPD(kelvin)
	xyz := bb.XYZ()
	rgb := cs.ToRGBConstrained(xyz)
	if !normalize {
		return rgb
	}
	maxC := rgb.MaxComponent()
	if maxC <= 0 {
		return rgb
	}
	return rgb.Scale(1 / maxC)
}
