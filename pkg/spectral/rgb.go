package spectral

import "math"

// RGB is a three-channel linear color triple, adapted from the teacher's
// Vec3 color arithmetic but kept distinct from geom.Vec3 so the spectral
// core's gamut and luminance operations stay self-contained.
type RGB struct {
	R, G, B float64
}

func NewRGB(r, g, b float64) RGB { return RGB{r, g, b} }

func (c RGB) Add(o RGB) RGB      { return RGB{c.R + o.R, c.G + o.G, c.B + o.B} }
func (c RGB) Sub(o RGB) RGB      { return RGB{c.R - o.R, c.G - o.G, c.B - o.B} }
func (c RGB) Mul(o RGB) RGB      { return RGB{c.R * o.R, c.G * o.G, c.B * o.B} }
func (c RGB) Scale(k float64) RGB { return RGB{c.R * k, c.G * k, c.B * k} }

// Luminance uses Rec.709 luminance weights, matching the teacher's
// Vec3.Luminance used throughout the integrator for Russian roulette.
func (c RGB) Luminance() float64 { return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B }

func (c RGB) Black() bool { return c.R == 0 && c.G == 0 && c.B == 0 }

func (c RGB) IsFinite() bool {
	return !math.IsNaN(c.R) && !math.IsNaN(c.G) && !math.IsNaN(c.B) &&
		!math.IsInf(c.R, 0) && !math.IsInf(c.G, 0) && !math.IsInf(c.B, 0)
}

func (c RGB) Clamp(lo, hi float64) RGB {
	return RGB{math.Min(hi, math.Max(lo, c.R)), math.Min(hi, math.Max(lo, c.G)), math.Min(hi, math.Max(lo, c.B))}
}

func (c RGB) MaxComponent() float64 { return math.Max(c.R, math.Max(c.G, c.B)) }

// LimitMethod selects how an out-of-[0,1] RGB triple returned by
// ColorSystem.ToRGB is brought back into range.
type LimitMethod int

const (
	LimitClamp LimitMethod = iota
	LimitDesaturate
	LimitScale
)

// Limit handles a super-bright RGB: clamp each channel, preserve
// luminance by desaturating toward gray, or scale all channels down by the
// max component.
func (c RGB) Limit(method LimitMethod) RGB {
	switch method {
	case LimitDesaturate:
		maxC := c.MaxComponent()
		if maxC <= 1 {
			return c.Clamp(0, 1)
		}
		y := c.Luminance()
		gray := RGB{y, y, y}
		// Desaturate toward gray just enough that the max component hits 1,
		// which keeps luminance close to the original value.
		if maxC == y {
			return gray.Clamp(0, 1)
		}
		t := (1 - y) / (maxC - y)
		t = math.Min(1, math.Max(0, t))
		out := RGB{
			R: gray.R + t*(c.R-gray.R),
			G: gray.G + t*(c.G-gray.G),
			B: gray.B + t*(c.B-gray.B),
		}
		return out.Clamp(0, 1)
	case LimitScale:
		maxC := c.MaxComponent()
		if maxC <= 1 {
			return c.Clamp(0, 1)
		}
		return c.Scale(1 / maxC)
	default:
		return c.Clamp(0, 1)
	}
}

// NewSWCFromRGB reconstructs a spectral sample from an RGB triple using the
// Smits (1999) min/med/max decomposition over white/cyan/magenta/yellow/
// red/green/blue basis SPDs.
func NewSWCFromRGB(sw *SpectrumWavelengths, rgb RGB) SWC {
	s := SWC{n: sw.ActiveCount()}
	if sw.IsSingle() {
		s.c[0] = rgbToSpectrumSample(rgb, sw.Wavelengths[sw.SingleIndex()])
		return s
	}
	for i := 0; i < s.n; i++ {
		s.c[i] = rgbToSpectrumSample(rgb, sw.Wavelengths[i])
	}
	return s
}

// ToXYZ converts a SWC spectrum to CIE XYZ by projecting onto the CIE
// matching functions at the sample's own wavelengths and averaging over the
// active samples.
func ToXYZ(sw *SpectrumWavelengths, s SWC) XYZ {
	if s.n == 0 {
		return XYZ{}
	}
	var x, y, z float64
	count := s.n
	if sw.IsSingle() {
		nm := sw.Wavelengths[sw.SingleIndex()]
		xb, yb, zb := CIEXYZBar(nm)
		return XYZ{X: s.c[0] * xb, Y: s.c[0] * yb, Z: s.c[0] * zb}
	}
	for i := 0; i < count; i++ {
		xb, yb, zb := CIEXYZBar(sw.Wavelengths[i])
		x += s.c[i] * xb
		y += s.c[i] * yb
		z += s.c[i] * zb
	}
	norm := 1.0 / float64(count)
	return XYZ{X: x * norm, Y: y * norm, Z: z * norm}
}
