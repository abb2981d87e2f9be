package film

import "math"

// FilterType selects the reconstruction filter a Film uses to splat a
// sample's radiance across the pixels it overlaps.
type FilterType int

const (
	FilterBox FilterType = iota
	FilterGaussian
	FilterMitchell
	FilterMitchellSS
	FilterBlackmanHarris
)

// Filter evaluates a 2D pixel-reconstruction kernel centered at the origin,
// zero outside [-Width,Width] on each axis.
type Filter interface {
	Evaluate(dx, dy float64) float64
	Width() float64
}

// BoxFilter is the trivial constant-weight filter.
type BoxFilter struct{ W float64 }

func NewBoxFilter() *BoxFilter { return &BoxFilter{W: 0.5} }

func (f *BoxFilter) Width() float64 { return f.W }

func (f *BoxFilter) Evaluate(dx, dy float64) float64 {
	if math.Abs(dx) > f.W || math.Abs(dy) > f.W {
		return 0
	}
	return 1
}

// GaussianFilter is a Gaussian falloff clipped at Width and offset so it
// reaches zero at the boundary rather than discontinuing abruptly.
type GaussianFilter struct {
	W     float64
	Alpha float64
	expX  float64
}

func NewGaussianFilter(width, alpha float64) *GaussianFilter {
	return &GaussianFilter{W: width, Alpha: alpha, expX: math.Exp(-alpha * width * width)}
}

func (f *GaussianFilter) Width() float64 { return f.W }

func (f *GaussianFilter) gaussian(d float64) float64 {
	v := math.Exp(-f.Alpha*d*d) - f.expX
	if v < 0 {
		return 0
	}
	return v
}

func (f *GaussianFilter) Evaluate(dx, dy float64) float64 {
	if math.Abs(dx) > f.W || math.Abs(dy) > f.W {
		return 0
	}
	return f.gaussian(dx) * f.gaussian(dy)
}

// MitchellFilter is the Mitchell-Netravali cubic reconstruction filter,
// parameterized by the usual B/C ringing-vs-blur tradeoff coefficients.
type MitchellFilter struct {
	W    float64
	B, C float64
}

func NewMitchellFilter(width, b, c float64) *MitchellFilter {
	return &MitchellFilter{W: width, B: b, C: c}
}

func (f *MitchellFilter) Width() float64 { return f.W }

func (f *MitchellFilter) mitchell1D(x float64) float64 {
	x = math.Abs(2 * x / f.W)
	b, c := f.B, f.C
	if x > 1 {
		return ((-b-6*c)*x*x*x + (6*b+30*c)*x*x + (-12*b-48*c)*x + (8*b + 24*c)) * (1.0 / 6.0)
	}
	return ((12-9*b-6*c)*x*x*x + (-18+12*b+6*c)*x*x + (6 - 2*b)) * (1.0 / 6.0)
}

func (f *MitchellFilter) Evaluate(dx, dy float64) float64 {
	if math.Abs(dx) > f.W || math.Abs(dy) > f.W {
		return 0
	}
	return f.mitchell1D(dx) * f.mitchell1D(dy)
}

// MitchellSSFilter is the super-sampled variant: it evaluates the same
// cubic kernel at a jittered 3x3 grid of sub-positions and averages, which
// softens the ringing the plain Mitchell filter produces on sharp edges.
type MitchellSSFilter struct {
	base *MitchellFilter
}

func NewMitchellSSFilter(width, b, c float64) *MitchellSSFilter {
	return &MitchellSSFilter{base: NewMitchellFilter(width, b, c)}
}

func (f *MitchellSSFilter) Width() float64 { return f.base.W }

func (f *MitchellSSFilter) Evaluate(dx, dy float64) float64 {
	const n = 3
	step := f.base.W / (2 * n)
	sum := 0.0
	for i := -n / 2; i <= n/2; i++ {
		for j := -n / 2; j <= n/2; j++ {
			sum += f.base.Evaluate(dx+float64(i)*step, dy+float64(j)*step)
		}
	}
	return sum / (n * n)
}

// BlackmanHarrisFilter is a 4-term Blackman-Harris window used as a
// low-ringing reconstruction kernel.
type BlackmanHarrisFilter struct{ W float64 }

func NewBlackmanHarrisFilter(width float64) *BlackmanHarrisFilter {
	return &BlackmanHarrisFilter{W: width}
}

func (f *BlackmanHarrisFilter) Width() float64 { return f.W }

func (f *BlackmanHarrisFilter) window1D(x float64) float64 {
	t := (x/f.W + 1) * 0.5 // map [-W,W] -> [0,1]
	if t < 0 || t > 1 {
		return 0
	}
	const a0, a1, a2, a3 = 0.35875, 0.48829, 0.14128, 0.01168
	w := 2 * math.Pi * t
	return a0 - a1*math.Cos(w) + a2*math.Cos(2*w) - a3*math.Cos(3*w)
}

func (f *BlackmanHarrisFilter) Evaluate(dx, dy float64) float64 {
	if math.Abs(dx) > f.W || math.Abs(dy) > f.W {
		return 0
	}
	return f.window1D(dx) * f.window1D(dy)
}

// NewFilter builds the concrete Filter for a FilterType with its usual
// default parameters.
func NewFilter(t FilterType, width float64) Filter {
	switch t {
	case FilterGaussian:
		return NewGaussianFilter(width, 2.0)
	case FilterMitchell:
		return NewMitchellFilter(width, 1.0/3.0, 1.0/3.0)
	case FilterMitchellSS:
		return NewMitchellSSFilter(width, 1.0/3.0, 1.0/3.0)
	case FilterBlackmanHarris:
		return NewBlackmanHarrisFilter(width)
	default:
		return NewBoxFilter()
	}
}

// FilterLUT precomputes a filter's weight at a sub-pixel quantized grid so
// SplatFiltered never evaluates the filter function at splat time. The
// table is indexed by (sub-x, sub-y) where sub-position is the fractional
// offset from the sample to the nearest pixel center, quantized into
// subRes steps per axis.
type FilterLUT struct {
	filter Filter
	subRes int
	width  float64
	lutW   int
	table  []float64
}

// NewFilterLUT builds a LUT of width 2*ceil(filter.Width()+1) pixels, each
// entry itself a subRes x subRes grid of sub-pixel offsets. subRes must be
// at least 4 to keep quantization error well below sampling noise.
func NewFilterLUT(filter Filter, subRes int) *FilterLUT {
	if subRes < 4 {
		subRes = 4
	}
	w := filter.Width()
	lutW := int(math.Ceil(w+1)) * 2
	table := make([]float64, lutW*lutW*subRes*subRes)

	lut := &FilterLUT{filter: filter, subRes: subRes, width: w, lutW: lutW, table: table}
	for sy := 0; sy < subRes; sy++ {
		for sx := 0; sx < subRes; sx++ {
			fracX := (float64(sx)+0.5)/float64(subRes) - 0.5
			fracY := (float64(sy)+0.5)/float64(subRes) - 0.5
			for py := 0; py < lutW; py++ {
				for px := 0; px < lutW; px++ {
					dx := float64(px-lutW/2) - fracX
					dy := float64(py-lutW/2) - fracY
					lut.table[lut.index(sx, sy, px, py)] = filter.Evaluate(dx, dy)
				}
			}
		}
	}
	return lut
}

func (l *FilterLUT) index(sx, sy, px, py int) int {
	return ((sy*l.subRes+sx)*l.lutW+py)*l.lutW + px
}

// Width returns the LUT's full width in whole pixels.
func (l *FilterLUT) Width() int { return l.lutW }

// Lookup returns the filter weight for the LUT cell (px,py) within the
// sub-pixel quantization bucket (sx,sy), both 0-based.
func (l *FilterLUT) Lookup(sx, sy, px, py int) float64 {
	if px < 0 || px >= l.lutW || py < 0 || py >= l.lutW {
		return 0
	}
	return l.table[l.index(sx, sy, px, py)]
}

// SubRes is the sub-pixel quantization resolution per axis.
func (l *FilterLUT) SubRes() int { return l.subRes }
