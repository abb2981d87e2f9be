package spectral

import "gonum.org/v1/gonum/mat"

// InterpolationMethod selects how IrregularSPD fills the gaps between its
// user-supplied samples when resampling onto a uniform grid.
type InterpolationMethod int

const (
	InterpolateLinear InterpolationMethod = iota
	InterpolateCubicSpline
)

// IrregularPoint is one (wavelength, value) sample of a user-supplied,
// non-uniformly-spaced SPD.
type IrregularPoint struct {
	NM    float64
	Value float64
}

// IrregularSPD resamples a user-supplied (λ_i, v_i) pair list to a uniform
// grid of `resolution` samples via linear interpolation or a natural cubic
// spline. Samples outside the original domain are zero.
type IrregularSPD struct {
	startNM, endNM float64
	values         []float64
}

// NewIrregularSPD builds an IrregularSPD. points must be sorted by
// ascending NM.
func NewIrregularSPD(points []IrregularPoint, resolution int, method InterpolationMethod) *IrregularSPD {
	if len(points) == 0 || resolution < 2 {
		return &IrregularSPD{}
	}

	startNM, endNM := points[0].NM, points[len(points)-1].NM
	values := make([]float64, resolution)
	step := (endNM - startNM) / float64(resolution-1)

	var spline *naturalCubicSpline
	if method == InterpolateCubicSpline && len(points) >= 3 {
		spline = newNaturalCubicSpline(points)
	}

	for i := 0; i < resolution; i++ {
		nm := startNM + float64(i)*step
		if spline != nil {
			values[i] = spline.eval(nm)
		} else {
			values[i] = linearInterp(points, nm)
		}
	}

	return &IrregularSPD{startNM: startNM, endNM: endNM, values: values}
}

func (s *IrregularSPD) Sample(nm float64) float64 {
	if len(s.values) == 0 || nm < s.startNM || nm > s.endNM {
		return 0
	}
	if len(s.values) == 1 {
		return s.values[0]
	}
	step := (s.endNM - s.startNM) / float64(len(s.values)-1)
	pos := (nm - s.startNM) / step
	i0 := int(pos)
	if i0 >= len(s.values)-1 {
		return s.values[len(s.values)-1]
	}
	t := pos - float64(i0)
	return s.values[i0]*(1-t) + s.values[i0+1]*t
}

func linearInterp(points []IrregularPoint, nm float64) float64 {
	if nm <= points[0].NM {
		return points[0].Value
	}
	last := len(points) - 1
	if nm >= points[last].NM {
		return points[last].Value
	}
	for i := 0; i < last; i++ {
		if nm >= points[i].NM && nm <= points[i+1].NM {
			span := points[i+1].NM - points[i].NM
			if span == 0 {
				return points[i].Value
			}
			t := (nm - points[i].NM) / span
			return points[i].Value*(1-t) + points[i+1].Value*t
		}
	}
	return 0
}

// naturalCubicSpline holds per-segment second-derivative coefficients
// solved via the tridiagonal system built from the sample points, using
// gonum/mat to perform the dense LU solve.
type naturalCubicSpline struct {
	points []IrregularPoint
	m      []float64 // second derivative at each knot
}

func newNaturalCubicSpline(points []IrregularPoint) *naturalCubicSpline {
	n := len(points)
	h := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = points[i+1].NM - points[i].NM
	}

	// Build the tridiagonal system for interior knots 1..n-2; natural
	// boundary conditions pin M[0] = M[n-1] = 0.
	interior := n - 2
	m := make([]float64, n)
	if interior <= 0 {
		return &naturalCubicSpline{points: points, m: m}
	}

	a := mat.NewDense(interior, interior, nil)
	b := mat.NewDense(interior, 1, nil)

	for row := 0; row < interior; row++ {
		i := row + 1
		a.Set(row, row, 2*(h[i-1]+h[i]))
		if row > 0 {
			a.Set(row, row-1, h[i-1])
		}
		if row < interior-1 {
			a.Set(row, row+1, h[i])
		}
		rhs := 6 * ((points[i+1].Value-points[i].Value)/h[i] - (points[i].Value-points[i-1].Value)/h[i-1])
		b.Set(row, 0, rhs)
	}

	var x mat.Dense
	if err := x.Solve(a, b); err != nil {
		// A singular tridiagonal system means degenerate (repeated or
		// unsorted) wavelength samples; fall back to a flat spline rather
		// than panicking on malformed scene data.
		return &naturalCubicSpline{points: points, m: m}
	}
	for row := 0; row < interior; row++ {
		m[row+1] = x.At(row, 0)
	}

	return &naturalCubicSpline{points: points, m: m}
}

func (s *naturalCubicSpline) eval(nm float64) float64 {
	n := len(s.points)
	if nm <= s.points[0].NM {
		return s.points[0].Value
	}
	if nm >= s.points[n-1].NM {
		return s.points[n-1].Value
	}
	for i := 0; i < n-1; i++ {
		x0, x1 := s.points[i].NM, s.points[i+1].NM
		if nm < x0 || nm > x1 {
			continue
		}
		h := x1 - x0
		if h == 0 {
			return s.points[i].Value
		}
		a := (x1 - nm) / h
		b := (nm - x0) / h
		y0, y1 := s.points[i].Value, s.points[i+1].Value
		m0, m1 := s.m[i], s.m[i+1]
		return a*y0 + b*y1 +
			((a*a*a-a)*m0+(b*b*b-b)*m1)*(h*h)/6
	}
	return 0
}
