package spectral

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ColorSystem stores the CIE-xy primaries and white point of an RGB working
// space and derives the RGB<->XYZ conversion matrices from them.
// The 3x3 linear algebra is done with gonum/mat rather than hand-unrolled
// determinant formulas, the numerical library the retrieved pack surfaces
// for exactly this kind of small dense solve.
type ColorSystem struct {
	RedX, RedY     float64
	GreenX, GreenY float64
	BlueX, BlueY   float64
	WhiteX, WhiteY float64

	toXYZ *mat.Dense
	toRGB *mat.Dense
}

// SRGB is the standard sRGB/Rec.709 color system with a D65 white point.
func SRGB() *ColorSystem {
	return NewColorSystem(0.6400, 0.3300, 0.3000, 0.6000, 0.1500, 0.0600, 0.3127, 0.3290)
}

// NewColorSystem builds the RGB<->XYZ conversion matrices for the given
// primaries and white point chromaticities.
func NewColorSystem(rx, ry, gx, gy, bx, by, wx, wy float64) *ColorSystem {
	cs := &ColorSystem{RedX: rx, RedY: ry, GreenX: gx, GreenY: gy, BlueX: bx, BlueY: by, WhiteX: wx, WhiteY: wy}
	cs.deriveMatrices()
	return cs
}

func (cs *ColorSystem) deriveMatrices() {
	primaries := mat.NewDense(3, 3, []float64{
		cs.RedX, cs.GreenX, cs.BlueX,
		cs.RedY, cs.GreenY, cs.BlueY,
		1 - cs.RedX - cs.RedY, 1 - cs.GreenX - cs.GreenY, 1 - cs.BlueX - cs.BlueY,
	})

	white := XYZFromChromaticity(cs.WhiteX, cs.WhiteY)
	whiteVec := mat.NewVecDense(3, []float64{white.X, white.Y, white.Z})

	var inv mat.Dense
	if err := inv.Inverse(primaries); err != nil {
		// Degenerate (collinear) primaries are a scene-authoring error the
		// caller should have rejected before building a ColorSystem.
		panic("spectral: degenerate color system primaries")
	}

	var scale mat.VecDense
	scale.MulVec(&inv, whiteVec)

	toXYZ := mat.NewDense(3, 3, nil)
	for col := 0; col < 3; col++ {
		s := scale.AtVec(col)
		for row := 0; row < 3; row++ {
			toXYZ.Set(row, col, primaries.At(row, col)*s)
		}
	}
	cs.toXYZ = toXYZ

	toRGB := mat.NewDense(3, 3, nil)
	if err := toRGB.Inverse(toXYZ); err != nil {
		panic("spectral: non-invertible RGB<->XYZ matrix")
	}
	cs.toRGB = toRGB
}

func (cs *ColorSystem) ToXYZ(rgb RGB) XYZ {
	v := mat.NewVecDense(3, []float64{rgb.R, rgb.G, rgb.B})
	var out mat.VecDense
	out.MulVec(cs.toXYZ, v)
	return XYZ{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

func (cs *ColorSystem) ToRGB(xyz XYZ) RGB {
	v := mat.NewVecDense(3, []float64{xyz.X, xyz.Y, xyz.Z})
	var out mat.VecDense
	out.MulVec(cs.toRGB, v)
	return RGB{R: out.AtVec(0), G: out.AtVec(1), B: out.AtVec(2)}
}

// bradfordM and its inverse implement the Bradford chromatic-adaptation
// transform used to re-white-balance a tristimulus value.
var bradfordM = mat.NewDense(3, 3, []float64{
	0.8951, 0.2664, -0.1614,
	-0.7502, 1.7135, 0.0367,
	0.0389, -0.0685, 1.0296,
})

// ChromaticAdaptation maps an XYZ triple adapted to srcWhite into the same
// tristimulus space adapted to dstWhite via the Bradford cone-response
// transform.
func ChromaticAdaptation(xyz, srcWhite, dstWhite XYZ) XYZ {
	var bradfordInv mat.Dense
	if err := bradfordInv.Inverse(bradfordM); err != nil {
		panic("spectral: non-invertible Bradford matrix")
	}

	toCone := func(w XYZ) *mat.VecDense {
		v := mat.NewVecDense(3, []float64{w.X, w.Y, w.Z})
		var cone mat.VecDense
		cone.MulVec(bradfordM, v)
		return &cone
	}
	srcCone, dstCone := toCone(srcWhite), toCone(dstWhite)

	diag := mat.NewDiagDense(3, []float64{
		dstCone.AtVec(0) / srcCone.AtVec(0),
		dstCone.AtVec(1) / srcCone.AtVec(1),
		dstCone.AtVec(2) / srcCone.AtVec(2),
	})

	var m mat.Dense
	m.Mul(&bradfordInv, diag)
	m.Mul(&m, bradfordM)

	v := mat.NewVecDense(3, []float64{xyz.X, xyz.Y, xyz.Z})
	var out mat.VecDense
	out.MulVec(&m, v)
	return XYZ{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

// ToRGBConstrained desaturates an out-of-gamut XYZ toward the white point,
// by intersecting the line through the white point and the requested
// chromaticity with the three Maxwell-triangle edges and converting the
// nearest in-gamut intersection back to RGB, preserving luminance.
func (cs *ColorSystem) ToRGBConstrained(xyz XYZ) RGB {
	rgb := cs.ToRGB(xyz)
	if rgb.R >= 0 && rgb.G >= 0 && rgb.B >= 0 {
		return rgb
	}

	x, y := xyz.Chromaticity()
	wx, wy := cs.WhiteX, cs.WhiteY

	edges := [][2][2]float64{
		{{cs.RedX, cs.RedY}, {cs.GreenX, cs.GreenY}},
		{{cs.GreenX, cs.GreenY}, {cs.BlueX, cs.BlueY}},
		{{cs.BlueX, cs.BlueY}, {cs.RedX, cs.RedY}},
	}

	bestDist := math.Inf(1)
	bestX, bestY := wx, wy
	for _, e := range edges {
		ix, iy, ok := lineSegmentIntersect(wx, wy, x, y, e[0][0], e[0][1], e[1][0], e[1][1])
		if !ok {
			continue
		}
		d := (ix-x)*(ix-x) + (iy-y)*(iy-y)
		if d < bestDist {
			bestDist = d
			bestX, bestY = ix, iy
		}
	}

	clipped := XYZFromChromaticity(bestX, bestY).Scale(xyz.Y)
	return cs.ToRGB(clipped).Clamp(0, math.Inf(1))
}

// lineSegmentIntersect intersects the infinite line through (x1,y1)-(x2,y2)
// with the segment (x3,y3)-(x4,y4).
func lineSegmentIntersect(x1, y1, x2, y2, x3, y3, x4, y4 float64) (float64, float64, bool) {
	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if math.Abs(denom) < 1e-12 {
		return 0, 0, false
	}
	t := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / denom
	u := -((x1-x2)*(y1-y3) - (y1-y2)*(x1-x3)) / denom
	if u < 0 || u > 1 {
		return 0, 0, false
	}
	ix := x1 + t*(x2-x1)
	iy := y1 + t*(y2-y1)
	return ix, iy, true
}
