package bdpt

import (
	"math"
)

// PowerHeuristic is the standard two-sample power-2 MIS weight, shared
// with the unidirectional path tracer's direct-lighting weighting.
func PowerHeuristic(fPdf, gPdf float64) float64 {
	f2 := fPdf * fPdf
	g2 := gPdf * gPdf
	if f2+g2 == 0 {
		return 0
	}
	return f2 / (f2 + g2)
}

// remap0 treats a zero density as 1 so a ratio against it contributes
// nothing to the MIS sum instead of dividing by zero, PBRT's Vertex::Pdf
// convention for delta vertices.
func remap0(f float64) float64 {
	if f != 0 {
		return f
	}
	return 1
}

// vertexPdf returns the area pdf, as seen at curr, of sampling to as
// curr's successor, given curr's own predecessor prev (nil if curr is a
// path origin). Used to recompute the reverse density a connection
// strategy implies at a vertex that wasn't generated with that
// neighbor, PBRT's Vertex::Pdf.
func vertexPdf(curr Vertex, prev *Vertex, to Vertex) float64 {
	if curr.IsLight {
		return lightPdf(curr, to)
	}

	d := to.Point.Subtract(curr.Point)
	if d.LengthSquared() == 0 {
		return 0
	}
	wTo := d.Multiply(1 / d.Length())

	var pdf float64
	if curr.IsCamera {
		pdf = 1.0 // no Camera.DirectionPdf in this contract; see DESIGN.md
	} else if curr.Material != nil {
		var wFrom = curr.IncomingDirection
		if prev != nil {
			pd := prev.Point.Subtract(curr.Point)
			if pd.LengthSquared() == 0 {
				return 0
			}
			wFrom = pd.Multiply(1 / pd.Length())
		}
		pdfW, _ := curr.Material.Pdf(curr.Hit, wFrom, wTo)
		pdf = pdfW
	} else {
		return 0
	}
	return curr.ConvertDensity(&to, pdf)
}

// lightPdf is vertexPdf's light-vertex case: the area pdf, as seen from
// light vertex curr, of emitting toward to.
func lightPdf(curr Vertex, to Vertex) float64 {
	if curr.Light == nil {
		return 0
	}
	d := to.Point.Subtract(curr.Point)
	dist2 := d.LengthSquared()
	if dist2 == 0 {
		return 0
	}
	invDist2 := 1 / dist2
	w := d.Multiply(math.Sqrt(invDist2))

	dirPdf := curr.Light.EmissionPdf(curr.Point, w)
	pdf := dirPdf * invDist2
	if to.Material != nil {
		pdf *= w.AbsDot(to.Normal)
	}
	return pdf
}

// lightOriginPdf approximates the positional (area x selection) pdf a
// light vertex would have carried had it been the light subpath's own
// first vertex, reusing the camera-path vertex's BSDF-sampling forward
// density rather than recomputing the light's true emission-area pdf at
// that point (scenecore.Light has no standalone area-pdf query, only
// SampleEmission and EmissionPdf). This makes the s=0 strategy's MIS
// weight an approximation rather than an exact balance-heuristic term;
// see DESIGN.md.
func lightOriginPdf(lightVertex Vertex) float64 {
	if !lightVertex.IsLight {
		return 0
	}
	return lightVertex.AreaPdfForward
}

// calculateMISWeight computes the balance-heuristic weight for the (s,t)
// strategy that produced cameraPath[:t] and lightPath[:s], recomputing
// the reverse densities the actual connection implies at the four
// vertices adjacent to it (qs, qsMinus, pt, ptMinus) without mutating
// either path, then summing density ratios out along both subpaths per
// Veach's multi-strategy MIS, PBRT's BDPTIntegrator::MIS. sampledVertex
// replaces lightPath's single vertex when s==1, since the s=1 strategy
// samples its own point via direct lighting rather than reusing the
// subpath vertex generateLightSubpath produced.
func calculateMISWeight(cameraPath, lightPath Path, sampledVertex *Vertex, s, t int) float64 {
	if s+t == 2 {
		return 1
	}

	if s == 0 {
		last := cameraPath.Vertices[t-1]
		if last.IsInfinite {
			return 1
		}
	}

	var qs, pt, qsMinus, ptMinus *Vertex
	if t > 0 {
		pt = &cameraPath.Vertices[t-1]
	}
	if t > 1 {
		ptMinus = &cameraPath.Vertices[t-2]
	}
	if s > 1 {
		qsMinus = &lightPath.Vertices[s-2]
	}
	if s == 1 && sampledVertex != nil {
		qs = sampledVertex
	} else if s > 0 {
		qs = &lightPath.Vertices[s-1]
	}

	ptDelta, qsDelta := false, false
	if pt != nil {
		ptDelta = pt.IsSpecular
	}
	if qs != nil {
		qsDelta = qs.IsSpecular
	}

	var ptRev, ptMinusRev, qsRev, qsMinusRev float64
	if pt != nil {
		if qs != nil {
			ptRev = vertexPdf(*qs, qsMinus, *pt)
		} else {
			ptRev = lightOriginPdf(*pt)
		}
	}
	if ptMinus != nil && pt != nil {
		if qs != nil {
			ptMinusRev = vertexPdf(*pt, qs, *ptMinus)
		} else {
			ptMinusRev = lightPdf(*pt, *ptMinus)
		}
	}
	if qs != nil && pt != nil {
		qsRev = vertexPdf(*pt, ptMinus, *qs)
	}
	if qsMinus != nil && qs != nil && pt != nil {
		qsMinusRev = vertexPdf(*qs, pt, *qsMinus)
	}

	sumRi := 0.0

	ri := 1.0
	for i := t - 1; i > 0; i-- {
		v := cameraPath.Vertices[i]
		fwd := v.AreaPdfForward
		var rev float64
		switch i {
		case t - 1:
			rev = ptRev
		case t - 2:
			rev = ptMinusRev
		default:
			rev = v.AreaPdfReverse
		}
		ri *= remap0(rev) / remap0(fwd)

		vSpecular := v.IsSpecular
		if i == t-1 {
			vSpecular = ptDelta
		}
		prevSpecular := cameraPath.Vertices[i-1].IsSpecular
		if i-1 == t-1 {
			prevSpecular = ptDelta
		}
		if !vSpecular && !prevSpecular {
			sumRi += ri
		}
	}

	ri = 1.0
	for i := s - 1; i >= 0; i-- {
		var v Vertex
		if i == s-1 && qs != nil {
			v = *qs
		} else {
			v = lightPath.Vertices[i]
		}
		fwd := v.AreaPdfForward
		var rev float64
		switch i {
		case s - 1:
			rev = qsRev
		case s - 2:
			rev = qsMinusRev
		default:
			rev = v.AreaPdfReverse
		}
		ri *= remap0(rev) / remap0(fwd)

		vSpecular := v.IsSpecular
		if i == s-1 {
			vSpecular = qsDelta
		}
		deltaPrev := false
		if i > 0 {
			deltaPrev = lightPath.Vertices[i-1].IsSpecular
		}
		if !vSpecular && !deltaPrev {
			sumRi += ri
		}
	}

	return 1 / (1 + sumRi)
}
