// Package bdpt implements bidirectional path tracing: a camera subpath and
// a light subpath are traced independently and then joined at every
// (s,t) vertex pair the teacher's unidirectional pathtracer.Integrator
// can't reach on its own, each connection weighted by multiple importance
// sampling across every other way that same light path could have been
// found.
package bdpt

import (
	"github.com/lumenpath/lumenpath/pkg/bsdf"
	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/scenecore"
	"github.com/lumenpath/lumenpath/pkg/spectral"
)

type Spectrum = spectral.SWC

// Vertex is one node of a camera or light subpath: either the camera
// itself, a light origin, a surface hit, or an escaped ray treated as
// hitting the scene's infinite lights.
type Vertex struct {
	Point  geom.Vec3
	Normal geom.Vec3

	Material bsdf.Material // nil for camera/light/infinite vertices
	Hit      bsdf.HitPoint // valid iff Material != nil
	Light    scenecore.Light

	// IncomingDirection points back toward the previous vertex on this
	// subpath (toward the camera on a camera subpath, toward the light
	// origin on a light subpath).
	IncomingDirection geom.Vec3

	IsCamera   bool
	IsLight    bool
	IsInfinite bool
	IsSpecular bool

	// AreaPdfForward is the pdf, with respect to area at this vertex, of
	// having sampled it from the previous vertex on its own subpath.
	// AreaPdfReverse is the pdf of the reverse walk (this vertex sampled
	// from its successor), filled in as the subpath is generated and
	// overridden per strategy by mis.go during connection.
	AreaPdfForward float64
	AreaPdfReverse float64

	// Beta is the subpath throughput accumulated up to and including
	// this vertex (BSDF/emission values already divided by the pdfs that
	// produced them).
	Beta Spectrum

	// EmittedLight is this vertex's own emission toward IncomingDirection
	// (zero for non-emissive surface hits and light subpath continuation
	// vertices).
	EmittedLight Spectrum
}

// Path is one subpath: Vertices[0] is the camera or light origin.
type Path struct {
	Vertices []Vertex
}

func (p *Path) Len() int { return len(p.Vertices) }

// ConvertDensity converts the solid-angle pdf pdfDir of sampling next from
// v into an area-measure pdf at next, PBRT's Vertex::ConvertDensity: a
// bidirectional connection weight needs every subpath's pdfs expressed in
// the same measure before they can be compared and summed.
func (v *Vertex) ConvertDensity(next *Vertex, pdfDir float64) float64 {
	if next.IsInfinite {
		return pdfDir
	}
	d := next.Point.Subtract(v.Point)
	dist2 := d.LengthSquared()
	if dist2 == 0 {
		return 0
	}
	invDist2 := 1 / dist2
	pdf := pdfDir * invDist2
	if next.Material != nil {
		w := d.Multiply(1 / d.Length())
		pdf *= w.AbsDot(next.Normal)
	}
	return pdf
}
