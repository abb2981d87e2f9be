package bsdf

import (
	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/spectral"
)

// Event is a bit-flag classification of a BSDF sample or evaluation,
// combining a lobe type with a transport direction.
type Event int

const (
	Diffuse Event = 1 << iota
	Glossy
	Specular
	Reflect
	Transmit
)

// Has reports whether e contains all the bits in mask.
func (e Event) Has(mask Event) bool { return e&mask == mask }

// IsSpecular reports whether e is a delta-distribution event, meaning it
// has no multiple-importance-sampling partner.
func (e Event) IsSpecular() bool { return e.Has(Specular) }

// HitPoint carries everything a Material needs about the shading point:
// position, shading/geometric normal, and the interior/exterior volumes
// populated by SetHitPointVolumes.
type HitPoint struct {
	Point           geom.Vec3
	ShadingNormal   geom.Vec3
	GeometricNormal geom.Vec3
	FrontFace       bool

	InteriorVolume Volume
	ExteriorVolume Volume

	Wavelengths *spectral.SpectrumWavelengths
}

// Volume is the minimal surface of pkg/volume a BSDF needs to reference
// without importing it, avoiding an import cycle between bsdf and volume.
type Volume interface {
	Priority() int
}

// Material is the BSDF contract every concrete material implements:
// directions wi/wo are both unit vectors pointing away from the surface
// (wi toward the light/incoming side, wo toward the eye/outgoing side),
// matching the light-transport convention used throughout this package.
type Material interface {
	// Evaluate returns the BSDF value f, its forward solid-angle pdf pdfW,
	// the reverse pdf revPdfW (wi/wo swapped, used by bidirectional
	// connection weights), and the event describing the lobe(s)
	// contributing. f is zero and event is unset when wi/wo are not
	// connected by any lobe.
	Evaluate(hit HitPoint, wi, wo geom.Vec3) (f Spectrum, pdfW, revPdfW float64, event Event)

	// Sample draws an outgoing direction wo given a fixed incoming
	// direction wi, returning f·|cos wo| already divided by pdfW
	// (matching the teacher's ScatterResult.Attenuation convention),
	// the sampled direction, its pdf, and the sampled event.
	Sample(hit HitPoint, wi geom.Vec3, u1, u2, uPassThrough float64) (f Spectrum, wo geom.Vec3, pdfW float64, event Event)

	// Pdf returns the forward and reverse solid-angle pdfs for an already
	// known (wi, wo) pair without re-evaluating f.
	Pdf(hit HitPoint, wi, wo geom.Vec3) (pdfW, revPdfW float64)

	// IsDelta reports whether every lobe of this material is a delta
	// distribution (mirror, dielectric): direct-light sampling must be
	// skipped entirely for delta materials since Evaluate always returns
	// zero pdf for a non-degenerate direction pair.
	IsDelta() bool

	// IsPassThrough reports whether this material is an alpha cutout that
	// lets geometry-less rays continue through unscattered.
	IsPassThrough() bool

	// GetPassThroughTransparency returns the cutout transparency (0..1)
	// used to decide whether a pass-through event fires for sample u.
	GetPassThroughTransparency(hit HitPoint, wi geom.Vec3, u float64) Spectrum

	// IsLightSource reports whether this material emits.
	IsLightSource() bool

	// GetEmittedRadiance returns emitted radiance toward wo, zero for
	// non-emissive materials.
	GetEmittedRadiance(hit HitPoint, wo geom.Vec3) Spectrum
}

// SetHitPointVolumes fills interior/exterior on hp from the material's own
// volumes, falling back to defaultVolume (the scene-default medium) when
// the material leaves a side unset.
func SetHitPointVolumes(hp *HitPoint, interior, exterior, defaultVolume Volume) {
	if interior != nil {
		hp.InteriorVolume = interior
	} else {
		hp.InteriorVolume = defaultVolume
	}
	if exterior != nil {
		hp.ExteriorVolume = exterior
	} else {
		hp.ExteriorVolume = defaultVolume
	}
}
