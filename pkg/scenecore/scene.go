// Package scenecore holds the abstract scene, camera, and light contracts
// the path tracer and bidirectional integrator render against. The
// integrators see geometry only through the Scene interface's Intersect
// method; the package's one concrete implementation is the sphere-only
// RefScene (with SphereObject and SphereLight).
package scenecore

import (
	"github.com/lumenpath/lumenpath/pkg/bsdf"
	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/spectral"
	"github.com/lumenpath/lumenpath/pkg/volume"
)

type Spectrum = spectral.SWC

// Scene is the external collaborator an integrator queries for geometry,
// light, and volume state. Intersect folds in volume scattering and
// pass-through surface traversal so integrators never see those
// intermediate events directly.
type Scene interface {
	// Intersect walks ray until it hits a shading surface, escapes to
	// infinity, or is absorbed by a medium. It integrates any volume
	// Scatter along the way, advances through pass-through surfaces
	// (material alpha cutout or volume-priority override), and
	// accumulates volume emission. connectionThroughput multiplies the
	// caller's running throughput; emission is additive radiance gathered
	// along the segment (volume emission, not the hit surface's own). sw
	// is the calling sample's hero wavelengths, stamped onto the returned
	// HitPoint: a Scene is shared across concurrent render workers
	// drawing independent wavelength sets per sample, so it cannot cache
	// its own.
	Intersect(ray geom.Ray, uPassThrough float64, volInfo *volume.PathVolumeInfo, sw *spectral.SpectrumWavelengths) (hit *bsdf.HitPoint, material bsdf.Material, connectionThroughput Spectrum, emission Spectrum, ok bool)

	// LightPdfForHit looks up the Light a just-hit emissive surface
	// belongs to and returns its solid-angle direct pdf from fromPoint
	// plus its selection probability under the active LightStrategy, for
	// MIS weighting against the BSDF pdf that produced the hit. ok is
	// false when the hit surface isn't registered as a scene light (an
	// emissive material with no corresponding Light, e.g. a purely
	// emissive backdrop mesh).
	LightPdfForHit(hit bsdf.HitPoint, fromPoint geom.Vec3) (directPdfW, pickPdf float64, ok bool)

	Lights() []Light
	LightStrategy() LightStrategy
	Camera() Camera

	// DefaultVolume is the medium outside any explicit Volume object,
	// nil for vacuum.
	DefaultVolume() volume.Volume
}

// Camera generates primary rays from film-plane/lens samples.
type Camera interface {
	GenerateRay(filmX, filmY, lensU, lensV, time float64) geom.Ray
}

// Light is the abstract emitter contract: both finite (area/point) and
// infinite (environment) lights implement it, distinguished by IsInfinite.
type Light interface {
	IsInfinite() bool
	IsDelta() bool

	// Illuminate samples this light toward point, returning incident
	// radiance, the direction from point to the light, the distance,
	// the direct (solid-angle) pdf, the emission pdf (for BDPT), and the
	// cosine at the light surface. sw is the calling sample's hero
	// wavelengths: a Light is shared across concurrent render workers
	// drawing independent wavelength sets per sample, so it must build
	// radiance against the caller's sw rather than one of its own.
	Illuminate(scene Scene, point geom.Vec3, u0, u1, u2 float64, sw *spectral.SpectrumWavelengths) (radiance Spectrum, dir geom.Vec3, dist float64, directPdfW float64, emissionPdfW float64, cosAtLight float64, ok bool)

	// DirectPdf returns the solid-angle pdf of sampling dir from point via
	// Illuminate, for MIS against a BSDF-sampled direction that happens to
	// hit this light.
	DirectPdf(scene Scene, point geom.Vec3, dir geom.Vec3) float64

	// Emit evaluates environment radiance in the given ray direction; for
	// finite lights this is never called directly (they are hit as
	// ordinary geometry with an emissive material instead).
	Emit(ray geom.Ray, sw *spectral.SpectrumWavelengths) Spectrum

	// SampleEmission samples an emission point and outgoing direction from
	// this light independently of any receiving point, the light-subpath
	// seed a bidirectional integrator needs. areaPdf is the pdf of the
	// emission point with respect to area (or solid angle, for an infinite
	// light); dirPdf is the pdf of the sampled direction given that point.
	SampleEmission(u0, u1, u2, u3 float64, sw *spectral.SpectrumWavelengths) (ray geom.Ray, normal geom.Vec3, emission Spectrum, areaPdf, dirPdf float64)

	// EmissionPdf returns the area pdf of sampling point as an emission
	// origin and dir as the emitted direction via SampleEmission, used by
	// the reverse-density bookkeeping a bidirectional connection's MIS
	// weight depends on.
	EmissionPdf(point geom.Vec3, dir geom.Vec3) float64
}

// LightStrategy picks which light to sample for direct lighting at a
// shading point, returning the light and the probability it was picked.
type LightStrategy interface {
	SampleLights(u float64) (light Light, pickPdf float64)
	PickPdf(light Light) float64
}
