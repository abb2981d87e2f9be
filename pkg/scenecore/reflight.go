package scenecore

import (
	"math"

	"github.com/lumenpath/lumenpath/pkg/bsdf"
	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/spectral"
)

// SphereLight is a spherical area light: an emissive SphereObject plus the
// direct/emission sampling strategies scenecore.Light requires, grounded
// on the teacher's geometry.SphereLight (visible-cone sampling toward a
// receiving point, uniform sampling when the point is inside the sphere,
// uniform-sphere sampling for the light-subpath emission seed).
type SphereLight struct {
	Object *SphereObject
}

// NewSphereLight wraps shape with an Emissive material radiating emission
// and registers the resulting object as its own Light backref.
func NewSphereLight(shape geom.Sphere, emission Spectrum) *SphereLight {
	obj := NewSphereObject(shape, bsdf.NewEmissive(emission))
	l := &SphereLight{Object: obj}
	obj.Light = l
	return l
}

func (l *SphereLight) IsInfinite() bool { return false }
func (l *SphereLight) IsDelta() bool    { return false }

func (l *SphereLight) emission(hit bsdf.HitPoint, wo geom.Vec3) Spectrum {
	return l.Object.Material.GetEmittedRadiance(hit, wo)
}

// Illuminate samples a point on the light toward point: the cone subtended
// by the sphere as seen from point when point is outside it, or the whole
// sphere uniformly when point is inside.
func (l *SphereLight) Illuminate(scene Scene, point geom.Vec3, u0, u1, u2 float64, sw *spectral.SpectrumWavelengths) (Spectrum, geom.Vec3, float64, float64, float64, float64, bool) {
	shape := l.Object.Shape
	toCenter := shape.Center.Subtract(point)
	distToCenter := toCenter.Length()

	if distToCenter <= shape.Radius {
		return l.illuminateUniform(point, u0, u1, sw)
	}
	return l.illuminateCone(point, distToCenter, toCenter, u0, u1, sw)
}

func (l *SphereLight) illuminateUniform(point geom.Vec3, u0, u1 float64, sw *spectral.SpectrumWavelengths) (Spectrum, geom.Vec3, float64, float64, float64, float64, bool) {
	shape := l.Object.Shape
	localDir := uniformSampleSphere(u0, u1)
	samplePoint := shape.Center.Add(localDir.Multiply(shape.Radius))

	d := samplePoint.Subtract(point)
	dist := d.Length()
	if dist == 0 {
		return spectral.NewSWC(sw, 0), geom.Vec3{}, 0, 0, 0, 0, false
	}
	dir := d.Multiply(1 / dist)
	normal := localDir
	cosAtLight := dir.Negate().AbsDot(normal)

	areaPdf := 1 / shape.Area()
	directPdfW := areaPdf * dist * dist / math.Max(cosAtLight, 1e-9)
	emissionPdfW := cosAtLight / math.Pi

	hit := bsdf.HitPoint{Point: samplePoint, ShadingNormal: normal, Wavelengths: sw}
	radiance := l.emission(hit, dir.Negate())
	return radiance, dir, dist, directPdfW, emissionPdfW, cosAtLight, true
}

func (l *SphereLight) illuminateCone(point geom.Vec3, distToCenter float64, toCenter geom.Vec3, u0, u1 float64, sw *spectral.SpectrumWavelengths) (Spectrum, geom.Vec3, float64, float64, float64, float64, bool) {
	shape := l.Object.Shape
	w := toCenter.Multiply(1 / distToCenter)
	t1, t2 := w.CoordinateSystem()

	sinThetaMax := shape.Radius / distToCenter
	cosThetaMax := math.Sqrt(math.Max(0, 1-sinThetaMax*sinThetaMax))

	cosTheta := 1 - u0*(1-cosThetaMax)
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * u1

	dir := t1.Multiply(sinTheta * math.Cos(phi)).Add(t2.Multiply(sinTheta * math.Sin(phi))).Add(w.Multiply(cosTheta)).Normalize()

	ray := geom.Ray{Origin: point, Direction: dir, Mint: 1e-4, Maxt: math.Inf(1)}
	tHit, ok := shape.Intersect(ray)
	if !ok {
		return l.illuminateUniform(point, u0, u1, sw)
	}

	hitPoint := ray.At(tHit)
	normal := shape.NormalAt(hitPoint)
	cosAtLight := dir.Negate().AbsDot(normal)

	directPdfW := 1 / (2 * math.Pi * (1 - cosThetaMax))
	emissionPdfW := cosAtLight / math.Pi

	hit := bsdf.HitPoint{Point: hitPoint, ShadingNormal: normal, Wavelengths: sw}
	radiance := l.emission(hit, dir.Negate())
	return radiance, dir, tHit, directPdfW, emissionPdfW, cosAtLight, true
}

// DirectPdf returns the solid-angle pdf Illuminate would have used for dir,
// for MIS against a BSDF-sampled direction that happens to hit this light.
func (l *SphereLight) DirectPdf(scene Scene, point, dir geom.Vec3) float64 {
	shape := l.Object.Shape
	ray := geom.Ray{Origin: point, Direction: dir, Mint: 1e-4, Maxt: math.Inf(1)}
	if _, ok := shape.Intersect(ray); !ok {
		return 0
	}

	toCenter := shape.Center.Subtract(point)
	distToCenter := toCenter.Length()
	if distToCenter <= shape.Radius {
		return 1 / shape.Area()
	}

	sinThetaMax := shape.Radius / distToCenter
	cosThetaMax := math.Sqrt(math.Max(0, 1-sinThetaMax*sinThetaMax))
	return 1 / (2 * math.Pi * (1 - cosThetaMax))
}

// Emit is never called directly for a finite light per the Light contract
// (it's hit as ordinary emissive geometry instead), so it returns zero.
func (l *SphereLight) Emit(ray geom.Ray, sw *spectral.SpectrumWavelengths) Spectrum {
	return spectral.NewSWC(sw, 0)
}

// SampleEmission seeds a light subpath: a point sampled uniformly over the
// whole sphere, with a cosine-weighted outgoing direction about that
// point's normal.
func (l *SphereLight) SampleEmission(u0, u1, u2, u3 float64, sw *spectral.SpectrumWavelengths) (geom.Ray, geom.Vec3, Spectrum, float64, float64) {
	shape := l.Object.Shape
	localDir := uniformSampleSphere(u0, u1)
	point := shape.Center.Add(localDir.Multiply(shape.Radius))
	normal := localDir

	dir := cosineSampleHemisphere(normal, u2, u3)
	cosTheta := dir.AbsDot(normal)

	areaPdf := 1 / shape.Area()
	dirPdf := cosTheta / math.Pi

	hit := bsdf.HitPoint{Point: point, ShadingNormal: normal, Wavelengths: sw}
	emission := l.emission(hit, dir)

	ray := geom.Ray{Origin: point, Direction: dir, Mint: 1e-4, Maxt: math.Inf(1)}
	return ray, normal, emission, areaPdf, dirPdf
}

// EmissionPdf returns the area pdf of sampling point as an emission origin
// via SampleEmission; the direction's own cosine-weighted pdf is folded
// into the bidirectional connection weight separately.
func (l *SphereLight) EmissionPdf(point, dir geom.Vec3) float64 {
	shape := l.Object.Shape
	if math.Abs(point.Subtract(shape.Center).Length()-shape.Radius) > 1e-3 {
		return 0
	}
	normal := shape.NormalAt(point)
	if dir.Dot(normal) <= 0 {
		return 0
	}
	return 1 / shape.Area()
}

// uniformSampleSphere maps two uniform samples to a uniform point on the
// unit sphere.
func uniformSampleSphere(u0, u1 float64) geom.Vec3 {
	z := 1 - 2*u0
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * u1
	return geom.NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// cosineSampleHemisphere draws a direction from a cosine-weighted
// hemisphere about normal n using Malley's method, mirroring
// bsdf.Matte's own helper (unexported there, so restated here rather
// than introducing a cross-package dependency for one small function).
func cosineSampleHemisphere(n geom.Vec3, u1, u2 float64) geom.Vec3 {
	r := math.Sqrt(u1)
	theta := 2 * math.Pi * u2
	x := r * math.Cos(theta)
	y := r * math.Sin(theta)
	z := math.Sqrt(math.Max(0, 1-u1))

	t, b := n.CoordinateSystem()
	return t.Multiply(x).Add(b.Multiply(y)).Add(n.Multiply(z)).Normalize()
}
