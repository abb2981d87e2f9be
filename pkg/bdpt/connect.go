package bdpt

import (
	"math"

	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/sampler"
	"github.com/lumenpath/lumenpath/pkg/scenecore"
	"github.com/lumenpath/lumenpath/pkg/volume"
)

// evaluatePathTracingStrategy is the s=0 connection: the camera subpath's
// own terminal vertex happened to land on an emitter. ok is false when
// that vertex carries no emission.
func evaluatePathTracingStrategy(cameraPath Path, t int) (Spectrum, bool) {
	last := cameraPath.Vertices[t-1]
	if last.EmittedLight.Black() {
		return Spectrum{}, false
	}
	return last.Beta.Mul(last.EmittedLight), true
}

// evaluateDirectLightingStrategy is the s=1 connection: next-event
// estimation from camera vertex t-1 against a freshly sampled point on a
// light, rather than reusing the light subpath's own first vertex (whose
// area-based origin sampling isn't solid-angle importance sampled toward
// this particular shading point). Returns the synthesized light vertex so
// calculateMISWeight can fold it into the s=1 reverse-density recompute.
func evaluateDirectLightingStrategy(cameraPath Path, t int, scene scenecore.Scene, s sampler.Sampler, dims *dimAllocator) (Spectrum, *Vertex, bool) {
	camV := cameraPath.Vertices[t-1]

	light, pickPdf := scene.LightStrategy().SampleLights(dims.u(s))
	if light == nil || pickPdf <= 0 {
		return Spectrum{}, nil, false
	}

	u1, u2 := dims.u(s), dims.u(s)
	radiance, dir, dist, directPdfW, emissionPdfW, cosAtLight, ok := light.Illuminate(scene, camV.Point, u1, u2, 0, camV.Hit.Wavelengths)
	if !ok || directPdfW <= 0 || radiance.Black() || cosAtLight <= 0 {
		return Spectrum{}, nil, false
	}

	f, _, _, _ := camV.Material.Evaluate(camV.Hit, dir, camV.IncomingDirection)
	if f.Black() {
		return Spectrum{}, nil, false
	}

	shadowRay := geom.NewRayTo(camV.Point, camV.Point.Add(dir.Multiply(dist)))
	var volInfo volume.PathVolumeInfo
	_, _, shadowThroughput, _, occluded := scene.Intersect(shadowRay, 0, &volInfo, camV.Hit.Wavelengths)
	if occluded {
		return Spectrum{}, nil, false
	}

	pickDirectPdf := pickPdf * directPdfW
	contribution := camV.Beta.Mul(f).Mul(radiance).Mul(shadowThroughput).Scale(1 / pickDirectPdf)

	sampled := &Vertex{
		Point:          camV.Point.Add(dir.Multiply(dist)),
		Normal:         dir.Negate(),
		Light:          light,
		IsLight:        true,
		AreaPdfForward: pickPdf * emissionPdfW,
		Beta:           radiance.Scale(1 / pickDirectPdf),
		EmittedLight:   radiance,
	}

	return contribution, sampled, true
}

// evaluateConnectionStrategy is the general s>=2,t>=1 case: a direct
// vertex-to-vertex connection between a camera subpath vertex and a light
// subpath vertex, weighted by the geometric term G(x,y) =
// cos(theta_x)*cos(theta_y)/dist^2 and each side's local BSDF value.
// t=1 (connecting straight back to the camera/lens) is intentionally not
// implemented, matching the scope the teacher's own BDPT integrator
// shipped with.
func evaluateConnectionStrategy(cameraPath, lightPath Path, s, t int, scene scenecore.Scene) (Spectrum, bool) {
	camV := cameraPath.Vertices[t-1]
	lightV := lightPath.Vertices[s-1]

	if camV.Material == nil || camV.IsSpecular {
		return Spectrum{}, false
	}
	if lightV.IsSpecular {
		return Spectrum{}, false
	}

	d := lightV.Point.Subtract(camV.Point)
	dist2 := d.LengthSquared()
	if dist2 == 0 {
		return Spectrum{}, false
	}
	dist := math.Sqrt(dist2)
	dir := d.Multiply(1 / dist)

	camF, _, _, _ := camV.Material.Evaluate(camV.Hit, dir, camV.IncomingDirection)
	if camF.Black() {
		return Spectrum{}, false
	}

	// lightV is always a surface-hit vertex here: s starts at 2, and the
	// light subpath's origin vertex (s=1) is only ever connected via
	// evaluateDirectLightingStrategy's fresh NEE sample.
	lightF, _, _, _ := lightV.Material.Evaluate(lightV.Hit, lightV.IncomingDirection, dir.Negate())
	if lightF.Black() {
		return Spectrum{}, false
	}

	cosAtCam := dir.AbsDot(camV.Normal)
	cosAtLight := dir.AbsDot(lightV.Normal)
	g := cosAtCam * cosAtLight / dist2

	shadowRay := geom.NewRayTo(camV.Point, lightV.Point)
	var volInfo volume.PathVolumeInfo
	_, _, shadowThroughput, _, occluded := scene.Intersect(shadowRay, 0, &volInfo, camV.Hit.Wavelengths)
	if occluded {
		return Spectrum{}, false
	}

	contribution := camV.Beta.Mul(camF).Mul(lightF).Mul(lightV.Beta).Mul(shadowThroughput).Scale(g)
	return contribution, true
}
