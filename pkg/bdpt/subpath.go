package bdpt

import (
	"math"

	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/sampler"
	"github.com/lumenpath/lumenpath/pkg/scenecore"
	"github.com/lumenpath/lumenpath/pkg/spectral"
	"github.com/lumenpath/lumenpath/pkg/volume"
)

// dimAllocator hands out strictly increasing sampler dimensions. Unlike
// pathtracer's fixed per-depth block layout, a bidirectional path draws an
// unpredictable number of values per bounce across two independent
// subpaths plus direct-lighting connections, so it just takes the next
// free dimension on demand rather than precomputing offsets.
type dimAllocator struct{ next int }

func newDimAllocator() *dimAllocator {
	return &dimAllocator{next: sampler.DimForDepth(0)}
}

func (d *dimAllocator) dim() int {
	v := d.next
	d.next++
	return v
}

func (d *dimAllocator) u(s sampler.Sampler) float64 {
	return float64(s.GetSample(d.dim()))
}

// generateCameraSubpath traces ray from the camera, returning a Path whose
// first vertex is the camera itself and whose remaining vertices are the
// surfaces (or escaped infinite-light direction) it bounced off.
func generateCameraSubpath(ray geom.Ray, scene scenecore.Scene, s sampler.Sampler, dims *dimAllocator, sw *spectral.SpectrumWavelengths, maxDepth int) Path {
	path := Path{Vertices: make([]Vertex, 0, maxDepth+1)}
	beta := spectral.NewSWC(sw, 1.0)
	cam := Vertex{
		Point:             ray.Origin,
		Normal:            ray.Direction.Negate(),
		IncomingDirection: ray.Direction.Negate(),
		IsCamera:          true,
		Beta:              beta,
		EmittedLight:      spectral.NewSWC(sw, 0.0),
	}
	path.Vertices = append(path.Vertices, cam)

	var volInfo volume.PathVolumeInfo
	if dv := scene.DefaultVolume(); dv != nil {
		volInfo.Add(dv)
	}

	extendPath(&path, ray, beta, 1.0, scene, s, dims, &volInfo, sw, maxDepth, true)
	return path
}

// GenerateLightSubpath traces one light subpath from scene, the same
// light-subpath builder RenderSample uses internally, exported so other
// packages (the engine's light-cache pipeline) can reuse it without
// reimplementing emission sampling.
func GenerateLightSubpath(scene scenecore.Scene, s sampler.Sampler, sw *spectral.SpectrumWavelengths, maxDepth int) Path {
	return generateLightSubpath(scene, s, newDimAllocator(), sw, maxDepth)
}

// generateLightSubpath samples an emission point from a light chosen by
// the scene's LightStrategy, then traces the emitted ray the same way
// generateCameraSubpath traces the eye ray. Returns an empty Path when the
// scene has no lights or the sampled emission carries no energy.
func generateLightSubpath(scene scenecore.Scene, s sampler.Sampler, dims *dimAllocator, sw *spectral.SpectrumWavelengths, maxDepth int) Path {
	path := Path{Vertices: make([]Vertex, 0, maxDepth+1)}
	if len(scene.Lights()) == 0 || maxDepth == 0 {
		return path
	}

	light, pickPdf := scene.LightStrategy().SampleLights(dims.u(s))
	if light == nil || pickPdf <= 0 {
		return path
	}

	u0, u1, u2, u3 := dims.u(s), dims.u(s), dims.u(s), dims.u(s)
	ray, normal, emission, areaPdf, dirPdf := light.SampleEmission(u0, u1, u2, u3, sw)
	if areaPdf <= 0 || dirPdf <= 0 || emission.Black() {
		return path
	}

	origin := Vertex{
		Point:          ray.Origin,
		Normal:         normal,
		Light:          light,
		IsLight:        true,
		AreaPdfForward: areaPdf * pickPdf,
		Beta:           emission,
		EmittedLight:   emission,
	}
	path.Vertices = append(path.Vertices, origin)

	cosTheta := math.Abs(ray.Direction.Dot(normal))
	beta := emission.Scale(cosTheta / (pickPdf * areaPdf * dirPdf))

	var volInfo volume.PathVolumeInfo
	if dv := scene.DefaultVolume(); dv != nil {
		volInfo.Add(dv)
	}

	extendPath(&path, ray, beta, dirPdf, scene, s, dims, &volInfo, sw, maxDepth-1, false)
	return path
}

// extendPath walks ray forward, appending one Vertex per bounce up to
// maxBounces, shared by both camera and light subpath generation. beta is
// the throughput already accumulated up to path's current last vertex;
// pdfDirFwd is the solid-angle pdf that produced ray's direction from
// that vertex.
func extendPath(path *Path, ray geom.Ray, beta Spectrum, pdfDirFwd float64, scene scenecore.Scene, s sampler.Sampler, dims *dimAllocator, volInfo *volume.PathVolumeInfo, sw *spectral.SpectrumWavelengths, maxBounces int, isCameraPath bool) {
	for bounce := 0; bounce < maxBounces; bounce++ {
		prevIdx := len(path.Vertices) - 1
		prev := path.Vertices[prevIdx]

		uPassThrough := dims.u(s)
		hit, mat, connThroughput, emission, ok := scene.Intersect(ray, uPassThrough, volInfo, sw)
		beta = beta.Mul(connThroughput)

		if !ok {
			if isCameraPath {
				v := Vertex{
					Point:             ray.At(1e6),
					Normal:            ray.Direction.Negate(),
					IncomingDirection: ray.Direction.Negate(),
					IsInfinite:        true,
					IsLight:           !emission.Black(),
					Beta:              beta,
					EmittedLight:      emission,
				}
				v.AreaPdfForward = prev.ConvertDensity(&v, pdfDirFwd)
				path.Vertices = append(path.Vertices, v)
			}
			return
		}

		v := Vertex{
			Point:             hit.Point,
			Normal:            hit.ShadingNormal,
			Material:          mat,
			Hit:               *hit,
			IncomingDirection: ray.Direction.Negate(),
			IsLight:           mat.IsLightSource(),
			Beta:              beta,
			EmittedLight:      mat.GetEmittedRadiance(*hit, ray.Direction.Negate()),
		}
		v.AreaPdfForward = prev.ConvertDensity(&v, pdfDirFwd)

		if mat.IsPassThrough() {
			// scene.Intersect already advances through pass-through
			// surfaces internally; reaching one here means it counted as
			// a real hit (e.g. priority override), so stop the walk.
			path.Vertices = append(path.Vertices, v)
			return
		}

		u1, u2, uPt := dims.u(s), dims.u(s), dims.u(s)
		f, wo, pdfW, event := mat.Sample(*hit, ray.Direction.Negate(), u1, u2, uPt)
		if pdfW <= 0 || f.Black() {
			path.Vertices = append(path.Vertices, v)
			return
		}
		v.IsSpecular = event.IsSpecular()

		_, revPdfW := mat.Pdf(*hit, ray.Direction.Negate(), wo)
		if v.IsSpecular {
			revPdfW = 0
		}

		path.Vertices = append(path.Vertices, v)
		path.Vertices[prevIdx].AreaPdfReverse = v.ConvertDensity(&prev, revPdfW)

		beta = beta.Mul(f)
		pdfDirFwd = pdfW
		volInfo.Update(event, *hit)
		ray = geom.Ray{Origin: hit.Point, Direction: wo, Mint: 1e-4, Maxt: math.Inf(1), Time: ray.Time}
	}
}
