package bdpt

import (
	"github.com/lumenpath/lumenpath/pkg/film"
	"github.com/lumenpath/lumenpath/pkg/sampler"
	"github.com/lumenpath/lumenpath/pkg/scenecore"
	"github.com/lumenpath/lumenpath/pkg/spectral"
)

// Config controls subpath length; unlike pathtracer.Config there is no
// Russian-roulette cutoff here since bidirectional connections benefit
// from shorter, fully-enumerated subpaths rather than long unbounded
// ones.
type Config struct {
	MaxDepth int // cap on both the camera and the light subpath length
}

func DefaultConfig() Config {
	return Config{MaxDepth: 8}
}

// Integrator renders samples with bidirectional path tracing: a camera
// subpath and light subpath are traced independently, then every
// admissible (s,t) vertex pair across both is connected and weighted by
// multiple importance sampling. t=1 strategies (light-subpath vertices
// connected straight back to the lens) are not implemented, matching the
// teacher integrator this package is grounded on.
type Integrator struct {
	cfg Config
}

func New(cfg Config) *Integrator { return &Integrator{cfg: cfg} }

// RenderSample traces one camera subpath and one light subpath from the
// sampler's current film position, connects every strategy the s>=0 t>=1
// scope below supports, and splats the MIS-weighted sum into f's
// groupId buffer. Signature matches pathtracer.Integrator.RenderSample so
// the engine's worker loop can drive either integrator identically.
func (ig *Integrator) RenderSample(s sampler.Sampler, scene scenecore.Scene, f *film.Film, groupId int, sw *spectral.SpectrumWavelengths, cs *spectral.ColorSystem) {
	filmX := float64(s.GetSample(sampler.DimFilmX))
	filmY := float64(s.GetSample(sampler.DimFilmY))
	lensU := float64(s.GetSample(sampler.DimLensU))
	lensV := float64(s.GetSample(sampler.DimLensV))
	time := float64(s.GetSample(sampler.DimTime))

	ray := scene.Camera().GenerateRay(filmX, filmY, lensU, lensV, time)
	dims := newDimAllocator()

	cameraPath := generateCameraSubpath(ray, scene, s, dims, sw, ig.cfg.MaxDepth)
	lightPath := generateLightSubpath(scene, s, dims, sw, ig.cfg.MaxDepth)

	radiance := spectral.NewSWC(sw, 0)

	for t := 1; t <= cameraPath.Len(); t++ {
		if contrib, ok := evaluatePathTracingStrategy(cameraPath, t); ok {
			weight := calculateMISWeight(cameraPath, lightPath, nil, 0, t)
			radiance = radiance.Add(contrib.Scale(weight))
		}

		camV := cameraPath.Vertices[t-1]
		if camV.Material == nil || camV.IsSpecular {
			// camV.Material == nil covers t=1 (the camera vertex itself):
			// connecting a light subpath straight back to the lens is the
			// unimplemented t=1 case, so it naturally falls out here too.
			continue
		}

		if contrib, sampled, ok := evaluateDirectLightingStrategy(cameraPath, t, scene, s, dims); ok {
			weight := calculateMISWeight(cameraPath, lightPath, sampled, 1, t)
			radiance = radiance.Add(contrib.Scale(weight))
		}

		for sIdx := 2; sIdx <= lightPath.Len(); sIdx++ {
			contrib, ok := evaluateConnectionStrategy(cameraPath, lightPath, sIdx, t, scene)
			if !ok {
				continue
			}
			weight := calculateMISWeight(cameraPath, lightPath, nil, sIdx, t)
			radiance = radiance.Add(contrib.Scale(weight))
		}
	}

	rgb := cs.ToRGBConstrained(spectral.ToXYZ(sw, radiance))
	f.SplatFiltered(groupId, filmX, filmY, rgb, 1.0, 1.0)
}
