// Package pathtracer implements unidirectional, multiple-importance-sampled
// path tracing over the scenecore/bsdf/volume contracts.
package pathtracer

import (
	"math"

	"github.com/lumenpath/lumenpath/pkg/bsdf"
	"github.com/lumenpath/lumenpath/pkg/film"
	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/sampler"
	"github.com/lumenpath/lumenpath/pkg/scenecore"
	"github.com/lumenpath/lumenpath/pkg/spectral"
	"github.com/lumenpath/lumenpath/pkg/volume"
)

type Spectrum = spectral.SWC

// per-depth dimension offsets within a sampler.PerDepthDims block.
const (
	offPassThrough = 0
	offBSDFu1      = 1
	offBSDFu2      = 2
	offLightPick   = 3
	offLightU1     = 4
	offLightU2     = 5
	offRR          = 6
)

// Config controls path termination and firefly suppression, independent of
// any single scene.
type Config struct {
	MaxDepth              int
	RRStartDepth          int
	RRImportanceCap       float64
	VarianceClampMaxValue float64 // 0 disables clamping
	ForceBlackBackground  bool
}

func DefaultConfig() Config {
	return Config{
		MaxDepth:        16,
		RRStartDepth:    3,
		RRImportanceCap: 1.0,
	}
}

// Integrator renders samples with unidirectional path tracing.
type Integrator struct {
	cfg Config
}

func New(cfg Config) *Integrator { return &Integrator{cfg: cfg} }

// RenderSample traces one eye path starting at the sampler's current film
// position and splats the accumulated radiance into film's groupId buffer.
// cs converts the path's per-wavelength result to the film's RGB buffer.
func (pt *Integrator) RenderSample(s sampler.Sampler, scene scenecore.Scene, f *film.Film, groupId int, sw *spectral.SpectrumWavelengths, cs *spectral.ColorSystem) {
	// DimFilmX/DimFilmY are already absolute film-plane coordinates (pixel
	// index plus sub-pixel jitter), not normalized to [0,1) like the other
	// sampler dimensions.
	filmX := float64(s.GetSample(sampler.DimFilmX))
	filmY := float64(s.GetSample(sampler.DimFilmY))
	lensU := float64(s.GetSample(sampler.DimLensU))
	lensV := float64(s.GetSample(sampler.DimLensV))
	time := float64(s.GetSample(sampler.DimTime))

	ray := scene.Camera().GenerateRay(filmX, filmY, lensU, lensV, time)

	var volInfo volume.PathVolumeInfo
	if dv := scene.DefaultVolume(); dv != nil {
		volInfo.Add(dv)
	}

	throughput := spectral.NewSWC(sw, 1.0)
	radiance := spectral.NewSWC(sw, 0.0)
	alpha := 1.0

	lastBsdfEvent := bsdf.Specular
	lastPdfW := 1.0

	depth := 0
	for depth < pt.cfg.MaxDepth {
		off := sampler.DimForDepth(depth)
		uPassThrough := float64(s.GetSample(off + offPassThrough))

		hit, mat, connThroughput, segEmission, ok := scene.Intersect(ray, uPassThrough, &volInfo, sw)
		throughput = throughput.Mul(connThroughput)
		radiance = radiance.Add(throughput.Mul(segEmission))

		if !ok {
			if !pt.cfg.ForceBlackBackground {
				for _, light := range scene.Lights() {
					if !light.IsInfinite() {
						continue
					}
					env := light.Emit(ray, sw)
					weight := 1.0
					if !lastBsdfEvent.IsSpecular() {
						lightPdf := light.DirectPdf(scene, ray.Origin, ray.Direction) * scene.LightStrategy().PickPdf(light)
						weight = PowerHeuristic(lastPdfW, lightPdf)
					}
					radiance = radiance.Add(throughput.Mul(env).Scale(weight))
				}
			}
			if depth == 0 {
				alpha = 0
			}
			break
		}

		if mat.IsLightSource() {
			emitted := mat.GetEmittedRadiance(*hit, ray.Direction.Negate())
			if !emitted.Black() {
				weight := 1.0
				if !lastBsdfEvent.IsSpecular() {
					if directPdfW, pickPdf, lok := scene.LightPdfForHit(*hit, ray.Origin); lok {
						weight = PowerHeuristic(lastPdfW, directPdfW*pickPdf)
					}
				}
				radiance = radiance.Add(throughput.Mul(emitted).Scale(weight))
			}
		}

		if !mat.IsDelta() {
			direct := pt.sampleDirectLight(s, off, scene, *hit, mat, ray.Direction.Negate(), &volInfo)
			radiance = radiance.Add(throughput.Mul(direct))
		}

		u1 := float64(s.GetSample(off + offBSDFu1))
		u2 := float64(s.GetSample(off + offBSDFu2))
		uPt := float64(s.GetSample(off + offPassThrough))
		f2, wo, pdfW, event := mat.Sample(*hit, ray.Direction.Negate(), u1, u2, uPt)
		if pdfW <= 0 || f2.Black() {
			break
		}

		// f2 is already f*cos/pdfW, matching the teacher's
		// ScatterResult.Attenuation convention.
		throughput = throughput.Mul(f2)
		lastPdfW = pdfW
		lastBsdfEvent = event

		if depth >= pt.cfg.RRStartDepth {
			rrU := float64(s.GetSample(off + offRR))
			prob := math.Min(pt.cfg.RRImportanceCap, maxComponent(throughput))
			if prob <= 0 {
				break
			}
			if rrU > prob {
				break
			}
			throughput = throughput.Scale(1 / prob)
		}

		volInfo.Update(event, *hit)
		ray = geom.Ray{Origin: hit.Point, Direction: wo, Mint: 1e-4, Maxt: math.Inf(1), Time: time}
		depth++
	}

	rgb := cs.ToRGBConstrained(spectral.ToXYZ(sw, radiance))
	if pt.cfg.VarianceClampMaxValue > 0 {
		rgb = clampAgainstEstimate(rgb, f, groupId, filmX, filmY, pt.cfg.VarianceClampMaxValue)
	}

	f.SplatFiltered(groupId, filmX, filmY, rgb, alpha, 1.0)
}

func (pt *Integrator) sampleDirectLight(s sampler.Sampler, off int, scene scenecore.Scene, hit bsdf.HitPoint, mat bsdf.Material, wo geom.Vec3, volInfo *volume.PathVolumeInfo) Spectrum {
	sw := hit.Wavelengths
	zero := spectral.NewSWC(sw, 0)

	light, pickPdf := scene.LightStrategy().SampleLights(float64(s.GetSample(off + offLightPick)))
	if light == nil || pickPdf <= 0 {
		return zero
	}

	u1 := float64(s.GetSample(off + offLightU1))
	u2 := float64(s.GetSample(off + offLightU2))
	radiance, dir, dist, directPdfW, _, cosAtLight, ok := light.Illuminate(scene, hit.Point, u1, u2, 0, sw)
	if !ok || directPdfW <= 0 || radiance.Black() || cosAtLight <= 0 {
		return zero
	}

	f, bsdfPdfW, _, event := mat.Evaluate(hit, wo, dir)
	if f.Black() || bsdfPdfW <= 0 {
		return zero
	}

	shadowRay := geom.NewRayTo(hit.Point, hit.Point.Add(dir.Multiply(dist)))
	_, _, shadowThroughput, _, occluded := scene.Intersect(shadowRay, 0, volInfo, sw)
	if occluded {
		return zero
	}

	cos := math.Abs(dir.Dot(hit.ShadingNormal))
	weight := 1.0
	if !event.IsSpecular() {
		weight = PowerHeuristic(pickPdf*directPdfW, bsdfPdfW)
	}

	return f.Mul(radiance).Mul(shadowThroughput).Scale(cos * weight / (pickPdf * directPdfW))
}

func maxComponent(s Spectrum) float64 {
	m := 0.0
	for i := 0; i < s.Len(); i++ {
		if v := s.At(i); v > m {
			m = v
		}
	}
	return m
}

// clampAgainstEstimate bounds rgb to within cap of the film's current
// per-pixel mean estimate, suppressing fireflies without biasing converged
// means: per-channel r' = r * min(1, cap / max(cap, |r - mean|)).
func clampAgainstEstimate(rgb spectral.RGB, f *film.Film, groupId int, fx, fy float64, cap float64) spectral.RGB {
	x, y := int(fx), int(fy)
	mean := f.Pixel(groupId, x, y)

	clampChannel := func(v, m float64) float64 {
		diff := math.Abs(v - m)
		return v * math.Min(1, cap/math.Max(cap, diff))
	}
	return spectral.RGB{
		R: clampChannel(rgb.R, mean.R),
		G: clampChannel(rgb.G, mean.G),
		B: clampChannel(rgb.B, mean.B),
	}
}
