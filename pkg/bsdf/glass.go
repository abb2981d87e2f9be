package bsdf

import (
	"math"

	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/spectral"
)

// Glass is a smooth dielectric that reflects or refracts according to
// Snell's law and Schlick's reflectance approximation, grounded on the
// teacher's Dielectric material.
type Glass struct {
	RefractiveIndex float64
}

func NewGlass(ior float64) *Glass {
	return &Glass{RefractiveIndex: ior}
}

func (g *Glass) IsDelta() bool       { return true }
func (g *Glass) IsPassThrough() bool { return false }
func (g *Glass) IsLightSource() bool { return false }
func (g *Glass) GetEmittedRadiance(hit HitPoint, wo geom.Vec3) Spectrum {
	return spectral.NewSWC(hit.Wavelengths, 0)
}
func (g *Glass) GetPassThroughTransparency(hit HitPoint, wi geom.Vec3, u float64) Spectrum {
	return spectral.NewSWC(hit.Wavelengths, 0)
}

func (g *Glass) Evaluate(hit HitPoint, wi, wo geom.Vec3) (Spectrum, float64, float64, Event) {
	return spectral.NewSWC(hit.Wavelengths, 0), 0, 0, 0
}

func (g *Glass) Pdf(HitPoint, geom.Vec3, geom.Vec3) (float64, float64) { return 0, 0 }

func (g *Glass) Sample(hit HitPoint, wi geom.Vec3, u1, u2, uPassThrough float64) (Spectrum, geom.Vec3, float64, Event) {
	var eta float64
	if hit.FrontFace {
		eta = 1.0 / g.RefractiveIndex
	} else {
		eta = g.RefractiveIndex
	}

	// wi points away from the surface toward the incoming side; the
	// incident direction traveling toward the surface is its negation.
	incident := wi.Negate().Normalize()
	n := hit.ShadingNormal
	cosTheta := math.Min(-incident.Dot(n), 1.0)
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))

	unity := spectral.NewSWC(hit.Wavelengths, 1.0)

	cannotRefract := eta*sinTheta > 1.0
	if cannotRefract || schlickReflectance(cosTheta, eta) > u1 {
		wo := reflect(wi, n)
		return unity, wo, 1, Specular | Reflect
	}

	refracted := refract(incident, n, eta)
	return unity, refracted.Negate(), 1, Specular | Transmit
}

func refract(uv, n geom.Vec3, etaiOverEtat float64) geom.Vec3 {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

func schlickReflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
