package scenecore

import (
	"math"

	"github.com/lumenpath/lumenpath/pkg/bsdf"
	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/spectral"
	"github.com/lumenpath/lumenpath/pkg/volume"
)

// RefScene is a minimal, in-memory Scene implementation: a flat list of
// SphereObjects intersected by linear scan. A single built-in demo scene
// never holds enough primitives to need a BVH; no acceleration structure is
// used for scene geometry (pkg/kdtree indexes radiance-cache points).
type RefScene struct {
	objects  []*SphereObject
	lights   []Light
	strategy LightStrategy
	camera   Camera
	ambient  volume.Volume
}

// NewRefScene builds a RefScene from its objects and camera. Lights are
// picked up automatically from any object with a non-nil Light backref;
// ambient is the medium outside every object (nil for vacuum).
func NewRefScene(objects []*SphereObject, camera Camera, ambient volume.Volume) *RefScene {
	s := &RefScene{objects: objects, camera: camera, ambient: ambient}
	for _, o := range objects {
		if o.Light != nil {
			s.lights = append(s.lights, o.Light)
		}
	}
	s.strategy = NewUniformLightStrategy(s.lights)
	return s
}

// Intersect finds the nearest SphereObject ray hits. This scene has no
// participating media beyond the ambient volume and no pass-through
// materials, so connectionThroughput is always 1 and emission is always 0;
// the hit's own emission is read by the caller via material.IsLightSource
// and GetEmittedRadiance, not returned here.
func (s *RefScene) Intersect(ray geom.Ray, uPassThrough float64, volInfo *volume.PathVolumeInfo, sw *spectral.SpectrumWavelengths) (*bsdf.HitPoint, bsdf.Material, Spectrum, Spectrum, bool) {
	var (
		nearest    *bsdf.HitPoint
		nearestObj *SphereObject
		closest    = ray.Maxt
	)
	for _, obj := range s.objects {
		trial := ray
		trial.Maxt = closest
		hit, ok := obj.intersect(trial, sw, s.ambient)
		if !ok {
			continue
		}
		dist := hit.Point.Subtract(ray.Origin).Length()
		if dist >= closest {
			continue
		}
		closest = dist
		nearest = hit
		nearestObj = obj
	}

	one := spectral.NewSWC(sw, 1)
	zero := spectral.NewSWC(sw, 0)
	if nearest == nil {
		return nil, nil, one, zero, false
	}
	return nearest, nearestObj.Material, one, zero, true
}

// LightPdfForHit looks up the Light a hit surface belongs to via its
// owning SphereObject's Light backref, identifying the object by which
// sphere surface the hit point lies on.
func (s *RefScene) LightPdfForHit(hit bsdf.HitPoint, fromPoint geom.Vec3) (float64, float64, bool) {
	for _, obj := range s.objects {
		if obj.Light == nil {
			continue
		}
		if math.Abs(hit.Point.Subtract(obj.Shape.Center).Length()-obj.Shape.Radius) > 1e-6 {
			continue
		}
		dir := hit.Point.Subtract(fromPoint).Normalize()
		directPdfW := obj.Light.DirectPdf(s, fromPoint, dir)
		pickPdf := s.strategy.PickPdf(obj.Light)
		return directPdfW, pickPdf, true
	}
	return 0, 0, false
}

func (s *RefScene) Lights() []Light             { return s.lights }
func (s *RefScene) LightStrategy() LightStrategy { return s.strategy }
func (s *RefScene) Camera() Camera               { return s.camera }
func (s *RefScene) DefaultVolume() volume.Volume { return s.ambient }
