package scenecore

import (
	"github.com/lumenpath/lumenpath/pkg/bsdf"
	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/spectral"
	"github.com/lumenpath/lumenpath/pkg/volume"
)

// SphereObject is a renderable sphere: geometry plus the material it's
// shaded with, and the interior/exterior volumes a ray crossing its
// surface should pick up. It is the only Shape this reference scene
// needs; a BVH over many such objects is unnecessary at the object counts
// a single built-in demo scene holds.
type SphereObject struct {
	Shape    geom.Sphere
	Material bsdf.Material

	InteriorVolume volume.Volume
	ExteriorVolume volume.Volume

	// Light is set when this object is also registered as a scene Light
	// (an emissive sphere), so RefScene.LightPdfForHit can look back from
	// a hit surface to the Light that samples it.
	Light Light
}

func NewSphereObject(shape geom.Sphere, material bsdf.Material) *SphereObject {
	return &SphereObject{Shape: shape, Material: material}
}

// intersect tests ray against o, filling a HitPoint on success. sw is
// stamped onto the HitPoint so the material/light evaluated against it
// build spectra over the calling sample's active wavelengths. defaultVolume
// fills the side o itself leaves nil (vacuum-against-object convention).
func (o *SphereObject) intersect(ray geom.Ray, sw *spectral.SpectrumWavelengths, defaultVolume volume.Volume) (*bsdf.HitPoint, bool) {
	t, ok := o.Shape.Intersect(ray)
	if !ok {
		return nil, false
	}

	point := ray.At(t)
	outwardNormal := o.Shape.NormalAt(point)
	frontFace := ray.Direction.Dot(outwardNormal) < 0
	normal := outwardNormal
	if !frontFace {
		normal = outwardNormal.Negate()
	}

	hit := &bsdf.HitPoint{
		Point:           point,
		ShadingNormal:   normal,
		GeometricNormal: normal,
		FrontFace:       frontFace,
		Wavelengths:     sw,
	}
	bsdf.SetHitPointVolumes(hit, o.InteriorVolume, o.ExteriorVolume, defaultVolume)
	return hit, true
}
