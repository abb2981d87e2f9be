package main

import (
	"github.com/lumenpath/lumenpath/pkg/bsdf"
	"github.com/lumenpath/lumenpath/pkg/geom"
	"github.com/lumenpath/lumenpath/pkg/scenecore"
	"github.com/lumenpath/lumenpath/pkg/specache"
	"github.com/lumenpath/lumenpath/pkg/spectral"
)

// buildDefaultScene assembles a small built-in demo scene: a huge ground
// sphere, three colored spheres (matte, mirror, glass) and an overhead
// sphere light, grounded on the teacher's scene.NewDefaultScene layout
// (a center/left/right sphere trio over a ground plane, lit by one area
// light above).
func buildDefaultScene(width, height int) *scenecore.RefScene {
	var sw spectral.SpectrumWavelengths

	// groundReflectance is a tabulated SPD (rather than a flat per-channel
	// constant) so the ground sphere resamples it at each path vertex's
	// hero wavelengths through a shared specache.Cache, the same
	// keep-hot-working-set resample path the teacher's texture lookups use
	// for measured/painted reflectance curves.
	groundReflectance := spectral.NewRegularSPD(spectral.WavelengthStart, spectral.WavelengthEnd,
		[]float64{0.35, 0.45, 0.55, 0.5, 0.4})
	specCache := specache.New(specache.DefaultCapacity)
	green := bsdf.NewSpectralMatte(groundReflectance, specCache)
	silver := bsdf.NewMirror(spectral.NewSWC(&sw, 0.9))
	glass := bsdf.NewGlass(1.5)

	ground := scenecore.NewSphereObject(geom.NewSphere(geom.NewVec3(0, -1000, -1), 1000), green)
	center := scenecore.NewSphereObject(geom.NewSphere(geom.NewVec3(0, 0.5, -1), 0.5), bsdf.NewMatte(spectral.NewSWC(&sw, 0.6)))
	left := scenecore.NewSphereObject(geom.NewSphere(geom.NewVec3(-1, 0.5, -1), 0.5), silver)
	right := scenecore.NewSphereObject(geom.NewSphere(geom.NewVec3(1, 0.5, -1), 0.5), glass)

	light := scenecore.NewSphereLight(geom.NewSphere(geom.NewVec3(2, 4, 2), 1), spectral.NewSWC(&sw, 8))

	objects := []*scenecore.SphereObject{ground, center, left, right, light.Object}

	camera := scenecore.NewCamera(scenecore.CameraConfig{
		Center:        geom.NewVec3(0, 0.75, 2),
		LookAt:        geom.NewVec3(0, 0.5, -1),
		Up:            geom.NewVec3(0, 1, 0),
		Width:         width,
		Height:        height,
		VFov:          40,
		Aperture:      0.05,
		FocusDistance: 0,
	})

	return scenecore.NewRefScene(objects, camera, nil)
}
