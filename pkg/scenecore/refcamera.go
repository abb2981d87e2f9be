package scenecore

import (
	"math"

	"github.com/lumenpath/lumenpath/pkg/geom"
)

// CameraConfig describes a thin-lens camera the way the teacher's own
// geometry.CameraConfig does: a look-at transform plus a field of view and
// an optional aperture/focus distance for depth of field. The teacher's
// richer NewCamera(CameraConfig) constructor isn't present in this tree, so
// ThinLensCamera is built from the underlying pinhole/thin-lens math
// directly rather than ported from teacher source.
type CameraConfig struct {
	Center Vec3
	LookAt Vec3
	Up     Vec3

	Width       int
	Height      int
	AspectRatio float64 // Height derived from Width/AspectRatio when Height == 0
	VFov        float64 // vertical field of view, degrees

	Aperture      float64 // lens diameter; 0 gives a pinhole camera
	FocusDistance float64 // 0 auto-computes as |Center - LookAt|
}

// Vec3 aliases geom.Vec3 so callers building a CameraConfig don't need to
// import pkg/geom directly.
type Vec3 = geom.Vec3

// ThinLensCamera generates primary rays from a look-at transform, a
// vertical field of view, and an optional circular lens for depth of
// field, the standard ray-tracer camera model the teacher's own simple
// axis-aligned Camera is a Aperture=0, LookAt=-Z special case of.
type ThinLensCamera struct {
	origin          geom.Vec3
	lowerLeftCorner geom.Vec3
	horizontal      geom.Vec3
	vertical        geom.Vec3
	u, v            geom.Vec3
	lensRadius      float64
	width, height   int
}

// NewCamera builds a ThinLensCamera from cfg.
func NewCamera(cfg CameraConfig) *ThinLensCamera {
	height := cfg.Height
	aspect := cfg.AspectRatio
	if aspect == 0 && cfg.Width > 0 && height > 0 {
		aspect = float64(cfg.Width) / float64(height)
	}
	if height == 0 && aspect > 0 && cfg.Width > 0 {
		height = int(float64(cfg.Width) / aspect)
	}

	focusDistance := cfg.FocusDistance
	if focusDistance == 0 {
		focusDistance = cfg.Center.Subtract(cfg.LookAt).Length()
	}

	theta := cfg.VFov * math.Pi / 180
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * focusDistance
	viewportWidth := aspect * viewportHeight

	w := cfg.Center.Subtract(cfg.LookAt).Normalize()
	u := cfg.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)

	return &ThinLensCamera{
		origin:          cfg.Center,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: cfg.Center.Subtract(horizontal.Multiply(0.5)).Subtract(vertical.Multiply(0.5)).Subtract(w.Multiply(focusDistance)),
		u:               u,
		v:               v,
		lensRadius:      cfg.Aperture / 2,
		width:           cfg.Width,
		height:          height,
	}
}

// GenerateRay implements Camera. filmX/filmY are absolute film-plane
// coordinates in [0,width)x[0,height); lensU/lensV are uniform [0,1)
// samples mapped to a disk for depth-of-field blur.
func (c *ThinLensCamera) GenerateRay(filmX, filmY, lensU, lensV, time float64) geom.Ray {
	s := filmX / float64(c.width)
	t := 1 - filmY/float64(c.height)

	var offset geom.Vec3
	if c.lensRadius > 0 {
		rx, ry := concentricSampleDisk(lensU, lensV)
		offset = c.u.Multiply(rx * c.lensRadius).Add(c.v.Multiply(ry * c.lensRadius))
	}

	target := c.lowerLeftCorner.Add(c.horizontal.Multiply(s)).Add(c.vertical.Multiply(t))
	origin := c.origin.Add(offset)
	direction := target.Subtract(origin).Normalize()

	return geom.Ray{Origin: origin, Direction: direction, Mint: 1e-4, Maxt: math.Inf(1), Time: time}
}

// concentricSampleDisk maps a unit square sample to a unit disk via
// Shirley's concentric mapping, avoiding the distortion a naive polar
// mapping introduces near the disk's center.
func concentricSampleDisk(u1, u2 float64) (x, y float64) {
	ox := 2*u1 - 1
	oy := 2*u2 - 1
	if ox == 0 && oy == 0 {
		return 0, 0
	}

	var r, theta float64
	if math.Abs(ox) > math.Abs(oy) {
		r = ox
		theta = (math.Pi / 4) * (oy / ox)
	} else {
		r = oy
		theta = (math.Pi / 2) - (math.Pi/4)*(ox/oy)
	}
	return r * math.Cos(theta), r * math.Sin(theta)
}
