package geom

import "math"

// Sphere is a bare geometric sphere, adapted from the teacher's
// geometry.Sphere with the material reference dropped: this package has no
// concept of a BSDF, so callers own a Sphere alongside whatever material it
// should render with.
type Sphere struct {
	Center Vec3
	Radius float64
}

func NewSphere(center Vec3, radius float64) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// Intersect returns the nearest root of the ray/sphere quadratic within
// [ray.Mint, ray.Maxt], or ok=false on a miss.
func (s Sphere) Intersect(ray Ray) (t float64, ok bool) {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root < ray.Mint || root > ray.Maxt {
		root = (-halfB + sqrtD) / a
		if root < ray.Mint || root > ray.Maxt {
			return 0, false
		}
	}
	return root, true
}

// NormalAt returns the outward unit normal at point, assumed to lie on s's
// surface.
func (s Sphere) NormalAt(point Vec3) Vec3 {
	return point.Subtract(s.Center).Multiply(1 / s.Radius)
}

func (s Sphere) BoundingBox() AABB {
	r := NewVec3(s.Radius, s.Radius, s.Radius)
	return NewAABB(s.Center.Subtract(r), s.Center.Add(r))
}

// Area is a sphere's surface area, the normalizing constant for uniform
// area sampling.
func (s Sphere) Area() float64 { return 4 * math.Pi * s.Radius * s.Radius }
