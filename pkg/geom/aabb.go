package geom

import "math"

// AABB is an axis-aligned bounding box, adapted from the teacher's
// core.AABB with the same slab test and longest-axis split helper used by
// the indexed kd-tree builder.
type AABB struct {
	Min, Max Vec3
}

func NewAABB(min, max Vec3) AABB { return AABB{Min: min, Max: max} }

func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min = Vec3{math.Min(min.X, p.X), math.Min(min.Y, p.Y), math.Min(min.Z, p.Z)}
		max = Vec3{math.Max(max.X, p.X), math.Max(max.Y, p.Y), math.Max(max.Z, p.Z)}
	}
	return AABB{Min: min, Max: max}
}

func (b AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		origin, dir, lo, hi := axisComponents(axis, ray.Origin, ray.Direction, b.Min, b.Max)
		if math.Abs(dir) < 1e-12 {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}
		invD := 1.0 / dir
		t1, t2 := (lo-origin)*invD, (hi-origin)*invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}

func axisComponents(axis int, origin, dir, lo, hi Vec3) (o, d, l, h float64) {
	switch axis {
	case 0:
		return origin.X, dir.X, lo.X, hi.X
	case 1:
		return origin.Y, dir.Y, lo.Y, hi.Y
	default:
		return origin.Z, dir.Z, lo.Z, hi.Z
	}
}

func (b AABB) Union(o AABB) AABB {
	return AABB{
		Min: Vec3{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y), math.Min(b.Min.Z, o.Min.Z)},
		Max: Vec3{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y), math.Max(b.Max.Z, o.Max.Z)},
	}
}

func (b AABB) Center() Vec3 { return b.Min.Add(b.Max).Multiply(0.5) }
func (b AABB) Size() Vec3   { return b.Max.Subtract(b.Min) }

func (b AABB) LongestAxis() int {
	s := b.Size()
	if s.X > s.Y && s.X > s.Z {
		return 0
	}
	if s.Y > s.Z {
		return 1
	}
	return 2
}

func (b AABB) Axis(axis int) float64 {
	switch axis {
	case 0:
		return b.Center().X
	case 1:
		return b.Center().Y
	default:
		return b.Center().Z
	}
}

// Component returns the axis-th component of a point (0=X,1=Y,2=Z).
func Component(v Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
