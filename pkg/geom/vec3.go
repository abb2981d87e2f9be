// Package geom provides the dimensionless vector, ray and bounding-volume
// primitives shared by every rendering package.
package geom

import (
	"fmt"
	"math"
)

// Vec3 represents a 3D vector, point or direction.
type Vec3 struct {
	X, Y, Z float64
}

// Vec2 represents a 2D vector, used for UVs and film coordinates.
type Vec2 struct {
	X, Y float64
}

func NewVec3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }
func NewVec2(x, y float64) Vec2    { return Vec2{X: x, Y: y} }

func (v Vec3) String() string {
	return fmt.Sprintf("{%.4g, %.4g, %.4g}", v.X, v.Y, v.Z)
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Subtract(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Multiply(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}
func (v Vec3) MultiplyVec(o Vec3) Vec3 { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vec3) Negate() Vec3            { return Vec3{-v.X, -v.Y, -v.Z} }

func (v Vec3) Length() float64        { return math.Sqrt(v.LengthSquared()) }
func (v Vec3) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }

func (v Vec3) Dot(o Vec3) float64    { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) AbsDot(o Vec3) float64 { return math.Abs(v.Dot(o)) }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Multiply(1 / l)
}

func (v Vec3) Clamp(lo, hi float64) Vec3 {
	return Vec3{
		X: math.Min(hi, math.Max(lo, v.X)),
		Y: math.Min(hi, math.Max(lo, v.Y)),
		Z: math.Min(hi, math.Max(lo, v.Z)),
	}
}

func (v Vec3) MaxComponent() float64 {
	return math.Max(v.X, math.Max(v.Y, v.Z))
}

func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// IsFinite reports whether every component is neither NaN nor +/-Inf,
// the property the math-singularity error kind checks before a
// contribution is accepted into a sample result.
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsNaN(v.Z) &&
		!math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsInf(v.Z, 0)
}

func (v Vec3) Equals(o Vec3) bool {
	const eps = 1e-9
	return math.Abs(v.X-o.X) < eps && math.Abs(v.Y-o.Y) < eps && math.Abs(v.Z-o.Z) < eps
}

// Faceforward flips v so it lies in the same hemisphere as ref.
func (v Vec3) Faceforward(ref Vec3) Vec3 {
	if v.Dot(ref) < 0 {
		return v.Negate()
	}
	return v
}

// CoordinateSystem builds an orthonormal basis (b1, b2) perpendicular to v.
func (v Vec3) CoordinateSystem() (Vec3, Vec3) {
	var b1 Vec3
	if math.Abs(v.X) > math.Abs(v.Y) {
		invLen := 1.0 / math.Sqrt(v.X*v.X+v.Z*v.Z)
		b1 = Vec3{-v.Z * invLen, 0, v.X * invLen}
	} else {
		invLen := 1.0 / math.Sqrt(v.Y*v.Y+v.Z*v.Z)
		b1 = Vec3{0, v.Z * invLen, -v.Y * invLen}
	}
	return b1, v.Cross(b1)
}

// Ray is a parametric ray with a valid parametric interval [Mint, Maxt] and
// a time sample.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Mint      float64
	Maxt      float64
	Time      float64
}

func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, Mint: 1e-4, Maxt: math.Inf(1)}
}

func NewRayTo(origin, target Vec3) Ray {
	d := target.Subtract(origin)
	dist := d.Length()
	r := NewRay(origin, d.Normalize())
	r.Maxt = dist - 1e-4
	return r
}

func (r Ray) At(t float64) Vec3 { return r.Origin.Add(r.Direction.Multiply(t)) }

// RayHit carries the closest-hit parametric distance, surface id and
// barycentrics of an intersection.
type RayHit struct {
	T            float64
	SurfaceID    int
	TriangleID   int
	Barycentrics Vec2
}

// IsMiss reports a miss as any T >= Maxt.
func (h RayHit) IsMiss(ray Ray) bool { return h.T >= ray.Maxt }
