// Package picking intersects view rays with object bounds.
package picking

import (
	gomath "math"

	"github.com/Faultbox/highland/pkg/math"
)

// Ray is a half-line from Origin along a unit Direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// NewRay normalises dir.
func NewRay(origin, dir math.Vec3) Ray {
	return Ray{Origin: origin, Direction: dir.Normalize()}
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABB creates an AABB from two opposite corners in any order.
func NewAABB(a, b math.Vec3) AABB {
	return AABB{
		Min: math.Vec3{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)},
		Max: math.Vec3{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)},
	}
}

// StandingBox is the cube of half-size half resting on base.
func StandingBox(base math.Vec3, half float32) AABB {
	return AABB{
		Min: math.Vec3{X: base.X - half, Y: base.Y, Z: base.Z - half},
		Max: math.Vec3{X: base.X + half, Y: base.Y + 2*half, Z: base.Z + half},
	}
}

// IntersectAABB returns the distance to the first point of box on the ray. A ray that
// starts inside the box reports the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	slab := func(origin, dir, lo, hi float32) bool {
		if dir == 0 {
			return origin >= lo && origin <= hi
		}
		t1 := (lo - origin) / dir
		t2 := (hi - origin) / dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		return true
	}
	if !slab(r.Origin.X, r.Direction.X, box.Min.X, box.Max.X) ||
		!slab(r.Origin.Y, r.Direction.Y, box.Min.Y, box.Max.Y) ||
		!slab(r.Origin.Z, r.Direction.Z, box.Min.Z, box.Max.Z) {
		return 0, false
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectPlaneY intersects the ray with the horizontal plane at planeY.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if gomath.Abs(float64(r.Direction.Y)) < 0.001 {
		return 0, 0, false
	}
	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return 0, 0, false
	}
	p := r.At(t)
	return p.X, p.Z, true
}
