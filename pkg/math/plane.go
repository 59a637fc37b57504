package math

// Plane is the set of points p where Normal·p + D == 0.
type Plane struct {
	Normal Vec3
	D      float32
}

// TriangleNormal returns the unit normal of triangle abc, computed as (b-a)x(c-a).
// Winding decides the side it faces; callers order vertices so terrain normals point up.
func TriangleNormal(a, b, c Vec3) Vec3 {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// PlaneFromTriangle builds the plane through a, b and c.
func PlaneFromTriangle(a, b, c Vec3) Plane {
	n := TriangleNormal(a, b, c)
	return Plane{Normal: n, D: -n.Dot(a)}
}

// SignedDistance returns Normal·p + D. It is a true distance only for unit normals.
func (p Plane) SignedDistance(v Vec3) float32 {
	return p.Normal.Dot(v) + p.D
}

// SolveY returns the y for which (x, y, z) lies on the plane: y = (-D - x*nx - z*nz) / ny.
// ok is false for vertical planes.
func (p Plane) SolveY(x, z float32) (y float32, ok bool) {
	if p.Normal.Y == 0 {
		return 0, false
	}
	n := p.Normal
	y64 := (-float64(p.D) - float64(x)*float64(n.X) - float64(z)*float64(n.Z)) / float64(n.Y)
	return float32(y64), true
}

// SolveYFrom is SolveY evaluated relative to a point known to be on the plane. At the anchor
// itself the offsets vanish, so sample points reproduce their stored height bit for bit.
func (p Plane) SolveYFrom(anchor Vec3, x, z float32) (y float32, ok bool) {
	if p.Normal.Y == 0 {
		return 0, false
	}
	n := p.Normal
	dx := float64(x) - float64(anchor.X)
	dz := float64(z) - float64(anchor.Z)
	y64 := float64(anchor.Y) - (dx*float64(n.X)+dz*float64(n.Z))/float64(n.Y)
	return float32(y64), true
}
