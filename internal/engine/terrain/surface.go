package terrain

import "github.com/Faultbox/highland/pkg/math"

// SurfaceAt returns the surface point and face normal of the terrain under world (x, z).
// The far x and z edges are included. Off-map positions return ok == false.
func (t *Terrain) SurfaceAt(x, z float32) (point, normal math.Vec3, ok bool) {
	ref, ok := t.locateClosed(x, z)
	if !ok {
		return math.Vec3{}, math.Vec3{}, false
	}
	return t.surfaceInQuad(ref, x, z)
}

// HeightAt returns only the surface height at world (x, z).
func (t *Terrain) HeightAt(x, z float32) (float32, bool) {
	p, _, ok := t.SurfaceAt(x, z)
	return p.Y, ok
}

// quadTriangle picks the triangle of quad (qr, qc) containing (x, z). The quad is split
// along the diagonal from its +z corner to its +x corner: points whose offset from the
// +z corner has a non-negative dot with (1, 1) use {+z, +x+z, +x}, the rest {+z, +x, origin}.
func (t *Terrain) quadTriangle(tile *Tile, qr, qc int, x, z float32) (a, b, c math.Vec3) {
	o, px, pz, pxz := t.quadCorners(tile, qr, qc)
	d := (x - pz.X) + (z - pz.Z)
	if d >= 0 {
		return pz, pxz, px
	}
	return pz, px, o
}

func (t *Terrain) surfaceInQuad(ref QuadRef, x, z float32) (point, normal math.Vec3, ok bool) {
	tile := &t.Tiles[ref.Tile]
	a, b, c := t.quadTriangle(tile, ref.Row, ref.Col, x, z)
	plane := math.PlaneFromTriangle(a, b, c)

	// Solving from the nearest corner keeps sample points exact.
	y, ok := plane.SolveYFrom(nearestXZ(x, z, a, b, c), x, z)
	if !ok {
		return math.Vec3{}, math.Vec3{}, false
	}
	return math.Vec3{X: x, Y: y, Z: z}, plane.Normal, true
}

func nearestXZ(x, z float32, a, b, c math.Vec3) math.Vec3 {
	best, bestD := a, distSqXZ(a, x, z)
	if d := distSqXZ(b, x, z); d < bestD {
		best, bestD = b, d
	}
	if d := distSqXZ(c, x, z); d < bestD {
		best = c
	}
	return best
}

func distSqXZ(p math.Vec3, x, z float32) float32 {
	dx, dz := p.X-x, p.Z-z
	return dx*dx + dz*dz
}
