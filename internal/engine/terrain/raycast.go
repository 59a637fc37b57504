package terrain

import (
	"go.uber.org/zap"

	"github.com/Faultbox/highland/internal/logger"
	"github.com/Faultbox/highland/pkg/math"
)

// Hit is a ray/terrain intersection.
type Hit struct {
	Point  math.Vec3
	Normal math.Vec3
	Quad   QuadRef
	T      float32 // ray parameter: Point ~= origin + ray*T
}

// RaycastQuad tests the two triangles of one quad against the ray origin + ray*t, t >= 0.
// Triangles are one-sided: a ray must approach from above.
func (t *Terrain) RaycastQuad(ref QuadRef, origin, ray math.Vec3) (Hit, bool) {
	tile := t.Tile(ref.Tile)
	if tile == nil || ref.Row < 0 || ref.Col < 0 || ref.Row >= t.Quads() || ref.Col >= t.Quads() {
		return Hit{}, false
	}
	o, px, pz, pxz := t.quadCorners(tile, ref.Row, ref.Col)

	tris := [2][3]math.Vec3{{pz, pxz, px}, {pz, px, o}}
	for _, tri := range tris {
		param, n, ok := intersectTriangle(tri[0], tri[1], tri[2], origin, ray)
		if !ok {
			continue
		}
		return Hit{
			Point:  origin.Add(ray.Scale(param)),
			Normal: n,
			Quad:   ref,
			T:      param,
		}, true
	}
	return Hit{}, false
}

// intersectTriangle runs the same-side test on every edge: for edge vi->vj the ray
// direction must have a non-negative dot with (origin-vi) x (vj-vi). The distance then
// comes from the triangle's plane equation.
func intersectTriangle(a, b, c, origin, dir math.Vec3) (float32, math.Vec3, bool) {
	verts := [3]math.Vec3{a, b, c}
	for i := range verts {
		vi, vj := verts[i], verts[(i+1)%3]
		if dir.Dot(origin.Sub(vi).Cross(vj.Sub(vi))) < 0 {
			return 0, math.Vec3{}, false
		}
	}

	plane := math.PlaneFromTriangle(a, b, c)
	den := plane.Normal.Dot(dir)
	if den == 0 {
		return 0, math.Vec3{}, false
	}
	param := -plane.SignedDistance(origin) / den
	if param < 0 {
		return 0, math.Vec3{}, false
	}
	return param, plane.Normal, true
}

// Raycast walks the ray origin + ray*t quad by quad from the quad under origin toward
// the quad under origin+ray and returns the first surface hit. The walk stops without a
// hit when it reaches the end quad, leaves the terrain, or finds no exit side.
// Hit points are snapped onto the surface so they agree with SurfaceAt.
func (t *Terrain) Raycast(origin, ray math.Vec3) (Hit, bool) {
	cur, ok := t.locateClosed(origin.X, origin.Z)
	if !ok {
		return Hit{}, false
	}
	endPos := origin.Add(ray)
	end, endOK := t.locateClosed(endPos.X, endPos.Z)

	limit := t.tripLimit(cur, end, endOK)
	for trips := 0; ; trips++ {
		if trips > limit {
			logger.Named("terrain").Warn("raycast exceeded trip limit",
				zap.Int("trips", trips),
				zap.Int("tile", cur.Tile),
				zap.Int("quadRow", cur.Row),
				zap.Int("quadCol", cur.Col))
			return Hit{}, false
		}

		if hit, ok := t.RaycastQuad(cur, origin, ray); ok {
			if p, n, ok := t.SurfaceAt(hit.Point.X, hit.Point.Z); ok {
				hit.Point.Y = p.Y
				hit.Normal = n
			}
			return hit, true
		}
		if endOK && cur == end {
			return Hit{}, false
		}

		dir, ok := t.exitSide(cur, origin, ray)
		if !ok {
			return Hit{}, false
		}
		if cur, ok = t.stepQuad(cur, dir); !ok {
			return Hit{}, false
		}
	}
}

// tripLimit bounds the walk. An axis-aligned walk between two quads visits their
// Manhattan distance plus one; the slack absorbs tolerance steps near corners.
func (t *Terrain) tripLimit(start, end QuadRef, endOK bool) int {
	if !endOK {
		return 2*(t.Rows+t.Cols)*t.Quads() + 4
	}
	r0, c0 := t.globalQuad(start)
	r1, c1 := t.globalQuad(end)
	return 2*(absInt(r1-r0)+absInt(c1-c0)) + 4
}

// exitSide finds the side of quad ref the ray leaves through. Only sides the ray moves
// outward across are considered, and the crossing must lie on the side's extent.
// Corner exits resolve in the order north (+z), east (+x), south (-z), west (-x).
func (t *Terrain) exitSide(ref QuadRef, origin, ray math.Vec3) (Direction, bool) {
	tile := &t.Tiles[ref.Tile]
	lo, _, _, hi := t.quadCorners(tile, ref.Row, ref.Col)
	x0, z0, x1, z1 := lo.X, lo.Z, hi.X, hi.Z
	dx, dz := ray.X, ray.Z
	eps := t.Spacing * 1e-4

	type side struct {
		dir   Direction
		param float32
		on    bool
	}
	var sides []side
	if dz > 0 {
		p := (z1 - origin.Z) / dz
		x := origin.X + p*dx
		sides = append(sides, side{North, p, x >= x0-eps && x <= x1+eps})
	}
	if dx > 0 {
		p := (x1 - origin.X) / dx
		z := origin.Z + p*dz
		sides = append(sides, side{East, p, z >= z0-eps && z <= z1+eps})
	}
	if dz < 0 {
		p := (z0 - origin.Z) / dz
		x := origin.X + p*dx
		sides = append(sides, side{South, p, x >= x0-eps && x <= x1+eps})
	}
	if dx < 0 {
		p := (x0 - origin.X) / dx
		z := origin.Z + p*dz
		sides = append(sides, side{West, p, z >= z0-eps && z <= z1+eps})
	}
	if len(sides) == 0 {
		return 0, false
	}

	for _, s := range sides {
		if s.on {
			return s.dir, true
		}
	}
	// Rounding put the crossing off every side; take the nearest outward one.
	best := sides[0]
	for _, s := range sides[1:] {
		if s.param < best.param {
			best = s
		}
	}
	return best.dir, true
}

// stepQuad moves one quad in dir, crossing into the neighbouring tile when the step
// leaves the current tile's quad range.
func (t *Terrain) stepQuad(ref QuadRef, dir Direction) (QuadRef, bool) {
	last := t.Quads() - 1
	next := ref
	switch dir {
	case North:
		next.Row++
	case South:
		next.Row--
	case East:
		next.Col++
	case West:
		next.Col--
	default:
		return ref, false
	}
	if next.Row >= 0 && next.Row <= last && next.Col >= 0 && next.Col <= last {
		return next, true
	}

	tile, ok := t.Neighbor(ref.Tile, dir)
	if !ok {
		return QuadRef{Tile: Invalid}, false
	}
	next.Tile = tile
	switch {
	case next.Row > last:
		next.Row = 0
	case next.Row < 0:
		next.Row = last
	case next.Col > last:
		next.Col = 0
	case next.Col < 0:
		next.Col = last
	}
	return next, true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
