package terrain

import (
	gomath "math"

	"github.com/Faultbox/highland/pkg/math"
)

// Footprint is a rectangle on the ground plane, rotated about its centre.
type Footprint struct {
	Center       math.Vec2
	HalfX, HalfZ float32
	Yaw          float32 // radians, same sense as math.RotateY

	corners [4]math.Vec2
	normals [4]math.Vec2
}

// NewFootprint builds a footprint of full widths xWidth by zWidth rotated by yawDeg degrees.
func NewFootprint(center math.Vec2, xWidth, zWidth, yawDeg float32) Footprint {
	f := Footprint{
		Center: center,
		HalfX:  xWidth / 2,
		HalfZ:  zWidth / 2,
		Yaw:    yawDeg * gomath.Pi / 180,
	}

	// Clockwise seen from above, so edge x down points inward.
	local := [4]math.Vec2{
		{X: -f.HalfX, Y: -f.HalfZ},
		{X: -f.HalfX, Y: f.HalfZ},
		{X: f.HalfX, Y: f.HalfZ},
		{X: f.HalfX, Y: -f.HalfZ},
	}
	for i, c := range local {
		f.corners[i] = c.Rotate(f.Yaw).Add(center)
	}
	for i := range f.corners {
		edge := f.corners[(i+1)%4].Sub(f.corners[i]).XZ(0)
		f.normals[i] = edge.Cross(math.Down).XZ()
	}
	return f
}

// Corners returns the rotated corners in world (x, z).
func (f Footprint) Corners() [4]math.Vec2 {
	return f.corners
}

// Contains reports whether p lies inside or on the footprint: on the inner side of all four edges.
func (f Footprint) Contains(p math.Vec2) bool {
	for i := range f.corners {
		if p.Sub(f.corners[i]).Dot(f.normals[i]) < 0 {
			return false
		}
	}
	return true
}

// Bounds returns the axis-aligned box around the rotated corners.
func (f Footprint) Bounds() (lo, hi math.Vec2) {
	lo, hi = f.corners[0], f.corners[0]
	for _, c := range f.corners[1:] {
		lo.X, lo.Y = min(lo.X, c.X), min(lo.Y, c.Y)
		hi.X, hi.Y = max(hi.X, c.X), max(hi.Y, c.Y)
	}
	return lo, hi
}

// VertexFunc is called for every vertex a flatten rewrites.
type VertexFunc func(tile *Tile, vr, vc int)

// Flatten sets every vertex inside fp to the surface height under fp's centre, calling
// visit for each rewritten vertex. Shared edge vertices are rewritten in each tile that
// holds them. Normals of the touched tiles are recomputed and the tiles re-uploaded.
// It returns the flattened height and the tiles whose vertex data changed; ok is false
// when the centre is off the map, in which case nothing changes.
func (t *Terrain) Flatten(fp Footprint, visit VertexFunc) (height float32, changed []int, ok bool, err error) {
	height, ok = t.HeightAt(fp.Center.X, fp.Center.Y)
	if !ok {
		return 0, nil, false, nil
	}

	lo, hi := fp.Bounds()
	r0, c0, r1, c1, ok := t.TileRange(lo.X, lo.Y, hi.X, hi.Y)
	if !ok {
		return height, nil, true, nil
	}

	var touched []int
	n := t.TileVertices
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			tile := &t.Tiles[row*t.Cols+col]
			hit := false
			for vr := range n {
				for vc := range n {
					v := t.vertex(tile, vr, vc)
					if !fp.Contains(v.XZ()) {
						continue
					}
					t.setHeight(tile, vr, vc, height)
					hit = true
					if visit != nil {
						visit(tile, vr, vc)
					}
				}
			}
			if hit {
				t.updateBounds(tile)
				touched = append(touched, tile.Index)
			}
		}
	}
	if len(touched) == 0 {
		return height, nil, true, nil
	}

	changed = t.RecomputeNormals(touched)
	if err := t.Upload(changed); err != nil {
		return height, changed, true, err
	}
	return height, changed, true, nil
}
