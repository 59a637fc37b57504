package terrain

import "github.com/Faultbox/highland/pkg/math"

// ComputeNormals recomputes vertex normals for every tile.
func (t *Terrain) ComputeNormals() {
	for i := range t.Tiles {
		t.computeTileNormals(&t.Tiles[i])
	}
}

// RecomputeNormals recomputes vertex normals for the given tiles. With seam blending on,
// edge vertices depend on the neighbouring tiles too, so those are refreshed as well.
// It returns every tile whose normals were rewritten.
func (t *Terrain) RecomputeNormals(tiles []int) []int {
	seen := make(map[int]bool, len(tiles))
	var out []int
	add := func(i int) {
		if t.Valid(i) && !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	for _, i := range tiles {
		add(i)
		if t.BlendSeamNormals {
			for _, n := range t.Window(i) {
				add(n)
			}
		}
	}
	for _, i := range out {
		t.computeTileNormals(&t.Tiles[i])
	}
	return out
}

// computeTileNormals sums the unnormalised face normals of every triangle touching each
// vertex. Without seam blending only the tile's own quads count.
func (t *Terrain) computeTileNormals(tile *Tile) {
	n := t.TileVertices
	q := t.Quads()
	for vr := range n {
		for vc := range n {
			gr, gc := tile.Row*q+vr, tile.Col*q+vc
			var sum math.Vec3
			for dr := -1; dr <= 0; dr++ {
				for dc := -1; dc <= 0; dc++ {
					qr, qc := vr+dr, vc+dc
					if !t.BlendSeamNormals && (qr < 0 || qc < 0 || qr >= q || qc >= q) {
						continue
					}
					sum = sum.Add(t.quadNormalAt(gr+dr, gc+dc, -dr, -dc))
				}
			}
			t.setNormal(tile, vr, vc, sum.Normalize())
		}
	}
}

// quadNormalAt returns the summed face normals of the triangles of global quad (gqr, gqc)
// that touch its corner (cr, cc), where (0, 0) is the quad origin and (1, 1) its +x+z corner.
func (t *Terrain) quadNormalAt(gqr, gqc, cr, cc int) math.Vec3 {
	o, ok := t.globalVertex(gqr, gqc)
	if !ok {
		return math.Vec3{}
	}
	px, _ := t.globalVertex(gqr, gqc+1)
	pz, _ := t.globalVertex(gqr+1, gqc)
	pxz, ok := t.globalVertex(gqr+1, gqc+1)
	if !ok {
		return math.Vec3{}
	}

	upper := pxz.Sub(pz).Cross(px.Sub(pz))
	lower := px.Sub(pz).Cross(o.Sub(pz))
	switch {
	case cr == 0 && cc == 0:
		return lower
	case cr == 1 && cc == 1:
		return upper
	default:
		return upper.Add(lower)
	}
}

// globalVertex returns the vertex at whole-terrain vertex coordinates.
func (t *Terrain) globalVertex(gr, gc int) (math.Vec3, bool) {
	q := t.Quads()
	if gr < 0 || gc < 0 || gr > t.Rows*q || gc > t.Cols*q {
		return math.Vec3{}, false
	}
	row, col := min(gr/q, t.Rows-1), min(gc/q, t.Cols-1)
	tile := &t.Tiles[row*t.Cols+col]
	return t.vertex(tile, gr-row*q, gc-col*q), true
}
