package terrain

import gomath "math"

// Locate returns the index of the tile containing world (x, z).
// Positions outside [0, extent) on either axis are not on the map and return false.
func (t *Terrain) Locate(x, z float32) (int, bool) {
	side := t.TileSide()
	ex, ez := t.Extent()
	if !(x >= 0 && z >= 0 && x < ex && z < ez) {
		return Invalid, false
	}
	col := min(int(gomath.Floor(float64(x/side))), t.Cols-1)
	row := min(int(gomath.Floor(float64(z/side))), t.Rows-1)
	return row*t.Cols + col, true
}

// LocateQuad returns the tile and quad containing world (x, z).
func (t *Terrain) LocateQuad(x, z float32) (QuadRef, bool) {
	index, ok := t.Locate(x, z)
	if !ok {
		return QuadRef{Tile: Invalid}, false
	}
	qr, qc := t.quadInTile(&t.Tiles[index], x, z)
	return QuadRef{Tile: index, Row: qr, Col: qc}, true
}

// locateClosed is LocateQuad with the far x and z edges included, so the outer
// row and column of vertices can still be queried.
func (t *Terrain) locateClosed(x, z float32) (QuadRef, bool) {
	ex, ez := t.Extent()
	if !(x >= 0 && z >= 0 && x <= ex && z <= ez) {
		return QuadRef{Tile: Invalid}, false
	}
	side := t.TileSide()
	col := min(int(gomath.Floor(float64(x/side))), t.Cols-1)
	row := min(int(gomath.Floor(float64(z/side))), t.Rows-1)
	index := row*t.Cols + col
	qr, qc := t.quadInTile(&t.Tiles[index], x, z)
	return QuadRef{Tile: index, Row: qr, Col: qc}, true
}

// quadInTile clamps to the tile's quad range; rounding can land a point lying on
// the tile's far edge one quad past the end.
func (t *Terrain) quadInTile(tile *Tile, x, z float32) (qr, qc int) {
	q := t.Quads()
	qc = int(gomath.Floor(float64((x - tile.Corner.X) / t.Spacing)))
	qr = int(gomath.Floor(float64((z - tile.Corner.Y) / t.Spacing)))
	return clampInt(qr, 0, q-1), clampInt(qc, 0, q-1)
}

// TileCorner returns the world (x, z) corner of tile index.
func (t *Terrain) TileCorner(index int) (x, z float32, ok bool) {
	tile := t.Tile(index)
	if tile == nil {
		return 0, 0, false
	}
	return tile.Corner.X, tile.Corner.Y, true
}

// TileRange returns the inclusive tile row/col range overlapping the world
// rectangle [minX, maxX] x [minZ, maxZ], clipped to the grid.
func (t *Terrain) TileRange(minX, minZ, maxX, maxZ float32) (r0, c0, r1, c1 int, ok bool) {
	ex, ez := t.Extent()
	if maxX < 0 || maxZ < 0 || minX > ex || minZ > ez {
		return 0, 0, 0, 0, false
	}
	side := t.TileSide()
	c0 = clampInt(int(gomath.Floor(float64(minX/side))), 0, t.Cols-1)
	c1 = clampInt(int(gomath.Floor(float64(maxX/side))), 0, t.Cols-1)
	r0 = clampInt(int(gomath.Floor(float64(minZ/side))), 0, t.Rows-1)
	r1 = clampInt(int(gomath.Floor(float64(maxZ/side))), 0, t.Rows-1)
	return r0, c0, r1, c1, true
}

// globalQuad converts a quad reference to whole-terrain quad coordinates.
func (t *Terrain) globalQuad(ref QuadRef) (gr, gc int) {
	row, col := t.RowCol(ref.Tile)
	q := t.Quads()
	return row*q + ref.Row, col*q + ref.Col
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
