package vegetation

import (
	"github.com/Faultbox/highland/internal/engine/camera"
	"github.com/Faultbox/highland/internal/engine/terrain"
	"github.com/Faultbox/highland/pkg/math"
)

// ClearNearVertex removes the plants within ClearRadius of terrain vertex (vr, vc) of
// tile (row, col), using the tile layout of ter. Vertices on a tile edge also clear
// the tile across that edge, and corner vertices the diagonal tile too.
// It returns how many plants were removed.
func (g *Grid) ClearNearVertex(ter *terrain.Terrain, row, col, vr, vc int) int {
	index := g.Index(row, col)
	if index == terrain.Invalid || g.ClearRadius <= 0 {
		return 0
	}
	v, err := ter.VertexAt(index, vr, vc)
	if err != nil {
		return 0
	}

	r := g.ClearRadius
	box := camera.Box{MinX: v.X - r, MinZ: v.Z - r, MaxX: v.X + r, MaxZ: v.Z + r}

	removed := g.clearBox(index, box)
	last := ter.Quads()
	for _, dir := range edgeDirections(vr, vc, last) {
		if n, ok := g.Neighbor(index, dir); ok {
			removed += g.clearBox(n, box)
		}
	}
	return removed
}

// ClearBox removes the plants of tile index strictly inside box.
func (g *Grid) ClearBox(index int, box camera.Box) int {
	if !g.Valid(index) {
		return 0
	}
	return g.clearBox(index, box)
}

func (g *Grid) clearBox(index int, box camera.Box) int {
	tile := &g.Tiles[index]
	removed := 0
	for _, p := range tile.Plants {
		if strictlyInside(box, p.Position) {
			removed++
		}
	}
	if removed == 0 {
		return 0
	}

	kept := make([]Plant, 0, len(tile.Plants)-removed)
	for _, p := range tile.Plants {
		if !strictlyInside(box, p.Position) {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		kept = nil
	}
	tile.Plants = kept
	return removed
}

func strictlyInside(b camera.Box, p math.Vec3) bool {
	return p.X > b.MinX && p.X < b.MaxX && p.Z > b.MinZ && p.Z < b.MaxZ
}

// edgeDirections lists the neighbours that share vertex (vr, vc) of a tile with last as its far index.
func edgeDirections(vr, vc, last int) []terrain.Direction {
	var dirs []terrain.Direction
	south, north := vr == 0, vr == last
	west, east := vc == 0, vc == last
	if south {
		dirs = append(dirs, terrain.South)
	}
	if north {
		dirs = append(dirs, terrain.North)
	}
	if west {
		dirs = append(dirs, terrain.West)
	}
	if east {
		dirs = append(dirs, terrain.East)
	}
	switch {
	case south && west:
		dirs = append(dirs, terrain.SouthWest)
	case south && east:
		dirs = append(dirs, terrain.SouthEast)
	case north && west:
		dirs = append(dirs, terrain.NorthWest)
	case north && east:
		dirs = append(dirs, terrain.NorthEast)
	}
	return dirs
}
