package vegetation

import (
	"fmt"

	"github.com/Faultbox/highland/internal/engine/terrain"
	"github.com/Faultbox/highland/internal/game/items"
	"github.com/Faultbox/highland/pkg/math"
)

// DropItem leaves it on the ground in the tile under its position.
func (g *Grid) DropItem(it items.Item) (int, error) {
	if it.Quantity <= 0 {
		return terrain.Invalid, items.ErrBadQuantity
	}
	index, ok := g.Locate(it.Position.X, it.Position.Z)
	if !ok {
		return terrain.Invalid, fmt.Errorf("%w: (%.1f, %.1f)", ErrOffMap, it.Position.X, it.Position.Z)
	}
	tile := &g.Tiles[index]
	tile.Items = append(tile.Items, it)
	return index, nil
}

// ItemsNear returns copies of the ground items within radius of pos on the xz plane.
func (g *Grid) ItemsNear(pos math.Vec3, radius float32) []items.Item {
	var out []items.Item
	g.eachTileNear(pos, radius, func(tile *Tile) {
		for _, it := range tile.Items {
			if withinXZ(it.Position, pos, radius) {
				out = append(out, it)
			}
		}
	})
	return out
}

// TakeItems removes the ground items within radius of pos and returns them.
func (g *Grid) TakeItems(pos math.Vec3, radius float32) []items.Item {
	var taken []items.Item
	g.eachTileNear(pos, radius, func(tile *Tile) {
		kept := tile.Items[:0]
		for _, it := range tile.Items {
			if withinXZ(it.Position, pos, radius) {
				taken = append(taken, it)
				continue
			}
			kept = append(kept, it)
		}
		clear(tile.Items[len(kept):])
		tile.Items = kept
	})
	return taken
}

func (g *Grid) eachTileNear(pos math.Vec3, radius float32, fn func(*Tile)) {
	if radius < 0 {
		return
	}
	c0 := int(floorDiv(pos.X-radius, g.Side))
	c1 := int(floorDiv(pos.X+radius, g.Side))
	r0 := int(floorDiv(pos.Z-radius, g.Side))
	r1 := int(floorDiv(pos.Z+radius, g.Side))
	for row := max(r0, 0); row <= min(r1, g.Rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, g.Cols-1); col++ {
			fn(&g.Tiles[row*g.Cols+col])
		}
	}
}

func floorDiv(v, side float32) float32 {
	q := v / side
	if q < 0 && float32(int(q)) != q {
		return float32(int(q) - 1)
	}
	return float32(int(q))
}

func withinXZ(a, b math.Vec3, r float32) bool {
	dx, dz := a.X-b.X, a.Z-b.Z
	return dx*dx+dz*dz <= r*r
}
