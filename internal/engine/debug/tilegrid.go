// Package debug builds line meshes for tile boundaries and elevation contours, and
// writes PNG snapshots.
package debug

import (
	"github.com/Faultbox/highland/internal/engine/terrain"
)

// TileVertex represents a vertex for debug line rendering.
type TileVertex struct {
	X, Y, Z float32 // Position
	R, G, B float32 // Color
}

// TileGridRenderer generates debug visualization for the terrain tile grid.
type TileGridRenderer struct {
	ter *terrain.Terrain
}

// NewTileGridRenderer creates a new tile grid renderer.
func NewTileGridRenderer(ter *terrain.Terrain) *TileGridRenderer {
	if ter == nil {
		return nil
	}
	return &TileGridRenderer{ter: ter}
}

// GenerateGridLines generates line vertices along the boundaries of the given tiles,
// draped over the surface and lifted by lift. Each segment is two vertices.
func (t *TileGridRenderer) GenerateGridLines(tiles []int, lift float32) []TileVertex {
	if t == nil {
		return nil
	}

	n := t.ter.TileVertices
	gridColor := [3]float32{0.9, 0.9, 0.2}

	var vertices []TileVertex
	edge := func(tile, r0, c0, dr, dc int) {
		for i := 0; i < n-1; i++ {
			a, _ := t.ter.VertexAt(tile, r0+dr*i, c0+dc*i)
			b, _ := t.ter.VertexAt(tile, r0+dr*(i+1), c0+dc*(i+1))
			vertices = append(vertices,
				TileVertex{a.X, a.Y + lift, a.Z, gridColor[0], gridColor[1], gridColor[2]},
				TileVertex{b.X, b.Y + lift, b.Z, gridColor[0], gridColor[1], gridColor[2]},
			)
		}
	}

	for _, tile := range tiles {
		if t.ter.Tile(tile) == nil {
			continue
		}
		// South and west edges; north and east ones only where no tile follows,
		// so shared edges are drawn once.
		edge(tile, 0, 0, 0, 1)
		edge(tile, 0, 0, 1, 0)
		if _, ok := t.ter.Neighbor(tile, terrain.North); !ok {
			edge(tile, n-1, 0, 0, 1)
		}
		if _, ok := t.ter.Neighbor(tile, terrain.East); !ok {
			edge(tile, 0, n-1, 1, 0)
		}
	}
	return vertices
}

// TileInfo contains information about a specific tile.
type TileInfo struct {
	Index    int
	Row, Col int
	Corner   [2]float32
	MinY     float32
	MaxY     float32
	Heights  [4]float32 // origin, +x, +z, +x+z corner heights
}

// GetTileInfo returns information about a specific tile.
func (t *TileGridRenderer) GetTileInfo(index int) *TileInfo {
	if t == nil {
		return nil
	}
	tile := t.ter.Tile(index)
	if tile == nil {
		return nil
	}

	last := t.ter.TileVertices - 1
	info := &TileInfo{
		Index:  index,
		Row:    tile.Row,
		Col:    tile.Col,
		Corner: [2]float32{tile.Corner.X, tile.Corner.Y},
		MinY:   tile.MinY,
		MaxY:   tile.MaxY,
	}
	corners := [4][2]int{{0, 0}, {0, last}, {last, 0}, {last, last}}
	for i, rc := range corners {
		v, _ := t.ter.VertexAt(index, rc[0], rc[1])
		info.Heights[i] = v.Y
	}
	return info
}
