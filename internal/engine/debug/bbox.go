package debug

import "github.com/Faultbox/highland/internal/engine/terrain"

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// GenerateBBoxWireframeVertices creates line vertices for a wireframe bounding box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
func GenerateBBoxWireframeVertices(minX, minY, minZ, maxX, maxY, maxZ float32) []float32 {
	return []float32{
		// Bottom face
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// GenerateTileBounds returns wireframe boxes spanning each tile's footprint and height range.
func GenerateTileBounds(ter *terrain.Terrain, tiles []int) []float32 {
	side := ter.TileSide()
	out := make([]float32, 0, len(tiles)*BBoxWireframeVertexCount*3)
	for _, i := range tiles {
		tile := ter.Tile(i)
		if tile == nil {
			continue
		}
		out = append(out, GenerateBBoxWireframeVertices(
			tile.Corner.X, tile.MinY, tile.Corner.Y,
			tile.Corner.X+side, tile.MaxY, tile.Corner.Y+side,
		)...)
	}
	return out
}

// GenerateMarkerBox returns a wireframe cube of half-size half standing on pos.
func GenerateMarkerBox(pos [3]float32, half float32) []float32 {
	return GenerateBBoxWireframeVertices(
		pos[0]-half, pos[1], pos[2]-half,
		pos[0]+half, pos[1]+2*half, pos[2]+half,
	)
}
