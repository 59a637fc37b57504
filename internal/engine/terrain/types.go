// Package terrain holds the tiled heightfield and the spatial queries run against it:
// tile and quad location, surface height, ray intersection and footprint flattening.
package terrain

import (
	"errors"

	"github.com/Faultbox/highland/pkg/math"
)

// Vertex layout inside Tile.Vertices: position xyz, normal xyz, texcoord uv.
const (
	FloatsPerVertex = 8

	offsetPosition = 0
	offsetNormal   = 3
	offsetTexCoord = 6
)

// Terrain errors.
var (
	ErrInvalidLayout  = errors.New("invalid terrain layout")
	ErrTileOutOfRange = errors.New("tile index out of range")
	ErrQuadOutOfRange = errors.New("quad index exceeds tile vertex bounds")
	ErrEmptyElevation = errors.New("elevation source has no samples")
)

// Layout fixes the per-tile vertex patch shared by every tile.
type Layout struct {
	TileVertices int     // vertices per tile edge
	Spacing      float32 // world units between neighbouring vertices
}

// DefaultLayout is a 100x100 vertex patch with 10 unit spacing (990 units per tile side).
var DefaultLayout = Layout{TileVertices: 100, Spacing: 10}

// Quads returns the number of quads per tile edge.
func (l Layout) Quads() int {
	return l.TileVertices - 1
}

// TileSide returns the world length of a tile edge.
func (l Layout) TileSide() float32 {
	return float32(l.Quads()) * l.Spacing
}

func (l Layout) validate() error {
	if l.TileVertices < 2 || l.Spacing <= 0 {
		return ErrInvalidLayout
	}
	return nil
}

// Options tune how tiles are built.
type Options struct {
	Layout
	// BlendSeamNormals averages vertex normals across tile edges. When false each
	// tile's normals only see its own quads, leaving a visible lighting seam.
	BlendSeamNormals bool
	// TextureRepeat is how many times the ground texture repeats along a tile edge.
	TextureRepeat float32
}

// DefaultOptions returns the reference tiling with seam normals left per-tile.
func DefaultOptions() Options {
	return Options{Layout: DefaultLayout, TextureRepeat: 16}
}

// Tile is one square heightfield patch.
type Tile struct {
	Index    int
	Row, Col int
	Corner   math.Vec2 // world (x, z) of the lowest corner
	Center   math.Vec2
	MinY     float32
	MaxY     float32
	Vertices []float32 // TileVertices^2 interleaved vertices, row-major along z
}

// Terrain is the full tiled heightfield.
type Terrain struct {
	Grid
	Options

	Tiles   []Tile
	Indices []uint32 // two triangles per quad, identical for every tile

	uploader Uploader
}

// QuadRef addresses one quad: a tile plus the quad's row/col inside it.
type QuadRef struct {
	Tile     int
	Row, Col int
}

// Extent returns the world size of the terrain along x and z.
func (t *Terrain) Extent() (x, z float32) {
	side := t.TileSide()
	return float32(t.Cols) * side, float32(t.Rows) * side
}

// Tile returns the tile at index, or nil when out of range.
func (t *Terrain) Tile(index int) *Tile {
	if !t.Valid(index) {
		return nil
	}
	return &t.Tiles[index]
}

// VertexAt returns the position of vertex (vr, vc) in tile index.
func (t *Terrain) VertexAt(index, vr, vc int) (math.Vec3, error) {
	tile := t.Tile(index)
	if tile == nil {
		return math.Vec3{}, ErrTileOutOfRange
	}
	if vr < 0 || vc < 0 || vr >= t.TileVertices || vc >= t.TileVertices {
		return math.Vec3{}, ErrQuadOutOfRange
	}
	return t.vertex(tile, vr, vc), nil
}

// NormalAt returns the stored vertex normal of vertex (vr, vc) in tile index.
func (t *Terrain) NormalAt(index, vr, vc int) (math.Vec3, error) {
	tile := t.Tile(index)
	if tile == nil {
		return math.Vec3{}, ErrTileOutOfRange
	}
	if vr < 0 || vc < 0 || vr >= t.TileVertices || vc >= t.TileVertices {
		return math.Vec3{}, ErrQuadOutOfRange
	}
	o := t.offset(vr, vc) + offsetNormal
	v := tile.Vertices
	return math.Vec3{X: v[o], Y: v[o+1], Z: v[o+2]}, nil
}

func (t *Terrain) offset(vr, vc int) int {
	return (vr*t.TileVertices + vc) * FloatsPerVertex
}

func (t *Terrain) vertex(tile *Tile, vr, vc int) math.Vec3 {
	o := t.offset(vr, vc) + offsetPosition
	v := tile.Vertices
	return math.Vec3{X: v[o], Y: v[o+1], Z: v[o+2]}
}

func (t *Terrain) setHeight(tile *Tile, vr, vc int, y float32) {
	tile.Vertices[t.offset(vr, vc)+offsetPosition+1] = y
}

func (t *Terrain) setNormal(tile *Tile, vr, vc int, n math.Vec3) {
	o := t.offset(vr, vc) + offsetNormal
	tile.Vertices[o] = n.X
	tile.Vertices[o+1] = n.Y
	tile.Vertices[o+2] = n.Z
}

// quadCorners returns the quad's origin, +x, +z and +x+z corner vertices.
func (t *Terrain) quadCorners(tile *Tile, qr, qc int) (o, x, z, xz math.Vec3) {
	o = t.vertex(tile, qr, qc)
	x = t.vertex(tile, qr, qc+1)
	z = t.vertex(tile, qr+1, qc)
	xz = t.vertex(tile, qr+1, qc+1)
	return
}

func (t *Terrain) updateBounds(tile *Tile) {
	n := t.TileVertices
	tile.MinY = tile.Vertices[offsetPosition+1]
	tile.MaxY = tile.MinY
	for i := 0; i < n*n; i++ {
		y := tile.Vertices[i*FloatsPerVertex+offsetPosition+1]
		tile.MinY = min(tile.MinY, y)
		tile.MaxY = max(tile.MaxY, y)
	}
}
