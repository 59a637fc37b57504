package terrain

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/highland/internal/logger"
	"github.com/Faultbox/highland/pkg/formats"
	"github.com/Faultbox/highland/pkg/math"
)

// HeightFunc returns the elevation of the global vertex (row, col), with row 0 on the -z edge.
type HeightFunc func(row, col int) float32

// New builds a rows x cols tile terrain, sampling every vertex from height.
// Neighbouring tiles share their edge vertices, so height is called with global indices.
func New(rows, cols int, opts Options, height HeightFunc) (*Terrain, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d tiles", ErrInvalidLayout, rows, cols)
	}
	if opts.TextureRepeat <= 0 {
		opts.TextureRepeat = 1
	}

	t := &Terrain{
		Grid:    Grid{Rows: rows, Cols: cols},
		Options: opts,
		Tiles:   make([]Tile, rows*cols),
		Indices: buildIndices(opts.TileVertices),
	}

	side := t.TileSide()
	n := opts.TileVertices
	q := opts.Quads()
	for row := range rows {
		for col := range cols {
			index := row*cols + col
			tile := &t.Tiles[index]
			tile.Index = index
			tile.Row = row
			tile.Col = col
			tile.Corner = math.Vec2{X: float32(col) * side, Y: float32(row) * side}
			tile.Center = tile.Corner.Add(math.Vec2{X: side / 2, Y: side / 2})
			tile.Vertices = make([]float32, n*n*FloatsPerVertex)

			for vr := range n {
				for vc := range n {
					gr, gc := row*q+vr, col*q+vc
					o := t.offset(vr, vc)
					v := tile.Vertices[o : o+FloatsPerVertex]
					v[0] = float32(gc) * opts.Spacing
					v[1] = height(gr, gc)
					v[2] = float32(gr) * opts.Spacing
					v[offsetTexCoord] = float32(vc) / float32(q) * opts.TextureRepeat
					v[offsetTexCoord+1] = float32(vr) / float32(q) * opts.TextureRepeat
				}
			}
			t.updateBounds(tile)
		}
	}

	t.ComputeNormals()

	logger.Named("terrain").Info("terrain built",
		zap.Int("rows", rows),
		zap.Int("cols", cols),
		zap.Int("tileVertices", n),
		zap.Float32("tileSide", side),
		zap.Bool("blendSeamNormals", opts.BlendSeamNormals))

	return t, nil
}

// Flat builds a terrain with every vertex at height y.
func Flat(rows, cols int, y float32, opts Options) (*Terrain, error) {
	return New(rows, cols, opts, func(int, int) float32 { return y })
}

// FromDEM builds a terrain covering every sample of dem. The grid size follows the DEM:
// cols = ceil((ncols-1)/quads), rows likewise. Vertices past the DEM's last row or column
// take the DEM's minimum elevation, as do samples the parser had to fill.
func FromDEM(dem *formats.DEM, opts Options) (*Terrain, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if dem == nil || len(dem.Elevations) == 0 {
		return nil, ErrEmptyElevation
	}

	q := opts.Quads()
	rows := max(1, ceilDiv(dem.Rows-1, q))
	cols := max(1, ceilDiv(dem.Cols-1, q))
	fill := float32(dem.Stats().Min)

	logger.Named("terrain").Debug("sizing terrain from DEM",
		zap.Int("demCols", dem.Cols),
		zap.Int("demRows", dem.Rows),
		zap.Int("filled", dem.Filled),
		zap.Float32("fill", fill))

	return New(rows, cols, opts, func(row, col int) float32 {
		if v, ok := dem.At(row, col); ok {
			return v
		}
		return fill
	})
}

// buildIndices returns the shared element buffer: per quad the triangles
// {+z, +x+z, +x} and {+z, +x, origin}, both wound so their normals face up.
func buildIndices(n int) []uint32 {
	q := n - 1
	indices := make([]uint32, 0, q*q*6)
	for qr := range q {
		for qc := range q {
			o := uint32(qr*n + qc)
			x := o + 1
			z := o + uint32(n)
			xz := z + 1
			indices = append(indices, z, xz, x, z, x, o)
		}
	}
	return indices
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
