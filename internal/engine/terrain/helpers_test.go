package terrain

import (
	"testing"

	"github.com/Faultbox/highland/pkg/math"
)

// smallOptions is a 5x5 vertex tile (4x4 quads, 40 units per side).
func smallOptions() Options {
	return Options{Layout: Layout{TileVertices: 5, Spacing: 10}, TextureRepeat: 1}
}

// bumpy returns a height function with distinct slopes in every quad.
func bumpy(row, col int) float32 {
	return float32((row*7+col*13)%11) + float32(row)*0.5 - float32(col)*0.25
}

func mustNew(t *testing.T, rows, cols int, opts Options, h HeightFunc) *Terrain {
	t.Helper()
	ter, err := New(rows, cols, opts, h)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return ter
}

func vecNear(a, b math.Vec3, eps float32) bool {
	return absf(a.X-b.X) <= eps && absf(a.Y-b.Y) <= eps && absf(a.Z-b.Z) <= eps
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
