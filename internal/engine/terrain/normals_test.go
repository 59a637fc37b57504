package terrain

import (
	"testing"

	"github.com/Faultbox/highland/pkg/math"
)

func TestNormalsFlat(t *testing.T) {
	ter, err := Flat(2, 2, 3, smallOptions())
	if err != nil {
		t.Fatalf("Flat failed: %v", err)
	}
	for i := range ter.Tiles {
		for vr := range ter.TileVertices {
			for vc := range ter.TileVertices {
				n, _ := ter.NormalAt(i, vr, vc)
				if n != math.Up {
					t.Fatalf("tile %d vertex (%d, %d) normal %v", i, vr, vc, n)
				}
			}
		}
	}
}

func TestNormalsSlope(t *testing.T) {
	// y = x: every normal is (-1, 1, 0)/sqrt(2).
	ter := mustNew(t, 1, 2, smallOptions(), func(row, col int) float32 { return float32(col) * 10 })
	want := math.Vec3{X: -1, Y: 1}.Normalize()
	for i := range ter.Tiles {
		n, _ := ter.NormalAt(i, 2, 2)
		if !vecNear(n, want, 1e-5) {
			t.Errorf("tile %d normal %v, want %v", i, n, want)
		}
	}
}

func seamHeights(row, col int) float32 {
	return float32(col*col) * 0.5
}

func TestNormalsSeamPreservedByDefault(t *testing.T) {
	ter := mustNew(t, 1, 2, smallOptions(), seamHeights)

	left, _ := ter.NormalAt(0, 2, 4)
	right, _ := ter.NormalAt(1, 2, 0)
	if vecNear(left, right, 1e-6) {
		t.Errorf("expected different normals across the seam, both %v", left)
	}
}

func TestNormalsSeamBlended(t *testing.T) {
	opts := smallOptions()
	opts.BlendSeamNormals = true
	ter := mustNew(t, 1, 2, opts, seamHeights)

	for vr := range ter.TileVertices {
		left, _ := ter.NormalAt(0, vr, 4)
		right, _ := ter.NormalAt(1, vr, 0)
		if left != right {
			t.Errorf("row %d: blended normals differ: %v vs %v", vr, left, right)
		}
	}
}

func TestRecomputeNormalsNeighbours(t *testing.T) {
	ter := mustNew(t, 3, 3, smallOptions(), bumpy)
	if got := ter.RecomputeNormals([]int{4, 4, 99}); len(got) != 1 || got[0] != 4 {
		t.Errorf("RecomputeNormals without blending = %v, want [4]", got)
	}

	ter.BlendSeamNormals = true
	if got := ter.RecomputeNormals([]int{0}); len(got) != 4 {
		t.Errorf("RecomputeNormals with blending = %v, want 4 tiles", got)
	}
}
