package terrain

import (
	"math/rand/v2"
	"testing"
)

func TestLocateRoundTrip(t *testing.T) {
	ter := mustNew(t, 3, 4, smallOptions(), bumpy)
	side := ter.TileSide()
	ex, ez := ter.Extent()
	rng := rand.New(rand.NewPCG(1, 2))

	for range 5000 {
		x := rng.Float32() * ex
		z := rng.Float32() * ez

		idx, ok := ter.Locate(x, z)
		if !ok {
			t.Fatalf("Locate(%f, %f) not on map", x, z)
		}
		cx, cz, _ := ter.TileCorner(idx)
		if x < cx || x >= cx+side || z < cz || z >= cz+side {
			t.Fatalf("(%f, %f) not inside tile %d at (%f, %f)", x, z, idx, cx, cz)
		}

		ref, ok := ter.LocateQuad(x, z)
		if !ok || ref.Tile != idx {
			t.Fatalf("LocateQuad disagrees with Locate: %+v vs %d", ref, idx)
		}
		qx := cx + float32(ref.Col)*ter.Spacing
		qz := cz + float32(ref.Row)*ter.Spacing
		if x < qx || x > qx+ter.Spacing || z < qz || z > qz+ter.Spacing {
			t.Fatalf("(%f, %f) not inside quad %+v", x, z, ref)
		}
	}
}

func TestLocateOffMap(t *testing.T) {
	ter := mustNew(t, 2, 2, smallOptions(), bumpy)

	tests := []struct {
		name string
		x, z float32
	}{
		{"negative x", -0.01, 10},
		{"negative z", 10, -0.01},
		{"far x edge", 80, 10},
		{"far z edge", 10, 80},
		{"way out", 1e6, 1e6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if idx, ok := ter.Locate(tt.x, tt.z); ok || idx != Invalid {
				t.Errorf("Locate(%f, %f) = %d, %v; want off map", tt.x, tt.z, idx, ok)
			}
		})
	}
}

func TestLocateTileBoundary(t *testing.T) {
	ter := mustNew(t, 2, 2, smallOptions(), bumpy)

	// A point on a shared edge belongs to the tile starting there.
	idx, ok := ter.Locate(40, 40)
	if !ok || idx != 3 {
		t.Errorf("Locate(40, 40) = %d, %v; want 3", idx, ok)
	}
	ref, _ := ter.LocateQuad(40, 40)
	if ref.Row != 0 || ref.Col != 0 {
		t.Errorf("expected quad (0, 0), got (%d, %d)", ref.Row, ref.Col)
	}
}

func TestTileRange(t *testing.T) {
	ter := mustNew(t, 3, 3, smallOptions(), bumpy)

	r0, c0, r1, c1, ok := ter.TileRange(-50, 35, 45, 200)
	if !ok {
		t.Fatal("expected overlap")
	}
	if r0 != 0 || c0 != 0 || r1 != 2 || c1 != 1 {
		t.Errorf("TileRange = rows %d..%d cols %d..%d", r0, r1, c0, c1)
	}

	if _, _, _, _, ok := ter.TileRange(-100, -100, -10, -10); ok {
		t.Error("expected no overlap for a box left of the map")
	}
}
