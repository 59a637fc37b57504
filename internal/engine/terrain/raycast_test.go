package terrain

import (
	"math/rand/v2"
	"testing"

	"github.com/Faultbox/highland/pkg/math"
)

func TestRaycastFlatScenario(t *testing.T) {
	ter, err := Flat(3, 3, 10, DefaultOptions())
	if err != nil {
		t.Fatalf("Flat failed: %v", err)
	}

	points := []math.Vec2{{X: 5, Y: 5}, {X: 1234.5, Y: 2001.25}, {X: 990, Y: 990}, {X: 2900, Y: 100}}
	for _, p := range points {
		hit, ok := ter.Raycast(math.Vec3{X: p.X, Y: 1000, Z: p.Y}, math.Vec3{Y: -1})
		if !ok {
			t.Fatalf("no hit below %v", p)
		}
		if hit.Point.Y != 10 {
			t.Errorf("hit at %v has y=%f, want 10", p, hit.Point.Y)
		}
		if hit.Point.X != p.X || hit.Point.Z != p.Y {
			t.Errorf("hit xz (%f, %f), want (%f, %f)", hit.Point.X, hit.Point.Z, p.X, p.Y)
		}
		if hit.Normal != math.Up {
			t.Errorf("hit normal %v, want up", hit.Normal)
		}
	}
}

func TestRaycastDownMatchesSurface(t *testing.T) {
	ter := mustNew(t, 3, 3, smallOptions(), bumpy)
	ex, ez := ter.Extent()
	rng := rand.New(rand.NewPCG(7, 11))

	for range 2000 {
		x := rng.Float32() * ex
		z := rng.Float32() * ez

		hit, ok := ter.Raycast(math.Vec3{X: x, Y: 5000, Z: z}, math.Vec3{Y: -1})
		if !ok {
			t.Fatalf("no hit below (%f, %f)", x, z)
		}
		want, _, _ := ter.SurfaceAt(x, z)
		if hit.Point.X != x || hit.Point.Z != z || hit.Point.Y != want.Y {
			t.Fatalf("hit %v, surface %v", hit.Point, want)
		}
	}
}

func TestRaycastDownAtVertices(t *testing.T) {
	ter := mustNew(t, 2, 2, smallOptions(), bumpy)
	for vr := range ter.TileVertices {
		for vc := range ter.TileVertices {
			v, _ := ter.VertexAt(3, vr, vc)
			hit, ok := ter.Raycast(math.Vec3{X: v.X, Y: 1000, Z: v.Z}, math.Vec3{Y: -1})
			if !ok {
				t.Fatalf("no hit above vertex %v", v)
			}
			if hit.Point.Y != v.Y {
				t.Fatalf("hit y %f above vertex %v", hit.Point.Y, v)
			}
		}
	}
}

func TestRaycastSlanted(t *testing.T) {
	ter, err := Flat(3, 3, 10, DefaultOptions())
	if err != nil {
		t.Fatalf("Flat failed: %v", err)
	}

	// Drops 100 over 100 units of x: reaches y=10 at x=200, crossing several quads.
	hit, ok := ter.Raycast(math.Vec3{X: 100, Y: 110, Z: 505}, math.Vec3{X: 2000, Y: -2000})
	if !ok {
		t.Fatal("expected a hit")
	}
	if absf(hit.Point.X-200) > 1e-2 || hit.Point.Y != 10 || hit.Point.Z != 505 {
		t.Errorf("hit at %v, want (200, 10, 505)", hit.Point)
	}

	// Crossing a tile seam diagonally.
	hit, ok = ter.Raycast(math.Vec3{X: 900, Y: 310, Z: 900}, math.Vec3{X: 3000, Y: -3000, Z: 3000})
	if !ok {
		t.Fatal("expected a hit across the seam")
	}
	if absf(hit.Point.X-1200) > 1e-2 || absf(hit.Point.Z-1200) > 1e-2 {
		t.Errorf("hit at %v, want (1200, 10, 1200)", hit.Point)
	}
	if hit.Quad.Tile != 4 {
		t.Errorf("expected hit in centre tile, got %d", hit.Quad.Tile)
	}
}

func TestRaycastNoHit(t *testing.T) {
	ter, err := Flat(2, 2, 10, smallOptions())
	if err != nil {
		t.Fatalf("Flat failed: %v", err)
	}

	tests := []struct {
		name   string
		origin math.Vec3
		ray    math.Vec3
	}{
		{"pointing up", math.Vec3{X: 5, Y: 20, Z: 5}, math.Vec3{X: 30, Y: 50, Z: 20}},
		{"stops at end quad", math.Vec3{X: 5, Y: 100, Z: 5}, math.Vec3{X: 20, Y: -1, Z: 0}},
		{"leaves the map", math.Vec3{X: 70, Y: 100, Z: 70}, math.Vec3{X: 1e4, Y: -1, Z: 3e3}},
		{"origin off map", math.Vec3{X: -5, Y: 100, Z: 5}, math.Vec3{Y: -1}},
		{"below the surface", math.Vec3{X: 5, Y: 0, Z: 5}, math.Vec3{Y: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit, ok := ter.Raycast(tt.origin, tt.ray); ok {
				t.Errorf("unexpected hit at %v", hit.Point)
			}
		})
	}
}

func TestRaycastTerminates(t *testing.T) {
	ter := mustNew(t, 3, 3, smallOptions(), bumpy)
	ex, ez := ter.Extent()
	rng := rand.New(rand.NewPCG(3, 5))

	for range 3000 {
		origin := math.Vec3{X: rng.Float32() * ex, Y: rng.Float32()*40 - 10, Z: rng.Float32() * ez}
		ray := math.Vec3{
			X: (rng.Float32()*2 - 1) * 500,
			Y: (rng.Float32()*2 - 1) * 50,
			Z: (rng.Float32()*2 - 1) * 500,
		}
		if ray.X == 0 && ray.Z == 0 {
			continue
		}
		// Raycast bounds its own walk; reaching here at all is the property.
		if hit, ok := ter.Raycast(origin, ray); ok && hit.T < 0 {
			t.Fatalf("hit behind origin: %+v", hit)
		}
	}
}

func TestExitSideCornerTieBreak(t *testing.T) {
	ter, err := Flat(1, 1, 0, smallOptions())
	if err != nil {
		t.Fatalf("Flat failed: %v", err)
	}
	ref := QuadRef{Tile: 0, Row: 1, Col: 1}
	origin := math.Vec3{X: 15, Y: 5, Z: 15}

	tests := []struct {
		name string
		ray  math.Vec3
		want Direction
	}{
		{"north east corner", math.Vec3{X: 1, Z: 1}, North},
		{"south east corner", math.Vec3{X: 1, Z: -1}, East},
		{"south west corner", math.Vec3{X: -1, Z: -1}, South},
		{"north west corner", math.Vec3{X: -1, Z: 1}, North},
		{"straight west", math.Vec3{X: -1}, West},
		{"mostly east", math.Vec3{X: 1, Z: 0.2}, East},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ter.exitSide(ref, origin, tt.ray)
			if !ok || got != tt.want {
				t.Errorf("exitSide = %v, %v; want %v", got, ok, tt.want)
			}
		})
	}

	if _, ok := ter.exitSide(ref, origin, math.Vec3{Y: -1}); ok {
		t.Error("vertical ray has no exit side")
	}
}

func TestStepQuadCrossesTiles(t *testing.T) {
	ter, err := Flat(2, 2, 0, smallOptions())
	if err != nil {
		t.Fatalf("Flat failed: %v", err)
	}

	next, ok := ter.stepQuad(QuadRef{Tile: 0, Row: 2, Col: 3}, East)
	if !ok || next != (QuadRef{Tile: 1, Row: 2, Col: 0}) {
		t.Errorf("east step = %+v, %v", next, ok)
	}
	next, ok = ter.stepQuad(QuadRef{Tile: 3, Row: 0, Col: 1}, South)
	if !ok || next != (QuadRef{Tile: 1, Row: 3, Col: 1}) {
		t.Errorf("south step = %+v, %v", next, ok)
	}
	if _, ok := ter.stepQuad(QuadRef{Tile: 1, Row: 1, Col: 3}, East); ok {
		t.Error("stepping off the east edge should fail")
	}
}
