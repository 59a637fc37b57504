package moveables

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/Faultbox/highland/internal/engine/terrain"
	"github.com/Faultbox/highland/internal/game/items"
	"github.com/Faultbox/highland/pkg/math"
)

func mustGrid(t *testing.T, extentX, extentZ float32, opts Options) *Grid {
	t.Helper()
	g, err := New(extentX, extentZ, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return g
}

func TestNewSizes(t *testing.T) {
	tests := []struct {
		name             string
		extentX, extentZ float32
		opts             Options
		rows, cols, side int
	}{
		{"reference", 38610, 38610, DefaultOptions(), 1207, 1207, 46},
		{"partial tile", 100, 64, Options{TileSize: 32, ViewDistance: 40}, 2, 4, 4},
		{"zero view", 64, 64, Options{TileSize: 32, ViewDistance: 0}, 2, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGrid(t, tt.extentX, tt.extentZ, tt.opts)
			if g.Rows != tt.rows || g.Cols != tt.cols {
				t.Errorf("grid = %dx%d, want %dx%d", g.Rows, g.Cols, tt.rows, tt.cols)
			}
			if g.WindowSide() != tt.side {
				t.Errorf("window side = %d, want %d", g.WindowSide(), tt.side)
			}
		})
	}
}

func TestNewInvalid(t *testing.T) {
	if _, err := New(100, 100, Options{TileSize: 0, ViewDistance: 10}); !errors.Is(err, ErrInvalidLayout) {
		t.Errorf("zero tile size error = %v, want ErrInvalidLayout", err)
	}
	if _, err := New(0, 100, DefaultOptions()); !errors.Is(err, ErrInvalidLayout) {
		t.Errorf("zero extent error = %v, want ErrInvalidLayout", err)
	}
}

func TestPlace(t *testing.T) {
	g := mustGrid(t, 320, 320, DefaultOptions())

	a := &Object{Position: math.Vec3{X: 10, Z: 10}, Kind: KindCrate}
	b := &Object{Position: math.Vec3{X: 20, Z: 5}, Kind: KindBarrel}
	c := &Object{Position: math.Vec3{X: 33, Z: 70}, Kind: KindDock}

	for _, tt := range []struct {
		obj  *Object
		want int
	}{{a, 0}, {b, 0}, {c, 21}} {
		index, err := g.Place(tt.obj)
		if err != nil {
			t.Fatalf("Place(%s) failed: %v", tt.obj.Kind, err)
		}
		if index != tt.want {
			t.Errorf("Place(%s) tile = %d, want %d", tt.obj.Kind, index, tt.want)
		}
	}

	objs := g.Tiles[0].Objects
	if len(objs) != 2 || objs[0] != a || objs[1] != b {
		t.Errorf("tile 0 objects not in placement order")
	}
	if g.Count() != 3 {
		t.Errorf("Count = %d, want 3", g.Count())
	}

	for _, pos := range []math.Vec3{{X: -1, Z: 5}, {X: 5, Z: 320.5}, {X: 400, Z: 400}} {
		if _, err := g.Place(&Object{Position: pos}); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Place at %+v error = %v, want ErrOutOfBounds", pos, err)
		}
	}
	if g.Count() != 3 {
		t.Errorf("failed placements changed the count to %d", g.Count())
	}
}

func TestLocateFarEdge(t *testing.T) {
	g := mustGrid(t, 320, 320, Options{TileSize: 32, ViewDistance: 64})

	tests := []struct {
		name   string
		x, z   float32
		want   int
		wantOK bool
	}{
		{"origin", 0, 0, 0, true},
		{"far x edge", 320, 5, 9, true},
		{"far z edge", 5, 320, 90, true},
		{"far corner", 320, 320, 99, true},
		{"past x edge", 320.5, 5, terrain.Invalid, false},
		{"past z edge", 5, 321, terrain.Invalid, false},
		{"negative", -0.5, 5, terrain.Invalid, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.Locate(tt.x, tt.z)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Locate(%v, %v) = (%d, %v), want (%d, %v)", tt.x, tt.z, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if _, err := g.Place(&Object{Position: math.Vec3{X: 320, Z: 320}, Kind: KindCrate}); err != nil {
		t.Errorf("Place at the far corner failed: %v", err)
	}
}

func TestLocalWindowBounds(t *testing.T) {
	g := mustGrid(t, 640, 480, Options{TileSize: 32, ViewDistance: 100})
	rng := rand.New(rand.NewPCG(3, 4))

	for range 500 {
		pos := math.Vec3{X: rng.Float32()*800 - 80, Z: rng.Float32()*640 - 80}
		g.UpdateLocalWindow(pos)

		for _, index := range g.LocalWindow() {
			if index != terrain.Invalid && (index < 0 || index >= g.NumTiles()) {
				t.Fatalf("window entry %d outside [0, %d)", index, g.NumTiles())
			}
		}

		camTile, ok := g.Locate(pos.X, pos.Z)
		if !ok {
			camTile = terrain.Invalid
		}
		if got := g.WindowCenter(); got != camTile {
			t.Fatalf("camera at %+v: window centre = %d, want %d", pos, got, camTile)
		}
	}
}

func TestLocalWindowLayout(t *testing.T) {
	g := mustGrid(t, 320, 320, Options{TileSize: 32, ViewDistance: 64})
	if g.WindowSide() != 4 {
		t.Fatalf("window side = %d, want 4", g.WindowSide())
	}

	// Camera in cell (row 5, col 5): rows and cols 3..6.
	g.UpdateLocalWindow(math.Vec3{X: 170, Z: 170})
	w := g.LocalWindow()
	if w[0] != g.Index(3, 3) {
		t.Errorf("first cell = %d, want %d", w[0], g.Index(3, 3))
	}
	if w[len(w)-1] != g.Index(6, 6) {
		t.Errorf("last cell = %d, want %d", w[len(w)-1], g.Index(6, 6))
	}

	// At the origin the lower half of the window is off the grid.
	g.UpdateLocalWindow(math.Vec3{X: 1, Z: 1})
	valid := 0
	for _, index := range g.LocalWindow() {
		if index != terrain.Invalid {
			valid++
		}
	}
	if valid != 4 {
		t.Errorf("origin window has %d valid cells, want 4", valid)
	}
}

func TestEach(t *testing.T) {
	g := mustGrid(t, 640, 640, Options{TileSize: 32, ViewDistance: 64})
	near := &Object{Position: math.Vec3{X: 100, Z: 100}, Kind: KindCrate}
	far := &Object{Position: math.Vec3{X: 600, Z: 600}, Kind: KindBunker}
	for _, obj := range []*Object{near, far} {
		if _, err := g.Place(obj); err != nil {
			t.Fatalf("Place failed: %v", err)
		}
	}

	g.UpdateLocalWindow(math.Vec3{X: 110, Z: 110})
	var seen []*Object
	g.Each(func(_ int, obj *Object) bool {
		seen = append(seen, obj)
		return true
	})
	if len(seen) != 1 || seen[0] != near {
		t.Errorf("Each visited %d objects, want only the near crate", len(seen))
	}

	for range 3 {
		if _, err := g.Place(&Object{Position: math.Vec3{X: 101, Z: 101}}); err != nil {
			t.Fatalf("Place failed: %v", err)
		}
	}
	calls := 0
	g.Each(func(int, *Object) bool {
		calls++
		return calls < 2
	})
	if calls != 2 {
		t.Errorf("Each kept going after false: %d calls", calls)
	}
}

func TestNearest(t *testing.T) {
	g := mustGrid(t, 320, 320, DefaultOptions())
	a := &Object{Position: math.Vec3{X: 50, Z: 50}, Kind: KindCrate}
	b := &Object{Position: math.Vec3{X: 70, Z: 50}, Kind: KindBarrel, Inventory: items.NewInventory(4)}
	for _, obj := range []*Object{a, b} {
		if _, err := g.Place(obj); err != nil {
			t.Fatalf("Place failed: %v", err)
		}
	}

	tests := []struct {
		name   string
		pos    math.Vec3
		radius float32
		want   *Object
	}{
		{"closest of two", math.Vec3{X: 66, Z: 50}, 30, b},
		{"across tile edge", math.Vec3{X: 50, Z: 30}, 21, a},
		{"radius inclusive", math.Vec3{X: 50, Z: 60}, 10, a},
		{"nothing in range", math.Vec3{X: 200, Z: 200}, 20, nil},
		{"negative radius", math.Vec3{X: 50, Z: 50}, -1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Nearest(tt.pos, tt.radius); got != tt.want {
				t.Errorf("Nearest = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindNames(t *testing.T) {
	for k := KindCrate; k <= KindWarehouse; k++ {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParseKind("boat"); ok {
		t.Error("ParseKind accepted an unknown name")
	}
}
