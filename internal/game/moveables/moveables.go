// Package moveables keeps placed objects (crates, barrels, structures) in a fine tile
// grid, with a camera-centred window that bounds per-frame iteration.
package moveables

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/highland/internal/engine/terrain"
	"github.com/Faultbox/highland/internal/game/items"
	"github.com/Faultbox/highland/internal/logger"
	"github.com/Faultbox/highland/pkg/math"
)

// Moveables errors.
var (
	ErrOutOfBounds   = errors.New("position outside the moveables grid")
	ErrInvalidLayout = errors.New("invalid moveables layout")
)

// Kind is the type of a placed object.
type Kind uint8

const (
	KindCrate Kind = iota
	KindBarrel
	KindDock
	KindBunker
	KindWarehouse
)

var kindNames = [...]string{
	KindCrate:     "crate",
	KindBarrel:    "barrel",
	KindDock:      "dock",
	KindBunker:    "bunker",
	KindWarehouse: "warehouse",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Object is one placed moveable.
type Object struct {
	Position  math.Vec3
	Yaw       float32 // degrees
	Kind      Kind
	Inventory *items.Inventory // nil when the object holds nothing
}

// Tile is one cell of the moveables grid.
type Tile struct {
	Corner  math.Vec2
	Objects []*Object // placement order
}

// Options size the grid.
type Options struct {
	TileSize     float32
	ViewDistance float32 // half-width of the local window in world units
}

// DefaultOptions gives 32 unit tiles and a 46x46 local window.
func DefaultOptions() Options {
	return Options{TileSize: 32, ViewDistance: 736}
}

// Grid is the moveables tile grid.
type Grid struct {
	terrain.Grid

	TileSize float32
	Tiles    []Tile

	side   int   // local window cells per edge, always even
	window []int // side*side tile indices, row-major from the lowest row
	count  int
}

// New creates an empty grid covering a extentX by extentZ world.
func New(extentX, extentZ float32, opts Options) (*Grid, error) {
	if opts.TileSize <= 0 || opts.ViewDistance < 0 || extentX <= 0 || extentZ <= 0 {
		return nil, fmt.Errorf("%w: tile %v, view %v, extent %vx%v",
			ErrInvalidLayout, opts.TileSize, opts.ViewDistance, extentX, extentZ)
	}

	cols := int(gomath.Ceil(float64(extentX / opts.TileSize)))
	rows := int(gomath.Ceil(float64(extentZ / opts.TileSize)))
	side := 2 * int(gomath.Ceil(float64(opts.ViewDistance/opts.TileSize)))
	if side < 2 {
		side = 2
	}

	g := &Grid{
		Grid:     terrain.Grid{Rows: rows, Cols: cols},
		TileSize: opts.TileSize,
		Tiles:    make([]Tile, rows*cols),
		side:     side,
		window:   make([]int, side*side),
	}
	for i := range g.Tiles {
		row, col := g.RowCol(i)
		g.Tiles[i].Corner = math.Vec2{X: float32(col) * opts.TileSize, Y: float32(row) * opts.TileSize}
	}
	for i := range g.window {
		g.window[i] = terrain.Invalid
	}

	logger.Named("moveables").Info("moveables grid created",
		zap.Int("rows", rows),
		zap.Int("cols", cols),
		zap.Float32("tileSize", opts.TileSize),
		zap.Int("windowSide", side))

	return g, nil
}

// Locate returns the tile containing world (x, z).
// The far map edge belongs to the last column and row, as in terrain.Locate.
func (g *Grid) Locate(x, z float32) (int, bool) {
	row, col := g.cell(x, z)
	if col == g.Cols && x <= float32(g.Cols)*g.TileSize {
		col = g.Cols - 1
	}
	if row == g.Rows && z <= float32(g.Rows)*g.TileSize {
		row = g.Rows - 1
	}
	index := g.Index(row, col)
	return index, index != terrain.Invalid
}

func (g *Grid) cell(x, z float32) (row, col int) {
	col = int(gomath.Floor(float64(x / g.TileSize)))
	row = int(gomath.Floor(float64(z / g.TileSize)))
	return row, col
}

// Place adds an object to the tile under its position.
func (g *Grid) Place(obj *Object) (int, error) {
	index, ok := g.Locate(obj.Position.X, obj.Position.Z)
	if !ok {
		return terrain.Invalid, fmt.Errorf("%w: %s at (%.1f, %.1f)", ErrOutOfBounds, obj.Kind, obj.Position.X, obj.Position.Z)
	}
	tile := &g.Tiles[index]
	tile.Objects = append(tile.Objects, obj)
	g.count++
	return index, nil
}

// Count returns the number of placed objects.
func (g *Grid) Count() int {
	return g.count
}

// WindowSide returns the local window edge length in cells.
func (g *Grid) WindowSide() int {
	return g.side
}

// UpdateLocalWindow recentres the local window on the tile under camPos. The
// window spans side/2 cells below and side/2-1 above the camera cell on each axis,
// so the camera cell sits at (side/2, side/2). Cells off the grid hold terrain.Invalid.
func (g *Grid) UpdateLocalWindow(camPos math.Vec3) {
	camRow, camCol := g.cell(camPos.X, camPos.Z)
	half := g.side / 2
	for wr := range g.side {
		for wc := range g.side {
			g.window[wr*g.side+wc] = g.Index(camRow-half+wr, camCol-half+wc)
		}
	}
}

// LocalWindow returns the current window, row-major from its lowest row.
func (g *Grid) LocalWindow() []int {
	return g.window
}

// WindowCenter returns the tile index at the window's centre cell.
func (g *Grid) WindowCenter() int {
	half := g.side / 2
	return g.window[half*g.side+half]
}

// Each calls fn for every object in the local window, tile by tile.
// Iteration stops when fn returns false.
func (g *Grid) Each(fn func(index int, obj *Object) bool) {
	for _, index := range g.window {
		if index == terrain.Invalid {
			continue
		}
		for _, obj := range g.Tiles[index].Objects {
			if !fn(index, obj) {
				return
			}
		}
	}
}

// Nearest returns the object closest to pos on the xz plane within radius, or nil.
func (g *Grid) Nearest(pos math.Vec3, radius float32) *Object {
	if radius < 0 {
		return nil
	}
	r0, c0 := g.cell(pos.X-radius, pos.Z-radius)
	r1, c1 := g.cell(pos.X+radius, pos.Z+radius)

	var best *Object
	bestD := radius * radius
	for row := max(r0, 0); row <= min(r1, g.Rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, g.Cols-1); col++ {
			for _, obj := range g.Tiles[row*g.Cols+col].Objects {
				dx, dz := obj.Position.X-pos.X, obj.Position.Z-pos.Z
				if d := dx*dx + dz*dz; d <= bestD && (best == nil || d < bestD) {
					best, bestD = obj, d
				}
			}
		}
	}
	return best
}
