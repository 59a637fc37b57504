package terrain

// Direction names a step between neighbouring grid cells. Row 0 is the -z edge of the
// world, so North moves toward +z and East toward +x.
type Direction int

// Grid step directions.
const (
	North Direction = iota // row+1
	East                   // col+1
	South                  // row-1
	West                   // col-1
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

// Invalid marks a grid cell that does not exist (off the map).
const Invalid = -1

func (d Direction) offset() (dRow, dCol int) {
	switch d {
	case North:
		return 1, 0
	case East:
		return 0, 1
	case South:
		return -1, 0
	case West:
		return 0, -1
	case NorthEast:
		return 1, 1
	case NorthWest:
		return 1, -1
	case SouthEast:
		return -1, 1
	case SouthWest:
		return -1, -1
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	case NorthEast:
		return "northeast"
	case NorthWest:
		return "northwest"
	case SouthEast:
		return "southeast"
	case SouthWest:
		return "southwest"
	}
	return "unknown"
}

// Grid is a row-major tile topology: index = row*Cols + col.
// Terrain, vegetation and moveables grids all share this addressing.
type Grid struct {
	Rows, Cols int
}

// NumTiles returns Rows*Cols.
func (g Grid) NumTiles() int {
	return g.Rows * g.Cols
}

// Contains reports whether (row, col) lies on the grid.
func (g Grid) Contains(row, col int) bool {
	return row >= 0 && col >= 0 && row < g.Rows && col < g.Cols
}

// Index returns the row-major index of (row, col), or Invalid when off the grid.
func (g Grid) Index(row, col int) int {
	if !g.Contains(row, col) {
		return Invalid
	}
	return row*g.Cols + col
}

// RowCol splits a tile index into row and column.
func (g Grid) RowCol(index int) (row, col int) {
	return index / g.Cols, index % g.Cols
}

// Valid reports whether index addresses a tile.
func (g Grid) Valid(index int) bool {
	return index >= 0 && index < g.NumTiles()
}

// Neighbor returns the tile next to index in direction dir. There is no wraparound:
// stepping off any edge returns (Invalid, false).
func (g Grid) Neighbor(index int, dir Direction) (int, bool) {
	if !g.Valid(index) {
		return Invalid, false
	}
	row, col := g.RowCol(index)
	dRow, dCol := dir.offset()
	n := g.Index(row+dRow, col+dCol)
	return n, n != Invalid
}

// Window returns the 3x3 block of tile indices centred on index, row-major from the
// south-west cell. Cells off the grid hold Invalid.
func (g Grid) Window(index int) [9]int {
	var out [9]int
	for i := range out {
		out[i] = Invalid
	}
	if !g.Valid(index) {
		return out
	}
	out[4] = index
	dirs := [9]Direction{SouthWest, South, SouthEast, West, 0, East, NorthWest, North, NorthEast}
	for i, dir := range dirs {
		if i == 4 {
			continue
		}
		if n, ok := g.Neighbor(index, dir); ok {
			out[i] = n
		}
	}
	return out
}
