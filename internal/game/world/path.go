package world

import (
	"container/heap"
	gomath "math"

	"github.com/Faultbox/highland/pkg/math"
)

// Walkable is a grid of cells a path may cross.
type Walkable interface {
	Size() (cols, rows int)
	Walkable(col, row int) bool
}

type pathNode struct {
	col, row int
	g, f     float32
	parent   *pathNode
	index    int
}

type pathHeap []*pathNode

func (h pathHeap) Len() int           { return len(h) }
func (h pathHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h pathHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *pathHeap) Push(x any) {
	n := x.(*pathNode)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *pathHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	old[len(old)-1] = nil
	n.index = -1
	*h = old[:len(old)-1]
	return n
}

// neighbours in 8 directions; odd entries are diagonal.
var neighbours = [8][2]int{
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
}

const diagonalCost = float32(gomath.Sqrt2)

// FindPath runs A* over m from start to goal (col, row) with 8-way moves. Diagonal
// moves need both orthogonal cells free. It returns nil when no path exists.
func FindPath(m Walkable, startCol, startRow, goalCol, goalRow int) [][2]int {
	cols, rows := m.Size()
	inBounds := func(c, r int) bool { return c >= 0 && c < cols && r >= 0 && r < rows }
	free := func(c, r int) bool { return inBounds(c, r) && m.Walkable(c, r) }

	if !inBounds(startCol, startRow) || !free(goalCol, goalRow) {
		return nil
	}

	key := func(c, r int) int { return r*cols + c }
	open := &pathHeap{}
	closed := make(map[int]bool)
	nodes := make(map[int]*pathNode)

	start := &pathNode{col: startCol, row: startRow}
	start.f = octile(startCol, startRow, goalCol, goalRow)
	heap.Push(open, start)
	nodes[key(startCol, startRow)] = start

	for iter := 0; open.Len() > 0 && iter < cols*rows; iter++ {
		cur := heap.Pop(open).(*pathNode)
		if cur.col == goalCol && cur.row == goalRow {
			return unwind(cur)
		}
		closed[key(cur.col, cur.row)] = true

		for i, d := range neighbours {
			nc, nr := cur.col+d[0], cur.row+d[1]
			if !free(nc, nr) || closed[key(nc, nr)] {
				continue
			}
			cost := float32(1)
			if i%2 == 1 {
				if !free(cur.col+d[0], cur.row) || !free(cur.col, cur.row+d[1]) {
					continue
				}
				cost = diagonalCost
			}

			g := cur.g + cost
			n, seen := nodes[key(nc, nr)]
			switch {
			case !seen:
				n = &pathNode{col: nc, row: nr, g: g, parent: cur}
				n.f = g + octile(nc, nr, goalCol, goalRow)
				nodes[key(nc, nr)] = n
				heap.Push(open, n)
			case g < n.g:
				n.f += g - n.g
				n.g = g
				n.parent = cur
				heap.Fix(open, n.index)
			}
		}
	}
	return nil
}

func octile(c0, r0, c1, r1 int) float32 {
	dx, dy := absInt(c1-c0), absInt(r1-r0)
	lo, hi := min(dx, dy), max(dx, dy)
	return float32(lo)*diagonalCost + float32(hi-lo)
}

func unwind(n *pathNode) [][2]int {
	var path [][2]int
	for ; n != nil; n = n.parent {
		path = append(path, [2]int{n.col, n.row})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// WalkMap samples the world on the moveables grid: a cell is walkable when the
// surface at its centre is above water, no steeper than MaxSlope and holds no object.
type WalkMap struct {
	w          *World
	WaterLevel float32
	MinNormalY float32 // cosine of the steepest walkable slope
}

// NewWalkMap builds a walk map allowing slopes up to maxSlopeDeg degrees.
func (w *World) NewWalkMap(waterLevel, maxSlopeDeg float32) *WalkMap {
	return &WalkMap{
		w:          w,
		WaterLevel: waterLevel,
		MinNormalY: float32(gomath.Cos(float64(maxSlopeDeg) * gomath.Pi / 180)),
	}
}

// Size returns the moveables grid dimensions.
func (m *WalkMap) Size() (cols, rows int) {
	return m.w.Moveables.Cols, m.w.Moveables.Rows
}

// Walkable reports whether cell (col, row) can be crossed.
func (m *WalkMap) Walkable(col, row int) bool {
	index := m.w.Moveables.Index(row, col)
	if index < 0 || len(m.w.Moveables.Tiles[index].Objects) > 0 {
		return false
	}
	c := m.center(col, row)
	p, n, ok := m.w.Terrain.SurfaceAt(c.X, c.Y)
	return ok && p.Y > m.WaterLevel && n.Y >= m.MinNormalY
}

func (m *WalkMap) center(col, row int) math.Vec2 {
	s := m.w.Moveables.TileSize
	return math.Vec2{X: (float32(col) + 0.5) * s, Y: (float32(row) + 0.5) * s}
}

// FindPath returns surface waypoints at cell centres from the cell under from to the
// cell under to, or nil when either end is off the map or no path exists.
func (m *WalkMap) FindPath(from, to math.Vec3) []math.Vec3 {
	sc, ok := m.w.Moveables.Locate(from.X, from.Z)
	if !ok {
		return nil
	}
	gc, ok := m.w.Moveables.Locate(to.X, to.Z)
	if !ok {
		return nil
	}
	sr, scol := m.w.Moveables.RowCol(sc)
	gr, gcol := m.w.Moveables.RowCol(gc)

	cells := FindPath(m, scol, sr, gcol, gr)
	if cells == nil {
		return nil
	}
	out := make([]math.Vec3, len(cells))
	for i, cell := range cells {
		c := m.center(cell[0], cell[1])
		y, _ := m.w.Terrain.HeightAt(c.X, c.Y)
		out[i] = math.Vec3{X: c.X, Y: y, Z: c.Y}
	}
	return out
}
