package debug

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/highland/internal/engine/terrain"
	"github.com/Faultbox/highland/internal/logger"
)

// Contour errors.
var (
	ErrOddLineVertices = errors.New("line vertex count is not a multiple of two")
	ErrContourStuck    = errors.New("contour trace exceeded its trip limit")
	ErrBadInterval     = errors.New("contour interval must be positive")
)

// majorEvery marks every n-th contour level as a major line.
const majorEvery = 5

// edge identifies a quad edge inside one tile. Horizontal edges run along +x from
// vertex (r, c); vertical ones along +z.
type edge struct {
	r, c       int
	horizontal bool
}

// contourTracer follows elevation lines across the quads of one tile.
type contourTracer struct {
	ter   *terrain.Terrain
	tile  int
	q     int
	level float32
	lift  float32
	color [3]float32

	visited map[edge]bool
	out     []TileVertex
	trips   int
	limit   int
}

// GenerateContours traces elevation lines every interval units over the given tiles and
// returns them as line-list vertices. A tile whose trace gets stuck is logged and skipped;
// the returned slice lists those tiles.
func (t *TileGridRenderer) GenerateContours(tiles []int, interval, lift float32) ([]TileVertex, []int, error) {
	if t == nil {
		return nil, nil, nil
	}
	if interval <= 0 {
		return nil, nil, ErrBadInterval
	}

	var vertices []TileVertex
	var abandoned []int
	for _, index := range tiles {
		tile := t.ter.Tile(index)
		if tile == nil {
			continue
		}
		lines, err := t.tileContours(tile, interval, lift)
		if err != nil {
			logger.Named("debug").Warn("abandoning contour lines for tile",
				zap.Int("tile", index),
				zap.Error(err))
			abandoned = append(abandoned, index)
			continue
		}
		vertices = append(vertices, lines...)
	}

	if len(vertices)%2 != 0 {
		return nil, abandoned, fmt.Errorf("%w: %d", ErrOddLineVertices, len(vertices))
	}
	return vertices, abandoned, nil
}

func (t *TileGridRenderer) tileContours(tile *terrain.Tile, interval, lift float32) ([]TileVertex, error) {
	q := t.ter.Quads()
	first := int(gomath.Ceil(float64(tile.MinY / interval)))
	last := int(gomath.Floor(float64(tile.MaxY / interval)))

	var out []TileVertex
	for k := first; k <= last; k++ {
		tr := &contourTracer{
			ter:     t.ter,
			tile:    tile.Index,
			q:       q,
			level:   float32(k) * interval,
			lift:    lift,
			color:   levelColor(k),
			visited: make(map[edge]bool),
			limit:   4*(q+1)*q + 4,
		}
		if err := tr.traceLevel(); err != nil {
			return nil, fmt.Errorf("level %.1f: %w", tr.level, err)
		}
		out = append(out, tr.out...)
	}
	if len(out)%2 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrOddLineVertices, len(out))
	}
	return out, nil
}

func levelColor(k int) [3]float32 {
	if k%majorEvery == 0 {
		return [3]float32{0.35, 0.2, 0.05}
	}
	return [3]float32{0.6, 0.45, 0.25}
}

// traceLevel starts open lines from the tile border first, then closed loops from
// any crossing left over.
func (tr *contourTracer) traceLevel() error {
	q := tr.q
	var border, inner []edge
	for r := 0; r <= q; r++ {
		for c := 0; c < q; c++ {
			e := edge{r, c, true}
			if tr.crosses(e) {
				if r == 0 || r == q {
					border = append(border, e)
				} else {
					inner = append(inner, e)
				}
			}
		}
	}
	for r := 0; r < q; r++ {
		for c := 0; c <= q; c++ {
			e := edge{r, c, false}
			if tr.crosses(e) {
				if c == 0 || c == q {
					border = append(border, e)
				} else {
					inner = append(inner, e)
				}
			}
		}
	}

	for _, starts := range [][]edge{border, inner} {
		for _, e := range starts {
			if tr.visited[e] {
				continue
			}
			if err := tr.trace(e); err != nil {
				return err
			}
		}
	}
	return nil
}

// trace follows one line from start until it leaves the tile or closes on itself.
func (tr *contourTracer) trace(start edge) error {
	tr.visited[start] = true
	qr, qc, ok := tr.firstQuad(start)
	if !ok {
		return nil
	}

	entry := start
	for {
		tr.trips++
		if tr.trips > tr.limit {
			return fmt.Errorf("%w: %d trips", ErrContourStuck, tr.trips)
		}

		exit, ok := tr.exitEdge(qr, qc, entry)
		if !ok {
			// Degenerate quad: the line ends here.
			return nil
		}
		tr.emit(entry, exit)
		if exit == start {
			return nil
		}
		tr.visited[exit] = true

		nqr, nqc, ok := tr.across(qr, qc, exit)
		if !ok {
			return nil
		}
		qr, qc, entry = nqr, nqc, exit
	}
}

// firstQuad picks the quad a trace enters from start: the one inside the tile for border
// edges, the north or east one for inner edges.
func (tr *contourTracer) firstQuad(e edge) (int, int, bool) {
	if e.horizontal {
		if e.r == tr.q {
			return e.r - 1, e.c, true
		}
		return e.r, e.c, true
	}
	if e.c == tr.q {
		return e.r, e.c - 1, true
	}
	return e.r, e.c, true
}

// across returns the quad on the other side of edge e from quad (qr, qc).
func (tr *contourTracer) across(qr, qc int, e edge) (int, int, bool) {
	nqr, nqc := qr, qc
	if e.horizontal {
		if e.r == qr {
			nqr--
		} else {
			nqr++
		}
	} else {
		if e.c == qc {
			nqc--
		} else {
			nqc++
		}
	}
	if nqr < 0 || nqc < 0 || nqr >= tr.q || nqc >= tr.q {
		return 0, 0, false
	}
	return nqr, nqc, true
}

// exitEdge returns the other crossing edge of quad (qr, qc) on the line entering through
// entry. Saddles are split by the quad's centre height.
func (tr *contourTracer) exitEdge(qr, qc int, entry edge) (edge, bool) {
	south := edge{qr, qc, true}
	north := edge{qr + 1, qc, true}
	west := edge{qr, qc, false}
	east := edge{qr, qc + 1, false}

	var crossing []edge
	for _, e := range []edge{south, east, north, west} {
		if tr.crosses(e) {
			crossing = append(crossing, e)
		}
	}

	switch len(crossing) {
	case 2:
		if crossing[0] == entry {
			return crossing[1], true
		}
		return crossing[0], true
	case 4:
		o := tr.height(qr, qc)
		x := tr.height(qr, qc+1)
		z := tr.height(qr+1, qc)
		xz := tr.height(qr+1, qc+1)
		centerAbove := (o+x+z+xz)/4 >= tr.level

		// The diagonal pair on the centre's other side is cut off by the two segments.
		var pairs [2][2]edge
		if (o >= tr.level) != centerAbove {
			pairs = [2][2]edge{{south, west}, {north, east}}
		} else {
			pairs = [2][2]edge{{south, east}, {north, west}}
		}
		for _, p := range pairs {
			if p[0] == entry {
				return p[1], true
			}
			if p[1] == entry {
				return p[0], true
			}
		}
	}
	return edge{}, false
}

func (tr *contourTracer) height(vr, vc int) float32 {
	v, _ := tr.ter.VertexAt(tr.tile, vr, vc)
	return v.Y
}

func (tr *contourTracer) ends(e edge) (a, b [2]int) {
	if e.horizontal {
		return [2]int{e.r, e.c}, [2]int{e.r, e.c + 1}
	}
	return [2]int{e.r, e.c}, [2]int{e.r + 1, e.c}
}

func (tr *contourTracer) crosses(e edge) bool {
	a, b := tr.ends(e)
	ha, hb := tr.height(a[0], a[1]), tr.height(b[0], b[1])
	return (ha >= tr.level) != (hb >= tr.level)
}

func (tr *contourTracer) point(e edge) TileVertex {
	a, b := tr.ends(e)
	va, _ := tr.ter.VertexAt(tr.tile, a[0], a[1])
	vb, _ := tr.ter.VertexAt(tr.tile, b[0], b[1])
	s := (tr.level - va.Y) / (vb.Y - va.Y)
	return TileVertex{
		X: va.X + (vb.X-va.X)*s,
		Y: tr.level + tr.lift,
		Z: va.Z + (vb.Z-va.Z)*s,
		R: tr.color[0],
		G: tr.color[1],
		B: tr.color[2],
	}
}

func (tr *contourTracer) emit(from, to edge) {
	tr.out = append(tr.out, tr.point(from), tr.point(to))
}
