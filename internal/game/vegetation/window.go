package vegetation

import (
	"github.com/Faultbox/highland/internal/engine/terrain"
	"github.com/Faultbox/highland/pkg/math"
)

// DrawMode says how a plant should be rendered this frame.
type DrawMode uint8

const (
	DrawHidden DrawMode = iota
	DrawBillboard
	DrawDetail
)

func (m DrawMode) String() string {
	switch m {
	case DrawDetail:
		return "detail"
	case DrawBillboard:
		return "billboard"
	default:
		return "hidden"
	}
}

// UpdateDrawWindow recenters the 3x3 detail window on camTile and rebuilds the
// detail and no-draw boxes around camPos. Window cells off the grid hold terrain.Invalid.
func (g *Grid) UpdateDrawWindow(camTile int, camPos math.Vec3) {
	if g.Valid(camTile) {
		g.window = g.Window(camTile)
	} else {
		for i := range g.window {
			g.window[i] = terrain.Invalid
		}
	}
	g.Boxes.Rebuild(camPos)
}

// DetailWindow returns the current 3x3 window, row-major from the south-west cell.
func (g *Grid) DetailWindow() [9]int {
	return g.window
}

// DetailTiles returns the valid tile indices of the current window.
func (g *Grid) DetailTiles() []int {
	out := make([]int, 0, len(g.window))
	for _, i := range g.window {
		if i != terrain.Invalid {
			out = append(out, i)
		}
	}
	return out
}

// InDetailWindow reports whether tile index is part of the current window.
func (g *Grid) InDetailWindow(index int) bool {
	if index == terrain.Invalid {
		return false
	}
	for _, i := range g.window {
		if i == index {
			return true
		}
	}
	return false
}

// Classify picks the draw mode of a plant in tile index: full detail inside the
// window and the detail box, a billboard inside its species' no-draw box, otherwise hidden.
func (g *Grid) Classify(index int, p Plant) DrawMode {
	xz := p.Position.XZ()
	if g.InDetailWindow(index) && g.Boxes.Detail.Contains(xz) {
		return DrawDetail
	}
	if int(p.Species) < len(g.Boxes.NoDraw) && g.Boxes.NoDraw[p.Species].Contains(xz) {
		return DrawBillboard
	}
	return DrawHidden
}

// Batch is a run of same-species plants sharing a draw mode.
type Batch struct {
	Species uint8
	Mode    DrawMode
	Plants  []Plant
}

// Batches splits tile index into per-species runs for the given draw mode.
// Plants with a different mode are skipped.
func (g *Grid) Batches(index int, mode DrawMode) []Batch {
	tile := g.Tile(index)
	if tile == nil {
		return nil
	}
	var out []Batch
	for s, run := range tile.SpeciesRuns(len(g.Species)) {
		var plants []Plant
		for _, p := range tile.Plants[run[0]:run[1]] {
			if g.Classify(index, p) == mode {
				plants = append(plants, p)
			}
		}
		if len(plants) > 0 {
			out = append(out, Batch{Species: uint8(s), Mode: mode, Plants: plants})
		}
	}
	return out
}
