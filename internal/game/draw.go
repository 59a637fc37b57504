package game

import (
	"github.com/Faultbox/highland/internal/engine/debug"
	"github.com/Faultbox/highland/internal/game/moveables"
	"github.com/Faultbox/highland/internal/game/vegetation"
)

var (
	boundsColor   = [3]float32{0.3, 0.6, 1}
	moveableColor = [3]float32{0.8, 0.5, 0.2}
)

// speciesColors are cycled by species id.
var speciesColors = [][3]float32{
	{0.45, 0.6, 0.25},
	{0.3, 0.7, 0.2},
	{0.2, 0.5, 0.2},
	{0.4, 0.45, 0.15},
	{0.85, 0.85, 0.75},
	{0.1, 0.35, 0.15},
}

// plantPoints returns xyz rgb point vertices for the plants of tiles drawn in mode.
func plantPoints(veg *vegetation.Grid, tiles []int, mode vegetation.DrawMode) []float32 {
	var out []float32
	for _, index := range tiles {
		for _, b := range veg.Batches(index, mode) {
			c := speciesColors[int(b.Species)%len(speciesColors)]
			for _, p := range b.Plants {
				out = append(out, p.Position.X, p.Position.Y, p.Position.Z, c[0], c[1], c[2])
			}
		}
	}
	return out
}

// moveableLines returns marker cubes for the objects in the window tiles.
func moveableLines(grid *moveables.Grid, window []int) []float32 {
	var out []float32
	for _, index := range window {
		if !grid.Valid(index) {
			continue
		}
		for _, obj := range grid.Tiles[index].Objects {
			box := debug.GenerateMarkerBox(obj.Position.Array(), MoveableHalfSize)
			out = append(out, colorize(box, moveableColor)...)
		}
	}
	return out
}

// lineData flattens debug vertices into xyz rgb floats.
func lineData(verts []debug.TileVertex) []float32 {
	out := make([]float32, 0, len(verts)*6)
	for _, v := range verts {
		out = append(out, v.X, v.Y, v.Z, v.R, v.G, v.B)
	}
	return out
}

// colorize expands xyz vertices into xyz rgb with a single color.
func colorize(xyz []float32, c [3]float32) []float32 {
	out := make([]float32, 0, len(xyz)*2)
	for i := 0; i+2 < len(xyz); i += 3 {
		out = append(out, xyz[i], xyz[i+1], xyz[i+2], c[0], c[1], c[2])
	}
	return out
}
