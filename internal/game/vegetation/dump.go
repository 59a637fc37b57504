package vegetation

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/Faultbox/highland/pkg/formats"
)

// ToDump converts the grid into the binary plant dump layout.
func (g *Grid) ToDump() *formats.PlantDump {
	d := &formats.PlantDump{
		Cols:  int32(g.Cols),
		Rows:  int32(g.Rows),
		Tiles: make([]formats.PlantDumpTile, len(g.Tiles)),
	}
	for i := range g.Tiles {
		tile := &g.Tiles[i]
		records := make([]formats.PlantRecord, len(tile.Plants))
		for j, p := range tile.Plants {
			records[j] = formats.PlantRecord{X: p.Position.X, Y: p.Position.Y, Z: p.Position.Z, YRot: p.Yaw}
		}
		d.Tiles[i] = formats.PlantDumpTile{CornerX: tile.Corner.X, CornerZ: tile.Corner.Y, Plants: records}
	}
	return d
}

// WriteDump writes the binary plant dump to w.
func (g *Grid) WriteDump(w io.Writer) error {
	return formats.WritePlantDump(w, g.ToDump())
}

// WriteDumpFile writes the binary plant dump to path.
func (g *Grid) WriteDumpFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating plant dump: %w", err)
	}
	if err := g.WriteDump(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// PlantRow is one plant as exported to CSV.
type PlantRow struct {
	Tile    int     `csv:"tile"`
	Species string  `csv:"species"`
	X       float32 `csv:"x"`
	Y       float32 `csv:"y"`
	Z       float32 `csv:"z"`
	Yaw     float32 `csv:"yaw"`
}

// ExportRows flattens every plant into export rows, tile by tile.
func (g *Grid) ExportRows() []*PlantRow {
	rows := make([]*PlantRow, 0, g.PlantCount())
	for i := range g.Tiles {
		for _, p := range g.Tiles[i].Plants {
			rows = append(rows, &PlantRow{
				Tile:    i,
				Species: g.speciesName(p.Species),
				X:       p.Position.X,
				Y:       p.Position.Y,
				Z:       p.Position.Z,
				Yaw:     p.Yaw,
			})
		}
	}
	return rows
}

// ExportCSV writes every plant to w as CSV with a header row.
func (g *Grid) ExportCSV(w io.Writer) error {
	if err := gocsv.Marshal(g.ExportRows(), w); err != nil {
		return fmt.Errorf("writing plant csv: %w", err)
	}
	return nil
}

func (g *Grid) speciesName(s uint8) string {
	if int(s) < len(g.Species) {
		return g.Species[s].Name
	}
	return fmt.Sprintf("species%d", s)
}
