package terrain

import (
	"github.com/ojrac/opensimplex-go"

	"github.com/Faultbox/highland/pkg/formats"
)

// Synthetic DEM shaping.
const (
	synthOctaves     = 5
	synthBaseFreq    = 1.0 / 1500 // cycles per world unit for the first octave
	synthLacunarity  = 2.0
	synthPersistence = 0.5
	synthSeaBias     = 0.15 // fraction of the amplitude pushed below the water line
)

// SynthesizeDEM generates a cols x rows elevation grid from fractal simplex noise, for
// running without a DEM file. The same seed always gives the same grid.
func SynthesizeDEM(cols, rows int, cellSize, amplitude float32, seed int64) *formats.DEM {
	noise := opensimplex.New(seed)
	dem := &formats.DEM{
		Cols:       cols,
		Rows:       rows,
		CellSize:   float64(cellSize),
		Centered:   true,
		Elevations: make([]float32, cols*rows),
	}

	for row := range rows {
		for col := range cols {
			x := float64(col) * float64(cellSize)
			z := float64(row) * float64(cellSize)

			var sum, norm float64
			freq, amp := synthBaseFreq, 1.0
			for range synthOctaves {
				sum += amp * noise.Eval2(x*freq, z*freq)
				norm += amp
				freq *= synthLacunarity
				amp *= synthPersistence
			}
			h := sum/norm - synthSeaBias
			dem.Elevations[row*cols+col] = float32(h) * amplitude
		}
	}
	return dem
}
