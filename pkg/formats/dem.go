package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	gomath "math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DEM format errors.
var (
	ErrMissingDEMHeader = errors.New("missing DEM header field")
	ErrInvalidDEMHeader = errors.New("invalid DEM header")
	ErrInvalidDEMSample = errors.New("invalid DEM sample")
)

// Header bounds so a corrupt header cannot trigger a huge allocation.
const (
	maxDEMDimension = 1 << 16
	maxDEMSamples   = 1 << 26

	// demReserve caps the up-front sample capacity; larger grids grow as samples arrive.
	demReserve = 1 << 20
)

// DEM is a parsed ASCII digital elevation model grid.
type DEM struct {
	Cols      int
	Rows      int
	XLL       float64 // lower-left x (center or corner, see Centered)
	YLL       float64
	Centered  bool // true when the header used xllcenter/yllcenter
	CellSize  float64
	NoData    float64
	HasNoData bool

	// Elevations holds Cols*Rows samples in file order (row-major).
	Elevations []float32

	// Filled counts samples that were missing (EOF or nodata) and replaced
	// with the observed minimum elevation.
	Filled int
}

// DEMStats summarises the elevation samples of a DEM.
type DEMStats struct {
	Min, Max     float64
	Mean, StdDev float64
}

// At returns the elevation at (row, col). Out-of-range lookups return false.
func (d *DEM) At(row, col int) (float32, bool) {
	if row < 0 || col < 0 || row >= d.Rows || col >= d.Cols {
		return 0, false
	}
	return d.Elevations[row*d.Cols+col], true
}

// Stats computes min, max, mean and standard deviation over all samples.
func (d *DEM) Stats() DEMStats {
	if len(d.Elevations) == 0 {
		return DEMStats{}
	}
	return sampleStats(toFloat64(d.Elevations))
}

func sampleStats(samples []float64) DEMStats {
	mean, std := stat.MeanStdDev(samples, nil)
	return DEMStats{
		Min:    floats.Min(samples),
		Max:    floats.Max(samples),
		Mean:   mean,
		StdDev: std,
	}
}

func toFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

// ParseDEM parses an ASCII elevation grid: a header of whitespace separated
// key/value pairs followed by ncols*nrows samples in row-major order.
// Samples missing at EOF, and nodata samples, are filled with the observed minimum.
func ParseDEM(r io.Reader) (*DEM, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	d := &DEM{}
	seen := make(map[string]bool)

	// Header: keys are non-numeric tokens. The first numeric token in key
	// position is the first sample.
	var pending string
	havePending := false
	for sc.Scan() {
		tok := sc.Text()
		if _, err := strconv.ParseFloat(tok, 64); err == nil {
			pending, havePending = tok, true
			break
		}
		key := strings.ToLower(tok)
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: %s has no value", ErrInvalidDEMHeader, key)
		}
		val, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s = %q", ErrInvalidDEMHeader, key, sc.Text())
		}
		if err := d.setHeader(key, val); err != nil {
			return nil, err
		}
		seen[key] = true
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading DEM header: %w", err)
	}

	for _, key := range []string{"ncols", "nrows"} {
		if !seen[key] {
			return nil, fmt.Errorf("%w: %s", ErrMissingDEMHeader, key)
		}
	}
	if d.Cols <= 0 || d.Rows <= 0 || d.Cols > maxDEMDimension || d.Rows > maxDEMDimension {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidDEMHeader, d.Cols, d.Rows)
	}
	total := d.Cols * d.Rows
	if total > maxDEMSamples {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d samples", ErrInvalidDEMHeader, d.Cols, d.Rows, maxDEMSamples)
	}

	// Missing samples are stored as NaN until the minimum is known.
	d.Elevations = make([]float32, 0, min(total, demReserve))
	fill := float32(gomath.Inf(1))
	store := func(tok string) error {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return fmt.Errorf("%w: sample %d = %q", ErrInvalidDEMSample, len(d.Elevations), tok)
		}
		if d.HasNoData && v == d.NoData {
			d.Elevations = append(d.Elevations, float32(gomath.NaN()))
			return nil
		}
		d.Elevations = append(d.Elevations, float32(v))
		fill = min(fill, float32(v))
		return nil
	}

	if havePending {
		if err := store(pending); err != nil {
			return nil, err
		}
	}
	for len(d.Elevations) < total && sc.Scan() {
		if err := store(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading DEM samples: %w", err)
	}

	if gomath.IsInf(float64(fill), 1) {
		fill = 0
	}
	for i, v := range d.Elevations {
		if gomath.IsNaN(float64(v)) {
			d.Elevations[i] = fill
			d.Filled++
		}
	}
	for len(d.Elevations) < total {
		d.Elevations = append(d.Elevations, fill)
		d.Filled++
	}

	return d, nil
}

func (d *DEM) setHeader(key string, val float64) error {
	switch key {
	case "ncols":
		d.Cols = int(val)
	case "nrows":
		d.Rows = int(val)
	case "xllcenter":
		d.XLL, d.Centered = val, true
	case "yllcenter":
		d.YLL, d.Centered = val, true
	case "xllcorner":
		d.XLL = val
	case "yllcorner":
		d.YLL = val
	case "cellsize":
		d.CellSize = val
	case "nodata_value":
		d.NoData, d.HasNoData = val, true
	default:
		return fmt.Errorf("%w: unknown key %q", ErrInvalidDEMHeader, key)
	}
	return nil
}

// ParseDEMFile parses a DEM file from disk.
func ParseDEMFile(path string) (*DEM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening DEM file: %w", err)
	}
	defer f.Close()
	return ParseDEM(f)
}

// WriteDEM writes d in the ASCII grid layout ParseDEM reads.
func WriteDEM(w io.Writer, d *DEM) error {
	bw := bufio.NewWriter(w)
	xKey, yKey := "xllcorner", "yllcorner"
	if d.Centered {
		xKey, yKey = "xllcenter", "yllcenter"
	}
	fmt.Fprintf(bw, "ncols %d\nnrows %d\n%s %g\n%s %g\ncellsize %g\n", d.Cols, d.Rows, xKey, d.XLL, yKey, d.YLL, d.CellSize)
	if d.HasNoData {
		fmt.Fprintf(bw, "nodata_value %g\n", d.NoData)
	}
	for row := 0; row < d.Rows; row++ {
		for col := 0; col < d.Cols; col++ {
			if col > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.FormatFloat(float64(d.Elevations[row*d.Cols+col]), 'g', -1, 32))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
