package formats

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const smallDEM = `ncols 3
nrows 2
xllcenter 100.5
yllcenter 200.5
cellsize 10
NODATA_value -9999
1 2 3
4 5 6
`

func TestParseDEM_ValidFile(t *testing.T) {
	dem, err := ParseDEM(strings.NewReader(smallDEM))
	if err != nil {
		t.Fatalf("ParseDEM failed: %v", err)
	}

	if dem.Cols != 3 || dem.Rows != 2 {
		t.Errorf("expected 3x2, got %dx%d", dem.Cols, dem.Rows)
	}
	if !dem.Centered || dem.XLL != 100.5 || dem.YLL != 200.5 {
		t.Errorf("unexpected origin: centered=%v xll=%v yll=%v", dem.Centered, dem.XLL, dem.YLL)
	}
	if dem.CellSize != 10 {
		t.Errorf("expected cellsize 10, got %v", dem.CellSize)
	}
	if !dem.HasNoData || dem.NoData != -9999 {
		t.Errorf("expected nodata -9999, got %v (has=%v)", dem.NoData, dem.HasNoData)
	}
	if dem.Filled != 0 {
		t.Errorf("expected no filled samples, got %d", dem.Filled)
	}

	v, ok := dem.At(1, 2)
	if !ok || v != 6 {
		t.Errorf("At(1,2) = %v, %v; want 6, true", v, ok)
	}
	if _, ok := dem.At(2, 0); ok {
		t.Error("At(2,0) should be out of range")
	}
}

func TestParseDEM_FillsMissingWithMinimum(t *testing.T) {
	data := "ncols 3\nnrows 2\ncellsize 1\nnodata_value -9999\n7 -9999 5\n9\n"

	dem, err := ParseDEM(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseDEM failed: %v", err)
	}

	want := []float32{7, 5, 5, 9, 5, 5}
	for i, w := range want {
		if dem.Elevations[i] != w {
			t.Errorf("sample %d: expected %v, got %v", i, w, dem.Elevations[i])
		}
	}
	if dem.Filled != 3 {
		t.Errorf("expected 3 filled samples, got %d", dem.Filled)
	}
}

func TestParseDEM_MissingHeader(t *testing.T) {
	_, err := ParseDEM(strings.NewReader("ncols 4\n1 2 3 4\n"))
	if !errors.Is(err, ErrMissingDEMHeader) {
		t.Errorf("expected ErrMissingDEMHeader, got %v", err)
	}
}

func TestParseDEM_InvalidHeader(t *testing.T) {
	tests := []string{
		"ncols abc\nnrows 1\n1\n",
		"ncols 1\nnrows 1\nbogus 3\n1\n",
		"ncols 0\nnrows 1\n",
		"ncols",
	}
	for _, data := range tests {
		if _, err := ParseDEM(strings.NewReader(data)); !errors.Is(err, ErrInvalidDEMHeader) {
			t.Errorf("%q: expected ErrInvalidDEMHeader, got %v", data, err)
		}
	}
}

func TestParseDEM_HugeHeader(t *testing.T) {
	tests := []string{
		"ncols 65536 nrows 65536 1.0",
		"ncols 65537 nrows 1 1.0",
		"ncols 16384 nrows 8192\n",
	}
	for _, data := range tests {
		if _, err := ParseDEM(strings.NewReader(data)); !errors.Is(err, ErrInvalidDEMHeader) {
			t.Errorf("%q: expected ErrInvalidDEMHeader, got %v", data, err)
		}
	}
}

func TestParseDEM_ShortInputStaysSmall(t *testing.T) {
	// A large but legal grid with a single sample is padded with that sample.
	d, err := ParseDEM(strings.NewReader("ncols 2048 nrows 1024 7.5"))
	if err != nil {
		t.Fatalf("ParseDEM failed: %v", err)
	}
	if len(d.Elevations) != 2048*1024 {
		t.Fatalf("expected %d samples, got %d", 2048*1024, len(d.Elevations))
	}
	if d.Filled != 2048*1024-1 {
		t.Errorf("expected %d filled, got %d", 2048*1024-1, d.Filled)
	}
	if v, _ := d.At(1023, 2047); v != 7.5 {
		t.Errorf("expected fill 7.5, got %v", v)
	}
}

func TestParseDEM_InvalidSample(t *testing.T) {
	_, err := ParseDEM(strings.NewReader("ncols 2\nnrows 1\n1 x\n"))
	if !errors.Is(err, ErrInvalidDEMSample) {
		t.Errorf("expected ErrInvalidDEMSample, got %v", err)
	}
}

func TestDEMStats(t *testing.T) {
	dem, err := ParseDEM(strings.NewReader(smallDEM))
	if err != nil {
		t.Fatalf("ParseDEM failed: %v", err)
	}

	s := dem.Stats()
	if s.Min != 1 || s.Max != 6 {
		t.Errorf("expected range [1,6], got [%v,%v]", s.Min, s.Max)
	}
	if s.Mean != 3.5 {
		t.Errorf("expected mean 3.5, got %v", s.Mean)
	}
	if s.StdDev <= 0 {
		t.Errorf("expected positive stddev, got %v", s.StdDev)
	}
}

func TestWriteDEMRoundTrip(t *testing.T) {
	dem, err := ParseDEM(strings.NewReader(smallDEM))
	if err != nil {
		t.Fatalf("ParseDEM failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.asc")
	var buf bytes.Buffer
	if err := WriteDEM(&buf, dem); err != nil {
		t.Fatalf("WriteDEM failed: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	back, err := ParseDEMFile(path)
	if err != nil {
		t.Fatalf("ParseDEMFile failed: %v", err)
	}
	if back.Cols != dem.Cols || back.Rows != dem.Rows || back.CellSize != dem.CellSize {
		t.Errorf("header mismatch: got %dx%d/%v", back.Cols, back.Rows, back.CellSize)
	}
	for i := range dem.Elevations {
		if back.Elevations[i] != dem.Elevations[i] {
			t.Errorf("sample %d: got %v, want %v", i, back.Elevations[i], dem.Elevations[i])
		}
	}
}

func TestParseDEMFile_Missing(t *testing.T) {
	if _, err := ParseDEMFile(filepath.Join(t.TempDir(), "nope.asc")); err == nil {
		t.Error("expected error for missing file")
	}
}
