package formats

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrTruncatedPlantDump is returned when a plant dump ends mid-record.
var ErrTruncatedPlantDump = errors.New("truncated plant dump")

// maxDumpCount bounds counts read from a dump. Slices grow as records arrive, so a
// lying header costs at most one chunk.
const (
	maxDumpCount = 1 << 24
	dumpChunk    = 4096
)

// PlantRecord is one plant instance: position and yaw in degrees.
type PlantRecord struct {
	X, Y, Z float32
	YRot    float32
}

// PlantDumpTile is the per-tile section of a plant dump.
type PlantDumpTile struct {
	CornerX, CornerZ float32
	Plants           []PlantRecord
}

// PlantDump is the binary vegetation layout:
//
//	int32 num_tiles, num_cols, num_rows
//	per tile:  int32 num_plants, float32 corner_x, float32 corner_z
//	per plant: float32 x, y, z, yrot
//
// All values are little-endian.
type PlantDump struct {
	Cols, Rows int32
	Tiles      []PlantDumpTile
}

// WritePlantDump writes d to w.
func WritePlantDump(w io.Writer, d *PlantDump) error {
	bw := bufio.NewWriter(w)
	header := [3]int32{int32(len(d.Tiles)), d.Cols, d.Rows}
	if err := binary.Write(bw, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("writing dump header: %w", err)
	}
	for i, tile := range d.Tiles {
		if err := binary.Write(bw, binary.LittleEndian, int32(len(tile.Plants))); err != nil {
			return fmt.Errorf("writing tile %d: %w", i, err)
		}
		if err := binary.Write(bw, binary.LittleEndian, [2]float32{tile.CornerX, tile.CornerZ}); err != nil {
			return fmt.Errorf("writing tile %d: %w", i, err)
		}
		if err := binary.Write(bw, binary.LittleEndian, tile.Plants); err != nil {
			return fmt.Errorf("writing tile %d plants: %w", i, err)
		}
	}
	return bw.Flush()
}

// ReadPlantDump reads a dump written by WritePlantDump.
func ReadPlantDump(r io.Reader) (*PlantDump, error) {
	br := bufio.NewReader(r)

	var header [3]int32
	if err := binary.Read(br, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: reading header", ErrTruncatedPlantDump)
	}
	numTiles := header[0]
	if numTiles < 0 || numTiles > maxDumpCount {
		return nil, fmt.Errorf("invalid plant dump tile count: %d", numTiles)
	}

	d := &PlantDump{
		Cols:  header[1],
		Rows:  header[2],
		Tiles: make([]PlantDumpTile, 0, min(int(numTiles), dumpChunk)),
	}
	buf := make([]PlantRecord, dumpChunk)
	for i := 0; i < int(numTiles); i++ {
		var count int32
		if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
			return nil, fmt.Errorf("%w: tile %d count", ErrTruncatedPlantDump, i)
		}
		if count < 0 || count > maxDumpCount {
			return nil, fmt.Errorf("invalid plant count %d in tile %d", count, i)
		}
		var corner [2]float32
		if err := binary.Read(br, binary.LittleEndian, &corner); err != nil {
			return nil, fmt.Errorf("%w: tile %d corner", ErrTruncatedPlantDump, i)
		}

		plants := make([]PlantRecord, 0, min(int(count), dumpChunk))
		for left := int(count); left > 0; {
			n := min(left, dumpChunk)
			if err := binary.Read(br, binary.LittleEndian, buf[:n]); err != nil {
				return nil, fmt.Errorf("%w: tile %d plants", ErrTruncatedPlantDump, i)
			}
			plants = append(plants, buf[:n]...)
			left -= n
		}
		d.Tiles = append(d.Tiles, PlantDumpTile{CornerX: corner[0], CornerZ: corner[1], Plants: plants})
	}
	return d, nil
}

// PlantCount returns the total number of plants across all tiles.
func (d *PlantDump) PlantCount() int {
	n := 0
	for _, t := range d.Tiles {
		n += len(t.Plants)
	}
	return n
}
