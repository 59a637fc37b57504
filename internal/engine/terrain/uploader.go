package terrain

import "fmt"

// Uploader receives a tile's full interleaved vertex array after its heights change.
// The renderer implements it; headless terrains have none.
type Uploader interface {
	UploadTile(index int, vertices []float32) error
}

// SetUploader installs the sink used after terrain edits.
func (t *Terrain) SetUploader(u Uploader) {
	t.uploader = u
}

// Upload pushes the given tiles to the uploader, if one is set.
func (t *Terrain) Upload(tiles []int) error {
	if t.uploader == nil {
		return nil
	}
	for _, i := range tiles {
		tile := t.Tile(i)
		if tile == nil {
			return fmt.Errorf("upload tile %d: %w", i, ErrTileOutOfRange)
		}
		if err := t.uploader.UploadTile(i, tile.Vertices); err != nil {
			return fmt.Errorf("upload tile %d: %w", i, err)
		}
	}
	return nil
}
