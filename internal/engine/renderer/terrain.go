package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/highland/internal/engine/terrain"
)

// TerrainMesh holds one vertex buffer per tile and a single element buffer shared by all
// of them. It implements terrain.Uploader so edits reach the GPU.
type TerrainMesh struct {
	vaos    []uint32
	vbos    []uint32
	ebo     uint32
	indices int32
	floats  int // floats per tile buffer
}

// NewTerrainMesh uploads every tile of ter and registers the mesh as its uploader.
func (r *Renderer) NewTerrainMesh(ter *terrain.Terrain) (*TerrainMesh, error) {
	n := len(ter.Tiles)
	m := &TerrainMesh{
		vaos:    make([]uint32, n),
		vbos:    make([]uint32, n),
		indices: int32(len(ter.Indices)),
		floats:  ter.TileVertices * ter.TileVertices * terrain.FloatsPerVertex,
	}

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(ter.Indices)*4, gl.Ptr(ter.Indices), gl.STATIC_DRAW)

	gl.GenVertexArrays(int32(n), &m.vaos[0])
	gl.GenBuffers(int32(n), &m.vbos[0])

	stride := int32(terrain.FloatsPerVertex * 4)
	for i := range ter.Tiles {
		gl.BindVertexArray(m.vaos[i])
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbos[i])
		gl.BufferData(gl.ARRAY_BUFFER, m.floats*4, gl.Ptr(ter.Tiles[i].Vertices), gl.DYNAMIC_DRAW)
		gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(6*4)))
		gl.EnableVertexAttribArray(2)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	}
	gl.BindVertexArray(0)

	ter.SetUploader(m)
	r.log.Info("terrain uploaded",
		zap.Int("tiles", n),
		zap.Int("bytesPerTile", m.floats*4),
		zap.Int32("indices", m.indices))
	return m, nil
}

// UploadTile replaces the vertex data of one tile.
func (m *TerrainMesh) UploadTile(index int, vertices []float32) error {
	if index < 0 || index >= len(m.vbos) {
		return fmt.Errorf("%w: %d", terrain.ErrTileOutOfRange, index)
	}
	if len(vertices) != m.floats {
		return fmt.Errorf("tile %d: got %d floats, buffer holds %d", index, len(vertices), m.floats)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbos[index])
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

func (m *TerrainMesh) draw(tiles []int) {
	for _, i := range tiles {
		if i < 0 || i >= len(m.vaos) {
			continue
		}
		gl.BindVertexArray(m.vaos[i])
		gl.DrawElements(gl.TRIANGLES, m.indices, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)
}

// Close releases the tile buffers.
func (m *TerrainMesh) Close() {
	if len(m.vaos) > 0 {
		gl.DeleteVertexArrays(int32(len(m.vaos)), &m.vaos[0])
		gl.DeleteBuffers(int32(len(m.vbos)), &m.vbos[0])
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
}
