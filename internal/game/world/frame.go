package world

import (
	"github.com/Faultbox/highland/internal/engine/camera"
	"github.com/Faultbox/highland/internal/engine/terrain"
	"github.com/Faultbox/highland/pkg/math"
)

// View is what one frame needs to draw.
type View struct {
	CameraTile int    // terrain tile under the camera, terrain.Invalid when off the map
	Visible    []int  // terrain tiles passing both the frustum and the draw box
	Detail     [9]int // vegetation detail window
	Moveables  []int  // moveables local window
}

// Update culls the world for cam at the given aspect ratio.
func (w *World) Update(cam *camera.FlyCamera, aspect float32) View {
	return w.UpdateMatrices(cam.Position, cam.ViewMatrix(), cam.ProjectionMatrix(aspect), cam.Near, cam.Far)
}

// UpdateMatrices rebuilds the frustum and every distance box around pos, then collects
// the visible terrain tiles and recentres the vegetation and moveables windows.
// The returned slices are reused by the next call.
func (w *World) UpdateMatrices(pos math.Vec3, view, proj math.Mat4, near, far float32) View {
	w.Frustum.Rebuild(view, proj, near, far)
	w.Boxes.Rebuild(pos)

	camTile, ok := w.Terrain.Locate(pos.X, pos.Z)
	if !ok {
		camTile = terrain.Invalid
	}

	w.visible = w.visible[:0]
	for i := range w.Terrain.Tiles {
		tile := &w.Terrain.Tiles[i]
		if !w.Boxes.Draw.Contains(tile.Center) {
			continue
		}
		if !w.Frustum.ContainsAny(w.tileCorners(tile)) {
			continue
		}
		w.visible = append(w.visible, i)
	}

	w.Vegetation.UpdateDrawWindow(camTile, pos)
	w.Moveables.UpdateLocalWindow(pos)

	return View{
		CameraTile: camTile,
		Visible:    w.visible,
		Detail:     w.Vegetation.DetailWindow(),
		Moveables:  w.Moveables.LocalWindow(),
	}
}

func (w *World) tileCorners(tile *terrain.Tile) [4]math.Vec3 {
	last := w.Terrain.Quads()
	var out [4]math.Vec3
	for i, rc := range [4][2]int{{0, 0}, {0, last}, {last, last}, {last, 0}} {
		out[i], _ = w.Terrain.VertexAt(tile.Index, rc[0], rc[1])
	}
	return out
}
