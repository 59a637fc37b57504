package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/highland/internal/engine/terrain"
	"github.com/Faultbox/highland/internal/game/items"
	"github.com/Faultbox/highland/internal/game/moveables"
	"github.com/Faultbox/highland/internal/game/vegetation"
	"github.com/Faultbox/highland/pkg/math"
)

// FlattenResult reports what a flatten changed.
type FlattenResult struct {
	Height        float32 // uniform height the footprint was set to
	Vertices      int     // vertices rewritten, shared edge vertices counted per tile
	Tiles         []int   // tiles whose vertex data changed
	PlantsRemoved int
}

// Flatten levels a xWidth by zWidth rectangle centred on center and rotated by yawDeg
// to the surface height under its centre, clearing plants around every levelled vertex.
// ok is false when the centre is off the map.
func (w *World) Flatten(center math.Vec2, xWidth, zWidth, yawDeg float32) (FlattenResult, bool, error) {
	fp := terrain.NewFootprint(center, xWidth, zWidth, yawDeg)

	var res FlattenResult
	visit := func(tile *terrain.Tile, vr, vc int) {
		res.Vertices++
		res.PlantsRemoved += w.Vegetation.ClearNearVertex(w.Terrain, tile.Row, tile.Col, vr, vc)
	}

	height, changed, ok, err := w.Terrain.Flatten(fp, visit)
	res.Height = height
	res.Tiles = changed
	if !ok {
		return res, false, nil
	}
	if err != nil {
		return res, true, fmt.Errorf("uploading flattened tiles: %w", err)
	}

	w.log.Info("terrain flattened",
		zap.Float32("x", center.X),
		zap.Float32("z", center.Y),
		zap.Float32("height", height),
		zap.Int("vertices", res.Vertices),
		zap.Int("tiles", len(changed)),
		zap.Int("plantsRemoved", res.PlantsRemoved))
	return res, true, nil
}

// PlaceMoveable places an object of kind on the surface at (x, z).
func (w *World) PlaceMoveable(kind moveables.Kind, x, z, yawDeg float32, inv *items.Inventory) (*moveables.Object, error) {
	y, ok := w.Terrain.HeightAt(x, z)
	if !ok {
		return nil, fmt.Errorf("%w: %s at (%.1f, %.1f)", moveables.ErrOutOfBounds, kind, x, z)
	}
	obj := &moveables.Object{
		Position:  math.Vec3{X: x, Y: y, Z: z},
		Yaw:       yawDeg,
		Kind:      kind,
		Inventory: inv,
	}
	if _, err := w.Moveables.Place(obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// DropItem lays qty of kind on the surface at (x, z).
func (w *World) DropItem(kind items.Kind, qty int, x, z float32) (items.Item, error) {
	p, _, ok := w.Terrain.SurfaceAt(x, z)
	if !ok {
		return items.Item{}, fmt.Errorf("%w: dropping %s at (%.1f, %.1f)", vegetation.ErrOffMap, kind, x, z)
	}
	it := items.Item{Kind: kind, Quantity: qty, Position: p}
	if _, err := w.Vegetation.DropItem(it); err != nil {
		return items.Item{}, err
	}
	return it, nil
}

// PickUp moves the ground items within radius of pos into inv. Items that do not fit
// go back on the ground and the last refusal is returned.
func (w *World) PickUp(pos math.Vec3, radius float32, inv *items.Inventory) (int, error) {
	picked := 0
	var refused error
	for _, it := range w.Vegetation.TakeItems(pos, radius) {
		if err := inv.Add(it); err != nil {
			if _, derr := w.Vegetation.DropItem(it); derr != nil {
				return picked, derr
			}
			refused = err
			continue
		}
		picked++
	}
	return picked, refused
}
