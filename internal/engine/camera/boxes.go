package camera

import "github.com/Faultbox/highland/pkg/math"

// Box is an axis-aligned rectangle on the ground plane.
type Box struct {
	MinX, MinZ float32
	MaxX, MaxZ float32
}

// BoxAround returns the box pos ± radius on x and z.
func BoxAround(pos math.Vec3, radius float32) Box {
	return Box{
		MinX: pos.X - radius,
		MinZ: pos.Z - radius,
		MaxX: pos.X + radius,
		MaxZ: pos.Z + radius,
	}
}

// Contains reports whether p (x, z) lies in the box, edges included.
func (b Box) Contains(p math.Vec2) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinZ && p.Y <= b.MaxZ
}

// Boxes are the distance cullers recomputed once per frame around the camera.
type Boxes struct {
	DrawRadius   float32   // terrain draw distance
	DetailRadius float32   // full-detail vegetation
	NoDrawRadii  []float32 // per-species distance past which plants are skipped

	Draw   Box
	Detail Box
	NoDraw []Box
}

// NewBoxes creates distance cullers with the given radii.
func NewBoxes(draw, detail float32, noDraw []float32) *Boxes {
	return &Boxes{
		DrawRadius:   draw,
		DetailRadius: detail,
		NoDrawRadii:  noDraw,
		NoDraw:       make([]Box, len(noDraw)),
	}
}

// Rebuild recenters every box on pos.
func (b *Boxes) Rebuild(pos math.Vec3) {
	b.Draw = BoxAround(pos, b.DrawRadius)
	b.Detail = BoxAround(pos, b.DetailRadius)
	if len(b.NoDraw) != len(b.NoDrawRadii) {
		b.NoDraw = make([]Box, len(b.NoDrawRadii))
	}
	for i, r := range b.NoDrawRadii {
		b.NoDraw[i] = BoxAround(pos, r)
	}
}
