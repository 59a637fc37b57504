// Package ui draws the 2D overlays of the viewer.
package ui

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/Faultbox/highland/internal/game/world"
	"github.com/Faultbox/highland/pkg/math"
)

// MarkerType selects a marker's color.
type MarkerType uint8

const (
	MarkerCamera MarkerType = iota
	MarkerPlant
	MarkerMoveable
	MarkerItem
)

var markerColors = [...]color.RGBA{
	MarkerCamera:   {R: 255, G: 40, B: 40, A: 255},
	MarkerPlant:    {R: 20, G: 90, B: 20, A: 255},
	MarkerMoveable: {R: 150, G: 90, B: 30, A: 255},
	MarkerItem:     {R: 240, G: 220, B: 60, A: 255},
}

// Marker is a point of interest in world (x, z).
type Marker struct {
	X, Z float32
	Type MarkerType
}

// Minimap renders an elevation-shaded overview of the world with markers on top.
type Minimap struct {
	Size       int     // output edge in pixels
	Resolution float32 // world units per base pixel
	WaterLevel float32

	ShowPlants    bool
	ShowMoveables bool
	ShowItems     bool

	markers []Marker
	base    *image.RGBA // cached shading, rebuilt by Invalidate
	hi      float32
}

// NewMinimap creates a minimap with a 256 pixel output.
func NewMinimap() *Minimap {
	return &Minimap{
		Size:          256,
		Resolution:    40,
		ShowMoveables: true,
		ShowItems:     true,
	}
}

// AddMarker adds a marker drawn on the next Render.
func (m *Minimap) AddMarker(mk Marker) {
	m.markers = append(m.markers, mk)
}

// ClearMarkers removes the markers added so far.
func (m *Minimap) ClearMarkers() {
	m.markers = m.markers[:0]
}

// Invalidate drops the cached shading, e.g. after the terrain was flattened.
func (m *Minimap) Invalidate() {
	m.base = nil
}

// Render draws w scaled into a Size x Size image with the camera at cam.
// North (+z) is up.
func (m *Minimap) Render(w *world.World, cam math.Vec3) *image.RGBA {
	if m.base == nil {
		m.base = m.shade(w)
	}

	out := image.NewRGBA(image.Rect(0, 0, m.Size, m.Size))
	draw.NearestNeighbor.Scale(out, out.Bounds(), m.base, m.base.Bounds(), draw.Src, nil)

	extentX, extentZ := w.Terrain.Extent()
	toPixel := func(x, z float32) (int, int) {
		px := int(x * float32(m.Size) / extentX)
		py := m.Size - 1 - int(z*float32(m.Size)/extentZ)
		return px, py
	}
	dot := func(x, z float32, r int, c color.RGBA) {
		px, py := toPixel(x, z)
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if image.Pt(px+dx, py+dy).In(out.Rect) {
					out.SetRGBA(px+dx, py+dy, c)
				}
			}
		}
	}

	if m.ShowPlants {
		for i := range w.Vegetation.Tiles {
			for _, p := range w.Vegetation.Tiles[i].Plants {
				dot(p.Position.X, p.Position.Z, 0, markerColors[MarkerPlant])
			}
		}
	}
	if m.ShowItems {
		for i := range w.Vegetation.Tiles {
			for _, it := range w.Vegetation.Tiles[i].Items {
				dot(it.Position.X, it.Position.Z, 1, markerColors[MarkerItem])
			}
		}
	}
	if m.ShowMoveables {
		for i := range w.Moveables.Tiles {
			for _, obj := range w.Moveables.Tiles[i].Objects {
				dot(obj.Position.X, obj.Position.Z, 1, markerColors[MarkerMoveable])
			}
		}
	}
	for _, mk := range m.markers {
		dot(mk.X, mk.Z, 1, markerColors[mk.Type])
	}
	dot(cam.X, cam.Z, 2, markerColors[MarkerCamera])
	return out
}

// shade samples the surface every Resolution units and colors it by height and slope.
func (m *Minimap) shade(w *world.World) *image.RGBA {
	extentX, extentZ := w.Terrain.Extent()
	res := m.Resolution
	if res <= 0 {
		res = 1
	}
	cols := max(1, int(extentX/res))
	rows := max(1, int(extentZ/res))

	m.hi = w.Terrain.Tiles[0].MaxY
	for i := range w.Terrain.Tiles {
		m.hi = max(m.hi, w.Terrain.Tiles[i].MaxY)
	}

	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for py := range rows {
		z := (float32(rows-1-py) + 0.5) * extentZ / float32(rows)
		for px := range cols {
			x := (float32(px) + 0.5) * extentX / float32(cols)
			p, n, ok := w.Terrain.SurfaceAt(x, z)
			if !ok {
				continue
			}
			img.SetRGBA(px, py, m.elevationColor(p.Y, n.Y))
		}
	}
	return img
}

func (m *Minimap) elevationColor(y, normalY float32) color.RGBA {
	if y <= m.WaterLevel {
		return color.RGBA{R: 40, G: 80, B: 150, A: 255}
	}
	t := float32(0)
	if m.hi > m.WaterLevel {
		t = (y - m.WaterLevel) / (m.hi - m.WaterLevel)
	}
	t = min(max(t, 0), 1)
	light := 0.6 + 0.4*normalY
	lerp := func(a, b float32) uint8 {
		return uint8((a + (b-a)*t) * light)
	}
	return color.RGBA{R: lerp(90, 200), G: lerp(140, 190), B: lerp(60, 170), A: 255}
}
