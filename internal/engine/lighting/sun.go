// Package lighting derives the directional light used to shade the terrain.
package lighting

import "math"

// Sun is a directional light given in degrees. Azimuth turns around +Y from +Z towards
// +X; elevation is measured up from the horizon.
type Sun struct {
	Azimuth   float32
	Elevation float32
}

// DefaultSun is a mid-afternoon sun in the south-west.
func DefaultSun() Sun {
	return Sun{Azimuth: 225, Elevation: 50}
}

// ToSun returns the unit vector pointing from the ground towards the sun.
func (s Sun) ToSun() [3]float32 {
	az := float64(s.Azimuth) * math.Pi / 180
	el := float64(s.Elevation) * math.Pi / 180

	x := float32(math.Cos(el) * math.Sin(az))
	y := float32(math.Sin(el))
	z := float32(math.Cos(el) * math.Cos(az))
	return [3]float32{x, y, z}
}

// Direction returns the direction the light travels, as the terrain shader expects.
func (s Sun) Direction() [3]float32 {
	v := s.ToSun()
	return [3]float32{-v[0], -v[1], -v[2]}
}
