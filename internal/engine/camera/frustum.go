package camera

import "github.com/Faultbox/highland/pkg/math"

// Frustum is a reduced view volume: only the left and right side planes, both through the
// camera position with inward-facing normals. Top, bottom, near and far are not tested.
// It is valid for the frame it was built in.
type Frustum struct {
	Position math.Vec3
	Forward  math.Vec3
	Near     float32
	Far      float32

	Left  math.Vec3 // inward normal
	Right math.Vec3 // inward normal
}

// sideWidening scales the near-plane half-width so tiles straddling the view edge are kept.
const sideWidening = 2

// Rebuild recomputes the frustum from the view and projection matrices.
// The near-plane half extents come from near/proj[0] and near/proj[5].
func (f *Frustum) Rebuild(view, proj math.Mat4, near, far float32) {
	camWorld := view.Inverse()

	hw := near / proj[0] * sideWidening
	hh := near / proj[5]

	tl := math.Vec3{X: -hw, Y: hh, Z: -near}
	bl := math.Vec3{X: -hw, Y: -hh, Z: -near}
	tr := math.Vec3{X: hw, Y: hh, Z: -near}
	br := math.Vec3{X: hw, Y: -hh, Z: -near}

	f.Position = camWorld.TransformPoint(math.Vec3{})
	f.Forward = camWorld.TransformDirection(math.Vec3{Z: -1}).Normalize()
	f.Near = near
	f.Far = far

	ray := func(p math.Vec3) math.Vec3 {
		return camWorld.TransformPoint(p).Sub(f.Position)
	}
	f.Left = ray(bl).Cross(ray(tl)).Normalize()
	f.Right = ray(tr).Cross(ray(br)).Normalize()
}

// Inside reports whether p is on the inner side of both planes.
func (f *Frustum) Inside(p math.Vec3) bool {
	d := p.Sub(f.Position)
	return d.Dot(f.Left) >= 0 && d.Dot(f.Right) >= 0
}

// ContainsAny accepts a tile when any one of its corners is inside both planes.
// This over-includes tiles near the view edges and never rejects a visible one whose
// corner is in view.
func (f *Frustum) ContainsAny(corners [4]math.Vec3) bool {
	for _, c := range corners {
		if f.Inside(c) {
			return true
		}
	}
	return false
}
