package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/highland/pkg/math"
)

// Projection returns the GL perspective matrix for a vertical fov in radians.
func Projection(fovY, aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(fovY, aspect, near, far)
}

// ViewProjection combines proj with a world-to-camera view matrix.
func ViewProjection(proj mgl32.Mat4, view math.Mat4) mgl32.Mat4 {
	return proj.Mul4(view.GL())
}
