package math

import "github.com/go-gl/mathgl/mgl32"

// Mat4 is a 4x4 column-major matrix with the same layout as mgl32.Mat4, so the two
// convert freely and the GL helpers do the arithmetic.
type Mat4 mgl32.Mat4

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4(mgl32.Ident4())
}

// Perspective returns a GL perspective projection. fovY is in radians.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	return Mat4(mgl32.Perspective(fovY, aspect, near, far))
}

// Translate returns a translation by v.
func Translate(v Vec3) Mat4 {
	return Mat4(mgl32.Translate3D(v.X, v.Y, v.Z))
}

// RotateX rotates about the X axis by angle radians. Positive pitches -Z toward +Y.
func RotateX(angle float32) Mat4 {
	return Mat4(mgl32.HomogRotate3DX(angle))
}

// RotateY rotates about the Y axis by angle radians. Positive turns +X toward -Z.
func RotateY(angle float32) Mat4 {
	return Mat4(mgl32.HomogRotate3DY(angle))
}

// GL returns m as an mgl32 matrix.
func (m Mat4) GL() mgl32.Mat4 {
	return mgl32.Mat4(m)
}

// Mul returns m * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	return Mat4(m.GL().Mul4(other.GL()))
}

// TransformPoint applies m to p with w=1. The perspective divide only happens when
// the result is projective.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	r := m.GL().Mul4x1(mgl32.Vec4{p.X, p.Y, p.Z, 1})
	if r[3] != 0 && r[3] != 1 {
		return Vec3{r[0] / r[3], r[1] / r[3], r[2] / r[3]}
	}
	return Vec3{r[0], r[1], r[2]}
}

// TransformDirection applies m to d with w=0, ignoring translation.
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	r := m.GL().Mul4x1(mgl32.Vec4{d.X, d.Y, d.Z, 0})
	return Vec3{r[0], r[1], r[2]}
}

// Inverse returns the inverse of m, or the identity when m is singular.
func (m Mat4) Inverse() Mat4 {
	gm := m.GL()
	if gm.Det() == 0 {
		return Identity()
	}
	return Mat4(gm.Inv())
}
