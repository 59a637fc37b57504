// Package camera provides the fly camera and the per-frame culling volumes derived from it.
package camera

import (
	gomath "math"

	"github.com/Faultbox/highland/pkg/math"
)

// FlyCamera moves freely over the terrain. Yaw 0 looks down -Z; positive pitch looks up.
type FlyCamera struct {
	Position math.Vec3

	Yaw   float32 // radians around +Y
	Pitch float32 // radians around the camera's X axis

	// Constraints
	MinPitch  float32
	MaxPitch  float32
	Clearance float32 // minimum height above the ground

	// Speeds
	MoveSpeed float32 // world units per second
	TurnSpeed float32 // radians per second

	// Projection
	FOVY float32 // radians
	Near float32
	Far  float32
}

// NewFlyCamera creates a fly camera at pos with default limits.
func NewFlyCamera(pos math.Vec3) *FlyCamera {
	return &FlyCamera{
		Position:  pos,
		MinPitch:  -1.4,
		MaxPitch:  1.4,
		Clearance: 2,
		MoveSpeed: 400,
		TurnSpeed: 1.5,
		FOVY:      gomath.Pi / 3,
		Near:      1,
		Far:       20000,
	}
}

// World returns the camera-to-world transform: Translate(pos) * RotateY(yaw) * RotateX(pitch).
func (c *FlyCamera) World() math.Mat4 {
	return math.Translate(c.Position).Mul(math.RotateY(c.Yaw)).Mul(math.RotateX(c.Pitch))
}

// ViewMatrix returns the world-to-camera transform.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return c.World().Inverse()
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *FlyCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FOVY, aspect, c.Near, c.Far)
}

// Forward returns the unit view direction.
func (c *FlyCamera) Forward() math.Vec3 {
	return c.World().TransformDirection(math.Vec3{Z: -1})
}

// ForwardDirection returns the camera's forward direction on the XZ plane.
func (c *FlyCamera) ForwardDirection() (x, z float32) {
	return float32(-gomath.Sin(float64(c.Yaw))), float32(-gomath.Cos(float64(c.Yaw)))
}

// RightDirection returns the camera's right direction on the XZ plane.
func (c *FlyCamera) RightDirection() (x, z float32) {
	return float32(gomath.Cos(float64(c.Yaw))), float32(-gomath.Sin(float64(c.Yaw)))
}

// HandleMovement moves the camera for dt seconds. forward and right move along the
// ground plane regardless of pitch; up moves vertically.
func (c *FlyCamera) HandleMovement(forward, right, up, dt float32) {
	step := c.MoveSpeed * dt
	fx, fz := c.ForwardDirection()
	rx, rz := c.RightDirection()
	c.Position.X += (fx*forward + rx*right) * step
	c.Position.Z += (fz*forward + rz*right) * step
	c.Position.Y += up * step
}

// HandleTurn rotates the camera for dt seconds, clamping pitch.
func (c *FlyCamera) HandleTurn(yaw, pitch, dt float32) {
	c.Yaw += yaw * c.TurnSpeed * dt
	c.Pitch += pitch * c.TurnSpeed * dt
	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
}

// KeepAbove lifts the camera so it stays Clearance above ground.
func (c *FlyCamera) KeepAbove(ground float32) {
	if c.Position.Y < ground+c.Clearance {
		c.Position.Y = ground + c.Clearance
	}
}
