package game

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/highland/internal/engine/camera"
	"github.com/Faultbox/highland/internal/engine/input"
	"github.com/Faultbox/highland/internal/engine/picking"
	"github.com/Faultbox/highland/internal/game/items"
	"github.com/Faultbox/highland/internal/game/moveables"
	"github.com/Faultbox/highland/internal/game/world"
	"github.com/Faultbox/highland/pkg/math"
)

// ErrNoTarget is returned by actions when the camera is not looking at the ground.
var ErrNoTarget = errors.New("no ground under the cursor")

const (
	fastFactor  = 4
	reach       = 2000 // ray length for picking the ground
	pickRadius  = 30
	defaultSlot = 16

	// MoveableHalfSize is the half-extent of the cube drawn and picked for a moveable.
	MoveableHalfSize = 2
)

// Sim is the fixed-step part of the viewer: the camera flying over the world and the
// edits the user triggers. It owns no GL state.
type Sim struct {
	World     *world.World
	Camera    *camera.FlyCamera
	Inventory *items.Inventory

	FlattenWidth float32 // footprint edge for Flatten
	Ticks        uint64
}

// NewSim places the camera over the centre of w, clear of the ground.
func NewSim(w *world.World, cam *camera.FlyCamera) *Sim {
	if cam == nil {
		extentX, extentZ := w.Terrain.Extent()
		cam = camera.NewFlyCamera(math.Vec3{X: extentX / 2, Z: extentZ / 2})
	}
	s := &Sim{
		World:        w,
		Camera:       cam,
		Inventory:    items.NewInventory(defaultSlot),
		FlattenWidth: 40,
	}
	s.clampToGround()
	return s
}

// Step advances the camera by dt seconds of controls.
func (s *Sim) Step(c input.Controls, dt float32) {
	if c.Fast {
		dt *= fastFactor
	}
	s.Camera.HandleTurn(c.Yaw, c.Pitch, dt)
	s.Camera.HandleMovement(c.Forward, c.Right, c.Up, dt)
	s.clampToGround()
	s.Ticks++
}

func (s *Sim) clampToGround() {
	p := &s.Camera.Position
	extentX, extentZ := s.World.Terrain.Extent()
	p.X = min(max(p.X, 0), extentX)
	p.Z = min(max(p.Z, 0), extentZ)
	if y, ok := s.World.Terrain.HeightAt(p.X, p.Z); ok {
		s.Camera.KeepAbove(y)
	}
}

// Target returns the ground point the camera looks at.
func (s *Sim) Target() (math.Vec3, bool) {
	hit, ok := s.World.Terrain.Raycast(s.Camera.Position, s.Camera.Forward().Scale(reach))
	if !ok {
		return math.Vec3{}, false
	}
	return hit.Point, true
}

// FlattenTarget levels a square pad, aligned with the camera yaw, at the target.
func (s *Sim) FlattenTarget() (world.FlattenResult, error) {
	p, ok := s.Target()
	if !ok {
		return world.FlattenResult{}, ErrNoTarget
	}
	yawDeg := s.Camera.Yaw * 180 / gomath.Pi
	res, ok, err := s.World.Flatten(p.XZ(), s.FlattenWidth, s.FlattenWidth, yawDeg)
	if err != nil {
		return res, err
	}
	if !ok {
		return res, fmt.Errorf("%w: flatten at (%.1f, %.1f)", ErrNoTarget, p.X, p.Z)
	}
	return res, nil
}

// PlaceTarget drops a moveable of kind at the target.
func (s *Sim) PlaceTarget(kind moveables.Kind) (*moveables.Object, error) {
	p, ok := s.Target()
	if !ok {
		return nil, ErrNoTarget
	}
	yawDeg := s.Camera.Yaw * 180 / gomath.Pi
	return s.World.PlaceMoveable(kind, p.X, p.Z, yawDeg, nil)
}

// PickUpTarget moves ground items around the target into the inventory.
func (s *Sim) PickUpTarget() (int, error) {
	p, ok := s.Target()
	if !ok {
		return 0, ErrNoTarget
	}
	return s.World.PickUp(p, pickRadius, s.Inventory)
}

// PickMoveable returns the moveable in the local window whose marker cube the view ray
// hits first, unless the ground is closer.
func (s *Sim) PickMoveable() (*moveables.Object, bool) {
	ray := picking.NewRay(s.Camera.Position, s.Camera.Forward())
	limit := float32(reach)
	if hit, ok := s.World.Terrain.Raycast(s.Camera.Position, ray.Direction.Scale(reach)); ok {
		limit = hit.T * reach
	}

	grid := s.World.Moveables
	grid.UpdateLocalWindow(s.Camera.Position)
	var best *moveables.Object
	for _, index := range grid.LocalWindow() {
		if !grid.Valid(index) {
			continue
		}
		for _, obj := range grid.Tiles[index].Objects {
			t, ok := ray.IntersectAABB(picking.StandingBox(obj.Position, MoveableHalfSize))
			if ok && t <= limit {
				best, limit = obj, t
			}
		}
	}
	return best, best != nil
}
