package world

import (
	"math"

	"boxwalk/server/internal/nav"
)

// MovementActor captures the minimal mutable state required to move an actor
// against the navmesh.
type MovementActor struct {
	X       float64
	Z       float64
	IntentX float64
	IntentZ float64
}

// MoveActor advances an actor by its normalized intent, vetoing each axis
// independently: a candidate position inside the padded navmesh rejects that
// axis's delta while the other axis may still apply, which is what lets a
// player slide along a wall. With no blocking regions movement is
// unconstrained. A query error rejects the step and is returned to the
// caller.
func MoveActor(actor *MovementActor, dt float64, mesh *nav.Mesh, speed float64) error {
	if actor == nil {
		return nil
	}

	dx := actor.IntentX
	dz := actor.IntentZ
	length := math.Hypot(dx, dz)
	if length != 0 {
		dx /= length
		dz /= length
	}

	deltaX := dx * speed * dt
	deltaZ := dz * speed * dt

	if deltaX != 0 {
		blocked, err := mesh.Contains(actor.X+deltaX, actor.Z)
		if err != nil {
			return err
		}
		if !blocked {
			actor.X += deltaX
		}
	}

	if deltaZ != 0 {
		blocked, err := mesh.Contains(actor.X, actor.Z+deltaZ)
		if err != nil {
			return err
		}
		if !blocked {
			actor.Z += deltaZ
		}
	}

	return nil
}
