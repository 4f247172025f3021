package system

import (
	"math"

	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/prefabs"
)

// LocomotionSystem steers agents straight toward their Destination at their
// movement speed. Height follows linearly with ground progress. Arrival snaps
// to the point and clears the destination, and the move intent as well when
// the destination came from a player order.
type LocomotionSystem struct {
	tuning *prefabs.Tuning
}

func NewLocomotionSystem(tuning *prefabs.Tuning) *LocomotionSystem {
	return &LocomotionSystem{tuning: tuningOrDefault(tuning)}
}

func (s *LocomotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Clock().Delta
	buf := w.Buffer()
	arrive := s.tuning.Locomotion.ArriveRadius

	ecs.ForEach3(w, component.TransformComponent.Kind(), component.DestinationComponent.Kind(), component.LocomotionComponent.Kind(), func(e ecs.Entity, tr *component.Transform, dest *component.Destination, loco *component.Locomotion) {
		if !isAlive(w, e) {
			return
		}
		step := math.Max(loco.Speed, 0) * dt
		delta := dest.Point.Ground().Sub(tr.Position.Ground())
		dist := delta.Length()

		if dist <= math.Max(step, arrive) {
			if dist > 0 {
				tr.Facing = math.Atan2(delta.Y, delta.X)
			}
			tr.Position = dest.Point
			ecs.Unset(buf, e, component.DestinationComponent.Kind())
			if dest.Source == component.DestinationOrder {
				ecs.Unset(buf, e, component.MoveIntentComponent.Kind())
			}
			return
		}
		if step == 0 {
			return
		}

		frac := step / dist
		tr.Facing = math.Atan2(delta.Y, delta.X)
		tr.Position = common.FromGround(
			tr.Position.Ground().Add(delta.Mult(frac)),
			common.Lerp(tr.Position.Y, dest.Point.Y, frac),
		)
	})
}
