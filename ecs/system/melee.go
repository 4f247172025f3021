package system

import (
	"math"

	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/prefabs"
)

// MeleeSystem closes to melee range and strikes on cooldown. Agents that also
// carry a RangedProfile are left to the ranged resolver.
type MeleeSystem struct {
	tuning *prefabs.Tuning
}

func NewMeleeSystem(tuning *prefabs.Tuning) *MeleeSystem {
	return &MeleeSystem{tuning: tuningOrDefault(tuning)}
}

func (s *MeleeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	buf := w.Buffer()
	combat := s.tuning.Combat

	ecs.ForEach4(w, component.MeleeProfileComponent.Kind(), component.TargetComponent.Kind(), component.TransformComponent.Kind(), component.AttackCooldownComponent.Kind(), func(e ecs.Entity, m *component.MeleeProfile, t *component.Target, tr *component.Transform, cd *component.AttackCooldown) {
		if ecs.Has(w, e, component.RangedProfileComponent.Kind()) || !isAlive(w, e) {
			return
		}
		victim, ttr, ok := livingAgent(w, t.Entity)
		if !ok {
			return
		}

		reach := m.Range
		if reach <= 0 {
			reach = combat.MeleeRange
		}
		if tr.Position.PlanarDistance(ttr.Position) > reach {
			ecs.Set(buf, e, component.DestinationComponent.Kind(), &component.Destination{
				Point:  ttr.Position,
				Source: component.DestinationCombat,
			})
			return
		}

		if ecs.Has(w, e, component.DestinationComponent.Kind()) {
			ecs.Unset(buf, e, component.DestinationComponent.Kind())
		}
		delta := ttr.Position.Ground().Sub(tr.Position.Ground())
		if delta.LengthSq() > 0 {
			tr.Facing = math.Atan2(delta.Y, delta.X)
		}
		if !cd.Ready() {
			return
		}

		mod := HeightModifier(tr.Position.Y, ttr.Position.Y, combat)
		dealDamage(w, e, victim, FinalDamage(m.Damage, mod), mod, true)
		cd.Remaining = cd.Interval
	})
}
