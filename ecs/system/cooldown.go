package system

import (
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
)

// cooldownEpsilon absorbs float drift from summing fractional deltas.
const cooldownEpsilon = 1e-9

// CooldownSystem counts attack cooldowns down by the tick delta, stopping at
// zero.
type CooldownSystem struct{}

func NewCooldownSystem() *CooldownSystem {
	return &CooldownSystem{}
}

func (s *CooldownSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Clock().Delta
	ecs.ForEach(w, component.AttackCooldownComponent.Kind(), func(e ecs.Entity, cd *component.AttackCooldown) {
		if cd == nil || cd.Remaining <= 0 {
			return
		}
		cd.Remaining -= dt
		if cd.Remaining < cooldownEpsilon {
			cd.Remaining = 0
		}
	})
}
