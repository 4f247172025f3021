package system

import (
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
)

// SupportSystem heals the most wounded living ally in planar range whenever
// the healer's cooldown is ready. Ties go to the lowest id.
type SupportSystem struct{}

func NewSupportSystem() *SupportSystem {
	return &SupportSystem{}
}

type patient struct {
	e       ecs.Entity
	tr      *component.Transform
	faction component.FactionID
	h       *component.Health
}

func (s *SupportSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var wounded []patient
	ecs.ForEach3(w, component.TransformComponent.Kind(), component.FactionComponent.Kind(), component.HealthComponent.Kind(), func(e ecs.Entity, tr *component.Transform, f *component.Faction, h *component.Health) {
		if h.Alive() && h.Current < h.Max {
			wounded = append(wounded, patient{e: e, tr: tr, faction: f.ID, h: h})
		}
	})
	if len(wounded) == 0 {
		return
	}

	ecs.ForEach4(w, component.SupportProfileComponent.Kind(), component.TransformComponent.Kind(), component.FactionComponent.Kind(), component.AttackCooldownComponent.Kind(), func(e ecs.Entity, sp *component.SupportProfile, tr *component.Transform, f *component.Faction, cd *component.AttackCooldown) {
		if !cd.Ready() || sp.Heal <= 0 || !isAlive(w, e) {
			return
		}
		var best *patient
		bestMissing := 0
		for i := range wounded {
			p := &wounded[i]
			if p.e == e || p.faction != f.ID || tr.Position.PlanarDistance(p.tr.Position) > sp.Range {
				continue
			}
			if missing := p.h.Max - p.h.Current; missing > bestMissing {
				best, bestMissing = p, missing
			}
		}
		if best == nil {
			return
		}
		amount := min(sp.Heal, bestMissing)
		best.h.Current += amount
		cd.Remaining = cd.Interval
		emit(w, ecs.EventHealed, component.Healed{Healer: refOf(e), Patient: refOf(best.e), Amount: amount})
	})
}
