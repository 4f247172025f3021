package system

import (
	"log/slog"

	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/prefabs"
)

// ProjectileSystem advances in-flight projectiles and resolves each exactly
// once when the clock reaches its impact time.
//
// Resolution damages the original target if it is still alive and within
// ImpactRadius of the impact point. Otherwise the nearest living agent not of
// the shooter's faction within that radius is hit, lowest id first on ties.
// With nobody there the shot is wasted.
type ProjectileSystem struct {
	tuning *prefabs.Tuning
	logger *slog.Logger
}

func NewProjectileSystem(tuning *prefabs.Tuning, logger *slog.Logger) *ProjectileSystem {
	return &ProjectileSystem{tuning: tuningOrDefault(tuning), logger: loggerOrDiscard(logger)}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := w.Clock().Now
	buf := w.Buffer()

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Projectile, tr *component.Transform) {
		if p.Resolved {
			return
		}
		tr.Position = p.PositionAt(now)
		if now < p.ImpactTime() {
			return
		}

		p.Resolved = true
		buf.Destroy(e)

		victim, ok := s.victim(w, p)
		impact := component.ProjectileImpact{Projectile: refOf(e), Point: p.Impact}
		if !ok {
			s.logger.Debug("projectile missed", "projectile", e, "shooter", entityOf(p.Shooter))
			emit(w, ecs.EventProjectileImpact, impact)
			return
		}
		impact.Victim = refOf(victim)
		impact.Damage = p.Damage
		emit(w, ecs.EventProjectileImpact, impact)
		dealDamage(w, entityOf(p.Shooter), victim, p.Damage, 1, false)
	})
}

func (s *ProjectileSystem) victim(w *ecs.World, p *component.Projectile) (ecs.Entity, bool) {
	radius := s.tuning.Ballistics.ImpactRadius
	if e, tr, ok := livingAgent(w, p.Target); ok && tr.Position.Distance(p.Impact) <= radius {
		return e, true
	}

	var best ecs.Entity
	bestSq := radius * radius
	found := false
	ecs.ForEach3(w, component.TransformComponent.Kind(), component.FactionComponent.Kind(), component.HealthComponent.Kind(), func(e ecs.Entity, tr *component.Transform, f *component.Faction, h *component.Health) {
		if !h.Alive() || f.ID == p.ShooterFaction {
			return
		}
		d := tr.Position.Sub(p.Impact).LengthSq()
		if d > bestSq || (found && d == bestSq) {
			return
		}
		best, bestSq, found = e, d, true
	})
	return best, found
}
