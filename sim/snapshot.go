package sim

import (
	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
)

type AgentState uint8

const (
	StateIdle AgentState = iota
	StateMoving
	StatePursuingOrEngaging
	StateReturningToGuard
	StateDead
)

func (s AgentState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMoving:
		return "moving"
	case StatePursuingOrEngaging:
		return "engaging"
	case StateReturningToGuard:
		return "returning"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// StateOf derives an agent's targeting state from its components.
func StateOf(w *ecs.World, e ecs.Entity) AgentState {
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); !ok || !h.Alive() {
		return StateDead
	}
	if ecs.Has(w, e, component.TargetComponent.Kind()) {
		return StatePursuingOrEngaging
	}
	if ecs.Has(w, e, component.MoveIntentComponent.Kind()) {
		return StateMoving
	}
	if dest, ok := ecs.Get(w, e, component.DestinationComponent.Kind()); ok {
		switch dest.Source {
		case component.DestinationOrder:
			return StateMoving
		case component.DestinationGuard:
			return StateReturningToGuard
		}
	}
	return StateIdle
}

type AgentView struct {
	ID        ecs.Entity
	Prefab    string
	Faction   component.FactionID
	Position  common.Vec3
	Facing    float64
	Health    int
	MaxHealth int
	State     AgentState
	Target    ecs.Entity
}

type ProjectileView struct {
	ID       ecs.Entity
	Shooter  ecs.Entity
	Kind     component.BallisticKind
	Position common.Vec3
	Impact   common.Vec3
}

type Snapshot struct {
	Tick        uint64
	Time        float64
	Agents      []AgentView
	Projectiles []ProjectileView
}

type FactionSummary struct {
	Alive       int
	Dead        int
	TotalHealth int
}

// Snapshot captures agents in ascending id order and every unresolved
// projectile at its current point along its flight path.
func (e *Engine) Snapshot() Snapshot {
	w := e.world
	clock := w.Clock()
	snap := Snapshot{Tick: clock.Tick, Time: clock.Now}

	ecs.ForEach3(w, component.TransformComponent.Kind(), component.FactionComponent.Kind(), component.HealthComponent.Kind(), func(ent ecs.Entity, tr *component.Transform, f *component.Faction, h *component.Health) {
		view := AgentView{
			ID:        ent,
			Faction:   f.ID,
			Position:  tr.Position,
			Facing:    tr.Facing,
			Health:    h.Current,
			MaxHealth: h.Max,
			State:     StateOf(w, ent),
		}
		if u, ok := ecs.Get(w, ent, component.UnitComponent.Kind()); ok {
			view.Prefab = u.Prefab
		}
		if t, ok := ecs.Get(w, ent, component.TargetComponent.Kind()); ok {
			view.Target = ecs.Entity(t.Entity)
		}
		snap.Agents = append(snap.Agents, view)
	})

	ecs.ForEach(w, component.ProjectileComponent.Kind(), func(ent ecs.Entity, p *component.Projectile) {
		if p.Resolved {
			return
		}
		snap.Projectiles = append(snap.Projectiles, ProjectileView{
			ID:       ent,
			Shooter:  ecs.Entity(p.Shooter),
			Kind:     p.Kind,
			Position: p.PositionAt(clock.Now),
			Impact:   p.Impact,
		})
	})
	return snap
}

// Factions tallies the snapshot per faction.
func (s Snapshot) Factions() map[component.FactionID]FactionSummary {
	out := map[component.FactionID]FactionSummary{}
	for _, a := range s.Agents {
		sum := out[a.Faction]
		if a.Health > 0 {
			sum.Alive++
			sum.TotalHealth += a.Health
		} else {
			sum.Dead++
		}
		out[a.Faction] = sum
	}
	return out
}
