package system

import (
	"testing"

	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/prefabs"
)

func vec(x, y, z float64) common.Vec3 {
	return common.Vec3{X: x, Y: y, Z: z}
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, h component.ComponentHandle[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, h.Kind(), v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

// newAgent spawns a bare agent with 100 health, speed 5, vision 30 and a
// ready 1.5s attack cooldown. Profiles are added by the caller.
func newAgent(t *testing.T, w *ecs.World, faction component.FactionID, pos common.Vec3) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent, &component.Transform{Position: pos})
	mustAdd(t, w, e, component.FactionComponent, &component.Faction{ID: faction})
	mustAdd(t, w, e, component.HealthComponent, &component.Health{Current: 100, Max: 100})
	mustAdd(t, w, e, component.LocomotionComponent, &component.Locomotion{Speed: 5})
	mustAdd(t, w, e, component.VisionComponent, &component.Vision{Radius: 30})
	mustAdd(t, w, e, component.AttackCooldownComponent, &component.AttackCooldown{Interval: 1.5})
	return e
}

func newMelee(t *testing.T, w *ecs.World, faction component.FactionID, pos common.Vec3, damage int) ecs.Entity {
	t.Helper()
	e := newAgent(t, w, faction, pos)
	mustAdd(t, w, e, component.MeleeProfileComponent, &component.MeleeProfile{Damage: damage, Range: 1.5})
	return e
}

func newRanged(t *testing.T, w *ecs.World, faction component.FactionID, pos common.Vec3, minRange, maxRange float64) ecs.Entity {
	t.Helper()
	e := newAgent(t, w, faction, pos)
	mustAdd(t, w, e, component.RangedProfileComponent, &component.RangedProfile{Damage: 10, MinRange: minRange, MaxRange: maxRange})
	return e
}

func position(t *testing.T, w *ecs.World, e ecs.Entity) common.Vec3 {
	t.Helper()
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no transform", e)
	}
	return tr.Position
}

func health(t *testing.T, w *ecs.World, e ecs.Entity) *component.Health {
	t.Helper()
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no health", e)
	}
	return h
}

func targetOf(w *ecs.World, e ecs.Entity) (ecs.Entity, bool) {
	tg, ok := ecs.Get(w, e, component.TargetComponent.Kind())
	if !ok {
		return 0, false
	}
	return ecs.Entity(tg.Entity), true
}

// step advances the clock and runs the systems the way the scheduler does.
func step(w *ecs.World, dt float64, systems ...ecs.System) {
	w.Advance(dt)
	for _, s := range systems {
		s.Update(w)
		w.Buffer().Flush(w)
	}
}

func eventsOf[T any](events []ecs.Event) []T {
	var out []T
	for _, ev := range events {
		if data, ok := ev.Data.(T); ok {
			out = append(out, data)
		}
	}
	return out
}

func testTuning() *prefabs.Tuning {
	return prefabs.DefaultTuning()
}
