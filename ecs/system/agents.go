package system

import (
	"log/slog"

	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/prefabs"
)

func refOf(e ecs.Entity) component.Ref {
	return component.Ref(e)
}

func entityOf(r component.Ref) ecs.Entity {
	return ecs.Entity(r)
}

// livingAgent resolves r to a live entity whose health is above zero. Stale
// and dead references both report false.
func livingAgent(w *ecs.World, r component.Ref) (ecs.Entity, *component.Transform, bool) {
	if r == component.NoRef {
		return 0, nil, false
	}
	e := entityOf(r)
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || !h.Alive() {
		return 0, nil, false
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	return e, tr, true
}

func isAlive(w *ecs.World, e ecs.Entity) bool {
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	return ok && h.Alive()
}

func emit(w *ecs.World, typ ecs.EventType, data any) {
	w.Events().Push(ecs.Event{Type: typ, Tick: w.Clock().Tick, Data: data})
}

func tuningOrDefault(t *prefabs.Tuning) *prefabs.Tuning {
	if t == nil {
		return prefabs.DefaultTuning()
	}
	return t
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
