package system

import (
	"log/slog"

	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
)

// ReaperSystem destroys agents whose health reached zero and reports each
// death once.
type ReaperSystem struct {
	logger *slog.Logger
}

func NewReaperSystem(logger *slog.Logger) *ReaperSystem {
	return &ReaperSystem{logger: loggerOrDiscard(logger)}
}

func (s *ReaperSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	buf := w.Buffer()

	ecs.ForEach(w, component.HealthComponent.Kind(), func(e ecs.Entity, h *component.Health) {
		if h.Alive() {
			return
		}
		var faction component.FactionID
		if f, ok := ecs.Get(w, e, component.FactionComponent.Kind()); ok {
			faction = f.ID
		}
		s.logger.Info("agent died", "entity", e, "faction", faction, "killer", entityOf(h.LastHitBy), "tick", w.Clock().Tick)
		emit(w, ecs.EventAgentDied, component.AgentDied{Agent: refOf(e), Faction: faction, Killer: h.LastHitBy})
		buf.Destroy(e)
	})
}
