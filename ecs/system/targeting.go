package system

import (
	"log/slog"
	"runtime"

	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/prefabs"
	"golang.org/x/sync/errgroup"
)

// TargetingSystem runs the per-agent engagement state machine. Each phase
// flushes the command buffer before the next one reads the world:
//
//  1. drop targets (and the attack intent) that died or were destroyed
//  2. apply attack intents
//  3. auto-acquire the nearest enemy in sight, or return to guard when leashed
//  4. send idle agents back to their guard point
type TargetingSystem struct {
	tuning *prefabs.Tuning
	logger *slog.Logger
}

func NewTargetingSystem(tuning *prefabs.Tuning, logger *slog.Logger) *TargetingSystem {
	return &TargetingSystem{tuning: tuningOrDefault(tuning), logger: loggerOrDiscard(logger)}
}

func (s *TargetingSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	buf := w.Buffer()

	s.invalidate(w)
	buf.Flush(w)
	s.applyIntents(w)
	buf.Flush(w)
	s.acquire(w)
	buf.Flush(w)
	s.returnToGuard(w)
}

func (s *TargetingSystem) invalidate(w *ecs.World) {
	buf := w.Buffer()
	ecs.ForEach(w, component.TargetComponent.Kind(), func(e ecs.Entity, t *component.Target) {
		if _, _, ok := livingAgent(w, t.Entity); ok {
			return
		}
		ecs.Unset(buf, e, component.TargetComponent.Kind())
		ecs.Unset(buf, e, component.AttackIntentComponent.Kind())
		if dest, ok := ecs.Get(w, e, component.DestinationComponent.Kind()); ok && dest.Source == component.DestinationCombat {
			ecs.Unset(buf, e, component.DestinationComponent.Kind())
		}
	})
}

func (s *TargetingSystem) applyIntents(w *ecs.World) {
	buf := w.Buffer()
	ecs.ForEach2(w, component.AttackIntentComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, intent *component.AttackIntent, tr *component.Transform) {
		if _, _, ok := livingAgent(w, intent.Target); !ok {
			ecs.Unset(buf, e, component.AttackIntentComponent.Kind())
			return
		}
		if !ecs.Has(w, e, component.GuardPointComponent.Kind()) {
			ecs.Set(buf, e, component.GuardPointComponent.Kind(), &component.GuardPoint{Position: tr.Position})
		}
		if cur, ok := ecs.Get(w, e, component.TargetComponent.Kind()); ok && cur.Entity == intent.Target {
			return
		}
		ecs.Set(buf, e, component.TargetComponent.Kind(), &component.Target{Entity: intent.Target})
		ecs.Unset(buf, e, component.MoveIntentComponent.Kind())
		ecs.Unset(buf, e, component.DestinationComponent.Kind())
	})
}

type candidate struct {
	e       ecs.Entity
	pos     common.Vec3
	faction component.FactionID
}

type seeker struct {
	candidate
	vision float64
}

func (s *TargetingSystem) acquire(w *ecs.World) {
	var enemies []candidate
	var seekers []seeker
	leash := s.tuning.Targeting.LeashDistance
	buf := w.Buffer()

	ecs.ForEach3(w, component.TransformComponent.Kind(), component.FactionComponent.Kind(), component.HealthComponent.Kind(), func(e ecs.Entity, tr *component.Transform, f *component.Faction, h *component.Health) {
		if !h.Alive() {
			return
		}
		c := candidate{e: e, pos: tr.Position, faction: f.ID}
		enemies = append(enemies, c)

		if !s.canAcquire(w, e) {
			return
		}
		if g, ok := ecs.Get(w, e, component.GuardPointComponent.Kind()); ok && tr.Position.Distance(g.Position) > leash {
			s.sendToGuard(w, e, g.Position)
			return
		}
		vision, ok := ecs.Get(w, e, component.VisionComponent.Kind())
		if !ok || vision.Radius <= 0 {
			return
		}
		seekers = append(seekers, seeker{candidate: c, vision: vision.Radius})
	})

	found := s.scan(seekers, enemies)
	for i, sk := range seekers {
		if found[i] == 0 {
			continue
		}
		s.logger.Debug("target acquired", "entity", sk.e, "target", found[i])
		ecs.Set(buf, sk.e, component.TargetComponent.Kind(), &component.Target{Entity: refOf(found[i])})
	}
}

// canAcquire reports whether e is a fighter with no engagement and no player
// move order in progress. Guard-return destinations do not block acquisition.
func (s *TargetingSystem) canAcquire(w *ecs.World, e ecs.Entity) bool {
	if !ecs.Has(w, e, component.MeleeProfileComponent.Kind()) && !ecs.Has(w, e, component.RangedProfileComponent.Kind()) {
		return false
	}
	if ecs.Has(w, e, component.AttackIntentComponent.Kind()) || ecs.Has(w, e, component.TargetComponent.Kind()) {
		return false
	}
	return !movingUnderOrder(w, e)
}

func movingUnderOrder(w *ecs.World, e ecs.Entity) bool {
	if ecs.Has(w, e, component.MoveIntentComponent.Kind()) {
		return true
	}
	dest, ok := ecs.Get(w, e, component.DestinationComponent.Kind())
	return ok && dest.Source == component.DestinationOrder
}

// scan finds the nearest living enemy for every seeker. Large batches fan out
// over goroutines; the scan only reads, and callers apply results afterwards.
func (s *TargetingSystem) scan(seekers []seeker, enemies []candidate) []ecs.Entity {
	found := make([]ecs.Entity, len(seekers))
	threshold := s.tuning.Targeting.ParallelScanThreshold
	if threshold <= 0 || len(seekers) < threshold {
		for i := range seekers {
			found[i] = nearestEnemy(seekers[i], enemies)
		}
		return found
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := (len(seekers) + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < len(seekers); start += chunk {
		end := min(start+chunk, len(seekers))
		g.Go(func() error {
			for i := start; i < end; i++ {
				found[i] = nearestEnemy(seekers[i], enemies)
			}
			return nil
		})
	}
	_ = g.Wait()
	return found
}

// nearestEnemy returns the closest living agent of another faction within
// the seeker's vision. enemies is in ascending id order and only a strictly
// closer candidate replaces the current best, so ties go to the lowest id.
func nearestEnemy(sk seeker, enemies []candidate) ecs.Entity {
	var best ecs.Entity
	bestSq := sk.vision * sk.vision
	found := false
	for _, c := range enemies {
		if c.faction == sk.faction || c.e == sk.e {
			continue
		}
		d := c.pos.Sub(sk.pos).LengthSq()
		if d > bestSq || (found && d == bestSq) {
			continue
		}
		best, bestSq, found = c.e, d, true
	}
	return best
}

func (s *TargetingSystem) returnToGuard(w *ecs.World) {
	threshold := s.tuning.Targeting.ReturnThreshold
	ecs.ForEach2(w, component.GuardPointComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, g *component.GuardPoint, tr *component.Transform) {
		if !isAlive(w, e) {
			return
		}
		if ecs.Has(w, e, component.TargetComponent.Kind()) || ecs.Has(w, e, component.AttackIntentComponent.Kind()) {
			return
		}
		if movingUnderOrder(w, e) {
			return
		}
		if tr.Position.Distance(g.Position) <= threshold {
			return
		}
		s.sendToGuard(w, e, g.Position)
	})
}

func (s *TargetingSystem) sendToGuard(w *ecs.World, e ecs.Entity, guard common.Vec3) {
	if dest, ok := ecs.Get(w, e, component.DestinationComponent.Kind()); ok && dest.Source == component.DestinationGuard && dest.Point == guard {
		return
	}
	ecs.Set(w.Buffer(), e, component.DestinationComponent.Kind(), &component.Destination{
		Point:  guard,
		Source: component.DestinationGuard,
	})
}
