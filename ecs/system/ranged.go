package system

import (
	"log/slog"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/prefabs"
)

type RangeBand uint8

const (
	BandRetreat RangeBand = iota
	BandAim
	BandChase
)

func (b RangeBand) String() string {
	switch b {
	case BandRetreat:
		return "retreat"
	case BandAim:
		return "aim"
	case BandChase:
		return "chase"
	default:
		return "unknown"
	}
}

// ClassifyRange places d in exactly one band: retreat below minRange, aim on
// [minRange, maxRange], chase above maxRange.
func ClassifyRange(d, minRange, maxRange float64) RangeBand {
	switch {
	case d < minRange:
		return BandRetreat
	case d <= maxRange:
		return BandAim
	default:
		return BandChase
	}
}

// RequiredAim interpolates the aim time from AimMin at minRange to AimMax at
// maxRange.
func RequiredAim(d, minRange, maxRange float64, r prefabs.RangedTuning) float64 {
	span := maxRange - minRange
	if span <= 0 {
		return r.AimMin
	}
	return common.Lerp(r.AimMin, r.AimMax, common.Clamp01((d-minRange)/span))
}

// RetreatPoint lies on the ray from target through self, RetreatBuffer past
// minRange. Coincident agents retreat along +X.
func RetreatPoint(self, target common.Vec3, minRange float64, r prefabs.RangedTuning) common.Vec3 {
	away := self.Ground().Sub(target.Ground())
	if away.LengthSq() == 0 {
		away = cp.Vector{X: 1}
	}
	point := target.Ground().Add(away.Normalize().Mult(minRange + r.RetreatBuffer))
	return self.WithGround(point)
}

// RangedSystem kites, aims and fires. Projectiles are spawned through the
// command buffer and resolved later by ProjectileSystem.
type RangedSystem struct {
	tuning *prefabs.Tuning
	logger *slog.Logger
}

func NewRangedSystem(tuning *prefabs.Tuning, logger *slog.Logger) *RangedSystem {
	return &RangedSystem{tuning: tuningOrDefault(tuning), logger: loggerOrDiscard(logger)}
}

func (s *RangedSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	buf := w.Buffer()
	dt := w.Clock().Delta

	ecs.ForEach3(w, component.RangedProfileComponent.Kind(), component.TransformComponent.Kind(), component.AttackCooldownComponent.Kind(), func(e ecs.Entity, rp *component.RangedProfile, tr *component.Transform, cd *component.AttackCooldown) {
		if !isAlive(w, e) {
			return
		}
		t, hasTarget := ecs.Get(w, e, component.TargetComponent.Kind())
		var victim ecs.Entity
		var ttr *component.Transform
		ok := false
		if hasTarget {
			victim, ttr, ok = livingAgent(w, t.Entity)
		}
		if !ok {
			rp.ResetAim()
			rp.AimTarget = component.NoRef
			rp.Retreating = false
			rp.Firing = false
			return
		}
		if rp.AimTarget != t.Entity {
			rp.ResetAim()
			rp.AimTarget = t.Entity
		}

		d := tr.Position.PlanarDistance(ttr.Position)
		switch ClassifyRange(d, rp.MinRange, rp.MaxRange) {
		case BandRetreat:
			rp.Retreating, rp.Firing = true, false
			rp.ResetAim()
			ecs.Set(buf, e, component.DestinationComponent.Kind(), &component.Destination{
				Point:  RetreatPoint(tr.Position, ttr.Position, rp.MinRange, s.tuning.Ranged),
				Source: component.DestinationCombat,
			})
		case BandChase:
			rp.Retreating, rp.Firing = false, false
			rp.ResetAim()
			ecs.Set(buf, e, component.DestinationComponent.Kind(), &component.Destination{
				Point:  ttr.Position,
				Source: component.DestinationCombat,
			})
		case BandAim:
			rp.Retreating, rp.Firing = false, true
			if ecs.Has(w, e, component.DestinationComponent.Kind()) {
				ecs.Unset(buf, e, component.DestinationComponent.Kind())
			}
			delta := ttr.Position.Ground().Sub(tr.Position.Ground())
			if delta.LengthSq() > 0 {
				tr.Facing = math.Atan2(delta.Y, delta.X)
			}
			rp.AimRequired = RequiredAim(d, rp.MinRange, rp.MaxRange, s.tuning.Ranged)
			rp.Aim += dt
			if rp.Aim < rp.AimRequired || !cd.Ready() {
				return
			}
			s.fire(w, e, victim, rp, tr.Position, ttr.Position)
			cd.Remaining = s.tuning.Ranged.Cooldown
			rp.Aim = 0
		}
	})
}

func (s *RangedSystem) fire(w *ecs.World, shooter, victim ecs.Entity, rp *component.RangedProfile, from, to common.Vec3) {
	shot := SolveShot(from, to, s.tuning.Ballistics)
	if shot.Degenerate {
		s.logger.Debug("arc fallback speed", "shooter", shooter, "target", victim, "height", to.Y-from.Y)
	}
	mod := HeightModifier(from.Y, to.Y, s.tuning.Combat)

	var faction component.FactionID
	if f, ok := ecs.Get(w, shooter, component.FactionComponent.Kind()); ok {
		faction = f.ID
	}
	p := &component.Projectile{
		Launch:         from,
		Impact:         to,
		Velocity:       shot.Velocity,
		LaunchTime:     w.Clock().Now,
		Duration:       shot.Duration,
		Gravity:        shot.Gravity,
		Damage:         FinalDamage(rp.Damage, mod),
		Shooter:        refOf(shooter),
		ShooterFaction: faction,
		Target:         refOf(victim),
		Kind:           shot.Kind,
	}

	w.Buffer().Push(func(w *ecs.World) {
		e := ecs.CreateEntity(w)
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: p.Launch})
		_ = ecs.Add(w, e, component.ProjectileComponent.Kind(), p)
		emit(w, ecs.EventProjectileFired, component.ProjectileFired{
			Projectile: refOf(e),
			Shooter:    p.Shooter,
			Start:      p.Launch,
			End:        p.Impact,
			Duration:   p.Duration,
			Kind:       p.Kind,
		})
	})
}
