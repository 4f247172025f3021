package system

import (
	"math"

	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/prefabs"
)

// HeightModifier scales damage by the attacker's height advantage, clamped to
// 1 ± HeightClamp.
func HeightModifier(attackerY, targetY float64, c prefabs.CombatTuning) float64 {
	return 1 + common.Clamp((attackerY-targetY)*c.HeightFactor, -c.HeightClamp, c.HeightClamp)
}

// FinalDamage never returns less than 1.
func FinalDamage(base int, modifier float64) int {
	d := math.Round(float64(base) * modifier)
	if math.IsNaN(d) || d < 1 {
		return 1
	}
	return int(d)
}

// dealDamage subtracts amount from the victim's health, floored at zero, and
// records the hit. It returns the victim's remaining health.
func dealDamage(w *ecs.World, attacker, victim ecs.Entity, amount int, modifier float64, melee bool) int {
	h, ok := ecs.Get(w, victim, component.HealthComponent.Kind())
	if !ok {
		return 0
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	h.LastHitBy = refOf(attacker)
	emit(w, ecs.EventDamageDealt, component.DamageDealt{
		Attacker:  refOf(attacker),
		Victim:    refOf(victim),
		Amount:    amount,
		Remaining: h.Current,
		Modifier:  modifier,
		Melee:     melee,
	})
	return h.Current
}
