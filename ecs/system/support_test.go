package system

import (
	"testing"

	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/stretchr/testify/require"
)

func newHealer(t *testing.T, w *ecs.World, pos common.Vec3) ecs.Entity {
	t.Helper()
	e := newAgent(t, w, 1, pos)
	mustAdd(t, w, e, component.SupportProfileComponent, &component.SupportProfile{Heal: 8, Range: 6})
	return e
}

func TestSupportHealsMostWounded(t *testing.T) {
	w := ecs.NewWorld()
	healer := newHealer(t, w, vec(0, 0, 0))
	scratched := newAgent(t, w, 1, vec(2, 0, 0))
	hurt := newAgent(t, w, 1, vec(0, 0, 3))
	far := newAgent(t, w, 1, vec(20, 0, 0))
	enemy := newAgent(t, w, 2, vec(1, 0, 0))
	health(t, w, scratched).Current = 95
	health(t, w, hurt).Current = 40
	health(t, w, far).Current = 10
	health(t, w, enemy).Current = 5

	step(w, 0.1, NewSupportSystem())

	require.Equal(t, 48, health(t, w, hurt).Current)
	require.Equal(t, 95, health(t, w, scratched).Current)
	require.Equal(t, 10, health(t, w, far).Current)
	require.Equal(t, 5, health(t, w, enemy).Current)

	cd, _ := ecs.Get(w, healer, component.AttackCooldownComponent.Kind())
	require.Equal(t, cd.Interval, cd.Remaining)

	healed := eventsOf[component.Healed](w.Events().Drain())
	require.Len(t, healed, 1)
	require.Equal(t, component.Healed{Healer: component.Ref(healer), Patient: component.Ref(hurt), Amount: 8}, healed[0])

	// cooling down
	step(w, 0.1, NewSupportSystem())
	require.Equal(t, 48, health(t, w, hurt).Current)
}

func TestSupportCapsAtMax(t *testing.T) {
	w := ecs.NewWorld()
	newHealer(t, w, vec(0, 0, 0))
	ally := newAgent(t, w, 1, vec(1, 0, 0))
	health(t, w, ally).Current = 97

	step(w, 0.1, NewSupportSystem())

	require.Equal(t, 100, health(t, w, ally).Current)
	healed := eventsOf[component.Healed](w.Events().Drain())
	require.Len(t, healed, 1)
	require.Equal(t, 3, healed[0].Amount)
}

func TestSupportIgnoresSelfAndDead(t *testing.T) {
	w := ecs.NewWorld()
	healer := newHealer(t, w, vec(0, 0, 0))
	health(t, w, healer).Current = 10
	dead := newAgent(t, w, 1, vec(1, 0, 0))
	health(t, w, dead).Current = 0

	step(w, 0.1, NewSupportSystem())

	require.Equal(t, 10, health(t, w, healer).Current)
	require.Equal(t, 0, health(t, w, dead).Current)
	require.Empty(t, w.Events().Drain())
}
