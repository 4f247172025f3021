package system

import (
	"math"
	"testing"

	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/stretchr/testify/require"
)

func TestCommandLastWriteWins(t *testing.T) {
	t.Run("move then attack", func(t *testing.T) {
		w := ecs.NewWorld()
		a := newMelee(t, w, 1, vec(0, 0, 0), 10)
		b := newAgent(t, w, 2, vec(5, 0, 0))

		cmds := NewCommandSystem(nil)
		cmds.Enqueue(Command{Kind: CommandMove, Agent: a, Point: vec(3, 0, 3)})
		cmds.Enqueue(Command{Kind: CommandAttack, Agent: a, Target: b})
		step(w, 0.1, cmds)

		require.Zero(t, cmds.Pending())
		require.False(t, ecs.Has(w, a, component.MoveIntentComponent.Kind()))
		require.False(t, ecs.Has(w, a, component.DestinationComponent.Kind()))
		intent, ok := ecs.Get(w, a, component.AttackIntentComponent.Kind())
		require.True(t, ok)
		require.Equal(t, component.Ref(b), intent.Target)
	})

	t.Run("attack then move", func(t *testing.T) {
		w := ecs.NewWorld()
		a := newMelee(t, w, 1, vec(0, 0, 0), 10)
		b := newAgent(t, w, 2, vec(5, 0, 0))

		cmds := NewCommandSystem(nil)
		cmds.Enqueue(Command{Kind: CommandAttack, Agent: a, Target: b})
		cmds.Enqueue(Command{Kind: CommandMove, Agent: a, Point: vec(3, 0, 3)})
		step(w, 0.1, cmds)

		require.False(t, ecs.Has(w, a, component.AttackIntentComponent.Kind()))
		mi, ok := ecs.Get(w, a, component.MoveIntentComponent.Kind())
		require.True(t, ok)
		require.Equal(t, vec(3, 0, 3), mi.Destination)
		d, ok := ecs.Get(w, a, component.DestinationComponent.Kind())
		require.True(t, ok)
		require.Equal(t, component.DestinationOrder, d.Source)
	})
}

func TestCommandMoveDropsEngagement(t *testing.T) {
	w := ecs.NewWorld()
	a := newMelee(t, w, 1, vec(0, 0, 0), 10)
	b := newAgent(t, w, 2, vec(5, 0, 0))
	mustAdd(t, w, a, component.TargetComponent, &component.Target{Entity: component.Ref(b)})

	cmds := NewCommandSystem(nil)
	cmds.Enqueue(Command{Kind: CommandMove, Agent: a, Point: vec(-4, 0, 0)})
	step(w, 0.1, cmds)

	_, engaged := targetOf(w, a)
	require.False(t, engaged)
}

func TestCommandHoldAndStop(t *testing.T) {
	w := ecs.NewWorld()
	a := newMelee(t, w, 1, vec(2, 1, 3), 10)
	mustAdd(t, w, a, component.MoveIntentComponent, &component.MoveIntent{Destination: vec(9, 0, 9)})
	mustAdd(t, w, a, component.DestinationComponent, &component.Destination{Point: vec(9, 0, 9)})
	mustAdd(t, w, a, component.GuardPointComponent, &component.GuardPoint{Position: vec(-5, 0, 0)})

	cmds := NewCommandSystem(nil)
	cmds.Enqueue(Command{Kind: CommandHold, Agent: a})
	step(w, 0.1, cmds)

	g, ok := ecs.Get(w, a, component.GuardPointComponent.Kind())
	require.True(t, ok)
	require.Equal(t, vec(2, 1, 3), g.Position)
	require.False(t, ecs.Has(w, a, component.MoveIntentComponent.Kind()))
	require.False(t, ecs.Has(w, a, component.DestinationComponent.Kind()))

	cmds.Enqueue(Command{Kind: CommandStop, Agent: a})
	step(w, 0.1, cmds)
	require.False(t, ecs.Has(w, a, component.GuardPointComponent.Kind()))
}

func TestCommandDiscards(t *testing.T) {
	cases := []struct {
		name  string
		build func(t *testing.T, w *ecs.World, a, b ecs.Entity) Command
	}{
		{
			name: "attack self",
			build: func(t *testing.T, w *ecs.World, a, b ecs.Entity) Command {
				return Command{Kind: CommandAttack, Agent: a, Target: a}
			},
		},
		{
			name: "attack dead target",
			build: func(t *testing.T, w *ecs.World, a, b ecs.Entity) Command {
				health(t, w, b).Current = 0
				return Command{Kind: CommandAttack, Agent: a, Target: b}
			},
		},
		{
			name: "attack destroyed target",
			build: func(t *testing.T, w *ecs.World, a, b ecs.Entity) Command {
				ecs.DestroyEntity(w, b)
				return Command{Kind: CommandAttack, Agent: a, Target: b}
			},
		},
		{
			name: "attack without a weapon",
			build: func(t *testing.T, w *ecs.World, a, b ecs.Entity) Command {
				ecs.Remove(w, a, component.MeleeProfileComponent.Kind())
				mustAdd(t, w, a, component.SupportProfileComponent, &component.SupportProfile{Heal: 8, Range: 6})
				return Command{Kind: CommandAttack, Agent: a, Target: b}
			},
		},
		{
			name: "dead agent",
			build: func(t *testing.T, w *ecs.World, a, b ecs.Entity) Command {
				health(t, w, a).Current = 0
				return Command{Kind: CommandMove, Agent: a, Point: vec(1, 0, 1)}
			},
		},
		{
			name: "non-finite point",
			build: func(t *testing.T, w *ecs.World, a, b ecs.Entity) Command {
				return Command{Kind: CommandMove, Agent: a, Point: vec(math.NaN(), 0, 0)}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			a := newMelee(t, w, 1, vec(0, 0, 0), 10)
			b := newAgent(t, w, 2, vec(5, 0, 0))

			cmds := NewCommandSystem(nil)
			cmds.Enqueue(tc.build(t, w, a, b))
			step(w, 0.1, cmds)

			for _, has := range []bool{
				ecs.Has(w, a, component.AttackIntentComponent.Kind()),
				ecs.Has(w, a, component.MoveIntentComponent.Kind()),
				ecs.Has(w, a, component.DestinationComponent.Kind()),
			} {
				if has {
					t.Fatalf("discarded command left an order on the agent")
				}
			}
		})
	}
}
