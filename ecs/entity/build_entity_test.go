package entity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/prefabs"
	"github.com/stretchr/testify/require"
)

func writePrefab(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "unit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestBuildBundledUnits(t *testing.T) {
	w := ecs.NewWorld()
	pos := common.Vec3{X: 4, Y: 1, Z: -2}

	melee, err := BuildEntity(w, "melee.yaml", 1, pos)
	require.NoError(t, err)
	m, ok := ecs.Get(w, melee, component.MeleeProfileComponent.Kind())
	require.True(t, ok)
	require.Equal(t, component.MeleeProfile{Damage: 10, Range: 1.5}, *m)

	ranged, err := BuildEntity(w, "ranged.yaml", 2, pos)
	require.NoError(t, err)
	r, ok := ecs.Get(w, ranged, component.RangedProfileComponent.Kind())
	require.True(t, ok)
	require.Equal(t, 10.0, r.MinRange)
	require.Equal(t, 25.0, r.MaxRange)
	f, _ := ecs.Get(w, ranged, component.FactionComponent.Kind())
	require.Equal(t, component.FactionID(2), f.ID)

	support, err := BuildEntity(w, "support.yaml", 1, pos)
	require.NoError(t, err)
	cd, ok := ecs.Get(w, support, component.AttackCooldownComponent.Kind())
	require.True(t, ok)
	require.Equal(t, 2.0, cd.Interval)
	require.Zero(t, cd.Remaining)

	tr, _ := ecs.Get(w, support, component.TransformComponent.Kind())
	require.Equal(t, pos, tr.Position)
}

func TestPrefabReuse(t *testing.T) {
	p, err := LoadPrefab("melee.yaml")
	require.NoError(t, err)
	require.Equal(t, "melee", p.Name())

	w := ecs.NewWorld()
	a, err := p.Build(w, 1, common.Vec3{})
	require.NoError(t, err)
	b, err := p.Build(w, 1, common.Vec3{X: 2})
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	// builds must not share component values
	ha, _ := ecs.Get(w, a, component.HealthComponent.Kind())
	ha.Current = 1
	hb, _ := ecs.Get(w, b, component.HealthComponent.Kind())
	require.Equal(t, 120, hb.Current)
}

func TestBuildDefaultsCooldown(t *testing.T) {
	path := writePrefab(t, `
name: brawler
components:
  health:
    max: 10
    current: 4
  melee:
    damage: 2
`)
	w := ecs.NewWorld()
	e, err := BuildEntity(w, path, 1, common.Vec3{})
	require.NoError(t, err)

	cd, ok := ecs.Get(w, e, component.AttackCooldownComponent.Kind())
	require.True(t, ok)
	require.Equal(t, 1.0, cd.Interval)
	h, _ := ecs.Get(w, e, component.HealthComponent.Kind())
	require.Equal(t, component.Health{Current: 4, Max: 10}, *h)
}

func TestBuildRejectsInvalidUnits(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "unknown component", body: "components:\n  health: {max: 5}\n  jetpack: {fuel: 3}\n"},
		{name: "no health", body: "components:\n  health: {max: 0}\n"},
		{name: "inverted range", body: "components:\n  health: {max: 5}\n  ranged: {damage: 1, min_range: 30, max_range: 20}\n"},
		{name: "negative speed", body: "components:\n  health: {max: 5}\n  locomotion: {speed: -1}\n"},
		{name: "no components", body: "name: ghost\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := BuildEntity(w, writePrefab(t, tc.body), 1, common.Vec3{})
			require.ErrorIs(t, err, prefabs.ErrInvalidUnit)
			require.Empty(t, ecs.Entities(w))
		})
	}
}
