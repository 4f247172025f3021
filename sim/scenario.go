package sim

import (
	"fmt"
	"log/slog"
	"maps"
	"math"
	"slices"

	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/prefabs"
)

const defaultSquadSpacing = 1.5

// Scenario is a loaded scenario file and the agents it spawned.
type Scenario struct {
	Spec   prefabs.ScenarioSpec
	Agents map[component.FactionID][]ecs.Entity
}

// LoadScenario spawns every squad of the named scenario file.
func (e *Engine) LoadScenario(name string) (*Scenario, error) {
	spec, err := prefabs.LoadScenarioSpec(name)
	if err != nil {
		return nil, fmt.Errorf("sim: load scenario: %w", err)
	}
	sc := &Scenario{Spec: spec, Agents: map[component.FactionID][]ecs.Entity{}}
	for i, sq := range spec.Squads {
		faction := component.FactionID(sq.Faction)
		for _, pos := range SquadPositions(sq) {
			ent, err := e.Spawn(sq.Prefab, faction, pos)
			if err != nil {
				return nil, fmt.Errorf("sim: scenario %q squad %d: %w", spec.Name, i, err)
			}
			sc.Agents[faction] = append(sc.Agents[faction], ent)
		}
	}
	e.logger.Info("scenario loaded", "name", spec.Name, "squads", len(spec.Squads))
	return sc, nil
}

// Commanders builds one commander per faction, in ascending faction order,
// all running script. An empty script falls back to the scenario's own, and
// with neither there are no commanders.
func (sc *Scenario) Commanders(script string, logger *slog.Logger) ([]*Commander, error) {
	if script == "" {
		script = sc.Spec.Script
	}
	if script == "" {
		return nil, nil
	}
	factions := slices.Sorted(maps.Keys(sc.Agents))
	out := make([]*Commander, 0, len(factions))
	for _, f := range factions {
		c, err := NewCommander(f, script, logger)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// SquadPositions lays a squad out row by row on the ground plane, starting at
// the origin and growing along +X then +Z.
func SquadPositions(sq prefabs.SquadSpec) []common.Vec3 {
	if sq.Count <= 0 {
		return nil
	}
	cols := sq.Columns
	if cols <= 0 {
		cols = int(math.Ceil(math.Sqrt(float64(sq.Count))))
	}
	spacing := sq.Spacing
	if spacing <= 0 {
		spacing = defaultSquadSpacing
	}
	origin := common.Vec3{X: sq.Origin.X, Y: sq.Origin.Y, Z: sq.Origin.Z}
	out := make([]common.Vec3, 0, sq.Count)
	for i := 0; i < sq.Count; i++ {
		out = append(out, origin.Add(common.Vec3{
			X: float64(i%cols) * spacing,
			Z: float64(i/cols) * spacing,
		}))
	}
	return out
}
