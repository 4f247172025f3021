package sim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/prefabs"
)

// A commander script defines update(engine). engine carries tick, faction,
// allies, enemies and a persistent memory map, plus the order functions
// move(id, x, y, z), attack(id, target), hold(id), stop(id) and log(msg).
const commanderDispatchScript = `
update(__engine)
`

// Commander drives one faction from a tengo script through the same order
// API a player would use. Orders naming agents of other factions are
// refused.
type Commander struct {
	faction    component.FactionID
	scriptPath string
	compiled   *tengo.Compiled
	memory     *tengo.Map
	logger     *slog.Logger
}

func NewCommander(faction component.FactionID, scriptPath string, logger *slog.Logger) (*Commander, error) {
	src, err := prefabs.LoadScript(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("sim: commander %q: %w", scriptPath, err)
	}
	return newCommander(faction, scriptPath, src, logger)
}

func newCommander(faction component.FactionID, scriptPath string, src []byte, logger *slog.Logger) (*Commander, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	script := tengo.NewScript([]byte(string(src) + "\n" + commanderDispatchScript))
	_ = script.Add("__engine", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("sim: commander %q: compile: %w", scriptPath, err)
	}
	return &Commander{
		faction:    faction,
		scriptPath: scriptPath,
		compiled:   compiled,
		memory:     &tengo.Map{Value: map[string]tengo.Object{}},
		logger:     logger.With("faction", faction, "script", scriptPath),
	}, nil
}

func (c *Commander) Faction() component.FactionID {
	return c.faction
}

// Run executes the script once against the current snapshot. Orders are
// queued on the engine and take effect on its next Step.
func (c *Commander) Run(ctx context.Context, e *Engine) error {
	snap := e.Snapshot()
	if err := c.compiled.Set("__engine", c.buildEngine(e, snap)); err != nil {
		return err
	}
	if err := c.compiled.RunContext(ctx); err != nil {
		return fmt.Errorf("sim: commander %q: %w", c.scriptPath, err)
	}
	c.logger.Debug("commander ran", "tick", snap.Tick, "queued", e.commands.Pending())
	return nil
}

func (c *Commander) buildEngine(e *Engine, snap Snapshot) *tengo.ImmutableMap {
	var allies, enemies []tengo.Object
	for _, a := range snap.Agents {
		if a.State == StateDead {
			continue
		}
		if a.Faction == c.faction {
			allies = append(allies, agentObject(a))
		} else {
			enemies = append(enemies, agentObject(a))
		}
	}

	values := map[string]tengo.Object{
		"tick":    &tengo.Int{Value: int64(snap.Tick)},
		"time":    &tengo.Float{Value: snap.Time},
		"faction": &tengo.Int{Value: int64(c.faction)},
		"allies":  &tengo.ImmutableArray{Value: allies},
		"enemies": &tengo.ImmutableArray{Value: enemies},
		"memory":  c.memory,
	}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 4 {
			return nil, tengo.ErrWrongNumArguments
		}
		agent, ok := c.ownAgent(e, args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		var p [3]float64
		for i := range p {
			v, ok := tengo.ToFloat64(args[i+1])
			if !ok {
				return tengo.FalseValue, nil
			}
			p[i] = v
		}
		e.IssueMove(agent, common.Vec3{X: p[0], Y: p[1], Z: p[2]})
		return tengo.TrueValue, nil
	}}

	values["attack"] = &tengo.UserFunction{Name: "attack", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		agent, ok := c.ownAgent(e, args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		target, ok := entityArg(args[1])
		if !ok {
			return tengo.FalseValue, nil
		}
		e.IssueAttack(agent, target)
		return tengo.TrueValue, nil
	}}

	values["hold"] = &tengo.UserFunction{Name: "hold", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		agent, ok := c.ownAgent(e, args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		e.IssueHold(agent)
		return tengo.TrueValue, nil
	}}

	values["stop"] = &tengo.UserFunction{Name: "stop", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		agent, ok := c.ownAgent(e, args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		e.IssueStop(agent)
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.UndefinedValue, nil
		}
		msg, _ := tengo.ToString(args[0])
		c.logger.Debug(msg, "tick", snap.Tick)
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func (c *Commander) ownAgent(e *Engine, arg tengo.Object) (ecs.Entity, bool) {
	agent, ok := entityArg(arg)
	if !ok {
		return 0, false
	}
	f, ok := ecs.Get(e.World(), agent, component.FactionComponent.Kind())
	if !ok || f.ID != c.faction {
		return 0, false
	}
	return agent, true
}

func entityArg(arg tengo.Object) (ecs.Entity, bool) {
	id, ok := tengo.ToInt64(arg)
	if !ok || id <= 0 {
		return 0, false
	}
	return ecs.Entity(id), true
}

func agentObject(a AgentView) tengo.Object {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"id":         &tengo.Int{Value: int64(a.ID)},
		"role":       &tengo.String{Value: a.Prefab},
		"state":      &tengo.String{Value: a.State.String()},
		"x":          &tengo.Float{Value: a.Position.X},
		"y":          &tengo.Float{Value: a.Position.Y},
		"z":          &tengo.Float{Value: a.Position.Z},
		"health":     &tengo.Int{Value: int64(a.Health)},
		"max_health": &tengo.Int{Value: int64(a.MaxHealth)},
		"target":     &tengo.Int{Value: int64(a.Target)},
	}}
}
