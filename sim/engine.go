// Package sim is the in-process boundary of the combat simulation: it spawns
// agents, accepts orders, steps the world and publishes snapshots and events.
// An Engine is not safe for concurrent use.
package sim

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"

	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/ecs/entity"
	"github.com/milk9111/skirmish/ecs/system"
	"github.com/milk9111/skirmish/prefabs"
)

var ErrUnknownPrefab = errors.New("sim: unknown prefab")

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithReaper toggles removal of dead agents at the end of each tick. With it
// off, dead agents stay in the world at zero health.
func WithReaper(enabled bool) Option {
	return func(e *Engine) {
		e.reaper = enabled
	}
}

func WithTuning(t *prefabs.Tuning) Option {
	return func(e *Engine) {
		if t != nil {
			e.tuning = t
		}
	}
}

type Engine struct {
	world     *ecs.World
	tuning    *prefabs.Tuning
	logger    *slog.Logger
	reaper    bool
	commands  *system.CommandSystem
	scheduler *ecs.Scheduler
	prefabs   map[string]*entity.Prefab
}

func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		world:   ecs.NewWorld(),
		logger:  slog.New(slog.DiscardHandler),
		reaper:  true,
		prefabs: map[string]*entity.Prefab{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.tuning == nil {
		e.tuning = prefabs.DefaultTuning()
	} else {
		copied := *e.tuning
		e.tuning = &copied
	}
	if err := e.tuning.Validate(); err != nil {
		return nil, fmt.Errorf("sim: new engine: %w", err)
	}

	e.commands = system.NewCommandSystem(e.logger)
	e.scheduler = ecs.NewScheduler(
		e.commands,
		system.NewCooldownSystem(),
		system.NewTargetingSystem(e.tuning, e.logger),
		system.NewMeleeSystem(e.tuning),
		system.NewRangedSystem(e.tuning, e.logger),
		system.NewSupportSystem(),
		system.NewProjectileSystem(e.tuning, e.logger),
		system.NewLocomotionSystem(e.tuning),
		system.NewSeparationSystem(e.tuning),
	)
	if e.reaper {
		e.scheduler.Add(system.NewReaperSystem(e.logger))
	}
	return e, nil
}

// World exposes the underlying store for read access and tests.
func (e *Engine) World() *ecs.World {
	return e.world
}

// Tuning returns a copy of the active tuning.
func (e *Engine) Tuning() prefabs.Tuning {
	return *e.tuning
}

// ApplyTuning swaps in new constants. Systems share the tuning pointer, so
// the change takes effect from the next Step.
func (e *Engine) ApplyTuning(t *prefabs.Tuning) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("sim: apply tuning: %w", err)
	}
	*e.tuning = *t
	e.logger.Debug("tuning applied")
	return nil
}

// Spawn builds one agent from the named unit prefab.
func (e *Engine) Spawn(prefab string, faction component.FactionID, pos common.Vec3) (ecs.Entity, error) {
	p, err := e.prefab(prefab)
	if err != nil {
		return 0, err
	}
	ent, err := p.Build(e.world, faction, pos)
	if err != nil {
		return 0, fmt.Errorf("sim: spawn %q: %w", prefab, err)
	}
	e.logger.Debug("agent spawned", "entity", ent, "prefab", p.Name(), "faction", faction)
	return ent, nil
}

func (e *Engine) prefab(name string) (*entity.Prefab, error) {
	if p, ok := e.prefabs[name]; ok {
		return p, nil
	}
	p, err := entity.LoadPrefab(prefabs.UnitFile(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrefab, name)
	}
	if err != nil {
		return nil, fmt.Errorf("sim: spawn %q: %w", name, err)
	}
	e.prefabs[name] = p
	return p, nil
}

func (e *Engine) IssueMove(agent ecs.Entity, destination common.Vec3) {
	e.commands.Enqueue(system.Command{Kind: system.CommandMove, Agent: agent, Point: destination})
}

// IssueAttack orders agent to engage target. The order is dropped on the next
// Step if the target is not alive or the agent has neither a melee nor a
// ranged profile.
func (e *Engine) IssueAttack(agent, target ecs.Entity) {
	e.commands.Enqueue(system.Command{Kind: system.CommandAttack, Agent: agent, Target: target})
}

// IssueHold makes the agent's current position its guard point and drops
// every order and engagement.
func (e *Engine) IssueHold(agent ecs.Entity) {
	e.commands.Enqueue(system.Command{Kind: system.CommandHold, Agent: agent})
}

// IssueStop is IssueHold without a guard point.
func (e *Engine) IssueStop(agent ecs.Entity) {
	e.commands.Enqueue(system.Command{Kind: system.CommandStop, Agent: agent})
}

// Step advances the simulation by dt seconds. Invalid deltas run a zero-length
// tick.
func (e *Engine) Step(dt float64) {
	if !(dt >= 0) || math.IsInf(dt, 0) {
		dt = 0
	}
	e.world.Advance(dt)
	e.scheduler.Update(e.world)
}

func (e *Engine) Clock() ecs.Clock {
	return e.world.Clock()
}

// DrainEvents returns the events published since the last drain.
func (e *Engine) DrainEvents() []ecs.Event {
	return e.world.Events().Drain()
}
