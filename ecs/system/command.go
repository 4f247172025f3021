package system

import (
	"log/slog"

	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
)

type CommandKind uint8

const (
	CommandMove CommandKind = iota
	CommandAttack
	CommandHold
	CommandStop
)

func (k CommandKind) String() string {
	switch k {
	case CommandMove:
		return "move"
	case CommandAttack:
		return "attack"
	case CommandHold:
		return "hold"
	case CommandStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Command is an external order. Point is used by move, Target by attack.
type Command struct {
	Kind   CommandKind
	Agent  ecs.Entity
	Target ecs.Entity
	Point  common.Vec3
}

// CommandSystem turns queued orders into intent records. Orders apply in the
// order they were enqueued, so the last order for an agent within a tick wins.
type CommandSystem struct {
	pending []Command
	logger  *slog.Logger
}

func NewCommandSystem(logger *slog.Logger) *CommandSystem {
	return &CommandSystem{logger: loggerOrDiscard(logger)}
}

func (s *CommandSystem) Enqueue(cmd Command) {
	s.pending = append(s.pending, cmd)
}

func (s *CommandSystem) Pending() int {
	return len(s.pending)
}

func (s *CommandSystem) Update(w *ecs.World) {
	if w == nil || len(s.pending) == 0 {
		return
	}

	cmds := s.pending
	s.pending = nil
	buf := w.Buffer()

	for _, cmd := range cmds {
		if !isAlive(w, cmd.Agent) {
			s.logger.Debug("command discarded", "kind", cmd.Kind, "agent", cmd.Agent, "reason", "agent not alive")
			continue
		}
		switch cmd.Kind {
		case CommandMove:
			if !cmd.Point.IsFinite() {
				s.logger.Debug("command discarded", "kind", cmd.Kind, "agent", cmd.Agent, "reason", "non-finite destination")
				continue
			}
			ecs.Unset(buf, cmd.Agent, component.AttackIntentComponent.Kind())
			ecs.Unset(buf, cmd.Agent, component.TargetComponent.Kind())
			ecs.Set(buf, cmd.Agent, component.MoveIntentComponent.Kind(), &component.MoveIntent{Destination: cmd.Point})
			ecs.Set(buf, cmd.Agent, component.DestinationComponent.Kind(), &component.Destination{
				Point:  cmd.Point,
				Source: component.DestinationOrder,
			})
		case CommandAttack:
			if cmd.Target == cmd.Agent || !isAlive(w, cmd.Target) {
				s.logger.Debug("command discarded", "kind", cmd.Kind, "agent", cmd.Agent, "target", cmd.Target, "reason", "invalid target")
				continue
			}
			// support agents have no resolver that could act on the target
			if !ecs.Has(w, cmd.Agent, component.MeleeProfileComponent.Kind()) && !ecs.Has(w, cmd.Agent, component.RangedProfileComponent.Kind()) {
				s.logger.Debug("command discarded", "kind", cmd.Kind, "agent", cmd.Agent, "target", cmd.Target, "reason", "agent cannot attack")
				continue
			}
			ecs.Unset(buf, cmd.Agent, component.MoveIntentComponent.Kind())
			ecs.Unset(buf, cmd.Agent, component.DestinationComponent.Kind())
			ecs.Set(buf, cmd.Agent, component.AttackIntentComponent.Kind(), &component.AttackIntent{Target: refOf(cmd.Target)})
		case CommandHold, CommandStop:
			tr, ok := ecs.Get(w, cmd.Agent, component.TransformComponent.Kind())
			if !ok {
				continue
			}
			ecs.Unset(buf, cmd.Agent, component.AttackIntentComponent.Kind())
			ecs.Unset(buf, cmd.Agent, component.MoveIntentComponent.Kind())
			ecs.Unset(buf, cmd.Agent, component.TargetComponent.Kind())
			ecs.Unset(buf, cmd.Agent, component.DestinationComponent.Kind())
			if cmd.Kind == CommandHold {
				ecs.Set(buf, cmd.Agent, component.GuardPointComponent.Kind(), &component.GuardPoint{Position: tr.Position})
			} else {
				ecs.Unset(buf, cmd.Agent, component.GuardPointComponent.Kind())
			}
		default:
			s.logger.Debug("command discarded", "kind", cmd.Kind, "agent", cmd.Agent, "reason", "unknown kind")
		}
	}
}
