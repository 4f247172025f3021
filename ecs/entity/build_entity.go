package entity

import (
	"fmt"

	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	Faction  component.FactionID
	Position common.Vec3
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"health":          addHealth,
	"locomotion":      addLocomotion,
	"vision":          addVision,
	"body":            addBody,
	"attack_cooldown": addAttackCooldown,
	"melee":           addMelee,
	"ranged":          addRanged,
	"support":         addSupport,
}

var componentBuildOrder = []string{
	"health",
	"locomotion",
	"vision",
	"body",
	"attack_cooldown",
	"melee",
	"ranged",
	"support",
}

// Prefab is a loaded unit prefab that can be stamped out repeatedly.
type Prefab struct {
	Path string
	spec entityPrefabSpec
}

func LoadPrefab(prefabPath string) (*Prefab, error) {
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return nil, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			return nil, fmt.Errorf("build entity: %q: no builder for component %q: %w", prefabPath, name, prefabs.ErrInvalidUnit)
		}
	}
	return &Prefab{Path: prefabPath, spec: spec}, nil
}

func (p *Prefab) Name() string {
	if p.spec.Name != "" {
		return p.spec.Name
	}
	return p.Path
}

// BuildEntity loads a prefab and spawns one agent from it.
func BuildEntity(w *ecs.World, prefabPath string, faction component.FactionID, pos common.Vec3) (ecs.Entity, error) {
	p, err := LoadPrefab(prefabPath)
	if err != nil {
		return 0, err
	}
	return p.Build(w, faction, pos)
}

// Build spawns an agent of faction at pos. On failure the partially built
// entity is destroyed.
func (p *Prefab) Build(w *ecs.World, faction component.FactionID, pos common.Vec3) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if !pos.IsFinite() {
		return 0, fmt.Errorf("build entity: %q: position %v: %w", p.Path, pos, prefabs.ErrInvalidUnit)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{Faction: faction, Position: pos}

	if err := addAgentBase(w, e, p.Name(), ctx); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: %w", p.Path, err)
	}

	// LoadPrefab rejected unknown names, so the build order covers every entry.
	for _, name := range componentBuildOrder {
		raw, ok := p.spec.Components[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", p.Path, name, err)
		}
	}

	if ecs.Has(w, e, component.MeleeProfileComponent.Kind()) || ecs.Has(w, e, component.RangedProfileComponent.Kind()) || ecs.Has(w, e, component.SupportProfileComponent.Kind()) {
		if !ecs.Has(w, e, component.AttackCooldownComponent.Kind()) {
			_ = ecs.Add(w, e, component.AttackCooldownComponent.Kind(), &component.AttackCooldown{Interval: 1})
		}
	}

	return e, nil
}

func addAgentBase(w *ecs.World, e ecs.Entity, name string, ctx *buildContext) error {
	if err := ecs.Add(w, e, component.UnitComponent.Kind(), &component.Unit{Prefab: name}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.FactionComponent.Kind(), &component.Faction{ID: ctx.Faction}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: ctx.Position})
}

type healthSpec = prefabs.HealthComponentSpec

func addHealth(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[healthSpec](raw)
	if err != nil {
		return fmt.Errorf("decode health spec: %w", err)
	}
	if spec.Max <= 0 {
		return fmt.Errorf("health max %d: %w", spec.Max, prefabs.ErrInvalidUnit)
	}
	if spec.Current <= 0 || spec.Current > spec.Max {
		spec.Current = spec.Max
	}
	return ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Max: spec.Max, Current: spec.Current})
}

type locomotionSpec = prefabs.LocomotionComponentSpec

func addLocomotion(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[locomotionSpec](raw)
	if err != nil {
		return fmt.Errorf("decode locomotion spec: %w", err)
	}
	if spec.Speed < 0 {
		return fmt.Errorf("locomotion speed %v: %w", spec.Speed, prefabs.ErrInvalidUnit)
	}
	return ecs.Add(w, e, component.LocomotionComponent.Kind(), &component.Locomotion{Speed: spec.Speed})
}

type visionSpec = prefabs.VisionComponentSpec

func addVision(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[visionSpec](raw)
	if err != nil {
		return fmt.Errorf("decode vision spec: %w", err)
	}
	return ecs.Add(w, e, component.VisionComponent.Kind(), &component.Vision{Radius: spec.Radius})
}

type bodySpec = prefabs.BodyComponentSpec

func addBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[bodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode body spec: %w", err)
	}
	return ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{Radius: spec.Radius})
}

type attackCooldownSpec = prefabs.AttackCooldownComponentSpec

func addAttackCooldown(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[attackCooldownSpec](raw)
	if err != nil {
		return fmt.Errorf("decode attack cooldown spec: %w", err)
	}
	if spec.Interval < 0 {
		return fmt.Errorf("attack cooldown interval %v: %w", spec.Interval, prefabs.ErrInvalidUnit)
	}
	return ecs.Add(w, e, component.AttackCooldownComponent.Kind(), &component.AttackCooldown{Interval: spec.Interval})
}

type meleeSpec = prefabs.MeleeComponentSpec

func addMelee(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[meleeSpec](raw)
	if err != nil {
		return fmt.Errorf("decode melee spec: %w", err)
	}
	return ecs.Add(w, e, component.MeleeProfileComponent.Kind(), &component.MeleeProfile{Damage: spec.Damage, Range: spec.Range})
}

type rangedSpec = prefabs.RangedComponentSpec

func addRanged(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[rangedSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ranged spec: %w", err)
	}
	if spec.MinRange < 0 || spec.MinRange >= spec.MaxRange {
		return fmt.Errorf("ranged min_range %v must be below max_range %v: %w", spec.MinRange, spec.MaxRange, prefabs.ErrInvalidUnit)
	}
	return ecs.Add(w, e, component.RangedProfileComponent.Kind(), &component.RangedProfile{
		Damage:   spec.Damage,
		MinRange: spec.MinRange,
		MaxRange: spec.MaxRange,
	})
}

type supportSpec = prefabs.SupportComponentSpec

func addSupport(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[supportSpec](raw)
	if err != nil {
		return fmt.Errorf("decode support spec: %w", err)
	}
	return ecs.Add(w, e, component.SupportProfileComponent.Kind(), &component.SupportProfile{Heal: spec.Heal, Range: spec.Range})
}
