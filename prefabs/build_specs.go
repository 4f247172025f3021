package prefabs

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var ErrInvalidUnit = errors.New("prefabs: invalid unit")

// EntityBuildSpec is a unit prefab: the filled attribute record for one unit
// type, read once at spawn time.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	spec, err := LoadSpec[EntityBuildSpec](filename)
	if err != nil {
		return spec, err
	}
	if len(spec.Components) == 0 {
		return spec, fmt.Errorf("prefabs: %s: %w: no components", filename, ErrInvalidUnit)
	}
	return spec, nil
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := unmarshalStrict(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type HealthComponentSpec struct {
	Max     int `yaml:"max"`
	Current int `yaml:"current"`
}

type LocomotionComponentSpec struct {
	Speed float64 `yaml:"speed"`
}

type VisionComponentSpec struct {
	Radius float64 `yaml:"radius"`
}

type BodyComponentSpec struct {
	Radius float64 `yaml:"radius"`
}

type AttackCooldownComponentSpec struct {
	Interval float64 `yaml:"interval"`
}

type MeleeComponentSpec struct {
	Damage int     `yaml:"damage"`
	Range  float64 `yaml:"range"`
}

type RangedComponentSpec struct {
	Damage   int     `yaml:"damage"`
	MinRange float64 `yaml:"min_range"`
	MaxRange float64 `yaml:"max_range"`
}

type SupportComponentSpec struct {
	Heal  int     `yaml:"heal"`
	Range float64 `yaml:"range"`
}
