package prefabs

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// unmarshalStrict rejects keys that do not map to a field, so a typo in a
// tuning file fails loudly instead of silently keeping the default.
func unmarshalStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// SquadSpec places Count agents of one prefab in a grid of Columns starting
// at Origin, Spacing units apart on the ground plane.
type SquadSpec struct {
	Prefab  string    `yaml:"prefab"`
	Faction int       `yaml:"faction"`
	Origin  PointSpec `yaml:"origin"`
	Count   int       `yaml:"count"`
	Columns int       `yaml:"columns"`
	Spacing float64   `yaml:"spacing"`
}

type ScenarioSpec struct {
	Name   string      `yaml:"name"`
	Ticks  int         `yaml:"ticks"`
	DT     float64     `yaml:"dt"`
	Script string      `yaml:"script"`
	Squads []SquadSpec `yaml:"squads"`
}

func LoadScenarioSpec(filename string) (ScenarioSpec, error) {
	spec, err := LoadSpec[ScenarioSpec](filename)
	if err != nil {
		return spec, err
	}
	for i, sq := range spec.Squads {
		if sq.Prefab == "" {
			return spec, fmt.Errorf("prefabs: %s: squad %d: %w: missing prefab", filename, i, ErrInvalidUnit)
		}
		if sq.Count < 0 {
			return spec, fmt.Errorf("prefabs: %s: squad %d: %w: negative count", filename, i, ErrInvalidUnit)
		}
	}
	return spec, nil
}
