package prefabs

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidTuning = errors.New("prefabs: invalid tuning")

// Tuning holds every constant the simulation passes read. It is loaded once
// and shared by pointer, so a reload swaps values between ticks.
type Tuning struct {
	Targeting  TargetingTuning  `yaml:"targeting"`
	Combat     CombatTuning     `yaml:"combat"`
	Ranged     RangedTuning     `yaml:"ranged"`
	Ballistics BallisticsTuning `yaml:"ballistics"`
	Locomotion LocomotionTuning `yaml:"locomotion"`
	Separation SeparationTuning `yaml:"separation"`
}

type TargetingTuning struct {
	LeashDistance   float64 `yaml:"leash_distance"`
	ReturnThreshold float64 `yaml:"return_threshold"`
	// ParallelScanThreshold is the seeker count at which nearest-enemy search
	// fans out across goroutines. Zero disables the parallel scan.
	ParallelScanThreshold int `yaml:"parallel_scan_threshold"`
}

type CombatTuning struct {
	MeleeRange   float64 `yaml:"melee_range"`
	HeightFactor float64 `yaml:"height_factor"`
	HeightClamp  float64 `yaml:"height_clamp"`
}

type RangedTuning struct {
	RetreatBuffer float64 `yaml:"retreat_buffer"`
	AimMin        float64 `yaml:"aim_min"`
	AimMax        float64 `yaml:"aim_max"`
	Cooldown      float64 `yaml:"cooldown"`
}

type BallisticsTuning struct {
	ArcThreshold         float64 `yaml:"arc_threshold"`
	FlatSpeed            float64 `yaml:"flat_speed"`
	MinPitchDeg          float64 `yaml:"min_pitch_deg"`
	ArcAngleDeg          float64 `yaml:"arc_angle_deg"`
	Gravity              float64 `yaml:"gravity"`
	DegenerateMultiplier float64 `yaml:"degenerate_multiplier"`
	HeightEpsilon        float64 `yaml:"height_epsilon"`
	ImpactRadius         float64 `yaml:"impact_radius"`
}

type LocomotionTuning struct {
	ArriveRadius float64 `yaml:"arrive_radius"`
}

type SeparationTuning struct {
	Interval         float64 `yaml:"interval"`
	CellSize         float64 `yaml:"cell_size"`
	MinSeparation    float64 `yaml:"min_separation"`
	PushForce        float64 `yaml:"push_force"`
	MovingMultiplier float64 `yaml:"moving_multiplier"`
	DefaultRadius    float64 `yaml:"default_radius"`
}

func DefaultTuning() *Tuning {
	return &Tuning{
		Targeting: TargetingTuning{
			LeashDistance:         20,
			ReturnThreshold:       2,
			ParallelScanThreshold: 256,
		},
		Combat: CombatTuning{
			MeleeRange:   1.5,
			HeightFactor: 0.04,
			HeightClamp:  0.20,
		},
		Ranged: RangedTuning{
			RetreatBuffer: 3,
			AimMin:        0.3,
			AimMax:        1.2,
			Cooldown:      1.5,
		},
		Ballistics: BallisticsTuning{
			ArcThreshold:         15,
			FlatSpeed:            35,
			MinPitchDeg:          5,
			ArcAngleDeg:          45,
			Gravity:              9.81,
			DegenerateMultiplier: 1.5,
			HeightEpsilon:        0.01,
			ImpactRadius:         1.0,
		},
		Locomotion: LocomotionTuning{
			ArriveRadius: 0.05,
		},
		Separation: SeparationTuning{
			Interval:         0.1,
			CellSize:         3,
			MinSeparation:    0.1,
			PushForce:        8,
			MovingMultiplier: 0.3,
			DefaultRadius:    0.5,
		},
	}
}

// LoadTuning reads a tuning file. Keys missing from the file keep their
// default values.
func LoadTuning(name string) (*Tuning, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	return ParseTuning(name, data)
}

func ParseTuning(name string, data []byte) (*Tuning, error) {
	t := DefaultTuning()
	if err := unmarshalStrict(data, t); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", name, err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return t, nil
}

func (t *Tuning) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: nil", ErrInvalidTuning)
	}
	positive := []struct {
		name string
		v    float64
	}{
		{"targeting.leash_distance", t.Targeting.LeashDistance},
		{"targeting.return_threshold", t.Targeting.ReturnThreshold},
		{"combat.melee_range", t.Combat.MeleeRange},
		{"ranged.aim_min", t.Ranged.AimMin},
		{"ranged.cooldown", t.Ranged.Cooldown},
		{"ballistics.arc_threshold", t.Ballistics.ArcThreshold},
		{"ballistics.flat_speed", t.Ballistics.FlatSpeed},
		{"ballistics.gravity", t.Ballistics.Gravity},
		{"ballistics.degenerate_multiplier", t.Ballistics.DegenerateMultiplier},
		{"ballistics.impact_radius", t.Ballistics.ImpactRadius},
		{"locomotion.arrive_radius", t.Locomotion.ArriveRadius},
		{"separation.interval", t.Separation.Interval},
		{"separation.cell_size", t.Separation.CellSize},
		{"separation.push_force", t.Separation.PushForce},
		{"separation.default_radius", t.Separation.DefaultRadius},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidTuning, p.name, p.v)
		}
	}
	if t.Ranged.AimMax < t.Ranged.AimMin {
		return fmt.Errorf("%w: ranged.aim_max %v below aim_min %v", ErrInvalidTuning, t.Ranged.AimMax, t.Ranged.AimMin)
	}
	if t.Ballistics.ArcAngleDeg <= 0 || t.Ballistics.ArcAngleDeg >= 90 {
		return fmt.Errorf("%w: ballistics.arc_angle_deg must be in (0, 90), got %v", ErrInvalidTuning, t.Ballistics.ArcAngleDeg)
	}
	if t.Ballistics.MinPitchDeg < 0 || t.Ballistics.MinPitchDeg >= 90 {
		return fmt.Errorf("%w: ballistics.min_pitch_deg must be in [0, 90), got %v", ErrInvalidTuning, t.Ballistics.MinPitchDeg)
	}
	if t.Combat.HeightClamp < 0 || t.Combat.HeightClamp >= 1 {
		return fmt.Errorf("%w: combat.height_clamp must be in [0, 1), got %v", ErrInvalidTuning, t.Combat.HeightClamp)
	}
	if t.Separation.MovingMultiplier < 0 || t.Separation.MinSeparation < 0 {
		return fmt.Errorf("%w: separation multipliers must not be negative", ErrInvalidTuning)
	}
	if t.Targeting.ParallelScanThreshold < 0 {
		return fmt.Errorf("%w: targeting.parallel_scan_threshold must not be negative", ErrInvalidTuning)
	}
	return nil
}
