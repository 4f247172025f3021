package component

import "github.com/milk9111/skirmish/common"

type BallisticKind uint8

const (
	BallisticFlat BallisticKind = iota
	BallisticArced
)

func (k BallisticKind) String() string {
	switch k {
	case BallisticFlat:
		return "flat"
	case BallisticArced:
		return "arced"
	default:
		return "unknown"
	}
}

// Projectile is immutable after spawn apart from Resolved. Damage is final
// (height modifier already applied at fire time).
type Projectile struct {
	Launch         common.Vec3
	Impact         common.Vec3
	Velocity       common.Vec3
	LaunchTime     float64
	Duration       float64
	Gravity        float64
	Damage         int
	Shooter        Ref
	ShooterFaction FactionID
	Target         Ref
	Kind           BallisticKind
	Resolved       bool
}

// ImpactTime is the clock time at which the projectile resolves.
func (p *Projectile) ImpactTime() float64 {
	return p.LaunchTime + p.Duration
}

// PositionAt returns the in-flight position at clock time now. Flat shots
// travel the launch-impact segment; arced shots follow the gravity parabola of
// their launch velocity. Both are pinned to the impact point once due.
func (p *Projectile) PositionAt(now float64) common.Vec3 {
	t := now - p.LaunchTime
	if t <= 0 {
		return p.Launch
	}
	if p.Duration <= 0 || t >= p.Duration {
		return p.Impact
	}
	if p.Kind == BallisticFlat {
		f := t / p.Duration
		return common.Vec3{
			X: common.Lerp(p.Launch.X, p.Impact.X, f),
			Y: common.Lerp(p.Launch.Y, p.Impact.Y, f),
			Z: common.Lerp(p.Launch.Z, p.Impact.Z, f),
		}
	}
	pos := p.Launch.Add(p.Velocity.Scale(t))
	pos.Y -= 0.5 * p.Gravity * t * t
	return pos
}

var ProjectileComponent = NewComponent[Projectile]()
