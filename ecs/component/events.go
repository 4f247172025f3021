package component

import "github.com/milk9111/skirmish/common"

// ProjectileFired is published for visual playback of a launch.
type ProjectileFired struct {
	Projectile Ref
	Shooter    Ref
	Start      common.Vec3
	End        common.Vec3
	Duration   float64
	Kind       BallisticKind
}

// ProjectileImpact is published when a projectile resolves. Victim is NoRef
// when nothing occupied the impact point.
type ProjectileImpact struct {
	Projectile Ref
	Victim     Ref
	Point      common.Vec3
	Damage     int
}

type DamageDealt struct {
	Attacker  Ref
	Victim    Ref
	Amount    int
	Remaining int
	Modifier  float64
	Melee     bool
}

type Healed struct {
	Healer  Ref
	Patient Ref
	Amount  int
}

type AgentDied struct {
	Agent   Ref
	Faction FactionID
	Killer  Ref
}
