package component

// MeleeProfile applies only to agents without a RangedProfile.
type MeleeProfile struct {
	Damage int
	Range  float64
}

var MeleeProfileComponent = NewComponent[MeleeProfile]()

// RangedProfile holds both the static weapon envelope and the per-engagement
// aiming state. Aim resets whenever the target changes or the agent leaves
// the firing band.
type RangedProfile struct {
	Damage   int
	MinRange float64
	MaxRange float64

	Aim         float64
	AimRequired float64
	AimTarget   Ref
	Retreating  bool
	Firing      bool
}

func (r *RangedProfile) ResetAim() {
	r.Aim = 0
	r.AimRequired = 0
}

var RangedProfileComponent = NewComponent[RangedProfile]()

// SupportProfile heals the most wounded ally within Range on cooldown.
type SupportProfile struct {
	Heal  int
	Range float64
}

var SupportProfileComponent = NewComponent[SupportProfile]()
