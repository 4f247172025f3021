package component

import "github.com/milk9111/skirmish/common"

// GuardPoint is the agent's home position for leash behavior. It persists
// until overwritten by a hold order or cleared by a stop order.
type GuardPoint struct {
	Position common.Vec3
}

var GuardPointComponent = NewComponent[GuardPoint]()

// Target is the agent's current engagement, whether ordered or acquired.
type Target struct {
	Entity Ref
}

var TargetComponent = NewComponent[Target]()

// AttackIntent marks a player-ordered target. It outlives individual ticks so
// ordered engagements can be told apart from auto-acquired ones.
type AttackIntent struct {
	Target Ref
}

var AttackIntentComponent = NewComponent[AttackIntent]()

// MoveIntent marks a player-ordered destination. While present the agent is
// exempt from auto-acquisition and return-to-guard.
type MoveIntent struct {
	Destination common.Vec3
}

var MoveIntentComponent = NewComponent[MoveIntent]()

type DestinationSource uint8

const (
	DestinationOrder DestinationSource = iota
	DestinationGuard
	DestinationCombat
)

func (s DestinationSource) String() string {
	switch s {
	case DestinationOrder:
		return "order"
	case DestinationGuard:
		return "guard"
	case DestinationCombat:
		return "combat"
	default:
		return "unknown"
	}
}

// Destination is the point the locomotion pass steers toward. It is removed
// on arrival.
type Destination struct {
	Point  common.Vec3
	Source DestinationSource
}

var DestinationComponent = NewComponent[Destination]()
