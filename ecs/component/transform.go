package component

import "github.com/milk9111/skirmish/common"

// Transform is an agent's or projectile's world placement. Facing is the
// ground-plane heading in radians.
type Transform struct {
	Position common.Vec3
	Facing   float64
}

var TransformComponent = NewComponent[Transform]()
