package component

type FactionID int

type Faction struct {
	ID FactionID
}

var FactionComponent = NewComponent[Faction]()

// Health is clamped to [0, Max]. LastHitBy records the most recent attacker
// for kill attribution.
type Health struct {
	Current   int
	Max       int
	LastHitBy Ref
}

func (h *Health) Alive() bool {
	return h != nil && h.Current > 0
}

var HealthComponent = NewComponent[Health]()

// Locomotion is the movement speed in units per second.
type Locomotion struct {
	Speed float64
}

var LocomotionComponent = NewComponent[Locomotion]()

// Vision is the line-of-sight radius used for auto-acquisition.
type Vision struct {
	Radius float64
}

var VisionComponent = NewComponent[Vision]()

// Body is the footprint used by the separation pass. Agents without one use
// the tuning default radius.
type Body struct {
	Radius float64
}

var BodyComponent = NewComponent[Body]()

// Unit names the prefab an agent was built from.
type Unit struct {
	Prefab string
}

var UnitComponent = NewComponent[Unit]()
