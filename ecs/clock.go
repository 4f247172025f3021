package ecs

// Clock is the simulation time base. Now and Delta are in seconds.
type Clock struct {
	Tick  uint64
	Now   float64
	Delta float64
}
