package ecs

import "strconv"

// Entity is a generation-tagged handle: the low 32 bits are the slot id, the
// high 32 bits the generation of that slot when the handle was issued.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// Slot returns the storage slot of the handle. Two handles with the same slot
// never refer to live entities at the same time.
func (e Entity) Slot() int {
	return int(e.id())
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

// Valid reports whether the handle is non-zero. It says nothing about liveness.
func (e Entity) Valid() bool {
	return e.id() > 0
}
