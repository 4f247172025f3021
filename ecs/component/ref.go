package component

// Ref is a stored entity handle. Components cannot import the ecs package, so
// cross-entity links hold the raw handle and systems convert with ecs.Entity.
type Ref uint64

const NoRef Ref = 0
