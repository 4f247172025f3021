// Package component holds the plain data attached to simulation agents and
// projectiles, plus the typed keys the ecs package stores them under.
//
// Every component type is registered once as a package-level handle such as
// HealthComponent or TargetComponent. Systems pass handle.Kind() to the ecs
// accessors, so a lookup is typed at compile time and keyed by a small integer
// at run time.
package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID keys one component store inside a world. IDs start at 1.
type ComponentID uint32

// Kind is the untyped view of a ComponentKind used by multi-kind queries.
type Kind interface {
	ID() ComponentID
}

// ComponentKind identifies the store for values of type T. Two kinds of the
// same T are distinct stores. The zero value is not registered and every ecs
// accessor rejects it with ErrInvalidComponentKind.
type ComponentKind[T any] struct {
	id ComponentID
}

// NewComponentKind allocates a fresh ID. It is safe to call from package init
// in several packages at once.
func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(lastID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// ComponentHandle is the exported registration of a component type. Only
// Kind is exposed so callers cannot forge or overwrite a registered ID.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

var lastID atomic.Uint32
