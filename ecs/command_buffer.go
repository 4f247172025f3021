package ecs

import "github.com/milk9111/skirmish/ecs/component"

// CommandBuffer queues structural changes (add/remove component, destroy)
// recorded while a pass iterates, and applies them in order on Flush.
type CommandBuffer struct {
	ops []func(w *World)
}

// Push queues an arbitrary mutation.
func (b *CommandBuffer) Push(op func(w *World)) {
	if b == nil || op == nil {
		return
	}
	b.ops = append(b.ops, op)
}

// Destroy queues the destruction of e.
func (b *CommandBuffer) Destroy(e Entity) {
	b.Push(func(w *World) { DestroyEntity(w, e) })
}

// Len returns the number of pending operations.
func (b *CommandBuffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.ops)
}

// Flush applies pending operations and returns how many ran. Operations
// queued during the flush itself run in the same call.
func (b *CommandBuffer) Flush(w *World) int {
	if b == nil {
		return 0
	}
	n := 0
	for len(b.ops) > 0 {
		ops := b.ops
		b.ops = nil
		for _, op := range ops {
			op(w)
			n++
		}
	}
	return n
}

// Set queues an add-or-replace of a component. Targets that died before the
// flush are skipped.
func Set[T any](b *CommandBuffer, e Entity, kind component.ComponentKind[T], value *T) {
	b.Push(func(w *World) { _ = Add(w, e, kind, value) })
}

// Unset queues a component removal.
func Unset[T any](b *CommandBuffer, e Entity, kind component.ComponentKind[T]) {
	b.Push(func(w *World) { Remove(w, e, kind) })
}
