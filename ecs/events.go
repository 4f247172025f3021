package ecs

// EventType names an outbound event.
type EventType string

const (
	EventProjectileFired  EventType = "projectile_fired"
	EventProjectileImpact EventType = "projectile_impact"
	EventDamageDealt      EventType = "damage_dealt"
	EventHealed           EventType = "healed"
	EventAgentDied        EventType = "agent_died"
)

// Event is a generic ECS event payload. Data holds one of the payload structs
// from the component package.
type Event struct {
	Type EventType
	Tick uint64
	Data any
}

// EventQueue is a simple FIFO queue. Events stay queued until drained.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
