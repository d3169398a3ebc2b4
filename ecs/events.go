package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventTileCollided = "tile_collided"
	EventPathBlocked  = "path_blocked"
	EventArrived      = "arrived"
)

// TileCollisionEvent is emitted for each boundary crossed by a sensor of an
// entity during a tick.
type TileCollisionEvent struct {
	Entity   Entity
	Category string
	Formula  string
	TileX    int
	TileY    int
	Value    float64
}

// PathEvent reports the pathfinding state of an entity.
type PathEvent struct {
	Entity Entity
	TileX  int
	TileY  int
}

// EventQueue is a simple FIFO queue.
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

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len is the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
