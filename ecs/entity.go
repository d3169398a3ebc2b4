package ecs

import "fmt"

// Entity packs a slot and the generation of that slot. A destroyed entity's
// slot is reused with the next generation, so stale handles stop matching.
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

// Index is the slot of the entity, unique among live entities and never 0.
func (e Entity) Index() int {
	return int(e.id())
}

// ObjectID is the id the entity's mover occupies tiles with. Slots start at 1,
// so it never equals pathfinding.NoObjectID. Only live entities own theirs.
func (e Entity) ObjectID() int {
	return e.Index()
}

// String prints slot and generation, e.g. "3v1".
func (e Entity) String() string {
	return fmt.Sprintf("%dv%d", e.id(), e.generation())
}

func (e Entity) Valid() bool {
	return e.id() > 0
}
