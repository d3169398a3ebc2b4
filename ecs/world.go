package ecs

import (
	"sort"

	"github.com/milk9111/tilemap/ecs/component"
)

// kind is any component.ComponentKind, whatever its value type.
type kind interface {
	ID() component.ComponentID
	Name() string
}

// World owns entities, their components and the event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	names    map[component.ComponentID]string
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]*SparseSet),
		names:  make(map[component.ComponentID]string),
	}
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

func (w *World) register(k kind) *SparseSet {
	if _, ok := w.names[k.ID()]; !ok {
		w.names[k.ID()] = k.Name()
	}
	return w.store(k.ID(), true)
}

// ComponentNames lists the type names of every component e holds, sorted.
func (w *World) ComponentNames(e Entity) []string {
	if w == nil || !w.entities.isAlive(e) {
		return nil
	}
	var names []string
	for id, s := range w.stores {
		if s.Has(e.Index()) {
			names = append(names, w.names[id])
		}
	}
	sort.Strings(names)
	return names
}

// Query returns the entities holding every kind, in slot order.
func (w *World) Query(kinds ...kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil {
			return nil
		}
		sets = append(sets, s)
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i].Len() < sets[j].Len() })
	ids := append([]int(nil), sets[0].Entities()...)
	for _, s := range sets[1:] {
		ids = intersectIDs(ids, s)
	}
	sort.Ints(ids)

	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := w.entities.current(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
