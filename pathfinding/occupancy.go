package pathfinding

import "sort"

// TilePath is the pathfinding state of one tile: its path category and the
// ids of the objects standing on it.
type TilePath struct {
	category string
	objects  map[int]struct{}
}

func newTilePath(category string) *TilePath {
	return &TilePath{category: category, objects: make(map[int]struct{})}
}

// Category returns the tile's path category, empty when no category claims
// the tile's group.
func (tp *TilePath) Category() string {
	return tp.category
}

func (tp *TilePath) AddObjectID(id int) {
	tp.objects[id] = struct{}{}
}

func (tp *TilePath) RemoveObjectID(id int) {
	delete(tp.objects, id)
}

func (tp *TilePath) HasObjectID(id int) bool {
	_, ok := tp.objects[id]
	return ok
}

func (tp *TilePath) Occupied() bool {
	return len(tp.objects) > 0
}

// ObjectsID returns the occupant ids in ascending order.
func (tp *TilePath) ObjectsID() []int {
	ids := make([]int, 0, len(tp.objects))
	for id := range tp.objects {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// onlyOccupant reports whether the tile is empty or holds id alone.
func (tp *TilePath) onlyOccupant(id int) bool {
	switch len(tp.objects) {
	case 0:
		return true
	case 1:
		_, ok := tp.objects[id]
		return ok
	default:
		return false
	}
}
