package component

import "github.com/milk9111/tilemap/collision"

var TileCollidableComponent = NewComponent[collision.TileCollidable]()

// TileCollisionState holds the hits of the last tick.
type TileCollisionState struct {
	Hits     []collision.Hit
	Grounded bool
	Ceiling  bool
	Wall     bool
}

var TileCollisionStateComponent = NewComponent[TileCollisionState]()
