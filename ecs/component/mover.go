package component

import "github.com/milk9111/tilemap/pathfinding"

var MoverComponent = NewComponent[pathfinding.Mover]()
