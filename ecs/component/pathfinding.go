package component

import "github.com/milk9111/tilemap/pathfinding"

// Pathfinding drives a mover along a tile path. Progress is the fraction of
// the move from step Step to Step+1.
type Pathfinding struct {
	Speed         float64
	RepathFrames  int
	FrameCounter  int
	MaxWaitFrames int
	Waiting       int

	DestX          int
	DestY          int
	HasDestination bool

	Path     *pathfinding.Path
	Step     int
	Progress float64
	Moving   bool

	// Repath forces a search on the next tile boundary.
	Repath bool

	Arrived bool
	Failed  bool
}

// SetDestination starts a new search on the next tile boundary. A step in
// progress is finished first, since its tile is already reserved.
func (p *Pathfinding) SetDestination(tx, ty int) {
	p.DestX, p.DestY = tx, ty
	p.HasDestination = true
	p.Repath = true
	if !p.Moving {
		p.Path = nil
		p.Step = 0
		p.Progress = 0
	}
	p.Arrived = false
	p.Failed = false
	p.Waiting = 0
}

// Stop drops the destination and the current path.
func (p *Pathfinding) Stop() {
	p.HasDestination = false
	p.Path = nil
	p.Step = 0
	p.Progress = 0
	p.Moving = false
	p.Repath = false
	p.Waiting = 0
}

var PathfindingComponent = NewComponent[Pathfinding]()
