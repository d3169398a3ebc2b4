package ecs

// System is one stage of a tick. Systems run in the order they were added.
type System interface {
	Update(w *World)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) { f(w) }

type Scheduler struct {
	systems []System
	frame   int
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs every system once.
func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
	s.frame++
}

// Tick runs one Update and returns the events it queued, oldest first.
func (s *Scheduler) Tick(w *World) []Event {
	s.Update(w)
	return w.Events().Drain()
}

// Frame is the number of completed updates.
func (s *Scheduler) Frame() int {
	return s.frame
}

func (s *Scheduler) Systems() []System {
	return append([]System(nil), s.systems...)
}
