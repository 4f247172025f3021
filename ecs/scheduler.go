package ecs

type System interface {
	Update(w *World)
}

// Scheduler runs systems in registration order. The world's command buffer is
// flushed after every system so structural changes queued by a pass land at
// the end of that pass and are visible to the next one.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := make([]System, 0, len(systems))
	for _, s := range systems {
		if s != nil {
			copied = append(copied, s)
		}
	}
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
		w.Buffer().Flush(w)
	}
}
