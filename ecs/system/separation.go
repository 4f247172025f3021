package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/prefabs"
)

type cellKey struct {
	x, z int
}

type separationAgent struct {
	e      ecs.Entity
	tr     *component.Transform
	pos    cp.Vector
	radius float64
	moving bool
}

// SeparationSystem pushes overlapping agents apart. It runs at most once per
// Interval of simulated time and scales the push by the time actually
// elapsed since its last pass. The neighbor grid is rebuilt every pass.
type SeparationSystem struct {
	tuning *prefabs.Tuning
	accum  float64
	grid   map[cellKey][]int
	agents []separationAgent
	push   []cp.Vector
	// reach is how many cells out from its own a pass scans, so that the
	// widest overlapping pair is always found.
	reach int
}

func NewSeparationSystem(tuning *prefabs.Tuning) *SeparationSystem {
	return &SeparationSystem{
		tuning: tuningOrDefault(tuning),
		grid:   map[cellKey][]int{},
	}
}

func (s *SeparationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.accum += w.Clock().Delta
	if s.accum < s.tuning.Separation.Interval {
		return
	}
	elapsed := s.accum
	s.accum = 0
	s.Run(w, elapsed)
}

// Run performs one separation pass as if elapsed seconds had passed.
func (s *SeparationSystem) Run(w *ecs.World, elapsed float64) {
	if w == nil || elapsed <= 0 {
		return
	}
	cfg := s.tuning.Separation
	s.collect(w, cfg)
	if len(s.agents) < 2 {
		return
	}

	for i := range s.agents {
		s.push[i] = s.pushFor(i, cfg)
	}
	// positions change only after every push is computed
	for i, a := range s.agents {
		p := s.push[i]
		if p.LengthSq() == 0 {
			continue
		}
		mult := 1.0
		if a.moving {
			mult = cfg.MovingMultiplier
		}
		a.tr.Position = a.tr.Position.WithGround(a.pos.Add(p.Mult(cfg.PushForce * elapsed * mult)))
	}
}

func (s *SeparationSystem) collect(w *ecs.World, cfg prefabs.SeparationTuning) {
	clear(s.grid)
	s.agents = s.agents[:0]
	maxRadius := 0.0

	ecs.ForEach3(w, component.TransformComponent.Kind(), component.FactionComponent.Kind(), component.HealthComponent.Kind(), func(e ecs.Entity, tr *component.Transform, _ *component.Faction, h *component.Health) {
		if !h.Alive() {
			return
		}
		radius := cfg.DefaultRadius
		if b, ok := ecs.Get(w, e, component.BodyComponent.Kind()); ok && b.Radius > 0 {
			radius = b.Radius
		}
		maxRadius = math.Max(maxRadius, radius)
		pos := tr.Position.Ground()
		idx := len(s.agents)
		s.agents = append(s.agents, separationAgent{
			e:      e,
			tr:     tr,
			pos:    pos,
			radius: radius,
			moving: ecs.Has(w, e, component.DestinationComponent.Kind()),
		})
		key := cellOf(pos, cfg.CellSize)
		s.grid[key] = append(s.grid[key], idx)
	})

	s.reach = max(1, int(math.Ceil((2*maxRadius+cfg.MinSeparation)/cfg.CellSize)))

	if cap(s.push) < len(s.agents) {
		s.push = make([]cp.Vector, len(s.agents))
	}
	s.push = s.push[:len(s.agents)]
}

func (s *SeparationSystem) pushFor(i int, cfg prefabs.SeparationTuning) cp.Vector {
	a := s.agents[i]
	key := cellOf(a.pos, cfg.CellSize)
	var sum cp.Vector
	n := 0
	for dx := -s.reach; dx <= s.reach; dx++ {
		for dz := -s.reach; dz <= s.reach; dz++ {
			for _, j := range s.grid[cellKey{key.x + dx, key.z + dz}] {
				if j == i {
					continue
				}
				b := s.agents[j]
				limit := a.radius + b.radius + cfg.MinSeparation
				away := a.pos.Sub(b.pos)
				dist := away.Length()
				if dist >= limit {
					continue
				}
				var dir cp.Vector
				if dist == 0 {
					// coincident: split along X by id
					dir = cp.Vector{X: 1}
					if a.e.Slot() < b.e.Slot() {
						dir = cp.Vector{X: -1}
					}
				} else {
					dir = away.Mult(1 / dist)
				}
				sum = sum.Add(dir.Mult(limit - dist))
				n++
			}
		}
	}
	if n == 0 {
		return cp.Vector{}
	}
	return sum.Mult(1 / float64(n))
}

func cellOf(p cp.Vector, size float64) cellKey {
	return cellKey{
		x: int(math.Floor(p.X / size)),
		z: int(math.Floor(p.Y / size)),
	}
}
