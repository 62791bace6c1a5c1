package main

import (
	"math/rand/v2"

	"github.com/plus3/basis/ecs"
)

type Position struct{ X, Y float64 }
type Velocity struct{ X, Y float64 }
type Acceleration struct{ X, Y float64 }
type Health struct{ Current, Max int }
type Lifetime struct{ Remaining float64 }
type Damage struct{ Amount int }
type Tag struct{ Group uint8 }

const componentCount = 7

// spawners attach one component each; an entity gets a random subset.
var spawners = [componentCount]func(w *ecs.World, e ecs.Entity, r *rand.Rand){
	func(w *ecs.World, e ecs.Entity, r *rand.Rand) {
		ecs.AddEntityComponent(w, e, Position{r.Float64() * 1000, r.Float64() * 1000})
	},
	func(w *ecs.World, e ecs.Entity, r *rand.Rand) {
		ecs.AddEntityComponent(w, e, Velocity{r.NormFloat64(), r.NormFloat64()})
	},
	func(w *ecs.World, e ecs.Entity, r *rand.Rand) {
		ecs.AddEntityComponent(w, e, Acceleration{r.NormFloat64() / 10, r.NormFloat64() / 10})
	},
	func(w *ecs.World, e ecs.Entity, r *rand.Rand) {
		hp := 50 + r.IntN(50)
		ecs.AddEntityComponent(w, e, Health{Current: hp, Max: hp})
	},
	func(w *ecs.World, e ecs.Entity, r *rand.Rand) {
		ecs.AddEntityComponent(w, e, Lifetime{Remaining: 1 + r.Float64()*5})
	},
	func(w *ecs.World, e ecs.Entity, r *rand.Rand) {
		ecs.AddEntityComponent(w, e, Damage{Amount: 1 + r.IntN(3)})
	},
	func(w *ecs.World, e ecs.Entity, r *rand.Rand) {
		ecs.AddEntityComponent(w, e, Tag{Group: uint8(r.IntN(8))})
	},
}

// SpawnRandomEntity creates an entity holding n distinct random components.
func SpawnRandomEntity(w *ecs.World, r *rand.Rand, n int) ecs.Entity {
	e := w.Spawn()
	for _, i := range r.Perm(componentCount)[:min(n, componentCount)] {
		spawners[i](w, e, r)
	}
	return e
}

// Workload is the shared state of the stress systems.
type Workload struct {
	Rand     *rand.Rand
	Spawned  int
	Despawns int
}

type AccelerateSystem struct {
	Time ecs.ResourceRef[ecs.Time]
}

func (s *AccelerateSystem) Run(world *ecs.World, resources *ecs.Resources) {
	dt := s.Time.Get().Delta
	ecs.Each2(world, func(e ecs.Entity, v *Velocity, a *Acceleration) {
		v.X += a.X * dt
		v.Y += a.Y * dt
	})
}

type MoveSystem struct {
	Time ecs.ResourceRef[ecs.Time]
}

func (s *MoveSystem) Run(world *ecs.World, resources *ecs.Resources) {
	dt := s.Time.Get().Delta
	ecs.Each2(world, func(e ecs.Entity, p *Position, v *Velocity) {
		p.X += v.X * dt
		p.Y += v.Y * dt
	})
}

// DamageSystem applies each entity's own Damage to its Health and queues
// the dead for despawn.
type DamageSystem struct {
	Workload ecs.ResourceRef[Workload]
}

func (s *DamageSystem) Run(world *ecs.World, resources *ecs.Resources) {
	workload := s.Workload.Get()
	ecs.Each2(world, func(e ecs.Entity, h *Health, d *Damage) {
		h.Current -= d.Amount
		if h.Current <= 0 {
			world.Commands().Despawn(e)
			workload.Despawns++
		}
	})
}

// LifetimeSystem despawns entities whose lifetime ran out.
type LifetimeSystem struct {
	Time     ecs.ResourceRef[ecs.Time]
	Workload ecs.ResourceRef[Workload]
}

func (s *LifetimeSystem) Run(world *ecs.World, resources *ecs.Resources) {
	dt := s.Time.Get().Delta
	workload := s.Workload.Get()
	ecs.Each1(world, func(e ecs.Entity, l *Lifetime) {
		l.Remaining -= dt
		if l.Remaining <= 0 {
			world.Commands().Despawn(e)
			workload.Despawns++
		}
	})
}

// RespawnSystem refills the population to Target once the frame's despawns
// have been applied.
type RespawnSystem struct {
	Workload ecs.ResourceRef[Workload]
	Target   int
}

func (s *RespawnSystem) Run(world *ecs.World, resources *ecs.Resources) {
	workload := s.Workload.Get()
	world.Commands().Defer(func(w *ecs.World) {
		missing := s.Target - w.Entities().Len()
		for range missing {
			SpawnRandomEntity(w, workload.Rand, workload.Rand.IntN(5)+1)
		}
		workload.Spawned += max(missing, 0)
	})
}

// RegisterSystems adds the stress systems in run order.
func RegisterSystems(scheduler *ecs.Scheduler, target int) {
	scheduler.Register(
		&AccelerateSystem{},
		&MoveSystem{},
		&DamageSystem{},
		&LifetimeSystem{},
		&RespawnSystem{Target: target},
	)
}

const systemCount = 5
