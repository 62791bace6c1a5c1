package ecs_test

import (
	"testing"

	"github.com/plus3/basis/ecs"
)

func BenchmarkSpawn(b *testing.B) {
	world := ecs.NewWorld()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := world.Spawn()
		ecs.AddEntityComponent(world, e, Position{X: 1.0, Y: 2.0})
		ecs.AddEntityComponent(world, e, Velocity{DX: 0.5, DY: 0.5})
	}
}

func BenchmarkDespawn(b *testing.B) {
	world := ecs.NewWorld()

	ids := make([]ecs.Entity, b.N)
	for i := 0; i < b.N; i++ {
		ids[i] = world.Spawn()
		ecs.AddEntityComponent(world, ids[i], Position{X: 1.0, Y: 2.0})
		ecs.AddEntityComponent(world, ids[i], Velocity{DX: 0.5, DY: 0.5})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		world.Despawn(ids[i])
	}
}

func BenchmarkGetComponent(b *testing.B) {
	world := ecs.NewWorld()
	e := world.Spawn()
	ecs.AddEntityComponent(world, e, Position{X: 1.0, Y: 2.0})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ecs.GetComponent[Position](world, e)
	}
}

func BenchmarkWithComponentsMut2(b *testing.B) {
	world := ecs.NewWorld()
	e := world.Spawn()
	ecs.AddEntityComponent(world, e, Position{})
	ecs.AddEntityComponent(world, e, Velocity{DX: 1, DY: 1})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ecs.WithComponentsMut2(world, e, func(p *Position, v *Velocity) {
			p.X += v.DX
		})
	}
}

func BenchmarkEach2(b *testing.B) {
	world := ecs.NewWorld()
	for i := range 10_000 {
		e := world.Spawn()
		ecs.AddEntityComponent(world, e, Position{})
		if i%2 == 0 {
			ecs.AddEntityComponent(world, e, Velocity{DX: 1, DY: 1})
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ecs.Each2(world, func(e ecs.Entity, p *Position, v *Velocity) {
			p.X += v.DX
			p.Y += v.DY
		})
	}
}

func BenchmarkSchedulerOnce(b *testing.B) {
	world := ecs.NewWorld()
	for range 1_000 {
		e := world.Spawn()
		ecs.AddEntityComponent(world, e, Position{})
		ecs.AddEntityComponent(world, e, Velocity{DX: 1})
		ecs.AddEntityComponent(world, e, Health{Current: 10, Max: 10})
	}

	scheduler := ecs.NewScheduler(world, ecs.NewResources())
	scheduler.Register(&MovementSystem{}, &HealthSystem{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scheduler.Once(0.016)
	}
}
