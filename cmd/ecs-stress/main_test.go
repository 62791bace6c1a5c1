package main

import (
	"bytes"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/plus3/basis/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnRandomEntity(t *testing.T) {
	world := ecs.NewWorld()
	r := rand.New(rand.NewPCG(1, 2))

	e := SpawnRandomEntity(world, r, 3)
	assert.Len(t, world.ComponentTypes(e), 3)

	e = SpawnRandomEntity(world, r, 100)
	assert.Len(t, world.ComponentTypes(e), componentCount)
}

func TestWorkloadKeepsPopulation(t *testing.T) {
	const target = 200

	world := ecs.NewWorld()
	resources := ecs.NewResources()
	r := rand.New(rand.NewPCG(3, 4))
	ecs.AddResource(resources, Workload{Rand: r})

	scheduler := ecs.NewScheduler(world, resources)
	RegisterSystems(scheduler, target)
	assert.Equal(t, systemCount, len(scheduler.SystemNames()))

	for range target {
		SpawnRandomEntity(world, r, r.IntN(5)+1)
	}

	for range 60 {
		scheduler.Once(0.25)
		require.Equal(t, target, world.Entities().Len())
	}

	workload := ecs.GetResource[Workload](resources)
	assert.Positive(t, workload.Despawns)
	assert.Positive(t, workload.Spawned)
}

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3, 1, 2}}
	s.Finalize()
	assert.Equal(t, time.Duration(1), s.Min)
	assert.Equal(t, time.Duration(3), s.Max)
	assert.Equal(t, time.Duration(2), s.Avg)
	assert.Equal(t, time.Duration(2), s.P50)
	assert.Equal(t, time.Duration(3), s.P99)
	assert.Equal(t, []time.Duration{3, 1, 2}, s.Samples, "samples keep their order")

	many := Stats{}
	for i := 1; i <= 100; i++ {
		many.Samples = append(many.Samples, time.Duration(i))
	}
	many.Finalize()
	assert.Equal(t, time.Duration(50), many.P50)
	assert.Equal(t, time.Duration(99), many.P99)

	empty := Stats{}
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	world := ecs.NewWorld()
	ecs.AddComponent(world, Position{})
	scheduler := ecs.NewScheduler(world, ecs.NewResources())
	scheduler.Register(&MoveSystem{})
	scheduler.Once(0.1)

	report := &Report{
		Duration:     time.Second,
		Entities:     1,
		Components:   componentCount,
		Systems:      1,
		TotalUpdates: 1,
		World:        world.CollectStats(),
		Scheduler:    scheduler.Stats(),
	}

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "**Live Entities:** 1")
	assert.Contains(t, out, "- main.Position: 1 values in 1 slots")
	assert.Contains(t, out, "| MoveSystem | 1 |")
	assert.NotContains(t, out, "GC Pause")
}
