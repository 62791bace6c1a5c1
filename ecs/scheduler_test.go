package ecs_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/plus3/basis/ecs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Time         ecs.ResourceRef[ecs.Time]
	ExecuteCount int
}

func (s *MovementSystem) Run(world *ecs.World, resources *ecs.Resources) {
	s.ExecuteCount++
	dt := float32(s.Time.Get().Delta)
	ecs.Each2(world, func(e ecs.Entity, p *Position, v *Velocity) {
		p.X += v.DX * dt
		p.Y += v.DY * dt
	})
}

type HealthSystem struct {
	ExecuteCount int
	TotalHealth  int
}

func (s *HealthSystem) Run(world *ecs.World, resources *ecs.Resources) {
	s.ExecuteCount++
	s.TotalHealth = 0
	ecs.Each1(world, func(e ecs.Entity, h *Health) {
		s.TotalHealth += h.Current
	})
}

type recordingSystem struct {
	name     string
	schedule ecs.Schedule
	log      *[]string
}

func (s *recordingSystem) Run(world *ecs.World, resources *ecs.Resources) {
	*s.log = append(*s.log, s.name)
}

func (s *recordingSystem) Name() string           { return s.name }
func (s *recordingSystem) Schedule() ecs.Schedule { return s.schedule }

func TestScheduler(t *testing.T) {
	t.Run("systems run and refs are bound", func(t *testing.T) {
		world := ecs.NewWorld()
		resources := ecs.NewResources()
		scheduler := ecs.NewScheduler(world, resources)

		movement := &MovementSystem{}
		health := &HealthSystem{}
		scheduler.Register(movement, health)

		e := world.Spawn()
		ecs.AddEntityComponent(world, e, Position{})
		ecs.AddEntityComponent(world, e, Velocity{DX: 1, DY: 2})
		ecs.AddComponent(world, Health{Current: 100, Max: 100})

		scheduler.Once(1.0)
		assert.Equal(t, 1, movement.ExecuteCount)
		assert.Equal(t, 1, health.ExecuteCount)
		assert.Equal(t, 100, health.TotalHealth)

		scheduler.Once(0.5)
		assert.Equal(t, 2, movement.ExecuteCount)
		assert.Equal(t, 2, health.ExecuteCount)

		pos, _ := ecs.GetComponent[Position](world, e)
		assert.InDelta(t, 1.5, pos.X, 1e-6)
		assert.InDelta(t, 3.0, pos.Y, 1e-6)
	})

	t.Run("schedules and registration order", func(t *testing.T) {
		var log []string
		scheduler := ecs.NewScheduler(ecs.NewWorld(), ecs.NewResources())

		scheduler.Register(
			&recordingSystem{name: "a", schedule: ecs.Loop, log: &log},
			&recordingSystem{name: "init", schedule: ecs.Setup, log: &log},
			&recordingSystem{name: "b", schedule: ecs.Loop, log: &log},
		)
		scheduler.SetRenderPass(&recordingSystem{name: "render", log: &log})

		scheduler.Once(0.1)
		scheduler.Once(0.1)

		assert.Equal(t, []string{"init", "a", "b", "render", "a", "b", "render"}, log)
		assert.Equal(t, []string{"init", "a", "b", "render"}, scheduler.SystemNames())
	})

	t.Run("setup runs once", func(t *testing.T) {
		count := 0
		scheduler := ecs.NewScheduler(ecs.NewWorld(), ecs.NewResources())
		scheduler.Register(ecs.NewSystem("setup", ecs.Setup, func(*ecs.World, *ecs.Resources) {
			count++
		}))

		require.NoError(t, scheduler.Setup())
		err := scheduler.Setup()
		assert.True(t, errors.Is(err, ecs.ErrSetupAlreadyRan))

		scheduler.Once(0.1)
		assert.Equal(t, 1, count)
	})

	t.Run("late setup systems are reported", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf).Level(zerolog.WarnLevel)
		scheduler := ecs.NewScheduler(ecs.NewWorld(), ecs.NewResources(), ecs.WithSchedulerLogger(logger))
		require.NoError(t, scheduler.Setup())
		require.Zero(t, buf.Len())

		ran := false
		scheduler.Register(ecs.NewSystem("late", ecs.Setup, func(*ecs.World, *ecs.Resources) {
			ran = true
		}))
		scheduler.Once(0.1)

		event := decodeEvent(t, &buf)
		assert.Equal(t, "warn", event["level"])
		assert.Equal(t, "late", event["system"])
		assert.False(t, ran)
	})

	t.Run("setup commands are applied before the first frame", func(t *testing.T) {
		world := ecs.NewWorld()
		scheduler := ecs.NewScheduler(world, ecs.NewResources())

		scheduler.Register(ecs.NewSystem("spawn", ecs.Setup, func(w *ecs.World, _ *ecs.Resources) {
			ecs.Insert(w.Commands(), w.Spawn(), Health{Current: 5})
		}))
		health := &HealthSystem{}
		scheduler.Register(health)

		scheduler.Once(0.1)
		assert.Equal(t, 5, health.TotalHealth)
	})

	t.Run("system funcs default to loop", func(t *testing.T) {
		count := 0
		scheduler := ecs.NewScheduler(ecs.NewWorld(), ecs.NewResources())
		scheduler.Register(ecs.SystemFunc(func(*ecs.World, *ecs.Resources) { count++ }))

		scheduler.Once(0.1)
		scheduler.Once(0.1)
		assert.Equal(t, 2, count)
	})
}

func TestSchedulerTime(t *testing.T) {
	resources := ecs.NewResources()
	scheduler := ecs.NewScheduler(ecs.NewWorld(), resources)

	var frames []uint64
	scheduler.Register(ecs.SystemFunc(func(_ *ecs.World, r *ecs.Resources) {
		frames = append(frames, ecs.GetResource[ecs.Time](r).Frame)
	}))

	scheduler.Update(0.25)
	scheduler.Update(0.5)

	tm := ecs.GetResource[ecs.Time](resources)
	assert.Equal(t, 0.5, tm.Delta)
	assert.Equal(t, 0.75, tm.Elapsed)
	assert.Equal(t, []uint64{0, 1}, frames)
}

func TestSchedulerKeepsExistingTime(t *testing.T) {
	resources := ecs.NewResources()
	ecs.AddResource(resources, ecs.Time{Elapsed: 10})

	scheduler := ecs.NewScheduler(ecs.NewWorld(), resources)
	scheduler.Update(1)

	assert.Equal(t, 11.0, ecs.GetResource[ecs.Time](resources).Elapsed)
}

func TestSchedulerMissingResourcePanics(t *testing.T) {
	scheduler := ecs.NewScheduler(ecs.NewWorld(), ecs.NewResources())
	scheduler.Register(ecs.SystemFunc(func(_ *ecs.World, r *ecs.Resources) {
		ecs.GetResource[GameConfig](r)
	}))

	err := recoverError(func() { scheduler.Once(0.1) })
	assert.True(t, errors.Is(err, ecs.ErrResourceNotFound))
}

func TestSchedulerStats(t *testing.T) {
	scheduler := ecs.NewScheduler(ecs.NewWorld(), ecs.NewResources())

	movement := &MovementSystem{}
	scheduler.Register(movement)
	scheduler.Register(ecs.NewSystem("setup", ecs.Setup, func(*ecs.World, *ecs.Resources) {}))

	stats := scheduler.Stats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(0), stats.TotalExecutions)
	for _, sys := range stats.Systems {
		assert.Zero(t, sys.MinDuration, "%s has not run", sys.Name)
		assert.Zero(t, sys.AvgDuration, "%s has not run", sys.Name)
	}

	for range 3 {
		scheduler.Once(0.016)
	}

	stats = scheduler.Stats()
	assert.Equal(t, uint64(3), stats.Frames)
	assert.Equal(t, int64(4), stats.TotalExecutions)
	require.Len(t, stats.Systems, 2)

	setup := stats.Systems[0]
	assert.Equal(t, "setup", setup.Name)
	assert.Equal(t, ecs.Setup, setup.Schedule)
	assert.Equal(t, int64(1), setup.ExecutionCount)

	move := stats.Systems[1]
	assert.Equal(t, "MovementSystem", move.Name)
	assert.Equal(t, ecs.Loop, move.Schedule)
	assert.Equal(t, int64(3), move.ExecutionCount)
	assert.LessOrEqual(t, move.MinDuration, move.AvgDuration)
	assert.LessOrEqual(t, move.AvgDuration, move.MaxDuration)
	assert.Equal(t, move.TotalDuration/3, move.AvgDuration)
}

func TestSchedulerRun(t *testing.T) {
	scheduler := ecs.NewScheduler(ecs.NewWorld(), ecs.NewResources())
	health := &HealthSystem{}
	scheduler.Register(health)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after the context was cancelled")
	}

	assert.Greater(t, health.ExecuteCount, 0)
}

func TestScheduleString(t *testing.T) {
	assert.Equal(t, "Loop", ecs.Loop.String())
	assert.Equal(t, "Setup", ecs.Setup.String())
	assert.Equal(t, "Schedule(7)", ecs.Schedule(7).String())
}
