package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/basis/ecs"
	"github.com/rs/zerolog"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	seed := flag.Uint64("seed", 1, "Seed for the random workload.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	profileMode := flag.String("profile", "", "Write a profile to the working directory: cpu, mem or allocs.")
	verbose := flag.Bool("v", false, "Log every scheduler event.")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()

	if p := startProfile(*profileMode); p != nil {
		defer p.Stop()
	}

	logger.Info().Msg("starting ECS stress test")

	// 1. Setup World, Resources, and Scheduler
	world := ecs.NewWorld(ecs.WithWorldLogger(logger))
	resources := ecs.NewResources(ecs.WithResourcesLogger(logger))
	r := rand.New(rand.NewPCG(*seed, *seed))
	ecs.AddResource(resources, Workload{Rand: r})

	scheduler := ecs.NewScheduler(world, resources, ecs.WithSchedulerLogger(logger))
	RegisterSystems(scheduler, *entityCount)

	// 2. Populate the world with initial entities
	logger.Info().Int("entities", *entityCount).Msg("populating world")
	for i := 0; i < *entityCount; i++ {
		// Spawn an entity with 1 to 5 random components
		SpawnRandomEntity(world, r, r.IntN(5)+1)
	}
	ecs.LogWorld(logger, world, zerolog.InfoLevel)

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Components:     componentCount,
		Systems:        systemCount,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info().Dur("duration", *duration).Msg("running simulation")
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Once(deltaTime.Seconds())
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	workload := ecs.GetResource[Workload](resources)
	report.Spawned = workload.Spawned
	report.Despawned = workload.Despawns
	report.World = world.CollectStats()
	report.Scheduler = scheduler.Stats()

	logger.Info().Int64("updates", totalUpdates).Msg("simulation finished")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("failed to generate report")
	}
	fmt.Println("--- End of Report ---")
}

func startProfile(mode string) interface{ Stop() } {
	var opt func(*profile.Profile)
	switch mode {
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfile
	case "allocs":
		opt = profile.MemProfileAllocs
	default:
		return nil
	}
	return profile.Start(opt, profile.ProfilePath("."), profile.NoShutdownHook)
}
