package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          uint64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Schedule       Schedule
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemEntry struct {
	system   System
	name     string
	schedule Schedule
	logger   zerolog.Logger

	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (e *systemEntry) run(world *World, resources *Resources) {
	start := time.Now()
	e.system.Run(world, resources)
	duration := time.Since(start)

	e.executionCount++
	e.lastDuration = duration
	e.totalDuration += duration
	if duration < e.minDuration {
		e.minDuration = duration
	}
	if duration > e.maxDuration {
		e.maxDuration = duration
	}
	e.logger.Trace().Dur("duration", duration).Msg("system ran")
}

// Scheduler runs systems against one World and one Resources registry: Setup
// systems once, then Loop systems every frame followed by the render pass.
// Systems of the same schedule always run in registration order.
type Scheduler struct {
	world     *World
	resources *Resources
	logger    zerolog.Logger

	setup      []*systemEntry
	loop       []*systemEntry
	renderPass *systemEntry

	setupRan bool
	frame    uint64
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSchedulerLogger sets the logger; each system gets a sub-logger tagged
// with its name.
func WithSchedulerLogger(logger zerolog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// NewScheduler creates a scheduler for the given world and resources and
// registers the Time resource.
func NewScheduler(world *World, resources *Resources, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		world:     world,
		resources: resources,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	AddResource(resources, Time{})
	return s
}

// Register adds systems in order, each to the schedule it asks for, and binds
// their ResourceRef fields.
func (s *Scheduler) Register(systems ...System) {
	for _, system := range systems {
		entry := s.newEntry(system, scheduleOf(system))
		switch entry.schedule {
		case Setup:
			if s.setupRan {
				s.logger.Warn().
					Str("system", entry.name).
					Msg("setup already ran, system will never run")
			}
			s.setup = append(s.setup, entry)
		default:
			s.loop = append(s.loop, entry)
		}
		s.logger.Debug().
			Str("system", entry.name).
			Stringer("schedule", entry.schedule).
			Msg("registered system")
	}
}

// SetRenderPass sets the system that runs after the Loop systems of every
// frame. It replaces any previous render pass.
func (s *Scheduler) SetRenderPass(system System) {
	s.renderPass = s.newEntry(system, Loop)
	s.logger.Debug().Str("system", s.renderPass.name).Msg("registered render pass")
}

func (s *Scheduler) newEntry(system System, schedule Schedule) *systemEntry {
	s.initializeRefs(system)

	name := systemName(system)
	return &systemEntry{
		system:      system,
		name:        name,
		schedule:    schedule,
		logger:      s.logger.With().Str("system", name).Logger(),
		minDuration: time.Duration(1<<63 - 1),
	}
}

func systemName(system System) string {
	if n, ok := system.(Named); ok {
		return n.Name()
	}

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	if systemType.Name() == "" {
		return systemType.String()
	}
	return systemType.Name()
}

// initializeRefs binds every exported ResourceRef field of a struct system.
func (s *Scheduler) initializeRefs(system System) {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return
	}

	systemType := systemValue.Type()

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		fieldType := systemType.Field(i)

		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		if !strings.HasPrefix(field.Type().Name(), "ResourceRef[") {
			continue
		}

		initMethod := field.Addr().MethodByName("Init")
		if !initMethod.IsValid() {
			panic("Init method not found on ResourceRef field: " + fieldType.Name)
		}

		initMethod.Call([]reflect.Value{
			reflect.ValueOf(s.resources),
		})
	}
}

// Setup runs every Setup system once. Calling it again returns
// ErrSetupAlreadyRan.
func (s *Scheduler) Setup() error {
	if s.setupRan {
		return eris.Wrap(ErrSetupAlreadyRan, "scheduler setup")
	}
	s.setupRan = true

	for _, entry := range s.setup {
		entry.run(s.world, s.resources)
	}
	s.world.Commands().Flush(s.world)

	s.logger.Debug().Int("systems", len(s.setup)).Msg("setup complete")
	return nil
}

// Update advances the Time resource by dt seconds, runs every Loop system and
// then applies the commands they queued.
func (s *Scheduler) Update(dt float64) {
	GetResource[Time](s.resources).advance(dt, s.frame)
	s.frame++

	for _, entry := range s.loop {
		entry.run(s.world, s.resources)
	}
	s.world.Commands().Flush(s.world)
}

// Render runs the render pass, if one is set.
func (s *Scheduler) Render() {
	if s.renderPass != nil {
		s.renderPass.run(s.world, s.resources)
	}
}

// Once runs a full frame: Setup if it has not run yet, then Update and Render.
func (s *Scheduler) Once(dt float64) {
	if !s.setupRan {
		// Setup can only fail when it already ran.
		_ = s.Setup()
	}
	s.Update(dt)
	s.Render()
}

// Run executes frames at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// SystemNames returns the registered system names: Setup systems first, then
// Loop systems, then the render pass.
func (s *Scheduler) SystemNames() []string {
	names := make([]string, 0, len(s.setup)+len(s.loop)+1)
	for _, entry := range s.entries() {
		names = append(names, entry.name)
	}
	return names
}

func (s *Scheduler) entries() []*systemEntry {
	entries := make([]*systemEntry, 0, len(s.setup)+len(s.loop)+1)
	entries = append(entries, s.setup...)
	entries = append(entries, s.loop...)
	if s.renderPass != nil {
		entries = append(entries, s.renderPass)
	}
	return entries
}

// Stats returns statistics about system execution.
func (s *Scheduler) Stats() *SchedulerStats {
	entries := s.entries()
	stats := &SchedulerStats{
		SystemCount: len(entries),
		Frames:      s.frame,
		Systems:     make([]SystemStats, len(entries)),
	}

	var totalExecs int64
	for i, entry := range entries {
		var avgDuration, minDuration time.Duration
		if entry.executionCount > 0 {
			avgDuration = entry.totalDuration / time.Duration(entry.executionCount)
			minDuration = entry.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           entry.name,
			Schedule:       entry.schedule,
			ExecutionCount: entry.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    entry.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   entry.lastDuration,
			TotalDuration:  entry.totalDuration,
		}
		totalExecs += entry.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
