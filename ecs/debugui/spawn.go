package debugui

import "github.com/plus3/basis/ecs"

// SpawnDebugUI creates one entity per built-in inspector window. Register an
// InspectorSystem to draw them.
func SpawnDebugUI(world *ecs.World) {
	ecs.AddComponent(world, NewEntityBrowserComponent(100))
	ecs.AddComponent(world, NewComponentInspectorComponent())
	ecs.AddComponent(world, NewStorageViewerComponent())
	ecs.AddComponent(world, NewPerformanceStatsComponent(120))
	ecs.AddComponent(world, NewJoinDebuggerComponent())
}

// InspectorSystem draws every inspector window spawned by SpawnDebugUI. It
// must run inside a Dear ImGui frame. Scheduler is optional and feeds the
// system timings table.
type InspectorSystem struct {
	Scheduler *ecs.Scheduler

	timer *FrameTimer
}

func (s *InspectorSystem) Run(world *ecs.World, resources *ecs.Resources) {
	if s.timer == nil {
		s.timer = NewFrameTimer()
	}
	dt := s.timer.GetDeltaTime()

	// Windows are collected first so no column is borrowed while they draw.
	// The inspector reads and edits any component, its own included.
	w := collectWindows(world)

	var selected ecs.Entity
	var hasSelection bool
	for _, browser := range w.browsers {
		browser.Render(world)
		if e, ok := browser.SelectedEntity(); ok {
			selected, hasSelection = e, true
		}
	}

	for _, viewer := range w.storageViewers {
		if typeName, changed := viewer.Render(world); changed {
			for _, browser := range w.browsers {
				browser.FilterByType(typeName)
			}
		}
	}

	for _, join := range w.joins {
		if e, ok := join.Render(world); ok {
			selected, hasSelection = e, true
			for _, browser := range w.browsers {
				browser.Select(e)
			}
		}
	}

	for _, inspector := range w.inspectors {
		inspector.Render(world, selected, hasSelection)
	}

	for _, perf := range w.perfStats {
		perf.Render(world, resources, s.Scheduler, dt)
	}
}

type windows struct {
	browsers       []*EntityBrowserComponent
	inspectors     []*ComponentInspectorComponent
	storageViewers []*StorageViewerComponent
	perfStats      []*PerformanceStatsComponent
	joins          []*JoinDebuggerComponent
}

func collectWindows(world *ecs.World) windows {
	return windows{
		browsers:       collect[EntityBrowserComponent](world),
		inspectors:     collect[ComponentInspectorComponent](world),
		storageViewers: collect[StorageViewerComponent](world),
		perfStats:      collect[PerformanceStatsComponent](world),
		joins:          collect[JoinDebuggerComponent](world),
	}
}

func collect[T any](world *ecs.World) []*T {
	var items []*T
	ecs.Each1(world, func(_ ecs.Entity, item *T) {
		items = append(items, item)
	})
	return items
}
