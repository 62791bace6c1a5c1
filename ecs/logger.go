package ecs

import (
	"github.com/rs/zerolog"
)

func typeNamesArray(names []string) *zerolog.Array {
	arr := zerolog.Arr()
	for _, name := range names {
		arr = arr.Str(name)
	}
	return arr
}

// LogWorld emits one event describing the world's entities and component
// storages.
func LogWorld(logger zerolog.Logger, world *World, level zerolog.Level) {
	stats := world.CollectStats()

	components := zerolog.Arr()
	for _, c := range stats.ComponentBreakdown {
		components = components.Dict(zerolog.Dict().
			Str("component_name", c.Type).
			Int("count", c.Count).
			Int("slots", c.Slots))
	}

	logger.WithLevel(level).
		Int("active_entities", stats.ActiveEntities).
		Int("free_ids", stats.FreeIds).
		Int("total_components", stats.ComponentTypeCount).
		Array("components", components).
		Msg("world")
}

// LogResources emits one event listing the registered resource types.
func LogResources(logger zerolog.Logger, resources *Resources, level zerolog.Level) {
	types := resources.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}

	logger.WithLevel(level).
		Int("total_resources", len(names)).
		Array("resources", typeNamesArray(names)).
		Msg("resources")
}

// LogSystems emits one event listing the scheduler's systems in run order.
func LogSystems(logger zerolog.Logger, scheduler *Scheduler, level zerolog.Level) {
	names := scheduler.SystemNames()

	logger.WithLevel(level).
		Int("total_systems", len(names)).
		Array("systems", typeNamesArray(names)).
		Msg("systems")
}
