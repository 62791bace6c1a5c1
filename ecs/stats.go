package ecs

// WorldStats is a snapshot of a World's size.
type WorldStats struct {
	ActiveEntities     int
	FreeIds            int
	IssuedIds          int
	ComponentTypeCount int
	ComponentBreakdown []ComponentStats
}

// ComponentStats describes one component storage.
type ComponentStats struct {
	Type  string
	Count int
	Slots int
}

// CollectStats gathers entity and component storage statistics.
func (w *World) CollectStats() *WorldStats {
	cols := w.components.columnsSorted()
	stats := &WorldStats{
		ActiveEntities:     w.entities.Len(),
		FreeIds:            w.entities.FreeCount(),
		IssuedIds:          w.entities.Cap(),
		ComponentTypeCount: len(cols),
		ComponentBreakdown: make([]ComponentStats, 0, len(cols)),
	}

	for _, col := range cols {
		stats.ComponentBreakdown = append(stats.ComponentBreakdown, ComponentStats{
			Type:  col.Type().String(),
			Count: col.Count(),
			Slots: col.Len(),
		})
	}
	return stats
}
