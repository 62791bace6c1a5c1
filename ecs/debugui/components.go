package debugui

import (
	"github.com/plus3/basis/ecs"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntity     ecs.Entity
	hasSelection       bool
	filterText         string
	filterType         string
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selectedEntity ecs.Entity
	hasSelection   bool
}

type StorageViewerComponent struct {
	cache         *StorageViewerCache
	selectedType  string
	sortColumn    int
	sortAscending bool
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type JoinDebuggerComponent struct {
	selectedComponentTypes map[string]bool
}
