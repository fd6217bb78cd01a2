package debugui

import (
	"reflect"

	"github.com/plus3/grove/ecs"
)

// Selection is the singleton shared by the debug windows: the inspected
// entity and the component type the entity browser filters on.
type Selection struct {
	Entity    ecs.Entity
	HasEntity bool
	Filter    reflect.Type
}

// Select marks e as the inspected entity.
func (s *Selection) Select(e ecs.Entity) {
	s.Entity = e
	s.HasEntity = true
}

// Clear drops the inspected entity.
func (s *Selection) Clear() {
	s.Entity = 0
	s.HasEntity = false
}

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct{}

type ArenaViewerComponent struct {
	cache *ArenaViewerCache
}

type PerformanceStatsComponent struct {
	scheduler     *ecs.Scheduler
	timer         *FrameTimer
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type QueryDebuggerComponent struct {
	selectedComponentTypes map[string]bool
	cache                  *QueryDebuggerCache
}

type HierarchyViewerComponent struct {
	filterText string
	findPath   string
	findFailed bool
}
