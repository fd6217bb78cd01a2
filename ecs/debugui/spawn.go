package debugui

import "github.com/plus3/grove/ecs"

// SpawnDebugUI creates one entity per debug window. scheduler may be nil,
// in which case the performance window omits system timings.
func SpawnDebugUI(world *ecs.World, scheduler *ecs.Scheduler) {
	ecs.With(world.Build(), NewEntityBrowserComponent(100)).Finish()
	ecs.With(world.Build(), NewComponentInspectorComponent()).Finish()
	ecs.With(world.Build(), NewArenaViewerComponent()).Finish()
	ecs.With(world.Build(), NewPerformanceStatsComponent(120, scheduler)).Finish()
	ecs.With(world.Build(), NewQueryDebuggerComponent()).Finish()
	ecs.With(world.Build(), NewHierarchyViewerComponent()).Finish()
}

// RegisterDebugUIComponents registers the window components and adds the
// Selection and ImguiInputState singletons.
func RegisterDebugUIComponents(world *ecs.World) {
	ecs.RegisterComponent[ImguiItem](world, ecs.WithSparseArena())
	ecs.RegisterComponent[EntityBrowserComponent](world, ecs.WithSparseArena())
	ecs.RegisterComponent[ComponentInspectorComponent](world, ecs.WithSparseArena())
	ecs.RegisterComponent[ArenaViewerComponent](world, ecs.WithSparseArena())
	ecs.RegisterComponent[PerformanceStatsComponent](world, ecs.WithSparseArena())
	ecs.RegisterComponent[QueryDebuggerComponent](world, ecs.WithSparseArena())
	ecs.RegisterComponent[HierarchyViewerComponent](world, ecs.WithSparseArena())
	ecs.NewSingleton[Selection](world)
	ecs.NewSingleton[ImguiInputState](world)
}
