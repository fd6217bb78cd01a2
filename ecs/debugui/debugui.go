// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It manages ImGui rendering and input state through ECS components and systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/grove/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers the render function of every ImguiItem.
// It also updates the ImguiInputState singleton with current input capture state.
type ImguiSystem struct {
	InputState ecs.Singleton[ImguiInputState]
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
		state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
	}

	view, items := ecs.ViewR1[ImguiItem](frame.World)
	defer items.Release()

	for e := range view.Iter() {
		if render := items.GetUnchecked(e).Render; render != nil {
			frame.Commands.Defer(render)
		}
	}
}

// Window is a debug window stored as a component.
type Window interface {
	Render(w *ecs.World, sel *Selection)
}

// DebugUISystem renders every debug window component. Windows run as deferred
// commands, after the frame's borrows are released, so they may read and
// modify any component.
type DebugUISystem struct {
	Selection ecs.Singleton[Selection]
}

func (d *DebugUISystem) Execute(frame *ecs.UpdateFrame) {
	sel := d.Selection.Get()
	if sel == nil {
		return
	}
	deferWindows[EntityBrowserComponent](frame, sel)
	deferWindows[ComponentInspectorComponent](frame, sel)
	deferWindows[ArenaViewerComponent](frame, sel)
	deferWindows[PerformanceStatsComponent](frame, sel)
	deferWindows[QueryDebuggerComponent](frame, sel)
	deferWindows[HierarchyViewerComponent](frame, sel)
}

func deferWindows[T any, P interface {
	*T
	Window
}](frame *ecs.UpdateFrame, sel *Selection) {
	if !ecs.IsRegistered[T](frame.World) {
		return
	}
	view, windows := ecs.ViewW1[T](frame.World)
	defer windows.Release()

	for e := range view.Iter() {
		window := P(windows.GetMutUnchecked(e))
		frame.Commands.Defer(func() {
			window.Render(frame.World, sel)
		})
	}
}
