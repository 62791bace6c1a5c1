// Package debugui provides Dear ImGui inspectors for an ecs.World. Windows are
// ordinary components and systems: attach an ImguiItem to any entity to draw
// custom widgets, or call SpawnDebugUI for the built-in inspectors.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/basis/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState is a resource that mirrors Dear ImGui's input capture
// state. Gameplay systems check it before reacting to mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem refreshes ImguiInputState and queues every ImguiItem's render
// function to run once the frame's systems are done.
type ImguiSystem struct {
	InputState ecs.ResourceRef[ImguiInputState]
}

func (i *ImguiSystem) Run(world *ecs.World, resources *ecs.Resources) {
	if !i.InputState.Exists() {
		ecs.AddResource(resources, ImguiInputState{})
	}

	io := imgui.CurrentIO()
	state := i.InputState.Get()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	queueItems(world)
}

// queueItems defers the render functions of every ImguiItem in entity order.
func queueItems(world *ecs.World) {
	ecs.Each1(world, func(e ecs.Entity, item *ImguiItem) {
		if item.Render == nil {
			return
		}
		render := item.Render
		world.Commands().Defer(func(*ecs.World) { render() })
	})
}
