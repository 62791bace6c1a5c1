package debugui

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/basis/ecs"
)

func NewJoinDebuggerComponent() JoinDebuggerComponent {
	return JoinDebuggerComponent{
		selectedComponentTypes: make(map[string]bool),
	}
}

// Render draws the type picker and the entities holding every selected type.
// A clicked entity id is returned so the caller can select it.
func (jd *JoinDebuggerComponent) Render(world *ecs.World) (clicked ecs.Entity, ok bool) {
	if !imgui.BeginV("Join Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return 0, false
	}

	registered := world.RegisteredTypes()

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		jd.selectedComponentTypes = make(map[string]bool)
	}

	for _, t := range registered {
		name := t.String()
		selected := jd.selectedComponentTypes[name]
		if imgui.Checkbox(name, &selected) {
			jd.Toggle(name, selected)
		}
	}

	imgui.Separator()

	selectedTypes := jd.selectedTypes(registered)
	if len(selectedTypes) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return 0, false
	}

	matching := matchingEntities(world, selectedTypes)
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matching)))

	if imgui.TreeNodeStr("Entities") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("JoinTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Entity ID")
			imgui.TableSetupColumn("All Components")
			imgui.TableHeadersRow()

			for _, e := range matching {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				if imgui.SelectableBoolV(fmt.Sprintf("%d", e), false, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
					clicked, ok = e, true
				}

				imgui.TableSetColumnIndex(1)
				types := world.ComponentTypes(e)
				names := make([]string, len(types))
				for i, t := range types {
					names[i] = t.String()
				}
				imgui.Text(strings.Join(names, ", "))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
	return clicked, ok
}

// Toggle adds or removes a type name from the join.
func (jd *JoinDebuggerComponent) Toggle(typeName string, selected bool) {
	if selected {
		jd.selectedComponentTypes[typeName] = true
	} else {
		delete(jd.selectedComponentTypes, typeName)
	}
}

// selectedTypes resolves the selected names against the registered types,
// sorted by name. Names with no storage are skipped.
func (jd *JoinDebuggerComponent) selectedTypes(registered []reflect.Type) []reflect.Type {
	types := make([]reflect.Type, 0, len(jd.selectedComponentTypes))
	for _, t := range registered {
		if jd.selectedComponentTypes[t.String()] {
			types = append(types, t)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i].String() < types[j].String() })
	return types
}

// matchingEntities returns the live entities holding a value of every given
// type, in ascending id order.
func matchingEntities(world *ecs.World, types []reflect.Type) []ecs.Entity {
	var matching []ecs.Entity
	for e := range world.ActiveEntities() {
		all := true
		for _, t := range types {
			if world.Component(e, t) == nil {
				all = false
				break
			}
		}
		if all {
			matching = append(matching, e)
		}
	}
	return matching
}
