package debugui

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/basis/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

func (ci *ComponentInspectorComponent) Render(world *ecs.World, selected ecs.Entity, hasSelection bool) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntity, ci.hasSelection = selected, hasSelection

	if !ci.hasSelection {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	if !world.Entities().IsActive(ci.selectedEntity) {
		imgui.Text(fmt.Sprintf("Entity %d is not alive", ci.selectedEntity))
		imgui.End()
		return
	}

	types := world.ComponentTypes(ci.selectedEntity)
	imgui.Text(fmt.Sprintf("Entity ID: %d", ci.selectedEntity))
	imgui.Text(fmt.Sprintf("Components: %d", len(types)))
	imgui.Separator()

	for _, compType := range types {
		component := world.Component(ci.selectedEntity, compType)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(compType.String()) {
			ci.renderComponent(world, component, compType)
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *ComponentInspectorComponent) renderComponent(world *ecs.World, component any, compType reflect.Type) {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		imgui.Text(fmt.Sprintf("%v", val.Interface()))
		return
	}

	for _, field := range globalReflectionCache.GetFields(compType) {
		ci.renderField(world, compType, []int{field.Index}, field, field.Value(val))
	}
}

func (ci *ComponentInspectorComponent) renderField(world *ecs.World, compType reflect.Type, path []int, field FieldInfo, val reflect.Value) {
	name := field.Name
	id := fmt.Sprintf("##%s%v", name, path)

	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: nil", name))
		return
	}

	set := func(v any) {
		SetComponentField(world, ci.selectedEntity, compType, path, v)
	}

	switch field.Kind {
	case KindInt:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) {
			set(int64(v))
		}

	case KindUint:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) && v >= 0 {
			set(uint64(v))
		}

	case KindFloat:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) {
			set(float64(v))
		}

	case KindBool:
		v := val.Bool()
		if imgui.Checkbox(name+id, &v) {
			set(v)
		}

	case KindString:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) {
			set(v)
		}

	case KindStruct:
		if imgui.TreeNodeStr(name) {
			for _, nf := range globalReflectionCache.GetFields(field.Type) {
				ci.renderField(world, compType, append(slices.Clone(path), nf.Index), nf, nf.Value(val))
			}
			imgui.TreePop()
		}

	case KindSlice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case KindMap:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		} else {
			imgui.Text(fmt.Sprintf("%s: <%s>", name, val.Type()))
		}
	}
}

// SetComponentField assigns value to the field of e's compType component
// reached by following the field indexes in path. Pointer fields along the
// path are followed. It reports whether the assignment happened: the component
// must exist, every step must be an exported struct field, and value must be
// convertible to the field's type.
func SetComponentField(world *ecs.World, e ecs.Entity, compType reflect.Type, path []int, value any) bool {
	component := world.Component(e, compType)
	if component == nil || len(path) == 0 {
		return false
	}

	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	for _, idx := range path {
		if val.Kind() == reflect.Ptr {
			if val.IsNil() {
				return false
			}
			val = val.Elem()
		}
		if val.Kind() != reflect.Struct || idx < 0 || idx >= val.NumField() {
			return false
		}
		val = val.Field(idx)
	}
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return false
		}
		val = val.Elem()
	}

	if !val.CanSet() {
		return false
	}

	v := reflect.ValueOf(value)
	if !v.IsValid() || !v.Type().ConvertibleTo(val.Type()) {
		return false
	}
	// Numeric conversions between kinds only; a string never becomes a
	// number or the reverse.
	if kindOf(v.Type()) != kindOf(val.Type()) && !(isNumeric(v.Type()) && isNumeric(val.Type())) {
		return false
	}

	val.Set(v.Convert(val.Type()))
	return true
}

func isNumeric(t reflect.Type) bool {
	switch kindOf(t) {
	case KindInt, KindUint, KindFloat:
		return true
	}
	return false
}
