package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/grove/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

func (ci *ComponentInspectorComponent) Render(world *ecs.World, sel *Selection) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if !sel.HasEntity {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	entity := sel.Entity
	if !world.IsAlive(entity) {
		imgui.Text(fmt.Sprintf("%v no longer exists", entity))
		if imgui.Button("Clear") {
			sel.Clear()
		}
		imgui.End()
		return
	}

	imgui.Text(entity.String())
	imgui.SameLine()
	if imgui.Button("Free") {
		world.Free(entity)
		sel.Clear()
		imgui.End()
		return
	}
	imgui.Separator()

	for _, compType := range world.ComponentTypes(entity) {
		component, ok := world.Component(entity, compType)
		if !ok {
			continue
		}

		if imgui.TreeNodeStr(compType.String()) {
			ci.renderComponent(world, entity, compType, reflect.ValueOf(component))
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *ComponentInspectorComponent) renderComponent(world *ecs.World, entity ecs.Entity, compType reflect.Type, val reflect.Value) {
	if val.Kind() != reflect.Struct {
		ci.renderField(world, entity, compType, compType.Name(), val, nil)
		return
	}

	for _, field := range globalReflectionCache.GetFields(compType) {
		ci.renderStructField(world, entity, compType, val, field, nil)
	}
}

func (ci *ComponentInspectorComponent) renderStructField(world *ecs.World, entity ecs.Entity, compType reflect.Type, parent reflect.Value, field FieldInfo, path []int) {
	fieldPath := append(append([]int(nil), path...), field.Index)
	fieldVal := parent.Field(field.Index)
	if field.IsPointer {
		if fieldVal.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", field.Name))
			return
		}
		// Pointer fields are read-only.
		imgui.Text(fmt.Sprintf("%s: %v", field.Name, fieldVal.Elem().Interface()))
		return
	}
	ci.renderField(world, entity, compType, field.Name, fieldVal, fieldPath)
}

// renderField draws one value. A nil path marks the value as the whole
// component rather than a field of it.
func (ci *ComponentInspectorComponent) renderField(world *ecs.World, entity ecs.Entity, compType reflect.Type, name string, val reflect.Value, path []int) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	id := fmt.Sprintf("##%s%v", name, path)

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) {
			setComponentField(world, entity, compType, path, reflect.ValueOf(int64(v)))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) && v >= 0 {
			setComponentField(world, entity, compType, path, reflect.ValueOf(uint64(v)))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) {
			setComponentField(world, entity, compType, path, reflect.ValueOf(float64(v)))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name+id, &v) {
			setComponentField(world, entity, compType, path, reflect.ValueOf(v))
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) {
			setComponentField(world, entity, compType, path, reflect.ValueOf(v))
		}

	case reflect.Array:
		if imgui.TreeNodeStr(fmt.Sprintf("%s [%d]", name, val.Len())) {
			for i := 0; i < val.Len(); i++ {
				imgui.Text(fmt.Sprintf("[%d] %v", i, val.Index(i).Interface()))
			}
			imgui.TreePop()
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nf := range globalReflectionCache.GetFields(val.Type()) {
				ci.renderStructField(world, entity, compType, val, nf, path)
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		} else {
			imgui.Text(fmt.Sprintf("%s: <%s>", name, strings.ToLower(val.Kind().String())))
		}
	}
}

// setComponentField writes value into the field at path of the component of
// type compType on entity, converting it to the field's type. A nil path
// replaces the whole component.
func setComponentField(world *ecs.World, entity ecs.Entity, compType reflect.Type, path []int, value reflect.Value) bool {
	set := false
	world.ModifyComponent(entity, compType, func(ptr any) {
		target := reflect.ValueOf(ptr).Elem()
		if path != nil {
			target = target.FieldByIndex(path)
		}
		if !target.CanSet() || !value.CanConvert(target.Type()) {
			return
		}
		target.Set(value.Convert(target.Type()))
		set = true
	})
	return set
}
