package debugui

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/grove/ecs"
)

type QueryDebuggerCache struct {
	componentTypes []reflect.Type
	lastTypeCount  int
}

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		selectedComponentTypes: make(map[string]bool),
		cache: &QueryDebuggerCache{
			lastTypeCount: -1,
		},
	}
}

// Render lets the user pick component types and shows the entities a view
// over them would yield.
func (qd *QueryDebuggerComponent) Render(world *ecs.World, sel *Selection) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	qd.rebuildCacheIfNeeded(world)

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selectedComponentTypes = make(map[string]bool)
	}

	for _, compType := range qd.cache.componentTypes {
		name := compType.String()
		selected := qd.selectedComponentTypes[name]
		if imgui.Checkbox(name, &selected) {
			if selected {
				qd.selectedComponentTypes[name] = true
			} else {
				delete(qd.selectedComponentTypes, name)
			}
		}
	}

	imgui.Separator()

	selectedTypes := qd.selectedTypes()
	if len(selectedTypes) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matching := qd.matchingEntities(world)
	imgui.Text(fmt.Sprintf("Query: %s", typeList(selectedTypes)))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matching)))

	if imgui.TreeNodeStr("Entity Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryEntityTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Entity")
			imgui.TableSetupColumn("All Components")
			imgui.TableHeadersRow()

			for _, e := range matching {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				if imgui.SelectableBool(e.String()) {
					sel.Select(e)
				}

				imgui.TableSetColumnIndex(1)
				imgui.Text(typeList(world.ComponentTypes(e)))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (qd *QueryDebuggerComponent) rebuildCacheIfNeeded(world *ecs.World) {
	types := world.Types()
	if qd.cache.lastTypeCount == len(types) {
		return
	}
	qd.cache.lastTypeCount = len(types)
	qd.cache.componentTypes = types
	sort.Slice(qd.cache.componentTypes, func(i, j int) bool {
		return qd.cache.componentTypes[i].String() < qd.cache.componentTypes[j].String()
	})
}

func (qd *QueryDebuggerComponent) selectedTypes() []reflect.Type {
	selected := make([]reflect.Type, 0, len(qd.selectedComponentTypes))
	for _, t := range qd.cache.componentTypes {
		if qd.selectedComponentTypes[t.String()] {
			selected = append(selected, t)
		}
	}
	return selected
}

func (qd *QueryDebuggerComponent) matchingEntities(world *ecs.World) []ecs.Entity {
	var matching []ecs.Entity
	for e := range world.ViewTypes(qd.selectedTypes()...).Iter() {
		matching = append(matching, e)
	}
	return matching
}

func typeList(types []reflect.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
