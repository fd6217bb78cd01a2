package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/grove/ecs"
	"github.com/plus3/grove/scene"
)

func NewHierarchyViewerComponent() HierarchyViewerComponent {
	return HierarchyViewerComponent{}
}

// Render draws the scene tree from every root Node. The filter applies to
// root labels.
func (hv *HierarchyViewerComponent) Render(world *ecs.World, sel *Selection) {
	if !imgui.BeginV("Hierarchy", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if !ecs.IsRegistered[scene.Node](world) {
		imgui.Text("scene.Node is not registered")
		return
	}

	imgui.InputTextWithHint("##hierarchy-search", "Filter roots...", &hv.filterText, imgui.InputTextFlagsNone, nil)

	// Deletion frees entities, so it runs once the fetches below are released.
	var doomed ecs.Entity
	deleting := false
	defer func() {
		if deleting {
			scene.Delete(world, doomed)
			sel.Clear()
		}
	}()

	nodes := ecs.Read[scene.Node](world)
	defer nodes.Release()

	var names scene.NameReader
	if ecs.IsRegistered[scene.Name](world) {
		fetch := ecs.Read[scene.Name](world)
		defer fetch.Release()
		names = fetch
	}

	view := world.ViewTypes(reflect.TypeFor[scene.Node]())

	if names != nil {
		imgui.InputTextWithHint("##hierarchy-find", "root/child/...", &hv.findPath, imgui.InputTextFlagsNone, nil)
		imgui.SameLine()
		if imgui.Button("Find") {
			e, ok := scene.Find(view, nodes, names, hv.findPath)
			hv.findFailed = !ok
			if ok {
				sel.Select(e)
			}
		}
		if hv.findFailed {
			imgui.Text("No entity at that path")
		}
	}

	if sel.HasEntity && nodes.Has(sel.Entity) {
		if imgui.Button("Delete subtree") {
			doomed, deleting = sel.Entity, true
		}
	}
	imgui.Separator()
	for root := range scene.Roots(view, nodes) {
		label := nodeLabel(root, names)
		if hv.filterText != "" && !strings.Contains(strings.ToLower(label), strings.ToLower(hv.filterText)) {
			continue
		}
		hv.renderNode(root, label, nodes, names, sel)
	}
}

func (hv *HierarchyViewerComponent) renderNode(e ecs.Entity, label string, nodes scene.NodeReader, names scene.NameReader, sel *Selection) {
	flags := imgui.TreeNodeFlagsOpenOnArrow | imgui.TreeNodeFlagsSpanAvailWidth
	if scene.IsLeaf(nodes, e) {
		flags |= imgui.TreeNodeFlagsLeaf
	}
	if sel.HasEntity && sel.Entity == e {
		flags |= imgui.TreeNodeFlagsSelected
	}

	open := imgui.TreeNodeExStrV(label, flags)
	if imgui.IsItemClicked() {
		sel.Select(e)
	}
	if !open {
		return
	}
	for child := range scene.Children(nodes, e) {
		hv.renderNode(child, nodeLabel(child, names), nodes, names, sel)
	}
	imgui.TreePop()
}

// nodeLabel names an entity by its scene.Name when it has one. The suffix
// keeps ImGui ids unique across entities sharing a name.
func nodeLabel(e ecs.Entity, names scene.NameReader) string {
	if names != nil {
		if name, ok := names.Get(e); ok && name != "" {
			return fmt.Sprintf("%s##%d", name, uint64(e))
		}
	}
	return fmt.Sprintf("%v##%d", e, uint64(e))
}
