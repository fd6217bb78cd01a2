package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/grove/ecs"
)

type ArenaViewerCache struct {
	arenas        []ecs.ArenaStats
	sortColumn    int
	sortAscending bool
}

func NewArenaViewerComponent() ArenaViewerComponent {
	return ArenaViewerComponent{
		cache: &ArenaViewerCache{
			sortColumn:    3,
			sortAscending: false,
		},
	}
}

// Render lists every component arena. Clicking a row filters the entity
// browser by that type.
func (av *ArenaViewerComponent) Render(world *ecs.World, sel *Selection) {
	if !imgui.BeginV("Arena Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	av.cache.arenas = world.Stats().Arenas
	av.sortArenas()

	maxCount := 0
	for _, arena := range av.cache.arenas {
		maxCount = max(maxCount, arena.Count)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ArenaTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("Backend")
		imgui.TableSetupColumn("Borrow")
		imgui.TableSetupColumn("Count")
		imgui.TableSetupColumn("Ordinal")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			av.cache.sortColumn = int(spec.ColumnIndex())
			av.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			av.sortArenas()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, arena := range av.cache.arenas {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := sel.Filter != nil && sel.Filter.String() == arena.Type
			if imgui.SelectableBoolV(arena.Type, isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				if t, ok := world.TypeByName(arena.Type); ok {
					sel.Filter = t
				}
			}

			imgui.TableNextColumn()
			imgui.Text(arena.Backend.String())

			imgui.TableNextColumn()
			imgui.Text(borrowState(arena))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arena.Count))

			if maxCount > 0 {
				barWidth := float32(arena.Count) / float32(maxCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arena.Ordinal))
		}

		imgui.EndTable()
	}

	imgui.End()
}

func borrowState(arena ecs.ArenaStats) string {
	switch {
	case arena.WriteLocked:
		return "write"
	case arena.Readers > 0:
		return fmt.Sprintf("read x%d", arena.Readers)
	default:
		return "free"
	}
}

func (av *ArenaViewerComponent) sortArenas() {
	sort.SliceStable(av.cache.arenas, func(i, j int) bool {
		a, b := av.cache.arenas[i], av.cache.arenas[j]
		var less bool

		switch av.cache.sortColumn {
		case 0:
			less = a.Type < b.Type
		case 1:
			less = a.Backend < b.Backend
		case 2:
			less = a.Readers < b.Readers
		case 4:
			less = a.Ordinal < b.Ordinal
		default:
			less = a.Count < b.Count
		}

		if !av.cache.sortAscending {
			return !less
		}
		return less
	})
}
