package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/basis/ecs"
)

// StorageInfo describes one component column.
type StorageInfo struct {
	Type  string
	Count int
	Slots int
}

// Occupancy is the fraction of allocated slots holding a value.
func (s StorageInfo) Occupancy() float64 {
	if s.Slots == 0 {
		return 0
	}
	return float64(s.Count) / float64(s.Slots)
}

type StorageViewerCache struct {
	storages  []StorageInfo
	signature worldSignature
}

func NewStorageViewerComponent() StorageViewerComponent {
	return StorageViewerComponent{
		cache:         &StorageViewerCache{},
		sortColumn:    0,
		sortAscending: true,
	}
}

// Render draws the storage table. Selecting a row returns the type name so the
// caller can filter the entity browser by it.
func (sv *StorageViewerComponent) Render(world *ecs.World) (selected string, changed bool) {
	if !imgui.BeginV("Storage Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return sv.selectedType, false
	}

	sv.rebuildCacheIfNeeded(world)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable
	if imgui.BeginTableV("StorageTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("Values")
		imgui.TableSetupColumn("Slots")
		imgui.TableSetupColumn("Occupancy")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.sortColumn = int(spec.ColumnIndex())
			sv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortStorages(sv.cache.storages, sv.sortColumn, sv.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, info := range sv.cache.storages {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := sv.selectedType == info.Type
			if imgui.SelectableBoolV(info.Type, isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				if isSelected {
					sv.selectedType = ""
				} else {
					sv.selectedType = info.Type
				}
				changed = true
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", info.Count))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", info.Slots))

			imgui.TableNextColumn()
			sv.renderOccupancyBar(info.Occupancy())
		}

		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Total: %d component types", len(sv.cache.storages)))

	imgui.End()
	return sv.selectedType, changed
}

func (sv *StorageViewerComponent) renderOccupancyBar(fraction float64) {
	const barWidth, barHeight = 80, 12

	drawList := imgui.WindowDrawList()
	pos := imgui.CursorScreenPos()
	drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+barHeight),
		imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.2, 0.2, 1)))
	drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth*float32(fraction), pos.Y+barHeight),
		imgui.ColorU32Vec4(imgui.NewVec4(0.3, 0.7, 0.3, 1)))

	imgui.Text(fmt.Sprintf("%.0f%%", fraction*100))
}

func (sv *StorageViewerComponent) rebuildCacheIfNeeded(world *ecs.World) {
	sig := signatureOf(world)
	if sv.cache.storages != nil && sv.cache.signature == sig {
		return
	}
	sv.cache.signature = sig
	sv.cache.storages = collectStorages(world)
	sortStorages(sv.cache.storages, sv.sortColumn, sv.sortAscending)
}

func collectStorages(world *ecs.World) []StorageInfo {
	stats := world.CollectStats()
	storages := make([]StorageInfo, len(stats.ComponentBreakdown))
	for i, c := range stats.ComponentBreakdown {
		storages[i] = StorageInfo{Type: c.Type, Count: c.Count, Slots: c.Slots}
	}
	return storages
}

func sortStorages(storages []StorageInfo, column int, ascending bool) {
	less := func(a, b StorageInfo) bool {
		switch column {
		case 1:
			return a.Count < b.Count
		case 2:
			return a.Slots < b.Slots
		case 3:
			return a.Occupancy() < b.Occupancy()
		default:
			return a.Type < b.Type
		}
	}

	sort.SliceStable(storages, func(i, j int) bool {
		if ascending {
			return less(storages[i], storages[j])
		}
		return less(storages[j], storages[i])
	})
}
