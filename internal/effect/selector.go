package effect

import (
	"sort"

	"github.com/coreman2200/funtimes-trilight/internal/geometry"
)

// minSlicePanels is how many stacked panels a slice needs to host all
// three phases on distinct panels.
const minSlicePanels = 3

// maxSliceDistance exceeds any realistic slice-index distance, so an
// unbeaten best distance means no slice qualified.
const maxSliceDistance = 31

// SelectSlots picks the three phase panels from the most central
// vertical slice that stacks at least three panels, falling back to the
// middle slice regardless of its size. Within the chosen slice, panels
// are taken topmost first (descending centroid Y). Pure with respect to
// the layout: the same oriented layout always yields the same slots.
//
// The layout must contain at least one panel; that precondition belongs
// to the layout provider and is not validated here.
func SelectSlots(l *geometry.Layout, slices []geometry.FrameSlice) [phaseCount]Slot {
	// Integer truncation, on purpose: for even slice counts this picks
	// the slice just left of the true center.
	middle := (len(slices) - 1) / 2

	best := -1
	bestDistance := maxSliceDistance
	for i, fs := range slices {
		d := middle - i
		if d < 0 {
			d = -d
		}
		if len(fs.PanelIDs) >= minSlicePanels && d < bestDistance {
			bestDistance = d
			best = i
		}
	}
	if best == -1 {
		best = middle
	}

	ids := append([]int(nil), slices[best].PanelIDs...)
	sort.SliceStable(ids, func(i, j int) bool {
		return l.CentroidY(ids[i]) > l.CentroidY(ids[j])
	})

	switch {
	case len(ids) >= minSlicePanels:
		// Three colors on three different panels.
		return [phaseCount]Slot{
			{PanelID: ids[0], Valid: true},
			{PanelID: ids[1], Valid: true},
			{PanelID: ids[2], Valid: true},
		}
	case len(ids) == 2:
		// Two panels alternate between red and green; yellow stays
		// unassigned.
		return [phaseCount]Slot{
			{PanelID: ids[0], Valid: true},
			{},
			{PanelID: ids[1], Valid: true},
		}
	default:
		// One panel cycles through all three colors.
		one := Slot{PanelID: ids[0], Valid: true}
		return [phaseCount]Slot{one, one, one}
	}
}
