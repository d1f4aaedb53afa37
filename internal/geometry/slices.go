package geometry

import "sort"

// DefaultSliceTolerance is the horizontal band width, in millimeters,
// within which panel centroids count as the same vertical slice. Half
// the column pitch of a standard triangle grid.
const DefaultSliceTolerance = SideMM / 4

// FrameSlice is one vertical band of the oriented layout: the ids of
// every panel whose centroid X falls within tolerance of the band
// reference.
type FrameSlice struct {
	X        float64
	PanelIDs []int
}

// SliceSet owns the slice data derived from a layout. It is built once
// at startup and must be released exactly once on the shutdown path.
type SliceSet struct {
	slices []FrameSlice
}

// Slice partitions the layout's panels into vertical slices ordered
// left to right. The layout's orientation must already have been
// applied (Rotate); slicing reads centroids as-is. A tolerance <= 0
// selects DefaultSliceTolerance.
func Slice(l *Layout, tolerance float64) *SliceSet {
	if tolerance <= 0 {
		tolerance = DefaultSliceTolerance
	}

	type entry struct {
		id int
		x  float64
	}
	entries := make([]entry, 0, len(l.Panels))
	for _, p := range l.Panels {
		entries = append(entries, entry{id: p.ID, x: p.Shape.Centroid().X})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].x < entries[j].x })

	set := &SliceSet{}
	for _, e := range entries {
		n := len(set.slices)
		if n == 0 || e.x-set.slices[n-1].X > tolerance {
			set.slices = append(set.slices, FrameSlice{X: e.x})
			n++
		}
		set.slices[n-1].PanelIDs = append(set.slices[n-1].PanelIDs, e.id)
	}
	return set
}

// Slices exposes the bands, left to right. Callers must not retain the
// returned data past Release.
func (s *SliceSet) Slices() []FrameSlice {
	return s.slices
}

// PanelCount is the total number of panel ids across all slices.
func (s *SliceSet) PanelCount() int {
	n := 0
	for _, fs := range s.slices {
		n += len(fs.PanelIDs)
	}
	return n
}

// Release drops the slice data. Safe to call more than once; only the
// first call does anything.
func (s *SliceSet) Release() {
	s.slices = nil
}
