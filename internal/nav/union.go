package nav

import (
	"slices"
	"sort"
)

// MergeIntervals collapses overlapping or touching intervals into the minimal
// disjoint set covering the same extent. Touching endpoints merge, so
// [0,1] and [1,2] become [0,2]. The input slice is not modified.
func MergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := append([]Interval(nil), intervals...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	merged := make([]Interval, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		if next.Start <= current.End {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)
	return merged
}

// UnionRectangles computes the minimal set of disjoint regions whose union
// equals the union of the input footprints. It sweeps the distinct x
// coordinates left to right; within each vertical slab the z extents of every
// footprint spanning the slab are merged into disjoint intervals, and each
// merged interval becomes one region.
//
// Regions come out ordered by slab x and then z, but that ordering is an
// artifact; callers must only rely on the covered area.
func UnionRectangles(footprints []Footprint) ([]Region, error) {
	for _, fp := range footprints {
		if err := fp.Validate(); err != nil {
			return nil, err
		}
	}
	if len(footprints) == 0 {
		return nil, nil
	}

	xs := make([]float64, 0, 2*len(footprints))
	for _, fp := range footprints {
		xs = append(xs, fp.MinX, fp.MaxX)
	}
	slices.Sort(xs)
	xs = slices.Compact(xs)

	var regions []Region
	spans := make([]Interval, 0, len(footprints))

	for i := 0; i+1 < len(xs); i++ {
		xStart, xEnd := xs[i], xs[i+1]

		spans = spans[:0]
		for _, fp := range footprints {
			if fp.MinX <= xStart && fp.MaxX >= xEnd {
				spans = append(spans, Interval{Start: fp.MinZ, End: fp.MaxZ})
			}
		}
		if len(spans) == 0 {
			continue
		}

		for _, span := range MergeIntervals(spans) {
			regions = append(regions, Region{
				MinX: xStart,
				MinZ: span.Start,
				MaxX: xEnd,
				MaxZ: span.End,
			})
		}
	}

	return regions, nil
}
