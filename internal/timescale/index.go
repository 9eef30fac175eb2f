package timescale

import "sort"

// indexSpace bundles the lazily-derived logical-index coordinate space
// (spec §4.1.1): it only exists once a reference time step is known.
type indexSpace struct {
	baseIndex      float64
	rightOffsetBars float64
	barSpacingPx   float64
}

// deriveIndexSpace computes the index coordinate space for the current
// visible/full ranges and a viewport width. ok is false when no reference
// time step has been set yet (fewer than two data samples), in which case
// callers fall back to linear time math.
func (ts *TimeScale) deriveIndexSpace(width float64) (indexSpace, bool) {
	step := ts.referenceStep
	if step <= 0 || width <= 0 {
		return indexSpace{}, false
	}
	span := ts.visible.span()
	if span <= 0 {
		return indexSpace{}, false
	}
	return indexSpace{
		baseIndex:       ts.full.End / step,
		rightOffsetBars: (ts.visible.End - ts.full.End) / step,
		barSpacingPx:    width * step / span,
	}, true
}

// CoordinateToLogicalIndex converts a pixel x to a fractional logical bar
// index, or (0, false) when no index coordinate space is available.
func (ts *TimeScale) CoordinateToLogicalIndex(px, width float64) (float64, bool) {
	sp, ok := ts.deriveIndexSpace(width)
	if !ok {
		return 0, false
	}
	return sp.baseIndex + sp.rightOffsetBars - (width-1-px)/sp.barSpacingPx, true
}

// IndexToCoordinate maps a logical index back to a pixel x. It is not an
// exact inverse of CoordinateToLogicalIndex: the +0.5 term places the result
// half a bar spacing left of the pixel that CoordinateToLogicalIndex maps to
// idx.
func (ts *TimeScale) IndexToCoordinate(idx, width float64) (float64, bool) {
	sp, ok := ts.deriveIndexSpace(width)
	if !ok {
		return 0, false
	}
	return width - (sp.baseIndex+sp.rightOffsetBars-idx+0.5)*sp.barSpacingPx - 1, true
}

// NearestFilledSlot returns the member of sortedIndices (ascending) closest
// to the logical index implied by px, found by binary search in O(log n) as
// required by spec §4.3.1, breaking ties toward the smaller index. It
// reports false when there is no index coordinate space or no candidates.
func (ts *TimeScale) NearestFilledSlot(px, width float64, sortedIndices []float64) (float64, bool) {
	if len(sortedIndices) == 0 {
		return 0, false
	}
	idx, ok := ts.CoordinateToLogicalIndex(px, width)
	if !ok {
		return 0, false
	}
	i := sort.Search(len(sortedIndices), func(i int) bool { return sortedIndices[i] >= idx })
	switch {
	case i == 0:
		return sortedIndices[0], true
	case i == len(sortedIndices):
		return sortedIndices[len(sortedIndices)-1], true
	default:
		before, after := sortedIndices[i-1], sortedIndices[i]
		if absf(idx-before) <= absf(after-idx) {
			return before, true
		}
		return after, true
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
