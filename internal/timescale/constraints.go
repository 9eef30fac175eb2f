package timescale

// applyConstraints runs the three-stage constraint chain in order (spec
// §4.1.2): navigation (optional re-synthesis), zoom limit, edge. Each stage
// only rewrites ts.visible; it never touches ts.full.
func (ts *TimeScale) applyConstraints(width float64, applyNavigation bool) {
	if applyNavigation && ts.navigation.Enabled {
		ts.applyNavigationTarget(width)
	}
	ts.applyZoomLimit(width)
	ts.applyEdge()
}

// applyNavigationTarget rewrites the visible range so that it matches the
// navigation config's target bar spacing and right offset, when an index
// coordinate space is available; it is a no-op for linear-only scales since
// navigation is expressed in bar units.
func (ts *TimeScale) applyNavigationTarget(width float64) {
	step := ts.referenceStep
	if step <= 0 || width <= 0 || ts.navigation.TargetBarSpacingPx <= 0 {
		return
	}
	span := width * step / ts.navigation.TargetBarSpacingPx
	end := ts.full.End + ts.navigation.TargetRightOffsetBars*step
	ts.visible = Range{Start: end - span, End: end}
}

// applyZoomLimit clamps bar_spacing_px into [min,max] by rescaling the
// visible span around its own center, when an index coordinate space is
// available; with no reference step it is a no-op (spec leaves linear-only
// zoom limiting to the caller-supplied min_span on each zoom call).
func (ts *TimeScale) applyZoomLimit(width float64) {
	sp, ok := ts.deriveIndexSpace(width)
	if !ok {
		return
	}
	spacing := sp.barSpacingPx
	clamped := spacing
	if ts.zoomLimit.MinBarSpacingPx > 0 && clamped < ts.zoomLimit.MinBarSpacingPx {
		clamped = ts.zoomLimit.MinBarSpacingPx
	}
	if ts.zoomLimit.MaxBarSpacingPx > 0 && clamped > ts.zoomLimit.MaxBarSpacingPx {
		clamped = ts.zoomLimit.MaxBarSpacingPx
	}
	if clamped == spacing {
		return
	}
	center := (ts.visible.Start + ts.visible.End) / 2
	newSpan := width * ts.referenceStep / clamped
	ts.visible = Range{Start: center - newSpan/2, End: center + newSpan/2}
}

// applyEdge clamps the visible range so it does not cross a fixed full-range
// edge, preserving span.
func (ts *TimeScale) applyEdge() {
	span := ts.visible.span()
	if ts.edge.FixLeftEdge && ts.visible.Start < ts.full.Start {
		ts.visible = Range{Start: ts.full.Start, End: ts.full.Start + span}
	}
	if ts.edge.FixRightEdge && ts.visible.End > ts.full.End {
		ts.visible = Range{Start: ts.full.End - span, End: ts.full.End}
	}
}
