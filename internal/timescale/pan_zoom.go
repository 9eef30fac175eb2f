package timescale

import "math"

// PanVisibleByDelta shifts both ends of the visible range by dt (a time
// delta), then reapplies zoom-limit + edge constraints.
func (ts *TimeScale) PanVisibleByDelta(dt, width float64) {
	ts.visible = Range{Start: ts.visible.Start + dt, End: ts.visible.End + dt}
	ts.applyConstraints(width, false)
}

// PanVisibleByPixels shifts the visible range by a pixel delta. When an
// index coordinate space exists the shift is computed in bar units (so a
// drag feels uniform across zoom levels); otherwise it falls back to linear
// time-per-pixel.
func (ts *TimeScale) PanVisibleByPixels(dpx, width float64) {
	if sp, ok := ts.deriveIndexSpace(width); ok {
		dt := -dpx / sp.barSpacingPx * ts.referenceStep
		ts.PanVisibleByDelta(dt, width)
		return
	}
	span := ts.visible.span()
	dt := -dpx / width * span
	ts.PanVisibleByDelta(dt, width)
}

// ZoomVisibleAroundPixel rescales the visible span by 1/factor (factor>1
// zooms in) while holding the content under anchorPx fixed, then reapplies
// zoom-limit + edge constraints. minSpan is an additional caller-supplied
// floor on the visible span (e.g. a data-resolution guard), applied before
// the configured zoom limit.
func (ts *TimeScale) ZoomVisibleAroundPixel(factor, anchorPx, minSpan, width float64) {
	if factor <= 0 || !isFinite(factor) {
		return
	}
	if sp, ok := ts.deriveIndexSpace(width); ok {
		ts.zoomAroundPixelIndexed(factor, anchorPx, minSpan, width, sp)
	} else {
		ts.zoomAroundPixelLinear(factor, anchorPx, minSpan, width)
	}
	ts.applyConstraints(width, false)
}

func (ts *TimeScale) zoomAroundPixelIndexed(factor, anchorPx, minSpan, width float64, sp indexSpace) {
	currentSpan := ts.visible.span()
	targetSpan := currentSpan / factor
	if minSpan > 0 && targetSpan < minSpan {
		targetSpan = minSpan
	}
	effectiveFactor := currentSpan / targetSpan
	targetSpacing := sp.barSpacingPx * effectiveFactor

	idxAtAnchor := sp.baseIndex + sp.rightOffsetBars - (width-1-anchorPx)/sp.barSpacingPx
	newRightOffset := idxAtAnchor - sp.baseIndex + (width-1-anchorPx)/targetSpacing

	visibleEnd := ts.full.End + newRightOffset*ts.referenceStep
	newSpan := width * ts.referenceStep / targetSpacing
	ts.visible = Range{Start: visibleEnd - newSpan, End: visibleEnd}
}

func (ts *TimeScale) zoomAroundPixelLinear(factor, anchorPx, minSpan, width float64) {
	anchorT := ts.PixelToTime(anchorPx, width)
	currentSpan := ts.visible.span()
	ratio := (anchorT - ts.visible.Start) / currentSpan
	targetSpan := currentSpan / factor
	if minSpan > 0 && targetSpan < minSpan {
		targetSpan = minSpan
	}
	newStart := anchorT - ratio*targetSpan
	ts.visible = Range{Start: newStart, End: newStart + targetSpan}
}

// WheelZoom converts a wheel deltaY and the configured step ratio into a
// zoom factor and applies it, honoring right_bar_stays_on_scroll by pinning
// the anchor to the right edge of the viewport instead of the cursor.
func (ts *TimeScale) WheelZoom(deltaY, anchorPx, minSpan, width float64) {
	ratio := ts.scrollZoom.WheelStepRatio
	if ratio <= 0 {
		ratio = 0.1
	}
	factor := math.Pow(1+ratio, -deltaY/120)
	effectiveAnchor := anchorPx
	if ts.scrollZoom.RightBarStaysOnScroll {
		effectiveAnchor = width - 1
	}
	ts.ZoomVisibleAroundPixel(factor, effectiveAnchor, minSpan, width)
}

// PinchZoom applies an explicit zoom factor (as opposed to WheelZoom's
// deltaY-derived factor), anchored at the pinch midpoint.
func (ts *TimeScale) PinchZoom(factor, anchorPx, minSpan, width float64) {
	ts.ZoomVisibleAroundPixel(factor, anchorPx, minSpan, width)
}

// FitToMixedData sets the full range to the padded extent of the given time
// samples (candles first, then points, as both contribute to the same time
// axis) and resets the visible range to match, honoring navigation.
func (ts *TimeScale) FitToMixedData(times []float64, tuning FitTuning, width float64) bool {
	lo, hi, ok := extent(times)
	if !ok {
		return false
	}
	span := hi - lo
	if tuning.MinSpanSec > 0 && span < tuning.MinSpanSec {
		mid := (hi + lo) / 2
		lo, hi = mid-tuning.MinSpanSec/2, mid+tuning.MinSpanSec/2
		span = hi - lo
	}
	pad := span * tuning.PaddingRatio
	ts.full = Range{Start: lo - pad, End: hi + pad}
	ts.visible = ts.full
	ts.applyConstraints(width, true)
	return true
}

func extent(values []float64) (lo, hi float64, ok bool) {
	first := true
	for _, v := range values {
		if !isFinite(v) {
			continue
		}
		if first {
			lo, hi = v, v
			first = false
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, !first
}

// AppendRealtime extends the full range's end to newTime (a no-op if newTime
// does not advance it) and, when the visible right edge was tracking the
// navigation right edge within tolerance, shifts the visible range by the
// same delta so the chart keeps scrolling with incoming data (spec §4.1,
// realtime append).
func (ts *TimeScale) AppendRealtime(newTime, width float64) {
	if !isFinite(newTime) || newTime <= ts.full.End {
		return
	}
	oldFullEnd := ts.full.End
	navRightEdge := oldFullEnd
	if ts.navigation.Enabled {
		navRightEdge = oldFullEnd + ts.navigation.TargetRightOffsetBars*ts.referenceStep
	}
	tolerance := ts.realtime.RightEdgeToleranceBars * ts.referenceStep
	wasTracking := tolerance > 0 && math.Abs(ts.visible.End-navRightEdge) <= tolerance

	delta := newTime - oldFullEnd
	ts.full.End = newTime
	if wasTracking {
		ts.visible.Start += delta
		ts.visible.End += delta
	}
	ts.applyConstraints(width, false)
}
