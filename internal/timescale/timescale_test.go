package timescale

import "testing"

func newTestScale(t *testing.T) *TimeScale {
	t.Helper()
	ts, err := New(Range{Start: 0, End: 1000}, Range{Start: 0, End: 1000})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return ts
}

func TestLinearTimePixelRoundTrip(t *testing.T) {
	ts := newTestScale(t)
	const width = 800
	for _, px := range []float64{0, 123.5, 400, 799} {
		tm := ts.PixelToTime(px, width)
		got := ts.TimeToPixel(tm, width)
		if diff := got - px; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("round trip px=%v -> t=%v -> px=%v, want %v", px, tm, got, px)
		}
	}
}

func TestNewRejectsDegenerateRange(t *testing.T) {
	if _, err := New(Range{Start: 10, End: 10}, Range{Start: 0, End: 10}); err == nil {
		t.Fatalf("New() error = nil, want non-nil for zero-span full range")
	}
}

func TestSetVisibleRangeHonorsFixedEdges(t *testing.T) {
	ts := newTestScale(t)
	ts.SetEdgeConfig(EdgeConfig{FixLeftEdge: true, FixRightEdge: true})
	if err := ts.SetVisibleRange(-500, 200, 800); err != nil {
		t.Fatalf("SetVisibleRange() error = %v", err)
	}
	got := ts.VisibleRange()
	if got.Start != 0 {
		t.Fatalf("visible.Start = %v, want 0 (clamped to full start)", got.Start)
	}
}

func TestAppendRealtimeTracksRightEdgeWhenAtEdge(t *testing.T) {
	ts := newTestScale(t)
	ts.SetReferenceTimeStep(10)
	ts.SetRealtimeAppendConfig(RealtimeAppendConfig{RightEdgeToleranceBars: 1})
	// visible currently ends exactly at full.End (0 bars away), well within tolerance.
	ts.AppendRealtime(1100, 800)
	got := ts.VisibleRange()
	if got.End != 1100 {
		t.Fatalf("visible.End = %v, want 1100 (tracked the append)", got.End)
	}
	if got.Start != 100 {
		t.Fatalf("visible.Start = %v, want 100 (shifted by same delta)", got.Start)
	}
}

func TestAppendRealtimeDoesNotTrackWhenScrolledAway(t *testing.T) {
	ts := newTestScale(t)
	ts.SetReferenceTimeStep(10)
	ts.SetRealtimeAppendConfig(RealtimeAppendConfig{RightEdgeToleranceBars: 1})
	if err := ts.SetVisibleRange(0, 500, 800); err != nil {
		t.Fatalf("SetVisibleRange() error = %v", err)
	}
	ts.AppendRealtime(1100, 800)
	got := ts.VisibleRange()
	if got.Start != 0 || got.End != 500 {
		t.Fatalf("visible = [%v,%v], want unchanged [0,500] (scrolled away from edge)", got.Start, got.End)
	}
	if ts.FullRange().End != 1100 {
		t.Fatalf("full.End = %v, want 1100", ts.FullRange().End)
	}
}

func TestZoomVisibleAroundPixelPreservesAnchorIndex(t *testing.T) {
	ts := newTestScale(t)
	ts.SetReferenceTimeStep(10)
	const width = 800
	anchorPx := 400.0
	idxBefore, ok := ts.CoordinateToLogicalIndex(anchorPx, width)
	if !ok {
		t.Fatalf("CoordinateToLogicalIndex() ok = false, want true")
	}
	ts.ZoomVisibleAroundPixel(2, anchorPx, 0, width)
	idxAfter, ok := ts.CoordinateToLogicalIndex(anchorPx, width)
	if !ok {
		t.Fatalf("CoordinateToLogicalIndex() ok = false, want true")
	}
	if diff := idxAfter - idxBefore; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("logical index at anchor moved by %v, want ~0", diff)
	}
}

func TestZoomVisibleAroundPixelIdentityFactorIsNoop(t *testing.T) {
	ts := newTestScale(t)
	ts.SetReferenceTimeStep(10)
	before := ts.VisibleRange()
	ts.ZoomVisibleAroundPixel(1, 400, 0, 800)
	after := ts.VisibleRange()
	if diff := after.Start - before.Start; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("visible.Start moved by %v under factor=1, want ~0", diff)
	}
	if diff := after.End - before.End; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("visible.End moved by %v under factor=1, want ~0", diff)
	}
}

func TestFitToMixedDataPadsAndResetsVisible(t *testing.T) {
	ts := newTestScale(t)
	ok := ts.FitToMixedData([]float64{100, 200, 300}, FitTuning{PaddingRatio: 0.1}, 800)
	if !ok {
		t.Fatalf("FitToMixedData() ok = false, want true")
	}
	full := ts.FullRange()
	if full.Start >= 100 || full.End <= 300 {
		t.Fatalf("full range = [%v,%v], want padding beyond [100,300]", full.Start, full.End)
	}
	if ts.VisibleRange() != full {
		t.Fatalf("visible range %v != full range %v after fit", ts.VisibleRange(), full)
	}
}

func TestNearestFilledSlotPicksClosest(t *testing.T) {
	ts := newTestScale(t)
	ts.SetReferenceTimeStep(10)
	idx, ok := ts.NearestFilledSlot(400, 800, []float64{10, 50, 95, 200})
	if !ok {
		t.Fatalf("NearestFilledSlot() ok = false, want true")
	}
	if idx != 50 {
		t.Fatalf("NearestFilledSlot() = %v, want 50", idx)
	}
}
