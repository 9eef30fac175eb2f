package axislayout

import (
	"testing"

	"github.com/luhouxiang/chartcore/internal/pricescale"
	"github.com/luhouxiang/chartcore/internal/primitives"
)

func TestResolvePlotAreaWidensOnAdaptiveOverflow(t *testing.T) {
	vp := primitives.Viewport{Width: 800, Height: 400}
	labels := []string{"1234567.89"} // a wide label
	layout := ResolvePlotArea(vp, 40, 30, labels, "1234567.89", 12, 1)
	if !layout.Adaptive {
		t.Fatalf("Adaptive = false, want true for an overflowing label")
	}
	if layout.PriceAxisWidth <= 40 {
		t.Fatalf("PriceAxisWidth = %v, want > 40 after widening", layout.PriceAxisWidth)
	}
	if layout.PlotRight != vp.Width-layout.PriceAxisWidth {
		t.Fatalf("PlotRight = %v, want %v", layout.PlotRight, vp.Width-layout.PriceAxisWidth)
	}
}

func TestResolvePlotAreaKeepsRequestedWidthWhenSufficient(t *testing.T) {
	vp := primitives.Viewport{Width: 800, Height: 400}
	layout := ResolvePlotArea(vp, 200, 30, []string{"1"}, "1", 12, 1)
	if layout.Adaptive {
		t.Fatalf("Adaptive = true, want false when requested width already covers the labels")
	}
	if layout.PriceAxisWidth != 200 {
		t.Fatalf("PriceAxisWidth = %v, want 200", layout.PriceAxisWidth)
	}
}

func TestMinSpacingFilterAlwaysKeepsLastTick(t *testing.T) {
	ticks := []float64{0, 1, 2, 3, 100}
	project := func(v float64) float64 { return v * 10 } // 10px per unit
	out := MinSpacingFilter(ticks, project, 15)
	if out[len(out)-1] != 100 {
		t.Fatalf("last kept tick = %v, want 100", out[len(out)-1])
	}
}

func TestExcludeNearLastPriceDropsCloseTicks(t *testing.T) {
	ticks := []float64{10, 50, 90}
	project := func(v float64) float64 { return v }
	out := ExcludeNearLastPrice(ticks, project, 52, 5)
	for _, v := range out {
		if v == 50 {
			t.Fatalf("tick 50 survived exclusion near last price 52 within 5px")
		}
	}
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
}

func TestDensityScaleIncreasesWithZoomIn(t *testing.T) {
	if DensityScale(4) <= DensityScale(1) {
		t.Fatalf("DensityScale(4) <= DensityScale(1), want strictly increasing with zoom ratio")
	}
}

func TestNiceTimeStepRoundsUpToCandidate(t *testing.T) {
	if step := NiceTimeStep(40); step != 60 {
		t.Fatalf("NiceTimeStep(40) = %v, want 60", step)
	}
}

func TestClassifyMajorTickDetectsMidnightUTC(t *testing.T) {
	// 1970-01-02T00:00:00Z is exactly one day of seconds.
	isMajor, err := ClassifyMajorTick(86400, "UTC", 0, false)
	if err != nil {
		t.Fatalf("ClassifyMajorTick() error = %v", err)
	}
	if !isMajor {
		t.Fatalf("ClassifyMajorTick(86400) = false, want true (midnight UTC)")
	}
	isMajor, err = ClassifyMajorTick(86400+3600, "UTC", 0, false)
	if err != nil {
		t.Fatalf("ClassifyMajorTick() error = %v", err)
	}
	if isMajor {
		t.Fatalf("ClassifyMajorTick(86400+3600) = true, want false (not midnight)")
	}
}

func TestSelectTimeAxisLabelsPrefersMajorOnConflict(t *testing.T) {
	ticks := []TimeTick{
		{Value: 0, IsMajor: false},
		{Value: 1, IsMajor: true},
	}
	labels := []string{"a", "b"}
	project := func(v float64) float64 { return v } // only 1px apart, forces a conflict
	out := SelectTimeAxisLabels(ticks, labels, project, 10, 50)
	if len(out) != 1 || !out[0].IsMajor {
		t.Fatalf("SelectTimeAxisLabels() = %+v, want a single major tick", out)
	}
}

func TestResolvePriceTicksExcludesNearLastPrice(t *testing.T) {
	ps, err := pricescale.New(0, 100)
	if err != nil {
		t.Fatalf("pricescale.New() error = %v", err)
	}
	lastPricePx := ps.PriceToPixel(50, 0, 400)
	ticks := ResolvePriceTicks(ps, 5, 0, 400, 1, lastPricePx, 50)
	for _, tick := range ticks {
		px := ps.PriceToPixel(tick, 0, 400)
		d := px - lastPricePx
		if d < 0 {
			d = -d
		}
		if d < 50 {
			t.Fatalf("tick %v at px=%v survived exclusion band around last price px=%v", tick, px, lastPricePx)
		}
	}
}
