package projection

import (
	"testing"

	"github.com/luhouxiang/chartcore/internal/model"
	"github.com/luhouxiang/chartcore/internal/primitives"
)

type fakeTimeScale struct{}

func (fakeTimeScale) TimeToPixel(t, width float64) float64 { return t }

type fakePriceScale struct{}

func (fakePriceScale) PriceToPixel(p, dynamicBase, plotHeight float64) float64 { return 100 - p }

func TestProjectCandlesColorsByDirection(t *testing.T) {
	bars := []model.OhlcBar{
		{Time: 1, Open: 10, High: 12, Low: 9, Close: 11},  // up
		{Time: 2, Open: 11, High: 13, Low: 8, Close: 9},   // down
	}
	style := CandlestickStyle{UpColor: primitives.RGB(0, 1, 0), DownColor: primitives.RGB(1, 0, 0), WickWidthPx: 1, BodyWidthPx: 6}
	vp := Viewport{Width: 100, PlotHeight: 100}
	candles := ProjectCandles(bars, fakeTimeScale{}, fakePriceScale{}, vp, style)
	if len(candles) != 2 {
		t.Fatalf("len(candles) = %d, want 2", len(candles))
	}
	if candles[0].Body.FillColor != style.UpColor {
		t.Fatalf("candles[0].Body.FillColor = %v, want up color", candles[0].Body.FillColor)
	}
	if candles[1].Body.FillColor != style.DownColor {
		t.Fatalf("candles[1].Body.FillColor = %v, want down color", candles[1].Body.FillColor)
	}
}

func TestProjectCandlesDojiGetsVisibleSliver(t *testing.T) {
	bars := []model.OhlcBar{{Time: 1, Open: 10, High: 11, Low: 9, Close: 10}}
	style := CandlestickStyle{UpColor: primitives.RGB(0, 1, 0), DownColor: primitives.RGB(1, 0, 0), BodyWidthPx: 6}
	candles := ProjectCandles(bars, fakeTimeScale{}, fakePriceScale{}, Viewport{Width: 100, PlotHeight: 100}, style)
	if candles[0].Body.H <= 0 {
		t.Fatalf("doji body height = %v, want > 0", candles[0].Body.H)
	}
}

func TestProjectLineConnectsConsecutivePoints(t *testing.T) {
	points := []model.DataPoint{{X: 0, Y: 10}, {X: 1, Y: 20}, {X: 2, Y: 15}}
	lines := ProjectLine(points, fakeTimeScale{}, fakePriceScale{}, Viewport{Width: 100, PlotHeight: 100}, primitives.RGB(0, 0, 0), 1)
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if lines[0].X2 != lines[1].X1 || lines[0].Y2 != lines[1].Y1 {
		t.Fatalf("segments not chained: %+v, %+v", lines[0], lines[1])
	}
}

func TestProjectLineSinglePointYieldsNothing(t *testing.T) {
	points := []model.DataPoint{{X: 0, Y: 10}}
	if lines := ProjectLine(points, fakeTimeScale{}, fakePriceScale{}, Viewport{Width: 100, PlotHeight: 100}, primitives.RGB(0, 0, 0), 1); lines != nil {
		t.Fatalf("lines = %v, want nil for a single point", lines)
	}
}

func TestProjectHistogramBarsStraddleBaseline(t *testing.T) {
	points := []model.DataPoint{{X: 0, Y: 50}, {X: 1, Y: -20}}
	rects := ProjectHistogram(points, fakeTimeScale{}, fakePriceScale{}, Viewport{Width: 100, PlotHeight: 100}, 0, 4, primitives.RGB(0, 0, 1))
	if len(rects) != 2 {
		t.Fatalf("len(rects) = %d, want 2", len(rects))
	}
	for i, r := range rects {
		if r.H <= 0 {
			t.Fatalf("rects[%d].H = %v, want > 0", i, r.H)
		}
	}
}
