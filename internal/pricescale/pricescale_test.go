package pricescale

import "testing"

func TestLinearPriceToPixelRoundTrip(t *testing.T) {
	ps, err := New(10, 20)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for _, p := range []float64{10, 12.5, 17, 20} {
		y := ps.PriceToPixel(p, 0, 400)
		got := ps.PixelToPrice(y, 0, 400)
		if diff := got - p; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("round trip p=%v -> y=%v -> p=%v, want %v", p, y, got, p)
		}
	}
}

func TestLinearInvertedFlipsDirection(t *testing.T) {
	ps, _ := New(0, 100)
	yNormal := ps.PriceToPixel(0, 0, 400)
	ps.WithInverted(true)
	yInverted := ps.PriceToPixel(0, 0, 400)
	if yNormal == yInverted {
		t.Fatalf("inverted mapping produced same pixel as normal: %v", yNormal)
	}
}

func TestLogModeRejectsNonPositiveDomain(t *testing.T) {
	ps, _ := New(-5, 10)
	if err := ps.WithMode(Log); err == nil {
		t.Fatalf("WithMode(Log) error = nil, want non-nil for domain min <= 0")
	}
	if ps.Mode() != Linear {
		t.Fatalf("Mode() = %v, want Linear (failed switch must not mutate state)", ps.Mode())
	}
}

func TestLogModeRoundTrip(t *testing.T) {
	ps, _ := New(1, 1000)
	if err := ps.WithMode(Log); err != nil {
		t.Fatalf("WithMode(Log) error = %v", err)
	}
	for _, p := range []float64{1, 10, 100, 1000} {
		y := ps.PriceToPixel(p, 0, 400)
		got := ps.PixelToPrice(y, 0, 400)
		if diff := got - p; diff > 1e-6*p || diff < -1e-6*p {
			t.Fatalf("log round trip p=%v -> y=%v -> p=%v", p, y, got)
		}
	}
}

func TestTicksAreNiceAndAscending(t *testing.T) {
	ps, _ := New(0, 97)
	ticks := ps.Ticks(5)
	if len(ticks) < 2 {
		t.Fatalf("len(ticks) = %d, want >= 2", len(ticks))
	}
	for i := 1; i < len(ticks); i++ {
		if ticks[i] <= ticks[i-1] {
			t.Fatalf("ticks not strictly ascending at %d: %v <= %v", i, ticks[i], ticks[i-1])
		}
	}
}

func TestFromDataTunedPadsSpan(t *testing.T) {
	min, max, ok := FromDataTuned([]float64{10, 5, 20}, AutoscaleTuning{PaddingRatio: 0.1})
	if !ok {
		t.Fatalf("FromDataTuned() ok = false, want true")
	}
	if min >= 5 || max <= 20 {
		t.Fatalf("domain = [%v,%v], want padding beyond [5,20]", min, max)
	}
}

func TestFromDataTunedGuardsZeroSpan(t *testing.T) {
	min, max, ok := FromDataTuned([]float64{7, 7, 7}, AutoscaleTuning{PaddingRatio: 0.1})
	if !ok {
		t.Fatalf("FromDataTuned() ok = false, want true")
	}
	if !(min < 7 && max > 7) {
		t.Fatalf("domain = [%v,%v], want an expanded span around 7", min, max)
	}
}

func TestPercentageModeUsesExplicitBase(t *testing.T) {
	ps, _ := New(50, 150)
	if err := ps.WithTransformedBase(100); err != nil {
		t.Fatalf("WithTransformedBase() error = %v", err)
	}
	if err := ps.WithMode(Percentage); err != nil {
		t.Fatalf("WithMode(Percentage) error = %v", err)
	}
	y := ps.PriceToPixel(100, 0, 400)
	got := ps.PixelToPrice(y, 0, 400)
	if diff := got - 100; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("percentage round trip at base = %v, want 100", got)
	}
}
