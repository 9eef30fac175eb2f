package interaction

import (
	"testing"

	"github.com/luhouxiang/chartcore/internal/model"
	"github.com/luhouxiang/chartcore/internal/pricescale"
	"github.com/luhouxiang/chartcore/internal/timescale"
)

func newResolverFixture(t *testing.T) *Resolver {
	t.Helper()
	ts, err := timescale.New(timescale.Range{Start: 0, End: 1000}, timescale.Range{Start: 0, End: 1000})
	if err != nil {
		t.Fatalf("timescale.New() error = %v", err)
	}
	ts.SetReferenceTimeStep(10)
	ps, err := pricescale.New(0, 100)
	if err != nil {
		t.Fatalf("pricescale.New() error = %v", err)
	}
	return NewResolver(ts, ps, 800, 400, 0)
}

func TestResolveSnapPrefersCloserPoint(t *testing.T) {
	r := newResolverFixture(t)
	points := []model.DataPoint{{X: 100, Y: 10}, {X: 500, Y: 50}, {X: 900, Y: 90}}
	snap, ok := r.ResolveSnap(400, points, nil)
	if !ok {
		t.Fatalf("ResolveSnap() ok = false, want true")
	}
	if snap.Time != 500 {
		t.Fatalf("snap.Time = %v, want 500 (nearest to pointer x=400)", snap.Time)
	}
}

func TestResolveSnapTiePrefersPointOverCandle(t *testing.T) {
	r := newResolverFixture(t)
	points := []model.DataPoint{{X: 500, Y: 10}}
	candles := []model.OhlcBar{{Time: 500, Open: 1, High: 2, Low: 0.5, Close: 50}}
	snap, ok := r.ResolveSnap(400, points, candles)
	if !ok {
		t.Fatalf("ResolveSnap() ok = false, want true")
	}
	if snap.Price != 10 {
		t.Fatalf("snap.Price = %v, want 10 (the data point, tie-break favors point over candle)", snap.Price)
	}
}

func TestResolveSnapFalseWithNoData(t *testing.T) {
	r := newResolverFixture(t)
	if _, ok := r.ResolveSnap(400, nil, nil); ok {
		t.Fatalf("ResolveSnap() ok = true, want false with no data")
	}
}
