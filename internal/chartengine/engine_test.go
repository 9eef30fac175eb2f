package chartengine_test

import (
	"testing"

	"github.com/luhouxiang/chartcore/internal/chartengine"
	"github.com/luhouxiang/chartcore/internal/invalidation"
	"github.com/luhouxiang/chartcore/internal/model"
	"github.com/luhouxiang/chartcore/internal/renderframe"
)

type countingBackend struct {
	n int
}

func (b *countingBackend) Render(*renderframe.LayeredRenderFrame) error {
	b.n++
	return nil
}

func newEngine(t *testing.T) *chartengine.Engine {
	t.Helper()
	e, err := chartengine.New(chartengine.DefaultConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func TestNewRejectsInvalidViewport(t *testing.T) {
	cfg := chartengine.DefaultConfig()
	cfg.Viewport.Width = 0
	if _, err := chartengine.New(cfg); err == nil {
		t.Fatalf("New() with zero-width viewport: want error, got nil")
	}
}

func TestSetDataCanonicalizesUnorderedInput(t *testing.T) {
	e := newEngine(t)
	if err := e.SetData([]model.DataPoint{{X: 2, Y: 1}, {X: 1, Y: 1}}); err != nil {
		t.Fatalf("SetData() unordered error = %v, want nil (input is canonicalized)", err)
	}
	if got := e.Data(); len(got) != 2 || got[0].X != 1 || got[1].X != 2 {
		t.Fatalf("Data() after SetData = %v, want the two points sorted by x", got)
	}
}

func TestSetCandlesAcceptsValidOHLC(t *testing.T) {
	e := newEngine(t)
	bars := []model.OhlcBar{
		{Time: 1, Open: 10, High: 12, Low: 9, Close: 11},
		{Time: 2, Open: 11, High: 13, Low: 10, Close: 12},
	}
	if err := e.SetCandles(bars); err != nil {
		t.Fatalf("SetCandles() error = %v", err)
	}
	if len(e.Candles()) != 2 {
		t.Fatalf("len(Candles()) = %d, want 2", len(e.Candles()))
	}
}

func TestSetCandlesDropsInvalidOHLC(t *testing.T) {
	e := newEngine(t)
	bad := []model.OhlcBar{{Time: 1, Open: 10, High: 5, Low: 9, Close: 11}}
	if err := e.SetCandles(bad); err != nil {
		t.Fatalf("SetCandles() invalid bar error = %v, want nil (invalid bars are dropped)", err)
	}
	if len(e.Candles()) != 0 {
		t.Fatalf("Candles() after SetCandles with an invalid bar = %v, want empty", e.Candles())
	}
}

func TestPanAndZoomMoveVisibleRange(t *testing.T) {
	e := newEngine(t)
	start, end := e.VisibleTimeRange()
	if start != 0 || end != 100 {
		t.Fatalf("initial VisibleTimeRange() = (%v,%v), want (0,100)", start, end)
	}
	e.PanTimeVisibleByDelta(10)
	gotStart, gotEnd := e.VisibleTimeRange()
	if gotStart != 10 || gotEnd != 110 {
		t.Fatalf("VisibleTimeRange() after pan = (%v,%v), want (10,110)", gotStart, gotEnd)
	}
	e.ResetTimeVisibleRange()
	gotStart, gotEnd = e.VisibleTimeRange()
	if gotStart != start || gotEnd != end {
		t.Fatalf("VisibleTimeRange() after reset = (%v,%v), want (%v,%v)", gotStart, gotEnd, start, end)
	}
}

func TestRenderDrainsPendingInvalidation(t *testing.T) {
	e := newEngine(t)
	if err := e.SetData([]model.DataPoint{{X: 1, Y: 2}, {X: 2, Y: 3}}); err != nil {
		t.Fatalf("SetData() error = %v", err)
	}
	if e.PendingInvalidation().Level == invalidation.LevelNone {
		t.Fatalf("PendingInvalidation() after SetData = LevelNone, want a mutation to mark something dirty")
	}
	backend := &countingBackend{}
	if err := e.Render(backend); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if backend.n != 1 {
		t.Fatalf("backend.n = %d, want 1", backend.n)
	}
	if e.PendingInvalidation().Level != invalidation.LevelNone {
		t.Fatalf("PendingInvalidation() after Render = %v, want LevelNone (drained)", e.PendingInvalidation().Level)
	}
}

type recordingPlugin struct {
	id     string
	events []chartengine.EventKind
}

func (p *recordingPlugin) ID() string { return p.id }
func (p *recordingPlugin) OnEvent(ev chartengine.Event, _ chartengine.Context) {
	p.events = append(p.events, ev.Kind)
}

func TestPluginReceivesRenderedEventWithFrame(t *testing.T) {
	e := newEngine(t)
	p := &recordingPlugin{id: "test-plugin"}
	if err := e.RegisterPlugin(p); err != nil {
		t.Fatalf("RegisterPlugin() error = %v", err)
	}
	if err := e.RegisterPlugin(p); err == nil {
		t.Fatalf("RegisterPlugin() duplicate id: want error, got nil")
	}

	var gotDetail chartengine.RenderedDetail
	observer := pluginFunc{id: "observer", fn: func(ev chartengine.Event, _ chartengine.Context) {
		if ev.Kind == chartengine.EventRendered {
			gotDetail = ev.Detail.(chartengine.RenderedDetail)
		}
	}}
	if err := e.RegisterPlugin(observer); err != nil {
		t.Fatalf("RegisterPlugin(observer) error = %v", err)
	}

	if err := e.Render(&countingBackend{}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(p.events) == 0 || p.events[len(p.events)-1] != chartengine.EventRendered {
		t.Fatalf("plugin did not observe an EventRendered event: %v", p.events)
	}
	if gotDetail.Frame == nil {
		t.Fatalf("RenderedDetail.Frame = nil, want the built frame")
	}

	if !e.UnregisterPlugin("test-plugin") {
		t.Fatalf("UnregisterPlugin() = false, want true")
	}
	if e.UnregisterPlugin("test-plugin") {
		t.Fatalf("UnregisterPlugin() of already-removed id = true, want false")
	}
}

type pluginFunc struct {
	id string
	fn func(chartengine.Event, chartengine.Context)
}

func (p pluginFunc) ID() string { return p.id }
func (p pluginFunc) OnEvent(ev chartengine.Event, ctx chartengine.Context) { p.fn(ev, ctx) }

func TestCreateAndRemovePane(t *testing.T) {
	e := newEngine(t)
	before := len(e.Panes())
	id, err := e.CreatePane(1.0)
	if err != nil {
		t.Fatalf("CreatePane() error = %v", err)
	}
	if len(e.Panes()) != before+1 {
		t.Fatalf("len(Panes()) after CreatePane = %d, want %d", len(e.Panes()), before+1)
	}
	removed, err := e.RemovePane(id)
	if err != nil {
		t.Fatalf("RemovePane() error = %v", err)
	}
	if !removed {
		t.Fatalf("RemovePane() = false, want true")
	}
	if _, err := e.RemovePane(e.MainPaneID()); err == nil {
		t.Fatalf("RemovePane(MainPaneID()) want error, got nil")
	}
}

func TestRealtimeAppendAutoscalesPriceWhenConfigured(t *testing.T) {
	cfg := chartengine.DefaultConfig()
	cfg.PriceRange = chartengine.PriceRangeConfig{Min: 0, Max: 1}
	cfg.PriceScaleRealtime.AutoscaleOnDataUpdate = true
	e, err := chartengine.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := e.SetCandles([]model.OhlcBar{
		{Time: 1, Open: 10, High: 12, Low: 9, Close: 11},
	}); err != nil {
		t.Fatalf("SetCandles() error = %v", err)
	}
	if err := e.AppendCandle(model.OhlcBar{Time: 2, Open: 11, High: 500, Low: 10, Close: 400}); err != nil {
		t.Fatalf("AppendCandle() error = %v", err)
	}
	min, max := e.PriceDomain()
	if max <= 1 {
		t.Fatalf("PriceDomain() after realtime append with autoscale-on-update = (%v,%v), want max to track the new high", min, max)
	}
}

func TestRealtimeAppendLeavesPriceScaleUntouchedByDefault(t *testing.T) {
	e := newEngine(t)
	if err := e.SetCandles([]model.OhlcBar{{Time: 1, Open: 10, High: 12, Low: 9, Close: 11}}); err != nil {
		t.Fatalf("SetCandles() error = %v", err)
	}
	min, max := e.PriceDomain()
	if err := e.AppendCandle(model.OhlcBar{Time: 2, Open: 11, High: 5000, Low: 10, Close: 4000}); err != nil {
		t.Fatalf("AppendCandle() error = %v", err)
	}
	gotMin, gotMax := e.PriceDomain()
	if gotMin != min || gotMax != max {
		t.Fatalf("PriceDomain() changed without AutoscaleOnDataUpdate configured: got (%v,%v), want unchanged (%v,%v)", gotMin, gotMax, min, max)
	}
}

func TestTransformedBaseFirstDataSourceTracksEarliestSample(t *testing.T) {
	cfg := chartengine.DefaultConfig()
	cfg.PriceScaleMode = 2 // Percentage; avoid importing pricescale just for the constant
	cfg.PriceScaleTransformedBase.DynamicSource = chartengine.TransformedBaseFirstData
	e, err := chartengine.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := e.SetData([]model.DataPoint{{X: 1, Y: 50}, {X: 2, Y: 75}, {X: 3, Y: 100}}); err != nil {
		t.Fatalf("SetData() error = %v", err)
	}
	frame, err := e.BuildRenderFrame()
	if err != nil {
		t.Fatalf("BuildRenderFrame() error = %v", err)
	}
	if frame == nil {
		t.Fatalf("BuildRenderFrame() = nil frame")
	}
}

func TestSnapshotAndMarshalRoundTripVisibleRange(t *testing.T) {
	e := newEngine(t)
	e.PanTimeVisibleByDelta(7)
	wantStart, wantEnd := e.VisibleTimeRange()

	data, err := e.MarshalSnapshotJSON()
	if err != nil {
		t.Fatalf("MarshalSnapshotJSON() error = %v", err)
	}
	restored, err := chartengine.RestoreSnapshotJSON(data)
	if err != nil {
		t.Fatalf("RestoreSnapshotJSON() error = %v", err)
	}
	gotStart, gotEnd := restored.VisibleTimeRange()
	if gotStart != wantStart || gotEnd != wantEnd {
		t.Fatalf("restored VisibleTimeRange() = (%v,%v), want (%v,%v)", gotStart, gotEnd, wantStart, wantEnd)
	}
}
