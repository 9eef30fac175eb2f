package chartengine

import (
	"encoding/json"

	"github.com/luhouxiang/chartcore/internal/interaction"
	"github.com/luhouxiang/chartcore/internal/labelcache"
	"github.com/luhouxiang/chartcore/internal/model"
)

// SnapshotSchemaVersion is the current JSON v1 schema tag shared by the
// state snapshot and the crosshair-formatter diagnostics contracts (spec
// §6, "Persisted state").
const SnapshotSchemaVersion = 1

// Snapshot is the deterministic state-capture contract: ChartEngineConfig
// plus the live data, pane set, and visible range needed to reconstruct an
// equivalent Engine (spec §6, "Snapshots").
type Snapshot struct {
	SchemaVersion int               `json:"schema_version"`
	Config        ChartEngineConfig `json:"config"`
	VisibleRange  TimeRangeConfig   `json:"visible_range"`
	Data          []model.DataPoint `json:"data,omitempty"`
	Candles       []model.OhlcBar   `json:"candles,omitempty"`
	Markers       []model.Marker    `json:"markers,omitempty"`
	Series        SeriesMetadata    `json:"series"`
	Panes         []model.Pane      `json:"panes"`
}

// Snapshot captures the engine's full deterministic state.
func (e *Engine) Snapshot() Snapshot {
	visible := e.ts.VisibleRange()
	full := e.ts.FullRange()
	pmin, pmax := e.ps.Domain()

	return Snapshot{
		SchemaVersion: SnapshotSchemaVersion,
		Config: ChartEngineConfig{
			Viewport:                  e.viewport,
			TimeRange:                 TimeRangeConfig{Start: full.Start, End: full.End},
			PriceRange:                PriceRangeConfig{Min: pmin, Max: pmax},
			TimeScaleNavigation:       e.ts.NavigationConfig(),
			TimeScaleScrollZoom:       e.ts.ScrollZoomConfig(),
			TimeScaleZoomLimit:        e.ts.ZoomLimitConfig(),
			TimeScaleEdge:             e.ts.EdgeConfig(),
			TimeScaleResize:           e.ts.ResizeConfig(),
			TimeScaleRealtimeAppend:   e.ts.RealtimeAppendConfig(),
			FitTuning:                 e.fitTuning,
			PriceScaleMode:            e.ps.Mode(),
			PriceScaleMargins:         e.ps.MarginsValue(),
			PriceScaleInverted:        e.ps.Inverted(),
			PriceScaleTransformedBase: e.transformedBase,
			PriceScaleRealtime:        e.priceRealtime,
			AutoscaleTuning:           e.autoscaleTuning,
			CandlestickStyle:          e.candleStyle,
			RenderStyle:               e.style,
			TimeAxisLabel:             e.timeAxisCfg,
			PriceAxisLabel:            e.priceAxisCfg,
			CrosshairGuide:            e.crosshairGuide,
			CrosshairLabel:            e.crosshairLabel,
			LastPrice:                 e.lastPriceCfg,
			Markers:                   e.markerCfg,
			InteractionInput:          e.inputCfg,
			InitialCrosshairMode:      crosshairModeName(e.interactionState.CrosshairMode()),
		},
		VisibleRange: TimeRangeConfig{Start: visible.Start, End: visible.End},
		Data:         append([]model.DataPoint(nil), e.data...),
		Candles:      append([]model.OhlcBar(nil), e.candles...),
		Markers:      append([]model.Marker(nil), e.markers...),
		Series:       e.series,
		Panes:        append([]model.Pane(nil), e.panes.Panes()...),
	}
}

// MarshalSnapshotJSON serializes the current state as the schema_version:1
// snapshot contract.
func (e *Engine) MarshalSnapshotJSON() ([]byte, error) {
	data, err := json.Marshal(e.Snapshot())
	if err != nil {
		return nil, validationError("snapshot marshal failed: %v", err)
	}
	return data, nil
}

// RestoreSnapshot reconstructs an Engine from a previously captured
// Snapshot: a fresh Engine from its config, the visible range, the data/
// candle/marker/series state, and every non-main pane re-created with its
// original stretch factor. Pane ids are not preserved across a restore,
// matching New's own id-assignment rule.
func RestoreSnapshot(snap Snapshot) (*Engine, error) {
	e, err := New(snap.Config)
	if err != nil {
		return nil, err
	}
	if err := e.ts.SetVisibleRange(snap.VisibleRange.Start, snap.VisibleRange.End, e.width()); err != nil {
		return nil, err
	}
	if len(snap.Candles) > 0 {
		if err := e.SetCandles(snap.Candles); err != nil {
			return nil, err
		}
	}
	if len(snap.Data) > 0 {
		if err := e.SetData(snap.Data); err != nil {
			return nil, err
		}
	}
	if len(snap.Markers) > 0 {
		if err := e.SetMarkers(snap.Markers); err != nil {
			return nil, err
		}
	}
	e.series = snap.Series
	for _, p := range snap.Panes {
		if p.IsMain {
			continue
		}
		if _, err := e.CreatePane(p.StretchFactor); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// RestoreSnapshotJSON parses and restores a schema_version:1 snapshot.
func RestoreSnapshotJSON(data []byte) (*Engine, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, validationError("invalid snapshot json: %v", err)
	}
	return RestoreSnapshot(snap)
}

func crosshairModeName(mode interaction.CrosshairMode) string {
	switch mode {
	case interaction.Normal:
		return "normal"
	case interaction.Hidden:
		return "hidden"
	default:
		return "magnet"
	}
}

// CrosshairFormatterDiagnostics is the versioned JSON v1 diagnostics
// contract (spec §6): the label text the crosshair would currently draw,
// plus label-cache counters, for inspecting custom formatter hooks and
// locale behavior without running a full render.
type CrosshairFormatterDiagnostics struct {
	SchemaVersion   int              `json:"schema_version"`
	HasPointer      bool             `json:"has_pointer"`
	HasSnap         bool             `json:"has_snap"`
	TimeValue       float64          `json:"time_value,omitempty"`
	PriceValue      float64          `json:"price_value,omitempty"`
	TimeLabel       string           `json:"time_label,omitempty"`
	PriceLabel      string           `json:"price_label,omitempty"`
	TimeCacheStats  labelcache.Stats `json:"time_cache_stats"`
	PriceCacheStats labelcache.Stats `json:"price_cache_stats"`
}

// CrosshairDiagnostics resolves the current crosshair formatter diagnostics
// contract (spec §6).
func (e *Engine) CrosshairDiagnostics() (CrosshairFormatterDiagnostics, error) {
	diag := CrosshairFormatterDiagnostics{
		SchemaVersion:   SnapshotSchemaVersion,
		TimeCacheStats:  e.labels.TimeStats(),
		PriceCacheStats: e.labels.PriceStats(),
	}
	pointer := e.interactionState.Pointer()
	diag.HasPointer = pointer.Visible
	if !pointer.Visible {
		return diag, nil
	}

	timeVal := e.ts.PixelToTime(pointer.X, e.width())
	priceVal := e.ps.PixelToPrice(pointer.Y, e.dynamicPriceBase(), e.plotHeight())
	if snap, ok := e.interactionState.Snap(); ok {
		diag.HasSnap = true
		timeVal, priceVal = snap.Time, snap.Price
	}
	diag.TimeValue, diag.PriceValue = timeVal, priceVal

	timeLabel, err := e.labels.FormatTime(timeVal, e.timeProfile(), 0, 0, false, true)
	if err != nil {
		return CrosshairFormatterDiagnostics{}, err
	}
	diag.TimeLabel = timeLabel

	priceLabel, err := e.labels.FormatPrice(priceVal, e.priceProfile(), 0, true)
	if err != nil {
		return CrosshairFormatterDiagnostics{}, err
	}
	diag.PriceLabel = priceLabel
	return diag, nil
}
