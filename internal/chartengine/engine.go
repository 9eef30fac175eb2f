// Package chartengine is the public facade (spec §4/§6, component C11): it
// owns every piece of chart state, validates every mutating call at its
// boundary, dispatches invalidations into the pending InvalidationMask, and
// assembles render frames on demand. Nothing outside this package mutates
// a scale, the interaction state, or the data model directly — every
// mutation routes through an Engine method so invalidation bookkeeping and
// plugin dispatch stay centralized, mirroring the teacher's
// chartlayout.Service owning its store and scope-keyed registrations.
package chartengine

import (
	"fmt"
	"math"
	"sort"

	"github.com/luhouxiang/chartcore/internal/interaction"
	"github.com/luhouxiang/chartcore/internal/invalidation"
	"github.com/luhouxiang/chartcore/internal/labelcache"
	"github.com/luhouxiang/chartcore/internal/model"
	"github.com/luhouxiang/chartcore/internal/pricescale"
	"github.com/luhouxiang/chartcore/internal/primitives"
	"github.com/luhouxiang/chartcore/internal/projection"
	"github.com/luhouxiang/chartcore/internal/timescale"
)

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SeriesMetadata is a lightweight named attribute bag attached to the main
// series (spec §6, "set_series_metadata") — a display name and visibility
// toggle, independent of the data itself.
type SeriesMetadata struct {
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
}

// Engine owns all chart state (spec §3, "Ownership: all state owned by the
// Engine"). It is not safe for concurrent use from multiple goroutines
// without external synchronization (spec §5): label caches use interior
// mutexes so read-only render-frame builds may populate them, but every
// other method assumes single-threaded cooperative access.
type Engine struct {
	viewport primitives.Viewport

	data    []model.DataPoint
	candles []model.OhlcBar
	markers []model.Marker
	series  SeriesMetadata

	panes *model.PaneCollection

	ts *timescale.TimeScale
	ps *pricescale.PriceScale

	interactionState *interaction.State
	kinetic          *interaction.KineticPan

	labels *labelcache.Manager

	candleStyle projection.CandlestickStyle
	style       RenderStyle

	timeAxisCfg    TimeAxisLabelConfig
	priceAxisCfg   PriceAxisLabelConfig
	crosshairGuide CrosshairGuideLineConfig
	crosshairLabel CrosshairAxisLabelConfig
	lastPriceCfg   LastPriceConfig
	markerCfg      MarkerConfig
	inputCfg       InteractionInputConfig

	fitTuning       timescale.FitTuning
	autoscaleTuning pricescale.AutoscaleTuning
	priceRealtime   PriceScaleRealtimeConfig
	transformedBase PriceScaleTransformedBaseConfig

	customTimeFormatterGeneration  uint64
	customPriceFormatterGeneration uint64

	pending invalidation.Mask
	plugins []Plugin

	sessionCalendar *SessionCalendar
}

// New constructs an Engine from a validated config (spec §6, "Lifecycle:
// new(config)"). All sub-state (viewport, time range, price range) is
// validated up front; construction fails atomically.
func New(cfg ChartEngineConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ts, err := timescale.New(
		timescale.Range{Start: cfg.TimeRange.Start, End: cfg.TimeRange.End},
		timescale.Range{Start: cfg.TimeRange.Start, End: cfg.TimeRange.End},
	)
	if err != nil {
		return nil, err
	}
	ts.SetNavigationConfig(cfg.TimeScaleNavigation)
	ts.SetScrollZoomConfig(cfg.TimeScaleScrollZoom)
	ts.SetZoomLimitConfig(cfg.TimeScaleZoomLimit)
	ts.SetEdgeConfig(cfg.TimeScaleEdge)
	ts.SetResizeConfig(cfg.TimeScaleResize)
	ts.SetRealtimeAppendConfig(cfg.TimeScaleRealtimeAppend)

	ps, err := pricescale.New(cfg.PriceRange.Min, cfg.PriceRange.Max)
	if err != nil {
		return nil, err
	}
	if err := ps.WithMode(cfg.PriceScaleMode); err != nil {
		return nil, err
	}
	ps.WithInverted(cfg.PriceScaleInverted)
	if err := ps.WithMargins(cfg.PriceScaleMargins); err != nil {
		return nil, err
	}
	if cfg.PriceScaleTransformedBase.Explicit {
		if err := ps.WithTransformedBase(cfg.PriceScaleTransformedBase.Value); err != nil {
			return nil, err
		}
	}

	crosshairMode := interaction.Magnet
	switch cfg.InitialCrosshairMode {
	case "normal":
		crosshairMode = interaction.Normal
	case "hidden":
		crosshairMode = interaction.Hidden
	}

	kinetic, err := interaction.NewKineticPan(
		orDefault(cfg.InteractionInput.KineticDecayPerSecond, 0.85),
		orDefault(cfg.InteractionInput.KineticStopVelocityAbs, 0.01),
	)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		viewport:         cfg.Viewport,
		series:           SeriesMetadata{Name: "main", Visible: true},
		panes:            model.NewPaneCollection(),
		ts:               ts,
		ps:               ps,
		interactionState: interaction.New(crosshairMode, cfg.InteractionInput.PanEnabled),
		kinetic:          kinetic,
		labels:           labelcache.NewManager(),
		candleStyle:      cfg.CandlestickStyle,
		style:            cfg.RenderStyle,
		timeAxisCfg:      cfg.TimeAxisLabel,
		priceAxisCfg:     cfg.PriceAxisLabel,
		crosshairGuide:   cfg.CrosshairGuide,
		crosshairLabel:   cfg.CrosshairLabel,
		lastPriceCfg:     cfg.LastPrice,
		markerCfg:        cfg.Markers,
		inputCfg:         cfg.InteractionInput,
		fitTuning:        cfg.FitTuning,
		autoscaleTuning:  cfg.AutoscaleTuning,
		priceRealtime:    cfg.PriceScaleRealtime,
		transformedBase:  cfg.PriceScaleTransformedBase,
		pending:          invalidation.New(),
	}
	return e, nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// Viewport returns the current drawing surface size.
func (e *Engine) Viewport() primitives.Viewport { return e.viewport }

// SetViewport replaces the viewport (spec §4.3's ResizeConfig governs
// whether the visible range is preserved or re-derived across a resize).
func (e *Engine) SetViewport(vp primitives.Viewport) error {
	if !vp.IsValid() {
		return invalidViewport("width and height must both be > 0, got %vx%v", vp.Width, vp.Height)
	}
	e.viewport = vp
	if !e.ts.ResizeConfig().LockVisibleRangeOnResize {
		e.ts.ResetVisibleRange(vp.Width)
	}
	e.markInvalid(invalidation.LevelFull, invalidation.TopicAxis, invalidation.TopicPaneLayout)
	return nil
}

func (e *Engine) markInvalid(level invalidation.Level, topics ...invalidation.Topic) {
	e.pending = invalidation.Merge(e.pending, invalidation.Of(level, topics...))
}

// PendingInvalidation returns the currently accumulated invalidation mask
// without draining it.
func (e *Engine) PendingInvalidation() invalidation.Mask { return e.pending }

// TimeScale exposes the read-only time-scale surface for callers (e.g. a
// host app's own layout code) that need it without a full render.
func (e *Engine) TimeScale() *timescale.TimeScale { return e.ts }

// PriceScale exposes the read-only price-scale surface.
func (e *Engine) PriceScale() *pricescale.PriceScale { return e.ps }

// Data returns the canonical data points backing the line/area/baseline/
// histogram series. The returned slice must not be mutated.
func (e *Engine) Data() []model.DataPoint { return e.data }

// Candles returns the canonical OHLC bars. The returned slice must not be
// mutated.
func (e *Engine) Candles() []model.OhlcBar { return e.candles }

// medianPositiveDiff computes the median of the positive consecutive
// differences in times (spec §3, "reference_time_step"). Returns 0 when
// times has fewer than two entries or no positive difference; choosing
// which series' times to pass is left to refreshReferenceStep.
func medianPositiveDiff(times []float64) float64 {
	if len(times) < 2 {
		return 0
	}
	diffs := make([]float64, 0, len(times)-1)
	for i := 1; i < len(times); i++ {
		d := times[i] - times[i-1]
		if d > 0 {
			diffs = append(diffs, d)
		}
	}
	if len(diffs) == 0 {
		return 0
	}
	sort.Float64s(diffs)
	mid := len(diffs) / 2
	if len(diffs)%2 == 1 {
		return diffs[mid]
	}
	return (diffs[mid-1] + diffs[mid]) / 2
}

// refreshReferenceStep recomputes and stores the reference time step from
// candles (preferred) or points, per spec §3.
func (e *Engine) refreshReferenceStep() {
	if len(e.candles) >= 2 {
		times := make([]float64, len(e.candles))
		for i, c := range e.candles {
			times[i] = c.Time
		}
		e.ts.SetReferenceTimeStep(medianPositiveDiff(times))
		return
	}
	if len(e.data) >= 2 {
		times := make([]float64, len(e.data))
		for i, p := range e.data {
			times[i] = p.X
		}
		e.ts.SetReferenceTimeStep(medianPositiveDiff(times))
		return
	}
	e.ts.SetReferenceTimeStep(0)
}

func (e *Engine) width() float64  { return e.viewport.Width }
func (e *Engine) height() float64 { return e.viewport.Height }

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", primitives.ErrInvalidData, fmt.Sprintf(format, args...))
}
