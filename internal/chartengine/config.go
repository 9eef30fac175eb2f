package chartengine

import (
	"github.com/luhouxiang/chartcore/internal/pricescale"
	"github.com/luhouxiang/chartcore/internal/primitives"
	"github.com/luhouxiang/chartcore/internal/projection"
	"github.com/luhouxiang/chartcore/internal/timescale"
)

// TimeRangeConfig is the initial full+visible time range (spec §3,
// "TimeScale state").
type TimeRangeConfig struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// PriceRangeConfig is the initial price domain (spec §3, "PriceScale
// state").
type PriceRangeConfig struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// TransformedBaseSource selects which dynamic sample the Percentage/
// IndexedTo100 base price tracks when no explicit base is configured (spec
// §4.2, "base may be explicit or dynamic (first/last data, first/last
// visible)").
type TransformedBaseSource int

const (
	TransformedBaseLastData TransformedBaseSource = iota
	TransformedBaseFirstData
	TransformedBaseFirstVisibleData
	TransformedBaseLastVisibleData
)

// PriceScaleTransformedBaseConfig configures an explicit Percentage/
// IndexedTo100 base price, or leaves it dynamic (spec §4.2).
type PriceScaleTransformedBaseConfig struct {
	Explicit      bool                  `json:"explicit"`
	Value         float64               `json:"value"`
	DynamicSource TransformedBaseSource `json:"dynamic_source"`
}

// AutoscaleSourceMode selects which data set an autoscale/last-price
// resolution draws from.
type AutoscaleSourceMode int

const (
	SourceAllData AutoscaleSourceMode = iota
	SourceVisibleData
)

// PriceScaleRealtimeConfig controls whether price autoscale/last-price
// resolution re-derives from the full data set or only the visible window,
// and whether realtime data mutations trigger an automatic price autoscale
// (spec §7: "Autoscale ... failures inside realtime updates are logged and
// suppressed" — the update still commits, the scale is just left as-is).
type PriceScaleRealtimeConfig struct {
	SourceMode            AutoscaleSourceMode `json:"source_mode"`
	AutoscaleOnDataSet    bool                `json:"autoscale_on_data_set"`
	AutoscaleOnDataUpdate bool                `json:"autoscale_on_data_update"`
}

// InteractionInputConfig gates which input-driven transitions are allowed
// (spec §4.3).
type InteractionInputConfig struct {
	PanEnabled                bool    `json:"pan_enabled"`
	ScrollZoomEnabled         bool    `json:"scroll_zoom_enabled"`
	PinchZoomEnabled          bool    `json:"pinch_zoom_enabled"`
	KineticPanEnabled         bool    `json:"kinetic_pan_enabled"`
	KineticDecayPerSecond     float64 `json:"kinetic_decay_per_second"`
	KineticStopVelocityAbs    float64 `json:"kinetic_stop_velocity_abs"`
}

// TimeAxisProfileKind selects which of labelcache's three time formatters
// the time axis renders with.
type TimeAxisProfileKind int

const (
	TimeProfileUtc TimeAxisProfileKind = iota
	TimeProfileLogicalDecimal
	TimeProfileCustom
)

// TimeAxisLabelConfig configures the time-axis label profile and layout
// tuning (spec §4.4, §4.5).
type TimeAxisLabelConfig struct {
	Profile                 TimeAxisProfileKind `json:"profile"`
	Locale                  string  `json:"locale"`
	Timezone                string  `json:"timezone"`
	Precision               int     `json:"precision"`
	SessionMode             bool    `json:"session_mode"`
	SessionBoundaryMinute   int     `json:"session_boundary_minute"`
	HasSessionBoundary      bool    `json:"has_session_boundary"`
	TargetSpacingPx         float64 `json:"target_spacing_px"`
	MinTickCount            int     `json:"min_tick_count"`
	MaxTickCount            int     `json:"max_tick_count"`
	MinSpacingPx            float64 `json:"min_spacing_px"`
}

// PriceAxisProfileKind selects which of labelcache's two price formatters
// the price axis renders with.
type PriceAxisProfileKind int

const (
	PriceProfileBuiltIn PriceAxisProfileKind = iota
	PriceProfileCustom
)

// PriceAxisLabelConfig configures the price-axis label profile and layout
// tuning.
type PriceAxisLabelConfig struct {
	Profile                  PriceAxisProfileKind `json:"profile"`
	Locale                   string  `json:"locale"`
	PolicyProfile            string  `json:"policy_profile"`
	TargetSpacingPx          float64 `json:"target_spacing_px"`
	MinTickCount             int     `json:"min_tick_count"`
	MaxTickCount             int     `json:"max_tick_count"`
	MinSpacingPx             float64 `json:"min_spacing_px"`
	LastPriceExclusionPx     float64 `json:"last_price_exclusion_px"`
	RequestedAxisWidthPx     float64 `json:"requested_axis_width_px"`
	AdaptiveWidthNoiseThresh float64 `json:"adaptive_width_noise_threshold_px"`
	FontSizePx               float64 `json:"font_size_px"`
}

// CrosshairGuideLineConfig controls the crosshair's vertical/horizontal
// guide lines (spec §3, "CrosshairGuideLine").
type CrosshairGuideLineConfig struct {
	ShowVertical   bool               `json:"show_vertical"`
	ShowHorizontal bool                `json:"show_horizontal"`
	Color          primitives.Color    `json:"color"`
	WidthPx        float64             `json:"width_px"`
	Style          primitives.LineStrokeStyle `json:"style"`
}

// CrosshairOverflowPolicy selects how an axis label box that would extend
// past its axis band is handled (spec §4.7 step 5, "overflow policy").
type CrosshairOverflowPolicy int

const (
	// CrosshairOverflowClip shifts the box back inside the axis band.
	CrosshairOverflowClip CrosshairOverflowPolicy = iota
	// CrosshairOverflowHide drops the label entirely rather than shifting it.
	CrosshairOverflowHide
)

// CrosshairLabelPriority names which axis label wins a pair-collision (spec
// §4.7 step 5, "visibility_priority").
type CrosshairLabelPriority int

const (
	CrosshairPriorityPrice CrosshairLabelPriority = iota
	CrosshairPriorityTime
)

// CrosshairAxisLabelConfig controls the crosshair's axis label boxes (spec
// §3, "CrosshairAxisLabel{Visibility,Style,BoxStyle}").
type CrosshairAxisLabelConfig struct {
	ShowOnTimeAxis  bool             `json:"show_on_time_axis"`
	ShowOnPriceAxis bool             `json:"show_on_price_axis"`
	FillColor       primitives.Color `json:"fill_color"`
	TextColor       primitives.Color `json:"text_color"`
	FontSizePx      float64          `json:"font_size_px"`
	PaddingX        float64          `json:"padding_x"`
	PaddingY        float64          `json:"padding_y"`

	// OverflowPolicy governs a label box that would extend past the plot's
	// axis band once clamped to the anchor.
	OverflowPolicy CrosshairOverflowPolicy `json:"overflow_policy"`
	// VisibilityPriority picks the surviving label, and the one drawn on
	// top, when the time and price label boxes would overlap near the
	// axis corner.
	VisibilityPriority CrosshairLabelPriority `json:"visibility_priority"`
}

// LastPriceConfig controls the last-price marker's source, colors, and
// label box (spec §4.6).
type LastPriceConfig struct {
	SourceMode      AutoscaleSourceMode `json:"source_mode"`
	UpColor         primitives.Color    `json:"up_color"`
	DownColor       primitives.Color    `json:"down_color"`
	NeutralColor    primitives.Color    `json:"neutral_color"`
	UseTrendColor   bool                `json:"use_trend_color"`
	LineWidthPx     float64             `json:"line_width_px"`
	FontSizePx      float64             `json:"font_size_px"`
	PaddingX        float64             `json:"padding_x"`
	PaddingY        float64             `json:"padding_y"`
	CornerRadiusPx  float64             `json:"corner_radius_px"`
	FullAxisWidth   bool                `json:"full_axis_width"`
	AutoTextContrast bool               `json:"auto_text_contrast"`
}

// MarkerConfig controls marker glyph/label appearance and the deterministic
// placement tuning (spec §3, "markers"; grounded on the original's
// MarkerPlacementConfig).
type MarkerConfig struct {
	DotColor        primitives.Color           `json:"dot_color"`
	LabelFillColor  primitives.Color           `json:"label_fill_color"`
	LabelTextColor  primitives.Color           `json:"label_text_color"`
	LabelFontSizePx float64                    `json:"label_font_size_px"`
	Placement       projection.MarkerPlacementConfig `json:"placement"`
}

// RenderStyle is the flat visual-style record (spec §3): colors, widths,
// paddings, font sizes, visibility toggles, display-mode selectors for
// every painted element. Fields are grouped by the scene they affect; see
// StyleDiff for which field changes demand a Full vs. Light invalidation.
type RenderStyle struct {
	BackgroundColor primitives.Color `json:"background_color"`

	GridColor        primitives.Color `json:"grid_color"`
	MajorGridColor   primitives.Color `json:"major_grid_color"`
	GridWidthPx      float64          `json:"grid_width_px"`
	MajorGridWidthPx float64          `json:"major_grid_width_px"`
	ShowGrid         bool             `json:"show_grid"`

	AxisTickColor      primitives.Color `json:"axis_tick_color"`
	AxisTickLengthPx   float64          `json:"axis_tick_length_px"`
	AxisTickWidthPx    float64          `json:"axis_tick_width_px"`
	AxisLabelColor     primitives.Color `json:"axis_label_color"`
	MajorAxisLabelColor primitives.Color `json:"major_axis_label_color"`
	AxisLabelFontSizePx float64         `json:"axis_label_font_size_px"`
	MajorAxisFontSizePx float64         `json:"major_axis_font_size_px"`

	// PriceAxisWidthPx and TimeAxisHeightPx affect layout: changing either
	// triggers Full invalidation (spec §3).
	PriceAxisWidthPx float64 `json:"price_axis_width_px"`
	TimeAxisHeightPx float64 `json:"time_axis_height_px"`

	SeriesDisplayMode SeriesDisplayMode `json:"series_display_mode"`
	LineColor         primitives.Color  `json:"line_color"`
	LineWidthPx       float64           `json:"line_width_px"`
	AreaBaselinePrice float64           `json:"area_baseline_price"`
	AreaAboveColor    primitives.Color  `json:"area_above_color"`
	AreaBelowColor    primitives.Color  `json:"area_below_color"`
	HistogramColor    primitives.Color  `json:"histogram_color"`
	HistogramBarWidthPx float64         `json:"histogram_bar_width_px"`
}

// SeriesDisplayMode selects how the primary series is projected (spec §4.7
// step 4).
type SeriesDisplayMode int

const (
	SeriesCandlestick SeriesDisplayMode = iota
	SeriesBar
	SeriesLine
	SeriesArea
	SeriesBaseline
	SeriesHistogram
)

// ChartEngineConfig is the serializable configuration an Engine is
// constructed from (spec §6, "Persisted state").
type ChartEngineConfig struct {
	Viewport   primitives.Viewport `json:"viewport"`
	TimeRange  TimeRangeConfig     `json:"time_range"`
	PriceRange PriceRangeConfig    `json:"price_range"`

	TimeScaleNavigation     timescale.NavigationConfig     `json:"time_scale_navigation"`
	TimeScaleScrollZoom     timescale.ScrollZoomConfig     `json:"time_scale_scroll_zoom"`
	TimeScaleZoomLimit      timescale.ZoomLimitConfig      `json:"time_scale_zoom_limit"`
	TimeScaleEdge           timescale.EdgeConfig           `json:"time_scale_edge"`
	TimeScaleResize         timescale.ResizeConfig         `json:"time_scale_resize"`
	TimeScaleRealtimeAppend timescale.RealtimeAppendConfig `json:"time_scale_realtime_append"`
	FitTuning               timescale.FitTuning            `json:"fit_tuning"`

	PriceScaleMode           pricescale.Mode                 `json:"price_scale_mode"`
	PriceScaleMargins        pricescale.Margins              `json:"price_scale_margins"`
	PriceScaleInverted       bool                            `json:"price_scale_inverted"`
	PriceScaleTransformedBase PriceScaleTransformedBaseConfig `json:"price_scale_transformed_base"`
	PriceScaleRealtime       PriceScaleRealtimeConfig         `json:"price_scale_realtime"`
	AutoscaleTuning          pricescale.AutoscaleTuning       `json:"autoscale_tuning"`

	CandlestickStyle projection.CandlestickStyle `json:"candlestick_style"`
	RenderStyle      RenderStyle                 `json:"render_style"`

	TimeAxisLabel  TimeAxisLabelConfig      `json:"time_axis_label"`
	PriceAxisLabel PriceAxisLabelConfig     `json:"price_axis_label"`
	CrosshairGuide CrosshairGuideLineConfig `json:"crosshair_guide_line"`
	CrosshairLabel CrosshairAxisLabelConfig `json:"crosshair_axis_label"`
	LastPrice      LastPriceConfig          `json:"last_price"`
	Markers        MarkerConfig             `json:"markers"`

	InteractionInput InteractionInputConfig `json:"interaction_input"`
	InitialCrosshairMode string             `json:"initial_crosshair_mode"`
}

// Validate checks the config's boundary invariants (spec §7): a non-
// positive viewport is InvalidViewport; a degenerate time/price range is
// InvalidData (surfaced by the underlying scale constructors).
func (c ChartEngineConfig) Validate() error {
	if !c.Viewport.IsValid() {
		return invalidViewport("width and height must both be > 0, got %vx%v", c.Viewport.Width, c.Viewport.Height)
	}
	if _, err := timescale.New(
		timescale.Range{Start: c.TimeRange.Start, End: c.TimeRange.End},
		timescale.Range{Start: c.TimeRange.Start, End: c.TimeRange.End},
	); err != nil {
		return err
	}
	if _, err := pricescale.New(c.PriceRange.Min, c.PriceRange.Max); err != nil {
		return err
	}
	return nil
}

// DefaultConfig returns a config with sane, widely-used defaults for every
// optional field, ready to be layered over by callers overriding only what
// they need.
func DefaultConfig() ChartEngineConfig {
	return ChartEngineConfig{
		Viewport:   primitives.Viewport{Width: 800, Height: 500},
		TimeRange:  TimeRangeConfig{Start: 0, End: 100},
		PriceRange: PriceRangeConfig{Min: 0, Max: 100},
		TimeScaleZoomLimit: timescale.ZoomLimitConfig{MinBarSpacingPx: 0.5, MaxBarSpacingPx: 200},
		TimeScaleEdge:      timescale.EdgeConfig{FixLeftEdge: false, FixRightEdge: false},
		TimeScaleRealtimeAppend: timescale.RealtimeAppendConfig{RightEdgeToleranceBars: 1},
		TimeScaleScrollZoom:     timescale.ScrollZoomConfig{WheelStepRatio: 0.1, RightBarStaysOnScroll: false},
		FitTuning:               timescale.FitTuning{PaddingRatio: 0.05},

		PriceScaleMode:     pricescale.Linear,
		PriceScaleMargins:  pricescale.Margins{Top: 0.1, Bottom: 0.1},
		AutoscaleTuning:    pricescale.AutoscaleTuning{PaddingRatio: 0.1},

		CandlestickStyle: projection.CandlestickStyle{
			UpColor:       primitives.RGB(0.1, 0.7, 0.3),
			DownColor:     primitives.RGB(0.85, 0.2, 0.2),
			WickWidthPx:   1,
			BodyWidthPx:   6,
			BorderWidthPx: 0,
		},
		RenderStyle: RenderStyle{
			BackgroundColor:     primitives.RGB(1, 1, 1),
			GridColor:           primitives.RGBA(0, 0, 0, 0.08),
			MajorGridColor:      primitives.RGBA(0, 0, 0, 0.18),
			GridWidthPx:         1,
			MajorGridWidthPx:    1,
			ShowGrid:            true,
			AxisTickColor:       primitives.RGBA(0, 0, 0, 0.4),
			AxisTickLengthPx:    4,
			AxisTickWidthPx:     1,
			AxisLabelColor:      primitives.RGBA(0.2, 0.2, 0.2, 1),
			MajorAxisLabelColor: primitives.RGBA(0, 0, 0, 1),
			AxisLabelFontSizePx: 11,
			MajorAxisFontSizePx: 12,
			PriceAxisWidthPx:    60,
			TimeAxisHeightPx:    24,
			SeriesDisplayMode:   SeriesCandlestick,
			LineColor:           primitives.RGB(0.15, 0.4, 0.9),
			LineWidthPx:         1.5,
			AreaAboveColor:      primitives.RGB(0.1, 0.7, 0.3),
			AreaBelowColor:      primitives.RGB(0.85, 0.2, 0.2),
			HistogramColor:      primitives.RGBA(0.3, 0.4, 0.8, 0.6),
			HistogramBarWidthPx: 4,
		},
		TimeAxisLabel: TimeAxisLabelConfig{
			Locale: "en", TargetSpacingPx: 90, MinTickCount: 2, MaxTickCount: 12, MinSpacingPx: 40,
		},
		PriceAxisLabel: PriceAxisLabelConfig{
			Locale: "en", PolicyProfile: "default", TargetSpacingPx: 44, MinTickCount: 2, MaxTickCount: 10,
			MinSpacingPx: 24, LastPriceExclusionPx: 12, RequestedAxisWidthPx: 60, AdaptiveWidthNoiseThresh: 1, FontSizePx: 11,
		},
		CrosshairGuide: CrosshairGuideLineConfig{
			ShowVertical: true, ShowHorizontal: true, Color: primitives.RGBA(0.3, 0.3, 0.3, 0.6), WidthPx: 1, Style: primitives.StrokeDashed,
		},
		CrosshairLabel: CrosshairAxisLabelConfig{
			ShowOnTimeAxis: true, ShowOnPriceAxis: true,
			FillColor: primitives.RGB(0.2, 0.2, 0.2), TextColor: primitives.RGB(1, 1, 1),
			FontSizePx: 11, PaddingX: 6, PaddingY: 3,
			OverflowPolicy: CrosshairOverflowClip, VisibilityPriority: CrosshairPriorityPrice,
		},
		LastPrice: LastPriceConfig{
			UseTrendColor: true,
			UpColor:       primitives.RGB(0.1, 0.7, 0.3),
			DownColor:     primitives.RGB(0.85, 0.2, 0.2),
			NeutralColor:  primitives.RGB(0.5, 0.5, 0.5),
			LineWidthPx:   1, FontSizePx: 11, PaddingX: 6, PaddingY: 3, CornerRadiusPx: 2, FullAxisWidth: true,
		},
		Markers: MarkerConfig{
			DotColor:        primitives.RGB(0.9, 0.6, 0.1),
			LabelFillColor:  primitives.RGB(0.2, 0.2, 0.2),
			LabelTextColor:  primitives.RGB(1, 1, 1),
			LabelFontSizePx: 11,
			Placement: projection.MarkerPlacementConfig{
				MarkerSizePx: 8, LabelCharWidthPx: 7, LabelHeightPx: 14,
				LabelHorizontalPaddingPx: 6, MarkerLabelGapPx: 4, LaneGapPx: 4,
				MinHorizontalGapPx: 2, VerticalOffsetPx: 6,
			},
		},
		InteractionInput: InteractionInputConfig{
			PanEnabled: true, ScrollZoomEnabled: true, PinchZoomEnabled: true, KineticPanEnabled: true,
			KineticDecayPerSecond: 0.85, KineticStopVelocityAbs: 0.01,
		},
		InitialCrosshairMode: "magnet",
	}
}

// layoutAffecting reports whether new differs from old in a field that
// changes the plot area's extents, per spec §3 ("Changing only visual
// fields ⇒ light invalidation; changing price_axis_width_px or
// time_axis_height_px ⇒ full invalidation").
func layoutAffecting(old, next RenderStyle) bool {
	return old.PriceAxisWidthPx != next.PriceAxisWidthPx || old.TimeAxisHeightPx != next.TimeAxisHeightPx
}
