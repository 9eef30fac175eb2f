// Package timescale models the time axis: the full and visible time ranges,
// zoom/pan/fit operations over them, and the lazily-derived logical-index
// coordinate space used for LWC-style bar-spacing math. Every mutating
// method validates its inputs at the boundary and leaves state untouched on
// failure (spec §7).
package timescale

import (
	"fmt"
	"math"
	"sort"

	"github.com/luhouxiang/chartcore/internal/primitives"
)

// Range is a half-open-by-convention [Start, End] span; Start must be
// strictly less than End for both the full and visible time ranges.
type Range struct {
	Start float64
	End   float64
}

func (r Range) span() float64 { return r.End - r.Start }

func (r Range) validate(name string) error {
	if !isFinite(r.Start) || !isFinite(r.End) {
		return fmt.Errorf("%w: %s must be finite", primitives.ErrInvalidData, name)
	}
	if !(r.Start < r.End) {
		return fmt.Errorf("%w: %s requires start < end, got [%v,%v]", primitives.ErrInvalidData, name, r.Start, r.End)
	}
	return nil
}

// NavigationConfig forces a specific bar-spacing/right-offset target whenever
// it is applied, as the first step of the constraint chain (spec §4.1.2).
type NavigationConfig struct {
	Enabled               bool
	TargetBarSpacingPx    float64
	TargetRightOffsetBars float64
}

// ScrollZoomConfig configures wheel/scroll zoom behavior.
type ScrollZoomConfig struct {
	WheelStepRatio        float64
	RightBarStaysOnScroll bool
}

// ZoomLimitConfig bounds bar_spacing_px.
type ZoomLimitConfig struct {
	MinBarSpacingPx float64
	MaxBarSpacingPx float64 // 0 disables the upper bound
}

// EdgeConfig clamps the visible range so it cannot cross the full range's
// edges.
type EdgeConfig struct {
	FixLeftEdge  bool
	FixRightEdge bool
}

// ResizeConfig controls what happens to the visible range across a viewport
// width change.
type ResizeConfig struct {
	LockVisibleRangeOnResize bool
}

// RealtimeAppendConfig controls right-edge tracking on realtime appends.
type RealtimeAppendConfig struct {
	RightEdgeToleranceBars float64
}

// FitTuning parameters for FitToMixedData.
type FitTuning struct {
	PaddingRatio float64
	MinSpanSec   float64
}

// TimeScale owns the full/visible time ranges and the behavior configs that
// constrain their mutation.
type TimeScale struct {
	full    Range
	visible Range

	navigation  NavigationConfig
	scrollZoom  ScrollZoomConfig
	zoomLimit   ZoomLimitConfig
	edge        EdgeConfig
	resize      ResizeConfig
	realtime    RealtimeAppendConfig

	referenceStep float64 // 0 means "no index coordinate space yet"
	lastWidth     float64
}

// New constructs a TimeScale. full and visible must both satisfy start<end
// and be finite; visible need not initially lie within full (callers
// typically fit before interacting).
func New(full, visible Range) (*TimeScale, error) {
	if err := full.validate("full_range"); err != nil {
		return nil, err
	}
	if err := visible.validate("visible_range"); err != nil {
		return nil, err
	}
	return &TimeScale{
		full:    full,
		visible: visible,
		zoomLimit: ZoomLimitConfig{MinBarSpacingPx: 0.5},
		realtime:  RealtimeAppendConfig{RightEdgeToleranceBars: 1},
	}, nil
}

func (ts *TimeScale) SetNavigationConfig(c NavigationConfig)     { ts.navigation = c }
func (ts *TimeScale) SetScrollZoomConfig(c ScrollZoomConfig)     { ts.scrollZoom = c }
func (ts *TimeScale) SetZoomLimitConfig(c ZoomLimitConfig)       { ts.zoomLimit = c }
func (ts *TimeScale) SetEdgeConfig(c EdgeConfig)                 { ts.edge = c }
func (ts *TimeScale) SetResizeConfig(c ResizeConfig)             { ts.resize = c }
func (ts *TimeScale) SetRealtimeAppendConfig(c RealtimeAppendConfig) { ts.realtime = c }

func (ts *TimeScale) NavigationConfig() NavigationConfig         { return ts.navigation }
func (ts *TimeScale) ScrollZoomConfig() ScrollZoomConfig         { return ts.scrollZoom }
func (ts *TimeScale) ZoomLimitConfig() ZoomLimitConfig           { return ts.zoomLimit }
func (ts *TimeScale) EdgeConfig() EdgeConfig                     { return ts.edge }
func (ts *TimeScale) ResizeConfig() ResizeConfig                 { return ts.resize }
func (ts *TimeScale) RealtimeAppendConfig() RealtimeAppendConfig { return ts.realtime }

// FullRange returns the full data-backed time range.
func (ts *TimeScale) FullRange() Range { return ts.full }

// VisibleRange returns the currently visible time range.
func (ts *TimeScale) VisibleRange() Range { return ts.visible }

// ReferenceTimeStep returns the cached median bar step, or 0 if unset.
func (ts *TimeScale) ReferenceTimeStep() float64 { return ts.referenceStep }

// SetReferenceTimeStep is called by the owning engine whenever the backing
// data/candle series changes; it is the median of finite positive
// consecutive-time differences (candles take priority, spec §3), or 0 when
// fewer than two samples exist.
func (ts *TimeScale) SetReferenceTimeStep(step float64) {
	if step > 0 && isFinite(step) {
		ts.referenceStep = step
	} else {
		ts.referenceStep = 0
	}
}

// TimeToPixel maps a time value to a pixel x coordinate given the current
// visible range and a viewport width.
func (ts *TimeScale) TimeToPixel(t, width float64) float64 {
	span := ts.visible.span()
	return (t - ts.visible.Start) / span * width
}

// PixelToTime is the inverse of TimeToPixel.
func (ts *TimeScale) PixelToTime(px, width float64) float64 {
	span := ts.visible.span()
	return ts.visible.Start + px/width*span
}

// SetVisibleRange replaces the visible range outright, then applies zoom
// limit + edge constraints (but not navigation re-synthesis, per spec
// §4.1 "set_visible_range").
func (ts *TimeScale) SetVisibleRange(start, end, width float64) error {
	r := Range{Start: start, End: end}
	if err := r.validate("visible_range"); err != nil {
		return err
	}
	ts.visible = r
	ts.applyConstraints(width, false)
	return nil
}

// ResetVisibleRange sets the visible range back to the full range.
func (ts *TimeScale) ResetVisibleRange(width float64) {
	ts.visible = ts.full
	ts.applyConstraints(width, true)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// sortedFloat64s returns an ascending copy of values. Nothing in the package
// calls it; NearestFilledSlot takes its candidates already sorted.
func sortedFloat64s(values []float64) []float64 {
	out := append([]float64(nil), values...)
	sort.Float64s(out)
	return out
}
