package chartengine

import (
	"github.com/luhouxiang/chartcore/internal/invalidation"
	"github.com/luhouxiang/chartcore/internal/model"
	"github.com/luhouxiang/chartcore/internal/pricescale"
)

// VisibleTimeRange returns the current visible time range.
func (e *Engine) VisibleTimeRange() (start, end float64) {
	r := e.ts.VisibleRange()
	return r.Start, r.End
}

// FullTimeRange returns the current full time range.
func (e *Engine) FullTimeRange() (start, end float64) {
	r := e.ts.FullRange()
	return r.Start, r.End
}

// SetTimeVisibleRange replaces the visible time range and re-applies
// constraints (spec §4.1, "set_visible_range").
func (e *Engine) SetTimeVisibleRange(start, end float64) error {
	if err := e.ts.SetVisibleRange(start, end, e.width()); err != nil {
		return err
	}
	e.onVisibleRangeChanged()
	return nil
}

// ResetTimeVisibleRange sets the visible range back to the full range.
func (e *Engine) ResetTimeVisibleRange() {
	e.ts.ResetVisibleRange(e.width())
	e.onVisibleRangeChanged()
}

// PanTimeVisibleByDelta shifts the visible range by a time delta.
func (e *Engine) PanTimeVisibleByDelta(dt float64) {
	e.ts.PanVisibleByDelta(dt, e.width())
	e.onVisibleRangeChanged()
}

// PanTimeVisibleByPixels shifts the visible range by a pixel delta.
func (e *Engine) PanTimeVisibleByPixels(dpx float64) {
	e.ts.PanVisibleByPixels(dpx, e.width())
	e.onVisibleRangeChanged()
}

// ZoomTimeVisibleAroundPixel rescales the visible span around a pixel
// anchor.
func (e *Engine) ZoomTimeVisibleAroundPixel(factor, anchorPx, minSpan float64) {
	e.ts.ZoomVisibleAroundPixel(factor, anchorPx, minSpan, e.width())
	e.onVisibleRangeChanged()
}

// WheelZoomTimeVisible converts a wheel deltaY into a zoom factor and
// applies it (spec §4.1, "wheel_zoom").
func (e *Engine) WheelZoomTimeVisible(deltaY, anchorPx, minSpan float64) {
	if !e.inputCfg.ScrollZoomEnabled {
		return
	}
	e.ts.WheelZoom(deltaY, anchorPx, minSpan, e.width())
	e.onVisibleRangeChanged()
}

// PinchZoomTimeVisible applies an explicit pinch zoom factor.
func (e *Engine) PinchZoomTimeVisible(factor, anchorPx, minSpan float64) {
	if !e.inputCfg.PinchZoomEnabled {
		return
	}
	e.ts.PinchZoom(factor, anchorPx, minSpan, e.width())
	e.onVisibleRangeChanged()
}

// FitTimeToData derives the full time range from the union of candle and
// point extremes and resets the visible range to match (spec §4.1,
// "fit_to_mixed_data"). Returns false when neither series has data.
func (e *Engine) FitTimeToData() bool {
	times := make([]float64, 0, len(e.data)+len(e.candles))
	for _, c := range e.candles {
		times = append(times, c.Time)
	}
	for _, p := range e.data {
		times = append(times, p.X)
	}
	ok := e.ts.FitToMixedData(times, e.fitTuning, e.width())
	if ok {
		e.markInvalid(invalidation.LevelFull, invalidation.TopicTimeScale, invalidation.TopicAxis)
		e.dispatch(EventVisibleRangeChanged, nil)
	}
	return ok
}

func (e *Engine) onVisibleRangeChanged() {
	e.markInvalid(invalidation.LevelLight, invalidation.TopicTimeScale, invalidation.TopicAxis)
	e.dispatch(EventVisibleRangeChanged, nil)
}

// PriceDomain returns the current raw price domain.
func (e *Engine) PriceDomain() (min, max float64) { return e.ps.Domain() }

// SetPriceScaleMode switches the price-scale's display mode, preserving
// the raw domain.
func (e *Engine) SetPriceScaleMode(mode pricescale.Mode) error {
	if err := e.ps.WithMode(mode); err != nil {
		return err
	}
	e.markInvalid(invalidation.LevelFull, invalidation.TopicPriceScale, invalidation.TopicAxis)
	return nil
}

// SetPriceScaleInverted flips the pixel-mapping direction.
func (e *Engine) SetPriceScaleInverted(inverted bool) {
	e.ps.WithInverted(inverted)
	e.markInvalid(invalidation.LevelFull, invalidation.TopicPriceScale, invalidation.TopicAxis)
}

// SetPriceScaleMargins replaces the top/bottom margins.
func (e *Engine) SetPriceScaleMargins(m pricescale.Margins) error {
	if err := e.ps.WithMargins(m); err != nil {
		return err
	}
	e.markInvalid(invalidation.LevelFull, invalidation.TopicPriceScale, invalidation.TopicAxis)
	return nil
}

// SetPriceScaleTransformedBase sets the explicit Percentage/IndexedTo100
// base price.
func (e *Engine) SetPriceScaleTransformedBase(base float64) error {
	if err := e.ps.WithTransformedBase(base); err != nil {
		return err
	}
	e.transformedBase = PriceScaleTransformedBaseConfig{Explicit: true, Value: base}
	e.markInvalid(invalidation.LevelFull, invalidation.TopicPriceScale, invalidation.TopicAxis)
	return nil
}

// ClearPriceScaleTransformedBase reverts Percentage/IndexedTo100 to a
// dynamic (data-derived) base, keeping whichever TransformedBaseSource was
// configured for dynamic resolution.
func (e *Engine) ClearPriceScaleTransformedBase() {
	e.ps.ClearTransformedBase()
	e.transformedBase.Explicit = false
	e.transformedBase.Value = 0
	e.markInvalid(invalidation.LevelFull, invalidation.TopicPriceScale, invalidation.TopicAxis)
}

// SetPriceScaleTransformedBaseSource selects which dynamic sample a
// non-explicit Percentage/IndexedTo100 base tracks (spec §4.2). Has no
// effect while an explicit base is set.
func (e *Engine) SetPriceScaleTransformedBaseSource(source TransformedBaseSource) {
	e.transformedBase.DynamicSource = source
	if !e.transformedBase.Explicit {
		e.markInvalid(invalidation.LevelFull, invalidation.TopicPriceScale, invalidation.TopicAxis)
	}
}

// AutoscalePriceFromData derives the price domain from all line/area data
// points.
func (e *Engine) AutoscalePriceFromData() error {
	ys := make([]float64, len(e.data))
	for i, p := range e.data {
		ys[i] = p.Y
	}
	return e.applyAutoscale(pricescale.FromDataTuned(ys, e.autoscaleTuning))
}

// AutoscalePriceFromCandles derives the price domain from all OHLC bars.
func (e *Engine) AutoscalePriceFromCandles() error {
	lows, highs := extractOhlcExtremes(e.candles)
	return e.applyAutoscale(pricescale.FromOhlcTuned(lows, highs, e.autoscaleTuning))
}

// AutoscalePriceFromVisibleData derives the price domain from only the
// data points inside the current visible time window.
func (e *Engine) AutoscalePriceFromVisibleData() error {
	start, end := e.VisibleTimeRange()
	ys := make([]float64, 0, len(e.data))
	for _, p := range e.data {
		if p.X >= start && p.X <= end {
			ys = append(ys, p.Y)
		}
	}
	return e.applyAutoscale(pricescale.FromDataTuned(ys, e.autoscaleTuning))
}

// AutoscalePriceFromVisibleCandles derives the price domain from only the
// candles inside the current visible time window.
func (e *Engine) AutoscalePriceFromVisibleCandles() error {
	start, end := e.VisibleTimeRange()
	visible := make([]float64, 0, len(e.candles))
	visibleHighs := make([]float64, 0, len(e.candles))
	for _, c := range e.candles {
		if c.Time >= start && c.Time <= end {
			visible = append(visible, c.Low)
			visibleHighs = append(visibleHighs, c.High)
		}
	}
	return e.applyAutoscale(pricescale.FromOhlcTuned(visible, visibleHighs, e.autoscaleTuning))
}

func (e *Engine) applyAutoscale(min, max float64, ok bool) error {
	if !ok {
		return nil
	}
	if err := e.ps.SetDomain(min, max); err != nil {
		return err
	}
	e.markInvalid(invalidation.LevelFull, invalidation.TopicPriceScale, invalidation.TopicAxis)
	return nil
}

func extractOhlcExtremes(bars []model.OhlcBar) (lows, highs []float64) {
	lows = make([]float64, len(bars))
	highs = make([]float64, len(bars))
	for i, b := range bars {
		lows[i] = b.Low
		highs[i] = b.High
	}
	return lows, highs
}
