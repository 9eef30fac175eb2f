package chartengine

import (
	"github.com/luhouxiang/chartcore/internal/invalidation"
	"github.com/luhouxiang/chartcore/internal/logger"
	"github.com/luhouxiang/chartcore/internal/model"
)

// SetData replaces the line/area/baseline/histogram series wholesale,
// canonicalizing (drop non-finite, sort by x, keep-last-on-duplicate-x) per
// spec §3. On success this marks Full/{Series, PriceScale, Axis} and
// refreshes the cached reference time step; it does not fit the time range,
// and it recomputes the price domain only through maybeAutoscaleOnDataSet,
// when PriceScaleRealtimeConfig.AutoscaleOnDataSet is enabled.
func (e *Engine) SetData(points []model.DataPoint) error {
	e.data = model.CanonicalizePoints(points)
	e.refreshReferenceStep()
	e.maybeAutoscaleOnDataSet()
	e.markInvalid(invalidation.LevelFull, invalidation.TopicSeries, invalidation.TopicPriceScale, invalidation.TopicAxis)
	e.dispatch(EventDataUpdated, nil)
	return nil
}

// AppendPoint applies realtime-update semantics (spec §3): a point whose x
// is strictly greater than the last point's x is appended; one with an
// equal x replaces the last point; an older x is rejected with
// InvalidData and the series is left untouched.
func (e *Engine) AppendPoint(p model.DataPoint) error {
	return e.realtimePoint(p, true)
}

// UpdatePoint applies the same realtime-update semantics as AppendPoint
// (spec §3 groups append_* and update_* under one realtime-update rule);
// it exists as a distinct call for callers amending an in-progress sample
// rather than streaming a genuinely new one.
func (e *Engine) UpdatePoint(p model.DataPoint) error {
	return e.realtimePoint(p, false)
}

func (e *Engine) realtimePoint(p model.DataPoint, isAppend bool) error {
	if !finitePoint(p) {
		return validationError("data point x/y must be finite, got (%v,%v)", p.X, p.Y)
	}
	if len(e.data) > 0 {
		last := e.data[len(e.data)-1]
		switch {
		case p.X < last.X:
			return validationError("realtime point time %v is older than the last point time %v", p.X, last.X)
		case p.X == last.X:
			e.data[len(e.data)-1] = p
		default:
			e.data = append(e.data, p)
		}
	} else {
		e.data = append(e.data, p)
	}
	e.refreshReferenceStep()
	if isAppend {
		e.ts.AppendRealtime(p.X, e.width())
	}
	e.maybeAutoscaleOnDataUpdate()
	e.markInvalid(invalidation.LevelFull, invalidation.TopicSeries, invalidation.TopicPriceScale, invalidation.TopicAxis)
	e.dispatch(EventDataUpdated, nil)
	return nil
}

// SetCandles replaces the OHLC series wholesale, canonicalizing per spec
// §3 (non-finite/invalid-OHLC dropped, sorted by time, keep-last on
// duplicate time).
func (e *Engine) SetCandles(bars []model.OhlcBar) error {
	e.candles = model.CanonicalizeBars(bars)
	e.refreshReferenceStep()
	e.maybeAutoscaleOnDataSet()
	e.markInvalid(invalidation.LevelFull, invalidation.TopicSeries, invalidation.TopicPriceScale, invalidation.TopicAxis)
	e.dispatch(EventCandlesUpdated, nil)
	return nil
}

// AppendCandle applies realtime-update semantics to the OHLC series.
func (e *Engine) AppendCandle(b model.OhlcBar) error {
	return e.realtimeCandle(b, true)
}

// UpdateCandle applies realtime-update semantics to the OHLC series. An
// equal-time update re-validates OHLC sanity on the replacement the same
// way an insert would. Like AppendCandle it then runs
// maybeAutoscaleOnDataUpdate, which recomputes the price domain only when
// PriceScaleRealtimeConfig.AutoscaleOnDataUpdate is enabled.
func (e *Engine) UpdateCandle(b model.OhlcBar) error {
	return e.realtimeCandle(b, false)
}

func (e *Engine) realtimeCandle(b model.OhlcBar, isAppend bool) error {
	if !b.Valid() {
		return validationError("OHLC bar at time %v fails low<=min(open,close)<=max(open,close)<=high", b.Time)
	}
	if len(e.candles) > 0 {
		last := e.candles[len(e.candles)-1]
		switch {
		case b.Time < last.Time:
			return validationError("realtime candle time %v is older than the last candle time %v", b.Time, last.Time)
		case b.Time == last.Time:
			e.candles[len(e.candles)-1] = b
		default:
			e.candles = append(e.candles, b)
		}
	} else {
		e.candles = append(e.candles, b)
	}
	e.refreshReferenceStep()
	if isAppend {
		e.ts.AppendRealtime(b.Time, e.width())
	}
	e.maybeAutoscaleOnDataUpdate()
	e.markInvalid(invalidation.LevelFull, invalidation.TopicSeries, invalidation.TopicPriceScale, invalidation.TopicAxis)
	e.dispatch(EventCandlesUpdated, nil)
	return nil
}

// maybeAutoscaleOnDataSet runs an autoscale after a wholesale set_data/
// set_candles when configured to (spec §7's "logged and suppressed"
// recoverability policy: a failure here never rejects the data mutation
// that already committed, it just leaves the price domain unchanged).
func (e *Engine) maybeAutoscaleOnDataSet() {
	if !e.priceRealtime.AutoscaleOnDataSet {
		return
	}
	if err := e.autoscaleForRealtime(); err != nil {
		logger.Error("skipping price autoscale after data set", "error", err)
	}
}

// maybeAutoscaleOnDataUpdate mirrors maybeAutoscaleOnDataSet for realtime
// append/update calls.
func (e *Engine) maybeAutoscaleOnDataUpdate() {
	if !e.priceRealtime.AutoscaleOnDataUpdate {
		return
	}
	if err := e.autoscaleForRealtime(); err != nil {
		logger.Error("skipping price autoscale after realtime data update", "error", err)
	}
}

// autoscaleForRealtime prefers candles over points (a chart with both a
// candle and a line series autoscales price from the candles), and honors
// PriceScaleRealtimeConfig.SourceMode's all-data-vs-visible-only split.
func (e *Engine) autoscaleForRealtime() error {
	visibleOnly := e.priceRealtime.SourceMode == SourceVisibleData
	switch {
	case len(e.candles) > 0 && visibleOnly:
		return e.AutoscalePriceFromVisibleCandles()
	case len(e.candles) > 0:
		return e.AutoscalePriceFromCandles()
	case len(e.data) > 0 && visibleOnly:
		return e.AutoscalePriceFromVisibleData()
	case len(e.data) > 0:
		return e.AutoscalePriceFromData()
	default:
		return nil
	}
}

// SetSeriesMetadata replaces the main series' display metadata (name,
// visibility). Toggling visibility affects the series scene only, so this
// marks a Light invalidation.
func (e *Engine) SetSeriesMetadata(meta SeriesMetadata) {
	e.series = meta
	e.markInvalid(invalidation.LevelLight, invalidation.TopicSeries)
}

// SeriesMetadata returns the current series metadata.
func (e *Engine) SeriesMetadata() SeriesMetadata { return e.series }

func finitePoint(p model.DataPoint) bool {
	return isFinite(p.X) && isFinite(p.Y)
}
