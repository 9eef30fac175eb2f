package chartengine

import (
	"github.com/luhouxiang/chartcore/internal/invalidation"
	"github.com/luhouxiang/chartcore/internal/labelcache"
	"github.com/luhouxiang/chartcore/internal/projection"
)

// RenderStyle returns the current flat visual-style record.
func (e *Engine) RenderStyle() RenderStyle { return e.style }

// SetRenderStyle replaces the visual-style record, comparing the old and
// new layout-affecting fields to decide Full vs. Light invalidation (spec
// §3: "changing price_axis_width_px or time_axis_height_px ⇒ full
// invalidation", otherwise Light/{Style, Axis, Series, Cursor}).
func (e *Engine) SetRenderStyle(next RenderStyle) {
	prev := e.style
	e.style = next
	if layoutAffecting(prev, next) {
		e.markInvalid(invalidation.LevelFull, invalidation.TopicStyle, invalidation.TopicAxis, invalidation.TopicPaneLayout)
		return
	}
	e.markInvalid(invalidation.LevelLight, invalidation.TopicStyle, invalidation.TopicAxis, invalidation.TopicSeries, invalidation.TopicCursor)
}

// CandlestickStyle returns the current candle/bar colors and geometry.
func (e *Engine) CandlestickStyle() projection.CandlestickStyle { return e.candleStyle }

// SetCandlestickStyle replaces the candle/bar colors and geometry (a
// visual-only change: Light invalidation).
func (e *Engine) SetCandlestickStyle(style projection.CandlestickStyle) {
	e.candleStyle = style
	e.markInvalid(invalidation.LevelLight, invalidation.TopicStyle, invalidation.TopicSeries)
}

// TimeAxisLabelConfig returns the current time-axis label configuration.
func (e *Engine) TimeAxisLabelConfig() TimeAxisLabelConfig { return e.timeAxisCfg }

// SetTimeAxisLabelConfig replaces the time-axis label configuration.
func (e *Engine) SetTimeAxisLabelConfig(cfg TimeAxisLabelConfig) {
	e.timeAxisCfg = cfg
	e.markInvalid(invalidation.LevelFull, invalidation.TopicAxis)
}

// PriceAxisLabelConfig returns the current price-axis label configuration.
func (e *Engine) PriceAxisLabelConfig() PriceAxisLabelConfig { return e.priceAxisCfg }

// SetPriceAxisLabelConfig replaces the price-axis label configuration.
func (e *Engine) SetPriceAxisLabelConfig(cfg PriceAxisLabelConfig) {
	e.priceAxisCfg = cfg
	e.markInvalid(invalidation.LevelFull, invalidation.TopicAxis)
}

// CrosshairGuideLineConfig returns the crosshair guide-line configuration.
func (e *Engine) CrosshairGuideLineConfig() CrosshairGuideLineConfig { return e.crosshairGuide }

// SetCrosshairGuideLineConfig replaces the crosshair guide-line
// configuration.
func (e *Engine) SetCrosshairGuideLineConfig(cfg CrosshairGuideLineConfig) {
	e.crosshairGuide = cfg
	e.markInvalid(invalidation.LevelLight, invalidation.TopicStyle, invalidation.TopicCursor)
}

// CrosshairAxisLabelConfig returns the crosshair axis-label configuration.
func (e *Engine) CrosshairAxisLabelConfig() CrosshairAxisLabelConfig { return e.crosshairLabel }

// SetCrosshairAxisLabelConfig replaces the crosshair axis-label
// configuration.
func (e *Engine) SetCrosshairAxisLabelConfig(cfg CrosshairAxisLabelConfig) {
	e.crosshairLabel = cfg
	e.markInvalid(invalidation.LevelLight, invalidation.TopicStyle, invalidation.TopicCursor)
}

// LastPriceConfig returns the last-price marker configuration.
func (e *Engine) LastPriceConfig() LastPriceConfig { return e.lastPriceCfg }

// SetLastPriceConfig replaces the last-price marker configuration.
func (e *Engine) SetLastPriceConfig(cfg LastPriceConfig) {
	e.lastPriceCfg = cfg
	e.markInvalid(invalidation.LevelLight, invalidation.TopicStyle, invalidation.TopicAxis)
}

// SetCustomTimeFormatter installs a custom time-label formatter and bumps
// its cache generation so stale CustomTimeProfile entries are invalidated
// (spec §4.4).
func (e *Engine) SetCustomTimeFormatter(fn labelcache.CustomTimeFormatter) {
	e.customTimeFormatterGeneration++
	e.labels.SetCustomTimeFormatter(fn)
	e.markInvalid(invalidation.LevelFull, invalidation.TopicAxis)
}

// SetCustomPriceFormatter installs a custom price-label formatter and
// bumps its cache generation.
func (e *Engine) SetCustomPriceFormatter(fn labelcache.CustomPriceFormatter) {
	e.customPriceFormatterGeneration++
	e.labels.SetCustomPriceFormatter(fn)
	e.markInvalid(invalidation.LevelFull, invalidation.TopicAxis)
}

// LabelCacheStats returns the time and price label cache hit/miss/size
// counters.
func (e *Engine) LabelCacheStats() (time, price labelcache.Stats) {
	return e.labels.TimeStats(), e.labels.PriceStats()
}
