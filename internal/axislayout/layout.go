// Package axislayout resolves the plot area against requested axis sizes
// and generates price/time axis ticks, including the density scaling,
// minimum-spacing filter, and label packing rules of spec §4.5.
package axislayout

import "github.com/luhouxiang/chartcore/internal/primitives"

const axisLabelPaddingPx = 8

// ResolvedLayout is the outcome of the two-pass plot-area resolution.
type ResolvedLayout struct {
	PlotRight      float64
	PlotBottom     float64
	PriceAxisWidth float64
	TimeAxisHeight float64
	Adaptive       bool // true if PriceAxisWidth was widened beyond the request
}

// ResolvePlotArea computes the plot area from the viewport minus the
// requested axis sizes (pass 1), then re-measures the price axis's
// required width from its tick + last-price labels and widens it if the
// measured width exceeds the request by more than noiseThresholdPx (pass
// 2), per spec §4.5.
func ResolvePlotArea(vp primitives.Viewport, requestedPriceAxisWidth, requestedTimeAxisHeight float64, priceLabels []string, lastPriceLabel string, fontSizePx, noiseThresholdPx float64) ResolvedLayout {
	width := requestedPriceAxisWidth
	measured := maxLabelWidth(priceLabels, fontSizePx)
	if w := EstimateTextWidth(lastPriceLabel, fontSizePx); w > measured {
		measured = w
	}
	measured += axisLabelPaddingPx

	adaptive := false
	if measured > width+noiseThresholdPx {
		width = measured
		adaptive = true
	}

	return ResolvedLayout{
		PlotRight:      vp.Width - width,
		PlotBottom:     vp.Height - requestedTimeAxisHeight,
		PriceAxisWidth: width,
		TimeAxisHeight: requestedTimeAxisHeight,
		Adaptive:       adaptive,
	}
}

func maxLabelWidth(labels []string, fontSizePx float64) float64 {
	max := 0.0
	for _, l := range labels {
		if w := EstimateTextWidth(l, fontSizePx); w > max {
			max = w
		}
	}
	return max
}

// EstimateTextWidth is a deterministic per-character width estimator:
// average glyph width scaled by font size. It intentionally does not
// depend on any font-rendering backend so layout stays reproducible.
func EstimateTextWidth(text string, fontSizePx float64) float64 {
	const avgCharWidthRatio = 0.62
	return float64(len([]rune(text))) * fontSizePx * avgCharWidthRatio
}
