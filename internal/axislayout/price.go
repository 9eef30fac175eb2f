package axislayout

import "github.com/luhouxiang/chartcore/internal/pricescale"

// ResolvePriceTicks generates nice-number price ticks, applies the
// minimum-spacing filter, and excludes any tick landing within
// exclusionPx of the last-price marker (spec §4.5).
func ResolvePriceTicks(ps *pricescale.PriceScale, targetCount int, dynamicBase, plotHeight, minSpacingPx, lastPricePx, exclusionPx float64) []float64 {
	raw := ps.Ticks(targetCount)
	project := func(v float64) float64 { return ps.PriceToPixel(v, dynamicBase, plotHeight) }
	filtered := MinSpacingFilter(raw, project, minSpacingPx)
	return ExcludeNearLastPrice(filtered, project, lastPricePx, exclusionPx)
}
