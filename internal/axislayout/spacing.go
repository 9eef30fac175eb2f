package axislayout

import "math"

// MinSpacingFilter keeps ticks (ascending, as projected by project) whose
// pixel distance from the previously kept tick is at least minSpacingPx,
// scanning left to right. The very last tick is always retained: if the
// natural greedy pass already kept it, nothing changes; otherwise it is
// appended when the gap to the current last-kept tick still clears
// minSpacingPx, or else it replaces the first kept tick to make room (spec
// §4.5, "always keep last tick ... else replace first").
func MinSpacingFilter(ticks []float64, project func(float64) float64, minSpacingPx float64) []float64 {
	if len(ticks) == 0 {
		return nil
	}
	kept := make([]float64, 0, len(ticks))
	lastX := math.Inf(-1)
	for _, t := range ticks {
		x := project(t)
		if x-lastX >= minSpacingPx {
			kept = append(kept, t)
			lastX = x
		}
	}

	lastOriginal := ticks[len(ticks)-1]
	if len(kept) > 0 && kept[len(kept)-1] == lastOriginal {
		return kept
	}
	if len(kept) == 0 {
		return []float64{lastOriginal}
	}
	if project(lastOriginal)-project(kept[len(kept)-1]) >= minSpacingPx {
		return append(kept, lastOriginal)
	}
	kept = kept[1:]
	return append(kept, lastOriginal)
}

// ExcludeNearLastPrice drops any tick whose projected pixel falls within
// exclusionPx of the last-price marker's pixel.
func ExcludeNearLastPrice(ticks []float64, project func(float64) float64, lastPricePx, exclusionPx float64) []float64 {
	out := make([]float64, 0, len(ticks))
	for _, t := range ticks {
		if math.Abs(project(t)-lastPricePx) < exclusionPx {
			continue
		}
		out = append(out, t)
	}
	return out
}
