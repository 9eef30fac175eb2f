package labelcache

import "math"

// TimeKey is the cache key for a time-axis label: the profile identity
// (which folds in locale/pattern/timezone/generation so a profile change is
// a different key, not a stale hit), the quantized logical time in
// milliseconds, the visible span quantized to milliseconds, and optionally a
// tick-step/suffix discriminator so the same instant can format differently
// at different zoom levels.
type TimeKey struct {
	Profile           string
	QuantizedMillis   int64
	SpanQuantized     int64
	TickStepQuantized int64
	HasSuffix         bool
	IsMajor           bool
}

// PriceKey is the analogous cache key for a price-axis label.
type PriceKey struct {
	Profile           string
	QuantizedNano     int64
	TickStepQuantized int64
	HasSuffix         bool
}

// QuantizeTimeMillis rounds a logical time (seconds) to the nearest
// millisecond, as an int64 so it is hashable and exactly comparable.
func QuantizeTimeMillis(t float64) int64 {
	return int64(math.Round(t * 1000))
}

// QuantizePriceNano rounds a price to fixed nano-units, as an int64.
func QuantizePriceNano(p float64) int64 {
	return int64(math.Round(p * 1e9))
}

// QuantizeTickStep rounds a tick step to the same nano-unit grid as prices,
// for use in a TickStepQuantized discriminator.
func QuantizeTickStep(step float64) int64 {
	return int64(math.Round(step * 1e9))
}
