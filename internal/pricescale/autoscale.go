package pricescale

// AutoscaleTuning parameterizes FromDataTuned/FromOhlcTuned.
type AutoscaleTuning struct {
	PaddingRatio  float64
	MinSpan       float64
	EnsureNonzero bool
}

// FromDataTuned derives domainMin/domainMax from a set of y values (line/
// area series), pads by PaddingRatio, and guards degenerate (empty or
// single-value) spans by expanding around the midpoint.
func FromDataTuned(ys []float64, tuning AutoscaleTuning) (min, max float64, ok bool) {
	lo, hi, found := extent(ys)
	if !found {
		return 0, 0, false
	}
	min, max = padExtent(lo, hi, tuning)
	return min, max, true
}

// FromOhlcTuned derives domainMin/domainMax from candle low/high values.
func FromOhlcTuned(lows, highs []float64, tuning AutoscaleTuning) (min, max float64, ok bool) {
	loLo, loHi, foundLo := extent(lows)
	hiLo, hiHi, foundHi := extent(highs)
	if !foundLo && !foundHi {
		return 0, 0, false
	}
	lo, hi := loLo, hiHi
	if !foundLo {
		lo, hi = hiLo, hiHi
	} else if !foundHi {
		lo, hi = loLo, loHi
	} else {
		if hiLo < lo {
			lo = hiLo
		}
		if loHi > hi {
			hi = loHi
		}
	}
	lo, hi = padExtent(lo, hi, tuning)
	return lo, hi, true
}

func padExtent(lo, hi float64, tuning AutoscaleTuning) (float64, float64) {
	span := hi - lo
	if span <= 0 {
		minSpan := tuning.MinSpan
		if minSpan <= 0 {
			minSpan = expandAroundZeroSpan(lo)
		}
		mid := (lo + hi) / 2
		lo, hi = mid-minSpan/2, mid+minSpan/2
		span = hi - lo
	}
	pad := span * tuning.PaddingRatio
	lo, hi = lo-pad, hi+pad
	if tuning.EnsureNonzero && lo <= 0 && hi > 0 {
		lo = hi * 1e-6
	}
	return lo, hi
}

// expandAroundZeroSpan picks a sensible minimum span when every sample was
// identical: 1% of the magnitude, or a fixed unit span around zero.
func expandAroundZeroSpan(v float64) float64 {
	if v == 0 {
		return 1
	}
	if v < 0 {
		v = -v
	}
	return v * 0.01
}

func extent(values []float64) (lo, hi float64, ok bool) {
	first := true
	for _, v := range values {
		if !isFinite(v) {
			continue
		}
		if first {
			lo, hi = v, v
			first = false
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, !first
}
