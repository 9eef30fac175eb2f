package pricescale

import "math"

// Ticks returns approximately n "nice" values spanning the raw domain
// (1/2/5 * 10^k steps), ascending, deterministic regardless of floating
// point order of evaluation.
func (ps *PriceScale) Ticks(n int) []float64 {
	if n <= 0 {
		return nil
	}
	step := niceStep((ps.domainMax-ps.domainMin)/float64(n), false)
	if step <= 0 {
		return nil
	}
	start := math.Ceil(ps.domainMin/step) * step
	var out []float64
	for v := start; v <= ps.domainMax+step*1e-9; v += step {
		out = append(out, roundToStep(v, step))
	}
	return out
}

// niceStep rounds a raw step size to the nearest 1/2/5*10^k value. When
// round is true it picks the closest of {1,2,5}; when false (the tick-count
// case) it rounds up so the resulting number of intervals never exceeds the
// request (the tick count, which includes both ends, can be one more).
func niceStep(raw float64, round bool) float64 {
	if raw <= 0 || !isFinite(raw) {
		return 0
	}
	exp := math.Floor(math.Log10(raw))
	base := math.Pow(10, exp)
	frac := raw / base

	var niceFrac float64
	switch {
	case round:
		switch {
		case frac < 1.5:
			niceFrac = 1
		case frac < 3:
			niceFrac = 2
		case frac < 7:
			niceFrac = 5
		default:
			niceFrac = 10
		}
	default:
		switch {
		case frac <= 1:
			niceFrac = 1
		case frac <= 2:
			niceFrac = 2
		case frac <= 5:
			niceFrac = 5
		default:
			niceFrac = 10
		}
	}
	return niceFrac * base
}

func roundToStep(v, step float64) float64 {
	return math.Round(v/step) * step
}
