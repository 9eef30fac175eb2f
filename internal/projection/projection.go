// Package projection holds the pure geometry kernels that turn scale
// snapshots and canonical data into primitive shapes. Every function here
// is a pure mapping: (data, scale snapshot, viewport) -> owned geometry. No
// kernel mutates a scale or retains a reference to its inputs (spec §3,
// "projections receive snapshots ... and return owned geometry vectors").
package projection

import "github.com/luhouxiang/chartcore/internal/primitives"

// Scale is the minimal read-only surface a projection kernel needs from the
// time axis: mapping a raw time value to a pixel x for the current viewport
// width. timescale.TimeScale satisfies this directly.
type Scale interface {
	TimeToPixel(t, width float64) float64
}

// PriceMapper is the minimal read-only surface needed from the price axis.
// dynamicBase feeds Percentage/IndexedTo100 transforms when no explicit
// base was configured; pass 0 for Linear/Log.
type PriceMapper interface {
	PriceToPixel(p, dynamicBase, plotHeight float64) float64
}

// Viewport carries the pixel extents every kernel projects into.
type Viewport struct {
	Width       float64
	PlotHeight  float64
	DynamicBase float64
}

func (v Viewport) x(ts Scale, t float64) float64 {
	return ts.TimeToPixel(t, v.Width)
}

func (v Viewport) y(ps PriceMapper, p float64) float64 {
	return ps.PriceToPixel(p, v.DynamicBase, v.PlotHeight)
}

func clampWidth(w float64) float64 {
	if w < 1 {
		return 1
	}
	return w
}

func lineColor(c primitives.Color, width float64) primitives.Line {
	return primitives.Line{StrokeWidth: clampWidth(width), Color: c}
}
