package projection

import (
	"github.com/luhouxiang/chartcore/internal/model"
	"github.com/luhouxiang/chartcore/internal/primitives"
)

// CandlestickStyle selects the colors and geometry of a candle series.
type CandlestickStyle struct {
	UpColor      primitives.Color
	DownColor    primitives.Color
	WickWidthPx  float64
	BodyWidthPx  float64
	BorderWidthPx float64
}

// Candle is one bar's projected geometry: a wick (high-low) line and a body
// rectangle (open-close).
type Candle struct {
	Wick primitives.Line
	Body primitives.Rect
}

// ProjectCandles maps canonical OHLC bars to candle geometry. bars must
// already be in canonical (sorted, finite, valid-OHLC) form.
func ProjectCandles(bars []model.OhlcBar, ts Scale, ps PriceMapper, vp Viewport, style CandlestickStyle) []Candle {
	out := make([]Candle, 0, len(bars))
	for _, b := range bars {
		x := vp.x(ts, b.Time)
		yHigh := vp.y(ps, b.High)
		yLow := vp.y(ps, b.Low)
		yOpen := vp.y(ps, b.Open)
		yClose := vp.y(ps, b.Close)

		col := style.DownColor
		if b.Close >= b.Open {
			col = style.UpColor
		}

		bodyTop, bodyBottom := yOpen, yClose
		if bodyTop > bodyBottom {
			bodyTop, bodyBottom = bodyBottom, bodyTop
		}
		bodyHeight := bodyBottom - bodyTop
		if bodyHeight <= 0 {
			bodyHeight = 1 // doji: always draw a visible sliver
		}

		out = append(out, Candle{
			Wick: primitives.Line{
				X1: x, Y1: yHigh, X2: x, Y2: yLow,
				StrokeWidth: clampWidth(style.WickWidthPx),
				Color:       col,
			},
			Body: primitives.Rect{
				X: x - style.BodyWidthPx/2, Y: bodyTop,
				W: style.BodyWidthPx, H: bodyHeight,
				FillColor:   col,
				BorderWidth: style.BorderWidthPx,
				BorderColor: col,
			},
		})
	}
	return out
}

// Bar is one OHLC-bar-chart bar's projected geometry: a vertical high-low
// stroke plus a left open tick and a right close tick.
type Bar struct {
	Vertical primitives.Line
	OpenTick primitives.Line
	CloseTick primitives.Line
}

// ProjectBars maps canonical OHLC bars to the classic "open-high-low-close"
// bar-chart geometry (as opposed to filled candle bodies).
func ProjectBars(bars []model.OhlcBar, ts Scale, ps PriceMapper, vp Viewport, style CandlestickStyle) []Bar {
	out := make([]Bar, 0, len(bars))
	tickLen := style.BodyWidthPx / 2
	if tickLen <= 0 {
		tickLen = 3
	}
	for _, b := range bars {
		x := vp.x(ts, b.Time)
		yHigh := vp.y(ps, b.High)
		yLow := vp.y(ps, b.Low)
		yOpen := vp.y(ps, b.Open)
		yClose := vp.y(ps, b.Close)

		col := style.DownColor
		if b.Close >= b.Open {
			col = style.UpColor
		}
		stroke := clampWidth(style.WickWidthPx)
		out = append(out, Bar{
			Vertical:  primitives.Line{X1: x, Y1: yHigh, X2: x, Y2: yLow, StrokeWidth: stroke, Color: col},
			OpenTick:  primitives.Line{X1: x - tickLen, Y1: yOpen, X2: x, Y2: yOpen, StrokeWidth: stroke, Color: col},
			CloseTick: primitives.Line{X1: x, Y1: yClose, X2: x + tickLen, Y2: yClose, StrokeWidth: stroke, Color: col},
		})
	}
	return out
}
