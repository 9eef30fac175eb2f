package projection

import (
	"github.com/luhouxiang/chartcore/internal/model"
	"github.com/luhouxiang/chartcore/internal/primitives"
)

// ProjectLine connects consecutive canonical points with straight segments.
func ProjectLine(points []model.DataPoint, ts Scale, ps PriceMapper, vp Viewport, color primitives.Color, strokeWidth float64) []primitives.Line {
	if len(points) < 2 {
		return nil
	}
	out := make([]primitives.Line, 0, len(points)-1)
	prevX, prevY := vp.x(ts, points[0].X), vp.y(ps, points[0].Y)
	for _, p := range points[1:] {
		x, y := vp.x(ts, p.X), vp.y(ps, p.Y)
		out = append(out, primitives.Line{X1: prevX, Y1: prevY, X2: x, Y2: y, StrokeWidth: clampWidth(strokeWidth), Color: color})
		prevX, prevY = x, y
	}
	return out
}

// ProjectArea returns the top-boundary segments of an area series plus the
// two vertical closure segments dropping to the baseline pixel at the
// first and last point, so a rasterizer can fill the resulting polygon.
func ProjectArea(points []model.DataPoint, ts Scale, ps PriceMapper, vp Viewport, baselinePrice float64, color primitives.Color, strokeWidth float64) []primitives.Line {
	if len(points) < 2 {
		return nil
	}
	top := ProjectLine(points, ts, ps, vp, color, strokeWidth)
	baseY := vp.y(ps, baselinePrice)
	firstX, firstY := vp.x(ts, points[0].X), vp.y(ps, points[0].Y)
	lastP := points[len(points)-1]
	lastX, lastY := vp.x(ts, lastP.X), vp.y(ps, lastP.Y)

	closures := []primitives.Line{
		{X1: firstX, Y1: firstY, X2: firstX, Y2: baseY, StrokeWidth: clampWidth(strokeWidth), Color: color},
		{X1: lastX, Y1: lastY, X2: lastX, Y2: baseY, StrokeWidth: clampWidth(strokeWidth), Color: color},
	}
	return append(top, closures...)
}

// ProjectBaseline splits the line into segments colored per-segment
// depending on whether each endpoint lies above or below baselinePrice,
// mirroring lightweight-charts' two-tone baseline series.
func ProjectBaseline(points []model.DataPoint, ts Scale, ps PriceMapper, vp Viewport, baselinePrice float64, aboveColor, belowColor primitives.Color, strokeWidth float64) []primitives.Line {
	if len(points) < 2 {
		return nil
	}
	out := make([]primitives.Line, 0, len(points)-1)
	prevX, prevY := vp.x(ts, points[0].X), vp.y(ps, points[0].Y)
	prevAbove := points[0].Y >= baselinePrice
	for _, p := range points[1:] {
		x, y := vp.x(ts, p.X), vp.y(ps, p.Y)
		above := p.Y >= baselinePrice
		col := belowColor
		if prevAbove && above {
			col = aboveColor
		} else if prevAbove || above {
			// segment crosses the baseline: color by the point closer to the
			// baseline's own side, defaulting to the leading endpoint.
			if above {
				col = aboveColor
			}
		}
		out = append(out, primitives.Line{X1: prevX, Y1: prevY, X2: x, Y2: y, StrokeWidth: clampWidth(strokeWidth), Color: col})
		prevX, prevY, prevAbove = x, y, above
	}
	return out
}

// ProjectHistogram maps points to vertical bars from baselinePrice to each
// point's value, for volume/histogram style series.
func ProjectHistogram(points []model.DataPoint, ts Scale, ps PriceMapper, vp Viewport, baselinePrice, barWidthPx float64, color primitives.Color) []primitives.Rect {
	out := make([]primitives.Rect, 0, len(points))
	baseY := vp.y(ps, baselinePrice)
	for _, p := range points {
		x := vp.x(ts, p.X)
		y := vp.y(ps, p.Y)
		top, bottom := y, baseY
		if top > bottom {
			top, bottom = bottom, top
		}
		h := bottom - top
		if h <= 0 {
			h = 1
		}
		out = append(out, primitives.Rect{
			X: x - barWidthPx/2, Y: top,
			W: barWidthPx, H: h,
			FillColor: color,
		})
	}
	return out
}
