package renderframe

import (
	"github.com/luhouxiang/chartcore/internal/model"
	"github.com/luhouxiang/chartcore/internal/primitives"
)

// AppendSeries drops a batch of already-projected line/rect geometry into
// the given layer of a pane (lines first, then rects), in the order given (projection kernels already
// resolved drawing order; this just moves them into the frame).
func (f *LayeredRenderFrame) AppendSeries(paneID model.PaneID, layer Layer, lines []primitives.Line, rects []primitives.Rect) error {
	for _, l := range lines {
		if err := f.AppendLine(paneID, layer, l); err != nil {
			return err
		}
	}
	for _, r := range rects {
		if err := f.AppendRect(paneID, layer, r); err != nil {
			return err
		}
	}
	return nil
}

// PriceTickLabel pairs a resolved tick pixel position with its formatted
// label text.
type PriceTickLabel struct {
	Px    float64
	Label string
}

// PriceAxisStyle carries the visual parameters for one price-axis scene
// build; the engine resolves these from RenderStyle before calling in.
type PriceAxisStyle struct {
	GridColor      primitives.Color
	GridWidthPx    float64
	ShowGrid       bool
	TickColor      primitives.Color
	TickLengthPx   float64
	TickWidthPx    float64
	LabelColor     primitives.Color
	LabelFontSizePx float64
}

// AppendPriceAxisScene draws one pane's price-axis grid lines, tick marks,
// and labels (spec §4.7 step 2, minus the last-price marker which is a
// separate call since it is keyed to the data, not the tick set).
func (f *LayeredRenderFrame) AppendPriceAxisScene(paneID model.PaneID, plotLeft, plotRight, axisLeft, axisWidth float64, ticks []PriceTickLabel, style PriceAxisStyle) error {
	for _, t := range ticks {
		if style.ShowGrid {
			if err := f.AppendLine(paneID, Grid, primitives.Line{
				X1: plotLeft, Y1: t.Px, X2: plotRight, Y2: t.Px,
				StrokeWidth: positive(style.GridWidthPx), Color: style.GridColor,
			}); err != nil {
				return err
			}
		}
		if err := f.AppendLine(paneID, Axis, primitives.Line{
			X1: axisLeft, Y1: t.Px, X2: axisLeft + style.TickLengthPx, Y2: t.Px,
			StrokeWidth: positive(style.TickWidthPx), Color: style.TickColor,
		}); err != nil {
			return err
		}
		if t.Label == "" {
			continue
		}
		if err := f.AppendText(paneID, Axis, primitives.Text{
			Value: t.Label, X: axisLeft + style.TickLengthPx + 4, Y: t.Px,
			FontSizePx: positive(style.LabelFontSizePx), Color: style.LabelColor, HAlign: primitives.AlignLeft,
		}); err != nil {
			return err
		}
	}
	return nil
}

// LastPriceStyle carries the last-price marker's line and label box
// appearance (spec §4.6).
type LastPriceStyle struct {
	LineColor       primitives.Color
	LineWidthPx     float64
	LabelFillColor  primitives.Color
	LabelTextColor  primitives.Color
	LabelFontSizePx float64
	PaddingX        float64
	PaddingY        float64
	CornerRadiusPx  float64
	FullAxisWidth   bool
}

// AppendLastPriceScene draws the last-price horizontal line across the
// plot area and its label box on the price axis.
func (f *LayeredRenderFrame) AppendLastPriceScene(paneID model.PaneID, plotLeft, plotRight, axisLeft, axisWidth, y float64, label string, style LastPriceStyle) error {
	if err := f.AppendLine(paneID, Overlay, primitives.Line{
		X1: plotLeft, Y1: y, X2: plotRight, Y2: y,
		StrokeWidth: positive(style.LineWidthPx), Color: style.LineColor, Style: primitives.StrokeDashed,
	}); err != nil {
		return err
	}
	if label == "" {
		return nil
	}
	boxW := style.PaddingX*2 + estimateTextWidth(label, style.LabelFontSizePx)
	if style.FullAxisWidth {
		boxW = axisWidth
	}
	boxH := style.LabelFontSizePx + style.PaddingY*2
	boxY := y - boxH/2
	if err := f.AppendRect(paneID, Axis, primitives.Rect{
		X: axisLeft, Y: boxY, W: boxW, H: boxH,
		FillColor: style.LabelFillColor, CornerRadius: style.CornerRadiusPx,
	}); err != nil {
		return err
	}
	return f.AppendText(paneID, Axis, primitives.Text{
		Value: label, X: axisLeft + style.PaddingX, Y: y,
		FontSizePx: positive(style.LabelFontSizePx), Color: style.LabelTextColor, HAlign: primitives.AlignLeft,
	})
}

// TimeTickLabel pairs a resolved tick pixel position with its label text and
// major/minor classification.
type TimeTickLabel struct {
	Px      float64
	Label   string
	IsMajor bool
}

// TimeAxisStyle carries the visual parameters for a time-axis scene build,
// with distinct colors/sizes for major vs. minor ticks (spec §4.5's "major
// ticks rendered with a distinct color/font size").
type TimeAxisStyle struct {
	GridColor      primitives.Color
	MajorGridColor primitives.Color
	GridWidthPx    float64
	MajorGridWidthPx float64
	ShowGrid       bool
	TickColor      primitives.Color
	TickLengthPx   float64
	TickWidthPx    float64
	LabelColor     primitives.Color
	MajorLabelColor primitives.Color
	LabelFontSizePx float64
	MajorFontSizePx float64
}

// AppendTimeAxisScene draws one pane's time-axis grid lines, tick marks,
// and labels (spec §4.7 step 3).
func (f *LayeredRenderFrame) AppendTimeAxisScene(paneID model.PaneID, plotTop, plotBottom, axisTop float64, ticks []TimeTickLabel, style TimeAxisStyle) error {
	for _, t := range ticks {
		gridColor, gridWidth := style.GridColor, style.GridWidthPx
		if t.IsMajor {
			gridColor, gridWidth = style.MajorGridColor, style.MajorGridWidthPx
		}
		if style.ShowGrid {
			if err := f.AppendLine(paneID, Grid, primitives.Line{
				X1: t.Px, Y1: plotTop, X2: t.Px, Y2: plotBottom,
				StrokeWidth: positive(gridWidth), Color: gridColor,
			}); err != nil {
				return err
			}
		}
		if err := f.AppendLine(paneID, Axis, primitives.Line{
			X1: t.Px, Y1: axisTop, X2: t.Px, Y2: axisTop + style.TickLengthPx,
			StrokeWidth: positive(style.TickWidthPx), Color: style.TickColor,
		}); err != nil {
			return err
		}
		if t.Label == "" {
			continue
		}
		labelColor, fontSize := style.LabelColor, style.LabelFontSizePx
		if t.IsMajor {
			labelColor, fontSize = style.MajorLabelColor, style.MajorFontSizePx
		}
		if err := f.AppendText(paneID, Axis, primitives.Text{
			Value: t.Label, X: t.Px, Y: axisTop + style.TickLengthPx + fontSize,
			FontSizePx: positive(fontSize), Color: labelColor, HAlign: primitives.AlignCenter,
		}); err != nil {
			return err
		}
	}
	return nil
}

// CrosshairOverflowPolicy mirrors chartengine.CrosshairOverflowPolicy so
// renderframe (a leaf package) does not need to import chartengine.
type CrosshairOverflowPolicy int

const (
	CrosshairOverflowClip CrosshairOverflowPolicy = iota
	CrosshairOverflowHide
)

// CrosshairLabelPriority mirrors chartengine.CrosshairLabelPriority.
type CrosshairLabelPriority int

const (
	CrosshairPriorityPrice CrosshairLabelPriority = iota
	CrosshairPriorityTime
)

// CrosshairStyle carries the crosshair guide-line and axis-label-box
// appearance (spec §4.7 step 5).
type CrosshairStyle struct {
	ShowVertical    bool
	ShowHorizontal  bool
	LineColor       primitives.Color
	LineWidthPx     float64
	LineStyle       primitives.LineStrokeStyle
	LabelFillColor  primitives.Color
	LabelTextColor  primitives.Color
	LabelFontSizePx float64
	PaddingX        float64
	PaddingY        float64

	OverflowPolicy     CrosshairOverflowPolicy
	VisibilityPriority CrosshairLabelPriority
}

// axisLabelBox is a candidate axis label's pixel geometry before overflow
// clipping/hiding and pair-collision resolution run.
type axisLabelBox struct {
	text       string
	x, y, w, h float64
}

func (b axisLabelBox) rect() (left, top, right, bottom float64) {
	return b.x, b.y - b.h/2, b.x + b.w, b.y + b.h/2
}

func rectsOverlap(aLeft, aTop, aRight, aBottom, bLeft, bTop, bRight, bBottom float64) bool {
	return aLeft < bRight && bLeft < aRight && aTop < bBottom && bTop < aBottom
}

// AppendCrosshairScene draws the crosshair guide lines and axis label boxes
// at (x, y) within [plotLeft,plotRight]x[plotTop,plotBottom], with optional
// time-axis and price-axis label text. Each label box is clipped to the
// plot's axis band (or dropped, per OverflowPolicy); if the resulting price
// and time boxes still overlap near the axis corner, VisibilityPriority
// picks the surviving box and draws it on top (spec §4.7 step 5).
func (f *LayeredRenderFrame) AppendCrosshairScene(paneID model.PaneID, plotLeft, plotRight, plotTop, plotBottom, axisLeft, axisTop, x, y float64, timeLabel, priceLabel string, style CrosshairStyle) error {
	if style.ShowVertical {
		if err := f.AppendLine(paneID, Crosshair, primitives.Line{
			X1: x, Y1: plotTop, X2: x, Y2: plotBottom,
			StrokeWidth: positive(style.LineWidthPx), Color: style.LineColor, Style: style.LineStyle,
		}); err != nil {
			return err
		}
	}
	if style.ShowHorizontal {
		if err := f.AppendLine(paneID, Crosshair, primitives.Line{
			X1: plotLeft, Y1: y, X2: plotRight, Y2: y,
			StrokeWidth: positive(style.LineWidthPx), Color: style.LineColor, Style: style.LineStyle,
		}); err != nil {
			return err
		}
	}

	var priceBox, timeBox *axisLabelBox
	if priceLabel != "" {
		b := axisLabelBox{
			text: priceLabel, x: axisLeft, y: y,
			w: style.PaddingX*2 + estimateTextWidth(priceLabel, style.LabelFontSizePx),
			h: style.LabelFontSizePx + style.PaddingY*2,
		}
		if clipAxisLabelVertical(&b, plotTop, plotBottom, style.OverflowPolicy) {
			priceBox = &b
		}
	}
	if timeLabel != "" {
		b := axisLabelBox{
			text: timeLabel, x: x, y: axisTop,
			w: style.PaddingX*2 + estimateTextWidth(timeLabel, style.LabelFontSizePx),
			h: style.LabelFontSizePx + style.PaddingY*2,
		}
		if clipAxisLabelHorizontal(&b, plotLeft, plotRight, style.OverflowPolicy) {
			timeBox = &b
		}
	}

	order := []*axisLabelBox{priceBox, timeBox}
	if priceBox != nil && timeBox != nil {
		pLeft, pTop, pRight, pBottom := priceBox.rect()
		tLeft, tTop, tRight, tBottom := timeBox.rect()
		if rectsOverlap(pLeft, pTop, pRight, pBottom, tLeft, tTop, tRight, tBottom) {
			// Pair-collision: only the higher-priority box survives, drawn
			// alone (it would otherwise also win the z-order since nothing
			// else remains to layer under it).
			if style.VisibilityPriority == CrosshairPriorityPrice {
				order = []*axisLabelBox{priceBox}
			} else {
				order = []*axisLabelBox{timeBox}
			}
		}
	}

	for _, b := range order {
		if b == nil {
			continue
		}
		if err := f.appendAxisLabelBox(paneID, *b, style); err != nil {
			return err
		}
	}
	return nil
}

// clipAxisLabelVertical clamps a price-axis label box within [plotTop,
// plotBottom], or reports it should be dropped under CrosshairOverflowHide.
func clipAxisLabelVertical(b *axisLabelBox, plotTop, plotBottom float64, policy CrosshairOverflowPolicy) bool {
	top, bottom := b.y-b.h/2, b.y+b.h/2
	if top >= plotTop && bottom <= plotBottom {
		return true
	}
	if policy == CrosshairOverflowHide {
		return false
	}
	switch {
	case top < plotTop:
		b.y = plotTop + b.h/2
	case bottom > plotBottom:
		b.y = plotBottom - b.h/2
	}
	return true
}

// clipAxisLabelHorizontal clamps a time-axis label box within [plotLeft,
// plotRight], or reports it should be dropped under CrosshairOverflowHide.
func clipAxisLabelHorizontal(b *axisLabelBox, plotLeft, plotRight float64, policy CrosshairOverflowPolicy) bool {
	left, right := b.x, b.x+b.w
	if left >= plotLeft && right <= plotRight {
		return true
	}
	if policy == CrosshairOverflowHide {
		return false
	}
	switch {
	case left < plotLeft:
		b.x = plotLeft
	case right > plotRight:
		b.x = plotRight - b.w
	}
	return true
}

func (f *LayeredRenderFrame) appendAxisLabelBox(paneID model.PaneID, b axisLabelBox, style CrosshairStyle) error {
	if err := f.AppendRect(paneID, Crosshair, primitives.Rect{
		X: b.x, Y: b.y - b.h/2, W: b.w, H: b.h,
		FillColor: style.LabelFillColor,
	}); err != nil {
		return err
	}
	return f.AppendText(paneID, Crosshair, primitives.Text{
		Value: b.text, X: b.x + style.PaddingX, Y: b.y,
		FontSizePx: positive(style.LabelFontSizePx), Color: style.LabelTextColor, HAlign: primitives.AlignLeft,
	})
}

// MarkerStyle carries a marker glyph's and its label box's appearance.
type MarkerStyle struct {
	DotColor        primitives.Color
	LabelFillColor  primitives.Color
	LabelTextColor  primitives.Color
	LabelFontSizePx float64
}

// AppendMarkerScene draws one placed marker's glyph (a small centered
// square standing in for the original's dot) into a pane's Overlay layer,
// plus its label box and text when the marker carries label geometry (spec
// §3, "markers").
func (f *LayeredRenderFrame) AppendMarkerScene(paneID model.PaneID, x, y, sizePx float64, label *MarkerLabelGeometry, style MarkerStyle) error {
	if err := f.AppendRect(paneID, Overlay, primitives.Rect{
		X: x - sizePx/2, Y: y - sizePx/2, W: sizePx, H: sizePx,
		FillColor: style.DotColor,
	}); err != nil {
		return err
	}
	if label == nil {
		return nil
	}
	if err := f.AppendRect(paneID, Overlay, primitives.Rect{
		X: label.Left, Y: label.Top, W: label.Width, H: label.Height,
		FillColor: style.LabelFillColor,
	}); err != nil {
		return err
	}
	return f.AppendText(paneID, Overlay, primitives.Text{
		Value: label.Text, X: label.Left + label.Width/2, Y: label.Top + label.Height/2,
		FontSizePx: positive(style.LabelFontSizePx), Color: style.LabelTextColor, HAlign: primitives.AlignCenter,
	})
}

// MarkerLabelGeometry mirrors projection.MarkerLabelGeometry's fields so
// renderframe (a leaf package) does not need to import projection; callers
// pass the projection type's values through this shape.
type MarkerLabelGeometry struct {
	Text          string
	Left, Top     float64
	Width, Height float64
}

func positive(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}

// estimateTextWidth mirrors axislayout.EstimateTextWidth's deterministic
// per-character estimator; duplicated narrowly here to avoid a dependency
// from renderframe (a leaf assembly package) back onto axislayout.
func estimateTextWidth(text string, fontSizePx float64) float64 {
	const avgCharWidthRatio = 0.62
	return float64(len([]rune(text))) * fontSizePx * avgCharWidthRatio
}
