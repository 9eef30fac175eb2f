package chartengine

import (
	"math"

	"github.com/luhouxiang/chartcore/internal/axislayout"
	"github.com/luhouxiang/chartcore/internal/interaction"
	"github.com/luhouxiang/chartcore/internal/invalidation"
	"github.com/luhouxiang/chartcore/internal/labelcache"
	"github.com/luhouxiang/chartcore/internal/model"
	"github.com/luhouxiang/chartcore/internal/primitives"
	"github.com/luhouxiang/chartcore/internal/projection"
	"github.com/luhouxiang/chartcore/internal/renderframe"
)

// Backend is the minimal full-frame rendering contract (spec §6): a sink
// that consumes one complete LayeredRenderFrame per call.
type Backend interface {
	Render(frame *renderframe.LayeredRenderFrame) error
}

// PartialBackend additionally accepts a clipped, optionally-cleared subset
// of a frame's tasks for a raster-aware partial repaint (spec §4.8, §6).
type PartialBackend interface {
	Backend
	RenderPartial(frame *renderframe.LayeredRenderFrame, tasks []invalidation.Task) error
}

// frameGeometry is the resolved two-pass plot layout plus the tick sets
// derived from it, shared between BuildRenderFrame (which consumes every
// field) and Render (which only needs the plot bounds and pane regions to
// plan a partial repaint).
type frameGeometry struct {
	plotLeft, plotRight, plotTop, plotBottom float64
	axisLeft, axisTop                        float64
	regions                                  []model.PaneLayoutRegion
	mainID, axisPaneID                       model.PaneID
	dynamicBase                              float64

	priceTicks     []renderframe.PriceTickLabel
	lastPrice      float64
	hasLastPrice   bool
	lastPriceLabel string
	timeTicks      []renderframe.TimeTickLabel
}

func (e *Engine) resolveGeometry() (frameGeometry, error) {
	requestedAxisWidth := e.priceAxisCfg.RequestedAxisWidthPx
	if requestedAxisWidth <= 0 {
		requestedAxisWidth = e.style.PriceAxisWidthPx
	}
	passOnePlotHeight := math.Max(e.height()-e.style.TimeAxisHeightPx, 0)

	dynamicBase := e.dynamicPriceBase()
	density := axislayout.DensityScale(e.zoomRatio())

	priceProfile := e.priceProfile()
	priceTargetCount := axislayout.TargetTickCount(passOnePlotHeight, e.priceAxisCfg.TargetSpacingPx, e.priceAxisCfg.MinTickCount, e.priceAxisCfg.MaxTickCount, density)
	rawPriceTicks := e.ps.Ticks(priceTargetCount)
	priceStep := tickStepOf(rawPriceTicks)

	priceLabels := make([]string, len(rawPriceTicks))
	for i, v := range rawPriceTicks {
		text, err := e.labels.FormatPrice(v, priceProfile, priceStep, false)
		if err != nil {
			return frameGeometry{}, err
		}
		priceLabels[i] = text
	}

	lastPrice, hasLastPrice := e.resolveLastPrice()
	lastPriceLabel := ""
	if hasLastPrice {
		text, err := e.labels.FormatPrice(lastPrice, priceProfile, priceStep, false)
		if err != nil {
			return frameGeometry{}, err
		}
		lastPriceLabel = text
	}

	layout := axislayout.ResolvePlotArea(e.viewport, requestedAxisWidth, e.style.TimeAxisHeightPx, priceLabels, lastPriceLabel, e.priceAxisCfg.FontSizePx, e.priceAxisCfg.AdaptiveWidthNoiseThresh)
	plotLeft, plotTop := 0.0, 0.0
	plotRight, plotBottom := layout.PlotRight, layout.PlotBottom
	plotHeight := math.Max(plotBottom-plotTop, 0)

	regions := e.panes.LayoutRegions(plotTop, plotBottom)
	mainID := e.panes.MainPaneID()
	axisPaneID := mainID
	if n := len(regions); n > 0 {
		axisPaneID = regions[n-1].PaneID
	}

	lastPricePx := 0.0
	if hasLastPrice {
		lastPricePx = e.ps.PriceToPixel(lastPrice, dynamicBase, plotHeight)
	}
	filteredPrices := axislayout.ResolvePriceTicks(e.ps, priceTargetCount, dynamicBase, plotHeight, e.priceAxisCfg.MinSpacingPx, lastPricePx, e.priceAxisCfg.LastPriceExclusionPx)
	priceTicks := make([]renderframe.PriceTickLabel, 0, len(filteredPrices))
	for _, v := range filteredPrices {
		text, err := e.labels.FormatPrice(v, priceProfile, priceStep, false)
		if err != nil {
			return frameGeometry{}, err
		}
		priceTicks = append(priceTicks, renderframe.PriceTickLabel{
			Px:    e.ps.PriceToPixel(v, dynamicBase, plotHeight),
			Label: text,
		})
	}

	visible := e.ts.VisibleRange()
	visibleSpan := visible.End - visible.Start
	timeTargetCount := axislayout.TargetTickCount(plotRight-plotLeft, e.timeAxisCfg.TargetSpacingPx, e.timeAxisCfg.MinTickCount, e.timeAxisCfg.MaxTickCount, density)
	if timeTargetCount < 1 {
		timeTargetCount = 1
	}
	targetStep := visibleSpan / float64(timeTargetCount)

	timeProfile := e.timeProfile()
	rawTimes := axislayout.GenerateTimeTicks(visible.Start, visible.End, targetStep)
	rawTimes = e.sessionCalendar.FilterTradingTimes(rawTimes)
	ticks := make([]axislayout.TimeTick, 0, len(rawTimes))
	tickLabels := make([]string, 0, len(rawTimes))
	labelByValue := make(map[float64]string, len(rawTimes))
	for _, t := range rawTimes {
		isMajor, err := axislayout.ClassifyMajorTick(t, e.timeAxisCfg.Timezone, e.timeAxisCfg.SessionBoundaryMinute, e.timeAxisCfg.HasSessionBoundary)
		if err != nil {
			return frameGeometry{}, err
		}
		text, err := e.labels.FormatTime(t, timeProfile, targetStep, visibleSpan, isMajor, false)
		if err != nil {
			return frameGeometry{}, err
		}
		ticks = append(ticks, axislayout.TimeTick{Value: t, IsMajor: isMajor})
		tickLabels = append(tickLabels, text)
		labelByValue[t] = text
	}
	projectTime := func(v float64) float64 { return e.ts.TimeToPixel(v, e.width()) }
	selected := axislayout.SelectTimeAxisLabels(ticks, tickLabels, projectTime, e.style.AxisLabelFontSizePx, e.timeAxisCfg.MinSpacingPx)
	timeTicks := make([]renderframe.TimeTickLabel, 0, len(selected))
	for _, tk := range selected {
		timeTicks = append(timeTicks, renderframe.TimeTickLabel{Px: projectTime(tk.Value), Label: labelByValue[tk.Value], IsMajor: tk.IsMajor})
	}

	return frameGeometry{
		plotLeft: plotLeft, plotRight: plotRight, plotTop: plotTop, plotBottom: plotBottom,
		axisLeft: plotRight, axisTop: plotBottom,
		regions: regions, mainID: mainID, axisPaneID: axisPaneID,
		dynamicBase:    dynamicBase,
		priceTicks:     priceTicks,
		lastPrice:      lastPrice,
		hasLastPrice:   hasLastPrice,
		lastPriceLabel: lastPriceLabel,
		timeTicks:      timeTicks,
	}, nil
}

// BuildRenderFrame assembles a complete LayeredRenderFrame from current
// engine state: two-pass axis layout, per-pane background and grid, the
// main series by display mode, the price/time axis chrome, the last-price
// marker, and the crosshair (spec §4.7).
func (e *Engine) BuildRenderFrame() (*renderframe.LayeredRenderFrame, error) {
	if !e.viewport.IsValid() {
		return nil, invalidViewport("width and height must both be > 0, got %vx%v", e.viewport.Width, e.viewport.Height)
	}

	geo, err := e.resolveGeometry()
	if err != nil {
		return nil, err
	}

	paneOrder := make([]model.PaneID, 0, len(e.panes.Panes()))
	for _, p := range e.panes.Panes() {
		paneOrder = append(paneOrder, p.ID)
	}
	frame := renderframe.New(e.viewport, paneOrder)

	for _, region := range geo.regions {
		if err := frame.AppendRect(region.PaneID, renderframe.Background, primitives.Rect{
			X: geo.plotLeft, Y: region.PlotTop, W: geo.plotRight - geo.plotLeft, H: region.Height(),
			FillColor: e.style.BackgroundColor,
		}); err != nil {
			return nil, err
		}
		if e.style.ShowGrid {
			for _, t := range geo.timeTicks {
				gridColor, gridWidth := e.style.GridColor, e.style.GridWidthPx
				if t.IsMajor {
					gridColor, gridWidth = e.style.MajorGridColor, e.style.MajorGridWidthPx
				}
				if err := frame.AppendLine(region.PaneID, renderframe.Grid, primitives.Line{
					X1: t.Px, Y1: region.PlotTop, X2: t.Px, Y2: region.PlotBottom,
					StrokeWidth: positiveOr1(gridWidth), Color: gridColor,
				}); err != nil {
					return nil, err
				}
			}
		}
	}

	var mainRegion model.PaneLayoutRegion
	for _, region := range geo.regions {
		if region.PaneID == geo.mainID {
			mainRegion = region
			break
		}
	}
	mainPlotHeight := mainRegion.Height()

	pv := projection.Viewport{Width: e.width(), PlotHeight: mainPlotHeight, DynamicBase: geo.dynamicBase}
	if err := e.appendSeriesScene(frame, geo.mainID, pv); err != nil {
		return nil, err
	}
	if err := e.appendMarkersScene(frame, geo.mainID, pv); err != nil {
		return nil, err
	}

	priceAxisStyle := renderframe.PriceAxisStyle{
		GridColor: e.style.GridColor, GridWidthPx: e.style.GridWidthPx, ShowGrid: false,
		TickColor: e.style.AxisTickColor, TickLengthPx: e.style.AxisTickLengthPx, TickWidthPx: e.style.AxisTickWidthPx,
		LabelColor: e.style.AxisLabelColor, LabelFontSizePx: e.style.AxisLabelFontSizePx,
	}
	if err := frame.AppendPriceAxisScene(geo.mainID, geo.plotLeft, geo.plotRight, geo.axisLeft, e.viewport.Width-geo.axisLeft, geo.priceTicks, priceAxisStyle); err != nil {
		return nil, err
	}
	if geo.hasLastPrice {
		labelFillColor := e.lastPriceColor(geo.lastPrice)
		lastPriceStyle := renderframe.LastPriceStyle{
			LineColor: e.lastPriceColor(geo.lastPrice), LineWidthPx: e.lastPriceCfg.LineWidthPx,
			LabelFillColor: labelFillColor, LabelTextColor: e.lastPriceLabelTextColor(labelFillColor),
			LabelFontSizePx: e.lastPriceCfg.FontSizePx, PaddingX: e.lastPriceCfg.PaddingX, PaddingY: e.lastPriceCfg.PaddingY,
			CornerRadiusPx: e.lastPriceCfg.CornerRadiusPx, FullAxisWidth: e.lastPriceCfg.FullAxisWidth,
		}
		y := e.ps.PriceToPixel(geo.lastPrice, geo.dynamicBase, mainPlotHeight)
		if err := frame.AppendLastPriceScene(geo.mainID, geo.plotLeft, geo.plotRight, geo.axisLeft, e.viewport.Width-geo.axisLeft, y, geo.lastPriceLabel, lastPriceStyle); err != nil {
			return nil, err
		}
	}

	timeAxisStyle := renderframe.TimeAxisStyle{
		GridColor: e.style.GridColor, MajorGridColor: e.style.MajorGridColor,
		GridWidthPx: e.style.GridWidthPx, MajorGridWidthPx: e.style.MajorGridWidthPx, ShowGrid: false,
		TickColor: e.style.AxisTickColor, TickLengthPx: e.style.AxisTickLengthPx, TickWidthPx: e.style.AxisTickWidthPx,
		LabelColor: e.style.AxisLabelColor, MajorLabelColor: e.style.MajorAxisLabelColor,
		LabelFontSizePx: e.style.AxisLabelFontSizePx, MajorFontSizePx: e.style.MajorAxisFontSizePx,
	}
	if err := frame.AppendTimeAxisScene(geo.axisPaneID, mainRegion.PlotTop, mainRegion.PlotBottom, geo.axisTop, geo.timeTicks, timeAxisStyle); err != nil {
		return nil, err
	}

	if err := e.appendCrosshair(frame, geo, mainRegion); err != nil {
		return nil, err
	}

	if err := frame.Validate(); err != nil {
		return nil, err
	}
	return frame, nil
}

func (e *Engine) appendCrosshair(frame *renderframe.LayeredRenderFrame, geo frameGeometry, mainRegion model.PaneLayoutRegion) error {
	pointer := e.interactionState.Pointer()
	if !pointer.Visible || e.interactionState.CrosshairMode() == interaction.Hidden {
		return nil
	}

	x, y := pointer.X, pointer.Y
	var timeVal, priceVal float64
	if snap, ok := e.interactionState.Snap(); ok {
		x, y, timeVal, priceVal = snap.X, snap.Y, snap.Time, snap.Price
	} else {
		timeVal = e.ts.PixelToTime(x, e.width())
		priceVal = e.ps.PixelToPrice(y, geo.dynamicBase, mainRegion.Height())
	}

	var timeLabel, priceLabel string
	if e.crosshairLabel.ShowOnTimeAxis {
		text, err := e.labels.FormatTime(timeVal, e.timeProfile(), 0, 0, false, true)
		if err != nil {
			return err
		}
		timeLabel = text
	}
	if e.crosshairLabel.ShowOnPriceAxis {
		text, err := e.labels.FormatPrice(priceVal, e.priceProfile(), 0, true)
		if err != nil {
			return err
		}
		priceLabel = text
	}

	style := renderframe.CrosshairStyle{
		ShowVertical: e.crosshairGuide.ShowVertical, ShowHorizontal: e.crosshairGuide.ShowHorizontal,
		LineColor: e.crosshairGuide.Color, LineWidthPx: e.crosshairGuide.WidthPx, LineStyle: e.crosshairGuide.Style,
		LabelFillColor: e.crosshairLabel.FillColor, LabelTextColor: e.crosshairLabel.TextColor,
		LabelFontSizePx: e.crosshairLabel.FontSizePx, PaddingX: e.crosshairLabel.PaddingX, PaddingY: e.crosshairLabel.PaddingY,
		OverflowPolicy:     renderframe.CrosshairOverflowPolicy(e.crosshairLabel.OverflowPolicy),
		VisibilityPriority: renderframe.CrosshairLabelPriority(e.crosshairLabel.VisibilityPriority),
	}
	return frame.AppendCrosshairScene(geo.mainID, geo.plotLeft, geo.plotRight, mainRegion.PlotTop, mainRegion.PlotBottom, geo.axisLeft, geo.axisTop, x, y, timeLabel, priceLabel, style)
}

func (e *Engine) appendSeriesScene(frame *renderframe.LayeredRenderFrame, paneID model.PaneID, pv projection.Viewport) error {
	switch e.style.SeriesDisplayMode {
	case SeriesCandlestick:
		candles := projection.ProjectCandles(e.candles, e.ts, e.ps, pv, e.candleStyle)
		lines := make([]primitives.Line, 0, len(candles))
		rects := make([]primitives.Rect, 0, len(candles))
		for _, c := range candles {
			lines = append(lines, c.Wick)
			rects = append(rects, c.Body)
		}
		return frame.AppendSeries(paneID, renderframe.Series, lines, rects)
	case SeriesBar:
		bars := projection.ProjectBars(e.candles, e.ts, e.ps, pv, e.candleStyle)
		lines := make([]primitives.Line, 0, len(bars)*3)
		for _, b := range bars {
			lines = append(lines, b.Vertical, b.OpenTick, b.CloseTick)
		}
		return frame.AppendSeries(paneID, renderframe.Series, lines, nil)
	case SeriesLine:
		lines := projection.ProjectLine(e.data, e.ts, e.ps, pv, e.style.LineColor, e.style.LineWidthPx)
		return frame.AppendSeries(paneID, renderframe.Series, lines, nil)
	case SeriesArea:
		lines := projection.ProjectArea(e.data, e.ts, e.ps, pv, e.style.AreaBaselinePrice, e.style.AreaAboveColor, e.style.LineWidthPx)
		return frame.AppendSeries(paneID, renderframe.Series, lines, nil)
	case SeriesBaseline:
		lines := projection.ProjectBaseline(e.data, e.ts, e.ps, pv, e.style.AreaBaselinePrice, e.style.AreaAboveColor, e.style.AreaBelowColor, e.style.LineWidthPx)
		return frame.AppendSeries(paneID, renderframe.Series, lines, nil)
	case SeriesHistogram:
		rects := projection.ProjectHistogram(e.data, e.ts, e.ps, pv, e.style.AreaBaselinePrice, e.style.HistogramBarWidthPx, e.style.HistogramColor)
		return frame.AppendSeries(paneID, renderframe.Series, nil, rects)
	default:
		return nil
	}
}

// appendMarkersScene places and draws every marker into the main pane's
// Overlay layer (spec §3, "markers").
func (e *Engine) appendMarkersScene(frame *renderframe.LayeredRenderFrame, paneID model.PaneID, pv projection.Viewport) error {
	if len(e.markers) == 0 {
		return nil
	}
	placed, err := projection.PlaceMarkers(e.markers, e.ts, e.ps, pv, e.markerCfg.Placement)
	if err != nil {
		return err
	}
	style := renderframe.MarkerStyle{
		DotColor: e.markerCfg.DotColor, LabelFillColor: e.markerCfg.LabelFillColor,
		LabelTextColor: e.markerCfg.LabelTextColor, LabelFontSizePx: e.markerCfg.LabelFontSizePx,
	}
	for _, p := range placed {
		var label *renderframe.MarkerLabelGeometry
		if p.Label != nil {
			label = &renderframe.MarkerLabelGeometry{Text: p.Label.Text, Left: p.Label.Left, Top: p.Label.Top, Width: p.Label.Width, Height: p.Label.Height}
		}
		if err := frame.AppendMarkerScene(paneID, p.X, p.Y, e.markerCfg.Placement.MarkerSizePx, label, style); err != nil {
			return err
		}
	}
	return nil
}

// Render builds the current frame and hands it to backend, taking the
// raster-aware partial path when backend supports it and the pending
// invalidation mask qualifies (spec §4.8). Either path drains the pending
// mask and dispatches EventRendered.
func (e *Engine) Render(backend Backend) error {
	frame, err := e.BuildRenderFrame()
	if err != nil {
		return err
	}
	mask, cleared := invalidation.Drain(e.pending)
	e.pending = cleared

	if partial, ok := backend.(PartialBackend); ok {
		geo, err := e.resolveGeometry()
		if err != nil {
			return err
		}
		axisWidth := e.width() - geo.plotRight
		// autoscale always marks LevelFull, which the plan already rejects
		// below the partial-eligible Cursor/Light tiers, so this is never the
		// deciding factor in practice; kept explicit per the partial planner's
		// contract.
		if tasks, okPlan := invalidation.Plan(mask, geo.regions, geo.mainID, geo.plotLeft, geo.plotRight, axisWidth, false); okPlan {
			if err := partial.RenderPartial(frame, tasks); err != nil {
				return err
			}
			e.dispatch(EventRendered, RenderedDetail{Frame: frame, Level: mask.Level, Partial: true})
			return nil
		}
	}

	if err := backend.Render(frame); err != nil {
		return err
	}
	e.dispatch(EventRendered, RenderedDetail{Frame: frame, Level: mask.Level, Partial: false})
	return nil
}

func (e *Engine) zoomRatio() float64 {
	full := e.ts.FullRange()
	visible := e.ts.VisibleRange()
	visibleSpan := visible.End - visible.Start
	if visibleSpan <= 0 {
		return 1
	}
	return (full.End - full.Start) / visibleSpan
}

func tickStepOf(ticks []float64) float64 {
	if len(ticks) < 2 {
		return 0
	}
	return ticks[1] - ticks[0]
}

func (e *Engine) priceProfile() labelcache.PriceProfile {
	if e.priceAxisCfg.Profile == PriceProfileCustom {
		return labelcache.PriceProfile{Kind: labelcache.CustomPriceProfile, Generation: e.customPriceFormatterGeneration}
	}
	return labelcache.PriceProfile{Kind: labelcache.BuiltInPriceProfile, Locale: e.priceAxisCfg.Locale, PolicyProfile: e.priceAxisCfg.PolicyProfile}
}

func (e *Engine) timeProfile() labelcache.TimeProfile {
	switch e.timeAxisCfg.Profile {
	case TimeProfileLogicalDecimal:
		return labelcache.TimeProfile{Kind: labelcache.LogicalDecimalProfile, Precision: e.timeAxisCfg.Precision, Locale: e.timeAxisCfg.Locale}
	case TimeProfileCustom:
		return labelcache.TimeProfile{Kind: labelcache.CustomTimeProfile, Generation: e.customTimeFormatterGeneration}
	default:
		return labelcache.TimeProfile{Kind: labelcache.UtcProfile, Locale: e.timeAxisCfg.Locale, Timezone: e.timeAxisCfg.Timezone, Session: e.timeAxisCfg.SessionMode}
	}
}

// resolveLastPrice picks the most recent sample (by time) across candles
// and points, restricted to the full or visible range per LastPriceConfig's
// source mode.
func (e *Engine) resolveLastPrice() (price float64, ok bool) {
	r := e.ts.FullRange()
	if e.lastPriceCfg.SourceMode == SourceVisibleData {
		r = e.ts.VisibleRange()
	}
	bestTime := math.Inf(-1)
	for _, c := range e.candles {
		if c.Time >= r.Start && c.Time <= r.End && c.Time >= bestTime {
			bestTime, price, ok = c.Time, c.Close, true
		}
	}
	for _, p := range e.data {
		if p.X >= r.Start && p.X <= r.End && p.X >= bestTime {
			bestTime, price, ok = p.X, p.Y, true
		}
	}
	return price, ok
}

// lastPriceColor resolves the last-price marker's color from the two most
// recent same-series samples' direction, or neutral/configured color when
// trend coloring is off or there is no prior sample to compare against.
func (e *Engine) lastPriceColor(_ float64) primitives.Color {
	if !e.lastPriceCfg.UseTrendColor {
		return e.lastPriceCfg.NeutralColor
	}
	if n := len(e.candles); n >= 2 {
		switch {
		case e.candles[n-1].Close > e.candles[n-2].Close:
			return e.lastPriceCfg.UpColor
		case e.candles[n-1].Close < e.candles[n-2].Close:
			return e.lastPriceCfg.DownColor
		default:
			return e.lastPriceCfg.NeutralColor
		}
	}
	if n := len(e.data); n >= 2 {
		switch {
		case e.data[n-1].Y > e.data[n-2].Y:
			return e.lastPriceCfg.UpColor
		case e.data[n-1].Y < e.data[n-2].Y:
			return e.lastPriceCfg.DownColor
		}
	}
	return e.lastPriceCfg.NeutralColor
}

func positiveOr1(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}

// autoContrastTextColor resolves readable text color for a label box filled
// with boxFillColor using a WCAG-inspired luminance gate (spec §4.6):
// 0.2126R+0.7152G+0.0722B >= 0.56 picks a near-black text color, otherwise
// white.
func autoContrastTextColor(boxFillColor primitives.Color) primitives.Color {
	luminance := 0.2126*boxFillColor.R + 0.7152*boxFillColor.G + 0.0722*boxFillColor.B
	if luminance >= 0.56 {
		return primitives.RGB(0.06, 0.08, 0.11)
	}
	return primitives.RGB(1, 1, 1)
}

// lastPriceLabelTextColor resolves the last-price label's text color: the
// configured fixed color, or a WCAG-contrast color derived from the label's
// own fill when AutoTextContrast is enabled (spec §4.6).
func (e *Engine) lastPriceLabelTextColor(boxFillColor primitives.Color) primitives.Color {
	if !e.lastPriceCfg.AutoTextContrast {
		return e.style.BackgroundColor
	}
	return autoContrastTextColor(boxFillColor)
}
