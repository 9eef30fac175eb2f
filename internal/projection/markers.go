package projection

import (
	"fmt"
	"math"
	"sort"

	"github.com/luhouxiang/chartcore/internal/model"
	"github.com/luhouxiang/chartcore/internal/primitives"
)

// MarkerPlacementConfig tunes deterministic marker/label placement (spec §3
// domain model, "markers"). Grounded on the original's
// extensions/markers.rs MarkerPlacementConfig: marker glyph size, label
// metrics, and the gaps used for per-side lane stacking and horizontal
// collision avoidance.
type MarkerPlacementConfig struct {
	MarkerSizePx             float64
	LabelCharWidthPx         float64
	LabelHeightPx            float64
	LabelHorizontalPaddingPx float64
	MarkerLabelGapPx         float64
	LaneGapPx                float64
	MinHorizontalGapPx       float64
	VerticalOffsetPx         float64
}

func (c MarkerPlacementConfig) validate() error {
	for name, v := range map[string]float64{
		"marker_size_px":              c.MarkerSizePx,
		"label_char_width_px":         c.LabelCharWidthPx,
		"label_height_px":             c.LabelHeightPx,
		"label_horizontal_padding_px": c.LabelHorizontalPaddingPx,
		"marker_label_gap_px":         c.MarkerLabelGapPx,
		"lane_gap_px":                 c.LaneGapPx,
		"min_horizontal_gap_px":       c.MinHorizontalGapPx,
		"vertical_offset_px":          c.VerticalOffsetPx,
	} {
		if !isFinite(v) || v <= 0 {
			return fmt.Errorf("%w: marker placement config %q must be finite and > 0, got %v", primitives.ErrInvalidData, name, v)
		}
	}
	return nil
}

// MarkerLabelGeometry is a placed marker's text box.
type MarkerLabelGeometry struct {
	Text   string
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// PlacedMarker is one marker's resolved pixel geometry.
type PlacedMarker struct {
	ID    string
	Time  float64
	Price float64
	Side  model.MarkerSide
	Lane  int
	X, Y  float64
	Label *MarkerLabelGeometry
}

type preparedMarker struct {
	index       int
	marker      model.Marker
	x, left, right float64
}

// PlaceMarkers projects markers into pixel space with deterministic
// collision-avoiding lane allocation, one independent lane stack per side
// (Above/Below/Center). Placement order is stable by pixel x, then
// descending priority, then marker id, then input order — mirroring the
// original's place_markers_on_candles (spec §3, "markers").
func PlaceMarkers(markers []model.Marker, ts Scale, ps PriceMapper, vp Viewport, cfg MarkerPlacementConfig) ([]PlacedMarker, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(markers) == 0 {
		return nil, nil
	}

	prepared := make([]preparedMarker, 0, len(markers))
	for i, m := range markers {
		x := vp.x(ts, m.Time)
		labelWidth := markerLabelWidth(m.Text, cfg)
		spanHalf := 0.5 * maxOf(cfg.MarkerSizePx, labelWidth)
		x = clampMarkerX(x, spanHalf, vp.Width)
		prepared = append(prepared, preparedMarker{index: i, marker: m, x: x, left: x - spanHalf, right: x + spanHalf})
	}

	sort.SliceStable(prepared, func(i, j int) bool {
		a, b := prepared[i], prepared[j]
		if a.x != b.x {
			return a.x < b.x
		}
		if a.marker.Priority != b.marker.Priority {
			return a.marker.Priority > b.marker.Priority
		}
		if a.marker.ID != b.marker.ID {
			return a.marker.ID < b.marker.ID
		}
		return a.index < b.index
	})

	laneStep := cfg.MarkerSizePx + cfg.MarkerLabelGapPx + cfg.LabelHeightPx + cfg.LaneGapPx
	var aboveLast, belowLast, centerLast []float64

	out := make([]PlacedMarker, 0, len(prepared))
	for _, p := range prepared {
		laneLast := &centerLast
		switch p.marker.Side {
		case model.MarkerSideAbove:
			laneLast = &aboveLast
		case model.MarkerSideBelow:
			laneLast = &belowLast
		}
		lane := allocateMarkerLane(laneLast, p.left, p.right, cfg.MinHorizontalGapPx)

		baseY := vp.y(ps, p.marker.Price)
		laneOffset := float64(lane) * laneStep
		var y float64
		switch p.marker.Side {
		case model.MarkerSideAbove:
			y = baseY - cfg.VerticalOffsetPx - laneOffset
		case model.MarkerSideBelow:
			y = baseY + cfg.VerticalOffsetPx + laneOffset
		default:
			y = baseY + laneOffset
		}

		out = append(out, PlacedMarker{
			ID: p.marker.ID, Time: p.marker.Time, Price: p.marker.Price,
			Side: p.marker.Side, Lane: lane, X: p.x, Y: y,
			Label: buildMarkerLabel(p.marker.Text, p.x, y, p.marker.Side, cfg),
		})
	}
	return out, nil
}

func allocateMarkerLane(lastRight *[]float64, left, right, minGap float64) int {
	for lane := range *lastRight {
		if left >= (*lastRight)[lane]+minGap {
			(*lastRight)[lane] = right
			return lane
		}
	}
	*lastRight = append(*lastRight, right)
	return len(*lastRight) - 1
}

func markerLabelWidth(text string, cfg MarkerPlacementConfig) float64 {
	if text == "" {
		return 0
	}
	return float64(len([]rune(text)))*cfg.LabelCharWidthPx + 2*cfg.LabelHorizontalPaddingPx
}

func clampMarkerX(x, spanHalf, viewportWidth float64) float64 {
	if viewportWidth <= 2*spanHalf {
		return viewportWidth * 0.5
	}
	switch {
	case x < spanHalf:
		return spanHalf
	case x > viewportWidth-spanHalf:
		return viewportWidth - spanHalf
	default:
		return x
	}
}

func buildMarkerLabel(text string, x, y float64, side model.MarkerSide, cfg MarkerPlacementConfig) *MarkerLabelGeometry {
	if text == "" {
		return nil
	}
	width := markerLabelWidth(text, cfg)
	top := y + 0.5*cfg.MarkerSizePx + cfg.MarkerLabelGapPx
	if side == model.MarkerSideAbove {
		top = y - 0.5*cfg.MarkerSizePx - cfg.MarkerLabelGapPx - cfg.LabelHeightPx
	}
	return &MarkerLabelGeometry{Text: text, Left: x - 0.5*width, Top: top, Width: width, Height: cfg.LabelHeightPx}
}

func maxOf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
