// Package model holds the chart's domain types: data points, OHLC bars,
// panes, and markers. Canonicalization (dedup, sort, finite-filtering) lives
// here because every series-mutating engine operation needs the same rules.
package model

import (
	"fmt"
	"math"
	"sort"

	"github.com/luhouxiang/chartcore/internal/primitives"
)

// DataPoint is one (time, price) sample of a line/area series.
type DataPoint struct {
	X float64 // time
	Y float64 // price
}

func (p DataPoint) finite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// OhlcBar is one candlestick bar.
type OhlcBar struct {
	Time  float64
	Open  float64
	High  float64
	Low   float64
	Close float64
}

func (b OhlcBar) finite() bool {
	return isFinite(b.Time) && isFinite(b.Open) && isFinite(b.High) && isFinite(b.Low) && isFinite(b.Close)
}

// Valid reports whether the bar satisfies low <= min(open,close) <=
// max(open,close) <= high, per spec §3.
func (b OhlcBar) Valid() bool {
	if !b.finite() {
		return false
	}
	lo := math.Min(b.Open, b.Close)
	hi := math.Max(b.Open, b.Close)
	return b.Low <= lo && lo <= hi && hi <= b.High
}

// CanonicalizePoints drops non-finite samples, sorts by X, and for equal X
// keeps the last write (the later element in the input order wins).
func CanonicalizePoints(points []DataPoint) []DataPoint {
	kept := make(map[float64]DataPoint, len(points))
	order := make([]float64, 0, len(points))
	for _, p := range points {
		if !p.finite() {
			continue
		}
		if _, ok := kept[p.X]; !ok {
			order = append(order, p.X)
		}
		kept[p.X] = p
	}
	out := make([]DataPoint, 0, len(order))
	for _, x := range order {
		out = append(out, kept[x])
	}
	sort.Slice(out, func(i, j int) bool { return totalCmp(out[i].X, out[j].X) < 0 })
	return out
}

// CanonicalizeBars drops non-finite/invalid-OHLC bars, sorts by Time, and
// for equal Time keeps the last write.
func CanonicalizeBars(bars []OhlcBar) []OhlcBar {
	kept := make(map[float64]OhlcBar, len(bars))
	order := make([]float64, 0, len(bars))
	for _, b := range bars {
		if !b.Valid() {
			continue
		}
		if _, ok := kept[b.Time]; !ok {
			order = append(order, b.Time)
		}
		kept[b.Time] = b
	}
	out := make([]OhlcBar, 0, len(order))
	for _, t := range order {
		out = append(out, kept[t])
	}
	sort.Slice(out, func(i, j int) bool { return totalCmp(out[i].Time, out[j].Time) < 0 })
	return out
}

// MarkerSide selects which side of its anchor price a marker's label lane
// grows toward during placement (grounded on the original's
// extensions/markers.rs MarkerSide: Above/Below/Center).
type MarkerSide int

const (
	MarkerSideCenter MarkerSide = iota
	MarkerSideAbove
	MarkerSideBelow
)

// Marker is a lightweight annotation anchored at a data point, analogous to
// the teacher's chartlayout.DrawingObject but pared down to the spec's
// domain-model scope (no persistence fields). Unlike the original's
// SeriesMarker, Price is always an explicit, already-resolved anchor value
// rather than a MarkerPosition enum that may derive from the nearest candle
// — callers anchoring to a candle's high/low/close resolve that themselves
// before constructing the Marker.
type Marker struct {
	ID       string
	Time     float64
	Price    float64
	Text     string
	Color    primitives.Color
	Side     MarkerSide
	Priority int32
}

func (m Marker) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: marker id is required", primitives.ErrInvalidData)
	}
	if !isFinite(m.Time) || !isFinite(m.Price) {
		return fmt.Errorf("%w: marker time/price must be finite", primitives.ErrInvalidData)
	}
	return m.Color.Validate()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// totalCmp orders floats the way Rust's f64::total_cmp does: NaN is pushed to
// one deterministic end rather than relying on IEEE partial ordering. Inputs
// here are always pre-filtered finite, so this degrades to a plain compare,
// but every sort in the engine routes through it so a stray NaN never makes
// sort.Slice's output order undefined.
func totalCmp(a, b float64) int {
	if math.IsNaN(a) && math.IsNaN(b) {
		return 0
	}
	if math.IsNaN(a) {
		return 1
	}
	if math.IsNaN(b) {
		return -1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// TotalCmp exposes the total-ordering comparator to other packages; no
// package in this module calls it at present.
func TotalCmp(a, b float64) int { return totalCmp(a, b) }
