package interaction

import (
	"github.com/luhouxiang/chartcore/internal/model"
	"github.com/luhouxiang/chartcore/internal/pricescale"
	"github.com/luhouxiang/chartcore/internal/timescale"
)

// Resolver resolves the crosshair snap at a pointer x (spec §4.3.1): nearest
// data point and nearest candle close by absolute x-pixel distance, each
// computed twice (index-space sparse lookup, and a brute-force scan) with
// the closer of the two kept as a guard against degenerate step estimates.
type Resolver struct {
	ts          *timescale.TimeScale
	ps          *pricescale.PriceScale
	width       float64
	plotHeight  float64
	dynamicBase float64
}

func NewResolver(ts *timescale.TimeScale, ps *pricescale.PriceScale, width, plotHeight, dynamicBase float64) *Resolver {
	return &Resolver{ts: ts, ps: ps, width: width, plotHeight: plotHeight, dynamicBase: dynamicBase}
}

type candidate struct {
	dist float64
	snap Snap
}

// ResolveSnap returns the winning snap among points and candles, or false if
// neither series has a usable sample. Ties prefer the candidate whose own
// stored distance was smaller; if equal, the data point wins over the
// candle (deterministic tie-break, per spec).
func (r *Resolver) ResolveSnap(pointerX float64, points []model.DataPoint, candles []model.OhlcBar) (Snap, bool) {
	dataCand, dataOK := r.nearestDataSnap(pointerX, points)
	candleCand, candleOK := r.nearestCandleSnap(pointerX, candles)

	switch {
	case dataOK && candleOK:
		if dataCand.dist <= candleCand.dist {
			return dataCand.snap, true
		}
		return candleCand.snap, true
	case dataOK:
		return dataCand.snap, true
	case candleOK:
		return candleCand.snap, true
	default:
		return Snap{}, false
	}
}

func (r *Resolver) nearestDataSnap(pointerX float64, points []model.DataPoint) (candidate, bool) {
	sparse, sparseOK := r.nearestDataSnapSparse(pointerX, points)
	brute, bruteOK := r.nearestDataSnapBrute(pointerX, points)
	return pickCloser(sparse, sparseOK, brute, bruteOK)
}

func (r *Resolver) nearestCandleSnap(pointerX float64, candles []model.OhlcBar) (candidate, bool) {
	sparse, sparseOK := r.nearestCandleSnapSparse(pointerX, candles)
	brute, bruteOK := r.nearestCandleSnapBrute(pointerX, candles)
	return pickCloser(sparse, sparseOK, brute, bruteOK)
}

func pickCloser(a candidate, aOK bool, b candidate, bOK bool) (candidate, bool) {
	switch {
	case aOK && bOK:
		if a.dist <= b.dist {
			return a, true
		}
		return b, true
	case aOK:
		return a, true
	case bOK:
		return b, true
	default:
		return candidate{}, false
	}
}

func (r *Resolver) nearestDataSnapSparse(pointerX float64, points []model.DataPoint) (candidate, bool) {
	step := r.ts.ReferenceTimeStep()
	if step <= 0 || len(points) == 0 {
		return candidate{}, false
	}
	indices := make([]float64, len(points))
	for i, p := range points {
		indices[i] = p.X / step
	}
	idx, ok := r.ts.NearestFilledSlot(pointerX, r.width, indices)
	if !ok {
		return candidate{}, false
	}
	for i, v := range indices {
		if v == idx {
			return r.dataCandidate(pointerX, points[i]), true
		}
	}
	return candidate{}, false
}

func (r *Resolver) nearestDataSnapBrute(pointerX float64, points []model.DataPoint) (candidate, bool) {
	found := false
	var best candidate
	for _, p := range points {
		c := r.dataCandidate(pointerX, p)
		if !found || c.dist < best.dist {
			best, found = c, true
		}
	}
	return best, found
}

func (r *Resolver) dataCandidate(pointerX float64, p model.DataPoint) candidate {
	x := r.ts.TimeToPixel(p.X, r.width)
	y := r.ps.PriceToPixel(p.Y, r.dynamicBase, r.plotHeight)
	return candidate{dist: absf(x - pointerX), snap: Snap{X: x, Y: y, Time: p.X, Price: p.Y}}
}

func (r *Resolver) nearestCandleSnapSparse(pointerX float64, candles []model.OhlcBar) (candidate, bool) {
	step := r.ts.ReferenceTimeStep()
	if step <= 0 || len(candles) == 0 {
		return candidate{}, false
	}
	indices := make([]float64, len(candles))
	for i, c := range candles {
		indices[i] = c.Time / step
	}
	idx, ok := r.ts.NearestFilledSlot(pointerX, r.width, indices)
	if !ok {
		return candidate{}, false
	}
	for i, v := range indices {
		if v == idx {
			return r.candleCandidate(pointerX, candles[i]), true
		}
	}
	return candidate{}, false
}

func (r *Resolver) nearestCandleSnapBrute(pointerX float64, candles []model.OhlcBar) (candidate, bool) {
	found := false
	var best candidate
	for _, c := range candles {
		cand := r.candleCandidate(pointerX, c)
		if !found || cand.dist < best.dist {
			best, found = cand, true
		}
	}
	return best, found
}

func (r *Resolver) candleCandidate(pointerX float64, c model.OhlcBar) candidate {
	x := r.ts.TimeToPixel(c.Time, r.width)
	y := r.ps.PriceToPixel(c.Close, r.dynamicBase, r.plotHeight)
	return candidate{dist: absf(x - pointerX), snap: Snap{X: x, Y: y, Time: c.Time, Price: c.Close}}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
