// Package pricescale models the vertical (price) axis: domain, display
// mode, margins, inversion, and autoscaling from a data set. Mode switches
// preserve the underlying (raw) domain; margins/inversion survive
// autoscales (spec §4.2).
package pricescale

import (
	"fmt"
	"math"

	"github.com/luhouxiang/chartcore/internal/primitives"
)

// Mode selects the price-to-pixel transform.
type Mode int

const (
	Linear Mode = iota
	Log
	Percentage
	IndexedTo100
)

const logEpsilon = 1e-12

// Margins is the fractional top/bottom padding of the plot area reserved
// from the price mapping; top+bottom must stay below 1.
type Margins struct {
	Top    float64
	Bottom float64
}

func (m Margins) validate() error {
	if !isFinite(m.Top) || !isFinite(m.Bottom) || m.Top < 0 || m.Bottom < 0 {
		return fmt.Errorf("%w: price scale margins must be finite and >= 0", primitives.ErrInvalidData)
	}
	if m.Top+m.Bottom >= 1 {
		return fmt.Errorf("%w: price scale margins top+bottom must be < 1, got %v", primitives.ErrInvalidData, m.Top+m.Bottom)
	}
	return nil
}

// PriceScale holds the raw domain and the transform configuration applied
// on top of it.
type PriceScale struct {
	domainMin, domainMax float64
	mode                 Mode
	inverted             bool
	margins              Margins
	transformedBase      float64 // 0 = unset; see HasTransformedBase
	hasTransformedBase   bool
}

// New constructs a PriceScale over a strictly increasing raw domain.
func New(domainMin, domainMax float64) (*PriceScale, error) {
	ps := &PriceScale{domainMin: domainMin, domainMax: domainMax, margins: Margins{Top: 0.1, Bottom: 0.1}}
	if err := ps.validateDomain(); err != nil {
		return nil, err
	}
	return ps, nil
}

func (ps *PriceScale) validateDomain() error {
	if !isFinite(ps.domainMin) || !isFinite(ps.domainMax) {
		return fmt.Errorf("%w: price scale domain must be finite", primitives.ErrInvalidData)
	}
	if !(ps.domainMin < ps.domainMax) {
		return fmt.Errorf("%w: price scale domain requires min < max, got [%v,%v]", primitives.ErrInvalidData, ps.domainMin, ps.domainMax)
	}
	if ps.mode == Log && ps.domainMin <= 0 {
		return fmt.Errorf("%w: log mode requires a strictly positive domain, got min=%v", primitives.ErrInvalidData, ps.domainMin)
	}
	return nil
}

// Domain returns the raw (untransformed) price domain.
func (ps *PriceScale) Domain() (min, max float64) { return ps.domainMin, ps.domainMax }

func (ps *PriceScale) Mode() Mode         { return ps.mode }
func (ps *PriceScale) Inverted() bool     { return ps.inverted }
func (ps *PriceScale) MarginsValue() Margins { return ps.margins }

// TransformedBase reports the explicit base value used by Percentage/
// IndexedTo100 modes, if one was set.
func (ps *PriceScale) TransformedBase() (value float64, ok bool) {
	return ps.transformedBase, ps.hasTransformedBase
}

// WithMode switches the display mode. Domain semantics are preserved: the
// raw domain never changes, only how it's transformed to pixels/ticks.
func (ps *PriceScale) WithMode(mode Mode) error {
	prev := ps.mode
	ps.mode = mode
	if err := ps.validateDomain(); err != nil {
		ps.mode = prev
		return err
	}
	return nil
}

// WithInverted flips the pixel mapping direction.
func (ps *PriceScale) WithInverted(inverted bool) { ps.inverted = inverted }

// WithMargins replaces the top/bottom margins.
func (ps *PriceScale) WithMargins(m Margins) error {
	if err := m.validate(); err != nil {
		return err
	}
	ps.margins = m
	return nil
}

// WithTransformedBase sets the explicit base value used by Percentage and
// IndexedTo100 transforms. The value must be finite and non-zero.
func (ps *PriceScale) WithTransformedBase(base float64) error {
	if !isFinite(base) || base == 0 {
		return fmt.Errorf("%w: transformed base must be finite and non-zero, got %v", primitives.ErrInvalidData, base)
	}
	ps.transformedBase = base
	ps.hasTransformedBase = true
	return nil
}

// ClearTransformedBase reverts to a dynamic (data-derived) base.
func (ps *PriceScale) ClearTransformedBase() {
	ps.transformedBase = 0
	ps.hasTransformedBase = false
}

// transform maps a raw price into the mode's display space. dynamicBase is
// used by Percentage/IndexedTo100 when no explicit base was set.
func (ps *PriceScale) transform(p, dynamicBase float64) float64 {
	switch ps.mode {
	case Log:
		return sign(p) * math.Log10(math.Abs(p)+logEpsilon)
	case Percentage:
		base := ps.effectiveBase(dynamicBase)
		return 100 * (p - base) / base * sign(base)
	case IndexedTo100:
		base := ps.effectiveBase(dynamicBase)
		return 100*(p-base)/base*sign(base) + 100
	default:
		return p
	}
}

func (ps *PriceScale) effectiveBase(dynamicBase float64) float64 {
	if ps.hasTransformedBase {
		return ps.transformedBase
	}
	return dynamicBase
}

// PriceToPixel maps a raw price to a pixel y within [0, innerHeight],
// offset by the top margin, given the plot area's total height.
func (ps *PriceScale) PriceToPixel(p, dynamicBase, plotHeight float64) float64 {
	topH := ps.margins.Top * plotHeight
	innerH := plotHeight * (1 - ps.margins.Top - ps.margins.Bottom)

	tmin := ps.transform(ps.domainMin, dynamicBase)
	tmax := ps.transform(ps.domainMax, dynamicBase)
	tp := ps.transform(p, dynamicBase)

	span := tmax - tmin
	frac := (tp - tmin) / span
	if ps.inverted {
		return topH + frac*innerH
	}
	return topH + (1-frac)*innerH
}

// PixelToPrice is the inverse of PriceToPixel. Because the transform is
// monotonic but not always linear (Log), inversion solves within the
// transformed space then maps back through the transform's inverse.
func (ps *PriceScale) PixelToPrice(y, dynamicBase, plotHeight float64) float64 {
	topH := ps.margins.Top * plotHeight
	innerH := plotHeight * (1 - ps.margins.Top - ps.margins.Bottom)
	frac := (y - topH) / innerH
	if !ps.inverted {
		frac = 1 - frac
	}

	tmin := ps.transform(ps.domainMin, dynamicBase)
	tmax := ps.transform(ps.domainMax, dynamicBase)
	tp := tmin + frac*(tmax-tmin)
	return ps.inverseTransform(tp, dynamicBase)
}

func (ps *PriceScale) inverseTransform(tp, dynamicBase float64) float64 {
	switch ps.mode {
	case Log:
		return math.Pow(10, tp) - logEpsilon
	case Percentage:
		base := ps.effectiveBase(dynamicBase)
		return tp*base/(100*sign(base)) + base
	case IndexedTo100:
		base := ps.effectiveBase(dynamicBase)
		return (tp-100)*base/(100*sign(base)) + base
	default:
		return tp
	}
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
