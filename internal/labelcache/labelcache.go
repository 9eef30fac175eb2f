package labelcache

import "time"

// CustomTimeFormatter renders a logical time to label text for
// CustomTimeProfile; it must be pure and side-effect-free.
type CustomTimeFormatter func(logicalTime float64) (string, bool)

// CustomPriceFormatter is the price-axis analogue.
type CustomPriceFormatter func(price float64) (string, bool)

// Manager owns the time and price caches plus any registered custom
// formatter hooks. It is the engine-facing entry point for §4.4.
type Manager struct {
	timeCache  *Cache[TimeKey]
	priceCache *Cache[PriceKey]

	customTime  CustomTimeFormatter
	customPrice CustomPriceFormatter
}

// NewManager returns a Manager with the default (8192-entry) cache
// capacity for both axes.
func NewManager() *Manager {
	return &Manager{
		timeCache:  NewCache[TimeKey](0),
		priceCache: NewCache[PriceKey](0),
	}
}

// TimeStats / PriceStats expose the underlying cache counters.
func (m *Manager) TimeStats() Stats  { return m.timeCache.Stats() }
func (m *Manager) PriceStats() Stats { return m.priceCache.Stats() }

// SetCustomTimeFormatter installs a custom time formatter. It does not touch
// the cache: CustomTimeProfile entries are keyed by the profile's Generation,
// so labels cached under an unchanged generation keep being returned, and a
// profile with a new Generation value misses and renders through fn.
// LogicalDecimal/Utc entries are not disturbed either way.
func (m *Manager) SetCustomTimeFormatter(fn CustomTimeFormatter) {
	m.customTime = fn
}

// SetCustomPriceFormatter is the price-axis analogue.
func (m *Manager) SetCustomPriceFormatter(fn CustomPriceFormatter) {
	m.customPrice = fn
}

// FormatTime resolves (and caches) the label for a logical time under the
// given profile. tickStep is folded into the key (it is what the engine
// re-quantizes to granularity buckets at different zoom levels); spanSeconds
// and isMajor drive UtcProfile's adaptive granularity and are folded into
// the key too, since the same instant can legitimately format differently
// depending on them.
func (m *Manager) FormatTime(logicalTime float64, profile TimeProfile, tickStep, spanSeconds float64, isMajor, hasSuffix bool) (string, error) {
	key := TimeKey{
		Profile:           profile.key(),
		QuantizedMillis:   QuantizeTimeMillis(logicalTime),
		SpanQuantized:     QuantizeTimeMillis(spanSeconds),
		TickStepQuantized: QuantizeTickStep(tickStep),
		HasSuffix:         hasSuffix,
		IsMajor:           isMajor,
	}
	if text, ok := m.timeCache.Get(key); ok {
		return text, nil
	}

	text, err := m.renderTime(logicalTime, profile, spanSeconds, isMajor)
	if err != nil {
		return "", err
	}
	m.timeCache.Put(key, text)
	return text, nil
}

func (m *Manager) renderTime(logicalTime float64, profile TimeProfile, spanSeconds float64, isMajor bool) (string, error) {
	switch profile.Kind {
	case LogicalDecimalProfile:
		return FormatLogicalDecimal(logicalTime, profile.Precision, profile.Locale), nil
	case UtcProfile:
		instant := time.Unix(0, int64(logicalTime*float64(time.Second)))
		return FormatUtcAdaptive(instant, spanSeconds, profile.Timezone, profile.Session, isMajor)
	case CustomTimeProfile:
		if m.customTime == nil {
			return "", nil
		}
		text, ok := m.customTime(logicalTime)
		if !ok {
			return "", nil
		}
		return text, nil
	default:
		return "", nil
	}
}

// FormatPrice resolves (and caches) the label for a price under the given
// profile, tick step, and suffix flag.
func (m *Manager) FormatPrice(price float64, profile PriceProfile, tickStep float64, hasSuffix bool) (string, error) {
	key := PriceKey{
		Profile:           profile.key(),
		QuantizedNano:     QuantizePriceNano(price),
		TickStepQuantized: QuantizeTickStep(tickStep),
		HasSuffix:         hasSuffix,
	}
	if text, ok := m.priceCache.Get(key); ok {
		return text, nil
	}

	text := m.renderPrice(price, profile)
	m.priceCache.Put(key, text)
	return text, nil
}

func (m *Manager) renderPrice(price float64, profile PriceProfile) string {
	switch profile.Kind {
	case BuiltInPriceProfile:
		return FormatLogicalDecimal(price, pricePrecisionFromPolicy(profile.PolicyProfile), profile.Locale)
	case CustomPriceProfile:
		if m.customPrice == nil {
			return ""
		}
		text, ok := m.customPrice(price)
		if !ok {
			return ""
		}
		return text
	default:
		return ""
	}
}

// pricePrecisionFromPolicy maps a named policy profile to a decimal
// precision. Unrecognized policies fall back to 2 decimals.
func pricePrecisionFromPolicy(policy string) int {
	switch policy {
	case "integer":
		return 0
	case "tick4":
		return 4
	default:
		return 2
	}
}
