package labelcache

import "fmt"

// TimeProfileKind selects which time formatter a TimeProfile describes.
type TimeProfileKind int

const (
	LogicalDecimalProfile TimeProfileKind = iota
	UtcProfile
	CustomTimeProfile
)

// TimeProfile configures one of the three time-label formatters.
type TimeProfile struct {
	Kind      TimeProfileKind
	Precision int    // LogicalDecimalProfile
	Locale    string // LogicalDecimalProfile, UtcProfile
	Pattern   string // UtcProfile override; empty means adaptive
	Timezone  string // UtcProfile (IANA name; empty means UTC)
	Session   bool   // UtcProfile: inside a trading session, use time-only for non-major ticks

	// Generation identifies the current custom formatter; bumping it
	// invalidates every cache entry keyed under CustomTimeProfile.
	Generation uint64
}

// key returns the cache-key profile string for this configuration; every
// field that changes formatted output must be folded in here.
func (p TimeProfile) key() string {
	switch p.Kind {
	case LogicalDecimalProfile:
		return fmt.Sprintf("logical_decimal:%d:%s", p.Precision, p.Locale)
	case UtcProfile:
		return fmt.Sprintf("utc:%s:%s:%s:%t", p.Locale, p.Pattern, p.Timezone, p.Session)
	case CustomTimeProfile:
		return fmt.Sprintf("custom_time:%d", p.Generation)
	default:
		return "unknown_time_profile"
	}
}

// PriceProfileKind selects which price formatter a PriceProfile describes.
type PriceProfileKind int

const (
	BuiltInPriceProfile PriceProfileKind = iota
	CustomPriceProfile
)

// PriceProfile configures one of the two price-label formatters.
type PriceProfile struct {
	Kind          PriceProfileKind
	Locale        string // BuiltInPriceProfile
	PolicyProfile string // BuiltInPriceProfile: e.g. a precision/suffix policy name
	Generation    uint64 // CustomPriceProfile
}

func (p PriceProfile) key() string {
	switch p.Kind {
	case BuiltInPriceProfile:
		return fmt.Sprintf("builtin_price:%s:%s", p.Locale, p.PolicyProfile)
	case CustomPriceProfile:
		return fmt.Sprintf("custom_price:%d", p.Generation)
	default:
		return "unknown_price_profile"
	}
}
