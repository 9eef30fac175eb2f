package labelcache

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatLogicalDecimal renders value with the given precision, substituting
// the locale's decimal separator (and digit grouping) via golang.org/x/text
// — e.g. an "es-ES" locale swaps '.' for ',' (spec §4.4).
func FormatLogicalDecimal(value float64, precision int, locale string) string {
	p := message.NewPrinter(parseLocale(locale))
	return p.Sprintf("%v", number.Decimal(value, number.Scale(precision)))
}

func parseLocale(locale string) language.Tag {
	if locale == "" {
		return language.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	return tag
}

// UTC adaptive granularity thresholds (visible span, in seconds).
const (
	utcSecondGranularitySpan = 600
	utcMinuteGranularitySpan = 172800
)

// FormatUtcAdaptive renders a UTC instant with granularity adapted to the
// visible span: seconds when the span is tight, minutes when it's a couple
// of days or less, calendar date otherwise. Major ticks (session/midnight
// boundaries) always render the date; inside a trading session, non-major
// ticks render time-only for intraday readability (spec §4.4).
func FormatUtcAdaptive(instant time.Time, spanSeconds float64, timezone string, session, isMajor bool) (string, error) {
	loc, err := resolveLocation(timezone)
	if err != nil {
		return "", err
	}
	t := instant.In(loc)

	if isMajor {
		return t.Format("2006-01-02"), nil
	}
	if session {
		return t.Format("15:04:05"), nil
	}
	switch {
	case spanSeconds <= utcSecondGranularitySpan:
		return t.Format("2006-01-02 15:04:05"), nil
	case spanSeconds <= utcMinuteGranularitySpan:
		return t.Format("01-02 15:04"), nil
	default:
		return t.Format("2006-01-02"), nil
	}
}

func resolveLocation(timezone string) (*time.Location, error) {
	if timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("labelcache: unknown timezone %q: %w", timezone, err)
	}
	return loc, nil
}
