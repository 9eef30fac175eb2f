package chartengine

import (
	"time"

	"github.com/luhouxiang/chartcore/internal/invalidation"
)

// SessionCalendar is a deterministic trading-day calendar used to keep the
// time axis from emitting labels for days a market never trades (weekends,
// plus any explicitly configured holidays). It is an optional collaborator
// set via SetSessionCalendar; an Engine with no calendar attached treats
// every day as a trading day, matching spec §4.4's plain UTC-adaptive path.
//
// Grounded on the teacher's klineclock.CalendarResolver: the same
// weekday-fallback previous-trading-day rule, with its SQL-backed calendar
// table lookup removed (no external data source, per spec §1) and replaced
// by an injectable holiday set a host application can populate however it
// likes.
type SessionCalendar struct {
	timezone string
	loc      *time.Location
	holidays map[string]struct{}
}

// NewSessionCalendar builds a calendar in the given IANA timezone (empty
// means UTC) with the given holiday dates (time-of-day is ignored; only the
// calendar day in that timezone matters).
func NewSessionCalendar(timezone string, holidays ...time.Time) (*SessionCalendar, error) {
	loc := time.UTC
	if timezone != "" {
		var err error
		loc, err = time.LoadLocation(timezone)
		if err != nil {
			return nil, validationError("unknown timezone %q: %v", timezone, err)
		}
	}
	set := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		set[dayKey(h.In(loc))] = struct{}{}
	}
	return &SessionCalendar{timezone: timezone, loc: loc, holidays: set}, nil
}

func dayKey(day time.Time) string {
	return day.Format("2006-01-02")
}

func normalizeDay(loc *time.Location, day time.Time) time.Time {
	day = day.In(loc)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
}

// IsTradingDay reports whether day (any instant within it, in the
// calendar's timezone) is a weekday not present in the holiday set.
func (c *SessionCalendar) IsTradingDay(day time.Time) bool {
	d := normalizeDay(c.loc, day)
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, excluded := c.holidays[dayKey(d)]
	return !excluded
}

// PrevTradingDay returns the closest trading day strictly before day,
// walking backward one calendar day at a time. Terminates within at most
// (weekend span + configured holiday run) steps for any realistic
// calendar; a defensive cap of 3650 days guards against a pathological
// holiday set that excludes every day.
func (c *SessionCalendar) PrevTradingDay(day time.Time) time.Time {
	d := normalizeDay(c.loc, day)
	for i := 0; i < 3650; i++ {
		d = d.AddDate(0, 0, -1)
		if c.IsTradingDay(d) {
			return d
		}
	}
	return d
}

// FilterTradingTimes drops any tick time (Unix seconds) that falls on a
// non-trading day, preserving order. Intended as a post-filter on
// axislayout.GenerateTimeTicks output for markets with scheduled trading
// gaps (spec §4.4/§4.5 operate per-tick and have no notion of "the market
// is closed"; this is a supplemented feature, not a spec requirement).
func (c *SessionCalendar) FilterTradingTimes(times []float64) []float64 {
	if c == nil || len(times) == 0 {
		return times
	}
	out := make([]float64, 0, len(times))
	for _, t := range times {
		if c.IsTradingDay(time.Unix(int64(t), 0)) {
			out = append(out, t)
		}
	}
	return out
}

// SetSessionCalendar attaches (or, with nil, detaches) the trading-day
// calendar used to filter time-axis ticks. Axis relayout is required on
// change (spec §4.8 style-adjacent "Axis" topic).
func (e *Engine) SetSessionCalendar(cal *SessionCalendar) {
	e.sessionCalendar = cal
	e.markInvalid(invalidation.LevelLight, invalidation.TopicAxis)
}

// SessionCalendar returns the currently attached trading-day calendar, or
// nil if none is set.
func (e *Engine) SessionCalendar() *SessionCalendar { return e.sessionCalendar }
