package query

import (
	"math"
	"time"

	"github.com/x402dash/x402dash/domain/errs"
)

const dateLayout = "2006-01-02"

// AllTime is the widest range a filter can express.
// Both bounds fit in int64 Unix nanoseconds.
var (
	AllTimeFrom = time.Unix(0, 0).UTC()
	AllTimeTo   = time.Unix(0, math.MaxInt64).UTC()
)

// StartOfDay returns midnight of t's calendar date in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// EndOfDay returns 23:59:59 of t's calendar date in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, loc)
}

// LastDays returns the window covering the previous n days through the end of today.
func LastDays(now time.Time, n int, loc *time.Location) (from, to time.Time) {
	return StartOfDay(now.In(loc).AddDate(0, 0, -n), loc), EndOfDay(now, loc)
}

// ParseFrom parses a range start. Empty input yields def.
// A bare date resolves to the start of that day in loc.
func ParseFrom(field, s string, def time.Time, loc *time.Location) (time.Time, error) {
	return parseBound(field, s, def, loc, false)
}

// ParseTo parses a range end. Empty input yields def.
// A bare date resolves to 23:59:59 of that day in loc.
func ParseTo(field, s string, def time.Time, loc *time.Location) (time.Time, error) {
	return parseBound(field, s, def, loc, true)
}

func parseBound(field, s string, def time.Time, loc *time.Location, end bool) (time.Time, error) {
	if s == "" {
		return def, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	d, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, errs.Invalid(field, s, "expected RFC3339 timestamp or YYYY-MM-DD date")
	}
	if end {
		return EndOfDay(d, loc), nil
	}
	return d, nil
}
