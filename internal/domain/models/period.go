package models

import "time"

// Period is a named trailing time window over which collection statistics
// are computed. Windows always end at "now" as captured by the caller.
type Period string

const (
	PeriodHour     Period = "HOUR"
	PeriodSixHours Period = "SIX_HOURS"
	PeriodDay      Period = "DAY"
	PeriodWeek     Period = "WEEK"
	PeriodAll      Period = "ALL"
)

// AggregationPeriods lists every period the aggregation job computes, ordered
// from the narrowest window to the widest. The order matters: the accumulator
// threads its fold state through the periods in this exact sequence.
var AggregationPeriods = []Period{
	PeriodHour,
	PeriodSixHours,
	PeriodDay,
	PeriodWeek,
	PeriodAll,
}

// ParsePeriod maps a string to a Period.
//
// Returns:
//   - Period: the matching enum value.
//   - bool: false if the input is not a known period.
func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case PeriodHour, PeriodSixHours, PeriodDay, PeriodWeek, PeriodAll:
		return Period(s), true
	}
	return "", false
}

// Window returns the duration of the trailing window, or 0 for PeriodAll
// (unbounded) and for unknown values.
func (p Period) Window() time.Duration {
	switch p {
	case PeriodHour:
		return time.Hour
	case PeriodSixHours:
		return 6 * time.Hour
	case PeriodDay:
		return 24 * time.Hour
	case PeriodWeek:
		return 7 * 24 * time.Hour
	default:
		return 0
	}
}

// Contains reports whether a timestamp falls inside the trailing window ending
// at now. PeriodAll contains everything; an unknown period contains nothing
// (fail-closed rather than an error).
//
// Pure and total. Callers must capture now once per batch so every period
// decision for that batch uses the same clock reading.
func (p Period) Contains(createdAt, now time.Time) bool {
	switch p {
	case PeriodHour, PeriodSixHours, PeriodDay, PeriodWeek:
		return createdAt.After(now.Add(-p.Window()))
	case PeriodAll:
		return true
	default:
		return false
	}
}
