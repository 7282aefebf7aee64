package summary

import "time"

// SplitNightDay computes how much of the work interval [start, end) falls
// inside the recurring night window and how much outside it. The window is
// defined by time-of-day only; an end clock earlier than the start clock
// wraps past midnight. One concrete window instance is materialized for every
// calendar day the interval touches, so stretches spanning several days are
// split correctly.
//
// No rounding happens here: night + day equals the raw interval length
// exactly, and the caller rounds once at the reporting boundary.
func SplitNightDay(start, end, nightStart, nightEnd time.Time) (nightHours, dayHours float64) {
	if !end.After(start) {
		return 0, 0
	}

	total := end.Sub(start).Hours()
	night := recurringOverlapHours(start, end, nightStart, nightEnd)
	return night, total - night
}

// BreakOverlap computes the hours of the work interval [start, end) covered
// by the recurring daily break window. Degenerate intervals yield zero.
func BreakOverlap(start, end, breakStart, breakEnd time.Time) float64 {
	if !end.After(start) {
		return 0
	}
	return recurringOverlapHours(start, end, breakStart, breakEnd)
}

// recurringOverlapHours sums the overlap of [start, end) with one instance
// of the clock window per calendar day touched by the interval. Windows that
// wrap past midnight extend into the following day.
func recurringOverlapHours(start, end, windowStart, windowEnd time.Time) float64 {
	wraps := clockSecond(windowEnd) < clockSecond(windowStart)

	var overlap time.Duration
	for day := dateOf(start); !day.After(dateOf(end)); day = day.AddDate(0, 0, 1) {
		ws := atClock(day, windowStart)
		we := atClock(day, windowEnd)
		if wraps {
			we = atClock(day.AddDate(0, 0, 1), windowEnd)
		}

		// Half-open interval intersection: non-empty iff max(a,c) < min(b,d).
		lo := maxTime(start, ws)
		hi := minTime(end, we)
		if lo.Before(hi) {
			overlap += hi.Sub(lo)
		}
	}
	return overlap.Hours()
}

// atClock places a time-of-day on a concrete calendar day in the day's
// location. Using time.Date keeps DST transitions consistent with how the
// punches themselves are localized.
func atClock(day, clock time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, day.Location())
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
