package summary

import (
	"time"

	"github.com/spti-payroll/attendance-backend-go/internal/domain/employee"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/shift"
)

const (
	secondsPerDay = 24 * 60 * 60

	// earlyToleranceSeconds widens each shift's detection window so an
	// employee punching in up to two hours before the nominal start still
	// lands on their shift.
	earlyToleranceSeconds = 2 * 60 * 60
)

// ResolveShift determines the governing shift and the shift date for a punch.
// ts must already be in the snapshot's location. The shift may be nil when no
// active shift matches and no GENERAL fallback exists.
//
// For a night shift the punch may be the tail of the previous day's stretch:
// a time-of-day before the shift's end time books the punch to the previous
// calendar date.
func ResolveShift(emp employee.Employee, ts time.Time, snap *ConfigSnapshot) (*shift.Shift, time.Time) {
	var sh *shift.Shift
	if emp.ShiftID != nil {
		sh = snap.ShiftByID(*emp.ShiftID)
	} else {
		sh = detectShift(ts, snap)
	}

	shiftDate := dateOf(ts)
	if sh != nil && sh.IsNightShift() && secondOfDay(ts) < clockSecond(sh.EndTime) {
		shiftDate = shiftDate.AddDate(0, 0, -1)
	}
	return sh, shiftDate
}

// detectShift scans active non-GENERAL shifts in catalog order and returns
// the first whose detection window contains the punch's time-of-day, falling
// back to the active GENERAL shift.
func detectShift(ts time.Time, snap *ConfigSnapshot) *shift.Shift {
	sec := secondOfDay(ts)
	for _, s := range snap.detectable {
		if timeOfDayInShiftRange(sec, clockSecond(s.StartTime), clockSecond(s.EndTime)) {
			return s
		}
	}
	return snap.general
}

// timeOfDayInShiftRange checks whether the second-of-day c falls inside
// [start − tolerance, end], where a range whose end precedes its start wraps
// past midnight and therefore also covers the early-morning tail.
func timeOfDayInShiftRange(c, start, end int) bool {
	start -= earlyToleranceSeconds
	if start < 0 {
		start += secondsPerDay
	}
	if start <= end {
		return c >= start && c <= end
	}
	return c >= start || c <= end
}

// secondOfDay returns the clock position of a timestamp in seconds.
func secondOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// clockSecond reads a time-of-day field (date part irrelevant) in seconds.
func clockSecond(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// dateOf truncates a timestamp to midnight in its own location.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
