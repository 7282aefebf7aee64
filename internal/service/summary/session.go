package summary

import (
	"sort"
	"time"

	"github.com/spti-payroll/attendance-backend-go/internal/domain/attendance"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/employee"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/shift"
)

const (
	// debounceWindow suppresses bounce taps: a punch this close to the
	// previously retained punch is treated as a duplicate.
	debounceWindow = 300 * time.Second

	// maxSessionGap is the longest span two consecutive punches may cover
	// and still count as one check-in/check-out pair. Anything longer means
	// a punch went missing and the earlier punch is an orphan.
	maxSessionGap = 20 * time.Hour
)

// Session is one continuous presence on site: a check-in/check-out pair, or
// a single orphan punch with its counterpart missing.
type Session []attendance.AttendanceLog

func (s Session) First() attendance.AttendanceLog { return s[0] }
func (s Session) Last() attendance.AttendanceLog  { return s[len(s)-1] }

// ShiftGroup collects the sessions attributed to one (shift, shift date)
// key. Shift is nil for the tagged no-shift variant of the key.
type ShiftGroup struct {
	Shift    *shift.Shift
	Date     time.Time
	Sessions []Session
}

// Debounce drops punches landing within debounceWindow of the previously
// retained punch. Input must be sorted by timestamp.
func Debounce(logs []attendance.AttendanceLog) []attendance.AttendanceLog {
	clean := make([]attendance.AttendanceLog, 0, len(logs))
	var lastTS time.Time
	for _, log := range logs {
		if !lastTS.IsZero() && log.Timestamp.Sub(lastTS) < debounceWindow {
			continue
		}
		clean = append(clean, log)
		lastTS = log.Timestamp
	}
	return clean
}

// BuildSessions partitions debounced punches into sessions. Consecutive
// punches no more than maxSessionGap apart pair up; a punch whose successor
// is too far away (or absent) becomes a singleton session, and the successor
// is re-evaluated on its own.
func BuildSessions(logs []attendance.AttendanceLog) []Session {
	var sessions []Session
	for i := 0; i < len(logs); {
		current := logs[i]
		if i+1 < len(logs) {
			next := logs[i+1]
			if next.Timestamp.Sub(current.Timestamp) <= maxSessionGap {
				sessions = append(sessions, Session{current, next})
				i += 2
				continue
			}
		}
		sessions = append(sessions, Session{current})
		i++
	}
	return sessions
}

// GroupSessions sorts and debounces the employee's punches, builds sessions,
// and attributes each session to a (shift, shift date) key resolved from its
// first punch. One key may own several disjoint sessions.
//
// The returned groups are ordered by date then shift name so processing is
// deterministic.
func GroupSessions(emp employee.Employee, logs []attendance.AttendanceLog, snap *ConfigSnapshot) []*ShiftGroup {
	sorted := make([]attendance.AttendanceLog, len(logs))
	copy(sorted, logs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	type groupKey struct {
		shiftID string // empty for the no-shift variant
		date    string
	}

	groups := make(map[groupKey]*ShiftGroup)
	var order []groupKey

	for _, session := range BuildSessions(Debounce(sorted)) {
		sh, shiftDate := ResolveShift(emp, session.First().Timestamp, snap)

		key := groupKey{date: shiftDate.Format(attendance.DateLayout)}
		if sh != nil {
			key.shiftID = sh.ID
		}

		group, ok := groups[key]
		if !ok {
			group = &ShiftGroup{Shift: sh, Date: shiftDate}
			groups[key] = group
			order = append(order, key)
		}
		group.Sessions = append(group.Sessions, session)
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].date != order[j].date {
			return order[i].date < order[j].date
		}
		return order[i].shiftID < order[j].shiftID
	})

	result := make([]*ShiftGroup, 0, len(order))
	for _, key := range order {
		result = append(result, groups[key])
	}
	return result
}
