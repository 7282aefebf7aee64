package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spti-payroll/attendance-backend-go/internal/domain/attendance"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/employee"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/shift"
)

func punches(times ...time.Time) []attendance.AttendanceLog {
	logs := make([]attendance.AttendanceLog, 0, len(times))
	for _, ts := range times {
		logs = append(logs, attendance.AttendanceLog{EmployeeID: "emp-1", Timestamp: ts})
	}
	return logs
}

func TestDebounce_DropsBounceTaps(t *testing.T) {
	logs := punches(
		at(10, 8, 0),
		at(10, 8, 2), // within 5 minutes of 08:00
		at(10, 8, 4), // still within 5 minutes of the retained 08:00
		at(10, 17, 0),
	)

	clean := Debounce(logs)

	require.Len(t, clean, 2)
	assert.Equal(t, at(10, 8, 0), clean[0].Timestamp)
	assert.Equal(t, at(10, 17, 0), clean[1].Timestamp)
}

func TestDebounce_ExactWindowBoundaryIsKept(t *testing.T) {
	logs := punches(at(10, 8, 0), at(10, 8, 5))

	clean := Debounce(logs)

	assert.Len(t, clean, 2)
}

func TestBuildSessions_PairsAndOrphans(t *testing.T) {
	logs := punches(
		at(10, 8, 0),
		at(10, 17, 0), // pairs with 08:00
		at(11, 9, 0),  // next punch is 22h away: orphan
		at(12, 8, 0),
		at(12, 16, 30),
	)

	sessions := BuildSessions(logs)

	require.Len(t, sessions, 3)
	assert.Len(t, sessions[0], 2)
	assert.Len(t, sessions[1], 1)
	assert.Len(t, sessions[2], 2)
	assert.Equal(t, at(11, 9, 0), sessions[1].First().Timestamp)
}

func TestBuildSessions_GapAtLimitStillPairs(t *testing.T) {
	logs := punches(at(10, 8, 0), at(11, 4, 0)) // exactly 20h

	sessions := BuildSessions(logs)

	require.Len(t, sessions, 1)
	assert.Len(t, sessions[0], 2)
}

func TestGroupSessions_NightShiftSessionsShareOneKey(t *testing.T) {
	nightID := "shift-night"
	emp := employee.Employee{ID: "emp-1", ShiftID: &nightID}
	snap := NewConfigSnapshot(testSettings(), []shift.Shift{testNightShift()}, time.UTC)

	logs := punches(at(10, 22, 15), at(11, 6, 10))

	groups := GroupSessions(emp, logs, snap)

	require.Len(t, groups, 1)
	assert.Equal(t, at(10, 0, 0), groups[0].Date)
	require.NotNil(t, groups[0].Shift)
	assert.Equal(t, nightID, groups[0].Shift.ID)
	require.Len(t, groups[0].Sessions, 1)
	assert.Len(t, groups[0].Sessions[0], 2)
}

func TestGroupSessions_UnsortedInputIsDeterministic(t *testing.T) {
	emp := employee.Employee{ID: "emp-1"}
	snap := NewConfigSnapshot(testSettings(), []shift.Shift{testDayShift()}, time.UTC)

	sorted := punches(at(10, 9, 0), at(10, 17, 0), at(11, 9, 5), at(11, 17, 10))
	shuffled := punches(at(11, 17, 10), at(10, 9, 0), at(11, 9, 5), at(10, 17, 0))

	a := GroupSessions(emp, sorted, snap)
	b := GroupSessions(emp, shuffled, snap)

	require.Len(t, a, 2)
	require.Len(t, b, 2)
	for i := range a {
		assert.Equal(t, a[i].Date, b[i].Date)
		require.Len(t, b[i].Sessions, len(a[i].Sessions))
		assert.Equal(t, a[i].Sessions[0].First().Timestamp, b[i].Sessions[0].First().Timestamp)
	}
}
