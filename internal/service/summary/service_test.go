package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spti-payroll/attendance-backend-go/internal/domain/employee"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/shift"
)

func pairSession(times ...int) Session {
	// times is (day, hour, minute) triples
	s := make(Session, 0, len(times)/3)
	for i := 0; i < len(times); i += 3 {
		s = append(s, punches(at(times[i], times[i+1], times[i+2]))...)
	}
	return s
}

func TestAggregateGroup_NightShiftWithBreakAndAllowance(t *testing.T) {
	emp := employee.Employee{ID: "emp-1"}
	nightShift := testNightShift()
	group := &ShiftGroup{
		Shift:    &nightShift,
		Date:     at(10, 0, 0),
		Sessions: []Session{pairSession(10, 22, 15, 11, 6, 10)},
	}

	row := AggregateGroup(emp, group, testSettings())

	// 7h55m raw minus the 30m shift break, with the night/day split scaled
	// down by the same ratio.
	assert.Equal(t, 7.42, row.TotalHours)
	assert.Equal(t, 7.26, row.NightHours)
	assert.Equal(t, 0.16, row.DayHours)
	assert.Equal(t, 0.42, row.OvertimeHours)
	assert.True(t, row.IsOvertime)
	assert.Equal(t, 1.45, row.NightAllowanceAmount)

	assert.Equal(t, at(10, 22, 15), row.FirstCheckIn)
	require.NotNil(t, row.LastCheckOut)
	assert.Equal(t, at(11, 6, 10), *row.LastCheckOut)
	require.NotNil(t, row.ShiftID)
	assert.Equal(t, "shift-night", *row.ShiftID)
	assert.Equal(t, at(10, 0, 0), row.Date)
}

func TestAggregateGroup_DayShiftDeductsGlobalLunch(t *testing.T) {
	emp := employee.Employee{ID: "emp-1"}
	dayShift := testDayShift()
	group := &ShiftGroup{
		Shift:    &dayShift,
		Date:     at(10, 0, 0),
		Sessions: []Session{pairSession(10, 9, 0, 10, 17, 0)},
	}

	row := AggregateGroup(emp, group, testSettings())

	// The shift defines no break of its own, so the global lunch window
	// applies: 8h minus 30m.
	assert.Equal(t, 7.5, row.TotalHours)
	assert.Equal(t, 0.0, row.NightHours)
	assert.Equal(t, 7.5, row.DayHours)
	assert.Equal(t, 0.0, row.OvertimeHours)
	assert.False(t, row.IsOvertime)
	assert.Equal(t, 0.0, row.NightAllowanceAmount)
}

func TestAggregateGroup_CustomWorkingHoursOverrideShift(t *testing.T) {
	custom := 6.0
	emp := employee.Employee{ID: "emp-1", WorkingHours: &custom}
	dayShift := testDayShift()
	group := &ShiftGroup{
		Shift:    &dayShift,
		Date:     at(10, 0, 0),
		Sessions: []Session{pairSession(10, 9, 0, 10, 17, 0)},
	}

	row := AggregateGroup(emp, group, testSettings())

	assert.Equal(t, 7.5, row.TotalHours)
	assert.Equal(t, 1.5, row.OvertimeHours)
	assert.True(t, row.IsOvertime)
}

func TestAggregateGroup_NoShiftFallsBackToDefaultHours(t *testing.T) {
	emp := employee.Employee{ID: "emp-1"}
	group := &ShiftGroup{
		Shift:    nil,
		Date:     at(10, 0, 0),
		Sessions: []Session{pairSession(10, 8, 0, 10, 17, 30)},
	}

	row := AggregateGroup(emp, group, testSettings())

	// 9h30m minus the global lunch against the 8h default quota.
	assert.Equal(t, 9.0, row.TotalHours)
	assert.Equal(t, 1.0, row.OvertimeHours)
	assert.True(t, row.IsOvertime)
	assert.Nil(t, row.ShiftID)
	assert.Equal(t, 0.0, row.NightAllowanceAmount)
}

func TestAggregateGroup_OrphanPunchHasZeroDuration(t *testing.T) {
	emp := employee.Employee{ID: "emp-1"}
	dayShift := testDayShift()
	group := &ShiftGroup{
		Shift:    &dayShift,
		Date:     at(10, 0, 0),
		Sessions: []Session{pairSession(10, 9, 0)},
	}

	row := AggregateGroup(emp, group, testSettings())

	assert.Equal(t, 0.0, row.TotalHours)
	assert.Equal(t, 0.0, row.OvertimeHours)
	assert.False(t, row.IsOvertime)
	assert.Equal(t, at(10, 9, 0), row.FirstCheckIn)
	assert.Nil(t, row.LastCheckOut)
}

func TestAggregateGroup_OrphanPlusPairKeepsLastCheckOut(t *testing.T) {
	emp := employee.Employee{ID: "emp-1"}
	dayShift := testDayShift()
	group := &ShiftGroup{
		Shift: &dayShift,
		Date:  at(10, 0, 0),
		Sessions: []Session{
			pairSession(10, 8, 0),
			pairSession(10, 14, 0, 10, 17, 0),
		},
	}

	row := AggregateGroup(emp, group, testSettings())

	// Only the paired afternoon session contributes hours, but the orphan
	// still anchors the first check-in.
	assert.Equal(t, 3.0, row.TotalHours)
	assert.Equal(t, at(10, 8, 0), row.FirstCheckIn)
	require.NotNil(t, row.LastCheckOut)
	assert.Equal(t, at(10, 17, 0), *row.LastCheckOut)
}

func TestAggregate_FullPipelineIsIdempotent(t *testing.T) {
	nightID := "shift-night"
	emp := employee.Employee{ID: "emp-1", ShiftID: &nightID}
	snap := NewConfigSnapshot(testSettings(), []shift.Shift{testNightShift()}, testLoc)

	logs := punches(at(10, 22, 15), at(10, 22, 17), at(11, 6, 10))

	first := GroupSessions(emp, logs, snap)
	second := GroupSessions(emp, logs, snap)
	require.Len(t, first, 1)
	require.Len(t, second, 1)

	rowA := AggregateGroup(emp, first[0], snap.Settings)
	rowB := AggregateGroup(emp, second[0], snap.Settings)

	assert.Equal(t, rowA, rowB)
	assert.Equal(t, 7.42, rowA.TotalHours)
}
