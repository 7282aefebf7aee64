package summary

import (
	"time"

	"github.com/spti-payroll/attendance-backend-go/internal/domain/shift"
)

func testSettings() shift.WorkSettings {
	return shift.WorkSettings{
		DefaultWorkingHours:   8,
		LunchStartTime:        clock(13, 0),
		LunchEndTime:          clock(13, 30),
		ExcludeLunchFromHours: true,
		NightStartTime:        clock(22, 0),
		NightEndTime:          clock(6, 0),
	}
}

func testNightShift() shift.Shift {
	breakStart := clock(1, 0)
	breakEnd := clock(1, 30)
	return shift.Shift{
		ID:                "shift-night",
		Name:              "Night",
		Type:              shift.ShiftTypeNight,
		StartTime:         clock(22, 0),
		EndTime:           clock(6, 0),
		WorkingHours:      7,
		BreakStartTime:    &breakStart,
		BreakEndTime:      &breakEnd,
		ExcludeBreak:      true,
		NightAllowancePct: 20,
		IsActive:          true,
	}
}

func testDayShift() shift.Shift {
	return shift.Shift{
		ID:           "shift-day",
		Name:         "Day",
		Type:         shift.ShiftTypeDay,
		StartTime:    clock(9, 0),
		EndTime:      clock(17, 0),
		WorkingHours: 8,
		IsActive:     true,
	}
}

func testGeneralShift() shift.Shift {
	return shift.Shift{
		ID:           "shift-general",
		Name:         "General",
		Type:         shift.ShiftTypeGeneral,
		StartTime:    clock(8, 0),
		EndTime:      clock(17, 0),
		WorkingHours: 8,
		IsActive:     true,
	}
}

var testLoc = time.UTC
