package report

import (
	"github.com/spti-payroll/attendance-backend-go/internal/pkg/validator"
)

type MonthlyReportRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MonthlyReportRow is one employee's totals for the month.
type MonthlyReportRow struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	EmployeeCode   string  `json:"employee_code"`
	DaysPresent    int     `json:"days_present"`
	TotalHours     float64 `json:"total_hours"`
	NightHours     float64 `json:"night_hours"`
	DayHours       float64 `json:"day_hours"`
	OvertimeHours  float64 `json:"overtime_hours"`
	OvertimeDays   int     `json:"overtime_days"`
	NightAllowance float64 `json:"night_allowance"`
}

type MonthlyReport struct {
	Year      int                `json:"year"`
	Month     int                `json:"month"`
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	Rows      []MonthlyReportRow `json:"rows"`
}
