package shift

import (
	"strings"

	"github.com/spti-payroll/attendance-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	Name              string  `json:"name"`
	Type              string  `json:"type"`
	StartTime         string  `json:"start_time"` // HH:MM:SS
	EndTime           string  `json:"end_time"`   // HH:MM:SS
	WorkingHours      float64 `json:"working_hours"`
	BreakStartTime    *string `json:"break_start_time"`
	BreakEndTime      *string `json:"break_end_time"`
	ExcludeBreak      *bool   `json:"exclude_break"`
	NightAllowancePct float64 `json:"night_allowance_pct"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if !validator.IsInSlice(r.Type, ShiftTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(ShiftTypeValues, ", "),
		})
	}
	if !validator.IsValidClockTime(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM:SS format",
		})
	}
	if !validator.IsValidClockTime(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM:SS format",
		})
	}
	if r.WorkingHours <= 0 || r.WorkingHours > 24 {
		errs = append(errs, validator.ValidationError{
			Field:   "working_hours",
			Message: "working_hours must be between 0 and 24",
		})
	}
	if (r.BreakStartTime == nil) != (r.BreakEndTime == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_start_time",
			Message: "break_start_time and break_end_time must be set together",
		})
	}
	if r.BreakStartTime != nil && !validator.IsValidClockTime(*r.BreakStartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_start_time",
			Message: "break_start_time must be in HH:MM:SS format",
		})
	}
	if r.BreakEndTime != nil && !validator.IsValidClockTime(*r.BreakEndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_end_time",
			Message: "break_end_time must be in HH:MM:SS format",
		})
	}
	if r.NightAllowancePct < 0 || r.NightAllowancePct > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "night_allowance_pct",
			Message: "night_allowance_pct must be between 0 and 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateShiftRequest struct {
	CreateShiftRequest
	IsActive *bool `json:"is_active"`
}

type ShiftResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Type              string  `json:"type"`
	StartTime         string  `json:"start_time"`
	EndTime           string  `json:"end_time"`
	WorkingHours      float64 `json:"working_hours"`
	BreakStartTime    *string `json:"break_start_time,omitempty"`
	BreakEndTime      *string `json:"break_end_time,omitempty"`
	ExcludeBreak      bool    `json:"exclude_break"`
	NightAllowancePct float64 `json:"night_allowance_pct"`
	IsNightShift      bool    `json:"is_night_shift"`
	IsActive          bool    `json:"is_active"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

type UpdateWorkSettingsRequest struct {
	DefaultWorkingHours   float64 `json:"default_working_hours"`
	LunchStartTime        string  `json:"lunch_start_time"`
	LunchEndTime          string  `json:"lunch_end_time"`
	ExcludeLunchFromHours bool    `json:"exclude_lunch_from_hours"`
	NightStartTime        string  `json:"night_start_time"`
	NightEndTime          string  `json:"night_end_time"`
}

func (r *UpdateWorkSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DefaultWorkingHours <= 0 || r.DefaultWorkingHours > 24 {
		errs = append(errs, validator.ValidationError{
			Field:   "default_working_hours",
			Message: "default_working_hours must be between 0 and 24",
		})
	}
	for field, value := range map[string]string{
		"lunch_start_time": r.LunchStartTime,
		"lunch_end_time":   r.LunchEndTime,
		"night_start_time": r.NightStartTime,
		"night_end_time":   r.NightEndTime,
	} {
		if !validator.IsValidClockTime(value) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be in HH:MM:SS format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WorkSettingsResponse struct {
	DefaultWorkingHours   float64 `json:"default_working_hours"`
	LunchStartTime        string  `json:"lunch_start_time"`
	LunchEndTime          string  `json:"lunch_end_time"`
	ExcludeLunchFromHours bool    `json:"exclude_lunch_from_hours"`
	NightStartTime        string  `json:"night_start_time"`
	NightEndTime          string  `json:"night_end_time"`
	UpdatedAt             string  `json:"updated_at"`
}
