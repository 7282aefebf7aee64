package attendance

import (
	"time"

	"github.com/spti-payroll/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// INGESTION DTOs
// ========================================

// PunchRecord is one raw event as delivered by the device collector.
type PunchRecord struct {
	BiometricID      int64     `json:"biometric_id"`
	Timestamp        time.Time `json:"timestamp"`
	StatusCode       int       `json:"status_code"`
	VerificationMode int       `json:"verification_mode"`
}

type IngestBatchRequest struct {
	Records []PunchRecord `json:"records"`
}

func (r *IngestBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Records) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "records",
			Message: "records must not be empty",
		})
	}
	for i, rec := range r.Records {
		if rec.Timestamp.IsZero() {
			errs = append(errs, validator.ValidationError{
				Field:   "records",
				Message: "record " + validator.Itoa(i) + " has no timestamp",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// IngestReport summarizes what happened to a punch batch.
type IngestReport struct {
	Received        int `json:"received"`
	Inserted        int `json:"inserted"`
	Duplicates      int `json:"duplicates"`
	UnknownEmployee int `json:"unknown_employee"`
	DaysRecomputed  int `json:"days_recomputed"`
}

// ========================================
// LOG ADMINISTRATION DTOs
// ========================================

type CreateLogRequest struct {
	EmployeeID       string `json:"employee_id"`
	Timestamp        string `json:"timestamp"` // RFC 3339
	StatusCode       int    `json:"status_code"`
	VerificationMode int    `json:"verification_mode"`
}

func (r *CreateLogRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	if _, err := time.Parse(time.RFC3339, r.Timestamp); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp must be a valid RFC 3339 datetime",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLogRequest struct {
	Timestamp        string `json:"timestamp"` // RFC 3339
	StatusCode       *int   `json:"status_code"`
	VerificationMode *int   `json:"verification_mode"`
}

func (r *UpdateLogRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := time.Parse(time.RFC3339, r.Timestamp); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp must be a valid RFC 3339 datetime",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BulkDeleteLogsRequest struct {
	IDs []string `json:"ids"`
}

func (r *BulkDeleteLogsRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.IDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "ids",
			Message: "ids must not be empty",
		})
	}
	for _, id := range r.IDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "ids",
				Message: "ids must all be valid UUIDs",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RecomputeRequest triggers a batch backfill over an explicit range.
type RecomputeRequest struct {
	StartDate  string  `json:"start_date"` // YYYY-MM-DD
	EndDate    string  `json:"end_date"`   // YYYY-MM-DD
	EmployeeID *string `json:"employee_id"`
}

func (r *RecomputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidDate(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	if !validator.IsValidDate(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LogFilter struct {
	EmployeeID *string
	StartDate  *string // YYYY-MM-DD, local
	EndDate    *string

	Page  int
	Limit int
}

type LogResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     *string `json:"employee_name,omitempty"`
	EmployeeCode     *string `json:"employee_code,omitempty"`
	Timestamp        string  `json:"timestamp"`
	StatusCode       int     `json:"status_code"`
	VerificationMode int     `json:"verification_mode"`
}

type ListLogsResponse struct {
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	Logs       []LogResponse `json:"logs"`
}

// ========================================
// SUMMARY DTOs
// ========================================

type SummaryFilter struct {
	EmployeeID *string
	StartDate  *string // YYYY-MM-DD
	EndDate    *string
	ShiftID    *string

	Page  int
	Limit int
}

type SummaryResponse struct {
	ID                   string  `json:"id"`
	EmployeeID           string  `json:"employee_id"`
	EmployeeName         *string `json:"employee_name,omitempty"`
	Date                 string  `json:"date"`
	ShiftID              *string `json:"shift_id,omitempty"`
	ShiftName            *string `json:"shift_name,omitempty"`
	FirstCheckIn         string  `json:"first_check_in"`
	LastCheckOut         *string `json:"last_check_out,omitempty"`
	TotalHours           float64 `json:"total_hours"`
	NightHours           float64 `json:"night_hours"`
	DayHours             float64 `json:"day_hours"`
	OvertimeHours        float64 `json:"overtime_hours"`
	IsOvertime           bool    `json:"is_overtime"`
	NightAllowanceAmount float64 `json:"night_allowance_amount"`
}

type ListSummariesResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Summaries  []SummaryResponse `json:"summaries"`
}
