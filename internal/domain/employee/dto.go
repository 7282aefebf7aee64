package employee

import (
	"github.com/spti-payroll/attendance-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name         string   `json:"name"`
	EmployeeCode string   `json:"employee_code"`
	BiometricID  int64    `json:"biometric_id"`
	WorkingHours *float64 `json:"working_hours"`
	ShiftID      *string  `json:"shift_id"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	}
	if r.BiometricID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "biometric_id",
			Message: "biometric_id must be a positive number",
		})
	}
	if r.WorkingHours != nil && (*r.WorkingHours <= 0 || *r.WorkingHours > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "working_hours",
			Message: "working_hours must be between 0 and 24",
		})
	}
	if r.ShiftID != nil && !validator.IsValidUUID(*r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	CreateEmployeeRequest
}

type EmployeeResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	EmployeeCode string   `json:"employee_code"`
	BiometricID  int64    `json:"biometric_id"`
	WorkingHours *float64 `json:"working_hours,omitempty"`
	ShiftID      *string  `json:"shift_id,omitempty"`
	ShiftName    *string  `json:"shift_name,omitempty"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

// DeviceUser is one entry of the device's user table, pushed by the
// collector during a roster sync.
type DeviceUser struct {
	BiometricID  int64  `json:"biometric_id"`
	Name         string `json:"name"`
	EmployeeCode string `json:"employee_code"`
}
