package response

import (
	"errors"
	"net/http"

	"github.com/spti-payroll/attendance-backend-go/internal/domain/attendance"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/auth"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/employee"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/shift"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/user"
	"github.com/spti-payroll/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrBiometricIDExists):
		Conflict(w, "Biometric ID already registered")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrShiftNameExists):
		Conflict(w, "Shift name already exists")
	case errors.Is(err, shift.ErrShiftInUse):
		Conflict(w, "Shift is referenced by employees or summaries")
	case errors.Is(err, shift.ErrGeneralShiftExists):
		Conflict(w, "An active general shift already exists")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrLogNotFound):
		NotFound(w, "Attendance log not found")
	case errors.Is(err, attendance.ErrDuplicateLog):
		Conflict(w, "An identical punch already exists")
	case errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, "Invalid date range", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
