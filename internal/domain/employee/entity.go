package employee

import "time"

// Employee mirrors the roster held on the biometric device plus local
// payroll configuration.
type Employee struct {
	ID           string
	Name         string
	EmployeeCode string // internal company ID, unique
	BiometricID  int64  // ID on the recording device, unique
	WorkingHours *float64
	ShiftID      *string // nil means auto-detect the shift per punch
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	ShiftName *string
}
