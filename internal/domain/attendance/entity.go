package attendance

import "time"

// AttendanceLog is a single raw punch from the recording device. At most one
// log exists per (employee, timestamp); duplicates are rejected at ingestion.
type AttendanceLog struct {
	ID               string
	EmployeeID       string
	Timestamp        time.Time
	StatusCode       int
	VerificationMode int
	CreatedAt        time.Time

	// DTO / Join
	EmployeeName *string
	EmployeeCode *string
}

// DailySummary is the engine's sole output: one row per
// (employee, shift date, shift-or-none), always recomputed as a whole.
type DailySummary struct {
	ID                   string
	EmployeeID           string
	Date                 time.Time // shift date at midnight local
	ShiftID              *string   // nil is a distinct grouping key, not "any shift"
	FirstCheckIn         time.Time
	LastCheckOut         *time.Time // nil when the day holds a single punch
	TotalHours           float64
	NightHours           float64
	DayHours             float64
	OvertimeHours        float64
	IsOvertime           bool
	NightAllowanceAmount float64
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// DTO / Join
	EmployeeName *string
	ShiftName    *string
}

// DayKey identifies one employee-day that needs its summaries refreshed.
// Date is the local calendar date in YYYY-MM-DD form so keys are comparable
// and usable in sets.
type DayKey struct {
	EmployeeID string
	Date       string
}

const DateLayout = "2006-01-02"

// NewDayKey builds a key from a punch timestamp interpreted in loc.
func NewDayKey(employeeID string, ts time.Time, loc *time.Location) DayKey {
	return DayKey{EmployeeID: employeeID, Date: ts.In(loc).Format(DateLayout)}
}

// LogSignature is the ingestion uniqueness key for a punch.
type LogSignature struct {
	EmployeeID string
	UnixTime   int64
}

// Signature returns the uniqueness key of the log.
func (l *AttendanceLog) Signature() LogSignature {
	return LogSignature{EmployeeID: l.EmployeeID, UnixTime: l.Timestamp.Unix()}
}
