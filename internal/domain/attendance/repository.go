package attendance

import (
	"context"
	"time"
)

// LogRepository defines data access methods for raw punch logs.
type LogRepository interface {
	Create(ctx context.Context, log AttendanceLog) (AttendanceLog, error)

	GetByID(ctx context.Context, id string) (AttendanceLog, error)

	Update(ctx context.Context, log AttendanceLog) error

	Delete(ctx context.Context, id string) error

	// GetByIDs fetches the given logs; missing IDs are silently omitted.
	GetByIDs(ctx context.Context, ids []string) ([]AttendanceLog, error)

	DeleteByIDs(ctx context.Context, ids []string) (int64, error)

	List(ctx context.Context, filter LogFilter) ([]AttendanceLog, int64, error)

	// ListByEmployeeBetween returns the employee's logs with
	// from <= timestamp < to, ordered by timestamp ascending.
	ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]AttendanceLog, error)

	// ExistingSignatures returns the (employee, timestamp) pairs already
	// stored within [from, to]. Used to drop duplicates during ingestion.
	ExistingSignatures(ctx context.Context, from, to time.Time) (map[LogSignature]struct{}, error)

	// BulkCreate inserts the given logs, skipping any that collide with the
	// (employee_id, ts) uniqueness constraint. Returns the inserted count.
	BulkCreate(ctx context.Context, logs []AttendanceLog) (int64, error)

	// DistinctDays lists the distinct (employee, local date) pairs that own
	// at least one log in the date range. employeeID narrows to one employee.
	DistinctDays(ctx context.Context, employeeID *string, startDate, endDate string) ([]DayKey, error)
}

// SummaryRepository defines data access methods for daily summaries.
// Upsert is the engine's only write path; nothing else mutates summary rows.
type SummaryRepository interface {
	// Upsert atomically replaces every field of the row identified by
	// (employee_id, date, shift_id), inserting it when absent. A nil shift
	// is a distinct key from any shift id.
	Upsert(ctx context.Context, s DailySummary) error

	List(ctx context.Context, filter SummaryFilter) ([]DailySummary, int64, error)

	// ExistingDays returns the (employee, date) pairs that already have at
	// least one summary row in the date range. Used by the ingestion
	// backfill safety net.
	ExistingDays(ctx context.Context, startDate, endDate string) (map[DayKey]struct{}, error)

	// ListForPeriod returns all summaries with startDate <= date <= endDate
	// ordered by employee and date. Used by reporting.
	ListForPeriod(ctx context.Context, startDate, endDate string) ([]DailySummary, error)
}
