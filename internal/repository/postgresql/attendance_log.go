package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/attendance"
	"github.com/spti-payroll/attendance-backend-go/internal/pkg/database"
)

type attendanceLogRepository struct {
	db *database.DB
	tz string
}

// Create implements attendance.LogRepository.
func (r *attendanceLogRepository) Create(ctx context.Context, log attendance.AttendanceLog) (attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_logs (id, employee_id, ts, status_code, verification_mode)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	if log.ID == "" {
		log.ID = uuid.Must(uuid.NewV7()).String()
	}
	err := q.QueryRow(ctx, query,
		log.ID,
		log.EmployeeID,
		log.Timestamp,
		log.StatusCode,
		log.VerificationMode,
	).Scan(&log.ID, &log.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return attendance.AttendanceLog{}, attendance.ErrDuplicateLog
		}
		return attendance.AttendanceLog{}, fmt.Errorf("failed to create attendance log: %w", err)
	}

	return log, nil
}

// GetByID implements attendance.LogRepository.
func (r *attendanceLogRepository) GetByID(ctx context.Context, id string) (attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.employee_id, l.ts, l.status_code, l.verification_mode, l.created_at,
			   e.name AS employee_name,
			   e.employee_code AS employee_code
		FROM attendance_logs l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE l.id = $1
	`

	var log attendance.AttendanceLog
	err := q.QueryRow(ctx, query, id).Scan(
		&log.ID, &log.EmployeeID, &log.Timestamp, &log.StatusCode, &log.VerificationMode, &log.CreatedAt,
		&log.EmployeeName, &log.EmployeeCode,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.AttendanceLog{}, attendance.ErrLogNotFound
		}
		return attendance.AttendanceLog{}, fmt.Errorf("failed to get attendance log by ID: %w", err)
	}

	return log, nil
}

// Update implements attendance.LogRepository.
func (r *attendanceLogRepository) Update(ctx context.Context, log attendance.AttendanceLog) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_logs
		SET ts = $1, status_code = $2, verification_mode = $3
		WHERE id = $4
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, log.Timestamp, log.StatusCode, log.VerificationMode, log.ID).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrLogNotFound
		}
		if isUniqueViolation(err) {
			return attendance.ErrDuplicateLog
		}
		return fmt.Errorf("failed to update attendance log: %w", err)
	}

	return nil
}

// Delete implements attendance.LogRepository.
func (r *attendanceLogRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM attendance_logs WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance log: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrLogNotFound
	}

	return nil
}

// GetByIDs implements attendance.LogRepository.
func (r *attendanceLogRepository) GetByIDs(ctx context.Context, ids []string) ([]attendance.AttendanceLog, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, ts, status_code, verification_mode, created_at
		FROM attendance_logs
		WHERE id = ANY($1)
		ORDER BY ts
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance logs by IDs: %w", err)
	}
	defer rows.Close()

	var logs []attendance.AttendanceLog
	for rows.Next() {
		var log attendance.AttendanceLog
		if err := rows.Scan(&log.ID, &log.EmployeeID, &log.Timestamp, &log.StatusCode, &log.VerificationMode, &log.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance log: %w", err)
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

// DeleteByIDs implements attendance.LogRepository.
func (r *attendanceLogRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM attendance_logs WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance logs: %w", err)
	}

	return commandTag.RowsAffected(), nil
}

// List implements attendance.LogRepository.
func (r *attendanceLogRepository) List(ctx context.Context, filter attendance.LogFilter) ([]attendance.AttendanceLog, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND l.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND (l.ts AT TIME ZONE $%d)::date >= $%d", argIdx, argIdx+1)
		args = append(args, r.tz, *filter.StartDate)
		argIdx += 2
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND (l.ts AT TIME ZONE $%d)::date <= $%d", argIdx, argIdx+1)
		args = append(args, r.tz, *filter.EndDate)
		argIdx += 2
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendance_logs l
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance logs: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT l.id, l.employee_id, l.ts, l.status_code, l.verification_mode, l.created_at,
			   e.name AS employee_name,
			   e.employee_code AS employee_code
		FROM attendance_logs l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE %s
		ORDER BY l.ts DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 50
	}
	offset := (filter.Page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance logs: %w", err)
	}
	defer rows.Close()

	var logs []attendance.AttendanceLog
	for rows.Next() {
		var log attendance.AttendanceLog
		err := rows.Scan(
			&log.ID, &log.EmployeeID, &log.Timestamp, &log.StatusCode, &log.VerificationMode, &log.CreatedAt,
			&log.EmployeeName, &log.EmployeeCode,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance log: %w", err)
		}
		logs = append(logs, log)
	}

	return logs, total, rows.Err()
}

// ListByEmployeeBetween implements attendance.LogRepository.
func (r *attendanceLogRepository) ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, ts, status_code, verification_mode, created_at
		FROM attendance_logs
		WHERE employee_id = $1
		  AND ts >= $2
		  AND ts < $3
		ORDER BY ts
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance logs for employee: %w", err)
	}
	defer rows.Close()

	var logs []attendance.AttendanceLog
	for rows.Next() {
		var log attendance.AttendanceLog
		if err := rows.Scan(&log.ID, &log.EmployeeID, &log.Timestamp, &log.StatusCode, &log.VerificationMode, &log.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance log: %w", err)
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

// ExistingSignatures implements attendance.LogRepository.
func (r *attendanceLogRepository) ExistingSignatures(ctx context.Context, from, to time.Time) (map[attendance.LogSignature]struct{}, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, ts
		FROM attendance_logs
		WHERE ts >= $1 AND ts <= $2
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query existing signatures: %w", err)
	}
	defer rows.Close()

	signatures := make(map[attendance.LogSignature]struct{})
	for rows.Next() {
		var employeeID string
		var ts time.Time
		if err := rows.Scan(&employeeID, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan signature: %w", err)
		}
		signatures[attendance.LogSignature{EmployeeID: employeeID, UnixTime: ts.Unix()}] = struct{}{}
	}

	return signatures, rows.Err()
}

// BulkCreate implements attendance.LogRepository.
func (r *attendanceLogRepository) BulkCreate(ctx context.Context, logs []attendance.AttendanceLog) (int64, error) {
	if len(logs) == 0 {
		return 0, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_logs (id, employee_id, ts, status_code, verification_mode)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, ts) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, log := range logs {
		id := log.ID
		if id == "" {
			id = uuid.Must(uuid.NewV7()).String()
		}
		batch.Queue(query, id, log.EmployeeID, log.Timestamp, log.StatusCode, log.VerificationMode)
	}

	br := q.SendBatch(ctx, batch)
	defer br.Close()

	var inserted int64
	for range logs {
		commandTag, err := br.Exec()
		if err != nil {
			return inserted, fmt.Errorf("failed to bulk insert attendance logs: %w", err)
		}
		inserted += commandTag.RowsAffected()
	}

	return inserted, nil
}

// DistinctDays implements attendance.LogRepository.
func (r *attendanceLogRepository) DistinctDays(ctx context.Context, employeeID *string, startDate, endDate string) ([]attendance.DayKey, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "(ts AT TIME ZONE $1)::date BETWEEN $2 AND $3"
	args := []interface{}{r.tz, startDate, endDate}
	if employeeID != nil && *employeeID != "" {
		baseWhere += " AND employee_id = $4"
		args = append(args, *employeeID)
	}

	query := `
		SELECT DISTINCT employee_id, to_char((ts AT TIME ZONE $1)::date, 'YYYY-MM-DD')
		FROM attendance_logs
		WHERE ` + baseWhere + `
		ORDER BY employee_id, 2
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct attendance days: %w", err)
	}
	defer rows.Close()

	var keys []attendance.DayKey
	for rows.Next() {
		var key attendance.DayKey
		if err := rows.Scan(&key.EmployeeID, &key.Date); err != nil {
			return nil, fmt.Errorf("failed to scan attendance day: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

func NewAttendanceLogRepository(db *database.DB, tz string) attendance.LogRepository {
	return &attendanceLogRepository{db: db, tz: tz}
}
