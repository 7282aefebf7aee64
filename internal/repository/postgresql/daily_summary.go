package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/attendance"
	"github.com/spti-payroll/attendance-backend-go/internal/pkg/database"
)

type dailySummaryRepository struct {
	db *database.DB
}

// Upsert implements attendance.SummaryRepository.
//
// The (employee_id, date, shift_id) index is declared NULLS NOT DISTINCT so a
// shiftless summary occupies exactly one row per employee-day.
func (r *dailySummaryRepository) Upsert(ctx context.Context, s attendance.DailySummary) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO daily_summaries (
			id, employee_id, date, shift_id, first_check_in, last_check_out,
			total_hours, night_hours, day_hours, overtime_hours, is_overtime,
			night_allowance_amount
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
		ON CONFLICT (employee_id, date, shift_id) DO UPDATE SET
			first_check_in = EXCLUDED.first_check_in,
			last_check_out = EXCLUDED.last_check_out,
			total_hours = EXCLUDED.total_hours,
			night_hours = EXCLUDED.night_hours,
			day_hours = EXCLUDED.day_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			is_overtime = EXCLUDED.is_overtime,
			night_allowance_amount = EXCLUDED.night_allowance_amount,
			updated_at = NOW()
	`

	if s.ID == "" {
		s.ID = uuid.Must(uuid.NewV7()).String()
	}
	_, err := q.Exec(ctx, query,
		s.ID,
		s.EmployeeID,
		s.Date,
		s.ShiftID,
		s.FirstCheckIn,
		s.LastCheckOut,
		s.TotalHours,
		s.NightHours,
		s.DayHours,
		s.OvertimeHours,
		s.IsOvertime,
		s.NightAllowanceAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert daily summary: %w", err)
	}

	return nil
}

// List implements attendance.SummaryRepository.
func (r *dailySummaryRepository) List(ctx context.Context, filter attendance.SummaryFilter) ([]attendance.DailySummary, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND s.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND s.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND s.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.ShiftID != nil && *filter.ShiftID != "" {
		baseWhere += fmt.Sprintf(" AND s.shift_id = $%d", argIdx)
		args = append(args, *filter.ShiftID)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM daily_summaries s
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count daily summaries: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT s.id, s.employee_id, s.date, s.shift_id, s.first_check_in, s.last_check_out,
			   s.total_hours, s.night_hours, s.day_hours, s.overtime_hours, s.is_overtime,
			   s.night_allowance_amount, s.created_at, s.updated_at,
			   e.name AS employee_name,
			   sh.name AS shift_name
		FROM daily_summaries s
		LEFT JOIN employees e ON e.id = s.employee_id
		LEFT JOIN shifts sh ON sh.id = s.shift_id
		WHERE %s
		ORDER BY s.date DESC, e.name
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
		return nil, 0, fmt.Errorf("failed to query daily summaries: %w", err)
	}
	defer rows.Close()

	var summaries []attendance.DailySummary
	for rows.Next() {
		var s attendance.DailySummary
		err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.Date, &s.ShiftID, &s.FirstCheckIn, &s.LastCheckOut,
			&s.TotalHours, &s.NightHours, &s.DayHours, &s.OvertimeHours, &s.IsOvertime,
			&s.NightAllowanceAmount, &s.CreatedAt, &s.UpdatedAt,
			&s.EmployeeName, &s.ShiftName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan daily summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, total, rows.Err()
}

// ExistingDays implements attendance.SummaryRepository.
func (r *dailySummaryRepository) ExistingDays(ctx context.Context, startDate, endDate string) (map[attendance.DayKey]struct{}, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT employee_id, to_char(date, 'YYYY-MM-DD')
		FROM daily_summaries
		WHERE date BETWEEN $1 AND $2
	`

	rows, err := q.Query(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query existing summary days: %w", err)
	}
	defer rows.Close()

	days := make(map[attendance.DayKey]struct{})
	for rows.Next() {
		var key attendance.DayKey
		if err := rows.Scan(&key.EmployeeID, &key.Date); err != nil {
			return nil, fmt.Errorf("failed to scan summary day: %w", err)
		}
		days[key] = struct{}{}
	}

	return days, rows.Err()
}

// ListForPeriod implements attendance.SummaryRepository.
func (r *dailySummaryRepository) ListForPeriod(ctx context.Context, startDate, endDate string) ([]attendance.DailySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.employee_id, s.date, s.shift_id, s.first_check_in, s.last_check_out,
			   s.total_hours, s.night_hours, s.day_hours, s.overtime_hours, s.is_overtime,
			   s.night_allowance_amount, s.created_at, s.updated_at,
			   e.name AS employee_name,
			   sh.name AS shift_name
		FROM daily_summaries s
		LEFT JOIN employees e ON e.id = s.employee_id
		LEFT JOIN shifts sh ON sh.id = s.shift_id
		WHERE s.date BETWEEN $1 AND $2
		ORDER BY s.employee_id, s.date
	`

	rows, err := q.Query(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries for period: %w", err)
	}
	defer rows.Close()

	var summaries []attendance.DailySummary
	for rows.Next() {
		var s attendance.DailySummary
		err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.Date, &s.ShiftID, &s.FirstCheckIn, &s.LastCheckOut,
			&s.TotalHours, &s.NightHours, &s.DayHours, &s.OvertimeHours, &s.IsOvertime,
			&s.NightAllowanceAmount, &s.CreatedAt, &s.UpdatedAt,
			&s.EmployeeName, &s.ShiftName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

func NewDailySummaryRepository(db *database.DB) attendance.SummaryRepository {
	return &dailySummaryRepository{db: db}
}
