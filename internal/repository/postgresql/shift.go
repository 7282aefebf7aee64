package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/shift"
	"github.com/spti-payroll/attendance-backend-go/internal/pkg/database"
	"github.com/spti-payroll/attendance-backend-go/internal/pkg/validator"
)

const clockLayout = "15:04:05"

type shiftRepository struct {
	db *database.DB
}

const shiftColumns = `
	s.id, s.name, s.type,
	to_char(s.start_time, 'HH24:MI:SS'),
	to_char(s.end_time, 'HH24:MI:SS'),
	s.working_hours,
	to_char(s.break_start_time, 'HH24:MI:SS'),
	to_char(s.break_end_time, 'HH24:MI:SS'),
	s.exclude_break, s.night_allowance_pct, s.is_active,
	s.created_at, s.updated_at
`

// Create implements shift.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	if err := r.checkConflicts(ctx, s, ""); err != nil {
		return shift.Shift{}, err
	}

	query := `
		INSERT INTO shifts (
			id, name, type, start_time, end_time, working_hours,
			break_start_time, break_end_time, exclude_break,
			night_allowance_pct, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	if s.ID == "" {
		s.ID = uuid.Must(uuid.NewV7()).String()
	}
	err := q.QueryRow(ctx, query,
		s.ID,
		s.Name,
		s.Type,
		s.StartTime.Format(clockLayout),
		s.EndTime.Format(clockLayout),
		s.WorkingHours,
		clockPtr(s.BreakStartTime),
		clockPtr(s.BreakEndTime),
		s.ExcludeBreak,
		s.NightAllowancePct,
		s.IsActive,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return s, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftColumns + ` FROM shifts s WHERE s.id = $1`

	s, err := scanShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift by ID: %w", err)
	}

	return s, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepository) List(ctx context.Context) ([]shift.Shift, error) {
	return r.list(ctx, `SELECT `+shiftColumns+` FROM shifts s ORDER BY s.name`)
}

// ListActive implements shift.ShiftRepository.
func (r *shiftRepository) ListActive(ctx context.Context) ([]shift.Shift, error) {
	return r.list(ctx, `SELECT `+shiftColumns+` FROM shifts s WHERE s.is_active ORDER BY s.name`)
}

func (r *shiftRepository) list(ctx context.Context, query string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	return shifts, rows.Err()
}

// Update implements shift.ShiftRepository.
func (r *shiftRepository) Update(ctx context.Context, s shift.Shift) error {
	q := GetQuerier(ctx, r.db)

	if err := r.checkConflicts(ctx, s, s.ID); err != nil {
		return err
	}

	query := `
		UPDATE shifts
		SET name = $1, type = $2, start_time = $3, end_time = $4, working_hours = $5,
			break_start_time = $6, break_end_time = $7, exclude_break = $8,
			night_allowance_pct = $9, is_active = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		s.Name,
		s.Type,
		s.StartTime.Format(clockLayout),
		s.EndTime.Format(clockLayout),
		s.WorkingHours,
		clockPtr(s.BreakStartTime),
		clockPtr(s.BreakEndTime),
		s.ExcludeBreak,
		s.NightAllowancePct,
		s.IsActive,
		s.ID,
	).Scan(&updatedID)

	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to update shift: %w", err)
	}

	return nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var inUse bool
	usageQuery := `
		SELECT EXISTS (SELECT 1 FROM employees WHERE shift_id = $1)
			OR EXISTS (SELECT 1 FROM daily_summaries WHERE shift_id = $1)
	`
	if err := q.QueryRow(ctx, usageQuery, id).Scan(&inUse); err != nil {
		return fmt.Errorf("failed to check shift usage: %w", err)
	}
	if inUse {
		return shift.ErrShiftInUse
	}

	commandTag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// checkConflicts enforces the unique shift name and the single active GENERAL
// shift rule before writes.
func (r *shiftRepository) checkConflicts(ctx context.Context, s shift.Shift, excludeID string) error {
	q := GetQuerier(ctx, r.db)

	var nameTaken, generalExists bool
	query := `
		SELECT
			EXISTS (SELECT 1 FROM shifts WHERE name = $1 AND id <> $3),
			EXISTS (SELECT 1 FROM shifts WHERE type = 'GENERAL' AND is_active AND $2 AND id <> $3)
	`
	checkGeneral := s.Type == shift.ShiftTypeGeneral && s.IsActive
	if err := q.QueryRow(ctx, query, s.Name, checkGeneral, excludeID).Scan(&nameTaken, &generalExists); err != nil {
		return fmt.Errorf("failed to check shift uniqueness: %w", err)
	}

	if nameTaken {
		return shift.ErrShiftNameExists
	}
	if generalExists {
		return shift.ErrGeneralShiftExists
	}

	return nil
}

func clockPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(clockLayout)
	return &s
}

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	var startStr, endStr string
	var breakStart, breakEnd *string

	err := row.Scan(
		&s.ID, &s.Name, &s.Type,
		&startStr, &endStr,
		&s.WorkingHours,
		&breakStart, &breakEnd,
		&s.ExcludeBreak, &s.NightAllowancePct, &s.IsActive,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return shift.Shift{}, err
	}

	if s.StartTime, err = validator.ParseClockTime(startStr); err != nil {
		return shift.Shift{}, fmt.Errorf("invalid start_time %q: %w", startStr, err)
	}
	if s.EndTime, err = validator.ParseClockTime(endStr); err != nil {
		return shift.Shift{}, fmt.Errorf("invalid end_time %q: %w", endStr, err)
	}
	if breakStart != nil {
		t, err := validator.ParseClockTime(*breakStart)
		if err != nil {
			return shift.Shift{}, fmt.Errorf("invalid break_start_time %q: %w", *breakStart, err)
		}
		s.BreakStartTime = &t
	}
	if breakEnd != nil {
		t, err := validator.ParseClockTime(*breakEnd)
		if err != nil {
			return shift.Shift{}, fmt.Errorf("invalid break_end_time %q: %w", *breakEnd, err)
		}
		s.BreakEndTime = &t
	}

	return s, nil
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}
