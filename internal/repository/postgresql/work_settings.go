package postgresql

import (
	"context"
	"fmt"

	"github.com/spti-payroll/attendance-backend-go/internal/domain/shift"
	"github.com/spti-payroll/attendance-backend-go/internal/pkg/database"
	"github.com/spti-payroll/attendance-backend-go/internal/pkg/validator"
)

type workSettingsRepository struct {
	db *database.DB
}

// The settings table holds exactly one row, pinned to id = 1.

// GetOrCreate implements shift.WorkSettingsRepository.
func (r *workSettingsRepository) GetOrCreate(ctx context.Context) (shift.WorkSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_settings (id) VALUES (1)
		ON CONFLICT (id) DO UPDATE SET id = work_settings.id
		RETURNING default_working_hours,
				  to_char(lunch_start_time, 'HH24:MI:SS'),
				  to_char(lunch_end_time, 'HH24:MI:SS'),
				  exclude_lunch_from_hours,
				  to_char(night_start_time, 'HH24:MI:SS'),
				  to_char(night_end_time, 'HH24:MI:SS'),
				  updated_at
	`

	return r.scan(q.QueryRow(ctx, query))
}

// Update implements shift.WorkSettingsRepository.
func (r *workSettingsRepository) Update(ctx context.Context, s shift.WorkSettings) (shift.WorkSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_settings (
			id, default_working_hours, lunch_start_time, lunch_end_time,
			exclude_lunch_from_hours, night_start_time, night_end_time
		) VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			default_working_hours = EXCLUDED.default_working_hours,
			lunch_start_time = EXCLUDED.lunch_start_time,
			lunch_end_time = EXCLUDED.lunch_end_time,
			exclude_lunch_from_hours = EXCLUDED.exclude_lunch_from_hours,
			night_start_time = EXCLUDED.night_start_time,
			night_end_time = EXCLUDED.night_end_time,
			updated_at = NOW()
		RETURNING default_working_hours,
				  to_char(lunch_start_time, 'HH24:MI:SS'),
				  to_char(lunch_end_time, 'HH24:MI:SS'),
				  exclude_lunch_from_hours,
				  to_char(night_start_time, 'HH24:MI:SS'),
				  to_char(night_end_time, 'HH24:MI:SS'),
				  updated_at
	`

	row := q.QueryRow(ctx, query,
		s.DefaultWorkingHours,
		s.LunchStartTime.Format(clockLayout),
		s.LunchEndTime.Format(clockLayout),
		s.ExcludeLunchFromHours,
		s.NightStartTime.Format(clockLayout),
		s.NightEndTime.Format(clockLayout),
	)

	return r.scan(row)
}

func (r *workSettingsRepository) scan(row interface{ Scan(dest ...interface{}) error }) (shift.WorkSettings, error) {
	var s shift.WorkSettings
	var lunchStart, lunchEnd, nightStart, nightEnd string

	err := row.Scan(
		&s.DefaultWorkingHours,
		&lunchStart, &lunchEnd,
		&s.ExcludeLunchFromHours,
		&nightStart, &nightEnd,
		&s.UpdatedAt,
	)
	if err != nil {
		return shift.WorkSettings{}, fmt.Errorf("failed to read work settings: %w", err)
	}

	if s.LunchStartTime, err = validator.ParseClockTime(lunchStart); err != nil {
		return shift.WorkSettings{}, fmt.Errorf("invalid lunch_start_time %q: %w", lunchStart, err)
	}
	if s.LunchEndTime, err = validator.ParseClockTime(lunchEnd); err != nil {
		return shift.WorkSettings{}, fmt.Errorf("invalid lunch_end_time %q: %w", lunchEnd, err)
	}
	if s.NightStartTime, err = validator.ParseClockTime(nightStart); err != nil {
		return shift.WorkSettings{}, fmt.Errorf("invalid night_start_time %q: %w", nightStart, err)
	}
	if s.NightEndTime, err = validator.ParseClockTime(nightEnd); err != nil {
		return shift.WorkSettings{}, fmt.Errorf("invalid night_end_time %q: %w", nightEnd, err)
	}

	return s, nil
}

func NewWorkSettingsRepository(db *database.DB) shift.WorkSettingsRepository {
	return &workSettingsRepository{db: db}
}
