package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/employee"
	"github.com/spti-payroll/attendance-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	if err := r.checkConflicts(ctx, e, ""); err != nil {
		return employee.Employee{}, err
	}

	query := `
		INSERT INTO employees (id, name, employee_code, biometric_id, working_hours, shift_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	if e.ID == "" {
		e.ID = uuid.Must(uuid.NewV7()).String()
	}
	err := q.QueryRow(ctx, query,
		e.ID,
		e.Name,
		e.EmployeeCode,
		e.BiometricID,
		e.WorkingHours,
		e.ShiftID,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)

	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.name, e.employee_code, e.biometric_id, e.working_hours, e.shift_id,
			   e.created_at, e.updated_at,
			   s.name AS shift_name
		FROM employees e
		LEFT JOIN shifts s ON s.id = e.shift_id
		WHERE e.id = $1
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.EmployeeCode, &e.BiometricID, &e.WorkingHours, &e.ShiftID,
		&e.CreatedAt, &e.UpdatedAt,
		&e.ShiftName,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return e, nil
}

// GetByBiometricID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByBiometricID(ctx context.Context, biometricID int64) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, employee_code, biometric_id, working_hours, shift_id, created_at, updated_at
		FROM employees
		WHERE biometric_id = $1
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, biometricID).Scan(
		&e.ID, &e.Name, &e.EmployeeCode, &e.BiometricID, &e.WorkingHours, &e.ShiftID,
		&e.CreatedAt, &e.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by biometric ID: %w", err)
	}

	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.name, e.employee_code, e.biometric_id, e.working_hours, e.shift_id,
			   e.created_at, e.updated_at,
			   s.name AS shift_name
		FROM employees e
		LEFT JOIN shifts s ON s.id = e.shift_id
		ORDER BY e.name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		err := rows.Scan(
			&e.ID, &e.Name, &e.EmployeeCode, &e.BiometricID, &e.WorkingHours, &e.ShiftID,
			&e.CreatedAt, &e.UpdatedAt,
			&e.ShiftName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	if err := r.checkConflicts(ctx, e, e.ID); err != nil {
		return err
	}

	query := `
		UPDATE employees
		SET name = $1, employee_code = $2, biometric_id = $3, working_hours = $4,
			shift_id = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		e.Name, e.EmployeeCode, e.BiometricID, e.WorkingHours, e.ShiftID, e.ID,
	).Scan(&updatedID)

	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// UpsertByBiometricID implements employee.EmployeeRepository.
func (r *employeeRepository) UpsertByBiometricID(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, name, employee_code, biometric_id, working_hours, shift_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (biometric_id) DO UPDATE SET
			name = EXCLUDED.name,
			updated_at = NOW()
		RETURNING id, name, employee_code, biometric_id, working_hours, shift_id, created_at, updated_at
	`

	if e.ID == "" {
		e.ID = uuid.Must(uuid.NewV7()).String()
	}
	err := q.QueryRow(ctx, query,
		e.ID, e.Name, e.EmployeeCode, e.BiometricID, e.WorkingHours, e.ShiftID,
	).Scan(
		&e.ID, &e.Name, &e.EmployeeCode, &e.BiometricID, &e.WorkingHours, &e.ShiftID,
		&e.CreatedAt, &e.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to upsert employee: %w", err)
	}

	return e, nil
}

// checkConflicts guards the employee_code and biometric_id uniqueness
// constraints with readable domain errors. excludeID skips the row being
// updated.
func (r *employeeRepository) checkConflicts(ctx context.Context, e employee.Employee, excludeID string) error {
	q := GetQuerier(ctx, r.db)

	var codeTaken, biometricTaken bool
	query := `
		SELECT
			EXISTS (SELECT 1 FROM employees WHERE employee_code = $1 AND id <> $3),
			EXISTS (SELECT 1 FROM employees WHERE biometric_id = $2 AND id <> $3)
	`
	if err := q.QueryRow(ctx, query, e.EmployeeCode, e.BiometricID, excludeID).Scan(&codeTaken, &biometricTaken); err != nil {
		return fmt.Errorf("failed to check employee uniqueness: %w", err)
	}

	if codeTaken {
		return employee.ErrEmployeeCodeExists
	}
	if biometricTaken {
		return employee.ErrBiometricIDExists
	}

	return nil
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}
