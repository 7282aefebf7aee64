package employee

import "context"

// EmployeeRepository defines data access methods for the employee roster.
type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)

	GetByID(ctx context.Context, id string) (Employee, error)

	GetByBiometricID(ctx context.Context, biometricID int64) (Employee, error)

	// List retrieves the whole roster ordered by name. The roster is small
	// (one device's user table) so no pagination is needed.
	List(ctx context.Context) ([]Employee, error)

	Update(ctx context.Context, e Employee) error

	Delete(ctx context.Context, id string) error

	// UpsertByBiometricID creates or refreshes a roster entry keyed by the
	// device-side user ID. Used by the roster sync.
	UpsertByBiometricID(ctx context.Context, e Employee) (Employee, error)
}
