package shift

import "context"

// ShiftRepository defines data access methods for the shift catalog.
type ShiftRepository interface {
	Create(ctx context.Context, s Shift) (Shift, error)

	GetByID(ctx context.Context, id string) (Shift, error)

	// List retrieves the full catalog ordered by name.
	List(ctx context.Context) ([]Shift, error)

	// ListActive retrieves active shifts ordered by name. The engine always
	// reads the full catalog instead, so assigned-but-inactive shifts still
	// resolve.
	ListActive(ctx context.Context) ([]Shift, error)

	Update(ctx context.Context, s Shift) error

	Delete(ctx context.Context, id string) error
}

// WorkSettingsRepository manages the singleton settings row.
type WorkSettingsRepository interface {
	// GetOrCreate returns the settings row, inserting the defaults when it
	// does not exist yet.
	GetOrCreate(ctx context.Context) (WorkSettings, error)

	Update(ctx context.Context, s WorkSettings) (WorkSettings, error)
}
