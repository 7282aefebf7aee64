package user

import "context"

// UserRepository defines data access methods for API users.
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)

	GetByID(ctx context.Context, id string) (User, error)

	GetByEmail(ctx context.Context, email string) (User, error)
}
