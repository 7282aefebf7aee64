package user

import "time"

// User is an operator of the admin API. Employees themselves never log in;
// they only punch the device.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
