package attendance

import "errors"

var (
	ErrLogNotFound      = errors.New("attendance log not found")
	ErrDuplicateLog     = errors.New("a log already exists for this employee and timestamp")
	ErrInvalidDateRange = errors.New("start date must not be after end date")
)
