package shift

import "errors"

var (
	ErrShiftNotFound       = errors.New("shift not found")
	ErrShiftNameExists     = errors.New("shift name already exists")
	ErrShiftInUse          = errors.New("shift is assigned to one or more employees")
	ErrGeneralShiftExists  = errors.New("an active general shift already exists")
)
