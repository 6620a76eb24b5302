package shift

import "errors"

var (
	ErrShiftNotFound    = errors.New("shift not found")
	ErrSubShiftNotFound = errors.New("sub-shift not found")
	ErrInvalidWindow    = errors.New("invalid shift window")
)
