package attendance

import "errors"

// Attendance domain errors
var (
	ErrConfigMissing                = errors.New("office location not set")
	ErrOutsideRadius                = errors.New("outside office radius")
	ErrAlreadyCheckedOut            = errors.New("already checked out today")
	ErrConcurrentAttendanceConflict = errors.New("attendance was marked concurrently, please retry")
	ErrAttendanceNotFound           = errors.New("attendance record not found")
)
