package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// GetByUserAndDay returns the user's record with date in [dayStart, dayEnd), or nil when
	// there is none.
	GetByUserAndDay(ctx context.Context, userID string, dayStart, dayEnd time.Time) (*Attendance, error)

	// Create inserts a check-in. A second record for the same user and day yields
	// ErrConcurrentAttendanceConflict.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// CheckOut closes an open record, overwriting its location. It yields ErrAlreadyCheckedOut
	// when the record was closed in the meantime. Status is never modified.
	CheckOut(ctx context.Context, id string, at time.Time, latitude, longitude float64) (Attendance, error)
}
