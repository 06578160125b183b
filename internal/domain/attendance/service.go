package attendance

import (
	"context"
)

type AttendanceService interface {
	// MarkAttendance checks the user in on their first valid mark of the day and out on the
	// second.
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (MarkAttendanceResponse, error)
}
