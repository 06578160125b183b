package report

import (
	"context"

	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/attendance"
)

type ReportRepository interface {
	// ListByUser returns one page of the user's records, newest first, and the total count.
	ListByUser(ctx context.Context, q OwnQuery) ([]attendance.Attendance, int64, error)

	// ListEnriched inner-joins records with their owners. The department filter applies to the
	// joined owner and total counts the full filtered set.
	ListEnriched(ctx context.Context, q AdminQuery) ([]EnrichedAttendance, int64, error)

	// ListForExport left-joins records with their owners, unpaginated and newest first.
	ListForExport(ctx context.Context, f Filter) ([]EnrichedAttendance, error)
}
