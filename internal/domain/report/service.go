package report

import (
	"context"

	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/attendance"
)

// ReportService defines the interface for attendance reporting
type ReportService interface {
	ListOwn(ctx context.Context, req ListOwnRequest) (Page[attendance.AttendanceResponse], error)
	ListAdmin(ctx context.Context, req ListAdminRequest) (Page[EnrichedAttendanceResponse], error)
	Export(ctx context.Context, req FilterRequest, format ExportFormat) (ExportResult, error)
}
