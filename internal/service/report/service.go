package report

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/export"
	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/timeutil"
)

const exportSheetName = "Attendance"

type ReportServiceImpl struct {
	report.ReportRepository
	location *time.Location
	now      func() time.Time
}

// NewReportService creates the reporting service. Dates are parsed and exported in loc; clock may
// be nil to use time.Now.
func NewReportService(reportRepository report.ReportRepository, loc *time.Location, clock func() time.Time) report.ReportService {
	if loc == nil {
		loc = time.Local
	}
	if clock == nil {
		clock = time.Now
	}
	return &ReportServiceImpl{
		ReportRepository: reportRepository,
		location:         loc,
		now:              clock,
	}
}

// ListOwn implements report.ReportService.
func (s *ReportServiceImpl) ListOwn(ctx context.Context, req report.ListOwnRequest) (report.Page[attendance.AttendanceResponse], error) {
	query, err := req.Parse(s.location)
	if err != nil {
		return report.Page[attendance.AttendanceResponse]{}, err
	}

	records, total, err := s.ReportRepository.ListByUser(ctx, query)
	if err != nil {
		return report.Page[attendance.AttendanceResponse]{}, fmt.Errorf("failed to list own attendance: %w", err)
	}

	data := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		data = append(data, attendance.NewAttendanceResponse(r))
	}
	return report.Page[attendance.AttendanceResponse]{
		Page:  query.Page,
		Limit: query.Limit,
		Total: total,
		Data:  data,
	}, nil
}

// ListAdmin implements report.ReportService.
func (s *ReportServiceImpl) ListAdmin(ctx context.Context, req report.ListAdminRequest) (report.Page[report.EnrichedAttendanceResponse], error) {
	query, err := req.Parse(s.location)
	if err != nil {
		return report.Page[report.EnrichedAttendanceResponse]{}, err
	}

	records, total, err := s.ReportRepository.ListEnriched(ctx, query)
	if err != nil {
		return report.Page[report.EnrichedAttendanceResponse]{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	data := make([]report.EnrichedAttendanceResponse, 0, len(records))
	for _, r := range records {
		data = append(data, report.NewEnrichedAttendanceResponse(r))
	}
	return report.Page[report.EnrichedAttendanceResponse]{
		Page:  query.Page,
		Limit: query.Limit,
		Total: total,
		Data:  data,
	}, nil
}

// Export implements report.ReportService. JSON results carry rows only; CSV and XLSX results
// carry a rendered Document as well.
func (s *ReportServiceImpl) Export(ctx context.Context, req report.FilterRequest, format report.ExportFormat) (report.ExportResult, error) {
	filter, err := req.Parse(s.location)
	if err != nil {
		return report.ExportResult{}, err
	}

	records, err := s.ReportRepository.ListForExport(ctx, filter)
	if err != nil {
		return report.ExportResult{}, fmt.Errorf("failed to load attendance for export: %w", err)
	}

	rows := make([]report.ExportRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, s.toExportRow(r))
	}
	result := report.ExportResult{Format: format, Total: len(rows), Rows: rows}

	if format == report.FormatJSON {
		return result, nil
	}

	doc, err := s.render(rows, format)
	if err != nil {
		slog.Error("failed to render attendance export", "format", format, "rows", len(rows), "error", err)
		return report.ExportResult{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}
	result.Document = doc
	return result, nil
}

func (s *ReportServiceImpl) render(rows []report.ExportRow, format report.ExportFormat) (*report.Document, error) {
	table := export.Table{Columns: report.ExportColumns, Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		table.Rows = append(table.Rows, r.Values())
	}

	var (
		body        []byte
		contentType string
		err         error
	)
	switch format {
	case report.FormatCSV:
		body, err = export.CSV(table)
		contentType = export.CSVContentType
	case report.FormatXLSX:
		body, err = export.XLSX(exportSheetName, table)
		contentType = export.XLSXContentType
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return nil, err
	}

	return &report.Document{
		ContentType: contentType,
		Filename:    fmt.Sprintf("attendance_%d.%s", s.now().UnixMilli(), format),
		Body:        body,
	}, nil
}

func (s *ReportServiceImpl) toExportRow(r report.EnrichedAttendance) report.ExportRow {
	row := report.ExportRow{
		ID:        r.ID,
		Date:      r.Date.In(s.location).Format(timeutil.DateLayout),
		CheckIn:   timeutil.FormatISO(&r.CheckIn),
		CheckOut:  timeutil.FormatISO(r.CheckOut),
		Status:    string(r.Status),
		Latitude:  formatCoordinate(r.Latitude),
		Longitude: formatCoordinate(r.Longitude),
	}
	if r.Employee != nil {
		row.Name = r.Employee.Name
		row.Email = r.Employee.Email
		row.Department = derefString(r.Employee.Department)
		row.Designation = derefString(r.Employee.Designation)
	}
	return row
}

func formatCoordinate(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
