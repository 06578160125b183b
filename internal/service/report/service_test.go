package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const ownerID = "6f1c2d4e-8a7b-4c3d-9e0f-1a2b3c4d5e6f"

// memoryReportRepository applies paging and the date range in memory, newest first.
type memoryReportRepository struct {
	records    []report.EnrichedAttendance
	lastFilter report.Filter
	lastAdmin  report.AdminQuery
}

func (m *memoryReportRepository) sorted() []report.EnrichedAttendance {
	out := append([]report.EnrichedAttendance(nil), m.records...)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func inRange(d time.Time, from, to *time.Time) bool {
	return (from == nil || !d.Before(*from)) && (to == nil || d.Before(*to))
}

func paginate[T any](items []T, page, limit int) []T {
	offset := report.Offset(page, limit)
	if offset >= int64(len(items)) {
		return []T{}
	}
	start := int(offset)
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func (m *memoryReportRepository) ListByUser(ctx context.Context, q report.OwnQuery) ([]attendance.Attendance, int64, error) {
	var matched []attendance.Attendance
	for _, r := range m.sorted() {
		if r.UserID == q.UserID && inRange(r.Date, q.From, q.To) {
			matched = append(matched, r.Attendance)
		}
	}
	return paginate(matched, q.Page, q.Limit), int64(len(matched)), nil
}

func (m *memoryReportRepository) ListEnriched(ctx context.Context, q report.AdminQuery) ([]report.EnrichedAttendance, int64, error) {
	m.lastAdmin = q
	matched, _ := m.ListForExport(ctx, q.Filter)
	return paginate(matched, q.Page, q.Limit), int64(len(matched)), nil
}

func (m *memoryReportRepository) ListForExport(ctx context.Context, f report.Filter) ([]report.EnrichedAttendance, error) {
	m.lastFilter = f
	var matched []report.EnrichedAttendance
	for _, r := range m.sorted() {
		if f.EmployeeID != nil && r.UserID != *f.EmployeeID {
			continue
		}
		if f.Department != nil && (r.Employee == nil || r.Employee.Department == nil || *r.Employee.Department != *f.Department) {
			continue
		}
		if !inRange(r.Date, f.From, f.To) {
			continue
		}
		matched = append(matched, r)
	}
	return matched, nil
}

func ist(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return loc
}

func strPtr(s string) *string {
	return &s
}

func seed(loc *time.Location, days int) []report.EnrichedAttendance {
	emp := &report.EmployeeSummary{ID: ownerID, Name: "Asha Rao", Email: "asha@example.com", Department: strPtr("Engineering")}
	var out []report.EnrichedAttendance
	for i := 0; i < days; i++ {
		day := time.Date(2025, 5, 1, 0, 0, 0, 0, loc).AddDate(0, 0, i)
		out = append(out, report.EnrichedAttendance{
			Attendance: attendance.Attendance{
				ID:      fmt.Sprintf("rec-%02d", i+1),
				UserID:  ownerID,
				Date:    day,
				CheckIn: day.Add(9 * time.Hour),
				Status:  attendance.StatusPresent,
			},
			Employee: emp,
		})
	}
	return out
}

func fixedClock() time.Time {
	return time.UnixMilli(1748736000000)
}

func TestListOwn_SecondPageOfTwentyFive(t *testing.T) {
	loc := ist(t)
	repo := &memoryReportRepository{records: seed(loc, 25)}
	svc := NewReportService(repo, loc, fixedClock)

	page, err := svc.ListOwn(context.Background(), report.ListOwnRequest{UserID: ownerID, Page: "2", Limit: "10"})
	require.NoError(t, err)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, int64(25), page.Total)
	require.Len(t, page.Data, 10)
	// Sorted newest first, so records 11-20 are days 15 down to 6.
	assert.Equal(t, "rec-15", page.Data[0].ID)
	assert.Equal(t, "rec-06", page.Data[9].ID)
}

func TestListOwn_ClampsLimitAndRejectsGarbage(t *testing.T) {
	loc := ist(t)
	repo := &memoryReportRepository{records: seed(loc, 3)}
	svc := NewReportService(repo, loc, fixedClock)

	page, err := svc.ListOwn(context.Background(), report.ListOwnRequest{UserID: ownerID, Page: "0", Limit: "1000"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, report.MaxOwnLimit, page.Limit)

	_, err = svc.ListOwn(context.Background(), report.ListOwnRequest{UserID: ownerID, Page: "two"})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}

func TestListOwn_InclusiveToDate(t *testing.T) {
	loc := ist(t)
	repo := &memoryReportRepository{records: seed(loc, 10)}
	svc := NewReportService(repo, loc, fixedClock)

	page, err := svc.ListOwn(context.Background(), report.ListOwnRequest{UserID: ownerID, From: "2025-05-03", To: "2025-05-05"})
	require.NoError(t, err)

	assert.Equal(t, int64(3), page.Total)
}

func TestListAdmin_DateOverridesRange(t *testing.T) {
	loc := ist(t)
	repo := &memoryReportRepository{records: seed(loc, 10)}
	svc := NewReportService(repo, loc, fixedClock)

	page, err := svc.ListAdmin(context.Background(), report.ListAdminRequest{
		FilterRequest: report.FilterRequest{Date: "2025-05-04", From: "2025-05-01", To: "2025-05-10"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, report.DefaultAdminLimit, page.Limit)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Asha Rao", page.Data[0].Employee.Name)
	assert.True(t, repo.lastAdmin.Filter.From.Equal(time.Date(2025, 5, 4, 0, 0, 0, 0, loc)))
	assert.True(t, repo.lastAdmin.Filter.To.Equal(time.Date(2025, 5, 5, 0, 0, 0, 0, loc)))
}

func TestListAdmin_InvalidEmployeeID(t *testing.T) {
	svc := NewReportService(&memoryReportRepository{}, ist(t), fixedClock)

	_, err := svc.ListAdmin(context.Background(), report.ListAdminRequest{
		FilterRequest: report.FilterRequest{EmployeeID: "not-a-uuid"},
	})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "employeeId")
}

func TestExport_JSONRows(t *testing.T) {
	loc := ist(t)
	records := seed(loc, 1)
	checkOut := records[0].CheckIn.Add(9 * time.Hour)
	records[0].CheckOut = &checkOut
	lat, lon := 12.9716, 77.5946
	records[0].Latitude, records[0].Longitude = &lat, &lon
	svc := NewReportService(&memoryReportRepository{records: records}, loc, fixedClock)

	res, err := svc.Export(context.Background(), report.FilterRequest{}, report.FormatJSON)
	require.NoError(t, err)

	assert.Nil(t, res.Document)
	assert.Equal(t, 1, res.Total)
	row := res.Rows[0]
	assert.Equal(t, "2025-05-01", row.Date, "date is the server-zone day, not the UTC one")
	assert.Equal(t, "2025-05-01T03:30:00.000Z", row.CheckIn)
	assert.Equal(t, "2025-05-01T12:30:00.000Z", row.CheckOut)
	assert.Equal(t, "Engineering", row.Department)
	assert.Equal(t, "", row.Designation)
	assert.Equal(t, "12.9716", row.Latitude)
	assert.Equal(t, "77.5946", row.Longitude)
}

func TestExport_CSV(t *testing.T) {
	loc := ist(t)
	svc := NewReportService(&memoryReportRepository{records: seed(loc, 3)}, loc, fixedClock)

	res, err := svc.Export(context.Background(), report.FilterRequest{}, report.FormatCSV)
	require.NoError(t, err)
	require.NotNil(t, res.Document)

	assert.Equal(t, "text/csv", res.Document.ContentType)
	assert.Equal(t, "attendance_1748736000000.csv", res.Document.Filename)
	rows, err := csv.NewReader(bytes.NewReader(res.Document.Body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, report.ExportColumns, rows[0])
	assert.Equal(t, "", rows[1][7], "open records export an empty checkOut")
}

func TestExport_EmptyCSVIsValid(t *testing.T) {
	svc := NewReportService(&memoryReportRepository{}, ist(t), fixedClock)

	res, err := svc.Export(context.Background(), report.FilterRequest{Department: "Nowhere"}, report.FormatCSV)

	require.NoError(t, err)
	require.NotNil(t, res.Document)
	assert.Equal(t, 0, res.Total)
	assert.Empty(t, res.Document.Body)
}

func TestExport_XLSX(t *testing.T) {
	loc := ist(t)
	svc := NewReportService(&memoryReportRepository{records: seed(loc, 2)}, loc, fixedClock)

	res, err := svc.Export(context.Background(), report.FilterRequest{}, report.FormatXLSX)
	require.NoError(t, err)
	require.NotNil(t, res.Document)
	assert.True(t, strings.HasSuffix(res.Document.Filename, ".xlsx"))

	f, err := excelize.OpenReader(bytes.NewReader(res.Document.Body))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestExport_InvalidDate(t *testing.T) {
	svc := NewReportService(&memoryReportRepository{}, ist(t), fixedClock)

	_, err := svc.Export(context.Background(), report.FilterRequest{From: "05/01/2025"}, report.FormatJSON)

	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}

func TestListOwn_InvertedRangeMatchesNothing(t *testing.T) {
	loc := ist(t)
	repo := &memoryReportRepository{records: seed(loc, 25)}
	svc := NewReportService(repo, loc, fixedClock)

	page, err := svc.ListOwn(context.Background(), report.ListOwnRequest{UserID: ownerID, From: "2025-05-10", To: "2025-05-01"})

	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
	assert.Empty(t, page.Data)
}

func TestListOwn_HugePageIsEmptyWithTotal(t *testing.T) {
	loc := ist(t)
	repo := &memoryReportRepository{records: seed(loc, 25)}
	svc := NewReportService(repo, loc, fixedClock)

	page, err := svc.ListOwn(context.Background(), report.ListOwnRequest{UserID: ownerID, Page: "9223372036854775807", Limit: "10"})

	require.NoError(t, err)
	assert.Equal(t, math.MaxInt64, page.Page)
	assert.Equal(t, int64(25), page.Total)
	assert.Empty(t, page.Data)
}
