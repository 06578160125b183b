package report

import (
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/validator"
)

const (
	DefaultOwnLimit   = 10
	MaxOwnLimit       = 100
	DefaultAdminLimit = 20
	MaxAdminLimit     = 200
)

// ========================================
// QUERY PARAMETERS
// ========================================

// ListOwnRequest carries the raw query parameters of GET /attendance/me.
type ListOwnRequest struct {
	UserID string
	Page   string
	Limit  string
	From   string
	To     string
}

// OwnQuery is a validated ListOwnRequest. The date range is half-open: [From, To).
type OwnQuery struct {
	UserID string
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

func (r *ListOwnRequest) Parse(loc *time.Location) (OwnQuery, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs.Add("user_id", "user_id is required")
	}
	page, limit := parsePaging(&errs, r.Page, r.Limit, DefaultOwnLimit, MaxOwnLimit)
	from, to := parseRange(&errs, "", r.From, r.To, loc)

	if err := errs.Err(); err != nil {
		return OwnQuery{}, err
	}
	return OwnQuery{UserID: r.UserID, From: from, To: to, Page: page, Limit: limit}, nil
}

// FilterRequest carries the raw filter parameters shared by the admin listing and the export.
type FilterRequest struct {
	EmployeeID string
	Department string
	Date       string
	From       string
	To         string
}

// Filter is a validated FilterRequest. Each field is optional; Date has already been folded
// into From/To.
type Filter struct {
	EmployeeID *string
	Department *string
	From       *time.Time
	To         *time.Time
}

func (r *FilterRequest) parse(errs *validator.ValidationErrors, loc *time.Location) Filter {
	var f Filter

	if id := strings.TrimSpace(r.EmployeeID); id != "" {
		if !validator.IsValidUUID(id) {
			errs.Add("employeeId", "employeeId must be a valid UUID")
		} else {
			f.EmployeeID = &id
		}
	}
	if dept := strings.TrimSpace(r.Department); dept != "" {
		f.Department = &dept
	}
	f.From, f.To = parseRange(errs, r.Date, r.From, r.To, loc)
	return f
}

func (r *FilterRequest) Parse(loc *time.Location) (Filter, error) {
	var errs validator.ValidationErrors
	f := r.parse(&errs, loc)
	if err := errs.Err(); err != nil {
		return Filter{}, err
	}
	return f, nil
}

// ListAdminRequest carries the raw query parameters of GET /attendance/admin.
type ListAdminRequest struct {
	FilterRequest
	Page  string
	Limit string
}

type AdminQuery struct {
	Filter Filter
	Page   int
	Limit  int
}

func (r *ListAdminRequest) Parse(loc *time.Location) (AdminQuery, error) {
	var errs validator.ValidationErrors

	f := r.FilterRequest.parse(&errs, loc)
	page, limit := parsePaging(&errs, r.Page, r.Limit, DefaultAdminLimit, MaxAdminLimit)

	if err := errs.Err(); err != nil {
		return AdminQuery{}, err
	}
	return AdminQuery{Filter: f, Page: page, Limit: limit}, nil
}

type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", validator.ValidationErrors{{Field: "format", Message: "format must be one of json, csv, xlsx"}}
}

// parsePaging clamps out-of-range values and rejects non-numeric ones.
func parsePaging(errs *validator.ValidationErrors, rawPage, rawLimit string, defLimit, maxLimit int) (int, int) {
	page, ok := validator.ParseOptionalInt(rawPage, 1)
	if !ok {
		errs.Add("page", "page must be an integer")
	}
	limit, ok := validator.ParseOptionalInt(rawLimit, defLimit)
	if !ok {
		errs.Add("limit", "limit must be an integer")
	}
	return ClampPage(page), ClampLimit(limit, maxLimit)
}

func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func ClampLimit(limit, max int) int {
	if limit < 1 {
		return 1
	}
	if limit > max {
		return max
	}
	return limit
}

// Offset is the number of rows before page. It saturates at math.MaxInt64 instead of
// overflowing, so any page >= 1 is accepted.
func Offset(page, limit int) int64 {
	if page <= 1 || limit <= 0 {
		return 0
	}
	skipped := int64(page - 1)
	if skipped > math.MaxInt64/int64(limit) {
		return math.MaxInt64
	}
	return skipped * int64(limit)
}

// parseRange resolves date/from/to into a half-open range. A single date overrides from and to.
func parseRange(errs *validator.ValidationErrors, rawDate, rawFrom, rawTo string, loc *time.Location) (*time.Time, *time.Time) {
	if rawDate != "" {
		d, err := timeutil.ParseDay(rawDate, loc)
		if err != nil {
			errs.Add("date", "date must be YYYY-MM-DD or an ISO 8601 timestamp")
			return nil, nil
		}
		end := timeutil.NextDay(d)
		return &d, &end
	}

	var from, to *time.Time
	if rawFrom != "" {
		d, err := timeutil.ParseDay(rawFrom, loc)
		if err != nil {
			errs.Add("from", "from must be YYYY-MM-DD or an ISO 8601 timestamp")
		} else {
			from = &d
		}
	}
	if rawTo != "" {
		d, err := timeutil.ParseDay(rawTo, loc)
		if err != nil {
			errs.Add("to", "to must be YYYY-MM-DD or an ISO 8601 timestamp")
		} else {
			end := timeutil.NextDay(d)
			to = &end
		}
	}
	return from, to
}

// ========================================
// RESULTS
// ========================================

type Page[T any] struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Data  []T   `json:"data"`
}

type EmployeeSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Department  *string `json:"department"`
	Designation *string `json:"designation"`
}

// EnrichedAttendance is an attendance record joined with its owner. Employee is nil only when
// the owner no longer exists, which the inner-joined admin listing never returns.
type EnrichedAttendance struct {
	attendance.Attendance
	Employee *EmployeeSummary
}

type EnrichedAttendanceResponse struct {
	attendance.AttendanceResponse
	Employee *EmployeeSummary `json:"employee"`
}

func NewEnrichedAttendanceResponse(e EnrichedAttendance) EnrichedAttendanceResponse {
	return EnrichedAttendanceResponse{
		AttendanceResponse: attendance.NewAttendanceResponse(e.Attendance),
		Employee:           e.Employee,
	}
}

// ExportRow is the flat shape shared by every export format. Missing values are "".
type ExportRow struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	CheckIn     string `json:"checkIn"`
	CheckOut    string `json:"checkOut"`
	Status      string `json:"status"`
	Latitude    string `json:"latitude"`
	Longitude   string `json:"longitude"`
}

// ExportColumns lists ExportRow's keys in output order.
var ExportColumns = []string{
	"id", "date", "name", "email", "department", "designation",
	"checkIn", "checkOut", "status", "latitude", "longitude",
}

func (r ExportRow) Values() []string {
	return []string{
		r.ID, r.Date, r.Name, r.Email, r.Department, r.Designation,
		r.CheckIn, r.CheckOut, r.Status, r.Latitude, r.Longitude,
	}
}

// Document is a rendered export file.
type Document struct {
	ContentType string
	Filename    string
	Body        []byte
}

type ExportResult struct {
	Format   ExportFormat
	Total    int
	Rows     []ExportRow
	Document *Document
}
