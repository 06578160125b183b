package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/geo-attendance-go/internal/config"
	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestAccessExp  = "1h"
	handlerTestRefreshExp = "24h"
	handlerTestSecret     = "test-secret-key-for-jwt"
)

type fakeAuthService struct {
	loginErr   error
	lastLogin  auth.LoginRequest
	lastLogout auth.RefreshTokenRequest
}

func (f *fakeAuthService) Register(ctx context.Context, req auth.RegisterRequest) (user.UserResponse, error) {
	return user.UserResponse{ID: "new-user", Name: req.Name, Email: req.Email, Role: string(user.RoleEmployee)}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	f.lastLogin = req
	if f.loginErr != nil {
		return auth.TokenResponse{}, f.loginErr
	}
	return auth.TokenResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (f *fakeAuthService) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
}

func (f *fakeAuthService) Logout(ctx context.Context, req auth.RefreshTokenRequest) error {
	f.lastLogout = req
	return nil
}

type fakeOfficeService struct {
	cfg *office.Config
}

func (f *fakeOfficeService) GetOffice(ctx context.Context) (office.Config, error) {
	if f.cfg == nil {
		return office.Config{}, office.ErrOfficeNotFound
	}
	return *f.cfg, nil
}

func (f *fakeOfficeService) SetOffice(ctx context.Context, req office.SetOfficeRequest) (office.Config, error) {
	if err := req.Validate(); err != nil {
		return office.Config{}, err
	}
	cfg := req.ToConfig()
	f.cfg = &cfg
	return cfg, nil
}

type fakeAttendanceService struct {
	calls   []attendance.MarkAttendanceRequest
	results []attendance.Action
	err     error
}

func (f *fakeAttendanceService) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.MarkAttendanceResponse, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return attendance.MarkAttendanceResponse{}, f.err
	}
	action := f.results[len(f.calls)-1]
	return attendance.MarkAttendanceResponse{
		Action:     action,
		Attendance: attendance.AttendanceResponse{ID: "att-1", UserID: req.UserID, Status: attendance.StatusPresent},
	}, nil
}

type fakeReportService struct {
	lastOwn    report.ListOwnRequest
	lastAdmin  report.ListAdminRequest
	lastFilter report.FilterRequest
}

func (f *fakeReportService) ListOwn(ctx context.Context, req report.ListOwnRequest) (report.Page[attendance.AttendanceResponse], error) {
	f.lastOwn = req
	return report.Page[attendance.AttendanceResponse]{
		Page:  2,
		Limit: 10,
		Total: 25,
		Data:  []attendance.AttendanceResponse{{ID: "rec-15", UserID: req.UserID}},
	}, nil
}

func (f *fakeReportService) ListAdmin(ctx context.Context, req report.ListAdminRequest) (report.Page[report.EnrichedAttendanceResponse], error) {
	f.lastAdmin = req
	return report.Page[report.EnrichedAttendanceResponse]{Page: 1, Limit: 10, Data: []report.EnrichedAttendanceResponse{}}, nil
}

func (f *fakeReportService) Export(ctx context.Context, req report.FilterRequest, format report.ExportFormat) (report.ExportResult, error) {
	f.lastFilter = req
	rows := []report.ExportRow{{ID: "rec-1", Name: "Asha", Status: "present"}}
	if format == report.FormatJSON {
		return report.ExportResult{Format: format, Total: len(rows), Rows: rows}, nil
	}
	return report.ExportResult{
		Format: format,
		Total:  len(rows),
		Rows:   rows,
		Document: &report.Document{
			ContentType: "text/csv",
			Filename:    "attendance_1.csv",
			Body:        []byte("id,name\nrec-1,Asha\n"),
		},
	}, nil
}

type fakeEmployeeService struct{}

func (fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (user.UserResponse, error) {
	return user.UserResponse{}, user.ErrUserEmailExists
}

func (fakeEmployeeService) List(ctx context.Context, req employee.ListEmployeesRequest) (employee.ListEmployeesResponse, error) {
	return employee.ListEmployeesResponse{
		Employees: []user.UserResponse{{ID: "e-1"}, {ID: "e-2"}},
		Page:      1,
		Limit:     2,
		Total:     3,
	}, nil
}

type fakeReadiness struct {
	err error
}

func (f fakeReadiness) CheckReady(ctx context.Context) error { return f.err }

type routerFixture struct {
	handler    http.Handler
	jwt        jwt.Service
	auth       *fakeAuthService
	office     *fakeOfficeService
	attendance *fakeAttendanceService
	report     *fakeReportService
}

func newRouterFixture(t *testing.T, ready error) *routerFixture {
	t.Helper()
	jwtService, err := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp)
	require.NoError(t, err)

	cfg := &config.Config{App: config.AppConfig{
		Env:                "test",
		LogLevel:           "error",
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		RequestTimeout:     5 * time.Second,
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := &routerFixture{
		jwt:        jwtService,
		auth:       &fakeAuthService{},
		office:     &fakeOfficeService{},
		attendance: &fakeAttendanceService{},
		report:     &fakeReportService{},
	}
	f.handler = NewRouter(cfg, logger, jwtService, Handlers{
		Auth:       NewAuthHandler(f.auth),
		Office:     NewOfficeHandler(f.office),
		Attendance: NewAttendanceHandler(f.attendance),
		Report:     NewReportHandler(f.report),
		Employee:   NewEmployeeHandler(fakeEmployeeService{}),
		Health:     NewHealthHandler(fakeReadiness{err: ready}),
	})
	return f
}

func (f *routerFixture) token(t *testing.T, userID string, role user.Role) string {
	t.Helper()
	token, _, err := f.jwt.GenerateAccessToken(userID, userID+"@example.com", role)
	require.NoError(t, err)
	return token
}

func (f *routerFixture) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, rec)
	detail, ok := body["error"].(map[string]any)
	require.True(t, ok, rec.Body.String())
	return detail["message"].(string)
}

func TestAuthHandler_Login(t *testing.T) {
	f := newRouterFixture(t, nil)

	rec := f.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "asha@example.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	assert.Equal(t, "access", data["accessToken"])
	assert.Equal(t, "asha@example.com", f.auth.lastLogin.Email)
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	f := newRouterFixture(t, nil)
	f.auth.loginErr = auth.ErrInvalidCredentials

	rec := f.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "asha@example.com",
		"password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", errorMessage(t, rec))
}

func TestAuthHandler_RejectsMalformedAndInvalidBodies(t *testing.T) {
	f := newRouterFixture(t, nil)

	rec := f.do(http.MethodPost, "/api/auth/register", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request format", errorMessage(t, rec))

	rec = f.do(http.MethodPost, "/api/auth/register", "", map[string]string{"email": "nope"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAuthHandler_RefreshAndLogout(t *testing.T) {
	f := newRouterFixture(t, nil)

	rec := f.do(http.MethodPost, "/api/auth/refresh", "", map[string]string{"refreshToken": "stale"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodPost, "/api/auth/logout", "", map[string]string{"refreshToken": "abc"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", f.auth.lastLogout.RefreshToken)
}

func TestAttendanceHandler_Mark(t *testing.T) {
	f := newRouterFixture(t, nil)
	f.attendance.results = []attendance.Action{attendance.ActionCheckedIn, attendance.ActionCheckedOut}
	token := f.token(t, "emp-1", user.RoleEmployee)
	body := map[string]float64{"latitude": 12.9716, "longitude": 77.5946}

	rec := f.do(http.MethodPost, "/api/attendance/mark", token, body)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Checked in successfully", decodeBody(t, rec)["message"])

	rec = f.do(http.MethodPost, "/api/attendance/mark", token, body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Checked out successfully", decodeBody(t, rec)["message"])

	require.Len(t, f.attendance.calls, 2)
	assert.Equal(t, "emp-1", f.attendance.calls[0].UserID)
}

func TestAttendanceHandler_MarkIgnoresUserIDInBody(t *testing.T) {
	f := newRouterFixture(t, nil)
	f.attendance.results = []attendance.Action{attendance.ActionCheckedIn}

	rec := f.do(http.MethodPost, "/api/attendance/mark", f.token(t, "emp-1", user.RoleEmployee),
		`{"latitude": 1, "longitude": 2, "userId": "someone-else"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "emp-1", f.attendance.calls[0].UserID)
}

func TestAttendanceHandler_MarkErrors(t *testing.T) {
	cases := map[error]string{
		attendance.ErrConfigMissing:     "Office location not set",
		attendance.ErrOutsideRadius:     "Outside office radius",
		attendance.ErrAlreadyCheckedOut: "Already checked out today",
	}
	for serviceErr, message := range cases {
		t.Run(message, func(t *testing.T) {
			f := newRouterFixture(t, nil)
			f.attendance.err = serviceErr

			rec := f.do(http.MethodPost, "/api/attendance/mark", f.token(t, "emp-1", user.RoleEmployee),
				map[string]float64{"latitude": 1, "longitude": 2})

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, message, errorMessage(t, rec))
		})
	}
}

func TestAttendanceHandler_RequiresToken(t *testing.T) {
	f := newRouterFixture(t, nil)

	rec := f.do(http.MethodPost, "/api/attendance/mark", "", map[string]float64{"latitude": 1, "longitude": 2})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, f.attendance.calls)
}

func TestReportHandler_ListOwn(t *testing.T) {
	f := newRouterFixture(t, nil)

	rec := f.do(http.MethodGet, "/api/attendance/me?page=2&limit=10&from=2025-01-01", f.token(t, "emp-1", user.RoleEmployee), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 2, body["page"])
	assert.EqualValues(t, 25, body["total"])
	assert.Len(t, body["data"], 1)
	assert.Equal(t, report.ListOwnRequest{UserID: "emp-1", Page: "2", Limit: "10", From: "2025-01-01"}, f.report.lastOwn)
}

func TestReportHandler_AdminRoutesForbidEmployees(t *testing.T) {
	f := newRouterFixture(t, nil)
	token := f.token(t, "emp-1", user.RoleEmployee)

	for _, path := range []string{"/api/attendance/admin", "/api/attendance/download", "/api/employees"} {
		rec := f.do(http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}
}

func TestReportHandler_ListAdminPassesFilters(t *testing.T) {
	f := newRouterFixture(t, nil)

	rec := f.do(http.MethodGet, "/api/attendance/admin?department=Engineering&date=2025-03-01&employeeId=abc",
		f.token(t, "admin-1", user.RoleAdmin), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Engineering", f.report.lastAdmin.Department)
	assert.Equal(t, "2025-03-01", f.report.lastAdmin.Date)
	assert.Equal(t, "abc", f.report.lastAdmin.EmployeeID)
}

func TestReportHandler_Download(t *testing.T) {
	f := newRouterFixture(t, nil)
	token := f.token(t, "admin-1", user.RoleAdmin)

	rec := f.do(http.MethodGet, "/api/attendance/download?format=csv&department=Sales", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=attendance_1.csv", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "id,name\nrec-1,Asha\n", rec.Body.String())
	assert.Equal(t, "Sales", f.report.lastFilter.Department)

	rec = f.do(http.MethodGet, "/api/attendance/download", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.EqualValues(t, 1, body["total"])
	assert.Len(t, body["data"], 1)

	rec = f.do(http.MethodGet, "/api/attendance/download?format=pdf", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestOfficeHandler_GetAndSet(t *testing.T) {
	f := newRouterFixture(t, nil)
	admin := f.token(t, "admin-1", user.RoleAdmin)
	employeeToken := f.token(t, "emp-1", user.RoleEmployee)

	rec := f.do(http.MethodGet, "/api/config/office", employeeToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(http.MethodPost, "/api/config/office", employeeToken, map[string]any{"latitude": 1, "longitude": 2, "radiusMeters": 100})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(http.MethodPost, "/api/config/office", admin, map[string]any{"latitude": 1, "longitude": 2, "radiusMeters": 100})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/api/config/office", employeeToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEmployeeHandler(t *testing.T) {
	f := newRouterFixture(t, nil)
	admin := f.token(t, "admin-1", user.RoleAdmin)

	rec := f.do(http.MethodGet, "/api/employees?page=1&limit=2", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	meta := decodeBody(t, rec)["meta"].(map[string]any)
	assert.EqualValues(t, 3, meta["total_items"])
	assert.EqualValues(t, 2, meta["total_pages"])

	rec = f.do(http.MethodPost, "/api/employees", admin, map[string]string{
		"name":     "Ravi",
		"email":    "ravi@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHealthHandler(t *testing.T) {
	f := newRouterFixture(t, nil)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health/live", "", nil).Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health/ready", "", nil).Code)

	down := newRouterFixture(t, errors.New("connection refused"))
	rec := down.do(http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newRouterFixture(t, nil)
	f.do(http.MethodGet, "/health/live", "", nil)

	rec := f.do(http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "geo_attendance_http_requests_total")
}
