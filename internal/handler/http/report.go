package http

import (
	"net/http"

	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/geo-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/geo-attendance-go/internal/handler/http/response"
)

type ReportHandler interface {
	ListOwn(w http.ResponseWriter, r *http.Request)
	ListAdmin(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func filterFromQuery(r *http.Request) report.FilterRequest {
	q := r.URL.Query()
	return report.FilterRequest{
		EmployeeID: q.Get("employeeId"),
		Department: q.Get("department"),
		Date:       q.Get("date"),
		From:       q.Get("from"),
		To:         q.Get("to"),
	}
}

// ListOwn handles GET /api/attendance/me
func (h *reportHandlerImpl) ListOwn(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	q := r.URL.Query()
	page, err := h.reportService.ListOwn(r.Context(), report.ListOwnRequest{
		UserID: id.UserID,
		Page:   q.Get("page"),
		Limit:  q.Get("limit"),
		From:   q.Get("from"),
		To:     q.Get("to"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Paginated(w, page.Page, page.Limit, page.Total, page.Data)
}

// ListAdmin handles GET /api/attendance/admin
func (h *reportHandlerImpl) ListAdmin(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.reportService.ListAdmin(r.Context(), report.ListAdminRequest{
		FilterRequest: filterFromQuery(r),
		Page:          q.Get("page"),
		Limit:         q.Get("limit"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Paginated(w, page.Page, page.Limit, page.Total, page.Data)
}

// Download handles GET /api/attendance/download
func (h *reportHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.Export(r.Context(), filterFromQuery(r), format)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Document == nil {
		response.Export(w, result.Total, result.Rows)
		return
	}
	response.Attachment(w, result.Document.ContentType, result.Document.Filename, result.Document.Body)
}
