package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/geo-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/geo-attendance-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Mark(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// Mark handles POST /api/attendance/mark
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("MarkAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = id.UserID

	result, err := h.attendanceService.MarkAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Action == attendance.ActionCheckedIn {
		response.Created(w, result.Message(), result)
		return
	}
	response.SuccessWithMessage(w, result.Message(), result)
}
