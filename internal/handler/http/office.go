package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/geo-attendance-go/internal/handler/http/response"
)

type OfficeHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Set(w http.ResponseWriter, r *http.Request)
}

type officeHandlerImpl struct {
	officeService office.OfficeService
}

func NewOfficeHandler(officeService office.OfficeService) OfficeHandler {
	return &officeHandlerImpl{officeService: officeService}
}

// Get handles GET /api/config/office
func (h *officeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.officeService.GetOffice(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, office.NewOfficeResponse(cfg))
}

// Set handles POST /api/config/office
func (h *officeHandlerImpl) Set(w http.ResponseWriter, r *http.Request) {
	var req office.SetOfficeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetOffice decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	cfg, err := h.officeService.SetOffice(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Office location saved", office.NewOfficeResponse(cfg))
}
