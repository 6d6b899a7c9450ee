package list_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/Trek-AdmissionService/internal/api/handlers"
	"github.com/m04kA/Trek-AdmissionService/internal/service/bookings"
	"github.com/m04kA/Trek-AdmissionService/internal/service/bookings/models"
	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

const (
	msgInvalidFromDate = "некорректный параметр from"
	msgInvalidToDate   = "некорректный параметр to"
	msgInvalidFilter   = "некорректный фильтр"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?from=2026-04-01&to=2026-04-30&status=pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListBookingsRequest{}

	if raw := query.Get("from"); raw != "" {
		date, err := types.ParseDateOnly(raw)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFromDate)
			return
		}
		req.StartDate = &date
	}

	if raw := query.Get("to"); raw != "" {
		date, err := types.ParseDateOnly(raw)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid to date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidToDate)
			return
		}
		req.EndDate = &date
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	resp, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Returned %d bookings", len(resp.Bookings))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
