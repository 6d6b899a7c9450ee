package update_calendar_defaults

import (
	"errors"
	"net/http"

	"github.com/m04kA/Trek-AdmissionService/internal/api/handlers"
	"github.com/m04kA/Trek-AdmissionService/internal/api/middleware"
	"github.com/m04kA/Trek-AdmissionService/internal/service/calendar"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/calendar/defaults
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateDefaultsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /calendar/defaults - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.UpdateDefaults(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrInvalidInput):
			h.logger.Warn("PUT /calendar/defaults - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /calendar/defaults - Failed to update defaults: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /calendar/defaults - Defaults updated: admin=%s, defaultMaxSlots=%d",
		middleware.AdminID(r.Context()), resp.DefaultMaxSlots)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
