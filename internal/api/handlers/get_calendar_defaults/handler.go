package get_calendar_defaults

import (
	"net/http"

	"github.com/m04kA/Trek-AdmissionService/internal/api/handlers"
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

// Handle GET /api/v1/calendar/defaults
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetDefaults(r.Context())
	if err != nil {
		h.logger.Error("GET /calendar/defaults - Failed to get defaults: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
