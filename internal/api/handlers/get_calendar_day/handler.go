package get_calendar_day

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/Trek-AdmissionService/internal/api/handlers"
	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

const (
	msgInvalidDate = "некорректная дата, ожидается формат YYYY-MM-DD"
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

// Handle GET /api/v1/calendar/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	date, err := types.ParseDateOnly(vars["date"])
	if err != nil {
		h.logger.Warn("GET /calendar/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	resp, err := h.service.GetDaySummary(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /calendar/{date} - Failed to get day summary: date=%s, error=%v", date, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
