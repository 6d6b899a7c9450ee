package delete_calendar_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/Trek-AdmissionService/internal/api/handlers"
	"github.com/m04kA/Trek-AdmissionService/internal/service/calendar"
	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

const (
	msgInvalidDate = "некорректная дата, ожидается формат YYYY-MM-DD"
	msgNotFound    = "переопределение для даты не найдено"
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

// Handle DELETE /api/v1/calendar/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	date, err := types.ParseDateOnly(vars["date"])
	if err != nil {
		h.logger.Warn("DELETE /calendar/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.DeleteConfig(r.Context(), date); err != nil {
		switch {
		case errors.Is(err, calendar.ErrConfigNotFound):
			h.logger.Warn("DELETE /calendar/{date} - Config not found: date=%s", date)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /calendar/{date} - Failed to delete config: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /calendar/{date} - Config deleted: date=%s", date)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
