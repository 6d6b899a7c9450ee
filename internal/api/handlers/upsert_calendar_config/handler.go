package upsert_calendar_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/Trek-AdmissionService/internal/api/handlers"
	"github.com/m04kA/Trek-AdmissionService/internal/service/calendar"
	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

const (
	msgInvalidDate        = "некорректная дата, ожидается формат YYYY-MM-DD"
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

// Handle PUT /api/v1/calendar/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	date, err := types.ParseDateOnly(vars["date"])
	if err != nil {
		h.logger.Warn("PUT /calendar/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req UpsertConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /calendar/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.UpsertConfig(r.Context(), req.ToServiceRequest(date))
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrInvalidInput):
			h.logger.Warn("PUT /calendar/{date} - Validation failed: date=%s, error=%v", date, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /calendar/{date} - Failed to upsert config: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /calendar/{date} - Config saved: date=%s, isClosed=%v", date, req.IsClosed)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
