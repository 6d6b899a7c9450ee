package get_overbooked

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/Trek-AdmissionService/internal/api/handlers"
	"github.com/m04kA/Trek-AdmissionService/internal/service/calendar"
	calendarModels "github.com/m04kA/Trek-AdmissionService/internal/service/calendar/models"
	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

const (
	msgInvalidFromDate = "некорректный параметр from"
	msgInvalidToDate   = "некорректный параметр to"
	msgInvalidPeriod   = "конец периода раньше начала"

	// Окно сверки по умолчанию, если период не задан явно
	defaultScanDays = 60
)

type Handler struct {
	service  CalendarService
	recorder OverbookedRecorder
	logger   Logger
}

func NewHandler(service CalendarService, recorder OverbookedRecorder, logger Logger) *Handler {
	if recorder == nil {
		recorder = NopRecorder{}
	}

	return &Handler{
		service:  service,
		recorder: recorder,
		logger:   logger,
	}
}

// Handle GET /api/v1/calendar/overbooked?from=2026-04-01&to=2026-05-31
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from := types.NewDateOnly(time.Now())
	if raw := query.Get("from"); raw != "" {
		parsed, err := types.ParseDateOnly(raw)
		if err != nil {
			h.logger.Warn("GET /calendar/overbooked - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFromDate)
			return
		}
		from = parsed
	}

	to := from.AddDays(defaultScanDays)
	if raw := query.Get("to"); raw != "" {
		parsed, err := types.ParseDateOnly(raw)
		if err != nil {
			h.logger.Warn("GET /calendar/overbooked - Invalid to date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidToDate)
			return
		}
		to = parsed
	}

	dates, err := h.service.FindOverbooked(r.Context(), from, to)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrInvalidInput):
			h.logger.Warn("GET /calendar/overbooked - Invalid period: from=%s, to=%s", from, to)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /calendar/overbooked - Scan failed: from=%s, to=%s, error=%v", from, to, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.recorder.SetOverbookedDates("scan", len(dates))

	h.logger.Info("GET /calendar/overbooked - Scan complete: from=%s, to=%s, overbooked=%d", from, to, len(dates))
	handlers.RespondJSON(w, http.StatusOK, calendarModels.FromDomainOverbooked(dates))
}
