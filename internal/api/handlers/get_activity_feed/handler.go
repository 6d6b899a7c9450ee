package get_activity_feed

import (
	"net/http"

	"github.com/m04kA/Trek-AdmissionService/internal/api/handlers"
	"github.com/m04kA/Trek-AdmissionService/internal/api/middleware"
)

type Handler struct {
	service ActivityService
	logger  Logger
}

func NewHandler(service ActivityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/activity
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID := middleware.AdminID(r.Context())

	entries, err := h.service.Feed(r.Context(), adminID)
	if err != nil {
		h.logger.Error("GET /activity - Failed to build feed: admin=%s, error=%v", adminID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainEntries(entries))
}
