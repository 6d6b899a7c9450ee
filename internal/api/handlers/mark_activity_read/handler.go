package mark_activity_read

import (
	"errors"
	"net/http"

	"github.com/m04kA/Trek-AdmissionService/internal/api/handlers"
	"github.com/m04kA/Trek-AdmissionService/internal/api/middleware"
	"github.com/m04kA/Trek-AdmissionService/internal/service/activity"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidKey         = "ключ записи обязателен"
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

// Handle POST /api/v1/activity/read
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req MarkReadRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /activity/read - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	adminID := middleware.AdminID(r.Context())

	if err := h.service.MarkRead(r.Context(), adminID, req.Key); err != nil {
		switch {
		case errors.Is(err, activity.ErrInvalidInput):
			h.logger.Warn("POST /activity/read - Invalid key: admin=%s", adminID)
			handlers.RespondBadRequest(w, msgInvalidKey)

		default:
			h.logger.Error("POST /activity/read - Failed to mark read: admin=%s, key=%s, error=%v",
				adminID, req.Key, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /activity/read - Marked read: admin=%s, key=%s", adminID, req.Key)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
