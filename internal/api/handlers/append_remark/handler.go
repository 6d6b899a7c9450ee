package append_remark

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Trek-AdmissionService/internal/api/handlers"
	"github.com/m04kA/Trek-AdmissionService/internal/api/middleware"
	uc "github.com/m04kA/Trek-AdmissionService/internal/usecase/append_remark"
)

const (
	msgInvalidBookingID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "заявка не найдена"
	msgRemarksLocked      = "замечания недоступны для одобренных и отменённых заявок"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	usecase AppendRemarkUseCase
	logger  Logger
}

func NewHandler(usecase AppendRemarkUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/remarks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/remarks - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req AppendRemarkRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/remarks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	adminID := middleware.AdminID(r.Context())

	resp, err := h.usecase.Execute(r.Context(), &uc.Request{
		BookingID: bookingID,
		Author:    adminID,
		Text:      req.Text,
	})
	if err != nil {
		switch {
		case errors.Is(err, uc.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/remarks - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, uc.ErrRemarksLocked):
			h.logger.Warn("POST /bookings/{id}/remarks - Remarks locked: booking_id=%d", bookingID)
			handlers.RespondForbidden(w, msgRemarksLocked)

		case errors.Is(err, uc.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/remarks - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/{id}/remarks - Failed to append remark: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/remarks - Remark appended: booking_id=%d, remark_id=%d, status=%s",
		bookingID, resp.RemarkID, resp.BookingStatus)
	handlers.RespondJSON(w, http.StatusCreated, FromUsecaseResponse(resp))
}
