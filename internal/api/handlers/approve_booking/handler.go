package approve_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Trek-AdmissionService/internal/api/handlers"
	"github.com/m04kA/Trek-AdmissionService/internal/api/middleware"
	uc "github.com/m04kA/Trek-AdmissionService/internal/usecase/approve_booking"
)

const (
	msgInvalidBookingID = "некорректный ID заявки"
	msgNotFound         = "заявка не найдена"
	msgNotPending       = "одобрить можно только заявку в статусе pending"
	msgDateClosed       = "дата закрыта для записи"
	msgCapacityExceeded = "ёмкость даты исчерпана"
	msgCapacityUnknown  = "загрузка даты недоступна, повторите попытку позже"
	msgInvalidInput     = "некорректные входные данные"
)

type Handler struct {
	usecase ApproveUseCase
	logger  Logger
}

func NewHandler(usecase ApproveUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/approve - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	adminID := middleware.AdminID(r.Context())

	resp, err := h.usecase.Execute(r.Context(), &uc.Request{
		BookingID: bookingID,
		AdminID:   adminID,
	})
	if err != nil {
		var capErr *uc.CapacityExceededError

		switch {
		case errors.Is(err, uc.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/approve - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, uc.ErrIllegalTransition):
			h.logger.Warn("PATCH /bookings/{id}/approve - Illegal transition: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondError(w, http.StatusConflict, msgNotPending)

		case errors.Is(err, uc.ErrDateClosed):
			h.logger.Warn("PATCH /bookings/{id}/approve - Date closed: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgDateClosed)

		case errors.As(err, &capErr):
			h.logger.Warn("PATCH /bookings/{id}/approve - Capacity exceeded: booking_id=%d, current=%d, max=%d",
				bookingID, capErr.Current, capErr.Max)
			handlers.RespondConflict(w, CapacityExceededResponse{
				Error:   msgCapacityExceeded,
				Current: capErr.Current,
				Max:     capErr.Max,
			})

		case errors.Is(err, uc.ErrCapacityUnknown):
			h.logger.Error("PATCH /bookings/{id}/approve - Capacity unknown: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondServiceUnavailable(w, msgCapacityUnknown)

		case errors.Is(err, uc.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/approve - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id}/approve - Failed to approve booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/approve - Booking approved: booking_id=%d, admin=%s, load=%d/%d",
		bookingID, adminID, resp.ApprovedLoad, resp.Capacity)
	handlers.RespondJSON(w, http.StatusOK, FromUsecaseResponse(resp))
}
