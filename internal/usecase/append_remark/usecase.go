package append_remark

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
	storage "github.com/m04kA/Trek-AdmissionService/internal/infra/storage/booking"
)

// UseCase добавление административного замечания к заявке.
//
// Замечание и смена статуса идут одной транзакцией: замечание к pending-заявке
// переводит её в changes_required, чтобы заявитель увидел, что от него ждут
// правок. Повторное замечание по changes_required статус не меняет, но
// обновляет updated_at заявки.
type UseCase struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый usecase добавления замечания
func NewUseCase(bookingRepo BookingRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute добавляет замечание и при необходимости переводит заявку в changes_required
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	uc.logger.Info("Execute: appending remark to booking id=%d by %s", req.BookingID, req.Author)

	var resp *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var txErr error
		resp, txErr = uc.appendInTx(txCtx, req)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Execute: remark id=%d appended, booking id=%d status=%s",
		resp.RemarkID, resp.BookingID, resp.BookingStatus)
	return resp, nil
}

func (uc *UseCase) appendInTx(ctx context.Context, req *Request) (*Response, error) {
	booking, err := uc.bookingRepo.GetByIDForUpdate(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrBookingNotFound, req.BookingID)
		}
		uc.logger.Error("Execute: failed to lock booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Execute - lock booking: %v", ErrInternal, err)
	}

	if booking.RemarksLocked() {
		return nil, fmt.Errorf("%w: booking id=%d is %s", ErrRemarksLocked, booking.ID, booking.Status)
	}

	remark, err := uc.bookingRepo.AppendRemark(ctx, &domain.AdminRemark{
		BookingID: booking.ID,
		Author:    req.Author,
		Text:      req.Text,
	})
	if err != nil {
		uc.logger.Error("Execute: failed to append remark to booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: Execute - append remark: %v", ErrInternal, err)
	}

	status := booking.Status
	if booking.Status == domain.StatusPending || booking.Status == domain.StatusChangesRequired {
		// Из changes_required переход идемпотентен: статус остаётся,
		// updated_at сдвигается — заявка всплывает в ленте активности.
		status = domain.StatusChangesRequired
		if err := uc.bookingRepo.UpdateStatus(ctx, booking.ID, status); err != nil {
			uc.logger.Error("Execute: failed to restamp booking id=%d: %v", booking.ID, err)
			return nil, fmt.Errorf("%w: Execute - update status: %v", ErrInternal, err)
		}
	}

	return &Response{
		RemarkID:      remark.ID,
		BookingID:     booking.ID,
		Author:        remark.Author,
		Text:          remark.Text,
		BookingStatus: string(status),
		CreatedAt:     remark.CreatedAt,
	}, nil
}
